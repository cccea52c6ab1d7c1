package output

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"sonar-renderer/internal/capture"
	"sonar-renderer/internal/pose"
	"sonar-renderer/internal/sonar"
)

// ManifestEntry represents one frame in the output manifest.
type ManifestEntry struct {
	Frame     int         `json:"frame"`
	Auto      bool        `json:"auto"`
	Image     string      `json:"image"`
	PoseFile  string      `json:"pose_file,omitempty"`
	Record    pose.Record `json:"record"`
	Timestamp time.Time   `json:"timestamp"`
}

// Manifest describes one simulation run.
type Manifest struct {
	RunID   string          `json:"run_id"`
	Created time.Time       `json:"created"`
	Sensor  sonar.Config    `json:"sensor"`
	Frames  []ManifestEntry `json:"frames"`

	mu sync.Mutex
}

// NewManifest starts a manifest with a fresh run ID.
func NewManifest(sensor sonar.Config) *Manifest {
	return &Manifest{
		RunID:   uuid.NewString(),
		Created: time.Now().UTC(),
		Sensor:  sensor,
	}
}

// Add records a written capture. Paths are stored relative to dir when
// possible.
func (m *Manifest) Add(dir string, c *capture.Capture, w Written) {
	e := ManifestEntry{
		Frame:     c.Frame,
		Auto:      c.Auto,
		Image:     relTo(dir, w.Image),
		Record:    c.Record,
		Timestamp: c.Timestamp,
	}
	if w.Pose != "" {
		e.PoseFile = relTo(dir, w.Pose)
	}
	m.mu.Lock()
	m.Frames = append(m.Frames, e)
	m.mu.Unlock()
}

// WriteManifest writes the manifest as indented JSON, frames in capture order.
func WriteManifest(path string, m *Manifest) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	sort.SliceStable(m.Frames, func(i, j int) bool {
		return m.Frames[i].Timestamp.Before(m.Frames[j].Timestamp) ||
			(m.Frames[i].Timestamp.Equal(m.Frames[j].Timestamp) && m.Frames[i].Frame < m.Frames[j].Frame)
	})

	data, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

func relTo(dir, path string) string {
	if rel, err := filepath.Rel(dir, path); err == nil {
		return filepath.ToSlash(rel)
	}
	return path
}
