package output

import (
	"bytes"
	"encoding/json"
	"image"
	"image/jpeg"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/ftrvxmtrx/tga"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/image/bmp"

	"sonar-renderer/internal/capture"
	"sonar-renderer/internal/pose"
	"sonar-renderer/internal/sonar"
)

func TestBaseName(t *testing.T) {
	at := time.Date(2024, 3, 5, 14, 7, 9, 0, time.UTC)
	assert.Equal(t, "frame_000042", BaseName(true, 42, at))
	assert.Equal(t, "2024_03_05_02_07_09", BaseName(false, 42, at))
}

func TestNormalizeFormat(t *testing.T) {
	for in, want := range map[string]string{".JPEG": "jpg", "jpg": "jpg", "png": "png", " WebP ": "webp", "tga": "tga", "bmp": "bmp"} {
		got, err := NormalizeFormat(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}
	_, err := NormalizeFormat("gif")
	assert.ErrorContains(t, err, "unsupported format")
}

func TestEncodeFormats(t *testing.T) {
	img := image.NewGray(image.Rect(0, 0, 6, 4))
	img.Pix[0] = 255

	decoders := map[string]func(*bytes.Reader) (image.Image, error){
		"jpg": func(r *bytes.Reader) (image.Image, error) { return jpeg.Decode(r) },
		"png": func(r *bytes.Reader) (image.Image, error) { return png.Decode(r) },
		"tga": func(r *bytes.Reader) (image.Image, error) { return tga.Decode(r) },
		"bmp": func(r *bytes.Reader) (image.Image, error) { return bmp.Decode(r) },
	}
	for _, format := range Formats {
		t.Run(format, func(t *testing.T) {
			var buf bytes.Buffer
			require.NoError(t, Encode(&buf, img, format, 90))
			assert.NotZero(t, buf.Len())

			decode, ok := decoders[format]
			if !ok {
				return
			}
			got, err := decode(bytes.NewReader(buf.Bytes()))
			require.NoError(t, err)
			assert.Equal(t, 6, got.Bounds().Dx())
			assert.Equal(t, 4, got.Bounds().Dy())
		})
	}

	assert.Error(t, Encode(&bytes.Buffer{}, img, "gif", 90))
}

func testCapture(auto bool, frame int) *capture.Capture {
	m := sonar.NewImage(4, 3)
	m.Pix[0] = 1
	return &capture.Capture{
		Image:     m,
		Pose:      pose.Pose{Position: [3]float64{1, 2, 3}},
		Record:    pose.Record{3, -1, 2, 0, 0, 0},
		Frame:     frame,
		Auto:      auto,
		Timestamp: time.Date(2024, 3, 5, 14, 7, 9, 0, time.UTC),
	}
}

func TestWriterWritesImageAndPose(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "out")
	w := Writer{Dir: dir, Format: "png", Scale: 2, SavePoses: true}

	got, err := w.Write(testCapture(true, 7))
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "frame_000007.png"), got.Image)
	assert.Equal(t, filepath.Join(dir, "frame_000007.csv"), got.Pose)

	f, err := os.Open(got.Image)
	require.NoError(t, err)
	defer f.Close()
	img, err := png.Decode(f)
	require.NoError(t, err)
	assert.Equal(t, image.Rect(0, 0, 8, 6), img.Bounds())

	line, err := os.ReadFile(got.Pose)
	require.NoError(t, err)
	assert.Equal(t, "3,-1,2,0,0,0\n", string(line))
}

func TestWriterManualCaptureNoPose(t *testing.T) {
	dir := t.TempDir()
	w := Writer{Dir: dir, Format: "jpg", Quality: 80, Separator: ';'}

	got, err := w.Write(testCapture(false, 0))
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "2024_03_05_02_07_09.jpg"), got.Image)
	assert.Empty(t, got.Pose)
	_, err = os.Stat(got.Image)
	assert.NoError(t, err)

	_, err = Writer{Dir: dir, Format: "gif"}.Write(testCapture(true, 0))
	assert.Error(t, err)
}

func TestManifest(t *testing.T) {
	dir := t.TempDir()
	m := NewManifest(sonar.DefaultConfig())
	_, err := uuid.Parse(m.RunID)
	require.NoError(t, err)

	w := Writer{Dir: dir, Format: "bmp", SavePoses: true}
	for _, frame := range []int{1, 0} {
		c := testCapture(true, frame)
		written, err := w.Write(c)
		require.NoError(t, err)
		m.Add(dir, c, written)
	}

	path := filepath.Join(dir, "manifest.json")
	require.NoError(t, WriteManifest(path, m))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	var decoded struct {
		RunID  string          `json:"run_id"`
		Frames []ManifestEntry `json:"frames"`
	}
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, m.RunID, decoded.RunID)
	require.Len(t, decoded.Frames, 2)
	assert.Equal(t, 0, decoded.Frames[0].Frame)
	assert.Equal(t, "frame_000000.bmp", decoded.Frames[0].Image)
	assert.True(t, strings.HasSuffix(decoded.Frames[1].PoseFile, ".csv"))
	assert.Equal(t, pose.Record{3, -1, 2, 0, 0, 0}, decoded.Frames[1].Record)
}
