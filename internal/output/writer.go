package output

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"

	"sonar-renderer/internal/capture"
	"sonar-renderer/internal/postprocess"
)

// Writer saves captures into Dir.
type Writer struct {
	Dir       string
	Format    string
	Quality   int
	Scale     float64
	SavePoses bool
	Separator rune // pose field separator, ',' when zero
}

// Written lists the files produced for one capture.
type Written struct {
	Image string
	Pose  string // empty unless poses are saved
}

// Write encodes c and, when enabled, its pose record. It is safe to call
// from several goroutines for distinct captures.
func (w Writer) Write(c *capture.Capture) (Written, error) {
	format, err := NormalizeFormat(w.Format)
	if err != nil {
		return Written{}, err
	}
	if err := os.MkdirAll(w.Dir, 0755); err != nil {
		return Written{}, fmt.Errorf("output: create %s: %w", w.Dir, err)
	}

	img := postprocess.Gray(c.Image)
	if w.Scale > 0 {
		img = postprocess.Rescale(img, w.Scale)
	}

	base := filepath.Join(w.Dir, BaseName(c.Auto, c.Frame, c.Timestamp))
	out := Written{Image: base + "." + format}
	if err := writeFile(out.Image, func(f *bufio.Writer) error {
		return Encode(f, img, format, w.Quality)
	}); err != nil {
		return Written{}, err
	}

	if w.SavePoses {
		sep := w.Separator
		if sep == 0 {
			sep = ','
		}
		out.Pose = base + ".csv"
		if err := writeFile(out.Pose, func(f *bufio.Writer) error {
			_, err := f.WriteString(c.Record.Format(sep) + "\n")
			return err
		}); err != nil {
			return Written{}, err
		}
	}
	return out, nil
}

func writeFile(path string, fill func(*bufio.Writer) error) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("output: create %s: %w", path, err)
	}
	bw := bufio.NewWriter(f)
	if err := fill(bw); err != nil {
		f.Close()
		return fmt.Errorf("output: write %s: %w", path, err)
	}
	if err := bw.Flush(); err != nil {
		f.Close()
		return fmt.Errorf("output: write %s: %w", path, err)
	}
	return f.Close()
}
