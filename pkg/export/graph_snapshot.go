package export

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/vanderheijden86/glossnet/pkg/canvas"
	"github.com/vanderheijden86/glossnet/pkg/network"
)

// SnapshotOptions controls snapshot export.
type SnapshotOptions struct {
	Path   string // Output path; format inferred from extension when Format empty
	Format string // "svg" or "png" (case-insensitive). If empty, inferred from Path.
	// Session is painted as is, so it must be loaded. Its viewport sets the
	// image size.
	Session *network.Session
}

// SaveSnapshot paints the network view of a loaded session into an SVG or
// PNG file. The session is copied first, so node positions of the caller
// are never touched.
func SaveSnapshot(opts SnapshotOptions) error {
	if opts.Session == nil || !opts.Session.Ready() {
		return fmt.Errorf("snapshot needs a loaded session")
	}
	if len(opts.Session.Nodes()) == 0 {
		return fmt.Errorf("no nodes to export")
	}
	if opts.Path == "" {
		return fmt.Errorf("output path is required")
	}

	format, err := snapshotFormat(opts.Path, opts.Format)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(opts.Path), 0o755); err != nil {
		return fmt.Errorf("create parent dir: %w", err)
	}

	snap := opts.Session.Snapshot()
	switch format {
	case "svg":
		f, err := os.Create(opts.Path)
		if err != nil {
			return fmt.Errorf("create %s: %w", opts.Path, err)
		}
		if err := WriteSVG(f, snap); err != nil {
			f.Close()
			return err
		}
		return f.Close()
	default:
		vp := snap.Viewport()
		png := canvas.NewPNG(int(vp.W), int(vp.H))
		snap.Paint(png)
		return png.SavePNG(opts.Path)
	}
}

// WriteSVG paints s as an SVG document onto w.
func WriteSVG(w io.Writer, s *network.Session) error {
	bw := bufio.NewWriter(w)
	vp := s.Viewport()
	doc := canvas.NewSVG(bw, int(vp.W), int(vp.H))
	s.Paint(doc)
	doc.End()
	if err := bw.Flush(); err != nil {
		return fmt.Errorf("write svg: %w", err)
	}
	return nil
}

func snapshotFormat(path, format string) (string, error) {
	format = strings.ToLower(strings.TrimPrefix(format, "."))
	if format == "" {
		format = strings.ToLower(strings.TrimPrefix(filepath.Ext(path), "."))
	}
	switch format {
	case "svg", "png":
		return format, nil
	case "":
		return "", fmt.Errorf("cannot infer snapshot format from %q (want .svg or .png)", path)
	default:
		return "", fmt.Errorf("unsupported format %q (want svg or png)", format)
	}
}
