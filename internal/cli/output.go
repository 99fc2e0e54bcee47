package cli

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/matzehuels/ringstack/pkg/sink"
)

// stdoutPath selects standard output as the destination of a single artifact.
const stdoutPath = "-"

// artifactWriteParams describes where rendered artifacts go.
type artifactWriteParams struct {
	artifacts map[string][]byte
	formats   []string
	base      string // output path without extension
	output    string // explicit -o value, may be empty
}

// writeArtifacts writes one file per format. A single format written with an
// explicit -o goes exactly there; otherwise files are named base.<ext>.
func writeArtifacts(p artifactWriteParams) ([]string, error) {
	if len(p.formats) == 1 && p.output != "" {
		format := p.formats[0]
		if err := writeFile(p.output, p.artifacts[format]); err != nil {
			return nil, err
		}
		return []string{p.output}, nil
	}
	if p.output == stdoutPath {
		return nil, fmt.Errorf("cannot write %d formats to stdout", len(p.formats))
	}

	paths := make([]string, 0, len(p.formats))
	for _, format := range p.formats {
		data, ok := p.artifacts[format]
		if !ok {
			return paths, fmt.Errorf("missing %s artifact", format)
		}
		path := p.base + "." + sink.Extension(format)
		if err := writeFile(path, data); err != nil {
			return paths, err
		}
		paths = append(paths, path)
	}
	return paths, nil
}

func writeFile(path string, data []byte) error {
	if dir := filepath.Dir(path); path != stdoutPath && dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create %s: %w", dir, err)
		}
	}
	w, err := openOutput(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if _, err := w.Write(data); err != nil {
		w.Close()
		return fmt.Errorf("write %s: %w", path, err)
	}
	return w.Close()
}

// basePath derives the base output path from the output flag and a fallback
// name. A known format extension on output is stripped.
func basePath(output, fallback string) string {
	if output == "" || output == stdoutPath {
		return strings.TrimSuffix(fallback, filepath.Ext(fallback))
	}
	longest := ""
	for _, format := range sink.Formats {
		if ext := "." + sink.Extension(format); strings.HasSuffix(output, ext) && len(ext) > len(longest) {
			longest = ext
		}
	}
	return strings.TrimSuffix(output, longest)
}

// nopCloser wraps an io.Writer with a no-op Close method.
type nopCloser struct{ io.Writer }

// Close implements io.Closer with a no-op.
func (nopCloser) Close() error { return nil }

// openOutput returns a WriteCloser for path, or standard output for "-".
func openOutput(path string) (io.WriteCloser, error) {
	if path == stdoutPath {
		return nopCloser{os.Stdout}, nil
	}
	return os.Create(path)
}
