package sink

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// File stores each value in <Dir>/<name>.txt.
type File struct {
	Dir string
}

// Set writes value through a temp file and rename, so readers never see a
// partial summary.
func (f File) Set(ctx context.Context, name, value string) error {
	if name == "" || strings.ContainsAny(name, `/\`) || name == "." || name == ".." {
		return &UnknownSinkError{Name: name}
	}
	if err := os.MkdirAll(f.Dir, 0700); err != nil {
		return fmt.Errorf("create sink dir: %w", err)
	}

	tmp, err := os.CreateTemp(f.Dir, "."+name+"-*")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.WriteString(value); err != nil {
		tmp.Close()
		return fmt.Errorf("write %s: %w", name, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("write %s: %w", name, err)
	}
	if err := os.Rename(tmp.Name(), f.Path(name)); err != nil {
		return fmt.Errorf("write %s: %w", name, err)
	}
	return nil
}

// Path returns the file backing name.
func (f File) Path(name string) string {
	return filepath.Join(f.Dir, name+".txt")
}
