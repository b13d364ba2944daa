// sevenzip.go - 7z archive support

package dumploader

import (
	"fmt"
	"path/filepath"

	"github.com/bodgit/sevenzip"
)

// walk7z visits the dumps in a 7z archive
func walk7z(path string, visit visitFunc) error {
	r, err := sevenzip.OpenReader(path)
	if err != nil {
		return fmt.Errorf("failed to open 7z: %w", err)
	}
	defer r.Close()

	for _, f := range r.File {
		if f.FileInfo().IsDir() || !isDumpFile(f.Name) {
			continue
		}

		rc, err := f.Open()
		if err != nil {
			return fmt.Errorf("failed to open %s in archive: %w", f.Name, err)
		}
		data, err := limitedRead(rc)
		rc.Close()
		if err != nil {
			return fmt.Errorf("failed to read %s: %w", f.Name, err)
		}
		if !visit(Dump{Name: filepath.Base(f.Name), Data: data}) {
			return nil
		}
	}
	return nil
}
