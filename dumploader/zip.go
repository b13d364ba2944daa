// zip.go - ZIP archive support

package dumploader

import (
	"archive/zip"
	"fmt"
	"path/filepath"
)

// walkZIP visits the dumps in a ZIP archive
func walkZIP(path string, visit visitFunc) error {
	r, err := zip.OpenReader(path)
	if err != nil {
		return fmt.Errorf("failed to open zip: %w", err)
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
