// rar.go - RAR and RSN archive support

package dumploader

import (
	"fmt"
	"io"
	"path/filepath"

	"github.com/nwaples/rardecode/v2"
)

// walkRAR visits the dumps in a RAR archive. RSN files are RAR archives
// of a game's whole soundtrack.
func walkRAR(path string, visit visitFunc) error {
	r, err := rardecode.OpenReader(path)
	if err != nil {
		return fmt.Errorf("failed to open rar: %w", err)
	}
	defer r.Close()

	for {
		header, err := r.Next()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return fmt.Errorf("failed to read rar entry: %w", err)
		}
		if header.IsDir || !isDumpFile(header.Name) {
			continue
		}

		data, err := limitedRead(r)
		if err != nil {
			return fmt.Errorf("failed to read %s: %w", header.Name, err)
		}
		if !visit(Dump{Name: filepath.Base(header.Name), Data: data}) {
			return nil
		}
	}
}
