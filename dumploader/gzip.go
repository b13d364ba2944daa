// gzip.go - gzip and tar.gz support

package dumploader

import (
	"archive/tar"
	"compress/gzip"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// walkGzip visits the dump in a .gz file or the dumps in a tar.gz
func walkGzip(path string, visit visitFunc) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("failed to open gzip: %w", err)
	}
	defer f.Close()

	gr, err := gzip.NewReader(f)
	if err != nil {
		return fmt.Errorf("failed to create gzip reader: %w", err)
	}
	defer gr.Close()

	lowerPath := strings.ToLower(path)
	if strings.HasSuffix(lowerPath, ".tar.gz") || strings.HasSuffix(lowerPath, ".tgz") {
		return walkTar(gr, visit)
	}

	// Plain .gz: the content is the dump, named after the file
	data, err := limitedRead(gr)
	if err != nil {
		return fmt.Errorf("failed to decompress gzip: %w", err)
	}
	name := filepath.Base(path)
	if strings.HasSuffix(strings.ToLower(name), ".gz") {
		name = name[:len(name)-3]
	}
	visit(Dump{Name: name, Data: data})
	return nil
}

func walkTar(r io.Reader, visit visitFunc) error {
	tr := tar.NewReader(r)
	for {
		header, err := tr.Next()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return fmt.Errorf("failed to read tar entry: %w", err)
		}
		if header.Typeflag != tar.TypeReg || !isDumpFile(header.Name) {
			continue
		}

		data, err := limitedRead(tr)
		if err != nil {
			return fmt.Errorf("failed to read %s from tar: %w", header.Name, err)
		}
		if !visit(Dump{Name: filepath.Base(header.Name), Data: data}) {
			return nil
		}
	}
}
