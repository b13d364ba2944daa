// loader.go - SPC dump loading from plain files and archives

// Package dumploader reads SPC dumps from plain files and from the
// archives they are usually distributed in: ZIP, 7z, gzip, tar.gz and
// RAR (.rsn sets).
package dumploader

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// Magic bytes for format detection
var (
	magicZIP    = []byte{0x50, 0x4B, 0x03, 0x04}
	magicZIPEnd = []byte{0x50, 0x4B, 0x05, 0x06} // empty zip
	magic7z     = []byte{0x37, 0x7A, 0xBC, 0xAF, 0x27, 0x1C}
	magicGzip   = []byte{0x1F, 0x8B}
	magicRAR    = []byte{0x52, 0x61, 0x72, 0x21} // "Rar!"
)

// Extensions are the file names picked out of archives.
var Extensions = []string{".spc", ".sp0", ".sp1", ".sp2", ".sp3"}

// A dump with extended tags is a little over 64 KiB; anything far
// larger is not a dump.
const maxDumpSize = 1024 * 1024

// ErrNoDumpFile is returned when no dump is found in an archive
var ErrNoDumpFile = errors.New("no SPC file found in archive")

// ErrUnsupportedFormat is returned for unrecognized file formats
var ErrUnsupportedFormat = errors.New("unsupported file format")

// ErrFileTooLarge is returned when extracted content exceeds size limit
var ErrFileTooLarge = errors.New("file exceeds maximum size limit")

// Dump is one file read from disk or from an archive.
type Dump struct {
	Name string // base name, for display
	Data []byte
}

type formatType int

const (
	formatUnknown formatType = iota
	formatRaw
	formatZIP
	format7z
	formatGzip
	formatRAR
)

// visitFunc receives each dump found. Returning false stops the walk.
type visitFunc func(d Dump) bool

// Load returns the first dump in path.
func Load(path string) (Dump, error) {
	var first Dump
	found := false
	err := walk(path, func(d Dump) bool {
		first, found = d, true
		return false
	})
	if err != nil {
		return Dump{}, err
	}
	if !found {
		return Dump{}, ErrNoDumpFile
	}
	return first, nil
}

// LoadAll returns every dump in path in archive order. A plain file
// yields a single dump.
func LoadAll(path string) ([]Dump, error) {
	var dumps []Dump
	err := walk(path, func(d Dump) bool {
		dumps = append(dumps, d)
		return true
	})
	if err != nil {
		return nil, err
	}
	if len(dumps) == 0 {
		return nil, ErrNoDumpFile
	}
	return dumps, nil
}

func walk(path string, visit visitFunc) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("failed to open file: %w", err)
	}
	defer f.Close()

	// Read header for magic byte detection
	header := make([]byte, 16)
	n, err := io.ReadFull(f, header)
	if err != nil && err != io.EOF && err != io.ErrUnexpectedEOF {
		return fmt.Errorf("failed to read file header: %w", err)
	}
	header = header[:n]

	switch detectFormat(header, path) {
	case formatRaw:
		if _, err := f.Seek(0, io.SeekStart); err != nil {
			return fmt.Errorf("failed to seek file: %w", err)
		}
		data, err := limitedRead(f)
		if err != nil {
			return fmt.Errorf("failed to read dump: %w", err)
		}
		visit(Dump{Name: filepath.Base(path), Data: data})
		return nil

	case formatZIP:
		return walkZIP(path, visit)

	case format7z:
		return walk7z(path, visit)

	case formatGzip:
		return walkGzip(path, visit)

	case formatRAR:
		return walkRAR(path, visit)

	default:
		return fmt.Errorf("%w: %s", ErrUnsupportedFormat, path)
	}
}

// detectFormat determines the file format based on magic bytes and extension.
func detectFormat(header []byte, path string) formatType {
	ext := strings.ToLower(filepath.Ext(path))

	// Check magic bytes first (more reliable)
	if len(header) >= 4 {
		if bytes.HasPrefix(header, magicZIP) || bytes.HasPrefix(header, magicZIPEnd) {
			return formatZIP
		}
		if bytes.HasPrefix(header, magicRAR) {
			return formatRAR
		}
	}
	if len(header) >= 6 && bytes.HasPrefix(header, magic7z) {
		return format7z
	}
	if len(header) >= 2 && bytes.HasPrefix(header, magicGzip) {
		return formatGzip
	}

	// Fall back to extension for archive formats
	switch ext {
	case ".zip":
		return formatZIP
	case ".7z":
		return format7z
	case ".gz", ".tgz":
		return formatGzip
	case ".rar", ".rsn":
		return formatRAR
	}

	if isDumpFile(path) {
		return formatRaw
	}
	return formatUnknown
}

// isDumpFile checks if a filename has a dump extension (case-insensitive)
func isDumpFile(name string) bool {
	lower := strings.ToLower(name)
	for _, ext := range Extensions {
		if strings.HasSuffix(lower, ext) {
			return true
		}
	}
	return false
}

// limitedRead reads from r up to maxDumpSize bytes, returning an error if exceeded
func limitedRead(r io.Reader) ([]byte, error) {
	lr := io.LimitReader(r, maxDumpSize+1)
	data, err := io.ReadAll(lr)
	if err != nil {
		return nil, err
	}
	if len(data) > maxDumpSize {
		return nil, ErrFileTooLarge
	}
	return data, nil
}
