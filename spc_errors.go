package snesspc

import "errors"

var (
	// ErrMalformedDump is returned when a dump file has a bad signature or size.
	ErrMalformedDump = errors.New("not a valid SPC dump")
	// ErrTruncatedSnapshot is returned when a snapshot ends early.
	ErrTruncatedSnapshot = errors.New("snapshot truncated")
	// ErrCorruptSnapshot is returned when a snapshot field is out of range.
	ErrCorruptSnapshot = errors.New("snapshot corrupt")
	// ErrUnknownSnapshotVersion is returned for snapshots from another format.
	ErrUnknownSnapshotVersion = errors.New("unknown snapshot version")
	// ErrInvalidBufferSize is returned for odd-length stereo buffers.
	ErrInvalidBufferSize = errors.New("sample buffer size must be even")
	// ErrEmulation is returned when the SPC700 executed STOP or SLEEP.
	ErrEmulation = errors.New("SPC emulation error")
	// ErrInvalidROM is returned when an IPL ROM image is not 64 bytes.
	ErrInvalidROM = errors.New("IPL ROM must be 64 bytes")
)
