// spc_buffer.go - double-buffered sample capture

/*
 ██▓ ███▄    █ ▄▄▄█████▓ █    ██  ██▓▄▄▄█████▓ ██▓ ▒█████   ███▄    █    ▓█████  ███▄    █   ▄████  ██▓ ███▄    █ ▓█████
▓██▒ ██ ▀█   █ ▓  ██▒ ▓▒ ██  ▓██▒▓██▒▓  ██▒ ▓▒▓██▒▒██▒  ██▒ ██ ▀█   █    ▓█   ▀  ██ ▀█   █  ██▒ ▀█▒▓██▒ ██ ▀█   █ ▓█   ▀
▒██▒▓██  ▀█ ██▒▒ ▓██░ ▒░▓██  ▒██░▒██▒▒ ▓██░ ▒░▒██▒▒██░  ██▒▓██  ▀█ ██▒   ▒███   ▓██  ▀█ ██▒▒██░▄▄▄░▒██▒▓██  ▀█ ██▒▒███
░██░▓██▒  ▐▌██▒░ ▓██▓ ░ ▓▓█  ░██░░██░░ ▓██▓ ░ ░██░▒██   ██░▓██▒  ▐▌██▒   ▒▓█  ▄ ▓██▒  ▐▌██▒░▓█  ██▓░██░▓██▒  ▐▌██▒▒▓█  ▄
░██░▒██░   ▓██░  ▒██▒ ░ ▒▒█████▓ ░██░  ▒██▒ ░ ░██░░ ████▓▒░▒██░   ▓██░   ░▒████▒▒██░   ▓██░░▒▓███▀▒░██░▒██░   ▓██░░▒████▒
░▓  ░ ▒░   ▒ ▒   ▒ ░░   ░▒▓▒ ▒ ▒ ░▓    ▒ ░░   ░▓  ░ ▒░▒░▒░ ░ ▒░   ▒ ▒    ░░ ▒░ ░░ ▒░   ▒ ▒  ░▒   ▒ ░▓  ░ ▒░   ▒ ▒ ░░ ▒░ ░
 ▒ ░░ ░░   ░ ▒░    ░    ░░▒░ ░ ░  ▒ ░    ░     ▒ ░  ░ ▒ ▒░ ░ ░░   ░ ▒░    ░ ░  ░░ ░░   ░ ▒░  ░   ░  ▒ ░░ ░░   ░ ▒░ ░ ░  ░
 ▒ ░   ░   ░ ░   ░       ░░░ ░ ░  ▒ ░  ░       ▒ ░░ ░ ░ ▒     ░   ░ ░       ░      ░   ░ ░ ░ ░   ░  ▒ ░   ░   ░ ░    ░
 ░           ░             ░      ░            ░      ░ ░           ░       ░  ░         ░       ░  ░           ░    ░  ░

(c) 2024 - 2026 Zayn Otley
https://github.com/IntuitionAmiga/IntuitionEngine
License: GPLv3 or later
*/

package snesspc

import "fmt"

// SampleBuffer captures the output of an SPC that is driven through
// WritePort/ReadPort/EndFrame, as an emulator of the whole console does.
// Samples collect in one buffer while the caller consumes the other.
type SampleBuffer struct {
	spc     *SPC
	bufs    [2][]int16
	active  int
	enabled bool
}

// NewSampleBuffer allocates two buffers of size samples each. size must
// be even and large enough for the longest frame.
func NewSampleBuffer(spc *SPC, size int) (*SampleBuffer, error) {
	if size&1 != 0 {
		return nil, fmt.Errorf("%w: %d samples", ErrInvalidBufferSize, size)
	}
	return &SampleBuffer{
		spc:  spc,
		bufs: [2][]int16{make([]int16, size), make([]int16, size)},
	}, nil
}

// Enable starts or stops capturing. Stopping discards further output.
func (b *SampleBuffer) Enable(on bool) {
	if b.enabled == on {
		return
	}
	b.active = 0
	if on {
		b.spc.SetOutput(b.bufs[0])
	} else {
		b.spc.SetOutput(nil)
	}
	b.enabled = on
}

// Enabled reports whether output is being captured.
func (b *SampleBuffer) Enabled() bool {
	return b.enabled
}

// Flush returns the samples of the frames ended since the last Flush and
// switches capture to the other buffer. The returned slice stays valid
// until the next Flush. Flush returns nil while capture is disabled.
func (b *SampleBuffer) Flush() []int16 {
	if !b.enabled {
		return nil
	}
	filled := b.bufs[b.active]
	count := min(b.spc.SampleCount(), len(filled))

	b.active ^= 1
	b.spc.SetOutput(b.bufs[b.active])
	return filled[:count]
}
