// spc_stream.go - byte stream of rendered samples for audio output

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

import (
	"encoding/binary"
	"io"
	"sync"
)

// SampleSource produces interleaved stereo samples. Player implements it.
type SampleSource interface {
	Render(out []int16) (int, error)
}

// SampleStream turns a SampleSource into little-endian signed 16-bit
// stereo bytes. It is safe to Read from the audio goroutine while other
// goroutines call Pause.
type SampleStream struct {
	mu      sync.Mutex
	src     SampleSource
	frame   []int16
	pending []byte
	err     error
	paused  bool
}

// NewSampleStream renders frameSamples samples at a time (rounded up to
// a whole stereo pair).
func NewSampleStream(src SampleSource, frameSamples int) *SampleStream {
	frameSamples += frameSamples & 1
	return &SampleStream{
		src:   src,
		frame: make([]int16, frameSamples),
	}
}

// Pause makes Read return silence without advancing the source.
func (s *SampleStream) Pause(paused bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.paused = paused
}

// Read implements io.Reader. It returns io.EOF once the source is done
// and every rendered byte has been read.
func (s *SampleStream) Read(p []byte) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.paused {
		clear(p)
		return len(p), nil
	}

	n := 0
	for n < len(p) {
		if len(s.pending) == 0 {
			if s.err != nil {
				break
			}
			s.fill()
			continue
		}
		c := copy(p[n:], s.pending)
		s.pending = s.pending[c:]
		n += c
	}
	if n == 0 && s.err != nil {
		return 0, s.err
	}
	return n, nil
}

// fill renders the next frame into pending.
func (s *SampleStream) fill() {
	count, err := s.src.Render(s.frame)
	if err == nil && count == 0 {
		err = io.ErrNoProgress
	}
	if err != nil {
		s.err = err
	}
	buf := s.pending[:0]
	if cap(buf) < count*2 {
		buf = make([]byte, 0, len(s.frame)*2)
	}
	for _, v := range s.frame[:count] {
		buf = binary.LittleEndian.AppendUint16(buf, uint16(v))
	}
	s.pending = buf
}

var _ io.Reader = (*SampleStream)(nil)
