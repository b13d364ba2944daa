// spc_filter.go - output filter for rendered SPC audio

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

const (
	// FilterGainUnit is unity gain.
	FilterGainUnit = 0x100

	FilterBassNone = 0
	FilterBassNorm = 8 // close to what a SNES sounds like
	FilterBassMax  = 31

	filterGainBits = 8
)

type filterChannel struct {
	p1  int
	pp1 int
	sum int
}

// Filter approximates the analog output stage of the console: a gentle
// low-pass followed by a high-pass that removes DC and some bass.
type Filter struct {
	gain int
	bass int
	ch   [2]filterChannel
}

func NewFilter() *Filter {
	f := &Filter{gain: FilterGainUnit, bass: FilterBassNorm}
	f.Clear()
	return f
}

// Clear resets the filter history to silence.
func (f *Filter) Clear() {
	f.ch = [2]filterChannel{}
}

// SetGain sets the output gain. FilterGainUnit is 1.0.
func (f *Filter) SetGain(gain int) {
	f.gain = gain
}

// SetBass sets how much bass is removed, from FilterBassNone to
// FilterBassMax. Higher values keep more bass.
func (f *Filter) SetBass(bass int) {
	f.bass = max(FilterBassNone, min(bass, FilterBassMax))
}

// Run filters interleaved stereo samples in place.
func (f *Filter) Run(io []int16) error {
	if len(io)&1 != 0 {
		return fmt.Errorf("%w: %d samples", ErrInvalidBufferSize, len(io))
	}
	for c := range f.ch {
		ch := &f.ch[c]
		sum, pp1, p1 := ch.sum, ch.pp1, ch.p1
		for i := c; i < len(io); i += 2 {
			// Two-point FIR low-pass, coefficients 0.25 and 0.75
			in := int(io[i])
			lp := in + p1
			p1 = in * 3

			// Leaky integrator high-pass
			delta := lp - pp1
			pp1 = lp
			s := sum >> (filterGainBits + 2)
			sum += delta*f.gain - sum>>f.bass

			if int(int16(s)) != s {
				s = s>>63 ^ 0x7FFF
			}
			io[i] = int16(s)
		}
		ch.sum, ch.pp1, ch.p1 = sum, pp1, p1
	}
	return nil
}
