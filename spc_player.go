// spc_player.go - SPC file renderer with length, fade and output filter

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
	"fmt"
	"io"
)

const (
	// DefaultSeconds is the play length used when a dump carries none.
	DefaultSeconds = 180
	// DefaultFadeMS is the fade used when a dump carries none.
	DefaultFadeMS = 10000

	// silenceLimitSeconds bounds how much leading silence is trimmed.
	silenceLimitSeconds = 10
	trimChunk           = 512
)

// PlayerConfig controls how a dump is rendered. The zero value plays
// with the length from the tag and no filtering.
type PlayerConfig struct {
	// Seconds before fading starts. 0 takes it from the tag.
	Seconds int
	// FadeMS is the fade-out length. 0 takes it from the tag, negative
	// means no fade.
	FadeMS int

	// Filter enables the output filter with Gain and Bass. A zero Gain
	// means FilterGainUnit.
	Filter bool
	Gain   int
	Bass   int

	MuteMask int
	// Tempo is the timer speed, TempoUnit being normal. 0 is normal.
	Tempo int

	// TrimSilence skips output until the first key-on.
	TrimSilence bool
}

// Player renders a loaded dump to a fixed length with an optional
// fade-out and output filter.
type Player struct {
	spc    *SPC
	filter *Filter
	cfg    PlayerConfig
	file   *SPCFile

	// Lengths in stereo pairs
	pos       int
	fadeStart int
	fadeLen   int
}

// NewPlayer returns a Player with the full boot ROM installed.
func NewPlayer(cfg PlayerConfig) *Player {
	p := &Player{
		spc:    NewSPC(),
		filter: NewFilter(),
		cfg:    cfg,
	}
	p.spc.InitROM(IPLROM[:])

	if cfg.Gain != 0 {
		p.filter.SetGain(cfg.Gain)
	}
	if cfg.Bass != 0 {
		p.filter.SetBass(cfg.Bass)
	}
	p.spc.MuteVoices(cfg.MuteMask)
	if cfg.Tempo != 0 {
		p.spc.SetTempo(cfg.Tempo)
	}
	return p
}

// Load starts playing a dump. The machine is left untouched if data is
// not a valid dump.
func (p *Player) Load(data []byte) error {
	f, err := ParseSPCData(data)
	if err != nil {
		return err
	}
	return p.LoadFile(f)
}

// LoadFile starts playing a parsed dump.
func (p *Player) LoadFile(f *SPCFile) error {
	p.file = f
	p.spc.LoadSPCFile(f)
	p.spc.ClearEcho()
	p.filter.Clear()
	p.pos = 0

	seconds := p.cfg.Seconds
	if seconds == 0 {
		seconds = f.Tag.Seconds
	}
	if seconds == 0 {
		seconds = DefaultSeconds
	}
	fadeMS := p.cfg.FadeMS
	if fadeMS == 0 {
		fadeMS = f.Tag.FadeMS
	}
	if fadeMS == 0 {
		fadeMS = DefaultFadeMS
	}
	fadeMS = max(fadeMS, 0)

	p.fadeStart = seconds * SampleRate
	p.fadeLen = fadeMS * SampleRate / 1000

	if p.cfg.TrimSilence {
		return p.trimSilence()
	}
	return nil
}

// trimSilence runs the dump until a voice is keyed on.
func (p *Player) trimSilence() error {
	p.spc.CheckKON()
	for skipped := 0; skipped < silenceLimitSeconds*SampleRate*2; skipped += trimChunk {
		if err := p.spc.Skip(trimChunk); err != nil {
			return fmt.Errorf("trim silence: %w", err)
		}
		if p.spc.CheckKON() {
			return nil
		}
	}
	return nil
}

// File returns the dump being played.
func (p *Player) File() *SPCFile {
	return p.file
}

// SPC returns the emulated unit.
func (p *Player) SPC() *SPC {
	return p.spc
}

// Length is the total play length in stereo pairs, fade included.
func (p *Player) Length() int {
	return p.fadeStart + p.fadeLen
}

// Done reports whether the whole length has been rendered.
func (p *Player) Done() bool {
	return p.pos >= p.Length()
}

// Render fills out with the next samples and returns how many were
// written. At the end of the track it returns io.EOF; the unused part of
// out is zeroed.
func (p *Player) Render(out []int16) (int, error) {
	if len(out)&1 != 0 {
		return 0, fmt.Errorf("%w: %d samples", ErrInvalidBufferSize, len(out))
	}
	remain := (p.Length() - p.pos) * 2
	if remain <= 0 {
		clear(out)
		return 0, io.EOF
	}

	n := min(len(out), remain)
	if err := p.spc.Play(out[:n]); err != nil {
		return 0, err
	}
	if p.cfg.Filter {
		p.filter.Run(out[:n])
	}
	p.fade(out[:n])
	p.pos += n / 2
	clear(out[n:])

	if p.Done() {
		return n, io.EOF
	}
	return n, nil
}

// fade scales samples linearly to silence over the fade region.
func (p *Player) fade(out []int16) {
	if p.fadeLen == 0 {
		return
	}
	for i := 0; i < len(out); i += 2 {
		pair := p.pos + i/2
		if pair < p.fadeStart {
			continue
		}
		left := max(p.fadeStart+p.fadeLen-pair, 0)
		out[i] = int16(int(out[i]) * left / p.fadeLen)
		out[i+1] = int16(int(out[i+1]) * left / p.fadeLen)
	}
}
