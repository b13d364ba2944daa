package snesspc

import (
	"errors"
	"io"
	"testing"
)

func newTestPlayer(t *testing.T, cfg PlayerConfig, d *testDump) *Player {
	t.Helper()
	p := NewPlayer(cfg)
	if err := p.Load(d.bytes()); err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	return p
}

// renderAll renders until EOF and returns every sample written.
func renderAll(t *testing.T, p *Player) []int16 {
	t.Helper()
	var all []int16
	buf := make([]int16, 4000)
	for range 10000 {
		n, err := p.Render(buf)
		all = append(all, buf[:n]...)
		if err == io.EOF {
			return all
		}
		if err != nil {
			t.Fatalf("Render failed: %v", err)
		}
	}
	t.Fatal("player never reached EOF")
	return nil
}

func toneDump() *testDump {
	d := newIdleDump()
	d.addTone(0, 0x1000)
	return d
}

// Test 1: configured length without fade
func TestPlayer_Length(t *testing.T) {
	p := newTestPlayer(t, PlayerConfig{Seconds: 1, FadeMS: -1}, toneDump())
	if p.Length() != SampleRate {
		t.Fatalf("expected %d pairs, got %d", SampleRate, p.Length())
	}

	all := renderAll(t, p)
	if len(all) != SampleRate*2 {
		t.Errorf("expected %d samples, got %d", SampleRate*2, len(all))
	}
	if !p.Done() {
		t.Error("expected Done")
	}

	buf := []int16{1, 2, 3, 4}
	n, err := p.Render(buf)
	if n != 0 || err != io.EOF {
		t.Errorf("expected 0, EOF after the end, got %d, %v", n, err)
	}
	if countNonZero(buf) != 0 {
		t.Error("expected buffer cleared after the end")
	}
}

// Test 2: fade reaches silence
func TestPlayer_Fade(t *testing.T) {
	p := newTestPlayer(t, PlayerConfig{Seconds: 1, FadeMS: 1000}, toneDump())
	if p.Length() != SampleRate*2 {
		t.Fatalf("expected %d pairs, got %d", SampleRate*2, p.Length())
	}

	all := renderAll(t, p)
	peak := func(s []int16) int {
		m := 0
		for _, v := range s {
			m = max(m, abs(int(v)))
		}
		return m
	}
	full := peak(all[SampleRate : SampleRate*2])
	if full == 0 {
		t.Fatal("expected sound before the fade")
	}
	if tail := peak(all[len(all)-2:]); tail > 1 {
		t.Errorf("expected silence at the end of the fade, got %d", tail)
	}
	if mid := peak(all[len(all)-SampleRate/4:]); mid >= full {
		t.Errorf("expected the fade to lower the level, got %d vs %d", mid, full)
	}
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

// Test 3: lengths from the tag and defaults
func TestPlayer_TagLength(t *testing.T) {
	d := toneDump()
	d.tag = buildTextTag()
	copy(d.tag[tagTextSeconds:], "2\x00\x00")
	copy(d.tag[tagTextFade:], "1000\x00")

	p := newTestPlayer(t, PlayerConfig{}, d)
	if want := 2*SampleRate + SampleRate; p.Length() != want {
		t.Errorf("expected %d pairs, got %d", want, p.Length())
	}
	if p.File().Tag.Song != "Opening Theme" {
		t.Errorf("expected tag of the loaded file, got %q", p.File().Tag.Song)
	}
}

func TestPlayer_DefaultLength(t *testing.T) {
	p := newTestPlayer(t, PlayerConfig{}, toneDump())
	want := DefaultSeconds*SampleRate + DefaultFadeMS*SampleRate/1000
	if p.Length() != want {
		t.Errorf("expected %d pairs, got %d", want, p.Length())
	}
}

// Test 4: leading silence is skipped
func TestPlayer_TrimSilence(t *testing.T) {
	// Count down $20*$100 iterations, then key on voice 0 and spin
	program := []byte{
		0xCD, 0x20,       // MOV X,#$20
		0x8D, 0x00,       // MOV Y,#$00
		0xFE, 0xFE,       // DBNZ Y,*
		0x1D,             // DEC X
		0xD0, 0xF9,       // BNE $0202
		0x8F, 0x4C, 0xF2, // MOV $F2,#$4C
		0x8F, 0x01, 0xF3, // MOV $F3,#$01
		0x2F, 0xFE,       // BRA *
	}
	d := newTestDump(program)
	d.addTone(0, 0x1000)
	d.dsp[DSP_KON] = 0

	plain := newTestPlayer(t, PlayerConfig{Seconds: 1, FadeMS: -1}, d)
	buf := make([]int16, 2048)
	if _, err := plain.Render(buf); err != nil {
		t.Fatalf("Render failed: %v", err)
	}
	if n := countNonZero(buf); n != 0 {
		t.Fatalf("expected silence before key-on, got %d non-zero samples", n)
	}

	trimmed := newTestPlayer(t, PlayerConfig{Seconds: 1, FadeMS: -1, TrimSilence: true}, d)
	if _, err := trimmed.Render(buf); err != nil {
		t.Fatalf("Render failed: %v", err)
	}
	if countNonZero(buf) == 0 {
		t.Error("expected sound after trimming silence")
	}
}

func TestPlayer_Filter(t *testing.T) {
	raw := newTestPlayer(t, PlayerConfig{Seconds: 1, FadeMS: -1}, toneDump())
	filtered := newTestPlayer(t, PlayerConfig{Seconds: 1, FadeMS: -1, Filter: true}, toneDump())

	a := make([]int16, 4096)
	b := make([]int16, 4096)
	raw.Render(a)
	filtered.Render(b)
	if firstDifference(a, b) < 0 {
		t.Error("expected filtered output to differ")
	}
}

func TestPlayer_Errors(t *testing.T) {
	p := newTestPlayer(t, PlayerConfig{}, toneDump())
	if _, err := p.Render(make([]int16, 3)); !errors.Is(err, ErrInvalidBufferSize) {
		t.Errorf("expected ErrInvalidBufferSize, got %v", err)
	}
	if err := p.Load([]byte("not a dump")); !errors.Is(err, ErrMalformedDump) {
		t.Errorf("expected ErrMalformedDump, got %v", err)
	}
	if p.File() == nil || p.File().Tag.Song != "" {
		t.Error("expected the previous file to stay loaded")
	}
}
