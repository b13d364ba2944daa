package snesspc

import (
	"errors"
	"testing"
)

const testFrameClocks = 16384 // 1024 samples

// Test 1: frames captured through the buffer match Play
func TestSampleBuffer_MatchesPlay(t *testing.T) {
	d := newIdleDump()
	d.addTone(0, 0x1000)
	s := loadTestSPC(t, d)
	twin := loadTestSPC(t, d)

	b, err := NewSampleBuffer(s, 4096)
	if err != nil {
		t.Fatalf("NewSampleBuffer failed: %v", err)
	}
	b.Enable(true)
	if !b.Enabled() {
		t.Fatal("expected capture enabled")
	}

	for frame := range 2 {
		s.EndFrame(testFrameClocks)
		got := b.Flush()
		want := playSamples(t, twin, 1024)
		if len(got) != len(want) {
			t.Fatalf("frame %d: expected %d samples, got %d", frame, len(want), len(got))
		}
		if i := firstDifference(got, want); i >= 0 {
			t.Errorf("frame %d: samples differ at %d", frame, i)
		}
	}
}

func TestSampleBuffer_FlushDisabled(t *testing.T) {
	s := loadTestSPC(t, newIdleDump())
	b, err := NewSampleBuffer(s, 2048)
	if err != nil {
		t.Fatalf("NewSampleBuffer failed: %v", err)
	}
	if b.Enabled() {
		t.Error("expected capture disabled initially")
	}
	s.EndFrame(testFrameClocks)
	if got := b.Flush(); got != nil {
		t.Errorf("expected nil while disabled, got %d samples", len(got))
	}

	b.Enable(true)
	b.Enable(false)
	s.EndFrame(testFrameClocks)
	if got := b.Flush(); got != nil {
		t.Errorf("expected nil after disabling, got %d samples", len(got))
	}
}

func TestSampleBuffer_OddSize(t *testing.T) {
	_, err := NewSampleBuffer(NewSPC(), 1023)
	if !errors.Is(err, ErrInvalidBufferSize) {
		t.Errorf("expected ErrInvalidBufferSize, got %v", err)
	}
}
