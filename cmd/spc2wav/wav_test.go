package main

import (
	"bytes"
	"encoding/binary"
	"testing"
)

func TestWriteWAVHeader(t *testing.T) {
	var buf bytes.Buffer
	if err := writeWAVHeader(&buf, 32000, 128000); err != nil {
		t.Fatalf("writeWAVHeader failed: %v", err)
	}
	h := buf.Bytes()
	if len(h) != wavHeaderSize {
		t.Fatalf("expected %d header bytes, got %d", wavHeaderSize, len(h))
	}
	if string(h[0:4]) != "RIFF" || string(h[8:12]) != "WAVE" || string(h[36:40]) != "data" {
		t.Fatalf("bad chunk ids: %q", h)
	}
	if got := binary.LittleEndian.Uint32(h[4:]); got != 36+128000 {
		t.Errorf("expected RIFF size %d, got %d", 36+128000, got)
	}
	if got := binary.LittleEndian.Uint16(h[22:]); got != 2 {
		t.Errorf("expected 2 channels, got %d", got)
	}
	if got := binary.LittleEndian.Uint32(h[24:]); got != 32000 {
		t.Errorf("expected rate 32000, got %d", got)
	}
	if got := binary.LittleEndian.Uint32(h[28:]); got != 128000 {
		t.Errorf("expected byte rate 128000, got %d", got)
	}
	if got := binary.LittleEndian.Uint32(h[40:]); got != 128000 {
		t.Errorf("expected data size 128000, got %d", got)
	}
}

func TestWriteSamplesLittleEndian(t *testing.T) {
	var buf bytes.Buffer
	if err := writeSamples(&buf, []int16{1, -2}); err != nil {
		t.Fatalf("writeSamples failed: %v", err)
	}
	want := []byte{0x01, 0x00, 0xFE, 0xFF}
	if !bytes.Equal(buf.Bytes(), want) {
		t.Errorf("expected %v, got %v", want, buf.Bytes())
	}
}

func TestFormatLength(t *testing.T) {
	testCases := []struct {
		seconds, fade int
		want          string
	}{
		{0, 0, ""},
		{65, 0, "1:05"},
		{180, 10000, "3:00 + 10000 ms fade"},
	}
	for _, tc := range testCases {
		if got := formatLength(tc.seconds, tc.fade); got != tc.want {
			t.Errorf("formatLength(%d, %d): expected %q, got %q", tc.seconds, tc.fade, tc.want, got)
		}
	}
}
