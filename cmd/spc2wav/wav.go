package main

import (
	"encoding/binary"
	"fmt"
	"io"
)

const (
	wavChannels      = 2
	wavBitsPerSample = 16
	wavHeaderSize    = 44
)

// writeWAVHeader writes a canonical PCM header for dataBytes of
// 16-bit stereo samples.
func writeWAVHeader(w io.Writer, sampleRate, dataBytes int) error {
	blockAlign := wavChannels * wavBitsPerSample / 8

	h := make([]byte, wavHeaderSize)
	copy(h[0:], "RIFF")
	binary.LittleEndian.PutUint32(h[4:], uint32(wavHeaderSize-8+dataBytes))
	copy(h[8:], "WAVE")
	copy(h[12:], "fmt ")
	binary.LittleEndian.PutUint32(h[16:], 16) // fmt chunk size
	binary.LittleEndian.PutUint16(h[20:], 1)  // PCM
	binary.LittleEndian.PutUint16(h[22:], wavChannels)
	binary.LittleEndian.PutUint32(h[24:], uint32(sampleRate))
	binary.LittleEndian.PutUint32(h[28:], uint32(sampleRate*blockAlign))
	binary.LittleEndian.PutUint16(h[32:], uint16(blockAlign))
	binary.LittleEndian.PutUint16(h[34:], wavBitsPerSample)
	copy(h[36:], "data")
	binary.LittleEndian.PutUint32(h[40:], uint32(dataBytes))

	if _, err := w.Write(h); err != nil {
		return fmt.Errorf("write WAV header: %w", err)
	}
	return nil
}

func writeSamples(w io.Writer, samples []int16) error {
	if len(samples) == 0 {
		return nil
	}
	if err := binary.Write(w, binary.LittleEndian, samples); err != nil {
		return fmt.Errorf("write samples: %w", err)
	}
	return nil
}
