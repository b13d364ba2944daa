package snesspc

import (
	"errors"
	"io"
	"testing"
)

// sliceSource renders from a fixed list of samples.
type sliceSource struct {
	samples []int16
	calls   int
}

func (s *sliceSource) Render(out []int16) (int, error) {
	s.calls++
	n := copy(out, s.samples)
	s.samples = s.samples[n:]
	clear(out[n:])
	if len(s.samples) == 0 {
		return n, io.EOF
	}
	return n, nil
}

type stalledSource struct{}

func (stalledSource) Render(out []int16) (int, error) {
	return 0, nil
}

// Test 1: little-endian encoding and EOF
func TestSampleStream_Encoding(t *testing.T) {
	src := &sliceSource{samples: []int16{0x0102, -2, 0x7FFF, -32768, 5, 6}}
	st := NewSampleStream(src, 4)

	got, err := io.ReadAll(st)
	if err != nil {
		t.Fatalf("ReadAll failed: %v", err)
	}
	want := []byte{
		0x02, 0x01, 0xFE, 0xFF, 0xFF, 0x7F, 0x00, 0x80,
		0x05, 0x00, 0x06, 0x00,
	}
	if string(got) != string(want) {
		t.Errorf("expected % X, got % X", want, got)
	}

	n, err := st.Read(make([]byte, 16))
	if n != 0 || err != io.EOF {
		t.Errorf("expected 0, EOF after draining, got %d, %v", n, err)
	}
}

// Test 2: small reads split frames
func TestSampleStream_SmallReads(t *testing.T) {
	src := &sliceSource{samples: []int16{1, 2, 3, 4}}
	st := NewSampleStream(src, 4)

	var got []byte
	buf := make([]byte, 3)
	for {
		n, err := st.Read(buf)
		got = append(got, buf[:n]...)
		if err == io.EOF {
			break
		}
		if err != nil {
			t.Fatalf("Read failed: %v", err)
		}
	}
	want := []byte{1, 0, 2, 0, 3, 0, 4, 0}
	if string(got) != string(want) {
		t.Errorf("expected % X, got % X", want, got)
	}
}

func TestSampleStream_Pause(t *testing.T) {
	src := &sliceSource{samples: []int16{100, 100, 100, 100}}
	st := NewSampleStream(src, 4)
	st.Pause(true)

	buf := []byte{1, 2, 3, 4, 5, 6}
	n, err := st.Read(buf)
	if n != len(buf) || err != nil {
		t.Fatalf("expected %d, nil while paused, got %d, %v", len(buf), n, err)
	}
	for i, b := range buf {
		if b != 0 {
			t.Fatalf("expected silence, byte %d is %d", i, b)
		}
	}
	if src.calls != 0 {
		t.Errorf("expected source untouched while paused, got %d calls", src.calls)
	}

	st.Pause(false)
	n, _ = st.Read(buf[:2])
	if n != 2 || buf[0] != 100 {
		t.Errorf("expected first sample after resume, got %d bytes % X", n, buf[:2])
	}
}

func TestSampleStream_NoProgress(t *testing.T) {
	st := NewSampleStream(stalledSource{}, 4)
	_, err := st.Read(make([]byte, 8))
	if !errors.Is(err, io.ErrNoProgress) {
		t.Errorf("expected io.ErrNoProgress, got %v", err)
	}
}

func TestSampleStream_FromPlayer(t *testing.T) {
	d := newIdleDump()
	d.addTone(0, 0x1000)
	p := NewPlayer(PlayerConfig{Seconds: 1, FadeMS: -1})
	if err := p.Load(d.bytes()); err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	got, err := io.ReadAll(NewSampleStream(p, 1000))
	if err != nil {
		t.Fatalf("ReadAll failed: %v", err)
	}
	if want := SampleRate * 4; len(got) != want {
		t.Errorf("expected %d bytes, got %d", want, len(got))
	}
}
