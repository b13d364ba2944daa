//go:build headless

package snesspc

import "io"

// OtoPlayer without an audio device. The stream is still pulled so
// rendering runs at the caller's pace.
type OtoPlayer struct {
	started bool
	stream  *SampleStream
	drained bool
}

func NewOtoPlayer(sampleRate int) (*OtoPlayer, error) {
	return &OtoPlayer{}, nil
}

func (op *OtoPlayer) SetupPlayer(stream *SampleStream) {
	op.stream = stream
}

func (op *OtoPlayer) Read(p []byte) (n int, err error) {
	if op.stream == nil {
		return len(p), nil
	}
	n, err = op.stream.Read(p)
	if err == io.EOF {
		op.drained = true
	}
	return n, err
}

func (op *OtoPlayer) Start() {
	op.started = true
}

func (op *OtoPlayer) IsPlaying() bool {
	return op.started && op.stream != nil && !op.drained
}

func (op *OtoPlayer) Stop() {
	op.started = false
}

func (op *OtoPlayer) Close() {
	op.started = false
}

func (op *OtoPlayer) IsStarted() bool {
	return op.started
}
