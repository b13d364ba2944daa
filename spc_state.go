// spc_state.go - SPC state snapshots

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
	"fmt"
	"io"
	"iter"
	"math"
)

// Snapshot layout: magic, version byte, then fixed-size sections in the
// order of stateSections. All multi-byte values are little-endian and
// clock values are stored as signed 32-bit.
const (
	stateMagic   = "SPCSNAP"
	stateVersion = 1
)

// stateCopier moves one field into or out of a snapshot. The same
// section functions drive both directions so the layouts cannot drift.
type stateCopier interface {
	copyBytes(p []byte)
	copyByte(p *byte)
	copyUint16(p *uint16)
	copyInt(p *int)
	copyInt16(p *int16)
	copyBool(p *bool)
}

type stateEncoder struct {
	buf []byte
}

func (e *stateEncoder) copyBytes(p []byte) { e.buf = append(e.buf, p...) }
func (e *stateEncoder) copyByte(p *byte)   { e.buf = append(e.buf, *p) }
func (e *stateEncoder) copyUint16(p *uint16) {
	e.buf = binary.LittleEndian.AppendUint16(e.buf, *p)
}
func (e *stateEncoder) copyInt(p *int) {
	e.buf = binary.LittleEndian.AppendUint32(e.buf, uint32(int32(*p)))
}
func (e *stateEncoder) copyInt16(p *int16) {
	e.buf = binary.LittleEndian.AppendUint16(e.buf, uint16(*p))
}
func (e *stateEncoder) copyBool(p *bool) {
	e.buf = append(e.buf, boolByte(*p))
}

type stateDecoder struct {
	data  []byte
	short bool
}

func (d *stateDecoder) next(n int) []byte {
	if len(d.data) < n {
		d.short = true
		d.data = nil
		return nil
	}
	b := d.data[:n]
	d.data = d.data[n:]
	return b
}

func (d *stateDecoder) copyBytes(p []byte) {
	if b := d.next(len(p)); b != nil {
		copy(p, b)
	}
}

func (d *stateDecoder) copyByte(p *byte) {
	if b := d.next(1); b != nil {
		*p = b[0]
	}
}

func (d *stateDecoder) copyUint16(p *uint16) {
	if b := d.next(2); b != nil {
		*p = binary.LittleEndian.Uint16(b)
	}
}

func (d *stateDecoder) copyInt(p *int) {
	if b := d.next(4); b != nil {
		*p = int(int32(binary.LittleEndian.Uint32(b)))
	}
}

func (d *stateDecoder) copyInt16(p *int16) {
	if b := d.next(2); b != nil {
		*p = int16(binary.LittleEndian.Uint16(b))
	}
}

func (d *stateDecoder) copyBool(p *bool) {
	if b := d.next(1); b != nil {
		*p = b[0] != 0
	}
}

func boolByte(b bool) uint8 {
	if b {
		return 1
	}
	return 0
}

// stateTarget is the set of objects a snapshot covers. Loading works on
// copies so a bad snapshot leaves the machine untouched.
type stateTarget struct {
	spc *SPC
	cpu *CPU_SPC700
	dsp *DSP
}

var stateSections = []func(t stateTarget, c stateCopier){
	stateTarget.copyCPU,
	stateTarget.copySMP,
	stateTarget.copyRAM,
	stateTarget.copyDSP,
	stateTarget.copyVoices,
	stateTarget.copyHeader,
}

func (t stateTarget) copyCPU(c stateCopier) {
	cpu := t.cpu
	c.copyUint16(&cpu.PC)
	c.copyByte(&cpu.A)
	c.copyByte(&cpu.X)
	c.copyByte(&cpu.Y)
	c.copyByte(&cpu.SP)
	c.copyByte(&cpu.PSW)
	c.copyBool(&cpu.halted)
}

func (t stateTarget) copySMP(c stateCopier) {
	s := t.spc
	c.copyBytes(s.regs[:])
	c.copyBytes(s.regsIn[:])
	c.copyBytes(s.rom[:])
	c.copyBytes(s.hiRAM[:])
	c.copyBool(&s.romEnabled)
	c.copyInt(&s.tempo)
	c.copyInt(&s.spcTime)
	c.copyInt(&s.dspTime)
	c.copyInt(&s.extraClocks)
	for i := range s.timers {
		tm := &s.timers[i]
		c.copyInt(&tm.nextTime)
		c.copyInt(&tm.prescaler)
		c.copyInt(&tm.period)
		c.copyInt(&tm.divider)
		c.copyBool(&tm.enabled)
		c.copyInt(&tm.counter)
	}
	for i := range s.extraBuf {
		c.copyInt16(&s.extraBuf[i])
	}
	c.copyInt(&s.extraLen)
}

func (t stateTarget) copyRAM(c stateCopier) {
	c.copyBytes(t.spc.ram[:])
}

func (t stateTarget) copyDSP(c stateCopier) {
	d := t.dsp
	c.copyBytes(d.regs[:])
	for i := range d.echoHist {
		c.copyInt(&d.echoHist[i][0])
		c.copyInt(&d.echoHist[i][1])
	}
	c.copyInt(&d.echoHistPos)
	c.copyBool(&d.everyOtherSample)
	c.copyInt(&d.kon)
	c.copyInt(&d.noise)
	c.copyInt(&d.counter)
	c.copyInt(&d.echoOffset)
	c.copyInt(&d.echoLength)
	c.copyInt(&d.phase)
	c.copyBool(&d.konCheck)
	c.copyInt(&d.newKON)
	c.copyByte(&d.endxBuf)
	c.copyByte(&d.envxBuf)
	c.copyByte(&d.outxBuf)

	for _, p := range []*int{
		&d.tPMON, &d.tNON, &d.tEON, &d.tDir, &d.tKOFF,
		&d.tBRRNextAddr, &d.tADSR0, &d.tBRRHeader, &d.tBRRByte, &d.tSRCN,
		&d.tESA, &d.tEchoEnabled, &d.tDirAddr, &d.tPitch, &d.tOutput,
		&d.tLooped, &d.tEchoPtr,
		&d.tMainOut[0], &d.tMainOut[1],
		&d.tEchoOut[0], &d.tEchoOut[1],
		&d.tEchoIn[0], &d.tEchoIn[1],
	} {
		c.copyInt(p)
	}
}

func (t stateTarget) copyVoices(c stateCopier) {
	for i := range t.dsp.voices {
		v := &t.dsp.voices[i]
		for j := range v.buf {
			c.copyInt(&v.buf[j])
		}
		c.copyInt(&v.bufPos)
		c.copyInt(&v.interpPos)
		c.copyInt(&v.brrAddr)
		c.copyInt(&v.brrOffset)
		c.copyInt(&v.konDelay)
		mode := int(v.envMode)
		c.copyInt(&mode)
		v.envMode = envMode(mode)
		c.copyInt(&v.env)
		c.copyInt(&v.hiddenEnv)
		c.copyByte(&v.tEnvxOut)
	}
}

func (t stateTarget) copyHeader(c stateCopier) {
	c.copyBytes(t.spc.header[:])
}

type stateRange struct {
	name   string
	value  int
	lo, hi int
}

// validate rejects decoded fields that would index outside the
// emulator's buffers or divide by zero once the machine resumes.
func (t stateTarget) validate() error {
	s, d := t.spc, t.dsp
	ranges := []stateRange{
		{"extra sample count", s.extraLen, 0, extraSize},
		{"extra clocks", s.extraClocks, 0, math.MaxInt32},
		{"echo history position", d.echoHistPos, 0, echoHistSize - 1},
		{"DSP phase", d.phase, 0, 31},
		{"DSP counter", d.counter, 0, simpleCounterRange - 1},
		{"echo length", d.echoLength, 0, 0x0F * 0x800},
		{"echo offset", d.echoOffset, 0, 0x0F * 0x800},
		{"echo pointer", d.tEchoPtr, 0, 0xFFFC},
		{"next BRR address", d.tBRRNextAddr, 0, 0xFFFF},
	}
	for i := range s.timers {
		tm := &s.timers[i]
		ranges = append(ranges,
			stateRange{fmt.Sprintf("timer %d prescaler", i), tm.prescaler, 1, math.MaxInt32},
			stateRange{fmt.Sprintf("timer %d period", i), tm.period, 1, 256},
			stateRange{fmt.Sprintf("timer %d divider", i), tm.divider, 0, 0xFF},
			stateRange{fmt.Sprintf("timer %d counter", i), tm.counter, 0, 0x0F},
		)
	}
	for i := range d.voices {
		v := &d.voices[i]
		ranges = append(ranges,
			stateRange{fmt.Sprintf("voice %d buffer position", i), v.bufPos, 0, brrBufSize - 4},
			stateRange{fmt.Sprintf("voice %d interpolation position", i), v.interpPos, 0, 0x7FFF},
			stateRange{fmt.Sprintf("voice %d BRR address", i), v.brrAddr, 0, 0xFFFF},
			stateRange{fmt.Sprintf("voice %d BRR offset", i), v.brrOffset, 1, brrBlockSize - 1},
			stateRange{fmt.Sprintf("voice %d key-on delay", i), v.konDelay, 0, 5},
			stateRange{fmt.Sprintf("voice %d envelope mode", i), int(v.envMode), int(envRelease), int(envSustain)},
			stateRange{fmt.Sprintf("voice %d envelope", i), v.env, 0, 0x7FF},
		)
	}

	for _, r := range ranges {
		if r.value < r.lo || r.value > r.hi {
			return fmt.Errorf("%w: %s %d outside %d..%d", ErrCorruptSnapshot, r.name, r.value, r.lo, r.hi)
		}
	}
	return nil
}

// StateChunks yields the snapshot one section at a time.
func (s *SPC) StateChunks() iter.Seq[[]byte] {
	return func(yield func([]byte) bool) {
		if !yield(append([]byte(stateMagic), stateVersion)) {
			return
		}
		t := stateTarget{spc: s, cpu: s.cpu, dsp: s.dsp}
		for _, section := range stateSections {
			e := &stateEncoder{}
			section(t, e)
			if !yield(e.buf) {
				return
			}
		}
	}
}

// SaveState returns a complete snapshot of the machine.
func (s *SPC) SaveState() []byte {
	var out []byte
	for chunk := range s.StateChunks() {
		out = append(out, chunk...)
	}
	return out
}

// WriteState streams a snapshot to w.
func (s *SPC) WriteState(w io.Writer) error {
	for chunk := range s.StateChunks() {
		if _, err := w.Write(chunk); err != nil {
			return fmt.Errorf("write state: %w", err)
		}
	}
	return nil
}

// LoadState restores a snapshot made by SaveState. On error nothing is
// changed. Voice muting and the output buffer are not part of a
// snapshot; output restarts with the carried-over samples.
func (s *SPC) LoadState(data []byte) error {
	headerLen := len(stateMagic) + 1
	if len(data) < headerLen {
		return fmt.Errorf("%w: %d bytes", ErrTruncatedSnapshot, len(data))
	}
	if string(data[:len(stateMagic)]) != stateMagic {
		return fmt.Errorf("%w: bad magic", ErrUnknownSnapshotVersion)
	}
	if v := data[len(stateMagic)]; v != stateVersion {
		return fmt.Errorf("%w: %d", ErrUnknownSnapshotVersion, v)
	}

	spc := *s
	cpu := *s.cpu
	dsp := *s.dsp
	t := stateTarget{spc: &spc, cpu: &cpu, dsp: &dsp}
	d := &stateDecoder{data: data[headerLen:]}
	for _, section := range stateSections {
		section(t, d)
	}
	if d.short {
		return fmt.Errorf("%w: %d bytes", ErrTruncatedSnapshot, len(data))
	}
	if err := t.validate(); err != nil {
		return err
	}

	spc.cpu, spc.dsp = s.cpu, s.dsp
	*s = spc
	*s.cpu = cpu
	*s.dsp = dsp
	s.buf = nil
	s.bufStart = 0
	s.dsp.SetOutput(nil)
	return nil
}
