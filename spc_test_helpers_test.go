package snesspc

import (
	"testing"
)

// testDump builds SPC dump files for tests.
type testDump struct {
	regs CPURegs
	ram  [0x10000]byte
	dsp  [DSPRegisterCount]byte
	tag  []byte // copied to $2E and flagged as present when non-nil
}

// newTestDump places program at $0200 with echo writes disabled and
// everything else silent.
func newTestDump(program []byte) *testDump {
	d := &testDump{regs: CPURegs{PC: testProgramAddr, SP: 0xEF}}
	copy(d.ram[testProgramAddr:], program)
	d.dsp[DSP_FLG] = FLG_ECHO_OFF
	return d
}

// newIdleDump is a dump whose program spins on BRA $0200.
func newIdleDump() *testDump {
	return newTestDump([]byte{0x2F, 0xFE})
}

const (
	testDirPage    = 0x03
	testSampleBase = 0x0400
)

// addTone keys on voice with a looping square wave at the given pitch,
// direct GAIN at full level.
func (d *testDump) addTone(voice int, pitch int) {
	srcn := voice
	entry := testDirPage*0x100 + srcn*4
	start := testSampleBase + srcn*0x10
	d.ram[entry] = byte(start)
	d.ram[entry+1] = byte(start >> 8)
	d.ram[entry+2] = byte(start)
	d.ram[entry+3] = byte(start >> 8)

	// Range 12, filter 0, loop + end
	block := []byte{0xC3, 0x77, 0x77, 0x77, 0x77, 0x99, 0x99, 0x99, 0x99}
	copy(d.ram[start:], block)

	base := voice * 0x10
	d.dsp[base+V_VOLL] = 0x40
	d.dsp[base+V_VOLR] = 0x40
	d.dsp[base+V_PITCHL] = byte(pitch)
	d.dsp[base+V_PITCHH] = byte(pitch >> 8)
	d.dsp[base+V_SRCN] = byte(srcn)
	d.dsp[base+V_ADSR0] = 0x00
	d.dsp[base+V_GAIN] = 0x7F

	d.dsp[DSP_MVOLL] = 0x7F
	d.dsp[DSP_MVOLR] = 0x7F
	d.dsp[DSP_DIR] = testDirPage
	d.dsp[DSP_KON] |= 1 << voice
}

func (d *testDump) bytes() []byte {
	out := make([]byte, SPCFileSize)
	copy(out, spcSignature)
	out[spcOffHasID666] = spcNoID666
	if d.tag != nil {
		out[spcOffHasID666] = spcHasID666
		copy(out[spcOffTag:spcHeaderSize], d.tag)
	}
	out[spcOffVersion] = spcVersion

	out[spcOffPC] = byte(d.regs.PC)
	out[spcOffPC+1] = byte(d.regs.PC >> 8)
	out[spcOffA] = d.regs.A
	out[spcOffX] = d.regs.X
	out[spcOffY] = d.regs.Y
	out[spcOffPSW] = d.regs.PSW
	out[spcOffSP] = d.regs.SP

	copy(out[spcOffRAM:], d.ram[:])
	copy(out[spcOffDSP:], d.dsp[:])
	copy(out[spcOffIPLROM:], IPLROM[:])
	return out
}

// loadTestSPC returns a fresh SPC running d.
func loadTestSPC(t *testing.T, d *testDump) *SPC {
	t.Helper()
	s := NewSPC()
	if err := s.LoadSPC(d.bytes()); err != nil {
		t.Fatalf("LoadSPC failed: %v", err)
	}
	return s
}

func playSamples(t *testing.T, s *SPC, count int) []int16 {
	t.Helper()
	out := make([]int16, count)
	if err := s.Play(out); err != nil {
		t.Fatalf("Play failed: %v", err)
	}
	return out
}

func countNonZero(samples []int16) int {
	n := 0
	for _, v := range samples {
		if v != 0 {
			n++
		}
	}
	return n
}

func firstDifference(a, b []int16) int {
	for i := range min(len(a), len(b)) {
		if a[i] != b[i] {
			return i
		}
	}
	if len(a) != len(b) {
		return min(len(a), len(b))
	}
	return -1
}
