package snesspc

import (
	"errors"
	"testing"
)

// Test 1: power-on state
func TestSPC_ResetState(t *testing.T) {
	s := NewSPC()

	if pc := s.Registers().PC; pc != ROMAddr {
		t.Errorf("expected PC $%04X, got $%04X", ROMAddr, pc)
	}
	if flg := s.DSP().Read(DSP_FLG); flg != 0xE0 {
		t.Errorf("expected FLG 0xE0, got 0x%02X", flg)
	}
	// Reset vector is in the ROM overlay
	ram := s.RAM()
	if ram[0xFFFE] != 0xFF || ram[0xFFFF] != 0xC0 {
		t.Errorf("expected reset vector $FFC0, got $%02X%02X", ram[0xFFFF], ram[0xFFFE])
	}
	// Timer counters power on at $F
	for i := range timerCount {
		if v := s.Read(0xFD+uint16(i), 0); v != 0x0F {
			t.Errorf("timer %d: expected counter 0x0F, got 0x%02X", i, v)
		}
	}
	if s.Tempo() != TempoUnit {
		t.Errorf("expected tempo 0x%X, got 0x%X", TempoUnit, s.Tempo())
	}
}

// Test 2: soft reset keeps RAM
func TestSPC_SoftReset(t *testing.T) {
	d := newIdleDump()
	d.ram[0x1234] = 0x56
	s := loadTestSPC(t, d)
	playSamples(t, s, 256)

	s.SoftReset()
	if s.RAM()[0x1234] != 0x56 {
		t.Errorf("expected RAM kept, got 0x%02X", s.RAM()[0x1234])
	}
	if s.Registers().PC != ROMAddr {
		t.Errorf("expected PC $%04X, got $%04X", ROMAddr, s.Registers().PC)
	}
	if flg := s.DSP().Read(DSP_FLG); flg != 0xE0 {
		t.Errorf("expected FLG 0xE0, got 0x%02X", flg)
	}
}

// Test 3: boot ROM overlay and the RAM underneath
func TestSPC_ROMHidesRAM(t *testing.T) {
	s := NewSPC()
	if err := s.InitROM(IPLROM[:]); err != nil {
		t.Fatalf("InitROM failed: %v", err)
	}
	if s.RAM()[ROMAddr] != IPLROM[0] {
		t.Fatalf("expected ROM byte 0x%02X, got 0x%02X", IPLROM[0], s.RAM()[ROMAddr])
	}

	s.Write(ROMAddr, 0x12, 0)
	if s.RAM()[ROMAddr] != IPLROM[0] {
		t.Errorf("write through ROM: expected 0x%02X, got 0x%02X", IPLROM[0], s.RAM()[ROMAddr])
	}

	// CONTROL bit 7 clear unmaps the ROM
	s.Write(0xF1, 0x00, 0)
	if s.RAM()[ROMAddr] != 0x12 {
		t.Errorf("expected hidden RAM 0x12, got 0x%02X", s.RAM()[ROMAddr])
	}

	s.Write(0xF1, 0x80, 0)
	if s.RAM()[ROMAddr] != IPLROM[0] {
		t.Errorf("expected ROM mapped again, got 0x%02X", s.RAM()[ROMAddr])
	}
}

func TestSPC_InitROMBadSize(t *testing.T) {
	s := NewSPC()
	err := s.InitROM(make([]byte, 32))
	if !errors.Is(err, ErrInvalidROM) {
		t.Errorf("expected ErrInvalidROM, got %v", err)
	}
}

// Test 4: timer 2 counts every 16 clocks times its target
func TestSPC_Timer2(t *testing.T) {
	s := NewSPC()
	s.Write(0xFC, 4, 0)    // T2TARGET
	s.Write(0xF1, 0x04, 0) // enable timer 2

	if v := s.Read(0xFF, 192); v != 3 {
		t.Errorf("expected counter 3 after 192 clocks, got %d", v)
	}
	if v := s.Read(0xFF, 192); v != 0 {
		t.Errorf("expected counter cleared by read, got %d", v)
	}
	if v := s.Read(0xFF, 256); v != 1 {
		t.Errorf("expected counter 1 after 64 more clocks, got %d", v)
	}
}

func TestSPC_TimerTempo(t *testing.T) {
	s := NewSPC()
	s.SetTempo(TempoUnit * 2)
	s.Write(0xFC, 4, 0)
	s.Write(0xF1, 0x04, 0)

	if v := s.Read(0xFF, 96); v != 3 {
		t.Errorf("expected counter 3 after 96 clocks at double tempo, got %d", v)
	}
}

func TestSPC_TimerDisabled(t *testing.T) {
	s := NewSPC()
	s.Write(0xFA, 1, 0)    // T0TARGET
	s.Write(0xF1, 0x00, 0) // all timers off
	s.Read(0xFD, 0)        // clear the power-on counter

	if v := s.Read(0xFD, 10000); v != 0 {
		t.Errorf("expected disabled timer to stay 0, got %d", v)
	}
}

func TestSPC_TimerTargetBelowDivider(t *testing.T) {
	s := NewSPC()
	s.Write(0xFC, 200, 0)
	s.Write(0xF1, 0x04, 0)

	// 150 ticks in, lower the target under the divider
	s.Write(0xFC, 100, 2400)
	if v := s.Read(0xFF, 2417); v != 0 {
		t.Errorf("expected no output until the divider wraps, got %d", v)
	}
	if v := s.Read(0xFF, 5680); v != 0 {
		t.Errorf("expected counter 0 one tick before the target, got %d", v)
	}
	if v := s.Read(0xFF, 5681); v != 1 {
		t.Errorf("expected counter 1 once the wrapped divider reaches the target, got %d", v)
	}
}

func TestSPC_DSPAccessCatchesUpExactly(t *testing.T) {
	s := NewSPC()
	s.regs[SMP_DSPADDR] = 0x7C // ENDX

	s.Read(0xF3, 110)
	if s.dspTime != 110 || s.dsp.phase != 110&31 {
		t.Fatalf("expected DSP at 110 (phase 14), got %d (phase %d)", s.dspTime, s.dsp.phase)
	}
	s.Read(0xF3, 110)
	if s.dspTime != 110 || s.dsp.phase != 14 {
		t.Errorf("expected a second access at the same time not to advance, got %d", s.dspTime)
	}
	s.Write(0xF3, 0, 140)
	if s.dspTime != 140 || s.dsp.phase != 140&31 {
		t.Errorf("expected DSP at 140 (phase 12), got %d (phase %d)", s.dspTime, s.dsp.phase)
	}

	// The DSP ends level with the SPC700, which may stop a few clocks short
	s.EndFrame(160)
	want := (160 + s.spcTime) & 31
	if s.dspTime != 0 || s.dsp.phase != want {
		t.Errorf("expected frame end to leave the DSP at 0 (phase %d), got %d (phase %d)", want, s.dspTime, s.dsp.phase)
	}
}

// Test 5: a port write is seen by the SPC700 only after its time
func TestSPC_PortOrdering(t *testing.T) {
	// loop: MOV A,$F4; MOV $F4,A; BRA loop
	s := loadTestSPC(t, newTestDump([]byte{0xE4, 0xF4, 0xC4, 0xF4, 0x2F, 0xFA}))

	s.WritePort(100, 0, 0x42)
	if v := s.ReadPort(100, 0); v != 0x00 {
		t.Errorf("expected old echo 0x00 at the write time, got 0x%02X", v)
	}
	if v := s.ReadPort(200, 0); v != 0x42 {
		t.Errorf("expected echo 0x42, got 0x%02X", v)
	}
}

func TestSPC_PortVisibleAcrossFrames(t *testing.T) {
	s := loadTestSPC(t, newTestDump([]byte{0xE4, 0xF4, 0xC4, 0xF4, 0x2F, 0xFA}))

	s.WritePort(900, 0, 0x99)
	s.EndFrame(1000)
	if v := s.ReadPort(100, 0); v != 0x99 {
		t.Errorf("expected echo 0x99 in the next frame, got 0x%02X", v)
	}
}

func TestSPC_PortWrittenBySPC700(t *testing.T) {
	// MOV $F5,#$55; BRA $
	s := loadTestSPC(t, newTestDump([]byte{0x8F, 0x55, 0xF5, 0x2F, 0xFE}))

	if v := s.ReadPort(0, 1); v != 0 {
		t.Errorf("expected 0 before the SPC700 ran, got 0x%02X", v)
	}
	if v := s.ReadPort(100, 1); v != 0x55 {
		t.Errorf("expected 0x55, got 0x%02X", v)
	}
}

func TestSPC_ControlClearsPorts(t *testing.T) {
	s := NewSPC()
	s.WritePort(0, 0, 0x11)
	s.WritePort(0, 2, 0x22)

	s.Write(0xF1, 0x10, 0)
	if v := s.Read(0xF4, 0); v != 0 {
		t.Errorf("expected port 0 cleared, got 0x%02X", v)
	}
	if v := s.Read(0xF6, 0); v != 0x22 {
		t.Errorf("expected port 2 kept, got 0x%02X", v)
	}
}

// Test 6: DSP registers through $F2/$F3
func TestSPC_DSPRegisterAccess(t *testing.T) {
	program := []byte{
		0x8F, 0x2C, 0xF2, // MOV $F2,#$2C
		0x8F, 0x55, 0xF3, // MOV $F3,#$55
		0xE4, 0xF3,       // MOV A,$F3
		0xC4, 0xF4,       // MOV $F4,A
		0x2F, 0xFE,       // BRA $
	}
	s := loadTestSPC(t, newTestDump(program))

	if v := s.ReadPort(1000, 0); v != 0x55 {
		t.Errorf("expected 0x55 read back through $F3, got 0x%02X", v)
	}
	if v := s.DSP().Read(DSP_EVOLL); v != 0x55 {
		t.Errorf("expected EVOLL 0x55, got 0x%02X", v)
	}
	if v := s.Read(0xF2, 0); v != 0x2C {
		t.Errorf("expected DSPADDR 0x2C, got 0x%02X", v)
	}
}

// Test 7: Play argument checks and stop reporting
func TestSPC_PlayOddLength(t *testing.T) {
	s := NewSPC()
	if err := s.Play(make([]int16, 3)); !errors.Is(err, ErrInvalidBufferSize) {
		t.Errorf("expected ErrInvalidBufferSize, got %v", err)
	}
	if err := s.Skip(5); !errors.Is(err, ErrInvalidBufferSize) {
		t.Errorf("expected ErrInvalidBufferSize from Skip, got %v", err)
	}
	if err := s.Play(nil); err != nil {
		t.Errorf("expected empty Play to succeed, got %v", err)
	}
}

func TestSPC_StopReportsError(t *testing.T) {
	s := loadTestSPC(t, newTestDump([]byte{0x00, 0xFF}))

	err := s.Play(make([]int16, 64))
	if !errors.Is(err, ErrEmulation) {
		t.Fatalf("expected ErrEmulation, got %v", err)
	}
	if pc := s.Registers().PC; pc != 0x0201 {
		t.Errorf("expected PC left on STOP at $0201, got $%04X", pc)
	}
}

// Test 8: output starts with the carry-over silence, then the voice
func TestSPC_PlayProducesSound(t *testing.T) {
	d := newIdleDump()
	d.addTone(0, 0x1000)
	s := loadTestSPC(t, d)

	out := playSamples(t, s, 4096)
	for i := range extraSize / 2 {
		if out[i] != 0 {
			t.Fatalf("expected leading silence, sample %d is %d", i, out[i])
		}
	}
	if countNonZero(out) == 0 {
		t.Fatal("expected sound from keyed-on voice")
	}
	if envx := s.DSP().Read(V_ENVX); envx != 0x7F {
		t.Errorf("expected ENVX 0x7F, got 0x%02X", envx)
	}
}

// Test 9: splitting a span into several Play calls gives the same samples
func TestSPC_SplitPlayMatches(t *testing.T) {
	d := newIdleDump()
	d.addTone(0, 0x1000)
	d.addTone(1, 0x0C00)

	whole := playSamples(t, loadTestSPC(t, d), 8192)

	s := loadTestSPC(t, d)
	var split []int16
	for _, n := range []int{1000, 2, 3190, 4000} {
		split = append(split, playSamples(t, s, n)...)
	}

	if i := firstDifference(whole, split); i >= 0 {
		t.Errorf("split output differs at sample %d", i)
	}
}

// Test 10: muting every voice gives silence, voices keep running
func TestSPC_MuteAllSilence(t *testing.T) {
	d := newIdleDump()
	d.addTone(0, 0x1000)
	d.addTone(1, 0x0800)
	s := loadTestSPC(t, d)
	s.MuteVoices(0xFF)

	out := playSamples(t, s, 4096)
	if n := countNonZero(out); n != 0 {
		t.Errorf("expected silence, got %d non-zero samples", n)
	}
	if envx := s.DSP().Read(0x10 + V_ENVX); envx != 0x7F {
		t.Errorf("expected muted voice envelope 0x7F, got 0x%02X", envx)
	}

	s.MuteVoices(0)
	out = playSamples(t, s, 4096)
	if countNonZero(out) == 0 {
		t.Error("expected sound after unmuting")
	}
}

// Test 11: two voices for two seconds
func TestSPC_TwoVoiceScenario(t *testing.T) {
	d := newIdleDump()
	d.addTone(0, 0x1000)
	d.addTone(1, 0x0800)
	s := loadTestSPC(t, d)

	const samples = 2 * SampleRate * 2
	out := playSamples(t, s, samples)
	if len(out) != 128000 {
		t.Fatalf("expected 128000 samples, got %d", len(out))
	}
	// Eight carried-over silent samples, then the square waves start
	golden := []int16{
		0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0,
		0, 0, 0, 0, 0, 0, 0, 0, 28237, 28237, 28231, 28231, 28237, 28237, 28231, 28231,
		28237, 28237, 28231, 28231, 23083, 23083, 5091, 5091, -1, -1, -7, -7, -1, -1, -807, -807,
		-5156, -5156, -14162, -14162, -17987, -17987, -4322, -4322, -1, -1, 5, 5, -1, -1, 5, 5,
	}
	if i := firstDifference(out[:len(golden)], golden); i >= 0 {
		t.Errorf("sample %d: expected %d, got %d", i, golden[i], out[i])
	}
	if countNonZero(out[samples/2:]) == 0 {
		t.Error("expected sound in the second second")
	}
	for v := range 2 {
		if envx := s.DSP().Read(v*0x10 + V_ENVX); envx != 0x7F {
			t.Errorf("voice %d: expected ENVX 0x7F, got 0x%02X", v, envx)
		}
	}
	if pc := s.Registers().PC; pc != testProgramAddr {
		t.Errorf("expected PC in idle loop, got $%04X", pc)
	}
}

// Test 12: ClearEcho
func TestSPC_ClearEcho(t *testing.T) {
	d := newIdleDump()
	d.dsp[DSP_ESA] = 0x40
	d.dsp[DSP_EDL] = 0x02
	d.dsp[DSP_FLG] = 0x00

	s := loadTestSPC(t, d)
	s.ClearEcho()
	for _, addr := range []int{0x4000, 0x47FF, 0x4FFF} {
		if s.RAM()[addr] != 0xFF {
			t.Errorf("expected $FF at $%04X, got 0x%02X", addr, s.RAM()[addr])
		}
	}
	if s.RAM()[0x5000] != 0 {
		t.Errorf("expected $5000 untouched, got 0x%02X", s.RAM()[0x5000])
	}

	d.dsp[DSP_FLG] = FLG_ECHO_OFF
	s = loadTestSPC(t, d)
	s.ClearEcho()
	if s.RAM()[0x4000] != 0 {
		t.Errorf("expected echo buffer untouched with writes off, got 0x%02X", s.RAM()[0x4000])
	}
}

// Test 13: key-on observation
func TestSPC_CheckKON(t *testing.T) {
	d := newIdleDump()
	d.addTone(0, 0x1000)
	s := loadTestSPC(t, d)

	playSamples(t, s, 64)
	if !s.CheckKON() {
		t.Error("expected key-on to be observed")
	}
	if s.CheckKON() {
		t.Error("expected CheckKON to clear the flag")
	}
}
