// spc_engine.go - SNES audio processing unit: SPC700, timers and S-DSP on one clock

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

import "fmt"

// SPC is a complete audio processing unit. It owns the 64 KiB sample
// memory shared by the SPC700 and the DSP. All times passed in are
// clocks relative to the start of the current frame; EndFrame starts a
// new one.
//
// An SPC is not safe for concurrent use.
type SPC struct {
	ram [0x10000]byte

	// regs holds the last value written to each $F0-$FF register, regsIn
	// what the SPC700 reads back from it.
	regs   [smpRegCount]byte
	regsIn [smpRegCount]byte

	rom        [ROMSize]byte
	hiRAM      [ROMSize]byte // RAM hidden under the ROM while it is mapped
	romEnabled bool

	cpu *CPU_SPC700
	dsp *DSP

	timers [timerCount]spcTimer
	tempo  int

	// dspTime and the timers' nextTime are relative to spcTime
	spcTime     Time
	dspTime     Time
	extraClocks int

	// Output: buf receives the first bufStart samples from extraBuf, the
	// DSP writes the rest.
	buf      []int16
	bufStart int
	extraBuf [extraSize]int16
	extraLen int

	// header keeps the tag area of the last loaded dump for SaveSPC
	header [spcHeaderSize]byte
}

// NewSPC returns a powered-on unit. Only the reset vector of the boot
// ROM is present; call InitROM with IPLROM for software that jumps into
// the ROM's upload routine.
func NewSPC() *SPC {
	s := &SPC{tempo: TempoUnit}
	s.cpu = NewCPU_SPC700(s)
	s.dsp = NewDSP(&s.ram)
	s.rom[0x3E] = 0xFF
	s.rom[0x3F] = 0xC0
	s.initHeader()
	s.Reset()
	return s
}

// InitROM installs a 64-byte boot ROM image.
func (s *SPC) InitROM(rom []byte) error {
	if len(rom) != ROMSize {
		return fmt.Errorf("%w: got %d bytes", ErrInvalidROM, len(rom))
	}
	copy(s.rom[:], rom)
	if s.romEnabled {
		copy(s.ram[ROMAddr:], s.rom[:])
	}
	return nil
}

// Reset is a power-on reset: memory cleared, boot ROM mapped, timer
// counters at $F, DSP registers at their power-on values.
func (s *SPC) Reset() {
	clear(s.ram[:])
	s.ramLoaded()
	s.resetCommon(0x0F)
	s.dsp.Reset()
}

// SoftReset pulses the reset line. Memory is kept.
func (s *SPC) SoftReset() {
	s.resetCommon(0)
	s.dsp.SoftReset()
}

func (s *SPC) resetCommon(timerCounterInit byte) {
	for i := range timerCount {
		s.regsIn[SMP_T0OUT+i] = timerCounterInit
	}

	s.cpu.Reset()
	s.regs[SMP_TEST] = 0x0A
	s.regs[SMP_CONTROL] = 0xB0 // ROM enabled, ports cleared
	for i := range PortCount {
		s.regsIn[SMP_CPUIO0+i] = 0
	}
	s.resetTimeRegs()
}

func (s *SPC) resetTimeRegs() {
	s.cpu.ClearHalt()
	s.spcTime = 0
	s.dspTime = 0
	for i := range s.timers {
		s.timers[i].nextTime = 1
		s.timers[i].divider = 0
	}
	s.regsLoaded()
	s.extraClocks = 0
	s.resetBuf()
}

// ramLoaded takes the SMP registers from the image at $F0.
func (s *SPC) ramLoaded() {
	s.romEnabled = false
	s.loadRegs(s.ram[0xF0 : 0xF0+smpRegCount])
}

func (s *SPC) loadRegs(in []byte) {
	copy(s.regs[:], in)
	s.regsIn = s.regs

	// These always read back as 0
	s.regsIn[SMP_TEST] = 0
	s.regsIn[SMP_CONTROL] = 0
	s.regsIn[SMP_T0TARGET] = 0
	s.regsIn[SMP_T1TARGET] = 0
	s.regsIn[SMP_T2TARGET] = 0
}

func (s *SPC) regsLoaded() {
	s.enableROM(s.regs[SMP_CONTROL]&0x80 != 0)
	s.timersLoaded()
}

// saveRegs writes the live SMP register view into out.
func (s *SPC) saveRegs(out []byte) {
	copy(out, s.regs[:SMP_T0OUT])
	for i := range timerCount {
		out[SMP_T0OUT+i] = byte(s.timers[i].counter)
	}
}

// enableROM maps or unmaps the boot ROM at $FFC0, swapping the RAM
// underneath in or out.
func (s *SPC) enableROM(enable bool) {
	if s.romEnabled == enable {
		return
	}
	s.romEnabled = enable
	if enable {
		copy(s.hiRAM[:], s.ram[ROMAddr:])
		copy(s.ram[ROMAddr:], s.rom[:])
	} else {
		copy(s.ram[ROMAddr:], s.hiRAM[:])
	}
}

// ClearEcho fills the echo buffer with $FF unless echo writes are
// disabled. Some dumps leave garbage there that would otherwise be
// heard as noise.
func (s *SPC) ClearEcho() {
	if s.dsp.Read(DSP_FLG)&FLG_ECHO_OFF != 0 {
		return
	}
	start := 0x100 * int(s.dsp.Read(DSP_ESA))
	end := min(start+0x800*int(s.dsp.Read(DSP_EDL)&0x0F), len(s.ram))
	for i := start; i < end; i++ {
		s.ram[i] = 0xFF
	}
}

// MuteVoices silences the voices set in mask (bit 0 = voice 0).
func (s *SPC) MuteVoices(mask int) {
	s.dsp.MuteVoices(mask)
}

// CheckKON reports whether any voice was keyed on since the last call.
func (s *SPC) CheckKON() bool {
	return s.dsp.CheckKON()
}

// Registers returns the SPC700 register set.
func (s *SPC) Registers() CPURegs {
	return s.cpu.CPURegs
}

// SetRegisters replaces the SPC700 register set.
func (s *SPC) SetRegisters(r CPURegs) {
	s.cpu.CPURegs = r
}

// RAM exposes the 64 KiB sample memory. While the boot ROM is mapped
// the top 64 bytes show the ROM.
func (s *SPC) RAM() []byte {
	return s.ram[:]
}

// DSP returns the attached DSP.
func (s *SPC) DSP() *DSP {
	return s.dsp
}

// Ports

// ReadPort runs the SPC700 to time t and returns what it last wrote to
// port (0-3). t must not go backwards within a frame.
func (s *SPC) ReadPort(t Time, port int) byte {
	s.runUntil(t)
	return s.regs[SMP_CPUIO0+(port&(PortCount-1))]
}

// WritePort runs the SPC700 to time t and then makes v visible on port.
func (s *SPC) WritePort(t Time, port int, v byte) {
	s.runUntil(t)
	s.regsIn[SMP_CPUIO0+(port&(PortCount-1))] = v
}

// Scheduling

// runUntil executes whole instructions up to end. While the CPU runs,
// the DSP and timer clocks are rebased onto end so bus accesses can use
// the CPU's relative time directly.
func (s *SPC) runUntil(end Time) {
	rel := s.spcTime - end
	s.spcTime = end
	s.dspTime += rel
	for i := range s.timers {
		s.timers[i].nextTime += rel
	}

	rel = s.cpu.Run(rel)

	s.spcTime += rel
	s.dspTime -= rel
	for i := range s.timers {
		s.timers[i].nextTime -= rel
	}
}

// runDSP catches the DSP up to exactly time.
func (s *SPC) runDSP(time Time) {
	if count := time - s.dspTime; count > 0 {
		s.dspTime = time
		s.dsp.Run(count)
	}
}

// EndFrame runs everything to end and starts a new frame at 0. The
// SPC700 may stop a few clocks short; the remainder carries over.
func (s *SPC) EndFrame(end Time) {
	if end > s.spcTime {
		s.runUntil(end)
	}
	s.spcTime -= end
	s.extraClocks += end

	for i := range s.timers {
		s.timers[i].run(0)
	}
	s.runDSP(0)
	if s.buf != nil {
		s.saveExtra()
	}
}

// Output

// SetOutput sets where samples of the following frames go. Samples left
// over from the previous frame are placed first. A nil buffer discards
// output.
func (s *SPC) SetOutput(out []int16) error {
	if len(out)&1 != 0 {
		return fmt.Errorf("%w: %d samples", ErrInvalidBufferSize, len(out))
	}
	s.extraClocks &= ClocksPerSample - 1
	if out == nil {
		s.resetBuf()
		return nil
	}

	s.buf = out
	n := copy(out, s.extraBuf[:s.extraLen])
	s.bufStart = n
	if n == len(out) {
		s.dsp.setOverflowOutput(s.extraBuf[n:s.extraLen])
		return nil
	}
	return s.dsp.SetOutput(out[n:])
}

// SampleCount is the number of samples that the time run since
// SetOutput accounts for.
func (s *SPC) SampleCount() int {
	return (s.extraClocks >> 5) * 2
}

// resetBuf starts output over with half the carry-over buffer silent.
func (s *SPC) resetBuf() {
	s.extraBuf = [extraSize]int16{}
	s.extraLen = extraSize / 2
	s.buf = nil
	s.bufStart = 0
	s.dsp.SetOutput(nil)
}

// saveExtra keeps samples generated past SampleCount for the next frame.
func (s *SPC) saveExtra() {
	written := min(s.bufStart+s.dsp.SampleCount(), len(s.buf))
	n := 0
	if start := s.SampleCount(); start < written {
		n = copy(s.extraBuf[:], s.buf[start:written])
	}
	n += copy(s.extraBuf[n:], s.dsp.overflowSamples())
	s.extraLen = n
}

// Play renders exactly len(out) samples (interleaved stereo, so len(out)
// must be even). It returns ErrEmulation if the SPC700 stopped.
func (s *SPC) Play(out []int16) error {
	if len(out)&1 != 0 {
		return fmt.Errorf("%w: %d samples", ErrInvalidBufferSize, len(out))
	}
	if len(out) > 0 {
		s.SetOutput(out)
		s.EndFrame(len(out) * (ClocksPerSample / 2))
	}
	return s.takeError()
}

// Skip runs for count samples without producing output.
func (s *SPC) Skip(count int) error {
	if count&1 != 0 {
		return fmt.Errorf("%w: %d samples", ErrInvalidBufferSize, count)
	}
	if count > 0 {
		s.SetOutput(nil)
		s.EndFrame(count * (ClocksPerSample / 2))
	}
	return s.takeError()
}

func (s *SPC) takeError() error {
	if !s.cpu.Halted() {
		return nil
	}
	s.cpu.ClearHalt()
	return fmt.Errorf("%w: SPC700 stopped at $%04X", ErrEmulation, s.cpu.PC)
}
