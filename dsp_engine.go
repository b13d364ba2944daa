// dsp_engine.go - S-DSP 32-clock sample pipeline

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

type dspVoice struct {
	buf       [brrBufSize * 2]int // decoded samples, second half mirrors the first
	bufPos    int                 // where the next four samples are decoded
	interpPos int                 // fractional sample position, 0x1000 = 1.0
	brrAddr   int
	brrOffset int
	regBase   int // index of the voice's registers in DSP.regs
	vbit      int
	konDelay  int
	envMode   envMode
	env       int
	hiddenEnv int // GAIN mode 7 bent-line threshold uses this
	tEnvxOut  byte
}

// DSP emulates the S-DSP clock by clock. Register reads and writes take
// effect at the current clock, so callers advance it with Run before
// touching registers.
type DSP struct {
	regs [DSPRegisterCount]byte
	ram  *[0x10000]byte

	echoHist    [echoHistSize * 2][2]int
	echoHistPos int

	everyOtherSample bool
	kon              int
	noise            int
	counter          int
	echoOffset       int
	echoLength       int
	phase            int
	konCheck         bool

	newKON  int
	endxBuf byte
	envxBuf byte
	outxBuf byte

	// Latched once per sample
	tPMON int
	tNON  int
	tEON  int
	tDir  int
	tKOFF int

	// Read a few clocks ahead of use
	tBRRNextAddr int
	tADSR0       int
	tBRRHeader   int
	tBRRByte     int
	tSRCN        int
	tESA         int
	tEchoEnabled int

	tDirAddr int
	tPitch   int
	tOutput  int
	tLooped  int
	tEchoPtr int
	tMainOut [2]int
	tEchoOut [2]int
	tEchoIn  [2]int

	voices [VoiceCount]dspVoice

	muteMask int

	out      []int16
	outPos   int
	overflow bool
	extra    [extraSize]int16
	extraPos int
}

// NewDSP returns a DSP attached to ram and in its power-on state.
func NewDSP(ram *[0x10000]byte) *DSP {
	d := &DSP{}
	d.Init(ram)
	return d
}

// Init attaches the 64 KiB sample memory and resets the chip.
func (d *DSP) Init(ram *[0x10000]byte) {
	d.ram = ram
	d.MuteVoices(0)
	d.SetOutput(nil)
	d.Reset()
}

// Reset loads the power-on register values.
func (d *DSP) Reset() {
	d.Load(dspInitialRegs[:])
}

// SoftReset emulates the reset line: FLG goes to $E0 and the sample
// clock restarts without touching the other registers.
func (d *DSP) SoftReset() {
	d.regs[DSP_FLG] = 0xE0
	d.softResetCommon()
}

func (d *DSP) softResetCommon() {
	d.noise = 0x4000
	d.echoHistPos = 0
	d.everyOtherSample = true
	d.echoOffset = 0
	d.phase = 0
	d.counter = 0
}

// Load replaces all 128 registers and clears the internal pipeline state.
func (d *DSP) Load(regs []byte) {
	copy(d.regs[:], regs)

	ram, mute := d.ram, d.muteMask
	out, outPos, overflow, extra, extraPos := d.out, d.outPos, d.overflow, d.extra, d.extraPos
	saved := d.regs
	*d = DSP{}
	d.regs = saved
	d.ram, d.muteMask = ram, mute
	d.out, d.outPos, d.overflow, d.extra, d.extraPos = out, outPos, overflow, extra, extraPos

	for i := range d.voices {
		v := &d.voices[i]
		v.brrOffset = 1
		v.vbit = 1 << i
		v.regBase = i * 0x10
	}
	d.newKON = int(d.regs[DSP_KON])
	d.tDir = int(d.regs[DSP_DIR])
	d.tESA = int(d.regs[DSP_ESA])
	d.softResetCommon()
}

// Read returns register addr (0-127).
func (d *DSP) Read(addr int) byte {
	return d.regs[addr&0x7F]
}

// Write stores register addr. ENDX always clears, KON is latched for the
// next key-on check, ENVX/OUTX writes are visible until the next update.
func (d *DSP) Write(addr int, data byte) {
	addr &= 0x7F
	d.regs[addr] = data
	switch addr & 0x0F {
	case V_ENVX:
		d.envxBuf = data
	case V_OUTX:
		d.outxBuf = data
	case 0x0C:
		if addr == DSP_KON {
			d.newKON = int(data)
		}
		if addr == DSP_ENDX {
			d.endxBuf = 0
			d.regs[DSP_ENDX] = 0
		}
	}
}

// MuteVoices silences voices whose bit is set in mask. Muted voices keep
// running so unmuting resumes mid-note.
func (d *DSP) MuteVoices(mask int) {
	d.muteMask = mask
}

// CheckKON reports whether a key-on happened since the last call.
func (d *DSP) CheckKON() bool {
	old := d.konCheck
	d.konCheck = false
	return old
}

// SetOutput directs generated samples into out. A nil or empty slice
// discards them. Samples generated past the end of out land in a small
// overflow area and are not counted.
func (d *DSP) SetOutput(out []int16) error {
	if len(out)&1 != 0 {
		return fmt.Errorf("%w: %d samples", ErrInvalidBufferSize, len(out))
	}
	d.out = out
	d.outPos = 0
	d.overflow = len(out) == 0
	d.extraPos = 0
	return nil
}

// setOverflowOutput has all further samples go to the overflow area,
// which starts out holding pending.
func (d *DSP) setOverflowOutput(pending []int16) {
	d.out = nil
	d.outPos = 0
	d.overflow = true
	d.extraPos = copy(d.extra[:], pending)
}

// SampleCount is the number of samples written to the output since
// the last SetOutput.
func (d *DSP) SampleCount() int {
	return d.outPos
}

// overflowSamples returns samples generated after the output filled up.
func (d *DSP) overflowSamples() []int16 {
	if !d.overflow {
		return nil
	}
	return d.extra[:d.extraPos]
}

func (d *DSP) writeSample(l, r int) {
	if !d.overflow {
		d.out[d.outPos] = int16(l)
		d.out[d.outPos+1] = int16(r)
		d.outPos += 2
		if d.outPos >= len(d.out) {
			d.overflow = true
			d.extraPos = 0
		}
		return
	}
	d.extra[d.extraPos] = int16(l)
	d.extra[d.extraPos+1] = int16(r)
	d.extraPos += 2
	if d.extraPos >= extraSize {
		d.extraPos = 0
	}
}

// Run advances the DSP by clocks. A stereo pair is produced every 32 clocks.
func (d *DSP) Run(clocks int) {
	for ; clocks > 0; clocks-- {
		d.clock(d.phase)
		d.phase = (d.phase + 1) & 31
	}
}

// clock runs one of the 32 steps of a sample period. Each voice's work is
// split into steps V1-V9 spread across the period, staggered by three
// clocks per voice, with echo and global work in the second half.
func (d *DSP) clock(phase int) {
	v := &d.voices
	switch phase {
	case 0:
		d.voiceV5(&v[0])
		d.voiceV2(&v[1])
	case 1:
		d.voiceV6(&v[0])
		d.voiceV3(&v[1])
	case 2:
		d.voiceV7V4V1(0)
	case 3:
		d.voiceV8V5V2(0)
	case 4:
		d.voiceV9V6V3(0)
	case 5:
		d.voiceV7V4V1(1)
	case 6:
		d.voiceV8V5V2(1)
	case 7:
		d.voiceV9V6V3(1)
	case 8:
		d.voiceV7V4V1(2)
	case 9:
		d.voiceV8V5V2(2)
	case 10:
		d.voiceV9V6V3(2)
	case 11:
		d.voiceV7V4V1(3)
	case 12:
		d.voiceV8V5V2(3)
	case 13:
		d.voiceV9V6V3(3)
	case 14:
		d.voiceV7V4V1(4)
	case 15:
		d.voiceV8V5V2(4)
	case 16:
		d.voiceV9V6V3(4)
	case 17:
		d.voiceV1(&v[0])
		d.voiceV7(&v[5])
		d.voiceV4(&v[6])
	case 18:
		d.voiceV8V5V2(5)
	case 19:
		d.voiceV9V6V3(5)
	case 20:
		d.voiceV1(&v[1])
		d.voiceV7(&v[6])
		d.voiceV4(&v[7])
	case 21:
		d.voiceV8(&v[6])
		d.voiceV5(&v[7])
		d.voiceV2(&v[0]) // after V1 of voice 1 set up the directory address
	case 22:
		d.voiceV3a(&v[0])
		d.voiceV9(&v[6])
		d.voiceV6(&v[7])
		d.echo22()
	case 23:
		d.voiceV7(&v[7])
		d.echo23()
	case 24:
		d.voiceV8(&v[7])
		d.echo24()
	case 25:
		d.voiceV3b(&v[0])
		d.voiceV9(&v[7])
		d.echo25()
	case 26:
		d.echo26()
	case 27:
		d.misc27()
		d.echo27()
	case 28:
		d.misc28()
		d.echo28()
	case 29:
		d.misc29()
		d.echo29()
	case 30:
		d.misc30()
		d.voiceV3c(&v[0])
		d.echo30()
	case 31:
		d.voiceV4(&v[0])
		d.voiceV1(&v[2])
	}
}

// Composite steps used by most clocks: voice n, n+1 and n+3/n+2 at once.
func (d *DSP) voiceV7V4V1(n int) {
	d.voiceV7(&d.voices[n])
	d.voiceV1(&d.voices[n+3])
	d.voiceV4(&d.voices[n+1])
}

func (d *DSP) voiceV8V5V2(n int) {
	d.voiceV8(&d.voices[n])
	d.voiceV5(&d.voices[n+1])
	d.voiceV2(&d.voices[n+2])
}

func (d *DSP) voiceV9V6V3(n int) {
	d.voiceV9(&d.voices[n])
	d.voiceV6(&d.voices[n+1])
	d.voiceV3(&d.voices[n+2])
}

func (d *DSP) readCounter(rate int) int {
	return (d.counter + counterOffsets[rate]) % counterRates[rate]
}

func (d *DSP) runCounters() {
	d.counter--
	if d.counter < 0 {
		d.counter = simpleCounterRange - 1
	}
}

func (d *DSP) misc27() {
	d.tPMON = int(d.regs[DSP_PMON]) & 0xFE // voice 0 has no modulation source
}

func (d *DSP) misc28() {
	d.tNON = int(d.regs[DSP_NON])
	d.tEON = int(d.regs[DSP_EON])
	d.tDir = int(d.regs[DSP_DIR])
}

func (d *DSP) misc29() {
	d.everyOtherSample = !d.everyOtherSample
	if d.everyOtherSample {
		d.newKON &^= d.kon // KON clears 63 clocks after it was read
	}
}

func (d *DSP) misc30() {
	if d.everyOtherSample {
		d.kon = d.newKON
		d.tKOFF = int(d.regs[DSP_KOFF])
	}

	d.runCounters()

	if d.readCounter(int(d.regs[DSP_FLG])&FLG_NOISE) == 0 {
		feedback := (d.noise << 13) ^ (d.noise << 14)
		d.noise = (feedback & 0x4000) ^ (d.noise >> 1)
	}
}
