// spc_constants.go - SNES audio processing unit constants

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

// Time is a clock count relative to the start of the current frame.
// One clock is one tick of the 1.024 MHz SPC700 input clock.
type Time = int

const (
	SampleRate      = 32000
	ClockRate       = 1024000
	ClocksPerSample = 32
	PortCount       = 4
	VoiceCount      = 8
	TempoUnit       = 0x100
	ROMSize         = 0x40
	ROMAddr         = 0xFFC0

	// SPCFileSize is the size of a dump file without extended tags.
	SPCFileSize = 0x10200
	// SPCMinFileSize covers the header, RAM and DSP registers.
	SPCMinFileSize = 0x10180

	DSPRegisterCount = 128
)

// SMP register offsets from $F0.
const (
	SMP_TEST     = 0x0
	SMP_CONTROL  = 0x1
	SMP_DSPADDR  = 0x2
	SMP_DSPDATA  = 0x3
	SMP_CPUIO0   = 0x4
	SMP_CPUIO1   = 0x5
	SMP_CPUIO2   = 0x6
	SMP_CPUIO3   = 0x7
	SMP_F8       = 0x8
	SMP_F9       = 0x9
	SMP_T0TARGET = 0xA
	SMP_T1TARGET = 0xB
	SMP_T2TARGET = 0xC
	SMP_T0OUT    = 0xD
	SMP_T1OUT    = 0xE
	SMP_T2OUT    = 0xF

	smpRegCount = 0x10
	timerCount  = 3
)

const (
	// extraSize is the DSP overflow area in samples.
	extraSize = 16
)

// IPLROM is the 64-byte boot program mapped at $FFC0.
var IPLROM = [ROMSize]byte{
	0xCD, 0xEF, 0xBD, 0xE8, 0x00, 0xC6, 0x1D, 0xD0,
	0xFC, 0x8F, 0xAA, 0xF4, 0x8F, 0xBB, 0xF5, 0x78,
	0xCC, 0xF4, 0xD0, 0xFB, 0x2F, 0x19, 0xEB, 0xF4,
	0xD0, 0xFC, 0x7E, 0xF4, 0xD0, 0x0B, 0xE4, 0xF5,
	0xCB, 0xF4, 0xD7, 0x00, 0xFC, 0xD0, 0xF3, 0xAB,
	0x01, 0x10, 0xEF, 0x7E, 0xF4, 0x10, 0xEB, 0xBA,
	0xF6, 0xDA, 0x00, 0xBA, 0xF4, 0xC4, 0xF4, 0xDD,
	0x5D, 0xD0, 0xDB, 0x1F, 0x00, 0x00, 0xC0, 0xFF,
}
