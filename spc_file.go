// spc_file.go - SPC dump file reader and writer

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
	"fmt"
	"os"
)

const spcSignature = "SNES-SPC700 Sound File Data v0.30\x1A\x1A"

// Only the first 27 bytes are checked; the version suffix varies.
const spcSignatureCheckLen = 27

const (
	spcHeaderSize = 0x100

	spcOffHasID666 = 0x23
	spcOffVersion  = 0x24
	spcOffPC       = 0x25
	spcOffA        = 0x27
	spcOffX        = 0x28
	spcOffY        = 0x29
	spcOffPSW      = 0x2A
	spcOffSP       = 0x2B
	spcOffTag      = 0x2E
	spcOffRAM      = 0x100
	spcOffDSP      = 0x10100
	spcOffUnused   = 0x10180
	spcOffIPLROM   = 0x101C0

	spcHasID666 = 26
	spcNoID666  = 27
	spcVersion  = 30
)

// SPCFile is a parsed dump: a complete snapshot of RAM, DSP registers
// and SPC700 registers at the moment the music driver was running.
type SPCFile struct {
	Regs    CPURegs
	RAM     [0x10000]byte
	DSPRegs [DSPRegisterCount]byte

	// IPLROM is the boot ROM image stored after the DSP registers, when
	// the file is long enough to hold one.
	IPLROM    [ROMSize]byte
	HasIPLROM bool

	HasTag bool
	Tag    ID666

	header [spcHeaderSize]byte
}

// ParseSPCFile reads and parses a dump from disk.
func ParseSPCFile(path string) (*SPCFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read SPC file: %w", err)
	}
	return ParseSPCData(data)
}

// ParseSPCData parses a dump held in memory.
func ParseSPCData(data []byte) (*SPCFile, error) {
	if len(data) < len(spcSignature) || string(data[:spcSignatureCheckLen]) != spcSignature[:spcSignatureCheckLen] {
		return nil, fmt.Errorf("%w: bad signature", ErrMalformedDump)
	}
	if len(data) < SPCMinFileSize {
		return nil, fmt.Errorf("%w: %d bytes, need at least %d", ErrMalformedDump, len(data), SPCMinFileSize)
	}

	f := &SPCFile{}
	copy(f.header[:], data[:spcHeaderSize])
	f.Regs = CPURegs{
		PC:  uint16(data[spcOffPC]) | uint16(data[spcOffPC+1])<<8,
		A:   data[spcOffA],
		X:   data[spcOffX],
		Y:   data[spcOffY],
		PSW: data[spcOffPSW],
		SP:  data[spcOffSP],
	}
	copy(f.RAM[:], data[spcOffRAM:spcOffDSP])
	copy(f.DSPRegs[:], data[spcOffDSP:spcOffUnused])
	if len(data) >= SPCFileSize {
		copy(f.IPLROM[:], data[spcOffIPLROM:SPCFileSize])
		f.HasIPLROM = true
	}

	if data[spcOffHasID666] == spcHasID666 {
		f.HasTag = true
		f.Tag = parseID666(data[spcOffTag:spcHeaderSize])
	}
	return f, nil
}

// LoadSPC parses data and, only if it is a valid dump, replaces the
// whole machine state with it.
func (s *SPC) LoadSPC(data []byte) error {
	f, err := ParseSPCData(data)
	if err != nil {
		return err
	}
	s.LoadSPCFile(f)
	return nil
}

// LoadSPCFile replaces the machine state with a parsed dump.
func (s *SPC) LoadSPCFile(f *SPCFile) {
	s.cpu.CPURegs = f.Regs
	s.ram = f.RAM
	s.ramLoaded()
	s.dsp.Load(f.DSPRegs[:])
	s.resetTimeRegs()
	s.header = f.header
}

func (s *SPC) initHeader() {
	s.header = [spcHeaderSize]byte{}
	copy(s.header[:], spcSignature)
	s.header[spcOffHasID666] = spcHasID666
	s.header[spcOffVersion] = spcVersion
}

// SaveSPC returns the current state as a dump file. The tag area of the
// last loaded dump is carried over.
func (s *SPC) SaveSPC() []byte {
	out := make([]byte, SPCFileSize)
	copy(out, s.header[:])
	copy(out, spcSignature)
	out[spcOffVersion] = spcVersion
	if out[spcOffHasID666] != spcHasID666 {
		out[spcOffHasID666] = spcNoID666
	}

	r := s.cpu.CPURegs
	out[spcOffPC] = byte(r.PC)
	out[spcOffPC+1] = byte(r.PC >> 8)
	out[spcOffA] = r.A
	out[spcOffX] = r.X
	out[spcOffY] = r.Y
	out[spcOffPSW] = r.PSW
	out[spcOffSP] = r.SP

	ram := out[spcOffRAM:spcOffDSP]
	copy(ram, s.ram[:])
	if s.romEnabled {
		copy(ram[ROMAddr:], s.hiRAM[:])
	}
	s.saveRegs(ram[0xF0:])
	for i := range PortCount {
		ram[0xF0+SMP_CPUIO0+i] = s.regsIn[SMP_CPUIO0+i]
	}

	for i := range DSPRegisterCount {
		out[spcOffDSP+i] = s.dsp.Read(i)
	}
	copy(out[spcOffIPLROM:], s.rom[:])
	return out
}
