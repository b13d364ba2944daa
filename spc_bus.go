// spc_bus.go - SPC700 memory map: RAM, SMP registers, DSP access

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

// Peek reads RAM without side effects.
func (s *SPC) Peek(addr uint16) byte {
	return s.ram[addr]
}

// Poke writes RAM without side effects.
func (s *SPC) Poke(addr uint16, data byte) {
	s.ram[addr] = data
}

// Read is an SPC700 data read at time.
func (s *SPC) Read(addr uint16, time Time) byte {
	if addr < 0xF0 || addr > 0xFF {
		return s.ram[addr]
	}

	reg := int(addr - 0xF0)
	switch {
	case reg >= SMP_T0OUT:
		t := s.timers[reg-SMP_T0OUT].run(time)
		v := byte(t.counter)
		t.counter = 0
		return v
	case reg == SMP_DSPADDR:
		return s.regs[SMP_DSPADDR]
	case reg == SMP_DSPDATA:
		return s.dspRead(time)
	default:
		return s.regsIn[reg]
	}
}

// Write is an SPC700 data write at time. Every write also lands in RAM.
func (s *SPC) Write(addr uint16, data byte, time Time) {
	s.ram[addr] = data

	switch {
	case addr >= 0xF0 && addr <= 0xFF:
		reg := int(addr - 0xF0)
		s.regs[reg] = data
		switch reg {
		case SMP_DSPADDR, SMP_CPUIO0, SMP_CPUIO1, SMP_CPUIO2, SMP_CPUIO3:
		default:
			s.writeSMPReg(reg, data, time)
		}

	case addr >= ROMAddr:
		i := int(addr - ROMAddr)
		s.hiRAM[i] = data
		if s.romEnabled {
			s.ram[addr] = s.rom[i] // ROM is not writable
		}
	}
}

func (s *SPC) writeSMPReg(reg int, data byte, time Time) {
	switch reg {
	case SMP_DSPDATA:
		s.dspWrite(data, time)

	case SMP_T0TARGET, SMP_T1TARGET, SMP_T2TARGET:
		t := &s.timers[reg-SMP_T0TARGET]
		if period := timerPeriod(data); t.period != period {
			t.run(time).period = period
		}

	case SMP_T0OUT, SMP_T1OUT, SMP_T2OUT:
		s.timers[reg-SMP_T0OUT].run(time - 1).counter = 0

	case SMP_F8, SMP_F9:
		s.regsIn[reg] = data

	case SMP_CONTROL:
		if data&0x10 != 0 {
			s.regsIn[SMP_CPUIO0] = 0
			s.regsIn[SMP_CPUIO1] = 0
		}
		if data&0x20 != 0 {
			s.regsIn[SMP_CPUIO2] = 0
			s.regsIn[SMP_CPUIO3] = 0
		}
		for i := range s.timers {
			t := &s.timers[i]
			enabled := data>>i&1 != 0
			if t.enabled != enabled {
				t.run(time)
				t.enabled = enabled
				if enabled {
					t.divider = 0
					t.counter = 0
				}
			}
		}
		s.enableROM(data&0x80 != 0)
	}
}

func (s *SPC) dspRead(time Time) byte {
	addr := s.regs[SMP_DSPADDR] & 0x7F
	s.runDSP(time)
	return s.dsp.Read(int(addr))
}

func (s *SPC) dspWrite(data byte, time Time) {
	addr := s.regs[SMP_DSPADDR]
	s.runDSP(time)
	// $80-$FF are read-only mirrors
	if addr <= 0x7F {
		s.dsp.Write(int(addr), data)
	}
}
