// cpu_spc700_opcodes.go - SPC700 instruction decoder

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

// execute runs one instruction whose opcode byte has been consumed. It
// returns false when the CPU stopped.
func (cpu *CPU_SPC700) execute(opcode byte) bool {
	lo := opcode & 0x1F

	// OR/AND/EOR/CMP/ADC/SBC share one operand layout across rows $00-$BF
	if opcode < 0xC0 && (lo >= 0x04 && lo <= 0x09 || lo >= 0x14 && lo <= 0x19) {
		cpu.executeALU(opcode)
		return true
	}

	switch opcode & 0x0F {
	case 0x01: // TCALL n
		n := uint16(opcode >> 4)
		cpu.push16(cpu.PC)
		cpu.PC = cpu.read16(0xFFDE - n*2)
		return true

	case 0x02: // SET1/CLR1 dp.bit
		addr := cpu.getDirect()
		mask := byte(1) << (opcode >> 5)
		v := cpu.read(addr)
		if opcode&0x10 == 0 {
			v |= mask
		} else {
			v &^= mask
		}
		cpu.write(addr, v)
		return true

	case 0x03: // BBS/BBC dp.bit,rel
		v := cpu.read(cpu.getDirect())
		set := v&(byte(1)<<(opcode>>5)) != 0
		cpu.branch(set == (opcode&0x10 == 0))
		return true
	}

	switch opcode {
	case 0x00: // NOP

	// Branches
	case 0x10: // BPL
		cpu.branch(cpu.PSW&SPC_NEGATIVE_FLAG == 0)
	case 0x30: // BMI
		cpu.branch(cpu.PSW&SPC_NEGATIVE_FLAG != 0)
	case 0x50: // BVC
		cpu.branch(cpu.PSW&SPC_OVERFLOW_FLAG == 0)
	case 0x70: // BVS
		cpu.branch(cpu.PSW&SPC_OVERFLOW_FLAG != 0)
	case 0x90: // BCC
		cpu.branch(cpu.PSW&SPC_CARRY_FLAG == 0)
	case 0xB0: // BCS
		cpu.branch(cpu.PSW&SPC_CARRY_FLAG != 0)
	case 0xD0: // BNE
		cpu.branch(cpu.PSW&SPC_ZERO_FLAG == 0)
	case 0xF0: // BEQ
		cpu.branch(cpu.PSW&SPC_ZERO_FLAG != 0)
	case 0x2F: // BRA
		cpu.branch(true)

	case 0x2E: // CBNE dp,rel
		v := cpu.read(cpu.getDirect())
		cpu.branch(cpu.A != v)
	case 0xDE: // CBNE dp+X,rel
		v := cpu.read(cpu.getDirectX())
		cpu.branch(cpu.A != v)
	case 0x6E: // DBNZ dp,rel
		addr := cpu.getDirect()
		v := cpu.read(addr) - 1
		cpu.write(addr, v)
		cpu.branch(v != 0)
	case 0xFE: // DBNZ Y,rel
		cpu.Y--
		cpu.branch(cpu.Y != 0)

	// Shifts and rotates
	case 0x0B: // ASL dp
		addr := cpu.getDirect()
		cpu.write(addr, cpu.asl(cpu.read(addr)))
	case 0x0C: // ASL !abs
		addr := cpu.getAbsolute()
		cpu.write(addr, cpu.asl(cpu.read(addr)))
	case 0x1B: // ASL dp+X
		addr := cpu.getDirectX()
		cpu.write(addr, cpu.asl(cpu.read(addr)))
	case 0x1C: // ASL A
		cpu.A = cpu.asl(cpu.A)
	case 0x2B: // ROL dp
		addr := cpu.getDirect()
		cpu.write(addr, cpu.rol(cpu.read(addr)))
	case 0x2C: // ROL !abs
		addr := cpu.getAbsolute()
		cpu.write(addr, cpu.rol(cpu.read(addr)))
	case 0x3B: // ROL dp+X
		addr := cpu.getDirectX()
		cpu.write(addr, cpu.rol(cpu.read(addr)))
	case 0x3C: // ROL A
		cpu.A = cpu.rol(cpu.A)
	case 0x4B: // LSR dp
		addr := cpu.getDirect()
		cpu.write(addr, cpu.lsr(cpu.read(addr)))
	case 0x4C: // LSR !abs
		addr := cpu.getAbsolute()
		cpu.write(addr, cpu.lsr(cpu.read(addr)))
	case 0x5B: // LSR dp+X
		addr := cpu.getDirectX()
		cpu.write(addr, cpu.lsr(cpu.read(addr)))
	case 0x5C: // LSR A
		cpu.A = cpu.lsr(cpu.A)
	case 0x6B: // ROR dp
		addr := cpu.getDirect()
		cpu.write(addr, cpu.ror(cpu.read(addr)))
	case 0x6C: // ROR !abs
		addr := cpu.getAbsolute()
		cpu.write(addr, cpu.ror(cpu.read(addr)))
	case 0x7B: // ROR dp+X
		addr := cpu.getDirectX()
		cpu.write(addr, cpu.ror(cpu.read(addr)))
	case 0x7C: // ROR A
		cpu.A = cpu.ror(cpu.A)

	// Increment and decrement
	case 0x8B: // DEC dp
		addr := cpu.getDirect()
		cpu.write(addr, cpu.dec(cpu.read(addr)))
	case 0x8C: // DEC !abs
		addr := cpu.getAbsolute()
		cpu.write(addr, cpu.dec(cpu.read(addr)))
	case 0x9B: // DEC dp+X
		addr := cpu.getDirectX()
		cpu.write(addr, cpu.dec(cpu.read(addr)))
	case 0x9C: // DEC A
		cpu.A = cpu.dec(cpu.A)
	case 0xAB: // INC dp
		addr := cpu.getDirect()
		cpu.write(addr, cpu.inc(cpu.read(addr)))
	case 0xAC: // INC !abs
		addr := cpu.getAbsolute()
		cpu.write(addr, cpu.inc(cpu.read(addr)))
	case 0xBB: // INC dp+X
		addr := cpu.getDirectX()
		cpu.write(addr, cpu.inc(cpu.read(addr)))
	case 0xBC: // INC A
		cpu.A = cpu.inc(cpu.A)
	case 0x1D: // DEC X
		cpu.X = cpu.dec(cpu.X)
	case 0x3D: // INC X
		cpu.X = cpu.inc(cpu.X)
	case 0xDC: // DEC Y
		cpu.Y = cpu.dec(cpu.Y)
	case 0xFC: // INC Y
		cpu.Y = cpu.inc(cpu.Y)

	// 16-bit operations
	case 0x1A: // DECW dp
		cpu.updateNZ16(cpu.stepWordDP(cpu.fetch(), -1))
	case 0x3A: // INCW dp
		cpu.updateNZ16(cpu.stepWordDP(cpu.fetch(), 1))
	case 0x5A: // CMPW YA,dp
		w := cpu.readWordDP(cpu.fetch())
		ya := int(cpu.Y)<<8 | int(cpu.A)
		result := ya - int(w)
		cpu.setFlag(SPC_CARRY_FLAG, result >= 0)
		cpu.updateNZ16(uint16(result))
	case 0x7A: // ADDW YA,dp
		cpu.addw(cpu.readWordDP(cpu.fetch()))
	case 0x9A: // SUBW YA,dp
		cpu.subw(cpu.readWordDP(cpu.fetch()))
	case 0xBA: // MOVW YA,dp
		w := cpu.readWordDP(cpu.fetch())
		cpu.A = byte(w)
		cpu.Y = byte(w >> 8)
		cpu.updateNZ16(w)
	case 0xDA: // MOVW dp,YA
		cpu.write16DP(cpu.fetch(), uint16(cpu.Y)<<8|uint16(cpu.A))

	// Multiply, divide, decimal adjust
	case 0xCF: // MUL YA
		ya := uint16(cpu.Y) * uint16(cpu.A)
		cpu.A = byte(ya)
		cpu.Y = byte(ya >> 8)
		cpu.updateNZ(cpu.Y)
	case 0x9E: // DIV YA,X
		cpu.div()
	case 0xDF: // DAA
		cpu.daa()
	case 0xBE: // DAS
		cpu.das()
	case 0x9F: // XCN A
		cpu.A = cpu.A>>4 | cpu.A<<4
		cpu.updateNZ(cpu.A)

	// Bit test and set/clear
	case 0x0E: // TSET1 !abs
		addr := cpu.getAbsolute()
		v := cpu.readAt(addr, -2)
		cpu.updateNZ(cpu.A - v)
		cpu.write(addr, v|cpu.A)
	case 0x4E: // TCLR1 !abs
		addr := cpu.getAbsolute()
		v := cpu.readAt(addr, -2)
		cpu.updateNZ(cpu.A - v)
		cpu.write(addr, v&^cpu.A)

	// Carry bit operations on m.b
	case 0x0A: // OR1 C,m.b
		addr, bit := cpu.getMemBit()
		if cpu.read(addr)>>bit&1 != 0 {
			cpu.PSW |= SPC_CARRY_FLAG
		}
	case 0x2A: // OR1 C,/m.b
		addr, bit := cpu.getMemBit()
		if cpu.read(addr)>>bit&1 == 0 {
			cpu.PSW |= SPC_CARRY_FLAG
		}
	case 0x4A: // AND1 C,m.b
		addr, bit := cpu.getMemBit()
		if cpu.read(addr)>>bit&1 == 0 {
			cpu.PSW &^= SPC_CARRY_FLAG
		}
	case 0x6A: // AND1 C,/m.b
		addr, bit := cpu.getMemBit()
		if cpu.read(addr)>>bit&1 != 0 {
			cpu.PSW &^= SPC_CARRY_FLAG
		}
	case 0x8A: // EOR1 C,m.b
		addr, bit := cpu.getMemBit()
		cpu.PSW ^= cpu.read(addr) >> bit & 1
	case 0xAA: // MOV1 C,m.b
		addr, bit := cpu.getMemBit()
		cpu.setFlag(SPC_CARRY_FLAG, cpu.read(addr)>>bit&1 != 0)
	case 0xCA: // MOV1 m.b,C
		addr, bit := cpu.getMemBit()
		v := cpu.read(addr)&^(1<<bit) | cpu.carry()<<bit
		cpu.write(addr, v)
	case 0xEA: // NOT1 m.b
		addr, bit := cpu.getMemBit()
		cpu.write(addr, cpu.read(addr)^(1<<bit))

	// Stack
	case 0x0D: // PUSH PSW
		cpu.push(cpu.PSW)
	case 0x2D: // PUSH A
		cpu.push(cpu.A)
	case 0x4D: // PUSH X
		cpu.push(cpu.X)
	case 0x6D: // PUSH Y
		cpu.push(cpu.Y)
	case 0x8E: // POP PSW
		cpu.PSW = cpu.pop()
	case 0xAE: // POP A
		cpu.A = cpu.pop()
	case 0xCE: // POP X
		cpu.X = cpu.pop()
	case 0xEE: // POP Y
		cpu.Y = cpu.pop()

	// Flow control
	case 0x3F: // CALL !abs
		addr := cpu.getAbsolute()
		cpu.push16(cpu.PC)
		cpu.PC = addr
	case 0x4F: // PCALL up
		addr := 0xFF00 | uint16(cpu.fetch())
		cpu.push16(cpu.PC)
		cpu.PC = addr
	case 0x6F: // RET
		cpu.PC = cpu.pop16()
	case 0x7F: // RETI
		cpu.PSW = cpu.pop()
		cpu.PC = cpu.pop16()
	case 0x0F: // BRK
		cpu.push16(cpu.PC)
		cpu.push(cpu.PSW)
		cpu.PSW |= SPC_BREAK_FLAG
		cpu.PSW &^= SPC_INTERRUPT_FLAG
		cpu.PC = cpu.read16(0xFFDE)
	case 0x5F: // JMP !abs
		cpu.PC = cpu.getAbsolute()
	case 0x1F: // JMP [!abs+X]
		cpu.PC = cpu.read16(cpu.getAbsoluteX())

	// Flags
	case 0x20: // CLRP
		cpu.PSW &^= SPC_PAGE_FLAG
	case 0x40: // SETP
		cpu.PSW |= SPC_PAGE_FLAG
	case 0x60: // CLRC
		cpu.PSW &^= SPC_CARRY_FLAG
	case 0x80: // SETC
		cpu.PSW |= SPC_CARRY_FLAG
	case 0xED: // NOTC
		cpu.PSW ^= SPC_CARRY_FLAG
	case 0xE0: // CLRV
		cpu.PSW &^= SPC_OVERFLOW_FLAG | SPC_HALF_FLAG
	case 0xA0: // EI
		cpu.PSW |= SPC_INTERRUPT_FLAG
	case 0xC0: // DI
		cpu.PSW &^= SPC_INTERRUPT_FLAG

	// Compare index registers
	case 0xC8: // CMP X,#imm
		cpu.cmp(cpu.X, cpu.fetch())
	case 0x3E: // CMP X,dp
		cpu.cmp(cpu.X, cpu.read(cpu.getDirect()))
	case 0x1E: // CMP X,!abs
		cpu.cmp(cpu.X, cpu.read(cpu.getAbsolute()))
	case 0xAD: // CMP Y,#imm
		cpu.cmp(cpu.Y, cpu.fetch())
	case 0x7E: // CMP Y,dp
		cpu.cmp(cpu.Y, cpu.read(cpu.getDirect()))
	case 0x5E: // CMP Y,!abs
		cpu.cmp(cpu.Y, cpu.read(cpu.getAbsolute()))

	// Register transfers
	case 0x5D: // MOV X,A
		cpu.X = cpu.A
		cpu.updateNZ(cpu.X)
	case 0x7D: // MOV A,X
		cpu.A = cpu.X
		cpu.updateNZ(cpu.A)
	case 0xDD: // MOV A,Y
		cpu.A = cpu.Y
		cpu.updateNZ(cpu.A)
	case 0xFD: // MOV Y,A
		cpu.Y = cpu.A
		cpu.updateNZ(cpu.Y)
	case 0x9D: // MOV X,SP
		cpu.X = cpu.SP
		cpu.updateNZ(cpu.X)
	case 0xBD: // MOV SP,X
		cpu.SP = cpu.X

	// Loads
	case 0xE8: // MOV A,#imm
		cpu.A = cpu.fetch()
		cpu.updateNZ(cpu.A)
	case 0xE4: // MOV A,dp
		cpu.A = cpu.read(cpu.getDirect())
		cpu.updateNZ(cpu.A)
	case 0xF4: // MOV A,dp+X
		cpu.A = cpu.read(cpu.getDirectX())
		cpu.updateNZ(cpu.A)
	case 0xE5: // MOV A,!abs
		cpu.A = cpu.read(cpu.getAbsolute())
		cpu.updateNZ(cpu.A)
	case 0xF5: // MOV A,!abs+X
		cpu.A = cpu.read(cpu.getAbsoluteX())
		cpu.updateNZ(cpu.A)
	case 0xF6: // MOV A,!abs+Y
		cpu.A = cpu.read(cpu.getAbsoluteY())
		cpu.updateNZ(cpu.A)
	case 0xE6: // MOV A,(X)
		cpu.A = cpu.read(cpu.dpAddr(cpu.X))
		cpu.updateNZ(cpu.A)
	case 0xBF: // MOV A,(X)+
		cpu.A = cpu.read(cpu.dpAddr(cpu.X))
		cpu.X++
		cpu.updateNZ(cpu.A)
	case 0xE7: // MOV A,[dp+X]
		cpu.A = cpu.read(cpu.getIndirectX())
		cpu.updateNZ(cpu.A)
	case 0xF7: // MOV A,[dp]+Y
		cpu.A = cpu.read(cpu.getIndirectY())
		cpu.updateNZ(cpu.A)
	case 0xCD: // MOV X,#imm
		cpu.X = cpu.fetch()
		cpu.updateNZ(cpu.X)
	case 0xF8: // MOV X,dp
		cpu.X = cpu.read(cpu.getDirect())
		cpu.updateNZ(cpu.X)
	case 0xF9: // MOV X,dp+Y
		cpu.X = cpu.read(cpu.getDirectY())
		cpu.updateNZ(cpu.X)
	case 0xE9: // MOV X,!abs
		cpu.X = cpu.read(cpu.getAbsolute())
		cpu.updateNZ(cpu.X)
	case 0x8D: // MOV Y,#imm
		cpu.Y = cpu.fetch()
		cpu.updateNZ(cpu.Y)
	case 0xEB: // MOV Y,dp
		cpu.Y = cpu.read(cpu.getDirect())
		cpu.updateNZ(cpu.Y)
	case 0xFB: // MOV Y,dp+X
		cpu.Y = cpu.read(cpu.getDirectX())
		cpu.updateNZ(cpu.Y)
	case 0xEC: // MOV Y,!abs
		cpu.Y = cpu.read(cpu.getAbsolute())
		cpu.updateNZ(cpu.Y)

	// Stores
	case 0xC4: // MOV dp,A
		cpu.write(cpu.getDirect(), cpu.A)
	case 0xD4: // MOV dp+X,A
		cpu.write(cpu.getDirectX(), cpu.A)
	case 0xC5: // MOV !abs,A
		cpu.write(cpu.getAbsolute(), cpu.A)
	case 0xD5: // MOV !abs+X,A
		cpu.write(cpu.getAbsoluteX(), cpu.A)
	case 0xD6: // MOV !abs+Y,A
		cpu.write(cpu.getAbsoluteY(), cpu.A)
	case 0xC6: // MOV (X),A
		cpu.write(cpu.dpAddr(cpu.X), cpu.A)
	case 0xAF: // MOV (X)+,A
		cpu.write(cpu.dpAddr(cpu.X), cpu.A)
		cpu.X++
	case 0xC7: // MOV [dp+X],A
		cpu.write(cpu.getIndirectX(), cpu.A)
	case 0xD7: // MOV [dp]+Y,A
		cpu.write(cpu.getIndirectY(), cpu.A)
	case 0xD8: // MOV dp,X
		cpu.write(cpu.getDirect(), cpu.X)
	case 0xD9: // MOV dp+Y,X
		cpu.write(cpu.getDirectY(), cpu.X)
	case 0xC9: // MOV !abs,X
		cpu.write(cpu.getAbsolute(), cpu.X)
	case 0xCB: // MOV dp,Y
		cpu.write(cpu.getDirect(), cpu.Y)
	case 0xDB: // MOV dp+X,Y
		cpu.write(cpu.getDirectX(), cpu.Y)
	case 0xCC: // MOV !abs,Y
		cpu.write(cpu.getAbsolute(), cpu.Y)
	case 0xFA: // MOV dp,dp
		v := cpu.read(cpu.getDirect())
		cpu.write(cpu.getDirect(), v)
	case 0x8F: // MOV dp,#imm
		v := cpu.fetch()
		cpu.write(cpu.getDirect(), v)

	case 0xEF, 0xFF: // SLEEP, STOP
		cpu.PC--
		cpu.halted = true
		return false
	}
	return true
}

// executeALU handles the six binary operations in all twelve of their
// addressing modes. Destination is A except for the memory-to-memory forms.
func (cpu *CPU_SPC700) executeALU(opcode byte) {
	kind := opcode >> 5
	var v byte
	switch opcode & 0x1F {
	case 0x04: // dp
		v = cpu.read(cpu.getDirect())
	case 0x05: // !abs
		v = cpu.read(cpu.getAbsolute())
	case 0x06: // (X)
		v = cpu.read(cpu.dpAddr(cpu.X))
	case 0x07: // [dp+X]
		v = cpu.read(cpu.getIndirectX())
	case 0x08: // #imm
		v = cpu.fetch()
	case 0x14: // dp+X
		v = cpu.read(cpu.getDirectX())
	case 0x15: // !abs+X
		v = cpu.read(cpu.getAbsoluteX())
	case 0x16: // !abs+Y
		v = cpu.read(cpu.getAbsoluteY())
	case 0x17: // [dp]+Y
		v = cpu.read(cpu.getIndirectY())

	case 0x09: // dp,dp
		src := cpu.read(cpu.getDirect())
		dst := cpu.getDirect()
		cpu.aluMemory(kind, dst, src)
		return
	case 0x18: // dp,#imm
		imm := cpu.fetch()
		dst := cpu.getDirect()
		cpu.aluMemory(kind, dst, imm)
		return
	case 0x19: // (X),(Y)
		src := cpu.read(cpu.dpAddr(cpu.Y))
		cpu.aluMemory(kind, cpu.dpAddr(cpu.X), src)
		return
	}
	cpu.A = cpu.alu(kind, cpu.A, v)
}

func (cpu *CPU_SPC700) aluMemory(kind byte, dst uint16, src byte) {
	result := cpu.alu(kind, cpu.read(dst), src)
	if kind != 3 { // CMP only sets flags
		cpu.write(dst, result)
	}
}
