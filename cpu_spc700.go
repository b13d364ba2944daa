// cpu_spc700.go - SPC700 CPU Emulation Core

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

const (
	// Processor Status Word Flags

	SPC_CARRY_FLAG     = 0x01 // Carry flag
	SPC_ZERO_FLAG      = 0x02 // Zero flag
	SPC_INTERRUPT_FLAG = 0x04 // Interrupt enable (no interrupt sources are wired)
	SPC_HALF_FLAG      = 0x08 // Half carry
	SPC_BREAK_FLAG     = 0x10 // Break
	SPC_PAGE_FLAG      = 0x20 // Direct page at $0100 instead of $0000
	SPC_OVERFLOW_FLAG  = 0x40 // Overflow flag
	SPC_NEGATIVE_FLAG  = 0x80 // Negative flag
)

var spcNZTable [256]byte

// Cycle counts, two opcodes per byte. Branches hold the taken cost;
// not-taken refunds two cycles.
var spcPackedCycles = [128]byte{
	//   01    23    45    67    89    AB    CD    EF
	0x28, 0x47, 0x34, 0x36, 0x26, 0x54, 0x54, 0x68, // 0
	0x48, 0x47, 0x45, 0x56, 0x55, 0x65, 0x22, 0x46, // 1
	0x28, 0x47, 0x34, 0x36, 0x26, 0x54, 0x54, 0x74, // 2
	0x48, 0x47, 0x45, 0x56, 0x55, 0x65, 0x22, 0x38, // 3
	0x28, 0x47, 0x34, 0x36, 0x26, 0x44, 0x54, 0x66, // 4
	0x48, 0x47, 0x45, 0x56, 0x55, 0x45, 0x22, 0x43, // 5
	0x28, 0x47, 0x34, 0x36, 0x26, 0x44, 0x54, 0x75, // 6
	0x48, 0x47, 0x45, 0x56, 0x55, 0x55, 0x22, 0x36, // 7
	0x28, 0x47, 0x34, 0x36, 0x26, 0x54, 0x52, 0x45, // 8
	0x48, 0x47, 0x45, 0x56, 0x55, 0x55, 0x22, 0xC5, // 9
	0x38, 0x47, 0x34, 0x36, 0x26, 0x44, 0x52, 0x44, // A
	0x48, 0x47, 0x45, 0x56, 0x55, 0x55, 0x22, 0x34, // B
	0x38, 0x47, 0x45, 0x47, 0x25, 0x64, 0x52, 0x49, // C
	0x48, 0x47, 0x56, 0x67, 0x45, 0x55, 0x22, 0x83, // D
	0x28, 0x47, 0x34, 0x36, 0x24, 0x53, 0x43, 0x40, // E
	0x48, 0x47, 0x45, 0x56, 0x34, 0x54, 0x22, 0x60, // F
}

var spcCycleTable [256]int

func init() {
	for i := 0; i < 256; i++ {
		if i == 0 {
			spcNZTable[i] |= SPC_ZERO_FLAG
		}
		if i&0x80 != 0 {
			spcNZTable[i] |= SPC_NEGATIVE_FLAG
		}
	}
	for i, n := range spcPackedCycles {
		spcCycleTable[i*2] = int(n >> 4)
		spcCycleTable[i*2+1] = int(n & 0x0F)
	}
}

// SPCBus is the memory and I/O seen by the SPC700. Read and Write carry
// the access time relative to the end of the current run (always <= 0
// while running) so peripherals can catch up first. Peek and Poke are
// plain RAM accesses used for opcode fetch and the stack page.
type SPCBus interface {
	Read(addr uint16, time int) byte
	Write(addr uint16, data byte, time int)
	Peek(addr uint16) byte
	Poke(addr uint16, data byte)
}

// CPURegs is the programmer-visible register set.
type CPURegs struct {
	PC  uint16
	A   byte
	X   byte
	Y   byte
	SP  byte
	PSW byte
}

type CPU_SPC700 struct {
	/*
	   CPU_SPC700 implements the Sony SPC700 sound CPU.

	   Core Registers:
	   - PC: Programme counter (16-bit)
	   - A, X, Y: Accumulator and index registers (8-bit)
	   - SP: Stack pointer into page 1
	   - PSW: N V P B H I Z C

	   Timing:
	   Each instruction is charged its full cost before it executes, so
	   memory accesses see the time at which the instruction completes.
	   Run stops before an instruction that would end past the deadline.
	*/
	CPURegs

	bus SPCBus

	// time is the current clock relative to the run deadline
	time int

	// halted is set by STOP/SLEEP and cleared by the owner once reported
	halted bool
}

func NewCPU_SPC700(bus SPCBus) *CPU_SPC700 {
	return &CPU_SPC700{bus: bus}
}

// Reset clears all registers and points PC at the IPL ROM.
func (cpu *CPU_SPC700) Reset() {
	cpu.CPURegs = CPURegs{PC: ROMAddr}
	cpu.halted = false
}

// Halted reports whether STOP or SLEEP was executed since the last ClearHalt.
func (cpu *CPU_SPC700) Halted() bool {
	return cpu.halted
}

func (cpu *CPU_SPC700) ClearHalt() {
	cpu.halted = false
}

// Run executes instructions starting at relative time start (<= 0) until
// the next instruction would finish after time 0. It returns the time
// reached.
func (cpu *CPU_SPC700) Run(start int) int {
	cpu.time = start
	for {
		opcode := cpu.bus.Peek(cpu.PC)
		cycles := spcCycleTable[opcode]
		if cpu.time+cycles > 0 {
			break
		}
		cpu.time += cycles
		cpu.PC++
		if !cpu.execute(opcode) {
			cpu.time = 0
			break
		}
	}
	return cpu.time
}

func (cpu *CPU_SPC700) updateNZ(value byte) {
	cpu.PSW = (cpu.PSW &^ (SPC_ZERO_FLAG | SPC_NEGATIVE_FLAG)) | spcNZTable[value]
}

// updateNZ16 sets Z for a zero word and N from bit 15.
func (cpu *CPU_SPC700) updateNZ16(value uint16) {
	cpu.PSW &^= SPC_ZERO_FLAG | SPC_NEGATIVE_FLAG
	if value == 0 {
		cpu.PSW |= SPC_ZERO_FLAG
	}
	if value&0x8000 != 0 {
		cpu.PSW |= SPC_NEGATIVE_FLAG
	}
}

func (cpu *CPU_SPC700) setFlag(flag byte, set bool) {
	if set {
		cpu.PSW |= flag
	} else {
		cpu.PSW &^= flag
	}
}

func (cpu *CPU_SPC700) carry() byte {
	return cpu.PSW & SPC_CARRY_FLAG
}

func (cpu *CPU_SPC700) fetch() byte {
	v := cpu.bus.Peek(cpu.PC)
	cpu.PC++
	return v
}

func (cpu *CPU_SPC700) fetch16() uint16 {
	lo := cpu.fetch()
	hi := cpu.fetch()
	return uint16(hi)<<8 | uint16(lo)
}

// Reads land one clock before the instruction ends, writes on its last clock.
// TSET1, TCLR1 and the word instructions place their accesses with readAt
// and writeAt instead.
func (cpu *CPU_SPC700) read(addr uint16) byte {
	return cpu.readAt(addr, -1)
}

func (cpu *CPU_SPC700) write(addr uint16, value byte) {
	cpu.writeAt(addr, value, 0)
}

// readAt reads offset clocks from the end of the current instruction.
func (cpu *CPU_SPC700) readAt(addr uint16, offset int) byte {
	return cpu.bus.Read(addr, cpu.time+offset)
}

func (cpu *CPU_SPC700) writeAt(addr uint16, value byte, offset int) {
	cpu.bus.Write(addr, value, cpu.time+offset)
}

func (cpu *CPU_SPC700) read16(addr uint16) uint16 {
	lo := cpu.read(addr)
	hi := cpu.read(addr + 1)
	return uint16(hi)<<8 | uint16(lo)
}

func (cpu *CPU_SPC700) push(value byte) {
	cpu.bus.Poke(0x100|uint16(cpu.SP), value)
	cpu.SP--
}

func (cpu *CPU_SPC700) pop() byte {
	cpu.SP++
	return cpu.bus.Peek(0x100 | uint16(cpu.SP))
}

func (cpu *CPU_SPC700) push16(value uint16) {
	cpu.push(byte(value >> 8))
	cpu.push(byte(value))
}

func (cpu *CPU_SPC700) pop16() uint16 {
	lo := cpu.pop()
	hi := cpu.pop()
	return uint16(hi)<<8 | uint16(lo)
}

// Addressing modes

func (cpu *CPU_SPC700) dpBase() uint16 {
	if cpu.PSW&SPC_PAGE_FLAG != 0 {
		return 0x100
	}
	return 0
}

func (cpu *CPU_SPC700) dpAddr(offset byte) uint16 {
	return cpu.dpBase() | uint16(offset)
}

// read16DP reads a little-endian word from the direct page. The high
// byte wraps within the page.
func (cpu *CPU_SPC700) read16DP(offset byte) uint16 {
	lo := cpu.read(cpu.dpAddr(offset))
	hi := cpu.read(cpu.dpAddr(offset + 1))
	return uint16(hi)<<8 | uint16(lo)
}

// readWordDP is the operand fetch of MOVW/ADDW/SUBW/CMPW: low byte one
// clock before the end, high byte on the last clock.
func (cpu *CPU_SPC700) readWordDP(offset byte) uint16 {
	lo := cpu.readAt(cpu.dpAddr(offset), -1)
	hi := cpu.readAt(cpu.dpAddr(offset+1), 0)
	return uint16(hi)<<8 | uint16(lo)
}

// stepWordDP adds delta to a direct page word for INCW/DECW. Each byte is
// read then written back before the next one is touched.
func (cpu *CPU_SPC700) stepWordDP(offset byte, delta int) uint16 {
	lo := int(cpu.readAt(cpu.dpAddr(offset), -3)) + delta
	cpu.writeAt(cpu.dpAddr(offset), byte(lo), -2)
	hi := int(cpu.readAt(cpu.dpAddr(offset+1), -1)) + lo>>8
	cpu.writeAt(cpu.dpAddr(offset+1), byte(hi), 0)
	return uint16(hi)<<8 | uint16(byte(lo))
}

func (cpu *CPU_SPC700) write16DP(offset byte, value uint16) {
	cpu.writeAt(cpu.dpAddr(offset), byte(value), -1)
	cpu.writeAt(cpu.dpAddr(offset+1), byte(value>>8), 0)
}

func (cpu *CPU_SPC700) getDirect() uint16 {
	return cpu.dpAddr(cpu.fetch())
}

func (cpu *CPU_SPC700) getDirectX() uint16 {
	return cpu.dpAddr(cpu.fetch() + cpu.X)
}

func (cpu *CPU_SPC700) getDirectY() uint16 {
	return cpu.dpAddr(cpu.fetch() + cpu.Y)
}

func (cpu *CPU_SPC700) getAbsolute() uint16 {
	return cpu.fetch16()
}

func (cpu *CPU_SPC700) getAbsoluteX() uint16 {
	return cpu.fetch16() + uint16(cpu.X)
}

func (cpu *CPU_SPC700) getAbsoluteY() uint16 {
	return cpu.fetch16() + uint16(cpu.Y)
}

// getIndirectX is [dp+X]
func (cpu *CPU_SPC700) getIndirectX() uint16 {
	return cpu.read16DP(cpu.fetch() + cpu.X)
}

// getIndirectY is [dp]+Y
func (cpu *CPU_SPC700) getIndirectY() uint16 {
	return cpu.read16DP(cpu.fetch()) + uint16(cpu.Y)
}

// getMemBit decodes the 13-bit address and 3-bit index of m.b operands.
func (cpu *CPU_SPC700) getMemBit() (uint16, uint) {
	operand := cpu.fetch16()
	return operand & 0x1FFF, uint(operand >> 13)
}

// branch consumes the displacement and refunds two cycles when not taken.
func (cpu *CPU_SPC700) branch(taken bool) {
	rel := int8(cpu.fetch())
	if taken {
		cpu.PC += uint16(rel)
		return
	}
	cpu.time -= 2
}

// ALU

func (cpu *CPU_SPC700) adc(x, y byte) byte {
	result := int(x) + int(y) + int(cpu.carry())
	r := byte(result)
	cpu.setFlag(SPC_CARRY_FLAG, result > 0xFF)
	cpu.setFlag(SPC_OVERFLOW_FLAG, ^(x^y)&(x^r)&0x80 != 0)
	cpu.setFlag(SPC_HALF_FLAG, (x^y^r)&0x10 != 0)
	cpu.updateNZ(r)
	return r
}

func (cpu *CPU_SPC700) sbc(x, y byte) byte {
	return cpu.adc(x, ^y)
}

func (cpu *CPU_SPC700) cmp(x, y byte) {
	result := int(x) - int(y)
	cpu.setFlag(SPC_CARRY_FLAG, result >= 0)
	cpu.updateNZ(byte(result))
}

func (cpu *CPU_SPC700) asl(v byte) byte {
	cpu.setFlag(SPC_CARRY_FLAG, v&0x80 != 0)
	v <<= 1
	cpu.updateNZ(v)
	return v
}

func (cpu *CPU_SPC700) lsr(v byte) byte {
	cpu.setFlag(SPC_CARRY_FLAG, v&0x01 != 0)
	v >>= 1
	cpu.updateNZ(v)
	return v
}

func (cpu *CPU_SPC700) rol(v byte) byte {
	c := cpu.carry()
	cpu.setFlag(SPC_CARRY_FLAG, v&0x80 != 0)
	v = v<<1 | c
	cpu.updateNZ(v)
	return v
}

func (cpu *CPU_SPC700) ror(v byte) byte {
	c := cpu.carry()
	cpu.setFlag(SPC_CARRY_FLAG, v&0x01 != 0)
	v = v>>1 | c<<7
	cpu.updateNZ(v)
	return v
}

func (cpu *CPU_SPC700) inc(v byte) byte {
	v++
	cpu.updateNZ(v)
	return v
}

func (cpu *CPU_SPC700) dec(v byte) byte {
	v--
	cpu.updateNZ(v)
	return v
}

// alu applies one of the eight-bit binary operations selected by the top
// three opcode bits: OR, AND, EOR, CMP, ADC, SBC.
func (cpu *CPU_SPC700) alu(kind byte, x, y byte) byte {
	switch kind {
	case 0:
		x |= y
	case 1:
		x &= y
	case 2:
		x ^= y
	case 3:
		cpu.cmp(x, y)
		return x
	case 4:
		return cpu.adc(x, y)
	case 5:
		return cpu.sbc(x, y)
	}
	cpu.updateNZ(x)
	return x
}

// addw adds a word to YA the way the hardware does: low byte first, with
// V and H taken from the high byte addition.
func (cpu *CPU_SPC700) addw(word uint16) {
	lo := int(word&0xFF) + int(cpu.A)
	hi := int(word >> 8)
	result := int(cpu.Y) + hi + (lo >> 8)
	flags := hi ^ int(cpu.Y) ^ result
	cpu.setFlag(SPC_HALF_FLAG, flags&0x10 != 0)
	cpu.setFlag(SPC_OVERFLOW_FLAG, (flags+0x80)&0x100 != 0)
	cpu.setFlag(SPC_CARRY_FLAG, result > 0xFF)
	cpu.A = byte(lo)
	cpu.Y = byte(result)
	cpu.updateNZ16(uint16(cpu.Y)<<8 | uint16(cpu.A))
}

// subw subtracts through addw using the two's complement of each byte.
func (cpu *CPU_SPC700) subw(word uint16) {
	lo := int(word&0xFF) ^ 0xFF + 1
	hi := int(word>>8) ^ 0xFF
	lo += int(cpu.A)
	result := int(cpu.Y) + hi + (lo >> 8)
	flags := hi ^ int(cpu.Y) ^ result
	cpu.setFlag(SPC_HALF_FLAG, flags&0x10 != 0)
	cpu.setFlag(SPC_OVERFLOW_FLAG, (flags+0x80)&0x100 != 0)
	cpu.setFlag(SPC_CARRY_FLAG, result > 0xFF)
	cpu.A = byte(lo)
	cpu.Y = byte(result)
	cpu.updateNZ16(uint16(cpu.Y)<<8 | uint16(cpu.A))
}

func (cpu *CPU_SPC700) div() {
	ya := int(cpu.Y)<<8 | int(cpu.A)
	x := int(cpu.X)
	y := int(cpu.Y)

	cpu.setFlag(SPC_OVERFLOW_FLAG, y >= x)
	cpu.setFlag(SPC_HALF_FLAG, y&15 >= x&15)

	var a int
	if y < x*2 {
		a = ya / x
		y = ya - a*x
	} else {
		a = 255 - (ya-x*0x200)/(256-x)
		y = x + (ya-x*0x200)%(256-x)
	}
	cpu.A = byte(a)
	cpu.Y = byte(y)
	cpu.updateNZ(cpu.A)
}

func (cpu *CPU_SPC700) daa() {
	a := int(cpu.A)
	if a > 0x99 || cpu.PSW&SPC_CARRY_FLAG != 0 {
		a += 0x60
		cpu.PSW |= SPC_CARRY_FLAG
	}
	if a&0x0F > 9 || cpu.PSW&SPC_HALF_FLAG != 0 {
		a += 0x06
	}
	cpu.A = byte(a)
	cpu.updateNZ(cpu.A)
}

func (cpu *CPU_SPC700) das() {
	a := int(cpu.A)
	if a > 0x99 || cpu.PSW&SPC_CARRY_FLAG == 0 {
		a -= 0x60
		cpu.PSW &^= SPC_CARRY_FLAG
	}
	if a&0x0F > 9 || cpu.PSW&SPC_HALF_FLAG == 0 {
		a -= 0x06
	}
	cpu.A = byte(a)
	cpu.updateNZ(cpu.A)
}
