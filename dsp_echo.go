// dsp_echo.go - S-DSP echo FIR, feedback and final mix

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

// echoFIR returns history tap i+1 of channel ch scaled by coefficient i.
func (d *DSP) echoFIR(i, ch int) int {
	return (d.echoHist[d.echoHistPos+i+1][ch] * int(int8(d.regs[DSP_FIR+i*0x10]))) >> 6
}

func (d *DSP) echoRead(ch int) {
	p := d.tEchoPtr + ch*2
	s := int(int16(uint16(d.ram[p]) | uint16(d.ram[p+1])<<8))
	// Second copy simplifies wrap-around
	d.echoHist[d.echoHistPos][ch] = s >> 1
	d.echoHist[d.echoHistPos+echoHistSize][ch] = s >> 1
}

func (d *DSP) echo22() {
	d.echoHistPos++
	if d.echoHistPos >= echoHistSize {
		d.echoHistPos = 0
	}

	d.tEchoPtr = (d.tESA*0x100 + d.echoOffset) & 0xFFFF
	d.echoRead(0)

	d.tEchoIn[0] = d.echoFIR(0, 0)
	d.tEchoIn[1] = d.echoFIR(0, 1)
}

func (d *DSP) echo23() {
	d.tEchoIn[0] += d.echoFIR(1, 0) + d.echoFIR(2, 0)
	d.tEchoIn[1] += d.echoFIR(1, 1) + d.echoFIR(2, 1)

	d.echoRead(1)
}

func (d *DSP) echo24() {
	d.tEchoIn[0] += d.echoFIR(3, 0) + d.echoFIR(4, 0) + d.echoFIR(5, 0)
	d.tEchoIn[1] += d.echoFIR(3, 1) + d.echoFIR(4, 1) + d.echoFIR(5, 1)
}

func (d *DSP) echo25() {
	for ch := 0; ch < 2; ch++ {
		s := int(int16(d.tEchoIn[ch] + d.echoFIR(6, ch)))
		s += int(int16(d.echoFIR(7, ch)))
		d.tEchoIn[ch] = clamp16(s) &^ 1
	}
}

func (d *DSP) echoOutput(ch int) int {
	dry := int(int16((d.tMainOut[ch] * int(int8(d.regs[DSP_MVOLL+ch*0x10]))) >> 7))
	echo := int(int16((d.tEchoIn[ch] * int(int8(d.regs[DSP_EVOLL+ch*0x10]))) >> 7))
	return clamp16(dry + echo)
}

func (d *DSP) echo26() {
	// Left output is held until the right one is ready
	d.tMainOut[0] = d.echoOutput(0)

	efb := int(int8(d.regs[DSP_EFB]))
	for ch := 0; ch < 2; ch++ {
		s := d.tEchoOut[ch] + int(int16((d.tEchoIn[ch]*efb)>>7))
		d.tEchoOut[ch] = clamp16(s) &^ 1
	}
}

func (d *DSP) echo27() {
	l := d.tMainOut[0]
	r := d.echoOutput(1)
	d.tMainOut[0] = 0
	d.tMainOut[1] = 0

	if d.regs[DSP_FLG]&FLG_MUTE != 0 {
		l = 0
		r = 0
	}
	d.writeSample(l, r)
}

func (d *DSP) echo28() {
	d.tEchoEnabled = int(d.regs[DSP_FLG])
}

func (d *DSP) echoWrite(ch int) {
	if d.tEchoEnabled&FLG_ECHO_OFF == 0 {
		p := d.tEchoPtr + ch*2
		d.ram[p] = byte(d.tEchoOut[ch])
		d.ram[p+1] = byte(d.tEchoOut[ch] >> 8)
	}
	d.tEchoOut[ch] = 0
}

func (d *DSP) echo29() {
	d.tESA = int(d.regs[DSP_ESA])

	// EDL only takes effect when the buffer wraps
	if d.echoOffset == 0 {
		d.echoLength = int(d.regs[DSP_EDL]&0x0F) * 0x800
	}

	d.echoOffset += 4
	if d.echoOffset >= d.echoLength {
		d.echoOffset = 0
	}

	d.echoWrite(0)

	d.tEchoEnabled = int(d.regs[DSP_FLG])
}

func (d *DSP) echo30() {
	d.echoWrite(1)
}
