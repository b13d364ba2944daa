// dsp_voice.go - S-DSP voice steps, BRR decoding and envelopes

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

func (d *DSP) vreg(v *dspVoice, r int) int {
	return int(d.regs[v.regBase+r])
}

// interpolate runs the 4-tap gaussian filter over the BRR ring buffer.
func (d *DSP) interpolate(v *dspVoice) int {
	offset := v.interpPos >> 4 & 0xFF
	fwd := 255 - offset
	rev := offset
	in := v.buf[(v.interpPos>>12)+v.bufPos:]

	out := int(gauss[fwd]) * in[0] >> 11
	out += int(gauss[fwd+256]) * in[1] >> 11
	out += int(gauss[rev+256]) * in[2] >> 11
	out = int(int16(out))
	out += int(gauss[rev]) * in[3] >> 11

	return clamp16(out) &^ 1
}

func (d *DSP) runEnvelope(v *dspVoice) {
	env := v.env
	if v.envMode == envRelease {
		env -= 0x8
		if env < 0 {
			env = 0
		}
		v.env = env
		return
	}

	var rate int
	envData := d.vreg(v, V_ADSR1)
	if d.tADSR0&0x80 != 0 {
		// ADSR
		if v.envMode >= envDecay {
			env--
			env -= env >> 8
			rate = envData & 0x1F
			if v.envMode == envDecay {
				rate = (d.tADSR0 >> 3 & 0x0E) + 0x10
			}
		} else {
			rate = (d.tADSR0&0x0F)*2 + 1
			if rate < 31 {
				env += 0x20
			} else {
				env += 0x400
			}
		}
	} else {
		// GAIN
		envData = d.vreg(v, V_GAIN)
		mode := envData >> 5
		if mode < 4 {
			// direct
			env = envData * 0x10
			rate = 31
		} else {
			rate = envData & 0x1F
			switch {
			case mode == 4: // linear decrease
				env -= 0x20
			case mode < 6: // exponential decrease
				env--
				env -= env >> 8
			default: // linear increase, mode 7 bends at 0x600
				env += 0x20
				if mode > 6 && uint(v.hiddenEnv) >= 0x600 {
					env += 0x8 - 0x20
				}
			}
		}
	}

	// Sustain level
	if env>>8 == envData>>5 && v.envMode == envDecay {
		v.envMode = envSustain
	}

	v.hiddenEnv = env

	// Unsigned compare catches linear decrease going negative too
	if uint(env) > 0x7FF {
		if env < 0 {
			env = 0
		} else {
			env = 0x7FF
		}
		if v.envMode == envAttack {
			v.envMode = envDecay
		}
	}

	if d.readCounter(rate) == 0 {
		v.env = env
	}
}

// decodeBRR expands the next four nybbles of the current block into the
// ring buffer.
func (d *DSP) decodeBRR(v *dspVoice) {
	// Arrange the four input nybbles as 0xABCD
	nybbles := d.tBRRByte<<8 | int(d.ram[(v.brrAddr+v.brrOffset+1)&0xFFFF])
	header := d.tBRRHeader

	pos := v.bufPos
	v.bufPos += 4
	if v.bufPos >= brrBufSize {
		v.bufPos = 0
	}

	shift := header >> 4
	filter := header & 0x0C
	for end := pos + 4; pos < end; pos, nybbles = pos+1, nybbles<<4 {
		s := int(int16(nybbles)) >> 12

		s = (s << shift) >> 1
		if shift >= 0xD {
			s = (s >> 25) << 11 // -0x800 or 0
		}

		p1 := v.buf[pos+brrBufSize-1]
		p2 := v.buf[pos+brrBufSize-2] >> 1
		if filter >= 8 {
			s += p1
			s -= p2
			if filter == 8 {
				// s += p1 * 0.953125 - p2 * 0.46875
				s += p2 >> 4
				s += (p1 * -3) >> 6
			} else {
				// s += p1 * 0.8984375 - p2 * 0.40625
				s += (p1 * -13) >> 7
				s += (p2 * 3) >> 4
			}
		} else if filter != 0 {
			// s += p1 * 0.46875
			s += p1 >> 1
			s += (-p1) >> 5
		}

		s = int(int16(clamp16(s) * 2))
		v.buf[pos] = s
		v.buf[pos+brrBufSize] = s
	}
}

// V1: directory address for the previous voice, then this voice's SRCN.
func (d *DSP) voiceV1(v *dspVoice) {
	d.tDirAddr = d.tDir*0x100 + d.tSRCN*4
	d.tSRCN = d.vreg(v, V_SRCN)
}

// V2: sample pointer (start on KON, loop otherwise), ADSR0, pitch low.
func (d *DSP) voiceV2(v *dspVoice) {
	entry := d.tDirAddr
	if v.konDelay == 0 {
		entry += 2
	}
	// DIR $FF with a high SRCN runs off the top of RAM and wraps
	d.tBRRNextAddr = int(d.ram[entry&0xFFFF]) | int(d.ram[(entry+1)&0xFFFF])<<8
	d.tADSR0 = d.vreg(v, V_ADSR0)
	d.tPitch = d.vreg(v, V_PITCHL)
}

func (d *DSP) voiceV3a(v *dspVoice) {
	d.tPitch += (d.vreg(v, V_PITCHH) & 0x3F) << 8
}

func (d *DSP) voiceV3b(v *dspVoice) {
	d.tBRRByte = int(d.ram[(v.brrAddr+v.brrOffset)&0xFFFF])
	d.tBRRHeader = int(d.ram[v.brrAddr])
}

func (d *DSP) voiceV3c(v *dspVoice) {
	// Pitch modulation from the previous voice's output
	if d.tPMON&v.vbit != 0 {
		d.tPitch += ((d.tOutput >> 5) * d.tPitch) >> 10
	}

	if v.konDelay != 0 {
		if v.konDelay == 5 {
			v.brrAddr = d.tBRRNextAddr
			v.brrOffset = 1
			v.bufPos = 0
			d.tBRRHeader = 0 // header is ignored on this sample
			d.konCheck = true
		}

		// No envelope during KON
		v.env = 0
		v.hiddenEnv = 0

		// BRR decoding starts on the last three samples of the delay
		v.interpPos = 0
		v.konDelay--
		if v.konDelay&3 != 0 {
			v.interpPos = 0x4000
		}

		d.tPitch = 0
	}

	output := d.interpolate(v)
	if d.tNON&v.vbit != 0 {
		output = int(int16(d.noise * 2))
	}
	d.tOutput = (output * v.env) >> 11 &^ 1
	v.tEnvxOut = byte(v.env >> 4)

	// End of sample without loop, or soft reset
	if d.regs[DSP_FLG]&FLG_RESET != 0 || d.tBRRHeader&3 == 1 {
		v.envMode = envRelease
		v.env = 0
	}

	if d.everyOtherSample {
		if d.tKOFF&v.vbit != 0 {
			v.envMode = envRelease
		}
		if d.kon&v.vbit != 0 {
			v.konDelay = 5
			v.envMode = envAttack
		}
	}

	if v.konDelay == 0 {
		d.runEnvelope(v)
	}
}

func (d *DSP) voiceV3(v *dspVoice) {
	d.voiceV3a(v)
	d.voiceV3b(v)
	d.voiceV3c(v)
}

// voiceOutput adds the voice to the main and echo sums for channel ch.
func (d *DSP) voiceOutput(v *dspVoice, ch int) {
	if d.muteMask&v.vbit != 0 {
		return
	}
	amp := (d.tOutput * int(int8(d.regs[v.regBase+V_VOLL+ch]))) >> 7

	d.tMainOut[ch] = clamp16(d.tMainOut[ch] + amp)

	if d.tEON&v.vbit != 0 {
		d.tEchoOut[ch] = clamp16(d.tEchoOut[ch] + amp)
	}
}

// V4: decode BRR if the position needs it, advance pitch, left output.
func (d *DSP) voiceV4(v *dspVoice) {
	d.tLooped = 0
	if v.interpPos >= 0x4000 {
		d.decodeBRR(v)

		v.brrOffset += 2
		if v.brrOffset >= brrBlockSize {
			v.brrAddr = (v.brrAddr + brrBlockSize) & 0xFFFF
			if d.tBRRHeader&1 != 0 {
				v.brrAddr = d.tBRRNextAddr
				d.tLooped = v.vbit
			}
			v.brrOffset = 1
		}
	}

	v.interpPos = (v.interpPos & 0x3FFF) + d.tPitch

	// Pitch modulation can run ahead; cap it
	if v.interpPos > 0x7FFF {
		v.interpPos = 0x7FFF
	}

	d.voiceOutput(v, 0)
}

func (d *DSP) voiceV5(v *dspVoice) {
	d.voiceOutput(v, 1)

	// ENDX, OUTX and ENVX ignore writes made 1-2 clocks earlier
	endx := int(d.regs[DSP_ENDX]) | d.tLooped

	if v.konDelay == 5 {
		endx &^= v.vbit
	}
	d.endxBuf = byte(endx)
}

func (d *DSP) voiceV6(v *dspVoice) {
	d.outxBuf = byte(d.tOutput >> 8)
}

func (d *DSP) voiceV7(v *dspVoice) {
	d.regs[DSP_ENDX] = d.endxBuf
	d.envxBuf = v.tEnvxOut
}

func (d *DSP) voiceV8(v *dspVoice) {
	d.regs[v.regBase+V_OUTX] = d.outxBuf
}

func (d *DSP) voiceV9(v *dspVoice) {
	d.regs[v.regBase+V_ENVX] = d.envxBuf
}
