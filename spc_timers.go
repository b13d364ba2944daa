// spc_timers.go - SPC700 interval timers

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

// spcTimer is one of the three up-counting interval timers. Timers 0
// and 1 run from an 8 kHz base, timer 2 from 64 kHz. nextTime is kept
// relative to the SPC clock the same way as the DSP time.
type spcTimer struct {
	nextTime  Time
	prescaler int
	period    int
	divider   int
	enabled   bool
	counter   int
}

// run brings the timer up to time.
func (t *spcTimer) run(time Time) *spcTimer {
	if time >= t.nextTime {
		t.catchUp(time)
	}
	return t
}

func (t *spcTimer) catchUp(time Time) {
	elapsed := (time-t.nextTime)/t.prescaler + 1
	t.nextTime += elapsed * t.prescaler

	if !t.enabled {
		return
	}
	// The divider is 8 bits wide, so a target already passed is only hit
	// again after wrapping.
	remain := int(uint8(t.period-t.divider-1)) + 1
	divider := t.divider + elapsed
	over := elapsed - remain
	if over >= 0 {
		n := over / t.period
		t.counter = (t.counter + 1 + n) & 0x0F
		divider = over - n*t.period
	}
	t.divider = divider & 0xFF
}

func timerPeriod(target byte) int {
	if target == 0 {
		return 256
	}
	return int(target)
}

// SetTempo scales the timer rates. TempoUnit is normal speed, twice
// TempoUnit doubles it.
func (s *SPC) SetTempo(tempo int) {
	s.tempo = tempo
	if tempo == 0 {
		tempo = 1
	}
	const (
		timer2Rate = 1 << 4 // 64 kHz
		otherShift = 3      // 8 kHz
	)
	rate := (timer2Rate*TempoUnit + tempo/2) / tempo
	if rate < timer2Rate/4 {
		rate = timer2Rate / 4 // 4x tempo at most
	}
	s.timers[2].prescaler = rate
	s.timers[1].prescaler = rate << otherShift
	s.timers[0].prescaler = rate << otherShift
}

// Tempo returns the value last passed to SetTempo.
func (s *SPC) Tempo() int {
	return s.tempo
}

func (s *SPC) timersLoaded() {
	for i := range s.timers {
		t := &s.timers[i]
		t.period = timerPeriod(s.regs[SMP_T0TARGET+i])
		t.enabled = s.regs[SMP_CONTROL]>>i&1 != 0
		t.counter = int(s.regsIn[SMP_T0OUT+i] & 0x0F)
	}
	s.SetTempo(s.tempo)
}
