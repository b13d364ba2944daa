package snesspc

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func buildTextTag() []byte {
	tag := make([]byte, spcHeaderSize-spcOffTag)
	copy(tag[tagSong:], "Opening Theme")
	copy(tag[tagGame:], "Test Quest")
	copy(tag[tagDumper:], "dumper")
	copy(tag[tagComment:], "loops forever")
	copy(tag[tagDate:], "2026-10-19")
	copy(tag[tagTextSeconds:], "120")
	copy(tag[tagTextFade:], "5000")
	copy(tag[tagTextArtist:], "Composer")
	tag[tagTextChannels] = 0x02
	tag[tagTextEmulator] = '1'
	return tag
}

func buildBinaryTag() []byte {
	tag := make([]byte, spcHeaderSize-spcOffTag)
	copy(tag[tagSong:], "Boss")
	copy(tag[tagGame:], "Test Quest")
	tag[tagDate] = 19
	tag[tagDate+1] = 10
	tag[tagDate+2] = 0xEA // 2026
	tag[tagDate+3] = 0x07
	tag[tagBinSeconds] = 200
	tag[tagBinFade] = 0x88 // 5000
	tag[tagBinFade+1] = 0x13
	copy(tag[tagBinArtist:], "Composer")
	tag[tagBinChannels] = 0x80
	return tag
}

// Test 1: header, registers and memory
func TestParseSPCData_Basic(t *testing.T) {
	d := newIdleDump()
	d.regs = CPURegs{PC: 0x1234, A: 0x01, X: 0x02, Y: 0x03, PSW: 0x04, SP: 0xCF}
	d.ram[0x8000] = 0xAB
	d.dsp[DSP_MVOLL] = 0x55

	f, err := ParseSPCData(d.bytes())
	if err != nil {
		t.Fatalf("ParseSPCData failed: %v", err)
	}
	if f.Regs != d.regs {
		t.Errorf("expected registers %+v, got %+v", d.regs, f.Regs)
	}
	if f.RAM[0x8000] != 0xAB {
		t.Errorf("expected RAM $8000 = 0xAB, got 0x%02X", f.RAM[0x8000])
	}
	if f.DSPRegs[DSP_MVOLL] != 0x55 {
		t.Errorf("expected MVOLL 0x55, got 0x%02X", f.DSPRegs[DSP_MVOLL])
	}
	if !f.HasIPLROM || f.IPLROM != IPLROM {
		t.Error("expected IPL ROM image")
	}
	if f.HasTag {
		t.Error("expected no tag")
	}
}

func TestParseSPCData_NoIPLROM(t *testing.T) {
	data := newIdleDump().bytes()[:SPCMinFileSize]
	f, err := ParseSPCData(data)
	if err != nil {
		t.Fatalf("ParseSPCData failed: %v", err)
	}
	if f.HasIPLROM {
		t.Error("expected no IPL ROM in a short file")
	}
}

// Test 2: malformed input
func TestParseSPCData_Malformed(t *testing.T) {
	good := newIdleDump().bytes()
	badSig := bytes.Clone(good)
	copy(badSig, "SNES-SPC700 Sound File Dat\x00")

	tests := []struct {
		name string
		data []byte
	}{
		{"empty", nil},
		{"signature only", good[:len(spcSignature)]},
		{"truncated RAM", good[:0x8000]},
		{"missing DSP registers", good[:SPCMinFileSize-1]},
		{"bad signature", badSig},
		{"not a dump", bytes.Repeat([]byte{0x55}, SPCFileSize)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseSPCData(tt.data)
			if !errors.Is(err, ErrMalformedDump) {
				t.Errorf("expected ErrMalformedDump, got %v", err)
			}
		})
	}
}

// Test 3: text ID666
func TestParseSPCData_TextTag(t *testing.T) {
	d := newIdleDump()
	d.tag = buildTextTag()

	f, err := ParseSPCData(d.bytes())
	if err != nil {
		t.Fatalf("ParseSPCData failed: %v", err)
	}
	if !f.HasTag || f.Tag.Binary {
		t.Fatalf("expected text tag, got HasTag=%v Binary=%v", f.HasTag, f.Tag.Binary)
	}

	tag := f.Tag
	checks := []struct {
		field, got, want string
	}{
		{"song", tag.Song, "Opening Theme"},
		{"game", tag.Game, "Test Quest"},
		{"dumper", tag.Dumper, "dumper"},
		{"comment", tag.Comment, "loops forever"},
		{"date", tag.Date, "2026-10-19"},
		{"artist", tag.Artist, "Composer"},
	}
	for _, c := range checks {
		if c.got != c.want {
			t.Errorf("%s: expected %q, got %q", c.field, c.want, c.got)
		}
	}
	if tag.Seconds != 120 {
		t.Errorf("expected 120 seconds, got %d", tag.Seconds)
	}
	if tag.FadeMS != 5000 {
		t.Errorf("expected 5000 ms fade, got %d", tag.FadeMS)
	}
	if tag.ChannelDisables != 0x02 {
		t.Errorf("expected channel disables 0x02, got 0x%02X", tag.ChannelDisables)
	}
}

// Test 4: binary ID666
func TestParseSPCData_BinaryTag(t *testing.T) {
	d := newIdleDump()
	d.tag = buildBinaryTag()

	f, err := ParseSPCData(d.bytes())
	if err != nil {
		t.Fatalf("ParseSPCData failed: %v", err)
	}
	tag := f.Tag
	if !tag.Binary {
		t.Fatal("expected binary tag")
	}
	if tag.Song != "Boss" {
		t.Errorf("expected song %q, got %q", "Boss", tag.Song)
	}
	if tag.Date != "10/19/2026" {
		t.Errorf("expected date 10/19/2026, got %q", tag.Date)
	}
	if tag.Seconds != 200 {
		t.Errorf("expected 200 seconds, got %d", tag.Seconds)
	}
	if tag.FadeMS != 5000 {
		t.Errorf("expected 5000 ms fade, got %d", tag.FadeMS)
	}
	if tag.Artist != "Composer" {
		t.Errorf("expected artist %q, got %q", "Composer", tag.Artist)
	}
	if tag.ChannelDisables != 0x80 {
		t.Errorf("expected channel disables 0x80, got 0x%02X", tag.ChannelDisables)
	}
}

func TestParsePaddedString(t *testing.T) {
	tests := []struct {
		in   []byte
		want string
	}{
		{[]byte("abc\x00\x00"), "abc"},
		{[]byte("abc  \x00xyz"), "abc"},
		{[]byte("full"), "full"},
		{[]byte{0, 'x'}, ""},
	}
	for _, tt := range tests {
		if got := parsePaddedString(tt.in); got != tt.want {
			t.Errorf("parsePaddedString(%q): expected %q, got %q", tt.in, tt.want, got)
		}
	}
}

func TestParseSPCFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "song.spc")
	if err := os.WriteFile(path, newIdleDump().bytes(), 0o644); err != nil {
		t.Fatal(err)
	}
	f, err := ParseSPCFile(path)
	if err != nil {
		t.Fatalf("ParseSPCFile failed: %v", err)
	}
	if f.Regs.PC != testProgramAddr {
		t.Errorf("expected PC $%04X, got $%04X", testProgramAddr, f.Regs.PC)
	}

	if _, err := ParseSPCFile(filepath.Join(t.TempDir(), "missing.spc")); err == nil {
		t.Error("expected error for missing file")
	}
}

// Test 5: LoadSPC then SaveSPC reproduces the file
func TestSPC_DumpRoundTrip(t *testing.T) {
	d := newIdleDump()
	d.tag = buildTextTag()
	d.regs = CPURegs{PC: testProgramAddr, A: 0x11, X: 0x22, Y: 0x33, PSW: 0x02, SP: 0xEF}
	for i := 0x1000; i < 0x2000; i++ {
		d.ram[i] = byte(i * 7)
	}
	for i := range ROMSize {
		d.ram[ROMAddr+i] = byte(0xA0 + i)
	}
	// SMP registers: ROM mapped, DSPADDR, ports, F8/F9, targets, counters
	copy(d.ram[0xF0:], []byte{
		0x0A, 0x80, 0x4C, 0x00, 0x01, 0x02, 0x03, 0x04,
		0xAB, 0xCD, 0x10, 0x20, 0x30, 0x05, 0x00, 0x0F,
	})
	for i := range DSPRegisterCount {
		d.dsp[i] = byte(i ^ 0x5A)
	}
	d.dsp[DSP_FLG] = FLG_ECHO_OFF

	in := d.bytes()
	s := loadTestSPC(t, d)
	if s.RAM()[ROMAddr] == 0xA0 {
		t.Error("expected ROM mapped over the dump's RAM")
	}

	out := s.SaveSPC()
	if len(out) != SPCFileSize {
		t.Fatalf("expected %d bytes, got %d", SPCFileSize, len(out))
	}
	for i := range spcOffUnused {
		if in[i] != out[i] {
			t.Fatalf("dump differs at offset 0x%05X: expected 0x%02X, got 0x%02X", i, in[i], out[i])
		}
	}
}

func TestSPC_SaveSPCFresh(t *testing.T) {
	out := NewSPC().SaveSPC()
	if string(out[:len(spcSignature)]) != spcSignature {
		t.Error("expected signature")
	}
	if out[spcOffHasID666] != spcHasID666 || out[spcOffVersion] != spcVersion {
		t.Errorf("expected tag flag %d and version %d, got %d and %d",
			spcHasID666, spcVersion, out[spcOffHasID666], out[spcOffVersion])
	}
	if _, err := ParseSPCData(out); err != nil {
		t.Errorf("saved dump does not parse: %v", err)
	}
}

// Test 6: a bad dump leaves the machine untouched
func TestSPC_LoadTruncatedKeepsState(t *testing.T) {
	d := newIdleDump()
	d.addTone(0, 0x1000)
	s := loadTestSPC(t, d)
	playSamples(t, s, 1024)
	before := s.SaveState()

	other := newIdleDump()
	other.ram[0x3000] = 0xEE
	err := s.LoadSPC(other.bytes()[:0x1000])
	if !errors.Is(err, ErrMalformedDump) {
		t.Fatalf("expected ErrMalformedDump, got %v", err)
	}
	if !bytes.Equal(before, s.SaveState()) {
		t.Error("expected state unchanged after failed load")
	}
}
