// spc_id666.go - ID666 tag parsing

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
	"encoding/binary"
	"strconv"
	"strings"
)

// ID666 is the tag block in the header of a dump. Both the text and the
// binary layouts are recognised.
type ID666 struct {
	Song    string
	Game    string
	Dumper  string
	Comment string
	Date    string
	Artist  string

	// Seconds to play before fading, and fade length in milliseconds.
	// Zero means unknown.
	Seconds int
	FadeMS  int

	ChannelDisables byte
	Emulator        byte

	Binary bool
}

// Offsets into the tag area, which starts at file offset $2E.
const (
	tagSong    = 0x00
	tagGame    = 0x20
	tagDumper  = 0x40
	tagComment = 0x50
	tagDate    = 0x70

	tagTextSeconds  = 0x7B
	tagTextFade     = 0x7E
	tagTextArtist   = 0x83
	tagTextChannels = 0xA3
	tagTextEmulator = 0xA4

	tagBinSeconds  = 0x7B
	tagBinFade     = 0x7E
	tagBinArtist   = 0x82
	tagBinChannels = 0xA2
	tagBinEmulator = 0xA3
)

func parseID666(tag []byte) ID666 {
	t := ID666{
		Song:    parsePaddedString(tag[tagSong:tagGame]),
		Game:    parsePaddedString(tag[tagGame:tagDumper]),
		Dumper:  parsePaddedString(tag[tagDumper:tagComment]),
		Comment: parsePaddedString(tag[tagComment:tagDate]),
	}

	if isBinaryID666(tag) {
		t.Binary = true
		day, month := tag[tagDate], tag[tagDate+1]
		year := binary.LittleEndian.Uint16(tag[tagDate+2:])
		if year != 0 && month != 0 && day != 0 {
			t.Date = strconv.Itoa(int(month)) + "/" + strconv.Itoa(int(day)) + "/" + strconv.Itoa(int(year))
		}
		t.Seconds = int(tag[tagBinSeconds]) | int(tag[tagBinSeconds+1])<<8 | int(tag[tagBinSeconds+2])<<16
		t.FadeMS = int(binary.LittleEndian.Uint32(tag[tagBinFade:]))
		t.Artist = parsePaddedString(tag[tagBinArtist : tagBinArtist+32])
		t.ChannelDisables = tag[tagBinChannels]
		t.Emulator = tag[tagBinEmulator]
		return t
	}

	t.Date = parsePaddedString(tag[tagDate:tagTextSeconds])
	t.Seconds = parseDigits(tag[tagTextSeconds:tagTextFade])
	t.FadeMS = parseDigits(tag[tagTextFade:tagTextArtist])
	t.Artist = parsePaddedString(tag[tagTextArtist : tagTextArtist+32])
	t.ChannelDisables = tag[tagTextChannels]
	t.Emulator = tag[tagTextEmulator]
	return t
}

// isBinaryID666 guesses the layout from the length fields. Text tags
// hold only digits (or padding) there; the binary layout puts the first
// artist byte where the text layout has the last fade digit.
func isBinaryID666(tag []byte) bool {
	for _, b := range tag[tagTextSeconds:tagTextArtist] {
		if b != 0 && (b < '0' || b > '9') {
			return true
		}
	}
	return false
}

// parsePaddedString extracts a string from a fixed-size field,
// trimming trailing null bytes and spaces
func parsePaddedString(data []byte) string {
	end := len(data)
	for i, b := range data {
		if b == 0 {
			end = i
			break
		}
	}
	return strings.TrimRight(string(data[:end]), " ")
}

func parseDigits(data []byte) int {
	n, err := strconv.Atoi(parsePaddedString(data))
	if err != nil {
		return 0
	}
	return n
}
