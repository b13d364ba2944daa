package main

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/intuitionamiga/snesspc"
)

type styles struct {
	title lipgloss.Style
	key   lipgloss.Style
	value lipgloss.Style
	dim   lipgloss.Style
}

func newStyles() styles {
	return styles{
		title: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.ANSIColor(7)).Background(lipgloss.ANSIColor(4)).Padding(0, 1),
		key:   lipgloss.NewStyle().Bold(true).Foreground(lipgloss.ANSIColor(6)).Width(10),
		value: lipgloss.NewStyle().Foreground(lipgloss.ANSIColor(15)),
		dim:   lipgloss.NewStyle().Foreground(lipgloss.ANSIColor(8)),
	}
}

// formatInfo lays out the tags and registers of a dump.
func (s styles) formatInfo(name string, f *snesspc.SPCFile) string {
	var b strings.Builder
	b.WriteString(s.title.Render(name))
	b.WriteString("\n")

	row := func(key, value string) {
		if value == "" {
			value = s.dim.Render("-")
		} else {
			value = s.value.Render(value)
		}
		b.WriteString(s.key.Render(key) + " " + value + "\n")
	}

	if f.HasTag {
		t := f.Tag
		row("Song", t.Song)
		row("Game", t.Game)
		row("Artist", t.Artist)
		row("Dumper", t.Dumper)
		row("Date", t.Date)
		row("Comment", t.Comment)
		row("Length", formatLength(t.Seconds, t.FadeMS))
		format := "text"
		if t.Binary {
			format = "binary"
		}
		row("Tag", format)
	} else {
		row("Tag", "")
	}

	r := f.Regs
	row("Registers", fmt.Sprintf("PC=$%04X A=$%02X X=$%02X Y=$%02X SP=$%02X PSW=$%02X", r.PC, r.A, r.X, r.Y, r.SP, r.PSW))
	return b.String()
}

func formatLength(seconds, fadeMS int) string {
	if seconds == 0 {
		return ""
	}
	s := fmt.Sprintf("%d:%02d", seconds/60, seconds%60)
	if fadeMS > 0 {
		s += fmt.Sprintf(" + %d ms fade", fadeMS)
	}
	return s
}
