package main

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"time"

	"github.com/intuitionamiga/snesspc"
	"github.com/intuitionamiga/snesspc/dumploader"
	"golang.org/x/term"
)

const frameSamples = 4096

func main() {
	log.SetFlags(0)
	log.SetPrefix("spc2wav: ")

	outFile := flag.String("o", "", "Output WAV file, - for stdout (default: input name with .wav)")
	seconds := flag.Int("seconds", 0, "Play length before fade (default: from tag, else 180)")
	fade := flag.Int("fade", 0, "Fade length in ms, -1 for none (default: from tag, else 10000)")
	filter := flag.Bool("filter", true, "Apply the console output filter")
	gain := flag.Int("gain", snesspc.FilterGainUnit, "Filter gain (256 = 1.0)")
	bass := flag.Int("bass", snesspc.FilterBassNorm, "Filter bass, 0-31")
	mute := flag.Int("mute", 0, "Voice mute mask, bit 0 = voice 0 (e.g. 0xFE)")
	tempo := flag.Int("tempo", snesspc.TempoUnit, "Timer tempo (256 = normal)")
	trim := flag.Bool("trim", false, "Skip silence before the first note")
	track := flag.Int("track", 1, "Track number inside an archive")
	info := flag.Bool("info", false, "Print the tags and exit")
	play := flag.Bool("play", false, "Play through the audio device instead of writing a file")
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: spc2wav [options] file.spc|archive\n\nRenders an SPC dump to a 16-bit stereo 32 kHz WAV file.\n\nOptions:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  spc2wav song.spc\n")
		fmt.Fprintf(os.Stderr, "  spc2wav -track 3 -seconds 90 soundtrack.rsn\n")
		fmt.Fprintf(os.Stderr, "  spc2wav -o - song.spc | aplay\n")
	}
	flag.Parse()

	if flag.NArg() != 1 {
		flag.Usage()
		os.Exit(1)
	}
	inputPath := flag.Arg(0)

	dumps, err := dumploader.LoadAll(inputPath)
	if err != nil {
		log.Fatalf("load %s: %v", inputPath, err)
	}
	if *track < 1 || *track > len(dumps) {
		log.Fatalf("track %d out of range, %s has %d", *track, inputPath, len(dumps))
	}
	dump := dumps[*track-1]

	file, err := snesspc.ParseSPCData(dump.Data)
	if err != nil {
		log.Fatalf("%s: %v", dump.Name, err)
	}
	if *info {
		fmt.Print(newStyles().formatInfo(dump.Name, file))
		return
	}

	player := snesspc.NewPlayer(snesspc.PlayerConfig{
		Seconds:     *seconds,
		FadeMS:      *fade,
		Filter:      *filter,
		Gain:        *gain,
		Bass:        *bass,
		MuteMask:    *mute,
		Tempo:       *tempo,
		TrimSilence: *trim,
	})
	if err := player.LoadFile(file); err != nil {
		log.Fatalf("%s: %v", dump.Name, err)
	}

	if *play {
		if err := playAudio(player); err != nil {
			log.Fatal(err)
		}
		return
	}

	outputPath := *outFile
	if outputPath == "" {
		outputPath = strings.TrimSuffix(dump.Name, filepath.Ext(dump.Name)) + ".wav"
	}
	if err := writeOutput(outputPath, player); err != nil {
		log.Fatal(err)
	}
}

func writeOutput(path string, player *snesspc.Player) error {
	if path == "-" {
		if term.IsTerminal(int(os.Stdout.Fd())) {
			return errors.New("refusing to write audio to a terminal")
		}
		w := bufio.NewWriter(os.Stdout)
		if err := render(w, player); err != nil {
			return err
		}
		return w.Flush()
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	w := bufio.NewWriter(f)
	if err := render(w, player); err != nil {
		f.Close()
		return err
	}
	if err := w.Flush(); err != nil {
		f.Close()
		return fmt.Errorf("write %s: %w", path, err)
	}
	return f.Close()
}

// render writes the whole track as a WAV stream.
func render(w io.Writer, player *snesspc.Player) error {
	if err := writeWAVHeader(w, snesspc.SampleRate, player.Length()*4); err != nil {
		return err
	}
	buf := make([]int16, frameSamples)
	for {
		n, err := player.Render(buf)
		if werr := writeSamples(w, buf[:n]); werr != nil {
			return werr
		}
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return fmt.Errorf("render: %w", err)
		}
	}
}

// playAudio plays until the track ends or the user interrupts.
func playAudio(player *snesspc.Player) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	op, err := snesspc.NewOtoPlayer(snesspc.SampleRate)
	if err != nil {
		return fmt.Errorf("open audio: %w", err)
	}
	defer op.Close()

	op.SetupPlayer(snesspc.NewSampleStream(player, frameSamples))
	op.Start()

	ticker := time.NewTicker(100 * time.Millisecond)
	defer ticker.Stop()
	for op.IsPlaying() {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
		}
	}
	return nil
}
