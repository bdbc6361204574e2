// Command detectrange prints the audible sample range of audio files, ready
// to paste into a profile bank as start_sample and end_sample.
package main

import (
	"flag"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/gopxl/beep/v2"

	"github.com/llehouerou/soundkit/internal/clip"
)

func main() {
	threshold := flag.Float64("threshold", 0.001, "sample magnitude considered audible")
	rate := flag.Int("rate", 44100, "sample rate clips are decoded at")
	flag.Parse()

	if flag.NArg() == 0 {
		log.Println("usage: detectrange [-threshold t] [-rate hz] file...")
		os.Exit(2)
	}

	failed := false
	for _, path := range flag.Args() {
		if !clip.IsAudioFile(path) {
			log.Printf("%s: unsupported file type", path)
			failed = true
			continue
		}
		c, err := clip.Load(path, beep.SampleRate(*rate))
		if err != nil {
			log.Printf("%s: %v", path, err)
			failed = true
			continue
		}

		start, end, ok := clip.DetectRange(c, *threshold)
		if !ok {
			log.Printf("%s: silent (%s samples)", filepath.Base(path), humanize.Comma(int64(c.SampleCount())))
			continue
		}
		seconds := func(n int) time.Duration { return c.SampleRate().D(n).Round(time.Millisecond) }
		log.Printf("%s: %s samples, audible %s..%s (%v..%v)",
			filepath.Base(path), humanize.Comma(int64(c.SampleCount())),
			humanize.Comma(int64(start)), humanize.Comma(int64(end)),
			seconds(start), seconds(end))
		log.Printf("  start_sample: %d", start)
		log.Printf("  end_sample: %d", end)
	}
	if failed {
		os.Exit(1)
	}
}
