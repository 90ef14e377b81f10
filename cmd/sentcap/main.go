// Command sentcap captures falling-edge timestamps from a live SENT line
// on a Linux GPIO character device, converts consecutive edge gaps into
// tick intervals, and both decodes them live and records them to a trace
// file that cmd/sentdecode can replay later.
package main

import (
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/jochenvg/go-udev"
	"github.com/lestrrat-go/strftime"
	"github.com/spf13/pflag"
	"github.com/warthog618/go-gpiocdev"

	"github.com/sentbus/sentdecode/internal/sent"
	"github.com/sentbus/sentdecode/internal/sentcfg"
)

var (
	chip       = pflag.StringP("chip", "c", "/dev/gpiochip0", "GPIO character-device path")
	line       = pflag.IntP("line", "l", 0, "GPIO line offset carrying the SENT signal")
	outPattern = pflag.StringP("out", "o", "sent-%Y%m%d-%H%M%S.trace", "strftime pattern for the trace output file")
	configPath = pflag.String("config", "", "bus manifest YAML; captures every channel it lists instead of --chip/--line")
)

func usage() {
	fmt.Fprintf(os.Stderr, "Capture a live SENT line and record/decode it.\n\n")
	fmt.Fprintf(os.Stderr, "Usage:\n")
	fmt.Fprintf(os.Stderr, "\tsentcap [options]\n")
	fmt.Fprintf(os.Stderr, "\tsentcap --config bus.yaml\n")
	fmt.Fprintf(os.Stderr, "\tsentcap list-chips\n\n")
	pflag.PrintDefaults()
}

func main() {
	pflag.Usage = usage
	pflag.Parse()

	if pflag.NArg() == 1 && pflag.Arg(0) == "list-chips" {
		if err := listChips(os.Stdout); err != nil {
			log.Fatal("listing gpiochips", "err", err)
		}
		return
	}

	if *configPath != "" {
		if err := captureManifest(*configPath); err != nil {
			log.Fatal("capture failed", "err", err)
		}
		return
	}

	if err := capture(*chip, *line, *outPattern); err != nil {
		log.Fatal("capture failed", "err", err)
	}
}

// captureManifest loads a multi-channel bus manifest and runs capture
// concurrently for every channel it lists — one physical SENT line, one
// independent sent.Channel, per spec.md §3's per-line channel model.
func captureManifest(path string) error {
	m, err := sentcfg.Load(path)
	if err != nil {
		return err
	}

	var wg sync.WaitGroup
	errs := make([]error, len(m.Channels))
	for i, ch := range m.Channels {
		wg.Add(1)
		go func(i int, ch sentcfg.Channel) {
			defer wg.Done()
			pattern := ch.Name + "-%Y%m%d-%H%M%S.trace"
			if err := capture(ch.Chip, ch.Line, pattern); err != nil {
				errs[i] = fmt.Errorf("channel %q: %w", ch.Name, err)
			}
		}(i, ch)
	}
	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return err
		}
	}
	return nil
}

// listChips enumerates gpiochip* devices visible to udev, so an operator
// can pick the right chip without guessing /dev/gpiochipN numbers.
func listChips(w *os.File) error {
	u := udev.Udev{}
	enum := u.NewEnumerateFromUdev(&u)
	if err := enum.AddMatchSubsystem("gpio"); err != nil {
		return fmt.Errorf("sentcap: matching gpio subsystem: %w", err)
	}

	devices, err := enum.Devices()
	if err != nil {
		return fmt.Errorf("sentcap: enumerating devices: %w", err)
	}

	for _, d := range devices {
		devnode := d.Devnode()
		if devnode == "" {
			continue
		}
		label := d.PropertyValue("OF_FULLNAME")
		if label == "" {
			label = d.Sysname()
		}
		fmt.Fprintf(w, "%s\t%s\n", devnode, label)
	}
	return nil
}

// capture opens chipPath/lineOffset for falling-edge events, feeds every
// edge's tick interval through a fresh channel, and records the raw
// (ticks, flags) pairs to a trace file named from outPattern.
func capture(chipPath string, lineOffset int, outPattern string) error {
	namer, err := strftime.New(outPattern)
	if err != nil {
		return fmt.Errorf("sentcap: bad trace name pattern %q: %w", outPattern, err)
	}
	traceName := namer.FormatString(time.Now())

	traceFile, err := os.Create(traceName)
	if err != nil {
		return fmt.Errorf("sentcap: creating trace file: %w", err)
	}
	defer traceFile.Close()

	c := sent.NewChannel()
	var lastEdge time.Duration
	haveLastEdge := false

	events := make(chan gpiocdev.LineEvent, 64)
	handler := func(evt gpiocdev.LineEvent) {
		events <- evt
	}

	req, err := gpiocdev.RequestLine(chipPath, lineOffset,
		gpiocdev.WithFallingEdge,
		gpiocdev.WithEventHandler(handler))
	if err != nil {
		return fmt.Errorf("sentcap: requesting %s line %d: %w", chipPath, lineOffset, err)
	}
	defer req.Close()

	log.Info("capturing", "chip", chipPath, "line", lineOffset, "trace", traceName)

	for evt := range events {
		if !haveLastEdge {
			lastEdge = evt.Timestamp
			haveLastEdge = true
			continue
		}

		ticks := uint32((evt.Timestamp - lastEdge).Nanoseconds())
		lastEdge = evt.Timestamp

		fmt.Fprintf(traceFile, "%d,0\n", ticks)

		switch c.Decode(ticks, 0) {
		case 1:
			msg, _ := c.GetMsg()
			log.Info("frame", "msg", fmt.Sprintf("0x%08X", msg))
		case -1:
			log.Warn("rejected", "state", c.State())
		}
	}

	return nil
}
