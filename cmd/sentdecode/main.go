// Command sentdecode replays a recorded SENT pulse trace through the
// decoder and reports every accepted frame and rejection, then a summary
// of the channel's counters. Slow-channel mailbox contents are not
// reported. It takes no live hardware input; see cmd/sentcap for
// capturing a trace from a real GPIO line.
package main

import (
	"bufio"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/charmbracelet/log"
	"github.com/spf13/pflag"

	"github.com/sentbus/sentdecode/internal/sent"
)

// tickPeriodNanos is the host's tick clock period, used only to convert
// the tick_per_unit estimate into the approximate microsecond figure of
// the final summary;
// spec.md treats the actual conversion constant as supplied by the host,
// not something the core decoder knows (see SPEC_FULL.md §3).
var tickPeriodNanos = pflag.Float64("tick-period-ns", 1000, "nanoseconds per tick, for diagnostic display only")

var verbose = pflag.BoolP("verbose", "v", false, "log every pulse, not just frame/error transitions")

func usage() {
	fmt.Fprintf(os.Stderr, "Replay a SENT pulse trace through the decoder.\n\n")
	fmt.Fprintf(os.Stderr, "Usage:\n")
	fmt.Fprintf(os.Stderr, "\tsentdecode [options] trace.csv\n\n")
	fmt.Fprintf(os.Stderr, "trace.csv has one pulse per line: ticks,flags\n\n")
	pflag.PrintDefaults()
}

func main() {
	pflag.Usage = usage
	pflag.Parse()

	if *verbose {
		log.SetLevel(log.DebugLevel)
	}

	if pflag.NArg() != 1 {
		usage()
		os.Exit(2)
	}

	f, err := os.Open(pflag.Arg(0))
	if err != nil {
		log.Fatal("opening trace file", "err", err)
	}
	defer f.Close()

	if err := replay(f, sent.NewChannel()); err != nil {
		log.Fatal("replay failed", "err", err)
	}
}

// replay feeds every (ticks, flags) row in r through c, logging frame
// acceptances, rejections, and a final summary of the channel's counters.
func replay(r io.Reader, c *sent.Channel) error {
	cr := csv.NewReader(bufio.NewReader(r))
	cr.FieldsPerRecord = 2
	cr.TrimLeadingSpace = true

	lineNo := 0
	for {
		record, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return fmt.Errorf("sentdecode: reading trace: %w", err)
		}
		lineNo++

		ticks, err := strconv.ParseUint(record[0], 10, 32)
		if err != nil {
			return fmt.Errorf("sentdecode: line %d: bad ticks field %q: %w", lineNo, record[0], err)
		}
		flags, err := strconv.ParseUint(record[1], 10, 8)
		if err != nil {
			return fmt.Errorf("sentdecode: line %d: bad flags field %q: %w", lineNo, record[1], err)
		}

		result := c.Decode(uint32(ticks), uint8(flags))

		switch {
		case result == 1:
			msg, _ := c.GetMsg()
			sig, _ := c.GetSignals()
			log.Info("frame accepted", "line", lineNo, "msg", fmt.Sprintf("0x%08X", msg),
				"status", sig.Status, "sig0", sig.Sig0, "sig1", sig.Sig1)
		case result == -1:
			log.Warn("frame rejected", "line", lineNo, "state", c.State())
		case *verbose:
			log.Debug("pulse", "line", lineNo, "ticks", ticks, "state", c.State())
		}
	}

	stats := c.Stats()
	periodUs := float64(c.GetTickTime()) * *tickPeriodNanos / 1000
	log.Info("replay complete",
		"frames", stats.FrameCnt, "restarts", stats.RestartCnt,
		"total_errors", stats.TotalError(), "tick_per_unit_us", periodUs)

	return nil
}
