package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/cheggaaa/pb"

	"github.com/joushou/arcweld/internal/devstream"
	"github.com/joushou/arcweld/internal/gcodeio"
	"github.com/joushou/arcweld/internal/gcodeout"
	"github.com/joushou/arcweld/internal/position"
	"github.com/joushou/arcweld/internal/weld"
)

var (
	inputFile  = flag.String("input", "", "G-code file to weld")
	outputFile = flag.String("output", "", "Location to write the welded program")
	dumpStdout = flag.Bool("stdout", false, "Write the welded program to stdout")

	resolutionMM = flag.Float64("resolution", 0.05, "Maximum deviation, in mm, between the original path and a fitted arc")
	minSegments  = flag.Int("min-segments", 3, "Minimum number of endpoints a fitted arc may span")
	maxSegments  = flag.Int("max-segments", 50, "Maximum number of endpoints a single fitted arc may span")
	precision    = flag.Int("precision", 5, "Decimal precision for passthrough linear moves")

	absoluteXYZ = flag.Bool("absolute-xyz", true, "Initial XYZ distance mode is absolute (G90)")
	absoluteE   = flag.Bool("absolute-e", false, "Initial extruder distance mode is absolute (M82)")

	device = flag.String("device", "", "Serial device to stream the welded program to")
	baud   = flag.Int("baud", 115200, "Baud rate for -device")
)

func main() {
	flag.Parse()
	if len(flag.Args()) > 0 {
		flag.Usage()
		os.Exit(1)
	}

	if *inputFile == "" {
		fmt.Fprintf(os.Stderr, "Error: no input file provided\n")
		flag.Usage()
		os.Exit(1)
	}
	if *outputFile == "" && *device == "" && !*dumpStdout {
		fmt.Fprintf(os.Stderr, "Error: no output location provided\n")
		flag.Usage()
		os.Exit(1)
	}

	raw, err := os.ReadFile(*inputFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: could not open file: %s\n", err)
		os.Exit(2)
	}

	doc, err := gcodeio.ParseString(string(raw))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: could not parse file: %s\n", err)
		os.Exit(3)
	}

	results := weld.Run(doc, position.Config{
		AbsoluteXYZ: *absoluteXYZ,
		AbsoluteE:   *absoluteE,
	}, weld.Config{
		MinSegments:  *minSegments,
		MaxSegments:  *maxSegments,
		ResolutionMM: *resolutionMM,
	})

	output := render(results)

	if *dumpStdout {
		fmt.Print(output)
	}
	if *outputFile != "" {
		if err := os.WriteFile(*outputFile, []byte(output), 0644); err != nil {
			fmt.Fprintf(os.Stderr, "Error: could not write to file: %s\n", err)
			os.Exit(2)
		}
	}

	if *device != "" {
		streamToDevice(results)
	}
}

// render formats the welded program as newline-terminated G-code text.
func render(results []weld.WeldResult) string {
	out := ""
	var linear gcodeout.LinearWriter
	for _, r := range results {
		switch r.Kind {
		case weld.KindArc:
			out += gcodeout.FormatArc(r.Arc, r.ERelative, r.Feedrate) + "\n"
		default:
			out += linear.Format(r.Point, r.ERelative, r.Feedrate, *precision) + "\n"
		}
	}
	return out
}

func streamToDevice(results []weld.WeldResult) {
	startTime := time.Now()

	pBar := pb.StartNew(len(results))
	pBar.Format("[=> ]")

	progress := make(chan int)
	sigchan := make(chan string, 1)
	registerSignals(sigchan)

	go func() {
		for sig := range sigchan {
			if sig == "interrupt" {
				fmt.Fprintf(os.Stderr, "\nStopping...\n")
				os.Exit(7)
			}
		}
	}()

	go func() {
		err := devstream.Stream(devstream.Config{
			Port:      *device,
			Baud:      *baud,
			Precision: *precision,
		}, results, progress)
		if err != nil {
			fmt.Fprintf(os.Stderr, "\nStreaming failed: %s\n", err)
			os.Exit(2)
		}
	}()

	for range progress {
		pBar.Increment()
	}
	pBar.Finish()
	fmt.Fprintf(os.Stderr, "%s\n", time.Since(startTime).String())
}
