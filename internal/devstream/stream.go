// Package devstream streams a welded program to a GRBL/Marlin-class
// controller over a serial connection, gated on line-by-line "ok"/"error"
// acknowledgements the way firmware serial protocols expect. Grounded on the
// teacher's streaming/grbl.go: open the port, wait for the firmware banner,
// then send one line at a time, blocking for an ack before sending the next.
package devstream

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	serial "github.com/joushou/goserial"

	"github.com/joushou/arcweld/internal/gcodeout"
	"github.com/joushou/arcweld/internal/weld"
)

// Config configures a device stream.
type Config struct {
	Port      string
	Baud      int
	Precision int
}

const defaultBaud = 115200

// ackResult is one line read back from the controller.
type ackResult struct {
	level   string
	message string
}

func readAck(r *bufio.Reader) ackResult {
	line, err := r.ReadBytes('\n')
	if err != nil {
		return ackResult{"serial-error", err.Error()}
	}
	s := string(line)
	switch {
	case s == "ok\r\n":
		return ackResult{"ok", ""}
	case len(s) >= 5 && s[:5] == "error":
		return ackResult{"error", strings.TrimSpace(s[6:])}
	default:
		return ackResult{"info", strings.TrimSpace(s)}
	}
}

// connect opens port at baud, blocking until the firmware's startup banner
// is observed.
func connect(cfg Config) (io.ReadWriteCloser, *bufio.Reader, *bufio.Writer, error) {
	baud := cfg.Baud
	if baud == 0 {
		baud = defaultBaud
	}

	port, err := serial.OpenPort(&serial.Config{Name: cfg.Port, Baud: baud})
	if err != nil {
		return nil, nil, nil, fmt.Errorf("open serial port %s: %w", cfg.Port, err)
	}

	reader := bufio.NewReader(port)
	writer := bufio.NewWriter(port)

	for {
		line, err := reader.ReadBytes('\n')
		if err != nil {
			port.Close()
			return nil, nil, nil, fmt.Errorf("waiting for controller banner: %w", err)
		}
		m := string(line)
		if strings.TrimSpace(m) == "" {
			continue
		}
		// Any non-blank line is treated as the startup banner - firmware
		// banner formats vary too widely across GRBL/Marlin builds to match
		// exactly, unlike the teacher's GRBL-only ReadBytes check.
		break
	}

	return port, reader, writer, nil
}

// renderLine formats one WeldResult the way the output file would, plus a
// trailing newline for the wire. linear carries the Z-change tracking state
// across the whole program, the way renderLine's single caller in Stream
// feeds it one shared *gcodeout.LinearWriter for the entire stream.
func renderLine(linear *gcodeout.LinearWriter, r weld.WeldResult, precision int) string {
	switch r.Kind {
	case weld.KindArc:
		return gcodeout.FormatArc(r.Arc, r.ERelative, r.Feedrate) + "\n"
	default:
		return linear.Format(r.Point, r.ERelative, r.Feedrate, precision) + "\n"
	}
}

// Stream opens cfg.Port, waits for the controller's banner, then sends
// program one record at a time, blocking on each line's ack before sending
// the next and reporting the number of acknowledged records on progress.
// progress is closed when Stream returns, whether or not it returns an
// error.
func Stream(cfg Config, program []weld.WeldResult, progress chan<- int) (err error) {
	port, reader, writer, err := connect(cfg)
	if err != nil {
		close(progress)
		return err
	}
	defer port.Close()
	defer close(progress)

	var linear gcodeout.LinearWriter
	for i, r := range program {
		line := renderLine(&linear, r, cfg.Precision)

		if _, err := writer.WriteString(line); err != nil {
			return fmt.Errorf("write line %d: %w", i, err)
		}
		if err := writer.Flush(); err != nil {
			return fmt.Errorf("flush line %d: %w", i, err)
		}

		for acked := false; !acked; {
			ack := readAck(reader)
			switch ack.level {
			case "ok":
				progress <- i + 1
				acked = true
			case "error":
				return fmt.Errorf("controller rejected line %d: %s", i, ack.message)
			case "serial-error":
				return fmt.Errorf("reading ack for line %d: %s", i, ack.message)
			default:
				// Informational line (e.g. a status report) - not an ack,
				// keep waiting for the real one.
			}
		}
	}

	return nil
}

// Stop sends the standard soft-reset byte and closes the port, mirroring
// the teacher's GrblStreamer.Stop.
func Stop(port io.ReadWriteCloser) {
	_, _ = port.Write([]byte("\x18\n"))
	port.Close()
}
