// Package commands implements the edidlog CLI commands.
package commands

import (
	"fmt"
	"io"
	"strings"

	"github.com/edid-tools/edidflash/pkg/capture"
)

// RunView prints events from the capture file in human-readable form.
func RunView(path string, filter capture.Filter, w io.Writer) error {
	reader, err := capture.NewFilteredReader(path, filter)
	if err != nil {
		return fmt.Errorf("failed to open capture file: %w", err)
	}
	defer reader.Close()

	count := 0
	for {
		event, err := reader.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return fmt.Errorf("failed to read event: %w", err)
		}
		formatEvent(w, event)
		count++
	}

	fmt.Fprintf(w, "%d transactions\n", count)
	return nil
}

// formatEvent writes one transaction as a single line:
// timestamp [sess:id] DIRECTION bus/addr/offset value/outcome
func formatEvent(w io.Writer, event capture.Event) {
	ts := event.Timestamp.UTC().Format("2006-01-02T15:04:05.000000Z")
	sess := shortenSessionID(event.SessionID)

	var result string
	if event.Outcome == capture.OutcomeOK {
		result = fmt.Sprintf("0x%02x", event.Value)
	} else {
		result = "ERROR " + event.Error
	}

	sim := ""
	if event.Simulated {
		sim = " (sim)"
	}

	fmt.Fprintf(w, "%s [sess:%s] %-5s bus %d addr 0x%02x offset 0x%02x %s%s\n",
		ts, sess, event.Direction.String(), event.Bus, event.Addr, event.Offset, result, sim)
}

// shortenSessionID returns the first 8 characters of the session ID.
func shortenSessionID(id string) string {
	if len(id) >= 8 {
		return id[:8]
	}
	return id
}

// ParseDirectionFlag parses a -direction flag value.
func ParseDirectionFlag(s string) (capture.Direction, error) {
	switch strings.ToLower(s) {
	case "read":
		return capture.DirectionRead, nil
	case "write":
		return capture.DirectionWrite, nil
	default:
		return 0, fmt.Errorf("unknown direction %q (supported: read, write)", s)
	}
}

// ParseOutcomeFlag parses an -outcome flag value.
func ParseOutcomeFlag(s string) (capture.Outcome, error) {
	switch strings.ToLower(s) {
	case "ok":
		return capture.OutcomeOK, nil
	case "error":
		return capture.OutcomeError, nil
	default:
		return 0, fmt.Errorf("unknown outcome %q (supported: ok, error)", s)
	}
}
