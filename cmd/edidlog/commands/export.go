package commands

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/edid-tools/edidflash/pkg/capture"
)

// RunExport exports the capture file to the specified format.
func RunExport(path, format, output string) error {
	reader, err := capture.NewReader(path)
	if err != nil {
		return fmt.Errorf("failed to open capture file: %w", err)
	}
	defer reader.Close()

	// Determine output writer
	var w io.Writer = os.Stdout
	if output != "" {
		f, err := os.Create(output)
		if err != nil {
			return fmt.Errorf("failed to create output file: %w", err)
		}
		defer f.Close()
		w = f
	}

	switch format {
	case "jsonl":
		return exportJSONL(reader, w)
	case "csv":
		return exportCSV(reader, w)
	default:
		return fmt.Errorf("unknown format: %s (supported: jsonl, csv)", format)
	}
}

// exportEvent is the JSON shape of one transaction.
type exportEvent struct {
	Timestamp string `json:"timestamp"`
	SessionID string `json:"session_id"`
	Bus       int    `json:"bus"`
	Addr      int    `json:"addr"`
	Offset    int    `json:"offset"`
	Direction string `json:"direction"`
	Value     *byte  `json:"value,omitempty"`
	Outcome   string `json:"outcome"`
	Error     string `json:"error,omitempty"`
	Simulated bool   `json:"simulated,omitempty"`
}

func toExportEvent(event capture.Event) exportEvent {
	out := exportEvent{
		Timestamp: event.Timestamp.UTC().Format("2006-01-02T15:04:05.000000Z"),
		SessionID: event.SessionID,
		Bus:       event.Bus,
		Addr:      event.Addr,
		Offset:    event.Offset,
		Direction: event.Direction.String(),
		Outcome:   event.Outcome.String(),
		Error:     event.Error,
		Simulated: event.Simulated,
	}
	if event.Outcome == capture.OutcomeOK {
		v := event.Value
		out.Value = &v
	}
	return out
}

func exportJSONL(reader *capture.Reader, w io.Writer) error {
	encoder := json.NewEncoder(w)
	for {
		event, err := reader.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return fmt.Errorf("failed to read event: %w", err)
		}
		if err := encoder.Encode(toExportEvent(event)); err != nil {
			return fmt.Errorf("failed to encode event: %w", err)
		}
	}
	return nil
}

func exportCSV(reader *capture.Reader, w io.Writer) error {
	cw := csv.NewWriter(w)
	defer cw.Flush()

	header := []string{"timestamp", "session_id", "bus", "addr", "offset", "direction", "value", "outcome", "error", "simulated"}
	if err := cw.Write(header); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}

	for {
		event, err := reader.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return fmt.Errorf("failed to read event: %w", err)
		}

		value := ""
		if event.Outcome == capture.OutcomeOK {
			value = fmt.Sprintf("0x%02x", event.Value)
		}

		row := []string{
			event.Timestamp.UTC().Format("2006-01-02T15:04:05.000000Z"),
			event.SessionID,
			strconv.Itoa(event.Bus),
			fmt.Sprintf("0x%02x", event.Addr),
			fmt.Sprintf("0x%02x", event.Offset),
			event.Direction.String(),
			value,
			event.Outcome.String(),
			event.Error,
			strconv.FormatBool(event.Simulated),
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("failed to write row: %w", err)
		}
	}
	return nil
}
