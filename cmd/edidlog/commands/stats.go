package commands

import (
	"fmt"
	"io"
	"sort"
	"time"

	"github.com/edid-tools/edidflash/pkg/capture"
)

// Stats holds aggregate statistics about a capture file.
type Stats struct {
	TotalEvents       int
	EventsByDirection map[capture.Direction]int
	EventsByOutcome   map[capture.Outcome]int
	Sessions          map[string]*SessionStats
	Simulated         int
	TimeRange         struct {
		Start time.Time
		End   time.Time
	}
}

// SessionStats holds statistics for a single session.
type SessionStats struct {
	FirstSeen time.Time
	LastSeen  time.Time
	Events    int
	Bus       int
	Errors    int
}

// RunStats analyzes the capture file and prints statistics.
func RunStats(path string, w io.Writer) error {
	reader, err := capture.NewReader(path)
	if err != nil {
		return fmt.Errorf("failed to open capture file: %w", err)
	}
	defer reader.Close()

	stats := &Stats{
		EventsByDirection: make(map[capture.Direction]int),
		EventsByOutcome:   make(map[capture.Outcome]int),
		Sessions:          make(map[string]*SessionStats),
	}

	for {
		event, err := reader.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return fmt.Errorf("failed to read event: %w", err)
		}
		stats.add(event)
	}

	printStats(w, stats)
	return nil
}

func (s *Stats) add(event capture.Event) {
	s.TotalEvents++
	s.EventsByDirection[event.Direction]++
	s.EventsByOutcome[event.Outcome]++
	if event.Simulated {
		s.Simulated++
	}

	if s.TimeRange.Start.IsZero() || event.Timestamp.Before(s.TimeRange.Start) {
		s.TimeRange.Start = event.Timestamp
	}
	if event.Timestamp.After(s.TimeRange.End) {
		s.TimeRange.End = event.Timestamp
	}

	sess, ok := s.Sessions[event.SessionID]
	if !ok {
		sess = &SessionStats{FirstSeen: event.Timestamp, Bus: event.Bus}
		s.Sessions[event.SessionID] = sess
	}
	sess.Events++
	sess.LastSeen = event.Timestamp
	if event.Outcome == capture.OutcomeError {
		sess.Errors++
	}
}

func printStats(w io.Writer, stats *Stats) {
	fmt.Fprintf(w, "Total transactions: %d\n", stats.TotalEvents)
	if stats.TotalEvents == 0 {
		return
	}

	fmt.Fprintf(w, "Time range: %s - %s\n",
		stats.TimeRange.Start.UTC().Format(time.RFC3339),
		stats.TimeRange.End.UTC().Format(time.RFC3339))

	fmt.Fprintf(w, "Reads: %d, Writes: %d\n",
		stats.EventsByDirection[capture.DirectionRead],
		stats.EventsByDirection[capture.DirectionWrite])
	fmt.Fprintf(w, "OK: %d, Errors: %d, Simulated: %d\n",
		stats.EventsByOutcome[capture.OutcomeOK],
		stats.EventsByOutcome[capture.OutcomeError],
		stats.Simulated)

	ids := make([]string, 0, len(stats.Sessions))
	for id := range stats.Sessions {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	fmt.Fprintf(w, "Sessions: %d\n", len(ids))
	for _, id := range ids {
		sess := stats.Sessions[id]
		fmt.Fprintf(w, "  %s  bus %d  %d transactions, %d errors\n",
			shortenSessionID(id), sess.Bus, sess.Events, sess.Errors)
	}
}
