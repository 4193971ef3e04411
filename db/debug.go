package db

import (
	"fmt"
	"io"
	"time"
)

// PrintJournalCLI writes the most recent journal entries for the debug CLI.
func PrintJournalCLI(w io.Writer, dbPath string, limit int) error {
	conn, err := Open(dbPath)
	if err != nil {
		return err
	}
	defer conn.Close()

	readings, err := GetRecentBatteryReadings(conn, limit)
	if err != nil {
		return err
	}
	events, err := GetRecentPanelEvents(conn, limit)
	if err != nil {
		return err
	}

	fmt.Fprintln(w, "Battery readings:")
	for _, r := range readings {
		fmt.Fprintf(w, "  %s  %3d%%  %d cells\n", r.RecordedAt.Format(time.RFC3339), r.Percent, r.LitCells)
	}
	fmt.Fprintln(w, "Panel events:")
	for _, e := range events {
		fmt.Fprintf(w, "  %s  %-4s %s\n", e.RecordedAt.Format(time.RFC3339), e.Panel, e.Event)
	}
	return nil
}
