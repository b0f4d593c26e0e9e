// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2026 Kestrel Weatherworks

package cmd

import (
	"context"
	"fmt"

	"github.com/kestrelwx/stationctl/pkg/cc8488"
	"github.com/spf13/cobra"
)

var (
	historyIndex int
	historyCount int
	historyJSON  bool
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Read archived observations",
	Long: `Query archived observations from the station's history ring.

Slot 0 is the most recent archived observation; higher indexes are older.
With --count, consecutive slots starting at --index are fetched in order.`,
	RunE: runHistory,
}

func init() {
	rootCmd.AddCommand(historyCmd)
	historyCmd.Flags().IntVar(&historyIndex, "index", 0, "First history slot to read (0 = most recent)")
	historyCmd.Flags().IntVar(&historyCount, "count", 1, "Number of consecutive slots to read")
	historyCmd.Flags().BoolVar(&historyJSON, "json", false, "Print observations as JSON")
}

func runHistory(cmd *cobra.Command, args []string) error {
	if historyIndex < 0 || historyIndex >= cc8488.HistorySlots {
		return fmt.Errorf("index %d out of range (0-%d)", historyIndex, cc8488.HistorySlots-1)
	}
	if historyCount < 1 || historyIndex+historyCount > cc8488.HistorySlots {
		return fmt.Errorf("count %d walks past the last slot", historyCount)
	}

	conn, _, err := OpenConnection()
	if err != nil {
		return err
	}
	defer conn.Close()

	client := newClient(conn)
	for i := 0; i < historyCount; i++ {
		slot := uint16(historyIndex + i)
		reading, err := client.Exchange(context.Background(), cc8488.QueryHistory{Index: slot})
		if err != nil {
			return fmt.Errorf("slot %d: %w", slot, err)
		}

		warnAnomalies(reading)
		if err := printReading(reading, historyJSON, false); err != nil {
			return err
		}
	}
	return nil
}
