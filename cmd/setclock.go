// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2026 Kestrel Weatherworks

package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/kestrelwx/stationctl/pkg/cc8488"
	"github.com/spf13/cobra"
)

var setclockTime string

var setclockCmd = &cobra.Command{
	Use:   "setclock",
	Short: "Set the station's date and time",
	Long: `Set the console's clock.

Without --time the host's current local time is used. With --time the given
RFC 3339 timestamp is converted to local time first: the console keeps wall
clock time, not UTC. Sub-second precision is dropped.

The station clock only covers years 2000 through 2099.`,
	RunE: runSetclock,
}

func init() {
	rootCmd.AddCommand(setclockCmd)
	setclockCmd.Flags().StringVar(&setclockTime, "time", "", "Time to set, RFC 3339 (default: now)")
}

func runSetclock(cmd *cobra.Command, args []string) error {
	target := time.Now()
	if setclockTime != "" {
		parsed, err := time.Parse(time.RFC3339, setclockTime)
		if err != nil {
			return fmt.Errorf("invalid --time: %v", err)
		}
		target = parsed
	}
	ts := cc8488.TimestampOf(target.Local())

	conn, _, err := OpenConnection()
	if err != nil {
		return err
	}
	defer conn.Close()

	reading, err := newClient(conn).Exchange(context.Background(), cc8488.SetClock{Time: ts})
	if err != nil {
		return err
	}

	ack, ok := reading.(cc8488.ClockAck)
	if !ok {
		return fmt.Errorf("unexpected response %T", reading)
	}
	if !ack.Accepted() {
		return fmt.Errorf("console rejected clock update (status 0x%02X)", ack.Status)
	}

	fmt.Printf("Clock set to %s\n", ts)
	return nil
}
