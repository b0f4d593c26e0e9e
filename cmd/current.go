// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2026 Kestrel Weatherworks

package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/kestrelwx/stationctl/pkg/cc8488"
	"github.com/spf13/cobra"
)

var (
	currentJSON bool
	currentCBOR bool
)

var currentCmd = &cobra.Command{
	Use:   "current",
	Short: "Read the station's live observation",
	Long: `Query the station for its current observation and print it.

By default the observation is printed in human-readable form. With --json it
is printed as a JSON object; with --cbor the raw CBOR encoding is written to
stdout for piping into downstream collectors.

Implausible sensor values (humidity above 100%, wind direction past 359
degrees) are reported as warnings on stderr; the reading is still printed.`,
	RunE: runCurrent,
}

func init() {
	rootCmd.AddCommand(currentCmd)
	currentCmd.Flags().BoolVar(&currentJSON, "json", false, "Print the observation as JSON")
	currentCmd.Flags().BoolVar(&currentCBOR, "cbor", false, "Write the raw CBOR encoding to stdout")
}

func runCurrent(cmd *cobra.Command, args []string) error {
	conn, _, err := OpenConnection()
	if err != nil {
		return err
	}
	defer conn.Close()

	reading, err := newClient(conn).Exchange(context.Background(), cc8488.QueryCurrent{})
	if err != nil {
		return err
	}

	warnAnomalies(reading)
	return printReading(reading, currentJSON, currentCBOR)
}

// warnAnomalies reports implausible values on stderr without suppressing
// the reading itself.
func warnAnomalies(r cc8488.Reading) {
	for _, anomaly := range cc8488.ValidateReading(r) {
		fmt.Fprintf(os.Stderr, "WARNING: %s\n", anomaly.Message)
	}
}

func printReading(r cc8488.Reading, asJSON, asCBOR bool) error {
	switch {
	case asCBOR:
		data, err := cc8488.MarshalReadingCBOR(r)
		if err != nil {
			return err
		}
		_, err = os.Stdout.Write(data)
		return err

	case asJSON:
		data, err := json.MarshalIndent(r, "", "  ")
		if err != nil {
			return err
		}
		fmt.Println(string(data))
		return nil

	default:
		fmt.Print(cc8488.FormatReading(r))
		return nil
	}
}
