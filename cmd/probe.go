// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2026 Kestrel Weatherworks

package cmd

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/kestrelwx/stationctl/pkg/cc8488"
	"github.com/spf13/cobra"
)

var probeTimeout int

var probeCmd = &cobra.Command{
	Use:   "probe",
	Short: "Test connection by waiting for a valid frame",
	Long: `Wait for a valid CC8488 frame on the connection until timeout.

This command connects to the station and sends a current-observation query,
then waits for any complete frame with a valid checksum. Line noise and
corrupt frames are skipped.

Exit codes:
  0 - Valid frame received before timeout
  1 - Timeout reached without receiving a valid frame
  2 - Connection error

Useful for testing connectivity to a console or a WebSocket bridge.`,
	RunE: runProbe,
}

func init() {
	rootCmd.AddCommand(probeCmd)
	probeCmd.Flags().IntVar(&probeTimeout, "timeout", 10, "Timeout in seconds to wait for a frame")
}

func runProbe(cmd *cobra.Command, args []string) error {
	conn, connInfo, err := OpenConnection()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Connection error: %v\n", err)
		os.Exit(2)
	}
	defer conn.Close()

	fmt.Printf("Stationctl - Probe\n")
	fmt.Printf("Connection: %s\n", connInfo)
	fmt.Printf("Timeout: %d seconds\n", probeTimeout)
	fmt.Printf("Waiting for valid frame...\n\n")

	// Nudge the console; some heads only speak when spoken to.
	request, _ := cc8488.EncodeCommand(cc8488.QueryCurrent{})
	if _, err := conn.Write(request); err != nil {
		fmt.Fprintf(os.Stderr, "Write error: %v\n", err)
		os.Exit(2)
	}

	frameChan := make(chan cc8488.Frame, 1)
	errChan := make(chan error, 1)

	// Reader goroutine
	go func() {
		var scanner cc8488.Scanner
		buf := make([]byte, cc8488.MaxFrameLen)
		for {
			n, err := conn.Read(buf)
			if err != nil {
				errChan <- err
				return
			}
			if n == 0 {
				continue
			}

			if err := scanner.Push(buf[:n]); err != nil {
				// Garbage flood; keep hunting for a header.
				continue
			}
			for {
				frame, err := scanner.Next()
				if err != nil {
					var trunc *cc8488.TruncatedError
					if errors.As(err, &trunc) {
						break
					}
					// Corrupt frame skipped, counted via Skipped()
					continue
				}
				if scanner.Skipped() > 0 {
					fmt.Printf("(skipped %d invalid bytes before sync)\n", scanner.Skipped())
				}
				frameChan <- frame.Clone()
				return
			}
		}
	}()

	select {
	case frame := <-frameChan:
		fmt.Printf("SUCCESS: Received valid frame\n")
		fmt.Printf("  %s", cc8488.FormatFrame(frame))
		os.Exit(0)

	case err := <-errChan:
		fmt.Fprintf(os.Stderr, "Read error: %v\n", err)
		os.Exit(2)

	case <-time.After(time.Duration(probeTimeout) * time.Second):
		fmt.Fprintf(os.Stderr, "TIMEOUT: No valid frame received within %d seconds\n", probeTimeout)
		os.Exit(1)
	}

	return nil
}
