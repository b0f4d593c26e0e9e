// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2026 Kestrel Weatherworks

package cmd

import (
	"github.com/spf13/cobra"
)

var (
	// Serial connection flags
	portName string
	baudRate int

	// WebSocket bridge flags
	wsURL         string
	wsUsername    string
	wsNoSSLVerify bool

	// Exchange policy flags
	exchangeTimeout int
	exchangeRetries int
)

var rootCmd = &cobra.Command{
	Use:   "stationctl",
	Short: "CC8488 weather station control tool",
	Long: `Stationctl - A CLI tool for querying and configuring CC8488-family
weather stations.

Provides commands for reading the live observation, walking the history
archive, setting the console clock and watching the station live.

Connection modes:
  USB HID:   default, first attached console (VID 0x1941 PID 0x8021)
  Serial:    --port /dev/ttyUSB0 [--baud 9600]
  WebSocket: --url ws://host/path [--username user]

For WebSocket authentication, the password is read from the
STATIONCTL_PASSWORD environment variable, or prompted interactively if not
set. The --password flag is intentionally not provided to avoid leaking
credentials in shell history.`,
	Version: "1.2.0",
}

func init() {
	// Serial connection flags
	rootCmd.PersistentFlags().StringVarP(&portName, "port", "p", "", "Serial port device")
	rootCmd.PersistentFlags().IntVarP(&baudRate, "baud", "b", 9600, "Baud rate (serial only)")

	// WebSocket bridge flags
	rootCmd.PersistentFlags().StringVarP(&wsURL, "url", "u", "", "WebSocket URL (ws:// or wss://)")
	rootCmd.PersistentFlags().StringVar(&wsUsername, "username", "", "Username for HTTP Basic auth")
	rootCmd.PersistentFlags().BoolVar(&wsNoSSLVerify, "no-ssl-verify", false, "Skip TLS certificate verification (wss:// only)")

	// Exchange policy flags
	rootCmd.PersistentFlags().IntVar(&exchangeTimeout, "timeout", 3, "Response budget per exchange in seconds")
	rootCmd.PersistentFlags().IntVar(&exchangeRetries, "retries", 2, "Re-sends after a corrupt response")
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}
