// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2026 Kestrel Weatherworks
//
// Stationctl - CC8488 Weather Station Control Tool
//
// A CLI tool for querying and configuring CC8488-family USB weather
// station consoles.

package main

import (
	"os"

	"github.com/kestrelwx/stationctl/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
