// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2026 Kestrel Weatherworks

// Package link provides the concrete transports a station.Client runs over:
// the station's native USB HID interface, a direct serial line, and a
// WebSocket bridge for stations exposed over the network.
package link

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"
	"syscall"

	"golang.org/x/term"
)

// Conn is a transport with a lifetime: everything station.Transport needs,
// plus Close.
type Conn interface {
	io.Reader
	io.Writer
	io.Closer
}

// GetPassword retrieves the bridge password from the environment or prompts
// the user.
func GetPassword() (string, error) {
	if pw := os.Getenv("STATIONCTL_PASSWORD"); pw != "" {
		return pw, nil
	}

	fmt.Fprint(os.Stderr, "Password: ")

	passwordBytes, err := term.ReadPassword(int(syscall.Stdin))
	if err != nil {
		// Fallback to regular input if terminal functions fail
		reader := bufio.NewReader(os.Stdin)
		password, err := reader.ReadString('\n')
		if err != nil {
			return "", fmt.Errorf("failed to read password: %v", err)
		}
		fmt.Fprintln(os.Stderr)
		return strings.TrimSpace(password), nil
	}

	fmt.Fprintln(os.Stderr)
	return string(passwordBytes), nil
}
