// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2026 Kestrel Weatherworks

package station

import "time"

// Config holds the client configuration.
type Config struct {
	// Timeout is the total response budget for one Exchange, covering the
	// initial send and all retries.
	Timeout time.Duration

	// Retries is the number of re-sends after a corrupt response
	// (bad header, checksum mismatch, malformed payload).
	Retries int

	// PollInterval is how long to idle after an empty read before asking
	// the transport again. Only matters for transports without a native
	// read timeout.
	PollInterval time.Duration

	// Logger receives exchange diagnostics (optional)
	Logger Logger
}

// defaultConfig returns the default configuration.
func defaultConfig() Config {
	return Config{
		Timeout:      3 * time.Second,
		Retries:      2,
		PollInterval: 20 * time.Millisecond,
	}
}

// Option is a functional option for configuring the Client.
type Option func(*Config)

// WithTimeout sets the total response budget per Exchange.
//
// Example:
//
//	c := station.New(device, station.WithTimeout(10*time.Second))
func WithTimeout(timeout time.Duration) Option {
	return func(c *Config) {
		if timeout > 0 {
			c.Timeout = timeout
		}
	}
}

// WithRetries sets the number of re-sends after a corrupt response.
// Default is 2.
//
// Example:
//
//	c := station.New(device, station.WithRetries(0))
func WithRetries(retries int) Option {
	return func(c *Config) {
		if retries >= 0 {
			c.Retries = retries
		}
	}
}

// WithPollInterval sets the idle delay between empty reads.
func WithPollInterval(interval time.Duration) Option {
	return func(c *Config) {
		if interval >= 0 {
			c.PollInterval = interval
		}
	}
}

// WithLogger sets a logger for exchange diagnostics.
//
// Example:
//
//	c := station.New(device, station.WithLogger(myLogger))
func WithLogger(logger Logger) Option {
	return func(c *Config) {
		c.Logger = logger
	}
}
