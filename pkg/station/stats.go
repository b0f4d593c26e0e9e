// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2026 Kestrel Weatherworks

package station

import (
	"fmt"
	"time"
)

// Stats tracks exchange statistics and error rates for one Client.
type Stats struct {
	StartTime      time.Time
	LastUpdateTime time.Time

	// Counters
	Exchanges      uint64
	Readings       uint64
	Retries        uint64
	ChecksumErrors uint64
	HeaderErrors   uint64
	Malformed      uint64
	Timeouts       uint64
	StaleFrames    uint64
	BytesWritten   uint64
	BytesRead      uint64

	// Rates (calculated)
	ExchangeRate float64 // exchanges/sec
	ErrorRate    float64 // errors/sec
}

// NewStats creates a new statistics tracker
func NewStats() *Stats {
	now := time.Now()
	return &Stats{
		StartTime:      now,
		LastUpdateTime: now,
	}
}

// Errors returns the total number of failed or corrupted responses.
func (s *Stats) Errors() uint64 {
	return s.ChecksumErrors + s.HeaderErrors + s.Malformed + s.Timeouts
}

// CalculateRates calculates exchange and error rates
func (s *Stats) CalculateRates() {
	elapsed := time.Since(s.StartTime).Seconds()
	if elapsed > 0 {
		s.ExchangeRate = float64(s.Exchanges) / elapsed
		s.ErrorRate = float64(s.Errors()) / elapsed
	}
}

// String returns a formatted statistics summary
func (s *Stats) String() string {
	s.CalculateRates()

	var readingPercent float64
	if s.Exchanges > 0 {
		readingPercent = float64(s.Readings) * 100.0 / float64(s.Exchanges)
	}

	elapsed := time.Since(s.StartTime)

	result := fmt.Sprintf("=== Link statistics (%.0f seconds) ===\n", elapsed.Seconds())
	result += fmt.Sprintf("Exchanges:       %8d\n", s.Exchanges)
	result += fmt.Sprintf("Readings:        %8d (%.1f%%)\n", s.Readings, readingPercent)

	if s.Retries > 0 {
		result += fmt.Sprintf("Retries:         %8d\n", s.Retries)
	}
	if s.ChecksumErrors > 0 {
		result += fmt.Sprintf("Checksum Errors: %8d\n", s.ChecksumErrors)
	}
	if s.HeaderErrors > 0 {
		result += fmt.Sprintf("Header Errors:   %8d\n", s.HeaderErrors)
	}
	if s.Malformed > 0 {
		result += fmt.Sprintf("Malformed:       %8d\n", s.Malformed)
	}
	if s.Timeouts > 0 {
		result += fmt.Sprintf("Timeouts:        %8d\n", s.Timeouts)
	}
	if s.StaleFrames > 0 {
		result += fmt.Sprintf("Stale Frames:    %8d\n", s.StaleFrames)
	}

	result += fmt.Sprintf("Bytes Out/In:    %8d / %d\n", s.BytesWritten, s.BytesRead)
	result += fmt.Sprintf("Exchange Rate:   %8.1f /sec\n", s.ExchangeRate)
	result += fmt.Sprintf("Error Rate:      %8.1f /sec\n", s.ErrorRate)
	result += "================================\n"

	return result
}

// Reset resets all statistics counters
func (s *Stats) Reset() {
	now := time.Now()
	*s = Stats{
		StartTime:      now,
		LastUpdateTime: now,
	}
}
