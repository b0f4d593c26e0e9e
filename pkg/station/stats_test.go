// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2026 Kestrel Weatherworks

package station

import (
	"strings"
	"testing"
)

func TestStats_Errors(t *testing.T) {
	s := NewStats()
	s.ChecksumErrors = 2
	s.HeaderErrors = 1
	s.Malformed = 3
	s.Timeouts = 4
	s.StaleFrames = 9 // stale frames are not errors

	if got := s.Errors(); got != 10 {
		t.Errorf("Errors = %d, want 10", got)
	}
}

func TestStats_String(t *testing.T) {
	s := NewStats()
	s.Exchanges = 10
	s.Readings = 9
	s.Retries = 1
	s.ChecksumErrors = 1

	out := s.String()
	for _, want := range []string{"Exchanges:", "Readings:", "(90.0%)", "Retries:", "Checksum Errors:"} {
		if !strings.Contains(out, want) {
			t.Errorf("summary missing %q:\n%s", want, out)
		}
	}
	if strings.Contains(out, "Timeouts:") {
		t.Error("summary shows zero counter Timeouts")
	}
}

func TestStats_Reset(t *testing.T) {
	s := NewStats()
	s.Exchanges = 5
	s.BytesRead = 100
	s.Reset()

	if s.Exchanges != 0 || s.BytesRead != 0 {
		t.Errorf("counters survived Reset: %+v", s)
	}
	if s.StartTime.IsZero() {
		t.Error("StartTime zeroed by Reset")
	}
}
