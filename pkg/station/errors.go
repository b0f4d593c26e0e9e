// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2026 Kestrel Weatherworks

package station

import (
	"errors"
	"fmt"
	"time"
)

// ErrBusy is returned by Exchange when another exchange is already in
// flight on the same Client. The transport is not touched.
var ErrBusy = errors.New("station: exchange already in flight")

// TimeoutError is returned when the response budget for an exchange is
// exhausted without a complete valid frame arriving.
type TimeoutError struct {
	Elapsed  time.Duration
	Attempts int
}

func (e *TimeoutError) Error() string {
	return fmt.Sprintf("station: no response after %v (%d attempts)", e.Elapsed.Round(time.Millisecond), e.Attempts)
}

// TransportError wraps a failure of the underlying transport. Transport
// failures are terminal for the exchange and are never retried.
type TransportError struct {
	Op  string // "write", "read", "set read timeout"
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("station: transport %s: %v", e.Op, e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }
