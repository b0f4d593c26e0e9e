// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2026 Kestrel Weatherworks

// Package station implements the request/response client for CC8488-family
// weather stations. It owns the exchange state machine, the response budget
// and the retry policy; the wire codec lives in pkg/cc8488 and the concrete
// transports in pkg/link.
package station

import (
	"context"
	"errors"
	"io"
	"sync/atomic"
	"time"

	"github.com/kestrelwx/stationctl/pkg/cc8488"
)

// Transport carries frame bytes to and from a station. It is a plain byte
// stream: framing, checksums and reassembly are the client's problem. The
// client performs no device discovery or permission handling.
type Transport interface {
	io.Reader
	io.Writer
}

// ReadTimeoutSetter is implemented by transports with a native read timeout.
// When available the client bounds each read to the remaining exchange
// budget; otherwise it falls back to polling at the configured interval.
type ReadTimeoutSetter interface {
	SetReadTimeout(d time.Duration) error
}

// Exchange states. Tracked in an atomic so a concurrent Exchange call can be
// rejected without locks and without touching the transport.
const (
	stateIdle int32 = iota
	stateSent
	stateAwaiting
)

// Client drives one request/response exchange at a time over a Transport.
// A Client is not a connection pool: one instance, one in-flight exchange.
type Client struct {
	transport Transport
	config    Config
	state     atomic.Int32
	scanner   cc8488.Scanner
	stats     *Stats
}

// New creates a new Client over the given transport.
//
// Example:
//
//	dev, _ := link.OpenStation()
//	c := station.New(dev,
//	    station.WithTimeout(5*time.Second),
//	    station.WithRetries(1),
//	)
func New(transport Transport, opts ...Option) *Client {
	if transport == nil {
		panic("transport cannot be nil")
	}

	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}

	return &Client{
		transport: transport,
		config:    cfg,
		stats:     NewStats(),
	}
}

// Stats returns the client's statistics tracker. Counters are only updated
// between Exchange calls on the same goroutine that made them.
func (c *Client) Stats() *Stats { return c.stats }

// Exchange sends cmd and waits for its verified response.
//
// Corrupt responses (bad header, checksum mismatch, malformed payload) are
// retried by re-sending the whole command, up to the configured retry count
// and always within the single response budget. Write failures, timeouts and
// cancellation are terminal. Field-level encode failures (an impossible
// SetClock timestamp) surface immediately and never reach the transport.
//
// If another exchange is in flight, Exchange returns ErrBusy without any
// transport I/O.
func (c *Client) Exchange(ctx context.Context, cmd cc8488.Command) (cc8488.Reading, error) {
	if !c.state.CompareAndSwap(stateIdle, stateSent) {
		return nil, ErrBusy
	}
	defer c.state.Store(stateIdle)

	request, err := cc8488.EncodeCommand(cmd)
	if err != nil {
		return nil, err
	}

	c.stats.Exchanges++
	start := time.Now()
	deadline := start.Add(c.config.Timeout)
	if d, ok := ctx.Deadline(); ok && d.Before(deadline) {
		deadline = d
	}

	var lastErr error
	for attempt := 0; attempt <= c.config.Retries; attempt++ {
		if attempt > 0 {
			c.stats.Retries++
			c.logDebug("re-sending command",
				"opcode", cc8488.FormatOpcode(cmd.Opcode()),
				"attempt", attempt+1,
				"cause", lastErr,
			)
		}

		reading, err := c.attempt(ctx, cmd.Opcode(), request, start, deadline, attempt+1)
		if err == nil {
			c.stats.Readings++
			c.stats.LastUpdateTime = time.Now()
			return reading, nil
		}
		if !retryable(err) {
			return nil, err
		}
		lastErr = err
	}

	c.logError("exchange failed after retries",
		"opcode", cc8488.FormatOpcode(cmd.Opcode()),
		"attempts", c.config.Retries+1,
		"err", lastErr,
	)
	return nil, lastErr
}

// attempt performs one send and one wait-for-response pass.
func (c *Client) attempt(ctx context.Context, opcode byte, request []byte, start time.Time, deadline time.Time, attempt int) (cc8488.Reading, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	c.state.Store(stateSent)
	c.scanner.Reset()

	n, err := c.transport.Write(request)
	if err != nil {
		return nil, &TransportError{Op: "write", Err: err}
	}
	c.stats.BytesWritten += uint64(n)

	c.state.Store(stateAwaiting)
	var buf [cc8488.MaxFrameLen]byte
	for {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		remaining := time.Until(deadline)
		if remaining <= 0 {
			c.stats.Timeouts++
			return nil, &TimeoutError{Elapsed: time.Since(start), Attempts: attempt}
		}

		if ts, ok := c.transport.(ReadTimeoutSetter); ok {
			if err := ts.SetReadTimeout(remaining); err != nil {
				return nil, &TransportError{Op: "set read timeout", Err: err}
			}
		}

		n, err := c.transport.Read(buf[:])
		if err != nil {
			return nil, &TransportError{Op: "read", Err: err}
		}
		if n == 0 {
			// Transports with a read timeout return an empty read on
			// expiry; re-check the budget and poll again.
			if c.config.PollInterval > 0 {
				idle := c.config.PollInterval
				if idle > remaining {
					idle = remaining
				}
				time.Sleep(idle)
			}
			continue
		}
		c.stats.BytesRead += uint64(n)

		if err := c.scanner.Push(buf[:n]); err != nil {
			c.stats.HeaderErrors++
			return nil, err
		}

		reading, done, err := c.drain(opcode)
		if err != nil {
			return nil, err
		}
		if done {
			return reading, nil
		}
	}
}

// drain pulls complete frames out of the scanner. Frames answering a
// previous, abandoned exchange carry a different opcode and are skipped as
// stale chatter. done is false when more bytes are needed.
func (c *Client) drain(opcode byte) (reading cc8488.Reading, done bool, err error) {
	for {
		frame, err := c.scanner.Next()
		if err != nil {
			var trunc *cc8488.TruncatedError
			if errors.As(err, &trunc) {
				return nil, false, nil
			}
			var cerr *cc8488.ChecksumError
			var berr *cc8488.BadHeaderError
			switch {
			case errors.As(err, &cerr):
				c.stats.ChecksumErrors++
			case errors.As(err, &berr):
				c.stats.HeaderErrors++
			}
			return nil, false, err
		}

		if frame.Opcode != opcode {
			c.stats.StaleFrames++
			c.logDebug("skipping stale frame", "opcode", cc8488.FormatOpcode(frame.Opcode))
			continue
		}

		r, err := cc8488.DecodeReading(frame)
		if err != nil {
			c.stats.Malformed++
			return nil, false, err
		}
		return r, true, nil
	}
}

// retryable reports whether an attempt failure is worth a re-send: only
// response integrity errors are. Transport failures, timeouts, cancellation
// and field-level errors are terminal.
func retryable(err error) bool {
	var berr *cc8488.BadHeaderError
	var cerr *cc8488.ChecksumError
	var merr *cc8488.MalformedPayloadError
	return errors.As(err, &berr) ||
		errors.As(err, &cerr) ||
		errors.As(err, &merr) ||
		errors.Is(err, cc8488.ErrScanOverflow)
}
