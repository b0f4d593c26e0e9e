// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2026 Kestrel Weatherworks

package station

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/kestrelwx/stationctl/pkg/cc8488"
)

var testObservation = cc8488.Observation{
	Time:        cc8488.Timestamp{Year: 2020, Month: 1, Day: 17, Hour: 17, Minute: 30},
	Temperature: 204,
	Humidity:    49,
	Pressure:    10170,
	WindSpeed:   60,
	WindDir:     129,
	RainTotal:   0,
}

func currentFrame(t *testing.T) []byte {
	t.Helper()
	b, err := cc8488.EncodeReading(cc8488.CurrentReading{Observation: testObservation})
	if err != nil {
		t.Fatalf("EncodeReading error: %v", err)
	}
	return b
}

// fakeTransport replays scripted reads and records every write. An exhausted
// script reads empty, like a transport whose read timeout expired.
type fakeTransport struct {
	writes   [][]byte
	reads    [][]byte
	writeErr error
	timeouts []time.Duration
}

func (f *fakeTransport) Write(p []byte) (int, error) {
	if f.writeErr != nil {
		return 0, f.writeErr
	}
	f.writes = append(f.writes, append([]byte{}, p...))
	return len(p), nil
}

func (f *fakeTransport) Read(p []byte) (int, error) {
	if len(f.reads) == 0 {
		return 0, nil
	}
	chunk := f.reads[0]
	f.reads = f.reads[1:]
	return copy(p, chunk), nil
}

func (f *fakeTransport) SetReadTimeout(d time.Duration) error {
	f.timeouts = append(f.timeouts, d)
	return nil
}

func fastOpts(extra ...Option) []Option {
	opts := []Option{
		WithTimeout(200 * time.Millisecond),
		WithPollInterval(time.Millisecond),
	}
	return append(opts, extra...)
}

func TestClient_Exchange(t *testing.T) {
	dev := &fakeTransport{reads: [][]byte{currentFrame(t)}}
	c := New(dev, fastOpts()...)

	r, err := c.Exchange(context.Background(), cc8488.QueryCurrent{})
	if err != nil {
		t.Fatalf("Exchange error: %v", err)
	}
	cur, ok := r.(cc8488.CurrentReading)
	if !ok {
		t.Fatalf("reading type %T, want CurrentReading", r)
	}
	if cur.Observation != testObservation {
		t.Errorf("observation %+v, want %+v", cur.Observation, testObservation)
	}

	if len(dev.writes) != 1 {
		t.Errorf("wrote %d commands, want 1", len(dev.writes))
	}
	if len(dev.timeouts) == 0 {
		t.Error("SetReadTimeout never called on capable transport")
	}

	s := c.Stats()
	if s.Exchanges != 1 || s.Readings != 1 || s.Retries != 0 {
		t.Errorf("stats %d/%d/%d, want 1/1/0", s.Exchanges, s.Readings, s.Retries)
	}
}

// A response split across reads must reassemble within the budget.
func TestClient_Exchange_FragmentedResponse(t *testing.T) {
	frame := currentFrame(t)
	dev := &fakeTransport{reads: [][]byte{frame[:3], frame[3:10], frame[10:]}}
	c := New(dev, fastOpts()...)

	if _, err := c.Exchange(context.Background(), cc8488.QueryCurrent{}); err != nil {
		t.Fatalf("Exchange error: %v", err)
	}
}

func TestClient_Exchange_SilentTransportTimesOut(t *testing.T) {
	dev := &fakeTransport{}
	c := New(dev, WithTimeout(30*time.Millisecond), WithPollInterval(time.Millisecond))

	_, err := c.Exchange(context.Background(), cc8488.QueryCurrent{})
	var terr *TimeoutError
	if !errors.As(err, &terr) {
		t.Fatalf("expected TimeoutError, got %v", err)
	}
	if terr.Attempts != 1 {
		t.Errorf("Attempts = %d, want 1 (timeout is never retried)", terr.Attempts)
	}
	if c.Stats().Timeouts != 1 {
		t.Errorf("Timeouts = %d, want 1", c.Stats().Timeouts)
	}
}

// A corrupt response consumes exactly one retry: the command goes out again
// and the clean second response completes the exchange.
func TestClient_Exchange_CorruptThenValid(t *testing.T) {
	frame := currentFrame(t)
	corrupt := append([]byte{}, frame...)
	corrupt[13] ^= 0x03

	dev := &fakeTransport{reads: [][]byte{corrupt, frame}}
	c := New(dev, fastOpts()...)

	if _, err := c.Exchange(context.Background(), cc8488.QueryCurrent{}); err != nil {
		t.Fatalf("Exchange error: %v", err)
	}
	if len(dev.writes) != 2 {
		t.Errorf("wrote %d commands, want 2", len(dev.writes))
	}
	s := c.Stats()
	if s.Retries != 1 || s.ChecksumErrors != 1 || s.Readings != 1 {
		t.Errorf("stats retries=%d crc=%d readings=%d, want 1/1/1", s.Retries, s.ChecksumErrors, s.Readings)
	}
}

func TestClient_Exchange_RetriesExhausted(t *testing.T) {
	frame := currentFrame(t)
	corrupt := append([]byte{}, frame...)
	corrupt[13] ^= 0x03

	dev := &fakeTransport{reads: [][]byte{corrupt, corrupt, corrupt}}
	c := New(dev, fastOpts(WithRetries(2))...)

	_, err := c.Exchange(context.Background(), cc8488.QueryCurrent{})
	var cerr *cc8488.ChecksumError
	if !errors.As(err, &cerr) {
		t.Fatalf("expected ChecksumError, got %v", err)
	}
	if len(dev.writes) != 3 {
		t.Errorf("wrote %d commands, want 3 (initial + 2 retries)", len(dev.writes))
	}
}

func TestClient_Exchange_WriteFailureNotRetried(t *testing.T) {
	dev := &fakeTransport{writeErr: errors.New("device unplugged")}
	c := New(dev, fastOpts()...)

	_, err := c.Exchange(context.Background(), cc8488.QueryCurrent{})
	var werr *TransportError
	if !errors.As(err, &werr) {
		t.Fatalf("expected TransportError, got %v", err)
	}
	if werr.Op != "write" {
		t.Errorf("Op = %q, want \"write\"", werr.Op)
	}
	if c.Stats().Retries != 0 {
		t.Errorf("Retries = %d, want 0", c.Stats().Retries)
	}
}

// A frame answering an abandoned exchange is skipped, and the real response
// behind it completes the exchange.
func TestClient_Exchange_StaleFrameSkipped(t *testing.T) {
	stale, err := cc8488.EncodeReading(cc8488.ClockAck{Status: 0x00})
	if err != nil {
		t.Fatalf("EncodeReading error: %v", err)
	}
	dev := &fakeTransport{reads: [][]byte{stale, currentFrame(t)}}
	c := New(dev, fastOpts()...)

	r, err := c.Exchange(context.Background(), cc8488.QueryCurrent{})
	if err != nil {
		t.Fatalf("Exchange error: %v", err)
	}
	if _, ok := r.(cc8488.CurrentReading); !ok {
		t.Fatalf("reading type %T, want CurrentReading", r)
	}
	if c.Stats().StaleFrames != 1 {
		t.Errorf("StaleFrames = %d, want 1", c.Stats().StaleFrames)
	}
	if len(dev.writes) != 1 {
		t.Errorf("wrote %d commands, want 1 (stale frame is not a retry)", len(dev.writes))
	}
}

// An impossible SetClock timestamp fails before any transport I/O.
func TestClient_Exchange_EncodeErrorFatal(t *testing.T) {
	dev := &fakeTransport{}
	c := New(dev, fastOpts()...)

	_, err := c.Exchange(context.Background(), cc8488.SetClock{
		Time: cc8488.Timestamp{Year: 2020, Month: 2, Day: 30},
	})
	var terr *cc8488.TimestampError
	if !errors.As(err, &terr) {
		t.Fatalf("expected TimestampError, got %v", err)
	}
	if len(dev.writes) != 0 {
		t.Errorf("wrote %d commands, want 0", len(dev.writes))
	}
}

func TestClient_Exchange_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	dev := &fakeTransport{reads: [][]byte{currentFrame(t)}}
	c := New(dev, fastOpts()...)

	_, err := c.Exchange(ctx, cc8488.QueryCurrent{})
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
	if len(dev.writes) != 0 {
		t.Errorf("wrote %d commands after cancel, want 0", len(dev.writes))
	}
}

// reentrantTransport calls back into the client mid-read to prove the Busy
// guard rejects overlapping exchanges without transport I/O.
type reentrantTransport struct {
	fakeTransport
	client  *Client
	busyErr error
	called  bool
}

func (r *reentrantTransport) Read(p []byte) (int, error) {
	if !r.called {
		r.called = true
		_, r.busyErr = r.client.Exchange(context.Background(), cc8488.QueryCurrent{})
	}
	return r.fakeTransport.Read(p)
}

func TestClient_Exchange_BusyRejected(t *testing.T) {
	dev := &reentrantTransport{fakeTransport: fakeTransport{reads: [][]byte{currentFrame(t)}}}
	c := New(dev, fastOpts()...)
	dev.client = c

	if _, err := c.Exchange(context.Background(), cc8488.QueryCurrent{}); err != nil {
		t.Fatalf("outer Exchange error: %v", err)
	}
	if !errors.Is(dev.busyErr, ErrBusy) {
		t.Fatalf("inner Exchange: expected ErrBusy, got %v", dev.busyErr)
	}
	if len(dev.writes) != 1 {
		t.Errorf("wrote %d commands, want 1 (busy call must not touch the transport)", len(dev.writes))
	}
}
