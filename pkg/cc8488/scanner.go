// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2026 Kestrel Weatherworks

package cc8488

import "errors"

// ScanBufLen bounds the Scanner's accumulation buffer: two full frames, so a
// frame straddling a read boundary always fits alongside leading garbage.
const ScanBufLen = 2 * MaxFrameLen

// ErrScanOverflow is returned when garbage fills the scan buffer without a
// frame header appearing. The scanner resets itself and scanning may resume.
var ErrScanOverflow = errors.New("cc8488: scan buffer overflow without frame header")

// Scanner reassembles frames from an arbitrary byte stream. It discards line
// noise between frames by resynchronizing on the header marker, accumulates
// partial frames across reads, and verifies each candidate through
// DecodeFrame. The buffer is fixed capacity; Scanner never allocates.
type Scanner struct {
	buf     [ScanBufLen]byte
	n       int
	skipped int
}

// Skipped reports how many garbage bytes have been discarded since the last
// Reset, for link diagnostics.
func (s *Scanner) Skipped() int { return s.skipped }

// Buffered reports how many bytes are waiting to be decoded.
func (s *Scanner) Buffered() int { return s.n }

// Reset discards all buffered bytes and counters.
func (s *Scanner) Reset() {
	s.n = 0
	s.skipped = 0
}

// Push appends newly read bytes to the scan buffer. Leading bytes that
// cannot start a frame are discarded first; if the buffer still cannot hold
// p, the scanner resets and reports ErrScanOverflow.
func (s *Scanner) Push(p []byte) error {
	s.resync()
	if s.n+len(p) > ScanBufLen {
		drop := s.n
		s.n = 0
		s.skipped += drop
		if len(p) > ScanBufLen {
			return ErrScanOverflow
		}
	}
	copy(s.buf[s.n:], p)
	s.n += len(p)
	s.resync()
	return nil
}

// Next extracts the next complete frame from the buffer.
//
// A TruncatedError means no complete frame is buffered yet: read more bytes
// and Push again. A ChecksumError consumes the bad frame so scanning resumes
// at the next marker. The returned frame's payload aliases the scan buffer
// and is invalidated by the next Push; Clone it to keep it.
func (s *Scanner) Next() (Frame, error) {
	s.resync()

	frame, consumed, err := DecodeFrame(s.buf[:s.n])
	switch err.(type) {
	case nil:
		s.consume(consumed)
		return frame, nil
	case *TruncatedError:
		return Frame{}, err
	case *ChecksumError:
		// Drop the whole corrupt frame, not one byte: its interior may
		// contain marker bytes that would decode as garbage frames.
		s.consumeBad()
		return Frame{}, err
	case *BadHeaderError:
		s.consumeBad()
		return Frame{}, err
	default:
		return Frame{}, err
	}
}

// resync drops buffered bytes until the buffer starts with the frame marker
// (or with a lone trailing 0xFC that may become a marker).
func (s *Scanner) resync() {
	i := 0
	for i < s.n {
		if s.buf[i] == Marker0 && (i+1 == s.n || s.buf[i+1] == Marker1) {
			break
		}
		i++
	}
	if i > 0 {
		s.consume(i)
		s.skipped += i
	}
}

// consumeBad skips past a frame that failed verification.
func (s *Scanner) consumeBad() {
	// The header was plausible, so skip the declared extent if known,
	// otherwise just the marker so resync can hunt for the next one.
	n := MarkerLen
	if s.n >= HeaderLen {
		plen := int(s.buf[3])<<8 | int(s.buf[4])
		if plen <= MaxPayloadLen && HeaderLen+plen+ChecksumLen <= s.n {
			n = HeaderLen + plen + ChecksumLen
		}
	}
	s.skipped += n
	s.consume(n)
}

func (s *Scanner) consume(n int) {
	if n >= s.n {
		s.n = 0
		return
	}
	copy(s.buf[:], s.buf[n:s.n])
	s.n -= n
}
