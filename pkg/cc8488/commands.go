// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2026 Kestrel Weatherworks

package cc8488

// Command is one request the host can send to the station. The set is
// closed: the device family answers exactly these three opcodes.
type Command interface {
	Opcode() byte
	// appendPayload appends the request payload to dst. Field-level
	// validation (an impossible SetClock timestamp) is the only failure.
	appendPayload(dst []byte) ([]byte, error)
}

// QueryCurrent requests the station's live observation.
type QueryCurrent struct{}

func (QueryCurrent) Opcode() byte { return OpQueryCurrent }

func (QueryCurrent) appendPayload(dst []byte) ([]byte, error) {
	return dst, nil
}

// QueryHistory requests one archived observation. Index 0 is the most
// recent slot.
type QueryHistory struct {
	Index uint16
}

func (QueryHistory) Opcode() byte { return OpQueryHistory }

func (c QueryHistory) appendPayload(dst []byte) ([]byte, error) {
	return append(dst, byte(c.Index>>8), byte(c.Index)), nil
}

// SetClock sets the console's date and time. The timestamp is the console's
// local time; callers converting from UTC do so before building the command.
type SetClock struct {
	Time Timestamp
}

func (SetClock) Opcode() byte { return OpSetClock }

func (c SetClock) appendPayload(dst []byte) ([]byte, error) {
	var buf [TimestampLen]byte
	if err := EncodeTimestamp(c.Time, buf[:], 0); err != nil {
		return nil, err
	}
	return append(dst, buf[:]...), nil
}

// AppendCommand appends the complete request frame for cmd to dst.
// The only failure path is field-level encoding (never retried by clients).
func AppendCommand(dst []byte, cmd Command) ([]byte, error) {
	var scratch [MaxPayloadLen]byte
	payload, err := cmd.appendPayload(scratch[:0])
	if err != nil {
		return nil, err
	}
	return AppendFrame(dst, cmd.Opcode(), payload), nil
}

// EncodeCommand is the allocating convenience form of AppendCommand.
func EncodeCommand(cmd Command) ([]byte, error) {
	return AppendCommand(nil, cmd)
}
