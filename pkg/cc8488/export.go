// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2026 Kestrel Weatherworks

package cc8488

import (
	"fmt"

	"github.com/fxamacker/cbor/v2"
)

// cborEnc uses core deterministic encoding so exported readings are
// byte-stable across runs.
var cborEnc cbor.EncMode

func init() {
	var err error
	cborEnc, err = cbor.CoreDetEncOptions().EncMode()
	if err != nil {
		panic(fmt.Sprintf("cc8488: cbor encoder options: %v", err))
	}
}

// MarshalReadingCBOR encodes a reading as a compact integer-keyed CBOR map,
// suitable for piping into downstream collectors.
func MarshalReadingCBOR(r Reading) ([]byte, error) {
	return cborEnc.Marshal(r)
}

// UnmarshalObservationCBOR decodes an observation previously produced by
// MarshalReadingCBOR from a CurrentReading.
func UnmarshalObservationCBOR(data []byte) (Observation, error) {
	var o Observation
	if err := cbor.Unmarshal(data, &o); err != nil {
		return Observation{}, fmt.Errorf("failed to decode CBOR observation: %w", err)
	}
	return o, nil
}
