// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package vars

import (
	"encoding/hex"
	"fmt"

	"github.com/zeebo/blake3"

	"github.com/bureau-foundation/vardef/lib/codec"
)

// Fingerprint is a 32-byte BLAKE3 digest identifying the content of a
// Dictionary.
type Fingerprint [32]byte

// dictionaryDomainKey keys the BLAKE3 hash so dictionary fingerprints
// never collide with digests of the same bytes taken elsewhere. It is
// the ASCII domain name zero-padded to 32 bytes. Changing it changes
// every fingerprint.
var dictionaryDomainKey = [32]byte{
	'v', 'a', 'r', 'd', 'e', 'f', '.', 'd', 'i', 'c', 't', 'i', 'o', 'n', 'a', 'r',
	'y', 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0,
}

// Fingerprint hashes the Core Deterministic CBOR encoding of d. Equal
// dictionaries produce equal fingerprints regardless of insertion
// order, since keys are encoded sorted.
func (d Dictionary) Fingerprint() (Fingerprint, error) {
	data, err := Marshal(codec.CBOR, d)
	if err != nil {
		return Fingerprint{}, fmt.Errorf("vars: fingerprint: %w", err)
	}
	hasher, err := blake3.NewKeyed(dictionaryDomainKey[:])
	if err != nil {
		panic("vars: BLAKE3 keyed hash initialization failed: " + err.Error())
	}
	hasher.Write(data)
	var fingerprint Fingerprint
	copy(fingerprint[:], hasher.Sum(nil))
	return fingerprint, nil
}

// String returns the lowercase hex encoding.
func (f Fingerprint) String() string {
	return hex.EncodeToString(f[:])
}
