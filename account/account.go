// SPDX-License-Identifier: ISC
// Copyright (c) 2019-2021 Hall of Heros Developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package account

import (
	"github.com/mr-tron/base58"
	"golang.org/x/crypto/ed25519"

	"github.com/hallofheros/herosd/fault"
)

// KeySize - bytes in a public key, asset key or authority handle
const KeySize = 32

// Key - identity of an account, asset or authority
//
// all three are the same width so one type covers the whole system
type Key [KeySize]byte

// KeyFromBytes - convert a byte slice to a key
func KeyFromBytes(b []byte) (Key, error) {
	var k Key
	if KeySize != len(b) {
		return k, fault.ErrInvalidKeyLength
	}
	copy(k[:], b)
	return k, nil
}

// KeyFromBase58 - convert a Base58 encoded string to a key
func KeyFromBase58(s string) (Key, error) {
	var k Key
	b, err := base58.Decode(s)
	if nil != err {
		return k, fault.ErrCannotDecodeKey
	}
	if KeySize != len(b) {
		return k, fault.ErrInvalidKeyLength
	}
	copy(k[:], b)
	return k, nil
}

// Bytes - key as a byte slice
func (k Key) Bytes() []byte {
	return k[:]
}

// IsZero - true for the all-zero key
func (k Key) IsZero() bool {
	for _, b := range k {
		if 0 != b {
			return false
		}
	}
	return true
}

// String - Base58 encoded key
func (k Key) String() string {
	return base58.Encode(k[:])
}

// MarshalText - for JSON and configuration output
func (k Key) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// UnmarshalText - decode a Base58 key
func (k *Key) UnmarshalText(s []byte) error {
	key, err := KeyFromBase58(string(s))
	if nil != err {
		return err
	}
	*k = key
	return nil
}

// Verify - check an ed25519 signature made by this key
func (k Key) Verify(message []byte, signature []byte) bool {
	if ed25519.SignatureSize != len(signature) {
		return false
	}
	return ed25519.Verify(ed25519.PublicKey(k[:]), message, signature)
}
