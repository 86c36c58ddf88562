// SPDX-License-Identifier: ISC
// Copyright (c) 2019-2021 Hall of Heros Developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package authority - program controlled signing identity
//
// The ledger moves assets it does not own, so it needs an identity the
// token service will honour as a delegate.  No private key exists for
// it: the handle is derived from a fixed domain tag and the program
// key by searching nonces downward until the digest cannot be a real
// ed25519 public key.  Possession of the (tag, nonce) pair that
// reproduces the handle is the authority proof.
package authority

import (
	"filippo.io/edwards25519"
	"golang.org/x/crypto/sha3"

	"github.com/hallofheros/herosd/account"
	"github.com/hallofheros/herosd/fault"
)

// domain separation marker appended to every derivation
const derivationMarker = "hero program authority"

// Authority - a derived authority handle
//
// derive once at startup and pass explicitly to whoever needs it
type Authority struct {
	Key   account.Key
	Nonce uint8
}

// Recover - recompute the handle for a given nonce
func Recover(programKey account.Key, tag string, nonce uint8) account.Key {
	h := sha3.New256()
	h.Write([]byte(tag))
	h.Write([]byte{nonce})
	h.Write(programKey.Bytes())
	h.Write([]byte(derivationMarker))

	var k account.Key
	copy(k[:], h.Sum(nil))
	return k
}

// Derive - search the nonce space for a valid authority handle
//
// a handle is valid only if it is not a point on the ed25519 curve, so
// no signing key can ever collide with it
func Derive(programKey account.Key, tag string) (*Authority, error) {
	for nonce := 255; nonce >= 0; nonce -= 1 {
		candidate := Recover(programKey, tag, uint8(nonce))
		if offCurve(candidate) {
			return &Authority{
				Key:   candidate,
				Nonce: uint8(nonce),
			}, nil
		}
	}
	return nil, fault.ErrNoAuthorityFound
}

// Verify - check that an authority handle matches its derivation
//
// this is the proof check the token service runs before honouring a
// delegated transfer
func (a *Authority) Verify(programKey account.Key, tag string) bool {
	if !offCurve(a.Key) {
		return false
	}
	return Recover(programKey, tag, a.Nonce) == a.Key
}

// true if the 32 bytes cannot decode as an ed25519 curve point
func offCurve(k account.Key) bool {
	_, err := new(edwards25519.Point).SetBytes(k.Bytes())
	return nil != err
}
