// SPDX-License-Identifier: ISC
// Copyright (c) 2019-2021 Hall of Heros Developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package account

import (
	"crypto/rand"

	"github.com/mr-tron/base58"
	"golang.org/x/crypto/ed25519"

	"github.com/hallofheros/herosd/fault"
)

// PrivateKey - a signing key held by a client
//
// the daemon itself never holds one of these; only hero-cli and tests
// use them to sign instructions
type PrivateKey struct {
	key ed25519.PrivateKey
}

// NewKeyPair - generate a random signing key pair
func NewKeyPair() (Key, *PrivateKey, error) {
	publicKey, privateKey, err := ed25519.GenerateKey(rand.Reader)
	if nil != err {
		return Key{}, nil, err
	}
	k, err := KeyFromBytes(publicKey)
	if nil != err {
		return Key{}, nil, err
	}
	return k, &PrivateKey{key: privateKey}, nil
}

// PrivateKeyFromBase58 - decode a Base58 encoded 64 byte private key
func PrivateKeyFromBase58(s string) (*PrivateKey, error) {
	b, err := base58.Decode(s)
	if nil != err {
		return nil, fault.ErrCannotDecodeKey
	}
	if ed25519.PrivateKeySize != len(b) {
		return nil, fault.ErrInvalidKeyLength
	}
	return &PrivateKey{key: ed25519.PrivateKey(b)}, nil
}

// PrivateKeyFromSeed - deterministic key pair from a 32 byte seed
func PrivateKeyFromSeed(seed []byte) (*PrivateKey, error) {
	if ed25519.SeedSize != len(seed) {
		return nil, fault.ErrInvalidKeyLength
	}
	return &PrivateKey{key: ed25519.NewKeyFromSeed(seed)}, nil
}

// Public - the corresponding public key
func (p *PrivateKey) Public() Key {
	k, _ := KeyFromBytes(p.key.Public().(ed25519.PublicKey))
	return k
}

// Sign - sign a message
func (p *PrivateKey) Sign(message []byte) []byte {
	return ed25519.Sign(p.key, message)
}

// String - Base58 encoded private key
func (p *PrivateKey) String() string {
	return base58.Encode(p.key)
}
