// SPDX-License-Identifier: ISC
// Copyright (c) 2019-2021 Hall of Heros Developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package token

import (
	"encoding/binary"

	"github.com/hallofheros/herosd/account"
	"github.com/hallofheros/herosd/fault"
)

// packed holding layout:
// asset 32 | holder 32 | amount u64 | delegate flag u8 | delegate 32 | delegated amount u64
const (
	assetOffset           = 0
	holderOffset          = assetOffset + account.KeySize
	amountOffset          = holderOffset + account.KeySize
	delegateFlagOffset    = amountOffset + 8
	delegateOffset        = delegateFlagOffset + 1
	delegatedAmountOffset = delegateOffset + account.KeySize

	// HoldingSize - fixed width of a packed holding record
	HoldingSize = delegatedAmountOffset + 8
)

// Holding - a token holding record
//
// a zero Delegate together with a clear flag means no delegation
type Holding struct {
	Asset           account.Key
	Holder          account.Key
	Amount          uint64
	Delegate        account.Key
	DelegatedAmount uint64
}

// HasDelegate - true when a delegate is recorded
func (h *Holding) HasDelegate() bool {
	return !h.Delegate.IsZero()
}

// Pack - fixed width binary form
func (h *Holding) Pack() []byte {
	buffer := make([]byte, HoldingSize)
	copy(buffer[assetOffset:], h.Asset.Bytes())
	copy(buffer[holderOffset:], h.Holder.Bytes())
	binary.BigEndian.PutUint64(buffer[amountOffset:], h.Amount)
	if h.HasDelegate() {
		buffer[delegateFlagOffset] = 1
		copy(buffer[delegateOffset:], h.Delegate.Bytes())
		binary.BigEndian.PutUint64(buffer[delegatedAmountOffset:], h.DelegatedAmount)
	}
	return buffer
}

// UnpackHolding - parse a holding record from an account buffer
//
// any malformed buffer is fatal for the calling transition
func UnpackHolding(data []byte) (*Holding, error) {
	if len(data) < HoldingSize {
		return nil, fault.ErrMalformedHoldingRecord
	}

	asset, err := account.KeyFromBytes(data[assetOffset : assetOffset+account.KeySize])
	if nil != err {
		return nil, fault.ErrMalformedHoldingRecord
	}
	holder, err := account.KeyFromBytes(data[holderOffset : holderOffset+account.KeySize])
	if nil != err {
		return nil, fault.ErrMalformedHoldingRecord
	}

	h := &Holding{
		Asset:  asset,
		Holder: holder,
		Amount: binary.BigEndian.Uint64(data[amountOffset:]),
	}

	switch data[delegateFlagOffset] {
	case 0:
		// no delegation: delegate field must be zero
		for _, b := range data[delegateOffset : delegateOffset+account.KeySize] {
			if 0 != b {
				return nil, fault.ErrMalformedHoldingRecord
			}
		}
	case 1:
		delegate, err := account.KeyFromBytes(data[delegateOffset : delegateOffset+account.KeySize])
		if nil != err {
			return nil, fault.ErrMalformedHoldingRecord
		}
		if delegate.IsZero() {
			return nil, fault.ErrMalformedHoldingRecord
		}
		h.Delegate = delegate
		h.DelegatedAmount = binary.BigEndian.Uint64(data[delegatedAmountOffset:])
	default:
		return nil, fault.ErrMalformedHoldingRecord
	}

	return h, nil
}
