// SPDX-License-Identifier: ISC
// Copyright (c) 2019-2021 Hall of Heros Developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package oracle - read-only view of token holdings
//
// The ledger does not control token holdings; it only inspects them
// to decide who currently holds an asset.  Nothing here mutates.
package oracle

import (
	"github.com/hallofheros/herosd/account"
	"github.com/hallofheros/herosd/accountstore"
	"github.com/hallofheros/herosd/token"
)

// Holder - the oracle's answer for one holding account
type Holder struct {
	Identity account.Key
	Asset    account.Key
	Amount   uint64
}

// CurrentHolder - parse a holding account
//
// a malformed holding is a fatal validation error for the calling
// transition, never a retryable condition
func CurrentHolder(holding *accountstore.Account) (*Holder, error) {
	h, err := token.UnpackHolding(holding.Data)
	if nil != err {
		return nil, err
	}
	return &Holder{
		Identity: h.Holder,
		Asset:    h.Asset,
		Amount:   h.Amount,
	}, nil
}
