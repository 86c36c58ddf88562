// SPDX-License-Identifier: ISC
// Copyright (c) 2019-2021 Hall of Heros Developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package token - in-process token service
//
// Implements the approve/transfer/issue contract the processor treats
// as an external service.  All mutations go through staged account
// copies, so a failing instruction discards them with the rest of the
// transaction.
package token

import (
	"github.com/bitmark-inc/logger"

	"github.com/hallofheros/herosd/account"
	"github.com/hallofheros/herosd/accountstore"
	"github.com/hallofheros/herosd/authority"
	"github.com/hallofheros/herosd/fault"
)

// Service - the token service
//
// ProgramKey and Tag pin the derivation the authority proof is
// checked against
type Service struct {
	log        *logger.L
	programKey account.Key
	tag        string
}

// NewService - create a token service bound to one ledger program
func NewService(programKey account.Key, tag string) *Service {
	return &Service{
		log:        logger.New("token"),
		programKey: programKey,
		tag:        tag,
	}
}

// Approve - record a delegate on a holding
//
// only the current holder may grant, and only with a signature
func (s *Service) Approve(holding *accountstore.Account, delegate account.Key, owner account.Key, ownerSigned bool, amount uint64) error {
	if !ownerSigned {
		return fault.ErrMissingRequiredSignature
	}

	h, err := UnpackHolding(holding.Data)
	if nil != err {
		return err
	}

	if h.Holder != owner {
		return fault.ErrWrongOwnerForHolding
	}
	if h.Amount < amount {
		return fault.ErrInsufficientTokenBalance
	}

	h.Delegate = delegate
	h.DelegatedAmount = amount
	copy(holding.Data, h.Pack())

	s.log.Debugf("approve: holding: %s  delegate: %s  amount: %d", holding.Key, delegate, amount)
	return nil
}

// Transfer - move one unit between holdings under a delegated authority
//
// the proof must verify against this service's program key and tag
// and must match the delegate recorded on the source holding; every
// asset is a single indivisible unit so any other amount is invalid
func (s *Service) Transfer(from *accountstore.Account, to *accountstore.Account, proof *authority.Authority, amount uint64) error {
	if 1 != amount {
		return fault.ErrTransferAmountNotOne
	}
	if nil == proof || !proof.Verify(s.programKey, s.tag) {
		return fault.ErrNotDelegatedAuthority
	}

	source, err := UnpackHolding(from.Data)
	if nil != err {
		return err
	}
	destination, err := UnpackHolding(to.Data)
	if nil != err {
		return err
	}

	if !source.HasDelegate() || source.Delegate != proof.Key {
		return fault.ErrNotDelegatedAuthority
	}
	if source.Amount < amount || source.DelegatedAmount < amount {
		return fault.ErrInsufficientTokenBalance
	}
	if source.Asset != destination.Asset {
		return fault.ErrAssetKeyMismatch
	}

	source.Amount -= amount
	source.DelegatedAmount -= amount
	if 0 == source.DelegatedAmount {
		source.Delegate = account.Key{}
	}
	destination.Amount += amount

	copy(from.Data, source.Pack())
	copy(to.Data, destination.Pack())

	s.log.Debugf("transfer: %s -> %s  amount: %d", from.Key, to.Key, amount)
	return nil
}

// Issue - create a fresh holding of one unit for a reissued asset
//
// used by the reissue buy strategy when each sale mints a new asset
// instance bound to the same slot
func (s *Service) Issue(trx *accountstore.Transaction, holdingKey account.Key, asset account.Key, holder account.Key) error {
	h := &Holding{
		Asset:  asset,
		Holder: holder,
		Amount: 1,
	}
	trx.Create(&accountstore.Account{
		Key:  holdingKey,
		Data: h.Pack(),
	})

	s.log.Debugf("issue: holding: %s  asset: %s  holder: %s", holdingKey, asset, holder)
	return nil
}
