// SPDX-License-Identifier: ISC
// Copyright (c) 2019-2021 Hall of Heros Developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package delegate - delegated transfer coordination
//
// Bridges the program controlled authority to the token service so
// the ledger can move assets it does not own.  Exactly one unit is
// ever delegated or moved: hero assets are non-fungible.
package delegate

import (
	"github.com/bitmark-inc/logger"

	"github.com/hallofheros/herosd/account"
	"github.com/hallofheros/herosd/accountstore"
	"github.com/hallofheros/herosd/authority"
)

// one unit per asset, always
const assetUnit = 1

// TokenService - the part of the token service the coordinator uses
type TokenService interface {
	Approve(holding *accountstore.Account, delegate account.Key, owner account.Key, ownerSigned bool, amount uint64) error
	Transfer(from *accountstore.Account, to *accountstore.Account, proof *authority.Authority, amount uint64) error
}

// Coordinator - signs token requests on behalf of the program authority
type Coordinator struct {
	log       *logger.L
	authority *authority.Authority
	token     TokenService
}

// New - create a coordinator for one derived authority
func New(auth *authority.Authority, tokenService TokenService) *Coordinator {
	return &Coordinator{
		log:       logger.New("delegate"),
		authority: auth,
		token:     tokenService,
	}
}

// Authority - the handle this coordinator signs for
func (c *Coordinator) Authority() account.Key {
	return c.authority.Key
}

// ApproveToAuthority - holder grants the program authority one unit
//
// failure is fatal for the whole instruction; no partial delegation
// state is a valid end state
func (c *Coordinator) ApproveToAuthority(holding *accountstore.Account, owner account.Key, ownerSigned bool) error {
	c.log.Debugf("approve to authority: holding: %s  owner: %s", holding.Key, owner)
	return c.token.Approve(holding, c.authority.Key, owner, ownerSigned, assetUnit)
}

// SignedTransfer - move one unit under the authority proof
//
// no human signer is involved; the (tag, nonce) derivation is the
// proof presented to the token service
func (c *Coordinator) SignedTransfer(from *accountstore.Account, to *accountstore.Account) error {
	c.log.Debugf("signed transfer: %s -> %s", from.Key, to.Key)
	return c.token.Transfer(from, to, c.authority, assetUnit)
}
