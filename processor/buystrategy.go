// SPDX-License-Identifier: ISC
// Copyright (c) 2019-2021 Hall of Heros Developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package processor

import (
	"golang.org/x/crypto/sha3"

	"github.com/hallofheros/herosd/account"
	"github.com/hallofheros/herosd/accountstore"
	"github.com/hallofheros/herosd/delegate"
	"github.com/hallofheros/herosd/fault"
	"github.com/hallofheros/herosd/metadata"
)

// strategy names accepted in the configuration file
const (
	ResellStrategyName  = "resell"
	ReissueStrategyName = "reissue"
)

// BuyContext - everything a strategy may touch during steps 2 and 3
type BuyContext struct {
	trx             *accountstore.Transaction
	slot            uint8
	asset           account.Key
	buyerKey        account.Key
	buyerSigned     bool
	holdingFrom     *accountstore.Account
	holdingTo       *accountstore.Account
	metadataAccount *accountstore.Account // nil unless supplied
}

// BuyStrategy - how the asset reaches the buyer
//
// TransferAsset performs the asset movement and the re-delegation to
// the program authority, and returns the asset key the settled record
// must carry: the same key for a plain resale, a fresh key when each
// sale mints a new asset instance
type BuyStrategy interface {
	Name() string
	TransferAsset(ctx *BuyContext) (account.Key, error)
}

// TokenIssuer - minting side of the token service, reissue only
type TokenIssuer interface {
	Issue(trx *accountstore.Transaction, holdingKey account.Key, asset account.Key, holder account.Key) error
}

// BuyStrategyByName - select a strategy from its configured name
func BuyStrategyByName(name string, coordinator *delegate.Coordinator, issuer TokenIssuer, metadataService *metadata.Service) (BuyStrategy, error) {
	switch name {
	case ResellStrategyName:
		return &resellStrategy{coordinator: coordinator}, nil
	case ReissueStrategyName:
		return &reissueStrategy{
			coordinator:     coordinator,
			issuer:          issuer,
			metadataService: metadataService,
		}, nil
	default:
		return nil, fault.ErrInvalidBuyStrategy
	}
}

// resell: the same asset instance moves from holder to holder
type resellStrategy struct {
	coordinator *delegate.Coordinator
}

func (s *resellStrategy) Name() string { return ResellStrategyName }

func (s *resellStrategy) TransferAsset(ctx *BuyContext) (account.Key, error) {
	err := s.coordinator.SignedTransfer(ctx.holdingFrom, ctx.holdingTo)
	if nil != err {
		return account.Key{}, err
	}

	// the buyer re-grants so the ledger can sell the asset on
	err = s.coordinator.ApproveToAuthority(ctx.holdingTo, ctx.buyerKey, ctx.buyerSigned)
	if nil != err {
		return account.Key{}, err
	}

	return ctx.asset, nil
}

// reissue: the sold instance is retired and a replacement is minted
type reissueStrategy struct {
	coordinator     *delegate.Coordinator
	issuer          TokenIssuer
	metadataService *metadata.Service
}

func (s *reissueStrategy) Name() string { return ReissueStrategyName }

func (s *reissueStrategy) TransferAsset(ctx *BuyContext) (account.Key, error) {
	if nil == ctx.metadataAccount {
		return account.Key{}, fault.ErrTooFewAccounts
	}

	// content of the old instance survives on the new one
	oldMetadata, err := metadata.Unpack(ctx.metadataAccount.Data)
	if nil != err {
		return account.Key{}, err
	}
	if oldMetadata.Asset != ctx.asset {
		return account.Key{}, fault.ErrAssetKeyMismatch
	}

	err = s.metadataService.Retire(ctx.metadataAccount, s.coordinator.Authority())
	if nil != err {
		return account.Key{}, err
	}

	newAsset := ReissuedAssetKey(ctx.asset, ctx.slot)
	newHoldingKey := ReissuedHoldingKey(newAsset, ctx.buyerKey)

	err = s.issuer.Issue(ctx.trx, newHoldingKey, newAsset, ctx.buyerKey)
	if nil != err {
		return account.Key{}, err
	}

	err = s.metadataService.Create(ctx.trx, ReissuedMetadataKey(newAsset), &metadata.Metadata{
		Asset:           newAsset,
		UpdateAuthority: s.coordinator.Authority(),
		Name:            oldMetadata.Name,
		URI:             oldMetadata.URI,
	})
	if nil != err {
		return account.Key{}, err
	}

	newHolding, err := ctx.trx.Account(newHoldingKey)
	if nil != err {
		return account.Key{}, err
	}
	err = s.coordinator.ApproveToAuthority(newHolding, ctx.buyerKey, ctx.buyerSigned)
	if nil != err {
		return account.Key{}, err
	}

	return newAsset, nil
}

// deterministic keys for the reissued asset chain
//
// chaining on the old asset key makes every generation distinct even
// for the same slot; clients recompute the same keys to find the new
// accounts after a reissue sale

// ReissuedAssetKey - key of the asset minted to replace a sold one
func ReissuedAssetKey(oldAsset account.Key, slot uint8) account.Key {
	return deriveKey("hero reissued asset", oldAsset.Bytes(), []byte{slot})
}

// ReissuedHoldingKey - key of the buyer's holding of a reissued asset
func ReissuedHoldingKey(asset account.Key, holder account.Key) account.Key {
	return deriveKey("hero reissued holding", asset.Bytes(), holder.Bytes())
}

// ReissuedMetadataKey - key of the metadata of a reissued asset
func ReissuedMetadataKey(asset account.Key) account.Key {
	return deriveKey("hero reissued metadata", asset.Bytes())
}

func deriveKey(domain string, parts ...[]byte) account.Key {
	h := sha3.New256()
	h.Write([]byte(domain))
	for _, part := range parts {
		h.Write(part)
	}
	var k account.Key
	copy(k[:], h.Sum(nil))
	return k
}
