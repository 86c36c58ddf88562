// SPDX-License-Identifier: ISC
// Copyright (c) 2019-2021 Hall of Heros Developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package processor - instruction dispatch and state transitions
//
// One instruction is one atomic transition over the record repository
// plus zero or more external calls.  Steps run in a fixed order and a
// later step never begins after an earlier one failed; the enclosing
// account store transaction makes the whole instruction all-or-nothing.
package processor

import (
	"github.com/bitmark-inc/logger"

	"github.com/hallofheros/herosd/account"
	"github.com/hallofheros/herosd/accountstore"
	"github.com/hallofheros/herosd/delegate"
	"github.com/hallofheros/herosd/fault"
	"github.com/hallofheros/herosd/herorecord"
	"github.com/hallofheros/herosd/oracle"
	"github.com/hallofheros/herosd/repository"
)

// account positions for the add transition
const (
	addAdderAccount      = 0
	addRepositoryAccount = 1
	addHoldingAccount    = 2
	addAccountCount      = 3
)

// account positions for the update transition
const (
	updateSetterAccount     = 0
	updateRepositoryAccount = 1
	updateHoldingAccount    = 2
	updateAccountCount      = 3
)

// account positions for the buy transition
const (
	buyBuyerAccount      = 0
	buyPrevHolderAccount = 1
	buyRepositoryAccount = 2
	buyHoldingFrom       = 3
	buyHoldingTo         = 4
	buyAccountCount      = 5
	buyMetadataAccount   = 5 // reissue strategy only
)

// AccountRef - one entry of an instruction's account list
//
// Signer is asserted by the host after verifying the caller's
// signature over the instruction data; the processor trusts it
type AccountRef struct {
	Key    account.Key
	Signer bool
}

// PaymentService - the part of the payment service the processor uses
type PaymentService interface {
	Transfer(source *accountstore.Account, destination *accountstore.Account, amount uint64) error
}

// Processor - applies instructions to the ledger state
type Processor struct {
	log         *logger.L
	programKey  account.Key
	coordinator *delegate.Coordinator
	payments    PaymentService
	strategy    BuyStrategy
}

// New - create a processor
//
// the authority inside the coordinator must have been derived from
// programKey or every buy will fail its proof check
func New(programKey account.Key, coordinator *delegate.Coordinator, payments PaymentService, strategy BuyStrategy) *Processor {
	return &Processor{
		log:         logger.New("processor"),
		programKey:  programKey,
		coordinator: coordinator,
		payments:    payments,
		strategy:    strategy,
	}
}

// Authority - the derived authority this processor delegates to
func (p *Processor) Authority() account.Key {
	return p.coordinator.Authority()
}

// StrategyName - the configured buy strategy
func (p *Processor) StrategyName() string {
	return p.strategy.Name()
}

// Process - decode and apply one instruction
//
// all account mutations are staged in trx; the caller commits on nil
// error and aborts otherwise
func (p *Processor) Process(trx *accountstore.Transaction, refs []AccountRef, data []byte) error {
	instruction, err := UnpackInstruction(data)
	if nil != err {
		return err
	}

	switch args := instruction.(type) {
	case *AddRecordArgs:
		p.log.Infof("instruction: AddRecord: slot: %d", args.Slot)
		return p.processAddRecord(trx, refs, args)
	case *UpdateRecordArgs:
		p.log.Infof("instruction: UpdateRecord: slot: %d", args.Slot)
		return p.processUpdateRecord(trx, refs, args)
	case *BuyRecordArgs:
		p.log.Infof("instruction: BuyRecord: slot: %d", args.Slot)
		return p.processBuyRecord(trx, refs, args)
	default:
		return fault.ErrInvalidInstruction
	}
}

// add a record to the repository
//
// 1. the adder grants the program authority a delegation over the
//    asset so it can be resold later
// 2. the record is written
//
// the grant runs first: a failed grant must never leave a record
// pointing at an asset the program has no authority over
func (p *Processor) processAddRecord(trx *accountstore.Transaction, refs []AccountRef, args *AddRecordArgs) error {
	if len(refs) < addAccountCount {
		return fault.ErrTooFewAccounts
	}

	adder := refs[addAdderAccount]
	if !adder.Signer {
		return fault.ErrMissingRequiredSignature
	}

	repositoryAccount, err := trx.Account(refs[addRepositoryAccount].Key)
	if nil != err {
		return err
	}
	repo, err := repository.Attach(repositoryAccount, p.programKey)
	if nil != err {
		p.log.Warnf("repository account %s does not have the correct program owner", repositoryAccount.Key)
		return err
	}

	holding, err := trx.Account(refs[addHoldingAccount].Key)
	if nil != err {
		return err
	}

	err = p.coordinator.ApproveToAuthority(holding, adder.Key, adder.Signer)
	if nil != err {
		return err
	}

	record := &herorecord.HeroRecord{
		Slot:        args.Slot,
		ContentURI:  args.ContentURI,
		AssetKey:    args.AssetKey,
		LastPrice:   args.LastPrice,
		ListedPrice: args.ListedPrice,
	}
	return repo.Write(record)
}

// update listed price and content of an existing record
//
// 1. verify the setter currently holds the asset
// 2. update the record
func (p *Processor) processUpdateRecord(trx *accountstore.Transaction, refs []AccountRef, args *UpdateRecordArgs) error {
	if len(refs) < updateAccountCount {
		return fault.ErrTooFewAccounts
	}

	setter := refs[updateSetterAccount]
	if !setter.Signer {
		return fault.ErrMissingRequiredSignature
	}

	repositoryAccount, err := trx.Account(refs[updateRepositoryAccount].Key)
	if nil != err {
		return err
	}
	repo, err := repository.Attach(repositoryAccount, p.programKey)
	if nil != err {
		return err
	}

	holding, err := trx.Account(refs[updateHoldingAccount].Key)
	if nil != err {
		return err
	}
	holder, err := oracle.CurrentHolder(holding)
	if nil != err {
		return err
	}
	if holder.Identity != setter.Key || holder.Asset != args.AssetKey || 0 == holder.Amount {
		p.log.Warnf("asset %s is not held by setter %s", args.AssetKey, setter.Key)
		return fault.ErrNotCurrentHolder
	}

	record, err := repo.Read(args.Slot, args.AssetKey)
	if nil != err {
		return err
	}

	record.ListedPrice = args.NewPrice
	record.ContentURI = args.ContentURI
	return repo.Write(record)
}

// buy the asset behind a record
//
// strictly ordered; each step must succeed before the next begins:
// 1. verify the previous holder via the ownership oracle
// 2. move the asset to the buyer (strategy: transfer or reissue)
// 3. re-delegate the buyer's holding to the program authority
// 4. settle the record: last price becomes the listed price
// 5. pay the previous holder
func (p *Processor) processBuyRecord(trx *accountstore.Transaction, refs []AccountRef, args *BuyRecordArgs) error {
	if len(refs) < buyAccountCount {
		return fault.ErrTooFewAccounts
	}

	buyerRef := refs[buyBuyerAccount]
	if !buyerRef.Signer {
		return fault.ErrMissingRequiredSignature
	}

	repositoryAccount, err := trx.Account(refs[buyRepositoryAccount].Key)
	if nil != err {
		return err
	}
	repo, err := repository.Attach(repositoryAccount, p.programKey)
	if nil != err {
		return err
	}

	// step 1: previous holder must really hold the asset
	holdingFrom, err := trx.Account(refs[buyHoldingFrom].Key)
	if nil != err {
		return err
	}
	holder, err := oracle.CurrentHolder(holdingFrom)
	if nil != err {
		return err
	}
	if holder.Identity != refs[buyPrevHolderAccount].Key || 0 == holder.Amount {
		p.log.Warnf("asset %s is not held by previous holder %s", holder.Asset, refs[buyPrevHolderAccount].Key)
		return fault.ErrNotCurrentHolder
	}

	holdingTo, err := trx.Account(refs[buyHoldingTo].Key)
	if nil != err {
		return err
	}

	ctx := &BuyContext{
		trx:         trx,
		slot:        args.Slot,
		asset:       holder.Asset,
		buyerKey:    buyerRef.Key,
		buyerSigned: buyerRef.Signer,
		holdingFrom: holdingFrom,
		holdingTo:   holdingTo,
	}
	if len(refs) > buyMetadataAccount {
		metadataAccount, err := trx.Account(refs[buyMetadataAccount].Key)
		if nil != err {
			return err
		}
		ctx.metadataAccount = metadataAccount
	}

	// steps 2 and 3: move the asset, re-delegate for the next sale
	newAssetKey, err := p.strategy.TransferAsset(ctx)
	if nil != err {
		return err
	}

	// step 4: settle the record at its listed price
	record, err := repo.Read(args.Slot, holder.Asset)
	if nil != err {
		return err
	}
	record.LastPrice = record.ListedPrice
	record.AssetKey = newAssetKey
	err = repo.Write(record)
	if nil != err {
		return err
	}

	// step 5: pay the previous holder
	//
	// never reached if the asset transfer or record write failed
	buyer, err := trx.Account(buyerRef.Key)
	if nil != err {
		return err
	}
	previousHolder, err := trx.Account(refs[buyPrevHolderAccount].Key)
	if nil != err {
		return err
	}
	p.log.Infof("payment: %d from %s to %s", record.ListedPrice, buyer.Key, previousHolder.Key)
	return p.payments.Transfer(buyer, previousHolder, record.ListedPrice)
}
