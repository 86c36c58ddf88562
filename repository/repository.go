// SPDX-License-Identifier: ISC
// Copyright (c) 2019-2021 Hall of Heros Developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package repository - fixed slot record store
//
// Records are laid out densely inside the repository account's data
// buffer at offset slot * herorecord.RecordSize.  The buffer belongs
// to the account store; this package only borrows it for the duration
// of one instruction.
package repository

import (
	"github.com/hallofheros/herosd/account"
	"github.com/hallofheros/herosd/accountstore"
	"github.com/hallofheros/herosd/fault"
	"github.com/hallofheros/herosd/herorecord"
)

// MaxSlots - fixed capacity of the repository
//
// expandable only by redeploying with a larger repository account
const MaxSlots = 20

// BufferSize - required size of a repository account data buffer
const BufferSize = MaxSlots * herorecord.RecordSize

// Repository - a borrowed view over one repository account
type Repository struct {
	account *accountstore.Account
}

// Attach - borrow the repository account for one instruction
//
// the ownership check is the IncorrectProgramId gate: a buffer not
// owned by this program must never be read or written
func Attach(acct *accountstore.Account, programKey account.Key) (*Repository, error) {
	if acct.Owner != programKey {
		return nil, fault.ErrIncorrectProgramOwner
	}
	return &Repository{account: acct}, nil
}

// locate the byte range for a slot
func (r *Repository) locate(slot uint8) (int, int, error) {
	if slot >= MaxSlots {
		return 0, 0, fault.ErrSlotOutOfRange
	}
	start := int(slot) * herorecord.RecordSize
	end := start + herorecord.RecordSize
	if len(r.account.Data) < end {
		return 0, 0, fault.ErrRepositoryTooSmall
	}
	return start, end, nil
}

// Read - fetch the record for a slot
//
// the stored asset key must match the key presented by the calling
// instruction; a mismatch makes the record unusable regardless of how
// internally consistent the instruction arguments are
func (r *Repository) Read(slot uint8, assetKey account.Key) (*herorecord.HeroRecord, error) {
	start, end, err := r.locate(slot)
	if nil != err {
		return nil, err
	}

	record, err := herorecord.Packed(r.account.Data[start:end]).Unpack()
	if nil != err {
		return nil, err
	}

	if record.AssetKey != assetKey {
		return nil, fault.ErrAssetKeyMismatch
	}
	return record, nil
}

// Record - fetch the record for a slot without a key check
//
// query surface only; instruction processing goes through Read so the
// presented asset key is always checked against the stored one
func (r *Repository) Record(slot uint8) (*herorecord.HeroRecord, error) {
	start, end, err := r.locate(slot)
	if nil != err {
		return nil, err
	}
	return herorecord.Packed(r.account.Data[start:end]).Unpack()
}

// Write - store a record at its slot
//
// only the slot's own byte range is touched so neighbouring records
// can never be corrupted by a write
func (r *Repository) Write(record *herorecord.HeroRecord) error {
	start, end, err := r.locate(record.Slot)
	if nil != err {
		return err
	}

	packed, err := record.Pack()
	if nil != err {
		return err
	}

	copy(r.account.Data[start:end], packed)
	return nil
}
