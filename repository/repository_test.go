// SPDX-License-Identifier: ISC
// Copyright (c) 2019-2021 Hall of Heros Developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package repository_test

import (
	"bytes"
	"testing"

	"github.com/hallofheros/herosd/account"
	"github.com/hallofheros/herosd/accountstore"
	"github.com/hallofheros/herosd/fault"
	"github.com/hallofheros/herosd/herorecord"
	"github.com/hallofheros/herosd/repository"
)

var programKey = mustKey(0x10)

func mustKey(fill byte) account.Key {
	b := make([]byte, account.KeySize)
	for i := range b {
		b[i] = fill
	}
	k, _ := account.KeyFromBytes(b)
	return k
}

func makeRepositoryAccount(size int) *accountstore.Account {
	return &accountstore.Account{
		Key:   mustKey(0x11),
		Owner: programKey,
		Data:  make([]byte, size),
	}
}

// repository must refuse a buffer the program does not own
func TestAttachWrongOwner(t *testing.T) {
	acct := makeRepositoryAccount(repository.BufferSize)
	acct.Owner = mustKey(0x99)
	_, err := repository.Attach(acct, programKey)
	if fault.ErrIncorrectProgramOwner != err {
		t.Errorf("unexpected error: %v", err)
	}
}

// write then read with the correct asset key returns the record unchanged
func TestWriteReadRoundTrip(t *testing.T) {
	repo, err := repository.Attach(makeRepositoryAccount(repository.BufferSize), programKey)
	if nil != err {
		t.Fatalf("attach error: %s", err)
	}

	for slot := uint8(0); slot < repository.MaxSlots; slot += 1 {
		record := &herorecord.HeroRecord{
			Slot:        slot,
			ContentURI:  "https://heros.example/slot.json",
			AssetKey:    mustKey(slot + 1),
			LastPrice:   uint64(slot) * 10,
			ListedPrice: uint64(slot)*10 + 5,
		}
		if err := repo.Write(record); nil != err {
			t.Fatalf("slot %d: write error: %s", slot, err)
		}

		read, err := repo.Read(slot, mustKey(slot+1))
		if nil != err {
			t.Fatalf("slot %d: read error: %s", slot, err)
		}
		if *read != *record {
			t.Errorf("slot %d: read: %+v  expected: %+v", slot, read, record)
		}
	}
}

// a mismatched asset key must always fail the read
func TestReadAssetKeyMismatch(t *testing.T) {
	repo, _ := repository.Attach(makeRepositoryAccount(repository.BufferSize), programKey)

	record := &herorecord.HeroRecord{
		Slot:     3,
		AssetKey: mustKey(0x42),
	}
	if err := repo.Write(record); nil != err {
		t.Fatalf("write error: %s", err)
	}

	_, err := repo.Read(3, mustKey(0x43))
	if fault.ErrAssetKeyMismatch != err {
		t.Errorf("unexpected error: %v", err)
	}
}

// slot out of range must never touch the buffer
func TestSlotOutOfRange(t *testing.T) {
	acct := makeRepositoryAccount(repository.BufferSize)
	repo, _ := repository.Attach(acct, programKey)

	before := make([]byte, len(acct.Data))
	copy(before, acct.Data)

	err := repo.Write(&herorecord.HeroRecord{Slot: repository.MaxSlots})
	if fault.ErrSlotOutOfRange != err {
		t.Errorf("unexpected error: %v", err)
	}
	if !bytes.Equal(before, acct.Data) {
		t.Error("out of range write modified the buffer")
	}

	_, err = repo.Read(repository.MaxSlots, mustKey(1))
	if fault.ErrSlotOutOfRange != err {
		t.Errorf("unexpected error: %v", err)
	}
}

// a short buffer fails with a typed error, not a panic
func TestBufferTooSmall(t *testing.T) {
	repo, _ := repository.Attach(makeRepositoryAccount(herorecord.RecordSize), programKey)

	if err := repo.Write(&herorecord.HeroRecord{Slot: 0}); nil != err {
		t.Fatalf("write error: %s", err)
	}

	err := repo.Write(&herorecord.HeroRecord{Slot: 1})
	if fault.ErrRepositoryTooSmall != err {
		t.Errorf("unexpected error: %v", err)
	}
}

// writing one slot must not disturb its neighbours
func TestWriteDoesNotCorruptNeighbours(t *testing.T) {
	repo, _ := repository.Attach(makeRepositoryAccount(repository.BufferSize), programKey)

	left := &herorecord.HeroRecord{Slot: 4, ContentURI: "left", AssetKey: mustKey(4), LastPrice: 1, ListedPrice: 2}
	right := &herorecord.HeroRecord{Slot: 6, ContentURI: "right", AssetKey: mustKey(6), LastPrice: 3, ListedPrice: 4}
	for _, record := range []*herorecord.HeroRecord{left, right} {
		if err := repo.Write(record); nil != err {
			t.Fatalf("write error: %s", err)
		}
	}

	middle := &herorecord.HeroRecord{Slot: 5, ContentURI: "middle", AssetKey: mustKey(5)}
	if err := repo.Write(middle); nil != err {
		t.Fatalf("write error: %s", err)
	}

	for _, record := range []*herorecord.HeroRecord{left, right} {
		read, err := repo.Read(record.Slot, record.AssetKey)
		if nil != err {
			t.Fatalf("slot %d: read error: %s", record.Slot, err)
		}
		if *read != *record {
			t.Errorf("slot %d: read: %+v  expected: %+v", record.Slot, read, record)
		}
	}
}
