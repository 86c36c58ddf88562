// SPDX-License-Identifier: ISC
// Copyright (c) 2019-2021 Hall of Heros Developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package accountstore

import (
	"github.com/syndtr/goleveldb/leveldb"

	"github.com/hallofheros/herosd/account"
	"github.com/hallofheros/herosd/fault"
)

// Transaction - staged view over the account pool
//
// every account loaded or created is staged in memory; Commit writes
// the whole set in a single leveldb batch so a failed instruction can
// simply Abort and leave the database untouched
type Transaction struct {
	loaded map[account.Key]*Account
}

// NewTransaction - begin a staged view
func NewTransaction() (*Transaction, error) {
	poolData.RLock()
	defer poolData.RUnlock()
	if nil == poolData.db {
		return nil, fault.ErrNotInitialised
	}
	return &Transaction{
		loaded: make(map[account.Key]*Account),
	}, nil
}

// prepend the pool prefix onto an account key
func prefixKey(key account.Key) []byte {
	prefixedKey := make([]byte, 1, account.KeySize+1)
	prefixedKey[0] = accountPrefix
	return append(prefixedKey, key.Bytes()...)
}

// Account - load an account into the transaction
//
// repeated loads return the same staged copy so mutations by one
// component are visible to the next within the same instruction
func (trx *Transaction) Account(key account.Key) (*Account, error) {
	if acct, ok := trx.loaded[key]; ok {
		return acct, nil
	}

	poolData.RLock()
	defer poolData.RUnlock()
	if nil == poolData.db {
		return nil, fault.ErrNotInitialised
	}

	value, err := poolData.db.Get(prefixKey(key), nil)
	if leveldb.ErrNotFound == err {
		return nil, fault.ErrKeyNotFound
	} else if nil != err {
		return nil, err
	}

	acct, err := unpackValue(key, value)
	if nil != err {
		return nil, err
	}
	trx.loaded[key] = acct
	return acct, nil
}

// Has - check whether an account exists, staged or stored
func (trx *Transaction) Has(key account.Key) bool {
	if _, ok := trx.loaded[key]; ok {
		return true
	}
	poolData.RLock()
	defer poolData.RUnlock()
	if nil == poolData.db {
		return false
	}
	has, err := poolData.db.Has(prefixKey(key), nil)
	if nil != err {
		return false
	}
	return has
}

// Create - stage a new account
//
// an existing account of the same key is replaced on commit
func (trx *Transaction) Create(acct *Account) {
	trx.loaded[acct.Key] = acct
}

// Commit - write every staged account in one batch
func (trx *Transaction) Commit() error {
	poolData.Lock()
	defer poolData.Unlock()
	if nil == poolData.db {
		return fault.ErrNotInitialised
	}

	batch := new(leveldb.Batch)
	for key, acct := range trx.loaded {
		batch.Put(prefixKey(key), packValue(acct))
	}
	err := poolData.db.Write(batch, nil)
	trx.loaded = make(map[account.Key]*Account)
	return err
}

// Abort - drop all staged accounts
func (trx *Transaction) Abort() {
	trx.loaded = make(map[account.Key]*Account)
}
