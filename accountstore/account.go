// SPDX-License-Identifier: ISC
// Copyright (c) 2019-2021 Hall of Heros Developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package accountstore

import (
	"encoding/binary"

	"github.com/hallofheros/herosd/account"
	"github.com/hallofheros/herosd/fault"
)

// Account - one stored account: owning program, native balance and
// raw data buffer
//
// the processor and the in-process services mutate the in-memory copy;
// nothing reaches the database until the transaction commits
type Account struct {
	Key     account.Key
	Owner   account.Key
	Balance uint64
	Data    []byte
}

// stored value layout: owner 32 | balance 8 | data…
const valueHeaderSize = account.KeySize + 8

// pack the database value for an account
func packValue(acct *Account) []byte {
	buffer := make([]byte, valueHeaderSize+len(acct.Data))
	copy(buffer, acct.Owner.Bytes())
	binary.BigEndian.PutUint64(buffer[account.KeySize:], acct.Balance)
	copy(buffer[valueHeaderSize:], acct.Data)
	return buffer
}

// unpack a database value
func unpackValue(key account.Key, value []byte) (*Account, error) {
	if len(value) < valueHeaderSize {
		return nil, fault.ErrMalformedRecord
	}
	owner, err := account.KeyFromBytes(value[:account.KeySize])
	if nil != err {
		return nil, err
	}
	data := make([]byte, len(value)-valueHeaderSize)
	copy(data, value[valueHeaderSize:])
	return &Account{
		Key:     key,
		Owner:   owner,
		Balance: binary.BigEndian.Uint64(value[account.KeySize:]),
		Data:    data,
	}, nil
}
