// SPDX-License-Identifier: ISC
// Copyright (c) 2019-2021 Hall of Heros Developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package accountstore - persistent store of account buffers
//
// The repository account, token holding accounts and metadata accounts
// all live here.  One leveldb batch per instruction gives the
// all-or-nothing commit the processor relies on: either every account
// touched by an instruction is written or none is.
package accountstore

import (
	"encoding/binary"
	"sync"

	"github.com/syndtr/goleveldb/leveldb"
	ldb_opt "github.com/syndtr/goleveldb/leveldb/opt"

	"github.com/hallofheros/herosd/fault"
	"github.com/bitmark-inc/logger"
)

// key prefix for the accounts pool
const accountPrefix = 'A'

// for database version
var versionKey = []byte{0x00, 'V', 'E', 'R', 'S', 'I', 'O', 'N'}

const currentDBVersion = 0x100

// holds the database handle
var poolData struct {
	sync.RWMutex
	db  *leveldb.DB
	log *logger.L
}

// Initialise - open up the database connection
//
// this must be called before any transaction is created
func Initialise(database string) error {
	poolData.Lock()
	defer poolData.Unlock()

	if nil != poolData.db {
		return fault.ErrAlreadyInitialised
	}

	poolData.log = logger.New("accountstore")
	poolData.log.Info("starting…")

	db, version, err := getDB(database + "-accounts.leveldb")
	if nil != err {
		return err
	}

	// ensure no database downgrade
	if version > currentDBVersion {
		db.Close()
		poolData.log.Criticalf("database version: %d > current version: %d", version, currentDBVersion)
		return fault.ErrMalformedRecord
	}

	if 0 == version {
		// database was empty so tag as current version
		err = putVersion(db, currentDBVersion)
		if nil != err {
			db.Close()
			return err
		}
	}

	poolData.db = db
	return nil
}

// Finalise - close the database connection
func Finalise() {
	poolData.Lock()
	defer poolData.Unlock()
	if nil != poolData.db {
		poolData.db.Close()
		poolData.db = nil
	}
}

// return database handle and version number
func getDB(name string) (*leveldb.DB, int, error) {
	opt := &ldb_opt.Options{
		ErrorIfExist:   false,
		ErrorIfMissing: false,
	}

	db, err := leveldb.OpenFile(name, opt)
	if nil != err {
		return nil, 0, err
	}

	versionValue, err := db.Get(versionKey, nil)
	if leveldb.ErrNotFound == err {
		return db, 0, nil
	} else if nil != err {
		db.Close()
		return nil, 0, err
	}

	if 4 != len(versionValue) {
		db.Close()
		return nil, 0, fault.ErrMalformedRecord
	}

	version := int(binary.BigEndian.Uint32(versionValue))
	return db, version, nil
}

func putVersion(db *leveldb.DB, version int) error {
	currentVersion := make([]byte, 4)
	binary.BigEndian.PutUint32(currentVersion, uint32(version))
	return db.Put(versionKey, currentVersion, nil)
}
