// SPDX-License-Identifier: ISC
// Copyright (c) 2019-2021 Hall of Heros Developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package rpc

import (
	"encoding/hex"
	"sync"

	"github.com/bitmark-inc/logger"
	"golang.org/x/time/rate"

	"github.com/hallofheros/herosd/account"
	"github.com/hallofheros/herosd/accountstore"
	"github.com/hallofheros/herosd/processor"
	"github.com/hallofheros/herosd/repository"
)

// Hero - type for the RPC
type Hero struct {
	Log        *logger.L
	Limiter    *rate.Limiter
	Processor  *processor.Processor
	ProgramKey account.Key
}

// HeroAddArguments - add a record to the repository
//
// Signature is the hex encoded ed25519 signature by the adder over the
// packed instruction
type HeroAddArguments struct {
	Slot        uint8  `json:"slot"`
	ContentURI  string `json:"contentUri"`
	AssetKey    string `json:"assetKey"`
	LastPrice   uint64 `json:"lastPrice,string"`
	ListedPrice uint64 `json:"listedPrice,string"`
	Adder       string `json:"adder"`
	Signature   string `json:"signature"`
	Repository  string `json:"repository"`
	Holding     string `json:"holding"`
}

// HeroAddReply - result from the add RPC
type HeroAddReply struct {
	Slot uint8 `json:"slot"`
}

// Add - add a record
func (hero *Hero) Add(arguments *HeroAddArguments, reply *HeroAddReply) error {
	if err := rateLimit(hero.Limiter); nil != err {
		return err
	}
	hero.Log.Infof("Hero.Add: %+v", arguments)

	assetKey, err := account.KeyFromBase58(arguments.AssetKey)
	if nil != err {
		return err
	}
	data, err := (&processor.AddRecordArgs{
		Slot:        arguments.Slot,
		ContentURI:  arguments.ContentURI,
		AssetKey:    assetKey,
		LastPrice:   arguments.LastPrice,
		ListedPrice: arguments.ListedPrice,
	}).Pack()
	if nil != err {
		return err
	}

	refs, err := makeRefs(data,
		signedRef{arguments.Adder, arguments.Signature},
		plainRef(arguments.Repository),
		plainRef(arguments.Holding),
	)
	if nil != err {
		return err
	}

	err = hero.execute(refs, data)
	if nil != err {
		return err
	}
	reply.Slot = arguments.Slot
	return nil
}

// HeroUpdateArguments - change listed price and content of a record
type HeroUpdateArguments struct {
	Slot       uint8  `json:"slot"`
	AssetKey   string `json:"assetKey"`
	NewPrice   uint64 `json:"newPrice,string"`
	ContentURI string `json:"contentUri"`
	Setter     string `json:"setter"`
	Signature  string `json:"signature"`
	Repository string `json:"repository"`
	Holding    string `json:"holding"`
}

// HeroUpdateReply - result from the update RPC
type HeroUpdateReply struct {
	Slot uint8 `json:"slot"`
}

// Update - update a record
func (hero *Hero) Update(arguments *HeroUpdateArguments, reply *HeroUpdateReply) error {
	if err := rateLimit(hero.Limiter); nil != err {
		return err
	}
	hero.Log.Infof("Hero.Update: %+v", arguments)

	assetKey, err := account.KeyFromBase58(arguments.AssetKey)
	if nil != err {
		return err
	}
	data, err := (&processor.UpdateRecordArgs{
		Slot:       arguments.Slot,
		AssetKey:   assetKey,
		NewPrice:   arguments.NewPrice,
		ContentURI: arguments.ContentURI,
	}).Pack()
	if nil != err {
		return err
	}

	refs, err := makeRefs(data,
		signedRef{arguments.Setter, arguments.Signature},
		plainRef(arguments.Repository),
		plainRef(arguments.Holding),
	)
	if nil != err {
		return err
	}

	err = hero.execute(refs, data)
	if nil != err {
		return err
	}
	reply.Slot = arguments.Slot
	return nil
}

// HeroBuyArguments - buy the asset behind a record
//
// Metadata is only needed when the daemon runs the reissue strategy
type HeroBuyArguments struct {
	Slot           uint8  `json:"slot"`
	Buyer          string `json:"buyer"`
	Signature      string `json:"signature"`
	PreviousHolder string `json:"previousHolder"`
	Repository     string `json:"repository"`
	HoldingFrom    string `json:"holdingFrom"`
	HoldingTo      string `json:"holdingTo"`
	Metadata       string `json:"metadata,omitempty"`
}

// HeroBuyReply - the settled record after a successful sale
type HeroBuyReply struct {
	Slot        uint8  `json:"slot"`
	AssetKey    string `json:"assetKey"`
	LastPrice   uint64 `json:"lastPrice,string"`
	ListedPrice uint64 `json:"listedPrice,string"`
}

// Buy - buy a record's asset
func (hero *Hero) Buy(arguments *HeroBuyArguments, reply *HeroBuyReply) error {
	if err := rateLimit(hero.Limiter); nil != err {
		return err
	}
	hero.Log.Infof("Hero.Buy: %+v", arguments)

	data, err := (&processor.BuyRecordArgs{
		Slot: arguments.Slot,
	}).Pack()
	if nil != err {
		return err
	}

	wanted := []refArgument{
		signedRef{arguments.Buyer, arguments.Signature},
		plainRef(arguments.PreviousHolder),
		plainRef(arguments.Repository),
		plainRef(arguments.HoldingFrom),
		plainRef(arguments.HoldingTo),
	}
	if "" != arguments.Metadata {
		wanted = append(wanted, plainRef(arguments.Metadata))
	}
	refs, err := makeRefs(data, wanted...)
	if nil != err {
		return err
	}

	err = hero.execute(refs, data)
	if nil != err {
		return err
	}

	record, err := hero.readRecord(arguments.Repository, arguments.Slot)
	if nil != err {
		return err
	}
	reply.Slot = arguments.Slot
	reply.AssetKey = record.AssetKey.String()
	reply.LastPrice = record.LastPrice
	reply.ListedPrice = record.ListedPrice
	return nil
}

// HeroRecordArguments - query one repository slot
type HeroRecordArguments struct {
	Repository string `json:"repository"`
	Slot       uint8  `json:"slot"`
}

// HeroRecordReply - the stored record
type HeroRecordReply struct {
	Slot        uint8  `json:"slot"`
	ContentURI  string `json:"contentUri"`
	AssetKey    string `json:"assetKey"`
	LastPrice   uint64 `json:"lastPrice,string"`
	ListedPrice uint64 `json:"listedPrice,string"`
}

// Record - read a record
func (hero *Hero) Record(arguments *HeroRecordArguments, reply *HeroRecordReply) error {
	if err := rateLimit(hero.Limiter); nil != err {
		return err
	}

	record, err := hero.readRecord(arguments.Repository, arguments.Slot)
	if nil != err {
		return err
	}
	reply.Slot = record.Slot
	reply.ContentURI = record.ContentURI
	reply.AssetKey = record.AssetKey.String()
	reply.LastPrice = record.LastPrice
	reply.ListedPrice = record.ListedPrice
	return nil
}

// instructions run one at a time
//
// net/rpc serves each request on its own goroutine but the processor
// expects an exclusive view of the accounts it touches; without this
// lock two concurrent buys of the same slot could both read the same
// committed holding and both commit
var executeLock sync.Mutex

// run one instruction in its own all-or-nothing transaction
func (hero *Hero) execute(refs []processor.AccountRef, data []byte) error {
	executeLock.Lock()
	defer executeLock.Unlock()

	trx, err := accountstore.NewTransaction()
	if nil != err {
		return err
	}
	err = hero.Processor.Process(trx, refs, data)
	if nil != err {
		trx.Abort()
		return err
	}
	return trx.Commit()
}

func (hero *Hero) readRecord(repositoryKey string, slot uint8) (*herorecordResult, error) {
	key, err := account.KeyFromBase58(repositoryKey)
	if nil != err {
		return nil, err
	}
	trx, err := accountstore.NewTransaction()
	if nil != err {
		return nil, err
	}
	defer trx.Abort()

	acct, err := trx.Account(key)
	if nil != err {
		return nil, err
	}
	repo, err := repository.Attach(acct, hero.ProgramKey)
	if nil != err {
		return nil, err
	}
	record, err := repo.Record(slot)
	if nil != err {
		return nil, err
	}
	return &herorecordResult{
		Slot:        record.Slot,
		ContentURI:  record.ContentURI,
		AssetKey:    record.AssetKey,
		LastPrice:   record.LastPrice,
		ListedPrice: record.ListedPrice,
	}, nil
}

type herorecordResult struct {
	Slot        uint8
	ContentURI  string
	AssetKey    account.Key
	LastPrice   uint64
	ListedPrice uint64
}

// account reference construction
//
// a signed reference is marked as signer only after the signature over
// the packed instruction verifies; the processor never sees raw
// signatures

type refArgument interface {
	ref(data []byte) (processor.AccountRef, error)
}

type plainRef string

func (r plainRef) ref(data []byte) (processor.AccountRef, error) {
	key, err := account.KeyFromBase58(string(r))
	if nil != err {
		return processor.AccountRef{}, err
	}
	return processor.AccountRef{Key: key}, nil
}

type signedRef struct {
	key       string
	signature string
}

func (r signedRef) ref(data []byte) (processor.AccountRef, error) {
	key, err := account.KeyFromBase58(r.key)
	if nil != err {
		return processor.AccountRef{}, err
	}
	signature, err := hex.DecodeString(r.signature)
	if nil != err {
		return processor.AccountRef{}, err
	}
	return processor.AccountRef{
		Key:    key,
		Signer: key.Verify(data, signature),
	}, nil
}

func makeRefs(data []byte, wanted ...refArgument) ([]processor.AccountRef, error) {
	refs := make([]processor.AccountRef, len(wanted))
	for i, w := range wanted {
		r, err := w.ref(data)
		if nil != err {
			return nil, err
		}
		refs[i] = r
	}
	return refs, nil
}
