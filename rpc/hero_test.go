// SPDX-License-Identifier: ISC
// Copyright (c) 2019-2021 Hall of Heros Developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package rpc_test

import (
	"crypto/rand"
	"encoding/hex"
	"os"
	"sync"
	"testing"
	"time"

	"golang.org/x/time/rate"

	"github.com/bitmark-inc/logger"

	"github.com/hallofheros/herosd/account"
	"github.com/hallofheros/herosd/accountstore"
	"github.com/hallofheros/herosd/authority"
	"github.com/hallofheros/herosd/delegate"
	"github.com/hallofheros/herosd/fault"
	"github.com/hallofheros/herosd/fixtures"
	"github.com/hallofheros/herosd/metadata"
	"github.com/hallofheros/herosd/pay"
	"github.com/hallofheros/herosd/processor"
	"github.com/hallofheros/herosd/repository"
	"github.com/hallofheros/herosd/rpc"
	"github.com/hallofheros/herosd/token"
)

const authorityTag = "hallofheros"

func TestMain(m *testing.M) {
	fixtures.SetupTestLogger()
	err := accountstore.Initialise("testing/rpc")
	if nil != err {
		fixtures.TeardownTestLogger()
		os.Exit(1)
	}
	rc := m.Run()
	accountstore.Finalise()
	fixtures.TeardownTestLogger()
	os.Exit(rc)
}

func randomKey(t *testing.T) account.Key {
	t.Helper()
	b := make([]byte, account.KeySize)
	_, err := rand.Read(b)
	if nil != err {
		t.Fatalf("random error: %s", err)
	}
	k, _ := account.KeyFromBytes(b)
	return k
}

// services plus the account fixture behind them
type heroFixture struct {
	hero        *rpc.Hero
	node        *rpc.Node
	asset       account.Key
	seller      account.Key
	sellerKey   *account.PrivateKey
	buyer       account.Key
	buyerKey    *account.PrivateKey
	repoKey     account.Key
	holdingFrom account.Key
	holdingTo   account.Key
}

func newHeroFixture(t *testing.T) *heroFixture {
	t.Helper()

	programKey := randomKey(t)
	auth, err := authority.Derive(programKey, authorityTag)
	if nil != err {
		t.Fatalf("derive error: %s", err)
	}
	tokenService := token.NewService(programKey, authorityTag)
	coordinator := delegate.New(auth, tokenService)
	strategy, err := processor.BuyStrategyByName(processor.ResellStrategyName, coordinator, tokenService, metadata.NewService())
	if nil != err {
		t.Fatalf("strategy error: %s", err)
	}
	proc := processor.New(programKey, coordinator, pay.NewService(), strategy)

	seller, sellerKey, err := account.NewKeyPair()
	if nil != err {
		t.Fatalf("keypair error: %s", err)
	}
	buyer, buyerKey, err := account.NewKeyPair()
	if nil != err {
		t.Fatalf("keypair error: %s", err)
	}

	f := &heroFixture{
		hero: &rpc.Hero{
			Log:        logger.New("rpc-hero"),
			Limiter:    rate.NewLimiter(200, 100),
			Processor:  proc,
			ProgramKey: programKey,
		},
		node: &rpc.Node{
			Log:       logger.New("rpc-node"),
			Limiter:   rate.NewLimiter(200, 100),
			Processor: proc,
			Version:   "test",
			Start:     time.Now(),
		},
		asset:       randomKey(t),
		seller:      seller,
		sellerKey:   sellerKey,
		buyer:       buyer,
		buyerKey:    buyerKey,
		repoKey:     randomKey(t),
		holdingFrom: randomKey(t),
		holdingTo:   randomKey(t),
	}

	sellerHolding := &token.Holding{Asset: f.asset, Holder: seller, Amount: 1}
	buyerHolding := &token.Holding{Asset: f.asset, Holder: buyer, Amount: 0}

	trx, err := accountstore.NewTransaction()
	if nil != err {
		t.Fatalf("transaction error: %s", err)
	}
	trx.Create(&accountstore.Account{
		Key:   f.repoKey,
		Owner: programKey,
		Data:  make([]byte, repository.BufferSize),
	})
	trx.Create(&accountstore.Account{Key: seller})
	trx.Create(&accountstore.Account{Key: buyer, Balance: 1000})
	trx.Create(&accountstore.Account{Key: f.holdingFrom, Data: sellerHolding.Pack()})
	trx.Create(&accountstore.Account{Key: f.holdingTo, Data: buyerHolding.Pack()})
	err = trx.Commit()
	if nil != err {
		t.Fatalf("commit error: %s", err)
	}
	return f
}

func (f *heroFixture) signAdd(t *testing.T, arguments *rpc.HeroAddArguments, signer *account.PrivateKey) {
	t.Helper()
	assetKey, err := account.KeyFromBase58(arguments.AssetKey)
	if nil != err {
		t.Fatalf("asset key error: %s", err)
	}
	data, err := (&processor.AddRecordArgs{
		Slot:        arguments.Slot,
		ContentURI:  arguments.ContentURI,
		AssetKey:    assetKey,
		LastPrice:   arguments.LastPrice,
		ListedPrice: arguments.ListedPrice,
	}).Pack()
	if nil != err {
		t.Fatalf("pack error: %s", err)
	}
	arguments.Signature = hex.EncodeToString(signer.Sign(data))
}

func (f *heroFixture) addRecord(t *testing.T) {
	t.Helper()
	arguments := &rpc.HeroAddArguments{
		Slot:        0,
		ContentURI:  "https://heros.example/0.json",
		AssetKey:    f.asset.String(),
		LastPrice:   100,
		ListedPrice: 150,
		Adder:       f.seller.String(),
		Repository:  f.repoKey.String(),
		Holding:     f.holdingFrom.String(),
	}
	f.signAdd(t, arguments, f.sellerKey)

	var reply rpc.HeroAddReply
	err := f.hero.Add(arguments, &reply)
	if nil != err {
		t.Fatalf("add error: %s", err)
	}
}

// add then read back through the query RPC
func TestHeroAddAndRecord(t *testing.T) {
	f := newHeroFixture(t)
	f.addRecord(t)

	var reply rpc.HeroRecordReply
	err := f.hero.Record(&rpc.HeroRecordArguments{
		Repository: f.repoKey.String(),
		Slot:       0,
	}, &reply)
	if nil != err {
		t.Fatalf("record error: %s", err)
	}
	if f.asset.String() != reply.AssetKey {
		t.Errorf("asset key: %s  expected: %s", reply.AssetKey, f.asset)
	}
	if 100 != reply.LastPrice || 150 != reply.ListedPrice {
		t.Errorf("prices: last: %d  listed: %d", reply.LastPrice, reply.ListedPrice)
	}
}

// a bad signature never reaches the processor as a signer
func TestHeroAddRejectsBadSignature(t *testing.T) {
	f := newHeroFixture(t)

	arguments := &rpc.HeroAddArguments{
		Slot:        0,
		ContentURI:  "https://heros.example/0.json",
		AssetKey:    f.asset.String(),
		LastPrice:   100,
		ListedPrice: 150,
		Adder:       f.seller.String(),
		Repository:  f.repoKey.String(),
		Holding:     f.holdingFrom.String(),
	}
	// signed by the wrong key
	f.signAdd(t, arguments, f.buyerKey)

	var reply rpc.HeroAddReply
	err := f.hero.Add(arguments, &reply)
	if fault.ErrMissingRequiredSignature != err {
		t.Errorf("unexpected error: %v", err)
	}
}

// the full sale via RPC: settle, pay, move the asset
func TestHeroBuy(t *testing.T) {
	f := newHeroFixture(t)
	f.addRecord(t)

	data, err := (&processor.BuyRecordArgs{Slot: 0}).Pack()
	if nil != err {
		t.Fatalf("pack error: %s", err)
	}
	arguments := &rpc.HeroBuyArguments{
		Slot:           0,
		Buyer:          f.buyer.String(),
		Signature:      hex.EncodeToString(f.buyerKey.Sign(data)),
		PreviousHolder: f.seller.String(),
		Repository:     f.repoKey.String(),
		HoldingFrom:    f.holdingFrom.String(),
		HoldingTo:      f.holdingTo.String(),
	}

	var reply rpc.HeroBuyReply
	err = f.hero.Buy(arguments, &reply)
	if nil != err {
		t.Fatalf("buy error: %s", err)
	}
	if 150 != reply.LastPrice || 150 != reply.ListedPrice {
		t.Errorf("prices: last: %d  listed: %d", reply.LastPrice, reply.ListedPrice)
	}
	if f.asset.String() != reply.AssetKey {
		t.Errorf("asset key: %s  expected: %s", reply.AssetKey, f.asset)
	}

	trx, err := accountstore.NewTransaction()
	if nil != err {
		t.Fatalf("transaction error: %s", err)
	}
	defer trx.Abort()
	sellerAccount, err := trx.Account(f.seller)
	if nil != err {
		t.Fatalf("load error: %s", err)
	}
	if 150 != sellerAccount.Balance {
		t.Errorf("seller balance: %d  expected: 150", sellerAccount.Balance)
	}
}

// a signature that is not valid hex is an error in its own right, not
// a silent downgrade to an unsigned reference
func TestHeroAddRejectsUndecodableSignature(t *testing.T) {
	f := newHeroFixture(t)

	arguments := &rpc.HeroAddArguments{
		Slot:        0,
		ContentURI:  "https://heros.example/0.json",
		AssetKey:    f.asset.String(),
		LastPrice:   100,
		ListedPrice: 150,
		Adder:       f.seller.String(),
		Signature:   "zz",
		Repository:  f.repoKey.String(),
		Holding:     f.holdingFrom.String(),
	}

	var reply rpc.HeroAddReply
	err := f.hero.Add(arguments, &reply)
	if nil == err {
		t.Fatal("undecodable signature was accepted")
	}
	if _, ok := err.(hex.InvalidByteError); !ok {
		t.Errorf("unexpected error: %v", err)
	}
}

// two concurrent buys of the same slot must settle exactly once: the
// single asset unit ends in one buyer's holding and the seller is paid
// one listed price
func TestHeroBuyConcurrentSameSlot(t *testing.T) {
	f := newHeroFixture(t)
	f.addRecord(t)

	buyer2, buyer2Key, err := account.NewKeyPair()
	if nil != err {
		t.Fatalf("keypair error: %s", err)
	}
	holdingTo2 := randomKey(t)
	buyer2Holding := &token.Holding{Asset: f.asset, Holder: buyer2, Amount: 0}

	trx, err := accountstore.NewTransaction()
	if nil != err {
		t.Fatalf("transaction error: %s", err)
	}
	trx.Create(&accountstore.Account{Key: buyer2, Balance: 1000})
	trx.Create(&accountstore.Account{Key: holdingTo2, Data: buyer2Holding.Pack()})
	err = trx.Commit()
	if nil != err {
		t.Fatalf("commit error: %s", err)
	}

	data, err := (&processor.BuyRecordArgs{Slot: 0}).Pack()
	if nil != err {
		t.Fatalf("pack error: %s", err)
	}

	buys := []*rpc.HeroBuyArguments{
		{
			Slot:           0,
			Buyer:          f.buyer.String(),
			Signature:      hex.EncodeToString(f.buyerKey.Sign(data)),
			PreviousHolder: f.seller.String(),
			Repository:     f.repoKey.String(),
			HoldingFrom:    f.holdingFrom.String(),
			HoldingTo:      f.holdingTo.String(),
		},
		{
			Slot:           0,
			Buyer:          buyer2.String(),
			Signature:      hex.EncodeToString(buyer2Key.Sign(data)),
			PreviousHolder: f.seller.String(),
			Repository:     f.repoKey.String(),
			HoldingFrom:    f.holdingFrom.String(),
			HoldingTo:      holdingTo2.String(),
		},
	}

	errors := make([]error, len(buys))
	var wg sync.WaitGroup
	for i, arguments := range buys {
		wg.Add(1)
		go func(i int, arguments *rpc.HeroBuyArguments) {
			defer wg.Done()
			var reply rpc.HeroBuyReply
			errors[i] = f.hero.Buy(arguments, &reply)
		}(i, arguments)
	}
	wg.Wait()

	succeeded := 0
	for i, err := range errors {
		if nil == err {
			succeeded += 1
		} else if fault.ErrNotCurrentHolder != err {
			t.Errorf("buy %d: unexpected error: %v", i, err)
		}
	}
	if 1 != succeeded {
		t.Fatalf("buys succeeded: %d  expected: 1", succeeded)
	}

	check, err := accountstore.NewTransaction()
	if nil != err {
		t.Fatalf("transaction error: %s", err)
	}
	defer check.Abort()

	held := uint64(0)
	for _, key := range []account.Key{f.holdingTo, holdingTo2} {
		acct, err := check.Account(key)
		if nil != err {
			t.Fatalf("load error: %s", err)
		}
		h, err := token.UnpackHolding(acct.Data)
		if nil != err {
			t.Fatalf("holding unpack error: %s", err)
		}
		held += h.Amount
	}
	if 1 != held {
		t.Errorf("asset units held by buyers: %d  expected: 1", held)
	}

	sellerAccount, err := check.Account(f.seller)
	if nil != err {
		t.Fatalf("load error: %s", err)
	}
	if 150 != sellerAccount.Balance {
		t.Errorf("seller balance: %d  expected: 150", sellerAccount.Balance)
	}
}

// node info reports the wired strategy and authority
func TestNodeInfo(t *testing.T) {
	f := newHeroFixture(t)

	var reply rpc.InfoReply
	err := f.node.Info(&rpc.InfoArguments{}, &reply)
	if nil != err {
		t.Fatalf("info error: %s", err)
	}
	if processor.ResellStrategyName != reply.Strategy {
		t.Errorf("strategy: %q", reply.Strategy)
	}
	if repository.MaxSlots != reply.MaxSlots {
		t.Errorf("max slots: %d", reply.MaxSlots)
	}
	if "test" != reply.Version {
		t.Errorf("version: %q", reply.Version)
	}
}
