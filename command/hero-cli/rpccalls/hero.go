// SPDX-License-Identifier: ISC
// Copyright (c) 2019-2021 Hall of Heros Developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package rpccalls

import (
	"encoding/hex"

	"github.com/hallofheros/herosd/account"
	"github.com/hallofheros/herosd/processor"
	"github.com/hallofheros/herosd/rpc"
)

// AddRecordData - parameters for the add call
type AddRecordData struct {
	Slot        uint8
	ContentURI  string
	AssetKey    string
	LastPrice   uint64
	ListedPrice uint64
	Signer      *account.PrivateKey
	Repository  string
	Holding     string
}

// AddRecord - sign and submit an add instruction
func (c *Client) AddRecord(data *AddRecordData) (*rpc.HeroAddReply, error) {
	assetKey, err := account.KeyFromBase58(data.AssetKey)
	if nil != err {
		return nil, err
	}
	packed, err := (&processor.AddRecordArgs{
		Slot:        data.Slot,
		ContentURI:  data.ContentURI,
		AssetKey:    assetKey,
		LastPrice:   data.LastPrice,
		ListedPrice: data.ListedPrice,
	}).Pack()
	if nil != err {
		return nil, err
	}

	arguments := rpc.HeroAddArguments{
		Slot:        data.Slot,
		ContentURI:  data.ContentURI,
		AssetKey:    data.AssetKey,
		LastPrice:   data.LastPrice,
		ListedPrice: data.ListedPrice,
		Adder:       data.Signer.Public().String(),
		Signature:   hex.EncodeToString(data.Signer.Sign(packed)),
		Repository:  data.Repository,
		Holding:     data.Holding,
	}
	c.printJson("Hero.Add request", arguments)

	var reply rpc.HeroAddReply
	if err := c.client.Call("Hero.Add", arguments, &reply); nil != err {
		return nil, err
	}
	c.printJson("Hero.Add reply", reply)
	return &reply, nil
}

// UpdateRecordData - parameters for the update call
type UpdateRecordData struct {
	Slot       uint8
	AssetKey   string
	NewPrice   uint64
	ContentURI string
	Signer     *account.PrivateKey
	Repository string
	Holding    string
}

// UpdateRecord - sign and submit an update instruction
func (c *Client) UpdateRecord(data *UpdateRecordData) (*rpc.HeroUpdateReply, error) {
	assetKey, err := account.KeyFromBase58(data.AssetKey)
	if nil != err {
		return nil, err
	}
	packed, err := (&processor.UpdateRecordArgs{
		Slot:       data.Slot,
		AssetKey:   assetKey,
		NewPrice:   data.NewPrice,
		ContentURI: data.ContentURI,
	}).Pack()
	if nil != err {
		return nil, err
	}

	arguments := rpc.HeroUpdateArguments{
		Slot:       data.Slot,
		AssetKey:   data.AssetKey,
		NewPrice:   data.NewPrice,
		ContentURI: data.ContentURI,
		Setter:     data.Signer.Public().String(),
		Signature:  hex.EncodeToString(data.Signer.Sign(packed)),
		Repository: data.Repository,
		Holding:    data.Holding,
	}
	c.printJson("Hero.Update request", arguments)

	var reply rpc.HeroUpdateReply
	if err := c.client.Call("Hero.Update", arguments, &reply); nil != err {
		return nil, err
	}
	c.printJson("Hero.Update reply", reply)
	return &reply, nil
}

// BuyRecordData - parameters for the buy call
type BuyRecordData struct {
	Slot           uint8
	Signer         *account.PrivateKey
	PreviousHolder string
	Repository     string
	HoldingFrom    string
	HoldingTo      string
	Metadata       string // only for a reissue daemon
}

// BuyRecord - sign and submit a buy instruction
func (c *Client) BuyRecord(data *BuyRecordData) (*rpc.HeroBuyReply, error) {
	packed, err := (&processor.BuyRecordArgs{
		Slot: data.Slot,
	}).Pack()
	if nil != err {
		return nil, err
	}

	arguments := rpc.HeroBuyArguments{
		Slot:           data.Slot,
		Buyer:          data.Signer.Public().String(),
		Signature:      hex.EncodeToString(data.Signer.Sign(packed)),
		PreviousHolder: data.PreviousHolder,
		Repository:     data.Repository,
		HoldingFrom:    data.HoldingFrom,
		HoldingTo:      data.HoldingTo,
		Metadata:       data.Metadata,
	}
	c.printJson("Hero.Buy request", arguments)

	var reply rpc.HeroBuyReply
	if err := c.client.Call("Hero.Buy", arguments, &reply); nil != err {
		return nil, err
	}
	c.printJson("Hero.Buy reply", reply)
	return &reply, nil
}

// GetRecord - read one repository slot
func (c *Client) GetRecord(repository string, slot uint8) (*rpc.HeroRecordReply, error) {
	arguments := rpc.HeroRecordArguments{
		Repository: repository,
		Slot:       slot,
	}
	c.printJson("Hero.Record request", arguments)

	var reply rpc.HeroRecordReply
	if err := c.client.Call("Hero.Record", arguments, &reply); nil != err {
		return nil, err
	}
	c.printJson("Hero.Record reply", reply)
	return &reply, nil
}

// GetInfo - request status from herosd
func (c *Client) GetInfo() (*rpc.InfoReply, error) {
	var reply rpc.InfoReply
	if err := c.client.Call("Node.Info", rpc.InfoArguments{}, &reply); nil != err {
		return nil, err
	}
	c.printJson("Node.Info reply", reply)
	return &reply, nil
}
