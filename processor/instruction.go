// SPDX-License-Identifier: ISC
// Copyright (c) 2019-2021 Hall of Heros Developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package processor

import (
	"encoding/binary"

	"github.com/hallofheros/herosd/account"
	"github.com/hallofheros/herosd/fault"
	"github.com/hallofheros/herosd/herorecord"
)

// instruction tags - the first byte of the wire form
const (
	AddRecordTag    = 0x00
	UpdateRecordTag = 0x01
	BuyRecordTag    = 0x02
)

// Instruction - any decoded instruction
//
// cast result to the correct argument type
// e.g.
//   args, ok := instruction.(*AddRecordArgs)
// or:
//   switch args := instruction.(type) {
//   case *AddRecordArgs:
type Instruction interface {
	Tag() byte
}

// AddRecordArgs - arguments of the add transition
type AddRecordArgs struct {
	Slot        uint8
	ContentURI  string
	AssetKey    account.Key
	LastPrice   uint64
	ListedPrice uint64
}

// UpdateRecordArgs - arguments of the update transition
type UpdateRecordArgs struct {
	Slot       uint8
	AssetKey   account.Key
	NewPrice   uint64
	ContentURI string
}

// BuyRecordArgs - arguments of the buy transition
type BuyRecordArgs struct {
	Slot uint8
}

func (args *AddRecordArgs) Tag() byte    { return AddRecordTag }
func (args *UpdateRecordArgs) Tag() byte { return UpdateRecordTag }
func (args *BuyRecordArgs) Tag() byte    { return BuyRecordTag }

// Pack - wire form: tag byte then fields in struct order
func (args *AddRecordArgs) Pack() ([]byte, error) {
	if len(args.ContentURI) > herorecord.URICapacity {
		return nil, fault.ErrContentURITooLong
	}
	buffer := []byte{AddRecordTag, args.Slot}
	buffer = appendString(buffer, args.ContentURI)
	buffer = append(buffer, args.AssetKey.Bytes()...)
	buffer = appendUint64(buffer, args.LastPrice)
	buffer = appendUint64(buffer, args.ListedPrice)
	return buffer, nil
}

// Pack - wire form: tag byte then fields in struct order
func (args *UpdateRecordArgs) Pack() ([]byte, error) {
	if len(args.ContentURI) > herorecord.URICapacity {
		return nil, fault.ErrContentURITooLong
	}
	buffer := []byte{UpdateRecordTag, args.Slot}
	buffer = append(buffer, args.AssetKey.Bytes()...)
	buffer = appendUint64(buffer, args.NewPrice)
	buffer = appendString(buffer, args.ContentURI)
	return buffer, nil
}

// Pack - wire form: tag byte then slot
func (args *BuyRecordArgs) Pack() ([]byte, error) {
	return []byte{BuyRecordTag, args.Slot}, nil
}

// UnpackInstruction - decode the wire form
//
// an unknown tag is fatal; trailing garbage after a well formed
// instruction is also fatal
func UnpackInstruction(data []byte) (Instruction, error) {
	if 0 == len(data) {
		return nil, fault.ErrInvalidInstruction
	}

	tag := data[0]
	rest := data[1:]

	switch tag {
	case AddRecordTag:
		return unpackAddRecordArgs(rest)
	case UpdateRecordTag:
		return unpackUpdateRecordArgs(rest)
	case BuyRecordTag:
		return unpackBuyRecordArgs(rest)
	default:
		return nil, fault.ErrInvalidInstruction
	}
}

func unpackAddRecordArgs(data []byte) (*AddRecordArgs, error) {
	args := &AddRecordArgs{}

	slot, data, err := takeByte(data)
	if nil != err {
		return nil, err
	}
	args.Slot = slot

	args.ContentURI, data, err = takeString(data)
	if nil != err {
		return nil, err
	}

	args.AssetKey, data, err = takeKey(data)
	if nil != err {
		return nil, err
	}

	args.LastPrice, data, err = takeUint64(data)
	if nil != err {
		return nil, err
	}

	args.ListedPrice, data, err = takeUint64(data)
	if nil != err {
		return nil, err
	}

	if 0 != len(data) {
		return nil, fault.ErrMalformedInstruction
	}
	return args, nil
}

func unpackUpdateRecordArgs(data []byte) (*UpdateRecordArgs, error) {
	args := &UpdateRecordArgs{}

	slot, data, err := takeByte(data)
	if nil != err {
		return nil, err
	}
	args.Slot = slot

	args.AssetKey, data, err = takeKey(data)
	if nil != err {
		return nil, err
	}

	args.NewPrice, data, err = takeUint64(data)
	if nil != err {
		return nil, err
	}

	args.ContentURI, data, err = takeString(data)
	if nil != err {
		return nil, err
	}

	if 0 != len(data) {
		return nil, fault.ErrMalformedInstruction
	}
	return args, nil
}

func unpackBuyRecordArgs(data []byte) (*BuyRecordArgs, error) {
	args := &BuyRecordArgs{}

	slot, data, err := takeByte(data)
	if nil != err {
		return nil, err
	}
	args.Slot = slot

	if 0 != len(data) {
		return nil, fault.ErrMalformedInstruction
	}
	return args, nil
}

// field primitives

func appendUint64(buffer []byte, value uint64) []byte {
	valueBytes := make([]byte, 8)
	binary.BigEndian.PutUint64(valueBytes, value)
	return append(buffer, valueBytes...)
}

func appendString(buffer []byte, s string) []byte {
	lengthBytes := make([]byte, 2)
	binary.BigEndian.PutUint16(lengthBytes, uint16(len(s)))
	buffer = append(buffer, lengthBytes...)
	return append(buffer, s...)
}

func takeByte(data []byte) (byte, []byte, error) {
	if len(data) < 1 {
		return 0, nil, fault.ErrMalformedInstruction
	}
	return data[0], data[1:], nil
}

func takeUint64(data []byte) (uint64, []byte, error) {
	if len(data) < 8 {
		return 0, nil, fault.ErrMalformedInstruction
	}
	return binary.BigEndian.Uint64(data), data[8:], nil
}

func takeString(data []byte) (string, []byte, error) {
	if len(data) < 2 {
		return "", nil, fault.ErrMalformedInstruction
	}
	length := int(binary.BigEndian.Uint16(data))
	data = data[2:]
	if len(data) < length {
		return "", nil, fault.ErrMalformedInstruction
	}
	return string(data[:length]), data[length:], nil
}

func takeKey(data []byte) (account.Key, []byte, error) {
	if len(data) < account.KeySize {
		return account.Key{}, nil, fault.ErrMalformedInstruction
	}
	key, err := account.KeyFromBytes(data[:account.KeySize])
	if nil != err {
		return account.Key{}, nil, err
	}
	return key, data[account.KeySize:], nil
}
