// SPDX-License-Identifier: ISC
// Copyright (c) 2019-2021 Hall of Heros Developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package herorecord

import (
	"github.com/hallofheros/herosd/account"
)

// field widths of the packed binary form
//
// the record must stay a constant width so the repository can use
// slot * RecordSize offset arithmetic; the content URI is therefore
// carried in a fixed capacity field with a leading length
const (
	URICapacity = 128 // maximum bytes of content URI

	slotOffset        = 0
	uriLengthOffset   = 1
	uriOffset         = 3
	assetKeyOffset    = uriOffset + URICapacity
	lastPriceOffset   = assetKeyOffset + account.KeySize
	listedPriceOffset = lastPriceOffset + 8

	// RecordSize - constant serialized width of one record
	RecordSize = listedPriceOffset + 8
)

// HeroRecord - persisted state for one slot
type HeroRecord struct {
	Slot        uint8       `json:"slot"`
	ContentURI  string      `json:"contentUri"`
	AssetKey    account.Key `json:"assetKey"`
	LastPrice   uint64      `json:"lastPrice"`
	ListedPrice uint64      `json:"listedPrice"`
}

// Packed - the fixed width binary form of a record
type Packed []byte
