// SPDX-License-Identifier: ISC
// Copyright (c) 2019-2021 Hall of Heros Developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package herorecord

import (
	"encoding/binary"

	"github.com/hallofheros/herosd/account"
	"github.com/hallofheros/herosd/fault"
)

// Unpack - turn a byte slice back into a record
//
// only the leading RecordSize bytes are examined so a slice of a
// larger repository buffer can be passed directly
func (packed Packed) Unpack() (*HeroRecord, error) {
	if len(packed) < RecordSize {
		return nil, fault.ErrMalformedRecord
	}

	uriLength := int(binary.BigEndian.Uint16(packed[uriLengthOffset:]))
	if uriLength > URICapacity {
		return nil, fault.ErrMalformedRecord
	}

	assetKey, err := account.KeyFromBytes(packed[assetKeyOffset : assetKeyOffset+account.KeySize])
	if nil != err {
		return nil, fault.ErrMalformedRecord
	}

	record := &HeroRecord{
		Slot:        packed[slotOffset],
		ContentURI:  string(packed[uriOffset : uriOffset+uriLength]),
		AssetKey:    assetKey,
		LastPrice:   binary.BigEndian.Uint64(packed[lastPriceOffset:]),
		ListedPrice: binary.BigEndian.Uint64(packed[listedPriceOffset:]),
	}
	return record, nil
}
