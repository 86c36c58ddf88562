// SPDX-License-Identifier: ISC
// Copyright (c) 2019-2021 Hall of Heros Developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package herorecord

import (
	"encoding/binary"

	"github.com/hallofheros/herosd/fault"
)

// Pack - fields in order as struct above
//
// the URI occupies its full capacity; unused bytes stay zero so a
// repository write never leaks a neighbouring record's data
func (record *HeroRecord) Pack() (Packed, error) {
	if len(record.ContentURI) > URICapacity {
		return nil, fault.ErrContentURITooLong
	}

	buffer := make([]byte, RecordSize)
	buffer[slotOffset] = record.Slot
	binary.BigEndian.PutUint16(buffer[uriLengthOffset:], uint16(len(record.ContentURI)))
	copy(buffer[uriOffset:uriOffset+URICapacity], record.ContentURI)
	copy(buffer[assetKeyOffset:], record.AssetKey.Bytes())
	binary.BigEndian.PutUint64(buffer[lastPriceOffset:], record.LastPrice)
	binary.BigEndian.PutUint64(buffer[listedPriceOffset:], record.ListedPrice)
	return buffer, nil
}
