// SPDX-License-Identifier: ISC
// Copyright (c) 2019-2021 Hall of Heros Developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package herorecord_test

import (
	"strings"
	"testing"

	"github.com/hallofheros/herosd/account"
	"github.com/hallofheros/herosd/fault"
	"github.com/hallofheros/herosd/herorecord"
)

func makeAssetKey(fill byte) account.Key {
	b := make([]byte, account.KeySize)
	for i := range b {
		b[i] = fill
	}
	k, _ := account.KeyFromBytes(b)
	return k
}

// ensure that pack->unpack returns the same original value
func TestPackUnpackRoundTrip(t *testing.T) {
	r := &herorecord.HeroRecord{
		Slot:        7,
		ContentURI:  "https://heros.example/7.json",
		AssetKey:    makeAssetKey(0xa5),
		LastPrice:   100,
		ListedPrice: 150,
	}

	packed, err := r.Pack()
	if nil != err {
		t.Fatalf("pack error: %s", err)
	}
	if herorecord.RecordSize != len(packed) {
		t.Fatalf("packed length: %d  expected: %d", len(packed), herorecord.RecordSize)
	}

	unpacked, err := packed.Unpack()
	if nil != err {
		t.Fatalf("unpack error: %s", err)
	}
	if *unpacked != *r {
		t.Errorf("unpacked: %+v  expected: %+v", unpacked, r)
	}
}

// packed width must not vary with URI length
func TestPackConstantWidth(t *testing.T) {
	for _, uri := range []string{"", "x", strings.Repeat("u", herorecord.URICapacity)} {
		r := &herorecord.HeroRecord{
			Slot:       1,
			ContentURI: uri,
			AssetKey:   makeAssetKey(1),
		}
		packed, err := r.Pack()
		if nil != err {
			t.Fatalf("pack error for %d byte uri: %s", len(uri), err)
		}
		if herorecord.RecordSize != len(packed) {
			t.Errorf("packed length: %d  expected: %d", len(packed), herorecord.RecordSize)
		}
	}
}

// URI beyond capacity is rejected, not truncated
func TestPackURITooLong(t *testing.T) {
	r := &herorecord.HeroRecord{
		Slot:       0,
		ContentURI: strings.Repeat("u", herorecord.URICapacity+1),
		AssetKey:   makeAssetKey(2),
	}
	_, err := r.Pack()
	if fault.ErrContentURITooLong != err {
		t.Errorf("unexpected error: %v", err)
	}
}

// truncated or corrupt buffers must fail cleanly
func TestUnpackMalformed(t *testing.T) {
	r := &herorecord.HeroRecord{
		Slot:       3,
		ContentURI: "u",
		AssetKey:   makeAssetKey(3),
	}
	packed, err := r.Pack()
	if nil != err {
		t.Fatalf("pack error: %s", err)
	}

	// short buffer
	_, err = packed[:herorecord.RecordSize-1].Unpack()
	if fault.ErrMalformedRecord != err {
		t.Errorf("unexpected error: %v", err)
	}

	// corrupt the stored URI length beyond capacity
	bad := make(herorecord.Packed, len(packed))
	copy(bad, packed)
	bad[1] = 0xff
	bad[2] = 0xff
	_, err = bad.Unpack()
	if fault.ErrMalformedRecord != err {
		t.Errorf("unexpected error: %v", err)
	}
}

// unpack may be given a slice of a larger repository buffer
func TestUnpackFromLargerBuffer(t *testing.T) {
	r := &herorecord.HeroRecord{
		Slot:        2,
		ContentURI:  "https://heros.example/2.json",
		AssetKey:    makeAssetKey(9),
		LastPrice:   5,
		ListedPrice: 6,
	}
	packed, err := r.Pack()
	if nil != err {
		t.Fatalf("pack error: %s", err)
	}

	buffer := make([]byte, 3*herorecord.RecordSize)
	copy(buffer[herorecord.RecordSize:], packed)

	unpacked, err := herorecord.Packed(buffer[herorecord.RecordSize:]).Unpack()
	if nil != err {
		t.Fatalf("unpack error: %s", err)
	}
	if *unpacked != *r {
		t.Errorf("unpacked: %+v  expected: %+v", unpacked, r)
	}
}
