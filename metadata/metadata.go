// SPDX-License-Identifier: ISC
// Copyright (c) 2019-2021 Hall of Heros Developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package metadata - off-chain content metadata accounts
//
// Only the reissue buy strategy touches these: the sold asset's
// metadata is rewritten to a terminal state and fresh metadata is
// created for the replacement asset.
package metadata

import (
	"encoding/binary"

	"github.com/hallofheros/herosd/account"
	"github.com/hallofheros/herosd/fault"
)

// capacities of the fixed width fields
const (
	NameCapacity = 64
	URICapacity  = 128

	assetOffset      = 0
	authorityOffset  = assetOffset + account.KeySize
	nameLengthOffset = authorityOffset + account.KeySize
	nameOffset       = nameLengthOffset + 2
	uriLengthOffset  = nameOffset + NameCapacity
	uriOffset        = uriLengthOffset + 2

	// MetadataSize - fixed width of a packed metadata record
	MetadataSize = uriOffset + URICapacity
)

// terminal values written when an asset instance is retired
const (
	RetiredName = "retired"
	RetiredURI  = "retired"
)

// Metadata - the metadata record for one asset instance
type Metadata struct {
	Asset           account.Key
	UpdateAuthority account.Key
	Name            string
	URI             string
}

// Pack - fixed width binary form
func (m *Metadata) Pack() ([]byte, error) {
	if len(m.Name) > NameCapacity || len(m.URI) > URICapacity {
		return nil, fault.ErrContentURITooLong
	}
	buffer := make([]byte, MetadataSize)
	copy(buffer[assetOffset:], m.Asset.Bytes())
	copy(buffer[authorityOffset:], m.UpdateAuthority.Bytes())
	binary.BigEndian.PutUint16(buffer[nameLengthOffset:], uint16(len(m.Name)))
	copy(buffer[nameOffset:nameOffset+NameCapacity], m.Name)
	binary.BigEndian.PutUint16(buffer[uriLengthOffset:], uint16(len(m.URI)))
	copy(buffer[uriOffset:uriOffset+URICapacity], m.URI)
	return buffer, nil
}

// Unpack - parse a metadata record from an account buffer
func Unpack(data []byte) (*Metadata, error) {
	if len(data) < MetadataSize {
		return nil, fault.ErrMalformedMetadataRecord
	}

	nameLength := int(binary.BigEndian.Uint16(data[nameLengthOffset:]))
	uriLength := int(binary.BigEndian.Uint16(data[uriLengthOffset:]))
	if nameLength > NameCapacity || uriLength > URICapacity {
		return nil, fault.ErrMalformedMetadataRecord
	}

	asset, err := account.KeyFromBytes(data[assetOffset : assetOffset+account.KeySize])
	if nil != err {
		return nil, fault.ErrMalformedMetadataRecord
	}
	updateAuthority, err := account.KeyFromBytes(data[authorityOffset : authorityOffset+account.KeySize])
	if nil != err {
		return nil, fault.ErrMalformedMetadataRecord
	}

	return &Metadata{
		Asset:           asset,
		UpdateAuthority: updateAuthority,
		Name:            string(data[nameOffset : nameOffset+nameLength]),
		URI:             string(data[uriOffset : uriOffset+uriLength]),
	}, nil
}
