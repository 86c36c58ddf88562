// SPDX-License-Identifier: ISC
// Copyright (c) 2019-2021 Hall of Heros Developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package metadata

import (
	"github.com/bitmark-inc/logger"

	"github.com/hallofheros/herosd/account"
	"github.com/hallofheros/herosd/accountstore"
	"github.com/hallofheros/herosd/fault"
)

// Service - mutates metadata accounts
type Service struct {
	log *logger.L
}

// NewService - create the metadata service
func NewService() *Service {
	return &Service{
		log: logger.New("metadata"),
	}
}

// Update - rewrite name and URI of a metadata account
//
// gated on the caller presenting the recorded update authority
func (s *Service) Update(meta *accountstore.Account, presented account.Key, newName string, newURI string) error {
	m, err := Unpack(meta.Data)
	if nil != err {
		return err
	}

	if m.UpdateAuthority != presented {
		return fault.ErrMetadataAuthorityMismatch
	}

	m.Name = newName
	m.URI = newURI
	packed, err := m.Pack()
	if nil != err {
		return err
	}
	copy(meta.Data, packed)

	s.log.Debugf("update: meta: %s  name: %q  uri: %q", meta.Key, newName, newURI)
	return nil
}

// Retire - write the terminal state for a sold asset instance
func (s *Service) Retire(meta *accountstore.Account, presented account.Key) error {
	return s.Update(meta, presented, RetiredName, RetiredURI)
}

// Create - stage a fresh metadata account for a reissued asset
func (s *Service) Create(trx *accountstore.Transaction, metaKey account.Key, m *Metadata) error {
	packed, err := m.Pack()
	if nil != err {
		return err
	}
	trx.Create(&accountstore.Account{
		Key:  metaKey,
		Data: packed,
	})

	s.log.Debugf("create: meta: %s  asset: %s", metaKey, m.Asset)
	return nil
}
