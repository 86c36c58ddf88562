// SPDX-License-Identifier: ISC
// Copyright (c) 2019-2021 Hall of Heros Developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package pay - native currency payment service
package pay

import (
	"github.com/bitmark-inc/logger"

	"github.com/hallofheros/herosd/accountstore"
	"github.com/hallofheros/herosd/fault"
)

// Service - moves native currency between accounts
type Service struct {
	log *logger.L
}

// NewService - create the payment service
func NewService() *Service {
	return &Service{
		log: logger.New("pay"),
	}
}

// Transfer - move amount from source to destination
//
// rejection is fatal for the calling instruction; balances are staged
// account state so an abort discards the movement
func (s *Service) Transfer(source *accountstore.Account, destination *accountstore.Account, amount uint64) error {
	if source.Balance < amount {
		return fault.ErrInsufficientFunds
	}
	source.Balance -= amount
	destination.Balance += amount

	s.log.Debugf("transfer: %s -> %s  amount: %d", source.Key, destination.Key, amount)
	return nil
}
