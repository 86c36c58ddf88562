// SPDX-License-Identifier: ISC
// Copyright (c) 2019-2021 Hall of Heros Developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package pay_test

import (
	"os"
	"testing"

	"github.com/hallofheros/herosd/accountstore"
	"github.com/hallofheros/herosd/fault"
	"github.com/hallofheros/herosd/fixtures"
	"github.com/hallofheros/herosd/pay"
)

func TestMain(m *testing.M) {
	fixtures.SetupTestLogger()
	rc := m.Run()
	fixtures.TeardownTestLogger()
	os.Exit(rc)
}

func TestTransfer(t *testing.T) {
	service := pay.NewService()

	source := &accountstore.Account{Balance: 200}
	destination := &accountstore.Account{Balance: 5}

	err := service.Transfer(source, destination, 150)
	if nil != err {
		t.Fatalf("transfer error: %s", err)
	}
	if 50 != source.Balance || 155 != destination.Balance {
		t.Errorf("balances: %d and %d", source.Balance, destination.Balance)
	}

	err = service.Transfer(source, destination, 100)
	if fault.ErrInsufficientFunds != err {
		t.Errorf("unexpected error: %v", err)
	}
	if 50 != source.Balance || 155 != destination.Balance {
		t.Error("failed transfer changed balances")
	}
}
