// SPDX-License-Identifier: ISC
// Copyright (c) 2019-2021 Hall of Heros Developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"github.com/urfave/cli"

	"github.com/hallofheros/herosd/command/hero-cli/rpccalls"
)

func runBuy(c *cli.Context) error {
	slot, err := checkSlot(c)
	if nil != err {
		return err
	}
	err = checkRequired(c, "previous-holder", "repository", "holding-from", "holding-to")
	if nil != err {
		return err
	}
	signer, err := getSigner(c)
	if nil != err {
		return err
	}

	client, err := getClient(c)
	if nil != err {
		return err
	}
	defer client.Close()

	reply, err := client.BuyRecord(&rpccalls.BuyRecordData{
		Slot:           slot,
		Signer:         signer,
		PreviousHolder: c.String("previous-holder"),
		Repository:     c.String("repository"),
		HoldingFrom:    c.String("holding-from"),
		HoldingTo:      c.String("holding-to"),
		Metadata:       c.String("metadata"),
	})
	if nil != err {
		return err
	}

	printJson(c, reply)
	return nil
}
