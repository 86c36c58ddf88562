// SPDX-License-Identifier: ISC
// Copyright (c) 2019-2021 Hall of Heros Developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"github.com/urfave/cli"

	"github.com/hallofheros/herosd/command/hero-cli/rpccalls"
)

func runAdd(c *cli.Context) error {
	slot, err := checkSlot(c)
	if nil != err {
		return err
	}
	err = checkRequired(c, "uri", "asset", "repository", "holding")
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

	reply, err := client.AddRecord(&rpccalls.AddRecordData{
		Slot:        slot,
		ContentURI:  c.String("uri"),
		AssetKey:    c.String("asset"),
		LastPrice:   c.Uint64("last-price"),
		ListedPrice: c.Uint64("listed-price"),
		Signer:      signer,
		Repository:  c.String("repository"),
		Holding:     c.String("holding"),
	})
	if nil != err {
		return err
	}

	printJson(c, reply)
	return nil
}
