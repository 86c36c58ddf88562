// SPDX-License-Identifier: ISC
// Copyright (c) 2019-2021 Hall of Heros Developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"github.com/urfave/cli"
)

func runShow(c *cli.Context) error {
	slot, err := checkSlot(c)
	if nil != err {
		return err
	}
	err = checkRequired(c, "repository")
	if nil != err {
		return err
	}

	client, err := getClient(c)
	if nil != err {
		return err
	}
	defer client.Close()

	reply, err := client.GetRecord(c.String("repository"), slot)
	if nil != err {
		return err
	}

	printJson(c, reply)
	return nil
}
