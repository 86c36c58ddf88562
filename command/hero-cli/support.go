// SPDX-License-Identifier: ISC
// Copyright (c) 2019-2021 Hall of Heros Developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"encoding/json"
	"fmt"

	"github.com/urfave/cli"

	"github.com/hallofheros/herosd/account"
	"github.com/hallofheros/herosd/command/hero-cli/rpccalls"
	"github.com/hallofheros/herosd/repository"
)

// connect to the herosd named by the global connect flag
func getClient(c *cli.Context) (*rpccalls.Client, error) {
	connect := c.GlobalString("connect")
	if "" == connect {
		return nil, fmt.Errorf("connect cannot be blank")
	}
	return rpccalls.NewClient(connect, c.GlobalBool("verbose"), c.App.Writer)
}

// the signing key from the global key flag
func getSigner(c *cli.Context) (*account.PrivateKey, error) {
	key := c.GlobalString("key")
	if "" == key {
		return nil, fmt.Errorf("key cannot be blank")
	}
	return account.PrivateKeyFromBase58(key)
}

func checkSlot(c *cli.Context) (uint8, error) {
	slot := c.Uint("slot")
	if slot >= repository.MaxSlots {
		return 0, fmt.Errorf("slot: %d is out of range", slot)
	}
	return uint8(slot), nil
}

func checkRequired(c *cli.Context, names ...string) error {
	for _, name := range names {
		if "" == c.String(name) {
			return fmt.Errorf("%s cannot be blank", name)
		}
	}
	return nil
}

// final output of every command
func printJson(c *cli.Context, message interface{}) {
	b, err := json.MarshalIndent(message, "", "  ")
	if nil != err {
		fmt.Fprintf(c.App.ErrWriter, "json error: %s\n", err)
		return
	}
	fmt.Fprintf(c.App.Writer, "%s\n", b)
}
