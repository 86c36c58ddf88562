// SPDX-License-Identifier: ISC
// Copyright (c) 2019-2021 Hall of Heros Developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"github.com/urfave/cli"

	"github.com/hallofheros/herosd/account"
)

func runGenerate(c *cli.Context) error {
	publicKey, privateKey, err := account.NewKeyPair()
	if nil != err {
		return err
	}

	printJson(c, map[string]string{
		"public_key":  publicKey.String(),
		"private_key": privateKey.String(),
	})
	return nil
}
