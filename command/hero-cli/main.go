// SPDX-License-Identifier: ISC
// Copyright (c) 2019-2021 Hall of Heros Developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// hero-cli - command line client for herosd
package main

import (
	"os"

	"github.com/urfave/cli"
)

// set by the linker: go build -ldflags "-X main.version=M.N" ./...
var version = "zero" // do not change this value

func main() {

	app := cli.NewApp()
	app.Name = "hero-cli"
	app.Usage = "connect to a herosd to add, update and buy hero records"
	app.Version = version
	app.HideVersion = true

	app.Writer = os.Stdout
	app.ErrWriter = os.Stderr

	app.Flags = []cli.Flag{
		cli.BoolFlag{
			Name:  "verbose, v",
			Usage: " verbose result",
		},
		cli.StringFlag{
			Name:  "connect, c",
			Value: "",
			Usage: "*herosd host/IP and port, `HOST:PORT`",
		},
		cli.StringFlag{
			Name:  "key, k",
			Value: "",
			Usage: " Base58 private key used to sign instructions `KEY`",
		},
	}
	app.Commands = []cli.Command{
		{
			Name:   "generate",
			Usage:  "generate a key pair, print it and exit",
			Flags:  []cli.Flag{},
			Action: runGenerate,
		},
		{
			Name:      "add",
			Usage:     "add a record to the repository",
			ArgsUsage: "\n   (* = required)",
			Flags: []cli.Flag{
				cli.UintFlag{
					Name:  "slot, s",
					Usage: "*slot `NUMBER`",
				},
				cli.StringFlag{
					Name:  "uri, u",
					Value: "",
					Usage: "*content `URI`",
				},
				cli.StringFlag{
					Name:  "asset, a",
					Value: "",
					Usage: "*asset `KEY`",
				},
				cli.Uint64Flag{
					Name:  "last-price, l",
					Usage: " last sale price `AMOUNT`",
				},
				cli.Uint64Flag{
					Name:  "listed-price, p",
					Usage: "*listed sale price `AMOUNT`",
				},
				cli.StringFlag{
					Name:  "repository, r",
					Value: "",
					Usage: "*repository account `KEY`",
				},
				cli.StringFlag{
					Name:  "holding, H",
					Value: "",
					Usage: "*holding account `KEY` of the adder",
				},
			},
			Action: runAdd,
		},
		{
			Name:      "update",
			Usage:     "update listed price and content of a record",
			ArgsUsage: "\n   (* = required)",
			Flags: []cli.Flag{
				cli.UintFlag{
					Name:  "slot, s",
					Usage: "*slot `NUMBER`",
				},
				cli.StringFlag{
					Name:  "asset, a",
					Value: "",
					Usage: "*asset `KEY`",
				},
				cli.Uint64Flag{
					Name:  "price, p",
					Usage: "*new listed price `AMOUNT`",
				},
				cli.StringFlag{
					Name:  "uri, u",
					Value: "",
					Usage: "*content `URI`",
				},
				cli.StringFlag{
					Name:  "repository, r",
					Value: "",
					Usage: "*repository account `KEY`",
				},
				cli.StringFlag{
					Name:  "holding, H",
					Value: "",
					Usage: "*holding account `KEY` of the current holder",
				},
			},
			Action: runUpdate,
		},
		{
			Name:      "buy",
			Usage:     "buy the asset behind a record",
			ArgsUsage: "\n   (* = required)",
			Flags: []cli.Flag{
				cli.UintFlag{
					Name:  "slot, s",
					Usage: "*slot `NUMBER`",
				},
				cli.StringFlag{
					Name:  "previous-holder, o",
					Value: "",
					Usage: "*account `KEY` of the current holder",
				},
				cli.StringFlag{
					Name:  "repository, r",
					Value: "",
					Usage: "*repository account `KEY`",
				},
				cli.StringFlag{
					Name:  "holding-from, f",
					Value: "",
					Usage: "*holding account `KEY` of the current holder",
				},
				cli.StringFlag{
					Name:  "holding-to, t",
					Value: "",
					Usage: "*holding account `KEY` of the buyer",
				},
				cli.StringFlag{
					Name:  "metadata, m",
					Value: "",
					Usage: " metadata account `KEY` (reissue daemon only)",
				},
			},
			Action: runBuy,
		},
		{
			Name:      "show",
			Usage:     "show the record stored at a slot",
			ArgsUsage: "\n   (* = required)",
			Flags: []cli.Flag{
				cli.UintFlag{
					Name:  "slot, s",
					Usage: "*slot `NUMBER`",
				},
				cli.StringFlag{
					Name:  "repository, r",
					Value: "",
					Usage: "*repository account `KEY`",
				},
			},
			Action: runShow,
		},
		{
			Name:   "info",
			Usage:  "display the node status",
			Flags:  []cli.Flag{},
			Action: runInfo,
		},
	}

	err := app.Run(os.Args)
	if nil != err {
		os.Exit(1)
	}
}
