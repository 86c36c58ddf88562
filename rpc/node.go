// SPDX-License-Identifier: ISC
// Copyright (c) 2019-2021 Hall of Heros Developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package rpc

import (
	"time"

	"github.com/bitmark-inc/logger"
	"golang.org/x/time/rate"

	"github.com/hallofheros/herosd/herorecord"
	"github.com/hallofheros/herosd/processor"
	"github.com/hallofheros/herosd/repository"
)

// Node - type for the RPC
type Node struct {
	Log       *logger.L
	Limiter   *rate.Limiter
	Processor *processor.Processor
	Version   string
	Start     time.Time
}

// InfoArguments - empty
type InfoArguments struct{}

// InfoReply - information about this node
type InfoReply struct {
	Version     string `json:"version"`
	Uptime      string `json:"uptime"`
	Connections uint64 `json:"connections"`
	Strategy    string `json:"strategy"`
	Authority   string `json:"authority"`
	MaxSlots    int    `json:"maxSlots"`
	RecordSize  int    `json:"recordSize"`
}

// Info - return some information about this node
func (node *Node) Info(arguments *InfoArguments, reply *InfoReply) error {
	if err := rateLimit(node.Limiter); nil != err {
		return err
	}

	reply.Version = node.Version
	reply.Uptime = time.Since(node.Start).String()
	reply.Connections = connectionCount.Uint64()
	reply.Strategy = node.Processor.StrategyName()
	reply.Authority = node.Processor.Authority().String()
	reply.MaxSlots = repository.MaxSlots
	reply.RecordSize = herorecord.RecordSize
	return nil
}
