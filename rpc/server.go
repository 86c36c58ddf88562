// SPDX-License-Identifier: ISC
// Copyright (c) 2019-2021 Hall of Heros Developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package rpc

import (
	"io"
	"net/rpc"
	"net/rpc/jsonrpc"

	"github.com/bitmark-inc/logger"

	"github.com/hallofheros/herosd/counter"
)

// the argument passed to the listener callback
type serverArgument struct {
	Log    *logger.L
	Server *rpc.Server
}

var connectionCount counter.Counter

// Callback - serve JSON RPC on one accepted connection
func Callback(conn io.ReadWriteCloser, argument interface{}) {
	serverArgument := argument.(*serverArgument)

	log := serverArgument.Log
	log.Debug("connection opened")

	connectionCount.Increment()
	defer connectionCount.Decrement()

	codec := jsonrpc.NewServerCodec(conn)
	defer codec.Close()
	serverArgument.Server.ServeCodec(codec)

	log.Debug("connection closed")
}

// ConnectionCount - number of active RPC connections
func ConnectionCount() uint64 {
	return connectionCount.Uint64()
}
