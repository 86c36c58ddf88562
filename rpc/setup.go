// SPDX-License-Identifier: ISC
// Copyright (c) 2019-2021 Hall of Heros Developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package rpc - JSON RPC interface to the ledger
//
// TLS only; certificates are normally self-signed and generated by the
// daemon's gen-rpc-cert command.
package rpc

import (
	"crypto/tls"
	"net/rpc"
	"sync"
	"time"

	"github.com/bitmark-inc/listener"
	"github.com/bitmark-inc/logger"
	"golang.org/x/time/rate"

	"github.com/hallofheros/herosd/account"
	"github.com/hallofheros/herosd/fault"
	"github.com/hallofheros/herosd/processor"
)

// RPCConfiguration - configuration file data for the RPC setup
type RPCConfiguration struct {
	MaximumConnections int      `gluamapper:"maximum_connections" json:"maximum_connections"`
	Listen             []string `gluamapper:"listen" json:"listen"`
	Certificate        string   `gluamapper:"certificate" json:"certificate"`
	PrivateKey         string   `gluamapper:"private_key" json:"private_key"`
}

// requests per second and burst for one client connection
const (
	rateLimitHero = 200
	rateBurstHero = 100
	rateLimitNode = 200
	rateBurstNode = 100
)

// globals
type rpcData struct {
	sync.RWMutex

	log      *logger.L
	listener *listener.MultiListener

	// set once during initialise
	initialised bool
}

var globalData rpcData

// Initialise - start the RPC server
func Initialise(configuration *RPCConfiguration, version string, proc *processor.Processor, programKey account.Key) error {
	globalData.Lock()
	defer globalData.Unlock()

	if globalData.initialised {
		return fault.ErrAlreadyInitialised
	}

	log := logger.New("rpc")
	globalData.log = log
	log.Info("starting…")

	if configuration.MaximumConnections <= 0 {
		log.Errorf("invalid maximum connections: %d", configuration.MaximumConnections)
		return fault.ErrInvalidCount
	}
	if 0 == len(configuration.Listen) {
		log.Error("no listen addresses")
		return fault.ErrInvalidCount
	}

	keyPair, err := tls.LoadX509KeyPair(configuration.Certificate, configuration.PrivateKey)
	if nil != err {
		log.Errorf("certificate load error: %s", err)
		return err
	}
	tlsConfiguration := &tls.Config{
		Certificates: []tls.Certificate{keyPair},
	}

	limiter := listener.NewLimiter(configuration.MaximumConnections)
	ml, err := listener.NewMultiListener("rpc", configuration.Listen, tlsConfiguration, limiter, Callback)
	if nil != err {
		log.Errorf("listen error: %s", err)
		return err
	}
	globalData.listener = ml

	server := rpc.NewServer()
	start := time.Now()
	err = server.Register(&Hero{
		Log:        logger.New("rpc-hero"),
		Limiter:    rate.NewLimiter(rateLimitHero, rateBurstHero),
		Processor:  proc,
		ProgramKey: programKey,
	})
	if nil != err {
		return err
	}
	err = server.Register(&Node{
		Log:       logger.New("rpc-node"),
		Limiter:   rate.NewLimiter(rateLimitNode, rateBurstNode),
		Processor: proc,
		Version:   version,
		Start:     start,
	})
	if nil != err {
		return err
	}

	argument := &serverArgument{
		Log:    logger.New("rpc-server"),
		Server: server,
	}
	for _, address := range configuration.Listen {
		log.Infof("listening on: %s", address)
	}
	globalData.listener.Start(argument)

	globalData.initialised = true
	return nil
}

// Finalise - stop the RPC server
func Finalise() error {
	globalData.Lock()
	defer globalData.Unlock()

	if !globalData.initialised {
		return fault.ErrNotInitialised
	}

	globalData.log.Info("shutting down…")
	globalData.listener.Stop()
	globalData.listener = nil
	globalData.initialised = false

	globalData.log.Info("finished")
	globalData.log.Flush()
	return nil
}
