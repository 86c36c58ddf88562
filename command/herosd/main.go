// SPDX-License-Identifier: ISC
// Copyright (c) 2019-2021 Hall of Heros Developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// herosd - hall of heros ledger daemon
//
// keeps the fixed slot record repository, the token holdings and the
// metadata accounts, and serves the instruction RPC
package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/bitmark-inc/exitwithstatus"
	"github.com/bitmark-inc/getoptions"
	"github.com/bitmark-inc/logger"

	"github.com/hallofheros/herosd/account"
	"github.com/hallofheros/herosd/accountstore"
	"github.com/hallofheros/herosd/authority"
	"github.com/hallofheros/herosd/delegate"
	"github.com/hallofheros/herosd/fault"
	"github.com/hallofheros/herosd/metadata"
	"github.com/hallofheros/herosd/pay"
	"github.com/hallofheros/herosd/processor"
	"github.com/hallofheros/herosd/repository"
	"github.com/hallofheros/herosd/rpc"
	"github.com/hallofheros/herosd/token"
)

// set by the linker: go build -ldflags "-X main.version=M.N" ./...
var version = "zero" // do not change this value

func main() {
	// ensure exit handler is first
	defer exitwithstatus.Handler()

	flags := []getoptions.Option{
		{Long: "help", HasArg: getoptions.NO_ARGUMENT, Short: 'h'},
		{Long: "verbose", HasArg: getoptions.NO_ARGUMENT, Short: 'v'},
		{Long: "quiet", HasArg: getoptions.NO_ARGUMENT, Short: 'q'},
		{Long: "version", HasArg: getoptions.NO_ARGUMENT, Short: 'V'},
		{Long: "config-file", HasArg: getoptions.REQUIRED_ARGUMENT, Short: 'c'},
	}

	program, options, arguments, err := getoptions.GetOS(flags)
	if nil != err {
		exitwithstatus.Message("%s: getoptions error: %s", program, err)
	}

	if len(options["version"]) > 0 {
		processSetupCommand(program, []string{"version"})
		return
	}

	if len(options["help"]) > 0 {
		processSetupCommand(program, []string{"help"})
		return
	}

	// these commands do not require the configuration
	if len(arguments) > 0 && processSetupCommand(program, arguments) {
		return
	}

	if 1 != len(options["config-file"]) {
		exitwithstatus.Message("%s: only one config-file option is required, %d were detected", program, len(options["config-file"]))
	}

	// read options and parse the configuration file
	configurationFile := options["config-file"][0]
	theConfiguration, err := getConfiguration(configurationFile)
	if nil != err {
		exitwithstatus.Message("%s: failed to read configuration from: %q  error: %s", program, configurationFile, err)
	}

	// these commands perform enquiries on the configuration
	if len(arguments) > 0 && processConfigCommand(arguments, theConfiguration) {
		return
	}

	// start logging
	if err = logger.Initialise(theConfiguration.Logging); nil != err {
		exitwithstatus.Message("%s: logger setup failed with error: %s", program, err)
	}
	defer logger.Finalise()

	// create a logger channel for the main program
	log := logger.New("main")
	defer log.Info("finished")
	log.Info("starting…")
	log.Infof("version: %s", version)
	log.Debugf("theConfiguration: %v", theConfiguration)

	// set up the fault panic log
	fault.Initialise()
	defer fault.Finalise()

	// ------------------
	// start of real main
	// ------------------

	// optional PID file
	// use if not running under a supervisor program like daemon(8)
	if "" != theConfiguration.PidFile {
		lockFile, err := os.OpenFile(theConfiguration.PidFile, os.O_WRONLY|os.O_EXCL|os.O_CREATE, os.ModeExclusive|0600)
		if err != nil {
			if os.IsExist(err) {
				exitwithstatus.Message("%s: another instance is already running", program)
			}
			exitwithstatus.Message("%s: PID file: %q creation failed, error: %s", program, theConfiguration.PidFile, err)
		}
		fmt.Fprintf(lockFile, "%d\n", os.Getpid())
		lockFile.Close()
		defer os.Remove(theConfiguration.PidFile)
	}

	// the program identity owning the repository account
	programKey, err := account.KeyFromBase58(theConfiguration.ProgramKey)
	if nil != err {
		log.Criticalf("program key: %q error: %s", theConfiguration.ProgramKey, err)
		exitwithstatus.Message("program key: %q error: %s", theConfiguration.ProgramKey, err)
	}
	repositoryKey, err := account.KeyFromBase58(theConfiguration.Repository)
	if nil != err {
		log.Criticalf("repository key: %q error: %s", theConfiguration.Repository, err)
		exitwithstatus.Message("repository key: %q error: %s", theConfiguration.Repository, err)
	}

	// derive the program controlled authority
	auth, err := authority.Derive(programKey, theConfiguration.AuthorityTag)
	if nil != err {
		log.Criticalf("authority derive error: %s", err)
		exitwithstatus.Message("authority derive error: %s", err)
	}
	log.Infof("authority: %s  nonce: %d", auth.Key, auth.Nonce)

	// start the account store
	log.Info("initialise accountstore")
	err = accountstore.Initialise(theConfiguration.DatabasePrefix())
	if nil != err {
		log.Criticalf("accountstore initialise error: %s", err)
		exitwithstatus.Message("accountstore initialise error: %s", err)
	}
	defer accountstore.Finalise()

	// provision the repository account on first run
	err = provisionRepository(log, repositoryKey, programKey)
	if nil != err {
		log.Criticalf("repository provision error: %s", err)
		exitwithstatus.Message("repository provision error: %s", err)
	}

	// wire the instruction processor
	tokenService := token.NewService(programKey, theConfiguration.AuthorityTag)
	coordinator := delegate.New(auth, tokenService)
	strategy, err := processor.BuyStrategyByName(theConfiguration.BuyStrategy, coordinator, tokenService, metadata.NewService())
	if nil != err {
		log.Criticalf("buy strategy: %q error: %s", theConfiguration.BuyStrategy, err)
		exitwithstatus.Message("buy strategy: %q error: %s", theConfiguration.BuyStrategy, err)
	}
	log.Infof("buy strategy: %s", strategy.Name())

	proc := processor.New(programKey, coordinator, pay.NewService(), strategy)

	// start up the rpc background processes
	err = rpc.Initialise(&theConfiguration.ClientRPC, version, proc, programKey)
	if nil != err {
		log.Criticalf("rpc initialise error: %s", err)
		exitwithstatus.Message("rpc initialise error: %s", err)
	}
	defer rpc.Finalise()

	// wait for CTRL-C before shutting down to allow manual testing
	if 0 == len(options["quiet"]) {
		fmt.Printf("\n\nWaiting for CTRL-C (SIGINT) or 'kill <pid>' (SIGTERM)…")
	}

	// turn Signals into channel messages
	ch := make(chan os.Signal, 1)
	signal.Notify(ch, syscall.SIGINT, syscall.SIGTERM)
	sig := <-ch
	log.Infof("received signal: %v", sig)
	if 0 == len(options["quiet"]) {
		fmt.Printf("\nreceived signal: %v\n", sig)
		fmt.Printf("\nshutting down…\n")
	}

	log.Info("shutting down…")
}

// create the repository account if it does not exist yet
//
// an existing account is left untouched, even if its owner differs;
// the processor's attach check will reject it on every instruction so
// a misconfiguration is noticed immediately
func provisionRepository(log *logger.L, repositoryKey account.Key, programKey account.Key) error {
	trx, err := accountstore.NewTransaction()
	if nil != err {
		return err
	}
	if trx.Has(repositoryKey) {
		trx.Abort()
		log.Infof("repository account: %s exists", repositoryKey)
		return nil
	}
	trx.Create(&accountstore.Account{
		Key:   repositoryKey,
		Owner: programKey,
		Data:  make([]byte, repository.BufferSize),
	})
	log.Infof("created repository account: %s  slots: %d", repositoryKey, repository.MaxSlots)
	return trx.Commit()
}
