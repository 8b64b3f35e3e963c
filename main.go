// Copyright (c) 2019-2022 The Lumachain Foundation
// Use of this source code is governed by an MIT
// license that can be found in the LICENSE file.
//

package main

import (
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/lumachain/Lumachain.LUMA/blockchain"
	"github.com/lumachain/Lumachain.LUMA/common/config"
	"github.com/lumachain/Lumachain.LUMA/common/config/settings"
	"github.com/lumachain/Lumachain.LUMA/common/log"
	"github.com/lumachain/Lumachain.LUMA/mempool"
	"github.com/lumachain/Lumachain.LUMA/net/httprestful"
	"github.com/lumachain/Lumachain.LUMA/net/httpwebsocket"
	"github.com/lumachain/Lumachain.LUMA/producer"
	"github.com/lumachain/Lumachain.LUMA/utils"
)

// Version generated when build program.
var Version string

func main() {
	cfg := settings.NewSettings().SetupConfig()
	log.Init(
		filepath.Join(cfg.DataDir, config.NodeLogPath),
		uint8(cfg.PrintLevel),
		cfg.MaxPerLogSize,
		cfg.MaxLogsSize,
	)
	log.Info("Node version: ", Version)

	log.Info("1. BlockChain init")
	chainStore, err := blockchain.NewChainStore(
		filepath.Join(cfg.DataDir, config.DataPath))
	if err != nil {
		log.Fatal("open chain store failed, ", err)
		os.Exit(1)
	}
	defer chainStore.Close()

	chain, err := blockchain.New(chainStore, cfg)
	if err != nil {
		log.Fatal("initialize block chain failed, ", err)
		os.Exit(1)
	}
	blockchain.DefaultLedger = &blockchain.Ledger{
		Blockchain: chain,
		Store:      chainStore,
	}

	log.Info("2. Start the transaction pool")
	txPool := mempool.NewTxPool(cfg)

	log.Info("3. Start the block producer")
	svc := producer.NewService(&producer.Config{
		ProducerInfo: cfg.ProducerInfo,
		Ledger:       blockchain.DefaultLedger,
		ChainParams:  cfg,
		TxMemPool:    txPool,
	})
	httprestful.Producer = svc
	if cfg.AutoGenerateBlocks {
		svc.Start()
	}

	log.Info("4. --Start the RPC service")
	if cfg.HttpRestStart {
		go httprestful.StartServer(txPool)
	}
	if cfg.HttpWsStart {
		go httpwebsocket.StartServer(txPool)
	}
	if cfg.ProfilePort != 0 {
		go utils.StartPProf(cfg.ProfilePort, "")
	}

	interrupt := make(chan os.Signal, 1)
	signal.Notify(interrupt, os.Interrupt, syscall.SIGTERM)
	<-interrupt

	log.Info("Node shutting down...")
	svc.Halt()
}
