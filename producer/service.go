// Copyright (c) 2019-2022 The Lumachain Foundation
// Use of this source code is governed by an MIT
// license that can be found in the LICENSE file.
//

package producer

import (
	"errors"
	"sort"
	"sync"
	"time"

	"github.com/lumachain/Lumachain.LUMA/blockchain"
	"github.com/lumachain/Lumachain.LUMA/common/config"
	"github.com/lumachain/Lumachain.LUMA/common/log"
	common2 "github.com/lumachain/Lumachain.LUMA/core/types/common"
	"github.com/lumachain/Lumachain.LUMA/core/types/functions"
	"github.com/lumachain/Lumachain.LUMA/core/types/interfaces"
	"github.com/lumachain/Lumachain.LUMA/core/types/payload"
	"github.com/lumachain/Lumachain.LUMA/mempool"
)

// Config holds the collaborators of the block producer.
type Config struct {
	ProducerInfo string
	Ledger       *blockchain.Ledger
	ChainParams  *config.Configuration
	TxMemPool    *mempool.TxPool
}

// Service produces blocks for a single node chain: it drains the
// memory pool, settles the collected transactions through the ledger
// and prunes the pool afterwards.  There is no difficulty to solve,
// one node is the only producer of its chain.
type Service struct {
	producerInfo string
	ledger       *blockchain.Ledger
	chain        *blockchain.BlockChain
	chainParams  *config.Configuration
	txMemPool    *mempool.TxPool

	mutex              sync.Mutex
	started            bool
	discreteGenerating bool

	wg   sync.WaitGroup
	quit chan struct{}
}

// CreateCoinbaseTx builds the marker transaction anchoring a generated
// block.  It moves no balances and names no sender.
func (s *Service) CreateCoinbaseTx(nextBlockHeight uint32) interfaces.Transaction {
	return functions.CreateTransaction(
		common2.TxVersionDefault,
		common2.CoinBase,
		payload.CoinBaseVersion,
		&payload.CoinBase{Content: []byte(s.producerInfo)},
		common2.UserID{},
		config.LUMA,
		0,
		nextBlockHeight,
		nil,
	)
}

// GenerateBlock assembles the transaction list of the next block: the
// coinbase followed by the highest paying pool transactions that still
// validate at the next height.
func (s *Service) GenerateBlock() (uint32, []interfaces.Transaction) {
	nextBlockHeight := s.chain.GetHeight() + 1
	blockTxs := []interfaces.Transaction{s.CreateCoinbaseTx(nextBlockHeight)}

	txs := s.txMemPool.GetTxsInPool()
	sort.Slice(txs, func(i, j int) bool {
		return txs[i].Fees() > txs[j].Fees()
	})

	for _, tx := range txs {
		if uint32(len(blockTxs)) >= s.chainParams.MaxTxsInBlock {
			break
		}
		if _, err := s.chain.CheckTransactionContext(
			nextBlockHeight, tx, 0); err != nil {
			log.Warn("check transaction context failed, wrong transaction:",
				tx.Hash().String())
			continue
		}
		blockTxs = append(blockTxs, tx)
	}

	return nextBlockHeight, blockTxs
}

// ProcessBlock settles a generated block and prunes the pool of what
// the block consumed.
func (s *Service) ProcessBlock(height uint32, txs []interfaces.Transaction) error {
	if err := s.ledger.ApplyBlock(height, txs); err != nil {
		return err
	}
	s.txMemPool.CleanSubmittedTransactions(txs)
	s.txMemPool.ResendOutdatedTransactions(height)
	return nil
}

// DiscreteGeneration produces n blocks back to back and returns the
// heights they settled at.
func (s *Service) DiscreteGeneration(n uint32) ([]uint32, error) {
	s.mutex.Lock()

	if s.started || s.discreteGenerating {
		s.mutex.Unlock()
		return nil, errors.New("service is already generating")
	}

	s.started = true
	s.discreteGenerating = true
	s.mutex.Unlock()

	log.Debugf("Discrete generating %d blocks", n)
	heights := make([]uint32, 0, n)

	for i := uint32(0); i < n; i++ {
		height, txs := s.GenerateBlock()
		if err := s.ProcessBlock(height, txs); err != nil {
			s.mutex.Lock()
			s.started = false
			s.discreteGenerating = false
			s.mutex.Unlock()
			return heights, err
		}
		heights = append(heights, height)
	}

	s.mutex.Lock()
	s.started = false
	s.discreteGenerating = false
	s.mutex.Unlock()
	return heights, nil
}

func (s *Service) Start() {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	if s.started || s.discreteGenerating {
		log.Debug("producer is already started")
		return
	}

	s.quit = make(chan struct{})
	s.wg.Add(1)
	s.started = true

	go s.generateLoop()
}

func (s *Service) Halt() {
	log.Info("Producer Stop")
	s.mutex.Lock()
	defer s.mutex.Unlock()

	if !s.started || s.discreteGenerating {
		return
	}

	close(s.quit)
	s.wg.Wait()
	s.started = false
}

func (s *Service) generateLoop() {
	defer s.wg.Done()

	interval := time.Duration(s.chainParams.GenerateBlockInterval) * time.Second
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-s.quit:
			return
		case <-ticker.C:
			// an empty pool produces no block, height only moves on
			// demand or on traffic
			if s.txMemPool.GetTransactionCount() == 0 {
				continue
			}
			height, txs := s.GenerateBlock()
			if err := s.ProcessBlock(height, txs); err != nil {
				log.Error("process generated block failed,", err)
				continue
			}
			log.Infof("new block settled at height %d with %d transactions",
				height, len(txs))
		}
	}
}

func NewService(cfg *Config) *Service {
	return &Service{
		producerInfo: cfg.ProducerInfo,
		ledger:       cfg.Ledger,
		chain:        cfg.Ledger.Blockchain,
		chainParams:  cfg.ChainParams,
		txMemPool:    cfg.TxMemPool,

		started:            false,
		discreteGenerating: false,
	}
}
