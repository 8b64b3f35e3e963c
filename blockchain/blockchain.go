// Copyright (c) 2019-2022 The Lumachain Foundation
// Use of this source code is governed by an MIT
// license that can be found in the LICENSE file.
//

package blockchain

import (
	"errors"

	"github.com/lumachain/Lumachain.LUMA/account"
	"github.com/lumachain/Lumachain.LUMA/common"
	"github.com/lumachain/Lumachain.LUMA/common/config"
	common2 "github.com/lumachain/Lumachain.LUMA/core/types/common"
	"github.com/lumachain/Lumachain.LUMA/crypto"
)

// BlockChain holds the committed chain state the checking pipeline runs
// against.
type BlockChain struct {
	chainParams *config.Configuration
	db          IChainStore
	UTXOCache   *UTXOCache
}

func New(db IChainStore, chainParams *config.Configuration) (*BlockChain, error) {
	chain := BlockChain{
		chainParams: chainParams,
		db:          db,
		UTXOCache:   NewUTXOCache(db, chainParams),
	}
	if err := chain.initGenesis(chainParams.GenesisFunds); err != nil {
		return nil, err
	}

	return &chain, nil
}

// initGenesis credits the configured genesis balances.  Seeding is
// idempotent: an account already on chain is left alone, so a reboot
// does not double credit.
func (b *BlockChain) initGenesis(funds []config.GenesisFund) error {
	if len(funds) == 0 {
		return nil
	}

	batch := b.db.NewStateBatch()
	seeded := make(map[string]*account.Account)
	for _, fund := range funds {
		acc, ok := seeded[fund.PubKey]
		if !ok {
			pubKey, err := common.HexStringToBytes(fund.PubKey)
			if err != nil {
				return errors.New("invalid genesis fund public key " +
					fund.PubKey)
			}
			if _, err := crypto.DecodePoint(pubKey); err != nil {
				return errors.New("genesis fund public key not on curve " +
					fund.PubKey)
			}
			if _, err := batch.GetAccount(common2.NewPubKeyUid(pubKey)); err == nil {
				continue
			}
			acc = account.NewAccount(pubKey)
			seeded[fund.PubKey] = acc
		}
		if !acc.OperateBalance(fund.Symbol, account.AddFree, fund.Amount) {
			return errors.New("genesis fund overflows " + fund.Symbol)
		}
	}
	if len(seeded) == 0 {
		batch.Rollback()
		return nil
	}

	for _, acc := range seeded {
		if err := batch.SaveAccount(acc); err != nil {
			return err
		}
	}
	return batch.Commit()
}

func (b *BlockChain) ChainParams() *config.Configuration {
	return b.chainParams
}

func (b *BlockChain) DB() IChainStore {
	return b.db
}

// GetHeight reports the best committed height.
func (b *BlockChain) GetHeight() uint32 {
	return b.db.GetHeight()
}

// GetAccount resolves a user id to committed account state.
func (b *BlockChain) GetAccount(uid common2.UserID) (*account.Account, error) {
	return b.db.GetAccount(uid)
}

func (b *BlockChain) IsTxHashDuplicate(txID common.Uint256) bool {
	return b.db.IsTxHashDuplicate(txID)
}
