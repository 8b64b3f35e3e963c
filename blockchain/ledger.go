// Copyright (c) 2019-2022 The Lumachain Foundation
// Use of this source code is governed by an MIT
// license that can be found in the LICENSE file.
//

package blockchain

import (
	"errors"
	"sync"

	. "github.com/lumachain/Lumachain.LUMA/common"
	"github.com/lumachain/Lumachain.LUMA/core/types/functions"
	"github.com/lumachain/Lumachain.LUMA/core/types/interfaces"
	lumaerr "github.com/lumachain/Lumachain.LUMA/errors"
	"github.com/lumachain/Lumachain.LUMA/events"
)

var (
	DefaultLedger *Ledger
)

// Ledger is the apply framework around the transaction engine.  It owns
// the critical section: everything between opening a StateBatch and its
// commit or rollback runs under the ledger mutex, so liveness checks
// and balance mutations of one transaction are never interleaved with
// another.
type Ledger struct {
	Blockchain *BlockChain
	Store      IChainStore

	mtx sync.Mutex
}

// Get transaction with hash.
func (l *Ledger) GetTransactionWithHash(hash Uint256) (interfaces.Transaction, error) {
	tx, _, err := l.Store.GetTransaction(hash)
	if err != nil {
		return nil, errors.New("[Ledger],GetTransactionWithHash failed with hash=" + hash.String())
	}
	return tx, nil
}

// Get local block chain height.
func (l *Ledger) GetLocalBlockChainHeight() uint32 {
	return l.Blockchain.GetHeight()
}

// ApplyTransaction validates and settles a single transaction at the
// given chain position.  On success the state changes are committed; on
// failure no state leaks.
func (l *Ledger) ApplyTransaction(tx interfaces.Transaction, height uint32,
	txIndex uint16) lumaerr.LumaError {

	l.mtx.Lock()
	defer l.mtx.Unlock()

	batch := l.Store.NewStateBatch()
	if err := l.applyTransaction(batch, tx, height, txIndex); err != nil {
		batch.Rollback()
		return err
	}
	batch.SetBestHeight(height)
	if err := batch.Commit(); err != nil {
		batch.Rollback()
		return lumaerr.Simple(lumaerr.ErrFail, err)
	}

	return nil
}

// ApplyBlock settles every transaction of one block inside a single
// batch.  The first failing transaction aborts the whole block.
func (l *Ledger) ApplyBlock(height uint32, txs []interfaces.Transaction) lumaerr.LumaError {
	l.mtx.Lock()
	defer l.mtx.Unlock()

	batch := l.Store.NewStateBatch()
	for i, tx := range txs {
		if err := l.applyTransaction(batch, tx, height, uint16(i)); err != nil {
			batch.Rollback()
			return err
		}
	}
	batch.SetBestHeight(height)
	if err := batch.Commit(); err != nil {
		batch.Rollback()
		return lumaerr.Simple(lumaerr.ErrFail, err)
	}

	events.Notify(events.ETBlockConnected, height)
	return nil
}

func (l *Ledger) applyTransaction(batch *StateBatch, tx interfaces.Transaction,
	height uint32, txIndex uint16) lumaerr.LumaError {

	if err := l.Blockchain.CheckTransactionSanity(height, tx); err != nil {
		return err
	}
	if _, err := l.Blockchain.CheckTransactionContext(height, tx, 0); err != nil {
		return err
	}

	para := functions.GetTransactionExecuteParameters(
		tx, height, txIndex, l.Blockchain, batch)
	if err := tx.ExecuteTx(para); err != nil {
		return err
	}

	return l.putTransaction(batch, tx, height)
}

func (l *Ledger) putTransaction(batch *StateBatch, tx interfaces.Transaction,
	height uint32) lumaerr.LumaError {

	if err := batch.PutTransaction(tx, height); err != nil {
		return lumaerr.Simple(lumaerr.ErrFail, err)
	}
	return nil
}
