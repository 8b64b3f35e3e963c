// Copyright (c) 2019-2022 The Lumachain Foundation
// Use of this source code is governed by an MIT
// license that can be found in the LICENSE file.
//

package mempool

import (
	"fmt"
	"sync"

	"github.com/lumachain/Lumachain.LUMA/blockchain"
	"github.com/lumachain/Lumachain.LUMA/common"
	"github.com/lumachain/Lumachain.LUMA/common/config"
	"github.com/lumachain/Lumachain.LUMA/common/log"
	"github.com/lumachain/Lumachain.LUMA/core/types/interfaces"
	"github.com/lumachain/Lumachain.LUMA/core/types/payload"
	"github.com/lumachain/Lumachain.LUMA/core/types/utxo"
	lumaerr "github.com/lumachain/Lumachain.LUMA/errors"
	"github.com/lumachain/Lumachain.LUMA/events"
)

type TxPool struct {
	conflictManager
	chainParams *config.Configuration

	txnList         map[common.Uint256]interfaces.Transaction
	txFees          *txFeeOrderedList
	txReceivingInfo map[common.Uint256]TxReceivingInfo

	sync.RWMutex
}

// TxReceivingInfo record the tx receiving info detail, can expend it's
// field in the future need
type TxReceivingInfo struct {
	Height uint32
}

// append transaction to txnpool when check ok, and broadcast the
// transaction.
// 1.check  2.check with ledger(db) 3.check with pool
func (mp *TxPool) AppendToTxPool(tx interfaces.Transaction) lumaerr.LumaError {
	mp.Lock()
	defer mp.Unlock()
	err := mp.appendToTxPool(tx)
	if err != nil {
		return err
	}

	go events.Notify(events.ETTransactionAccepted, tx)
	return nil
}

// append transaction to txnpool when check ok.
// 1.check  2.check with ledger(db) 3.check with pool
func (mp *TxPool) AppendToTxPoolWithoutEvent(tx interfaces.Transaction) lumaerr.LumaError {
	mp.Lock()
	defer mp.Unlock()
	return mp.appendToTxPool(tx)
}

func (mp *TxPool) appendToTxPool(tx interfaces.Transaction) lumaerr.LumaError {
	txHash := tx.Hash()

	chain := blockchain.DefaultLedger.Blockchain
	bestHeight := chain.GetHeight()

	// Don't accept the transaction if it already exists in the pool.
	// This check is intended to be a quick check to weed out
	// duplicates.
	if _, ok := mp.txnList[txHash]; ok {
		return lumaerr.Simple(lumaerr.ErrTxDuplicate, nil)
	}

	if tx.IsCoinBaseTx() {
		log.Warnf("coinbase tx %s cannot be added into transaction pool",
			tx.Hash())
		return lumaerr.Simple(lumaerr.ErrTxPoolFailure, nil)
	}

	if err := chain.CheckTransactionSanity(bestHeight+1, tx); err != nil {
		log.Warn("[TxPool CheckTransactionSanity] failed", tx.Hash())
		return err
	}
	if _, err := chain.CheckTransactionContext(bestHeight+1, tx, 0); err != nil {
		log.Warnf("[TxPool CheckTransactionContext] failed, hash: %s, err: %s",
			tx.Hash(), err)
		return err
	}
	// verify transaction by pool with lock
	if err := mp.VerifyTx(tx); err != nil {
		log.Warn("[TxPool verifyTransactionWithTxnPool] failed", tx.Hash())
		return err
	}

	size := tx.GetSize()
	if mp.txFees.OverSize(uint64(size)) {
		log.Warn("TxPool check transactions size failed", tx.Hash())
		return lumaerr.Simple(lumaerr.ErrTxPoolOverCapacity, nil)
	}
	if err := mp.AppendTx(tx); err != nil {
		log.Warn("[TxPool conflictManager AppendTx] failed", tx.Hash())
		return err
	}
	// Add the transaction to mem pool
	if err := mp.doAddTransaction(tx); err != nil {
		mp.removeTx(tx)
		return err
	}

	// record the tx receiving info
	mp.txReceivingInfo[txHash] = TxReceivingInfo{
		Height: bestHeight,
	}

	return nil
}

// GetUsedUTXOs returns all used refer keys of inputs.
func (mp *TxPool) GetUsedUTXOs() map[string]struct{} {
	mp.RLock()
	defer mp.RUnlock()
	usedUTXOs := make(map[string]struct{})
	for _, v := range mp.txnList {
		pl, ok := v.Payload().(*payload.CoinUTXOTransfer)
		if !ok {
			continue
		}
		for i := range pl.Vins {
			usedUTXOs[pl.Vins[i].ReferKey()] = struct{}{}
		}
	}
	return usedUTXOs
}

// HaveTransaction returns if a transaction is in transaction pool by
// the given transaction id. If no transaction match the transaction id,
// return false
func (mp *TxPool) HaveTransaction(txId common.Uint256) bool {
	mp.RLock()
	_, ok := mp.txnList[txId]
	mp.RUnlock()
	return ok
}

// GetTxsInPool returns a slice of all transactions in the mp.
//
// This function is safe for concurrent access.
func (mp *TxPool) GetTxsInPool() []interfaces.Transaction {
	mp.RLock()
	txs := make([]interfaces.Transaction, 0, len(mp.txnList))
	for _, tx := range mp.txnList {
		txs = append(txs, tx)
	}
	mp.RUnlock()
	return txs
}

// clean the transaction Pool with committed transactions.
func (mp *TxPool) CleanSubmittedTransactions(blockTxs []interfaces.Transaction) {
	mp.Lock()
	mp.cleanTransactions(blockTxs)
	mp.Unlock()
}

// ResendOutdatedTransactions flags transactions that have waited in the
// pool beyond the resend window, so the owner can rebroadcast them.
func (mp *TxPool) ResendOutdatedTransactions(bestHeight uint32) {
	mp.Lock()
	txs := make([]interfaces.Transaction, 0)
	for txHash, info := range mp.txReceivingInfo {
		if bestHeight-info.Height > mp.chainParams.MemoryPoolTxMaximumStayHeight {
			tx, ok := mp.txnList[txHash]
			if !ok {
				log.Warn("ResendOutdatedTransactions invalid transaction")
				continue
			}
			txs = append(txs, tx)
		}
	}

	if len(txs) != 0 {
		go events.Notify(events.ETResendOutdatedTxToTxPool, txs)
	}
	mp.Unlock()
}

func (mp *TxPool) CheckAndCleanAllTransactions() {
	mp.Lock()
	mp.checkAndCleanAllTransactions()
	mp.Unlock()
}

func (mp *TxPool) cleanTransactions(blockTxs []interfaces.Transaction) {
	txsInPool := len(mp.txnList)
	deleteCount := 0
	for _, blockTx := range blockTxs {
		if blockTx.IsCoinBaseTx() {
			continue
		}

		if pl, ok := blockTx.Payload().(*payload.CoinUTXOTransfer); ok {
			for i := range pl.Vins {
				input := &pl.Vins[i]
				// if a pooled transaction spends a utxo a committed
				// transaction just consumed, it can never validate
				// again and has to go
				if tx := mp.getInputUTXOList(input); tx != nil {
					if tx.Hash().IsEqual(blockTx.Hash()) {
						log.Debugf("duplicated transaction detected when "+
							"adding a new block, tx id: %s", tx.Hash())
					} else {
						log.Debugf("double spent UTXO input detected in "+
							"transaction pool when adding a new block, "+
							"block tx hash: %s, tx hash: %s, the same input: %s",
							blockTx.Hash(), tx.Hash(), input.String())
					}
					mp.doRemoveTransaction(tx)
					deleteCount++
				}
			}
		}

		// the committed transaction itself may still sit in the pool
		if tx, ok := mp.txnList[blockTx.Hash()]; ok {
			mp.doRemoveTransaction(tx)
			deleteCount++
		}
	}
	log.Debug(fmt.Sprintf("[cleanTransactionList],transaction %d in block, "+
		"%d in transaction pool before, %d deleted, Remains %d in TxPool",
		len(blockTxs), txsInPool, deleteCount, len(mp.txnList)))
}

func (mp *TxPool) checkAndCleanAllTransactions() {
	chain := blockchain.DefaultLedger.Blockchain
	bestHeight := chain.GetHeight()

	txCount := len(mp.txnList)
	var deleteCount int
	for _, tx := range mp.txnList {
		if _, err := chain.CheckTransactionContext(bestHeight+1, tx, 0); err != nil {
			log.Warn("[checkAndCleanAllTransactions] check transaction "+
				"context failed,", err)
			deleteCount++
			mp.doRemoveTransaction(tx)
		}
	}

	log.Debug(fmt.Sprintf("[checkAndCleanAllTransactions],transaction %d "+
		"in transaction pool before, %d deleted. Remains %d in TxPool",
		txCount, deleteCount, txCount-deleteCount))
}

// get the transaction by hash
func (mp *TxPool) GetTransaction(hash common.Uint256) interfaces.Transaction {
	mp.RLock()
	defer mp.RUnlock()
	return mp.txnList[hash]
}

// remove from associated map
func (mp *TxPool) removeTransaction(tx interfaces.Transaction) {
	if _, ok := mp.txnList[tx.Hash()]; ok {
		mp.doRemoveTransaction(tx)
	}
}

func (mp *TxPool) GetTransactionCount() int {
	mp.RLock()
	defer mp.RUnlock()
	return len(mp.txnList)
}

func (mp *TxPool) getInputUTXOList(input *utxo.Input) interfaces.Transaction {
	return mp.GetTx(input.ReferKey(), slotTxInputsReferKeys)
}

func (mp *TxPool) MaybeAcceptTransaction(tx interfaces.Transaction) error {
	mp.Lock()
	defer mp.Unlock()
	return mp.appendToTxPool(tx)
}

// RemoveTransaction removes every pooled transaction that spends one of
// the given transaction's utxo outputs.
func (mp *TxPool) RemoveTransaction(txn interfaces.Transaction) {
	mp.Lock()
	defer mp.Unlock()

	pl, ok := txn.Payload().(*payload.CoinUTXOTransfer)
	if !ok {
		return
	}

	txHash := txn.Hash()
	for i := range pl.Vouts {
		input := utxo.Input{
			PrevUtxoTxID:     txHash,
			PrevUtxoOutIndex: uint16(i),
		}

		if tx := mp.getInputUTXOList(&input); tx != nil {
			mp.removeTransaction(tx)
		}
	}
}

func (mp *TxPool) doAddTransaction(tx interfaces.Transaction) lumaerr.LumaError {
	if err := mp.txFees.AddTx(tx); err != nil {
		return err
	}
	mp.txnList[tx.Hash()] = tx
	return nil
}

func (mp *TxPool) doRemoveTransaction(tx interfaces.Transaction) {
	hash := tx.Hash()
	txSize := tx.GetSize()
	feeRate := float64(tx.Fees()) / float64(txSize)

	if _, exist := mp.txnList[hash]; exist {
		delete(mp.txnList, hash)
		delete(mp.txReceivingInfo, hash)
		mp.txFees.RemoveTx(hash, uint64(txSize), feeRate)
		mp.removeTx(tx)
	}
}

func (mp *TxPool) onPopBack(hash common.Uint256) {
	tx, ok := mp.txnList[hash]
	if !ok {
		log.Warnf("cannot find tx %s when try to delete", hash)
		return
	}
	if err := mp.removeTx(tx); err != nil {
		log.Warnf(err.Error())
		return
	}
	delete(mp.txnList, hash)
	delete(mp.txReceivingInfo, hash)
}

func NewTxPool(params *config.Configuration) *TxPool {
	rtn := &TxPool{
		conflictManager: newConflictManager(),
		chainParams:     params,
		txnList:         make(map[common.Uint256]interfaces.Transaction),
		txReceivingInfo: make(map[common.Uint256]TxReceivingInfo),
	}
	rtn.txFees = newTxFeeOrderedList(rtn.onPopBack, params.MaxTxPoolSize)
	return rtn
}
