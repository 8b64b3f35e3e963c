// Copyright (c) 2019-2022 The Lumachain Foundation
// Use of this source code is governed by an MIT
// license that can be found in the LICENSE file.
//

package blockchain

import (
	"container/list"
	"errors"
	"sync"

	"github.com/lumachain/Lumachain.LUMA/common"
	"github.com/lumachain/Lumachain.LUMA/common/config"
	"github.com/lumachain/Lumachain.LUMA/core/types/interfaces"
)

const defaultTxCacheVolume = 100000

type IUTXOCacheStore interface {
	GetTransaction(txID common.Uint256) (interfaces.Transaction, uint32, error)
}

// UTXOCache resolves prior transactions for UTXO inputs, keeping a
// bounded FIFO of decoded transactions in front of the store.  The
// whole resolver can be switched off when the node runs without a
// transaction index, in which case every lookup fails and UTXO spends
// cannot validate.
type UTXOCache struct {
	sync.Mutex

	db      IUTXOCacheStore
	enabled bool
	volume  int
	txIDs   *list.List
	txCache map[common.Uint256]interfaces.Transaction
}

func NewUTXOCache(db IUTXOCacheStore, params *config.Configuration) *UTXOCache {
	volume := params.TxCacheVolume
	if volume <= 0 {
		volume = defaultTxCacheVolume
	}

	return &UTXOCache{
		db:      db,
		enabled: params.EnableUtxoDB,
		volume:  int(volume),
		txIDs:   list.New(),
		txCache: make(map[common.Uint256]interfaces.Transaction),
	}
}

// GetPrevUtxoTx loads the transaction an input refers to.  Whether the
// transaction actually carries UTXO outputs is for the caller to judge.
func (up *UTXOCache) GetPrevUtxoTx(txID common.Uint256) (interfaces.Transaction, error) {
	up.Lock()
	defer up.Unlock()

	return up.getTransaction(txID)
}

func (up *UTXOCache) getTransaction(txID common.Uint256) (interfaces.Transaction, error) {
	if !up.enabled {
		return nil, errors.New("transaction index is disabled")
	}

	prevTx, exist := up.txCache[txID]
	if !exist {
		var err error
		prevTx, _, err = up.db.GetTransaction(txID)
		if err != nil {
			return nil, errors.New("transaction not found, " + err.Error())
		}
		up.insertTransaction(txID, prevTx)
	}

	return prevTx, nil
}

func (up *UTXOCache) insertTransaction(txID common.Uint256, tx interfaces.Transaction) {
	for up.txIDs.Len() >= up.volume {
		front := up.txIDs.Front()
		up.txIDs.Remove(front)
		delete(up.txCache, front.Value.(common.Uint256))
	}

	up.txIDs.PushBack(txID)
	up.txCache[txID] = tx
}

func (up *UTXOCache) CleanCache() {
	up.Lock()
	defer up.Unlock()

	up.txIDs.Init()
	up.txCache = make(map[common.Uint256]interfaces.Transaction)
}
