// Copyright (c) 2019-2022 The Lumachain Foundation
// Use of this source code is governed by an MIT
// license that can be found in the LICENSE file.
//

package blockchain_test

import (
	"testing"
	"time"

	"github.com/lumachain/Lumachain.LUMA/blockchain"
	"github.com/lumachain/Lumachain.LUMA/common/config"
	common2 "github.com/lumachain/Lumachain.LUMA/core/types/common"
	"github.com/lumachain/Lumachain.LUMA/core/types/functions"
	"github.com/lumachain/Lumachain.LUMA/core/types/interfaces"
	"github.com/lumachain/Lumachain.LUMA/core/types/payload"
	"github.com/lumachain/Lumachain.LUMA/events"

	"github.com/stretchr/testify/assert"
)

var connectedHeights = make(chan uint32, 64)

func init() {
	events.Subscribe(func(e *events.Event) {
		if e.Type != events.ETBlockConnected {
			return
		}
		if height, ok := e.Data.(uint32); ok {
			select {
			case connectedHeights <- height:
			default:
			}
		}
	})
}

func drainConnected() {
	for {
		select {
		case <-connectedHeights:
		default:
			return
		}
	}
}

func newTestLedger(t *testing.T) *blockchain.Ledger {
	store, err := blockchain.NewChainStore(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(store.Close)

	params := *config.GetDefaultParams()
	chain, err := blockchain.New(store, &params)
	if err != nil {
		t.Fatal(err)
	}
	return &blockchain.Ledger{Blockchain: chain, Store: store}
}

func newCoinbase(height uint32) interfaces.Transaction {
	return functions.CreateTransaction(
		0,
		common2.CoinBase,
		payload.CoinBaseVersion,
		&payload.CoinBase{Content: []byte("lumachain")},
		common2.UserID{},
		config.LUMA,
		0,
		height,
		[]byte{},
	)
}

func TestApplyBlockNotifiesConnected(t *testing.T) {
	ledger := newTestLedger(t)
	drainConnected()

	err := ledger.ApplyBlock(2, []interfaces.Transaction{newCoinbase(2)})
	assert.NoError(t, err)
	assert.Equal(t, uint32(2), ledger.Store.GetHeight())

	select {
	case height := <-connectedHeights:
		assert.Equal(t, uint32(2), height)
	case <-time.After(time.Second):
		t.Error("no block connected notification")
	}
}

func TestApplySingleTransactionDoesNotNotify(t *testing.T) {
	ledger := newTestLedger(t)
	drainConnected()

	err := ledger.ApplyTransaction(newCoinbase(2), 2, 0)
	assert.NoError(t, err)

	// notifications are synchronous, so none pending means none sent
	select {
	case <-connectedHeights:
		t.Error("single transaction apply must not announce a block")
	default:
	}
}

func TestGetTransactionWithHash(t *testing.T) {
	ledger := newTestLedger(t)

	coinbase := newCoinbase(2)
	err := ledger.ApplyBlock(2, []interfaces.Transaction{coinbase})
	assert.NoError(t, err)
	assert.Equal(t, uint32(2), ledger.GetLocalBlockChainHeight())

	tx, gerr := ledger.GetTransactionWithHash(coinbase.Hash())
	assert.NoError(t, gerr)
	assert.Equal(t, coinbase.Hash(), tx.Hash())

	_, gerr = ledger.GetTransactionWithHash(newCoinbase(9).Hash())
	assert.Error(t, gerr)
	assert.Contains(t, gerr.Error(), "GetTransactionWithHash failed")
}
