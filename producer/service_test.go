// Copyright (c) 2019-2022 The Lumachain Foundation
// Use of this source code is governed by an MIT
// license that can be found in the LICENSE file.
//

package producer

import (
	"bytes"
	"testing"

	"github.com/lumachain/Lumachain.LUMA/account"
	"github.com/lumachain/Lumachain.LUMA/blockchain"
	"github.com/lumachain/Lumachain.LUMA/common/config"
	"github.com/lumachain/Lumachain.LUMA/core/transaction"
	common2 "github.com/lumachain/Lumachain.LUMA/core/types/common"
	"github.com/lumachain/Lumachain.LUMA/core/types/functions"
	"github.com/lumachain/Lumachain.LUMA/core/types/interfaces"
	"github.com/lumachain/Lumachain.LUMA/core/types/payload"
	"github.com/lumachain/Lumachain.LUMA/crypto"
	"github.com/lumachain/Lumachain.LUMA/mempool"

	"github.com/stretchr/testify/assert"
)

func init() {
	functions.GetTransactionByTxType = transaction.GetTransaction
	functions.GetTransactionByBytes = transaction.GetTransactionByBytes
	functions.CreateTransaction = transaction.CreateTransaction
	functions.GetTransactionParameters = transaction.GetTransactionparameters
	functions.GetTransactionExecuteParameters = transaction.GetTransactionExecuteParameters
	config.DefaultParams = *config.GetDefaultParams()
}

type producerEnv struct {
	svc    *Service
	pool   *mempool.TxPool
	store  blockchain.IChainStore
	ledger *blockchain.Ledger
	params *config.Configuration
}

// newProducerEnv wires a producer to a fresh chain.  The fee floor is
// zeroed so scenarios can run on round numbers.
func newProducerEnv(t *testing.T) *producerEnv {
	params := config.GetDefaultParams()
	params.MinTxFee = 0

	store, err := blockchain.NewChainStore(t.TempDir())
	assert.NoError(t, err)

	chain, err := blockchain.New(store, params)
	assert.NoError(t, err)

	ledger := &blockchain.Ledger{Blockchain: chain, Store: store}
	origin := blockchain.DefaultLedger
	blockchain.DefaultLedger = ledger
	t.Cleanup(func() {
		store.Close()
		blockchain.DefaultLedger = origin
	})

	pool := mempool.NewTxPool(params)
	svc := NewService(&Config{
		ProducerInfo: "lumachain-test",
		Ledger:       ledger,
		ChainParams:  params,
		TxMemPool:    pool,
	})
	return &producerEnv{
		svc:    svc,
		pool:   pool,
		store:  store,
		ledger: ledger,
		params: params,
	}
}

type testSigner struct {
	priKey []byte
	uid    common2.UserID
}

func newTestSigner(t *testing.T) *testSigner {
	priKey, pubKey, err := crypto.GenerateKeyPair()
	assert.NoError(t, err)
	pkBuf, err := pubKey.EncodePoint(true)
	assert.NoError(t, err)
	return &testSigner{priKey: priKey, uid: common2.NewPubKeyUid(pkBuf)}
}

func (s *testSigner) seed(t *testing.T, store blockchain.IChainStore,
	amount uint64) {

	acc := account.NewAccount(s.uid.PubKey)
	assert.True(t, acc.OperateBalance(config.LUMA, account.AddFree, amount))
	batch := store.NewStateBatch()
	assert.NoError(t, batch.SaveAccount(acc))
	assert.NoError(t, batch.Commit())
}

func (s *testSigner) transferTx(t *testing.T, toUid common2.UserID,
	amount, fees uint64) interfaces.Transaction {

	tx := functions.CreateTransaction(
		0,
		common2.CoinTransfer,
		0,
		&payload.CoinTransfer{
			ToUid:      toUid,
			CoinSymbol: config.LUMA,
			CoinAmount: amount,
		},
		s.uid,
		config.LUMA,
		fees,
		0,
		[]byte{},
	)
	buf := new(bytes.Buffer)
	assert.NoError(t, tx.SerializeUnsigned(buf))
	signature, err := crypto.Sign(s.priKey, buf.Bytes())
	assert.NoError(t, err)
	tx.SetSignature(signature)
	return tx
}

func TestCreateCoinbaseTx(t *testing.T) {
	env := newProducerEnv(t)

	tx := env.svc.CreateCoinbaseTx(5)

	assert.True(t, tx.IsCoinBaseTx())
	assert.Equal(t, uint32(5), tx.ValidHeight())
	assert.Equal(t, uint64(0), tx.Fees())
	txUid := tx.TxUid()
	assert.True(t, txUid.IsEmpty())

	pl, ok := tx.Payload().(*payload.CoinBase)
	if assert.True(t, ok) {
		assert.Equal(t, []byte("lumachain-test"), pl.Content)
	}
}

func TestGenerateBlockOrdersByFee(t *testing.T) {
	env := newProducerEnv(t)
	sender := newTestSigner(t)
	sender.seed(t, env.store, 1000000)
	receiver := newTestSigner(t)

	cheap := sender.transferTx(t, receiver.uid, 100, 200)
	rich := sender.transferTx(t, receiver.uid, 100, 400)
	middle := sender.transferTx(t, receiver.uid, 100, 300)
	for _, tx := range []interfaces.Transaction{cheap, rich, middle} {
		assert.NoError(t, env.pool.AppendToTxPoolWithoutEvent(tx))
	}

	height, txs := env.svc.GenerateBlock()

	assert.Equal(t, uint32(1), height)
	if assert.Len(t, txs, 4) {
		assert.True(t, txs[0].IsCoinBaseTx())
		assert.Equal(t, rich.Hash(), txs[1].Hash())
		assert.Equal(t, middle.Hash(), txs[2].Hash())
		assert.Equal(t, cheap.Hash(), txs[3].Hash())
	}
}

func TestGenerateBlockHonorsMaxTxs(t *testing.T) {
	env := newProducerEnv(t)
	env.params.MaxTxsInBlock = 2
	sender := newTestSigner(t)
	sender.seed(t, env.store, 1000000)
	receiver := newTestSigner(t)

	for _, fees := range []uint64{100, 300, 200} {
		tx := sender.transferTx(t, receiver.uid, 100, fees)
		assert.NoError(t, env.pool.AppendToTxPoolWithoutEvent(tx))
	}

	_, txs := env.svc.GenerateBlock()

	// The coinbase counts against the block budget; only the best
	// paying transaction makes it in.
	if assert.Len(t, txs, 2) {
		assert.True(t, txs[0].IsCoinBaseTx())
		assert.Equal(t, uint64(300), txs[1].Fees())
	}
}

func TestGenerateBlockSkipsStaleTransactions(t *testing.T) {
	env := newProducerEnv(t)
	sender := newTestSigner(t)
	sender.seed(t, env.store, 1000)
	receiver := newTestSigner(t)

	pooled := sender.transferTx(t, receiver.uid, 900, 50)
	assert.NoError(t, env.pool.AppendToTxPoolWithoutEvent(pooled))

	// A confirmed block drains the sender behind the pool's back.
	drain := sender.transferTx(t, receiver.uid, 800, 0)
	assert.NoError(t, env.ledger.ApplyBlock(1, []interfaces.Transaction{drain}))

	height, txs := env.svc.GenerateBlock()

	assert.Equal(t, uint32(2), height)
	if assert.Len(t, txs, 1) {
		assert.True(t, txs[0].IsCoinBaseTx())
	}
}

func TestProcessBlockPrunesPool(t *testing.T) {
	env := newProducerEnv(t)
	sender := newTestSigner(t)
	sender.seed(t, env.store, 1000000)
	receiver := newTestSigner(t)

	first := sender.transferTx(t, receiver.uid, 1000, 100)
	second := sender.transferTx(t, receiver.uid, 2000, 100)
	assert.NoError(t, env.pool.AppendToTxPoolWithoutEvent(first))
	assert.NoError(t, env.pool.AppendToTxPoolWithoutEvent(second))
	assert.Equal(t, 2, env.pool.GetTransactionCount())

	height, txs := env.svc.GenerateBlock()
	assert.NoError(t, env.svc.ProcessBlock(height, txs))

	assert.Equal(t, uint32(1), env.ledger.Blockchain.GetHeight())
	assert.Equal(t, 0, env.pool.GetTransactionCount())

	assert.True(t, env.store.IsTxHashDuplicate(first.Hash()))

	acc, err := env.store.GetAccount(receiver.uid)
	assert.NoError(t, err)
	assert.Equal(t, uint64(3000), acc.Balances[config.LUMA])
}

func TestDiscreteGeneration(t *testing.T) {
	env := newProducerEnv(t)
	sender := newTestSigner(t)
	sender.seed(t, env.store, 1000000)
	receiver := newTestSigner(t)

	tx := sender.transferTx(t, receiver.uid, 1000, 100)
	assert.NoError(t, env.pool.AppendToTxPoolWithoutEvent(tx))

	heights, err := env.svc.DiscreteGeneration(3)
	assert.NoError(t, err)
	assert.Equal(t, []uint32{1, 2, 3}, heights)
	assert.Equal(t, uint32(3), env.ledger.Blockchain.GetHeight())
	assert.Equal(t, 0, env.pool.GetTransactionCount())

	acc, err := env.store.GetAccount(receiver.uid)
	assert.NoError(t, err)
	assert.Equal(t, uint64(1000), acc.Balances[config.LUMA])
}

func TestDiscreteGenerationWhileBusy(t *testing.T) {
	env := newProducerEnv(t)

	env.svc.started = true
	_, err := env.svc.DiscreteGeneration(1)
	assert.EqualError(t, err, "service is already generating")
	env.svc.started = false

	heights, err := env.svc.DiscreteGeneration(1)
	assert.NoError(t, err)
	assert.Equal(t, []uint32{1}, heights)
}

func TestStartAndHalt(t *testing.T) {
	env := newProducerEnv(t)

	env.svc.Start()
	assert.True(t, env.svc.started)

	// Start is idempotent while running.
	env.svc.Start()

	env.svc.Halt()
	assert.False(t, env.svc.started)

	// A halted producer can be started again.
	env.svc.Start()
	env.svc.Halt()
}
