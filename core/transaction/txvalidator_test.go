// Copyright (c) 2019-2022 The Lumachain Foundation
// Use of this source code is governed by an MIT
// license that can be found in the LICENSE file.
//

package transaction

import (
	"bytes"
	"crypto/rand"
	"fmt"
	"io"
	"testing"

	"github.com/lumachain/Lumachain.LUMA/account"
	"github.com/lumachain/Lumachain.LUMA/blockchain"
	"github.com/lumachain/Lumachain.LUMA/common"
	"github.com/lumachain/Lumachain.LUMA/common/config"
	common2 "github.com/lumachain/Lumachain.LUMA/core/types/common"
	"github.com/lumachain/Lumachain.LUMA/core/types/functions"
	"github.com/lumachain/Lumachain.LUMA/core/types/interfaces"
	"github.com/lumachain/Lumachain.LUMA/core/types/payload"
	"github.com/lumachain/Lumachain.LUMA/core/types/utxo"
	"github.com/lumachain/Lumachain.LUMA/crypto"
	lumaerr "github.com/lumachain/Lumachain.LUMA/errors"

	"github.com/stretchr/testify/suite"
)

func init() {
	testing.Init()

	functions.GetTransactionByTxType = GetTransaction
	functions.GetTransactionByBytes = GetTransactionByBytes
	functions.CreateTransaction = CreateTransaction
	functions.GetTransactionParameters = GetTransactionparameters
	functions.GetTransactionExecuteParameters = GetTransactionExecuteParameters
	config.DefaultParams = *config.GetDefaultParams()
}

type txValidatorTestSuite struct {
	suite.Suite

	CurrentHeight  uint32
	Chain          *blockchain.BlockChain
	Store          blockchain.IChainStore
	OriginalLedger *blockchain.Ledger
}

func (s *txValidatorTestSuite) SetupTest() {
	store, err := blockchain.NewChainStore(s.T().TempDir())
	s.NoError(err)
	s.Store = store

	s.Chain, err = blockchain.New(store, &config.DefaultParams)
	s.NoError(err)
	s.CurrentHeight = 1

	s.OriginalLedger = blockchain.DefaultLedger
	blockchain.DefaultLedger = &blockchain.Ledger{
		Blockchain: s.Chain,
		Store:      store,
	}
}

func (s *txValidatorTestSuite) TearDownTest() {
	s.Store.Close()
	blockchain.DefaultLedger = s.OriginalLedger
}

type testSigner struct {
	priKey []byte
	uid    common2.UserID
}

func newTestSigner(t *testing.T) *testSigner {
	priKey, pubKey, err := crypto.GenerateKeyPair()
	if err != nil {
		t.Fatal(err)
	}
	pkBuf, err := pubKey.EncodePoint(true)
	if err != nil {
		t.Fatal(err)
	}
	return &testSigner{priKey: priKey, uid: common2.NewPubKeyUid(pkBuf)}
}

func signTx(t *testing.T, signer *testSigner, tx interfaces.Transaction) {
	buf := new(bytes.Buffer)
	if err := tx.SerializeUnsigned(buf); err != nil {
		t.Fatal(err)
	}
	signature, err := crypto.Sign(signer.priKey, buf.Bytes())
	if err != nil {
		t.Fatal(err)
	}
	tx.SetSignature(signature)
}

func newUtxoTx(signer *testSigner, vins []utxo.Input, vouts []utxo.Output,
	fees uint64) interfaces.Transaction {

	return CreateTransaction(
		0,
		common2.CoinUTXOTransfer,
		payload.CoinUTXOTransferVersion,
		&payload.CoinUTXOTransfer{
			CoinSymbol: config.LUMA,
			Vins:       vins,
			Vouts:      vouts,
		},
		signer.uid,
		config.LUMA,
		fees,
		0,
		[]byte{},
	)
}

func newTransferTx(signer *testSigner, toUid common2.UserID, symbol string,
	amount, fees uint64) interfaces.Transaction {

	return CreateTransaction(
		0,
		common2.CoinTransfer,
		payload.CoinTransferVersion,
		&payload.CoinTransfer{
			ToUid:      toUid,
			CoinSymbol: symbol,
			CoinAmount: amount,
		},
		signer.uid,
		config.LUMA,
		fees,
		0,
		[]byte{},
	)
}

func randomTxHash() common.Uint256 {
	var hash common.Uint256
	rand.Read(hash[:])
	return hash
}

// seedAccount records a funded account in the store, outside of any
// transaction flow.
func seedAccount(t *testing.T, store blockchain.IChainStore,
	signer *testSigner, symbol string, amount uint64) {

	acc := account.NewAccount(signer.uid.PubKey)
	if !acc.OperateBalance(symbol, account.AddFree, amount) {
		t.Fatal("seeding the account overflows")
	}
	batch := store.NewStateBatch()
	if err := batch.SaveAccount(acc); err != nil {
		t.Fatal(err)
	}
	if err := batch.Commit(); err != nil {
		t.Fatal(err)
	}
}

// commitTx writes a transaction straight into the store together with
// live utxo entries for all its outputs, bypassing validation, so tests
// can craft arbitrary prior outputs.
func commitTx(t *testing.T, store blockchain.IChainStore,
	tx interfaces.Transaction, height uint32) {

	batch := store.NewStateBatch()
	if err := batch.PutTransaction(tx, height); err != nil {
		t.Fatal(err)
	}
	if pl, ok := tx.Payload().(*payload.CoinUTXOTransfer); ok {
		for i := range pl.Vouts {
			if err := batch.AddUTXO(tx.Hash(), uint16(i)); err != nil {
				t.Fatal(err)
			}
		}
	}
	if err := batch.Commit(); err != nil {
		t.Fatal(err)
	}
}

// fundUtxo commits one transaction of the signer creating a single
// output of the given amount under the given conditions.
func fundUtxo(t *testing.T, store blockchain.IChainStore, signer *testSigner,
	amount uint64, conds ...utxo.Cond) interfaces.Transaction {

	tx := newUtxoTx(signer, nil,
		[]utxo.Output{{CoinAmount: amount, Conds: conds}}, 0)
	signTx(t, signer, tx)
	commitTx(t, store, tx, 1)
	return tx
}

func spendInput(prevTx interfaces.Transaction, index uint16,
	proofs ...utxo.Cond) utxo.Input {

	return utxo.Input{
		PrevUtxoTxID:     prevTx.Hash(),
		PrevUtxoOutIndex: index,
		Conds:            proofs,
	}
}

func (s *txValidatorTestSuite) sanityCheck(tx interfaces.Transaction) lumaerr.LumaError {
	return s.Chain.CheckTransactionSanity(s.CurrentHeight, tx)
}

func (s *txValidatorTestSuite) contextCheck(tx interfaces.Transaction) lumaerr.LumaError {
	_, err := s.Chain.CheckTransactionContext(s.CurrentHeight, tx, 0)
	return err
}

func (s *txValidatorTestSuite) TestCheckTransactionSize() {
	signer := newTestSigner(s.T())
	tx := newUtxoTx(signer, nil, []utxo.Output{
		{CoinAmount: 100, Conds: []utxo.Cond{
			&utxo.SingleAddressCondOut{Uid: signer.uid}}},
	}, 100000)

	s.NoError(s.sanityCheck(tx))

	// a memo large enough pushes the whole transaction over the wire cap
	tx.SetMemo(make([]byte, MaxTransactionSize))
	err := s.sanityCheck(tx)
	s.Error(err)
	s.Equal(lumaerr.ErrTxSize, err.Code())
}

func (s *txValidatorTestSuite) TestCheckTransactionMemo() {
	signer := newTestSigner(s.T())
	tx := newUtxoTx(signer, nil, []utxo.Output{
		{CoinAmount: 100, Conds: []utxo.Cond{
			&utxo.SingleAddressCondOut{Uid: signer.uid}}},
	}, 100000)

	tx.SetMemo(make([]byte, config.DefaultParams.MaxTxMemoSize))
	s.NoError(s.sanityCheck(tx))

	tx.SetMemo(make([]byte, config.DefaultParams.MaxTxMemoSize+1))
	err := s.sanityCheck(tx)
	s.Error(err)
	s.Equal(lumaerr.ErrTxMemoSize, err.Code())
	s.EqualError(err.InnerError(), fmt.Sprintf("memo size %d exceeds limit %d",
		config.DefaultParams.MaxTxMemoSize+1, config.DefaultParams.MaxTxMemoSize))
}

func (s *txValidatorTestSuite) TestCheckTransactionUid() {
	signer := newTestSigner(s.T())

	tx := newUtxoTx(signer, nil, []utxo.Output{
		{CoinAmount: 100, Conds: []utxo.Cond{
			&utxo.SingleAddressCondOut{Uid: signer.uid}}},
	}, 100000)
	tx.SetTxUid(common2.UserID{})
	err := s.sanityCheck(tx)
	s.Error(err)
	s.Equal(lumaerr.ErrTxUidType, err.Code())
	s.EqualError(err.InnerError(), "txUid must be a regid or a public key")

	// a regid identifies a sender just as well as a public key
	tx.SetTxUid(common2.NewRegIDUid(common2.RegID{Height: 1, Index: 0}))
	s.NoError(s.sanityCheck(tx))

	// the coinbase goes the other way round, it must carry no sender
	coinbase := CreateTransaction(
		0,
		common2.CoinBase,
		payload.CoinBaseVersion,
		&payload.CoinBase{Content: []byte("lumachain")},
		signer.uid,
		config.LUMA,
		0,
		s.CurrentHeight,
		[]byte{},
	)
	err = s.sanityCheck(coinbase)
	s.Error(err)
	s.Equal(lumaerr.ErrTxUidType, err.Code())
	s.EqualError(err.InnerError(), "coinbase must not carry a txUid")

	coinbase.SetTxUid(common2.UserID{})
	s.NoError(s.sanityCheck(coinbase))
}

func (s *txValidatorTestSuite) TestCheckTransactionPayload() {
	signer := newTestSigner(s.T())

	tx := newUtxoTx(signer, nil, []utxo.Output{
		{CoinAmount: 100, Conds: []utxo.Cond{
			&utxo.SingleAddressCondOut{Uid: signer.uid}}},
	}, 100000)
	tx.Payload().(*payload.CoinUTXOTransfer).CoinSymbol = ""
	err := s.sanityCheck(tx)
	s.Error(err)
	s.Equal(lumaerr.ErrTxPayload, err.Code())
	s.EqualError(err.InnerError(), "coin symbol is empty")

	tx.SetPayload(&payload.CoinTransfer{})
	err = s.sanityCheck(tx)
	s.Error(err)
	s.Equal(lumaerr.ErrTxPayload, err.Code())
	s.EqualError(err.InnerError(), "invalid payload type")
}

func (s *txValidatorTestSuite) TestCheckCoinTransferPayload() {
	signer := newTestSigner(s.T())
	receiver := newTestSigner(s.T())

	tx := newTransferTx(signer, receiver.uid, config.LUMA, 100, 100000)
	s.NoError(s.sanityCheck(tx))

	tx.Payload().(*payload.CoinTransfer).ToUid = common2.UserID{}
	err := s.sanityCheck(tx)
	s.Error(err)
	s.Equal(lumaerr.ErrTxPayload, err.Code())
	s.EqualError(err.InnerError(), "transfer destination is empty")

	tx.Payload().(*payload.CoinTransfer).ToUid = receiver.uid
	tx.Payload().(*payload.CoinTransfer).CoinSymbol = ""
	err = s.sanityCheck(tx)
	s.Error(err)
	s.Equal(lumaerr.ErrTxPayload, err.Code())
	s.EqualError(err.InnerError(), "coin symbol is empty")
}

func (s *txValidatorTestSuite) TestHeightVersionCheck() {
	signer := newTestSigner(s.T())
	tx := newUtxoTx(signer, nil, []utxo.Output{
		{CoinAmount: 100, Conds: []utxo.Cond{
			&utxo.SingleAddressCondOut{Uid: signer.uid}}},
	}, 100000)

	params := config.DefaultParams
	params.UTXOEnableHeight = 100

	err := tx.SanityCheck(&TransactionParameters{
		Transaction: tx,
		BlockHeight: 99,
		Config:      &params,
		BlockChain:  s.Chain,
	})
	s.Error(err)
	s.Equal(lumaerr.ErrTxDisabled, err.Code())

	s.NoError(tx.SanityCheck(&TransactionParameters{
		Transaction: tx,
		BlockHeight: 100,
		Config:      &params,
		BlockChain:  s.Chain,
	}))
}

func (s *txValidatorTestSuite) TestCheckTransactionValidHeight() {
	signer := newTestSigner(s.T())
	seedAccount(s.T(), s.Store, signer, config.LUMA, 10000000)

	tx := newUtxoTx(signer, nil, []utxo.Output{
		{CoinAmount: 100, Conds: []utxo.Cond{
			&utxo.SingleAddressCondOut{Uid: signer.uid}}},
	}, 100000)
	tx.SetValidHeight(s.CurrentHeight + config.DefaultParams.MaxValidHeightDiff)
	signTx(s.T(), signer, tx)
	s.NoError(s.contextCheck(tx))

	tx.SetValidHeight(s.CurrentHeight + config.DefaultParams.MaxValidHeightDiff + 1)
	signTx(s.T(), signer, tx)
	err := s.contextCheck(tx)
	s.Error(err)
	s.Equal(lumaerr.ErrTxValidHeight, err.Code())
	s.EqualError(err.InnerError(), fmt.Sprintf(
		"tx valid height %d out of range at height %d",
		tx.ValidHeight(), s.CurrentHeight))
}

func (s *txValidatorTestSuite) TestCheckTransactionFee() {
	signer := newTestSigner(s.T())
	seedAccount(s.T(), s.Store, signer, config.LUMA, 10000000)

	tx := newUtxoTx(signer, nil, []utxo.Output{
		{CoinAmount: 100, Conds: []utxo.Cond{
			&utxo.SingleAddressCondOut{Uid: signer.uid}}},
	}, config.DefaultParams.MinTxFee-1)
	signTx(s.T(), signer, tx)
	err := s.contextCheck(tx)
	s.Error(err)
	s.Equal(lumaerr.ErrFeeTooSmall, err.Code())
	s.EqualError(err.InnerError(), fmt.Sprintf(
		"transaction fee %d below minimum %d",
		config.DefaultParams.MinTxFee-1, config.DefaultParams.MinTxFee))

	tx.SetFeeSymbol("DOGE")
	signTx(s.T(), signer, tx)
	err = s.contextCheck(tx)
	s.Error(err)
	s.Equal(lumaerr.ErrFeeSymbol, err.Code())
	s.EqualError(err.InnerError(), "fee symbol DOGE is not registered")
}

func (s *txValidatorTestSuite) TestCheckUtxoFeeFloor() {
	signer := newTestSigner(s.T())
	seedAccount(s.T(), s.Store, signer, config.LUMA, 100000000)
	prevTx := fundUtxo(s.T(), s.Store, signer, 500,
		&utxo.SingleAddressCondOut{Uid: signer.uid})

	// one input and one output weigh three fee units, an input twice
	// an output
	floor := 3 * config.DefaultParams.MinTxFee
	tx := newUtxoTx(signer,
		[]utxo.Input{spendInput(prevTx, 0)},
		[]utxo.Output{{CoinAmount: 400, Conds: []utxo.Cond{
			&utxo.SingleAddressCondOut{Uid: signer.uid}}}},
		floor-1)
	signTx(s.T(), signer, tx)
	err := s.contextCheck(tx)
	s.Error(err)
	s.Equal(lumaerr.ErrFeeTooSmall, err.Code())
	s.EqualError(err.InnerError(), fmt.Sprintf(
		"fee %d below utxo floor %d", floor-1, floor))

	tx.SetFees(floor)
	signTx(s.T(), signer, tx)
	s.NoError(s.contextCheck(tx))
}

func (s *txValidatorTestSuite) TestCheckDuplicateTransaction() {
	signer := newTestSigner(s.T())
	seedAccount(s.T(), s.Store, signer, config.LUMA, 10000000)

	tx := newUtxoTx(signer, nil, []utxo.Output{
		{CoinAmount: 100, Conds: []utxo.Cond{
			&utxo.SingleAddressCondOut{Uid: signer.uid}}},
	}, 100000)
	signTx(s.T(), signer, tx)
	s.NoError(s.contextCheck(tx))

	commitTx(s.T(), s.Store, tx, s.CurrentHeight)
	err := s.contextCheck(tx)
	s.Error(err)
	s.Equal(lumaerr.ErrTxDuplicate, err.Code())
}

func (s *txValidatorTestSuite) TestCheckTransactionSignature() {
	signer := newTestSigner(s.T())
	stranger := newTestSigner(s.T())
	seedAccount(s.T(), s.Store, signer, config.LUMA, 10000000)

	tx := newUtxoTx(signer, nil, []utxo.Output{
		{CoinAmount: 100, Conds: []utxo.Cond{
			&utxo.SingleAddressCondOut{Uid: signer.uid}}},
	}, 100000)

	// not signed at all
	err := s.contextCheck(tx)
	s.Error(err)
	s.Equal(lumaerr.ErrTxSignature, err.Code())

	// signed by somebody else
	signTx(s.T(), stranger, tx)
	err = s.contextCheck(tx)
	s.Error(err)
	s.Equal(lumaerr.ErrTxSignature, err.Code())

	signTx(s.T(), signer, tx)
	s.NoError(s.contextCheck(tx))
}

func (s *txValidatorTestSuite) TestCheckSignatureByRegID() {
	signer := newTestSigner(s.T())
	receiver := newTestSigner(s.T())

	// a registered account may send under its regid; the owner key
	// recorded on the account still has to sign
	regID := common2.RegID{Height: 1, Index: 0}
	acc := account.NewAccount(signer.uid.PubKey)
	acc.RegID = regID
	s.True(acc.OperateBalance(config.LUMA, account.AddFree, 10000000))
	batch := s.Store.NewStateBatch()
	s.NoError(batch.SaveAccount(acc))
	s.NoError(batch.Commit())

	tx := newTransferTx(signer, receiver.uid, config.LUMA, 100, 100000)
	tx.SetTxUid(common2.NewRegIDUid(regID))
	signTx(s.T(), signer, tx)
	s.NoError(s.contextCheck(tx))

	stranger := newTestSigner(s.T())
	signTx(s.T(), stranger, tx)
	err := s.contextCheck(tx)
	s.Error(err)
	s.Equal(lumaerr.ErrTxSignature, err.Code())
}

func (s *txValidatorTestSuite) TestCheckUnknownAccount() {
	signer := newTestSigner(s.T())

	tx := newUtxoTx(signer, nil, []utxo.Output{
		{CoinAmount: 100, Conds: []utxo.Cond{
			&utxo.SingleAddressCondOut{Uid: signer.uid}}},
	}, 100000)
	signTx(s.T(), signer, tx)
	err := s.contextCheck(tx)
	s.Error(err)
	s.Equal(lumaerr.ErrGetAccount, err.Code())
}

func (s *txValidatorTestSuite) TestCheckInvalidPublicKey() {
	signer := newTestSigner(s.T())
	tx := newUtxoTx(signer, nil, []utxo.Output{
		{CoinAmount: 100, Conds: []utxo.Cond{
			&utxo.SingleAddressCondOut{Uid: signer.uid}}},
	}, 100000)

	// 33 bytes that are not a curve point
	tx.SetTxUid(common2.NewPubKeyUid(bytes.Repeat([]byte{0x05}, 33)))
	err := s.contextCheck(tx)
	s.Error(err)
	s.Equal(lumaerr.ErrPublicKey, err.Code())
}

func (s *txValidatorTestSuite) TestCheckVinsVoutsBounds() {
	signer := newTestSigner(s.T())
	seedAccount(s.T(), s.Store, signer, config.LUMA, 100000000000)

	vins := make([]utxo.Input, config.DefaultParams.MaxUTXOInCount+1)
	for i := range vins {
		vins[i] = utxo.Input{PrevUtxoTxID: randomTxHash()}
	}
	tx := newUtxoTx(signer, vins, nil, 100000000)
	signTx(s.T(), signer, tx)
	err := s.contextCheck(tx)
	s.Error(err)
	s.Equal(lumaerr.ErrTxVinsSize, err.Code())
	s.EqualError(err.InnerError(), fmt.Sprintf("vins size %d exceeds limit %d",
		len(vins), config.DefaultParams.MaxUTXOInCount))

	vouts := make([]utxo.Output, config.DefaultParams.MaxUTXOOutCount+1)
	for i := range vouts {
		vouts[i] = utxo.Output{CoinAmount: 1, Conds: []utxo.Cond{
			&utxo.SingleAddressCondOut{Uid: signer.uid}}}
	}
	tx = newUtxoTx(signer, nil, vouts, 100000000)
	signTx(s.T(), signer, tx)
	err = s.contextCheck(tx)
	s.Error(err)
	s.Equal(lumaerr.ErrTxVoutsSize, err.Code())
	s.EqualError(err.InnerError(), fmt.Sprintf("vouts size %d exceeds limit %d",
		len(vouts), config.DefaultParams.MaxUTXOOutCount))

	// exactly at the cap is still fine
	tx = newUtxoTx(signer, nil, vouts[:config.DefaultParams.MaxUTXOOutCount],
		100000000)
	signTx(s.T(), signer, tx)
	s.NoError(s.contextCheck(tx))
}

func (s *txValidatorTestSuite) TestCheckUtxoEmpty() {
	signer := newTestSigner(s.T())
	seedAccount(s.T(), s.Store, signer, config.LUMA, 10000000)

	tx := newUtxoTx(signer, nil, nil, 100000)
	signTx(s.T(), signer, tx)
	err := s.contextCheck(tx)
	s.Error(err)
	s.Equal(lumaerr.ErrTxUTXOEmpty, err.Code())
	s.EqualError(err.InnerError(), "vins and vouts are both empty")
}

func (s *txValidatorTestSuite) TestCheckZeroOutput() {
	signer := newTestSigner(s.T())
	seedAccount(s.T(), s.Store, signer, config.LUMA, 10000000)

	tx := newUtxoTx(signer, nil, []utxo.Output{
		{CoinAmount: 0, Conds: []utxo.Cond{
			&utxo.SingleAddressCondOut{Uid: signer.uid}}},
	}, 100000)
	signTx(s.T(), signer, tx)
	err := s.contextCheck(tx)
	s.Error(err)
	s.Equal(lumaerr.ErrTxZeroOutput, err.Code())
	s.EqualError(err.InnerError(), "output amount is zero")
}

func (s *txValidatorTestSuite) TestCheckPrevUtxoResolution() {
	signer := newTestSigner(s.T())
	seedAccount(s.T(), s.Store, signer, config.LUMA, 10000000)

	// referencing a transaction the chain never saw
	tx := newUtxoTx(signer,
		[]utxo.Input{{PrevUtxoTxID: randomTxHash()}}, nil, 200000)
	signTx(s.T(), signer, tx)
	err := s.contextCheck(tx)
	s.Error(err)
	s.Equal(lumaerr.ErrPrevUTXOLoad, err.Code())

	// referencing a transaction that carries no utxo outputs
	receiver := newTestSigner(s.T())
	transfer := newTransferTx(signer, receiver.uid, config.LUMA, 100, 100000)
	signTx(s.T(), signer, transfer)
	commitTx(s.T(), s.Store, transfer, s.CurrentHeight)
	tx = newUtxoTx(signer,
		[]utxo.Input{spendInput(transfer, 0)}, nil, 200000)
	signTx(s.T(), signer, tx)
	err = s.contextCheck(tx)
	s.Error(err)
	s.Equal(lumaerr.ErrPrevUTXOLoad, err.Code())
	s.EqualError(err.InnerError(), "prev tx does not create utxo outputs")

	// referencing an output index past the creating transaction
	prevTx := fundUtxo(s.T(), s.Store, signer, 500,
		&utxo.SingleAddressCondOut{Uid: signer.uid})
	tx = newUtxoTx(signer,
		[]utxo.Input{spendInput(prevTx, 1)}, nil, 200000)
	signTx(s.T(), signer, tx)
	err = s.contextCheck(tx)
	s.Error(err)
	s.Equal(lumaerr.ErrPrevUTXOIndexOOR, err.Code())
	s.EqualError(err.InnerError(), "prev utxo index 1 out of range of 1 outputs")
}

func (s *txValidatorTestSuite) TestCheckUtxoBalance() {
	signer := newTestSigner(s.T())
	seedAccount(s.T(), s.Store, signer, config.LUMA, 300000)
	prevTx := fundUtxo(s.T(), s.Store, signer, 500,
		&utxo.SingleAddressCondOut{Uid: signer.uid})

	// balance 300000 plus 500 in covers exactly 200 out plus 300300 fees
	tx := newUtxoTx(signer,
		[]utxo.Input{spendInput(prevTx, 0)},
		[]utxo.Output{{CoinAmount: 200, Conds: []utxo.Cond{
			&utxo.SingleAddressCondOut{Uid: signer.uid}}}},
		300300)
	signTx(s.T(), signer, tx)
	s.NoError(s.contextCheck(tx))

	tx.SetFees(300301)
	signTx(s.T(), signer, tx)
	err := s.contextCheck(tx)
	s.Error(err)
	s.Equal(lumaerr.ErrBalanceInsufficient, err.Code())
	s.EqualError(err.InnerError(),
		"balance 300000 plus 500 in does not cover 200 out plus 300301 fees")
}

func (s *txValidatorTestSuite) TestCheckCoinTransferBalance() {
	signer := newTestSigner(s.T())
	receiver := newTestSigner(s.T())
	seedAccount(s.T(), s.Store, signer, config.LUMA, 1000000)

	tx := newTransferTx(signer, receiver.uid, config.LUMA, 0, 100000)
	signTx(s.T(), signer, tx)
	err := s.contextCheck(tx)
	s.Error(err)
	s.Equal(lumaerr.ErrTxZeroOutput, err.Code())
	s.EqualError(err.InnerError(), "transfer amount is zero")

	// amount and fees settle in the same coin and count together
	tx = newTransferTx(signer, receiver.uid, config.LUMA, 900001, 100000)
	signTx(s.T(), signer, tx)
	err = s.contextCheck(tx)
	s.Error(err)
	s.Equal(lumaerr.ErrBalanceInsufficient, err.Code())
	s.EqualError(err.InnerError(), fmt.Sprintf("account %s lacks %d %s",
		signer.uid.String(), 900001, config.LUMA))

	tx = newTransferTx(signer, receiver.uid, config.LUMA, 900000, 100000)
	signTx(s.T(), signer, tx)
	s.NoError(s.contextCheck(tx))

	// a transfer in another coin still pays its fees in the fee coin
	tx = newTransferTx(signer, receiver.uid, config.LUSD, 100, 100000)
	signTx(s.T(), signer, tx)
	err = s.contextCheck(tx)
	s.Error(err)
	s.Equal(lumaerr.ErrBalanceInsufficient, err.Code())
	s.EqualError(err.InnerError(), fmt.Sprintf("account %s lacks %d %s",
		signer.uid.String(), 100, config.LUSD))

	seedAccount(s.T(), s.Store, receiver, config.LUSD, 1000)
	tx = newTransferTx(receiver, signer.uid, config.LUSD, 100, 100000)
	signTx(s.T(), receiver, tx)
	err = s.contextCheck(tx)
	s.Error(err)
	s.Equal(lumaerr.ErrBalanceInsufficient, err.Code())
	s.EqualError(err.InnerError(), fmt.Sprintf("account %s lacks %d %s for fees",
		receiver.uid.String(), 100000, config.LUMA))
}

func (s *txValidatorTestSuite) TestCheckSingleAddressCond() {
	owner := newTestSigner(s.T())
	stranger := newTestSigner(s.T())
	seedAccount(s.T(), s.Store, owner, config.LUMA, 10000000)
	seedAccount(s.T(), s.Store, stranger, config.LUMA, 10000000)

	prevTx := fundUtxo(s.T(), s.Store, owner, 500,
		&utxo.SingleAddressCondOut{Uid: owner.uid})

	tx := newUtxoTx(stranger,
		[]utxo.Input{spendInput(prevTx, 0)}, nil, 200000)
	signTx(s.T(), stranger, tx)
	err := s.contextCheck(tx)
	s.Error(err)
	s.Equal(lumaerr.ErrUidMismatch, err.Code())
	s.EqualError(err.InnerError(), fmt.Sprintf(
		"utxo locked to %s but spent by %s",
		owner.uid.String(), stranger.uid.String()))

	tx = newUtxoTx(owner,
		[]utxo.Input{spendInput(prevTx, 0)}, nil, 200000)
	signTx(s.T(), owner, tx)
	s.NoError(s.contextCheck(tx))

	// a new p2sa output must name somebody
	tx = newUtxoTx(owner, nil, []utxo.Output{
		{CoinAmount: 100, Conds: []utxo.Cond{
			&utxo.SingleAddressCondOut{Uid: common2.UserID{}}}},
	}, 100000)
	signTx(s.T(), owner, tx)
	err = s.contextCheck(tx)
	s.Error(err)
	s.Equal(lumaerr.ErrUidEmpty, err.Code())
	s.EqualError(err.InnerError(), "p2sa cond uid is empty")
}

func (s *txValidatorTestSuite) TestCheckMultiSignAddressCond() {
	owner := newTestSigner(s.T())
	stranger := newTestSigner(s.T())
	seedAccount(s.T(), s.Store, owner, config.LUMA, 10000000)
	seedAccount(s.T(), s.Store, stranger, config.LUMA, 10000000)

	prevTx := fundUtxo(s.T(), s.Store, owner, 500,
		&utxo.MultiSignAddressCondOut{Uid: owner.uid})

	// quorum material is not verified yet, any funded sender passes
	tx := newUtxoTx(stranger,
		[]utxo.Input{spendInput(prevTx, 0)}, nil, 200000)
	signTx(s.T(), stranger, tx)
	s.NoError(s.contextCheck(tx))

	tx = newUtxoTx(owner, nil, []utxo.Output{
		{CoinAmount: 100, Conds: []utxo.Cond{
			&utxo.MultiSignAddressCondOut{Uid: common2.UserID{}}}},
	}, 100000)
	signTx(s.T(), owner, tx)
	err := s.contextCheck(tx)
	s.Error(err)
	s.Equal(lumaerr.ErrUidEmpty, err.Code())
	s.EqualError(err.InnerError(), "p2ma cond uid is empty")
}

func (s *txValidatorTestSuite) TestCheckPasswordHashLockCond() {
	funder := newTestSigner(s.T())
	spender := newTestSigner(s.T())
	thief := newTestSigner(s.T())
	seedAccount(s.T(), s.Store, funder, config.LUMA, 10000000)
	seedAccount(s.T(), s.Store, spender, config.LUMA, 10000000)
	seedAccount(s.T(), s.Store, thief, config.LUMA, 10000000)

	// the lock commits to the password and to the intended spender
	password := "open sesame"
	prevTx := fundUtxo(s.T(), s.Store, funder, 500, &utxo.PasswordHashLockCondOut{
		PasswordHash: utxo.HashLock(password, spender.uid.String()),
	})

	tx := newUtxoTx(spender,
		[]utxo.Input{spendInput(prevTx, 0,
			&utxo.PasswordHashLockCondIn{Password: password})},
		nil, 200000)
	signTx(s.T(), spender, tx)
	s.NoError(s.contextCheck(tx))

	tx = newUtxoTx(spender,
		[]utxo.Input{spendInput(prevTx, 0,
			&utxo.PasswordHashLockCondIn{Password: "open barley"})},
		nil, 200000)
	signTx(s.T(), spender, tx)
	err := s.contextCheck(tx)
	s.Error(err)
	s.Equal(lumaerr.ErrSecretMismatch, err.Code())
	s.EqualError(err.InnerError(),
		"revealed password does not open the hash lock")

	// an overheard password is useless to any other spender
	tx = newUtxoTx(thief,
		[]utxo.Input{spendInput(prevTx, 0,
			&utxo.PasswordHashLockCondIn{Password: password})},
		nil, 200000)
	signTx(s.T(), thief, tx)
	err = s.contextCheck(tx)
	s.Error(err)
	s.Equal(lumaerr.ErrSecretMismatch, err.Code())

	tx = newUtxoTx(spender,
		[]utxo.Input{spendInput(prevTx, 0)}, nil, 200000)
	signTx(s.T(), spender, tx)
	err = s.contextCheck(tx)
	s.Error(err)
	s.Equal(lumaerr.ErrCondMismatch, err.Code())
	s.EqualError(err.InnerError(),
		"hash locked utxo spent without a password proof")

	tx = newUtxoTx(funder, nil, []utxo.Output{
		{CoinAmount: 100, Conds: []utxo.Cond{
			&utxo.PasswordHashLockCondOut{}}},
	}, 100000)
	signTx(s.T(), funder, tx)
	err = s.contextCheck(tx)
	s.Error(err)
	s.Equal(lumaerr.ErrEmptyHashLock, err.Code())
	s.EqualError(err.InnerError(), "p2ph cond hash lock is empty")
}

func (s *txValidatorTestSuite) TestCheckClaimLockCond() {
	funder := newTestSigner(s.T())
	claimer := newTestSigner(s.T())
	seedAccount(s.T(), s.Store, funder, config.LUMA, 10000000)
	seedAccount(s.T(), s.Store, claimer, config.LUMA, 10000000)

	prevTx := fundUtxo(s.T(), s.Store, funder, 500,
		&utxo.ClaimLockCondOut{Height: 5})

	// claimable strictly after the lock height, never at it
	tx := newUtxoTx(claimer,
		[]utxo.Input{spendInput(prevTx, 0)}, nil, 200000)
	signTx(s.T(), claimer, tx)
	s.CurrentHeight = 5
	err := s.contextCheck(tx)
	s.Error(err)
	s.Equal(lumaerr.ErrTooEarlyToClaim, err.Code())
	s.EqualError(err.InnerError(), "utxo claimable after height 5, current 5")

	s.CurrentHeight = 6
	s.NoError(s.contextCheck(tx))

	tx = newUtxoTx(funder, nil, []utxo.Output{
		{CoinAmount: 100, Conds: []utxo.Cond{
			&utxo.ClaimLockCondOut{Height: 0}}},
	}, 100000)
	signTx(s.T(), funder, tx)
	err = s.contextCheck(tx)
	s.Error(err)
	s.Equal(lumaerr.ErrClaimLockEmpty, err.Code())
	s.EqualError(err.InnerError(), "claim lock height is zero")
}

func (s *txValidatorTestSuite) TestCheckReclaimLockCond() {
	funder := newTestSigner(s.T())
	claimer := newTestSigner(s.T())
	seedAccount(s.T(), s.Store, funder, config.LUMA, 10000000)
	seedAccount(s.T(), s.Store, claimer, config.LUMA, 10000000)

	prevTx := fundUtxo(s.T(), s.Store, funder, 500,
		&utxo.ReClaimLockCondOut{Height: 5})

	// the reclaim window binds the creator only
	tx := newUtxoTx(funder,
		[]utxo.Input{spendInput(prevTx, 0)}, nil, 200000)
	signTx(s.T(), funder, tx)
	s.CurrentHeight = 5
	err := s.contextCheck(tx)
	s.Error(err)
	s.Equal(lumaerr.ErrTooEarlyToClaim, err.Code())
	s.EqualError(err.InnerError(), "utxo reclaimable after height 5, current 5")

	s.CurrentHeight = 6
	s.NoError(s.contextCheck(tx))

	// a different spender claims through regardless of the height
	tx = newUtxoTx(claimer,
		[]utxo.Input{spendInput(prevTx, 0)}, nil, 200000)
	signTx(s.T(), claimer, tx)
	s.CurrentHeight = 1
	s.NoError(s.contextCheck(tx))

	// a zero reclaim height never opens for the creator
	zeroTx := fundUtxo(s.T(), s.Store, funder, 500,
		&utxo.ReClaimLockCondOut{Height: 0})
	tx = newUtxoTx(funder,
		[]utxo.Input{spendInput(zeroTx, 0)}, nil, 200000)
	signTx(s.T(), funder, tx)
	s.CurrentHeight = 1000000
	err = s.contextCheck(tx)
	s.Error(err)
	s.Equal(lumaerr.ErrTooEarlyToClaim, err.Code())

	tx = newUtxoTx(funder, nil, []utxo.Output{
		{CoinAmount: 100, Conds: []utxo.Cond{
			&utxo.ReClaimLockCondOut{Height: 0}}},
	}, 100000)
	signTx(s.T(), funder, tx)
	s.CurrentHeight = 1
	err = s.contextCheck(tx)
	s.Error(err)
	s.Equal(lumaerr.ErrReclaimLockEmpty, err.Code())
	s.EqualError(err.InnerError(), "reclaim lock height is zero")
}

func (s *txValidatorTestSuite) TestCheckCondsInOrder() {
	funder := newTestSigner(s.T())
	spender := newTestSigner(s.T())
	seedAccount(s.T(), s.Store, funder, config.LUMA, 10000000)
	seedAccount(s.T(), s.Store, spender, config.LUMA, 10000000)

	// every condition on the output must hold; the claim lock trips
	// first in insertion order, then the hash lock
	password := "open sesame"
	prevTx := fundUtxo(s.T(), s.Store, funder, 500,
		&utxo.ClaimLockCondOut{Height: 5},
		&utxo.PasswordHashLockCondOut{
			PasswordHash: utxo.HashLock(password, spender.uid.String()),
		})

	tx := newUtxoTx(spender,
		[]utxo.Input{spendInput(prevTx, 0)}, nil, 200000)
	signTx(s.T(), spender, tx)
	s.CurrentHeight = 5
	err := s.contextCheck(tx)
	s.Error(err)
	s.Equal(lumaerr.ErrTooEarlyToClaim, err.Code())

	s.CurrentHeight = 6
	err = s.contextCheck(tx)
	s.Error(err)
	s.Equal(lumaerr.ErrCondMismatch, err.Code())

	tx = newUtxoTx(spender,
		[]utxo.Input{spendInput(prevTx, 0,
			&utxo.PasswordHashLockCondIn{Password: password})},
		nil, 200000)
	signTx(s.T(), spender, tx)
	s.NoError(s.contextCheck(tx))
}

// bogusCond carries a cond type tag the evaluator does not know.
type bogusCond struct{}

func (c *bogusCond) CondType() utxo.CondType        { return utxo.CondType(0x77) }
func (c *bogusCond) IsInput() bool                  { return false }
func (c *bogusCond) Serialize(w io.Writer) error    { return nil }
func (c *bogusCond) Deserialize(r io.Reader) error  { return nil }
func (c *bogusCond) ToJSON() map[string]interface{} { return nil }

var _ utxo.Cond = (*bogusCond)(nil)

func (s *txValidatorTestSuite) TestCheckUtxoConditionForms() {
	signer := newTestSigner(s.T())

	err := checkUtxoCondition(false, 1, common2.UserID{}, signer.uid,
		nil, &bogusCond{})
	s.Error(err)
	s.Equal(lumaerr.ErrTxCondType, err.Code())
	s.EqualError(err.InnerError(), "output cond type error")

	input := &utxo.Input{}
	err = checkUtxoCondition(true, 1, signer.uid, signer.uid,
		input, &bogusCond{})
	s.Error(err)
	s.Equal(lumaerr.ErrTxCondType, err.Code())
	s.EqualError(err.InnerError(), "input cond type error")

	// the evaluator accepts output side forms only; a proof form in a
	// cond list never evaluates
	err = checkUtxoCondition(false, 1, common2.UserID{}, signer.uid,
		nil, &utxo.PasswordHashLockCondIn{Password: "secret"})
	s.Error(err)
	s.Equal(lumaerr.ErrTxCondType, err.Code())
	s.EqualError(err.InnerError(), "p2ph cond is not in output form")
}

func TestTxValidatorSuite(t *testing.T) {
	suite.Run(t, new(txValidatorTestSuite))
}
