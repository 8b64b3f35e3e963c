// Copyright (c) 2019-2022 The Lumachain Foundation
// Use of this source code is governed by an MIT
// license that can be found in the LICENSE file.
//

package transaction

import (
	"bytes"
	"errors"
	"fmt"

	"github.com/lumachain/Lumachain.LUMA/blockchain"
	"github.com/lumachain/Lumachain.LUMA/common"
	"github.com/lumachain/Lumachain.LUMA/common/log"
	"github.com/lumachain/Lumachain.LUMA/core/types/interfaces"
	"github.com/lumachain/Lumachain.LUMA/core/types/utxo"
	"github.com/lumachain/Lumachain.LUMA/crypto"
	lumaerr "github.com/lumachain/Lumachain.LUMA/errors"
)

type DefaultChecker struct {
	// config
	parameters *TransactionParameters
	references map[*utxo.Input]utxo.Output
}

func (t *DefaultChecker) SanityCheck(params interfaces.Parameters) lumaerr.LumaError {
	if err := t.SetParameters(params); err != nil {
		return lumaerr.Simple(lumaerr.ErrFail, errors.New("invalid parameters"))
	}

	if err := t.parameters.Transaction.HeightVersionCheck(); err != nil {
		log.Warn("[HeightVersionCheck],", err)
		return lumaerr.Simple(lumaerr.ErrTxDisabled, nil)
	}

	if err := t.parameters.Transaction.CheckTransactionSize(); err != nil {
		log.Warn("[CheckTransactionSize],", err)
		return lumaerr.Simple(lumaerr.ErrTxSize, err)
	}

	if err := t.parameters.Transaction.CheckTransactionMemo(); err != nil {
		log.Warn("[CheckTransactionMemo],", err)
		return lumaerr.Simple(lumaerr.ErrTxMemoSize, err)
	}

	if err := t.parameters.Transaction.CheckTransactionUid(); err != nil {
		log.Warn("[CheckTransactionUid],", err)
		return lumaerr.Simple(lumaerr.ErrTxUidType, err)
	}

	if err := t.parameters.Transaction.CheckTransactionPayload(); err != nil {
		log.Warn("[CheckTransactionPayload],", err)
		return lumaerr.Simple(lumaerr.ErrTxPayload, err)
	}

	return nil
}

func (t *DefaultChecker) ContextCheck(params interfaces.Parameters) (
	map[*utxo.Input]utxo.Output, lumaerr.LumaError) {

	if err := t.SetParameters(params); err != nil {
		log.Warn("[CheckTransactionContext] set parameters failed.")
		return nil, lumaerr.Simple(lumaerr.ErrFail, errors.New("invalid parameters"))
	}

	if err := t.parameters.Transaction.HeightVersionCheck(); err != nil {
		log.Warn("[CheckTransactionContext] height version check failed.")
		return nil, lumaerr.Simple(lumaerr.ErrTxDisabled, nil)
	}

	if exist := t.IsTxHashDuplicate(t.parameters.Transaction.Hash()); exist {
		log.Warn("[CheckTransactionContext] duplicate transaction check failed.")
		return nil, lumaerr.Simple(lumaerr.ErrTxDuplicate, nil)
	}

	if err := t.parameters.Transaction.CheckTransactionValidHeight(); err != nil {
		log.Warn("[CheckTransactionValidHeight],", err)
		return nil, lumaerr.Simple(lumaerr.ErrTxValidHeight, err)
	}

	cerr, end := t.parameters.Transaction.SpecialContextCheck()
	if end {
		return t.references, cerr
	}

	if err := checkTransactionSignature(t.parameters.Transaction, t.parameters); err != nil {
		log.Warn("[checkTransactionSignature],", err)
		return nil, lumaerr.Simple(lumaerr.ErrTxSignature, err)
	}

	return t.references, nil
}

func (t *DefaultChecker) SetParameters(params interface{}) lumaerr.LumaError {
	var ok bool
	if t.parameters, ok = params.(*TransactionParameters); !ok {
		return lumaerr.Simple(lumaerr.ErrFail, errors.New("invalid parameters"))
	}

	return nil
}

func (t *DefaultChecker) CheckTransactionSize() error {
	size := t.parameters.Transaction.GetSize()
	if size <= 0 || size > MaxTransactionSize {
		return fmt.Errorf("Invalid transaction size: %d bytes", size)
	}

	return nil
}

func (t *DefaultChecker) CheckTransactionMemo() error {
	memo := t.parameters.Transaction.Memo()
	if uint32(len(memo)) > t.parameters.Config.MaxTxMemoSize {
		return fmt.Errorf("memo size %d exceeds limit %d", len(memo),
			t.parameters.Config.MaxTxMemoSize)
	}

	return nil
}

// CheckTransactionUid requires the sender to identify itself by
// register id or by raw public key; anything else never authorizes.
func (t *DefaultChecker) CheckTransactionUid() error {
	txUid := t.parameters.Transaction.TxUid()
	if !txUid.IsRegID() && !txUid.IsPubKey() {
		return errors.New("txUid must be a regid or a public key")
	}
	if txUid.IsEmpty() {
		return errors.New("txUid is empty")
	}

	return nil
}

func (t *DefaultChecker) CheckTransactionPayload() error {
	return errors.New("invalid payload type")
}

// CheckTransactionValidHeight keeps a transaction's declared height
// within the tolerated window around the tip, in both directions.
func (t *DefaultChecker) CheckTransactionValidHeight() error {
	txn := t.parameters.Transaction
	blockHeight := t.parameters.BlockHeight
	diff := int64(txn.ValidHeight()) - int64(blockHeight)
	max := int64(t.parameters.Config.MaxValidHeightDiff)
	if diff > max || diff < -max {
		return fmt.Errorf("tx valid height %d out of range at height %d",
			txn.ValidHeight(), blockHeight)
	}

	return nil
}

// CheckTransactionFee validates the declared fee symbol and the flat
// minimum; per type floors layer on top of this inside the type's own
// context check.
func (t *DefaultChecker) CheckTransactionFee() lumaerr.LumaError {
	txn := t.parameters.Transaction
	minFee, err := blockchain.GetTxMinFee(t.parameters.Config, txn.TxType(),
		t.parameters.BlockHeight, txn.FeeSymbol())
	if err != nil {
		log.Warn("[CheckTransactionFee],", err)
		return lumaerr.Simple(lumaerr.ErrFeeSymbol, err)
	}
	if txn.Fees() < minFee {
		err := fmt.Errorf("transaction fee %d below minimum %d", txn.Fees(), minFee)
		log.Warn("[CheckTransactionFee],", err)
		return lumaerr.Simple(lumaerr.ErrFeeTooSmall, err)
	}

	return nil
}

// validate the type of transaction is allowed or not at current height.
func (t *DefaultChecker) HeightVersionCheck() error {
	return nil
}

func (t *DefaultChecker) IsTxHashDuplicate(txHash common.Uint256) bool {
	return t.parameters.BlockChain.IsTxHashDuplicate(txHash)
}

func (t *DefaultChecker) SpecialContextCheck() (lumaerr.LumaError, bool) {
	return nil, false
}

// checkTransactionSignature verifies the sender's signature over the
// unsigned serialization.  A public key uid authorizes with that key; a
// register id authorizes with the owner key recorded on the account.
func checkTransactionSignature(tx interfaces.Transaction,
	parameters *TransactionParameters) error {

	if tx.IsCoinBaseTx() {
		return nil
	}

	var pubKey *crypto.PublicKey
	txUid := tx.TxUid()
	if txUid.IsPubKey() {
		pk, err := crypto.DecodePoint(txUid.PubKey)
		if err != nil {
			return err
		}
		pubKey = pk
	} else {
		acc, err := parameters.BlockChain.GetAccount(txUid)
		if err != nil {
			return err
		}
		pk, err := acc.OwnerPublicKey()
		if err != nil {
			return err
		}
		pubKey = pk
	}

	buf := new(bytes.Buffer)
	if err := tx.SerializeUnsigned(buf); err != nil {
		return err
	}
	return crypto.Verify(*pubKey, buf.Bytes(), tx.Signature())
}
