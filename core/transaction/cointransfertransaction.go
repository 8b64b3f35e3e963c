// Copyright (c) 2019-2022 The Lumachain Foundation
// Use of this source code is governed by an MIT
// license that can be found in the LICENSE file.
//

package transaction

import (
	"errors"
	"fmt"
	"math"

	"github.com/lumachain/Lumachain.LUMA/account"
	"github.com/lumachain/Lumachain.LUMA/common/log"
	common2 "github.com/lumachain/Lumachain.LUMA/core/types/common"
	"github.com/lumachain/Lumachain.LUMA/core/types/interfaces"
	"github.com/lumachain/Lumachain.LUMA/core/types/payload"
	"github.com/lumachain/Lumachain.LUMA/crypto"
	lumaerr "github.com/lumachain/Lumachain.LUMA/errors"
)

type CoinTransferTransaction struct {
	BaseTransaction
}

func (t *CoinTransferTransaction) CheckTransactionPayload() error {
	pl, ok := t.Payload().(*payload.CoinTransfer)
	if !ok {
		return errors.New("invalid payload type")
	}
	if pl.CoinSymbol == "" {
		return errors.New("coin symbol is empty")
	}
	if pl.ToUid.IsEmpty() {
		return errors.New("transfer destination is empty")
	}
	if !pl.ToUid.IsRegID() && !pl.ToUid.IsPubKey() {
		return errors.New("transfer destination must be a regid or a public key")
	}

	return nil
}

func (t *CoinTransferTransaction) SpecialContextCheck() (lumaerr.LumaError, bool) {
	para := t.parameters
	txn := para.Transaction
	if cerr := t.CheckTransactionFee(); cerr != nil {
		return cerr, true
	}

	txUid := txn.TxUid()
	if txUid.IsPubKey() {
		if _, err := crypto.DecodePoint(txUid.PubKey); err != nil {
			log.Warn("[SpecialContextCheck] public key is invalid")
			return lumaerr.Simple(lumaerr.ErrPublicKey, err), true
		}
	}

	srcAccount, err := para.BlockChain.GetAccount(txUid)
	if err != nil {
		// unrecorded account not allowed to participate
		log.Warn("[SpecialContextCheck],", err)
		return lumaerr.Simple(lumaerr.ErrGetAccount, err), true
	}

	pl, ok := txn.Payload().(*payload.CoinTransfer)
	if !ok {
		return lumaerr.Simple(lumaerr.ErrTxPayload,
			errors.New("invalid payload type")), true
	}

	if pl.CoinAmount == 0 {
		return lumaerr.Simple(lumaerr.ErrTxZeroOutput,
			errors.New("transfer amount is zero")), true
	}

	if pl.CoinSymbol == txn.FeeSymbol() {
		if pl.CoinAmount > math.MaxUint64-txn.Fees() ||
			srcAccount.GetFreeBalance(pl.CoinSymbol) < pl.CoinAmount+txn.Fees() {
			err := fmt.Errorf("account %s lacks %d %s", txUid.String(),
				pl.CoinAmount, pl.CoinSymbol)
			log.Warn("[SpecialContextCheck],", err)
			return lumaerr.Simple(lumaerr.ErrBalanceInsufficient, err), true
		}
	} else {
		if srcAccount.GetFreeBalance(pl.CoinSymbol) < pl.CoinAmount {
			err := fmt.Errorf("account %s lacks %d %s", txUid.String(),
				pl.CoinAmount, pl.CoinSymbol)
			log.Warn("[SpecialContextCheck],", err)
			return lumaerr.Simple(lumaerr.ErrBalanceInsufficient, err), true
		}
		if srcAccount.GetFreeBalance(txn.FeeSymbol()) < txn.Fees() {
			err := fmt.Errorf("account %s lacks %d %s for fees", txUid.String(),
				txn.Fees(), txn.FeeSymbol())
			log.Warn("[SpecialContextCheck],", err)
			return lumaerr.Simple(lumaerr.ErrBalanceInsufficient, err), true
		}
	}

	return nil, false
}

// ExecuteTx debits the sender, credits the destination and pays the fee
// out of the sender's free balance.  A destination named by public key
// is created on first use; a destination named by regid must already
// exist.
func (t *CoinTransferTransaction) ExecuteTx(params interfaces.Parameters) lumaerr.LumaError {
	para, ok := params.(*TransactionExecuteParameters)
	if !ok {
		return lumaerr.Simple(lumaerr.ErrFail, errors.New("invalid parameters"))
	}
	txn := para.Transaction
	txUid := txn.TxUid()

	srcAccount, err := para.Store.GetAccount(txUid)
	if err != nil {
		log.Warnf("[ExecuteTx] read txUid %s account info error", txUid.String())
		return lumaerr.Simple(lumaerr.ErrReadAccount, err)
	}
	generateRegID(srcAccount, para.BlockHeight, para.TxIndex)

	pl, ok := txn.Payload().(*payload.CoinTransfer)
	if !ok {
		return lumaerr.Simple(lumaerr.ErrTxPayload,
			errors.New("invalid payload type"))
	}

	if !srcAccount.OperateBalance(pl.CoinSymbol, account.SubFree, pl.CoinAmount) {
		log.Warnf("[ExecuteTx] failed to deduct coin_amount in txUid %s account",
			txUid.String())
		return lumaerr.Simple(lumaerr.ErrBalanceInsufficient,
			fmt.Errorf("account %s lacks %d %s", txUid.String(),
				pl.CoinAmount, pl.CoinSymbol))
	}
	if !srcAccount.OperateBalance(txn.FeeSymbol(), account.SubFree, txn.Fees()) {
		log.Warnf("[ExecuteTx] failed to deduct fees in txUid %s account",
			txUid.String())
		return lumaerr.Simple(lumaerr.ErrBalanceInsufficient,
			fmt.Errorf("account %s lacks %d %s for fees", txUid.String(),
				txn.Fees(), txn.FeeSymbol()))
	}

	destAccount, err := para.Store.GetAccount(pl.ToUid)
	if err != nil {
		if !pl.ToUid.IsPubKey() {
			log.Warnf("[ExecuteTx] read dest %s account info error",
				pl.ToUid.String())
			return lumaerr.Simple(lumaerr.ErrGetAccount, err)
		}
		destAccount = account.NewAccount(pl.ToUid.PubKey)
	}
	// a self transfer must land on the already debited copy
	if destAccount.KeyID.IsEqual(srcAccount.KeyID) {
		destAccount = srcAccount
	}

	if !destAccount.OperateBalance(pl.CoinSymbol, account.AddFree, pl.CoinAmount) {
		log.Warnf("[ExecuteTx] failed to add coin_amount in dest %s account",
			pl.ToUid.String())
		return lumaerr.Simple(lumaerr.ErrFundOperate,
			fmt.Errorf("crediting %d %s to %s failed", pl.CoinAmount,
				pl.CoinSymbol, pl.ToUid.String()))
	}

	if err := para.Store.SaveAccount(srcAccount); err != nil {
		log.Warnf("[ExecuteTx] write source addr %s account info error",
			txUid.String())
		return lumaerr.Simple(lumaerr.ErrSaveAccount, err)
	}
	if destAccount != srcAccount {
		if err := para.Store.SaveAccount(destAccount); err != nil {
			log.Warnf("[ExecuteTx] write dest addr %s account info error",
				pl.ToUid.String())
			return lumaerr.Simple(lumaerr.ErrSaveAccount, err)
		}
	}

	receipts := []*common2.Receipt{{
		From:       txUid,
		To:         pl.ToUid,
		CoinSymbol: pl.CoinSymbol,
		CoinAmount: pl.CoinAmount,
		Code:       common2.ReceiptCodeTransferActualCoins,
	}}
	if txn.Fees() > 0 {
		receipts = append(receipts, &common2.Receipt{
			From:       txUid,
			To:         common2.UserID{},
			CoinSymbol: txn.FeeSymbol(),
			CoinAmount: txn.Fees(),
			Code:       common2.ReceiptCodeTransferFeeToMiner,
		})
	}
	if err := para.Store.SetTxReceipts(txn.Hash(), receipts); err != nil {
		log.Warnf("[ExecuteTx] set tx receipts failed!! txid=%s",
			txn.Hash().String())
		return lumaerr.Simple(lumaerr.ErrSetReceipt, err)
	}

	return nil
}
