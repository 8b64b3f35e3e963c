// Copyright (c) 2019-2022 The Lumachain Foundation
// Use of this source code is governed by an MIT
// license that can be found in the LICENSE file.
//

package transaction

import (
	"errors"
	"fmt"

	"github.com/lumachain/Lumachain.LUMA/account"
	"github.com/lumachain/Lumachain.LUMA/blockchain"
	"github.com/lumachain/Lumachain.LUMA/common"
	"github.com/lumachain/Lumachain.LUMA/common/log"
	common2 "github.com/lumachain/Lumachain.LUMA/core/types/common"
	"github.com/lumachain/Lumachain.LUMA/core/types/interfaces"
	"github.com/lumachain/Lumachain.LUMA/core/types/payload"
	"github.com/lumachain/Lumachain.LUMA/core/types/utxo"
	"github.com/lumachain/Lumachain.LUMA/crypto"
	lumaerr "github.com/lumachain/Lumachain.LUMA/errors"
)

type CoinUTXOTransaction struct {
	BaseTransaction
}

func (t *CoinUTXOTransaction) HeightVersionCheck() error {
	blockHeight := t.parameters.BlockHeight
	chainParams := t.parameters.Config

	if blockHeight < chainParams.UTXOEnableHeight {
		return errors.New(fmt.Sprintf("not support %s transaction "+
			"before UTXOEnableHeight", t.TxType().Name()))
	}

	return nil
}

func (t *CoinUTXOTransaction) CheckTransactionPayload() error {
	pl, ok := t.Payload().(*payload.CoinUTXOTransfer)
	if !ok {
		return errors.New("invalid payload type")
	}
	if pl.CoinSymbol == "" {
		return errors.New("coin symbol is empty")
	}

	return nil
}

// checkUtxoCondition evaluates one condition of a conditional utxo.  On
// the input side the condition comes from the spent output and must
// authorize this spend at this height; on the output side the condition
// is newly created and must be well formed.  prevUtxoTxUid and input
// carry meaning on the input side only.
func checkUtxoCondition(isCheckInput bool, height uint32, prevUtxoTxUid,
	txUid common2.UserID, input *utxo.Input, cond utxo.Cond) lumaerr.LumaError {

	switch cond.CondType() {
	case utxo.P2SA:
		theCond, ok := cond.(*utxo.SingleAddressCondOut)
		if !ok {
			return lumaerr.Simple(lumaerr.ErrTxCondType,
				errors.New("p2sa cond is not in output form"))
		}
		if isCheckInput {
			if !theCond.Uid.Equal(txUid) {
				log.Warn("[CheckUtxoCondition] uid mismatches error!")
				return lumaerr.Simple(lumaerr.ErrUidMismatch, fmt.Errorf(
					"utxo locked to %s but spent by %s",
					theCond.Uid.String(), txUid.String()))
			}
		} else if theCond.Uid.IsEmpty() {
			log.Warn("[CheckUtxoCondition] uid empty error!")
			return lumaerr.Simple(lumaerr.ErrUidEmpty,
				errors.New("p2sa cond uid is empty"))
		}

	case utxo.P2MA:
		theCond, ok := cond.(*utxo.MultiSignAddressCondOut)
		if !ok {
			return lumaerr.Simple(lumaerr.ErrTxCondType,
				errors.New("p2ma cond is not in output form"))
		}
		if isCheckInput {
			// TODO: verify the quorum material in the input conds
			// against the multi sign account registry
			log.Warnf("[CheckUtxoCondition] multi sign utxo of %s spent unverified",
				theCond.Uid.String())
		} else if theCond.Uid.IsEmpty() {
			log.Warn("[CheckUtxoCondition] uid empty error!")
			return lumaerr.Simple(lumaerr.ErrUidEmpty,
				errors.New("p2ma cond uid is empty"))
		}

	case utxo.P2PH:
		theCond, ok := cond.(*utxo.PasswordHashLockCondOut)
		if !ok {
			return lumaerr.Simple(lumaerr.ErrTxCondType,
				errors.New("p2ph cond is not in output form"))
		}
		if isCheckInput {
			found := false
			for _, proof := range input.Conds {
				if proof.CondType() != utxo.P2PH {
					continue
				}
				theProof, ok := proof.(*utxo.PasswordHashLockCondIn)
				if !ok {
					return lumaerr.Simple(lumaerr.ErrTxCondType,
						errors.New("p2ph proof is not in input form"))
				}
				// the hash commits to the spender as well, so an
				// overheard password opens nothing for anyone else
				hash := utxo.HashLock(theProof.Password, txUid.String())
				if !theCond.PasswordHash.IsEqual(hash) {
					log.Warn("[CheckUtxoCondition] secret mismatches error!")
					return lumaerr.Simple(lumaerr.ErrSecretMismatch,
						errors.New("revealed password does not open the hash lock"))
				}
				found = true
			}
			if !found {
				log.Warn("[CheckUtxoCondition] cond mismatches error!")
				return lumaerr.Simple(lumaerr.ErrCondMismatch,
					errors.New("hash locked utxo spent without a password proof"))
			}
		} else if theCond.PasswordHash.IsEqual(common.EmptyHash) {
			log.Warn("[CheckUtxoCondition] empty hash lock error!")
			return lumaerr.Simple(lumaerr.ErrEmptyHashLock,
				errors.New("p2ph cond hash lock is empty"))
		}

	case utxo.ClaimLock:
		theCond, ok := cond.(*utxo.ClaimLockCondOut)
		if !ok {
			return lumaerr.Simple(lumaerr.ErrTxCondType,
				errors.New("claim lock cond is not in output form"))
		}
		if isCheckInput {
			if uint64(height) <= theCond.Height {
				log.Warn("[CheckUtxoCondition] too early to claim error!")
				return lumaerr.Simple(lumaerr.ErrTooEarlyToClaim, fmt.Errorf(
					"utxo claimable after height %d, current %d",
					theCond.Height, height))
			}
		} else if theCond.Height == 0 {
			log.Warn("[CheckUtxoCondition] claim lock empty error!")
			return lumaerr.Simple(lumaerr.ErrClaimLockEmpty,
				errors.New("claim lock height is zero"))
		}

	case utxo.ReclaimLock:
		theCond, ok := cond.(*utxo.ReClaimLockCondOut)
		if !ok {
			return lumaerr.Simple(lumaerr.ErrTxCondType,
				errors.New("reclaim lock cond is not in output form"))
		}
		if isCheckInput {
			// binds the creator taking its own output back; a
			// counterparty spend passes through untouched
			if prevUtxoTxUid.Equal(txUid) {
				if theCond.Height == 0 || uint64(height) <= theCond.Height {
					log.Warn("[CheckUtxoCondition] too early to reclaim error!")
					return lumaerr.Simple(lumaerr.ErrTooEarlyToClaim, fmt.Errorf(
						"utxo reclaimable after height %d, current %d",
						theCond.Height, height))
				}
			}
		} else if theCond.Height == 0 {
			log.Warn("[CheckUtxoCondition] reclaim lock empty error!")
			return lumaerr.Simple(lumaerr.ErrReclaimLockEmpty,
				errors.New("reclaim lock height is zero"))
		}

	default:
		side := "output"
		if isCheckInput {
			side = "input"
		}
		log.Warn("[CheckUtxoCondition] cond type error!")
		return lumaerr.Simple(lumaerr.ErrTxCondType,
			fmt.Errorf("%s cond type error", side))
	}

	return nil
}

func (t *CoinUTXOTransaction) SpecialContextCheck() (lumaerr.LumaError, bool) {
	para := t.parameters
	txn := para.Transaction
	chainParams := para.Config

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

	pl, ok := txn.Payload().(*payload.CoinUTXOTransfer)
	if !ok {
		return lumaerr.Simple(lumaerr.ErrTxPayload,
			errors.New("invalid payload type")), true
	}

	if len(pl.Vins) > int(chainParams.MaxUTXOInCount) {
		log.Warn("[SpecialContextCheck] vins size too large!")
		return lumaerr.Simple(lumaerr.ErrTxVinsSize, fmt.Errorf(
			"vins size %d exceeds limit %d", len(pl.Vins),
			chainParams.MaxUTXOInCount)), true
	}
	if len(pl.Vouts) > int(chainParams.MaxUTXOOutCount) {
		log.Warn("[SpecialContextCheck] vouts size too large!")
		return lumaerr.Simple(lumaerr.ErrTxVoutsSize, fmt.Errorf(
			"vouts size %d exceeds limit %d", len(pl.Vouts),
			chainParams.MaxUTXOOutCount)), true
	}
	if len(pl.Vins) == 0 && len(pl.Vouts) == 0 {
		log.Warn("[SpecialContextCheck] utxo empty error!")
		return lumaerr.Simple(lumaerr.ErrTxUTXOEmpty,
			errors.New("vins and vouts are both empty")), true
	}

	// every input costs double what an output does, it has to be
	// looked up and retired
	minFee, err := blockchain.GetTxMinFee(chainParams, txn.TxType(),
		para.BlockHeight, txn.FeeSymbol())
	if err != nil {
		return lumaerr.Simple(lumaerr.ErrFeeSymbol, err), true
	}
	if txn.Fees() < uint64(2*len(pl.Vins)+len(pl.Vouts))*minFee {
		log.Warn("[SpecialContextCheck] tx fee too small!")
		return lumaerr.Simple(lumaerr.ErrFeeTooSmall, fmt.Errorf(
			"fee %d below utxo floor %d", txn.Fees(),
			uint64(2*len(pl.Vins)+len(pl.Vouts))*minFee)), true
	}

	references := make(map[*utxo.Input]utxo.Output)
	totalInAmount := uint64(0)
	for i := range pl.Vins {
		input := &pl.Vins[i]
		prevTx, err := para.BlockChain.UTXOCache.GetPrevUtxoTx(input.PrevUtxoTxID)
		if err != nil {
			log.Warn("[SpecialContextCheck],", err)
			return lumaerr.Simple(lumaerr.ErrPrevUTXOLoad, err), true
		}
		prevPl, ok := prevTx.Payload().(*payload.CoinUTXOTransfer)
		if !ok {
			return lumaerr.Simple(lumaerr.ErrPrevUTXOLoad,
				errors.New("prev tx does not create utxo outputs")), true
		}
		if len(prevPl.Vouts) < int(input.PrevUtxoOutIndex)+1 {
			log.Warn("[SpecialContextCheck] prev utxo index out of range!")
			return lumaerr.Simple(lumaerr.ErrPrevUTXOIndexOOR, fmt.Errorf(
				"prev utxo index %d out of range of %d outputs",
				input.PrevUtxoOutIndex, len(prevPl.Vouts))), true
		}

		prevOut := prevPl.Vouts[input.PrevUtxoOutIndex]
		prevUid := prevTx.TxUid()
		for _, cond := range prevOut.Conds {
			if cerr := checkUtxoCondition(true, para.BlockHeight, prevUid,
				txUid, input, cond); cerr != nil {
				return cerr, true
			}
		}
		totalInAmount += prevOut.CoinAmount
		references[input] = prevOut
	}

	totalOutAmount := uint64(0)
	for i := range pl.Vouts {
		output := &pl.Vouts[i]
		if output.CoinAmount == 0 {
			log.Warn("[SpecialContextCheck] zero output amount error!")
			return lumaerr.Simple(lumaerr.ErrTxZeroOutput,
				errors.New("output amount is zero")), true
		}
		for _, cond := range output.Conds {
			if cerr := checkUtxoCondition(false, para.BlockHeight,
				common2.UserID{}, txUid, nil, cond); cerr != nil {
				return cerr, true
			}
		}
		totalOutAmount += output.CoinAmount
	}

	accountBalance := srcAccount.GetFreeBalance(pl.CoinSymbol)
	if accountBalance+totalInAmount < totalOutAmount+txn.Fees() {
		log.Warn("[SpecialContextCheck] insufficient account coin amount!")
		return lumaerr.Simple(lumaerr.ErrBalanceInsufficient, fmt.Errorf(
			"balance %d plus %d in does not cover %d out plus %d fees",
			accountBalance, totalInAmount, totalOutAmount, txn.Fees())), true
	}

	t.references = references
	return nil, false
}

// ExecuteTx settles the transaction against the batch: retire every
// spent utxo, create the new ones, and fold the net difference into the
// sender's free balance, with a single receipt for the net move.
func (t *CoinUTXOTransaction) ExecuteTx(params interfaces.Parameters) lumaerr.LumaError {
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

	pl, ok := txn.Payload().(*payload.CoinUTXOTransfer)
	if !ok {
		return lumaerr.Simple(lumaerr.ErrTxPayload,
			errors.New("invalid payload type"))
	}

	totalInAmount := uint64(0)
	for i := range pl.Vins {
		input := &pl.Vins[i]
		live, err := para.Store.ContainsUTXO(input.PrevUtxoTxID,
			input.PrevUtxoOutIndex)
		if err != nil || !live {
			log.Warn("[ExecuteTx] prev utxo already spent error!")
			return lumaerr.Simple(lumaerr.ErrDoubleSpend, err)
		}

		prevTx, err := para.Chain.UTXOCache.GetPrevUtxoTx(input.PrevUtxoTxID)
		if err != nil {
			log.Warn("[ExecuteTx],", err)
			return lumaerr.Simple(lumaerr.ErrPrevUTXOLoad, err)
		}
		prevPl, ok := prevTx.Payload().(*payload.CoinUTXOTransfer)
		if !ok {
			return lumaerr.Simple(lumaerr.ErrPrevUTXOLoad,
				errors.New("prev tx does not create utxo outputs"))
		}
		if len(prevPl.Vouts) < int(input.PrevUtxoOutIndex)+1 {
			return lumaerr.Simple(lumaerr.ErrPrevUTXOIndexOOR, fmt.Errorf(
				"prev utxo index %d out of range of %d outputs",
				input.PrevUtxoOutIndex, len(prevPl.Vouts)))
		}
		totalInAmount += prevPl.Vouts[input.PrevUtxoOutIndex].CoinAmount

		if err := para.Store.DelUTXO(input.PrevUtxoTxID,
			input.PrevUtxoOutIndex); err != nil {
			log.Warn("[ExecuteTx] del prev utxo error!")
			return lumaerr.Simple(lumaerr.ErrDelPrevUTXO, err)
		}
	}

	txHash := txn.Hash()
	totalOutAmount := uint64(0)
	for i := range pl.Vouts {
		totalOutAmount += pl.Vouts[i].CoinAmount
		if err := para.Store.AddUTXO(txHash, uint16(i)); err != nil {
			log.Warn("[ExecuteTx] set utxo error!")
			return lumaerr.Simple(lumaerr.ErrSetUTXO, err)
		}
	}

	accountBalance := srcAccount.GetFreeBalance(pl.CoinSymbol)
	if accountBalance+totalInAmount < totalOutAmount+txn.Fees() {
		log.Warn("[ExecuteTx] insufficient account coin amount!")
		return lumaerr.Simple(lumaerr.ErrBalanceInsufficient, fmt.Errorf(
			"balance %d plus %d in does not cover %d out plus %d fees",
			accountBalance, totalInAmount, totalOutAmount, txn.Fees()))
	}

	// the fee settles in the transfer's coin symbol regardless of the
	// declared fee symbol; the committed ledgers balanced this way
	var diffAbs uint64
	if totalInAmount >= totalOutAmount+txn.Fees() {
		diffAbs = totalInAmount - totalOutAmount - txn.Fees()
		if diffAbs > 0 {
			if !srcAccount.OperateBalance(pl.CoinSymbol, account.AddFree, diffAbs) {
				log.Warnf("[ExecuteTx] failed to add coin_amount in txUid %s account",
					txUid.String())
				return lumaerr.Simple(lumaerr.ErrFundOperate, fmt.Errorf(
					"crediting %d %s to %s failed", diffAbs, pl.CoinSymbol,
					txUid.String()))
			}
		}
	} else {
		diffAbs = totalOutAmount + txn.Fees() - totalInAmount
		if !srcAccount.OperateBalance(pl.CoinSymbol, account.SubFree, diffAbs) {
			log.Warnf("[ExecuteTx] failed to deduct coin_amount in txUid %s account",
				txUid.String())
			return lumaerr.Simple(lumaerr.ErrFundOperate, fmt.Errorf(
				"deducting %d %s from %s failed", diffAbs, pl.CoinSymbol,
				txUid.String()))
		}
	}

	receipts := []*common2.Receipt{{
		From:       txUid,
		To:         common2.UserID{},
		CoinSymbol: pl.CoinSymbol,
		CoinAmount: diffAbs,
		Code:       common2.ReceiptCodeTransferUTXOCoins,
	}}

	if err := para.Store.SaveAccount(srcAccount); err != nil {
		log.Warnf("[ExecuteTx] write source addr %s account info error",
			txUid.String())
		return lumaerr.Simple(lumaerr.ErrSaveAccount, err)
	}
	if err := para.Store.SetTxReceipts(txHash, receipts); err != nil {
		log.Warnf("[ExecuteTx] set tx receipts failed!! txid=%s",
			txHash.String())
		return lumaerr.Simple(lumaerr.ErrSetReceipt, err)
	}

	return nil
}
