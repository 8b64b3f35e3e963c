// Copyright (c) 2019-2022 The Lumachain Foundation
// Use of this source code is governed by an MIT
// license that can be found in the LICENSE file.
//

package transaction

import (
	"fmt"
	"io"

	"github.com/lumachain/Lumachain.LUMA/blockchain"
	"github.com/lumachain/Lumachain.LUMA/common"
	"github.com/lumachain/Lumachain.LUMA/common/config"
	common2 "github.com/lumachain/Lumachain.LUMA/core/types/common"
	"github.com/lumachain/Lumachain.LUMA/core/types/functions"
	"github.com/lumachain/Lumachain.LUMA/core/types/interfaces"
)

// GetTransactionByBytes consumes the version and type bytes and hands
// back the typed transaction; the caller deserializes the rest.
func GetTransactionByBytes(r io.Reader) (interfaces.Transaction, error) {
	versionByte, err := common.ReadBytes(r, 1)
	if err != nil {
		return nil, err
	}
	version := common2.TransactionVersion(versionByte[0])

	txTypeBytes, err := common.ReadBytes(r, 1)
	if err != nil {
		return nil, err
	}
	txType := common2.TxType(txTypeBytes[0])

	tx, err := GetTransaction(txType)
	if err != nil {
		return nil, err
	}
	tx.SetVersion(version)
	tx.SetTxType(txType)

	return tx, nil
}

func CreateTransaction(
	version common2.TransactionVersion,
	txType common2.TxType,
	payloadVersion byte,
	payload interfaces.Payload,
	txUid common2.UserID,
	feeSymbol string,
	fees uint64,
	validHeight uint32,
	memo []byte,
) interfaces.Transaction {
	txn, err := functions.GetTransactionByTxType(txType)
	if err != nil {
		fmt.Println(err)
	}
	txn.SetVersion(version)
	txn.SetTxType(txType)
	txn.SetPayloadVersion(payloadVersion)
	txn.SetPayload(payload)
	txn.SetTxUid(txUid)
	txn.SetFeeSymbol(feeSymbol)
	txn.SetFees(fees)
	txn.SetValidHeight(validHeight)
	txn.SetMemo(memo)
	return txn
}

func GetTransactionparameters(
	transaction interfaces.Transaction,
	blockHeight uint32,
	timeStamp uint32,
	cfg interface{},
	bc interface{}) interfaces.Parameters {
	return &TransactionParameters{
		Transaction: transaction,
		BlockHeight: blockHeight,
		TimeStamp:   timeStamp,
		Config:      cfg.(*config.Configuration),
		BlockChain:  bc.(*blockchain.BlockChain),
	}
}

func GetTransactionExecuteParameters(
	transaction interfaces.Transaction,
	blockHeight uint32,
	txIndex uint16,
	bc interface{},
	store interface{}) interfaces.Parameters {
	return &TransactionExecuteParameters{
		Transaction: transaction,
		BlockHeight: blockHeight,
		TxIndex:     txIndex,
		Chain:       bc.(*blockchain.BlockChain),
		Store:       store.(*blockchain.StateBatch),
	}
}

func GetTransaction(txType common2.TxType) (txn interfaces.Transaction, err error) {
	switch txType {
	case common2.CoinBase:
		txn = new(CoinBaseTransaction)

	case common2.CoinTransfer:
		txn = new(CoinTransferTransaction)

	case common2.CoinUTXOTransfer:
		txn = new(CoinUTXOTransaction)

	default:
		return nil, fmt.Errorf("invalid transaction type 0x%02x", byte(txType))
	}

	return txn, nil
}
