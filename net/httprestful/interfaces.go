// Copyright (c) 2019-2022 The Lumachain Foundation
// Use of this source code is governed by an MIT
// license that can be found in the LICENSE file.
//

package httprestful

import (
	"bytes"

	"github.com/lumachain/Lumachain.LUMA/blockchain"
	"github.com/lumachain/Lumachain.LUMA/common"
	"github.com/lumachain/Lumachain.LUMA/common/log"
	"github.com/lumachain/Lumachain.LUMA/core/types/functions"
	"github.com/lumachain/Lumachain.LUMA/core/types/interfaces"
	lumaerr "github.com/lumachain/Lumachain.LUMA/errors"
	"github.com/lumachain/Lumachain.LUMA/mempool"
	"github.com/lumachain/Lumachain.LUMA/producer"
)

// Pool is the memory pool new transactions are submitted to and
// pending transactions are answered from.  StartServer sets it before
// the listener comes up.
var Pool *mempool.TxPool

// Producer is the block producer the generateblocks action drives.  It
// stays nil when the node runs without one and the action then fails.
var Producer *producer.Service

func ResponsePack(errCode lumaerr.ErrCode, result interface{}) map[string]interface{} {
	if errCode != lumaerr.Success && (result == "" || result == nil) {
		result = errCode.Reason()
	}
	return map[string]interface{}{"Result": result, "Error": errCode}
}

func GetNodeState(param Params) map[string]interface{} {
	poolCount := 0
	if Pool != nil {
		poolCount = Pool.GetTransactionCount()
	}
	return ResponsePack(lumaerr.Success, map[string]interface{}{
		"Height":      blockchain.DefaultLedger.Store.GetHeight(),
		"TxPoolCount": poolCount,
	})
}

func GetTransactionByHash(param Params) map[string]interface{} {
	str, ok := param.String("hash")
	if !ok {
		return ResponsePack(lumaerr.ErrInvalidParams, "")
	}

	bys, err := common.FromReversedString(str)
	if err != nil {
		return ResponsePack(lumaerr.ErrInvalidParams, "")
	}
	hash, err := common.Uint256FromBytes(bys)
	if err != nil {
		return ResponsePack(lumaerr.ErrInvalidTransaction, "")
	}

	raw, _ := param.String("raw")

	txn, height, err := blockchain.DefaultLedger.Store.GetTransaction(*hash)
	if err != nil {
		// not on chain yet, it may still sit in the memory pool
		if Pool == nil {
			return ResponsePack(lumaerr.ErrUnknownTransaction, "")
		}
		txn = Pool.GetTransaction(*hash)
		if txn == nil {
			return ResponsePack(lumaerr.ErrUnknownTransaction, "")
		}
		if raw == "1" {
			return ResponsePack(lumaerr.Success, rawTransactionHex(txn))
		}
		info := txn.ToJSON()
		info["confirmations"] = 0
		return ResponsePack(lumaerr.Success, info)
	}

	if raw == "1" {
		return ResponsePack(lumaerr.Success, rawTransactionHex(txn))
	}
	info := txn.ToJSON()
	info["height"] = height
	info["confirmations"] = blockchain.DefaultLedger.Store.GetHeight() - height + 1
	return ResponsePack(lumaerr.Success, info)
}

func GetReceiptsByHash(param Params) map[string]interface{} {
	str, ok := param.String("hash")
	if !ok {
		return ResponsePack(lumaerr.ErrInvalidParams, "")
	}

	bys, err := common.FromReversedString(str)
	if err != nil {
		return ResponsePack(lumaerr.ErrInvalidParams, "")
	}
	hash, err := common.Uint256FromBytes(bys)
	if err != nil {
		return ResponsePack(lumaerr.ErrInvalidTransaction, "")
	}

	receipts, err := blockchain.DefaultLedger.Store.GetTxReceipts(*hash)
	if err != nil {
		return ResponsePack(lumaerr.ErrUnknownTransaction, "")
	}
	list := make([]map[string]interface{}, 0, len(receipts))
	for _, receipt := range receipts {
		list = append(list, receipt.ToJSON())
	}
	return ResponsePack(lumaerr.Success, list)
}

func GetTransactionPool(param Params) map[string]interface{} {
	if Pool == nil {
		return ResponsePack(lumaerr.Success, []string{})
	}

	str, ok := param.String("state")
	if ok && str == "all" {
		txs := make([]map[string]interface{}, 0)
		for _, tx := range Pool.GetTxsInPool() {
			info := tx.ToJSON()
			info["confirmations"] = 0
			txs = append(txs, info)
		}
		return ResponsePack(lumaerr.Success, txs)
	}

	txs := make([]string, 0)
	for _, tx := range Pool.GetTxsInPool() {
		txs = append(txs, common.ToReversedString(tx.Hash()))
	}
	return ResponsePack(lumaerr.Success, txs)
}

func SendRawTransaction(param Params) map[string]interface{} {
	str, ok := param.String("data")
	if !ok {
		return ResponsePack(lumaerr.ErrInvalidParams, "need a string parameter named data")
	}

	bys, err := common.HexStringToBytes(str)
	if err != nil {
		return ResponsePack(lumaerr.ErrInvalidParams, "hex string to bytes error")
	}

	r := bytes.NewReader(bys)
	txn, err := functions.GetTransactionByBytes(r)
	if err != nil {
		return ResponsePack(lumaerr.ErrInvalidTransaction, "invalid transaction")
	}
	if err := txn.Deserialize(r); err != nil {
		return ResponsePack(lumaerr.ErrInvalidTransaction, err.Error())
	}

	if Pool == nil {
		return ResponsePack(lumaerr.ErrFail, "no transaction pool")
	}
	if err := Pool.AppendToTxPool(txn); err != nil {
		log.Warn("[httprestful] append to pool failed. Errcode:", err.Code())
		return ResponsePack(err.Code(), err.Error())
	}

	return ResponsePack(lumaerr.Success, common.ToReversedString(txn.Hash()))
}

// GenerateBlocks settles the pooled transactions into count new
// blocks, one by default.
func GenerateBlocks(param Params) map[string]interface{} {
	if Producer == nil {
		return ResponsePack(lumaerr.ErrFail, "no block producer in this node")
	}

	count, ok := param.Uint("count")
	if !ok || count == 0 {
		count = 1
	}

	heights, err := Producer.DiscreteGeneration(count)
	if err != nil {
		return ResponsePack(lumaerr.ErrFail, err.Error())
	}
	return ResponsePack(lumaerr.Success, heights)
}

func rawTransactionHex(txn interfaces.Transaction) string {
	w := new(bytes.Buffer)
	txn.Serialize(w)
	return common.BytesToHexString(w.Bytes())
}
