// Copyright (c) 2019-2022 The Lumachain Foundation
// Use of this source code is governed by an MIT
// license that can be found in the LICENSE file.
//

package functions

import (
	"io"

	common2 "github.com/lumachain/Lumachain.LUMA/core/types/common"
	"github.com/lumachain/Lumachain.LUMA/core/types/interfaces"
)

var GetTransactionByTxType func(txType common2.TxType) (interfaces.Transaction, error)

var GetTransactionByBytes func(r io.Reader) (interfaces.Transaction, error)

var CreateTransaction func(
	version common2.TransactionVersion,
	txType common2.TxType,
	payloadVersion byte,
	payload interfaces.Payload,
	txUid common2.UserID,
	feeSymbol string,
	fees uint64,
	validHeight uint32,
	memo []byte,
) interfaces.Transaction

var GetTransactionParameters func(
	transaction interfaces.Transaction,
	blockHeight uint32,
	timeStamp uint32,
	config interface{},
	blockChain interface{}) interfaces.Parameters

var GetTransactionExecuteParameters func(
	transaction interfaces.Transaction,
	blockHeight uint32,
	txIndex uint16,
	blockChain interface{},
	store interface{}) interfaces.Parameters
