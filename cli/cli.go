// Copyright (c) 2019-2022 The Lumachain Foundation
// Use of this source code is governed by an MIT
// license that can be found in the LICENSE file.
//

package cli

import (
	"math/rand"
	"time"

	"github.com/lumachain/Lumachain.LUMA/core/transaction"
	"github.com/lumachain/Lumachain.LUMA/core/types/functions"
)

func init() {
	// Initialize functions
	functions.GetTransactionByTxType = transaction.GetTransaction
	functions.GetTransactionByBytes = transaction.GetTransactionByBytes
	functions.CreateTransaction = transaction.CreateTransaction
	functions.GetTransactionParameters = transaction.GetTransactionparameters
	functions.GetTransactionExecuteParameters = transaction.GetTransactionExecuteParameters

	//seed transaction nonce
	rand.Seed(time.Now().UnixNano())
}
