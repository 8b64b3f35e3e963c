// Copyright (c) 2019-2022 The Lumachain Foundation
// Use of this source code is governed by an MIT
// license that can be found in the LICENSE file.
//

package blockchain

import (
	"github.com/lumachain/Lumachain.LUMA/core/types/functions"
	"github.com/lumachain/Lumachain.LUMA/core/types/interfaces"
	"github.com/lumachain/Lumachain.LUMA/core/types/utxo"
	lumaerr "github.com/lumachain/Lumachain.LUMA/errors"
)

type TransactionChecker interface {
	CheckTransactionSanity(blockHeight uint32, txn interfaces.Transaction) lumaerr.LumaError
	CheckTransactionContext(blockHeight uint32, txn interfaces.Transaction,
		timeStamp uint32) (map[*utxo.Input]utxo.Output, lumaerr.LumaError)
}

// CheckTransactionSanity verifies received single transaction
func (b *BlockChain) CheckTransactionSanity(blockHeight uint32,
	txn interfaces.Transaction) lumaerr.LumaError {

	para := functions.GetTransactionParameters(
		txn, blockHeight, 0, b.chainParams, b)

	return txn.SanityCheck(para)
}

// CheckTransactionContext verifies a transaction with history transaction in ledger
func (b *BlockChain) CheckTransactionContext(blockHeight uint32,
	tx interfaces.Transaction, timeStamp uint32) (
	map[*utxo.Input]utxo.Output, lumaerr.LumaError) {

	para := functions.GetTransactionParameters(
		tx, blockHeight, timeStamp, b.chainParams, b)

	references, contextErr := tx.ContextCheck(para)
	if contextErr != nil {
		return nil, contextErr
	}

	return references, nil
}
