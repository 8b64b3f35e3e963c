// Copyright (c) 2019-2022 The Lumachain Foundation
// Use of this source code is governed by an MIT
// license that can be found in the LICENSE file.
//

package transaction

import (
	"errors"

	"github.com/lumachain/Lumachain.LUMA/common/log"
	"github.com/lumachain/Lumachain.LUMA/core/types/interfaces"
	"github.com/lumachain/Lumachain.LUMA/core/types/payload"
	"github.com/lumachain/Lumachain.LUMA/core/types/utxo"
	lumaerr "github.com/lumachain/Lumachain.LUMA/errors"
)

type CoinBaseTransaction struct {
	BaseTransaction
}

func (t *CoinBaseTransaction) CheckTransactionPayload() error {
	switch t.Payload().(type) {
	case *payload.CoinBase:
		return nil
	}

	return errors.New("invalid payload type")
}

// a coinbase names nobody; reject a forged sender outright
func (t *CoinBaseTransaction) CheckTransactionUid() error {
	txUid := t.parameters.Transaction.TxUid()
	if !txUid.IsEmpty() {
		return errors.New("coinbase must not carry a txUid")
	}

	return nil
}

func (a *CoinBaseTransaction) SpecialContextCheck() (result lumaerr.LumaError, end bool) {
	return nil, true
}

func (a *CoinBaseTransaction) ContextCheck(para interfaces.Parameters) (
	map[*utxo.Input]utxo.Output, lumaerr.LumaError) {

	if err := a.SetParameters(para); err != nil {
		return nil, lumaerr.Simple(lumaerr.ErrFail, errors.New("invalid parameters"))
	}

	if err := a.HeightVersionCheck(); err != nil {
		return nil, lumaerr.Simple(lumaerr.ErrTxDisabled, nil)
	}

	// check if duplicated with transaction in ledger
	if exist := a.IsTxHashDuplicate(a.Hash()); exist {
		log.Warn("[CheckTransactionContext] duplicate transaction check failed.")
		return nil, lumaerr.Simple(lumaerr.ErrTxDuplicate, nil)
	}

	err, end := a.SpecialContextCheck()
	if end {
		return nil, err
	}

	return nil, nil
}

// ExecuteTx moves no balances; the coinbase only anchors the block's
// data in the ledger.
func (t *CoinBaseTransaction) ExecuteTx(params interfaces.Parameters) lumaerr.LumaError {
	if _, ok := params.(*TransactionExecuteParameters); !ok {
		return lumaerr.Simple(lumaerr.ErrFail, errors.New("invalid parameters"))
	}

	return nil
}
