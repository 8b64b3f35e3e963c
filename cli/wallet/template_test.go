// Copyright (c) 2019-2022 The Lumachain Foundation
// Use of this source code is governed by an MIT
// license that can be found in the LICENSE file.
//

package wallet

import (
	"testing"

	"github.com/lumachain/Lumachain.LUMA/common"
	"github.com/lumachain/Lumachain.LUMA/common/config"
	"github.com/lumachain/Lumachain.LUMA/core/transaction"
	common2 "github.com/lumachain/Lumachain.LUMA/core/types/common"
	"github.com/lumachain/Lumachain.LUMA/core/types/functions"
	"github.com/lumachain/Lumachain.LUMA/core/types/payload"
	"github.com/lumachain/Lumachain.LUMA/core/types/utxo"

	"github.com/stretchr/testify/assert"
)

func init() {
	functions.GetTransactionByTxType = transaction.GetTransaction
	functions.GetTransactionByBytes = transaction.GetTransactionByBytes
	functions.CreateTransaction = transaction.CreateTransaction
	functions.GetTransactionParameters = transaction.GetTransactionparameters
	functions.GetTransactionExecuteParameters = transaction.GetTransactionExecuteParameters
	config.DefaultParams = *config.GetDefaultParams()
}

func TestBuildFromTemplate(t *testing.T) {
	prevTxID := common.Hash([]byte("funding"))
	owner, err := common2.UidFromString("7-2")
	assert.NoError(t, err)

	content := `{
		"symbol": "LUSD",
		"fees": 10000,
		"validHeight": 100,
		"memo": "rent",
		"vins": [
			{
				"prevUtxoTxId": "` + common.ToReversedString(prevTxID) + `",
				"prevUtxoOutIndex": 2,
				"password": "open sesame"
			}
		],
		"vouts": [
			{
				"coinAmount": 990000,
				"conds": [
					{"condType": "P2SA", "uid": "7-2"},
					{"condType": "ClaimLock", "height": 120}
				]
			},
			{
				"coinAmount": 5000,
				"conds": [
					{"condType": "P2MA", "uid": "9-1"},
					{"condType": "ReclaimLock", "height": 300}
				]
			}
		]
	}`

	txn, err := buildFromTemplate(owner, content)
	assert.NoError(t, err)

	assert.Equal(t, common2.CoinUTXOTransfer, txn.TxType())
	assert.Equal(t, owner, txn.TxUid())
	assert.Equal(t, config.LUMA, txn.FeeSymbol())
	assert.Equal(t, uint64(10000), txn.Fees())
	assert.Equal(t, uint32(100), txn.ValidHeight())
	assert.Equal(t, []byte("rent"), txn.Memo())

	pl, ok := txn.Payload().(*payload.CoinUTXOTransfer)
	if !assert.True(t, ok) {
		return
	}
	assert.Equal(t, "LUSD", pl.CoinSymbol)

	if assert.Len(t, pl.Vins, 1) {
		assert.Equal(t, prevTxID, pl.Vins[0].PrevUtxoTxID)
		assert.Equal(t, uint16(2), pl.Vins[0].PrevUtxoOutIndex)
		if assert.Len(t, pl.Vins[0].Conds, 1) {
			in := pl.Vins[0].Conds[0].(*utxo.PasswordHashLockCondIn)
			assert.Equal(t, "open sesame", in.Password)
		}
	}

	if assert.Len(t, pl.Vouts, 2) {
		assert.Equal(t, uint64(990000), pl.Vouts[0].CoinAmount)
		if assert.Len(t, pl.Vouts[0].Conds, 2) {
			single := pl.Vouts[0].Conds[0].(*utxo.SingleAddressCondOut)
			assert.Equal(t, "7-2", single.Uid.String())
			lock := pl.Vouts[0].Conds[1].(*utxo.ClaimLockCondOut)
			assert.Equal(t, uint64(120), lock.Height)
		}

		assert.Equal(t, uint64(5000), pl.Vouts[1].CoinAmount)
		if assert.Len(t, pl.Vouts[1].Conds, 2) {
			multi := pl.Vouts[1].Conds[0].(*utxo.MultiSignAddressCondOut)
			assert.Equal(t, "9-1", multi.Uid.String())
			reclaim := pl.Vouts[1].Conds[1].(*utxo.ReClaimLockCondOut)
			assert.Equal(t, uint64(300), reclaim.Height)
		}
	}
}

func TestBuildFromTemplateDefaults(t *testing.T) {
	txn, err := buildFromTemplate(common2.UserID{}, `{}`)
	assert.NoError(t, err)

	pl := txn.Payload().(*payload.CoinUTXOTransfer)
	assert.Equal(t, config.LUMA, pl.CoinSymbol)
	assert.Empty(t, pl.Vins)
	assert.Empty(t, pl.Vouts)
	assert.Equal(t, uint64(0), txn.Fees())
	assert.Equal(t, uint32(0), txn.ValidHeight())
}

func TestBuildFromTemplateP2PH(t *testing.T) {
	spender, err := common2.UidFromString("7-2")
	assert.NoError(t, err)

	// an explicit hash is taken as is
	hash := common.Hash([]byte("secret"))
	content := `{"vouts": [{"coinAmount": 100, "conds": [
		{"condType": "P2PH", "passwordHash": "` + hash.String() + `"}
	]}]}`
	txn, err := buildFromTemplate(spender, content)
	assert.NoError(t, err)
	pl := txn.Payload().(*payload.CoinUTXOTransfer)
	cond := pl.Vouts[0].Conds[0].(*utxo.PasswordHashLockCondOut)
	assert.Equal(t, hash, cond.PasswordHash)

	// a password and spender pair derives the hash the way the spend
	// side will recompute it
	content = `{"vouts": [{"coinAmount": 100, "conds": [
		{"condType": "P2PH", "password": "open sesame", "spender": "7-2"}
	]}]}`
	txn, err = buildFromTemplate(spender, content)
	assert.NoError(t, err)
	pl = txn.Payload().(*payload.CoinUTXOTransfer)
	cond = pl.Vouts[0].Conds[0].(*utxo.PasswordHashLockCondOut)
	assert.Equal(t, utxo.HashLock("open sesame", "7-2"), cond.PasswordHash)

	content = `{"vouts": [{"coinAmount": 100, "conds": [
		{"condType": "P2PH"}
	]}]}`
	_, err = buildFromTemplate(spender, content)
	assert.EqualError(t, err,
		"p2ph cond needs a passwordHash or a password and spender pair")
}

func TestBuildFromTemplateErrors(t *testing.T) {
	uid := common2.UserID{}

	_, err := buildFromTemplate(uid, `{not json`)
	assert.EqualError(t, err, "template is not valid json")

	_, err = buildFromTemplate(uid,
		`{"vins": [{"prevUtxoTxId": "zz"}]}`)
	assert.EqualError(t, err, "vin prevUtxoTxId is not a hash")

	_, err = buildFromTemplate(uid,
		`{"vouts": [{"conds": [{"condType": "P2XX"}]}]}`)
	assert.EqualError(t, err, `unknown cond type "P2XX"`)

	_, err = buildFromTemplate(uid,
		`{"vouts": [{"conds": [{"condType": "P2SA", "uid": "zz"}]}]}`)
	assert.EqualError(t, err, "invalid user id string")
}
