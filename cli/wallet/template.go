// Copyright (c) 2019-2022 The Lumachain Foundation
// Use of this source code is governed by an MIT
// license that can be found in the LICENSE file.
//

package wallet

import (
	"errors"
	"fmt"

	"github.com/lumachain/Lumachain.LUMA/common"
	"github.com/lumachain/Lumachain.LUMA/common/config"
	common2 "github.com/lumachain/Lumachain.LUMA/core/types/common"
	"github.com/lumachain/Lumachain.LUMA/core/types/functions"
	"github.com/lumachain/Lumachain.LUMA/core/types/interfaces"
	"github.com/lumachain/Lumachain.LUMA/core/types/payload"
	"github.com/lumachain/Lumachain.LUMA/core/types/utxo"

	"github.com/tidwall/gjson"
)

// buildFromTemplate assembles an unsigned conditional utxo transfer
// from a json description of its vins and vouts:
//
//	{
//	  "symbol": "LUMA",
//	  "fees": 10000,
//	  "validHeight": 100,
//	  "memo": "",
//	  "vins": [
//	    {"prevUtxoTxId": "<hex>", "prevUtxoOutIndex": 0, "password": "open sesame"}
//	  ],
//	  "vouts": [
//	    {"coinAmount": 990000, "conds": [
//	      {"condType": "P2SA", "uid": "10-2"},
//	      {"condType": "ClaimLock", "height": 120}
//	    ]}
//	  ]
//	}
//
// A P2PH output cond takes either an explicit "passwordHash", or a
// "password" plus "spender" pair to derive the hash from.
func buildFromTemplate(txUid common2.UserID, content string) (interfaces.Transaction, error) {
	if !gjson.Valid(content) {
		return nil, errors.New("template is not valid json")
	}
	tpl := gjson.Parse(content)

	symbol := tpl.Get("symbol").String()
	if symbol == "" {
		symbol = config.LUMA
	}

	p := &payload.CoinUTXOTransfer{
		CoinSymbol: symbol,
	}

	for _, vin := range tpl.Get("vins").Array() {
		input, err := parseVin(vin)
		if err != nil {
			return nil, err
		}
		p.Vins = append(p.Vins, *input)
	}
	for _, vout := range tpl.Get("vouts").Array() {
		output, err := parseVout(vout)
		if err != nil {
			return nil, err
		}
		p.Vouts = append(p.Vouts, *output)
	}

	feeSymbol := tpl.Get("feeSymbol").String()
	if feeSymbol == "" {
		feeSymbol = config.LUMA
	}

	txn := functions.CreateTransaction(
		common2.TxVersionDefault,
		common2.CoinUTXOTransfer,
		payload.CoinUTXOTransferVersion,
		p,
		txUid,
		feeSymbol,
		tpl.Get("fees").Uint(),
		uint32(tpl.Get("validHeight").Uint()),
		[]byte(tpl.Get("memo").String()),
	)
	return txn, nil
}

func parseVin(vin gjson.Result) (*utxo.Input, error) {
	txIDBytes, err := common.FromReversedString(vin.Get("prevUtxoTxId").String())
	if err != nil {
		return nil, errors.New("vin prevUtxoTxId is not a hash")
	}
	txID, err := common.Uint256FromBytes(txIDBytes)
	if err != nil {
		return nil, err
	}

	input := &utxo.Input{
		PrevUtxoTxID:     *txID,
		PrevUtxoOutIndex: uint16(vin.Get("prevUtxoOutIndex").Uint()),
	}
	if password := vin.Get("password"); password.Exists() {
		input.Conds = append(input.Conds, &utxo.PasswordHashLockCondIn{
			Password: password.String(),
		})
	}
	return input, nil
}

func parseVout(vout gjson.Result) (*utxo.Output, error) {
	output := &utxo.Output{
		CoinAmount: vout.Get("coinAmount").Uint(),
	}
	for _, cond := range vout.Get("conds").Array() {
		parsed, err := parseOutputCond(cond)
		if err != nil {
			return nil, err
		}
		output.Conds = append(output.Conds, parsed)
	}
	return output, nil
}

func parseOutputCond(cond gjson.Result) (utxo.Cond, error) {
	condType := cond.Get("condType").String()
	switch condType {
	case utxo.P2SA.Name():
		uid, err := common2.UidFromString(cond.Get("uid").String())
		if err != nil {
			return nil, err
		}
		return &utxo.SingleAddressCondOut{Uid: uid}, nil

	case utxo.P2MA.Name():
		uid, err := common2.UidFromString(cond.Get("uid").String())
		if err != nil {
			return nil, err
		}
		return &utxo.MultiSignAddressCondOut{Uid: uid}, nil

	case utxo.P2PH.Name():
		if hash := cond.Get("passwordHash"); hash.Exists() {
			passwordHash, err := common.Uint256FromHexString(hash.String())
			if err != nil {
				return nil, errors.New("cond passwordHash is not a hash")
			}
			return &utxo.PasswordHashLockCondOut{PasswordHash: *passwordHash}, nil
		}
		password := cond.Get("password").String()
		spender := cond.Get("spender").String()
		if password == "" || spender == "" {
			return nil, errors.New("p2ph cond needs a passwordHash or a password and spender pair")
		}
		// normalize the spender through UserID so the derived hash
		// matches what the evaluator computes at spend time
		spenderUid, err := common2.UidFromString(spender)
		if err != nil {
			return nil, err
		}
		return &utxo.PasswordHashLockCondOut{
			PasswordHash: utxo.HashLock(password, spenderUid.String()),
		}, nil

	case utxo.ClaimLock.Name():
		return &utxo.ClaimLockCondOut{Height: cond.Get("height").Uint()}, nil

	case utxo.ReclaimLock.Name():
		return &utxo.ReClaimLockCondOut{Height: cond.Get("height").Uint()}, nil

	default:
		return nil, fmt.Errorf("unknown cond type %q", condType)
	}
}
