// Copyright (c) 2019-2022 The Lumachain Foundation
// Use of this source code is governed by an MIT
// license that can be found in the LICENSE file.
//

package api

import (
	"bytes"
	"fmt"
	"os"

	cmdcom "github.com/lumachain/Lumachain.LUMA/cli/common"
	"github.com/lumachain/Lumachain.LUMA/common"
	common2 "github.com/lumachain/Lumachain.LUMA/core/types/common"
	"github.com/lumachain/Lumachain.LUMA/core/types/functions"
	"github.com/lumachain/Lumachain.LUMA/core/types/interfaces"
	"github.com/lumachain/Lumachain.LUMA/core/types/payload"

	lua "github.com/yuin/gopher-lua"
)

const luaTransactionTypeName = "transaction"

func RegisterTransactionType(L *lua.LState) {
	mt := L.NewTypeMetatable(luaTransactionTypeName)
	L.SetGlobal("transaction", mt)
	// static attributes
	L.SetField(mt, "new", L.NewFunction(newTransaction))
	L.SetField(mt, "fromfile", L.NewFunction(fromFile))
	// methods
	L.SetField(mt, "__index", L.SetFuncs(L.NewTable(), transactionMethods))
}

// Constructor
//	Version        TransactionVersion
//	TxType         TxType
//	PayloadVersion byte
//	Payload        Payload
//	TxUid          UserID string
//	FeeSymbol      string
//	Fees           uint64
//	ValidHeight    uint32
//	Memo           string
func newTransaction(L *lua.LState) int {
	version := L.ToInt(1)
	txType := common2.TxType(L.ToInt(2))
	payloadVersion := byte(L.ToInt(3))
	ud := L.CheckUserData(4)
	uidStr := L.ToString(5)
	feeSymbol := L.ToString(6)
	fees := uint64(L.ToInt64(7))
	validHeight := uint32(L.ToInt(8))
	memo := L.ToString(9)

	var pload interfaces.Payload
	switch ud.Value.(type) {
	case *payload.CoinBase:
		pload, _ = ud.Value.(*payload.CoinBase)
	case *payload.CoinTransfer:
		pload, _ = ud.Value.(*payload.CoinTransfer)
	case *payload.CoinUTXOTransfer:
		pload, _ = ud.Value.(*payload.CoinUTXOTransfer)
	default:
		fmt.Println("error: undefined payload type")
		os.Exit(1)
	}

	txUid, err := common2.UidFromString(uidStr)
	if err != nil {
		fmt.Println("error:", err)
		os.Exit(1)
	}

	txn := functions.CreateTransaction(
		common2.TransactionVersion(version),
		txType,
		payloadVersion,
		pload,
		txUid,
		feeSymbol,
		fees,
		validHeight,
		[]byte(memo),
	)

	udn := L.NewUserData()
	udn.Value = txn

	L.SetMetatable(udn, L.GetTypeMetatable(luaTransactionTypeName))
	L.Push(udn)

	return 1
}

func fromFile(L *lua.LState) int {
	filePath := L.CheckString(1)
	content, err := cmdcom.ReadFile(filePath)
	if err != nil {
		fmt.Println(err)
	}
	txData, err := common.HexStringToBytes(content)
	if err != nil {
		fmt.Println("decode transaction content failed")
		os.Exit(1)
	}

	r := bytes.NewReader(txData)
	txn, err := functions.GetTransactionByBytes(r)
	if err != nil {
		fmt.Println("decode transaction type failed")
		os.Exit(1)
	}
	err = txn.Deserialize(r)
	if err != nil {
		fmt.Println("deserialize transaction failed")
		os.Exit(1)
	}

	ud := L.NewUserData()
	ud.Value = txn
	L.SetMetatable(ud, L.GetTypeMetatable(luaTransactionTypeName))
	L.Push(ud)

	return 1
}

// Checks whether the lua argument at idx is a *LUserData holding a
// Transaction and returns it.
func checkTransaction(L *lua.LState, idx int) interfaces.Transaction {
	ud := L.CheckUserData(idx)
	if v, ok := ud.Value.(interfaces.Transaction); ok {
		return v
	}
	L.ArgError(idx, "transaction expected")
	return nil
}

var transactionMethods = map[string]lua.LGFunction{
	"get":       txGet,
	"sign":      signTx,
	"hash":      txHash,
	"serialize": serialize,
}

func txGet(L *lua.LState) int {
	p := checkTransaction(L, 1)
	fmt.Println(p)

	return 0
}

func signTx(L *lua.LState) int {
	txn := checkTransaction(L, 1)
	client, err := checkClient(L, 2)
	if err != nil {
		fmt.Println(err)
		os.Exit(1)
	}

	if err := client.Sign(txn); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}

	return 0
}

func txHash(L *lua.LState) int {
	tx := checkTransaction(L, 1)
	h := tx.Hash()

	L.Push(lua.LString(common.ToReversedString(h)))

	return 1
}

func serialize(L *lua.LState) int {
	txn := checkTransaction(L, 1)

	buf := new(bytes.Buffer)
	if err := txn.Serialize(buf); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
	pushHexString(L, buf.Bytes())

	return 1
}
