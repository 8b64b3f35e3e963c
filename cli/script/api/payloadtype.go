// Copyright (c) 2019-2022 The Lumachain Foundation
// Use of this source code is governed by an MIT
// license that can be found in the LICENSE file.
//

package api

import (
	"fmt"
	"os"

	common2 "github.com/lumachain/Lumachain.LUMA/core/types/common"
	"github.com/lumachain/Lumachain.LUMA/core/types/payload"

	lua "github.com/yuin/gopher-lua"
)

const (
	luaCoinTransferTypeName     = "cointransfer"
	luaCoinUTXOTransferTypeName = "coinutxotransfer"
)

func RegisterCoinTransferType(L *lua.LState) {
	mt := L.NewTypeMetatable(luaCoinTransferTypeName)
	L.SetGlobal("cointransfer", mt)
	// static attributes
	L.SetField(mt, "new", L.NewFunction(newCoinTransfer))
	// methods
	L.SetField(mt, "__index", L.SetFuncs(L.NewTable(), coinTransferMethods))
}

// Constructor: cointransfer.new(toUid, symbol, amount)
func newCoinTransfer(L *lua.LState) int {
	toUidStr := L.ToString(1)
	symbol := L.ToString(2)
	amount := uint64(L.ToInt64(3))

	toUid, err := common2.UidFromString(toUidStr)
	if err != nil {
		fmt.Println("error:", err)
		os.Exit(1)
	}

	ud := L.NewUserData()
	ud.Value = &payload.CoinTransfer{
		ToUid:      toUid,
		CoinSymbol: symbol,
		CoinAmount: amount,
	}
	L.SetMetatable(ud, L.GetTypeMetatable(luaCoinTransferTypeName))
	L.Push(ud)

	return 1
}

var coinTransferMethods = map[string]lua.LGFunction{
	"get": coinTransferGet,
}

func coinTransferGet(L *lua.LState) int {
	ud := L.CheckUserData(1)
	p, ok := ud.Value.(*payload.CoinTransfer)
	if !ok {
		L.ArgError(1, "cointransfer expected")
		return 0
	}
	fmt.Println(p.ToJSON())

	return 0
}

func RegisterCoinUTXOTransferType(L *lua.LState) {
	mt := L.NewTypeMetatable(luaCoinUTXOTransferTypeName)
	L.SetGlobal("coinutxotransfer", mt)
	// static attributes
	L.SetField(mt, "new", L.NewFunction(newCoinUTXOTransfer))
	// methods
	L.SetField(mt, "__index", L.SetFuncs(L.NewTable(), coinUTXOTransferMethods))
}

// Constructor: coinutxotransfer.new(symbol)
func newCoinUTXOTransfer(L *lua.LState) int {
	symbol := L.ToString(1)

	ud := L.NewUserData()
	ud.Value = &payload.CoinUTXOTransfer{CoinSymbol: symbol}
	L.SetMetatable(ud, L.GetTypeMetatable(luaCoinUTXOTransferTypeName))
	L.Push(ud)

	return 1
}

func checkCoinUTXOTransfer(L *lua.LState, idx int) *payload.CoinUTXOTransfer {
	ud := L.CheckUserData(idx)
	if p, ok := ud.Value.(*payload.CoinUTXOTransfer); ok {
		return p
	}
	L.ArgError(idx, "coinutxotransfer expected")
	return nil
}

var coinUTXOTransferMethods = map[string]lua.LGFunction{
	"appendvin":  utxoTransferAppendVin,
	"appendvout": utxoTransferAppendVout,
	"get":        utxoTransferGet,
}

func utxoTransferAppendVin(L *lua.LState) int {
	p := checkCoinUTXOTransfer(L, 1)
	input := checkVin(L, 2)
	p.Vins = append(p.Vins, *input)

	return 0
}

func utxoTransferAppendVout(L *lua.LState) int {
	p := checkCoinUTXOTransfer(L, 1)
	output := checkVout(L, 2)
	p.Vouts = append(p.Vouts, *output)

	return 0
}

func utxoTransferGet(L *lua.LState) int {
	p := checkCoinUTXOTransfer(L, 1)
	fmt.Println(p.ToJSON())

	return 0
}
