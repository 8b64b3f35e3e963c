// Copyright (c) 2019-2022 The Lumachain Foundation
// Use of this source code is governed by an MIT
// license that can be found in the LICENSE file.
//

package api

import (
	cmdcom "github.com/lumachain/Lumachain.LUMA/cli/common"
	"github.com/lumachain/Lumachain.LUMA/common"
	"github.com/lumachain/Lumachain.LUMA/core/types/utxo"

	lua "github.com/yuin/gopher-lua"
)

// Loader preloads the api module: utility functions scripts call as
// api.xxx after require("api").
func Loader(L *lua.LState) int {
	mod := L.SetFuncs(L.NewTable(), exports)
	L.SetField(mod, "version", lua.LString("0.1"))
	L.Push(mod)
	return 1
}

var exports = map[string]lua.LGFunction{
	"hashlock":           hashLock,
	"sendrawtransaction": sendRawTransaction,
	"generateblocks":     generateBlocks,
}

// hashlock(password, spender) returns the hex hash a P2PH output
// stores for that password and spender pair.
func hashLock(L *lua.LState) int {
	password := L.CheckString(1)
	spender := L.CheckString(2)
	hash := utxo.HashLock(password, spender)
	L.Push(lua.LString(hash.String()))
	return 1
}

// sendrawtransaction(hex) posts a signed transaction to the local
// node and returns its hash.
func sendRawTransaction(L *lua.LState) int {
	txHex := L.CheckString(1)
	result, err := cmdcom.SendRawTransaction(txHex)
	if err != nil {
		L.Push(lua.LNil)
		L.Push(lua.LString(err.Error()))
		return 2
	}
	L.Push(lua.LString(result))
	return 1
}

// generateblocks(count) settles the node's pooled transactions into
// count new blocks.
func generateBlocks(L *lua.LState) int {
	count := L.OptInt(1, 1)
	result, err := cmdcom.GenerateBlocks(uint32(count))
	if err != nil {
		L.Push(lua.LNil)
		L.Push(lua.LString(err.Error()))
		return 2
	}
	L.Push(lua.LString(result))
	return 1
}

// RegisterDataType registers every chain data type into the lua
// state.
func RegisterDataType(L *lua.LState) int {
	RegisterClientType(L)
	RegisterCoinTransferType(L)
	RegisterCoinUTXOTransferType(L)
	RegisterVinType(L)
	RegisterVoutType(L)
	RegisterTransactionType(L)
	return 0
}

func pushHexString(L *lua.LState, data []byte) {
	L.Push(lua.LString(common.BytesToHexString(data)))
}
