// Copyright (c) 2019-2022 The Lumachain Foundation
// Use of this source code is governed by an MIT
// license that can be found in the LICENSE file.
//

package api

import (
	"fmt"
	"os"

	"github.com/lumachain/Lumachain.LUMA/common"
	common2 "github.com/lumachain/Lumachain.LUMA/core/types/common"
	"github.com/lumachain/Lumachain.LUMA/core/types/utxo"

	lua "github.com/yuin/gopher-lua"
)

const (
	luaVinTypeName  = "vin"
	luaVoutTypeName = "vout"
)

func RegisterVinType(L *lua.LState) {
	mt := L.NewTypeMetatable(luaVinTypeName)
	L.SetGlobal("vin", mt)
	// static attributes
	L.SetField(mt, "new", L.NewFunction(newVin))
	// methods
	L.SetField(mt, "__index", L.SetFuncs(L.NewTable(), vinMethods))
}

// Constructor: vin.new(prevUtxoTxId, prevUtxoOutIndex)
func newVin(L *lua.LState) int {
	txIDStr := L.ToString(1)
	outIndex := uint16(L.ToInt(2))

	txIDBytes, err := common.FromReversedString(txIDStr)
	if err != nil {
		fmt.Println("error: vin txid is not a hash")
		os.Exit(1)
	}
	txID, err := common.Uint256FromBytes(txIDBytes)
	if err != nil {
		fmt.Println("error:", err)
		os.Exit(1)
	}

	ud := L.NewUserData()
	ud.Value = &utxo.Input{
		PrevUtxoTxID:     *txID,
		PrevUtxoOutIndex: outIndex,
	}
	L.SetMetatable(ud, L.GetTypeMetatable(luaVinTypeName))
	L.Push(ud)

	return 1
}

func checkVin(L *lua.LState, idx int) *utxo.Input {
	ud := L.CheckUserData(idx)
	if v, ok := ud.Value.(*utxo.Input); ok {
		return v
	}
	L.ArgError(idx, "vin expected")
	return nil
}

var vinMethods = map[string]lua.LGFunction{
	"addpassword": vinAddPassword,
	"get":         vinGet,
}

// vin:addpassword(password) attaches the P2PH spend proof.
func vinAddPassword(L *lua.LState) int {
	input := checkVin(L, 1)
	password := L.ToString(2)
	input.Conds = append(input.Conds, &utxo.PasswordHashLockCondIn{
		Password: password,
	})

	return 0
}

func vinGet(L *lua.LState) int {
	input := checkVin(L, 1)
	fmt.Println(input.String())

	return 0
}

func RegisterVoutType(L *lua.LState) {
	mt := L.NewTypeMetatable(luaVoutTypeName)
	L.SetGlobal("vout", mt)
	// static attributes
	L.SetField(mt, "new", L.NewFunction(newVout))
	// methods
	L.SetField(mt, "__index", L.SetFuncs(L.NewTable(), voutMethods))
}

// Constructor: vout.new(coinAmount)
func newVout(L *lua.LState) int {
	amount := uint64(L.ToInt64(1))

	ud := L.NewUserData()
	ud.Value = &utxo.Output{CoinAmount: amount}
	L.SetMetatable(ud, L.GetTypeMetatable(luaVoutTypeName))
	L.Push(ud)

	return 1
}

func checkVout(L *lua.LState, idx int) *utxo.Output {
	ud := L.CheckUserData(idx)
	if v, ok := ud.Value.(*utxo.Output); ok {
		return v
	}
	L.ArgError(idx, "vout expected")
	return nil
}

var voutMethods = map[string]lua.LGFunction{
	"addp2sa":        voutAddP2SA,
	"addp2ma":        voutAddP2MA,
	"addp2ph":        voutAddP2PH,
	"addclaimlock":   voutAddClaimLock,
	"addreclaimlock": voutAddReclaimLock,
}

func voutAddP2SA(L *lua.LState) int {
	output := checkVout(L, 1)
	uid := checkUid(L, 2)
	output.Conds = append(output.Conds, &utxo.SingleAddressCondOut{Uid: uid})

	return 0
}

func voutAddP2MA(L *lua.LState) int {
	output := checkVout(L, 1)
	uid := checkUid(L, 2)
	output.Conds = append(output.Conds, &utxo.MultiSignAddressCondOut{Uid: uid})

	return 0
}

// vout:addp2ph(password, spender) derives the hash lock from the
// password and the spender uid string.
func voutAddP2PH(L *lua.LState) int {
	output := checkVout(L, 1)
	password := L.ToString(2)
	spender := L.ToString(3)
	output.Conds = append(output.Conds, &utxo.PasswordHashLockCondOut{
		PasswordHash: utxo.HashLock(password, spender),
	})

	return 0
}

func voutAddClaimLock(L *lua.LState) int {
	output := checkVout(L, 1)
	height := uint64(L.ToInt64(2))
	output.Conds = append(output.Conds, &utxo.ClaimLockCondOut{Height: height})

	return 0
}

func voutAddReclaimLock(L *lua.LState) int {
	output := checkVout(L, 1)
	height := uint64(L.ToInt64(2))
	output.Conds = append(output.Conds, &utxo.ReClaimLockCondOut{Height: height})

	return 0
}

func checkUid(L *lua.LState, idx int) common2.UserID {
	uid, err := common2.UidFromString(L.ToString(idx))
	if err != nil {
		L.ArgError(idx, err.Error())
	}
	return uid
}
