// Copyright (c) 2019-2022 The Lumachain Foundation
// Use of this source code is governed by an MIT
// license that can be found in the LICENSE file.
//

package api

import (
	"errors"
	"fmt"
	"os"

	"github.com/lumachain/Lumachain.LUMA/account"

	lua "github.com/yuin/gopher-lua"
)

const luaClientTypeName = "client"

func RegisterClientType(L *lua.LState) {
	mt := L.NewTypeMetatable(luaClientTypeName)
	L.SetGlobal("client", mt)
	// static attributes
	L.SetField(mt, "new", L.NewFunction(newClient))
	// methods
	L.SetField(mt, "__index", L.SetFuncs(L.NewTable(), clientMethods))
}

// Constructor: client.new(path, password, create)
func newClient(L *lua.LState) int {
	path := L.ToString(1)
	password := L.ToString(2)
	create := L.ToBool(3)

	var client *account.Client
	var err error
	if create {
		client, err = account.Create(path, []byte(password))
	} else {
		client, err = account.Open(path, []byte(password))
	}
	if err != nil {
		fmt.Println("error:", err)
		os.Exit(1)
	}

	ud := L.NewUserData()
	ud.Value = client
	L.SetMetatable(ud, L.GetTypeMetatable(luaClientTypeName))
	L.Push(ud)

	return 1
}

func checkClient(L *lua.LState, idx int) (*account.Client, error) {
	v := L.Get(idx)
	if ud, ok := v.(*lua.LUserData); ok {
		if c, ok := ud.Value.(*account.Client); ok {
			return c, nil
		}
	}
	return nil, errors.New("client expected")
}

var clientMethods = map[string]lua.LGFunction{
	"get_address":   getClientAddress,
	"get_publickey": getClientPublicKey,
	"get_uid":       getClientUid,
}

func getClientAddress(L *lua.LState) int {
	client, err := checkClient(L, 1)
	if err != nil {
		L.ArgError(1, err.Error())
		return 0
	}
	address, err := client.GetMainAccount().Address()
	if err != nil {
		L.RaiseError(err.Error())
		return 0
	}
	L.Push(lua.LString(address))

	return 1
}

func getClientPublicKey(L *lua.LState) int {
	client, err := checkClient(L, 1)
	if err != nil {
		L.ArgError(1, err.Error())
		return 0
	}
	pubKey, err := client.GetMainAccount().PublicKeyBytes()
	if err != nil {
		L.RaiseError(err.Error())
		return 0
	}
	pushHexString(L, pubKey)

	return 1
}

func getClientUid(L *lua.LState) int {
	client, err := checkClient(L, 1)
	if err != nil {
		L.ArgError(1, err.Error())
		return 0
	}
	uid, err := client.GetMainAccount().Uid()
	if err != nil {
		L.RaiseError(err.Error())
		return 0
	}
	L.Push(lua.LString(uid.String()))

	return 1
}
