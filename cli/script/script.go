// Copyright (c) 2019-2022 The Lumachain Foundation
// Use of this source code is governed by an MIT
// license that can be found in the LICENSE file.
//

package script

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/lumachain/Lumachain.LUMA/cli/common"
	"github.com/lumachain/Lumachain.LUMA/cli/script/api"

	"github.com/urfave/cli"
	lua "github.com/yuin/gopher-lua"
)

// WalkDir collects every file under dirPth whose name ends in suffix.
func WalkDir(dirPth, suffix string) (files []string, err error) {
	files = make([]string, 0, 30)
	suffix = strings.ToUpper(suffix)
	err = filepath.Walk(dirPth, func(filename string, fi os.FileInfo, err error) error {
		if fi.IsDir() {
			return nil
		}
		if strings.HasSuffix(strings.ToUpper(fi.Name()), suffix) {
			files = append(files, filename)
		}
		return nil
	})
	return files, err
}

func registerParams(c *cli.Context, L *lua.LState) {
	wallet := c.String("wallet")
	password := c.String("password")
	toAddr := c.String("to")
	amount := c.Int64("amount")
	fee := c.Int64("fee")
	symbol := c.String("symbol")
	validHeight := c.Int64("validheight")
	secret := c.String("secret")
	lockHeight := c.Int64("lockheight")
	utxoTxID := c.String("utxotxid")
	voutIndex := c.Int64("voutindex")

	getWallet := func(L *lua.LState) int {
		L.Push(lua.LString(wallet))
		return 1
	}
	getPassword := func(L *lua.LState) int {
		L.Push(lua.LString(password))
		return 1
	}
	getToAddr := func(L *lua.LState) int {
		L.Push(lua.LString(toAddr))
		return 1
	}
	getAmount := func(L *lua.LState) int {
		L.Push(lua.LNumber(amount))
		return 1
	}
	getFee := func(L *lua.LState) int {
		L.Push(lua.LNumber(fee))
		return 1
	}
	getSymbol := func(L *lua.LState) int {
		L.Push(lua.LString(symbol))
		return 1
	}
	getValidHeight := func(L *lua.LState) int {
		L.Push(lua.LNumber(validHeight))
		return 1
	}
	getSecret := func(L *lua.LState) int {
		L.Push(lua.LString(secret))
		return 1
	}
	getLockHeight := func(L *lua.LState) int {
		L.Push(lua.LNumber(lockHeight))
		return 1
	}
	getUtxoTxID := func(L *lua.LState) int {
		L.Push(lua.LString(utxoTxID))
		return 1
	}
	getVoutIndex := func(L *lua.LState) int {
		L.Push(lua.LNumber(voutIndex))
		return 1
	}

	L.Register("getWallet", getWallet)
	L.Register("getPassword", getPassword)
	L.Register("getToAddr", getToAddr)
	L.Register("getAmount", getAmount)
	L.Register("getFee", getFee)
	L.Register("getSymbol", getSymbol)
	L.Register("getValidHeight", getValidHeight)
	L.Register("getSecret", getSecret)
	L.Register("getLockHeight", getLockHeight)
	L.Register("getUtxoTxID", getUtxoTxID)
	L.Register("getVoutIndex", getVoutIndex)
}

func scriptAction(c *cli.Context) error {
	if c.NumFlags() == 0 {
		cli.ShowSubcommandHelp(c)
		return nil
	}

	fileContent := c.String("file")
	strContent := c.String("str")
	dirContent := c.String("dir")
	testContent := c.String("test")

	L := lua.NewState()
	defer L.Close()
	L.PreloadModule("api", api.Loader)
	api.RegisterDataType(L)

	if strContent != "" {
		if err := L.DoString(strContent); err != nil {
			panic(err)
		}
	}

	if fileContent != "" {
		registerParams(c, L)
		if err := L.DoFile(fileContent); err != nil {
			panic(err)
		}
	}

	if dirContent != "" {
		files, err := WalkDir(dirContent, ".lua")
		if err != nil {
			return err
		}
		registerParams(c, L)
		for _, file := range files {
			fmt.Println("run script:", file)
			if err := L.DoFile(file); err != nil {
				panic(err)
			}
		}
	}

	if testContent != "" {
		fmt.Println("begin white box")
		if err := L.DoFile(testContent); err != nil {
			println(err.Error())
			os.Exit(1)
		} else {
			os.Exit(0)
		}
	}

	return nil
}

func NewCommand() *cli.Command {
	return &cli.Command{
		Name:        "script",
		Usage:       "Test the blockchain via lua script",
		Description: "With lumactl script, you could test blockchain.",
		ArgsUsage:   "[args]",
		Flags: []cli.Flag{
			common.AccountWalletFlag,
			common.AccountPasswordFlag,
			cli.StringFlag{
				Name:  "file, f",
				Usage: "test file",
			},
			cli.StringFlag{
				Name:  "str, s",
				Usage: "test string",
			},
			cli.StringFlag{
				Name:  "dir, d",
				Usage: "run every lua file under a directory",
			},
			cli.StringFlag{
				Name:  "test, t",
				Usage: "white box test",
			},
			cli.StringFlag{
				Name:  "to",
				Usage: "set the recipient uid",
			},
			cli.Int64Flag{
				Name:  "amount",
				Usage: "set the amount",
			},
			cli.Int64Flag{
				Name:  "fee",
				Usage: "set the fee",
			},
			cli.StringFlag{
				Name:  "symbol",
				Usage: "set the coin symbol",
			},
			cli.Int64Flag{
				Name:  "validheight",
				Usage: "set the valid height",
			},
			cli.StringFlag{
				Name:  "secret",
				Usage: "set the hash lock secret",
			},
			cli.Int64Flag{
				Name:  "lockheight",
				Usage: "set the claim or reclaim lock height",
			},
			cli.StringFlag{
				Name:  "utxotxid",
				Usage: "set the prior utxo transaction hash",
			},
			cli.Int64Flag{
				Name:  "voutindex",
				Usage: "set the prior utxo output index",
			},
		},
		Action: scriptAction,
		OnUsageError: func(c *cli.Context, err error, isSubcommand bool) error {
			common.PrintError(c, err, "script")
			return cli.NewExitError("", 1)
		},
	}
}
