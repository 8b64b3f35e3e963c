// Copyright (c) 2019-2022 The Lumachain Foundation
// Use of this source code is governed by an MIT
// license that can be found in the LICENSE file.
//

package wallet

import (
	"fmt"
	"strings"

	"github.com/lumachain/Lumachain.LUMA/account"
	cmdcom "github.com/lumachain/Lumachain.LUMA/cli/common"
	"github.com/lumachain/Lumachain.LUMA/utils"

	"github.com/urfave/cli"
)

var accountCommand = []cli.Command{
	{
		Category: "Account",
		Name:     "create",
		Usage:    "Create an account",
		Flags: []cli.Flag{
			cmdcom.AccountWalletFlag,
			cmdcom.AccountPasswordFlag,
		},
		Action: createAccount,
	},
	{
		Category: "Account",
		Name:     "account",
		Usage:    "Show account address, public key and uid",
		Flags: []cli.Flag{
			cmdcom.AccountWalletFlag,
			cmdcom.AccountPasswordFlag,
		},
		Action: showAccount,
	},
}

func createAccount(c *cli.Context) error {
	walletPath := c.String("wallet")

	password := []byte(c.String("password"))
	if len(password) == 0 {
		var err error
		password, err = utils.GetConfirmedPassword()
		if err != nil {
			return err
		}
	}

	client, err := account.Create(walletPath, password)
	if err != nil {
		return err
	}

	return ShowAccountInfo(client)
}

func showAccount(c *cli.Context) error {
	walletPath := c.String("wallet")
	password, err := cmdcom.GetFlagPassword(c)
	if err != nil {
		return err
	}

	client, err := account.Open(walletPath, password)
	if err != nil {
		return err
	}

	return ShowAccountInfo(client)
}

func ShowAccountInfo(client *account.Client) error {
	acc := client.GetMainAccount()
	address, err := acc.Address()
	if err != nil {
		return err
	}
	pubKey, err := acc.PublicKeyBytes()
	if err != nil {
		return err
	}

	fmt.Printf("%-34s %-66s\n", "ADDRESS", "PUBLIC KEY")
	fmt.Println(strings.Repeat("-", 34), strings.Repeat("-", 66))
	fmt.Printf("%-34s %-66x\n", address, pubKey)
	fmt.Println(strings.Repeat("-", 34), strings.Repeat("-", 66))

	return nil
}

// NewCommand returns the wallet sub commands: local account keeping
// plus building, signing and sending transactions.
func NewCommand() *cli.Command {
	return &cli.Command{
		Name:        "wallet",
		Usage:       "Wallet operations",
		Description: "With lumactl wallet, you could control your asset.",
		ArgsUsage:   "[args]",
		Subcommands: append(accountCommand,
			append(txCommand, toolsCommand...)...),
	}
}
