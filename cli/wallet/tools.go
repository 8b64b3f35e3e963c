// Copyright (c) 2019-2022 The Lumachain Foundation
// Use of this source code is governed by an MIT
// license that can be found in the LICENSE file.
//

package wallet

import (
	"fmt"

	"github.com/lumachain/Lumachain.LUMA/account"
	cmdcom "github.com/lumachain/Lumachain.LUMA/cli/common"
	"github.com/lumachain/Lumachain.LUMA/common"
	"github.com/lumachain/Lumachain.LUMA/crypto"

	"github.com/urfave/cli"
	"golang.org/x/crypto/sha3"
)

var toolsCommand = []cli.Command{
	{
		Category: "Tools",
		Name:     "signmessage",
		Usage:    "Sign an off chain message with the wallet key",
		Flags: []cli.Flag{
			cmdcom.AccountWalletFlag,
			cmdcom.AccountPasswordFlag,
			cmdcom.MessageFlag,
		},
		Action: signMessage,
	},
	{
		Category: "Tools",
		Name:     "verifymessage",
		Usage:    "Verify a message signature against the wallet key",
		Flags: []cli.Flag{
			cmdcom.AccountWalletFlag,
			cmdcom.AccountPasswordFlag,
			cmdcom.MessageFlag,
			cmdcom.SignatureFlag,
		},
		Action: verifyMessage,
	},
}

func signMessage(c *cli.Context) error {
	if c.NumFlags() == 0 {
		cli.ShowSubcommandHelp(c)
		return nil
	}
	walletPath := c.String("wallet")
	message := c.String("message")
	password, err := cmdcom.GetFlagPassword(c)
	if err != nil {
		return err
	}
	client, err := account.Open(walletPath, password)
	if err != nil {
		return err
	}

	signature, err := crypto.Sign(client.GetMainAccount().PrivKey(),
		Keccak256([]byte(message)))
	if err != nil {
		return err
	}
	fmt.Println("Signature:", common.BytesToHexString(signature))

	return nil
}

func verifyMessage(c *cli.Context) error {
	if c.NumFlags() == 0 {
		cli.ShowSubcommandHelp(c)
		return nil
	}
	walletPath := c.String("wallet")
	message := c.String("message")
	password, err := cmdcom.GetFlagPassword(c)
	if err != nil {
		return err
	}
	client, err := account.Open(walletPath, password)
	if err != nil {
		return err
	}

	signature, err := common.HexStringToBytes(c.String("signature"))
	if err != nil {
		return err
	}

	err = crypto.Verify(*client.GetMainAccount().PublicKey,
		Keccak256([]byte(message)), signature)
	if err != nil {
		fmt.Println("verify message: false")
	} else {
		fmt.Println("verify message: true")
	}

	return nil
}

// Keccak256 calculates and returns the Keccak256 hash of the input data.
func Keccak256(data ...[]byte) []byte {
	d := sha3.NewLegacyKeccak256()
	for _, b := range data {
		d.Write(b)
	}
	return d.Sum(nil)
}
