// Copyright (c) 2019-2022 The Lumachain Foundation
// Use of this source code is governed by an MIT
// license that can be found in the LICENSE file.
//

package common

import (
	"github.com/lumachain/Lumachain.LUMA/account"
	"github.com/lumachain/Lumachain.LUMA/common/config"
	"github.com/lumachain/Lumachain.LUMA/utils"

	"github.com/urfave/cli"
)

var (
	// Account flags
	AccountWalletFlag = cli.StringFlag{
		Name:  "wallet, w",
		Usage: "wallet `<file>` path",
		Value: account.KeystoreFileName,
	}
	AccountPasswordFlag = cli.StringFlag{
		Name:  "password, p",
		Usage: "wallet password",
	}

	// Transaction flags
	TransactionFromFlag = cli.StringFlag{
		Name:  "from",
		Usage: "the sender `<uid>` of the transaction, defaults to the wallet public key",
	}
	TransactionToFlag = cli.StringFlag{
		Name:  "to",
		Usage: "the recipient `<uid>` of the transaction, a regid or a public key",
	}
	TransactionAmountFlag = cli.Uint64Flag{
		Name:  "amount",
		Usage: "the transfer `<amount>` of the transaction, in sawi",
	}
	TransactionFeeFlag = cli.Uint64Flag{
		Name:  "fee",
		Usage: "the `<fee>` of the transaction, in sawi",
	}
	TransactionSymbolFlag = cli.StringFlag{
		Name:  "symbol",
		Usage: "the coin `<symbol>` the transaction moves",
		Value: config.LUMA,
	}
	TransactionValidHeightFlag = cli.UintFlag{
		Name:  "validheight",
		Usage: "the block `<height>` the transaction is built against",
	}
	TransactionMemoFlag = cli.StringFlag{
		Name:  "memo",
		Usage: "a short memo to carry along with the transaction",
	}
	TransactionHexFlag = cli.StringFlag{
		Name:  "hex",
		Usage: "the transaction content in hex string format to be sign or send",
	}
	TransactionFileFlag = cli.StringFlag{
		Name:  "file, f",
		Usage: "the file path to specify a transaction file path with the hex string content to be sign",
	}
	TransactionTemplateFlag = cli.StringFlag{
		Name:  "template, t",
		Usage: "the `<file>` path of a json template describing the utxo vins and vouts",
	}

	// Tools flags
	MessageFlag = cli.StringFlag{
		Name:  "message, m",
		Usage: "the message content to sign or verify",
	}
	SignatureFlag = cli.StringFlag{
		Name:  "signature, s",
		Usage: "the hex encoded signature to verify",
	}
)

// GetFlagPassword gets node's wallet password from command line or user input
func GetFlagPassword(c *cli.Context) ([]byte, error) {
	flagPassword := c.String("password")
	password := []byte(flagPassword)
	if flagPassword == "" {
		return utils.GetPassword()
	}

	return password, nil
}
