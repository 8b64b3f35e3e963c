// Copyright (c) 2019-2022 The Lumachain Foundation
// Use of this source code is governed by an MIT
// license that can be found in the LICENSE file.
//

package wallet

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/lumachain/Lumachain.LUMA/account"
	cmdcom "github.com/lumachain/Lumachain.LUMA/cli/common"
	"github.com/lumachain/Lumachain.LUMA/common"
	"github.com/lumachain/Lumachain.LUMA/common/config"
	common2 "github.com/lumachain/Lumachain.LUMA/core/types/common"
	"github.com/lumachain/Lumachain.LUMA/core/types/functions"
	"github.com/lumachain/Lumachain.LUMA/core/types/interfaces"
	"github.com/lumachain/Lumachain.LUMA/core/types/payload"

	"github.com/urfave/cli"
)

var txCommand = []cli.Command{
	{
		Category:    "Transaction",
		Name:        "buildtx",
		Usage:       "Build a transaction",
		Description: "use --to --amount --fee to create a coin transfer, or --template to create a conditional utxo transfer",
		Flags: []cli.Flag{
			cmdcom.TransactionFromFlag,
			cmdcom.TransactionToFlag,
			cmdcom.TransactionAmountFlag,
			cmdcom.TransactionFeeFlag,
			cmdcom.TransactionSymbolFlag,
			cmdcom.TransactionValidHeightFlag,
			cmdcom.TransactionMemoFlag,
			cmdcom.TransactionTemplateFlag,
			cmdcom.AccountWalletFlag,
		},
		Action: buildTx,
	},
	{
		Category:    "Transaction",
		Name:        "signtx",
		Usage:       "Sign a transaction",
		Description: "use --file or --hex to specify the transaction file path or content",
		Flags: []cli.Flag{
			cmdcom.TransactionHexFlag,
			cmdcom.TransactionFileFlag,
			cmdcom.AccountWalletFlag,
			cmdcom.AccountPasswordFlag,
		},
		Action: signTx,
	},
	{
		Category:    "Transaction",
		Name:        "sendtx",
		Usage:       "Send a transaction",
		Description: "use --file or --hex to specify the transaction file path or content",
		Flags: []cli.Flag{
			cmdcom.TransactionHexFlag,
			cmdcom.TransactionFileFlag,
		},
		Action: sendTx,
	},
	{
		Category: "Transaction",
		Name:     "showtx",
		Usage:    "Show info of raw transaction",
		Flags: []cli.Flag{
			cmdcom.TransactionHexFlag,
			cmdcom.TransactionFileFlag,
		},
		Action: showTx,
	},
}

func getTransactionHex(c *cli.Context) (string, error) {
	if filePath := strings.TrimSpace(c.String("file")); filePath != "" {
		return cmdcom.ReadFile(filePath)
	}

	content := strings.TrimSpace(c.String("hex"))
	if content == "" {
		return "", errors.New("transaction hex string is empty")
	}

	return content, nil
}

func buildTx(c *cli.Context) error {
	if c.NumFlags() == 0 {
		cli.ShowSubcommandHelp(c)
		return nil
	}
	if err := CreateTransaction(c); err != nil {
		fmt.Println("error:", err)
		os.Exit(1)
	}
	return nil
}

// CreateTransaction builds an unsigned transaction from the command
// line: a plain coin transfer when --to is given, a conditional utxo
// transfer when a json template file is given.
func CreateTransaction(c *cli.Context) error {
	txUid, err := senderUid(c)
	if err != nil {
		return err
	}

	if templatePath := strings.TrimSpace(c.String("template")); templatePath != "" {
		content, err := cmdcom.ReadFile(templatePath)
		if err != nil {
			return err
		}
		txn, err := buildFromTemplate(txUid, content)
		if err != nil {
			return err
		}
		return output(txn)
	}

	toUid, err := common2.UidFromString(c.String("to"))
	if err != nil {
		return err
	}
	if toUid.IsEmpty() {
		return errors.New("use --to to specify the recipient")
	}
	amount := c.Uint64("amount")
	if amount == 0 {
		return errors.New("use --amount to specify the transfer amount")
	}
	symbol := c.String("symbol")

	p := &payload.CoinTransfer{
		ToUid:      toUid,
		CoinSymbol: symbol,
		CoinAmount: amount,
	}
	txn := functions.CreateTransaction(
		common2.TxVersionDefault,
		common2.CoinTransfer,
		payload.CoinTransferVersion,
		p,
		txUid,
		config.LUMA,
		c.Uint64("fee"),
		uint32(c.Uint("validheight")),
		[]byte(c.String("memo")),
	)

	return output(txn)
}

// senderUid resolves the transaction uid: --from wins, otherwise the
// wallet file's public key.  Reading the uid does not need the wallet
// password, the keystore keeps the public key in the clear.
func senderUid(c *cli.Context) (common2.UserID, error) {
	if from := strings.TrimSpace(c.String("from")); from != "" {
		return common2.UidFromString(from)
	}

	file, err := account.LoadKeystoreFile(c.String("wallet"))
	if err != nil {
		return common2.UserID{}, err
	}
	pubKey, err := common.HexStringToBytes(file.PubKey)
	if err != nil {
		return common2.UserID{}, err
	}
	return common2.NewPubKeyUid(pubKey), nil
}

func signTx(c *cli.Context) error {
	if c.NumFlags() == 0 {
		cli.ShowSubcommandHelp(c)
		return nil
	}
	walletPath := c.String("wallet")
	password, err := cmdcom.GetFlagPassword(c)
	if err != nil {
		return err
	}

	client, err := account.Open(walletPath, password)
	if err != nil {
		return err
	}

	txn, err := readTransaction(c)
	if err != nil {
		return err
	}
	if len(txn.Signature()) != 0 {
		return errors.New("transaction was already signed")
	}

	if err := client.Sign(txn); err != nil {
		return err
	}
	fmt.Println("transaction was successfully signed")

	return output(txn)
}

func sendTx(c *cli.Context) error {
	if c.NumFlags() == 0 {
		cli.ShowSubcommandHelp(c)
		return nil
	}

	txHex, err := getTransactionHex(c)
	if err != nil {
		return err
	}

	result, err := cmdcom.SendRawTransaction(txHex)
	if err != nil {
		return err
	}
	fmt.Println(result)

	return nil
}

func showTx(c *cli.Context) error {
	if c.NumFlags() == 0 {
		cli.ShowSubcommandHelp(c)
		return nil
	}

	txn, err := readTransaction(c)
	if err != nil {
		return err
	}

	data, err := json.Marshal(txn.ToJSON())
	if err != nil {
		return err
	}
	return cmdcom.FormatOutput(data)
}

func readTransaction(c *cli.Context) (interfaces.Transaction, error) {
	txHex, err := getTransactionHex(c)
	if err != nil {
		return nil, err
	}
	rawData, err := common.HexStringToBytes(txHex)
	if err != nil {
		return nil, errors.New("decode transaction content failed")
	}

	r := bytes.NewReader(rawData)
	txn, err := functions.GetTransactionByBytes(r)
	if err != nil {
		return nil, errors.New("invalid transaction")
	}
	if err := txn.Deserialize(r); err != nil {
		return nil, errors.New("deserialize transaction failed")
	}
	return txn, nil
}

// output prints the transaction hex and drops it into a file, named
// by whether it still needs a signature.
func output(txn interfaces.Transaction) error {
	buf := new(bytes.Buffer)
	if err := txn.Serialize(buf); err != nil {
		return err
	}
	content := common.BytesToHexString(buf.Bytes())
	fmt.Println(content)

	fileName := "to_be_signed"
	if len(txn.Signature()) != 0 {
		fileName = "ready_to_send"
	}
	fileName = fileName + ".txn"

	file, err := os.OpenFile(fileName, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0666)
	if err != nil {
		return err
	}
	defer file.Close()
	if _, err = file.WriteString(content); err != nil {
		return err
	}

	fmt.Println("File: ", fileName)
	return nil
}
