// Copyright (c) 2019-2022 The Lumachain Foundation
// Use of this source code is governed by an MIT
// license that can be found in the LICENSE file.
//

package bench

import (
	"bytes"
	"errors"
	"fmt"
	"time"

	cmdcom "github.com/lumachain/Lumachain.LUMA/cli/common"
	common2 "github.com/lumachain/Lumachain.LUMA/core/types/common"
	"github.com/lumachain/Lumachain.LUMA/core/types/functions"
	"github.com/lumachain/Lumachain.LUMA/core/types/interfaces"
	"github.com/lumachain/Lumachain.LUMA/crypto"
	"github.com/lumachain/Lumachain.LUMA/utils"

	"github.com/urfave/cli"
	pb "gopkg.in/cheggaaa/pb.v1"
)

func benchAction(c *cli.Context) error {
	count := c.Int("count")
	if count <= 0 {
		return errors.New("use --count to specify how many transactions to run")
	}

	if port := c.Uint("profile"); port != 0 {
		go utils.StartPProf(uint32(port), "")
	}

	txType := common2.CoinUTXOTransfer
	if c.String("type") == "transfer" {
		txType = common2.CoinTransfer
	}
	generator, err := NewGenerator(txType)
	if err != nil {
		return err
	}

	fmt.Printf("generating %d %s transactions\n", count, txType.Name())
	txns := make([]interfaces.Transaction, 0, count)
	bar := pb.StartNew(count)
	start := time.Now()
	for i := 0; i < count; i++ {
		txn, err := generator.Generate()
		if err != nil {
			return err
		}
		txns = append(txns, txn)
		bar.Increment()
	}
	bar.Finish()
	report("generate and sign", count, time.Since(start))

	fmt.Println("running payload checks and signature verification")
	bar = pb.StartNew(count)
	start = time.Now()
	for _, txn := range txns {
		if err := txn.CheckTransactionPayload(); err != nil {
			return err
		}
		if err := verifySignature(txn); err != nil {
			return err
		}
		bar.Increment()
	}
	bar.Finish()
	report("check", count, time.Since(start))

	fmt.Println("running serialize and deserialize round trips")
	bar = pb.StartNew(count)
	start = time.Now()
	for _, txn := range txns {
		buf := new(bytes.Buffer)
		if err := txn.Serialize(buf); err != nil {
			return err
		}
		r := bytes.NewReader(buf.Bytes())
		decoded, err := functions.GetTransactionByBytes(r)
		if err != nil {
			return err
		}
		if err := decoded.Deserialize(r); err != nil {
			return err
		}
		bar.Increment()
	}
	bar.Finish()
	report("codec round trip", count, time.Since(start))

	return nil
}

func verifySignature(txn interfaces.Transaction) error {
	txUid := txn.TxUid()
	pubKey, err := crypto.DecodePoint(txUid.PubKey)
	if err != nil {
		return err
	}
	buf := new(bytes.Buffer)
	if err := txn.SerializeUnsigned(buf); err != nil {
		return err
	}
	return crypto.Verify(*pubKey, buf.Bytes(), txn.Signature())
}

func report(phase string, count int, elapsed time.Duration) {
	perSec := float64(count) / elapsed.Seconds()
	fmt.Printf("%s: %d transactions in %s, %.0f tx/s\n",
		phase, count, elapsed.Round(time.Millisecond), perSec)
}

func NewCommand() *cli.Command {
	return &cli.Command{
		Name:        "bench",
		Usage:       "Measure local transaction throughput",
		Description: "Builds synthetic transactions and measures build, check and codec rates.",
		ArgsUsage:   "[args]",
		Flags: []cli.Flag{
			cli.IntFlag{
				Name:  "count, c",
				Usage: "how many transactions to run",
				Value: 10000,
			},
			cli.StringFlag{
				Name:  "type, t",
				Usage: "transaction kind to bench: utxo or transfer",
				Value: "utxo",
			},
			cli.UintFlag{
				Name:  "profile",
				Usage: "start the profiling server on this `<port>` while the bench runs",
			},
		},
		Action: benchAction,
		OnUsageError: func(c *cli.Context, err error, isSubcommand bool) error {
			cmdcom.PrintError(c, err, "bench")
			return cli.NewExitError("", 1)
		},
	}
}
