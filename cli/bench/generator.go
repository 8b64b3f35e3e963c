// Copyright (c) 2019-2022 The Lumachain Foundation
// Use of this source code is governed by an MIT
// license that can be found in the LICENSE file.
//

package bench

import (
	"bytes"
	"crypto/rand"
	"io"
	mrand "math/rand"

	"github.com/lumachain/Lumachain.LUMA/common"
	"github.com/lumachain/Lumachain.LUMA/common/config"
	common2 "github.com/lumachain/Lumachain.LUMA/core/types/common"
	"github.com/lumachain/Lumachain.LUMA/core/types/functions"
	"github.com/lumachain/Lumachain.LUMA/core/types/interfaces"
	"github.com/lumachain/Lumachain.LUMA/core/types/payload"
	"github.com/lumachain/Lumachain.LUMA/core/types/utxo"
	"github.com/lumachain/Lumachain.LUMA/crypto"
)

// Generator builds one synthetic transaction per call, signed and
// ready for the measurement loop.
type Generator interface {
	Generate() (interfaces.Transaction, error)
}

func NewGenerator(txType common2.TxType) (Generator, error) {
	privKey, pubKey, err := crypto.GenerateKeyPair()
	if err != nil {
		return nil, err
	}
	pubKeyBytes, err := pubKey.EncodePoint(true)
	if err != nil {
		return nil, err
	}

	base := baseGenerator{
		privKey: privKey,
		txUid:   common2.NewPubKeyUid(pubKeyBytes),
	}
	switch txType {
	case common2.CoinTransfer:
		return &coinTransferGenerator{baseGenerator: base}, nil
	case common2.CoinUTXOTransfer:
		return &coinUTXOTransferGenerator{baseGenerator: base}, nil
	default:
		return nil, nil
	}
}

type baseGenerator struct {
	privKey []byte
	txUid   common2.UserID
}

func (g *baseGenerator) finish(txType common2.TxType, payloadVersion byte,
	pload interfaces.Payload) (interfaces.Transaction, error) {

	txn := functions.CreateTransaction(
		common2.TxVersionDefault,
		txType,
		payloadVersion,
		pload,
		g.txUid,
		config.LUMA,
		config.GetDefaultParams().MinTxFee,
		uint32(mrand.Intn(1000)+1),
		nil,
	)

	buf := new(bytes.Buffer)
	if err := txn.SerializeUnsigned(buf); err != nil {
		return nil, err
	}
	signature, err := crypto.Sign(g.privKey, buf.Bytes())
	if err != nil {
		return nil, err
	}
	txn.SetSignature(signature)
	return txn, nil
}

type coinTransferGenerator struct {
	baseGenerator
}

func (g *coinTransferGenerator) Generate() (interfaces.Transaction, error) {
	return g.finish(common2.CoinTransfer, payload.CoinTransferVersion,
		&payload.CoinTransfer{
			ToUid:      g.txUid,
			CoinSymbol: config.LUMA,
			CoinAmount: uint64(mrand.Intn(100000000) + 1),
		})
}

type coinUTXOTransferGenerator struct {
	baseGenerator
}

// Generate produces a conditional transfer touching every condition
// kind: a password proven vin, and vouts locked by P2SA, P2PH, a
// claim lock and a reclaim lock.
func (g *coinUTXOTransferGenerator) Generate() (interfaces.Transaction, error) {
	p := &payload.CoinUTXOTransfer{
		CoinSymbol: config.LUMA,
		Vins: []utxo.Input{
			{
				PrevUtxoTxID:     randomHash(),
				PrevUtxoOutIndex: uint16(mrand.Intn(100)),
				Conds: []utxo.Cond{
					&utxo.PasswordHashLockCondIn{Password: "bench secret"},
				},
			},
		},
		Vouts: []utxo.Output{
			{
				CoinAmount: uint64(mrand.Intn(100000000) + 1),
				Conds: []utxo.Cond{
					&utxo.SingleAddressCondOut{Uid: g.txUid},
					&utxo.ClaimLockCondOut{Height: uint64(mrand.Intn(1000) + 1)},
				},
			},
			{
				CoinAmount: uint64(mrand.Intn(100000000) + 1),
				Conds: []utxo.Cond{
					&utxo.PasswordHashLockCondOut{
						PasswordHash: utxo.HashLock("bench secret", g.txUid.String()),
					},
					&utxo.ReClaimLockCondOut{Height: uint64(mrand.Intn(1000) + 1)},
				},
			},
		},
	}
	return g.finish(common2.CoinUTXOTransfer, payload.CoinUTXOTransferVersion, p)
}

func randomHash() common.Uint256 {
	var hash common.Uint256
	io.ReadFull(rand.Reader, hash[:])
	return hash
}
