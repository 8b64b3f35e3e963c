// Copyright (c) 2019-2022 The Lumachain Foundation
// Use of this source code is governed by an MIT
// license that can be found in the LICENSE file.
//

package payload

import (
	"bytes"
	"io"

	"github.com/lumachain/Lumachain.LUMA/common"
	"github.com/lumachain/Lumachain.LUMA/core/types/utxo"
)

const CoinUTXOTransferVersion byte = 0x00

// CoinUTXOTransfer spends previously created conditional UTXOs and
// creates new ones.  Every consumed and created output is denominated in
// CoinSymbol, and the net difference between the two sides settles
// against the sender's free balance.
//
// PriorUtxoTxID and PriorUtxoSecret are kept for wallets that still
// build single UTXO password spends the historical way; both may be
// empty and neither takes part in validation.
type CoinUTXOTransfer struct {
	CoinSymbol      string
	PriorUtxoTxID   common.Uint256
	PriorUtxoSecret string
	Vins            []utxo.Input
	Vouts           []utxo.Output
}

func (p *CoinUTXOTransfer) Data(version byte) []byte {
	buf := new(bytes.Buffer)
	if err := p.Serialize(buf, version); err != nil {
		return []byte{0}
	}

	return buf.Bytes()
}

func (p *CoinUTXOTransfer) Serialize(w io.Writer, version byte) error {
	if err := common.WriteVarString(w, p.CoinSymbol); err != nil {
		return err
	}
	if err := p.PriorUtxoTxID.Serialize(w); err != nil {
		return err
	}
	if err := common.WriteVarString(w, p.PriorUtxoSecret); err != nil {
		return err
	}

	if err := common.WriteVarUint(w, uint64(len(p.Vins))); err != nil {
		return err
	}
	for _, vin := range p.Vins {
		if err := vin.Serialize(w); err != nil {
			return err
		}
	}

	if err := common.WriteVarUint(w, uint64(len(p.Vouts))); err != nil {
		return err
	}
	for _, vout := range p.Vouts {
		if err := vout.Serialize(w); err != nil {
			return err
		}
	}

	return nil
}

func (p *CoinUTXOTransfer) Deserialize(r io.Reader, version byte) error {
	symbol, err := common.ReadVarString(r)
	if err != nil {
		return err
	}
	p.CoinSymbol = symbol

	if err := p.PriorUtxoTxID.Deserialize(r); err != nil {
		return err
	}

	secret, err := common.ReadVarString(r)
	if err != nil {
		return err
	}
	p.PriorUtxoSecret = secret

	vinCount, err := common.ReadVarUint(r, 0)
	if err != nil {
		return err
	}
	p.Vins = make([]utxo.Input, 0, vinCount)
	for i := uint64(0); i < vinCount; i++ {
		var vin utxo.Input
		if err := vin.Deserialize(r); err != nil {
			return err
		}
		p.Vins = append(p.Vins, vin)
	}

	voutCount, err := common.ReadVarUint(r, 0)
	if err != nil {
		return err
	}
	p.Vouts = make([]utxo.Output, 0, voutCount)
	for i := uint64(0); i < voutCount; i++ {
		var vout utxo.Output
		if err := vout.Deserialize(r); err != nil {
			return err
		}
		p.Vouts = append(p.Vouts, vout)
	}

	return nil
}

func (p *CoinUTXOTransfer) ToJSON() map[string]interface{} {
	vins := make([]map[string]interface{}, 0, len(p.Vins))
	for i := range p.Vins {
		vins = append(vins, p.Vins[i].ToJSON())
	}
	vouts := make([]map[string]interface{}, 0, len(p.Vouts))
	for i := range p.Vouts {
		vouts = append(vouts, p.Vouts[i].ToJSON())
	}
	return map[string]interface{}{
		"coinSymbol": p.CoinSymbol,
		"vins":       vins,
		"vouts":      vouts,
	}
}
