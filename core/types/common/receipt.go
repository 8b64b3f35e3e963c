// Copyright (c) 2019-2022 The Lumachain Foundation
// Use of this source code is governed by an MIT
// license that can be found in the LICENSE file.
//

package common

import (
	"io"

	"github.com/lumachain/Lumachain.LUMA/common"
)

// ReceiptCode tags what kind of balance movement a receipt records.
type ReceiptCode uint16

const (
	ReceiptCodeTransferActualCoins ReceiptCode = 1
	ReceiptCodeTransferFeeToMiner  ReceiptCode = 2
	ReceiptCodeTransferUTXOCoins   ReceiptCode = 3
)

func (c ReceiptCode) Name() string {
	switch c {
	case ReceiptCodeTransferActualCoins:
		return "TransferActualCoins"
	case ReceiptCodeTransferFeeToMiner:
		return "TransferFeeToMiner"
	case ReceiptCodeTransferUTXOCoins:
		return "TransferUTXOCoins"
	default:
		return "Unknown"
	}
}

// Receipt is the audit record of one balance movement an executed
// transaction caused.  CoinAmount is the absolute moved amount; the
// direction follows from From and To.
type Receipt struct {
	From       UserID
	To         UserID
	CoinSymbol string
	CoinAmount uint64
	Code       ReceiptCode
}

func (p *Receipt) Serialize(w io.Writer) error {
	if err := p.From.Serialize(w); err != nil {
		return err
	}
	if err := p.To.Serialize(w); err != nil {
		return err
	}
	if err := common.WriteVarString(w, p.CoinSymbol); err != nil {
		return err
	}
	if err := common.WriteUint64(w, p.CoinAmount); err != nil {
		return err
	}
	return common.WriteUint16(w, uint16(p.Code))
}

func (p *Receipt) Deserialize(r io.Reader) error {
	if err := p.From.Deserialize(r); err != nil {
		return err
	}
	if err := p.To.Deserialize(r); err != nil {
		return err
	}
	var err error
	if p.CoinSymbol, err = common.ReadVarString(r); err != nil {
		return err
	}
	if p.CoinAmount, err = common.ReadUint64(r); err != nil {
		return err
	}
	code, err := common.ReadUint16(r)
	if err != nil {
		return err
	}
	p.Code = ReceiptCode(code)
	return nil
}

// ToJSON renders the receipt for the REST and websocket surfaces.
func (p *Receipt) ToJSON() map[string]interface{} {
	return map[string]interface{}{
		"from":       p.From.String(),
		"to":         p.To.String(),
		"coinSymbol": p.CoinSymbol,
		"coinAmount": p.CoinAmount,
		"code":       p.Code.Name(),
	}
}
