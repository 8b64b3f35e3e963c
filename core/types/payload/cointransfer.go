// Copyright (c) 2019-2022 The Lumachain Foundation
// Use of this source code is governed by an MIT
// license that can be found in the LICENSE file.
//

package payload

import (
	"bytes"
	"io"

	"github.com/lumachain/Lumachain.LUMA/common"
	common2 "github.com/lumachain/Lumachain.LUMA/core/types/common"
)

const CoinTransferVersion byte = 0x00

// CoinTransfer moves free balance from the sending account directly to
// another account, without touching the UTXO set.
type CoinTransfer struct {
	ToUid      common2.UserID
	CoinSymbol string
	CoinAmount uint64
}

func (p *CoinTransfer) Data(version byte) []byte {
	buf := new(bytes.Buffer)
	if err := p.Serialize(buf, version); err != nil {
		return []byte{0}
	}

	return buf.Bytes()
}

func (p *CoinTransfer) Serialize(w io.Writer, version byte) error {
	if err := p.ToUid.Serialize(w); err != nil {
		return err
	}
	if err := common.WriteVarString(w, p.CoinSymbol); err != nil {
		return err
	}
	return common.WriteUint64(w, p.CoinAmount)
}

func (p *CoinTransfer) Deserialize(r io.Reader, version byte) error {
	if err := p.ToUid.Deserialize(r); err != nil {
		return err
	}
	symbol, err := common.ReadVarString(r)
	if err != nil {
		return err
	}
	p.CoinSymbol = symbol

	p.CoinAmount, err = common.ReadUint64(r)
	return err
}

func (p *CoinTransfer) ToJSON() map[string]interface{} {
	return map[string]interface{}{
		"toUid":      p.ToUid.String(),
		"coinSymbol": p.CoinSymbol,
		"coinAmount": p.CoinAmount,
	}
}
