// Copyright (c) 2019-2022 The Lumachain Foundation
// Use of this source code is governed by an MIT
// license that can be found in the LICENSE file.
//

package utxo

import (
	"io"

	"github.com/lumachain/Lumachain.LUMA/common"
)

// Output creates one conditional UTXO holding CoinAmount sawi.  Every
// condition in Conds must hold to spend it; the list evaluates in
// insertion order.
type Output struct {
	CoinAmount uint64
	Conds      []Cond
}

func (o *Output) Serialize(w io.Writer) error {
	if err := common.WriteUint64(w, o.CoinAmount); err != nil {
		return err
	}
	return SerializeConds(w, o.Conds)
}

func (o *Output) Deserialize(r io.Reader) error {
	var err error
	if o.CoinAmount, err = common.ReadUint64(r); err != nil {
		return err
	}
	o.Conds, err = DeserializeConds(r, false)
	return err
}

func (o *Output) ToJSON() map[string]interface{} {
	return map[string]interface{}{
		"coinAmount": o.CoinAmount,
		"conds":      CondsToJSON(o.Conds),
	}
}
