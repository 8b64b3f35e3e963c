// Copyright (c) 2019-2022 The Lumachain Foundation
// Use of this source code is governed by an MIT
// license that can be found in the LICENSE file.
//

package utxo

import (
	"io"

	common2 "github.com/lumachain/Lumachain.LUMA/core/types/common"
)

// SingleAddressCondOut locks an output to one identity; only that
// identity may spend it.  Spending needs no input-side proof beyond
// the transaction's own signed sender.
type SingleAddressCondOut struct {
	Uid common2.UserID
}

func (c *SingleAddressCondOut) CondType() CondType {
	return P2SA
}

func (c *SingleAddressCondOut) IsInput() bool {
	return false
}

func (c *SingleAddressCondOut) Serialize(w io.Writer) error {
	return c.Uid.Serialize(w)
}

func (c *SingleAddressCondOut) Deserialize(r io.Reader) error {
	return c.Uid.Deserialize(r)
}

func (c *SingleAddressCondOut) ToJSON() map[string]interface{} {
	return map[string]interface{}{
		"condType": P2SA.Name(),
		"uid":      c.Uid.String(),
	}
}
