// Copyright (c) 2019-2022 The Lumachain Foundation
// Use of this source code is governed by an MIT
// license that can be found in the LICENSE file.
//

package payload

import (
	"io"

	"github.com/lumachain/Lumachain.LUMA/common"
)

const (
	// MaxPayloadDataSize is the maximum allowed length of payload data.
	MaxPayloadDataSize = 1024 * 1024 // 1MB
)

const CoinBaseVersion byte = 0x00

// CoinBase carries the miner supplied extra data of a block reward
// transaction.
type CoinBase struct {
	Content []byte
}

func (p *CoinBase) Data(version byte) []byte {
	return p.Content
}

func (p *CoinBase) Serialize(w io.Writer, version byte) error {
	return common.WriteVarBytes(w, p.Content)
}

func (p *CoinBase) Deserialize(r io.Reader, version byte) error {
	temp, err := common.ReadVarBytes(r, MaxPayloadDataSize,
		"payload coinbase data")
	p.Content = temp
	return err
}

func (p *CoinBase) ToJSON() map[string]interface{} {
	return map[string]interface{}{
		"content": common.BytesToHexString(p.Content),
	}
}
