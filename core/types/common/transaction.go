// Copyright (c) 2019-2022 The Lumachain Foundation
// Use of this source code is governed by an MIT
// license that can be found in the LICENSE file.
//

package common

type TransactionVersion byte

const (
	TxVersionDefault TransactionVersion = 0x00
)

// TxType represents different transaction types with different payload
// format.
type TxType byte

const (
	CoinBase     TxType = 0x00
	CoinTransfer TxType = 0x02

	CoinUTXOTransfer TxType = 0x07
)

func (self TxType) Name() string {
	switch self {
	case CoinBase:
		return "CoinBase"
	case CoinTransfer:
		return "CoinTransfer"
	case CoinUTXOTransfer:
		return "CoinUTXOTransfer"
	default:
		return "Unknown"
	}
}
