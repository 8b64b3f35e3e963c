// Copyright (c) 2019-2022 The Lumachain Foundation
// Use of this source code is governed by an MIT
// license that can be found in the LICENSE file.
//

package blockchain

import (
	"fmt"

	"github.com/lumachain/Lumachain.LUMA/common/config"
	common2 "github.com/lumachain/Lumachain.LUMA/core/types/common"
)

// GetTxMinFee looks up the minimum miner fee unit for a transaction
// type at the given height.  The height argument anchors a future fee
// schedule, today every era shares one floor.  An unregistered fee
// symbol is an error, fees are payable in listed coins only.
func GetTxMinFee(params *config.Configuration, txType common2.TxType,
	height uint32, feeSymbol string) (uint64, error) {

	registered := false
	for _, symbol := range params.FeeSymbols {
		if symbol == feeSymbol {
			registered = true
			break
		}
	}
	if !registered {
		return 0, fmt.Errorf("fee symbol %s is not registered", feeSymbol)
	}

	switch txType {
	case common2.CoinBase:
		return 0, nil
	default:
		return params.MinTxFee, nil
	}
}
