// Copyright (c) 2019-2022 The Lumachain Foundation
// Use of this source code is governed by an MIT
// license that can be found in the LICENSE file.
//

package mempool

import (
	"github.com/lumachain/Lumachain.LUMA/core/types/interfaces"
	"github.com/lumachain/Lumachain.LUMA/core/types/payload"
)

// strArrayTxReferences collects the refer key of every utxo input the
// transaction spends.  Transactions without utxo inputs produce no
// keys and therefore never conflict here.
func strArrayTxReferences(tx interfaces.Transaction) (interface{}, error) {
	pl, ok := tx.Payload().(*payload.CoinUTXOTransfer)
	if !ok {
		return []string{}, nil
	}

	result := make([]string, 0, len(pl.Vins))
	for i := range pl.Vins {
		result = append(result, pl.Vins[i].ReferKey())
	}
	return result, nil
}
