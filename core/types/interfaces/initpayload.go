// Copyright (c) 2019-2022 The Lumachain Foundation
// Use of this source code is governed by an MIT
// license that can be found in the LICENSE file.
//

package interfaces

import (
	"errors"

	common "github.com/lumachain/Lumachain.LUMA/core/types/common"
	"github.com/lumachain/Lumachain.LUMA/core/types/payload"
)

func GetPayload(txType common.TxType, payloadVersion byte) (Payload, error) {
	var p Payload
	switch txType {
	case common.CoinBase:
		p = new(payload.CoinBase)
	case common.CoinTransfer:
		p = new(payload.CoinTransfer)
	case common.CoinUTXOTransfer:
		p = new(payload.CoinUTXOTransfer)
	default:
		return nil, errors.New("[Transaction], invalid transaction type.")
	}
	return p, nil
}
