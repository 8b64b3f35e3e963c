// Copyright (c) 2019-2022 The Lumachain Foundation
// Use of this source code is governed by an MIT
// license that can be found in the LICENSE file.
//

package blockchain_test

import (
	"testing"

	"github.com/lumachain/Lumachain.LUMA/blockchain"
	"github.com/lumachain/Lumachain.LUMA/common/config"
	common2 "github.com/lumachain/Lumachain.LUMA/core/types/common"

	"github.com/stretchr/testify/assert"
)

func TestGetTxMinFee(t *testing.T) {
	params := config.GetDefaultParams()

	fee, err := blockchain.GetTxMinFee(params, common2.CoinUTXOTransfer,
		1, config.LUMA)
	assert.NoError(t, err)
	assert.Equal(t, params.MinTxFee, fee)

	fee, err = blockchain.GetTxMinFee(params, common2.CoinTransfer,
		1, config.LUSD)
	assert.NoError(t, err)
	assert.Equal(t, params.MinTxFee, fee)

	// block rewards ride for free
	fee, err = blockchain.GetTxMinFee(params, common2.CoinBase,
		1, config.LUMA)
	assert.NoError(t, err)
	assert.Equal(t, uint64(0), fee)

	_, err = blockchain.GetTxMinFee(params, common2.CoinUTXOTransfer,
		1, "DOGE")
	assert.EqualError(t, err, "fee symbol DOGE is not registered")
}
