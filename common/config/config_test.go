// Copyright (c) 2019-2022 The Lumachain Foundation
// Use of this source code is governed by an MIT
// license that can be found in the LICENSE file.
//

package config

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDefaultParams(t *testing.T) {
	params := GetDefaultParams()

	// These feed straight into consensus checks; a drift here splits
	// the network.
	assert.Equal(t, uint32(0), params.UTXOEnableHeight)
	assert.Equal(t, uint32(250), params.MaxValidHeightDiff)
	assert.Equal(t, uint32(100), params.MaxTxMemoSize)
	assert.Equal(t, uint32(100), params.MaxUTXOInCount)
	assert.Equal(t, uint32(100), params.MaxUTXOOutCount)
	assert.Equal(t, uint64(100000), params.MinTxFee)
	assert.Equal(t, []string{LUMA, LUSD}, params.FeeSymbols)

	assert.True(t, params.EnableUtxoDB)
	assert.Equal(t, uint32(100000), params.TxCacheVolume)
	assert.Equal(t, "keystore.dat", params.WalletPath)
	assert.Equal(t, DataDir, params.DataDir)
}

func TestTestNetParams(t *testing.T) {
	params := GetDefaultParams()
	testNet := params.TestNet()

	// The derivation mutates in place and hands the same object back.
	assert.Same(t, params, testNet)

	assert.Equal(t, uint32(0), testNet.UTXOEnableHeight)
	assert.Equal(t, 22334, testNet.HttpRestPort)
	assert.Equal(t, 22335, testNet.HttpWsPort)
	assert.Equal(t, uint32(22336), testNet.ProfilePort)

	// Fee policy matches the main network.
	assert.Equal(t, uint64(100000), testNet.MinTxFee)
}

func TestRegNetParams(t *testing.T) {
	regNet := GetDefaultParams().RegNet()

	assert.Equal(t, uint64(100), regNet.MinTxFee)
	assert.True(t, regNet.AutoGenerateBlocks)
	assert.Equal(t, uint32(5), regNet.GenerateBlockInterval)
	assert.Equal(t, 23334, regNet.HttpRestPort)
	assert.Equal(t, 23335, regNet.HttpWsPort)
	assert.Equal(t, uint32(23336), regNet.ProfilePort)
}

func TestConfigFileShape(t *testing.T) {
	raw := `{
		"Configuration": {
			"ActiveNet": "testnet",
			"MinTxFee": 5000,
			"FeeSymbols": ["LUMA"],
			"GenesisFunds": [
				{"PubKey": "02b3", "Symbol": "LUMA", "Amount": 1000000}
			]
		}
	}`

	cfg := Config{Configuration: GetDefaultParams()}
	assert.NoError(t, json.Unmarshal([]byte(raw), &cfg))

	assert.Equal(t, "testnet", cfg.ActiveNet)
	assert.Equal(t, uint64(5000), cfg.MinTxFee)
	assert.Equal(t, []string{"LUMA"}, cfg.FeeSymbols)

	// Fields the file omits keep their defaults.
	assert.Equal(t, uint32(250), cfg.MaxValidHeightDiff)

	if assert.Len(t, cfg.GenesisFunds, 1) {
		assert.Equal(t, "02b3", cfg.GenesisFunds[0].PubKey)
		assert.Equal(t, LUMA, cfg.GenesisFunds[0].Symbol)
		assert.Equal(t, uint64(1000000), cfg.GenesisFunds[0].Amount)
	}
}
