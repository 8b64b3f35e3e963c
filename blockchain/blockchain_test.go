// Copyright (c) 2019-2022 The Lumachain Foundation
// Use of this source code is governed by an MIT
// license that can be found in the LICENSE file.
//

package blockchain_test

import (
	"bytes"
	"math"
	"testing"

	"github.com/lumachain/Lumachain.LUMA/blockchain"
	"github.com/lumachain/Lumachain.LUMA/common"
	"github.com/lumachain/Lumachain.LUMA/common/config"
	common2 "github.com/lumachain/Lumachain.LUMA/core/types/common"

	"github.com/stretchr/testify/assert"
)

func TestInitGenesisSeedsFunds(t *testing.T) {
	keyA, uidA := newTestKey(t)
	keyB, uidB := newTestKey(t)
	hexA := common.BytesToHexString(keyA)
	hexB := common.BytesToHexString(keyB)

	params := *config.GetDefaultParams()
	params.GenesisFunds = []config.GenesisFund{
		{PubKey: hexA, Symbol: config.LUMA, Amount: 1000000},
		{PubKey: hexA, Symbol: config.LUSD, Amount: 500},
		{PubKey: hexB, Symbol: config.LUMA, Amount: 42},
	}

	store, err := blockchain.NewChainStore(t.TempDir())
	assert.NoError(t, err)
	defer store.Close()

	chain, err := blockchain.New(store, &params)
	assert.NoError(t, err)

	accA, err := chain.GetAccount(uidA)
	assert.NoError(t, err)
	assert.Equal(t, uint64(1000000), accA.GetFreeBalance(config.LUMA))
	assert.Equal(t, uint64(500), accA.GetFreeBalance(config.LUSD))
	assert.False(t, accA.IsRegistered())

	accB, err := chain.GetAccount(uidB)
	assert.NoError(t, err)
	assert.Equal(t, uint64(42), accB.GetFreeBalance(config.LUMA))

	// rebooting over the same store must not credit twice
	_, err = blockchain.New(store, &params)
	assert.NoError(t, err)
	accA, err = store.GetAccount(uidA)
	assert.NoError(t, err)
	assert.Equal(t, uint64(1000000), accA.GetFreeBalance(config.LUMA))
}

func TestInitGenesisRejectsBadKeys(t *testing.T) {
	params := *config.GetDefaultParams()
	params.GenesisFunds = []config.GenesisFund{
		{PubKey: "zz", Symbol: config.LUMA, Amount: 1},
	}

	store, err := blockchain.NewChainStore(t.TempDir())
	assert.NoError(t, err)
	defer store.Close()

	_, err = blockchain.New(store, &params)
	assert.EqualError(t, err, "invalid genesis fund public key zz")

	offCurve := common.BytesToHexString(bytes.Repeat([]byte{0x05}, 33))
	params.GenesisFunds = []config.GenesisFund{
		{PubKey: offCurve, Symbol: config.LUMA, Amount: 1},
	}
	_, err = blockchain.New(store, &params)
	assert.EqualError(t, err,
		"genesis fund public key not on curve "+offCurve)
}

func TestInitGenesisRejectsOverflow(t *testing.T) {
	key, _ := newTestKey(t)
	hex := common.BytesToHexString(key)

	params := *config.GetDefaultParams()
	params.GenesisFunds = []config.GenesisFund{
		{PubKey: hex, Symbol: config.LUMA, Amount: math.MaxUint64},
		{PubKey: hex, Symbol: config.LUMA, Amount: 1},
	}

	store, err := blockchain.NewChainStore(t.TempDir())
	assert.NoError(t, err)
	defer store.Close()

	_, err = blockchain.New(store, &params)
	assert.EqualError(t, err, "genesis fund overflows "+config.LUMA)
}

func TestInitGenesisEmpty(t *testing.T) {
	store, err := blockchain.NewChainStore(t.TempDir())
	assert.NoError(t, err)
	defer store.Close()

	chain, err := blockchain.New(store, config.GetDefaultParams())
	assert.NoError(t, err)
	assert.Equal(t, uint32(0), chain.GetHeight())

	_, err = chain.GetAccount(common2.NewRegIDUid(common2.RegID{Height: 1}))
	assert.Error(t, err)
}
