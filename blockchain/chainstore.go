// Copyright (c) 2019-2022 The Lumachain Foundation
// Use of this source code is governed by an MIT
// license that can be found in the LICENSE file.
//

package blockchain

import (
	"bytes"
	"errors"
	"path/filepath"
	"sync"

	"github.com/lumachain/Lumachain.LUMA/account"
	"github.com/lumachain/Lumachain.LUMA/common"
	common2 "github.com/lumachain/Lumachain.LUMA/core/types/common"
	"github.com/lumachain/Lumachain.LUMA/core/types/functions"
	"github.com/lumachain/Lumachain.LUMA/core/types/interfaces"
)

// DataEntryPrefix
type DataEntryPrefix byte

const (
	// DATA
	DATA_Transaction DataEntryPrefix = 0x01

	// STATE
	ST_Account DataEntryPrefix = 0x11
	ST_RegID   DataEntryPrefix = 0x12
	ST_Utxo    DataEntryPrefix = 0x13
	ST_Receipt DataEntryPrefix = 0x14

	// SYSTEM
	SYS_CurrentBlock DataEntryPrefix = 0x40
)

var (
	ErrDBNotFound = errors.New("leveldb: not found")

	utxoLiveValue = []byte{1}
)

// IChainStore is the read surface the validator and the servers run
// against.  Writes go through a StateBatch.
type IChainStore interface {
	GetTransaction(txID common.Uint256) (interfaces.Transaction, uint32, error)
	GetAccount(uid common2.UserID) (*account.Account, error)
	GetAccountByKeyID(keyID common.Uint160) (*account.Account, error)
	GetKeyIDByRegID(regID common2.RegID) (*common.Uint160, error)
	ContainsUTXO(txID common.Uint256, index uint16) (bool, error)
	GetTxReceipts(txID common.Uint256) ([]*common2.Receipt, error)
	GetHeight() uint32
	IsTxHashDuplicate(txID common.Uint256) bool
	NewStateBatch() *StateBatch
	Close()
}

type ChainStore struct {
	IStore

	mu                 sync.RWMutex
	currentBlockHeight uint32
}

func NewChainStore(dataDir string) (*ChainStore, error) {
	st, err := NewLevelDBStore(filepath.Join(dataDir, "chain"))
	if err != nil {
		return nil, err
	}

	c := &ChainStore{
		IStore: st,
	}
	c.currentBlockHeight, _ = c.loadBestHeight()

	return c, nil
}

func (c *ChainStore) Close() {
	if err := c.IStore.Close(); err != nil {
		return
	}
}

func transactionKey(txID common.Uint256) []byte {
	key := bytes.NewBuffer(nil)
	key.WriteByte(byte(DATA_Transaction))
	txID.Serialize(key)
	return key.Bytes()
}

func accountKey(keyID common.Uint160) []byte {
	key := bytes.NewBuffer(nil)
	key.WriteByte(byte(ST_Account))
	keyID.Serialize(key)
	return key.Bytes()
}

func regIDKey(regID common2.RegID) []byte {
	key := bytes.NewBuffer(nil)
	key.WriteByte(byte(ST_RegID))
	regID.Serialize(key)
	return key.Bytes()
}

func utxoKey(txID common.Uint256, index uint16) []byte {
	key := bytes.NewBuffer(nil)
	key.WriteByte(byte(ST_Utxo))
	txID.Serialize(key)
	common.WriteUint16(key, index)
	return key.Bytes()
}

func receiptKey(txID common.Uint256) []byte {
	key := bytes.NewBuffer(nil)
	key.WriteByte(byte(ST_Receipt))
	txID.Serialize(key)
	return key.Bytes()
}

// GetTransaction loads a persisted transaction together with the height
// it was recorded at.
func (c *ChainStore) GetTransaction(txID common.Uint256) (interfaces.Transaction, uint32, error) {
	value, err := c.Get(transactionKey(txID))
	if err != nil {
		return nil, 0, err
	}

	r := bytes.NewReader(value)
	height, err := common.ReadUint32(r)
	if err != nil {
		return nil, 0, err
	}
	tx, err := functions.GetTransactionByBytes(r)
	if err != nil {
		return nil, 0, err
	}
	if err := tx.Deserialize(r); err != nil {
		return nil, 0, err
	}

	return tx, height, nil
}

func (c *ChainStore) IsTxHashDuplicate(txID common.Uint256) bool {
	exist, err := c.Has(transactionKey(txID))
	if err != nil {
		return false
	}
	return exist
}

// GetAccount resolves a user id, either through the RegID index or the
// pubkey short hash, to its account state.
func (c *ChainStore) GetAccount(uid common2.UserID) (*account.Account, error) {
	switch {
	case uid.IsRegID():
		keyID, err := c.GetKeyIDByRegID(uid.RegID)
		if err != nil {
			return nil, err
		}
		return c.GetAccountByKeyID(*keyID)
	case uid.IsPubKey():
		return c.GetAccountByKeyID(*common.Hash160(uid.PubKey))
	default:
		return nil, errors.New("unresolvable user id")
	}
}

func (c *ChainStore) GetAccountByKeyID(keyID common.Uint160) (*account.Account, error) {
	value, err := c.Get(accountKey(keyID))
	if err != nil {
		return nil, err
	}
	acc := new(account.Account)
	if err := acc.Deserialize(bytes.NewReader(value)); err != nil {
		return nil, err
	}
	return acc, nil
}

func (c *ChainStore) GetKeyIDByRegID(regID common2.RegID) (*common.Uint160, error) {
	value, err := c.Get(regIDKey(regID))
	if err != nil {
		return nil, err
	}
	return common.Uint160FromBytes(value)
}

// ContainsUTXO reports whether the given output is still live.
func (c *ChainStore) ContainsUTXO(txID common.Uint256, index uint16) (bool, error) {
	return c.Has(utxoKey(txID, index))
}

func (c *ChainStore) GetTxReceipts(txID common.Uint256) ([]*common2.Receipt, error) {
	value, err := c.Get(receiptKey(txID))
	if err != nil {
		return nil, err
	}

	r := bytes.NewReader(value)
	count, err := common.ReadVarUint(r, 0)
	if err != nil {
		return nil, err
	}
	receipts := make([]*common2.Receipt, 0, count)
	for i := uint64(0); i < count; i++ {
		receipt := new(common2.Receipt)
		if err := receipt.Deserialize(r); err != nil {
			return nil, err
		}
		receipts = append(receipts, receipt)
	}
	return receipts, nil
}

func (c *ChainStore) GetHeight() uint32 {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return c.currentBlockHeight
}

func (c *ChainStore) setHeight(height uint32) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.currentBlockHeight = height
}

func (c *ChainStore) loadBestHeight() (uint32, error) {
	value, err := c.Get([]byte{byte(SYS_CurrentBlock)})
	if err != nil {
		return 0, err
	}
	return common.ReadUint32(bytes.NewReader(value))
}
