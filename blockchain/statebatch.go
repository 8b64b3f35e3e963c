// Copyright (c) 2019-2022 The Lumachain Foundation
// Use of this source code is governed by an MIT
// license that can be found in the LICENSE file.
//

package blockchain

import (
	"bytes"
	"errors"

	"github.com/lumachain/Lumachain.LUMA/account"
	"github.com/lumachain/Lumachain.LUMA/common"
	common2 "github.com/lumachain/Lumachain.LUMA/core/types/common"
	"github.com/lumachain/Lumachain.LUMA/core/types/interfaces"
)

type txEntry struct {
	tx     interfaces.Transaction
	height uint32
}

// StateBatch is an uncommitted overlay over the chain store.  All reads
// see the overlay first, so state written earlier inside the same block
// application is visible to later transactions.  Commit flushes the
// overlay atomically through a leveldb batch, Rollback throws it away.
type StateBatch struct {
	store *ChainStore

	txs      map[common.Uint256]txEntry
	accounts map[common.Uint160]*account.Account
	regIDs   map[common2.RegID]common.Uint160
	utxoAdd  map[string]struct{}
	utxoDel  map[string]struct{}
	receipts map[common.Uint256][]*common2.Receipt

	height    uint32
	setHeight bool
}

func (c *ChainStore) NewStateBatch() *StateBatch {
	return &StateBatch{
		store:    c,
		txs:      make(map[common.Uint256]txEntry),
		accounts: make(map[common.Uint160]*account.Account),
		regIDs:   make(map[common2.RegID]common.Uint160),
		utxoAdd:  make(map[string]struct{}),
		utxoDel:  make(map[string]struct{}),
		receipts: make(map[common.Uint256][]*common2.Receipt),
	}
}

func utxoRef(txID common.Uint256, index uint16) string {
	return string(utxoKey(txID, index))
}

// GetAccount resolves a user id against the overlay, falling back to
// the store.  The returned account is private to the caller until it is
// handed back through SaveAccount.
func (s *StateBatch) GetAccount(uid common2.UserID) (*account.Account, error) {
	switch {
	case uid.IsRegID():
		keyID, ok := s.regIDs[uid.RegID]
		if !ok {
			stored, err := s.store.GetKeyIDByRegID(uid.RegID)
			if err != nil {
				return nil, err
			}
			keyID = *stored
		}
		return s.getAccountByKeyID(keyID)
	case uid.IsPubKey():
		return s.getAccountByKeyID(*common.Hash160(uid.PubKey))
	default:
		return nil, errors.New("unresolvable user id")
	}
}

func (s *StateBatch) getAccountByKeyID(keyID common.Uint160) (*account.Account, error) {
	if acc, ok := s.accounts[keyID]; ok {
		return copyAccount(acc), nil
	}
	acc, err := s.store.GetAccountByKeyID(keyID)
	if err != nil {
		return nil, err
	}
	return acc, nil
}

// SaveAccount stages the account state, together with its RegID index
// entry once the account is registered.
func (s *StateBatch) SaveAccount(acc *account.Account) error {
	if acc == nil {
		return errors.New("nil account")
	}
	s.accounts[acc.KeyID] = copyAccount(acc)
	if acc.IsRegistered() {
		s.regIDs[acc.RegID] = acc.KeyID
	}
	return nil
}

// ContainsUTXO answers liveness with read-your-writes semantics.
func (s *StateBatch) ContainsUTXO(txID common.Uint256, index uint16) (bool, error) {
	ref := utxoRef(txID, index)
	if _, ok := s.utxoDel[ref]; ok {
		return false, nil
	}
	if _, ok := s.utxoAdd[ref]; ok {
		return true, nil
	}
	return s.store.ContainsUTXO(txID, index)
}

// DelUTXO retires a live output.  Deleting an output that is not live
// is an error, the spent check belongs to the caller.
func (s *StateBatch) DelUTXO(txID common.Uint256, index uint16) error {
	ref := utxoRef(txID, index)
	if _, ok := s.utxoDel[ref]; ok {
		return errors.New("utxo already deleted in batch")
	}
	delete(s.utxoAdd, ref)
	s.utxoDel[ref] = struct{}{}
	return nil
}

// AddUTXO marks a newly created output live.
func (s *StateBatch) AddUTXO(txID common.Uint256, index uint16) error {
	ref := utxoRef(txID, index)
	delete(s.utxoDel, ref)
	s.utxoAdd[ref] = struct{}{}
	return nil
}

// PutTransaction stages the raw transaction under the height it is
// being recorded at.
func (s *StateBatch) PutTransaction(tx interfaces.Transaction, height uint32) error {
	if tx == nil {
		return errors.New("nil transaction")
	}
	s.txs[tx.Hash()] = txEntry{tx: tx, height: height}
	return nil
}

// GetTransaction reads through the overlay so inputs may refer to
// transactions recorded earlier in the same block.
func (s *StateBatch) GetTransaction(txID common.Uint256) (interfaces.Transaction, uint32, error) {
	if entry, ok := s.txs[txID]; ok {
		return entry.tx, entry.height, nil
	}
	return s.store.GetTransaction(txID)
}

func (s *StateBatch) SetTxReceipts(txID common.Uint256, receipts []*common2.Receipt) error {
	s.receipts[txID] = receipts
	return nil
}

func (s *StateBatch) SetBestHeight(height uint32) {
	s.height = height
	s.setHeight = true
}

// Commit writes the whole overlay in one leveldb batch.
func (s *StateBatch) Commit() error {
	s.store.NewBatch()

	for hash, entry := range s.txs {
		buf := new(bytes.Buffer)
		if err := common.WriteUint32(buf, entry.height); err != nil {
			return err
		}
		if err := entry.tx.Serialize(buf); err != nil {
			return err
		}
		s.store.BatchPut(transactionKey(hash), buf.Bytes())
	}

	for keyID, acc := range s.accounts {
		buf := new(bytes.Buffer)
		if err := acc.Serialize(buf); err != nil {
			return err
		}
		s.store.BatchPut(accountKey(keyID), buf.Bytes())
	}

	for regID, keyID := range s.regIDs {
		s.store.BatchPut(regIDKey(regID), keyID.Bytes())
	}

	for ref := range s.utxoAdd {
		s.store.BatchPut([]byte(ref), utxoLiveValue)
	}
	for ref := range s.utxoDel {
		s.store.BatchDelete([]byte(ref))
	}

	for hash, receipts := range s.receipts {
		buf := new(bytes.Buffer)
		if err := common.WriteVarUint(buf, uint64(len(receipts))); err != nil {
			return err
		}
		for _, receipt := range receipts {
			if err := receipt.Serialize(buf); err != nil {
				return err
			}
		}
		s.store.BatchPut(receiptKey(hash), buf.Bytes())
	}

	if s.setHeight {
		buf := new(bytes.Buffer)
		if err := common.WriteUint32(buf, s.height); err != nil {
			return err
		}
		s.store.BatchPut([]byte{byte(SYS_CurrentBlock)}, buf.Bytes())
	}

	if err := s.store.BatchCommit(); err != nil {
		return err
	}
	if s.setHeight {
		s.store.setHeight(s.height)
	}
	s.Rollback()
	return nil
}

// Rollback discards everything staged in the overlay.
func (s *StateBatch) Rollback() {
	s.txs = make(map[common.Uint256]txEntry)
	s.accounts = make(map[common.Uint160]*account.Account)
	s.regIDs = make(map[common2.RegID]common.Uint160)
	s.utxoAdd = make(map[string]struct{})
	s.utxoDel = make(map[string]struct{})
	s.receipts = make(map[common.Uint256][]*common2.Receipt)
	s.setHeight = false
}

func copyAccount(acc *account.Account) *account.Account {
	balances := make(map[string]uint64, len(acc.Balances))
	for symbol, amount := range acc.Balances {
		balances[symbol] = amount
	}
	ownerPubKey := make([]byte, len(acc.OwnerPubKey))
	copy(ownerPubKey, acc.OwnerPubKey)

	return &account.Account{
		KeyID:       acc.KeyID,
		RegID:       acc.RegID,
		OwnerPubKey: ownerPubKey,
		Balances:    balances,
	}
}
