// Copyright (c) 2019-2022 The Lumachain Foundation
// Use of this source code is governed by an MIT
// license that can be found in the LICENSE file.
//

package mempool

import (
	"errors"
	"fmt"

	"github.com/lumachain/Lumachain.LUMA/common"
	common2 "github.com/lumachain/Lumachain.LUMA/core/types/common"
	"github.com/lumachain/Lumachain.LUMA/core/types/interfaces"
)

// keyType tells a conflict slot what kind of key its getKeyFunc
// produces.
type keyType byte

const (
	str keyType = iota
	hash
	strArray
	hashArray
)

// allType in a keyTypeFuncPair matches every transaction type.
const allType common2.TxType = 0xff

// getKeyFunc extracts the conflict key (or key slice) of one
// transaction.
type getKeyFunc func(interfaces.Transaction) (interface{}, error)

type keyTypeFuncPair struct {
	Type common2.TxType
	Func getKeyFunc
}

// conflictSlot hold a set of transactions keyed by one competing aspect
// of theirs.  Two transactions producing the same key cannot coexist in
// the pool.
type conflictSlot struct {
	keyType       keyType
	conflictTypes map[common2.TxType]getKeyFunc
	stringSet     map[string]interfaces.Transaction
	hashSet       map[common.Uint256]interfaces.Transaction
}

func newConflictSlot(t keyType, conflictTypes ...keyTypeFuncPair) *conflictSlot {
	ts := make(map[common2.TxType]getKeyFunc)
	for _, v := range conflictTypes {
		ts[v.Type] = v.Func
	}

	return &conflictSlot{
		keyType:       t,
		conflictTypes: ts,
		stringSet:     make(map[string]interfaces.Transaction),
		hashSet:       make(map[common.Uint256]interfaces.Transaction),
	}
}

func (s *conflictSlot) Empty() bool {
	return len(s.stringSet) == 0 && len(s.hashSet) == 0
}

func (s *conflictSlot) Contains(key interface{}) bool {
	switch k := key.(type) {
	case string:
		_, ok := s.stringSet[k]
		return ok
	case common.Uint256:
		_, ok := s.hashSet[k]
		return ok
	}
	return false
}

func (s *conflictSlot) GetTx(key interface{}) interfaces.Transaction {
	switch k := key.(type) {
	case string:
		return s.stringSet[k]
	case common.Uint256:
		return s.hashSet[k]
	}
	return nil
}

func (s *conflictSlot) getFunc(txType common2.TxType) (getKeyFunc, bool) {
	f, ok := s.conflictTypes[txType]
	if !ok {
		f, ok = s.conflictTypes[allType]
	}
	return f, ok
}

// VerifyTx reports an error if the transaction produces a key this slot
// already holds.  Transaction types the slot does not care about pass
// untouched.
func (s *conflictSlot) VerifyTx(tx interfaces.Transaction) error {
	f, ok := s.getFunc(tx.TxType())
	if !ok {
		return nil
	}

	key, err := f(tx)
	if err != nil {
		return err
	}
	return s.txProcess(key,
		func(k string) error {
			if _, ok := s.stringSet[k]; ok {
				return fmt.Errorf(
					"slot already contains this key: %s", k)
			}
			return nil
		},
		func(k common.Uint256) error {
			if _, ok := s.hashSet[k]; ok {
				return fmt.Errorf(
					"slot already contains this key: %s", k.String())
			}
			return nil
		})
}

func (s *conflictSlot) AppendTx(tx interfaces.Transaction) error {
	f, ok := s.getFunc(tx.TxType())
	if !ok {
		return nil
	}

	key, err := f(tx)
	if err != nil {
		return err
	}
	return s.txProcess(key,
		func(k string) error {
			s.stringSet[k] = tx
			return nil
		},
		func(k common.Uint256) error {
			s.hashSet[k] = tx
			return nil
		})
}

func (s *conflictSlot) RemoveTx(tx interfaces.Transaction) error {
	f, ok := s.getFunc(tx.TxType())
	if !ok {
		return nil
	}

	key, err := f(tx)
	if err != nil {
		return err
	}
	return s.txProcess(key,
		func(k string) error {
			delete(s.stringSet, k)
			return nil
		},
		func(k common.Uint256) error {
			delete(s.hashSet, k)
			return nil
		})
}

func (s *conflictSlot) removeKey(key interface{}) error {
	switch k := key.(type) {
	case string:
		delete(s.stringSet, k)
	case common.Uint256:
		delete(s.hashSet, k)
	default:
		return errors.New("unknown key type")
	}
	return nil
}

// txProcess applies the right processor to the extracted key, element
// by element for the array kinds.
func (s *conflictSlot) txProcess(key interface{},
	strProc func(string) error,
	hashProc func(common.Uint256) error) error {

	switch s.keyType {
	case str:
		k, ok := key.(string)
		if !ok {
			return errors.New("keyType and getKeyFunc not matched")
		}
		return strProc(k)
	case hash:
		k, ok := key.(common.Uint256)
		if !ok {
			return errors.New("keyType and getKeyFunc not matched")
		}
		return hashProc(k)
	case strArray:
		keys, ok := key.([]string)
		if !ok {
			return errors.New("keyType and getKeyFunc not matched")
		}
		for _, k := range keys {
			if err := strProc(k); err != nil {
				return err
			}
		}
		return nil
	case hashArray:
		keys, ok := key.([]common.Uint256)
		if !ok {
			return errors.New("keyType and getKeyFunc not matched")
		}
		for _, k := range keys {
			if err := hashProc(k); err != nil {
				return err
			}
		}
		return nil
	default:
		return errors.New("unknown keyType")
	}
}
