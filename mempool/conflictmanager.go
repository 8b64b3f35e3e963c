// Copyright (c) 2019-2022 The Lumachain Foundation
// Use of this source code is governed by an MIT
// license that can be found in the LICENSE file.
//

package mempool

import (
	"fmt"

	"github.com/lumachain/Lumachain.LUMA/core/types/interfaces"
	lumaerr "github.com/lumachain/Lumachain.LUMA/errors"
)

const (
	slotTxInputsReferKeys = "TxInputsReferKeys"
)

type conflict struct {
	name string
	slot *conflictSlot
}

// conflictManager hold a set of conflict slots, and refer some query
// methods.
type conflictManager struct {
	conflictSlots []*conflict
}

func (m *conflictManager) VerifyTx(tx interfaces.Transaction) lumaerr.LumaError {
	for _, v := range m.conflictSlots {
		if err := v.slot.VerifyTx(tx); err != nil {
			return lumaerr.SimpleWithMessage(lumaerr.ErrTxPoolFailure, err,
				fmt.Sprintf("slot %s verify tx error", v.name))
		}
	}
	return nil
}

func (m *conflictManager) AppendTx(tx interfaces.Transaction) lumaerr.LumaError {
	for _, v := range m.conflictSlots {
		if err := v.slot.AppendTx(tx); err != nil {
			return lumaerr.SimpleWithMessage(lumaerr.ErrTxPoolFailure, err,
				fmt.Sprintf("slot %s append tx error", v.name))
		}
	}
	return nil
}

func (m *conflictManager) removeTx(tx interfaces.Transaction) lumaerr.LumaError {
	for _, v := range m.conflictSlots {
		if err := v.slot.RemoveTx(tx); err != nil {
			return lumaerr.SimpleWithMessage(lumaerr.ErrTxPoolFailure, err,
				fmt.Sprintf("slot %s remove tx error", v.name))
		}
	}
	return nil
}

func (m *conflictManager) GetTx(key interface{},
	slotName string) interfaces.Transaction {
	for _, v := range m.conflictSlots {
		if v.name == slotName {
			return v.slot.GetTx(key)
		}
	}
	return nil
}

func (m *conflictManager) ContainsKey(key interface{}, slotName string) bool {
	for _, v := range m.conflictSlots {
		if v.name == slotName {
			return v.slot.Contains(key)
		}
	}
	return false
}

func (m *conflictManager) RemoveKey(key interface{},
	slotName string) lumaerr.LumaError {
	for _, v := range m.conflictSlots {
		if v.name == slotName {
			if err := v.slot.removeKey(key); err != nil {
				return lumaerr.SimpleWithMessage(lumaerr.ErrTxPoolFailure,
					err, fmt.Sprintf("slot %s remove key error", v.name))
			}
			return nil
		}
	}
	return lumaerr.SimpleWithMessage(lumaerr.ErrTxPoolFailure, nil,
		fmt.Sprintf("slot %s not exist", slotName))
}

func (m *conflictManager) Empty() bool {
	for _, v := range m.conflictSlots {
		if !v.slot.Empty() {
			return false
		}
	}
	return true
}

func newConflictManager() conflictManager {
	return conflictManager{
		conflictSlots: []*conflict{
			// tx inputs refer keys
			{
				name: slotTxInputsReferKeys,
				slot: newConflictSlot(strArray,
					keyTypeFuncPair{
						Type: allType,
						Func: strArrayTxReferences,
					},
				),
			},
		},
	}
}
