// Copyright (c) 2019-2022 The Lumachain Foundation
// Use of this source code is governed by an MIT
// license that can be found in the LICENSE file.
//

package utxo

import (
	"fmt"
	"io"

	"github.com/lumachain/Lumachain.LUMA/common"
)

// CondType tags one spending condition kind on the wire.
type CondType byte

const (
	NullCondType CondType = 0x00
	// P2SA locks to a single identity.
	P2SA CondType = 0x01
	// P2MA locks to a multi sign account identity.
	P2MA CondType = 0x02
	// P2PH locks behind a password hash.
	P2PH CondType = 0x03
	// ClaimLock holds the counterparty's claim until a height passes.
	ClaimLock CondType = 0x04
	// ReclaimLock lets the creator take an unclaimed output back after
	// a height passes.
	ReclaimLock CondType = 0x05
)

func (t CondType) Name() string {
	switch t {
	case P2SA:
		return "P2SA"
	case P2MA:
		return "P2MA"
	case P2PH:
		return "P2PH"
	case ClaimLock:
		return "ClaimLock"
	case ReclaimLock:
		return "ReclaimLock"
	default:
		return "Unknown"
	}
}

// MaxCondCount is the sanity cap when reading a condition list off the
// wire.
const MaxCondCount = 100

// Cond is one spending condition attached to an output, or one proof
// attached to an input.  The concrete type fixes both the wire tag and
// the side it belongs to.
type Cond interface {
	CondType() CondType

	// IsInput reports whether this is the input-side proof form of
	// its kind.
	IsInput() bool

	Serialize(w io.Writer) error
	Deserialize(r io.Reader) error

	ToJSON() map[string]interface{}
}

// GetCondition returns a zero value of the condition kind for the
// given side.  Only P2MA and P2PH carry an input-side payload; every
// kind has an output-side form.
func GetCondition(condType CondType, isInput bool) (Cond, error) {
	if isInput {
		switch condType {
		case P2MA:
			return new(MultiSignAddressCondIn), nil
		case P2PH:
			return new(PasswordHashLockCondIn), nil
		default:
			return nil, fmt.Errorf("invalid input condition type 0x%02x", byte(condType))
		}
	}

	switch condType {
	case P2SA:
		return new(SingleAddressCondOut), nil
	case P2MA:
		return new(MultiSignAddressCondOut), nil
	case P2PH:
		return new(PasswordHashLockCondOut), nil
	case ClaimLock:
		return new(ClaimLockCondOut), nil
	case ReclaimLock:
		return new(ReClaimLockCondOut), nil
	default:
		return nil, fmt.Errorf("invalid output condition type 0x%02x", byte(condType))
	}
}

// SerializeConds writes a condition list: a count followed by one tag
// byte and body per condition, in insertion order.
func SerializeConds(w io.Writer, conds []Cond) error {
	if err := common.WriteVarUint(w, uint64(len(conds))); err != nil {
		return err
	}
	for _, cond := range conds {
		if err := common.WriteUint8(w, byte(cond.CondType())); err != nil {
			return err
		}
		if err := cond.Serialize(w); err != nil {
			return err
		}
	}
	return nil
}

// DeserializeConds reads a condition list for one side of the ledger.
func DeserializeConds(r io.Reader, isInput bool) ([]Cond, error) {
	count, err := common.ReadVarUint(r, MaxCondCount)
	if err != nil {
		return nil, err
	}
	conds := make([]Cond, 0, count)
	for i := uint64(0); i < count; i++ {
		condType, err := common.ReadUint8(r)
		if err != nil {
			return nil, err
		}
		cond, err := GetCondition(CondType(condType), isInput)
		if err != nil {
			return nil, err
		}
		if err := cond.Deserialize(r); err != nil {
			return nil, err
		}
		conds = append(conds, cond)
	}
	return conds, nil
}

// CondsToJSON renders a condition list for the JSON surfaces.
func CondsToJSON(conds []Cond) []map[string]interface{} {
	list := make([]map[string]interface{}, 0, len(conds))
	for _, cond := range conds {
		list = append(list, cond.ToJSON())
	}
	return list
}
