// Copyright (c) 2019-2022 The Lumachain Foundation
// Use of this source code is governed by an MIT
// license that can be found in the LICENSE file.
//

package account

import (
	"errors"
	"io"
	"math"
	"sort"

	"github.com/lumachain/Lumachain.LUMA/common"
	"github.com/lumachain/Lumachain.LUMA/crypto"
	common2 "github.com/lumachain/Lumachain.LUMA/core/types/common"
)

// BalanceOpType tells OperateBalance which direction the free balance
// moves.
type BalanceOpType byte

const (
	AddFree BalanceOpType = 0x01
	SubFree BalanceOpType = 0x02
)

// Account is the on chain state of a single key.  KeyID is the
// ripemd160(sha256(pubkey)) short hash, RegID is assigned by the chain
// on the account's first recorded action and stays empty until then.
// Balances holds the free amount per coin symbol, in sawi.
type Account struct {
	KeyID       common.Uint160
	RegID       common2.RegID
	OwnerPubKey []byte
	Balances    map[string]uint64
}

// NewAccount builds the state entry for a compressed public key.
func NewAccount(ownerPubKey []byte) *Account {
	return &Account{
		KeyID:       *common.Hash160(ownerPubKey),
		OwnerPubKey: ownerPubKey,
		Balances:    make(map[string]uint64),
	}
}

func (a *Account) IsRegistered() bool {
	return !a.RegID.IsEmpty()
}

// GetFreeBalance returns the spendable amount of the given symbol, zero
// for symbols the account never held.
func (a *Account) GetFreeBalance(symbol string) uint64 {
	return a.Balances[symbol]
}

// OperateBalance applies a single free balance mutation.  It reports
// false when a subtraction underruns the balance or an addition would
// wrap around, leaving the account untouched in both cases.
func (a *Account) OperateBalance(symbol string, op BalanceOpType, amount uint64) bool {
	if a.Balances == nil {
		a.Balances = make(map[string]uint64)
	}
	balance := a.Balances[symbol]
	switch op {
	case AddFree:
		if balance > math.MaxUint64-amount {
			return false
		}
		a.Balances[symbol] = balance + amount
	case SubFree:
		if balance < amount {
			return false
		}
		a.Balances[symbol] = balance - amount
	default:
		return false
	}
	return true
}

// OwnerPublicKey decodes the stored owner key into a point.
func (a *Account) OwnerPublicKey() (*crypto.PublicKey, error) {
	if len(a.OwnerPubKey) == 0 {
		return nil, errors.New("account has no owner public key")
	}
	return crypto.DecodePoint(a.OwnerPubKey)
}

// Address renders the KeyID in its base58 form.
func (a *Account) Address() (string, error) {
	return a.KeyID.ToAddress()
}

func (a *Account) Serialize(w io.Writer) error {
	if err := a.KeyID.Serialize(w); err != nil {
		return err
	}
	if err := a.RegID.Serialize(w); err != nil {
		return err
	}
	if err := common.WriteVarBytes(w, a.OwnerPubKey); err != nil {
		return err
	}

	// symbols are written sorted so the encoding is deterministic
	symbols := make([]string, 0, len(a.Balances))
	for symbol := range a.Balances {
		symbols = append(symbols, symbol)
	}
	sort.Strings(symbols)

	if err := common.WriteVarUint(w, uint64(len(symbols))); err != nil {
		return err
	}
	for _, symbol := range symbols {
		if err := common.WriteVarString(w, symbol); err != nil {
			return err
		}
		if err := common.WriteUint64(w, a.Balances[symbol]); err != nil {
			return err
		}
	}
	return nil
}

func (a *Account) Deserialize(r io.Reader) error {
	if err := a.KeyID.Deserialize(r); err != nil {
		return err
	}
	if err := a.RegID.Deserialize(r); err != nil {
		return err
	}
	ownerPubKey, err := common.ReadVarBytes(r, crypto.PublicKeyLength,
		"account owner pubkey")
	if err != nil {
		return err
	}
	a.OwnerPubKey = ownerPubKey

	count, err := common.ReadVarUint(r, 0)
	if err != nil {
		return err
	}
	a.Balances = make(map[string]uint64, count)
	for i := uint64(0); i < count; i++ {
		symbol, err := common.ReadVarString(r)
		if err != nil {
			return err
		}
		amount, err := common.ReadUint64(r)
		if err != nil {
			return err
		}
		a.Balances[symbol] = amount
	}
	return nil
}
