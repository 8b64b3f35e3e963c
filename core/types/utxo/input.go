// Copyright (c) 2019-2022 The Lumachain Foundation
// Use of this source code is governed by an MIT
// license that can be found in the LICENSE file.
//

package utxo

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"

	"github.com/lumachain/Lumachain.LUMA/common"
)

// Input spends one prior conditional UTXO output, named by the
// transaction that created it and the output's index inside that
// transaction.  Conds carries the input-side proofs some condition
// kinds require.
type Input struct {
	PrevUtxoTxID     common.Uint256
	PrevUtxoOutIndex uint16
	Conds            []Cond
}

func (i *Input) Serialize(w io.Writer) error {
	if err := i.PrevUtxoTxID.Serialize(w); err != nil {
		return err
	}
	if err := common.WriteUint16(w, i.PrevUtxoOutIndex); err != nil {
		return err
	}
	return SerializeConds(w, i.Conds)
}

func (i *Input) Deserialize(r io.Reader) error {
	if err := i.PrevUtxoTxID.Deserialize(r); err != nil {
		return err
	}
	var err error
	if i.PrevUtxoOutIndex, err = common.ReadUint16(r); err != nil {
		return err
	}
	i.Conds, err = DeserializeConds(r, true)
	return err
}

// ReferKey names the spend identity (prior txid, output index) as a
// map key.
func (i *Input) ReferKey() string {
	buf := new(bytes.Buffer)
	i.PrevUtxoTxID.Serialize(buf)
	common.WriteUint16(buf, i.PrevUtxoOutIndex)
	hash := sha256.Sum256(buf.Bytes())
	return hex.EncodeToString(hash[:])
}

func (i *Input) String() string {
	return fmt.Sprintf("%s:%d", common.ToReversedString(i.PrevUtxoTxID),
		i.PrevUtxoOutIndex)
}

func (i *Input) ToJSON() map[string]interface{} {
	return map[string]interface{}{
		"prevUtxoTxId":     common.ToReversedString(i.PrevUtxoTxID),
		"prevUtxoOutIndex": i.PrevUtxoOutIndex,
		"conds":            CondsToJSON(i.Conds),
	}
}
