// Copyright (c) 2019-2022 The Lumachain Foundation
// Use of this source code is governed by an MIT
// license that can be found in the LICENSE file.
//

package utxo

import (
	"io"

	"github.com/lumachain/Lumachain.LUMA/common"
)

// ReClaimLockCondOut lets the output's creator take an unclaimed
// output back, but only strictly after Height.  It binds self-spends
// only; a different spender is the counterparty claiming through the
// paired ClaimLock and passes untouched.
type ReClaimLockCondOut struct {
	Height uint64
}

func (c *ReClaimLockCondOut) CondType() CondType {
	return ReclaimLock
}

func (c *ReClaimLockCondOut) IsInput() bool {
	return false
}

func (c *ReClaimLockCondOut) Serialize(w io.Writer) error {
	return common.WriteUint64(w, c.Height)
}

func (c *ReClaimLockCondOut) Deserialize(r io.Reader) error {
	var err error
	c.Height, err = common.ReadUint64(r)
	return err
}

func (c *ReClaimLockCondOut) ToJSON() map[string]interface{} {
	return map[string]interface{}{
		"condType": ReclaimLock.Name(),
		"height":   c.Height,
	}
}
