// Copyright (c) 2019-2022 The Lumachain Foundation
// Use of this source code is governed by an MIT
// license that can be found in the LICENSE file.
//

package utxo

import (
	"io"

	"github.com/lumachain/Lumachain.LUMA/common"
)

// ClaimLockCondOut holds the output until a block height has passed;
// spending is allowed strictly after Height, never at it.
type ClaimLockCondOut struct {
	Height uint64
}

func (c *ClaimLockCondOut) CondType() CondType {
	return ClaimLock
}

func (c *ClaimLockCondOut) IsInput() bool {
	return false
}

func (c *ClaimLockCondOut) Serialize(w io.Writer) error {
	return common.WriteUint64(w, c.Height)
}

func (c *ClaimLockCondOut) Deserialize(r io.Reader) error {
	var err error
	c.Height, err = common.ReadUint64(r)
	return err
}

func (c *ClaimLockCondOut) ToJSON() map[string]interface{} {
	return map[string]interface{}{
		"condType": ClaimLock.Name(),
		"height":   c.Height,
	}
}
