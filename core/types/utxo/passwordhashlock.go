// Copyright (c) 2019-2022 The Lumachain Foundation
// Use of this source code is governed by an MIT
// license that can be found in the LICENSE file.
//

package utxo

import (
	"io"

	"github.com/lumachain/Lumachain.LUMA/common"
)

// MaxPasswordLength bounds the revealed password on the wire.
const MaxPasswordLength = 256

// PasswordHashLockCondOut locks an output behind a password hash.  The
// stored hash commits to both the password and the intended spender,
// so a revealed password cannot be replayed by an observer.
type PasswordHashLockCondOut struct {
	PasswordHash common.Uint256
}

func (c *PasswordHashLockCondOut) CondType() CondType {
	return P2PH
}

func (c *PasswordHashLockCondOut) IsInput() bool {
	return false
}

func (c *PasswordHashLockCondOut) Serialize(w io.Writer) error {
	return c.PasswordHash.Serialize(w)
}

func (c *PasswordHashLockCondOut) Deserialize(r io.Reader) error {
	return c.PasswordHash.Deserialize(r)
}

func (c *PasswordHashLockCondOut) ToJSON() map[string]interface{} {
	return map[string]interface{}{
		"condType":     P2PH.Name(),
		"passwordHash": c.PasswordHash.String(),
	}
}

// PasswordHashLockCondIn reveals the password that unlocks a password
// hash locked output.
type PasswordHashLockCondIn struct {
	Password string
}

func (c *PasswordHashLockCondIn) CondType() CondType {
	return P2PH
}

func (c *PasswordHashLockCondIn) IsInput() bool {
	return true
}

func (c *PasswordHashLockCondIn) Serialize(w io.Writer) error {
	return common.WriteVarString(w, c.Password)
}

func (c *PasswordHashLockCondIn) Deserialize(r io.Reader) error {
	password, err := common.ReadVarBytes(r, MaxPasswordLength, "password")
	if err != nil {
		return err
	}
	c.Password = string(password)
	return nil
}

func (c *PasswordHashLockCondIn) ToJSON() map[string]interface{} {
	return map[string]interface{}{
		"condType": P2PH.Name(),
		"password": c.Password,
	}
}

// HashLock computes the hash a P2PH output stores: double SHA-256 over
// the password concatenated with the spender identity's string form.
func HashLock(password string, spender string) common.Uint256 {
	return common.Hash([]byte(password + spender))
}
