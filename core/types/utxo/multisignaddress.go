// Copyright (c) 2019-2022 The Lumachain Foundation
// Use of this source code is governed by an MIT
// license that can be found in the LICENSE file.
//

package utxo

import (
	"io"

	"github.com/lumachain/Lumachain.LUMA/common"
	common2 "github.com/lumachain/Lumachain.LUMA/core/types/common"
	"github.com/lumachain/Lumachain.LUMA/crypto"
)

// MaxMultiSignKeyCount bounds the participants of one multi sign
// quorum.
const MaxMultiSignKeyCount = 20

// MultiSignAddressCondOut locks an output to a multi sign account
// identity.
type MultiSignAddressCondOut struct {
	Uid common2.UserID
}

func (c *MultiSignAddressCondOut) CondType() CondType {
	return P2MA
}

func (c *MultiSignAddressCondOut) IsInput() bool {
	return false
}

func (c *MultiSignAddressCondOut) Serialize(w io.Writer) error {
	return c.Uid.Serialize(w)
}

func (c *MultiSignAddressCondOut) Deserialize(r io.Reader) error {
	return c.Uid.Deserialize(r)
}

func (c *MultiSignAddressCondOut) ToJSON() map[string]interface{} {
	return map[string]interface{}{
		"condType": P2MA.Name(),
		"uid":      c.Uid.String(),
	}
}

// MultiSignAddressCondIn carries the m-of-n quorum material for
// spending a multi sign locked output.
type MultiSignAddressCondIn struct {
	M          uint8
	N          uint8
	Uids       []common2.UserID
	Signatures [][]byte
}

func (c *MultiSignAddressCondIn) CondType() CondType {
	return P2MA
}

func (c *MultiSignAddressCondIn) IsInput() bool {
	return true
}

func (c *MultiSignAddressCondIn) Serialize(w io.Writer) error {
	if err := common.WriteUint8(w, c.M); err != nil {
		return err
	}
	if err := common.WriteUint8(w, c.N); err != nil {
		return err
	}
	if err := common.WriteVarUint(w, uint64(len(c.Uids))); err != nil {
		return err
	}
	for i := range c.Uids {
		if err := c.Uids[i].Serialize(w); err != nil {
			return err
		}
	}
	if err := common.WriteVarUint(w, uint64(len(c.Signatures))); err != nil {
		return err
	}
	for _, signature := range c.Signatures {
		if err := common.WriteVarBytes(w, signature); err != nil {
			return err
		}
	}
	return nil
}

func (c *MultiSignAddressCondIn) Deserialize(r io.Reader) error {
	var err error
	if c.M, err = common.ReadUint8(r); err != nil {
		return err
	}
	if c.N, err = common.ReadUint8(r); err != nil {
		return err
	}
	count, err := common.ReadVarUint(r, MaxMultiSignKeyCount)
	if err != nil {
		return err
	}
	c.Uids = make([]common2.UserID, count)
	for i := uint64(0); i < count; i++ {
		if err := c.Uids[i].Deserialize(r); err != nil {
			return err
		}
	}
	count, err = common.ReadVarUint(r, MaxMultiSignKeyCount)
	if err != nil {
		return err
	}
	c.Signatures = make([][]byte, 0, count)
	for i := uint64(0); i < count; i++ {
		signature, err := common.ReadVarBytes(r, crypto.SignatureLength,
			"multi sign signature")
		if err != nil {
			return err
		}
		c.Signatures = append(c.Signatures, signature)
	}
	return nil
}

func (c *MultiSignAddressCondIn) ToJSON() map[string]interface{} {
	uids := make([]string, 0, len(c.Uids))
	for i := range c.Uids {
		uids = append(uids, c.Uids[i].String())
	}
	signatures := make([]string, 0, len(c.Signatures))
	for _, signature := range c.Signatures {
		signatures = append(signatures, common.BytesToHexString(signature))
	}
	return map[string]interface{}{
		"condType":   P2MA.Name(),
		"m":          c.M,
		"n":          c.N,
		"uids":       uids,
		"signatures": signatures,
	}
}
