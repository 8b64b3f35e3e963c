// Copyright (c) 2019-2022 The Lumachain Foundation
// Use of this source code is governed by an MIT
// license that can be found in the LICENSE file.
//

package common

import (
	"bytes"
	"errors"
	"io"
	"strings"

	"github.com/lumachain/Lumachain.LUMA/common"
)

// UserIDType tags which identity form a UserID carries.
type UserIDType byte

const (
	// UserIDNull is the empty identity.
	UserIDNull UserIDType = 0x00
	// UserIDRegID carries an on-chain register id.
	UserIDRegID UserIDType = 0x01
	// UserIDPubKey carries a raw compressed public key.
	UserIDPubKey UserIDType = 0x02
)

// MaxPubKeyLength bounds the public key form of a UserID on the wire.
const MaxPubKeyLength = 33

// UserID identifies a chain actor either by register id or by raw
// public key.  A zero UserID means "nobody" and never authorizes
// anything.
type UserID struct {
	Type   UserIDType
	RegID  RegID
	PubKey []byte
}

// NewRegIDUid wraps a register id into an identity.
func NewRegIDUid(regID RegID) UserID {
	return UserID{Type: UserIDRegID, RegID: regID}
}

// NewPubKeyUid wraps a compressed public key into an identity.
func NewPubKeyUid(pubKey []byte) UserID {
	key := make([]byte, len(pubKey))
	copy(key, pubKey)
	return UserID{Type: UserIDPubKey, PubKey: key}
}

// UidFromString parses the display form back into an identity: a
// "height-index" register id, hex for a public key, the empty string
// for nobody.
func UidFromString(s string) (UserID, error) {
	if s == "" {
		return UserID{}, nil
	}
	if strings.Contains(s, "-") {
		regID, err := RegIDFromString(s)
		if err != nil {
			return UserID{}, err
		}
		return NewRegIDUid(*regID), nil
	}
	pubKey, err := common.HexStringToBytes(s)
	if err != nil {
		return UserID{}, errors.New("invalid user id string")
	}
	if len(pubKey) > MaxPubKeyLength {
		return UserID{}, errors.New("user id public key too long")
	}
	return NewPubKeyUid(pubKey), nil
}

func (u *UserID) IsEmpty() bool {
	switch u.Type {
	case UserIDRegID:
		return u.RegID.IsEmpty()
	case UserIDPubKey:
		return len(u.PubKey) == 0
	default:
		return true
	}
}

func (u *UserID) IsRegID() bool {
	return u.Type == UserIDRegID
}

func (u *UserID) IsPubKey() bool {
	return u.Type == UserIDPubKey
}

// Equal is true for the same identity form holding the same contents.
func (u *UserID) Equal(o UserID) bool {
	if u.Type != o.Type {
		return false
	}
	switch u.Type {
	case UserIDRegID:
		return u.RegID.Equal(o.RegID)
	case UserIDPubKey:
		return bytes.Equal(u.PubKey, o.PubKey)
	default:
		return true
	}
}

// String renders the identity the way it appears in logs and hash
// locks: "height-index" for a register id, lowercase hex for a public
// key, empty for nobody.  The P2PH lock hashes over this exact form,
// so it must never change.
func (u *UserID) String() string {
	switch u.Type {
	case UserIDRegID:
		return u.RegID.String()
	case UserIDPubKey:
		return common.BytesToHexString(u.PubKey)
	default:
		return ""
	}
}

func (u *UserID) Serialize(w io.Writer) error {
	if err := common.WriteUint8(w, byte(u.Type)); err != nil {
		return err
	}
	switch u.Type {
	case UserIDNull:
		return nil
	case UserIDRegID:
		return u.RegID.Serialize(w)
	case UserIDPubKey:
		return common.WriteVarBytes(w, u.PubKey)
	default:
		return errors.New("invalid user id type")
	}
}

func (u *UserID) Deserialize(r io.Reader) error {
	uidType, err := common.ReadUint8(r)
	if err != nil {
		return err
	}
	u.Type = UserIDType(uidType)
	switch u.Type {
	case UserIDNull:
		return nil
	case UserIDRegID:
		return u.RegID.Deserialize(r)
	case UserIDPubKey:
		u.PubKey, err = common.ReadVarBytes(r, MaxPubKeyLength, "user id public key")
		return err
	default:
		return errors.New("invalid user id type")
	}
}
