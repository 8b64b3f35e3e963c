// Copyright (c) 2019-2022 The Lumachain Foundation
// Use of this source code is governed by an MIT
// license that can be found in the LICENSE file.
//

package common

import (
	"bytes"
	"encoding/hex"
	"errors"
	"io"
)

const UINT256SIZE = 32

// EmptyHash is the zero value of a transaction or lock hash.
var EmptyHash = Uint256{}

type Uint256 [UINT256SIZE]uint8

func (u Uint256) String() string {
	return hex.EncodeToString(u[:])
}

func (u *Uint256) CompareTo(o *Uint256) int {
	return bytes.Compare(u[:], o[:])
}

func (u Uint256) IsEqual(o Uint256) bool {
	return u == o
}

func (u *Uint256) Bytes() []byte {
	return u[:]
}

func (u *Uint256) Serialize(w io.Writer) error {
	_, err := w.Write(u[:])
	return err
}

func (u *Uint256) Deserialize(r io.Reader) error {
	_, err := io.ReadFull(r, u[:])
	if err != nil {
		return errors.New("deserialize Uint256 error")
	}
	return nil
}

func Uint256FromBytes(f []byte) (*Uint256, error) {
	if len(f) != UINT256SIZE {
		return nil, errors.New("[Common]: Uint256FromBytes err, len != 32")
	}

	var hash Uint256
	copy(hash[:], f)

	return &hash, nil
}

func Uint256FromHexString(s string) (*Uint256, error) {
	f, err := HexStringToBytes(s)
	if err != nil {
		return nil, err
	}
	return Uint256FromBytes(f)
}
