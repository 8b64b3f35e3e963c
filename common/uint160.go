// Copyright (c) 2019-2022 The Lumachain Foundation
// Use of this source code is governed by an MIT
// license that can be found in the LICENSE file.
//

package common

import (
	"bytes"
	"crypto/sha256"
	"errors"
	"io"
	"math/big"

	"github.com/itchyny/base58-go"
	"golang.org/x/crypto/ripemd160"
)

const UINT160SIZE = 20

// AddressPrefix is the version byte prepended to a key id before base58
// encoding a mainnet address.
const AddressPrefix byte = 0x49

type Uint160 [UINT160SIZE]uint8

func (u Uint160) String() string {
	return BytesToHexString(u[:])
}

func (u *Uint160) CompareTo(o *Uint160) int {
	return bytes.Compare(u[:], o[:])
}

func (u *Uint160) IsEqual(o Uint160) bool {
	return *u == o
}

func (u *Uint160) IsEmpty() bool {
	return *u == Uint160{}
}

func (u *Uint160) Bytes() []byte {
	return u[:]
}

func (u *Uint160) Serialize(w io.Writer) error {
	_, err := w.Write(u[:])
	return err
}

func (u *Uint160) Deserialize(r io.Reader) error {
	_, err := io.ReadFull(r, u[:])
	if err != nil {
		return errors.New("deserialize Uint160 error")
	}
	return nil
}

// ToAddress encodes the key id into the base58 address form: one prefix
// byte, the 20 hash bytes and a 4-byte double-SHA256 checksum.
func (u *Uint160) ToAddress() (string, error) {
	data := append([]byte{AddressPrefix}, u[:]...)
	checksum := Sha256D(data)
	data = append(data, checksum[0:4]...)

	bi := new(big.Int).SetBytes(data).String()
	encoded, err := base58.BitcoinEncoding.Encode([]byte(bi))
	if err != nil {
		return "", err
	}
	return string(encoded), nil
}

func Uint160FromBytes(f []byte) (*Uint160, error) {
	if len(f) != UINT160SIZE {
		return nil, errors.New("[Common]: Uint160FromBytes err, len != 20")
	}

	var hash Uint160
	copy(hash[:], f)

	return &hash, nil
}

func Uint160FromAddress(address string) (*Uint160, error) {
	decoded, err := base58.BitcoinEncoding.Decode([]byte(address))
	if err != nil {
		return nil, err
	}

	x, ok := new(big.Int).SetString(string(decoded), 10)
	if !ok {
		return nil, errors.New("invalid address encoding")
	}

	data := x.Bytes()
	if len(data) != 1+UINT160SIZE+4 {
		return nil, errors.New("invalid address length")
	}
	if data[0] != AddressPrefix {
		return nil, errors.New("invalid address prefix")
	}

	checksum := Sha256D(data[:1+UINT160SIZE])
	if !bytes.Equal(data[1+UINT160SIZE:], checksum[0:4]) {
		return nil, errors.New("invalid address checksum")
	}

	return Uint160FromBytes(data[1 : 1+UINT160SIZE])
}

// Hash160 is sha256 followed by ripemd160, the key id derivation for a
// serialized public key.
func Hash160(data []byte) *Uint160 {
	hash := sha256.Sum256(data)
	md := ripemd160.New()
	md.Write(hash[:])
	sum := Uint160{}
	copy(sum[:], md.Sum(nil))
	return &sum
}
