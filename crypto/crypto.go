// Copyright (c) 2019-2022 The Lumachain Foundation
// Use of this source code is governed by an MIT
// license that can be found in the LICENSE file.
//

package crypto

import (
	"crypto/ecdsa"
	"crypto/rand"
	"crypto/sha256"
	"errors"
	"io"
	"math/big"
	"sort"

	"github.com/btcsuite/btcd/btcec"

	"github.com/lumachain/Lumachain.LUMA/common"
)

const (
	SignerLength      = 32
	SignatureLength   = 64
	NegativeBigLength = 33

	// PublicKeyLength is the compressed point encoding length.
	PublicKeyLength = 33
)

// DefaultCurve is secp256k1, the curve every chain key lives on.
var DefaultCurve = btcec.S256()

type PublicKey struct {
	X, Y *big.Int
}

func GenerateKeyPair() ([]byte, *PublicKey, error) {
	privateKey, err := ecdsa.GenerateKey(DefaultCurve, rand.Reader)
	if err != nil {
		return nil, nil, errors.New("Generate key pair error")
	}

	publicKey := PublicKey{}
	publicKey.X = privateKey.PublicKey.X
	publicKey.Y = privateKey.PublicKey.Y

	return privateKey.D.Bytes(), &publicKey, nil
}

// PublicKeyFromPrivate derives the public curve point of priKey.
func PublicKeyFromPrivate(priKey []byte) *PublicKey {
	x, y := DefaultCurve.ScalarBaseMult(priKey)
	return &PublicKey{X: x, Y: y}
}

func Sign(priKey []byte, data []byte) ([]byte, error) {
	digest := sha256.Sum256(data)

	privateKey := new(ecdsa.PrivateKey)
	privateKey.Curve = DefaultCurve
	privateKey.D = big.NewInt(0)
	privateKey.D.SetBytes(priKey)

	r, s, err := ecdsa.Sign(rand.Reader, privateKey, digest[:])
	if err != nil {
		return nil, err
	}

	signature := make([]byte, SignatureLength)

	lenR := len(r.Bytes())
	lenS := len(s.Bytes())
	copy(signature[SignerLength-lenR:], r.Bytes())
	copy(signature[SignatureLength-lenS:], s.Bytes())
	return signature, nil
}

func Verify(publicKey PublicKey, data []byte, signature []byte) error {
	if len(signature) != SignatureLength {
		return errors.New("invalid signature length")
	}

	r := new(big.Int).SetBytes(signature[:SignerLength])
	s := new(big.Int).SetBytes(signature[SignerLength:])

	digest := sha256.Sum256(data)

	pub := ecdsa.PublicKey{}
	pub.Curve = DefaultCurve
	pub.X = publicKey.X
	pub.Y = publicKey.Y

	if !ecdsa.Verify(&pub, digest[:], r, s) {
		return errors.New("[Validation], Verify failed.")
	}

	return nil
}

// DecodePoint parses a compressed or uncompressed point encoding and
// confirms the point actually lies on the curve.  Anything else is a
// forged key.
func DecodePoint(encodedData []byte) (*PublicKey, error) {
	pub, err := btcec.ParsePubKey(encodedData, DefaultCurve)
	if err != nil {
		return nil, err
	}
	return &PublicKey{X: pub.X, Y: pub.Y}, nil
}

func (e *PublicKey) EncodePoint(isCompressed bool) ([]byte, error) {
	if e.X == nil || e.Y == nil {
		return nil, errors.New("empty public key")
	}
	pub := btcec.PublicKey{Curve: DefaultCurve, X: e.X, Y: e.Y}
	if isCompressed {
		return pub.SerializeCompressed(), nil
	}
	return pub.SerializeUncompressed(), nil
}

func (e *PublicKey) Serialize(w io.Writer) error {
	bufX := make([]byte, 0, NegativeBigLength)
	if e.X.Sign() == -1 {
		// prefix 0x00 means the big number X is negative
		bufX = append(bufX, 0x00)
	}
	bufX = append(bufX, e.X.Bytes()...)

	if err := common.WriteVarBytes(w, bufX); err != nil {
		return err
	}

	bufY := make([]byte, 0, NegativeBigLength)
	if e.Y.Sign() == -1 {
		// prefix 0x00 means the big number Y is negative
		bufY = append(bufY, 0x00)
	}
	bufY = append(bufY, e.Y.Bytes()...)
	if err := common.WriteVarBytes(w, bufY); err != nil {
		return err
	}
	return nil
}

func (e *PublicKey) Deserialize(r io.Reader) error {
	bufX, err := common.ReadVarBytes(r, NegativeBigLength,
		"public key X")
	if err != nil {
		return err
	}
	e.X = big.NewInt(0)
	e.X = e.X.SetBytes(bufX)
	if len(bufX) == NegativeBigLength {
		e.X.Neg(e.X)
	}
	bufY, err := common.ReadVarBytes(r, NegativeBigLength,
		"public key Y")
	if err != nil {
		return err
	}
	e.Y = big.NewInt(0)
	e.Y = e.Y.SetBytes(bufY)
	if len(bufY) == NegativeBigLength {
		e.Y.Neg(e.Y)
	}
	return nil
}

func SortPublicKeys(publicKeys []*PublicKey) {
	sort.Sort(byX(publicKeys))
}

type byX []*PublicKey

func (p byX) Len() int           { return len(p) }
func (p byX) Less(i, j int) bool { return p[i].X.Cmp(p[j].X) <= 0 }
func (p byX) Swap(i, j int)      { p[i], p[j] = p[j], p[i] }

func Equal(e1 *PublicKey, e2 *PublicKey) bool {
	if e1.X.Cmp(e2.X) != 0 {
		return false
	}
	if e1.Y.Cmp(e2.Y) != 0 {
		return false
	}
	return true
}
