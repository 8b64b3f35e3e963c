// Copyright (c) 2019-2022 The Lumachain Foundation
// Use of this source code is governed by an MIT
// license that can be found in the LICENSE file.
//

package account

import (
	"bytes"
	"crypto/rand"
	"crypto/sha256"
	"errors"
	"io"
	"os"

	"github.com/lumachain/Lumachain.LUMA/common"
	common2 "github.com/lumachain/Lumachain.LUMA/core/types/common"
	"github.com/lumachain/Lumachain.LUMA/core/types/interfaces"
	"github.com/lumachain/Lumachain.LUMA/crypto"
)

// WalletAccount is a key pair held by a local wallet, as opposed to
// Account which is the chain side state of that key.
type WalletAccount struct {
	privateKey []byte
	PublicKey  *crypto.PublicKey
}

func (a *WalletAccount) PrivKey() []byte {
	return a.privateKey
}

func (a *WalletAccount) PublicKeyBytes() ([]byte, error) {
	return a.PublicKey.EncodePoint(true)
}

// Uid returns the pubkey form user id, the id a fresh key uses before
// the chain assigns it a RegID.
func (a *WalletAccount) Uid() (common2.UserID, error) {
	pubKey, err := a.PublicKeyBytes()
	if err != nil {
		return common2.UserID{}, err
	}
	return common2.NewPubKeyUid(pubKey), nil
}

func (a *WalletAccount) Address() (string, error) {
	pubKey, err := a.PublicKeyBytes()
	if err != nil {
		return "", err
	}
	return common.Hash160(pubKey).ToAddress()
}

func (a *WalletAccount) Sign(data []byte) ([]byte, error) {
	return crypto.Sign(a.privateKey, data)
}

// Client is an opened keystore with its main account decrypted in
// memory.
type Client struct {
	path        string
	mainAccount *WalletAccount
}

func (c *Client) GetMainAccount() *WalletAccount {
	return c.mainAccount
}

// Sign fills in the transaction signature over its unsigned
// serialization.
func (c *Client) Sign(txn interfaces.Transaction) error {
	buf := new(bytes.Buffer)
	if err := txn.SerializeUnsigned(buf); err != nil {
		return err
	}
	signature, err := c.mainAccount.Sign(buf.Bytes())
	if err != nil {
		return err
	}
	txn.SetSignature(signature)
	return nil
}

// Create generates a fresh key pair and writes it to a new keystore
// at path, encrypted under password.
func Create(path string, password []byte) (*Client, error) {
	exist, err := fileExisted(path)
	if err != nil {
		return nil, err
	}
	if exist {
		return nil, errors.New("keystore already exist")
	}

	privKey, pubKey, err := crypto.GenerateKeyPair()
	if err != nil {
		return nil, err
	}
	// D.Bytes() drops leading zeros, the keystore stores a fixed
	// 32 byte key
	paddedKey := make([]byte, 32)
	copy(paddedKey[32-len(privKey):], privKey)

	iv := make([]byte, 16)
	if _, err := io.ReadFull(rand.Reader, iv); err != nil {
		return nil, err
	}
	masterKey := make([]byte, 32)
	if _, err := io.ReadFull(rand.Reader, masterKey); err != nil {
		return nil, err
	}

	passwordKey := crypto.ToAesKey(password)
	passwordHash := sha256.Sum256(passwordKey)
	masterKeyEncrypted, err := crypto.AesEncrypt(masterKey, passwordKey, iv)
	if err != nil {
		return nil, err
	}
	privKeyEncrypted, err := crypto.AesEncrypt(paddedKey, masterKey, iv)
	if err != nil {
		return nil, err
	}
	pubKeyBytes, err := pubKey.EncodePoint(true)
	if err != nil {
		return nil, err
	}

	file := &KeystoreFile{
		Version:          KeystoreVersion,
		IV:               common.BytesToHexString(iv),
		PasswordHash:     common.BytesToHexString(passwordHash[:]),
		MasterKey:        common.BytesToHexString(masterKeyEncrypted),
		PubKey:           common.BytesToHexString(pubKeyBytes),
		PrivKeyEncrypted: common.BytesToHexString(privKeyEncrypted),
	}
	if err := file.SaveTo(path); err != nil {
		return nil, err
	}

	return &Client{
		path: path,
		mainAccount: &WalletAccount{
			privateKey: paddedKey,
			PublicKey:  pubKey,
		},
	}, nil
}

// Open unlocks the keystore at path with password.
func Open(path string, password []byte) (*Client, error) {
	file, err := LoadKeystoreFile(path)
	if err != nil {
		return nil, err
	}

	passwordKey := crypto.ToAesKey(password)
	passwordHash := sha256.Sum256(passwordKey)
	storedHash, err := common.HexStringToBytes(file.PasswordHash)
	if err != nil {
		return nil, err
	}
	if !bytes.Equal(passwordHash[:], storedHash) {
		return nil, errors.New("password wrong")
	}

	iv, err := common.HexStringToBytes(file.IV)
	if err != nil {
		return nil, err
	}
	masterKeyEncrypted, err := common.HexStringToBytes(file.MasterKey)
	if err != nil {
		return nil, err
	}
	masterKey, err := crypto.AesDecrypt(masterKeyEncrypted, passwordKey, iv)
	if err != nil {
		return nil, err
	}
	privKeyEncrypted, err := common.HexStringToBytes(file.PrivKeyEncrypted)
	if err != nil {
		return nil, err
	}
	privKey, err := crypto.AesDecrypt(privKeyEncrypted, masterKey, iv)
	if err != nil {
		return nil, err
	}

	pubKey := crypto.PublicKeyFromPrivate(privKey)
	pubKeyBytes, err := pubKey.EncodePoint(true)
	if err != nil {
		return nil, err
	}
	if common.BytesToHexString(pubKeyBytes) != file.PubKey {
		return nil, errors.New("keystore public key mismatches private key")
	}

	return &Client{
		path: path,
		mainAccount: &WalletAccount{
			privateKey: privKey,
			PublicKey:  pubKey,
		},
	}, nil
}

func fileExisted(path string) (bool, error) {
	_, err := os.Stat(path)
	if err == nil {
		return true, nil
	}
	if os.IsNotExist(err) {
		return false, nil
	}
	return false, err
}
