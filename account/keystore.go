// Copyright (c) 2019-2022 The Lumachain Foundation
// Use of this source code is governed by an MIT
// license that can be found in the LICENSE file.
//

package account

import (
	"encoding/json"
	"errors"
	"io/ioutil"
)

const (
	// KeystoreFileName is the default wallet file a node or cli looks
	// for when no --wallet flag is given.
	KeystoreFileName = "keystore.dat"

	KeystoreVersion = "1.0.0"
)

// KeystoreFile is the on disk form of a wallet.  All byte fields are
// hex encoded.  MasterKey is encrypted with the password derived key,
// PrivKeyEncrypted with the decrypted master key, both under IV.
type KeystoreFile struct {
	Version          string
	IV               string
	PasswordHash     string
	MasterKey        string
	PubKey           string
	PrivKeyEncrypted string
}

func LoadKeystoreFile(path string) (*KeystoreFile, error) {
	data, err := ioutil.ReadFile(path)
	if err != nil {
		return nil, err
	}

	file := new(KeystoreFile)
	if err := json.Unmarshal(data, file); err != nil {
		return nil, err
	}
	if file.Version != KeystoreVersion {
		return nil, errors.New("unknown keystore version " + file.Version)
	}

	return file, nil
}

func (kf *KeystoreFile) SaveTo(path string) error {
	data, err := json.MarshalIndent(kf, "", "    ")
	if err != nil {
		return err
	}
	return ioutil.WriteFile(path, data, 0644)
}
