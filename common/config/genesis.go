// Copyright (c) 2019-2022 The Lumachain Foundation
// Use of this source code is governed by an MIT
// license that can be found in the LICENSE file.
//

package config

// GenesisFund seeds one account balance the first time a chain store
// comes up.  PubKey is the compressed owner key in hex.
type GenesisFund struct {
	PubKey string `json:"PubKey"`
	Symbol string `json:"Symbol"`
	Amount uint64 `json:"Amount"`
}
