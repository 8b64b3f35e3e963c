// Copyright (c) 2019-2022 The Lumachain Foundation
// Use of this source code is governed by an MIT
// license that can be found in the LICENSE file.
//

package transaction

import (
	"github.com/lumachain/Lumachain.LUMA/blockchain"
	"github.com/lumachain/Lumachain.LUMA/common/config"
	"github.com/lumachain/Lumachain.LUMA/core/types/interfaces"
)

type TransactionParameters struct {
	Transaction interfaces.Transaction

	BlockHeight uint32
	TimeStamp   uint32
	Config      *config.Configuration
	BlockChain  *blockchain.BlockChain
}

// TransactionExecuteParameters carries what ExecuteTx needs: the batch
// every state write lands in, and the block position the transaction
// occupies, which seeds a first-use register id.
type TransactionExecuteParameters struct {
	Transaction interfaces.Transaction

	BlockHeight uint32
	TxIndex     uint16
	Chain       *blockchain.BlockChain
	Store       *blockchain.StateBatch
}
