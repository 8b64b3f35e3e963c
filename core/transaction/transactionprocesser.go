// Copyright (c) 2019-2022 The Lumachain Foundation
// Use of this source code is governed by an MIT
// license that can be found in the LICENSE file.
//

package transaction

import (
	"errors"

	"github.com/lumachain/Lumachain.LUMA/account"
	common2 "github.com/lumachain/Lumachain.LUMA/core/types/common"
	"github.com/lumachain/Lumachain.LUMA/core/types/interfaces"
	lumaerr "github.com/lumachain/Lumachain.LUMA/errors"
)

type DefaultProcessor struct {
}

func (t *DefaultProcessor) ExecuteTx(params interfaces.Parameters) lumaerr.LumaError {
	return lumaerr.Simple(lumaerr.ErrFail,
		errors.New("transaction type does not execute"))
}

// generateRegID grants a first time sender its on chain register id
// from the position this transaction occupies in the block.
func generateRegID(acc *account.Account, blockHeight uint32, txIndex uint16) {
	if acc.IsRegistered() {
		return
	}
	acc.RegID = common2.RegID{Height: blockHeight, Index: txIndex}
}
