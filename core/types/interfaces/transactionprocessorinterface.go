// Copyright (c) 2019-2022 The Lumachain Foundation
// Use of this source code is governed by an MIT
// license that can be found in the LICENSE file.
//

package interfaces

import (
	lumaerr "github.com/lumachain/Lumachain.LUMA/errors"
)

type TransactionProcessor interface {
	// ExecuteTx settles the transaction against chain state inside the
	// batch carried by p.  A non nil return leaves the batch untouched
	// from the caller's point of view, the ledger rolls it back.
	ExecuteTx(p Parameters) lumaerr.LumaError
}
