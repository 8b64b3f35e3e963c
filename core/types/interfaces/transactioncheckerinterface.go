// Copyright (c) 2019-2022 The Lumachain Foundation
// Use of this source code is governed by an MIT
// license that can be found in the LICENSE file.
//

package interfaces

import (
	"github.com/lumachain/Lumachain.LUMA/core/types/utxo"
	lumaerr "github.com/lumachain/Lumachain.LUMA/errors"
)

type PayloadChecker interface {
	ContextCheck(p Parameters) (map[*utxo.Input]utxo.Output, lumaerr.LumaError)

	SanityCheck(p Parameters) lumaerr.LumaError
}

type BasePayloadChecker interface {
	HeightVersionCheck() error

	SpecialContextCheck() (error lumaerr.LumaError, end bool)
}
