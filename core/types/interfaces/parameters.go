// Copyright (c) 2019-2022 The Lumachain Foundation
// Use of this source code is governed by an MIT
// license that can be found in the LICENSE file.
//

package interfaces

// Parameters is the opaque handle threaded through the checking and
// executing pipeline.  Concrete transaction implementations assert it
// back to the parameter struct their package registered through
// functions.GetTransactionParameters.
type Parameters interface {
}
