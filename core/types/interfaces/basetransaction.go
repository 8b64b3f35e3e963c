// Copyright (c) 2019-2022 The Lumachain Foundation
// Use of this source code is governed by an MIT
// license that can be found in the LICENSE file.
//

package interfaces

import (
	"io"

	"github.com/lumachain/Lumachain.LUMA/common"
	common2 "github.com/lumachain/Lumachain.LUMA/core/types/common"
)

type Transaction interface {
	PayloadChecker
	BasePayloadChecker
	TransactionProcessor

	String() string
	ToJSON() map[string]interface{}
	Serialize(w io.Writer) error
	SerializeUnsigned(w io.Writer) error
	Deserialize(r io.Reader) error
	DeserializeUnsigned(r io.Reader) error
	GetSize() int
	Hash() common.Uint256

	Version() common2.TransactionVersion
	SetVersion(version common2.TransactionVersion)
	TxType() common2.TxType
	SetTxType(txType common2.TxType)
	PayloadVersion() byte
	SetPayloadVersion(payloadVersion byte)
	Payload() Payload
	SetPayload(payload Payload)
	TxUid() common2.UserID
	SetTxUid(uid common2.UserID)
	FeeSymbol() string
	SetFeeSymbol(symbol string)
	Fees() uint64
	SetFees(fees uint64)
	ValidHeight() uint32
	SetValidHeight(height uint32)
	Memo() []byte
	SetMemo(memo []byte)
	Signature() []byte
	SetSignature(signature []byte)

	IsCoinBaseTx() bool
	IsCoinTransferTx() bool
	IsCoinUTXOTransferTx() bool

	// gates dispatched by the default checker, overridable per tx type
	CheckTransactionSize() error
	CheckTransactionMemo() error
	CheckTransactionUid() error
	CheckTransactionPayload() error
	CheckTransactionValidHeight() error
}
