// Copyright (c) 2019-2022 The Lumachain Foundation
// Use of this source code is governed by an MIT
// license that can be found in the LICENSE file.
//

package transaction

import (
	"bytes"
	"errors"
	"fmt"
	"io"

	"github.com/lumachain/Lumachain.LUMA/common"
	common2 "github.com/lumachain/Lumachain.LUMA/core/types/common"
	"github.com/lumachain/Lumachain.LUMA/core/types/interfaces"
	"github.com/lumachain/Lumachain.LUMA/crypto"
)

const (
	InvalidTransactionSize = -1

	// MaxTransactionSize caps one whole serialized transaction.
	MaxTransactionSize = 8 * 1024 * 1024

	// MaxMemoDataSize is the wire cap when reading a memo; the
	// consensus memo gate is far stricter.
	MaxMemoDataSize = 65535
)

type BaseTransaction struct {
	DefaultChecker
	DefaultProcessor

	version        common2.TransactionVersion
	txType         common2.TxType
	payloadVersion byte
	payload        interfaces.Payload
	txUid          common2.UserID
	feeSymbol      string
	fees           uint64
	validHeight    uint32
	memo           []byte
	signature      []byte

	txHash *common.Uint256
}

func (tx *BaseTransaction) Version() common2.TransactionVersion {
	return tx.version
}

func (tx *BaseTransaction) TxType() common2.TxType {
	return tx.txType
}

func (tx *BaseTransaction) PayloadVersion() byte {
	return tx.payloadVersion
}

func (tx *BaseTransaction) Payload() interfaces.Payload {
	return tx.payload
}

func (tx *BaseTransaction) TxUid() common2.UserID {
	return tx.txUid
}

func (tx *BaseTransaction) FeeSymbol() string {
	return tx.feeSymbol
}

func (tx *BaseTransaction) Fees() uint64 {
	return tx.fees
}

func (tx *BaseTransaction) ValidHeight() uint32 {
	return tx.validHeight
}

func (tx *BaseTransaction) Memo() []byte {
	return tx.memo
}

func (tx *BaseTransaction) Signature() []byte {
	return tx.signature
}

func (tx *BaseTransaction) SetVersion(version common2.TransactionVersion) {
	tx.version = version
}

func (tx *BaseTransaction) SetTxType(txType common2.TxType) {
	tx.txType = txType
}

func (tx *BaseTransaction) SetPayloadVersion(payloadVersion byte) {
	tx.payloadVersion = payloadVersion
}

func (tx *BaseTransaction) SetPayload(payload interfaces.Payload) {
	tx.payload = payload
}

func (tx *BaseTransaction) SetTxUid(uid common2.UserID) {
	tx.txUid = uid
}

func (tx *BaseTransaction) SetFeeSymbol(symbol string) {
	tx.feeSymbol = symbol
}

func (tx *BaseTransaction) SetFees(fees uint64) {
	tx.fees = fees
}

func (tx *BaseTransaction) SetValidHeight(height uint32) {
	tx.validHeight = height
}

func (tx *BaseTransaction) SetMemo(memo []byte) {
	tx.memo = memo
}

func (tx *BaseTransaction) SetSignature(signature []byte) {
	tx.signature = signature
}

func (tx *BaseTransaction) String() string {
	return fmt.Sprint("BaseTransaction: {\n\t",
		"Hash: ", tx.hash().String(), "\n\t",
		"Version: ", tx.version, "\n\t",
		"TxType: ", tx.txType.Name(), "\n\t",
		"PayloadVersion: ", tx.payloadVersion, "\n\t",
		"Payload: ", common.BytesToHexString(tx.payload.Data(tx.payloadVersion)), "\n\t",
		"TxUid: ", tx.txUid.String(), "\n\t",
		"FeeSymbol: ", tx.feeSymbol, "\n\t",
		"Fees: ", tx.fees, "\n\t",
		"ValidHeight: ", tx.validHeight, "\n\t",
		"Memo: ", common.BytesToHexString(tx.memo), "\n\t",
		"}\n")
}

func (tx *BaseTransaction) ToJSON() map[string]interface{} {
	return map[string]interface{}{
		"hash":           common.ToReversedString(tx.Hash()),
		"version":        byte(tx.version),
		"txType":         tx.txType.Name(),
		"payloadVersion": tx.payloadVersion,
		"payload":        tx.payload.ToJSON(),
		"txUid":          tx.txUid.String(),
		"feeSymbol":      tx.feeSymbol,
		"fees":           tx.fees,
		"validHeight":    tx.validHeight,
		"memo":           common.BytesToHexString(tx.memo),
		"signature":      common.BytesToHexString(tx.signature),
		"size":           tx.GetSize(),
	}
}

// Serialize the BaseTransaction
func (tx *BaseTransaction) Serialize(w io.Writer) error {
	if err := tx.SerializeUnsigned(w); err != nil {
		return errors.New("BaseTransaction txSerializeUnsigned Serialize failed, " + err.Error())
	}
	if err := common.WriteVarBytes(w, tx.signature); err != nil {
		return errors.New("BaseTransaction signature Serialize failed, " + err.Error())
	}
	return nil
}

// Serialize the BaseTransaction data without the signature
func (tx *BaseTransaction) SerializeUnsigned(w io.Writer) error {
	// Version
	if _, err := w.Write([]byte{byte(tx.version)}); err != nil {
		return err
	}
	// TxType
	if _, err := w.Write([]byte{byte(tx.txType)}); err != nil {
		return err
	}
	// PayloadVersion
	if _, err := w.Write([]byte{tx.payloadVersion}); err != nil {
		return err
	}
	// Payload
	if tx.payload == nil {
		return errors.New("BaseTransaction Payload is nil.")
	}
	if err := tx.payload.Serialize(w, tx.payloadVersion); err != nil {
		return err
	}
	if err := tx.txUid.Serialize(w); err != nil {
		return err
	}
	if err := common.WriteVarString(w, tx.feeSymbol); err != nil {
		return err
	}
	if err := common.WriteUint64(w, tx.fees); err != nil {
		return err
	}
	if err := common.WriteUint32(w, tx.validHeight); err != nil {
		return err
	}
	return common.WriteVarBytes(w, tx.memo)
}

// Deserialize the BaseTransaction.  The version and type bytes have
// already been consumed by the factory that constructed this value.
func (tx *BaseTransaction) Deserialize(r io.Reader) error {
	if err := tx.DeserializeUnsigned(r); err != nil {
		return errors.New("transaction Deserialize error: " + err.Error())
	}

	signature, err := common.ReadVarBytes(r, crypto.SignatureLength, "signature")
	if err != nil {
		return errors.New("transaction deserialize signature error: " + err.Error())
	}
	tx.signature = signature
	return nil
}

func (tx *BaseTransaction) DeserializeUnsigned(r io.Reader) error {
	payloadVersion, err := common.ReadBytes(r, 1)
	if err != nil {
		return err
	}
	tx.payloadVersion = payloadVersion[0]

	tx.payload, err = interfaces.GetPayload(tx.txType, tx.payloadVersion)
	if err != nil {
		return err
	}

	err = tx.payload.Deserialize(r, tx.payloadVersion)
	if err != nil {
		return errors.New("deserialize Payload failed: " + err.Error())
	}

	if err := tx.txUid.Deserialize(r); err != nil {
		return err
	}
	if tx.feeSymbol, err = common.ReadVarString(r); err != nil {
		return err
	}
	if tx.fees, err = common.ReadUint64(r); err != nil {
		return err
	}
	if tx.validHeight, err = common.ReadUint32(r); err != nil {
		return err
	}
	tx.memo, err = common.ReadVarBytes(r, MaxMemoDataSize, "memo")
	return err
}

func (tx *BaseTransaction) GetSize() int {
	buf := new(bytes.Buffer)
	if err := tx.Serialize(buf); err != nil {
		return InvalidTransactionSize
	}
	return buf.Len()
}

func (tx *BaseTransaction) hash() common.Uint256 {
	buf := new(bytes.Buffer)
	tx.SerializeUnsigned(buf)
	return common.Hash(buf.Bytes())
}

func (tx *BaseTransaction) Hash() common.Uint256 {
	if tx.txHash == nil {
		txHash := tx.hash()
		tx.txHash = &txHash
	}
	return *tx.txHash
}

func (tx *BaseTransaction) IsCoinBaseTx() bool {
	return tx.txType == common2.CoinBase
}

func (tx *BaseTransaction) IsCoinTransferTx() bool {
	return tx.txType == common2.CoinTransfer
}

func (tx *BaseTransaction) IsCoinUTXOTransferTx() bool {
	return tx.txType == common2.CoinUTXOTransfer
}
