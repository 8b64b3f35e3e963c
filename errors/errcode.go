// Copyright (c) 2019-2022 The Lumachain Foundation
// Use of this source code is governed by an MIT
// license that can be found in the LICENSE file.
//

package errors

// ErrCode identifies one reject rule.  The code itself is node-local;
// what travels to peers is the Reason string, which is consensus-stable
// and must never be reworded.
type ErrCode int32

const (
	ErrFail ErrCode = -1
	Success ErrCode = 0
)

// Structural errors, malformed envelope or payload form.
const (
	ErrTxDisabled     ErrCode = 10101
	ErrTxMemoSize     ErrCode = 10102
	ErrTxUidType      ErrCode = 10103
	ErrTxValidHeight  ErrCode = 10104
	ErrTxVinsSize     ErrCode = 10105
	ErrTxVoutsSize    ErrCode = 10106
	ErrTxUTXOEmpty    ErrCode = 10107
	ErrTxZeroOutput   ErrCode = 10108
	ErrTxCondType     ErrCode = 10109
	ErrTxPayload      ErrCode = 10110
	ErrTxDuplicate    ErrCode = 10111
	ErrTxHashMismatch ErrCode = 10112
	ErrTxSize         ErrCode = 10113
)

// Authorization errors, the spender failed to satisfy a condition.
const (
	ErrUidMismatch    ErrCode = 10201
	ErrUidEmpty       ErrCode = 10202
	ErrSecretMismatch ErrCode = 10203
	ErrCondMismatch   ErrCode = 10204
	ErrEmptyHashLock  ErrCode = 10205
	ErrPublicKey      ErrCode = 10206
	ErrTxSignature    ErrCode = 10207
)

// Temporal errors, a height lock has not matured.
const (
	ErrTooEarlyToClaim  ErrCode = 10301
	ErrClaimLockEmpty   ErrCode = 10302
	ErrReclaimLockEmpty ErrCode = 10303
)

// Economic errors, fees or balances do not cover the transfer.
const (
	ErrFeeSymbol           ErrCode = 10401
	ErrFeeTooSmall         ErrCode = 10402
	ErrBalanceInsufficient ErrCode = 10403
	ErrFundOperate         ErrCode = 10404
)

// Consistency errors, a referenced prior output is unusable.
const (
	ErrPrevUTXOLoad     ErrCode = 10501
	ErrPrevUTXOIndexOOR ErrCode = 10502
	ErrDoubleSpend      ErrCode = 10503
)

// Infrastructure errors, the underlying store failed us.
const (
	ErrGetAccount  ErrCode = 10601
	ErrReadAccount ErrCode = 10602
	ErrSaveAccount ErrCode = 10603
	ErrDelPrevUTXO ErrCode = 10604
	ErrSetUTXO     ErrCode = 10605
	ErrSetReceipt  ErrCode = 10606
)

// Memory pool admission errors; these never reach the chain.
const (
	ErrTxPoolFailure      ErrCode = 10701
	ErrTxPoolOverCapacity ErrCode = 10702
)

// RPC surface errors.  They shape HTTP and websocket replies only and
// never travel between nodes.
const (
	ErrSessionExpired     ErrCode = 41001
	ErrIllegalDataFormat  ErrCode = 41003
	ErrInvalidMethod      ErrCode = 42001
	ErrInvalidParams      ErrCode = 42002
	ErrInvalidTransaction ErrCode = 43001
	ErrUnknownTransaction ErrCode = 44001
)

// SeverityMalicious is the DoS score charged for every coded reject;
// all of them indicate either a malformed or a forged transaction.
const SeverityMalicious = 100

type errInfo struct {
	name   string
	reason string
}

// The reason strings mirror the chain's historical wire values exactly,
// including the quirks: the reclaim lock reuses too-early-to-claim-err
// and the account write failure reuses bad-read-accountdb.
var errInfos = map[ErrCode]errInfo{
	ErrFail:    {"ErrFail", "operation-failed"},
	Success:    {"Success", ""},
	ErrTxDisabled:     {"ErrTxDisabled", "tx-disabled-err"},
	ErrTxMemoSize:     {"ErrTxMemoSize", "memo-size-toolarge"},
	ErrTxUidType:      {"ErrTxUidType", "txuid-type-err"},
	ErrTxValidHeight:  {"ErrTxValidHeight", "tx-exceed-height-err"},
	ErrTxVinsSize:     {"ErrTxVinsSize", "vins-size-too-large"},
	ErrTxVoutsSize:    {"ErrTxVoutsSize", "vouts-size-too-large"},
	ErrTxUTXOEmpty:    {"ErrTxUTXOEmpty", "utxo-empty-err"},
	ErrTxZeroOutput:   {"ErrTxZeroOutput", "zero-output-amount-err"},
	ErrTxCondType:     {"ErrTxCondType", "cond-type-err"},
	ErrTxPayload:      {"ErrTxPayload", "bad-tx-payload"},
	ErrTxDuplicate:    {"ErrTxDuplicate", "tx-duplicate-err"},
	ErrTxHashMismatch: {"ErrTxHashMismatch", "tx-hash-mismatch-err"},
	ErrTxSize:         {"ErrTxSize", "tx-size-invalid-err"},
	ErrUidMismatch:    {"ErrUidMismatch", "uid-mismatches-err"},
	ErrUidEmpty:       {"ErrUidEmpty", "uid-empty-err"},
	ErrSecretMismatch: {"ErrSecretMismatch", "secret-mismatches-err"},
	ErrCondMismatch:   {"ErrCondMismatch", "cond-mismatches-err"},
	ErrEmptyHashLock:  {"ErrEmptyHashLock", "empty-hash-lock-err"},
	ErrPublicKey:      {"ErrPublicKey", "bad-publickey"},
	ErrTxSignature:    {"ErrTxSignature", "bad-tx-signature"},
	ErrTooEarlyToClaim:  {"ErrTooEarlyToClaim", "too-early-to-claim-err"},
	ErrClaimLockEmpty:   {"ErrClaimLockEmpty", "claim-lock-empty-err"},
	ErrReclaimLockEmpty: {"ErrReclaimLockEmpty", "reclaim-lock-empty-err"},
	ErrFeeSymbol:           {"ErrFeeSymbol", "invalid-fee-symbol"},
	ErrFeeTooSmall:         {"ErrFeeTooSmall", "bad-tx-fee-toosmall"},
	ErrBalanceInsufficient: {"ErrBalanceInsufficient", "insufficient-account-coin-amount"},
	ErrFundOperate:         {"ErrFundOperate", "insufficient-fund-utxo"},
	ErrPrevUTXOLoad:     {"ErrPrevUTXOLoad", "failed-to-load-prev-utxo-err"},
	ErrPrevUTXOIndexOOR: {"ErrPrevUTXOIndexOOR", "prev-utxo-index-OOR-err"},
	ErrDoubleSpend:      {"ErrDoubleSpend", "double-spend-prev-utxo-err"},
	ErrGetAccount:  {"ErrGetAccount", "bad-getaccount"},
	ErrReadAccount: {"ErrReadAccount", "bad-read-accountdb"},
	ErrSaveAccount: {"ErrSaveAccount", "bad-read-accountdb"},
	ErrDelPrevUTXO: {"ErrDelPrevUTXO", "del-prev-utxo-err"},
	ErrSetUTXO:     {"ErrSetUTXO", "set-utxo-err"},
	ErrSetReceipt:  {"ErrSetReceipt", "set-tx-receipt-failed"},
	ErrTxPoolFailure:      {"ErrTxPoolFailure", "tx-pool-conflict-err"},
	ErrTxPoolOverCapacity: {"ErrTxPoolOverCapacity", "tx-pool-over-capacity-err"},
	ErrSessionExpired:     {"ErrSessionExpired", "session-expired"},
	ErrIllegalDataFormat:  {"ErrIllegalDataFormat", "illegal-data-format"},
	ErrInvalidMethod:      {"ErrInvalidMethod", "invalid-method"},
	ErrInvalidParams:      {"ErrInvalidParams", "invalid-params"},
	ErrInvalidTransaction: {"ErrInvalidTransaction", "invalid-transaction"},
	ErrUnknownTransaction: {"ErrUnknownTransaction", "unknown-transaction"},
}

func (code ErrCode) String() string {
	if info, ok := errInfos[code]; ok {
		return info.name
	}
	return "Unknown"
}

// Reason returns the stable machine-readable reject reason.
func (code ErrCode) Reason() string {
	if info, ok := errInfos[code]; ok {
		return info.reason
	}
	return "unknown-err"
}
