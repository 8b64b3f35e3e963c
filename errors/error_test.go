// Copyright (c) 2019-2022 The Lumachain Foundation
// Use of this source code is governed by an MIT
// license that can be found in the LICENSE file.
//

package errors

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSimple(t *testing.T) {
	inner := errors.New("balance 100 plus 0 in does not cover 300 out plus 0 fees")
	err := Simple(ErrBalanceInsufficient, inner)

	assert.Equal(t, ErrBalanceInsufficient, err.Code())
	assert.Equal(t, inner, err.InnerError())
	assert.EqualError(t, err,
		"insufficient-account-coin-amount: "+inner.Error())

	// codes like duplicate carry no inner detail
	bare := Simple(ErrTxDuplicate, nil)
	assert.Nil(t, bare.InnerError())
	assert.EqualError(t, bare, "tx-duplicate-err")
}

func TestSimpleWithMessage(t *testing.T) {
	err := SimpleWithMessage(ErrTxPayload, errors.New("boom"), "decoding vouts")
	assert.Equal(t, ErrTxPayload, err.Code())
	assert.EqualError(t, err.InnerError(), "decoding vouts: boom")

	err = SimpleWithMessage(ErrTxPayload, nil, "decoding vouts")
	assert.EqualError(t, err.InnerError(), "decoding vouts")
}

func TestReasonStability(t *testing.T) {
	// reject reasons travel between nodes; rewording one forks the net
	assert.Equal(t, "uid-mismatches-err", ErrUidMismatch.Reason())
	assert.Equal(t, "double-spend-prev-utxo-err", ErrDoubleSpend.Reason())
	assert.Equal(t, "too-early-to-claim-err", ErrTooEarlyToClaim.Reason())
	assert.Equal(t, "bad-tx-fee-toosmall", ErrFeeTooSmall.Reason())
	assert.Equal(t, "prev-utxo-index-OOR-err", ErrPrevUTXOIndexOOR.Reason())

	// historical quirk carried on purpose: account read and write
	// failures share one reason
	assert.Equal(t, ErrReadAccount.Reason(), ErrSaveAccount.Reason())

	assert.Equal(t, "unknown-err", ErrCode(99999).Reason())
	assert.Equal(t, "Unknown", ErrCode(99999).String())
	assert.Equal(t, "ErrDoubleSpend", ErrDoubleSpend.String())
}
