// Copyright (c) 2019-2022 The Lumachain Foundation
// Use of this source code is governed by an MIT
// license that can be found in the LICENSE file.
//

package mempool

import (
	"errors"
	"sort"

	"github.com/lumachain/Lumachain.LUMA/common"
	"github.com/lumachain/Lumachain.LUMA/core/types/interfaces"
	lumaerr "github.com/lumachain/Lumachain.LUMA/errors"
)

type popBackFunc func(common.Uint256)

type txFeeRecord struct {
	txHash  common.Uint256
	feeRate float64
	size    uint64
}

// txFeeOrderedList keeps the pool occupants ordered by fee rate, best
// paying first, so the cheapest transaction is always the one to fall
// out when the byte budget runs dry.
type txFeeOrderedList struct {
	list      []txFeeRecord
	totalSize uint64
	maxSize   uint64
	onPopBack popBackFunc
}

func newTxFeeOrderedList(onPopBack popBackFunc,
	maxSize uint64) *txFeeOrderedList {
	return &txFeeOrderedList{
		list:      make([]txFeeRecord, 0),
		maxSize:   maxSize,
		onPopBack: onPopBack,
	}
}

// AddTx pushes the transaction into fee rate order, evicting the
// cheapest tail entries when room has to be made.  A transaction that
// cannot pay its way past the existing tail is refused.
func (l *txFeeOrderedList) AddTx(tx interfaces.Transaction) lumaerr.LumaError {
	size := tx.GetSize()
	if size <= 0 {
		return lumaerr.Simple(lumaerr.ErrTxSize,
			errors.New("invalid transaction size"))
	}
	record := txFeeRecord{
		txHash:  tx.Hash(),
		feeRate: float64(tx.Fees()) / float64(size),
		size:    uint64(size),
	}

	for l.totalSize+record.size > l.maxSize {
		if len(l.list) == 0 ||
			l.list[len(l.list)-1].feeRate >= record.feeRate {
			return lumaerr.Simple(lumaerr.ErrTxPoolOverCapacity,
				errors.New("fee rate too low to displace pooled transactions"))
		}
		popped := l.list[len(l.list)-1]
		l.list = l.list[:len(l.list)-1]
		l.totalSize -= popped.size
		l.onPopBack(popped.txHash)
	}

	idx := sort.Search(len(l.list), func(i int) bool {
		return l.list[i].feeRate < record.feeRate
	})
	l.list = append(l.list, txFeeRecord{})
	copy(l.list[idx+1:], l.list[idx:])
	l.list[idx] = record
	l.totalSize += record.size
	return nil
}

// RemoveTx drops the record of one transaction.  The fee rate narrows
// the search to the record's run; rates compare exactly because the
// caller derives them the same way AddTx did.
func (l *txFeeOrderedList) RemoveTx(hash common.Uint256, txSize uint64,
	feeRate float64) bool {

	idx := sort.Search(len(l.list), func(i int) bool {
		return l.list[i].feeRate <= feeRate
	})
	for ; idx < len(l.list) && l.list[idx].feeRate == feeRate; idx++ {
		if l.list[idx].txHash.IsEqual(hash) {
			l.list = append(l.list[:idx], l.list[idx+1:]...)
			l.totalSize -= txSize
			return true
		}
	}
	return false
}

// OverSize reports whether adding size more bytes would break the
// budget.
func (l *txFeeOrderedList) OverSize(size uint64) bool {
	return l.totalSize+size > l.maxSize
}

func (l *txFeeOrderedList) GetSize() int {
	return len(l.list)
}
