// Copyright (c) 2019-2022 The Lumachain Foundation
// Use of this source code is governed by an MIT
// license that can be found in the LICENSE file.
//

package events

import (
	"sync"
	"sync/atomic"

	"github.com/lumachain/Lumachain.LUMA/common"
)

// EventType identifies the kind of a broadcast event.
type EventType int

const (
	// ETBlockAccepted is invoked when a block gets accepted into the
	// block chain.
	ETBlockAccepted EventType = iota

	// ETBlockConnected is invoked when a block gets connected to the
	// best chain.
	ETBlockConnected

	// ETBlockDisconnected is invoked when a block gets rolled back off
	// the best chain.
	ETBlockDisconnected

	// ETTransactionAccepted is invoked when a transaction has been
	// accepted into the memory pool.
	ETTransactionAccepted

	// ETResendOutdatedTxToTxPool is invoked with the transactions that
	// have stayed in the memory pool beyond the resend window and
	// should be rebroadcast.
	ETResendOutdatedTxToTxPool
)

// Event carries the type tag and the payload of one notification.
type Event struct {
	Type EventType
	Data interface{}
}

// EventCallback is the prototype of an event subscriber.
type EventCallback func(*Event)

var (
	mtx sync.Mutex

	subscribers []EventCallback

	// goroutine id of a running Notify, used to refuse re-entrance
	notifyID atomic.Value
)

// Subscribe registers the callback for all events.  There is no way to
// unsubscribe, subscribers live as long as the process.
func Subscribe(callback EventCallback) {
	mtx.Lock()
	defer mtx.Unlock()

	subscribers = append(subscribers, callback)
}

// Notify sends the event to every subscriber, synchronously, one
// subscriber at a time.  Notifying from within a callback deadlocks the
// event system, so it panics instead.
func Notify(typ EventType, data interface{}) {
	if id, ok := notifyID.Load().(string); ok && id == common.Goid() {
		panic("recursive notifies detected")
	}

	mtx.Lock()
	defer mtx.Unlock()

	notifyID.Store(common.Goid())
	defer notifyID.Store("")

	event := &Event{
		Type: typ,
		Data: data,
	}
	for _, subscriber := range subscribers {
		subscriber(event)
	}
}
