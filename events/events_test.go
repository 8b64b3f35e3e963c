// Copyright (c) 2019-2022 The Lumachain Foundation
// Use of this source code is governed by an MIT
// license that can be found in the LICENSE file.
//

package events

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestNotify(t *testing.T) {
	notifyChan := make(chan EventType, 100)
	Subscribe(func(event *Event) {
		select {
		case notifyChan <- event.Type:
		default:
		}
	})

	for i := 0; i < 100; i++ {
		go func() {
			Notify(ETBlockAccepted, nil)
		}()
	}

	for i := 0; i < 100; i++ {
		select {
		case typ := <-notifyChan:
			assert.Equal(t, ETBlockAccepted, typ)
		case <-time.After(time.Second):
			t.Fatal("notify timeout")
		}
	}
}

func TestNotifyCarriesData(t *testing.T) {
	heights := make(chan uint32, 1)
	Subscribe(func(event *Event) {
		if event.Type != ETBlockConnected {
			return
		}
		if height, ok := event.Data.(uint32); ok {
			select {
			case heights <- height:
			default:
			}
		}
	})

	Notify(ETBlockConnected, uint32(7))
	select {
	case height := <-heights:
		assert.Equal(t, uint32(7), height)
	case <-time.After(time.Second):
		t.Fatal("notify timeout")
	}
}

func TestRecursiveNotify(t *testing.T) {
	done := make(chan struct{})
	Subscribe(func(event *Event) {
		if event.Type != ETBlockDisconnected {
			return
		}
		defer close(done)
		defer func() {
			assert.Equal(t, "recursive notifies detected", recover())
		}()
		// notifying from inside a callback must panic, not deadlock
		Notify(ETBlockConnected, nil)
	})

	go Notify(ETBlockDisconnected, nil)

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("recursive notify never reached the subscriber")
	}
}
