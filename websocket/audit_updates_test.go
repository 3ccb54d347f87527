package websocket

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dangtoan2205/asset-manager-sub000/models"
)

func TestDropClosesSendExactlyOnce(t *testing.T) {
	c := &client{send: make(chan []byte, 1)}
	hub.mutex.Lock()
	hub.clients[c] = true
	hub.mutex.Unlock()

	done := make(chan struct{})
	go func() {
		// Stand-in for writePump's range loop: must exit once send closes
		for range c.send {
		}
		close(done)
	}()

	hub.mutex.Lock()
	hub.dropLocked(c)
	hub.dropLocked(c) // disconnect racing the slow-client path: no double close
	hub.mutex.Unlock()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("send channel was not closed on drop")
	}
	assert.Equal(t, 0, clientCount())
}

func TestBroadcastDropsSlowClient(t *testing.T) {
	fast := &client{send: make(chan []byte, 16)}
	slow := &client{send: make(chan []byte)} // unbuffered, nobody reading
	hub.mutex.Lock()
	hub.clients[fast] = true
	hub.clients[slow] = true
	hub.mutex.Unlock()

	BroadcastAudit(&models.AuditLog{Action: "device_create", CreatedAt: time.Now().UTC()})

	// The slow client is gone and its channel closed; the fast one got the event
	_, open := <-slow.send
	assert.False(t, open)
	require.Len(t, fast.send, 1)
	assert.Equal(t, 1, clientCount())

	hub.mutex.Lock()
	hub.dropLocked(fast)
	hub.mutex.Unlock()
}
