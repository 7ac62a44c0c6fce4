package ws

import (
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
)

func TestHub_RegisterUnregister(t *testing.T) {
	hub := NewHub(zerolog.Nop())
	assert.Equal(t, 0, hub.ClientCount())

	c := &Client{hub: hub, send: make(chan []byte, 1)}
	hub.Register(c)
	assert.Equal(t, 1, hub.ClientCount())

	hub.Unregister(c)
	assert.Equal(t, 0, hub.ClientCount())

	// Unregistering twice must not panic or double-close.
	hub.Unregister(c)
	assert.Equal(t, 0, hub.ClientCount())
}

func TestHub_Broadcast(t *testing.T) {
	hub := NewHub(zerolog.Nop())

	a := &Client{hub: hub, send: make(chan []byte, 1)}
	b := &Client{hub: hub, send: make(chan []byte, 1)}
	hub.Register(a)
	hub.Register(b)

	hub.Broadcast([]byte("hello"))

	assert.Equal(t, []byte("hello"), <-a.send)
	assert.Equal(t, []byte("hello"), <-b.send)
}

func TestHub_BroadcastSkipsFullClient(t *testing.T) {
	hub := NewHub(zerolog.Nop())

	full := &Client{hub: hub, send: make(chan []byte, 1)}
	full.send <- []byte("stale")
	ok := &Client{hub: hub, send: make(chan []byte, 1)}
	hub.Register(full)
	hub.Register(ok)

	hub.Broadcast([]byte("fresh"))

	assert.Equal(t, []byte("fresh"), <-ok.send, "healthy client still receives")
	assert.Equal(t, []byte("stale"), <-full.send, "full client keeps its old message")
}
