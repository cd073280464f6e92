package websocket

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHub_BroadcastReachesEveryClient(t *testing.T) {
	hub := NewHub()
	go hub.Run()
	defer hub.Stop()

	a := NewClient(hub, nil, uuid.New())
	b := NewClient(hub, nil, uuid.New())
	hub.Register(a)
	hub.Register(b)
	require.Eventually(t, func() bool { return hub.ClientCount() == 2 }, time.Second, time.Millisecond)

	msg, err := NewMessage(MessageTypeCountdownExpired, CountdownExpiredPayload{BannerID: uuid.New()})
	require.NoError(t, err)
	hub.Broadcast(msg)

	for _, c := range []*Client{a, b} {
		select {
		case data := <-c.send:
			assert.Contains(t, string(data), string(MessageTypeCountdownExpired))
		case <-time.After(time.Second):
			t.Fatal("client did not receive broadcast")
		}
	}
}

func TestHub_DropsSlowClient(t *testing.T) {
	hub := NewHub()
	go hub.Run()
	defer hub.Stop()

	slow := NewClient(hub, nil, uuid.New())
	hub.Register(slow)
	require.Eventually(t, func() bool { return hub.ClientCount() == 1 }, time.Second, time.Millisecond)

	msg, err := NewMessage(MessageTypeCountdownTick, CountdownTickPayload{BannerID: uuid.New(), Remaining: 1})
	require.NoError(t, err)
	for i := 0; i < cap(slow.send)+1; i++ {
		hub.Broadcast(msg)
	}

	require.Eventually(t, func() bool { return hub.ClientCount() == 0 }, time.Second, time.Millisecond)
}

func TestHub_StopClosesClients(t *testing.T) {
	hub := NewHub()
	go hub.Run()

	c := NewClient(hub, nil, uuid.New())
	hub.Register(c)
	require.Eventually(t, func() bool { return hub.ClientCount() == 1 }, time.Second, time.Millisecond)

	hub.Stop()
	assert.Equal(t, 0, hub.ClientCount())

	// send is closed once drained
	for range c.send {
	}

	// Calls after Stop must not block
	hub.Register(NewClient(hub, nil, uuid.New()))
	hub.Unregister(c)
	hub.Stop()
}
