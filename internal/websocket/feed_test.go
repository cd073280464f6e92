package websocket

import (
	"context"
	"encoding/json"
	"sync"
	"testing"
	"time"

	"github.com/dom/banner-admin/internal/domain"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newTestClient registers a connectionless client whose send queue the test
// reads directly.
func newTestClient(t *testing.T, hub *Hub) *Client {
	t.Helper()

	c := NewClient(hub, nil, uuid.New())
	hub.Register(c)
	require.Eventually(t, func() bool { return hub.ClientCount() == 1 }, time.Second, time.Millisecond)
	return c
}

func nextMessage(t *testing.T, c *Client, msgType MessageType) *Message {
	t.Helper()

	deadline := time.After(2 * time.Second)
	for {
		select {
		case data, ok := <-c.send:
			require.True(t, ok, "client closed while waiting for %s", msgType)
			var msg Message
			require.NoError(t, json.Unmarshal(data, &msg))
			if msg.Type == msgType {
				return &msg
			}
		case <-deadline:
			t.Fatalf("timeout waiting for %s", msgType)
		}
	}
}

type fakeExpirer struct {
	mu         sync.Mutex
	ids        []uuid.UUID
	countdowns []int
}

func (e *fakeExpirer) Expire(_ context.Context, id uuid.UUID, countdown int) (*domain.Banner, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.ids = append(e.ids, id)
	e.countdowns = append(e.countdowns, countdown)
	return &domain.Banner{ID: id}, nil
}

func (e *fakeExpirer) expired() []uuid.UUID {
	e.mu.Lock()
	defer e.mu.Unlock()
	return append([]uuid.UUID(nil), e.ids...)
}

func newTestFeed(t *testing.T) (*Hub, *BannerFeed) {
	t.Helper()

	hub := NewHub()
	go hub.Run()
	feed := NewBannerFeed(hub, 10*time.Millisecond)

	t.Cleanup(func() {
		feed.Stop()
		hub.Stop()
	})
	return hub, feed
}

func TestBannerFeed_PublishesBannerEvents(t *testing.T) {
	hub, feed := newTestFeed(t)
	client := newTestClient(t, hub)

	banner := &domain.Banner{ID: uuid.New(), Title: "Sale"}
	feed.BannerCreated(banner)

	msg := nextMessage(t, client, MessageTypeBannerCreated)
	var payload BannerPayload
	require.NoError(t, json.Unmarshal(msg.Payload, &payload))
	assert.Equal(t, banner.ID, payload.Banner.ID)
	assert.Equal(t, "Sale", payload.Banner.Title)

	banner.Title = "Bigger sale"
	feed.BannerUpdated(banner)
	msg = nextMessage(t, client, MessageTypeBannerUpdated)
	require.NoError(t, json.Unmarshal(msg.Payload, &payload))
	assert.Equal(t, "Bigger sale", payload.Banner.Title)

	assert.False(t, feed.Timers().Active(banner.ID), "hidden banner must not run a countdown")
}

func TestBannerFeed_CountdownTicksThenExpires(t *testing.T) {
	hub, feed := newTestFeed(t)
	expirer := &fakeExpirer{}
	feed.SetExpirer(expirer)
	client := newTestClient(t, hub)

	banner := &domain.Banner{ID: uuid.New(), Visible: true, Countdown: 2}
	feed.BannerCreated(banner)
	assert.True(t, feed.Timers().Active(banner.ID))

	msg := nextMessage(t, client, MessageTypeCountdownTick)
	var tick CountdownTickPayload
	require.NoError(t, json.Unmarshal(msg.Payload, &tick))
	assert.Equal(t, banner.ID, tick.BannerID)
	assert.Equal(t, 1, tick.Remaining)

	msg = nextMessage(t, client, MessageTypeCountdownExpired)
	var expired CountdownExpiredPayload
	require.NoError(t, json.Unmarshal(msg.Payload, &expired))
	assert.Equal(t, banner.ID, expired.BannerID)

	require.Eventually(t, func() bool { return len(expirer.expired()) == 1 }, time.Second, time.Millisecond)
	assert.Equal(t, banner.ID, expirer.expired()[0])
	expirer.mu.Lock()
	assert.Equal(t, []int{2}, expirer.countdowns)
	expirer.mu.Unlock()
}

func TestBannerFeed_HidingCancelsCountdown(t *testing.T) {
	_, feed := newTestFeed(t)
	expirer := &fakeExpirer{}
	feed.SetExpirer(expirer)

	banner := &domain.Banner{ID: uuid.New(), Visible: true, Countdown: 1000}
	feed.BannerCreated(banner)
	require.True(t, feed.Timers().Active(banner.ID))

	banner.Visible = false
	feed.BannerUpdated(banner)
	assert.False(t, feed.Timers().Active(banner.ID))
	assert.Empty(t, expirer.expired())
}

func TestBannerFeed_RestartedCountdownIsNotExpired(t *testing.T) {
	_, feed := newTestFeed(t)
	expirer := &fakeExpirer{}
	feed.SetExpirer(expirer)

	id := uuid.New()
	feed.Timers().Start(id, 1000)

	// The old countdown reports expiry after an edit already started a new one
	feed.expired(id, 5)
	assert.Empty(t, expirer.expired())
	assert.True(t, feed.Timers().Active(id))
}
