package websocket

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/dom/banner-admin/internal/domain"
	"github.com/google/uuid"
)

const expireTimeout = 10 * time.Second

// Expirer hides a banner once its countdown of the given length has run out.
type Expirer interface {
	Expire(ctx context.Context, id uuid.UUID, countdown int) (*domain.Banner, error)
}

// BannerFeed publishes banner changes to the hub and keeps one countdown
// running for every visible banner that has a timer.
type BannerFeed struct {
	hub     *Hub
	timers  *TimerManager
	expirer Expirer
	mu      sync.RWMutex
}

func NewBannerFeed(hub *Hub, tickInterval time.Duration) *BannerFeed {
	f := &BannerFeed{hub: hub}
	f.timers = NewTimerManager(tickInterval, f.tick, f.expired)
	return f
}

// SetExpirer wires the component that persists expiry. It is set after
// construction because the banner service itself notifies this feed.
func (f *BannerFeed) SetExpirer(e Expirer) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.expirer = e
}

func (f *BannerFeed) BannerCreated(banner *domain.Banner) {
	f.publish(MessageTypeBannerCreated, banner)
	f.sync(banner)
}

func (f *BannerFeed) BannerUpdated(banner *domain.Banner) {
	f.publish(MessageTypeBannerUpdated, banner)
	f.sync(banner)
}

// Timers exposes the countdown state, mainly for tests and diagnostics.
func (f *BannerFeed) Timers() *TimerManager {
	return f.timers
}

// Stop cancels every running countdown.
func (f *BannerFeed) Stop() {
	f.timers.Stop()
}

func (f *BannerFeed) sync(banner *domain.Banner) {
	if banner.HasTimer() {
		f.timers.Ensure(banner.ID, banner.Countdown)
		return
	}
	f.timers.Cancel(banner.ID)
}

func (f *BannerFeed) publish(msgType MessageType, banner *domain.Banner) {
	msg, err := NewMessage(msgType, BannerPayload{Banner: banner})
	if err != nil {
		log.Printf("ERROR [websocket.BannerFeed] bannerID=%s: %v", banner.ID, err)
		return
	}
	f.hub.Broadcast(msg)
}

func (f *BannerFeed) tick(bannerID uuid.UUID, remaining int) {
	msg, err := NewMessage(MessageTypeCountdownTick, CountdownTickPayload{
		BannerID:  bannerID,
		Remaining: remaining,
	})
	if err != nil {
		return
	}
	f.hub.Broadcast(msg)
}

func (f *BannerFeed) expired(bannerID uuid.UUID, seconds int) {
	// Restarted by an edit after this countdown ran out
	if f.timers.Active(bannerID) {
		return
	}

	msg, err := NewMessage(MessageTypeCountdownExpired, CountdownExpiredPayload{BannerID: bannerID})
	if err == nil {
		f.hub.Broadcast(msg)
	}

	f.mu.RLock()
	expirer := f.expirer
	f.mu.RUnlock()
	if expirer == nil {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), expireTimeout)
	defer cancel()

	if _, err := expirer.Expire(ctx, bannerID, seconds); err != nil {
		log.Printf("ERROR [websocket.BannerFeed] failed to expire bannerID=%s: %v", bannerID, err)
	}
}
