package websocket

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// TimerManager runs one countdown per banner. Each countdown ticks once per
// interval, reporting the seconds left, and calls onExpired with the length it
// started from when it reaches zero.
type TimerManager struct {
	interval  time.Duration
	timers    map[uuid.UUID]*countdown
	onTick    func(bannerID uuid.UUID, remaining int)
	onExpired func(bannerID uuid.UUID, seconds int)
	wg        sync.WaitGroup
	mu        sync.Mutex
}

// NewTimerManager returns a TimerManager ticking every interval.
// A non-positive interval selects one second.
func NewTimerManager(interval time.Duration, onTick func(uuid.UUID, int), onExpired func(uuid.UUID, int)) *TimerManager {
	if interval <= 0 {
		interval = time.Second
	}
	return &TimerManager{
		interval:  interval,
		timers:    make(map[uuid.UUID]*countdown),
		onTick:    onTick,
		onExpired: onExpired,
	}
}

type countdown struct {
	seconds int
	stop    chan struct{}
}

// Start (re)starts the countdown for bannerID from seconds.
func (tm *TimerManager) Start(bannerID uuid.UUID, seconds int) {
	tm.mu.Lock()
	defer tm.mu.Unlock()
	tm.startLocked(bannerID, seconds)
}

// Ensure starts a countdown for bannerID unless one started from the same
// number of seconds is already running.
func (tm *TimerManager) Ensure(bannerID uuid.UUID, seconds int) {
	tm.mu.Lock()
	defer tm.mu.Unlock()

	if cd, ok := tm.timers[bannerID]; ok && cd.seconds == seconds {
		return
	}
	tm.startLocked(bannerID, seconds)
}

func (tm *TimerManager) startLocked(bannerID uuid.UUID, seconds int) {
	if cd, ok := tm.timers[bannerID]; ok {
		close(cd.stop)
	}

	cd := &countdown{seconds: seconds, stop: make(chan struct{})}
	tm.timers[bannerID] = cd

	tm.wg.Add(1)
	go tm.run(bannerID, cd)
}

// Cancel stops the countdown for bannerID, if any, without calling onExpired.
func (tm *TimerManager) Cancel(bannerID uuid.UUID) {
	tm.mu.Lock()
	defer tm.mu.Unlock()

	if cd, ok := tm.timers[bannerID]; ok {
		close(cd.stop)
		delete(tm.timers, bannerID)
	}
}

// Active reports whether bannerID has a running countdown.
func (tm *TimerManager) Active(bannerID uuid.UUID) bool {
	tm.mu.Lock()
	defer tm.mu.Unlock()
	_, ok := tm.timers[bannerID]
	return ok
}

// Stop cancels every countdown and waits for their goroutines to exit.
func (tm *TimerManager) Stop() {
	tm.mu.Lock()
	for id, cd := range tm.timers {
		close(cd.stop)
		delete(tm.timers, id)
	}
	tm.mu.Unlock()

	tm.wg.Wait()
}

func (tm *TimerManager) run(bannerID uuid.UUID, cd *countdown) {
	defer tm.wg.Done()

	ticker := time.NewTicker(tm.interval)
	defer ticker.Stop()

	remaining := cd.seconds
	for {
		select {
		case <-cd.stop:
			return
		case <-ticker.C:
			select {
			case <-cd.stop:
				return
			default:
			}

			remaining--
			if remaining > 0 {
				tm.onTick(bannerID, remaining)
				continue
			}

			tm.mu.Lock()
			current, ok := tm.timers[bannerID]
			if !ok || current != cd {
				// Cancelled or restarted while this tick was in flight.
				tm.mu.Unlock()
				return
			}
			delete(tm.timers, bannerID)
			tm.mu.Unlock()

			tm.onExpired(bannerID, cd.seconds)
			return
		}
	}
}
