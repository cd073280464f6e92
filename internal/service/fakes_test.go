package service_test

import (
	"context"
	"errors"
	"sort"
	"sync"

	"github.com/dom/banner-admin/internal/domain"
	"github.com/google/uuid"
)

var errStoreDown = errors.New("store unavailable")

// memUserRepo is an in-memory UserRepository enforcing unique emails.
type memUserRepo struct {
	mu    sync.Mutex
	users map[uuid.UUID]*domain.User

	// lookupMisses makes GetByEmail report ErrNotFound even for stored
	// emails, simulating a concurrent signup that won the insert.
	lookupMisses bool
	lookupErr    error
	createErr    error
}

func newMemUserRepo() *memUserRepo {
	return &memUserRepo{users: make(map[uuid.UUID]*domain.User)}
}

func (r *memUserRepo) Create(_ context.Context, user *domain.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.createErr != nil {
		return r.createErr
	}
	for _, u := range r.users {
		if u.Email == user.Email {
			return domain.ErrDuplicateKey
		}
	}
	cp := *user
	r.users[user.ID] = &cp
	return nil
}

func (r *memUserRepo) GetByID(_ context.Context, id uuid.UUID) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	u, ok := r.users[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	cp := *u
	return &cp, nil
}

func (r *memUserRepo) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.lookupErr != nil {
		return nil, r.lookupErr
	}
	if r.lookupMisses {
		return nil, domain.ErrNotFound
	}
	for _, u := range r.users {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (r *memUserRepo) List(_ context.Context) ([]*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]*domain.User, 0, len(r.users))
	for _, u := range r.users {
		cp := *u
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Email < out[j].Email })
	return out, nil
}

func (r *memUserRepo) Update(_ context.Context, user *domain.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.users[user.ID]; !ok {
		return domain.ErrNotFound
	}
	for id, u := range r.users {
		if id != user.ID && u.Email == user.Email {
			return domain.ErrDuplicateKey
		}
	}
	cp := *user
	r.users[user.ID] = &cp
	return nil
}

type memBannerRepo struct {
	mu      sync.Mutex
	banners []*domain.Banner

	// beforeHide runs just before Hide writes, standing in for an admin
	// edit that commits while the expiry is in flight.
	beforeHide func()
}

func (r *memBannerRepo) Create(_ context.Context, banner *domain.Banner) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	cp := *banner
	r.banners = append(r.banners, &cp)
	return nil
}

func (r *memBannerRepo) GetByID(_ context.Context, id uuid.UUID) (*domain.Banner, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, b := range r.banners {
		if b.ID == id {
			cp := *b
			return &cp, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (r *memBannerRepo) List(_ context.Context) ([]*domain.Banner, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]*domain.Banner, len(r.banners))
	for i, b := range r.banners {
		cp := *b
		out[i] = &cp
	}
	return out, nil
}

func (r *memBannerRepo) Update(_ context.Context, banner *domain.Banner) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i, b := range r.banners {
		if b.ID == banner.ID {
			cp := *banner
			r.banners[i] = &cp
			return nil
		}
	}
	return domain.ErrNotFound
}

func (r *memBannerRepo) Hide(_ context.Context, id uuid.UUID, countdown int) (bool, error) {
	if r.beforeHide != nil {
		r.beforeHide()
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	for _, b := range r.banners {
		if b.ID == id && b.Visible && b.Countdown == countdown {
			b.Visible = false
			return true, nil
		}
	}
	return false, nil
}

// blockingListRepo holds List calls until release is closed, and fails them
// early if their own context ends first.
type blockingListRepo struct {
	*memBannerRepo
	entered chan struct{}
	release chan struct{}
}

func newBlockingListRepo() *blockingListRepo {
	return &blockingListRepo{
		memBannerRepo: &memBannerRepo{},
		entered:       make(chan struct{}, 16),
		release:       make(chan struct{}),
	}
}

func (r *blockingListRepo) List(ctx context.Context) ([]*domain.Banner, error) {
	r.entered <- struct{}{}
	select {
	case <-r.release:
		return r.memBannerRepo.List(ctx)
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// recordingNotifier captures banner events in order.
type recordingNotifier struct {
	mu     sync.Mutex
	events []string
	last   *domain.Banner
}

func (n *recordingNotifier) BannerCreated(b *domain.Banner) { n.record("created", b) }
func (n *recordingNotifier) BannerUpdated(b *domain.Banner) { n.record("updated", b) }

func (n *recordingNotifier) record(event string, b *domain.Banner) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.events = append(n.events, event)
	cp := *b
	n.last = &cp
}
