package command

import (
	"context"
	"sync"
	"time"

	"github.com/eaglebank/banking-service/internal/repository"
	"github.com/eaglebank/banking-service/shared/models"
)

// ---- in-memory stores mirroring the Postgres constraints ----

type memUserStore struct {
	mu        sync.Mutex
	byID      map[string]*models.User
	emails    map[string]string
	usernames map[string]string
}

func newMemUserStore() *memUserStore {
	return &memUserStore{
		byID:      map[string]*models.User{},
		emails:    map[string]string{},
		usernames: map[string]string{},
	}
}

func (s *memUserStore) Create(_ context.Context, u *models.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.emails[u.Email]; ok {
		return models.ErrAlreadyExists
	}
	if _, ok := s.usernames[u.Username]; ok {
		return models.ErrAlreadyExists
	}
	cp := *u
	s.byID[u.ID] = &cp
	s.emails[u.Email] = u.ID
	s.usernames[u.Username] = u.ID
	return nil
}

func (s *memUserStore) GetByEmail(_ context.Context, email string) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	id, ok := s.emails[email]
	if !ok {
		return nil, models.ErrUserNotFound
	}
	cp := *s.byID[id]
	return &cp, nil
}

func (s *memUserStore) GetByID(_ context.Context, id string) (*models.UserView, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.byID[id]
	if !ok {
		return nil, models.ErrUserNotFound
	}
	return models.UserToView(u), nil
}

type memAccountStore struct {
	mu      sync.Mutex
	nextID  int64
	byUser  map[string]*models.Account
	numbers map[int64]bool
}

func newMemAccountStore() *memAccountStore {
	return &memAccountStore{byUser: map[string]*models.Account{}, numbers: map[int64]bool{}}
}

func (s *memAccountStore) Create(_ context.Context, a *models.Account) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.numbers[a.AccountNumber] {
		return models.ErrAccountNumberTaken
	}
	if _, ok := s.byUser[a.UserID]; ok {
		return models.ErrAlreadyHasAccount
	}
	s.nextID++
	a.ID = s.nextID
	cp := *a
	s.byUser[a.UserID] = &cp
	s.numbers[a.AccountNumber] = true
	return nil
}

func (s *memAccountStore) UpdateBalance(_ context.Context, userID string, fn repository.BalanceFunc) (*models.Account, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	a, ok := s.byUser[userID]
	if !ok {
		return nil, models.ErrNoAccount
	}
	balance, err := fn(a.Balance)
	if err != nil {
		return nil, err
	}
	a.Balance = balance
	a.UpdatedAt = time.Now().UTC()
	cp := *a
	return &cp, nil
}

func (s *memAccountStore) GetByUserID(_ context.Context, userID string) (*models.Account, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	a, ok := s.byUser[userID]
	if !ok {
		return nil, models.ErrNoAccount
	}
	cp := *a
	return &cp, nil
}

// accountViews exposes memAccountStore as a read model.
type accountViews struct{ store *memAccountStore }

func (v accountViews) GetByUserID(ctx context.Context, userID string) (*models.AccountView, error) {
	a, err := v.store.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	return models.AccountToView(a), nil
}

// lateAccountStore hides existing accounts from the first hidden lookups,
// as if another request created the account between the check and the insert.
type lateAccountStore struct {
	*memAccountStore
	hidden int
}

func (s *lateAccountStore) GetByUserID(ctx context.Context, userID string) (*models.Account, error) {
	if s.hidden > 0 {
		s.hidden--
		return nil, models.ErrNoAccount
	}
	return s.memAccountStore.GetByUserID(ctx, userID)
}

// ---- read model and event doubles ----

type recordingCache struct {
	mu          sync.Mutex
	users       []*models.UserView
	accounts    []*models.AccountView
	invalidated []string
}

func (c *recordingCache) CacheUserView(_ context.Context, v *models.UserView) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.users = append(c.users, v)
}

func (c *recordingCache) CacheAccountView(_ context.Context, v *models.AccountView) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.accounts = append(c.accounts, v)
}

func (c *recordingCache) InvalidateAccountView(_ context.Context, userID string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.invalidated = append(c.invalidated, userID)
}

type publishedEvent struct {
	stream    string
	eventType string
	data      any
}

type recordingPublisher struct {
	mu     sync.Mutex
	events []publishedEvent
	err    error
}

func (p *recordingPublisher) Publish(_ context.Context, stream, eventType string, data any) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.err != nil {
		return p.err
	}
	p.events = append(p.events, publishedEvent{stream: stream, eventType: eventType, data: data})
	return nil
}

type recordingRevoker struct {
	tokenID   string
	expiresAt time.Time
	err       error
}

func (r *recordingRevoker) Revoke(_ context.Context, tokenID string, expiresAt time.Time) error {
	r.tokenID, r.expiresAt = tokenID, expiresAt
	return r.err
}
