package service

import (
	"context"
	"sync"
	"time"

	"github.com/chefoverseas/docketify-server/internal/model"
)

// In-memory store implementations.  They keep the services testable
// without a database and intentionally favor clarity over
// performance; the MySQL implementations in internal/repository are
// what production wiring uses.

type MemoryUserStore struct {
	mu     sync.RWMutex
	nextID uint64
	users  map[uint64]model.User
}

func NewMemoryUserStore() *MemoryUserStore {
	return &MemoryUserStore{users: make(map[uint64]model.User)}
}

func (s *MemoryUserStore) Create(_ context.Context, u *model.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, existing := range s.users {
		if existing.Phone == u.Phone {
			return ErrPhoneExists
		}
	}
	s.nextID++
	u.ID = s.nextID
	s.users[u.ID] = *u
	return nil
}

func (s *MemoryUserStore) GetByID(_ context.Context, id uint64) (model.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if u, ok := s.users[id]; ok {
		return u, nil
	}
	return model.User{}, ErrNotFound
}

func (s *MemoryUserStore) GetByUID(_ context.Context, uid string) (model.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, u := range s.users {
		if u.UID == uid {
			return u, nil
		}
	}
	return model.User{}, ErrNotFound
}

func (s *MemoryUserStore) GetByPhone(_ context.Context, phone string) (model.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, u := range s.users {
		if u.Phone == phone && phone != "" {
			return u, nil
		}
	}
	return model.User{}, ErrNotFound
}

func (s *MemoryUserStore) GetByEmail(_ context.Context, email string) (model.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, u := range s.users {
		if u.Email == email && email != "" {
			return u, nil
		}
	}
	return model.User{}, ErrNotFound
}

func (s *MemoryUserStore) List(_ context.Context) ([]model.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]model.User, 0, len(s.users))
	for id := uint64(1); id <= s.nextID; id++ {
		if u, ok := s.users[id]; ok {
			out = append(out, u)
		}
	}
	return out, nil
}

func (s *MemoryUserStore) UpdateProfile(_ context.Context, id uint64, name, email, photoURL string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.users[id]
	if !ok {
		return ErrNotFound
	}
	u.Name = name
	u.Email = email
	u.PhotoURL = photoURL
	s.users[id] = u
	return nil
}

func (s *MemoryUserStore) MarkDocketCompleted(_ context.Context, id uint64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.users[id]
	if !ok {
		return ErrNotFound
	}
	u.DocketCompleted = true
	s.users[id] = u
	return nil
}

type MemoryOtpStore struct {
	mu     sync.Mutex
	nextID uint64
	rows   map[uint64]model.OtpSession
}

func NewMemoryOtpStore() *MemoryOtpStore {
	return &MemoryOtpStore{rows: make(map[uint64]model.OtpSession)}
}

func (s *MemoryOtpStore) Create(_ context.Context, row *model.OtpSession) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextID++
	row.ID = s.nextID
	s.rows[row.ID] = *row
	return nil
}

func (s *MemoryOtpStore) LatestMatch(_ context.Context, identifier, code string, now time.Time) (model.OtpSession, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var best model.OtpSession
	found := false
	for _, r := range s.rows {
		if r.Identifier != identifier || r.Code != code || r.Verified || !now.Before(r.ExpiresAt) {
			continue
		}
		if !found || r.ID > best.ID {
			best = r
			found = true
		}
	}
	if !found {
		return model.OtpSession{}, ErrNotFound
	}
	return best, nil
}

func (s *MemoryOtpStore) MarkVerified(_ context.Context, id uint64, now time.Time) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	r, ok := s.rows[id]
	if !ok || r.Verified || !now.Before(r.ExpiresAt) {
		return false, nil
	}
	r.Verified = true
	s.rows[id] = r
	return true, nil
}

type MemoryUserSessionStore struct {
	mu     sync.Mutex
	nextID uint64
	rows   map[string]model.UserSession // keyed by token hash
}

func NewMemoryUserSessionStore() *MemoryUserSessionStore {
	return &MemoryUserSessionStore{rows: make(map[string]model.UserSession)}
}

func (s *MemoryUserSessionStore) Create(_ context.Context, row *model.UserSession) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextID++
	row.ID = s.nextID
	s.rows[row.TokenHash] = *row
	return nil
}

func (s *MemoryUserSessionStore) GetByTokenHash(_ context.Context, hash string) (model.UserSession, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if r, ok := s.rows[hash]; ok {
		return r, nil
	}
	return model.UserSession{}, ErrNotFound
}

func (s *MemoryUserSessionStore) DeleteByTokenHash(_ context.Context, hash string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.rows, hash)
	return nil
}

type MemoryAdminAccountStore struct {
	mu    sync.Mutex
	accts map[string]model.AdminAccount // keyed by email
}

func NewMemoryAdminAccountStore() *MemoryAdminAccountStore {
	return &MemoryAdminAccountStore{accts: make(map[string]model.AdminAccount)}
}

func (s *MemoryAdminAccountStore) GetByEmail(_ context.Context, email string) (model.AdminAccount, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if a, ok := s.accts[email]; ok {
		return a, nil
	}
	return model.AdminAccount{}, ErrNotFound
}

func (s *MemoryAdminAccountStore) Upsert(_ context.Context, email, passwordHash string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	a := s.accts[email]
	a.Email = email
	a.PasswordHash = passwordHash
	if a.ID == 0 {
		a.ID = uint64(len(s.accts) + 1)
	}
	s.accts[email] = a
	return nil
}

type MemoryAdminSessionStore struct {
	mu     sync.Mutex
	nextID uint64
	rows   map[string]model.AdminSession // keyed by token hash
}

func NewMemoryAdminSessionStore() *MemoryAdminSessionStore {
	return &MemoryAdminSessionStore{rows: make(map[string]model.AdminSession)}
}

func (s *MemoryAdminSessionStore) Create(_ context.Context, row *model.AdminSession) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextID++
	row.ID = s.nextID
	s.rows[row.TokenHash] = *row
	return nil
}

func (s *MemoryAdminSessionStore) GetByTokenHash(_ context.Context, hash string) (model.AdminSession, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if r, ok := s.rows[hash]; ok {
		return r, nil
	}
	return model.AdminSession{}, ErrNotFound
}

func (s *MemoryAdminSessionStore) DeleteByTokenHash(_ context.Context, hash string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.rows, hash)
	return nil
}

type MemoryDocketStore struct {
	mu     sync.Mutex
	nextID uint64
	rows   map[uint64]model.Docket // keyed by user ID
}

func NewMemoryDocketStore() *MemoryDocketStore {
	return &MemoryDocketStore{rows: make(map[uint64]model.Docket)}
}

func (s *MemoryDocketStore) GetByUserID(_ context.Context, userID uint64) (model.Docket, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if d, ok := s.rows[userID]; ok {
		return d, nil
	}
	return model.Docket{}, ErrNotFound
}

func (s *MemoryDocketStore) Upsert(_ context.Context, d *model.Docket) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if existing, ok := s.rows[d.UserID]; ok {
		d.ID = existing.ID
	} else {
		s.nextID++
		d.ID = s.nextID
	}
	s.rows[d.UserID] = *d
	return nil
}

type MemoryContractStore struct {
	mu     sync.Mutex
	nextID uint64
	rows   map[uint64]model.Contract // keyed by user ID
}

func NewMemoryContractStore() *MemoryContractStore {
	return &MemoryContractStore{rows: make(map[uint64]model.Contract)}
}

func (s *MemoryContractStore) GetByUserID(_ context.Context, userID uint64) (model.Contract, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if c, ok := s.rows[userID]; ok {
		return c, nil
	}
	return model.Contract{}, ErrNotFound
}

func (s *MemoryContractStore) Upsert(_ context.Context, c *model.Contract) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if existing, ok := s.rows[c.UserID]; ok {
		c.ID = existing.ID
	} else {
		s.nextID++
		c.ID = s.nextID
	}
	s.rows[c.UserID] = *c
	return nil
}
