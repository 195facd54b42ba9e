package mfa_test

import (
	"context"
	"errors"
	"sync"

	"github.com/google/uuid"

	"github.com/sealkit/cryptokit/pkg/mfa"
)

var errUserMissing = errors.New("no such user")

// memoryStore is an in-memory mfa.UserStore for tests. It hands out deep
// copies so service code cannot mutate stored state except through
// UpdateMFA, mirroring a real document store.
type memoryStore struct {
	mu    sync.Mutex
	users map[uuid.UUID]*mfa.User

	updateErr error // when set, UpdateMFA fails with this error
}

func newMemoryStore(users ...*mfa.User) *memoryStore {
	s := &memoryStore{users: make(map[uuid.UUID]*mfa.User)}
	for _, u := range users {
		s.users[u.ID] = u
	}
	return s
}

func (s *memoryStore) FindByID(_ context.Context, id uuid.UUID) (*mfa.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	user, ok := s.users[id]
	if !ok {
		return nil, errUserMissing
	}

	clone := *user
	clone.Preferences.MFA = user.Preferences.MFA.Clone()
	return &clone, nil
}

func (s *memoryStore) UpdateMFA(_ context.Context, id uuid.UUID, settings *mfa.Settings) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.updateErr != nil {
		return s.updateErr
	}

	user, ok := s.users[id]
	if !ok {
		return errUserMissing
	}
	user.Preferences.MFA = settings.Clone()
	return nil
}

// settings returns the stored MFA settings for assertions.
func (s *memoryStore) settings(id uuid.UUID) *mfa.Settings {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.users[id].Preferences.MFA.Clone()
}
