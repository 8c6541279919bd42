// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package session holds a client's identity: the current user record and
// whether the client is authenticated. The record is mirrored in the
// client's storage so it survives a restart.
package session

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"sync"

	"github.com/olegiv/lobos/internal/auth"
	"github.com/olegiv/lobos/internal/model"
	"github.com/olegiv/lobos/internal/storage"
)

// State is the position of a Store in its lifecycle.
type State int

// Store states. Uninitialized moves to Loading exactly once; Loading resolves
// to Authenticated or Unauthenticated, which then alternate via Login,
// Register and Logout.
const (
	StateUninitialized State = iota
	StateLoading
	StateAuthenticated
	StateUnauthenticated
)

func (s State) String() string {
	switch s {
	case StateUninitialized:
		return "uninitialized"
	case StateLoading:
		return "loading"
	case StateAuthenticated:
		return "authenticated"
	case StateUnauthenticated:
		return "unauthenticated"
	default:
		return "unknown"
	}
}

// User-facing failure messages.
const (
	MsgLoginFailed    = "Error al iniciar sesión"
	MsgRegisterFailed = "Error al registrar usuario"
)

// FailureError is returned by Login and Register. Message is safe to show to
// the end user; Err carries the cause for the logs.
type FailureError struct {
	Message string
	Err     error
}

func (e *FailureError) Error() string {
	if e.Err == nil {
		return e.Message
	}
	return e.Message + ": " + e.Err.Error()
}

func (e *FailureError) Unwrap() error {
	return e.Err
}

// Store is the identity state machine of one client.
type Store struct {
	storage  storage.Storage
	provider auth.Provider
	logger   *slog.Logger

	// opMu serializes operations that touch storage so memory and storage
	// are updated in the same order.
	opMu sync.Mutex

	mu    sync.RWMutex
	state State
	user  *model.User

	initOnce sync.Once
	ready    chan struct{}
}

// New creates an uninitialized Store.
func New(st storage.Storage, provider auth.Provider, logger *slog.Logger) *Store {
	if logger == nil {
		logger = slog.Default()
	}
	return &Store{
		storage:  st,
		provider: provider,
		logger:   logger,
		ready:    make(chan struct{}),
	}
}

// Initialize restores the session from storage. Only the first call does any
// work; the store reports StateLoading until it returns. Read or parse
// failures leave the client unauthenticated and are logged, never returned.
func (s *Store) Initialize(ctx context.Context) {
	s.initOnce.Do(func() {
		s.opMu.Lock()
		defer s.opMu.Unlock()

		s.setState(StateLoading, nil)
		defer close(s.ready)

		user, ok := s.load(ctx)
		if ok {
			s.setState(StateAuthenticated, &user)
			return
		}
		s.setState(StateUnauthenticated, nil)
	})
}

// MarkLoading moves an uninitialized store to StateLoading ahead of a
// background Initialize, so guards never observe StateUninitialized.
func (s *Store) MarkLoading() {
	s.mu.Lock()
	if s.state == StateUninitialized {
		s.state = StateLoading
	}
	s.mu.Unlock()
}

// Ready is closed once Initialize has completed.
func (s *Store) Ready() <-chan struct{} {
	return s.ready
}

func (s *Store) load(ctx context.Context) (model.User, bool) {
	token, err := s.storage.GetItem(ctx, storage.KeyAuthToken)
	if err != nil {
		if !errors.Is(err, storage.ErrNotFound) {
			s.logger.Warn("error loading user", "category", model.EventCategoryStorage, "error", err)
		}
		return model.User{}, false
	}

	raw, err := s.storage.GetItem(ctx, storage.KeyUserData)
	if err != nil {
		if !errors.Is(err, storage.ErrNotFound) {
			s.logger.Warn("error loading user", "category", model.EventCategoryStorage, "error", err)
		}
		return model.User{}, false
	}

	if token == "" || raw == "" {
		return model.User{}, false
	}

	var user *model.User
	if err := json.Unmarshal([]byte(raw), &user); err != nil {
		s.logger.Warn("error loading user", "category", model.EventCategoryStorage, "error", err)
		return model.User{}, false
	}
	if user == nil {
		return model.User{}, false
	}
	return *user, true
}

// Login authenticates through the provider and persists the session.
// On failure memory and storage are left as they were.
func (s *Store) Login(ctx context.Context, email, password string) (model.User, error) {
	s.Initialize(ctx)

	s.opMu.Lock()
	defer s.opMu.Unlock()

	creds, err := s.provider.Login(ctx, email, password)
	if err != nil {
		s.logger.Error("login error", "category", model.EventCategoryAuth, "error", err)
		return model.User{}, &FailureError{Message: MsgLoginFailed, Err: err}
	}
	if err := s.persist(ctx, creds); err != nil {
		s.logger.Error("login error", "category", model.EventCategoryAuth, "error", err)
		return model.User{}, &FailureError{Message: MsgLoginFailed, Err: err}
	}

	user := creds.User
	s.setState(StateAuthenticated, &user)
	s.logger.Info("user logged in", "category", model.EventCategoryAuth, "user_id", user.ID, "role", user.Role)
	return user, nil
}

// Register creates an identity through the provider and persists the session.
func (s *Store) Register(ctx context.Context, params auth.RegisterParams) (model.User, error) {
	s.Initialize(ctx)

	s.opMu.Lock()
	defer s.opMu.Unlock()

	creds, err := s.provider.Register(ctx, params)
	if err != nil {
		s.logger.Error("register error", "category", model.EventCategoryAuth, "error", err)
		return model.User{}, &FailureError{Message: MsgRegisterFailed, Err: err}
	}
	if err := s.persist(ctx, creds); err != nil {
		s.logger.Error("register error", "category", model.EventCategoryAuth, "error", err)
		return model.User{}, &FailureError{Message: MsgRegisterFailed, Err: err}
	}

	user := creds.User
	s.setState(StateAuthenticated, &user)
	s.logger.Info("user registered", "category", model.EventCategoryAuth, "user_id", user.ID)
	return user, nil
}

// persist writes token and user record. If either write fails both keys are
// put back to what they held before, so storage keeps matching memory.
func (s *Store) persist(ctx context.Context, creds auth.Credentials) error {
	data, err := json.Marshal(creds.User)
	if err != nil {
		return err
	}

	prev := make(map[string]*string, 2)
	for _, key := range []string{storage.KeyAuthToken, storage.KeyUserData} {
		v, err := s.storage.GetItem(ctx, key)
		switch {
		case err == nil:
			prev[key] = &v
		case errors.Is(err, storage.ErrNotFound):
			prev[key] = nil
		default:
			return err
		}
	}

	if err := s.storage.SetItem(ctx, storage.KeyAuthToken, creds.Token); err != nil {
		s.restore(ctx, prev)
		return err
	}
	if err := s.storage.SetItem(ctx, storage.KeyUserData, string(data)); err != nil {
		s.restore(ctx, prev)
		return err
	}
	return nil
}

// restore writes back the values persist saw before it started. A nil value
// means the key was absent.
func (s *Store) restore(ctx context.Context, prev map[string]*string) {
	for key, v := range prev {
		var err error
		if v == nil {
			err = s.storage.RemoveItem(ctx, key)
		} else {
			err = s.storage.SetItem(ctx, key, *v)
		}
		if err != nil {
			s.logger.Warn("failed to roll back session key", "category", model.EventCategoryStorage, "key", key, "error", err)
		}
	}
}

// Logout clears the session from memory and storage. It cannot fail; storage
// errors are logged.
func (s *Store) Logout(ctx context.Context) {
	s.Initialize(ctx)

	s.opMu.Lock()
	defer s.opMu.Unlock()

	if err := s.provider.Logout(ctx); err != nil {
		s.logger.Warn("provider logout failed", "category", model.EventCategoryAuth, "error", err)
	}
	for _, key := range []string{storage.KeyAuthToken, storage.KeyUserData} {
		if err := s.storage.RemoveItem(ctx, key); err != nil {
			s.logger.Warn("failed to remove session key", "category", model.EventCategoryStorage, "key", key, "error", err)
		}
	}

	s.setState(StateUnauthenticated, nil)
}

func (s *Store) setState(state State, user *model.User) {
	s.mu.Lock()
	s.state = state
	s.user = user
	s.mu.Unlock()
}

// State returns the current lifecycle state.
func (s *Store) State() State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state
}

// IsLoading reports whether the session has not been resolved yet.
func (s *Store) IsLoading() bool {
	st := s.State()
	return st == StateLoading || st == StateUninitialized
}

// IsAuthenticated reports whether a user record is present.
func (s *Store) IsAuthenticated() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.user != nil
}

// User returns a copy of the current user, if any.
func (s *Store) User() (model.User, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.user == nil {
		return model.User{}, false
	}
	return *s.user, true
}

// IsAdmin reports whether the current user has the admin role.
func (s *Store) IsAdmin() bool {
	user, ok := s.User()
	return ok && user.IsAdmin()
}
