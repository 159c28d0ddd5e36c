package session

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/dmitrijs2005/technai/internal/client/client"
	"github.com/dmitrijs2005/technai/internal/client/models"
	"github.com/dmitrijs2005/technai/internal/client/repositories/metadata"
	"github.com/dmitrijs2005/technai/internal/dbx"
	"github.com/dmitrijs2005/technai/internal/logging"
)

// Persisted keys.
const (
	KeyAccessToken  = "accessToken"
	KeyRefreshToken = "refreshToken"
	KeyUser         = "user"
)

type State int

const (
	StateLoading State = iota
	StateAuthenticated
	StateUnauthenticated
)

func (s State) String() string {
	switch s {
	case StateAuthenticated:
		return "authenticated"
	case StateUnauthenticated:
		return "unauthenticated"
	default:
		return "loading"
	}
}

// Logouter is the backend call made on sign-out.
type Logouter interface {
	Logout(ctx context.Context, refreshToken string) error
}

type Store struct {
	db  *sql.DB
	log logging.Logger

	mu      sync.RWMutex
	state   State
	access  string
	refresh string
	user    *models.AuthUser

	ready     chan struct{}
	readyOnce sync.Once
}

var _ client.TokenStore = (*Store)(nil)

func NewStore(db *sql.DB, log logging.Logger) *Store {
	return &Store{
		db:    db,
		log:   log,
		state: StateLoading,
		ready: make(chan struct{}),
	}
}

func (s *Store) repo(tx dbx.DBTX) metadata.Repository {
	return metadata.NewSQLiteRepository(tx)
}

// Init loads the persisted session. It must run once before the store
// reports anything but StateLoading.
func (s *Store) Init(ctx context.Context) error {
	defer s.readyOnce.Do(func() { close(s.ready) })

	repo := s.repo(s.db)
	values := make(map[string]string, 3)
	for _, key := range []string{KeyAccessToken, KeyRefreshToken, KeyUser} {
		v, _, err := repo.Get(ctx, key)
		if err != nil {
			s.setState(StateUnauthenticated)
			return fmt.Errorf("load session: %w", err)
		}
		values[key] = v
	}

	access := values[KeyAccessToken]
	if access == "" {
		s.setState(StateUnauthenticated)
		return nil
	}

	user, ok := decodeUser(values[KeyUser])
	if !ok {
		s.log.Debug(ctx, "stored user missing or unreadable, reading token payload")
		user, _ = UserFromToken(access)
	}

	s.mu.Lock()
	s.access = access
	s.refresh = values[KeyRefreshToken]
	s.user = &user
	s.state = StateAuthenticated
	s.mu.Unlock()

	return nil
}

// Ready is closed once Init has finished.
func (s *Store) Ready() <-chan struct{} {
	return s.ready
}

func decodeUser(raw string) (models.AuthUser, bool) {
	if raw == "" {
		return models.AuthUser{}, false
	}
	var u models.AuthUser
	if err := json.Unmarshal([]byte(raw), &u); err != nil {
		return models.AuthUser{}, false
	}
	return u, true
}

// Login persists the token pair and the user. A nil user is read from the
// access token payload.
func (s *Store) Login(ctx context.Context, tokens models.TokenPair, user *models.AuthUser) error {
	var u models.AuthUser
	if user != nil {
		u = *user
	} else {
		u, _ = UserFromToken(tokens.AccessToken)
	}

	rawUser, err := json.Marshal(u)
	if err != nil {
		return fmt.Errorf("encode user: %w", err)
	}

	err = dbx.WithTx(ctx, s.db, func(ctx context.Context, tx dbx.DBTX) error {
		repo := s.repo(tx)
		if err := repo.Set(ctx, KeyAccessToken, tokens.AccessToken); err != nil {
			return err
		}
		if err := repo.Set(ctx, KeyRefreshToken, tokens.RefreshToken); err != nil {
			return err
		}
		return repo.Set(ctx, KeyUser, string(rawUser))
	})
	if err != nil {
		return fmt.Errorf("save session: %w", err)
	}

	s.mu.Lock()
	s.access = tokens.AccessToken
	s.refresh = tokens.RefreshToken
	s.user = &u
	s.state = StateAuthenticated
	s.mu.Unlock()

	return nil
}

// Logout tells the backend (errors ignored) and then clears everything
// locally.
func (s *Store) Logout(ctx context.Context, api Logouter) error {
	if refresh := s.RefreshToken(); refresh != "" && api != nil {
		if err := api.Logout(ctx, refresh); err != nil {
			s.log.Debug(ctx, "backend logout failed", "error", err)
		}
	}
	return s.ClearLocal(ctx)
}

// ClearLocal drops the session without contacting the backend.
func (s *Store) ClearLocal(ctx context.Context) error {
	s.mu.Lock()
	s.access = ""
	s.refresh = ""
	s.user = nil
	s.state = StateUnauthenticated
	s.mu.Unlock()

	if err := s.repo(s.db).Delete(ctx, KeyAccessToken, KeyRefreshToken, KeyUser); err != nil {
		return fmt.Errorf("clear session: %w", err)
	}
	return nil
}

func (s *Store) setState(st State) {
	s.mu.Lock()
	s.state = st
	s.mu.Unlock()
}

func (s *Store) State() State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state
}

func (s *Store) IsAuthenticated() bool {
	return s.State() == StateAuthenticated
}

// User returns a copy of the signed-in user, or nil.
func (s *Store) User() *models.AuthUser {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.user == nil {
		return nil
	}
	u := *s.user
	return &u
}

func (s *Store) AccessToken() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.access
}

func (s *Store) RefreshToken() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.refresh
}

// SetTokens rotates the pair after a refresh; the user is kept.
func (s *Store) SetTokens(ctx context.Context, tokens models.TokenPair) error {
	err := dbx.WithTx(ctx, s.db, func(ctx context.Context, tx dbx.DBTX) error {
		repo := s.repo(tx)
		if err := repo.Set(ctx, KeyAccessToken, tokens.AccessToken); err != nil {
			return err
		}
		return repo.Set(ctx, KeyRefreshToken, tokens.RefreshToken)
	})
	if err != nil {
		return fmt.Errorf("save tokens: %w", err)
	}

	s.mu.Lock()
	s.access = tokens.AccessToken
	s.refresh = tokens.RefreshToken
	s.mu.Unlock()
	return nil
}

// Clear is ClearLocal under the client.TokenStore name.
func (s *Store) Clear(ctx context.Context) error {
	return s.ClearLocal(ctx)
}
