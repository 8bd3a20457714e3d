package service

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/lumenpay/sandbox/internal/sandbox/domain"
	"github.com/lumenpay/sandbox/internal/sandbox/store"
	"github.com/lumenpay/sandbox/pkg/cryptox"
	"github.com/lumenpay/sandbox/pkg/jwtx"
	"github.com/lumenpay/sandbox/pkg/slogx"
)

var (
	ErrInvalidCredentials = errors.New("invalid_credentials")
	ErrEmailTaken         = errors.New("email_already_registered")
	ErrInvalidTier        = errors.New("invalid_tier")
)

// subscriptionTerm is how far out a subscription expiry is set on update.
const subscriptionTerm = 30 * 24 * time.Hour

// Credential is one entry of the sandbox's fixed credential set.
type Credential struct {
	ID           string
	Email        string
	Name         string
	Role         string
	PasswordHash string // argon2id, see pkg/cryptox
}

// AuthService owns the authenticated-user state machine: login, register,
// logout, token check and subscription update. Exactly one user is current
// at a time; the session (token + serialized user) is persisted through the
// store so it survives process restarts.
//
// The trust model is deliberately loose: CheckToken only checks presence,
// and a restored session is accepted without re-validation. Bearer tokens
// are still verified at the HTTP edge (see DESIGN.md).
type AuthService struct {
	Store   store.Store
	Tokens  *jwtx.Codec
	Latency time.Duration

	mu      sync.Mutex
	current *domain.User
	creds   map[string]Credential // keyed by lowercased email

	now func() time.Time // overridable in tests
}

func NewAuthService(st store.Store, tokens *jwtx.Codec, creds []Credential) *AuthService {
	s := &AuthService{
		Store:  st,
		Tokens: tokens,
		creds:  make(map[string]Credential, len(creds)),
		now:    time.Now,
	}
	for _, c := range creds {
		s.creds[strings.ToLower(c.Email)] = c
	}
	return s
}

// Restore reads the session store once at startup. A stored token implies a
// parsable user record; if that invariant is broken the session is treated
// as logged out and the leftovers are cleared.
func (s *AuthService) Restore(ctx context.Context) error {
	log := slogx.FromContext(ctx)

	_, err := s.Store.Sessions().Get(ctx, domain.SessionKeyToken)
	if errors.Is(err, store.ErrNotFound) {
		return nil
	}
	if err != nil {
		return err
	}

	raw, err := s.Store.Sessions().Get(ctx, domain.SessionKeyUser)
	if err == nil {
		var u domain.User
		if jsonErr := json.Unmarshal([]byte(raw), &u); jsonErr == nil {
			s.mu.Lock()
			s.current = &u
			s.mu.Unlock()
			log.Info("session restored", "user_id", u.ID, "email", u.Email)
			return nil
		}
	} else if !errors.Is(err, store.ErrNotFound) {
		return err
	}

	log.Warn("stored session is corrupt, clearing")
	return s.Store.Sessions().Delete(ctx, domain.SessionKeyToken, domain.SessionKeyUser)
}

// Login checks the credentials against the fixed set and, on match,
// materializes the demo user, mints a session token and persists both to the
// session store atomically.
func (s *AuthService) Login(ctx context.Context, email, password string) (domain.User, string, error) {
	simulateLatency(ctx, s.Latency)

	cred, ok := s.creds[strings.ToLower(strings.TrimSpace(email))]
	if !ok {
		return domain.User{}, "", ErrInvalidCredentials
	}
	if err := cryptox.VerifyPassword(password, cred.PasswordHash); err != nil {
		return domain.User{}, "", ErrInvalidCredentials
	}

	user := domain.User{
		ID:    cred.ID,
		Email: cred.Email,
		Name:  cred.Name,
		Role:  cred.Role,
	}

	token, err := s.Tokens.Mint(user.ID, user.Email, user.Role, s.now())
	if err != nil {
		return domain.User{}, "", err
	}

	raw, err := json.Marshal(user)
	if err != nil {
		return domain.User{}, "", err
	}

	// Token and user record are written both-or-neither.
	err = s.Store.WithTx(ctx, func(tx store.Tx) error {
		if err := tx.Sessions().Put(ctx, domain.SessionKeyToken, token); err != nil {
			return err
		}
		return tx.Sessions().Put(ctx, domain.SessionKeyUser, string(raw))
	})
	if err != nil {
		return domain.User{}, "", err
	}

	s.mu.Lock()
	s.current = &user
	s.mu.Unlock()

	slogx.FromContext(ctx).Info("login succeeded", "user_id", user.ID, "role", user.Role)
	return user, token, nil
}

// Register validates email uniqueness against the fixed credential set. It
// never authenticates the new user; the caller redirects to login.
func (s *AuthService) Register(ctx context.Context, email, name, password string) error {
	simulateLatency(ctx, s.Latency)

	if _, exists := s.creds[strings.ToLower(strings.TrimSpace(email))]; exists {
		return ErrEmailTaken
	}

	slogx.FromContext(ctx).Info("registration accepted", "email", email, "name", name)
	return nil
}

// Logout clears the session store and the current user unconditionally.
func (s *AuthService) Logout(ctx context.Context) error {
	s.mu.Lock()
	s.current = nil
	s.mu.Unlock()

	return s.Store.Sessions().Delete(ctx, domain.SessionKeyToken, domain.SessionKeyUser)
}

// CheckToken reports whether a session token is present in the store. It
// does not validate contents, expiry or signature: any stored token is
// accepted for the lifetime of the process.
func (s *AuthService) CheckToken(ctx context.Context) bool {
	_, err := s.Store.Sessions().Get(ctx, domain.SessionKeyToken)
	return err == nil
}

// CurrentUser returns a copy of the current user, if any.
func (s *AuthService) CurrentUser() (domain.User, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.current == nil {
		return domain.User{}, false
	}
	return *s.current, true
}

// UpdateSubscription marks the current user as subscribed to tier with an
// expiry 30 days out and persists the updated record. Unknown tiers are
// rejected; with no current user the call is a silent no-op.
func (s *AuthService) UpdateSubscription(ctx context.Context, rawTier string) (*domain.User, error) {
	simulateLatency(ctx, s.Latency)

	tier, ok := domain.ParseTier(rawTier)
	if !ok {
		return nil, ErrInvalidTier
	}

	s.mu.Lock()
	if s.current == nil {
		s.mu.Unlock()
		return nil, nil
	}
	expires := s.now().UTC().Add(subscriptionTerm)
	s.current.IsSubscribed = true
	s.current.Tier = &tier
	s.current.SubscribedTo = &expires
	user := *s.current
	s.mu.Unlock()

	raw, err := json.Marshal(user)
	if err != nil {
		return nil, err
	}
	if err := s.Store.Sessions().Put(ctx, domain.SessionKeyUser, string(raw)); err != nil {
		return nil, err
	}

	slogx.FromContext(ctx).Info("subscription updated", "user_id", user.ID, "tier", tier)
	return &user, nil
}
