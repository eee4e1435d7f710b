// Package session keeps the admin token obtained from the backend and
// combines it with the local identity into the viewer the client acts as.
package session

import (
	"context"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/itchan-dev/simpleboard/shared/domain"
	jwt_internal "github.com/itchan-dev/simpleboard/shared/jwt"
	"github.com/itchan-dev/simpleboard/shared/logger"
)

const TokenKey = "simpleboard_admin_token"

type KV interface {
	Get(key string) (string, bool)
	Set(key, value string) error
	Delete(key string) error
}

type Authenticator interface {
	Login(ctx context.Context, email, password string) (string, error)
}

type IdentityProvider interface {
	Identity() domain.Identity
}

type Session struct {
	kv       KV
	auth     Authenticator
	identity IdentityProvider

	mu    sync.RWMutex
	token string
	admin *domain.Admin
}

func New(kv KV, auth Authenticator, identity IdentityProvider) *Session {
	s := &Session{kv: kv, auth: auth, identity: identity}
	if token, ok := kv.Get(TokenKey); ok {
		s.token, s.admin = token, adminFromToken(token)
	}
	return s
}

// Login exchanges the credential for a token and persists it. The backend is
// the only judge of the credential.
func (s *Session) Login(ctx context.Context, email, password string) error {
	token, err := s.auth.Login(ctx, email, password)
	if err != nil {
		return err
	}
	admin := adminFromToken(token)

	s.mu.Lock()
	s.token, s.admin = token, admin
	s.mu.Unlock()

	if err := s.kv.Set(TokenKey, token); err != nil {
		logger.Log.Warn("admin session not persisted", "error", err)
	}
	return nil
}

func (s *Session) Logout() error {
	s.mu.Lock()
	s.token, s.admin = "", nil
	s.mu.Unlock()
	return s.kv.Delete(TokenKey)
}

// Token returns the admin bearer token, empty when logged out or expired.
func (s *Session) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.admin == nil || expired(s.token) {
		return ""
	}
	return s.token
}

func (s *Session) IsAdmin() bool {
	return s.Token() != ""
}

// Identity is the local identity token.
func (s *Session) Identity() domain.Identity {
	return s.identity.Identity()
}

func (s *Session) Viewer() domain.Viewer {
	v := domain.Viewer{Identity: s.identity.Identity()}
	if s.IsAdmin() {
		s.mu.RLock()
		admin := *s.admin
		s.mu.RUnlock()
		v.Admin = &admin
	}
	return v
}

// adminFromToken reads the claims without verifying the signature; the
// backend verifies it on every request.
func adminFromToken(token string) *domain.Admin {
	parsed, _, err := jwt.NewParser().ParseUnverified(token, jwt.MapClaims{})
	if err != nil {
		logger.Log.Debug("unreadable admin token", "error", err)
		return nil
	}
	admin, ok := jwt_internal.AdminFromToken(parsed)
	if !ok {
		return nil
	}
	return admin
}

func expired(token string) bool {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return true
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return false
	}
	return time.Now().After(exp.Time)
}
