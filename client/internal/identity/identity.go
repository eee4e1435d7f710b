// Package identity issues the per-installation token that marks ownership of
// content items. It is not an account.
package identity

import (
	"sync"

	"github.com/google/uuid"
	"github.com/itchan-dev/simpleboard/shared/domain"
	"github.com/itchan-dev/simpleboard/shared/logger"
)

const StorageKey = "simpleboard_user_id"

// KV is durable local storage.
type KV interface {
	Get(key string) (string, bool)
	Set(key, value string) error
}

type Provider struct {
	kv KV
	mu sync.Mutex
}

// New returns a provider backed by kv. A nil kv yields a fresh token on every call.
func New(kv KV) *Provider {
	return &Provider{kv: kv}
}

// Identity returns the stored token, generating and persisting one on first
// use. When the token cannot be persisted a fresh one is returned each call.
func (p *Provider) Identity() domain.Identity {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.kv == nil {
		return uuid.NewString()
	}
	if id, ok := p.kv.Get(StorageKey); ok && id != "" {
		return id
	}

	id := uuid.NewString()
	if err := p.kv.Set(StorageKey, id); err != nil {
		logger.Log.Warn("identity not persisted, ownership will not survive restart", "error", err)
	}
	return id
}
