package core

// sessions.go keeps one Workspace per browser session in memory.
//
// Workspaces are never written anywhere. A background sweeper drops those
// that have been idle longer than the configured TTL; a reload after that
// starts from blank registers again.

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Default session settings.
const (
	DefaultSessionTTL    = 12 * time.Hour
	DefaultSweepInterval = 10 * time.Minute
)

// SessionStore maps session ids to workspaces.
type SessionStore struct {
	mu         sync.RWMutex
	workspaces map[string]*Workspace
	opts       WorkspaceOptions
}

// NewSessionStore creates an empty store. opts apply to every new workspace.
func NewSessionStore(opts WorkspaceOptions) *SessionStore {
	return &SessionStore{
		workspaces: make(map[string]*Workspace),
		opts:       opts,
	}
}

// Open returns the workspace for id, creating a new one (with a new id)
// when id is empty or unknown. The second result is true if a workspace
// was created.
func (s *SessionStore) Open(id string) (*Workspace, bool) {
	if id != "" {
		s.mu.RLock()
		ws, ok := s.workspaces[id]
		s.mu.RUnlock()
		if ok {
			ws.Touch()
			return ws, false
		}
	}

	ws := NewWorkspace(uuid.NewString(), s.opts)

	s.mu.Lock()
	s.workspaces[ws.ID] = ws
	s.mu.Unlock()

	return ws, true
}

// Get returns an existing workspace.
func (s *SessionStore) Get(id string) (*Workspace, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	ws, ok := s.workspaces[id]
	return ws, ok
}

// Len returns the number of live workspaces.
func (s *SessionStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.workspaces)
}

// Sweep removes workspaces idle for at least ttl and returns how many.
func (s *SessionStore) Sweep(ttl time.Duration) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	removed := 0
	for id, ws := range s.workspaces {
		if ws.IdleFor() >= ttl {
			delete(s.workspaces, id)
			removed++
		}
	}
	return removed
}

// SweepConfig holds configuration for the session sweeper.
type SweepConfig struct {
	TTL      time.Duration // idle time before a workspace is dropped (default: 12h)
	Interval time.Duration // how often to sweep (default: 10m)
}

// StartSweeper periodically drops idle workspaces until ctx is cancelled.
func (s *SessionStore) StartSweeper(ctx context.Context, cfg SweepConfig) {
	if cfg.TTL <= 0 {
		cfg.TTL = DefaultSessionTTL
	}
	if cfg.Interval <= 0 {
		cfg.Interval = DefaultSweepInterval
	}

	slog.Info("session sweeper started", "ttl", cfg.TTL, "interval", cfg.Interval)

	ticker := time.NewTicker(cfg.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			slog.Info("session sweeper stopped")
			return
		case <-ticker.C:
			if n := s.Sweep(cfg.TTL); n > 0 {
				slog.Info("swept idle sessions", "removed", n, "remaining", s.Len())
			}
		}
	}
}
