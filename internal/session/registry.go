// Package session ties one client's wallet manager, auth store and event bus together and
// keeps the set of live client sessions.
package session

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/spec-kit/unifin/internal/auth"
	"github.com/spec-kit/unifin/internal/domain"
	"github.com/spec-kit/unifin/internal/events"
	"github.com/spec-kit/unifin/internal/wallet"
)

// Session is one client tab: a wallet session and an auth session sharing an event bus.
type Session struct {
	ID         string
	ClientID   string
	CreatedAt  time.Time
	Wallet     *wallet.Manager
	Auth       *auth.Store
	Dispatcher events.Dispatcher

	lastSeen  atomic.Int64
	forwarder func()
	closeOnce sync.Once
}

// Snapshot is the serialisable state of a session.
type Snapshot struct {
	ID       string               `json:"session_id"`
	ClientID string               `json:"client_id"`
	Wallet   domain.WalletSession `json:"wallet"`
	Auth     *domain.AuthSession  `json:"auth,omitempty"`
}

// Snapshot captures the current wallet and auth state.
func (s *Session) Snapshot() Snapshot {
	return Snapshot{
		ID:       s.ID,
		ClientID: s.ClientID,
		Wallet:   s.Wallet.Session(),
		Auth:     s.Auth.Session(),
	}
}

// Touch records activity at now.
func (s *Session) Touch(now time.Time) {
	s.lastSeen.Store(now.UnixNano())
}

// LastSeen returns the last recorded activity.
func (s *Session) LastSeen() time.Time {
	return time.Unix(0, s.lastSeen.Load())
}

func (s *Session) close() {
	s.closeOnce.Do(func() {
		s.Wallet.Close()
		s.Auth.Close()
		if s.forwarder != nil {
			s.forwarder()
		}
	})
}

// RegistryDeps bundles collaborators shared by every session.
type RegistryDeps struct {
	// Provider is shared by all sessions; nil models a client without a wallet extension.
	Provider              wallet.Provider
	Flags                 wallet.FlagStore
	Credentials           *auth.CredentialTable
	Publisher             events.Publisher
	TopicPrefix           string
	LogoutOnAccountChange bool
	Logger                *zap.Logger
}

// Registry holds live sessions keyed by session ID.
type Registry struct {
	deps   RegistryDeps
	logger *zap.Logger
	now    func() time.Time

	mu       sync.RWMutex
	sessions map[string]*Session
}

// NewRegistry builds an empty registry.
func NewRegistry(deps RegistryDeps) *Registry {
	if deps.Flags == nil {
		deps.Flags = wallet.NewMemoryFlagStore()
	}
	if deps.Publisher == nil {
		deps.Publisher = &events.NoopPublisher{}
	}
	if deps.Logger == nil {
		deps.Logger = zap.NewNop()
	}
	return &Registry{
		deps:     deps,
		logger:   deps.Logger,
		now:      time.Now,
		sessions: make(map[string]*Session),
	}
}

// Create starts a session for clientID, generating one when empty, and silently restores
// the wallet connection when the client was connected before.
func (r *Registry) Create(ctx context.Context, clientID string) (*Session, error) {
	if clientID == "" {
		clientID = uuid.NewString()
	}
	id := uuid.NewString()
	dispatcher := events.NewInMemoryDispatcher()
	logger := r.logger.With(zap.String("client_id", clientID))

	s := &Session{
		ID:         id,
		ClientID:   clientID,
		CreatedAt:  r.now().UTC(),
		Dispatcher: dispatcher,
		forwarder:  dispatcher.SubscribeAll(events.Forward(r.deps.Publisher, r.deps.TopicPrefix)),
	}
	s.Auth = auth.NewStore(auth.StoreDeps{
		SessionID:             id,
		Credentials:           r.deps.Credentials,
		Dispatcher:            dispatcher,
		Logger:                logger,
		LogoutOnAccountChange: r.deps.LogoutOnAccountChange,
	})
	s.Wallet = wallet.NewManager(wallet.ManagerDeps{
		SessionID:  id,
		ClientID:   clientID,
		Provider:   r.deps.Provider,
		Flags:      r.deps.Flags,
		Dispatcher: dispatcher,
		Logger:     logger,
	})
	s.Touch(r.now())

	if err := s.Wallet.AutoReconnect(ctx); err != nil {
		logger.Warn("auto reconnect failed", zap.String("session_id", id), zap.Error(err))
	}

	r.mu.Lock()
	r.sessions[id] = s
	r.mu.Unlock()

	logger.Info("session created", zap.String("session_id", id))
	return s, nil
}

// Get returns the session with id.
func (r *Registry) Get(id string) (*Session, error) {
	r.mu.RLock()
	s, ok := r.sessions[id]
	r.mu.RUnlock()
	if !ok {
		return nil, domain.ErrSessionNotFound
	}
	return s, nil
}

// Destroy closes and removes a session. The client's connected flag is kept so a new
// session for the same client reconnects.
func (r *Registry) Destroy(id string) error {
	r.mu.Lock()
	s, ok := r.sessions[id]
	delete(r.sessions, id)
	r.mu.Unlock()
	if !ok {
		return domain.ErrSessionNotFound
	}
	s.close()
	r.logger.Info("session destroyed", zap.String("session_id", id))
	return nil
}

// Reap destroys sessions idle for longer than idle and returns their IDs.
func (r *Registry) Reap(idle time.Duration) []string {
	cutoff := r.now().Add(-idle)

	r.mu.Lock()
	var expired []*Session
	for id, s := range r.sessions {
		if s.LastSeen().Before(cutoff) {
			expired = append(expired, s)
			delete(r.sessions, id)
		}
	}
	r.mu.Unlock()

	ids := make([]string, 0, len(expired))
	for _, s := range expired {
		s.close()
		ids = append(ids, s.ID)
	}
	if len(ids) > 0 {
		r.logger.Info("sessions reaped", zap.Int("count", len(ids)))
	}
	return ids
}

// Count returns the number of live sessions.
func (r *Registry) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.sessions)
}

// Close destroys every session.
func (r *Registry) Close() {
	r.mu.Lock()
	sessions := r.sessions
	r.sessions = make(map[string]*Session)
	r.mu.Unlock()
	for _, s := range sessions {
		s.close()
	}
}
