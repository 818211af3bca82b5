package auth

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/spec-kit/unifin/internal/domain"
	"github.com/spec-kit/unifin/internal/events"
)

// Store holds the AuthSession of one client session.
type Store struct {
	sessionID   string
	credentials *CredentialTable
	dispatcher  events.Dispatcher
	logger      *zap.Logger
	now         func() time.Time

	mu           sync.RWMutex
	current      *domain.AuthSession
	unsubscribes []func()
}

// StoreDeps bundles Store collaborators.
type StoreDeps struct {
	SessionID   string
	Credentials *CredentialTable
	Dispatcher  events.Dispatcher
	Logger      *zap.Logger
	// LogoutOnAccountChange also ends the AuthSession when the wallet switches accounts.
	LogoutOnAccountChange bool
}

// NewStore builds a store and subscribes it to the session's wallet events.
func NewStore(deps StoreDeps) *Store {
	if deps.Dispatcher == nil {
		deps.Dispatcher = events.NewInMemoryDispatcher()
	}
	if deps.Logger == nil {
		deps.Logger = zap.NewNop()
	}
	s := &Store{
		sessionID:   deps.SessionID,
		credentials: deps.Credentials,
		dispatcher:  deps.Dispatcher,
		logger:      deps.Logger.With(zap.String("session_id", deps.SessionID)),
		now:         time.Now,
	}
	s.unsubscribes = append(s.unsubscribes,
		deps.Dispatcher.Subscribe(events.EventWalletDisconnected, s.cascade("wallet_disconnected")))
	if deps.LogoutOnAccountChange {
		s.unsubscribes = append(s.unsubscribes,
			deps.Dispatcher.Subscribe(events.EventWalletAccountChanged, s.cascade("wallet_account_changed")))
	}
	return s
}

// Login sets the AuthSession when the credentials match. On failure nothing changes.
func (s *Store) Login(userID, password string, role domain.Role) bool {
	if s.credentials == nil || !role.Valid() {
		return false
	}
	name, ok := s.credentials.Verify(role, userID, password)
	if !ok {
		s.logger.Info("login rejected", zap.String("user_id", userID), zap.String("role", string(role)))
		return false
	}

	session := &domain.AuthSession{UserID: userID, Role: role, Name: name, LoggedInAt: s.now().UTC()}
	s.mu.Lock()
	s.current = session
	s.mu.Unlock()

	s.publish(events.EventUserLoggedIn, events.AuthPayload{UserID: userID, Role: role})
	s.logger.Info("user logged in", zap.String("user_id", userID), zap.String("role", string(role)))
	return true
}

// Logout clears the AuthSession. It is idempotent.
func (s *Store) Logout() {
	s.logout("logout")
}

// Session returns a copy of the current AuthSession, or nil.
func (s *Store) Session() *domain.AuthSession {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.current == nil {
		return nil
	}
	cp := *s.current
	return &cp
}

// Close removes the store's event subscriptions.
func (s *Store) Close() {
	s.mu.Lock()
	unsubs := s.unsubscribes
	s.unsubscribes = nil
	s.mu.Unlock()
	for _, unsubscribe := range unsubs {
		unsubscribe()
	}
}

func (s *Store) cascade(cause string) events.EventHandler {
	return func(context.Context, events.Event) error {
		s.logout(cause)
		return nil
	}
}

func (s *Store) logout(cause string) {
	s.mu.Lock()
	previous := s.current
	s.current = nil
	s.mu.Unlock()

	if previous == nil {
		return
	}
	s.publish(events.EventUserLoggedOut, events.AuthPayload{UserID: previous.UserID, Role: previous.Role, Cause: cause})
	s.logger.Info("user logged out", zap.String("user_id", previous.UserID), zap.String("cause", cause))
}

func (s *Store) publish(t events.EventType, payload events.AuthPayload) {
	if err := s.dispatcher.Publish(context.Background(), events.NewEvent(t, s.sessionID, payload)); err != nil {
		s.logger.Warn("event handler failed", zap.String("event", string(t)), zap.Error(err))
	}
}
