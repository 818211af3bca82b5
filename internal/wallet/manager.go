package wallet

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"go.uber.org/zap"

	"github.com/spec-kit/unifin/internal/domain"
	"github.com/spec-kit/unifin/internal/events"
)

// Manager owns the WalletSession of one client session.
type Manager struct {
	sessionID  string
	clientID   string
	provider   Provider
	flags      FlagStore
	dispatcher events.Dispatcher
	logger     *zap.Logger

	mu          sync.Mutex
	state       domain.WalletSession
	unsubscribe func()
}

// ManagerDeps bundles the collaborators of a Manager.
type ManagerDeps struct {
	SessionID  string
	ClientID   string
	Provider   Provider
	Flags      FlagStore
	Dispatcher events.Dispatcher
	Logger     *zap.Logger
}

// NewManager builds a manager and subscribes it to the provider's account notifications.
// A nil Provider models a missing wallet extension.
func NewManager(deps ManagerDeps) *Manager {
	if deps.Flags == nil {
		deps.Flags = NewMemoryFlagStore()
	}
	if deps.Dispatcher == nil {
		deps.Dispatcher = events.NewInMemoryDispatcher()
	}
	if deps.Logger == nil {
		deps.Logger = zap.NewNop()
	}
	m := &Manager{
		sessionID:  deps.SessionID,
		clientID:   deps.ClientID,
		provider:   deps.Provider,
		flags:      deps.Flags,
		dispatcher: deps.Dispatcher,
		logger:     deps.Logger.With(zap.String("session_id", deps.SessionID)),
	}
	if m.provider != nil {
		m.unsubscribe = m.provider.OnAccountsChanged(m.handleAccountsChanged)
	}
	return m
}

// Session returns a snapshot of the wallet state.
func (m *Manager) Session() domain.WalletSession {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state
}

// SessionID returns the owning client session.
func (m *Manager) SessionID() string {
	return m.sessionID
}

// Provider exposes the request handle used by contract call sites.
func (m *Manager) Provider() Provider {
	return m.provider
}

// Connect requests account access and activates the first returned account.
func (m *Manager) Connect(ctx context.Context) (domain.WalletSession, error) {
	if m.provider == nil {
		return m.Session(), domain.ErrProviderUnavailable
	}

	m.mu.Lock()
	if m.state.Pending {
		m.mu.Unlock()
		return m.Session(), domain.ErrConnectPending
	}
	m.state.Pending = true
	m.mu.Unlock()

	accounts, err := m.requestAccounts(ctx)

	m.mu.Lock()
	m.state.Pending = false
	if err != nil {
		snapshot := m.state
		m.mu.Unlock()
		m.logger.Warn("wallet connect failed", zap.Error(err))
		return snapshot, err
	}
	previous := m.state.Address
	m.state.Address = accounts[0]
	m.state.Connected = true
	snapshot := m.state
	m.mu.Unlock()

	if err := m.flags.Set(ctx, m.clientID); err != nil {
		m.logger.Warn("persist connected flag", zap.Error(err))
	}
	m.publish(ctx, events.EventWalletConnected, events.WalletPayload{
		Address:         snapshot.Address,
		PreviousAddress: previous,
		Cause:           "connect",
	})
	m.logger.Info("wallet connected", zap.String("address", snapshot.Address))
	return snapshot, nil
}

func (m *Manager) requestAccounts(ctx context.Context) ([]string, error) {
	var accounts []string
	err := m.provider.Request(ctx, "eth_requestAccounts", nil, &accounts)
	if err != nil && isMethodNotFound(err) {
		err = m.provider.Request(ctx, "eth_accounts", nil, &accounts)
	}
	if err != nil {
		if IsUserRejected(err) {
			return nil, fmt.Errorf("%w: %v", domain.ErrUserRejected, err)
		}
		return nil, fmt.Errorf("request accounts: %w", err)
	}
	if len(accounts) == 0 {
		return nil, domain.ErrNoAccounts
	}
	return accounts, nil
}

// Disconnect clears the session and the persisted flag, then notifies listeners.
func (m *Manager) Disconnect(ctx context.Context) {
	previous := m.reset()
	if err := m.flags.Clear(ctx, m.clientID); err != nil {
		m.logger.Warn("clear connected flag", zap.Error(err))
	}
	m.publish(ctx, events.EventWalletDisconnected, events.WalletPayload{
		PreviousAddress: previous,
		Cause:           "disconnect",
	})
	m.logger.Info("wallet disconnected", zap.String("previous_address", previous))
}

// AutoReconnect silently restores a previous connection. It never prompts the user.
func (m *Manager) AutoReconnect(ctx context.Context) error {
	if m.provider == nil {
		return nil
	}
	set, err := m.flags.IsSet(ctx, m.clientID)
	if err != nil {
		return fmt.Errorf("read connected flag: %w", err)
	}
	if !set {
		return nil
	}

	var accounts []string
	if err := m.provider.Request(ctx, "eth_accounts", nil, &accounts); err != nil {
		return fmt.Errorf("auto reconnect: %w", err)
	}
	if len(accounts) == 0 {
		return nil
	}

	m.mu.Lock()
	m.state.Address = accounts[0]
	m.state.Connected = true
	m.mu.Unlock()

	m.publish(ctx, events.EventWalletConnected, events.WalletPayload{
		Address: accounts[0],
		Cause:   "auto_reconnect",
	})
	m.logger.Info("wallet reconnected", zap.String("address", accounts[0]))
	return nil
}

// handleAccountsChanged reacts to provider notifications. Only connected sessions follow
// account switches: the node-backed provider is shared by every session, and a session that
// is not connected must not become connected without Connect or AutoReconnect.
func (m *Manager) handleAccountsChanged(accounts []string) {
	ctx := context.Background()

	if len(accounts) == 0 {
		m.mu.Lock()
		wasConnected := m.state.Connected
		m.mu.Unlock()
		if !wasConnected {
			return
		}
		previous := m.reset()
		if err := m.flags.Clear(ctx, m.clientID); err != nil {
			m.logger.Warn("clear connected flag", zap.Error(err))
		}
		m.publish(ctx, events.EventWalletDisconnected, events.WalletPayload{
			PreviousAddress: previous,
			Cause:           "accounts_changed",
		})
		m.logger.Info("wallet locked or revoked", zap.String("previous_address", previous))
		return
	}

	m.mu.Lock()
	if !m.state.Connected || strings.EqualFold(m.state.Address, accounts[0]) {
		m.mu.Unlock()
		return
	}
	previous := m.state.Address
	m.state.Address = accounts[0]
	m.mu.Unlock()

	m.publish(ctx, events.EventWalletAccountChanged, events.WalletPayload{
		Address:         accounts[0],
		PreviousAddress: previous,
		Cause:           "accounts_changed",
	})
	m.logger.Info("wallet account changed", zap.String("address", accounts[0]), zap.String("previous_address", previous))
}

// NotifyContractCall publishes a contract call outcome to the session's listeners.
func (m *Manager) NotifyContractCall(ctx context.Context, payload events.ContractCallPayload) {
	m.publish(ctx, events.EventContractCall, payload)
}

// Close detaches the manager from the provider.
func (m *Manager) Close() {
	m.mu.Lock()
	unsubscribe := m.unsubscribe
	m.unsubscribe = nil
	m.mu.Unlock()
	if unsubscribe != nil {
		unsubscribe()
	}
}

func (m *Manager) reset() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	previous := m.state.Address
	m.state.Address = ""
	m.state.Connected = false
	return previous
}

func (m *Manager) publish(ctx context.Context, t events.EventType, payload any) {
	if err := m.dispatcher.Publish(ctx, events.NewEvent(t, m.sessionID, payload)); err != nil {
		m.logger.Warn("event handler failed", zap.String("event", string(t)), zap.Error(err))
	}
}
