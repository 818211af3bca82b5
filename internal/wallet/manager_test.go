package wallet_test

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/unifin/internal/domain"
	"github.com/spec-kit/unifin/internal/events"
	"github.com/spec-kit/unifin/internal/wallet"
	"github.com/spec-kit/unifin/internal/wallet/wallettest"
)

const (
	accountA = "0xAAA0000000000000000000000000000000000001"
	accountB = "0xBBB0000000000000000000000000000000000002"
)

func newManager(t *testing.T, provider wallet.Provider) (*wallet.Manager, *wallet.MemoryFlagStore, events.Dispatcher) {
	t.Helper()
	flags := wallet.NewMemoryFlagStore()
	dispatcher := events.NewInMemoryDispatcher()
	m := wallet.NewManager(wallet.ManagerDeps{
		SessionID:  "session-1",
		ClientID:   "client-1",
		Provider:   provider,
		Flags:      flags,
		Dispatcher: dispatcher,
	})
	t.Cleanup(m.Close)
	return m, flags, dispatcher
}

func TestConnect_UsesFirstAccount(t *testing.T) {
	p := wallettest.New().Returns("eth_requestAccounts", []string{accountA, accountB})
	m, flags, _ := newManager(t, p)

	session, err := m.Connect(context.Background())

	require.NoError(t, err)
	assert.Equal(t, accountA, session.Address)
	assert.True(t, session.Connected)
	assert.False(t, session.Pending)
	set, _ := flags.IsSet(context.Background(), "client-1")
	assert.True(t, set)
}

func TestConnect_WithoutProvider(t *testing.T) {
	m, _, _ := newManager(t, nil)

	_, err := m.Connect(context.Background())

	assert.ErrorIs(t, err, domain.ErrProviderUnavailable)
	assert.False(t, m.Session().Connected)
}

func TestConnect_UserRejected(t *testing.T) {
	p := wallettest.New().Fails("eth_requestAccounts", &wallet.ProviderError{Code: wallet.CodeUserRejected, Message: "User rejected the request."})
	m, flags, _ := newManager(t, p)

	_, err := m.Connect(context.Background())

	assert.ErrorIs(t, err, domain.ErrUserRejected)
	session := m.Session()
	assert.Empty(t, session.Address)
	assert.False(t, session.Connected)
	assert.False(t, session.Pending)
	set, _ := flags.IsSet(context.Background(), "client-1")
	assert.False(t, set)
}

func TestConnect_NoAccounts(t *testing.T) {
	p := wallettest.New().Returns("eth_requestAccounts", []string{})
	m, _, _ := newManager(t, p)

	_, err := m.Connect(context.Background())

	assert.ErrorIs(t, err, domain.ErrNoAccounts)
}

func TestConnect_FallsBackToEthAccounts(t *testing.T) {
	p := wallettest.New().Returns("eth_accounts", []string{accountB})
	m, _, _ := newManager(t, p)

	session, err := m.Connect(context.Background())

	require.NoError(t, err)
	assert.Equal(t, accountB, session.Address)
}

func TestConnect_RejectsConcurrentAttempt(t *testing.T) {
	release := make(chan struct{})
	entered := make(chan struct{})
	p := wallettest.New().Handle("eth_requestAccounts", func([]any) (any, error) {
		close(entered)
		<-release
		return []string{accountA}, nil
	})
	m, _, _ := newManager(t, p)

	var wg sync.WaitGroup
	wg.Add(1)
	var firstErr error
	go func() {
		defer wg.Done()
		_, firstErr = m.Connect(context.Background())
	}()
	<-entered

	assert.True(t, m.Session().Pending)
	_, err := m.Connect(context.Background())
	assert.ErrorIs(t, err, domain.ErrConnectPending)

	close(release)
	wg.Wait()
	require.NoError(t, firstErr)
	assert.Equal(t, accountA, m.Session().Address)
}

func TestConnectDisconnectConnect_TracksProviderAccount(t *testing.T) {
	current := []string{accountA}
	p := wallettest.New().Handle("eth_requestAccounts", func([]any) (any, error) { return current, nil })
	m, flags, _ := newManager(t, p)
	ctx := context.Background()

	_, err := m.Connect(ctx)
	require.NoError(t, err)
	assert.True(t, m.Session().Consistent())

	m.Disconnect(ctx)
	assert.Equal(t, domain.WalletSession{}, m.Session())
	assert.True(t, m.Session().Consistent())
	set, _ := flags.IsSet(ctx, "client-1")
	assert.False(t, set)

	current = []string{accountB, accountA}
	session, err := m.Connect(ctx)
	require.NoError(t, err)
	assert.Equal(t, accountB, session.Address)
	assert.True(t, session.Consistent())
}

func TestDisconnect_IsIdempotentAndNotifies(t *testing.T) {
	p := wallettest.New().Returns("eth_requestAccounts", []string{accountA})
	m, _, dispatcher := newManager(t, p)
	var got []events.WalletPayload
	dispatcher.Subscribe(events.EventWalletDisconnected, func(_ context.Context, e events.Event) error {
		got = append(got, e.Payload.(events.WalletPayload))
		return nil
	})

	_, _ = m.Connect(context.Background())
	m.Disconnect(context.Background())
	m.Disconnect(context.Background())

	require.Len(t, got, 2)
	assert.Equal(t, accountA, got[0].PreviousAddress)
	assert.Empty(t, got[1].PreviousAddress)
	assert.Equal(t, domain.WalletSession{}, m.Session())
}

func TestAccountsChanged_EmptyListResetsSession(t *testing.T) {
	p := wallettest.New().Returns("eth_requestAccounts", []string{accountA})
	m, flags, dispatcher := newManager(t, p)
	disconnected := 0
	dispatcher.Subscribe(events.EventWalletDisconnected, func(context.Context, events.Event) error {
		disconnected++
		return nil
	})
	_, _ = m.Connect(context.Background())

	p.EmitAccountsChanged([]string{})

	session := m.Session()
	assert.Empty(t, session.Address)
	assert.False(t, session.Connected)
	assert.Equal(t, 1, disconnected)
	set, _ := flags.IsSet(context.Background(), "client-1")
	assert.False(t, set)
}

func TestAccountsChanged_SwitchUpdatesAddress(t *testing.T) {
	p := wallettest.New().Returns("eth_requestAccounts", []string{accountA})
	m, _, dispatcher := newManager(t, p)
	var changed []events.WalletPayload
	dispatcher.Subscribe(events.EventWalletAccountChanged, func(_ context.Context, e events.Event) error {
		changed = append(changed, e.Payload.(events.WalletPayload))
		return nil
	})
	_, _ = m.Connect(context.Background())

	p.EmitAccountsChanged([]string{accountA})
	p.EmitAccountsChanged([]string{accountB})

	assert.Equal(t, accountB, m.Session().Address)
	assert.True(t, m.Session().Connected)
	require.Len(t, changed, 1)
	assert.Equal(t, accountA, changed[0].PreviousAddress)
}

func TestAccountsChanged_IgnoredWhenNotConnected(t *testing.T) {
	ctx := context.Background()
	p := wallettest.New().Returns("eth_requestAccounts", []string{accountA})
	m, flags, dispatcher := newManager(t, p)
	var seen []events.EventType
	dispatcher.SubscribeAll(func(_ context.Context, e events.Event) error {
		seen = append(seen, e.Type)
		return nil
	})

	p.EmitAccountsChanged([]string{accountB})
	assert.Equal(t, domain.WalletSession{}, m.Session())

	_, err := m.Connect(ctx)
	require.NoError(t, err)
	m.Disconnect(ctx)
	seen = nil

	p.EmitAccountsChanged([]string{accountB})

	assert.Equal(t, domain.WalletSession{}, m.Session())
	set, err := flags.IsSet(ctx, "client-1")
	require.NoError(t, err)
	assert.False(t, set)
	assert.Empty(t, seen)
}

func TestAutoReconnect(t *testing.T) {
	ctx := context.Background()

	t.Run("restores when flag set", func(t *testing.T) {
		p := wallettest.New().Returns("eth_accounts", []string{accountA})
		m, flags, _ := newManager(t, p)
		require.NoError(t, flags.Set(ctx, "client-1"))

		require.NoError(t, m.AutoReconnect(ctx))

		assert.Equal(t, accountA, m.Session().Address)
		assert.Zero(t, p.Called("eth_requestAccounts"))
	})

	t.Run("noop without flag", func(t *testing.T) {
		p := wallettest.New().Returns("eth_accounts", []string{accountA})
		m, _, _ := newManager(t, p)

		require.NoError(t, m.AutoReconnect(ctx))

		assert.False(t, m.Session().Connected)
		assert.Zero(t, p.Called("eth_accounts"))
	})

	t.Run("stays empty when provider lost authorization", func(t *testing.T) {
		p := wallettest.New().Returns("eth_accounts", []string{})
		m, flags, _ := newManager(t, p)
		require.NoError(t, flags.Set(ctx, "client-1"))

		require.NoError(t, m.AutoReconnect(ctx))

		assert.False(t, m.Session().Connected)
	})

	t.Run("provider error leaves session empty", func(t *testing.T) {
		p := wallettest.New().Fails("eth_accounts", errors.New("connection refused"))
		m, flags, _ := newManager(t, p)
		require.NoError(t, flags.Set(ctx, "client-1"))

		assert.Error(t, m.AutoReconnect(ctx))
		assert.False(t, m.Session().Connected)
	})
}

func TestClose_RemovesProviderListener(t *testing.T) {
	p := wallettest.New()
	m := wallet.NewManager(wallet.ManagerDeps{SessionID: "s", ClientID: "c", Provider: p})
	assert.Equal(t, 1, p.Listeners())

	m.Close()
	m.Close()

	assert.Equal(t, 0, p.Listeners())
}
