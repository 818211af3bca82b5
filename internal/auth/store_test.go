package auth

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/spec-kit/unifin/internal/domain"
	"github.com/spec-kit/unifin/internal/events"
)

func newTestStore(t *testing.T, logoutOnSwitch bool) (*Store, events.Dispatcher) {
	t.Helper()
	table, err := NewCredentialTable(SampleCredentials, bcrypt.MinCost)
	require.NoError(t, err)
	d := events.NewInMemoryDispatcher()
	s := NewStore(StoreDeps{SessionID: "s-1", Credentials: table, Dispatcher: d, LogoutOnAccountChange: logoutOnSwitch})
	t.Cleanup(s.Close)
	return s, d
}

func TestLogin_Student(t *testing.T) {
	s, _ := newTestStore(t, false)

	ok := s.Login("johndoe", "johndoe123", domain.RoleStudent)

	require.True(t, ok)
	session := s.Session()
	require.NotNil(t, session)
	assert.Equal(t, "johndoe", session.UserID)
	assert.Equal(t, domain.RoleStudent, session.Role)
	assert.Equal(t, "John Doe", session.Name)
	assert.False(t, session.LoggedInAt.IsZero())
}

func TestLogin_Admin(t *testing.T) {
	s, _ := newTestStore(t, false)

	require.True(t, s.Login("admin", "admin123", domain.RoleAdmin))
	assert.Equal(t, "System Administrator", s.Session().Name)
}

func TestLogin_FailureLeavesSessionUnchanged(t *testing.T) {
	s, _ := newTestStore(t, false)
	require.True(t, s.Login("janedoe", "janedoe123", domain.RoleStudent))

	cases := []struct {
		name     string
		user     string
		password string
		role     domain.Role
	}{
		{"wrong password", "johndoe", "wrongpass", domain.RoleStudent},
		{"wrong role", "admin", "admin123", domain.RoleStudent},
		{"unknown user", "nobody", "nobody123", domain.RoleStudent},
		{"unknown role", "johndoe", "johndoe123", domain.Role("registrar")},
		{"password prefix", "johndoe", "johndoe12", domain.RoleStudent},
		{"oversized password", "johndoe", "johndoe123" + strings.Repeat("x", 80), domain.RoleStudent},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.False(t, s.Login(tc.user, tc.password, tc.role))
			session := s.Session()
			require.NotNil(t, session)
			assert.Equal(t, "janedoe", session.UserID)
		})
	}
}

func TestLogout_IsIdempotent(t *testing.T) {
	s, d := newTestStore(t, false)
	var loggedOut int
	d.Subscribe(events.EventUserLoggedOut, func(context.Context, events.Event) error {
		loggedOut++
		return nil
	})

	require.True(t, s.Login("johndoe", "johndoe123", domain.RoleStudent))
	s.Logout()
	s.Logout()

	assert.Nil(t, s.Session())
	assert.Equal(t, 1, loggedOut)
}

func TestWalletDisconnect_LogsOut(t *testing.T) {
	s, d := newTestStore(t, false)
	var cause string
	d.Subscribe(events.EventUserLoggedOut, func(_ context.Context, e events.Event) error {
		cause = e.Payload.(events.AuthPayload).Cause
		return nil
	})
	require.True(t, s.Login("johndoe", "johndoe123", domain.RoleStudent))

	err := d.Publish(context.Background(), events.NewEvent(events.EventWalletDisconnected, "s-1", events.WalletPayload{Cause: "disconnect"}))

	require.NoError(t, err)
	assert.Nil(t, s.Session())
	assert.Equal(t, "wallet_disconnected", cause)
}

func TestAccountChange_PolicyControlsLogout(t *testing.T) {
	switchEvent := events.NewEvent(events.EventWalletAccountChanged, "s-1", events.WalletPayload{Address: "0xb", PreviousAddress: "0xa"})

	t.Run("kept by default", func(t *testing.T) {
		s, d := newTestStore(t, false)
		require.True(t, s.Login("johndoe", "johndoe123", domain.RoleStudent))
		require.NoError(t, d.Publish(context.Background(), switchEvent))
		assert.NotNil(t, s.Session())
	})

	t.Run("cleared when enabled", func(t *testing.T) {
		s, d := newTestStore(t, true)
		require.True(t, s.Login("johndoe", "johndoe123", domain.RoleStudent))
		require.NoError(t, d.Publish(context.Background(), switchEvent))
		assert.Nil(t, s.Session())
	})
}

func TestClose_StopsCascade(t *testing.T) {
	s, d := newTestStore(t, false)
	require.True(t, s.Login("johndoe", "johndoe123", domain.RoleStudent))

	s.Close()
	require.NoError(t, d.Publish(context.Background(), events.NewEvent(events.EventWalletDisconnected, "s-1", events.WalletPayload{})))

	assert.NotNil(t, s.Session())
}

func TestSession_ReturnsCopy(t *testing.T) {
	s, _ := newTestStore(t, false)
	require.True(t, s.Login("johndoe", "johndoe123", domain.RoleStudent))

	s.Session().Name = "mutated"

	assert.Equal(t, "John Doe", s.Session().Name)
}
