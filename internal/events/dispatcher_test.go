package events

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDispatcher_DeliversToTypedAndWildcardHandlers(t *testing.T) {
	d := NewInMemoryDispatcher()
	var typed, all []EventType

	d.Subscribe(EventWalletDisconnected, func(_ context.Context, e Event) error {
		typed = append(typed, e.Type)
		return nil
	})
	d.SubscribeAll(func(_ context.Context, e Event) error {
		all = append(all, e.Type)
		return nil
	})

	require.NoError(t, d.Publish(context.Background(), NewEvent(EventWalletConnected, "s1", nil)))
	require.NoError(t, d.Publish(context.Background(), NewEvent(EventWalletDisconnected, "s1", nil)))

	assert.Equal(t, []EventType{EventWalletDisconnected}, typed)
	assert.Equal(t, []EventType{EventWalletConnected, EventWalletDisconnected}, all)
}

func TestDispatcher_UnsubscribeStopsDelivery(t *testing.T) {
	d := NewInMemoryDispatcher()
	calls := 0
	unsubscribe := d.Subscribe(EventUserLoggedIn, func(context.Context, Event) error {
		calls++
		return nil
	})

	_ = d.Publish(context.Background(), NewEvent(EventUserLoggedIn, "s1", nil))
	unsubscribe()
	unsubscribe()
	_ = d.Publish(context.Background(), NewEvent(EventUserLoggedIn, "s1", nil))

	assert.Equal(t, 1, calls)
}

func TestDispatcher_HandlerErrorDoesNotStopOthers(t *testing.T) {
	d := NewInMemoryDispatcher()
	boom := errors.New("boom")
	reached := false
	d.Subscribe(EventContractCall, func(context.Context, Event) error { return boom })
	d.Subscribe(EventContractCall, func(context.Context, Event) error {
		reached = true
		return nil
	})

	err := d.Publish(context.Background(), NewEvent(EventContractCall, "s1", nil))

	assert.ErrorIs(t, err, boom)
	assert.True(t, reached)
}

func TestTopic(t *testing.T) {
	assert.Equal(t, "unifin.wallet.connected", Topic("unifin", EventWalletConnected))
	assert.Equal(t, "wallet.connected", Topic("", EventWalletConnected))
}
