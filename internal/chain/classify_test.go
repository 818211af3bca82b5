package chain

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/unifin/internal/wallet"
)

func revertData(t *testing.T, reason string) string {
	t.Helper()
	strType, err := abi.NewType("string", "", nil)
	require.NoError(t, err)
	packed, err := abi.Arguments{{Type: strType}}.Pack(reason)
	require.NoError(t, err)
	selector := []byte{0x08, 0xc3, 0x79, 0xa0}
	return hexutil.Encode(append(selector, packed...))
}

func TestClassify(t *testing.T) {
	cases := []struct {
		name string
		err  error
		kind Kind
	}{
		{"user rejected code", &wallet.ProviderError{Code: 4001, Message: "denied"}, KindUserRejected},
		{"user rejected text", errors.New("MetaMask Tx Signature: User denied transaction signature."), KindUserRejected},
		{"insufficient funds", &wallet.ProviderError{Code: -32000, Message: "insufficient funds for gas * price + value"}, KindInsufficientFunds},
		{"execution code", &wallet.ProviderError{Code: 3, Message: "execution reverted"}, KindChain},
		{"vm exception", &wallet.ProviderError{Code: -32000, Message: "VM Exception while processing transaction: revert Only admin"}, KindChain},
		{"internal", &wallet.ProviderError{Code: -32603, Message: "internal error"}, KindNetwork},
		{"other coded", &wallet.ProviderError{Code: -32602, Message: "invalid params"}, KindChain},
		{"transport", errors.New("dial tcp 127.0.0.1:7545: connect: connection refused"), KindNetwork},
		{"deadline", fmt.Errorf("waiting: %w", context.DeadlineExceeded), KindNetwork},
		{"not configured", notConfigured(&Binding{Name: Payroll}), KindEnvironment},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.kind, Classify(tc.err).Kind)
		})
	}
}

func TestClassify_DecodesRevertData(t *testing.T) {
	err := &wallet.ProviderError{Code: 3, Message: "execution reverted", Data: revertData(t, "Student already registered")}

	r := Classify(err)

	assert.Equal(t, KindChain, r.Kind)
	assert.Equal(t, "Student already registered", r.Reason)
	assert.Equal(t, "Transaction failed: Student already registered", r.Message)
}

func TestClassify_RevertReasonFromMessage(t *testing.T) {
	err := &wallet.ProviderError{Code: -32000, Message: "VM Exception while processing transaction: revert Only admin can register"}

	assert.Equal(t, "Only admin can register", Classify(err).Reason)
}

func TestClassify_NotConfiguredMessage(t *testing.T) {
	r := Classify(notConfigured(&Binding{Name: Payroll}))

	assert.Equal(t, "Payroll contract address not configured", r.Message)
}

func TestResultAsError(t *testing.T) {
	assert.NoError(t, Result{Kind: KindSuccess}.AsError())

	err := Fail(KindInsufficientFunds, "no money", nil).AsError()
	require.Error(t, err)
	assert.Equal(t, "no money", err.Error())
}
