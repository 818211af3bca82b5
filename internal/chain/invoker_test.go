package chain

import (
	"context"
	"errors"
	"math/big"
	"sync"
	"testing"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/unifin/internal/domain"
	"github.com/spec-kit/unifin/internal/events"
	"github.com/spec-kit/unifin/internal/wallet"
	"github.com/spec-kit/unifin/internal/wallet/wallettest"
)

const (
	sender   = "0x1111111111111111111111111111111111111111"
	feeAddr  = "0x2222222222222222222222222222222222222222"
	txHashes = "0xabababababababababababababababababababababababababababababababab"
)

type testWallet struct {
	state    domain.WalletSession
	provider wallet.Provider
}

func (w testWallet) SessionID() string { return "session-1" }
func (w testWallet) Session() domain.WalletSession { return w.state }
func (w testWallet) Provider() wallet.Provider { return w.provider }

type memoryRecorder struct {
	mu      sync.Mutex
	records []domain.CallRecord
}

func (r *memoryRecorder) Record(_ context.Context, rec domain.CallRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.records = append(r.records, rec)
	return nil
}

func connectedWallet(p wallet.Provider) testWallet {
	return testWallet{state: domain.WalletSession{Address: sender, Connected: true}, provider: p}
}

// happyChain scripts a node that accepts any transaction.
func happyChain() *wallettest.Provider {
	return wallettest.New().
		Returns("eth_chainId", "0x539").
		Returns("eth_estimateGas", "0x186a0").
		Returns("eth_gasPrice", "0x4a817c800").
		Returns("eth_getBalance", hexutil.EncodeBig(big.NewInt(5e18))).
		Returns("eth_sendTransaction", txHashes).
		Returns("eth_getTransactionReceipt", map[string]any{
			"transactionHash": txHashes,
			"blockNumber":     "0x10",
			"gasUsed":         "0x5208",
			"status":          "0x1",
		})
}

func feeBinding(t *testing.T) *Binding {
	t.Helper()
	b, err := NewBinding(FeePayment, feeAddr, feePaymentABI)
	require.NoError(t, err)
	return b
}

func newTestInvoker(rec Recorder) *Invoker {
	return NewInvoker(InvokerConfig{
		SupportedChainIDs:    []int64{1337, 5777},
		ReceiptPollInterval:  time.Millisecond,
		GasBufferPercent:     20,
		BalanceBufferPercent: 10,
	}, rec, nil, nil)
}

func payFeeCall(t *testing.T) Call {
	return Call{Binding: feeBinding(t), Method: "payFee", Args: []any{"S1", big.NewInt(1e18), "Fall", "tuition"}}
}

func TestInvoke_Success(t *testing.T) {
	p := happyChain()
	rec := &memoryRecorder{}

	r := newTestInvoker(rec).Invoke(context.Background(), connectedWallet(p), payFeeCall(t))

	require.Equal(t, KindSuccess, r.Kind, r.Message)
	assert.Equal(t, txHashes, r.TxHash)
	assert.Equal(t, uint64(16), r.BlockNumber)
	require.Len(t, rec.records, 1)
	assert.Equal(t, "success", rec.records[0].Kind)
	assert.Equal(t, FeePayment, rec.records[0].Contract)

	calls := p.Calls()
	var sent map[string]any
	for _, c := range calls {
		if c.Method == "eth_sendTransaction" {
			sent = c.Params[0].(map[string]any)
		}
	}
	require.NotNil(t, sent)
	assert.Equal(t, sender, sent["from"])
	assert.Equal(t, common.HexToAddress(feeAddr).Hex(), sent["to"])
	// 100000 estimated plus 20%
	assert.Equal(t, "0x1d4c0", sent["gas"])
}

type notifyingWallet struct {
	testWallet
	payloads []events.ContractCallPayload
}

func (w *notifyingWallet) NotifyContractCall(_ context.Context, p events.ContractCallPayload) {
	w.payloads = append(w.payloads, p)
}

func TestInvoke_NotifiesWallet(t *testing.T) {
	w := &notifyingWallet{testWallet: connectedWallet(happyChain())}

	r := newTestInvoker(nil).Invoke(context.Background(), w, payFeeCall(t))

	require.True(t, r.OK(), r.Message)
	require.Len(t, w.payloads, 1)
	assert.Equal(t, events.ContractCallPayload{Contract: FeePayment, Method: "payFee", Kind: "success", TxHash: txHashes}, w.payloads[0])
}

func TestInvoke_DisconnectedWalletMakesNoRequest(t *testing.T) {
	p := happyChain()
	w := testWallet{provider: p}

	r := newTestInvoker(nil).Invoke(context.Background(), w, payFeeCall(t))

	assert.Equal(t, KindValidation, r.Kind)
	assert.Equal(t, "Please connect your wallet first", r.Message)
	assert.Empty(t, p.Calls())
}

func TestInvoke_UnconfiguredContract(t *testing.T) {
	p := happyChain()
	b, err := NewBinding(Payroll, "", payrollABI)
	require.NoError(t, err)

	r := newTestInvoker(nil).Invoke(context.Background(), connectedWallet(p), Call{Binding: b, Method: "getBalance"})

	assert.Equal(t, KindEnvironment, r.Kind)
	assert.Equal(t, "Payroll contract address not configured", r.Message)
	assert.Empty(t, p.Calls())
}

func TestInvoke_UnsupportedNetwork(t *testing.T) {
	p := happyChain().Returns("eth_chainId", "0x1")

	r := newTestInvoker(nil).Invoke(context.Background(), connectedWallet(p), payFeeCall(t))

	assert.Equal(t, KindEnvironment, r.Kind)
	assert.Equal(t, MessageUnsupportedNetwork, r.Message)
	assert.Zero(t, p.Called("eth_sendTransaction"))
}

func TestInvoke_InsufficientBalance(t *testing.T) {
	p := happyChain().Returns("eth_getBalance", "0x0")

	r := newTestInvoker(nil).Invoke(context.Background(), connectedWallet(p), Call{
		Binding: feeBinding(t), Method: "payFee", Args: []any{"S1", big.NewInt(1), "Fall", ""},
	})

	assert.Equal(t, KindInsufficientFunds, r.Kind)
	// 120000 gas at 20 gwei plus 10%
	assert.Equal(t, "Insufficient ETH balance. Required: 0.00264 ETH, Available: 0.0 ETH", r.Message)
	assert.Zero(t, p.Called("eth_sendTransaction"))
}

func TestInvoke_UserRejects(t *testing.T) {
	p := happyChain().Fails("eth_sendTransaction", &wallet.ProviderError{Code: 4001, Message: "User rejected the request."})

	r := newTestInvoker(nil).Invoke(context.Background(), connectedWallet(p), payFeeCall(t))

	assert.Equal(t, KindUserRejected, r.Kind)
	assert.Equal(t, MessageUserRejected, r.Message)
}

func TestInvoke_RevertDuringEstimate(t *testing.T) {
	p := happyChain().Fails("eth_estimateGas", &wallet.ProviderError{
		Code: 3, Message: "execution reverted", Data: revertData(t, "Only admin"),
	})

	r := newTestInvoker(nil).Invoke(context.Background(), connectedWallet(p), payFeeCall(t))

	assert.Equal(t, KindChain, r.Kind)
	assert.Equal(t, "Only admin", r.Reason)
}

func TestInvoke_FailedReceipt(t *testing.T) {
	p := happyChain().Returns("eth_getTransactionReceipt", map[string]any{
		"transactionHash": txHashes, "blockNumber": "0x10", "gasUsed": "0x5208", "status": "0x0",
	})

	r := newTestInvoker(nil).Invoke(context.Background(), connectedWallet(p), payFeeCall(t))

	assert.Equal(t, KindChain, r.Kind)
	assert.Equal(t, "Transaction failed", r.Message)
	assert.Equal(t, txHashes, r.TxHash)
}

func TestInvoke_PollsUntilMined(t *testing.T) {
	var polls int
	p := happyChain().Handle("eth_getTransactionReceipt", func([]any) (any, error) {
		polls++
		if polls < 3 {
			return nil, nil
		}
		return map[string]any{"transactionHash": txHashes, "blockNumber": "0x11", "gasUsed": "0x1", "status": "0x1"}, nil
	})

	r := newTestInvoker(nil).Invoke(context.Background(), connectedWallet(p), payFeeCall(t))

	assert.Equal(t, KindSuccess, r.Kind)
	assert.Equal(t, 3, polls)
}

func TestInvoke_ReceiptTimeout(t *testing.T) {
	p := happyChain().Returns("eth_getTransactionReceipt", nil)
	inv := NewInvoker(InvokerConfig{
		ReceiptPollInterval: time.Millisecond,
		TxTimeout:           20 * time.Millisecond,
	}, nil, nil, nil)

	r := inv.Invoke(context.Background(), connectedWallet(p), payFeeCall(t))

	assert.Equal(t, KindNetwork, r.Kind)
	assert.Equal(t, MessageReceiptTimeout, r.Message)
	assert.Equal(t, txHashes, r.TxHash)
}

func TestInvoke_TransportFailure(t *testing.T) {
	p := happyChain().Fails("eth_chainId", errors.New("connection refused"))

	r := newTestInvoker(nil).Invoke(context.Background(), connectedWallet(p), payFeeCall(t))

	assert.Equal(t, KindNetwork, r.Kind)
}
