package service

import (
	"bytes"
	"fmt"
	"math/big"
	"testing"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/unifin/internal/chain"
	"github.com/spec-kit/unifin/internal/config"
	"github.com/spec-kit/unifin/internal/domain"
	"github.com/spec-kit/unifin/internal/wallet"
	"github.com/spec-kit/unifin/internal/wallet/wallettest"
)

const (
	adminAddr   = "0x1111111111111111111111111111111111111111"
	otherAddr   = "0x3333333333333333333333333333333333333333"
	studentAddr = "0x4444444444444444444444444444444444444444"
	txHash      = "0xcdcdcdcdcdcdcdcdcdcdcdcdcdcdcdcdcdcdcdcdcdcdcdcdcdcdcdcdcdcdcdcd"
)

type testWallet struct {
	state    domain.WalletSession
	provider wallet.Provider
}

func (w testWallet) SessionID() string { return "session-1" }

func (w testWallet) Session() domain.WalletSession { return w.state }

func (w testWallet) Provider() wallet.Provider { return w.provider }

func connected(address string, p wallet.Provider) testWallet {
	return testWallet{state: domain.WalletSession{Address: address, Connected: true}, provider: p}
}

// reply answers one contract read with its output values.
type reply func(args []any) []any

// node is a scripted chain: transactions succeed and eth_call is routed to per-method replies.
type node struct {
	*wallettest.Provider
	contracts *chain.Contracts
	replies   map[string]reply
	sent      []string
}

func testContracts(t *testing.T) *chain.Contracts {
	t.Helper()
	c, err := chain.NewContracts(config.ContractsConfig{
		University:       "0xa000000000000000000000000000000000000001",
		StudentRegistry:  "0xa000000000000000000000000000000000000002",
		EmployeeRegistry: "0xa000000000000000000000000000000000000003",
		Scholarship:      "0xa000000000000000000000000000000000000004",
		FeePayment:       "0xa000000000000000000000000000000000000005",
		Payroll:          "0xa000000000000000000000000000000000000006",
		FundAllocation:   "0xa000000000000000000000000000000000000007",
		Payments:         "0xa000000000000000000000000000000000000008",
	})
	require.NoError(t, err)
	return c
}

func newNode(t *testing.T, contracts *chain.Contracts) *node {
	t.Helper()
	n := &node{Provider: wallettest.New(), contracts: contracts, replies: make(map[string]reply)}
	n.Returns("eth_chainId", "0x539").
		Returns("eth_estimateGas", "0x5208").
		Returns("eth_gasPrice", "0x1").
		Returns("eth_getBalance", hexutil.EncodeBig(new(big.Int).Mul(big.NewInt(100), big.NewInt(1e18)))).
		Returns("eth_getCode", "0x6080").
		Returns("eth_getLogs", []any{}).
		Returns("eth_getTransactionReceipt", map[string]any{
			"transactionHash": txHash,
			"blockNumber":     "0x1",
			"gasUsed":         "0x5208",
			"status":          "0x1",
		})
	n.Handle("eth_sendTransaction", func(params []any) (any, error) {
		tx := params[0].(map[string]any)
		method, _, err := n.decode(tx["to"].(string), tx["data"].(string))
		if err != nil {
			return nil, err
		}
		n.sent = append(n.sent, method)
		return txHash, nil
	})
	n.Handle("eth_call", func(params []any) (any, error) {
		msg := params[0].(map[string]any)
		method, args, err := n.decode(msg["to"].(string), msg["data"].(string))
		if err != nil {
			return nil, err
		}
		b := n.binding(msg["to"].(string))
		r, ok := n.replies[b.Name+"."+method]
		if !ok {
			return nil, fmt.Errorf("no reply for %s.%s", b.Name, method)
		}
		out, err := b.ABI.Methods[method].Outputs.Pack(r(args)...)
		if err != nil {
			return nil, err
		}
		return hexutil.Encode(out), nil
	})
	return n
}

// on registers the reply for contract.method.
func (n *node) on(contract, method string, r reply) *node {
	n.replies[contract+"."+method] = r
	return n
}

func (n *node) binding(to string) *chain.Binding {
	for _, b := range n.contracts.All() {
		if b.Address == common.HexToAddress(to) {
			return b
		}
	}
	return nil
}

func (n *node) decode(to, data string) (string, []any, error) {
	b := n.binding(to)
	if b == nil {
		return "", nil, fmt.Errorf("unknown contract %s", to)
	}
	raw, err := hexutil.Decode(data)
	if err != nil {
		return "", nil, err
	}
	for name, m := range b.ABI.Methods {
		if bytes.Equal(m.ID, raw[:4]) {
			args, err := m.Inputs.Unpack(raw[4:])
			return name, args, err
		}
	}
	return "", nil, fmt.Errorf("unknown selector %x", raw[:4])
}

func values(v ...any) reply {
	return func([]any) []any { return v }
}

func testDeps(contracts *chain.Contracts) ChainDependencies {
	return ChainDependencies{
		Invoker: chain.NewInvoker(chain.InvokerConfig{
			SupportedChainIDs:    []int64{1337},
			ReceiptPollInterval:  time.Millisecond,
			GasBufferPercent:     20,
			BalanceBufferPercent: 10,
		}, nil, nil, nil),
		Contracts: contracts,
	}
}
