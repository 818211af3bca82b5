package chain

import (
	"context"
	"errors"
	"fmt"
	"math/big"
	"slices"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"go.uber.org/zap"

	"github.com/spec-kit/unifin/internal/domain"
	"github.com/spec-kit/unifin/internal/events"
	"github.com/spec-kit/unifin/internal/wallet"
)

// Wallet is the slice of a wallet manager a call site needs.
type Wallet interface {
	SessionID() string
	Session() domain.WalletSession
	Provider() wallet.Provider
}

// Recorder persists call outcomes.
type Recorder interface {
	Record(ctx context.Context, record domain.CallRecord) error
}

// Notifier is implemented by wallets that fan call outcomes out to session listeners.
type Notifier interface {
	NotifyContractCall(ctx context.Context, payload events.ContractCallPayload)
}

// Observer receives call outcome metrics.
type Observer interface {
	ObserveContractCall(contract, method, kind string, duration time.Duration)
}

// Call describes one contract write.
type Call struct {
	Binding *Binding
	Method  string
	Args    []any
	// Value is the wei attached to the transaction; nil means zero.
	Value *big.Int
}

// InvokerConfig tunes gas, balance and receipt handling.
type InvokerConfig struct {
	SupportedChainIDs    []int64
	ReceiptPollInterval  time.Duration
	TxTimeout            time.Duration
	GasBufferPercent     int64
	BalanceBufferPercent int64
}

// Invoker runs contract writes through a session's wallet.
type Invoker struct {
	cfg      InvokerConfig
	recorder Recorder
	observer Observer
	logger   *zap.Logger
}

// NewInvoker builds an invoker. recorder and observer may be nil.
func NewInvoker(cfg InvokerConfig, recorder Recorder, observer Observer, logger *zap.Logger) *Invoker {
	if cfg.ReceiptPollInterval <= 0 {
		cfg.ReceiptPollInterval = time.Second
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Invoker{cfg: cfg, recorder: recorder, observer: observer, logger: logger}
}

type txReceipt struct {
	TxHash      common.Hash    `json:"transactionHash"`
	BlockNumber hexutil.Uint64 `json:"blockNumber"`
	GasUsed     hexutil.Uint64 `json:"gasUsed"`
	Status      hexutil.Uint64 `json:"status"`
}

// Invoke sends call from the session's connected account and waits for its receipt.
// Preconditions are checked before any provider request.
func (inv *Invoker) Invoke(ctx context.Context, w Wallet, call Call) Result {
	started := time.Now()
	ws := w.Session()

	result := inv.invoke(ctx, w, ws, call)

	contract := ""
	if call.Binding != nil {
		contract = call.Binding.Name
	}
	if inv.observer != nil {
		inv.observer.ObserveContractCall(contract, call.Method, string(result.Kind), time.Since(started))
	}
	if inv.recorder != nil {
		record := domain.CallRecord{
			SessionID:   w.SessionID(),
			From:        ws.Address,
			Contract:    contract,
			Method:      call.Method,
			Kind:        string(result.Kind),
			TxHash:      result.TxHash,
			BlockNumber: result.BlockNumber,
			Message:     result.Message,
			CreatedAt:   time.Now().UTC(),
		}
		if err := inv.recorder.Record(context.WithoutCancel(ctx), record); err != nil {
			inv.logger.Warn("record contract call", zap.Error(err))
		}
	}

	if n, ok := w.(Notifier); ok {
		n.NotifyContractCall(context.WithoutCancel(ctx), events.ContractCallPayload{
			Contract: contract,
			Method:   call.Method,
			Kind:     string(result.Kind),
			TxHash:   result.TxHash,
		})
	}

	fields := []zap.Field{
		zap.String("session_id", w.SessionID()),
		zap.String("contract", contract),
		zap.String("method", call.Method),
		zap.String("kind", string(result.Kind)),
	}
	if result.TxHash != "" {
		fields = append(fields, zap.String("tx_hash", result.TxHash))
	}
	if result.OK() {
		inv.logger.Info("contract call confirmed", fields...)
	} else {
		inv.logger.Warn("contract call failed", append(fields, zap.String("message", result.Message), zap.Error(result.Err))...)
	}
	return result
}

func (inv *Invoker) invoke(ctx context.Context, w Wallet, ws domain.WalletSession, call Call) Result {
	if !ws.Connected {
		return Fail(KindValidation, MessageWalletNotConnected, domain.ErrWalletNotConnected)
	}
	provider := w.Provider()
	if provider == nil {
		return Fail(KindEnvironment, domain.ErrProviderUnavailable.Error(), domain.ErrProviderUnavailable)
	}
	if err := call.Binding.Require(); err != nil {
		return Classify(err)
	}

	if r, ok := inv.checkNetwork(ctx, provider); !ok {
		return r
	}

	data, err := call.Binding.ABI.Pack(call.Method, call.Args...)
	if err != nil {
		return Fail(KindValidation, fmt.Sprintf("invalid arguments for %s: %v", call.Method, err), err)
	}
	value := call.Value
	if value == nil {
		value = new(big.Int)
	}
	tx := map[string]any{
		"from":  ws.Address,
		"to":    call.Binding.Address.Hex(),
		"data":  hexutil.Encode(data),
		"value": hexutil.EncodeBig(value),
	}

	var estimate hexutil.Uint64
	if err := provider.Request(ctx, "eth_estimateGas", []any{tx}, &estimate); err != nil {
		return Classify(err)
	}
	gasLimit := uint64(estimate) * uint64(100+inv.cfg.GasBufferPercent) / 100

	var gasPrice hexutil.Big
	if err := provider.Request(ctx, "eth_gasPrice", nil, &gasPrice); err != nil {
		return Classify(err)
	}
	var balance hexutil.Big
	if err := provider.Request(ctx, "eth_getBalance", []any{ws.Address, "latest"}, &balance); err != nil {
		return Classify(err)
	}

	required := RequiredBalance(value, gasLimit, gasPrice.ToInt(), inv.cfg.BalanceBufferPercent)
	if balance.ToInt().Cmp(required) < 0 {
		return Fail(KindInsufficientFunds, fmt.Sprintf("Insufficient ETH balance. Required: %s ETH, Available: %s ETH",
			FormatEther(required), FormatEther(balance.ToInt())), nil)
	}

	tx["gas"] = hexutil.EncodeUint64(gasLimit)
	tx["gasPrice"] = hexutil.EncodeBig(gasPrice.ToInt())

	var hash common.Hash
	if err := provider.Request(ctx, "eth_sendTransaction", []any{tx}, &hash); err != nil {
		return Classify(err)
	}

	receipt, err := inv.waitReceipt(ctx, provider, hash)
	if err != nil {
		r := Classify(err)
		if errors.Is(err, context.DeadlineExceeded) {
			r.Message = MessageReceiptTimeout
		}
		r.TxHash = hash.Hex()
		return r
	}

	result := Result{
		Kind:        KindSuccess,
		Message:     MessageConfirmed,
		TxHash:      hash.Hex(),
		BlockNumber: uint64(receipt.BlockNumber),
		GasUsed:     uint64(receipt.GasUsed),
	}
	if receipt.Status == 0 {
		result.Kind = KindChain
		result.Message = MessageTransactionFailed
	}
	return result
}

// RequiredBalance is value plus the gas cost scaled by bufferPercent.
func RequiredBalance(value *big.Int, gasLimit uint64, gasPrice *big.Int, bufferPercent int64) *big.Int {
	cost := new(big.Int).Mul(new(big.Int).SetUint64(gasLimit), gasPrice)
	cost.Mul(cost, big.NewInt(100+bufferPercent))
	cost.Div(cost, big.NewInt(100))
	return cost.Add(cost, value)
}

func (inv *Invoker) checkNetwork(ctx context.Context, provider wallet.Provider) (Result, bool) {
	id, err := ChainID(ctx, provider)
	if err != nil {
		return Classify(err), false
	}
	if len(inv.cfg.SupportedChainIDs) > 0 && !slices.Contains(inv.cfg.SupportedChainIDs, id) {
		return Fail(KindEnvironment, MessageUnsupportedNetwork, fmt.Errorf("chain id %d not supported", id)), false
	}
	return Result{}, true
}

// ChainID asks the provider for the current chain ID.
func ChainID(ctx context.Context, provider wallet.Provider) (int64, error) {
	var id hexutil.Big
	if err := provider.Request(ctx, "eth_chainId", nil, &id); err != nil {
		return 0, err
	}
	return id.ToInt().Int64(), nil
}

func (inv *Invoker) waitReceipt(ctx context.Context, provider wallet.Provider, hash common.Hash) (*txReceipt, error) {
	if inv.cfg.TxTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, inv.cfg.TxTimeout)
		defer cancel()
	}

	ticker := time.NewTicker(inv.cfg.ReceiptPollInterval)
	defer ticker.Stop()
	for {
		var receipt *txReceipt
		if err := provider.Request(ctx, "eth_getTransactionReceipt", []any{hash}, &receipt); err != nil {
			return nil, err
		}
		if receipt != nil {
			return receipt, nil
		}
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-ticker.C:
		}
	}
}
