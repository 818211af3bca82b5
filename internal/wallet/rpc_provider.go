package wallet

import (
	"context"
	"slices"
	"sync"
	"time"

	"github.com/ethereum/go-ethereum/rpc"
	"go.uber.org/zap"
)

// RPCProvider is a Provider backed by an Ethereum JSON-RPC node whose accounts are unlocked
// (Ganache, a dev geth, a signer proxy). accountsChanged is synthesised by polling eth_accounts.
type RPCProvider struct {
	client   *rpc.Client
	logger   *zap.Logger
	interval time.Duration

	mu        sync.Mutex
	nextID    uint64
	listeners map[uint64]func([]string)
	last      []string
	primed    bool

	stop chan struct{}
	done chan struct{}
	once sync.Once
}

// NewRPCProvider dials url and starts the account watcher.
func NewRPCProvider(ctx context.Context, url string, pollInterval time.Duration, logger *zap.Logger) (*RPCProvider, error) {
	p, err := DialRPCProvider(ctx, url, logger)
	if err != nil {
		return nil, err
	}
	if pollInterval <= 0 {
		pollInterval = 2 * time.Second
	}
	p.interval = pollInterval
	p.stop = make(chan struct{})
	p.done = make(chan struct{})
	go p.watchAccounts()
	return p, nil
}

// DialRPCProvider dials url without an account watcher. Listeners registered on it are never
// notified; it suits one-shot readers such as the CLI.
func DialRPCProvider(ctx context.Context, url string, logger *zap.Logger) (*RPCProvider, error) {
	client, err := rpc.DialContext(ctx, url)
	if err != nil {
		return nil, err
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &RPCProvider{
		client:    client,
		logger:    logger,
		listeners: make(map[uint64]func([]string)),
	}, nil
}

// Request forwards a JSON-RPC call to the node.
func (p *RPCProvider) Request(ctx context.Context, method string, params []any, out any) error {
	return p.client.CallContext(ctx, out, method, params...)
}

// OnAccountsChanged registers a listener for account list changes.
func (p *RPCProvider) OnAccountsChanged(fn func([]string)) func() {
	p.mu.Lock()
	p.nextID++
	id := p.nextID
	p.listeners[id] = fn
	p.mu.Unlock()

	return func() {
		p.mu.Lock()
		delete(p.listeners, id)
		p.mu.Unlock()
	}
}

// Close stops the watcher and releases the RPC client.
func (p *RPCProvider) Close() {
	p.once.Do(func() {
		if p.stop != nil {
			close(p.stop)
			<-p.done
		}
		p.client.Close()
	})
}

func (p *RPCProvider) watchAccounts() {
	defer close(p.done)
	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	for {
		select {
		case <-p.stop:
			return
		case <-ticker.C:
			p.poll()
		}
	}
}

func (p *RPCProvider) poll() {
	timeout := max(p.interval, time.Second)
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	var accounts []string
	if err := p.client.CallContext(ctx, &accounts, "eth_accounts"); err != nil {
		p.logger.Debug("poll eth_accounts failed", zap.Error(err))
		return
	}

	p.mu.Lock()
	if p.primed && slices.Equal(p.last, accounts) {
		p.mu.Unlock()
		return
	}
	changed := p.primed
	p.last = accounts
	p.primed = true
	listeners := make([]func([]string), 0, len(p.listeners))
	for _, fn := range p.listeners {
		listeners = append(listeners, fn)
	}
	p.mu.Unlock()

	if !changed {
		return
	}
	p.logger.Info("accounts changed", zap.Strings("accounts", accounts))
	for _, fn := range listeners {
		fn(slices.Clone(accounts))
	}
}
