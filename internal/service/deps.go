package service

import (
	"context"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"go.uber.org/zap"

	"github.com/spec-kit/unifin/internal/chain"
	"github.com/spec-kit/unifin/internal/domain"
	"github.com/spec-kit/unifin/internal/wallet"
)

// ChainDependencies bundles what every call-site service needs.
type ChainDependencies struct {
	Invoker   *chain.Invoker
	Contracts *chain.Contracts
	Logger    *zap.Logger
}

func (d ChainDependencies) logger() *zap.Logger {
	if d.Logger == nil {
		return zap.NewNop()
	}
	return d.Logger
}

func providerOf(w chain.Wallet) (wallet.Provider, error) {
	p := w.Provider()
	if p == nil {
		return nil, domain.ErrProviderUnavailable
	}
	return p, nil
}

func mustEther(amount string) *big.Int {
	wei, err := chain.ParseEther(amount)
	if err != nil {
		// forms are validated with the ether tag before this point
		return new(big.Int)
	}
	return wei
}

func readAddress(ctx context.Context, p wallet.Provider, b *chain.Binding, method string, args ...any) (common.Address, error) {
	out, err := chain.Read(ctx, p, b, method, args...)
	if err != nil {
		return common.Address{}, err
	}
	addr, _ := out[0].(common.Address)
	return addr, nil
}

func readBool(ctx context.Context, p wallet.Provider, b *chain.Binding, method string, args ...any) (bool, error) {
	out, err := chain.Read(ctx, p, b, method, args...)
	if err != nil {
		return false, err
	}
	v, _ := out[0].(bool)
	return v, nil
}

func readBig(ctx context.Context, p wallet.Provider, b *chain.Binding, method string, args ...any) (*big.Int, error) {
	out, err := chain.Read(ctx, p, b, method, args...)
	if err != nil {
		return nil, err
	}
	v, ok := out[0].(*big.Int)
	if !ok {
		return new(big.Int), nil
	}
	return v, nil
}
