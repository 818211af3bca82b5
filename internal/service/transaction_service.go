package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/ethereum/go-ethereum/common/hexutil"

	"github.com/spec-kit/unifin/internal/chain"
	"github.com/spec-kit/unifin/internal/domain"
	"github.com/spec-kit/unifin/internal/repository"
)

const defaultCallLogLimit = 50

// TransactionService reads account activity from the chain and the call log.
type TransactionService struct {
	calls        repository.CallLogRepository
	recentBlocks int
}

// NewTransactionService constructs the service. recentBlocks defaults to 10.
func NewTransactionService(calls repository.CallLogRepository, recentBlocks int) *TransactionService {
	if recentBlocks <= 0 {
		recentBlocks = 10
	}
	return &TransactionService{calls: calls, recentBlocks: recentBlocks}
}

type rpcBlock struct {
	Number       hexutil.Uint64 `json:"number"`
	Timestamp    hexutil.Uint64 `json:"timestamp"`
	Transactions []rpcTx        `json:"transactions"`
}

type rpcTx struct {
	Hash  string      `json:"hash"`
	From  string      `json:"from"`
	To    *string     `json:"to"`
	Value hexutil.Big `json:"value"`
}

// Recent scans the latest blocks, newest first, for transactions sent from or to the
// session account.
func (s *TransactionService) Recent(ctx context.Context, w chain.Wallet) ([]domain.Transaction, error) {
	ws := w.Session()
	if !ws.Connected {
		return nil, domain.ErrWalletNotConnected
	}
	p, err := providerOf(w)
	if err != nil {
		return nil, err
	}

	var head hexutil.Uint64
	if err := p.Request(ctx, "eth_blockNumber", nil, &head); err != nil {
		return nil, fmt.Errorf("read block number: %w", err)
	}

	account := strings.ToLower(ws.Address)
	var txs []domain.Transaction
	for i := 0; i < s.recentBlocks && uint64(i) <= uint64(head); i++ {
		number := uint64(head) - uint64(i)
		var block *rpcBlock
		if err := p.Request(ctx, "eth_getBlockByNumber", []any{hexutil.EncodeUint64(number), true}, &block); err != nil {
			return nil, fmt.Errorf("read block %d: %w", number, err)
		}
		if block == nil {
			continue
		}
		for _, tx := range block.Transactions {
			to := ""
			if tx.To != nil {
				to = *tx.To
			}
			if strings.ToLower(tx.From) != account && strings.ToLower(to) != account {
				continue
			}
			txs = append(txs, domain.Transaction{
				Hash:        tx.Hash,
				From:        tx.From,
				To:          to,
				ValueEther:  chain.FormatEther(tx.Value.ToInt()),
				BlockNumber: uint64(block.Number),
				Timestamp:   time.Unix(int64(block.Timestamp), 0).UTC(),
			})
		}
	}
	return txs, nil
}

// CallLog lists recorded contract call outcomes, newest first.
func (s *TransactionService) CallLog(ctx context.Context, limit int) ([]domain.CallRecord, error) {
	if limit <= 0 {
		limit = defaultCallLogLimit
	}
	return s.calls.Recent(ctx, limit)
}
