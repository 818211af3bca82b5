package chain

import (
	"context"
	"fmt"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"

	"github.com/spec-kit/unifin/internal/wallet"
)

// EventLog is a decoded contract event.
type EventLog struct {
	Event       string
	Address     common.Address
	TxHash      common.Hash
	BlockNumber uint64
	Fields      map[string]any
}

type rpcLog struct {
	Address     common.Address `json:"address"`
	Topics      []common.Hash  `json:"topics"`
	Data        hexutil.Bytes  `json:"data"`
	BlockNumber hexutil.Uint64 `json:"blockNumber"`
	TxHash      common.Hash    `json:"transactionHash"`
}

// Read performs an eth_call against binding and unpacks the outputs of method.
func Read(ctx context.Context, provider wallet.Provider, b *Binding, method string, args ...any) ([]any, error) {
	if err := b.Require(); err != nil {
		return nil, err
	}
	data, err := b.ABI.Pack(method, args...)
	if err != nil {
		return nil, fmt.Errorf("pack %s.%s: %w", b.Name, method, err)
	}
	msg := map[string]any{
		"to":   b.Address.Hex(),
		"data": hexutil.Encode(data),
	}
	var out hexutil.Bytes
	if err := provider.Request(ctx, "eth_call", []any{msg, "latest"}, &out); err != nil {
		return nil, fmt.Errorf("call %s.%s: %w", b.Name, method, err)
	}
	values, err := b.ABI.Unpack(method, out)
	if err != nil {
		return nil, fmt.Errorf("unpack %s.%s: %w", b.Name, method, err)
	}
	return values, nil
}

// Logs fetches every emission of event from binding. Each element of indexed filters the
// matching indexed argument; nil matches anything.
func Logs(ctx context.Context, provider wallet.Provider, b *Binding, event string, indexed ...[]any) ([]EventLog, error) {
	if err := b.Require(); err != nil {
		return nil, err
	}
	ev, ok := b.ABI.Events[event]
	if !ok {
		return nil, fmt.Errorf("%s has no event %s", b.Name, event)
	}

	filterTopics, err := abi.MakeTopics(indexed...)
	if err != nil {
		return nil, fmt.Errorf("build %s topics: %w", event, err)
	}
	topics := append([][]common.Hash{{ev.ID}}, filterTopics...)
	filter := map[string]any{
		"address":   b.Address.Hex(),
		"fromBlock": "0x0",
		"toBlock":   "latest",
		"topics":    topics,
	}

	var raw []rpcLog
	if err := provider.Request(ctx, "eth_getLogs", []any{filter}, &raw); err != nil {
		return nil, fmt.Errorf("get %s logs: %w", event, err)
	}

	var indexedArgs abi.Arguments
	for _, arg := range ev.Inputs {
		if arg.Indexed {
			indexedArgs = append(indexedArgs, arg)
		}
	}

	logs := make([]EventLog, 0, len(raw))
	for _, l := range raw {
		if len(l.Topics) == 0 || l.Topics[0] != ev.ID {
			continue
		}
		fields := make(map[string]any)
		if len(l.Data) > 0 {
			if err := b.ABI.UnpackIntoMap(fields, event, l.Data); err != nil {
				return nil, fmt.Errorf("decode %s data: %w", event, err)
			}
		}
		if err := abi.ParseTopicsIntoMap(fields, indexedArgs, l.Topics[1:]); err != nil {
			return nil, fmt.Errorf("decode %s topics: %w", event, err)
		}
		logs = append(logs, EventLog{
			Event:       event,
			Address:     l.Address,
			TxHash:      l.TxHash,
			BlockNumber: uint64(l.BlockNumber),
			Fields:      fields,
		})
	}
	return logs, nil
}

// Code returns the deployed bytecode at address.
func Code(ctx context.Context, provider wallet.Provider, address common.Address) ([]byte, error) {
	var code hexutil.Bytes
	if err := provider.Request(ctx, "eth_getCode", []any{address.Hex(), "latest"}, &code); err != nil {
		return nil, err
	}
	return code, nil
}
