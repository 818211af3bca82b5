package chain

import (
	"context"
	"math/big"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/unifin/internal/wallet/wallettest"
)

const universityAddr = "0x3333333333333333333333333333333333333333"

func universityBinding(t *testing.T) *Binding {
	t.Helper()
	b, err := NewBinding(University, universityAddr, universityABI)
	require.NoError(t, err)
	return b
}

func TestRead_UnpacksOutputs(t *testing.T) {
	b := universityBinding(t)
	admin := common.HexToAddress(sender)
	packed, err := b.ABI.Methods["admin"].Outputs.Pack(admin)
	require.NoError(t, err)
	p := wallettest.New().Returns("eth_call", hexutil.Encode(packed))

	out, err := Read(context.Background(), p, b, "admin")

	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.Equal(t, admin, out[0].(common.Address))

	msg := p.Calls()[0].Params[0].(map[string]any)
	assert.Equal(t, b.Address.Hex(), msg["to"])
	assert.Equal(t, hexutil.Encode(b.ABI.Methods["admin"].ID), msg["data"])
}

func TestRead_EmptyReturnIsAnError(t *testing.T) {
	p := wallettest.New().Returns("eth_call", "0x")

	_, err := Read(context.Background(), p, universityBinding(t), "admin")

	assert.Error(t, err)
}

func TestRead_Unconfigured(t *testing.T) {
	b, err := NewBinding(University, "", universityABI)
	require.NoError(t, err)

	_, err = Read(context.Background(), wallettest.New(), b, "admin")

	assert.ErrorIs(t, err, ErrContractNotConfigured)
}

func TestLogs_DecodesIndexedAndData(t *testing.T) {
	b := universityBinding(t)
	ev := b.ABI.Events["FeePaid"]
	data, err := ev.Inputs.NonIndexed().Pack(big.NewInt(2e18), big.NewInt(1700000000))
	require.NoError(t, err)
	student := common.HexToAddress(sender)

	p := wallettest.New().Returns("eth_getLogs", []map[string]any{{
		"address":         universityAddr,
		"topics":          []string{ev.ID.Hex(), common.BytesToHash(student.Bytes()).Hex()},
		"data":            hexutil.Encode(data),
		"blockNumber":     "0x7",
		"transactionHash": txHashes,
	}})

	logs, err := Logs(context.Background(), p, b, "FeePaid", []any{student})

	require.NoError(t, err)
	require.Len(t, logs, 1)
	assert.Equal(t, uint64(7), logs[0].BlockNumber)
	assert.Equal(t, student, logs[0].Fields["student"])
	assert.Equal(t, "2000000000000000000", logs[0].Fields["amount"].(*big.Int).String())
	assert.Equal(t, int64(1700000000), logs[0].Fields["timestamp"].(*big.Int).Int64())

	filter := p.Calls()[0].Params[0].(map[string]any)
	topics := filter["topics"].([][]common.Hash)
	require.Len(t, topics, 2)
	assert.Equal(t, ev.ID, topics[0][0])
}

func TestLogs_UnknownEvent(t *testing.T) {
	_, err := Logs(context.Background(), wallettest.New(), universityBinding(t), "Nope")
	assert.Error(t, err)
}
