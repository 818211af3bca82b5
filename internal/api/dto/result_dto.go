package dto

import "github.com/spec-kit/unifin/internal/chain"

// ResultResponse describes a confirmed contract call.
type ResultResponse struct {
	Kind        chain.Kind `json:"kind"`
	Message     string     `json:"message"`
	TxHash      string     `json:"tx_hash,omitempty"`
	BlockNumber uint64     `json:"block_number,omitempty"`
	GasUsed     uint64     `json:"gas_used,omitempty"`
}

// NewResultResponse renders r.
func NewResultResponse(r chain.Result) ResultResponse {
	return ResultResponse{
		Kind:        r.Kind,
		Message:     r.Message,
		TxHash:      r.TxHash,
		BlockNumber: r.BlockNumber,
		GasUsed:     r.GasUsed,
	}
}
