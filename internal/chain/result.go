package chain

import (
	"net/http"

	apperrors "github.com/spec-kit/unifin/pkg/util"
)

// Kind tags the outcome of a contract call.
type Kind string

const (
	KindSuccess           Kind = "success"
	KindValidation        Kind = "validation_error"
	KindUserRejected      Kind = "user_rejected"
	KindInsufficientFunds Kind = "insufficient_funds"
	KindChain             Kind = "chain_error"
	KindNetwork           Kind = "network_error"
	KindEnvironment       Kind = "environment_error"
)

// Result is the outcome of Invoke.
type Result struct {
	Kind        Kind   `json:"kind"`
	Message     string `json:"message"`
	TxHash      string `json:"tx_hash,omitempty"`
	BlockNumber uint64 `json:"block_number,omitempty"`
	GasUsed     uint64 `json:"gas_used,omitempty"`
	// Reason is the decoded revert reason, if any.
	Reason string `json:"reason,omitempty"`
	// Fields holds per-field messages of a validation failure.
	Fields map[string]string `json:"fields,omitempty"`
	Err    error             `json:"-"`
}

// OK reports a confirmed transaction.
func (r Result) OK() bool { return r.Kind == KindSuccess }

var kindStatus = map[Kind]int{
	KindValidation:        http.StatusBadRequest,
	KindUserRejected:      http.StatusConflict,
	KindInsufficientFunds: http.StatusPaymentRequired,
	KindChain:             http.StatusUnprocessableEntity,
	KindNetwork:           http.StatusBadGateway,
	KindEnvironment:       http.StatusServiceUnavailable,
}

// AsError maps a failed result to a DomainError. It returns nil on success.
func (r Result) AsError() error {
	if r.OK() {
		return nil
	}
	status, ok := kindStatus[r.Kind]
	if !ok {
		status = http.StatusInternalServerError
	}
	details := map[string]any{"kind": r.Kind}
	if r.TxHash != "" {
		details["tx_hash"] = r.TxHash
	}
	if r.Reason != "" {
		details["reason"] = r.Reason
	}
	if len(r.Fields) > 0 {
		details["fields"] = r.Fields
	}
	return apperrors.NewUpstreamError(codeFor(r.Kind), r.Message, status, details, r.Err)
}

func codeFor(k Kind) string {
	switch k {
	case KindValidation:
		return "VALIDATION_FAILED"
	case KindUserRejected:
		return "USER_REJECTED"
	case KindInsufficientFunds:
		return "INSUFFICIENT_FUNDS"
	case KindChain:
		return "CHAIN_ERROR"
	case KindNetwork:
		return "NETWORK_ERROR"
	case KindEnvironment:
		return "ENVIRONMENT_ERROR"
	default:
		return "INTERNAL_ERROR"
	}
}

// Fail builds a failed result.
func Fail(kind Kind, message string, err error) Result {
	return Result{Kind: kind, Message: message, Err: err}
}
