// Package wallet manages the connection between a client session and its wallet provider.
package wallet

import (
	"context"
	"errors"
	"fmt"
)

// Provider is the EIP-1193 shaped surface of a wallet: a request/response channel plus an
// accountsChanged notification stream.
type Provider interface {
	// Request performs a JSON-RPC call and decodes the result into out (which may be nil).
	Request(ctx context.Context, method string, params []any, out any) error
	// OnAccountsChanged registers fn for accountsChanged notifications. The returned func
	// removes the listener and is safe to call more than once.
	OnAccountsChanged(fn func(accounts []string)) (unsubscribe func())
}

// Well-known provider error codes.
const (
	CodeUserRejected   = 4001
	CodeUnauthorized   = 4100
	CodeMethodNotFound = -32601
	CodeInternal       = -32603
	CodeExecution      = 3
)

// ProviderError is an error returned by the provider with a JSON-RPC / EIP-1193 code.
type ProviderError struct {
	Code    int
	Message string
	Data    any
}

func (e *ProviderError) Error() string {
	return fmt.Sprintf("provider error %d: %s", e.Code, e.Message)
}

// ErrorCode implements the go-ethereum rpc.Error interface.
func (e *ProviderError) ErrorCode() int { return e.Code }

// ErrorData implements the go-ethereum rpc.DataError interface.
func (e *ProviderError) ErrorData() interface{} { return e.Data }

// IsUserRejected reports whether err is a user rejection (code 4001).
func IsUserRejected(err error) bool {
	var coded interface{ ErrorCode() int }
	if errors.As(err, &coded) {
		return coded.ErrorCode() == CodeUserRejected
	}
	return false
}

func isMethodNotFound(err error) bool {
	var coded interface{ ErrorCode() int }
	if errors.As(err, &coded) {
		return coded.ErrorCode() == CodeMethodNotFound
	}
	return false
}
