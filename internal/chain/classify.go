package chain

import (
	"context"
	"errors"
	"strings"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/rpc"

	"github.com/spec-kit/unifin/internal/wallet"
)

// Messages for classified failures.
const (
	MessageWalletNotConnected = "Please connect your wallet first"
	MessageUnsupportedNetwork = "Please switch to a supported network"
	MessageUserRejected       = "Transaction rejected by user"
	MessageInsufficientFunds  = "Insufficient funds for transaction"
	MessageTransactionFailed  = "Transaction failed"
	MessageReceiptTimeout     = "Timed out waiting for transaction receipt"
	MessageNetwork            = "Network error, please try again"
	MessageConfirmed          = "Transaction confirmed"
)

// Classify maps a provider error to a result kind and user-facing message. The checks run
// in a fixed order: configuration, rejection, insufficient funds, revert, then transport.
func Classify(err error) Result {
	if err == nil {
		return Result{Kind: KindSuccess, Message: MessageConfirmed}
	}
	if errors.Is(err, ErrContractNotConfigured) {
		return Fail(KindEnvironment, err.Error(), err)
	}
	msg := strings.ToLower(err.Error())

	code, coded := errorCode(err)
	switch {
	case coded && code == wallet.CodeUserRejected,
		strings.Contains(msg, "user rejected"),
		strings.Contains(msg, "user denied"):
		return Fail(KindUserRejected, MessageUserRejected, err)

	case strings.Contains(msg, "insufficient funds"):
		return Fail(KindInsufficientFunds, MessageInsufficientFunds, err)

	case coded && code == wallet.CodeExecution,
		strings.Contains(msg, "execution reverted"),
		strings.Contains(msg, "revert"),
		strings.Contains(msg, "vm exception"):
		reason := RevertReason(err)
		r := Fail(KindChain, MessageTransactionFailed, err)
		if reason != "" {
			r.Reason = reason
			r.Message = MessageTransactionFailed + ": " + reason
		}
		return r

	case errors.Is(err, context.DeadlineExceeded), errors.Is(err, context.Canceled):
		return Fail(KindNetwork, MessageNetwork, err)

	case coded && code == wallet.CodeInternal:
		return Fail(KindNetwork, MessageNetwork, err)

	case coded:
		return Fail(KindChain, MessageTransactionFailed+": "+err.Error(), err)

	default:
		// Uncoded errors come from the transport: dial failures, HTTP errors, bad JSON.
		return Fail(KindNetwork, MessageNetwork, err)
	}
}

// RevertReason extracts the Error(string) reason of a reverted call. It prefers the ABI
// encoded revert data and falls back to the node's message text.
func RevertReason(err error) string {
	var dataErr rpc.DataError
	if errors.As(err, &dataErr) {
		if data, ok := dataErr.ErrorData().(string); ok {
			if raw, decodeErr := hexutil.Decode(data); decodeErr == nil {
				if reason, unpackErr := abi.UnpackRevert(raw); unpackErr == nil {
					return reason
				}
			}
		}
	}

	msg := err.Error()
	for _, marker := range []string{"execution reverted: ", "revert "} {
		if i := strings.Index(msg, marker); i >= 0 {
			return strings.TrimSpace(msg[i+len(marker):])
		}
	}
	return ""
}

func errorCode(err error) (int, bool) {
	var coded rpc.Error
	if errors.As(err, &coded) {
		return coded.ErrorCode(), true
	}
	return 0, false
}
