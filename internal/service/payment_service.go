package service

import (
	"context"

	"github.com/ethereum/go-ethereum/common"

	"github.com/spec-kit/unifin/internal/chain"
)

// PaymentService runs the generic payment call site.
type PaymentService struct {
	invoker   *chain.Invoker
	contracts *chain.Contracts
}

// SendPaymentInput describes a Payments.sendPayment form.
type SendPaymentInput struct {
	Recipient   string `json:"recipient" validate:"required,eth_addr"`
	Amount      string `json:"amount" validate:"required,ether"`
	Description string `json:"description"`
}

// NewPaymentService constructs the service.
func NewPaymentService(deps ChainDependencies) *PaymentService {
	return &PaymentService{invoker: deps.Invoker, contracts: deps.Contracts}
}

// SendPayment records a payment to recipient on the Payments contract.
func (s *PaymentService) SendPayment(ctx context.Context, w chain.Wallet, in SendPaymentInput) chain.Result {
	if r, ok := precheck(w, in); !ok {
		return r
	}
	return s.invoker.Invoke(ctx, w, chain.Call{
		Binding: s.contracts.Payments,
		Method:  "sendPayment",
		Args:    []any{common.HexToAddress(in.Recipient), mustEther(in.Amount), in.Description},
	})
}
