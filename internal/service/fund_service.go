package service

import (
	"context"

	"github.com/spec-kit/unifin/internal/chain"
)

// FundService runs the fund allocation call site.
type FundService struct {
	invoker   *chain.Invoker
	contracts *chain.Contracts
}

// AllocateFundsInput describes an allocateFunds form.
type AllocateFundsInput struct {
	ProjectID   string `json:"project_id" validate:"required,notblank"`
	Amount      string `json:"amount" validate:"required,ether"`
	Category    string `json:"category" validate:"required,notblank"`
	Description string `json:"description"`
}

// NewFundService constructs the service.
func NewFundService(deps ChainDependencies) *FundService {
	return &FundService{invoker: deps.Invoker, contracts: deps.Contracts}
}

// AllocateFunds records an allocation on the FundAllocation contract.
func (s *FundService) AllocateFunds(ctx context.Context, w chain.Wallet, in AllocateFundsInput) chain.Result {
	if r, ok := precheck(w, in); !ok {
		return r
	}
	return s.invoker.Invoke(ctx, w, chain.Call{
		Binding: s.contracts.FundAllocation,
		Method:  "allocateFunds",
		Args:    []any{in.ProjectID, mustEther(in.Amount), in.Category, in.Description},
	})
}
