package service

import (
	"context"
	"math/big"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"go.uber.org/zap"

	"github.com/spec-kit/unifin/internal/chain"
	"github.com/spec-kit/unifin/internal/domain"
)

// TuitionFeeType is the fee type recorded for tuition payments.
const TuitionFeeType = "Tuition Fee"

// FeeService runs the fee payment call sites.
type FeeService struct {
	invoker   *chain.Invoker
	contracts *chain.Contracts
	logger    *zap.Logger
}

// PayFeeInput describes a FeePayment.payFee form.
type PayFeeInput struct {
	StudentID   string `json:"student_id" validate:"required,notblank"`
	Amount      string `json:"amount" validate:"required,ether"`
	Semester    string `json:"semester" validate:"required,notblank"`
	Description string `json:"description"`
}

// TuitionInput describes a tuition payment form.
type TuitionInput struct {
	Amount string `json:"amount" validate:"required,ether"`
}

// NewFeeService constructs the service.
func NewFeeService(deps ChainDependencies) *FeeService {
	return &FeeService{invoker: deps.Invoker, contracts: deps.Contracts, logger: deps.logger()}
}

// PayFee records a fee payment on the FeePayment contract.
func (s *FeeService) PayFee(ctx context.Context, w chain.Wallet, in PayFeeInput) chain.Result {
	if r, ok := precheck(w, in); !ok {
		return r
	}
	return s.invoker.Invoke(ctx, w, chain.Call{
		Binding: s.contracts.FeePayment,
		Method:  "payFee",
		Args:    []any{in.StudentID, mustEther(in.Amount), in.Semester, in.Description},
	})
}

// PayTuition pays tuition to the University contract and returns the refreshed payment
// history. The history read is advisory; its failure does not fail the payment.
func (s *FeeService) PayTuition(ctx context.Context, w chain.Wallet, in TuitionInput) (chain.Result, []domain.FeePaymentRecord) {
	if r, ok := precheck(w, in); !ok {
		return r, nil
	}
	r := s.invoker.Invoke(ctx, w, chain.Call{
		Binding: s.contracts.University,
		Method:  "payFee",
		Args:    []any{TuitionFeeType},
		Value:   mustEther(in.Amount),
	})
	if !r.OK() {
		return r, nil
	}
	history, err := s.History(ctx, w)
	if err != nil {
		s.logger.Warn("refresh fee history", zap.Error(err))
	}
	return r, history
}

// History lists FeePaid events for the session's account.
func (s *FeeService) History(ctx context.Context, w chain.Wallet) ([]domain.FeePaymentRecord, error) {
	ws := w.Session()
	if !ws.Connected {
		return nil, domain.ErrWalletNotConnected
	}
	p, err := providerOf(w)
	if err != nil {
		return nil, err
	}
	logs, err := chain.Logs(ctx, p, s.contracts.University, "FeePaid", []any{common.HexToAddress(ws.Address)})
	if err != nil {
		return nil, err
	}
	records := make([]domain.FeePaymentRecord, 0, len(logs))
	for _, l := range logs {
		rec := domain.FeePaymentRecord{
			TxHash:      l.TxHash.Hex(),
			BlockNumber: l.BlockNumber,
		}
		if student, ok := l.Fields["student"].(common.Address); ok {
			rec.Student = student.Hex()
		}
		if amount, ok := l.Fields["amount"].(*big.Int); ok {
			rec.AmountEther = chain.FormatEther(amount)
		}
		if ts, ok := l.Fields["timestamp"].(*big.Int); ok {
			rec.PaidAt = time.Unix(ts.Int64(), 0).UTC()
		}
		records = append(records, rec)
	}
	return records, nil
}
