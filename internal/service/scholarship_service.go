package service

import (
	"context"
	"fmt"
	"math/big"
	"time"

	"github.com/ethereum/go-ethereum/common"

	"github.com/spec-kit/unifin/internal/chain"
	"github.com/spec-kit/unifin/internal/domain"
)

// ScholarshipService runs the scholarship call sites.
type ScholarshipService struct {
	invoker   *chain.Invoker
	contracts *chain.Contracts
}

// ScholarshipInput describes a scholarship application form.
type ScholarshipInput struct {
	Name        string `json:"name" validate:"required,notblank"`
	Department  string `json:"department" validate:"required,scholarship_department"`
	YearOfStudy int    `json:"year_of_study" validate:"required,min=1,max=6"`
	Reason      string `json:"reason" validate:"required,notblank"`
	Amount      string `json:"amount" validate:"required,ether"`
}

// NewScholarshipService constructs the service.
func NewScholarshipService(deps ChainDependencies) *ScholarshipService {
	return &ScholarshipService{invoker: deps.Invoker, contracts: deps.Contracts}
}

// Submit files an application from the session account.
func (s *ScholarshipService) Submit(ctx context.Context, w chain.Wallet, in ScholarshipInput) chain.Result {
	if r, ok := precheck(w, in); !ok {
		return r
	}
	return s.invoker.Invoke(ctx, w, chain.Call{
		Binding: s.contracts.Scholarship,
		Method:  "submitApplication",
		Args:    []any{in.Name, in.Department, big.NewInt(int64(in.YearOfStudy)), in.Reason, mustEther(in.Amount)},
	})
}

// Approve marks application id approved.
func (s *ScholarshipService) Approve(ctx context.Context, w chain.Wallet, id uint64) chain.Result {
	return s.review(ctx, w, "approveApplication", id)
}

// Reject marks application id rejected.
func (s *ScholarshipService) Reject(ctx context.Context, w chain.Wallet, id uint64) chain.Result {
	return s.review(ctx, w, "rejectApplication", id)
}

func (s *ScholarshipService) review(ctx context.Context, w chain.Wallet, method string, id uint64) chain.Result {
	if r, ok := precheck(w, nil); !ok {
		return r
	}
	return s.invoker.Invoke(ctx, w, chain.Call{
		Binding: s.contracts.Scholarship,
		Method:  method,
		Args:    []any{new(big.Int).SetUint64(id)},
	})
}

// List reads every application in submission order.
func (s *ScholarshipService) List(ctx context.Context, w chain.Wallet) ([]domain.ScholarshipApplication, error) {
	p, err := providerOf(w)
	if err != nil {
		return nil, err
	}
	count, err := readBig(ctx, p, s.contracts.Scholarship, "getApplicationsCount")
	if err != nil {
		return nil, err
	}

	n := count.Uint64()
	apps := make([]domain.ScholarshipApplication, 0, n)
	for i := uint64(0); i < n; i++ {
		out, err := chain.Read(ctx, p, s.contracts.Scholarship, "getApplication", new(big.Int).SetUint64(i))
		if err != nil {
			return nil, err
		}
		app, err := applicationFromOutputs(i, out)
		if err != nil {
			return nil, err
		}
		apps = append(apps, app)
	}
	return apps, nil
}

// Balance returns the scholarship balance of address in ETH.
func (s *ScholarshipService) Balance(ctx context.Context, w chain.Wallet, address string) (string, error) {
	if !common.IsHexAddress(address) {
		return "", fmt.Errorf("invalid address %q", address)
	}
	p, err := providerOf(w)
	if err != nil {
		return "", err
	}
	wei, err := readBig(ctx, p, s.contracts.Scholarship, "getScholarshipBalance", common.HexToAddress(address))
	if err != nil {
		return "", err
	}
	return chain.FormatEther(wei), nil
}

func applicationFromOutputs(id uint64, out []any) (domain.ScholarshipApplication, error) {
	if len(out) != 9 {
		return domain.ScholarshipApplication{}, fmt.Errorf("getApplication returned %d values", len(out))
	}
	student, _ := out[0].(common.Address)
	name, _ := out[1].(string)
	department, _ := out[2].(string)
	year, _ := out[3].(*big.Int)
	reason, _ := out[4].(string)
	amount, _ := out[5].(*big.Int)
	approved, _ := out[6].(bool)
	rejected, _ := out[7].(bool)
	ts, _ := out[8].(*big.Int)

	app := domain.ScholarshipApplication{
		ID:          id,
		Student:     student.Hex(),
		Name:        name,
		Department:  department,
		Reason:      reason,
		AmountEther: chain.FormatEther(amount),
		Approved:    approved,
		Rejected:    rejected,
	}
	if year != nil {
		app.Year = year.Uint64()
	}
	if ts != nil {
		app.SubmittedAt = time.Unix(ts.Int64(), 0).UTC()
	}
	return app, nil
}
