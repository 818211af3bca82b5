package service

import (
	"context"

	"github.com/ethereum/go-ethereum/common"
	"go.uber.org/zap"

	"github.com/spec-kit/unifin/internal/chain"
)

// PayrollService runs the payroll call sites.
type PayrollService struct {
	invoker   *chain.Invoker
	contracts *chain.Contracts
	logger    *zap.Logger
}

// PayrollInput describes a processPayroll form.
type PayrollInput struct {
	EmployeeID  string `json:"employee_id" validate:"required,notblank"`
	Amount      string `json:"amount" validate:"required,ether"`
	Department  string `json:"department" validate:"required,notblank"`
	Description string `json:"description"`
}

// SalaryInput describes a direct salary transfer form.
type SalaryInput struct {
	EmployeeAddress string `json:"employee_address" validate:"required,eth_addr"`
	Amount          string `json:"amount" validate:"required,ether"`
}

// NewPayrollService constructs the service.
func NewPayrollService(deps ChainDependencies) *PayrollService {
	return &PayrollService{invoker: deps.Invoker, contracts: deps.Contracts, logger: deps.logger()}
}

// ProcessPayroll pays an employee, registering the employee ID against the session account
// first when the contract does not know it yet.
func (s *PayrollService) ProcessPayroll(ctx context.Context, w chain.Wallet, in PayrollInput) chain.Result {
	if r, ok := precheck(w, in); !ok {
		return r
	}
	p, err := providerOf(w)
	if err != nil {
		return chain.Classify(err)
	}

	registered, err := readAddress(ctx, p, s.contracts.Payroll, "employeeAddresses", in.EmployeeID)
	if err != nil {
		return chain.Classify(err)
	}
	if registered == (common.Address{}) {
		s.logger.Info("registering payroll employee", zap.String("employee_id", in.EmployeeID))
		r := s.invoker.Invoke(ctx, w, chain.Call{
			Binding: s.contracts.Payroll,
			Method:  "registerEmployee",
			Args:    []any{in.EmployeeID, common.HexToAddress(w.Session().Address)},
		})
		if !r.OK() {
			return r
		}
	}

	amount := mustEther(in.Amount)
	return s.invoker.Invoke(ctx, w, chain.Call{
		Binding: s.contracts.Payroll,
		Method:  "processPayroll",
		Args:    []any{in.EmployeeID, amount, in.Department, in.Description},
		Value:   amount,
	})
}

// SendSalary transfers ETH to an employee through the payroll contract.
func (s *PayrollService) SendSalary(ctx context.Context, w chain.Wallet, in SalaryInput) chain.Result {
	if r, ok := precheck(w, in); !ok {
		return r
	}
	return s.invoker.Invoke(ctx, w, chain.Call{
		Binding: s.contracts.Payroll,
		Method:  "sendPayment",
		Args:    []any{common.HexToAddress(in.EmployeeAddress)},
		Value:   mustEther(in.Amount),
	})
}

// Balance returns the payroll contract balance in ETH.
func (s *PayrollService) Balance(ctx context.Context, w chain.Wallet) (string, error) {
	p, err := providerOf(w)
	if err != nil {
		return "", err
	}
	wei, err := readBig(ctx, p, s.contracts.Payroll, "getBalance")
	if err != nil {
		return "", err
	}
	return chain.FormatEther(wei), nil
}
