// Package chain is the generic contract call site: it turns a contract method call into a
// wallet transaction and classifies the outcome.
package chain

import (
	"errors"
	"fmt"
	"strings"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"

	"github.com/spec-kit/unifin/internal/config"
)

// Contract names.
const (
	University       = "University"
	StudentRegistry  = "StudentRegistry"
	EmployeeRegistry = "EmployeeRegistry"
	Scholarship      = "Scholarship"
	FeePayment       = "FeePayment"
	Payroll          = "Payroll"
	FundAllocation   = "FundAllocation"
	Payments         = "Payments"
)

// ErrContractNotConfigured is wrapped by calls against a binding without an address.
var ErrContractNotConfigured = errors.New("contract address not configured")

func notConfigured(b *Binding) error {
	name := "unknown"
	if b != nil {
		name = b.Name
	}
	return fmt.Errorf("%s %w", name, ErrContractNotConfigured)
}

// Binding is a contract address paired with its ABI fragment.
type Binding struct {
	Name    string
	Address common.Address
	ABI     abi.ABI
	// Configured is false when no address was provided.
	Configured bool
}

// NewBinding parses abiJSON and validates address. An empty address yields an unconfigured
// binding.
func NewBinding(name, address, abiJSON string) (*Binding, error) {
	parsed, err := abi.JSON(strings.NewReader(abiJSON))
	if err != nil {
		return nil, fmt.Errorf("parse %s abi: %w", name, err)
	}
	b := &Binding{Name: name, ABI: parsed}
	if address == "" {
		return b, nil
	}
	if !common.IsHexAddress(address) {
		return nil, fmt.Errorf("%s contract address %q is not a hex address", name, address)
	}
	b.Address = common.HexToAddress(address)
	b.Configured = true
	return b, nil
}

// Require returns an error wrapping ErrContractNotConfigured when b has no address.
func (b *Binding) Require() error {
	if b == nil || !b.Configured {
		return notConfigured(b)
	}
	return nil
}

// Contracts is the set of bindings the services call.
type Contracts struct {
	University       *Binding
	StudentRegistry  *Binding
	EmployeeRegistry *Binding
	Scholarship      *Binding
	FeePayment       *Binding
	Payroll          *Binding
	FundAllocation   *Binding
	Payments         *Binding
}

// NewContracts builds every binding from configuration.
func NewContracts(cfg config.ContractsConfig) (*Contracts, error) {
	c := &Contracts{}
	specs := []struct {
		target  **Binding
		name    string
		address string
		abi     string
	}{
		{&c.University, University, cfg.University, universityABI},
		{&c.StudentRegistry, StudentRegistry, cfg.StudentRegistry, studentRegistryABI},
		{&c.EmployeeRegistry, EmployeeRegistry, cfg.EmployeeRegistry, employeeRegistryABI},
		{&c.Scholarship, Scholarship, cfg.Scholarship, scholarshipABI},
		{&c.FeePayment, FeePayment, cfg.FeePayment, feePaymentABI},
		{&c.Payroll, Payroll, cfg.Payroll, payrollABI},
		{&c.FundAllocation, FundAllocation, cfg.FundAllocation, fundAllocationABI},
		{&c.Payments, Payments, cfg.Payments, paymentsABI},
	}
	for _, spec := range specs {
		b, err := NewBinding(spec.name, spec.address, spec.abi)
		if err != nil {
			return nil, err
		}
		*spec.target = b
	}
	return c, nil
}

// All returns the bindings in a stable order.
func (c *Contracts) All() []*Binding {
	return []*Binding{
		c.University, c.StudentRegistry, c.EmployeeRegistry, c.Scholarship,
		c.FeePayment, c.Payroll, c.FundAllocation, c.Payments,
	}
}
