package service

import (
	"context"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/unifin/internal/chain"
)

func payrollForm() PayrollInput {
	return PayrollInput{EmployeeID: "E-7", Amount: "2", Department: "Physics", Description: "March"}
}

func TestProcessPayroll_RegistersUnknownEmployee(t *testing.T) {
	contracts := testContracts(t)
	n := newNode(t, contracts)
	n.on(chain.Payroll, "employeeAddresses", values(common.Address{}))
	svc := NewPayrollService(testDeps(contracts))

	r := svc.ProcessPayroll(context.Background(), connected(adminAddr, n), payrollForm())

	require.True(t, r.OK(), r.Message)
	assert.Equal(t, []string{"registerEmployee", "processPayroll"}, n.sent)
}

func TestProcessPayroll_KnownEmployee(t *testing.T) {
	contracts := testContracts(t)
	n := newNode(t, contracts)
	n.on(chain.Payroll, "employeeAddresses", values(common.HexToAddress(otherAddr)))
	svc := NewPayrollService(testDeps(contracts))

	r := svc.ProcessPayroll(context.Background(), connected(adminAddr, n), payrollForm())

	require.True(t, r.OK(), r.Message)
	assert.Equal(t, []string{"processPayroll"}, n.sent)
}

func TestSendSalary_RejectsBadAddress(t *testing.T) {
	contracts := testContracts(t)
	n := newNode(t, contracts)
	svc := NewPayrollService(testDeps(contracts))

	r := svc.SendSalary(context.Background(), connected(adminAddr, n), SalaryInput{EmployeeAddress: "0x123", Amount: "1"})

	assert.Equal(t, chain.KindValidation, r.Kind)
	assert.Contains(t, r.Fields, "employee_address")
	assert.Empty(t, n.sent)
}
