package service

import (
	"context"
	"fmt"
	"math/big"
	"strings"

	"github.com/ethereum/go-ethereum/common"
	"go.uber.org/zap"

	"github.com/spec-kit/unifin/internal/chain"
	"github.com/spec-kit/unifin/internal/domain"
	"github.com/spec-kit/unifin/internal/wallet"
)

// Registry pre-check messages.
const (
	MessageNoContractCode     = "No contract code found at the specified address. Please ensure the contract is properly deployed."
	MessageOnlyAdminStudents  = "Only the admin can register students"
	MessageOnlyAdminEmployees = "Only the admin can add employees"
	MessageStudentRegistered  = "Student is already registered"
	MessageRollNoTaken        = "Roll number is already taken"
	MessageUsernameTaken      = "Username is already taken"
	MessageEmployeeRegistered = "Employee is already registered"
)

// RegistryService manages student and employee registration.
type RegistryService struct {
	invoker   *chain.Invoker
	contracts *chain.Contracts
	logger    *zap.Logger
}

// RegisterStudentInput describes the student registration form.
type RegisterStudentInput struct {
	PublicKey  string `json:"public_key" validate:"required,eth_addr"`
	Name       string `json:"name" validate:"required,notblank,max=50"`
	RollNo     string `json:"roll_no" validate:"required,notblank,max=10"`
	Department string `json:"department" validate:"required,notblank,max=20"`
	Username   string `json:"username" validate:"required,notblank,max=20"`
	Password   string `json:"password" validate:"required,min=8"`
}

// AddEmployeeInput describes the employee registration form.
type AddEmployeeInput struct {
	PublicKey  string `json:"public_key" validate:"required,eth_addr"`
	Name       string `json:"name" validate:"required,notblank"`
	Department string `json:"department" validate:"required,notblank"`
	Username   string `json:"username" validate:"required,notblank"`
	Password   string `json:"password" validate:"required"`
}

// NewRegistryService constructs the service.
func NewRegistryService(deps ChainDependencies) *RegistryService {
	return &RegistryService{invoker: deps.Invoker, contracts: deps.Contracts, logger: deps.logger()}
}

// RegisterStudent registers a student after checking admin rights and uniqueness.
func (s *RegistryService) RegisterStudent(ctx context.Context, w chain.Wallet, in RegisterStudentInput) chain.Result {
	if r, ok := precheck(w, in); !ok {
		return r
	}
	p, err := providerOf(w)
	if err != nil {
		return chain.Classify(err)
	}
	registry := s.contracts.StudentRegistry
	if err := registry.Require(); err != nil {
		return chain.Classify(err)
	}

	code, err := chain.Code(ctx, p, registry.Address)
	if err != nil {
		return chain.Classify(err)
	}
	if len(code) == 0 {
		return chain.Fail(chain.KindEnvironment, MessageNoContractCode, nil)
	}

	if r, ok := s.requireAdmin(ctx, p, w, registry, MessageOnlyAdminStudents); !ok {
		return r
	}

	student := common.HexToAddress(in.PublicKey)
	checks := []struct {
		method  string
		arg     any
		message string
	}{
		{"isStudent", student, MessageStudentRegistered},
		{"isRollNoTaken", in.RollNo, MessageRollNoTaken},
		{"isUsernameTaken", in.Username, MessageUsernameTaken},
	}
	for _, c := range checks {
		taken, err := readBool(ctx, p, registry, c.method, c.arg)
		if err != nil {
			return chain.Classify(err)
		}
		if taken {
			return chain.Fail(chain.KindValidation, c.message, nil)
		}
	}

	return s.invoker.Invoke(ctx, w, chain.Call{
		Binding: registry,
		Method:  "registerStudent",
		Args:    []any{student, in.Name, in.RollNo, in.Department, in.Username, in.Password},
	})
}

// AddEmployee registers an employee after checking admin rights and uniqueness.
func (s *RegistryService) AddEmployee(ctx context.Context, w chain.Wallet, in AddEmployeeInput) chain.Result {
	if r, ok := precheck(w, in); !ok {
		return r
	}
	p, err := providerOf(w)
	if err != nil {
		return chain.Classify(err)
	}
	registry := s.contracts.EmployeeRegistry
	if err := registry.Require(); err != nil {
		return chain.Classify(err)
	}

	if r, ok := s.requireAdmin(ctx, p, w, registry, MessageOnlyAdminEmployees); !ok {
		return r
	}

	employee := common.HexToAddress(in.PublicKey)
	out, err := chain.Read(ctx, p, registry, "getEmployee", employee)
	if err != nil {
		return chain.Classify(err)
	}
	if exists, _ := out[3].(bool); exists {
		return chain.Fail(chain.KindValidation, MessageEmployeeRegistered, nil)
	}

	return s.invoker.Invoke(ctx, w, chain.Call{
		Binding: registry,
		Method:  "addEmployee",
		Args:    []any{employee, in.Name, in.Department, in.Username, in.Password},
	})
}

func (s *RegistryService) requireAdmin(ctx context.Context, p wallet.Provider, w chain.Wallet, b *chain.Binding, message string) (chain.Result, bool) {
	admin, err := readAddress(ctx, p, b, "admin")
	if err != nil {
		return chain.Classify(err), false
	}
	if admin == (common.Address{}) {
		return chain.Fail(chain.KindChain, "Invalid admin address returned from contract", nil), false
	}
	if !strings.EqualFold(admin.Hex(), w.Session().Address) {
		return chain.Fail(chain.KindValidation, message, nil), false
	}
	return chain.Result{}, true
}

// ListStudents returns registered students that are still active, in registration order.
func (s *RegistryService) ListStudents(ctx context.Context, w chain.Wallet) ([]domain.Student, error) {
	p, err := providerOf(w)
	if err != nil {
		return nil, err
	}
	logs, err := chain.Logs(ctx, p, s.contracts.StudentRegistry, "StudentRegistered")
	if err != nil {
		return nil, err
	}

	seen := make(map[common.Address]bool, len(logs))
	students := make([]domain.Student, 0, len(logs))
	for _, l := range logs {
		addr, ok := l.Fields["student"].(common.Address)
		if !ok || seen[addr] {
			continue
		}
		seen[addr] = true

		active, err := readBool(ctx, p, s.contracts.StudentRegistry, "isStudent", addr)
		if err != nil {
			return nil, err
		}
		if !active {
			continue
		}

		student, err := s.GetStudent(ctx, w, addr.Hex())
		if err != nil {
			s.logger.Debug("student details unavailable", zap.String("address", addr.Hex()), zap.Error(err))
			student = domain.Student{Address: addr.Hex()}
			student.Name, _ = l.Fields["name"].(string)
			student.RollNo, _ = l.Fields["rollNo"].(string)
			student.Department, _ = l.Fields["department"].(string)
		}
		students = append(students, student)
	}
	return students, nil
}

// ListEmployees returns employees announced by the University contract.
func (s *RegistryService) ListEmployees(ctx context.Context, w chain.Wallet) ([]domain.Employee, error) {
	p, err := providerOf(w)
	if err != nil {
		return nil, err
	}
	logs, err := chain.Logs(ctx, p, s.contracts.University, "EmployeeAdded")
	if err != nil {
		return nil, err
	}
	employees := make([]domain.Employee, 0, len(logs))
	for _, l := range logs {
		addr, _ := l.Fields["employee"].(common.Address)
		role, _ := l.Fields["role"].(string)
		employees = append(employees, domain.Employee{Address: addr.Hex(), Role: role})
	}
	return employees, nil
}

// GetStudent reads one student record from the University contract.
func (s *RegistryService) GetStudent(ctx context.Context, w chain.Wallet, address string) (domain.Student, error) {
	if !common.IsHexAddress(address) {
		return domain.Student{}, fmt.Errorf("invalid address %q", address)
	}
	p, err := providerOf(w)
	if err != nil {
		return domain.Student{}, err
	}
	out, err := chain.Read(ctx, p, s.contracts.University, "getStudent", common.HexToAddress(address))
	if err != nil {
		return domain.Student{}, err
	}
	if len(out) != 5 {
		return domain.Student{}, fmt.Errorf("getStudent returned %d values", len(out))
	}
	addr, _ := out[0].(common.Address)
	name, _ := out[1].(string)
	department, _ := out[2].(string)
	year, _ := out[3].(*big.Int)
	fees, _ := out[4].(*big.Int)

	student := domain.Student{
		Address:    addr.Hex(),
		Name:       name,
		Department: department,
		FeesPaid:   chain.FormatEther(fees),
	}
	if year != nil {
		student.Year = year.Uint64()
	}
	return student, nil
}
