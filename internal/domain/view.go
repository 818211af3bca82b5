package domain

import "strings"

// DenyReason explains why the route guard refused a view.
type DenyReason string

const (
	DenyNotAuthenticated   DenyReason = "not_authenticated"
	DenyWrongRole          DenyReason = "wrong_role"
	DenyWalletNotConnected DenyReason = "wallet_not_connected"
)

// View is a named client route, optionally gated by a role.
type View struct {
	Name         string `json:"name"`
	Path         string `json:"path"`
	Gated        bool   `json:"gated"`
	RequiredRole *Role  `json:"required_role,omitempty"`
}

func role(r Role) *Role { return &r }

// View names.
const (
	ViewHome             = "home"
	ViewStudentLogin     = "student-login"
	ViewDashboard        = "dashboard"
	ViewFeePayment       = "fee-payment"
	ViewScholarship      = "scholarship"
	ViewPayroll          = "payroll"
	ViewFundAllocation   = "fund-allocation"
	ViewAdminDashboard   = "admin-dashboard"
	ViewAdminOverview    = "admin-overview"
	ViewAdminStudents    = "admin-students"
	ViewAdminRegister    = "admin-register-student"
	ViewAdminEmployees   = "admin-employees"
	ViewAdminAddEmployee = "admin-add-employee"
	ViewAdminTx          = "admin-transactions"
	ViewAdminScholarship = "admin-dashboard-scholarship"
	ViewAdminReview      = "admin-scholarship"
	ViewPayments         = "payments"
	ViewTransactions     = "transactions"
)

// Views is the fixed routing surface.
var Views = []View{
	{Name: ViewHome, Path: "/"},
	{Name: ViewStudentLogin, Path: "/student-login"},
	{Name: ViewDashboard, Path: "/dashboard", Gated: true, RequiredRole: role(RoleStudent)},
	{Name: ViewFeePayment, Path: "/fee-payment", Gated: true, RequiredRole: role(RoleStudent)},
	{Name: ViewScholarship, Path: "/scholarship", Gated: true, RequiredRole: role(RoleStudent)},
	{Name: ViewPayroll, Path: "/payroll", Gated: true, RequiredRole: role(RoleAdmin)},
	{Name: ViewFundAllocation, Path: "/fund-allocation", Gated: true, RequiredRole: role(RoleAdmin)},
	{Name: ViewAdminDashboard, Path: "/admin-dashboard", Gated: true, RequiredRole: role(RoleAdmin)},
	{Name: ViewAdminOverview, Path: "/admin-dashboard/overview", Gated: true, RequiredRole: role(RoleAdmin)},
	{Name: ViewAdminStudents, Path: "/admin-dashboard/students", Gated: true, RequiredRole: role(RoleAdmin)},
	{Name: ViewAdminRegister, Path: "/admin-dashboard/register-student", Gated: true, RequiredRole: role(RoleAdmin)},
	{Name: ViewAdminEmployees, Path: "/admin-dashboard/employees", Gated: true, RequiredRole: role(RoleAdmin)},
	{Name: ViewAdminAddEmployee, Path: "/admin-dashboard/add-employee", Gated: true, RequiredRole: role(RoleAdmin)},
	{Name: ViewAdminTx, Path: "/admin-dashboard/transactions", Gated: true, RequiredRole: role(RoleAdmin)},
	{Name: ViewAdminScholarship, Path: "/admin-dashboard/scholarship", Gated: true, RequiredRole: role(RoleAdmin)},
	{Name: ViewAdminReview, Path: "/admin/scholarship", Gated: true, RequiredRole: role(RoleAdmin)},
	{Name: ViewPayments, Path: "/payments", Gated: true},
	{Name: ViewTransactions, Path: "/transactions", Gated: true},
}

// LookupView finds a view by name.
func LookupView(name string) (View, error) {
	name = strings.Trim(name, "/")
	for _, v := range Views {
		if v.Name == name {
			return v, nil
		}
	}
	return View{}, ErrUnknownView
}
