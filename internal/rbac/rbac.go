package rbac

// Roles mirror the ones assignable on an employee record.
const (
	RoleAdmin          = "Admin"
	RoleHROfficer      = "HR Officer"
	RolePayrollOfficer = "Payroll Officer"
	RoleEmployee       = "Employee"
)

const (
	ResourceEmployee        = "employee"
	ResourceAttendance      = "attendance"
	ResourceLeave           = "leave"
	ResourceSalaryStructure = "salary_structure"
	ResourcePayroll         = "payroll"
)

const (
	ActionCreate  = "create"
	ActionRead    = "read"
	ActionUpdate  = "update"
	ActionDelete  = "delete"
	ActionApprove = "approve"
)

type Permission struct {
	Resource string
	Action   string
}

// policy is the static role grid. Employees only clock themselves in/out,
// read their own data and apply for leave; HR owns employee records; the
// payroll officer owns salary structures, payroll and leave decisions; Admin
// can do everything.
var policy = map[string][]Permission{
	RoleEmployee: {
		{ResourceAttendance, ActionCreate},
		{ResourceAttendance, ActionRead},
		{ResourceLeave, ActionCreate},
		{ResourceLeave, ActionRead},
		{ResourcePayroll, ActionRead},
	},
	RoleHROfficer: {
		{ResourceEmployee, ActionCreate},
		{ResourceEmployee, ActionRead},
		{ResourceEmployee, ActionUpdate},
		{ResourceAttendance, ActionRead},
		{ResourceLeave, ActionRead},
	},
	RolePayrollOfficer: {
		{ResourceEmployee, ActionRead},
		{ResourceAttendance, ActionRead},
		{ResourceLeave, ActionRead},
		{ResourceLeave, ActionApprove},
		{ResourceSalaryStructure, ActionCreate},
		{ResourceSalaryStructure, ActionRead},
		{ResourceSalaryStructure, ActionUpdate},
		{ResourcePayroll, ActionCreate},
		{ResourcePayroll, ActionRead},
		{ResourcePayroll, ActionUpdate},
	},
	RoleAdmin: {
		{ResourceEmployee, ActionCreate},
		{ResourceEmployee, ActionRead},
		{ResourceEmployee, ActionUpdate},
		{ResourceEmployee, ActionDelete},
		{ResourceAttendance, ActionCreate},
		{ResourceAttendance, ActionRead},
		{ResourceAttendance, ActionUpdate},
		{ResourceAttendance, ActionDelete},
		{ResourceLeave, ActionCreate},
		{ResourceLeave, ActionRead},
		{ResourceLeave, ActionApprove},
		{ResourceSalaryStructure, ActionCreate},
		{ResourceSalaryStructure, ActionRead},
		{ResourceSalaryStructure, ActionUpdate},
		{ResourcePayroll, ActionCreate},
		{ResourcePayroll, ActionRead},
		{ResourcePayroll, ActionUpdate},
		{ResourcePayroll, ActionDelete},
	},
}
