package payroll

type GeneratePayrollRequest struct {
	EmployeeID string `json:"employee_id" binding:"required"`
	Month      int    `json:"month" binding:"required"`
	Year       int    `json:"year" binding:"required"`
}

type UpdatePayrollRequest struct {
	BasicSalary    string `json:"basic_salary" binding:"required"`
	HRA            string `json:"hra" binding:"required"`
	Conveyance     string `json:"conveyance" binding:"required"`
	OtherAllowance string `json:"other_allowance" binding:"required"`
	OtherDeduction string `json:"other_deduction"`
}

type PayrollResponse struct {
	ID         string `json:"id"`
	EmployeeID string `json:"employee_id"`
	Month      int    `json:"month"`
	Year       int    `json:"year"`

	BasicSalary     string `json:"basic_salary"`
	HRA             string `json:"hra"`
	Conveyance      string `json:"conveyance"`
	OtherAllowance  string `json:"other_allowance"`
	GrossSalary     string `json:"gross_salary"`
	PFDeduction     string `json:"pf_deduction"`
	ProfessionalTax string `json:"professional_tax"`
	OtherDeduction  string `json:"other_deduction"`
	TotalDeduction  string `json:"total_deduction"`
	NetSalary       string `json:"net_salary"`

	Status      string  `json:"status"`
	GeneratedAt string  `json:"generated_at"`
	PaidAt      *string `json:"paid_at,omitempty"`

	PresentDays *int `json:"present_days,omitempty"`
	HalfDays    *int `json:"half_days,omitempty"`
	LeaveDays   *int `json:"leave_days,omitempty"`
}
