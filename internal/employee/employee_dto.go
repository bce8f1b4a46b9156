package employee

type CreateEmployeeRequest struct {
	FullName       string  `json:"full_name" binding:"required"`
	Email          string  `json:"email" binding:"required,email"`
	Phone          *string `json:"phone"`
	Role           string  `json:"role"`
	JoinDate       string  `json:"join_date" binding:"required"`
	ManagerID      *string `json:"manager_id"`
	EmployeeNumber string  `json:"employee_number"`
}

type UpdateEmployeeRequest struct {
	FullName  string  `json:"full_name" binding:"required"`
	Phone     *string `json:"phone"`
	Role      string  `json:"role" binding:"required"`
	ManagerID *string `json:"manager_id"`
}

type EmployeeResponse struct {
	ID             string  `json:"id"`
	EmployeeNumber string  `json:"employee_number"`
	FullName       string  `json:"full_name"`
	Email          string  `json:"email"`
	Phone          *string `json:"phone,omitempty"`
	Role           string  `json:"role"`
	JoinDate       string  `json:"join_date"`
	ManagerID      *string `json:"manager_id,omitempty"`
}
