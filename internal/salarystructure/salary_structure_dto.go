package salarystructure

type ComponentRequest struct {
	Name         string  `json:"name" binding:"required"`
	Kind         string  `json:"kind" binding:"required"`
	Value        string  `json:"value" binding:"required"`
	Base         string  `json:"base"`
	DisplayOrder int     `json:"display_order"`
	IsActive     *bool   `json:"is_active"`
}

type UpsertStructureRequest struct {
	EmployeeID      string             `json:"employee_id" binding:"required"`
	Wage            string             `json:"wage" binding:"required"`
	PFPercentage    string             `json:"pf_percentage"`
	ProfessionalTax string             `json:"professional_tax"`
	Components      []ComponentRequest `json:"components"`
}

type ResolveRequest struct {
	Wage       string             `json:"wage" binding:"required"`
	Components []ComponentRequest `json:"components" binding:"required"`
}

type ComponentResponse struct {
	Name         string `json:"name"`
	Kind         string `json:"kind"`
	Value        string `json:"value"`
	Base         string `json:"base"`
	DisplayOrder int    `json:"display_order"`
	IsActive     bool   `json:"is_active"`
	Amount       string `json:"amount"`
}

type StructureResponse struct {
	ID              string              `json:"id"`
	EmployeeID      string              `json:"employee_id"`
	Wage            string              `json:"wage"`
	PFPercentage    string              `json:"pf_percentage"`
	ProfessionalTax string              `json:"professional_tax"`
	Components      []ComponentResponse `json:"components"`
	Total           string              `json:"total"`
	Warnings        []string            `json:"warnings,omitempty"`
}

type ResolveResponse struct {
	Wage     string            `json:"wage"`
	Amounts  map[string]string `json:"amounts"`
	Total    string            `json:"total"`
	Warnings []string          `json:"warnings,omitempty"`
}
