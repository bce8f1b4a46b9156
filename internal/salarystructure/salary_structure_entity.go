package salarystructure

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const (
	KindFixed      = "Fixed"
	KindPercentage = "Percentage"
)

const (
	BaseWage  = "Wage"
	BaseBasic = "Basic"
)

// SalaryStructure configures how an employee's wage decomposes into
// components. The four legacy columns survive for structures created
// before component definitions existed.
type SalaryStructure struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	EmployeeID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:uq_salary_structure_employee"`

	Wage            decimal.Decimal `gorm:"type:numeric(12,2);not null;default:0"`
	PFPercentage    decimal.Decimal `gorm:"type:numeric(5,2);not null;default:12"`
	ProfessionalTax decimal.Decimal `gorm:"type:numeric(12,2);not null;default:200"`

	BasicSalary    decimal.Decimal `gorm:"type:numeric(12,2);not null;default:0"`
	HRAPercent     decimal.Decimal `gorm:"type:numeric(5,2);not null;default:0"`
	Conveyance     decimal.Decimal `gorm:"type:numeric(12,2);not null;default:0"`
	OtherAllowance decimal.Decimal `gorm:"type:numeric(12,2);not null;default:0"`

	CreatedAt time.Time
	UpdatedAt time.Time

	Components []SalaryComponent `gorm:"foreignKey:StructureID;constraint:OnDelete:CASCADE"`
}

func (SalaryStructure) TableName() string {
	return "salary_structures"
}

type SalaryComponent struct {
	ID          uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	StructureID uuid.UUID       `gorm:"type:uuid;not null;uniqueIndex:uq_salary_component_name"`
	Name        string          `gorm:"type:varchar(60);not null;uniqueIndex:uq_salary_component_name"`
	Kind        string          `gorm:"type:varchar(20);not null"`
	Value       decimal.Decimal `gorm:"type:numeric(12,4);not null"`
	Base        string          `gorm:"type:varchar(10);not null;default:'Wage'"`
	DisplayOrder int            `gorm:"column:display_order;not null;default:0"`
	IsActive    bool            `gorm:"not null;default:true"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func (SalaryComponent) TableName() string {
	return "salary_components"
}
