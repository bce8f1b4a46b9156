package payroll

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

const (
	StatusUnpaid = "Unpaid"
	StatusPaid   = "Paid"
)

// Payroll is a frozen snapshot for one (employee, month, year). It is
// never recomputed after generation; the edit action replaces figures
// explicitly.
type Payroll struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	EmployeeID uuid.UUID `gorm:"type:uuid;not null;index:idx_payroll_employee_period,unique"`
	Month      int       `gorm:"type:int;not null;index:idx_payroll_employee_period,unique"`
	Year       int       `gorm:"type:int;not null;index:idx_payroll_employee_period,unique"`

	BasicSalary     decimal.Decimal `gorm:"type:numeric(12,2);not null;default:0"`
	HRA             decimal.Decimal `gorm:"column:hra;type:numeric(12,2);not null;default:0"`
	Conveyance      decimal.Decimal `gorm:"type:numeric(12,2);not null;default:0"`
	OtherAllowance  decimal.Decimal `gorm:"type:numeric(12,2);not null;default:0"`
	GrossSalary     decimal.Decimal `gorm:"type:numeric(12,2);not null;default:0"`
	PFDeduction     decimal.Decimal `gorm:"column:pf_deduction;type:numeric(12,2);not null;default:0"`
	ProfessionalTax decimal.Decimal `gorm:"type:numeric(12,2);not null;default:0"`
	OtherDeduction  decimal.Decimal `gorm:"type:numeric(12,2);not null;default:0"`
	TotalDeduction  decimal.Decimal `gorm:"type:numeric(12,2);not null;default:0"`
	NetSalary       decimal.Decimal `gorm:"type:numeric(12,2);not null;default:0"`

	Status      string    `gorm:"type:varchar(20);not null;default:'Unpaid';index"`
	GeneratedBy uuid.UUID `gorm:"type:uuid;not null"`
	GeneratedAt time.Time `gorm:"not null"`

	CreatedAt          time.Time
	UpdatedAt          time.Time
	PaidAt             *time.Time     `gorm:"index"`
	PayslipGeneratedAt *time.Time     `gorm:"index"`
	DeletedAt          gorm.DeletedAt `gorm:"index"`
}

func (Payroll) TableName() string {
	return "payrolls"
}
