package payroll

import (
	"github.com/shopspring/decimal"

	"go-hrm/internal/salarystructure"
)

const (
	BucketBasic      = "basic"
	BucketHRA        = "hra"
	BucketConveyance = "conveyance"
	BucketOther      = "other"
)

var hundred = decimal.NewFromInt(100)

// BucketConfig maps resolved component names to the four stored reporting
// buckets. Unmapped names land in the catch-all bucket.
type BucketConfig map[string]string

func DefaultBucketConfig() BucketConfig {
	return BucketConfig{
		"Basic":           BucketBasic,
		"HRA":             BucketHRA,
		"Conveyance":      BucketConveyance,
		"Transport":       BucketConveyance,
		"Fixed Allowance": BucketOther,
	}
}

func (c BucketConfig) bucketFor(name string) string {
	if bucket, ok := c[name]; ok {
		return bucket
	}
	return BucketOther
}

// Figures is the full money breakdown of one payroll run.
type Figures struct {
	Basic           decimal.Decimal
	HRA             decimal.Decimal
	Conveyance      decimal.Decimal
	OtherAllowance  decimal.Decimal
	Gross           decimal.Decimal
	PFDeduction     decimal.Decimal
	ProfessionalTax decimal.Decimal
	OtherDeduction  decimal.Decimal
	TotalDeduction  decimal.Decimal
	Net             decimal.Decimal
}

// ComputeFigures buckets resolved component amounts and applies the
// statutory deductions. Gross is the full configured wage; attendance and
// leave counts are reported alongside but never prorate the money.
func ComputeFigures(resolution salarystructure.Resolution, buckets BucketConfig, pfPercentage, professionalTax decimal.Decimal) Figures {
	f := Figures{ProfessionalTax: professionalTax}

	for _, a := range resolution.Amounts {
		switch buckets.bucketFor(a.Name) {
		case BucketBasic:
			f.Basic = f.Basic.Add(a.Amount)
		case BucketHRA:
			f.HRA = f.HRA.Add(a.Amount)
		case BucketConveyance:
			f.Conveyance = f.Conveyance.Add(a.Amount)
		default:
			f.OtherAllowance = f.OtherAllowance.Add(a.Amount)
		}
	}

	f.Gross = f.Basic.Add(f.HRA).Add(f.Conveyance).Add(f.OtherAllowance)
	f.PFDeduction = f.Basic.Mul(pfPercentage).Div(hundred).Round(2)
	f.finalize()
	return f
}

// LegacyFigures rebuilds the pre-component breakdown: basic, HRA as a
// percentage of basic, conveyance and other allowances straight from the
// structure's four legacy columns.
func LegacyFigures(s *salarystructure.SalaryStructure) Figures {
	f := Figures{
		Basic:           s.BasicSalary,
		HRA:             s.BasicSalary.Mul(s.HRAPercent).Div(hundred).Round(2),
		Conveyance:      s.Conveyance,
		OtherAllowance:  s.OtherAllowance,
		ProfessionalTax: s.ProfessionalTax,
	}
	f.Gross = f.Basic.Add(f.HRA).Add(f.Conveyance).Add(f.OtherAllowance)
	f.PFDeduction = f.Basic.Mul(s.PFPercentage).Div(hundred).Round(2)
	f.finalize()
	return f
}

func (f *Figures) finalize() {
	f.TotalDeduction = f.PFDeduction.Add(f.ProfessionalTax).Add(f.OtherDeduction)
	f.Net = f.Gross.Sub(f.TotalDeduction)
}

// Recalculate restores totals after an explicit edit of the individual
// figures.
func (f *Figures) Recalculate() {
	f.Gross = f.Basic.Add(f.HRA).Add(f.Conveyance).Add(f.OtherAllowance)
	f.finalize()
}
