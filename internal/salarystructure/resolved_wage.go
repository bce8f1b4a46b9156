package salarystructure

import "github.com/shopspring/decimal"

const (
	WageSourceColumn      = "wage"
	WageSourceComponents  = "components"
	WageSourceLegacyBasic = "legacy_basic"
)

// ResolvedWage pins the wage to a single concrete value and records which
// precedence rule produced it, so callers never re-derive it from mixed
// columns.
type ResolvedWage struct {
	Amount decimal.Decimal
	Source string
}

func (w ResolvedWage) IsZero() bool {
	return !w.Amount.IsPositive()
}

// ResolveWage applies the precedence chain once: the wage column wins,
// then the sum of active fixed components, then the legacy four-field
// gross built from basic salary.
func (s *SalaryStructure) ResolveWage() ResolvedWage {
	if s.Wage.IsPositive() {
		return ResolvedWage{Amount: s.Wage, Source: WageSourceColumn}
	}

	fixedSum := decimal.Zero
	for _, c := range s.Components {
		if c.IsActive && c.Kind == KindFixed {
			fixedSum = fixedSum.Add(c.Value)
		}
	}
	if fixedSum.IsPositive() {
		return ResolvedWage{Amount: fixedSum.Round(2), Source: WageSourceComponents}
	}

	if s.BasicSalary.IsPositive() {
		return ResolvedWage{Amount: s.LegacyGross(), Source: WageSourceLegacyBasic}
	}

	return ResolvedWage{Amount: decimal.Zero, Source: WageSourceColumn}
}

// LegacyGross rebuilds the pre-component gross: basic, HRA as a
// percentage of basic, conveyance and other allowances.
func (s *SalaryStructure) LegacyGross() decimal.Decimal {
	hra := s.BasicSalary.Mul(s.HRAPercent).Div(hundred).Round(2)
	return s.BasicSalary.Add(hra).Add(s.Conveyance).Add(s.OtherAllowance).Round(2)
}
