package salarystructure

import (
	"fmt"
	"sort"

	"github.com/shopspring/decimal"

	salarystructureerrors "go-hrm/internal/salarystructure/errors"
)

const (
	// ComponentBasic anchors percentage-of-basic components.
	ComponentBasic = "Basic"
	// ComponentRemainder absorbs whatever wage is left after every other
	// component is computed.
	ComponentRemainder = "Fixed Allowance"
)

var (
	hundred = decimal.NewFromInt(100)
	// Epsilon is the rounding tolerance when reconciling the resolved
	// total against the wage.
	Epsilon = decimal.RequireFromString("0.01")
)

type ComponentAmount struct {
	Name   string
	Amount decimal.Decimal
}

type Resolution struct {
	// Amounts is ordered by component display order.
	Amounts     []ComponentAmount
	BasicAmount decimal.Decimal
	Total       decimal.Decimal
	Warnings    []string
}

// Amount returns the resolved value for a component name, or zero.
func (r Resolution) Amount(name string) decimal.Decimal {
	for _, a := range r.Amounts {
		if a.Name == name {
			return a.Amount
		}
	}
	return decimal.Zero
}

// ResolveComponents decomposes wage into currency amounts.
//
// Evaluation order is fixed: the Basic component first, then every other
// active component, then the remainder. Percentage components resolve
// against the wage or the already-computed basic amount; the intermediate
// quotient keeps full precision and only the final amount is rounded to
// two places. The remainder is clamped at zero; when the other components
// already exceed the wage the clamp is reported as ComponentsExceedWage
// with the partial resolution still populated.
func ResolveComponents(wage decimal.Decimal, components []SalaryComponent) (Resolution, error) {
	res := Resolution{}

	active := make([]SalaryComponent, 0, len(components))
	for _, c := range components {
		if c.IsActive {
			active = append(active, c)
		}
	}
	if len(active) == 0 {
		return res, nil
	}
	sort.SliceStable(active, func(i, j int) bool {
		return active[i].DisplayOrder < active[j].DisplayOrder
	})

	basicAmount := decimal.Zero
	for _, c := range active {
		if c.Name == ComponentBasic {
			basicAmount = componentAmount(c, wage, decimal.Zero)
			break
		}
	}
	res.BasicAmount = basicAmount

	hasRemainder := false
	totalSoFar := decimal.Zero
	amounts := make([]ComponentAmount, 0, len(active))
	for _, c := range active {
		if c.Name == ComponentRemainder {
			hasRemainder = true
			amounts = append(amounts, ComponentAmount{Name: c.Name})
			continue
		}
		amount := componentAmount(c, wage, basicAmount)
		amounts = append(amounts, ComponentAmount{Name: c.Name, Amount: amount})
		totalSoFar = totalSoFar.Add(amount)
	}

	if hasRemainder {
		remainder := wage.Sub(totalSoFar)
		if remainder.IsNegative() {
			remainder = decimal.Zero
		}
		remainder = remainder.Round(2)
		for i := range amounts {
			if amounts[i].Name == ComponentRemainder {
				amounts[i].Amount = remainder
			}
		}
		totalSoFar = totalSoFar.Add(remainder)
	}

	res.Amounts = amounts
	res.Total = totalSoFar

	if totalSoFar.Sub(wage).GreaterThan(Epsilon) {
		res.Warnings = append(res.Warnings, fmt.Sprintf(
			"components total %s exceeds wage %s", totalSoFar.StringFixed(2), wage.StringFixed(2)))
		return res, salarystructureerrors.ErrComponentsExceedWage
	}
	if hasRemainder && wage.Sub(totalSoFar).Abs().GreaterThan(Epsilon) {
		res.Warnings = append(res.Warnings, fmt.Sprintf(
			"components total %s does not reconcile with wage %s", totalSoFar.StringFixed(2), wage.StringFixed(2)))
	}

	return res, nil
}

func componentAmount(c SalaryComponent, wage, basicAmount decimal.Decimal) decimal.Decimal {
	switch c.Kind {
	case KindFixed:
		return c.Value.Round(2)
	case KindPercentage:
		base := wage
		if c.Base == BaseBasic {
			base = basicAmount
		}
		return base.Mul(c.Value).Div(hundred).Round(2)
	default:
		return decimal.Zero
	}
}
