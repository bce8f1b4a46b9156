package payroll

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"go-hrm/internal/salarystructure"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func amount(name, value string) salarystructure.ComponentAmount {
	return salarystructure.ComponentAmount{Name: name, Amount: dec(value)}
}

func TestComputeFigures_BucketsAndDeductions(t *testing.T) {
	resolution := salarystructure.Resolution{
		Amounts: []salarystructure.ComponentAmount{
			amount("Basic", "25000"),
			amount("HRA", "12500"),
			amount("Fixed Allowance", "12500"),
		},
	}

	f := ComputeFigures(resolution, DefaultBucketConfig(), dec("12"), dec("200"))

	assert.True(t, f.Basic.Equal(dec("25000")))
	assert.True(t, f.HRA.Equal(dec("12500")))
	assert.True(t, f.OtherAllowance.Equal(dec("12500")))
	assert.True(t, f.Gross.Equal(dec("50000")))
	// PF applies to the basic bucket only.
	assert.True(t, f.PFDeduction.Equal(dec("3000")))
	assert.True(t, f.ProfessionalTax.Equal(dec("200")))
	assert.True(t, f.TotalDeduction.Equal(dec("3200")))
	assert.True(t, f.Net.Equal(dec("46800")))
}

func TestComputeFigures_UnmappedComponentLandsInOther(t *testing.T) {
	resolution := salarystructure.Resolution{
		Amounts: []salarystructure.ComponentAmount{
			amount("Basic", "20000"),
			amount("Shift Allowance", "3000"),
		},
	}

	f := ComputeFigures(resolution, DefaultBucketConfig(), dec("12"), dec("200"))

	assert.True(t, f.OtherAllowance.Equal(dec("3000")))
	assert.True(t, f.Gross.Equal(dec("23000")))
}

func TestComputeFigures_TransportMapsToConveyance(t *testing.T) {
	resolution := salarystructure.Resolution{
		Amounts: []salarystructure.ComponentAmount{
			amount("Basic", "20000"),
			amount("Transport", "1600"),
		},
	}

	f := ComputeFigures(resolution, DefaultBucketConfig(), dec("12"), dec("200"))

	assert.True(t, f.Conveyance.Equal(dec("1600")))
	assert.True(t, f.OtherAllowance.IsZero())
}

func TestLegacyFigures(t *testing.T) {
	s := &salarystructure.SalaryStructure{
		BasicSalary:     dec("20000"),
		HRAPercent:      dec("40"),
		Conveyance:      dec("1600"),
		OtherAllowance:  dec("1000"),
		PFPercentage:    dec("12"),
		ProfessionalTax: dec("200"),
	}

	f := LegacyFigures(s)

	assert.True(t, f.HRA.Equal(dec("8000")))
	assert.True(t, f.Gross.Equal(dec("30600")))
	assert.True(t, f.PFDeduction.Equal(dec("2400")))
	assert.True(t, f.TotalDeduction.Equal(dec("2600")))
	assert.True(t, f.Net.Equal(dec("28000")))
}

func TestRecalculate_AfterEdit(t *testing.T) {
	f := Figures{
		Basic:           dec("21000"),
		HRA:             dec("8400"),
		Conveyance:      dec("1600"),
		OtherAllowance:  dec("1000"),
		PFDeduction:     dec("2400"),
		ProfessionalTax: dec("200"),
		OtherDeduction:  dec("500"),
	}

	f.Recalculate()

	assert.True(t, f.Gross.Equal(dec("32000")))
	assert.True(t, f.TotalDeduction.Equal(dec("3100")))
	assert.True(t, f.Net.Equal(dec("28900")))
}
