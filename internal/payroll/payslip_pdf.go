package payroll

import (
	"bytes"
	"fmt"
	"strings"
	"time"
)

func payslipLines(p *Payroll, employeeName string) []string {
	period := fmt.Sprintf("%s %d", time.Month(p.Month), p.Year)
	return []string{
		"Payslip",
		"",
		fmt.Sprintf("Employee: %s", employeeName),
		fmt.Sprintf("Period: %s", period),
		fmt.Sprintf("Status: %s", p.Status),
		"",
		fmt.Sprintf("Basic Salary: %s", p.BasicSalary.StringFixed(2)),
		fmt.Sprintf("HRA: %s", p.HRA.StringFixed(2)),
		fmt.Sprintf("Conveyance: %s", p.Conveyance.StringFixed(2)),
		fmt.Sprintf("Other Allowance: %s", p.OtherAllowance.StringFixed(2)),
		fmt.Sprintf("Gross Salary: %s", p.GrossSalary.StringFixed(2)),
		"",
		fmt.Sprintf("PF Deduction: %s", p.PFDeduction.StringFixed(2)),
		fmt.Sprintf("Professional Tax: %s", p.ProfessionalTax.StringFixed(2)),
		fmt.Sprintf("Other Deduction: %s", p.OtherDeduction.StringFixed(2)),
		fmt.Sprintf("Total Deduction: %s", p.TotalDeduction.StringFixed(2)),
		"",
		fmt.Sprintf("Net Salary: %s", p.NetSalary.StringFixed(2)),
	}
}

// buildPayslipPDF emits a minimal single-page PDF. One text object, one
// Helvetica font, no compression.
func buildPayslipPDF(lines []string) ([]byte, error) {
	if len(lines) == 0 {
		lines = []string{"Payslip"}
	}

	var content strings.Builder
	content.WriteString("BT\n/F1 12 Tf\n14 TL\n50 800 Td\n")
	for i, line := range lines {
		escaped := pdfEscape(line)
		if i == 0 {
			content.WriteString(fmt.Sprintf("(%s) Tj\n", escaped))
			continue
		}
		content.WriteString(fmt.Sprintf("T* (%s) Tj\n", escaped))
	}
	content.WriteString("ET")

	stream := content.String()
	objects := []string{
		"1 0 obj\n<< /Type /Catalog /Pages 2 0 R >>\nendobj\n",
		"2 0 obj\n<< /Type /Pages /Kids [3 0 R] /Count 1 >>\nendobj\n",
		"3 0 obj\n<< /Type /Page /Parent 2 0 R /MediaBox [0 0 595 842] /Resources << /Font << /F1 4 0 R >> >> /Contents 5 0 R >>\nendobj\n",
		"4 0 obj\n<< /Type /Font /Subtype /Type1 /BaseFont /Helvetica >>\nendobj\n",
		fmt.Sprintf("5 0 obj\n<< /Length %d >>\nstream\n%s\nendstream\nendobj\n", len(stream), stream),
	}

	var out bytes.Buffer
	out.WriteString("%PDF-1.4\n")
	offsets := make([]int, 0, len(objects)+1)
	offsets = append(offsets, 0)

	for _, obj := range objects {
		offsets = append(offsets, out.Len())
		out.WriteString(obj)
	}

	xrefStart := out.Len()
	out.WriteString(fmt.Sprintf("xref\n0 %d\n", len(offsets)))
	out.WriteString("0000000000 65535 f \n")
	for i := 1; i < len(offsets); i++ {
		out.WriteString(fmt.Sprintf("%010d 00000 n \n", offsets[i]))
	}
	out.WriteString(fmt.Sprintf("trailer\n<< /Size %d /Root 1 0 R >>\nstartxref\n%d\n%%%%EOF", len(offsets), xrefStart))

	return out.Bytes(), nil
}

func pdfEscape(v string) string {
	replacer := strings.NewReplacer("\\", "\\\\", "(", "\\(", ")", "\\)")
	return replacer.Replace(v)
}
