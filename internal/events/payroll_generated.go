package events

import "time"

const (
	PayrollGeneratedTopic     = "hr.payroll.generated.v1"
	EventTypePayrollGenerated = "payroll.generated"
)

type PayrollGeneratedEvent struct {
	EventType   string    `json:"event_type"`
	PayrollID   string    `json:"payroll_id"`
	EmployeeID  string    `json:"employee_id"`
	Month       int       `json:"month"`
	Year        int       `json:"year"`
	GeneratedBy string    `json:"generated_by"`
	OccurredAt  time.Time `json:"occurred_at"`
}
