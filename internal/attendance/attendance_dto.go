package attendance

type CheckResponse struct {
	Status      string   `json:"status"`
	Message     string   `json:"message"`
	Timestamp   string   `json:"timestamp"`
	WorkedHours *float64 `json:"worked_hours,omitempty"`
}

type AttendanceResponse struct {
	ID             string  `json:"id"`
	EmployeeID     string  `json:"employee_id"`
	AttendanceDate string  `json:"attendance_date"`
	CheckIn        *string `json:"check_in,omitempty"`
	CheckOut       *string `json:"check_out,omitempty"`
	Status         string  `json:"status"`
	WorkedHours    float64 `json:"worked_hours"`
	ExtraHours     float64 `json:"extra_hours"`
}

type MonthlySummaryResponse struct {
	Month           int                  `json:"month"`
	Year            int                  `json:"year"`
	Days            []AttendanceResponse `json:"days"`
	PresentCount    int                  `json:"present_count"`
	HalfDayCount    int                  `json:"half_day_count"`
	LeaveCount      int                  `json:"leave_count"`
	WorkingDayCount int                  `json:"working_day_count"`
}

type ManualAttendanceRequest struct {
	EmployeeID string `json:"employee_id" binding:"required"`
	Date       string `json:"date" binding:"required"`
	CheckIn    string `json:"check_in"`
	CheckOut   string `json:"check_out"`
	Status     string `json:"status" binding:"required"`
}
