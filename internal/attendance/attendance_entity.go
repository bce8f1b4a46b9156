package attendance

import (
	"time"

	"github.com/google/uuid"
)

const (
	StatusPresent = "Present"
	StatusAbsent  = "Absent"
	StatusHalfDay = "Half Day"
)

const (
	EventCheckIn  = "check_in"
	EventCheckOut = "check_out"
)

// Attendance holds one employee-day. There is at most one row per
// (employee, date); events hang off it in Seq order.
type Attendance struct {
	ID             uuid.UUID  `gorm:"column:id;type:uuid;primaryKey;default:gen_random_uuid()"`
	EmployeeID     uuid.UUID  `gorm:"column:employee_id;type:uuid;not null;uniqueIndex:uq_attendance_employee_date"`
	AttendanceDate time.Time  `gorm:"column:attendance_date;type:date;not null;uniqueIndex:uq_attendance_employee_date"`
	CheckIn        *time.Time `gorm:"column:check_in;type:timestamptz"`
	CheckOut       *time.Time `gorm:"column:check_out;type:timestamptz"`
	Status         string     `gorm:"column:status;type:varchar(20);not null;default:'Absent'"`
	WorkedHours    float64    `gorm:"column:worked_hours;not null;default:0"`
	ExtraHours     float64    `gorm:"column:extra_hours;not null;default:0"`
	CreatedAt      time.Time  `gorm:"column:created_at"`
	UpdatedAt      time.Time  `gorm:"column:updated_at"`

	Events []AttendanceEvent `gorm:"foreignKey:AttendanceID;constraint:OnDelete:CASCADE"`
}

func (Attendance) TableName() string {
	return "attendances"
}

// AttendanceEvent is immutable once written. Seq is assigned under the
// day-row lock, so pairing never depends on storage-assigned identity.
type AttendanceEvent struct {
	ID           uuid.UUID `gorm:"column:id;type:uuid;primaryKey;default:gen_random_uuid()"`
	AttendanceID uuid.UUID `gorm:"column:attendance_id;type:uuid;not null;uniqueIndex:uq_attendance_event_seq"`
	Seq          int       `gorm:"column:seq;not null;uniqueIndex:uq_attendance_event_seq"`
	Kind         string    `gorm:"column:kind;type:varchar(20);not null"`
	EventTime    time.Time `gorm:"column:event_time;type:timestamptz;not null"`
	CreatedAt    time.Time `gorm:"column:created_at"`
}

func (AttendanceEvent) TableName() string {
	return "attendance_events"
}
