package attendance

import (
	"context"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type Repository interface {
	WithTx(tx *gorm.DB) Repository
	Create(ctx context.Context, a *Attendance) error
	Update(ctx context.Context, a *Attendance) error
	Delete(ctx context.Context, id string) error
	FindByID(ctx context.Context, id string) (*Attendance, error)
	FindByEmployeeAndDate(ctx context.Context, employeeID string, date time.Time) (*Attendance, error)
	// FindByEmployeeAndDateForUpdate takes a row-level lock on the day so
	// concurrent check-ins for the same employee-day serialize.
	FindByEmployeeAndDateForUpdate(ctx context.Context, employeeID string, date time.Time) (*Attendance, error)
	ListByEmployeeAndRange(ctx context.Context, employeeID string, from, to time.Time) ([]Attendance, error)
	AppendEvent(ctx context.Context, e *AttendanceEvent) error
	ListEvents(ctx context.Context, attendanceID string) ([]AttendanceEvent, error)
	LastEvent(ctx context.Context, attendanceID string) (*AttendanceEvent, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *gorm.DB) Repository {
	return &repository{db: tx}
}

func (r *repository) Create(ctx context.Context, a *Attendance) error {
	return r.db.WithContext(ctx).Create(a).Error
}

func (r *repository) Update(ctx context.Context, a *Attendance) error {
	return r.db.WithContext(ctx).Save(a).Error
}

func (r *repository) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).
		Where("id = ?", id).
		Delete(&Attendance{}).Error
}

func (r *repository) FindByID(ctx context.Context, id string) (*Attendance, error) {
	var a Attendance
	err := r.db.WithContext(ctx).
		Where("id = ?", id).
		First(&a).Error
	if err != nil {
		return nil, err
	}
	return &a, nil
}

func (r *repository) FindByEmployeeAndDate(ctx context.Context, employeeID string, date time.Time) (*Attendance, error) {
	var a Attendance
	err := r.db.WithContext(ctx).
		Where("employee_id = ?", employeeID).
		Where("attendance_date = ?", date.Format("2006-01-02")).
		First(&a).Error
	if err != nil {
		return nil, err
	}
	return &a, nil
}

func (r *repository) FindByEmployeeAndDateForUpdate(ctx context.Context, employeeID string, date time.Time) (*Attendance, error) {
	var a Attendance
	err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("employee_id = ?", employeeID).
		Where("attendance_date = ?", date.Format("2006-01-02")).
		First(&a).Error
	if err != nil {
		return nil, err
	}
	return &a, nil
}

func (r *repository) ListByEmployeeAndRange(ctx context.Context, employeeID string, from, to time.Time) ([]Attendance, error) {
	var rows []Attendance
	err := r.db.WithContext(ctx).
		Where("employee_id = ?", employeeID).
		Where("attendance_date >= ?", from.Format("2006-01-02")).
		Where("attendance_date <= ?", to.Format("2006-01-02")).
		Order("attendance_date DESC").
		Find(&rows).Error
	return rows, err
}

func (r *repository) AppendEvent(ctx context.Context, e *AttendanceEvent) error {
	return r.db.WithContext(ctx).Create(e).Error
}

func (r *repository) ListEvents(ctx context.Context, attendanceID string) ([]AttendanceEvent, error) {
	var rows []AttendanceEvent
	err := r.db.WithContext(ctx).
		Where("attendance_id = ?", attendanceID).
		Order("seq ASC").
		Find(&rows).Error
	return rows, err
}

func (r *repository) LastEvent(ctx context.Context, attendanceID string) (*AttendanceEvent, error) {
	var e AttendanceEvent
	err := r.db.WithContext(ctx).
		Where("attendance_id = ?", attendanceID).
		Order("seq DESC").
		First(&e).Error
	if err != nil {
		return nil, err
	}
	return &e, nil
}
