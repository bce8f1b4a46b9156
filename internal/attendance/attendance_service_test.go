package attendance

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	attendanceerrors "go-hrm/internal/attendance/errors"
)

func newTestDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	gdb, err := gorm.Open(postgres.New(postgres.Config{
		Conn:                 db,
		PreferSimpleProtocol: true,
	}), &gorm.Config{SkipDefaultTransaction: true})
	if err != nil {
		t.Fatalf("gorm open: %v", err)
	}
	return gdb, mock
}

type fakeRepo struct {
	createFn         func(ctx context.Context, a *Attendance) error
	updateFn         func(ctx context.Context, a *Attendance) error
	deleteFn         func(ctx context.Context, id string) error
	findByIDFn       func(ctx context.Context, id string) (*Attendance, error)
	findByDateFn     func(ctx context.Context, employeeID string, date time.Time) (*Attendance, error)
	findForUpdateFn  func(ctx context.Context, employeeID string, date time.Time) (*Attendance, error)
	listByRangeFn    func(ctx context.Context, employeeID string, from, to time.Time) ([]Attendance, error)
	appendEventFn    func(ctx context.Context, e *AttendanceEvent) error
	listEventsFn     func(ctx context.Context, attendanceID string) ([]AttendanceEvent, error)
	lastEventFn      func(ctx context.Context, attendanceID string) (*AttendanceEvent, error)
}

func (r *fakeRepo) WithTx(tx *gorm.DB) Repository                   { return r }
func (r *fakeRepo) Create(ctx context.Context, a *Attendance) error { return r.createFn(ctx, a) }
func (r *fakeRepo) Update(ctx context.Context, a *Attendance) error { return r.updateFn(ctx, a) }
func (r *fakeRepo) Delete(ctx context.Context, id string) error     { return r.deleteFn(ctx, id) }
func (r *fakeRepo) FindByID(ctx context.Context, id string) (*Attendance, error) {
	return r.findByIDFn(ctx, id)
}
func (r *fakeRepo) FindByEmployeeAndDate(ctx context.Context, employeeID string, date time.Time) (*Attendance, error) {
	return r.findByDateFn(ctx, employeeID, date)
}
func (r *fakeRepo) FindByEmployeeAndDateForUpdate(ctx context.Context, employeeID string, date time.Time) (*Attendance, error) {
	return r.findForUpdateFn(ctx, employeeID, date)
}
func (r *fakeRepo) ListByEmployeeAndRange(ctx context.Context, employeeID string, from, to time.Time) ([]Attendance, error) {
	return r.listByRangeFn(ctx, employeeID, from, to)
}
func (r *fakeRepo) AppendEvent(ctx context.Context, e *AttendanceEvent) error {
	return r.appendEventFn(ctx, e)
}
func (r *fakeRepo) ListEvents(ctx context.Context, attendanceID string) ([]AttendanceEvent, error) {
	return r.listEventsFn(ctx, attendanceID)
}
func (r *fakeRepo) LastEvent(ctx context.Context, attendanceID string) (*AttendanceEvent, error) {
	return r.lastEventFn(ctx, attendanceID)
}

type fakeLeaveCounter struct {
	days int
	err  error
}

func (f *fakeLeaveCounter) ApprovedDaysInWindow(ctx context.Context, employeeID string, from, to time.Time) (int, error) {
	return f.days, f.err
}

func newAttendanceService(t *testing.T, repo Repository, leaves LeaveCounter, now time.Time) (Service, sqlmock.Sqlmock) {
	t.Helper()
	gdb, mock := newTestDB(t)
	svc := NewService(gdb, repo, leaves, zap.NewNop(), DefaultStandardDayHours)
	svc.(*service).now = func() time.Time { return now }
	return svc, mock
}

func TestCheckIn_FirstOfDay(t *testing.T) {
	now := time.Date(2024, 6, 10, 9, 0, 0, 0, time.UTC)

	var created *Attendance
	var appended *AttendanceEvent
	repo := &fakeRepo{
		findForUpdateFn: func(ctx context.Context, employeeID string, date time.Time) (*Attendance, error) {
			return nil, gorm.ErrRecordNotFound
		},
		createFn: func(ctx context.Context, a *Attendance) error {
			created = a
			return nil
		},
		appendEventFn: func(ctx context.Context, e *AttendanceEvent) error {
			appended = e
			return nil
		},
	}

	svc, mock := newAttendanceService(t, repo, nil, now)
	mock.ExpectBegin()
	mock.ExpectCommit()

	resp, err := svc.CheckIn(context.Background(), uuid.NewString())

	assert.NoError(t, err)
	assert.Equal(t, "checked_in", resp.Status)
	assert.NotNil(t, created)
	assert.Equal(t, StatusPresent, created.Status)
	assert.NotNil(t, appended)
	assert.Equal(t, 1, appended.Seq)
	assert.Equal(t, EventCheckIn, appended.Kind)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCheckIn_WhileSessionOpen(t *testing.T) {
	now := time.Date(2024, 6, 10, 13, 0, 0, 0, time.UTC)
	day := &Attendance{ID: uuid.New(), Status: StatusPresent}

	repo := &fakeRepo{
		findForUpdateFn: func(ctx context.Context, employeeID string, date time.Time) (*Attendance, error) {
			return day, nil
		},
		lastEventFn: func(ctx context.Context, attendanceID string) (*AttendanceEvent, error) {
			return &AttendanceEvent{Seq: 1, Kind: EventCheckIn}, nil
		},
	}

	svc, mock := newAttendanceService(t, repo, nil, now)
	mock.ExpectBegin()
	mock.ExpectRollback()

	_, err := svc.CheckIn(context.Background(), uuid.NewString())

	assert.ErrorIs(t, err, attendanceerrors.ErrAlreadyCheckedIn)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCheckIn_AfterCheckOutStartsNewPair(t *testing.T) {
	now := time.Date(2024, 6, 10, 13, 0, 0, 0, time.UTC)
	day := &Attendance{ID: uuid.New(), Status: StatusPresent}

	var appended *AttendanceEvent
	repo := &fakeRepo{
		findForUpdateFn: func(ctx context.Context, employeeID string, date time.Time) (*Attendance, error) {
			return day, nil
		},
		lastEventFn: func(ctx context.Context, attendanceID string) (*AttendanceEvent, error) {
			return &AttendanceEvent{Seq: 2, Kind: EventCheckOut}, nil
		},
		updateFn: func(ctx context.Context, a *Attendance) error { return nil },
		appendEventFn: func(ctx context.Context, e *AttendanceEvent) error {
			appended = e
			return nil
		},
	}

	svc, mock := newAttendanceService(t, repo, nil, now)
	mock.ExpectBegin()
	mock.ExpectCommit()

	_, err := svc.CheckIn(context.Background(), uuid.NewString())

	assert.NoError(t, err)
	assert.Equal(t, 3, appended.Seq)
	assert.Equal(t, EventCheckIn, appended.Kind)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCheckOut_ComputesWorkedAndExtraHours(t *testing.T) {
	checkIn := time.Date(2024, 6, 10, 9, 0, 0, 0, time.UTC)
	now := time.Date(2024, 6, 10, 18, 30, 0, 0, time.UTC)
	day := &Attendance{ID: uuid.New(), Status: StatusPresent, CheckIn: &checkIn}

	events := []AttendanceEvent{{Seq: 1, Kind: EventCheckIn, EventTime: checkIn}}
	var updated *Attendance
	repo := &fakeRepo{
		findForUpdateFn: func(ctx context.Context, employeeID string, date time.Time) (*Attendance, error) {
			return day, nil
		},
		lastEventFn: func(ctx context.Context, attendanceID string) (*AttendanceEvent, error) {
			return &events[len(events)-1], nil
		},
		appendEventFn: func(ctx context.Context, e *AttendanceEvent) error {
			events = append(events, *e)
			return nil
		},
		listEventsFn: func(ctx context.Context, attendanceID string) ([]AttendanceEvent, error) {
			return events, nil
		},
		updateFn: func(ctx context.Context, a *Attendance) error {
			updated = a
			return nil
		},
	}

	svc, mock := newAttendanceService(t, repo, nil, now)
	mock.ExpectBegin()
	mock.ExpectCommit()

	resp, err := svc.CheckOut(context.Background(), uuid.NewString())

	assert.NoError(t, err)
	assert.Equal(t, "checked_out", resp.Status)
	assert.NotNil(t, resp.WorkedHours)
	assert.Equal(t, 9.5, *resp.WorkedHours)
	assert.NotNil(t, updated)
	assert.Equal(t, 9.5, updated.WorkedHours)
	assert.Equal(t, 1.5, updated.ExtraHours)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCheckOut_WithoutCheckIn(t *testing.T) {
	now := time.Date(2024, 6, 10, 18, 0, 0, 0, time.UTC)

	repo := &fakeRepo{
		findForUpdateFn: func(ctx context.Context, employeeID string, date time.Time) (*Attendance, error) {
			return nil, gorm.ErrRecordNotFound
		},
	}

	svc, mock := newAttendanceService(t, repo, nil, now)
	mock.ExpectBegin()
	mock.ExpectRollback()

	_, err := svc.CheckOut(context.Background(), uuid.NewString())

	assert.ErrorIs(t, err, attendanceerrors.ErrNotCheckedIn)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCheckOut_NoOpenSession(t *testing.T) {
	now := time.Date(2024, 6, 10, 18, 0, 0, 0, time.UTC)
	day := &Attendance{ID: uuid.New(), Status: StatusPresent}

	repo := &fakeRepo{
		findForUpdateFn: func(ctx context.Context, employeeID string, date time.Time) (*Attendance, error) {
			return day, nil
		},
		lastEventFn: func(ctx context.Context, attendanceID string) (*AttendanceEvent, error) {
			return &AttendanceEvent{Seq: 2, Kind: EventCheckOut}, nil
		},
	}

	svc, mock := newAttendanceService(t, repo, nil, now)
	mock.ExpectBegin()
	mock.ExpectRollback()

	_, err := svc.CheckOut(context.Background(), uuid.NewString())

	assert.ErrorIs(t, err, attendanceerrors.ErrNotCheckedIn)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMonthlySummary_Counts(t *testing.T) {
	empID := uuid.New()
	repo := &fakeRepo{
		listByRangeFn: func(ctx context.Context, employeeID string, from, to time.Time) ([]Attendance, error) {
			return []Attendance{
				{ID: uuid.New(), EmployeeID: empID, Status: StatusPresent},
				{ID: uuid.New(), EmployeeID: empID, Status: StatusPresent},
				{ID: uuid.New(), EmployeeID: empID, Status: StatusHalfDay},
				{ID: uuid.New(), EmployeeID: empID, Status: StatusAbsent},
			}, nil
		},
	}
	leaves := &fakeLeaveCounter{days: 2}

	svc, _ := newAttendanceService(t, repo, leaves, time.Now())

	resp, err := svc.MonthlySummary(context.Background(), empID.String(), 6, 2024)

	assert.NoError(t, err)
	assert.Equal(t, 2, resp.PresentCount)
	assert.Equal(t, 1, resp.HalfDayCount)
	assert.Equal(t, 2, resp.LeaveCount)
	// June 2024 has 20 weekdays.
	assert.Equal(t, 20, resp.WorkingDayCount)
	assert.Len(t, resp.Days, 4)
}

func TestMonthlySummary_InvalidPeriod(t *testing.T) {
	svc, _ := newAttendanceService(t, &fakeRepo{}, nil, time.Now())

	_, err := svc.MonthlySummary(context.Background(), uuid.NewString(), 13, 2024)

	assert.ErrorIs(t, err, attendanceerrors.ErrInvalidPeriod)
}

func TestCreateManual_DerivesHoursFromPair(t *testing.T) {
	var created *Attendance
	repo := &fakeRepo{
		findByDateFn: func(ctx context.Context, employeeID string, date time.Time) (*Attendance, error) {
			return nil, gorm.ErrRecordNotFound
		},
		createFn: func(ctx context.Context, a *Attendance) error {
			created = a
			return nil
		},
		appendEventFn: func(ctx context.Context, e *AttendanceEvent) error { return nil },
	}

	svc, mock := newAttendanceService(t, repo, nil, time.Now())
	mock.ExpectBegin()
	mock.ExpectCommit()

	resp, err := svc.CreateManual(context.Background(), ManualAttendanceRequest{
		EmployeeID: uuid.NewString(),
		Date:       "2024-06-10",
		CheckIn:    "09:00",
		CheckOut:   "13:30",
		Status:     StatusHalfDay,
	})

	assert.NoError(t, err)
	assert.Equal(t, 4.5, resp.WorkedHours)
	assert.Equal(t, 0.0, resp.ExtraHours)
	assert.NotNil(t, created)
	assert.Equal(t, StatusHalfDay, created.Status)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateManual_RejectsDuplicateDay(t *testing.T) {
	repo := &fakeRepo{
		findByDateFn: func(ctx context.Context, employeeID string, date time.Time) (*Attendance, error) {
			return &Attendance{ID: uuid.New()}, nil
		},
	}

	svc, mock := newAttendanceService(t, repo, nil, time.Now())
	mock.ExpectBegin()
	mock.ExpectRollback()

	_, err := svc.CreateManual(context.Background(), ManualAttendanceRequest{
		EmployeeID: uuid.NewString(),
		Date:       "2024-06-10",
		Status:     StatusPresent,
	})

	assert.ErrorIs(t, err, attendanceerrors.ErrAttendanceExists)
	assert.NoError(t, mock.ExpectationsWereMet())
}
