package attendance

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	attendanceerrors "go-hrm/internal/attendance/errors"
	"go-hrm/internal/shared/contextutil"
)

// LeaveCounter reports approved leave days inside a window. The leave
// package provides the implementation.
type LeaveCounter interface {
	ApprovedDaysInWindow(ctx context.Context, employeeID string, from, to time.Time) (int, error)
}

type Service interface {
	CheckIn(ctx context.Context, employeeID string) (CheckResponse, error)
	CheckOut(ctx context.Context, employeeID string) (CheckResponse, error)
	MonthlySummary(ctx context.Context, employeeID string, month, year int) (MonthlySummaryResponse, error)
	MonthlyCounts(ctx context.Context, employeeID string, month, year int) (presentDays, halfDays int, err error)
	CreateManual(ctx context.Context, req ManualAttendanceRequest) (AttendanceResponse, error)
	UpdateManual(ctx context.Context, id string, req ManualAttendanceRequest) (AttendanceResponse, error)
	Delete(ctx context.Context, id string) error
}

type service struct {
	db               *gorm.DB
	repo             Repository
	leaves           LeaveCounter
	logger           *zap.Logger
	standardDayHours float64
	now              func() time.Time
}

func NewService(db *gorm.DB, repo Repository, leaves LeaveCounter, logger *zap.Logger, standardDayHours float64) Service {
	if standardDayHours <= 0 {
		standardDayHours = DefaultStandardDayHours
	}
	return &service{
		db:               db,
		repo:             repo,
		leaves:           leaves,
		logger:           logger.Named("attendance_service"),
		standardDayHours: standardDayHours,
		now:              func() time.Time { return time.Now().UTC() },
	}
}

func (s *service) CheckIn(ctx context.Context, employeeID string) (CheckResponse, error) {
	log := contextutil.GetLogger(ctx, s.logger)

	empID, err := uuid.Parse(employeeID)
	if err != nil {
		return CheckResponse{}, attendanceerrors.ErrInvalidEmployeeID
	}

	now := s.now()
	today := now.Truncate(24 * time.Hour)

	tx := s.db.WithContext(ctx).Begin()
	if tx.Error != nil {
		return CheckResponse{}, tx.Error
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	day, err := qtx.FindByEmployeeAndDateForUpdate(ctx, employeeID, today)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return CheckResponse{}, err
	}

	seq := 1
	if day == nil {
		day = &Attendance{
			ID:             uuid.New(),
			EmployeeID:     empID,
			AttendanceDate: today,
			CheckIn:        &now,
			Status:         StatusPresent,
		}
		if err := qtx.Create(ctx, day); err != nil {
			return CheckResponse{}, err
		}
	} else {
		last, err := qtx.LastEvent(ctx, day.ID.String())
		if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			return CheckResponse{}, err
		}
		if last != nil {
			if last.Kind == EventCheckIn {
				log.Warn("check-in rejected, session still open",
					zap.String("employee_id", employeeID),
					zap.String("date", today.Format("2006-01-02")))
				return CheckResponse{}, attendanceerrors.ErrAlreadyCheckedIn
			}
			seq = last.Seq + 1
		}
		if day.Status == StatusAbsent {
			day.Status = StatusPresent
		}
		if err := qtx.Update(ctx, day); err != nil {
			return CheckResponse{}, err
		}
	}

	event := &AttendanceEvent{
		ID:           uuid.New(),
		AttendanceID: day.ID,
		Seq:          seq,
		Kind:         EventCheckIn,
		EventTime:    now,
	}
	if err := qtx.AppendEvent(ctx, event); err != nil {
		return CheckResponse{}, err
	}

	if err := tx.Commit().Error; err != nil {
		return CheckResponse{}, err
	}

	log.Info("employee checked in",
		zap.String("employee_id", employeeID),
		zap.Int("seq", seq))

	return CheckResponse{
		Status:    "checked_in",
		Message:   "Checked in successfully",
		Timestamp: now.Format(time.RFC3339),
	}, nil
}

func (s *service) CheckOut(ctx context.Context, employeeID string) (CheckResponse, error) {
	log := contextutil.GetLogger(ctx, s.logger)

	if _, err := uuid.Parse(employeeID); err != nil {
		return CheckResponse{}, attendanceerrors.ErrInvalidEmployeeID
	}

	now := s.now()
	today := now.Truncate(24 * time.Hour)

	tx := s.db.WithContext(ctx).Begin()
	if tx.Error != nil {
		return CheckResponse{}, tx.Error
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	day, err := qtx.FindByEmployeeAndDateForUpdate(ctx, employeeID, today)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return CheckResponse{}, attendanceerrors.ErrNotCheckedIn
		}
		return CheckResponse{}, err
	}

	last, err := qtx.LastEvent(ctx, day.ID.String())
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return CheckResponse{}, attendanceerrors.ErrNotCheckedIn
		}
		return CheckResponse{}, err
	}
	if last.Kind != EventCheckIn {
		log.Warn("check-out rejected, no open session",
			zap.String("employee_id", employeeID),
			zap.String("date", today.Format("2006-01-02")))
		return CheckResponse{}, attendanceerrors.ErrNotCheckedIn
	}

	event := &AttendanceEvent{
		ID:           uuid.New(),
		AttendanceID: day.ID,
		Seq:          last.Seq + 1,
		Kind:         EventCheckOut,
		EventTime:    now,
	}
	if err := qtx.AppendEvent(ctx, event); err != nil {
		return CheckResponse{}, err
	}

	events, err := qtx.ListEvents(ctx, day.ID.String())
	if err != nil {
		return CheckResponse{}, err
	}

	day.CheckOut = &now
	day.WorkedHours = PairWorkedHours(events)
	day.ExtraHours = ExtraHours(day.WorkedHours, s.standardDayHours)
	if err := qtx.Update(ctx, day); err != nil {
		return CheckResponse{}, err
	}

	if err := tx.Commit().Error; err != nil {
		return CheckResponse{}, err
	}

	log.Info("employee checked out",
		zap.String("employee_id", employeeID),
		zap.Float64("worked_hours", day.WorkedHours),
		zap.Float64("extra_hours", day.ExtraHours))

	worked := day.WorkedHours
	return CheckResponse{
		Status:      "checked_out",
		Message:     "Checked out successfully",
		Timestamp:   now.Format(time.RFC3339),
		WorkedHours: &worked,
	}, nil
}

func (s *service) MonthlySummary(ctx context.Context, employeeID string, month, year int) (MonthlySummaryResponse, error) {
	if _, err := uuid.Parse(employeeID); err != nil {
		return MonthlySummaryResponse{}, attendanceerrors.ErrInvalidEmployeeID
	}
	if month < 1 || month > 12 || year < 2000 || year > 2100 {
		return MonthlySummaryResponse{}, attendanceerrors.ErrInvalidPeriod
	}

	from, to := monthWindow(month, year)

	rows, err := s.repo.ListByEmployeeAndRange(ctx, employeeID, from, to)
	if err != nil {
		return MonthlySummaryResponse{}, err
	}

	resp := MonthlySummaryResponse{
		Month:           month,
		Year:            year,
		Days:            make([]AttendanceResponse, len(rows)),
		WorkingDayCount: weekdayCount(from, to),
	}
	for i, r := range rows {
		resp.Days[i] = mapToResponse(r)
		switch r.Status {
		case StatusPresent:
			resp.PresentCount++
		case StatusHalfDay:
			resp.HalfDayCount++
		}
	}

	if s.leaves != nil {
		leaveDays, err := s.leaves.ApprovedDaysInWindow(ctx, employeeID, from, to)
		if err != nil {
			return MonthlySummaryResponse{}, err
		}
		resp.LeaveCount = leaveDays
	}

	return resp, nil
}

func (s *service) MonthlyCounts(ctx context.Context, employeeID string, month, year int) (int, int, error) {
	if month < 1 || month > 12 {
		return 0, 0, attendanceerrors.ErrInvalidPeriod
	}

	from, to := monthWindow(month, year)

	rows, err := s.repo.ListByEmployeeAndRange(ctx, employeeID, from, to)
	if err != nil {
		return 0, 0, err
	}

	present, halfDay := 0, 0
	for _, r := range rows {
		switch r.Status {
		case StatusPresent:
			present++
		case StatusHalfDay:
			halfDay++
		}
	}
	return present, halfDay, nil
}

func (s *service) CreateManual(ctx context.Context, req ManualAttendanceRequest) (AttendanceResponse, error) {
	log := contextutil.GetLogger(ctx, s.logger)

	empID, err := uuid.Parse(req.EmployeeID)
	if err != nil {
		return AttendanceResponse{}, attendanceerrors.ErrInvalidEmployeeID
	}
	date, checkIn, checkOut, err := parseManualTimes(req)
	if err != nil {
		return AttendanceResponse{}, err
	}
	if !isValidStatus(req.Status) {
		return AttendanceResponse{}, attendanceerrors.ErrInvalidStatus
	}

	tx := s.db.WithContext(ctx).Begin()
	if tx.Error != nil {
		return AttendanceResponse{}, tx.Error
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	if _, err := qtx.FindByEmployeeAndDate(ctx, req.EmployeeID, date); err == nil {
		return AttendanceResponse{}, attendanceerrors.ErrAttendanceExists
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return AttendanceResponse{}, err
	}

	day := &Attendance{
		ID:             uuid.New(),
		EmployeeID:     empID,
		AttendanceDate: date,
		CheckIn:        checkIn,
		CheckOut:       checkOut,
		Status:         req.Status,
	}
	applyManualHours(day, s.standardDayHours)

	if err := qtx.Create(ctx, day); err != nil {
		return AttendanceResponse{}, err
	}

	seq := 1
	if checkIn != nil {
		e := &AttendanceEvent{ID: uuid.New(), AttendanceID: day.ID, Seq: seq, Kind: EventCheckIn, EventTime: *checkIn}
		if err := qtx.AppendEvent(ctx, e); err != nil {
			return AttendanceResponse{}, err
		}
		seq++
	}
	if checkOut != nil {
		e := &AttendanceEvent{ID: uuid.New(), AttendanceID: day.ID, Seq: seq, Kind: EventCheckOut, EventTime: *checkOut}
		if err := qtx.AppendEvent(ctx, e); err != nil {
			return AttendanceResponse{}, err
		}
	}

	if err := tx.Commit().Error; err != nil {
		return AttendanceResponse{}, err
	}

	log.Info("manual attendance created",
		zap.String("employee_id", req.EmployeeID),
		zap.String("date", date.Format("2006-01-02")),
		zap.String("status", day.Status))

	return mapToResponse(*day), nil
}

func (s *service) UpdateManual(ctx context.Context, id string, req ManualAttendanceRequest) (AttendanceResponse, error) {
	log := contextutil.GetLogger(ctx, s.logger)

	_, checkIn, checkOut, err := parseManualTimes(req)
	if err != nil {
		return AttendanceResponse{}, err
	}
	if !isValidStatus(req.Status) {
		return AttendanceResponse{}, attendanceerrors.ErrInvalidStatus
	}

	day, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return AttendanceResponse{}, attendanceerrors.ErrAttendanceNotFound
		}
		return AttendanceResponse{}, err
	}

	day.CheckIn = checkIn
	day.CheckOut = checkOut
	day.Status = req.Status
	applyManualHours(day, s.standardDayHours)

	if err := s.repo.Update(ctx, day); err != nil {
		return AttendanceResponse{}, err
	}

	log.Info("manual attendance updated",
		zap.String("attendance_id", id),
		zap.String("status", day.Status))

	return mapToResponse(*day), nil
}

func (s *service) Delete(ctx context.Context, id string) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return attendanceerrors.ErrAttendanceNotFound
		}
		return err
	}
	return s.repo.Delete(ctx, id)
}

// applyManualHours derives worked and extra hours from the corrected
// check-in/check-out pair, bypassing the event ledger.
func applyManualHours(day *Attendance, standardDayHours float64) {
	day.WorkedHours = 0
	day.ExtraHours = 0
	if day.CheckIn != nil && day.CheckOut != nil {
		pair := []AttendanceEvent{
			{Kind: EventCheckIn, EventTime: *day.CheckIn},
			{Kind: EventCheckOut, EventTime: *day.CheckOut},
		}
		day.WorkedHours = PairWorkedHours(pair)
		day.ExtraHours = ExtraHours(day.WorkedHours, standardDayHours)
	}
}

func parseManualTimes(req ManualAttendanceRequest) (date time.Time, checkIn, checkOut *time.Time, err error) {
	date, err = time.ParseInLocation("2006-01-02", req.Date, time.UTC)
	if err != nil {
		return time.Time{}, nil, nil, attendanceerrors.ErrInvalidDateFormat
	}
	if req.CheckIn != "" {
		t, perr := combineDateTime(date, req.CheckIn)
		if perr != nil {
			return time.Time{}, nil, nil, attendanceerrors.ErrInvalidTimeFormat
		}
		checkIn = &t
	}
	if req.CheckOut != "" {
		t, perr := combineDateTime(date, req.CheckOut)
		if perr != nil {
			return time.Time{}, nil, nil, attendanceerrors.ErrInvalidTimeFormat
		}
		checkOut = &t
	}
	return date, checkIn, checkOut, nil
}

func combineDateTime(date time.Time, hhmm string) (time.Time, error) {
	t, err := time.Parse("15:04", hhmm)
	if err != nil {
		return time.Time{}, err
	}
	return time.Date(date.Year(), date.Month(), date.Day(), t.Hour(), t.Minute(), 0, 0, time.UTC), nil
}

func isValidStatus(status string) bool {
	switch status {
	case StatusPresent, StatusAbsent, StatusHalfDay:
		return true
	default:
		return false
	}
}

func monthWindow(month, year int) (time.Time, time.Time) {
	from := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
	to := from.AddDate(0, 1, -1)
	return from, to
}

func weekdayCount(from, to time.Time) int {
	count := 0
	for d := from; !d.After(to); d = d.AddDate(0, 0, 1) {
		if wd := d.Weekday(); wd != time.Saturday && wd != time.Sunday {
			count++
		}
	}
	return count
}

func mapToResponse(a Attendance) AttendanceResponse {
	resp := AttendanceResponse{
		ID:             a.ID.String(),
		EmployeeID:     a.EmployeeID.String(),
		AttendanceDate: a.AttendanceDate.Format("2006-01-02"),
		Status:         a.Status,
		WorkedHours:    a.WorkedHours,
		ExtraHours:     a.ExtraHours,
	}
	if a.CheckIn != nil {
		v := a.CheckIn.Format(time.RFC3339)
		resp.CheckIn = &v
	}
	if a.CheckOut != nil {
		v := a.CheckOut.Format(time.RFC3339)
		resp.CheckOut = &v
	}
	return resp
}
