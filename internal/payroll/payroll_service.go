package payroll

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"go-hrm/internal/events"
	"go-hrm/internal/messaging/kafka"
	payrollerrors "go-hrm/internal/payroll/errors"
	"go-hrm/internal/salarystructure"
	"go-hrm/internal/shared/apperror"
	"go-hrm/internal/shared/contextutil"
)

// AttendanceCounter reports present and half-day counts for a month.
type AttendanceCounter interface {
	MonthlyCounts(ctx context.Context, employeeID string, month, year int) (presentDays, halfDays int, err error)
}

// LeaveCounter reports approved leave days clipped to a window.
type LeaveCounter interface {
	ApprovedDaysInWindow(ctx context.Context, employeeID string, from, to time.Time) (int, error)
}

// StructureSource loads the employee's salary structure with components.
type StructureSource interface {
	StructureForEmployee(ctx context.Context, employeeID string) (*salarystructure.SalaryStructure, error)
}

// EmployeeNames resolves display names for payslips.
type EmployeeNames interface {
	NameByID(ctx context.Context, employeeID string) (string, error)
}

type Service interface {
	Generate(ctx context.Context, actorID string, req GeneratePayrollRequest) (PayrollResponse, error)
	GetAll(ctx context.Context, filter ListFilter) ([]PayrollResponse, error)
	GetByID(ctx context.Context, id string) (PayrollResponse, error)
	Update(ctx context.Context, id string, req UpdatePayrollRequest) (PayrollResponse, error)
	MarkPaid(ctx context.Context, id string) (PayrollResponse, error)
	GeneratePayslip(ctx context.Context, id string) ([]byte, error)
}

type service struct {
	db         *gorm.DB
	repo       Repository
	attendance AttendanceCounter
	leaves     LeaveCounter
	structures StructureSource
	names      EmployeeNames
	outbox     kafka.OutboxRepository
	buckets    BucketConfig
	logger     *zap.Logger
	now        func() time.Time
}

func NewService(
	db *gorm.DB,
	repo Repository,
	attendance AttendanceCounter,
	leaves LeaveCounter,
	structures StructureSource,
	names EmployeeNames,
	outbox kafka.OutboxRepository,
	logger *zap.Logger,
) Service {
	return &service{
		db:         db,
		repo:       repo,
		attendance: attendance,
		leaves:     leaves,
		structures: structures,
		names:      names,
		outbox:     outbox,
		buckets:    DefaultBucketConfig(),
		logger:     logger.Named("payroll_service"),
		now:        func() time.Time { return time.Now().UTC() },
	}
}

func (s *service) Generate(ctx context.Context, actorID string, req GeneratePayrollRequest) (PayrollResponse, error) {
	log := contextutil.GetLogger(ctx, s.logger)
	log.Debug("generate payroll requested",
		zap.String("employee_id", req.EmployeeID),
		zap.Int("month", req.Month),
		zap.Int("year", req.Year),
	)

	empUUID, err := uuid.Parse(req.EmployeeID)
	if err != nil {
		return PayrollResponse{}, payrollerrors.ErrInvalidEmployeeID
	}
	actorUUID, err := uuid.Parse(actorID)
	if err != nil {
		return PayrollResponse{}, payrollerrors.ErrInvalidEmployeeID
	}
	if req.Month < 1 || req.Month > 12 || req.Year < 2000 || req.Year > 2100 {
		return PayrollResponse{}, payrollerrors.ErrInvalidPeriod
	}

	structure, err := s.structures.StructureForEmployee(ctx, req.EmployeeID)
	if err != nil {
		var appErr *apperror.AppError
		if errors.As(err, &appErr) && appErr.Code == apperror.CodeNotFound {
			return PayrollResponse{}, payrollerrors.ErrMissingSalaryStructure
		}
		return PayrollResponse{}, err
	}
	wage := structure.ResolveWage()
	if wage.IsZero() {
		log.Warn("generate payroll rejected, no usable wage",
			zap.String("employee_id", req.EmployeeID))
		return PayrollResponse{}, payrollerrors.ErrMissingSalaryStructure
	}

	figures, err := s.computeFigures(structure, wage)
	if err != nil {
		return PayrollResponse{}, err
	}

	presentDays, halfDays, err := s.attendance.MonthlyCounts(ctx, req.EmployeeID, req.Month, req.Year)
	if err != nil {
		return PayrollResponse{}, err
	}
	from, to := monthWindow(req.Month, req.Year)
	leaveDays, err := s.leaves.ApprovedDaysInWindow(ctx, req.EmployeeID, from, to)
	if err != nil {
		return PayrollResponse{}, err
	}

	now := s.now()
	payroll := &Payroll{
		ID:              uuid.New(),
		EmployeeID:      empUUID,
		Month:           req.Month,
		Year:            req.Year,
		BasicSalary:     figures.Basic,
		HRA:             figures.HRA,
		Conveyance:      figures.Conveyance,
		OtherAllowance:  figures.OtherAllowance,
		GrossSalary:     figures.Gross,
		PFDeduction:     figures.PFDeduction,
		ProfessionalTax: figures.ProfessionalTax,
		OtherDeduction:  figures.OtherDeduction,
		TotalDeduction:  figures.TotalDeduction,
		NetSalary:       figures.Net,
		Status:          StatusUnpaid,
		GeneratedBy:     actorUUID,
		GeneratedAt:     now,
	}

	tx := s.db.WithContext(ctx).Begin()
	if tx.Error != nil {
		return PayrollResponse{}, tx.Error
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	if _, err := qtx.FindByEmployeeAndPeriod(ctx, req.EmployeeID, req.Month, req.Year); err == nil {
		log.Warn("generate payroll rejected, period already generated",
			zap.String("employee_id", req.EmployeeID),
			zap.Int("month", req.Month),
			zap.Int("year", req.Year),
		)
		return PayrollResponse{}, payrollerrors.ErrDuplicatePayroll
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return PayrollResponse{}, err
	}

	if err := qtx.Create(ctx, payroll); err != nil {
		if isUniqueViolation(err) {
			return PayrollResponse{}, payrollerrors.ErrDuplicatePayroll
		}
		log.Error("generate payroll persist failed", zap.Error(err))
		return PayrollResponse{}, err
	}

	if err := s.writeGeneratedEvent(ctx, tx, payroll, actorID); err != nil {
		log.Error("generate payroll outbox write failed", zap.Error(err))
		return PayrollResponse{}, err
	}

	if err := tx.Commit().Error; err != nil {
		return PayrollResponse{}, err
	}

	log.Info("payroll generated",
		zap.String("payroll_id", payroll.ID.String()),
		zap.String("employee_id", req.EmployeeID),
		zap.String("net_salary", payroll.NetSalary.StringFixed(2)),
		zap.String("wage_source", wage.Source),
	)

	resp := mapToResponse(*payroll)
	resp.PresentDays = &presentDays
	resp.HalfDays = &halfDays
	resp.LeaveDays = &leaveDays
	return resp, nil
}

// computeFigures decomposes the wage through the component resolver, or
// falls back to the legacy four-field model when no components exist.
func (s *service) computeFigures(structure *salarystructure.SalaryStructure, wage salarystructure.ResolvedWage) (Figures, error) {
	hasActive := false
	for _, c := range structure.Components {
		if c.IsActive {
			hasActive = true
			break
		}
	}
	if !hasActive {
		return LegacyFigures(structure), nil
	}

	resolution, err := salarystructure.ResolveComponents(wage.Amount, structure.Components)
	if err != nil {
		return Figures{}, err
	}
	return ComputeFigures(resolution, s.buckets, structure.PFPercentage, structure.ProfessionalTax), nil
}

func (s *service) writeGeneratedEvent(ctx context.Context, tx *gorm.DB, payroll *Payroll, actorID string) error {
	event := events.PayrollGeneratedEvent{
		EventType:   events.EventTypePayrollGenerated,
		PayrollID:   payroll.ID.String(),
		EmployeeID:  payroll.EmployeeID.String(),
		Month:       payroll.Month,
		Year:        payroll.Year,
		GeneratedBy: actorID,
		OccurredAt:  payroll.GeneratedAt,
	}
	payload, err := json.Marshal(event)
	if err != nil {
		return err
	}

	return s.outbox.WithTx(tx).Create(ctx, kafka.OutboxEvent{
		ID:            uuid.NewString(),
		RequestID:     contextutil.GetRequestID(ctx),
		AggregateType: "payroll",
		AggregateID:   payroll.ID.String(),
		EventType:     events.EventTypePayrollGenerated,
		Topic:         events.PayrollGeneratedTopic,
		Payload:       payload,
		Status:        kafka.OutboxStatusPending,
	})
}

func (s *service) GetAll(ctx context.Context, filter ListFilter) ([]PayrollResponse, error) {
	rows, err := s.repo.FindAll(ctx, filter)
	if err != nil {
		return nil, err
	}
	res := make([]PayrollResponse, len(rows))
	for i, p := range rows {
		res[i] = mapToResponse(p)
	}
	return res, nil
}

func (s *service) GetByID(ctx context.Context, id string) (PayrollResponse, error) {
	p, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return PayrollResponse{}, payrollerrors.ErrPayrollNotFound
		}
		return PayrollResponse{}, err
	}
	return mapToResponse(*p), nil
}

func (s *service) Update(ctx context.Context, id string, req UpdatePayrollRequest) (PayrollResponse, error) {
	log := contextutil.GetLogger(ctx, s.logger)

	figures := Figures{}
	var err error
	if figures.Basic, err = decimal.NewFromString(req.BasicSalary); err != nil {
		return PayrollResponse{}, apperror.InvalidField("basic_salary")
	}
	if figures.HRA, err = decimal.NewFromString(req.HRA); err != nil {
		return PayrollResponse{}, apperror.InvalidField("hra")
	}
	if figures.Conveyance, err = decimal.NewFromString(req.Conveyance); err != nil {
		return PayrollResponse{}, apperror.InvalidField("conveyance")
	}
	if figures.OtherAllowance, err = decimal.NewFromString(req.OtherAllowance); err != nil {
		return PayrollResponse{}, apperror.InvalidField("other_allowance")
	}
	figures.OtherDeduction = decimal.Zero
	if req.OtherDeduction != "" {
		if figures.OtherDeduction, err = decimal.NewFromString(req.OtherDeduction); err != nil {
			return PayrollResponse{}, apperror.InvalidField("other_deduction")
		}
	}

	tx := s.db.WithContext(ctx).Begin()
	if tx.Error != nil {
		return PayrollResponse{}, tx.Error
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	p, err := qtx.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return PayrollResponse{}, payrollerrors.ErrPayrollNotFound
		}
		return PayrollResponse{}, err
	}

	figures.PFDeduction = p.PFDeduction
	figures.ProfessionalTax = p.ProfessionalTax
	figures.Recalculate()

	p.BasicSalary = figures.Basic
	p.HRA = figures.HRA
	p.Conveyance = figures.Conveyance
	p.OtherAllowance = figures.OtherAllowance
	p.GrossSalary = figures.Gross
	p.OtherDeduction = figures.OtherDeduction
	p.TotalDeduction = figures.TotalDeduction
	p.NetSalary = figures.Net

	if err := qtx.Update(ctx, p); err != nil {
		return PayrollResponse{}, err
	}
	if err := tx.Commit().Error; err != nil {
		return PayrollResponse{}, err
	}

	log.Info("payroll updated",
		zap.String("payroll_id", id),
		zap.String("net_salary", p.NetSalary.StringFixed(2)),
	)
	return mapToResponse(*p), nil
}

func (s *service) MarkPaid(ctx context.Context, id string) (PayrollResponse, error) {
	log := contextutil.GetLogger(ctx, s.logger)

	tx := s.db.WithContext(ctx).Begin()
	if tx.Error != nil {
		return PayrollResponse{}, tx.Error
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	p, err := qtx.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return PayrollResponse{}, payrollerrors.ErrPayrollNotFound
		}
		return PayrollResponse{}, err
	}
	if p.Status == StatusPaid {
		return PayrollResponse{}, payrollerrors.ErrPayrollAlreadyPaid
	}

	now := s.now()
	p.Status = StatusPaid
	p.PaidAt = &now
	if err := qtx.Update(ctx, p); err != nil {
		return PayrollResponse{}, err
	}
	if err := tx.Commit().Error; err != nil {
		return PayrollResponse{}, err
	}

	log.Info("payroll marked paid", zap.String("payroll_id", id))
	return mapToResponse(*p), nil
}

func (s *service) GeneratePayslip(ctx context.Context, id string) ([]byte, error) {
	p, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, payrollerrors.ErrPayrollNotFound
		}
		return nil, err
	}

	employeeName := p.EmployeeID.String()
	if s.names != nil {
		if name, err := s.names.NameByID(ctx, p.EmployeeID.String()); err == nil && name != "" {
			employeeName = name
		}
	}

	pdf, err := buildPayslipPDF(payslipLines(p, employeeName))
	if err != nil {
		return nil, err
	}

	now := s.now()
	p.PayslipGeneratedAt = &now
	if err := s.repo.Update(ctx, p); err != nil {
		return nil, err
	}
	return pdf, nil
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}

func monthWindow(month, year int) (time.Time, time.Time) {
	from := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
	return from, from.AddDate(0, 1, -1)
}

func mapToResponse(p Payroll) PayrollResponse {
	resp := PayrollResponse{
		ID:              p.ID.String(),
		EmployeeID:      p.EmployeeID.String(),
		Month:           p.Month,
		Year:            p.Year,
		BasicSalary:     p.BasicSalary.StringFixed(2),
		HRA:             p.HRA.StringFixed(2),
		Conveyance:      p.Conveyance.StringFixed(2),
		OtherAllowance:  p.OtherAllowance.StringFixed(2),
		GrossSalary:     p.GrossSalary.StringFixed(2),
		PFDeduction:     p.PFDeduction.StringFixed(2),
		ProfessionalTax: p.ProfessionalTax.StringFixed(2),
		OtherDeduction:  p.OtherDeduction.StringFixed(2),
		TotalDeduction:  p.TotalDeduction.StringFixed(2),
		NetSalary:       p.NetSalary.StringFixed(2),
		Status:          p.Status,
		GeneratedAt:     p.GeneratedAt.Format(time.RFC3339),
	}
	if p.PaidAt != nil {
		v := p.PaidAt.Format(time.RFC3339)
		resp.PaidAt = &v
	}
	return resp
}
