package salarystructure

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"gorm.io/gorm"

	salarystructureerrors "go-hrm/internal/salarystructure/errors"
	"go-hrm/internal/shared/apperror"
	"go-hrm/internal/shared/contextutil"
)

var (
	defaultPFPercentage    = decimal.NewFromInt(12)
	defaultProfessionalTax = decimal.NewFromInt(200)
)

type Service interface {
	Upsert(ctx context.Context, req UpsertStructureRequest) (StructureResponse, error)
	GetByEmployee(ctx context.Context, employeeID string) (StructureResponse, error)
	// Resolve runs the decomposition without persisting anything.
	Resolve(ctx context.Context, req ResolveRequest) (ResolveResponse, error)
	// StructureForEmployee returns the raw structure with components
	// preloaded. Payroll generation consumes it.
	StructureForEmployee(ctx context.Context, employeeID string) (*SalaryStructure, error)
}

type service struct {
	db     *gorm.DB
	repo   Repository
	logger *zap.Logger
}

func NewService(db *gorm.DB, repo Repository, logger *zap.Logger) Service {
	return &service{db: db, repo: repo, logger: logger.Named("salary_structure_service")}
}

func (s *service) Upsert(ctx context.Context, req UpsertStructureRequest) (StructureResponse, error) {
	log := contextutil.GetLogger(ctx, s.logger)

	empUUID, err := uuid.Parse(req.EmployeeID)
	if err != nil {
		return StructureResponse{}, salarystructureerrors.ErrInvalidEmployeeID
	}
	wage, err := decimal.NewFromString(req.Wage)
	if err != nil || wage.IsNegative() {
		return StructureResponse{}, salarystructureerrors.ErrInvalidWage
	}

	pfPercentage := defaultPFPercentage
	if req.PFPercentage != "" {
		if pfPercentage, err = decimal.NewFromString(req.PFPercentage); err != nil {
			return StructureResponse{}, apperror.InvalidField("pf_percentage")
		}
	}
	professionalTax := defaultProfessionalTax
	if req.ProfessionalTax != "" {
		if professionalTax, err = decimal.NewFromString(req.ProfessionalTax); err != nil {
			return StructureResponse{}, apperror.InvalidField("professional_tax")
		}
	}

	components, err := buildComponents(req.Components)
	if err != nil {
		return StructureResponse{}, err
	}

	// Components must decompose cleanly before anything is written.
	resolution, err := ResolveComponents(wage, components)
	if err != nil {
		log.Warn("salary structure rejected",
			zap.String("employee_id", req.EmployeeID),
			zap.Strings("warnings", resolution.Warnings),
		)
		return StructureResponse{}, err
	}

	tx := s.db.WithContext(ctx).Begin()
	if tx.Error != nil {
		return StructureResponse{}, tx.Error
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	structure, err := qtx.FindByEmployee(ctx, req.EmployeeID)
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return StructureResponse{}, err
		}
		structure = &SalaryStructure{
			ID:         uuid.New(),
			EmployeeID: empUUID,
		}
		structure.Wage = wage
		structure.PFPercentage = pfPercentage
		structure.ProfessionalTax = professionalTax
		if err := qtx.Create(ctx, structure); err != nil {
			return StructureResponse{}, err
		}
	} else {
		structure.Wage = wage
		structure.PFPercentage = pfPercentage
		structure.ProfessionalTax = professionalTax
		if err := qtx.Update(ctx, structure); err != nil {
			return StructureResponse{}, err
		}
	}

	for i := range components {
		components[i].ID = uuid.New()
		components[i].StructureID = structure.ID
	}
	if err := qtx.ReplaceComponents(ctx, structure.ID.String(), components); err != nil {
		return StructureResponse{}, err
	}

	if err := tx.Commit().Error; err != nil {
		return StructureResponse{}, err
	}

	structure.Components = components

	log.Info("salary structure saved",
		zap.String("employee_id", req.EmployeeID),
		zap.String("wage", wage.StringFixed(2)),
		zap.Int("components", len(components)),
	)
	return mapToStructureResponse(*structure, resolution), nil
}

func (s *service) GetByEmployee(ctx context.Context, employeeID string) (StructureResponse, error) {
	structure, err := s.repo.FindByEmployee(ctx, employeeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return StructureResponse{}, salarystructureerrors.ErrStructureNotFound
		}
		return StructureResponse{}, err
	}

	wage := structure.ResolveWage()
	resolution, resolveErr := ResolveComponents(wage.Amount, structure.Components)
	// A stored structure that no longer reconciles is still readable; the
	// warnings carry the problem to the caller.
	if resolveErr != nil && len(resolution.Warnings) == 0 {
		resolution.Warnings = append(resolution.Warnings, resolveErr.Error())
	}
	return mapToStructureResponse(*structure, resolution), nil
}

func (s *service) Resolve(ctx context.Context, req ResolveRequest) (ResolveResponse, error) {
	wage, err := decimal.NewFromString(req.Wage)
	if err != nil || wage.IsNegative() {
		return ResolveResponse{}, salarystructureerrors.ErrInvalidWage
	}
	components, err := buildComponents(req.Components)
	if err != nil {
		return ResolveResponse{}, err
	}

	resolution, err := ResolveComponents(wage, components)
	if err != nil {
		return ResolveResponse{}, err
	}

	amounts := make(map[string]string, len(resolution.Amounts))
	for _, a := range resolution.Amounts {
		amounts[a.Name] = a.Amount.StringFixed(2)
	}
	return ResolveResponse{
		Wage:     wage.StringFixed(2),
		Amounts:  amounts,
		Total:    resolution.Total.StringFixed(2),
		Warnings: resolution.Warnings,
	}, nil
}

func (s *service) StructureForEmployee(ctx context.Context, employeeID string) (*SalaryStructure, error) {
	structure, err := s.repo.FindByEmployee(ctx, employeeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, salarystructureerrors.ErrStructureNotFound
		}
		return nil, err
	}
	return structure, nil
}

func buildComponents(reqs []ComponentRequest) ([]SalaryComponent, error) {
	components := make([]SalaryComponent, 0, len(reqs))
	seen := make(map[string]bool, len(reqs))

	for i, r := range reqs {
		if seen[r.Name] {
			return nil, salarystructureerrors.ErrDuplicateComponentName
		}
		seen[r.Name] = true

		if r.Kind != KindFixed && r.Kind != KindPercentage {
			return nil, salarystructureerrors.ErrInvalidComponentKind
		}
		base := r.Base
		if base == "" {
			base = BaseWage
		}
		if base != BaseWage && base != BaseBasic {
			return nil, salarystructureerrors.ErrInvalidComponentBase
		}
		value, err := decimal.NewFromString(r.Value)
		if err != nil || value.IsNegative() {
			return nil, apperror.InvalidField("value")
		}

		displayOrder := r.DisplayOrder
		if displayOrder == 0 {
			displayOrder = i + 1
		}
		isActive := true
		if r.IsActive != nil {
			isActive = *r.IsActive
		}

		components = append(components, SalaryComponent{
			Name:         r.Name,
			Kind:         r.Kind,
			Value:        value,
			Base:         base,
			DisplayOrder: displayOrder,
			IsActive:     isActive,
		})
	}
	return components, nil
}

func mapToStructureResponse(s SalaryStructure, resolution Resolution) StructureResponse {
	resp := StructureResponse{
		ID:              s.ID.String(),
		EmployeeID:      s.EmployeeID.String(),
		Wage:            s.Wage.StringFixed(2),
		PFPercentage:    s.PFPercentage.StringFixed(2),
		ProfessionalTax: s.ProfessionalTax.StringFixed(2),
		Components:      make([]ComponentResponse, len(s.Components)),
		Total:           resolution.Total.StringFixed(2),
		Warnings:        resolution.Warnings,
	}
	for i, c := range s.Components {
		resp.Components[i] = ComponentResponse{
			Name:         c.Name,
			Kind:         c.Kind,
			Value:        c.Value.String(),
			Base:         c.Base,
			DisplayOrder: c.DisplayOrder,
			IsActive:     c.IsActive,
			Amount:       resolution.Amount(c.Name).StringFixed(2),
		}
	}
	return resp
}
