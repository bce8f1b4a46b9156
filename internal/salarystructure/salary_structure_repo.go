package salarystructure

import (
	"context"

	"gorm.io/gorm"
)

type Repository interface {
	WithTx(tx *gorm.DB) Repository
	Create(ctx context.Context, s *SalaryStructure) error
	Update(ctx context.Context, s *SalaryStructure) error
	FindByEmployee(ctx context.Context, employeeID string) (*SalaryStructure, error)
	ReplaceComponents(ctx context.Context, structureID string, components []SalaryComponent) error
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

func (r *repository) Create(ctx context.Context, s *SalaryStructure) error {
	return r.db.WithContext(ctx).Create(s).Error
}

func (r *repository) Update(ctx context.Context, s *SalaryStructure) error {
	return r.db.WithContext(ctx).
		Omit("Components").
		Save(s).Error
}

func (r *repository) FindByEmployee(ctx context.Context, employeeID string) (*SalaryStructure, error) {
	var s SalaryStructure
	err := r.db.WithContext(ctx).
		Preload("Components", func(db *gorm.DB) *gorm.DB {
			return db.Order("display_order ASC")
		}).
		Where("employee_id = ?", employeeID).
		First(&s).Error
	if err != nil {
		return nil, err
	}
	return &s, nil
}

// ReplaceComponents swaps the full component set of a structure. Upserts
// always send the complete list, so a wholesale replace keeps the unique
// name constraint simple.
func (r *repository) ReplaceComponents(ctx context.Context, structureID string, components []SalaryComponent) error {
	if err := r.db.WithContext(ctx).
		Where("structure_id = ?", structureID).
		Delete(&SalaryComponent{}).Error; err != nil {
		return err
	}
	if len(components) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Create(&components).Error
}
