package employee

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Repository interface {
	WithTx(tx *gorm.DB) Repository
	Create(ctx context.Context, empl *Employee) error
	FindByID(ctx context.Context, id uuid.UUID) (*Employee, error)
	FindPage(ctx context.Context, companyID *uuid.UUID, page, pageSize int) ([]Employee, int64, error)
	FindCompanyRef(ctx context.Context, id uuid.UUID) (*CompanyRef, error)
	CompanyExists(ctx context.Context, id uuid.UUID) (bool, error)
	Update(ctx context.Context, empl *Employee) error
	Delete(ctx context.Context, id uuid.UUID) error
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

func (r *repository) Create(ctx context.Context, empl *Employee) error {
	return r.db.WithContext(ctx).Create(empl).Error
}

func (r *repository) FindByID(ctx context.Context, id uuid.UUID) (*Employee, error) {
	var empl Employee
	err := r.db.WithContext(ctx).
		Preload("Company").
		First(&empl, "id = ?", id).Error
	return &empl, err
}

func (r *repository) FindPage(ctx context.Context, companyID *uuid.UUID, page, pageSize int) ([]Employee, int64, error) {
	scope := func(db *gorm.DB) *gorm.DB {
		if companyID != nil {
			return db.Where("company_id = ?", *companyID)
		}
		return db
	}

	var total int64
	if err := scope(r.db.WithContext(ctx).Model(&Employee{})).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var employees []Employee
	err := scope(r.db.WithContext(ctx)).
		Preload("Company").
		Order("created_at, id").
		Offset((page - 1) * pageSize).
		Limit(pageSize).
		Find(&employees).Error
	return employees, total, err
}

func (r *repository) FindCompanyRef(ctx context.Context, id uuid.UUID) (*CompanyRef, error) {
	var ref CompanyRef
	err := r.db.WithContext(ctx).First(&ref, "id = ?", id).Error
	return &ref, err
}

func (r *repository) CompanyExists(ctx context.Context, id uuid.UUID) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&CompanyRef{}).
		Where("id = ?", id).
		Count(&count).Error
	return count > 0, err
}

func (r *repository) Update(ctx context.Context, empl *Employee) error {
	return r.db.WithContext(ctx).Omit("Company").Save(empl).Error
}

func (r *repository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&Employee{}, "id = ?", id).Error
}
