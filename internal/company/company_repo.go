package company

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Repository interface {
	WithTx(tx *gorm.DB) Repository
	Create(ctx context.Context, company *Company) error
	FindByID(ctx context.Context, id uuid.UUID) (*Company, error)
	FindPage(ctx context.Context, page, pageSize int) ([]Company, int64, error)
	FindOptions(ctx context.Context) ([]Company, error)
	Update(ctx context.Context, company *Company) error
	Delete(ctx context.Context, id uuid.UUID) error
	DeleteEmployeesByCompany(ctx context.Context, companyID uuid.UUID) (int64, error)
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

func (r *repository) Create(ctx context.Context, company *Company) error {
	return r.db.WithContext(ctx).Create(company).Error
}

func (r *repository) FindByID(ctx context.Context, id uuid.UUID) (*Company, error) {
	var company Company
	err := r.db.WithContext(ctx).First(&company, "id = ?", id).Error
	return &company, err
}

func (r *repository) FindPage(ctx context.Context, page, pageSize int) ([]Company, int64, error) {
	var total int64
	if err := r.db.WithContext(ctx).Model(&Company{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var companies []Company
	err := r.db.WithContext(ctx).
		Order("created_at, id").
		Offset((page - 1) * pageSize).
		Limit(pageSize).
		Find(&companies).Error
	return companies, total, err
}

func (r *repository) FindOptions(ctx context.Context) ([]Company, error) {
	var companies []Company
	err := r.db.WithContext(ctx).
		Select("id", "name").
		Order("name").
		Find(&companies).Error
	return companies, err
}

func (r *repository) Update(ctx context.Context, company *Company) error {
	return r.db.WithContext(ctx).Save(company).Error
}

func (r *repository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&Company{}, "id = ?", id).Error
}

// DeleteEmployeesByCompany removes every employee owned by the company. It
// lives here, not in the employee repository, because the cascade belongs to
// the company delete operation.
func (r *repository) DeleteEmployeesByCompany(ctx context.Context, companyID uuid.UUID) (int64, error) {
	res := r.db.WithContext(ctx).Exec("DELETE FROM employees WHERE company_id = ?", companyID)
	return res.RowsAffected, res.Error
}
