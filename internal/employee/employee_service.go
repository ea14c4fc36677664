package employee

import (
	"context"

	employeeerrors "go-crm/internal/employee/errors"
	"go-crm/internal/events"
	"go-crm/internal/shared/contextutil"
	"go-crm/internal/shared/response"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// PageSize is the fixed listing page size.
const PageSize = 10

type Service interface {
	List(ctx context.Context, companyID string, page int) (ListResponse, response.PaginationMeta, error)
	Create(ctx context.Context, form EmployeeForm) (MutationResult, error)
	GetByID(ctx context.Context, id string) (EmployeeResponse, error)
	Update(ctx context.Context, id string, form EmployeeForm) (MutationResult, error)
	Delete(ctx context.Context, id string) (MutationResult, error)
}

type service struct {
	db        *gorm.DB
	repo      Repository
	publisher events.Publisher
	logger    *zap.Logger
}

func NewService(db *gorm.DB, repo Repository, publisher events.Publisher, logger ...*zap.Logger) Service {
	l := zap.L().Named("employee.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("employee.service")
	}
	return &service{db: db, repo: repo, publisher: publisher, logger: l}
}

func (s *service) List(ctx context.Context, companyID string, page int) (ListResponse, response.PaginationMeta, error) {
	if page < 1 {
		page = 1
	}

	var filter *uuid.UUID
	var companyCtx *CompanySummary

	if companyID != "" {
		id, err := uuid.Parse(companyID)
		if err != nil {
			return ListResponse{}, response.PaginationMeta{}, employeeerrors.ErrCompanyNotFound
		}

		ref, err := s.repo.FindCompanyRef(ctx, id)
		if err != nil {
			s.logger.Warn("list employees company filter unresolved",
				zap.String("company_id", companyID), zap.Error(err))
			return ListResponse{}, response.PaginationMeta{}, mapCompanyLookupError(err)
		}

		filter = &id
		companyCtx = &CompanySummary{ID: ref.ID.String(), Name: ref.Name}
	}

	employees, total, err := s.repo.FindPage(ctx, filter, page, PageSize)
	if err != nil {
		s.logger.Error("list employees failed", zap.Error(err))
		return ListResponse{}, response.PaginationMeta{}, mapRepositoryError(err)
	}

	meta := response.NewPaginationMeta(total, page, PageSize)
	return ListResponse{
		Employees: mapToListResponse(employees),
		Company:   companyCtx,
	}, meta, nil
}

func (s *service) Create(ctx context.Context, form EmployeeForm) (MutationResult, error) {
	rid := contextutil.GetRequestID(ctx)
	s.logger.Debug("create employee requested",
		zap.String("request_id", rid),
		zap.String("company_id", form.CompanyID),
	)

	companyID, err := uuid.Parse(form.CompanyID)
	if err != nil {
		return MutationResult{}, employeeerrors.CompanyDoesNotExist()
	}

	empl := &Employee{
		ID:        uuid.New(),
		CompanyID: companyID,
		FirstName: form.FirstName,
		LastName:  form.LastName,
		Email:     form.Email,
		Phone:     form.Phone,
	}

	// The existence check and the insert share a tx so the referenced
	// company is live at write time.
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		qtx := s.repo.WithTx(tx)

		exists, err := qtx.CompanyExists(ctx, companyID)
		if err != nil {
			return err
		}
		if !exists {
			return employeeerrors.CompanyDoesNotExist()
		}

		return qtx.Create(ctx, empl)
	})
	if err != nil {
		s.logger.Error("create employee persist failed", zap.String("request_id", rid), zap.Error(err))
		return MutationResult{}, mapRepositoryError(err)
	}

	s.publish(ctx, events.EmployeeCreated, empl)
	s.logger.Info("create employee success",
		zap.String("request_id", rid),
		zap.String("employee_id", empl.ID.String()),
	)

	resp := mapToResponse(*empl)
	return MutationResult{
		Employee: &resp,
		Message:  "Employee created successfully!",
		Redirect: listingRoute(companyID),
	}, nil
}

func (s *service) GetByID(ctx context.Context, id string) (EmployeeResponse, error) {
	employeeID, err := uuid.Parse(id)
	if err != nil {
		return EmployeeResponse{}, employeeerrors.ErrInvalidEmployeeID
	}

	empl, err := s.repo.FindByID(ctx, employeeID)
	if err != nil {
		s.logger.Error("get employee by id failed", zap.String("employee_id", id), zap.Error(err))
		return EmployeeResponse{}, mapRepositoryError(err)
	}

	return mapToResponse(*empl), nil
}

func (s *service) Update(ctx context.Context, id string, form EmployeeForm) (MutationResult, error) {
	rid := contextutil.GetRequestID(ctx)
	s.logger.Debug("update employee requested",
		zap.String("request_id", rid),
		zap.String("employee_id", id),
		zap.String("company_id", form.CompanyID),
	)

	employeeID, err := uuid.Parse(id)
	if err != nil {
		return MutationResult{}, employeeerrors.ErrInvalidEmployeeID
	}

	companyID, err := uuid.Parse(form.CompanyID)
	if err != nil {
		return MutationResult{}, employeeerrors.CompanyDoesNotExist()
	}

	var empl *Employee
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		qtx := s.repo.WithTx(tx)

		exists, err := qtx.CompanyExists(ctx, companyID)
		if err != nil {
			return err
		}
		if !exists {
			return employeeerrors.CompanyDoesNotExist()
		}

		empl, err = qtx.FindByID(ctx, employeeID)
		if err != nil {
			return err
		}

		empl.CompanyID = companyID
		empl.FirstName = form.FirstName
		empl.LastName = form.LastName
		empl.Email = form.Email
		empl.Phone = form.Phone
		empl.Company = nil

		return qtx.Update(ctx, empl)
	})
	if err != nil {
		s.logger.Error("update employee persist failed", zap.String("request_id", rid), zap.Error(err))
		return MutationResult{}, mapRepositoryError(err)
	}

	s.publish(ctx, events.EmployeeUpdated, empl)
	s.logger.Info("update employee success",
		zap.String("request_id", rid),
		zap.String("employee_id", id),
	)

	resp := mapToResponse(*empl)
	return MutationResult{
		Employee: &resp,
		Message:  "Employee updated successfully!",
		Redirect: listingRoute(companyID),
	}, nil
}

func (s *service) Delete(ctx context.Context, id string) (MutationResult, error) {
	rid := contextutil.GetRequestID(ctx)
	s.logger.Debug("delete employee requested",
		zap.String("request_id", rid),
		zap.String("employee_id", id),
	)

	employeeID, err := uuid.Parse(id)
	if err != nil {
		return MutationResult{}, employeeerrors.ErrInvalidEmployeeID
	}

	// The owning company is captured before the row goes, so the caller
	// lands back on the company-scoped listing it came from.
	empl, err := s.repo.FindByID(ctx, employeeID)
	if err != nil {
		return MutationResult{}, mapRepositoryError(err)
	}
	companyID := empl.CompanyID

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return s.repo.WithTx(tx).Delete(ctx, employeeID)
	})
	if err != nil {
		s.logger.Error("delete employee persist failed", zap.String("request_id", rid), zap.Error(err))
		return MutationResult{}, mapRepositoryError(err)
	}

	s.publish(ctx, events.EmployeeDeleted, empl)
	s.logger.Info("delete employee success",
		zap.String("request_id", rid),
		zap.String("employee_id", id),
	)

	return MutationResult{
		Message:  "Employee deleted successfully!",
		Redirect: listingRoute(companyID),
	}, nil
}

func (s *service) publish(ctx context.Context, eventType events.Type, empl *Employee) {
	if s.publisher == nil {
		return
	}
	s.publisher.Publish(ctx, events.Event{
		EventType: eventType,
		RequestID: contextutil.GetRequestID(ctx),
		EntityID:  empl.ID.String(),
		CompanyID: empl.CompanyID.String(),
	})
}

func mapCompanyLookupError(err error) error {
	mapped := mapRepositoryError(err)
	if mapped == employeeerrors.ErrEmployeeNotFound {
		return employeeerrors.ErrCompanyNotFound
	}
	return mapped
}

func listingRoute(companyID uuid.UUID) string {
	return "/employees?company_id=" + companyID.String()
}

func mapToResponse(empl Employee) EmployeeResponse {
	resp := EmployeeResponse{
		ID:        empl.ID.String(),
		FirstName: empl.FirstName,
		LastName:  empl.LastName,
		CompanyID: empl.CompanyID.String(),
		Email:     empl.Email,
		Phone:     empl.Phone,
	}
	if empl.Company != nil {
		resp.Company = &CompanySummary{
			ID:   empl.Company.ID.String(),
			Name: empl.Company.Name,
		}
	}
	return resp
}

func mapToListResponse(employees []Employee) []EmployeeResponse {
	res := make([]EmployeeResponse, len(employees))
	for i, e := range employees {
		res[i] = mapToResponse(e)
	}
	return res
}
