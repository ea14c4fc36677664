package company

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	companyerrors "go-crm/internal/company/errors"
	"go-crm/internal/events"
	"go-crm/internal/shared/apperror"
	"go-crm/internal/shared/contextutil"
	"go-crm/internal/shared/response"
	"go-crm/internal/storage"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
	"gorm.io/gorm"
)

const (
	// PageSize is the fixed listing page size.
	PageSize = 10

	// MaxLogoBytes caps uploaded logos at 2 MiB.
	MaxLogoBytes = 2 << 20

	logoNamespace   = "company-logos"
	optionsCacheKey = "companies:options"
	optionsCacheTTL = 1 * time.Hour
)

// allowedLogoTypes maps accepted logo content types to the stored extension.
var allowedLogoTypes = map[string]string{
	"image/jpeg":    ".jpg",
	"image/jpg":     ".jpg",
	"image/png":     ".png",
	"image/gif":     ".gif",
	"image/svg+xml": ".svg",
}

type Service interface {
	List(ctx context.Context, page int) ([]CompanyResponse, response.PaginationMeta, error)
	Create(ctx context.Context, form CompanyForm, logo *LogoUpload) (MutationResult, error)
	GetByID(ctx context.Context, id string) (CompanyResponse, error)
	Options(ctx context.Context) ([]OptionResponse, error)
	Update(ctx context.Context, id string, form CompanyForm, logo *LogoUpload) (MutationResult, error)
	Delete(ctx context.Context, id string) (MutationResult, error)
}

type service struct {
	db        *gorm.DB
	repo      Repository
	store     storage.Storage
	publisher events.Publisher
	rdb       *redis.Client
	sf        *singleflight.Group
	logger    *zap.Logger
}

func NewService(
	db *gorm.DB,
	repo Repository,
	store storage.Storage,
	publisher events.Publisher,
	rdb *redis.Client,
	logger ...*zap.Logger,
) Service {
	l := zap.L().Named("company.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("company.service")
	}
	return &service{
		db:        db,
		repo:      repo,
		store:     store,
		publisher: publisher,
		rdb:       rdb,
		sf:        &singleflight.Group{},
		logger:    l,
	}
}

func (s *service) List(ctx context.Context, page int) ([]CompanyResponse, response.PaginationMeta, error) {
	if page < 1 {
		page = 1
	}

	companies, total, err := s.repo.FindPage(ctx, page, PageSize)
	if err != nil {
		s.logger.Error("list companies failed", zap.Error(err))
		return nil, response.PaginationMeta{}, mapRepositoryError(err)
	}

	meta := response.NewPaginationMeta(total, page, PageSize)
	return s.mapToListResponse(companies), meta, nil
}

func (s *service) Create(ctx context.Context, form CompanyForm, logo *LogoUpload) (MutationResult, error) {
	rid := contextutil.GetRequestID(ctx)
	s.logger.Debug("create company requested",
		zap.String("request_id", rid),
		zap.String("name", form.Name),
		zap.Bool("has_logo", logo != nil),
	)

	if err := validateLogo(logo); err != nil {
		return MutationResult{}, err
	}

	comp := &Company{
		ID:      uuid.New(),
		Name:    form.Name,
		Email:   form.Email,
		Website: form.Website,
	}

	// The file lands in storage before the row is written; a failed insert
	// compensates by removing the file again so no orphan survives.
	if logo != nil {
		path := logoPath(logo)
		if err := s.store.Put(ctx, path, logo.Content); err != nil {
			s.logger.Error("store company logo failed", zap.String("request_id", rid), zap.Error(err))
			return MutationResult{}, apperror.Wrap(err,
				companyerrors.ErrLogoStorageFailed.Code,
				companyerrors.ErrLogoStorageFailed.Message,
				companyerrors.ErrLogoStorageFailed.HTTPStatus,
			)
		}
		comp.Logo = path
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return s.repo.WithTx(tx).Create(ctx, comp)
	})
	if err != nil {
		if comp.Logo != "" {
			s.removeFile(ctx, comp.Logo)
		}
		s.logger.Error("create company persist failed", zap.String("request_id", rid), zap.Error(err))
		return MutationResult{}, mapRepositoryError(err)
	}

	s.invalidateOptions(ctx)
	s.publish(ctx, events.CompanyCreated, comp.ID)
	s.logger.Info("create company success",
		zap.String("request_id", rid),
		zap.String("company_id", comp.ID.String()),
	)

	resp := s.mapToResponse(*comp)
	return MutationResult{
		Company:  &resp,
		Message:  "Company created successfully!",
		Redirect: "/companies",
	}, nil
}

func (s *service) GetByID(ctx context.Context, id string) (CompanyResponse, error) {
	companyID, err := uuid.Parse(id)
	if err != nil {
		return CompanyResponse{}, companyerrors.ErrInvalidCompanyID
	}

	comp, err := s.repo.FindByID(ctx, companyID)
	if err != nil {
		s.logger.Error("get company by id failed", zap.String("company_id", id), zap.Error(err))
		return CompanyResponse{}, mapRepositoryError(err)
	}

	return s.mapToResponse(*comp), nil
}

func (s *service) Options(ctx context.Context) ([]OptionResponse, error) {
	if s.rdb != nil {
		if cached, err := s.rdb.Get(ctx, optionsCacheKey).Result(); err == nil {
			var resp []OptionResponse
			if json.Unmarshal([]byte(cached), &resp) == nil {
				return resp, nil
			}
		}
	}

	// Singleflight collapses the stampede when many form renders miss at once.
	v, err, _ := s.sf.Do(optionsCacheKey, func() (interface{}, error) {
		companies, err := s.repo.FindOptions(ctx)
		if err != nil {
			return nil, mapRepositoryError(err)
		}

		resp := make([]OptionResponse, len(companies))
		for i, c := range companies {
			resp[i] = OptionResponse{ID: c.ID.String(), Name: c.Name}
		}

		if s.rdb != nil {
			if jsonData, err := json.Marshal(resp); err == nil {
				s.rdb.Set(ctx, optionsCacheKey, jsonData, optionsCacheTTL)
			}
		}

		return resp, nil
	})
	if err != nil {
		return nil, err
	}

	return v.([]OptionResponse), nil
}

func (s *service) Update(ctx context.Context, id string, form CompanyForm, logo *LogoUpload) (MutationResult, error) {
	rid := contextutil.GetRequestID(ctx)
	s.logger.Debug("update company requested",
		zap.String("request_id", rid),
		zap.String("company_id", id),
		zap.Bool("has_logo", logo != nil),
	)

	companyID, err := uuid.Parse(id)
	if err != nil {
		return MutationResult{}, companyerrors.ErrInvalidCompanyID
	}

	if err := validateLogo(logo); err != nil {
		return MutationResult{}, err
	}

	comp, err := s.repo.FindByID(ctx, companyID)
	if err != nil {
		return MutationResult{}, mapRepositoryError(err)
	}

	oldLogo := comp.Logo
	newLogo := ""
	if logo != nil {
		newLogo = logoPath(logo)
		if err := s.store.Put(ctx, newLogo, logo.Content); err != nil {
			s.logger.Error("store company logo failed", zap.String("request_id", rid), zap.Error(err))
			return MutationResult{}, apperror.Wrap(err,
				companyerrors.ErrLogoStorageFailed.Code,
				companyerrors.ErrLogoStorageFailed.Message,
				companyerrors.ErrLogoStorageFailed.HTTPStatus,
			)
		}
		comp.Logo = newLogo
	}

	comp.Name = form.Name
	comp.Email = form.Email
	comp.Website = form.Website

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return s.repo.WithTx(tx).Update(ctx, comp)
	})
	if err != nil {
		// The row still points at the old file; drop the new one.
		if newLogo != "" {
			s.removeFile(ctx, newLogo)
		}
		s.logger.Error("update company persist failed", zap.String("request_id", rid), zap.Error(err))
		return MutationResult{}, mapRepositoryError(err)
	}

	// Only after the commit is the previous file dead; a company never has
	// more than one live logo past this point.
	if newLogo != "" && oldLogo != "" && oldLogo != newLogo {
		s.removeFile(ctx, oldLogo)
	}

	s.invalidateOptions(ctx)
	s.publish(ctx, events.CompanyUpdated, comp.ID)
	s.logger.Info("update company success",
		zap.String("request_id", rid),
		zap.String("company_id", comp.ID.String()),
	)

	resp := s.mapToResponse(*comp)
	return MutationResult{
		Company:  &resp,
		Message:  "Company updated successfully!",
		Redirect: "/companies",
	}, nil
}

func (s *service) Delete(ctx context.Context, id string) (MutationResult, error) {
	rid := contextutil.GetRequestID(ctx)
	s.logger.Debug("delete company requested",
		zap.String("request_id", rid),
		zap.String("company_id", id),
	)

	companyID, err := uuid.Parse(id)
	if err != nil {
		return MutationResult{}, companyerrors.ErrInvalidCompanyID
	}

	comp, err := s.repo.FindByID(ctx, companyID)
	if err != nil {
		return MutationResult{}, mapRepositoryError(err)
	}

	// The logo goes first; a file that is already gone is a no-op, any other
	// storage failure aborts before the rows are touched.
	if comp.Logo != "" {
		if err := s.store.Delete(ctx, comp.Logo); err != nil && !errors.Is(err, storage.ErrNotExist) {
			s.logger.Error("delete company logo failed",
				zap.String("request_id", rid),
				zap.String("logo", comp.Logo),
				zap.Error(err),
			)
			return MutationResult{}, apperror.Wrap(err,
				companyerrors.ErrLogoCleanupFailed.Code,
				companyerrors.ErrLogoCleanupFailed.Message,
				companyerrors.ErrLogoCleanupFailed.HTTPStatus,
			)
		}
	}

	// Employees and the company row fall in one transaction, so an employee
	// can never outlive its company.
	var removed int64
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		qtx := s.repo.WithTx(tx)
		n, err := qtx.DeleteEmployeesByCompany(ctx, companyID)
		if err != nil {
			return err
		}
		removed = n
		return qtx.Delete(ctx, companyID)
	})
	if err != nil {
		s.logger.Error("delete company persist failed", zap.String("request_id", rid), zap.Error(err))
		return MutationResult{}, mapRepositoryError(err)
	}

	s.invalidateOptions(ctx)
	s.publish(ctx, events.CompanyDeleted, companyID)
	s.logger.Info("delete company success",
		zap.String("request_id", rid),
		zap.String("company_id", id),
		zap.Int64("employees_removed", removed),
	)

	return MutationResult{
		Message:  "Company deleted successfully!",
		Redirect: "/companies",
	}, nil
}

func (s *service) publish(ctx context.Context, eventType events.Type, companyID uuid.UUID) {
	if s.publisher == nil {
		return
	}
	s.publisher.Publish(ctx, events.Event{
		EventType: eventType,
		RequestID: contextutil.GetRequestID(ctx),
		EntityID:  companyID.String(),
		CompanyID: companyID.String(),
	})
}

func (s *service) invalidateOptions(ctx context.Context) {
	if s.rdb == nil {
		return
	}
	if err := s.rdb.Del(ctx, optionsCacheKey).Err(); err != nil {
		s.logger.Warn("invalidate company options cache failed", zap.Error(err))
	}
}

// removeFile is best-effort compensation; failures are logged, not returned.
func (s *service) removeFile(ctx context.Context, path string) {
	if err := s.store.Delete(ctx, path); err != nil && !errors.Is(err, storage.ErrNotExist) {
		s.logger.Warn("remove stored logo failed", zap.String("path", path), zap.Error(err))
	}
}

func validateLogo(logo *LogoUpload) error {
	if logo == nil {
		return nil
	}
	if _, ok := allowedLogoTypes[logo.ContentType]; !ok {
		return apperror.Validation(map[string]string{
			"logo": "Logo must be a jpeg, png, jpg, gif or svg image",
		})
	}
	if logo.Size > MaxLogoBytes {
		return apperror.Validation(map[string]string{
			"logo": "Logo may not be larger than 2 MiB",
		})
	}
	return nil
}

func logoPath(logo *LogoUpload) string {
	return fmt.Sprintf("%s/%s%s", logoNamespace, uuid.NewString(), allowedLogoTypes[logo.ContentType])
}

func (s *service) mapToResponse(comp Company) CompanyResponse {
	resp := CompanyResponse{
		ID:        comp.ID.String(),
		Name:      comp.Name,
		Email:     comp.Email,
		Website:   comp.Website,
		Logo:      comp.Logo,
		CreatedAt: comp.CreatedAt.UTC().Format(time.RFC3339),
		UpdatedAt: comp.UpdatedAt.UTC().Format(time.RFC3339),
	}
	if comp.Logo != "" && s.store != nil {
		resp.LogoURL = s.store.URL(comp.Logo)
	}
	return resp
}

func (s *service) mapToListResponse(companies []Company) []CompanyResponse {
	res := make([]CompanyResponse, len(companies))
	for i, c := range companies {
		res[i] = s.mapToResponse(c)
	}
	return res
}
