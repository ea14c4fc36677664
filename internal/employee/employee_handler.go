package employee

import (
	"context"
	"net/http"
	"strconv"

	"go-crm/internal/company"
	"go-crm/internal/flash"
	"go-crm/internal/shared/apperror"
	"go-crm/internal/shared/response"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// CompanyOptions is the slice of the company service the forms need: the
// id/name list for the company dropdown.
type CompanyOptions interface {
	Options(ctx context.Context) ([]company.OptionResponse, error)
}

type Handler struct {
	service   Service
	companies CompanyOptions
	flash     *flash.Store
	logger    *zap.Logger
}

func NewHandler(service Service, companies CompanyOptions, flashStore *flash.Store, logger ...*zap.Logger) *Handler {
	l := zap.L().Named("employee.handler")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("employee.handler")
	}
	return &Handler{service: service, companies: companies, flash: flashStore, logger: l}
}

func (h *Handler) writeServiceError(c *gin.Context, err error) {
	httpErr := apperror.ToHTTP(err)
	h.logger.Warn("employee request failed",
		zap.String("method", c.Request.Method),
		zap.String("path", c.FullPath()),
		zap.Int("status", httpErr.Status),
		zap.String("code", httpErr.Code),
		zap.String("message", httpErr.Message),
	)
	response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, httpErr.Details)
}

func (h *Handler) setFlash(c *gin.Context, message string) {
	token, err := c.Cookie(flash.CookieName)
	if err != nil || token == "" {
		token = uuid.NewString()
	}
	h.flash.Set(c.Request.Context(), token, message)
	c.SetCookie(flash.CookieName, token, int(flash.TTL.Seconds()), "/", "", false, true)
}

func (h *Handler) popFlash(c *gin.Context) string {
	token, err := c.Cookie(flash.CookieName)
	if err != nil || token == "" {
		return ""
	}
	return h.flash.Pop(c.Request.Context(), token)
}

func (h *Handler) List(c *gin.Context) {
	ctx := c.Request.Context()
	companyID := c.Query("company_id")

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	if page < 1 {
		page = 1
	}

	resp, meta, err := h.service.List(ctx, companyID, page)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	resp.Flash = h.popFlash(c)
	response.Success(c, http.StatusOK, resp, &meta)
}

// CreateForm backs the create page: the company dropdown plus the
// preselected company carried in from a filtered listing.
func (h *Handler) CreateForm(c *gin.Context) {
	options, err := h.companies.Options(c.Request.Context())
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{
		"companies":           options,
		"selected_company_id": c.Query("company_id"),
	}, nil)
}

func (h *Handler) Create(c *gin.Context) {
	ctx := c.Request.Context()

	var form EmployeeForm
	if err := c.ShouldBind(&form); err != nil {
		h.logger.Warn("create employee validation failed", zap.Error(err))
		h.writeServiceError(c, apperror.MapValidationError(err))
		return
	}

	result, err := h.service.Create(ctx, form)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	h.setFlash(c, result.Message)
	response.Success(c, http.StatusCreated, result, nil)
}

func (h *Handler) Edit(c *gin.Context) {
	ctx := c.Request.Context()
	id := c.Param("id")

	empl, err := h.service.GetByID(ctx, id)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	options, err := h.companies.Options(ctx)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{
		"employee":  empl,
		"companies": options,
	}, nil)
}

func (h *Handler) Update(c *gin.Context) {
	ctx := c.Request.Context()
	id := c.Param("id")

	var form EmployeeForm
	if err := c.ShouldBind(&form); err != nil {
		h.logger.Warn("update employee validation failed", zap.String("employee_id", id), zap.Error(err))
		h.writeServiceError(c, apperror.MapValidationError(err))
		return
	}

	result, err := h.service.Update(ctx, id, form)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	h.setFlash(c, result.Message)
	response.Success(c, http.StatusOK, result, nil)
}

func (h *Handler) Delete(c *gin.Context) {
	ctx := c.Request.Context()
	id := c.Param("id")

	result, err := h.service.Delete(ctx, id)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	h.setFlash(c, result.Message)
	response.Success(c, http.StatusOK, result, nil)
}
