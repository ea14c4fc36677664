package company

import (
	"io"
	"net/http"
	"strconv"

	"go-crm/internal/flash"
	"go-crm/internal/shared/apperror"
	"go-crm/internal/shared/response"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type Handler struct {
	service Service
	flash   *flash.Store
	logger  *zap.Logger
}

func NewHandler(service Service, flashStore *flash.Store, logger ...*zap.Logger) *Handler {
	l := zap.L().Named("company.handler")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("company.handler")
	}
	return &Handler{service: service, flash: flashStore, logger: l}
}

func (h *Handler) writeServiceError(c *gin.Context, err error) {
	httpErr := apperror.ToHTTP(err)
	h.logger.Warn("company request failed",
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

// bindLogo pulls the optional logo part out of the multipart form. A missing
// part is not an error; the company simply keeps no (or its previous) logo.
func (h *Handler) bindLogo(c *gin.Context) (*LogoUpload, error) {
	header, err := c.FormFile("logo")
	if err != nil {
		return nil, nil
	}

	file, err := header.Open()
	if err != nil {
		return nil, err
	}
	defer file.Close()

	content, err := io.ReadAll(file)
	if err != nil {
		return nil, err
	}

	return &LogoUpload{
		Filename:    header.Filename,
		ContentType: header.Header.Get("Content-Type"),
		Size:        header.Size,
		Content:     content,
	}, nil
}

func (h *Handler) List(c *gin.Context) {
	ctx := c.Request.Context()

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	if page < 1 {
		page = 1
	}

	companies, meta, err := h.service.List(ctx, page)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	resp := ListResponse{
		Companies: companies,
		Flash:     h.popFlash(c),
	}
	response.Success(c, http.StatusOK, resp, &meta)
}

// CreateForm backs the create page; the only server-side state the form
// needs is the upload constraints.
func (h *Handler) CreateForm(c *gin.Context) {
	response.Success(c, http.StatusOK, gin.H{
		"logo_max_bytes":     MaxLogoBytes,
		"logo_content_types": logoContentTypes(),
	}, nil)
}

func (h *Handler) Create(c *gin.Context) {
	ctx := c.Request.Context()

	var form CompanyForm
	if err := c.ShouldBind(&form); err != nil {
		h.logger.Warn("create company validation failed", zap.Error(err))
		h.writeServiceError(c, apperror.MapValidationError(err))
		return
	}

	logo, err := h.bindLogo(c)
	if err != nil {
		h.logger.Warn("read company logo failed", zap.Error(err))
		h.writeServiceError(c, apperror.ErrInvalidInput)
		return
	}

	result, err := h.service.Create(ctx, form, logo)
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

	resp, err := h.service.GetByID(ctx, id)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) Options(c *gin.Context) {
	resp, err := h.service.Options(c.Request.Context())
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) Update(c *gin.Context) {
	ctx := c.Request.Context()
	id := c.Param("id")

	var form CompanyForm
	if err := c.ShouldBind(&form); err != nil {
		h.logger.Warn("update company validation failed", zap.String("company_id", id), zap.Error(err))
		h.writeServiceError(c, apperror.MapValidationError(err))
		return
	}

	logo, err := h.bindLogo(c)
	if err != nil {
		h.logger.Warn("read company logo failed", zap.Error(err))
		h.writeServiceError(c, apperror.ErrInvalidInput)
		return
	}

	result, err := h.service.Update(ctx, id, form, logo)
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

func logoContentTypes() []string {
	types := make([]string, 0, len(allowedLogoTypes))
	for ct := range allowedLogoTypes {
		types = append(types, ct)
	}
	return types
}
