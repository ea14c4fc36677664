package employee_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"go-crm/internal/company"
	"go-crm/internal/employee"
	employeeerrors "go-crm/internal/employee/errors"
	"go-crm/internal/flash"
	"go-crm/internal/shared/apperror"
	"go-crm/internal/shared/response"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeService struct {
	ListFn    func(ctx context.Context, companyID string, page int) (employee.ListResponse, response.PaginationMeta, error)
	CreateFn  func(ctx context.Context, form employee.EmployeeForm) (employee.MutationResult, error)
	GetByIDFn func(ctx context.Context, id string) (employee.EmployeeResponse, error)
	UpdateFn  func(ctx context.Context, id string, form employee.EmployeeForm) (employee.MutationResult, error)
	DeleteFn  func(ctx context.Context, id string) (employee.MutationResult, error)
}

func (f *fakeService) List(ctx context.Context, companyID string, page int) (employee.ListResponse, response.PaginationMeta, error) {
	return f.ListFn(ctx, companyID, page)
}
func (f *fakeService) Create(ctx context.Context, form employee.EmployeeForm) (employee.MutationResult, error) {
	return f.CreateFn(ctx, form)
}
func (f *fakeService) GetByID(ctx context.Context, id string) (employee.EmployeeResponse, error) {
	return f.GetByIDFn(ctx, id)
}
func (f *fakeService) Update(ctx context.Context, id string, form employee.EmployeeForm) (employee.MutationResult, error) {
	return f.UpdateFn(ctx, id, form)
}
func (f *fakeService) Delete(ctx context.Context, id string) (employee.MutationResult, error) {
	return f.DeleteFn(ctx, id)
}

type fakeCompanyOptions struct {
	OptionsFn func(ctx context.Context) ([]company.OptionResponse, error)
}

func (f *fakeCompanyOptions) Options(ctx context.Context) ([]company.OptionResponse, error) {
	return f.OptionsFn(ctx)
}

func newHandlerRouter(svc employee.Service, companies employee.CompanyOptions) (*gin.Engine, *httptest.ResponseRecorder) {
	gin.SetMode(gin.TestMode)
	apperror.Init()

	w := httptest.NewRecorder()
	_, r := gin.CreateTestContext(w)

	handler := employee.NewHandler(svc, companies, flash.NewStore(nil))
	r.GET("/employees", handler.List)
	r.POST("/employees", handler.Create)
	r.GET("/employees/create", handler.CreateForm)
	r.GET("/employees/:id/edit", handler.Edit)
	r.PUT("/employees/:id", handler.Update)
	r.DELETE("/employees/:id", handler.Delete)
	return r, w
}

func formRequest(method, target string, fields url.Values) *http.Request {
	req, _ := http.NewRequest(method, target, strings.NewReader(fields.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return req
}

func decodeEnvelope(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var res map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &res))
	return res
}

func TestHandler_ListForwardsCompanyFilter(t *testing.T) {
	companyID := uuid.NewString()
	svc := &fakeService{
		ListFn: func(ctx context.Context, gotCompany string, page int) (employee.ListResponse, response.PaginationMeta, error) {
			assert.Equal(t, companyID, gotCompany)
			assert.Equal(t, 2, page)
			return employee.ListResponse{
				Employees: []employee.EmployeeResponse{{ID: uuid.NewString(), FirstName: "Ann"}},
				Company:   &employee.CompanySummary{ID: companyID, Name: "Acme"},
			}, response.NewPaginationMeta(11, 2, 10), nil
		},
	}
	r, w := newHandlerRouter(svc, &fakeCompanyOptions{})

	req, _ := http.NewRequest(http.MethodGet, "/employees?company_id="+companyID+"&page=2", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	env := decodeEnvelope(t, w)
	assert.Equal(t, true, env["ok"])

	data, ok := env["data"].(map[string]interface{})
	require.True(t, ok)
	companyCtx, ok := data["company"].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "Acme", companyCtx["name"])
}

func TestHandler_ListUnknownCompany(t *testing.T) {
	svc := &fakeService{
		ListFn: func(ctx context.Context, companyID string, page int) (employee.ListResponse, response.PaginationMeta, error) {
			return employee.ListResponse{}, response.PaginationMeta{}, employeeerrors.ErrCompanyNotFound
		},
	}
	r, w := newHandlerRouter(svc, &fakeCompanyOptions{})

	req, _ := http.NewRequest(http.MethodGet, "/employees?company_id="+uuid.NewString(), nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestHandler_CreateForm(t *testing.T) {
	companyID := uuid.NewString()
	companies := &fakeCompanyOptions{
		OptionsFn: func(ctx context.Context) ([]company.OptionResponse, error) {
			return []company.OptionResponse{{ID: companyID, Name: "Acme"}}, nil
		},
	}
	r, w := newHandlerRouter(&fakeService{}, companies)

	req, _ := http.NewRequest(http.MethodGet, "/employees/create?company_id="+companyID, nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	data, ok := decodeEnvelope(t, w)["data"].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, companyID, data["selected_company_id"])

	options, ok := data["companies"].([]interface{})
	require.True(t, ok)
	assert.Len(t, options, 1)
}

func TestHandler_Create(t *testing.T) {
	companyID := uuid.NewString()
	svc := &fakeService{
		CreateFn: func(ctx context.Context, form employee.EmployeeForm) (employee.MutationResult, error) {
			assert.Equal(t, "Ann", form.FirstName)
			assert.Equal(t, "Lee", form.LastName)
			assert.Equal(t, companyID, form.CompanyID)
			return employee.MutationResult{
				Message:  "Employee created successfully!",
				Redirect: "/employees?company_id=" + companyID,
			}, nil
		},
	}
	r, w := newHandlerRouter(svc, &fakeCompanyOptions{})

	req := formRequest(http.MethodPost, "/employees", url.Values{
		"first_name": {"Ann"},
		"last_name":  {"Lee"},
		"company_id": {companyID},
	})
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusCreated, w.Code)
	data, ok := decodeEnvelope(t, w)["data"].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "/employees?company_id="+companyID, data["redirect"])

	cookies := w.Result().Cookies()
	require.NotEmpty(t, cookies)
	assert.Equal(t, flash.CookieName, cookies[0].Name)
}

func TestHandler_CreateValidation(t *testing.T) {
	svc := &fakeService{
		CreateFn: func(ctx context.Context, form employee.EmployeeForm) (employee.MutationResult, error) {
			t.Fatal("an invalid form must not reach the service")
			return employee.MutationResult{}, nil
		},
	}
	r, w := newHandlerRouter(svc, &fakeCompanyOptions{})

	req := formRequest(http.MethodPost, "/employees", url.Values{
		"email": {"not-an-email"},
	})
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	env := decodeEnvelope(t, w)
	assert.Equal(t, false, env["ok"])

	errObj, ok := env["error"].(map[string]interface{})
	require.True(t, ok)
	details, ok := errObj["details"].(map[string]interface{})
	require.True(t, ok)
	assert.Contains(t, details, "first_name")
	assert.Contains(t, details, "last_name")
	assert.Contains(t, details, "company_id")
	assert.Contains(t, details, "email")
}

func TestHandler_Edit(t *testing.T) {
	id := uuid.NewString()
	svc := &fakeService{
		GetByIDFn: func(ctx context.Context, got string) (employee.EmployeeResponse, error) {
			assert.Equal(t, id, got)
			return employee.EmployeeResponse{ID: id, FirstName: "Ann"}, nil
		},
	}
	companies := &fakeCompanyOptions{
		OptionsFn: func(ctx context.Context) ([]company.OptionResponse, error) {
			return []company.OptionResponse{{ID: uuid.NewString(), Name: "Acme"}}, nil
		},
	}
	r, w := newHandlerRouter(svc, companies)

	req, _ := http.NewRequest(http.MethodGet, "/employees/"+id+"/edit", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	data, ok := decodeEnvelope(t, w)["data"].(map[string]interface{})
	require.True(t, ok)
	assert.Contains(t, data, "employee")
	assert.Contains(t, data, "companies")
}

func TestHandler_UpdateNotFound(t *testing.T) {
	svc := &fakeService{
		UpdateFn: func(ctx context.Context, id string, form employee.EmployeeForm) (employee.MutationResult, error) {
			return employee.MutationResult{}, employeeerrors.ErrEmployeeNotFound
		},
	}
	r, w := newHandlerRouter(svc, &fakeCompanyOptions{})

	req := formRequest(http.MethodPut, "/employees/"+uuid.NewString(), url.Values{
		"first_name": {"Ann"},
		"last_name":  {"Lee"},
		"company_id": {uuid.NewString()},
	})
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestHandler_Delete(t *testing.T) {
	id := uuid.NewString()
	companyID := uuid.NewString()
	svc := &fakeService{
		DeleteFn: func(ctx context.Context, got string) (employee.MutationResult, error) {
			assert.Equal(t, id, got)
			return employee.MutationResult{
				Message:  "Employee deleted successfully!",
				Redirect: "/employees?company_id=" + companyID,
			}, nil
		},
	}
	r, w := newHandlerRouter(svc, &fakeCompanyOptions{})

	req, _ := http.NewRequest(http.MethodDelete, "/employees/"+id, nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	data, ok := decodeEnvelope(t, w)["data"].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "Employee deleted successfully!", data["message"])
	assert.Equal(t, "/employees?company_id="+companyID, data["redirect"])
}
