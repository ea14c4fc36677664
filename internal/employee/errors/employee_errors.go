package employeeerrors

import (
	"net/http"

	"go-crm/internal/shared/apperror"
)

var (
	ErrEmployeeNotFound = apperror.New(
		apperror.CodeNotFound,
		"Employee not found",
		http.StatusNotFound,
	)
	ErrCompanyNotFound = apperror.New(
		apperror.CodeNotFound,
		"Company not found",
		http.StatusNotFound,
	)
	ErrInvalidEmployeeID = apperror.New(
		apperror.CodeInvalidInput,
		"Invalid employee ID",
		http.StatusBadRequest,
	)
)

// CompanyDoesNotExist is the validation failure for a dangling company_id:
// a client error on the form, never a runtime fault.
func CompanyDoesNotExist() error {
	return apperror.Validation(map[string]string{
		"company_id": "The selected company does not exist",
	})
}
