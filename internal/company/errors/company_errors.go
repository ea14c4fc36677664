package companyerrors

import (
	"net/http"

	"go-crm/internal/shared/apperror"
)

var (
	ErrCompanyNotFound = apperror.New(
		apperror.CodeNotFound,
		"Company not found",
		http.StatusNotFound,
	)
	ErrInvalidCompanyID = apperror.New(
		apperror.CodeInvalidInput,
		"Invalid company ID",
		http.StatusBadRequest,
	)
	ErrLogoStorageFailed = apperror.New(
		apperror.CodeStorageFailure,
		"Failed to store company logo",
		http.StatusInternalServerError,
	)
	ErrLogoCleanupFailed = apperror.New(
		apperror.CodeStorageFailure,
		"Failed to remove company logo",
		http.StatusInternalServerError,
	)
)
