package employee

import (
	"errors"

	employeeerrors "go-crm/internal/employee/errors"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

func mapRepositoryError(err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return employeeerrors.ErrEmployeeNotFound
	}

	// 23503: foreign_key_violation. The service checks company_id up front
	// inside the tx, but a concurrent company delete can still race it.
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23503" {
		return employeeerrors.CompanyDoesNotExist()
	}

	return err
}
