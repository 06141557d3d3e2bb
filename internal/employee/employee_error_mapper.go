package employee

import (
	"errors"
	"strings"

	employeeerrors "hrms-lite/internal/employee/errors"

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

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		if pgErr.Code == "23505" {
			switch pgErr.ConstraintName {
			case "uq_employee_employee_id":
				return employeeerrors.ErrEmployeeIDAlreadyExists
			case "uq_employee_email":
				return employeeerrors.ErrEmailAlreadyExists
			}
		}
	}

	errMsg := strings.ToLower(err.Error())
	if strings.Contains(errMsg, "duplicate key value") && strings.Contains(errMsg, "uq_employee_employee_id") {
		return employeeerrors.ErrEmployeeIDAlreadyExists
	}
	if strings.Contains(errMsg, "duplicate key value") && strings.Contains(errMsg, "uq_employee_email") {
		return employeeerrors.ErrEmailAlreadyExists
	}
	// sqlite reports the column rather than the index name.
	if strings.Contains(errMsg, "unique constraint failed: employees.employee_id") {
		return employeeerrors.ErrEmployeeIDAlreadyExists
	}
	if strings.Contains(errMsg, "unique constraint failed: employees.email") {
		return employeeerrors.ErrEmailAlreadyExists
	}

	return err
}
