package attendance

import (
	"errors"
	"strings"

	attendanceerrors "hrms-lite/internal/attendance/errors"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

func mapRepositoryError(err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return attendanceerrors.ErrEmployeeNotFound
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" && pgErr.ConstraintName == "uq_attendance_employee_date" {
		return attendanceerrors.ErrAttendanceAlreadyMarked
	}

	errMsg := strings.ToLower(err.Error())
	if strings.Contains(errMsg, "duplicate key value") && strings.Contains(errMsg, "uq_attendance_employee_date") {
		return attendanceerrors.ErrAttendanceAlreadyMarked
	}
	if strings.Contains(errMsg, "unique constraint failed: attendances.employee_id, attendances.attendance_date") {
		return attendanceerrors.ErrAttendanceAlreadyMarked
	}

	return err
}
