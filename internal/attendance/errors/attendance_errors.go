package attendanceerrors

import (
	"net/http"

	"hrms-lite/internal/shared/apperror"
)

var (
	ErrEmployeeNotFound = apperror.New(
		apperror.CodeNotFound,
		"Employee not found",
		http.StatusNotFound,
	)
	ErrAttendanceAlreadyMarked = apperror.New(
		apperror.CodeConflict,
		"Attendance for this employee and date was marked concurrently, please retry",
		http.StatusConflict,
	)
	ErrInvalidDateFilter = apperror.New(
		apperror.CodeInvalidInput,
		"start_date and end_date must be in YYYY-MM-DD format",
		http.StatusBadRequest,
	)
)
