package reporterrors

import (
	"net/http"

	"hrms-lite/internal/shared/apperror"
)

var (
	// ErrSourceUnavailable means the roster or the record set could not be
	// read. Nothing partial is returned; callers may retry.
	ErrSourceUnavailable = apperror.New(
		apperror.CodeServiceUnavailable,
		"Attendance data is temporarily unavailable, please retry",
		http.StatusServiceUnavailable,
	)
)
