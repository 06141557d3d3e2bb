package attendance

import (
	"time"

	attendanceerrors "hrms-lite/internal/attendance/errors"
	"hrms-lite/internal/shared/apperror"
)

var markValidator = apperror.NewValidator()

var markMessages = map[string]string{
	"employee_id.required": "Please select an employee",
	"date.required":        "Date is required",
	"date.datetime":        "Date must be in YYYY-MM-DD format",
	"status.required":      "Status is required",
	"status.oneof":         "Status must be Present or Absent",
}

// ValidateMarkRequest checks a mark request. exists, when non-nil, reports
// whether an employee id is on the roster; a nil exists skips that check.
func ValidateMarkRequest(req MarkAttendanceRequest, exists func(employeeID string) bool) map[string]string {
	req = req.Normalize()
	fields := map[string]string{}
	if err := markValidator.Struct(req); err != nil {
		fields = apperror.FieldErrors(err, markMessages)
	}

	if _, bad := fields["employee_id"]; !bad && exists != nil && !exists(req.EmployeeID) {
		fields["employee_id"] = "Employee does not exist"
	}
	return fields
}

func validateListQuery(q ListQuery) error {
	for _, v := range []string{q.StartDate, q.EndDate} {
		if v == "" {
			continue
		}
		if _, err := time.Parse(DateLayout, v); err != nil {
			return attendanceerrors.ErrInvalidDateFilter
		}
	}
	return nil
}
