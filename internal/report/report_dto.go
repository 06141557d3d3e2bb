package report

import (
	"strings"

	"hrms-lite/internal/shared/apperror"
)

type SummaryFilter struct {
	StartDate  string `form:"start_date" json:"start_date" validate:"omitempty,datetime=2006-01-02"`
	EndDate    string `form:"end_date" json:"end_date" validate:"omitempty,datetime=2006-01-02"`
	EmployeeID string `form:"employee_id" json:"employee_id"`
}

type DashboardQuery struct {
	Date string `form:"date" json:"date" validate:"omitempty,datetime=2006-01-02"`
}

var queryValidator = apperror.NewValidator()

var queryMessages = map[string]string{
	"start_date.datetime": "start_date must be in YYYY-MM-DD format",
	"end_date.datetime":   "end_date must be in YYYY-MM-DD format",
	"date.datetime":       "date must be in YYYY-MM-DD format",
}

func (f SummaryFilter) normalize() SummaryFilter {
	return SummaryFilter{
		StartDate:  strings.TrimSpace(f.StartDate),
		EndDate:    strings.TrimSpace(f.EndDate),
		EmployeeID: strings.TrimSpace(f.EmployeeID),
	}
}

func (f SummaryFilter) cacheField() string {
	return "summary:" + f.StartDate + "|" + f.EndDate + "|" + f.EmployeeID
}

func validateQuery(v any) error {
	if err := queryValidator.Struct(v); err != nil {
		return apperror.Validation(apperror.FieldErrors(err, queryMessages))
	}
	return nil
}
