package attendance

import "strings"

type MarkAttendanceRequest struct {
	EmployeeID string `json:"employee_id" validate:"required"`
	Date       string `json:"date" validate:"required,datetime=2006-01-02"`
	Status     string `json:"status" validate:"required,oneof=Present Absent"`
}

func (r MarkAttendanceRequest) Normalize() MarkAttendanceRequest {
	return MarkAttendanceRequest{
		EmployeeID: strings.TrimSpace(r.EmployeeID),
		Date:       strings.TrimSpace(r.Date),
		Status:     strings.TrimSpace(r.Status),
	}
}

// ListQuery carries the optional inclusive date bounds of a listing.
type ListQuery struct {
	StartDate string `form:"start_date"`
	EndDate   string `form:"end_date"`
}

type AttendanceResponse struct {
	ID           string  `json:"id"`
	EmployeeID   string  `json:"employee_id"`
	EmployeeName *string `json:"employee_name"`
	Date         string  `json:"date"`
	Status       string  `json:"status"`
	CreatedAt    string  `json:"created_at"`
	UpdatedAt    string  `json:"updated_at"`
}
