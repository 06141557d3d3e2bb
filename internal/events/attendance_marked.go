package events

import "time"

const AttendanceTopic = "hr.attendance.v1"

const AttendanceMarked = "attendance_marked"

type AttendanceMarkedEvent struct {
	EventType  string    `json:"event_type"`
	RequestID  string    `json:"request_id,omitempty"`
	EmployeeID string    `json:"employee_id"`
	Date       string    `json:"date"`
	Status     string    `json:"status"`
	Overwrote  bool      `json:"overwrote"`
	OccurredAt time.Time `json:"occurred_at"`
}

// Envelope is the subset every event on the HR topics shares; consumers decode
// it first to route on EventType.
type Envelope struct {
	EventType  string `json:"event_type"`
	RequestID  string `json:"request_id,omitempty"`
	EmployeeID string `json:"employee_id"`
}
