// Package report turns the employee roster and the attendance record set into
// derived snapshots: per-employee summaries and the daily dashboard numbers.
//
// The engine and the filters in this package are pure. They never read the
// clock, never touch storage and never fail; empty input gives zero output.
package report

type Status string

const (
	StatusPresent Status = "Present"
	StatusAbsent  Status = "Absent"
)

// Employee is the roster entry the engine reads. EmployeeID is the business
// identifier, not the surrogate database id.
type Employee struct {
	EmployeeID string
	FullName   string
	Email      string
	Department string
}

// Record is one attendance mark. Date is canonical YYYY-MM-DD text.
type Record struct {
	EmployeeID string
	Date       string
	Status     Status
}

type Summary struct {
	EmployeeID     string `json:"employee_id"`
	EmployeeName   string `json:"employee_name"`
	TotalPresent   int    `json:"total_present"`
	TotalAbsent    int    `json:"total_absent"`
	TotalDays      int    `json:"total_days"`
	AttendanceRate int    `json:"attendance_rate"`
}

type DailySnapshot struct {
	Date           string `json:"date"`
	TotalEmployees int    `json:"total_employees"`
	PresentToday   int    `json:"present_today"`
	AbsentToday    int    `json:"absent_today"`
	AttendanceRate int    `json:"attendance_rate"`
}

// SummarizeByEmployee returns exactly one row per roster entry, in roster
// order. Records whose employee is not on the roster are dropped, and records
// with an unknown status are ignored.
//
// If the roster repeats an id, the first entry collects the records and the
// repeats stay at zero.
func SummarizeByEmployee(employees []Employee, records []Record) []Summary {
	out := make([]Summary, len(employees))
	index := make(map[string]int, len(employees))
	for i, e := range employees {
		out[i] = Summary{EmployeeID: e.EmployeeID, EmployeeName: e.FullName}
		if _, seen := index[e.EmployeeID]; !seen {
			index[e.EmployeeID] = i
		}
	}

	for _, r := range records {
		i, ok := index[r.EmployeeID]
		if !ok {
			continue
		}
		switch r.Status {
		case StatusPresent:
			out[i].TotalPresent++
		case StatusAbsent:
			out[i].TotalAbsent++
		}
	}

	for i := range out {
		out[i].TotalDays = out[i].TotalPresent + out[i].TotalAbsent
		out[i].AttendanceRate = Percent(out[i].TotalPresent, out[i].TotalDays)
	}
	return out
}

// ComputeDailySnapshot counts the marks made on today against the roster size.
// Every record dated today counts; a second mark for the same employee on the
// same day is counted again.
func ComputeDailySnapshot(employees []Employee, records []Record, today string) DailySnapshot {
	snap := DailySnapshot{
		Date:           today,
		TotalEmployees: len(employees),
	}

	for _, r := range records {
		if r.Date != today {
			continue
		}
		switch r.Status {
		case StatusPresent:
			snap.PresentToday++
		case StatusAbsent:
			snap.AbsentToday++
		}
	}

	snap.AttendanceRate = Percent(snap.PresentToday, snap.TotalEmployees)
	return snap
}

// Percent is part*100/whole rounded half up, or 0 when whole is not positive.
func Percent(part, whole int) int {
	if whole <= 0 {
		return 0
	}
	return (200*part + whole) / (2 * whole)
}
