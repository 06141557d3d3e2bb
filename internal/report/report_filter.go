package report

// FilterByDateRange keeps records with start <= Date <= end. An empty bound is
// open on that side; with both empty the input is returned as is.
// Comparison is on the text, which is correct for YYYY-MM-DD dates.
func FilterByDateRange(records []Record, start, end string) []Record {
	if start == "" && end == "" {
		return records
	}

	out := make([]Record, 0, len(records))
	for _, r := range records {
		if start != "" && r.Date < start {
			continue
		}
		if end != "" && r.Date > end {
			continue
		}
		out = append(out, r)
	}
	return out
}

// FilterByEmployee keeps records of one employee (exact, case-sensitive match).
// An empty id returns the input as is.
func FilterByEmployee(records []Record, employeeID string) []Record {
	if employeeID == "" {
		return records
	}

	out := make([]Record, 0, len(records))
	for _, r := range records {
		if r.EmployeeID == employeeID {
			out = append(out, r)
		}
	}
	return out
}

// rosterFor narrows the roster the same way FilterByEmployee narrows records.
func rosterFor(employees []Employee, employeeID string) []Employee {
	if employeeID == "" {
		return employees
	}

	out := make([]Employee, 0, 1)
	for _, e := range employees {
		if e.EmployeeID == employeeID {
			out = append(out, e)
		}
	}
	return out
}
