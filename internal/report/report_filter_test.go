package report_test

import (
	"testing"

	"hrms-lite/internal/report"

	"github.com/stretchr/testify/assert"
)

func januaryRecords() []report.Record {
	return []report.Record{
		{EmployeeID: "E2", Date: "2024-01-05", Status: report.StatusAbsent},
		{EmployeeID: "E1", Date: "2024-01-01", Status: report.StatusPresent},
		{EmployeeID: "E1", Date: "2024-01-10", Status: report.StatusPresent},
		{EmployeeID: "E2", Date: "2024-01-10", Status: report.StatusPresent},
		{EmployeeID: "E1", Date: "2024-01-31", Status: report.StatusAbsent},
	}
}

func TestFilterByDateRange(t *testing.T) {
	records := januaryRecords()

	t.Run("no bounds is identity", func(t *testing.T) {
		assert.Equal(t, records, report.FilterByDateRange(records, "", ""))
	})

	t.Run("inclusive bounds keep original order", func(t *testing.T) {
		got := report.FilterByDateRange(records, "2024-01-05", "2024-01-10")

		assert.Equal(t, []report.Record{records[0], records[2], records[3]}, got)
	})

	t.Run("open start", func(t *testing.T) {
		got := report.FilterByDateRange(records, "", "2024-01-05")

		assert.Equal(t, []report.Record{records[0], records[1]}, got)
	})

	t.Run("open end", func(t *testing.T) {
		got := report.FilterByDateRange(records, "2024-01-10", "")

		assert.Len(t, got, 3)
	})

	t.Run("inverted range is empty", func(t *testing.T) {
		assert.Empty(t, report.FilterByDateRange(records, "2024-02-01", "2024-01-01"))
	})

	t.Run("does not mutate input", func(t *testing.T) {
		before := januaryRecords()
		_ = report.FilterByDateRange(records, "2024-01-10", "2024-01-10")
		assert.Equal(t, before, records)
	})

	t.Run("narrowing never grows the result", func(t *testing.T) {
		ranges := [][2]string{
			{"", ""},
			{"2024-01-01", ""},
			{"2024-01-01", "2024-01-31"},
			{"2024-01-05", "2024-01-31"},
			{"2024-01-05", "2024-01-10"},
			{"2024-01-10", "2024-01-10"},
		}
		prev := len(records) + 1
		for _, r := range ranges {
			n := len(report.FilterByDateRange(records, r[0], r[1]))
			assert.LessOrEqual(t, n, prev, "range %v", r)
			prev = n
		}
	})
}

func TestFilterByEmployee(t *testing.T) {
	records := januaryRecords()

	t.Run("empty id is identity", func(t *testing.T) {
		assert.Equal(t, records, report.FilterByEmployee(records, ""))
	})

	t.Run("exact case-sensitive match", func(t *testing.T) {
		assert.Len(t, report.FilterByEmployee(records, "E1"), 3)
		assert.Empty(t, report.FilterByEmployee(records, "e1"))
	})

	t.Run("commutes with the date range filter", func(t *testing.T) {
		a := report.FilterByEmployee(report.FilterByDateRange(records, "2024-01-05", ""), "E2")
		b := report.FilterByDateRange(report.FilterByEmployee(records, "E2"), "2024-01-05", "")

		assert.Equal(t, a, b)
		assert.Len(t, a, 2)
	})
}
