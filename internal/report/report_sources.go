package report

import (
	"context"

	"hrms-lite/internal/attendance"
	"hrms-lite/internal/employee"
)

// RosterReader yields the current roster in display order.
type RosterReader interface {
	Roster(ctx context.Context) ([]Employee, error)
}

// RecordReader yields the full attendance record set.
type RecordReader interface {
	Records(ctx context.Context) ([]Record, error)
}

type employeeRoster struct {
	repo employee.Repository
}

func NewEmployeeRoster(repo employee.Repository) RosterReader {
	return employeeRoster{repo: repo}
}

func (r employeeRoster) Roster(ctx context.Context) ([]Employee, error) {
	rows, err := r.repo.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]Employee, len(rows))
	for i, e := range rows {
		out[i] = Employee{
			EmployeeID: e.EmployeeID,
			FullName:   e.FullName,
			Email:      e.Email,
			Department: e.Department,
		}
	}
	return out, nil
}

type attendanceRecords struct {
	repo attendance.Repository
}

func NewAttendanceRecords(repo attendance.Repository) RecordReader {
	return attendanceRecords{repo: repo}
}

func (a attendanceRecords) Records(ctx context.Context) ([]Record, error) {
	rows, err := a.repo.FindAll(ctx, attendance.ListFilter{})
	if err != nil {
		return nil, err
	}
	out := make([]Record, len(rows))
	for i, r := range rows {
		out[i] = Record{
			EmployeeID: r.EmployeeID,
			Date:       r.AttendanceDate,
			Status:     Status(r.Status),
		}
	}
	return out, nil
}
