package attendance

import (
	"time"

	"github.com/google/uuid"
)

const (
	StatusPresent = "Present"
	StatusAbsent  = "Absent"
)

// DateLayout is the canonical form of AttendanceDate; the column stores the
// text itself so ordering and range filters compare lexicographically.
const DateLayout = "2006-01-02"

type Attendance struct {
	ID             uuid.UUID    `gorm:"column:id;type:uuid;primaryKey"`
	EmployeeID     string       `gorm:"column:employee_id;size:50;not null;uniqueIndex:uq_attendance_employee_date,priority:1"`
	AttendanceDate string       `gorm:"column:attendance_date;type:varchar(10);not null;uniqueIndex:uq_attendance_employee_date,priority:2;index"`
	Status         string       `gorm:"column:status;type:varchar(10);not null"`
	CreatedAt      time.Time    `gorm:"column:created_at"`
	UpdatedAt      time.Time    `gorm:"column:updated_at"`
	Employee       *EmployeeRef `gorm:"foreignKey:EmployeeID;references:EmployeeID"`
}

func (Attendance) TableName() string {
	return "attendances"
}

type EmployeeRef struct {
	EmployeeID string `gorm:"column:employee_id;primaryKey"`
	FullName   string `gorm:"column:full_name"`
}

func (EmployeeRef) TableName() string {
	return "employees"
}
