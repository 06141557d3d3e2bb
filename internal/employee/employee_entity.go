package employee

import (
	"time"

	"github.com/google/uuid"
)

type Employee struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey"`
	EmployeeID string    `gorm:"column:employee_id;size:50;not null;uniqueIndex:uq_employee_employee_id"`
	FullName   string    `gorm:"column:full_name;size:100;not null"`
	Email      string    `gorm:"column:email;size:255;not null;uniqueIndex:uq_employee_email"`
	Department string    `gorm:"column:department;size:100;not null"`
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

func (Employee) TableName() string { return "employees" }
