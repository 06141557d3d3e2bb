package employee

import "strings"

type CreateEmployeeRequest struct {
	EmployeeID string `json:"employee_id" validate:"required,max=50"`
	FullName   string `json:"full_name" validate:"required,min=2,max=100"`
	Email      string `json:"email" validate:"required,simple_email,max=255"`
	Department string `json:"department" validate:"required,max=100"`
}

// Normalize trims surrounding whitespace; validation and persistence both see
// the trimmed values.
func (r CreateEmployeeRequest) Normalize() CreateEmployeeRequest {
	return CreateEmployeeRequest{
		EmployeeID: strings.TrimSpace(r.EmployeeID),
		FullName:   strings.TrimSpace(r.FullName),
		Email:      strings.TrimSpace(r.Email),
		Department: strings.TrimSpace(r.Department),
	}
}

type EmployeeResponse struct {
	ID         string `json:"id"`
	EmployeeID string `json:"employee_id"`
	FullName   string `json:"full_name"`
	Email      string `json:"email"`
	Department string `json:"department"`
	CreatedAt  string `json:"created_at"`
	UpdatedAt  string `json:"updated_at"`
}
