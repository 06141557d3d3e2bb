package attendance

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ListFilter struct {
	StartDate string
	EndDate   string
}

//go:generate mockgen -source=attendance_repo.go -destination=mock/attendance_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	FindEmployee(ctx context.Context, employeeID string) (*EmployeeRef, error)
	FindByEmployeeAndDate(ctx context.Context, employeeID, date string) (*Attendance, error)
	Create(ctx context.Context, a *Attendance) error
	UpdateStatus(ctx context.Context, id uuid.UUID, status string) error
	FindAll(ctx context.Context, filter ListFilter) ([]Attendance, error)
	FindAllByEmployee(ctx context.Context, employeeID string, filter ListFilter) ([]Attendance, error)
}

type repository struct {
	db *gorm.DB
	tx *sql.Tx
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *sql.Tx) Repository {
	if tx == nil {
		return r
	}
	txDB := r.db.Session(&gorm.Session{
		Context:                context.Background(),
		NewDB:                  true,
		SkipDefaultTransaction: true,
	})
	txDB.Statement.ConnPool = tx
	return &repository{db: txDB, tx: tx}
}

func (r *repository) FindEmployee(ctx context.Context, employeeID string) (*EmployeeRef, error) {
	var ref EmployeeRef
	err := r.db.WithContext(ctx).
		Select("employee_id", "full_name").
		First(&ref, "employee_id = ?", employeeID).Error
	return &ref, err
}

func (r *repository) FindByEmployeeAndDate(ctx context.Context, employeeID, date string) (*Attendance, error) {
	var a Attendance
	err := r.db.WithContext(ctx).
		Where("employee_id = ?", employeeID).
		Where("attendance_date = ?", date).
		First(&a).Error
	return &a, err
}

func (r *repository) Create(ctx context.Context, a *Attendance) error {
	return r.db.WithContext(ctx).Omit("Employee").Create(a).Error
}

func (r *repository) UpdateStatus(ctx context.Context, id uuid.UUID, status string) error {
	return r.db.WithContext(ctx).
		Model(&Attendance{}).
		Where("id = ?", id).
		Updates(map[string]any{"status": status, "updated_at": time.Now().UTC()}).Error
}

func (r *repository) FindAll(ctx context.Context, filter ListFilter) ([]Attendance, error) {
	var rows []Attendance
	err := r.db.WithContext(ctx).
		Scopes(dateRange(filter)).
		Preload("Employee").
		Order("attendance_date DESC").
		Order("created_at DESC").
		Find(&rows).Error
	return rows, err
}

func (r *repository) FindAllByEmployee(ctx context.Context, employeeID string, filter ListFilter) ([]Attendance, error) {
	var rows []Attendance
	err := r.db.WithContext(ctx).
		Where("employee_id = ?", employeeID).
		Scopes(dateRange(filter)).
		Preload("Employee").
		Order("attendance_date DESC").
		Find(&rows).Error
	return rows, err
}

func dateRange(filter ListFilter) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if filter.StartDate != "" {
			db = db.Where("attendance_date >= ?", filter.StartDate)
		}
		if filter.EndDate != "" {
			db = db.Where("attendance_date <= ?", filter.EndDate)
		}
		return db
	}
}
