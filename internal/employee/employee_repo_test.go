package employee_test

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	"hrms-lite/internal/employee"
	employeeerrors "hrms-lite/internal/employee/errors"
	"hrms-lite/internal/report"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func newSQLiteDB(t *testing.T) *gorm.DB {
	t.Helper()
	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", name)

	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })

	require.NoError(t, db.AutoMigrate(&employee.Employee{}))
	require.NoError(t, db.Exec(`CREATE TABLE attendances (
		id TEXT PRIMARY KEY,
		employee_id TEXT NOT NULL,
		attendance_date TEXT NOT NULL,
		status TEXT NOT NULL
	)`).Error)
	return db
}

func seedEmployee(t *testing.T, db *gorm.DB, id, name string, createdAt time.Time) {
	t.Helper()
	require.NoError(t, db.Create(&employee.Employee{
		ID:         uuid.New(),
		EmployeeID: id,
		FullName:   name,
		Email:      strings.ToLower(id) + "@example.com",
		Department: "Engineering",
		CreatedAt:  createdAt,
	}).Error)
}

func seedAttendance(t *testing.T, db *gorm.DB, employeeID, date, status string) {
	t.Helper()
	require.NoError(t, db.Exec(
		"INSERT INTO attendances (id, employee_id, attendance_date, status) VALUES (?, ?, ?, ?)",
		uuid.NewString(), employeeID, date, status,
	).Error)
}

func countAttendances(t *testing.T, db *gorm.DB, employeeID string) int64 {
	t.Helper()
	var n int64
	require.NoError(t, db.Table("attendances").Where("employee_id = ?", employeeID).Count(&n).Error)
	return n
}

func TestRepository_FindAndExists(t *testing.T) {
	db := newSQLiteDB(t)
	repo := employee.NewRepository(db)
	ctx := context.Background()
	base := time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC)

	seedEmployee(t, db, "E001", "Alice", base)
	seedEmployee(t, db, "E002", "Bob", base.Add(time.Hour))

	all, err := repo.FindAll(ctx)
	require.NoError(t, err)
	assert.Equal(t, "E002", all[0].EmployeeID, "newest first")
	assert.Equal(t, "E001", all[1].EmployeeID)

	found, err := repo.FindByEmployeeID(ctx, "E001")
	require.NoError(t, err)
	assert.Equal(t, "Alice", found.FullName)

	_, err = repo.FindByEmployeeID(ctx, "E404")
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)

	exists, err := repo.ExistsByEmployeeID(ctx, "E002")
	require.NoError(t, err)
	assert.True(t, exists)

	exists, err = repo.ExistsByEmail(ctx, "nobody@example.com")
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestRepository_UniqueEmployeeID(t *testing.T) {
	db := newSQLiteDB(t)
	repo := employee.NewRepository(db)
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, &employee.Employee{
		ID: uuid.New(), EmployeeID: "E001", FullName: "Alice", Email: "a@example.com", Department: "Ops",
	}))

	err := repo.Create(ctx, &employee.Employee{
		ID: uuid.New(), EmployeeID: "E001", FullName: "Alicia", Email: "other@example.com", Department: "Ops",
	})
	assert.Error(t, err)
}

func TestRepository_WithTxRollsBack(t *testing.T) {
	db := newSQLiteDB(t)
	repo := employee.NewRepository(db)
	ctx := context.Background()
	sqlDB, err := db.DB()
	require.NoError(t, err)

	tx, err := sqlDB.BeginTx(ctx, nil)
	require.NoError(t, err)
	require.NoError(t, repo.WithTx(tx).Create(ctx, &employee.Employee{
		ID: uuid.New(), EmployeeID: "E009", FullName: "Temp", Email: "t@example.com", Department: "Ops",
	}))
	require.NoError(t, tx.Rollback())

	exists, err := repo.ExistsByEmployeeID(ctx, "E009")
	require.NoError(t, err)
	assert.False(t, exists)
}

// Deleting an employee removes every record that references it, so no
// summary row or orphan survives for that id.
func TestService_DeleteCascadesAttendance(t *testing.T) {
	db := newSQLiteDB(t)
	repo := employee.NewRepository(db)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	svc := employee.NewService(sqlDB, repo, nil)
	ctx := context.Background()
	base := time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC)

	seedEmployee(t, db, "E1", "Alice", base)
	seedEmployee(t, db, "E2", "Bob", base.Add(time.Minute))
	seedAttendance(t, db, "E1", "2024-01-01", "Present")
	seedAttendance(t, db, "E1", "2024-01-02", "Absent")
	seedAttendance(t, db, "E2", "2024-01-01", "Present")

	require.NoError(t, svc.Delete(ctx, "E1"))

	assert.Equal(t, int64(0), countAttendances(t, db, "E1"))
	assert.Equal(t, int64(1), countAttendances(t, db, "E2"))

	_, err = svc.GetByEmployeeID(ctx, "E1")
	assert.ErrorIs(t, err, employeeerrors.ErrEmployeeNotFound)

	remaining, err := svc.GetAll(ctx)
	require.NoError(t, err)
	roster := make([]report.Employee, len(remaining))
	for i, e := range remaining {
		roster[i] = report.Employee{EmployeeID: e.EmployeeID, FullName: e.FullName}
	}
	var rows []struct {
		EmployeeID     string
		AttendanceDate string
		Status         string
	}
	require.NoError(t, db.Table("attendances").Find(&rows).Error)
	records := make([]report.Record, len(rows))
	for i, r := range rows {
		records[i] = report.Record{EmployeeID: r.EmployeeID, Date: r.AttendanceDate, Status: report.Status(r.Status)}
	}

	summaries := report.SummarizeByEmployee(roster, records)
	require.Len(t, summaries, 1)
	assert.Equal(t, "E2", summaries[0].EmployeeID)
	assert.Equal(t, 1, summaries[0].TotalDays)

	assert.ErrorIs(t, svc.Delete(ctx, "E1"), employeeerrors.ErrEmployeeNotFound)
}
