package attendance_test

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"hrms-lite/internal/attendance"
	attendanceerrors "hrms-lite/internal/attendance/errors"
	attendanceMock "hrms-lite/internal/attendance/mock"
	"hrms-lite/internal/events"
	"hrms-lite/internal/messaging/kafka"
	kafkaMock "hrms-lite/internal/messaging/kafka/mock"
	"hrms-lite/internal/shared/apperror"
	"hrms-lite/internal/shared/cachekey"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/go-redis/redismock/v9"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
	"gorm.io/gorm"
)

type serviceDeps struct {
	db        *sql.DB
	sqlMock   sqlmock.Sqlmock
	service   attendance.Service
	repo      *attendanceMock.MockRepository
	outbox    *kafkaMock.MockOutboxRepository
	redismock redismock.ClientMock
}

func setupServiceTest(t *testing.T) *serviceDeps {
	ctrl := gomock.NewController(t)

	db, sqlMock, err := sqlmock.New()
	assert.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	rdb, redisMock := redismock.NewClientMock()
	repo := attendanceMock.NewMockRepository(ctrl)
	outboxRepo := kafkaMock.NewMockOutboxRepository(ctrl)

	return &serviceDeps{
		db:        db,
		sqlMock:   sqlMock,
		service:   attendance.NewServiceWithOutbox(db, repo, outboxRepo, rdb),
		repo:      repo,
		outbox:    outboxRepo,
		redismock: redisMock,
	}
}

func expectTx(mock sqlmock.Sqlmock, commit bool) {
	mock.ExpectBegin()
	if commit {
		mock.ExpectCommit()
	} else {
		mock.ExpectRollback()
	}
}

func TestAttendanceService_Mark(t *testing.T) {
	ctx := context.Background()
	req := attendance.MarkAttendanceRequest{EmployeeID: "E001", Date: "2024-01-05", Status: "Present"}
	alice := &attendance.EmployeeRef{EmployeeID: "E001", FullName: "Alice"}

	t.Run("first mark creates a record", func(t *testing.T) {
		deps := setupServiceTest(t)

		expectTx(deps.sqlMock, true)
		deps.repo.EXPECT().WithTx(gomock.Any()).Return(deps.repo)
		deps.repo.EXPECT().FindEmployee(ctx, "E001").Return(alice, nil)
		deps.repo.EXPECT().FindByEmployeeAndDate(ctx, "E001", "2024-01-05").Return(nil, gorm.ErrRecordNotFound)
		deps.repo.EXPECT().
			Create(ctx, gomock.Any()).
			DoAndReturn(func(_ context.Context, a *attendance.Attendance) error {
				assert.Equal(t, "2024-01-05", a.AttendanceDate)
				assert.Equal(t, "Present", a.Status)
				return nil
			})
		deps.outbox.EXPECT().WithTx(gomock.Any()).Return(deps.outbox)
		deps.outbox.EXPECT().
			Create(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, e kafka.OutboxEvent) error {
				assert.Equal(t, events.AttendanceMarked, e.EventType)
				assert.Equal(t, events.AttendanceTopic, e.Topic)
				assert.Equal(t, "E001", e.AggregateID)
				assert.Contains(t, string(e.Payload), `"overwrote":false`)
				return nil
			})
		deps.redismock.ExpectIncr(cachekey.ReportGeneration).SetVal(1)

		resp, err := deps.service.Mark(ctx, req)

		assert.NoError(t, err)
		assert.Equal(t, "Present", resp.Status)
		if assert.NotNil(t, resp.EmployeeName) {
			assert.Equal(t, "Alice", *resp.EmployeeName)
		}
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
		assert.NoError(t, deps.redismock.ExpectationsWereMet())
	})

	t.Run("second mark overwrites the status", func(t *testing.T) {
		deps := setupServiceTest(t)
		existingID := uuid.New()
		absent := attendance.MarkAttendanceRequest{EmployeeID: "E001", Date: "2024-01-05", Status: "Absent"}

		expectTx(deps.sqlMock, true)
		deps.repo.EXPECT().WithTx(gomock.Any()).Return(deps.repo)
		deps.repo.EXPECT().FindEmployee(ctx, "E001").Return(alice, nil)
		deps.repo.EXPECT().FindByEmployeeAndDate(ctx, "E001", "2024-01-05").
			Return(&attendance.Attendance{ID: existingID, EmployeeID: "E001", AttendanceDate: "2024-01-05", Status: "Present"}, nil)
		deps.repo.EXPECT().UpdateStatus(ctx, existingID, "Absent").Return(nil)
		deps.outbox.EXPECT().WithTx(gomock.Any()).Return(deps.outbox)
		deps.outbox.EXPECT().
			Create(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, e kafka.OutboxEvent) error {
				assert.Contains(t, string(e.Payload), `"overwrote":true`)
				return nil
			})
		deps.redismock.ExpectIncr(cachekey.ReportGeneration).SetVal(2)

		resp, err := deps.service.Mark(ctx, absent)

		assert.NoError(t, err)
		assert.Equal(t, existingID.String(), resp.ID)
		assert.Equal(t, "Absent", resp.Status)
	})

	t.Run("unknown employee -> 404", func(t *testing.T) {
		deps := setupServiceTest(t)

		expectTx(deps.sqlMock, false)
		deps.repo.EXPECT().WithTx(gomock.Any()).Return(deps.repo)
		deps.repo.EXPECT().FindEmployee(ctx, "E001").Return(nil, gorm.ErrRecordNotFound)

		_, err := deps.service.Mark(ctx, req)

		assert.ErrorIs(t, err, attendanceerrors.ErrEmployeeNotFound)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})

	t.Run("invalid payload -> field errors", func(t *testing.T) {
		deps := setupServiceTest(t)

		_, err := deps.service.Mark(ctx, attendance.MarkAttendanceRequest{EmployeeID: "E001", Date: "05/01/2024", Status: "Late"})

		var appErr *apperror.AppError
		assert.ErrorAs(t, err, &appErr)
		assert.Equal(t, map[string]string{
			"date":   "Date must be in YYYY-MM-DD format",
			"status": "Status must be Present or Absent",
		}, appErr.Details)
	})

	t.Run("concurrent insert -> conflict", func(t *testing.T) {
		deps := setupServiceTest(t)

		expectTx(deps.sqlMock, false)
		deps.repo.EXPECT().WithTx(gomock.Any()).Return(deps.repo)
		deps.repo.EXPECT().FindEmployee(ctx, "E001").Return(alice, nil)
		deps.repo.EXPECT().FindByEmployeeAndDate(ctx, "E001", "2024-01-05").Return(nil, gorm.ErrRecordNotFound)
		deps.repo.EXPECT().Create(ctx, gomock.Any()).
			Return(&pgconn.PgError{Code: "23505", ConstraintName: "uq_attendance_employee_date"})

		_, err := deps.service.Mark(ctx, req)

		assert.ErrorIs(t, err, attendanceerrors.ErrAttendanceAlreadyMarked)
	})

	t.Run("lookup failure is returned as is", func(t *testing.T) {
		deps := setupServiceTest(t)

		expectTx(deps.sqlMock, false)
		deps.repo.EXPECT().WithTx(gomock.Any()).Return(deps.repo)
		deps.repo.EXPECT().FindEmployee(ctx, "E001").Return(alice, nil)
		deps.repo.EXPECT().FindByEmployeeAndDate(ctx, "E001", "2024-01-05").Return(nil, errors.New("timeout"))

		_, err := deps.service.Mark(ctx, req)

		assert.EqualError(t, err, "timeout")
	})
}

func TestAttendanceService_GetAll(t *testing.T) {
	ctx := context.Background()

	t.Run("passes the range through", func(t *testing.T) {
		deps := setupServiceTest(t)
		deps.repo.EXPECT().
			FindAll(ctx, attendance.ListFilter{StartDate: "2024-01-01", EndDate: "2024-01-31"}).
			Return([]attendance.Attendance{
				{EmployeeID: "E001", AttendanceDate: "2024-01-05", Status: "Present", Employee: &attendance.EmployeeRef{FullName: "Alice"}},
				{EmployeeID: "E999", AttendanceDate: "2024-01-04", Status: "Absent"},
			}, nil)

		resp, err := deps.service.GetAll(ctx, attendance.ListQuery{StartDate: "2024-01-01", EndDate: "2024-01-31"})

		assert.NoError(t, err)
		assert.Len(t, resp, 2)
		assert.Equal(t, "Alice", *resp[0].EmployeeName)
		assert.Nil(t, resp[1].EmployeeName)
	})

	t.Run("malformed bound", func(t *testing.T) {
		deps := setupServiceTest(t)

		_, err := deps.service.GetAll(ctx, attendance.ListQuery{StartDate: "2024-13-01"})

		assert.ErrorIs(t, err, attendanceerrors.ErrInvalidDateFilter)
	})
}

func TestAttendanceService_GetByEmployee(t *testing.T) {
	ctx := context.Background()

	t.Run("unknown employee", func(t *testing.T) {
		deps := setupServiceTest(t)
		deps.repo.EXPECT().FindEmployee(ctx, "E404").Return(nil, gorm.ErrRecordNotFound)

		_, err := deps.service.GetByEmployee(ctx, "E404", attendance.ListQuery{})

		assert.ErrorIs(t, err, attendanceerrors.ErrEmployeeNotFound)
	})

	t.Run("found", func(t *testing.T) {
		deps := setupServiceTest(t)
		deps.repo.EXPECT().FindEmployee(ctx, "E001").Return(&attendance.EmployeeRef{EmployeeID: "E001"}, nil)
		deps.repo.EXPECT().FindAllByEmployee(ctx, "E001", attendance.ListFilter{EndDate: "2024-01-10"}).
			Return([]attendance.Attendance{{EmployeeID: "E001", AttendanceDate: "2024-01-02"}}, nil)

		resp, err := deps.service.GetByEmployee(ctx, "E001", attendance.ListQuery{EndDate: "2024-01-10"})

		assert.NoError(t, err)
		assert.Len(t, resp, 1)
	})
}
