package attendance

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"hrms-lite/internal/events"
	"hrms-lite/internal/messaging/kafka"
	"hrms-lite/internal/shared/apperror"
	"hrms-lite/internal/shared/cachekey"
	"hrms-lite/internal/shared/contextutil"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

//go:generate mockgen -source=attendance_service.go -destination=mock/attendance_service_mock.go -package=mock
type Service interface {
	Mark(ctx context.Context, req MarkAttendanceRequest) (AttendanceResponse, error)
	GetAll(ctx context.Context, q ListQuery) ([]AttendanceResponse, error)
	GetByEmployee(ctx context.Context, employeeID string, q ListQuery) ([]AttendanceResponse, error)
}

type service struct {
	db     *sql.DB
	repo   Repository
	outbox kafka.OutboxRepository
	rdb    *redis.Client
	logger *zap.Logger
}

func NewService(db *sql.DB, repo Repository, rdb *redis.Client, logger ...*zap.Logger) Service {
	return NewServiceWithOutbox(db, repo, nil, rdb, logger...)
}

func NewServiceWithOutbox(
	db *sql.DB,
	repo Repository,
	outboxRepo kafka.OutboxRepository,
	rdb *redis.Client,
	logger ...*zap.Logger,
) Service {
	l := zap.L().Named("attendance.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("attendance.service")
	}
	return &service{db: db, repo: repo, outbox: outboxRepo, rdb: rdb, logger: l}
}

// Mark records the status of an employee on a date. A second mark for the
// same (employee, date) pair overwrites the earlier status.
func (s *service) Mark(ctx context.Context, req MarkAttendanceRequest) (AttendanceResponse, error) {
	rid := contextutil.GetRequestID(ctx)
	req = req.Normalize()
	s.logger.Debug("mark attendance requested",
		zap.String("request_id", rid),
		zap.String("employee_id", req.EmployeeID),
		zap.String("date", req.Date),
		zap.String("status", req.Status),
	)

	if fields := ValidateMarkRequest(req, nil); len(fields) > 0 {
		s.logger.Warn("mark attendance validation failed", zap.Any("fields", fields))
		return AttendanceResponse{}, apperror.Validation(fields)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("mark attendance begin tx failed", zap.Error(err))
		return AttendanceResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	empl, err := qtx.FindEmployee(ctx, req.EmployeeID)
	if err != nil {
		s.logger.Warn("mark attendance employee lookup failed",
			zap.String("employee_id", req.EmployeeID),
			zap.Error(err),
		)
		return AttendanceResponse{}, mapRepositoryError(err)
	}

	overwrote := false
	row, err := qtx.FindByEmployeeAndDate(ctx, req.EmployeeID, req.Date)
	switch {
	case err == nil:
		overwrote = true
		if err := qtx.UpdateStatus(ctx, row.ID, req.Status); err != nil {
			s.logger.Error("mark attendance update failed", zap.Error(err))
			return AttendanceResponse{}, mapRepositoryError(err)
		}
		row.Status = req.Status
		row.UpdatedAt = time.Now().UTC()
	case errors.Is(err, gorm.ErrRecordNotFound):
		row = &Attendance{
			ID:             uuid.New(),
			EmployeeID:     req.EmployeeID,
			AttendanceDate: req.Date,
			Status:         req.Status,
		}
		if err := qtx.Create(ctx, row); err != nil {
			s.logger.Error("mark attendance persist failed", zap.Error(err))
			return AttendanceResponse{}, mapRepositoryError(err)
		}
	default:
		s.logger.Error("mark attendance lookup failed", zap.Error(err))
		return AttendanceResponse{}, err
	}

	if s.outbox != nil {
		event, err := kafka.NewOutboxEvent(rid, "attendance", req.EmployeeID, events.AttendanceMarked, events.AttendanceTopic,
			events.AttendanceMarkedEvent{
				EventType:  events.AttendanceMarked,
				RequestID:  rid,
				EmployeeID: req.EmployeeID,
				Date:       req.Date,
				Status:     req.Status,
				Overwrote:  overwrote,
				OccurredAt: time.Now().UTC(),
			})
		if err != nil {
			return AttendanceResponse{}, err
		}
		if err := s.outbox.WithTx(tx).Create(ctx, event); err != nil {
			s.logger.Error("mark attendance outbox persist failed", zap.Error(err))
			return AttendanceResponse{}, err
		}
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("mark attendance commit failed", zap.Error(err))
		return AttendanceResponse{}, err
	}

	if s.rdb != nil {
		if err := s.rdb.Incr(ctx, cachekey.ReportGeneration).Err(); err != nil {
			s.logger.Error("failed to invalidate report cache", zap.Error(err))
		}
	}

	s.logger.Info("mark attendance success",
		zap.String("request_id", rid),
		zap.String("employee_id", req.EmployeeID),
		zap.String("date", req.Date),
		zap.Bool("overwrote", overwrote),
	)

	row.Employee = empl
	return mapToResponse(*row), nil
}

func (s *service) GetAll(ctx context.Context, q ListQuery) ([]AttendanceResponse, error) {
	if err := validateListQuery(q); err != nil {
		return nil, err
	}

	rows, err := s.repo.FindAll(ctx, ListFilter(q))
	if err != nil {
		s.logger.Error("get all attendance failed", zap.Error(err))
		return nil, err
	}
	return mapToListResponse(rows), nil
}

func (s *service) GetByEmployee(ctx context.Context, employeeID string, q ListQuery) ([]AttendanceResponse, error) {
	if err := validateListQuery(q); err != nil {
		return nil, err
	}

	if _, err := s.repo.FindEmployee(ctx, employeeID); err != nil {
		return nil, mapRepositoryError(err)
	}

	rows, err := s.repo.FindAllByEmployee(ctx, employeeID, ListFilter(q))
	if err != nil {
		s.logger.Error("get attendance by employee failed", zap.String("employee_id", employeeID), zap.Error(err))
		return nil, err
	}
	return mapToListResponse(rows), nil
}

func mapToResponse(a Attendance) AttendanceResponse {
	resp := AttendanceResponse{
		ID:         a.ID.String(),
		EmployeeID: a.EmployeeID,
		Date:       a.AttendanceDate,
		Status:     a.Status,
		CreatedAt:  formatTime(a.CreatedAt),
		UpdatedAt:  formatTime(a.UpdatedAt),
	}
	if a.Employee != nil {
		name := a.Employee.FullName
		resp.EmployeeName = &name
	}
	return resp
}

func mapToListResponse(rows []Attendance) []AttendanceResponse {
	res := make([]AttendanceResponse, len(rows))
	for i, r := range rows {
		res[i] = mapToResponse(r)
	}
	return res
}

func formatTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format(time.RFC3339)
}
