package attendance_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"hrms-lite/internal/attendance"
	attendanceerrors "hrms-lite/internal/attendance/errors"
	"hrms-lite/internal/shared/apperror"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

type fakeAttendanceService struct {
	MarkFn          func(ctx context.Context, req attendance.MarkAttendanceRequest) (attendance.AttendanceResponse, error)
	GetAllFn        func(ctx context.Context, q attendance.ListQuery) ([]attendance.AttendanceResponse, error)
	GetByEmployeeFn func(ctx context.Context, employeeID string, q attendance.ListQuery) ([]attendance.AttendanceResponse, error)
}

func (f *fakeAttendanceService) Mark(ctx context.Context, req attendance.MarkAttendanceRequest) (attendance.AttendanceResponse, error) {
	return f.MarkFn(ctx, req)
}
func (f *fakeAttendanceService) GetAll(ctx context.Context, q attendance.ListQuery) ([]attendance.AttendanceResponse, error) {
	return f.GetAllFn(ctx, q)
}
func (f *fakeAttendanceService) GetByEmployee(ctx context.Context, employeeID string, q attendance.ListQuery) ([]attendance.AttendanceResponse, error) {
	return f.GetByEmployeeFn(ctx, employeeID, q)
}

func newRouter(svc attendance.Service) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	h := attendance.NewHandler(svc)
	r.POST("/api/attendance", h.Mark)
	r.GET("/api/attendance", h.GetAll)
	r.GET("/api/attendance/employee/:employee_id", h.GetByEmployee)
	return r
}

func TestAttendanceHandler_Mark(t *testing.T) {
	svc := &fakeAttendanceService{
		MarkFn: func(_ context.Context, req attendance.MarkAttendanceRequest) (attendance.AttendanceResponse, error) {
			if req.EmployeeID == "E404" {
				return attendance.AttendanceResponse{}, attendanceerrors.ErrEmployeeNotFound
			}
			return attendance.AttendanceResponse{EmployeeID: req.EmployeeID, Date: req.Date, Status: req.Status}, nil
		},
	}
	r := newRouter(svc)

	post := func(body string) *httptest.ResponseRecorder {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/api/attendance", strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		r.ServeHTTP(w, req)
		return w
	}

	w := post(`{"employee_id":"E001","date":"2024-01-05","status":"Present"}`)
	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Contains(t, w.Body.String(), `"status":"Present"`)

	w = post(`{"employee_id":"E404","date":"2024-01-05","status":"Present"}`)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = post(`not json`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), apperror.CodeInvalidInput)
	assert.NotContains(t, w.Body.String(), "invalid character")
}

func TestAttendanceHandler_GetAll(t *testing.T) {
	var got attendance.ListQuery
	svc := &fakeAttendanceService{
		GetAllFn: func(_ context.Context, q attendance.ListQuery) ([]attendance.AttendanceResponse, error) {
			got = q
			if q.StartDate == "bad" {
				return nil, attendanceerrors.ErrInvalidDateFilter
			}
			return []attendance.AttendanceResponse{{EmployeeID: "E001"}, {EmployeeID: "E002"}}, nil
		},
	}
	r := newRouter(svc)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/attendance?start_date=2024-01-01&end_date=2024-01-31", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, attendance.ListQuery{StartDate: "2024-01-01", EndDate: "2024-01-31"}, got)
	assert.Contains(t, w.Body.String(), `"total":2`)

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/attendance?start_date=bad", nil))
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestAttendanceHandler_GetByEmployee(t *testing.T) {
	svc := &fakeAttendanceService{
		GetByEmployeeFn: func(_ context.Context, id string, _ attendance.ListQuery) ([]attendance.AttendanceResponse, error) {
			if id != "E001" {
				return nil, attendanceerrors.ErrEmployeeNotFound
			}
			return []attendance.AttendanceResponse{}, nil
		},
	}
	r := newRouter(svc)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/attendance/employee/E001", nil))
	assert.Equal(t, http.StatusOK, w.Code)

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/attendance/employee/E002", nil))
	assert.Equal(t, http.StatusNotFound, w.Code)
}
