package report_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"hrms-lite/internal/report"
	reporterrors "hrms-lite/internal/report/errors"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

type fakeReportService struct {
	SummaryFn   func(ctx context.Context, f report.SummaryFilter) ([]report.Summary, error)
	DashboardFn func(ctx context.Context, date string) (report.DailySnapshot, error)
}

func (f *fakeReportService) Summary(ctx context.Context, filter report.SummaryFilter) ([]report.Summary, error) {
	return f.SummaryFn(ctx, filter)
}

func (f *fakeReportService) Dashboard(ctx context.Context, date string) (report.DailySnapshot, error) {
	return f.DashboardFn(ctx, date)
}

func newReportRouter(svc report.Service) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	report.RegisterRoutes(r.Group("/api"), report.NewHandler(svc))
	return r
}

func TestReportHandler_Summary(t *testing.T) {
	var got report.SummaryFilter
	svc := &fakeReportService{
		SummaryFn: func(_ context.Context, f report.SummaryFilter) ([]report.Summary, error) {
			got = f
			return []report.Summary{{EmployeeID: "E1", TotalPresent: 2, TotalDays: 2, AttendanceRate: 100}}, nil
		},
	}
	w := httptest.NewRecorder()

	newReportRouter(svc).ServeHTTP(w, httptest.NewRequest(http.MethodGet,
		"/api/attendance/summary?start_date=2024-01-01&end_date=2024-01-31&employee_id=E1", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, report.SummaryFilter{StartDate: "2024-01-01", EndDate: "2024-01-31", EmployeeID: "E1"}, got)
	assert.Contains(t, w.Body.String(), `"attendance_rate":100`)
}

func TestReportHandler_Dashboard(t *testing.T) {
	t.Run("ok", func(t *testing.T) {
		svc := &fakeReportService{
			DashboardFn: func(_ context.Context, date string) (report.DailySnapshot, error) {
				return report.DailySnapshot{Date: date, TotalEmployees: 4, PresentToday: 3, AttendanceRate: 75}, nil
			},
		}
		w := httptest.NewRecorder()

		newReportRouter(svc).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/dashboard/stats?date=2024-01-05", nil))

		assert.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t,
			`{"ok":true,"data":{"date":"2024-01-05","total_employees":4,"present_today":3,"absent_today":0,"attendance_rate":75}}`,
			w.Body.String())
	})

	t.Run("sources down", func(t *testing.T) {
		svc := &fakeReportService{
			DashboardFn: func(context.Context, string) (report.DailySnapshot, error) {
				return report.DailySnapshot{}, reporterrors.ErrSourceUnavailable
			},
		}
		w := httptest.NewRecorder()

		newReportRouter(svc).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/dashboard/stats", nil))

		assert.Equal(t, http.StatusServiceUnavailable, w.Code)
		assert.Contains(t, w.Body.String(), `"SERVICE_UNAVAILABLE"`)
	})
}
