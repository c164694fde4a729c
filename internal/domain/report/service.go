package report

import (
	"context"

	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/attendance"
)

// ReportService computes summaries, dashboards and exports from attendance
// records and the employee roster.
type ReportService interface {
	GetMySummary(ctx context.Context, employeeID string, filter attendance.MonthFilter) (MySummaryResponse, error)
	GetTeamSummary(ctx context.Context, filter attendance.MonthFilter) (TeamSummaryResponse, error)
	GetTodayStatus(ctx context.Context) (TodayStatusResponse, error)
	GetEmployeeDashboard(ctx context.Context, employeeID string) (EmployeeDashboardResponse, error)
	GetManagerDashboard(ctx context.Context) (ManagerDashboardResponse, error)
	Export(ctx context.Context, req ExportRequest) (ExportFile, error)
}
