package report

import (
	"strings"
	"time"

	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/attendance"
	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/employee"
	"github.com/cmlabs-hris/attendance-backend-go/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

// ========================================
// AGGREGATES
// ========================================

// Summary tallies records by status. It is derived on demand and never stored.
type Summary struct {
	Present    int
	Absent     int
	Late       int
	HalfDay    int
	TotalHours decimal.Decimal
}

type SummaryResponse struct {
	Present    int    `json:"present"`
	Absent     int    `json:"absent"`
	Late       int    `json:"late"`
	HalfDay    int    `json:"half_day"`
	TotalHours string `json:"total_hours"`
}

func NewSummaryResponse(s Summary) SummaryResponse {
	return SummaryResponse{
		Present:    s.Present,
		Absent:     s.Absent,
		Late:       s.Late,
		HalfDay:    s.HalfDay,
		TotalHours: s.TotalHours.StringFixed(2),
	}
}

type TrendPoint struct {
	Date    string `json:"date"` // Format: "YYYY-MM-DD"
	Present int    `json:"present"`
}

type DepartmentStat struct {
	Department string
	Present    int
	Total      int
	Percentage decimal.Decimal
}

type DepartmentStatResponse struct {
	Department string `json:"department"`
	Present    int    `json:"present"`
	Total      int    `json:"total"`
	Percentage string `json:"percentage"` // one decimal, e.g. "66.7"
}

// TodayStatusView partitions the roster for one day.
type TodayStatusView struct {
	Present []attendance.Attendance
	Absent  []employee.Employee
	Late    []attendance.Attendance
	Total   int
}

// ========================================
// RESPONSES
// ========================================

type EmployeeBrief struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	EmployeeCode string `json:"employee_code"`
	Department   string `json:"department"`
}

func NewEmployeeBrief(e employee.Employee) EmployeeBrief {
	return EmployeeBrief{
		ID:           e.ID,
		Name:         e.Name,
		EmployeeCode: e.EmployeeCode,
		Department:   e.Department,
	}
}

type MySummaryResponse struct {
	Month   int             `json:"month"`
	Year    int             `json:"year"`
	Summary SummaryResponse `json:"summary"`
}

type TeamSummaryResponse struct {
	Month          int             `json:"month"`
	Year           int             `json:"year"`
	TotalEmployees int             `json:"total_employees"`
	Summary        SummaryResponse `json:"summary"`
}

type TodayStatusResponse struct {
	Date    string                          `json:"date"`
	Present []attendance.AttendanceResponse `json:"present"`
	Absent  []EmployeeBrief                 `json:"absent"`
	Late    []attendance.AttendanceResponse `json:"late"`
	Total   int                             `json:"total"`
}

// Today labels on the employee dashboard.
const (
	TodayNotCheckedIn = "Not Checked In"
	TodayCheckedIn    = "Checked In"
	TodayCheckedOut   = "Checked Out"
)

type EmployeeDashboardResponse struct {
	TodayStatus      string                          `json:"today_status"`
	TodayAttendance  *attendance.AttendanceResponse  `json:"today_attendance"`
	MonthStats       SummaryResponse                 `json:"month_stats"`
	RecentAttendance []attendance.AttendanceResponse `json:"recent_attendance"`
}

type TodayCounts struct {
	Present int `json:"present"`
	Absent  int `json:"absent"`
}

type LateArrival struct {
	Name         string  `json:"name"`
	EmployeeCode string  `json:"employee_code"`
	Department   string  `json:"department"`
	CheckInTime  *string `json:"check_in_time"`
}

type ManagerDashboardResponse struct {
	TotalEmployees  int                      `json:"total_employees"`
	TodayAttendance TodayCounts              `json:"today_attendance"`
	LateArrivals    []LateArrival            `json:"late_arrivals"`
	WeeklyTrend     []TrendPoint             `json:"weekly_trend"`
	DepartmentWise  []DepartmentStatResponse `json:"department_wise"`
	AbsentEmployees []EmployeeBrief          `json:"absent_employees"`
}

// ========================================
// EXPORT
// ========================================

type ExportFormat string

const (
	ExportFormatCSV  ExportFormat = "csv"
	ExportFormatXLSX ExportFormat = "xlsx"
)

type ExportRequest struct {
	EmployeeCode *string `json:"employee_code,omitempty"`
	Format       *string `json:"format,omitempty"`
	attendance.DateRangeFilter
}

func (r *ExportRequest) Validate() error {
	filter := attendance.AttendanceFilter{
		EmployeeCode:    r.EmployeeCode,
		DateRangeFilter: r.DateRangeFilter,
	}

	var errs validator.ValidationErrors
	if err := filter.Validate(); err != nil {
		errs = append(errs, err.(validator.ValidationErrors)...)
	}

	if r.Format != nil && *r.Format != "" {
		format := ExportFormat(strings.ToLower(*r.Format))
		if format != ExportFormatCSV && format != ExportFormatXLSX {
			errs = append(errs, validator.ValidationError{
				Field:   "format",
				Message: "format must be one of: csv, xlsx",
			})
		}
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// ResolvedFormat returns the requested format, csv when none was given.
func (r *ExportRequest) ResolvedFormat() ExportFormat {
	if r.Format == nil || *r.Format == "" {
		return ExportFormatCSV
	}
	return ExportFormat(strings.ToLower(*r.Format))
}

type ExportFile struct {
	Filename    string
	ContentType string
	Content     []byte
	Rows        int
	GeneratedAt time.Time
}
