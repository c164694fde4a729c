package report

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/attendance"
	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/employee"
	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/report"
	"github.com/cmlabs-hris/attendance-backend-go/internal/pkg/calendar"
	"github.com/cmlabs-hris/attendance-backend-go/internal/pkg/clock"
	"golang.org/x/sync/errgroup"
)

const recentAttendanceLimit = 7

type ReportServiceImpl struct {
	attendance.AttendanceRepository
	employee.EmployeeRepository
	clock    clock.Clock
	workWeek calendar.WorkWeek
	logger   *slog.Logger
}

func NewReportService(
	attendanceRepo attendance.AttendanceRepository,
	employeeRepo employee.EmployeeRepository,
	clk clock.Clock,
	workWeek calendar.WorkWeek,
	logger *slog.Logger,
) report.ReportService {
	if logger == nil {
		logger = slog.Default()
	}
	return &ReportServiceImpl{
		AttendanceRepository: attendanceRepo,
		EmployeeRepository:   employeeRepo,
		clock:                clk,
		workWeek:             workWeek,
		logger:               logger,
	}
}

// loadTeamSnapshot reads the employee roster and the records between start
// and end concurrently.
func (s *ReportServiceImpl) loadTeamSnapshot(ctx context.Context, start, end time.Time) (Snapshot, error) {
	var snap Snapshot
	g, gCtx := errgroup.WithContext(ctx)

	g.Go(func() error {
		roster, err := s.EmployeeRepository.ListByRole(gCtx, employee.RoleEmployee)
		if err != nil {
			return fmt.Errorf("failed to load roster: %w", err)
		}
		snap.Roster = roster
		return nil
	})

	g.Go(func() error {
		records, err := s.AttendanceRepository.List(gCtx, attendance.RecordFilter{StartDate: &start, EndDate: &end})
		if err != nil {
			return fmt.Errorf("failed to load attendance: %w", err)
		}
		snap.Records = records
		return nil
	})

	if err := g.Wait(); err != nil {
		return Snapshot{}, err
	}
	return snap, nil
}

// loadEmployeeSnapshot reads one employee and their records between start and end.
func (s *ReportServiceImpl) loadEmployeeSnapshot(ctx context.Context, employeeID string, start, end time.Time) (Snapshot, error) {
	var snap Snapshot
	g, gCtx := errgroup.WithContext(ctx)

	g.Go(func() error {
		emp, err := s.EmployeeRepository.GetByID(gCtx, employeeID)
		if err != nil {
			return err
		}
		snap.Roster = []employee.Employee{emp}
		return nil
	})

	g.Go(func() error {
		records, err := s.AttendanceRepository.List(gCtx, attendance.RecordFilter{
			EmployeeID: &employeeID,
			StartDate:  &start,
			EndDate:    &end,
		})
		if err != nil {
			return fmt.Errorf("failed to load attendance: %w", err)
		}
		snap.Records = records
		return nil
	})

	if err := g.Wait(); err != nil {
		return Snapshot{}, err
	}
	return snap, nil
}

// elapsedWorkingDays lists the working days from start through end that are
// not in the future. Only these days can make an employee absent.
func (s *ReportServiceImpl) elapsedWorkingDays(start, end time.Time) ([]time.Time, error) {
	today := clock.Today(s.clock)
	if end.After(today) {
		end = today
	}
	days, err := s.workWeek.Days(start, end)
	if err != nil {
		return nil, fmt.Errorf("failed to enumerate working days: %w", err)
	}
	return days, nil
}

func (s *ReportServiceImpl) resolveMonth(filter attendance.MonthFilter) (int, time.Month, time.Time, time.Time, error) {
	if err := filter.Validate(); err != nil {
		return 0, 0, time.Time{}, time.Time{}, err
	}
	year, month := filter.Resolve(s.clock.Now())
	start, end := clock.MonthRange(year, month, s.clock.Location())
	return year, month, start, end, nil
}

// GetMySummary implements report.ReportService.
func (s *ReportServiceImpl) GetMySummary(ctx context.Context, employeeID string, filter attendance.MonthFilter) (report.MySummaryResponse, error) {
	year, month, start, end, err := s.resolveMonth(filter)
	if err != nil {
		return report.MySummaryResponse{}, err
	}

	snap, err := s.loadEmployeeSnapshot(ctx, employeeID, start, end)
	if err != nil {
		return report.MySummaryResponse{}, err
	}

	days, err := s.elapsedWorkingDays(start, end)
	if err != nil {
		return report.MySummaryResponse{}, err
	}

	return report.MySummaryResponse{
		Month:   int(month),
		Year:    year,
		Summary: report.NewSummaryResponse(Aggregate(snap.Records, snap.Roster, days)),
	}, nil
}

// GetTeamSummary implements report.ReportService.
func (s *ReportServiceImpl) GetTeamSummary(ctx context.Context, filter attendance.MonthFilter) (report.TeamSummaryResponse, error) {
	year, month, start, end, err := s.resolveMonth(filter)
	if err != nil {
		return report.TeamSummaryResponse{}, err
	}

	snap, err := s.loadTeamSnapshot(ctx, start, end)
	if err != nil {
		return report.TeamSummaryResponse{}, err
	}

	days, err := s.elapsedWorkingDays(start, end)
	if err != nil {
		return report.TeamSummaryResponse{}, err
	}

	return report.TeamSummaryResponse{
		Month:          int(month),
		Year:           year,
		TotalEmployees: len(snap.Roster),
		Summary:        report.NewSummaryResponse(Aggregate(snap.Records, snap.Roster, days)),
	}, nil
}

// GetTodayStatus implements report.ReportService.
func (s *ReportServiceImpl) GetTodayStatus(ctx context.Context) (report.TodayStatusResponse, error) {
	today := clock.Today(s.clock)

	snap, err := s.loadTeamSnapshot(ctx, today, today)
	if err != nil {
		return report.TodayStatusResponse{}, err
	}

	view := TodayStatus(snap.Roster, snap.Records)
	loc := s.clock.Location()

	resp := report.TodayStatusResponse{
		Date:    attendance.DateKey(today),
		Present: make([]attendance.AttendanceResponse, 0, len(view.Present)),
		Absent:  make([]report.EmployeeBrief, 0, len(view.Absent)),
		Late:    make([]attendance.AttendanceResponse, 0, len(view.Late)),
		Total:   view.Total,
	}
	for _, r := range view.Present {
		resp.Present = append(resp.Present, attendance.NewAttendanceResponse(r, loc))
	}
	for _, r := range view.Late {
		resp.Late = append(resp.Late, attendance.NewAttendanceResponse(r, loc))
	}
	for _, e := range view.Absent {
		resp.Absent = append(resp.Absent, report.NewEmployeeBrief(e))
	}
	return resp, nil
}

// GetEmployeeDashboard implements report.ReportService.
func (s *ReportServiceImpl) GetEmployeeDashboard(ctx context.Context, employeeID string) (report.EmployeeDashboardResponse, error) {
	now := s.clock.Now()
	today := clock.StartOfDay(now)
	loc := s.clock.Location()

	monthStart, monthEnd := clock.MonthRange(now.Year(), now.Month(), loc)
	recentStart, _ := TrendWindow(today)

	var (
		month  Snapshot
		recent []attendance.Attendance
	)

	g, gCtx := errgroup.WithContext(ctx)

	g.Go(func() error {
		snap, err := s.loadEmployeeSnapshot(gCtx, employeeID, monthStart, monthEnd)
		if err != nil {
			return err
		}
		month = snap
		return nil
	})

	g.Go(func() error {
		records, err := s.AttendanceRepository.List(gCtx, attendance.RecordFilter{
			EmployeeID: &employeeID,
			StartDate:  &recentStart,
			EndDate:    &today,
		})
		if err != nil {
			return fmt.Errorf("failed to load recent attendance: %w", err)
		}
		recent = records
		return nil
	})

	if err := g.Wait(); err != nil {
		return report.EmployeeDashboardResponse{}, err
	}

	days, err := s.elapsedWorkingDays(monthStart, monthEnd)
	if err != nil {
		return report.EmployeeDashboardResponse{}, err
	}

	resp := report.EmployeeDashboardResponse{
		TodayStatus:      report.TodayNotCheckedIn,
		MonthStats:       report.NewSummaryResponse(Aggregate(month.Records, month.Roster, days)),
		RecentAttendance: make([]attendance.AttendanceResponse, 0, recentAttendanceLimit),
	}

	todayKey := attendance.DateKey(today)
	for _, r := range recent {
		if attendance.DateKey(r.Date) == todayKey {
			current := attendance.NewAttendanceResponse(r, loc)
			resp.TodayAttendance = &current
			switch {
			case r.HasCheckedOut():
				resp.TodayStatus = report.TodayCheckedOut
			case r.HasCheckedIn():
				resp.TodayStatus = report.TodayCheckedIn
			}
		}
		if len(resp.RecentAttendance) < recentAttendanceLimit {
			resp.RecentAttendance = append(resp.RecentAttendance, attendance.NewAttendanceResponse(r, loc))
		}
	}

	return resp, nil
}

// GetManagerDashboard implements report.ReportService.
func (s *ReportServiceImpl) GetManagerDashboard(ctx context.Context) (report.ManagerDashboardResponse, error) {
	today := clock.Today(s.clock)
	weekStart, weekEnd := TrendWindow(today)

	snap, err := s.loadTeamSnapshot(ctx, weekStart, weekEnd)
	if err != nil {
		return report.ManagerDashboardResponse{}, err
	}

	todayKey := attendance.DateKey(today)
	todayRecords := make([]attendance.Attendance, 0, len(snap.Roster))
	for _, r := range snap.Records {
		if attendance.DateKey(r.Date) == todayKey {
			todayRecords = append(todayRecords, r)
		}
	}

	view := TodayStatus(snap.Roster, todayRecords)
	loc := s.clock.Location()

	resp := report.ManagerDashboardResponse{
		TotalEmployees: len(snap.Roster),
		TodayAttendance: report.TodayCounts{
			Present: len(view.Present),
			Absent:  len(view.Absent),
		},
		LateArrivals:    make([]report.LateArrival, 0, len(view.Late)),
		WeeklyTrend:     WeeklyTrend(snap.Records, today),
		DepartmentWise:  []report.DepartmentStatResponse{},
		AbsentEmployees: make([]report.EmployeeBrief, 0, len(view.Absent)),
	}

	for _, r := range view.Late {
		resp.LateArrivals = append(resp.LateArrivals, report.LateArrival{
			Name:         deref(r.EmployeeName),
			EmployeeCode: deref(r.EmployeeCode),
			Department:   deref(r.Department),
			CheckInTime:  attendance.NewAttendanceResponse(r, loc).CheckInTime,
		})
	}
	for _, stat := range DepartmentBreakdown(snap.Records, snap.Roster) {
		resp.DepartmentWise = append(resp.DepartmentWise, report.DepartmentStatResponse{
			Department: stat.Department,
			Present:    stat.Present,
			Total:      stat.Total,
			Percentage: stat.Percentage.StringFixed(1),
		})
	}
	for _, e := range view.Absent {
		resp.AbsentEmployees = append(resp.AbsentEmployees, report.NewEmployeeBrief(e))
	}

	return resp, nil
}

// Export implements report.ReportService.
func (s *ReportServiceImpl) Export(ctx context.Context, req report.ExportRequest) (report.ExportFile, error) {
	if err := req.Validate(); err != nil {
		return report.ExportFile{}, err
	}

	var filter attendance.RecordFilter
	if req.EmployeeCode != nil && *req.EmployeeCode != "" {
		emp, err := s.EmployeeRepository.GetByEmployeeCode(ctx, *req.EmployeeCode)
		if err != nil {
			return report.ExportFile{}, err
		}
		filter.EmployeeID = &emp.ID
	}
	filter.StartDate, filter.EndDate = req.Bounds()

	records, err := s.AttendanceRepository.List(ctx, filter)
	if err != nil {
		return report.ExportFile{}, fmt.Errorf("failed to list attendance for export: %w", err)
	}

	now := s.clock.Now()
	loc := s.clock.Location()
	file := report.ExportFile{Rows: len(records), GeneratedAt: now}

	switch format := req.ResolvedFormat(); format {
	case report.ExportFormatCSV:
		file.Filename = "attendance.csv"
		file.ContentType = "text/csv"
		file.Content = WriteCSV(records, loc)
	case report.ExportFormatXLSX:
		content, err := WriteXLSX(records, loc)
		if err != nil {
			return report.ExportFile{}, err
		}
		file.Filename = "attendance.xlsx"
		file.ContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
		file.Content = content
	default:
		return report.ExportFile{}, fmt.Errorf("%w: %s", report.ErrUnsupportedExportFormat, format)
	}

	s.logger.InfoContext(ctx, "attendance exported",
		slog.String("format", string(req.ResolvedFormat())),
		slog.Int("rows", file.Rows),
	)

	return file, nil
}
