package report_test

import (
	"context"
	"io"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/attendance"
	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/employee"
	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/report"
	"github.com/cmlabs-hris/attendance-backend-go/internal/pkg/calendar"
	"github.com/cmlabs-hris/attendance-backend-go/internal/pkg/clock"
	"github.com/cmlabs-hris/attendance-backend-go/internal/pkg/database"
	"github.com/cmlabs-hris/attendance-backend-go/internal/pkg/validator"
	reportService "github.com/cmlabs-hris/attendance-backend-go/internal/service/report"
	"github.com/cmlabs-hris/attendance-backend-go/internal/testfixtures"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func at(d, hour, minute int) time.Time {
	return time.Date(2024, 3, d, hour, minute, 0, 0, time.UTC)
}

type testEnv struct {
	records *testfixtures.AttendanceStore
	service report.ReportService
	alice   employee.Employee
	bob     employee.Employee
	carol   employee.Employee
	boss    employee.Employee
}

// newTestEnv freezes the clock at Friday 2024-03-15 12:00 UTC. Alice checked
// in on time on the 14th and 15th, Bob arrived late on the 15th and Carol
// has no records.
func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	alice := testfixtures.NewEmployee("EMP001", testfixtures.WithName("Alice"))
	bob := testfixtures.NewEmployee("EMP002", testfixtures.WithName("Bob"))
	carol := testfixtures.NewEmployee("EMP003", testfixtures.WithName("Carol"), testfixtures.WithDepartment("Sales"))
	boss := testfixtures.NewEmployee("MGR001", testfixtures.WithRole(employee.RoleManager), testfixtures.WithDepartment("Management"))

	employees := testfixtures.NewEmployeeStore(alice, bob, carol, boss)
	records := testfixtures.NewAttendanceStore(employees)
	records.Seed(
		testfixtures.CheckedOut(alice, at(14, 8, 0), at(14, 17, 0)),
		testfixtures.CheckedIn(alice, at(15, 8, 0)),
		testfixtures.CheckedIn(bob, at(15, 9, 30)),
	)

	svc := reportService.NewReportService(
		records,
		employees,
		clock.NewFixed(at(15, 12, 0)),
		calendar.DefaultWorkWeek(),
		slog.New(slog.NewTextHandler(io.Discard, nil)),
	)

	return &testEnv{records: records, service: svc, alice: alice, bob: bob, carol: carol, boss: boss}
}

func TestGetMySummary(t *testing.T) {
	env := newTestEnv(t)

	resp, err := env.service.GetMySummary(context.Background(), env.alice.ID, attendance.MonthFilter{})
	require.NoError(t, err)
	assert.Equal(t, 3, resp.Month)
	assert.Equal(t, 2024, resp.Year)
	assert.Equal(t, 2, resp.Summary.Present)
	// 11 working days from Mar 1 to Mar 15, two of them attended
	assert.Equal(t, 9, resp.Summary.Absent)
	assert.Equal(t, "9.00", resp.Summary.TotalHours)
}

func TestGetMySummary_PastMonthWithoutRecords(t *testing.T) {
	env := newTestEnv(t)
	month, year := "2", "2024"

	resp, err := env.service.GetMySummary(context.Background(), env.alice.ID, attendance.MonthFilter{Month: &month, Year: &year})
	require.NoError(t, err)
	assert.Equal(t, 0, resp.Summary.Present)
	assert.Equal(t, 21, resp.Summary.Absent)
	assert.Equal(t, "0.00", resp.Summary.TotalHours)
}

func TestGetMySummary_FutureMonthHasNoAbsences(t *testing.T) {
	env := newTestEnv(t)
	month := "4"

	resp, err := env.service.GetMySummary(context.Background(), env.alice.ID, attendance.MonthFilter{Month: &month})
	require.NoError(t, err)
	assert.Equal(t, 0, resp.Summary.Absent)
}

func TestGetMySummary_Invalid(t *testing.T) {
	env := newTestEnv(t)
	month := "0"

	_, err := env.service.GetMySummary(context.Background(), env.alice.ID, attendance.MonthFilter{Month: &month})
	var verrs validator.ValidationErrors
	assert.ErrorAs(t, err, &verrs)

	_, err = env.service.GetMySummary(context.Background(), testfixtures.NextID(), attendance.MonthFilter{})
	assert.ErrorIs(t, err, employee.ErrEmployeeNotFound)
}

func TestGetTeamSummary(t *testing.T) {
	env := newTestEnv(t)

	resp, err := env.service.GetTeamSummary(context.Background(), attendance.MonthFilter{})
	require.NoError(t, err)
	assert.Equal(t, 3, resp.TotalEmployees)
	assert.Equal(t, 2, resp.Summary.Present)
	assert.Equal(t, 1, resp.Summary.Late)
	assert.Equal(t, 30, resp.Summary.Absent)
}

func TestGetTodayStatus(t *testing.T) {
	env := newTestEnv(t)

	resp, err := env.service.GetTodayStatus(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "2024-03-15", resp.Date)
	assert.Len(t, resp.Present, 2)
	require.Len(t, resp.Late, 1)
	assert.Equal(t, "EMP002", resp.Late[0].EmployeeCode)
	require.Len(t, resp.Absent, 1)
	assert.Equal(t, "Carol", resp.Absent[0].Name)
	assert.Equal(t, 3, resp.Total)
}

func TestGetEmployeeDashboard(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	t.Run("checked in", func(t *testing.T) {
		resp, err := env.service.GetEmployeeDashboard(ctx, env.alice.ID)
		require.NoError(t, err)
		assert.Equal(t, report.TodayCheckedIn, resp.TodayStatus)
		require.NotNil(t, resp.TodayAttendance)
		assert.Equal(t, "2024-03-15", resp.TodayAttendance.Date)
		assert.Equal(t, 2, resp.MonthStats.Present)
		require.Len(t, resp.RecentAttendance, 2)
		assert.Equal(t, "2024-03-15", resp.RecentAttendance[0].Date)
	})

	t.Run("checked out", func(t *testing.T) {
		env.records.Seed(testfixtures.CheckedOut(env.bob, at(15, 9, 30), at(15, 11, 30)))
		resp, err := env.service.GetEmployeeDashboard(ctx, env.bob.ID)
		require.NoError(t, err)
		assert.Equal(t, report.TodayCheckedOut, resp.TodayStatus)
		assert.Equal(t, "2.00", resp.MonthStats.TotalHours)
	})

	t.Run("not checked in", func(t *testing.T) {
		resp, err := env.service.GetEmployeeDashboard(ctx, env.carol.ID)
		require.NoError(t, err)
		assert.Equal(t, report.TodayNotCheckedIn, resp.TodayStatus)
		assert.Nil(t, resp.TodayAttendance)
		assert.Empty(t, resp.RecentAttendance)
		assert.Equal(t, 11, resp.MonthStats.Absent)
	})
}

func TestGetManagerDashboard(t *testing.T) {
	env := newTestEnv(t)

	resp, err := env.service.GetManagerDashboard(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 3, resp.TotalEmployees)
	assert.Equal(t, report.TodayCounts{Present: 2, Absent: 1}, resp.TodayAttendance)

	require.Len(t, resp.LateArrivals, 1)
	assert.Equal(t, "Bob", resp.LateArrivals[0].Name)
	require.NotNil(t, resp.LateArrivals[0].CheckInTime)
	assert.Equal(t, "2024-03-15T09:30:00Z", *resp.LateArrivals[0].CheckInTime)

	require.Len(t, resp.WeeklyTrend, 7)
	assert.Equal(t, "2024-03-09", resp.WeeklyTrend[0].Date)
	assert.Equal(t, 1, resp.WeeklyTrend[5].Present)
	assert.Equal(t, 2, resp.WeeklyTrend[6].Present)

	require.Len(t, resp.DepartmentWise, 1)
	assert.Equal(t, report.DepartmentStatResponse{Department: "Engineering", Present: 3, Total: 3, Percentage: "100.0"}, resp.DepartmentWise[0])

	require.Len(t, resp.AbsentEmployees, 1)
	assert.Equal(t, "EMP003", resp.AbsentEmployees[0].EmployeeCode)
}

func TestGetManagerDashboard_StoreUnavailable(t *testing.T) {
	env := newTestEnv(t)
	env.records.Err = database.ErrStoreUnavailable

	_, err := env.service.GetManagerDashboard(context.Background())
	assert.True(t, database.IsUnavailable(err))
}

func TestExport(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	t.Run("csv by default", func(t *testing.T) {
		file, err := env.service.Export(ctx, report.ExportRequest{})
		require.NoError(t, err)
		assert.Equal(t, "attendance.csv", file.Filename)
		assert.Equal(t, "text/csv", file.ContentType)
		assert.Equal(t, 3, file.Rows)

		lines := strings.Split(string(file.Content), "\n")
		require.Len(t, lines, 4)
		assert.Contains(t, lines[1], `"N/A","present","0"`)
	})

	t.Run("filtered by employee and range", func(t *testing.T) {
		code, start, end := "EMP001", "2024-03-14", "2024-03-14"
		file, err := env.service.Export(ctx, report.ExportRequest{
			EmployeeCode:    &code,
			DateRangeFilter: attendance.DateRangeFilter{StartDate: &start, EndDate: &end},
		})
		require.NoError(t, err)
		assert.Equal(t, 1, file.Rows)
		assert.Contains(t, string(file.Content), `"9"`)
	})

	t.Run("xlsx", func(t *testing.T) {
		format := "XLSX"
		file, err := env.service.Export(ctx, report.ExportRequest{Format: &format})
		require.NoError(t, err)
		assert.Equal(t, "attendance.xlsx", file.Filename)
		assert.NotEmpty(t, file.Content)
	})

	t.Run("unknown format", func(t *testing.T) {
		format := "pdf"
		_, err := env.service.Export(ctx, report.ExportRequest{Format: &format})
		var verrs validator.ValidationErrors
		require.ErrorAs(t, err, &verrs)
		assert.Contains(t, verrs.ToMap(), "format")
	})

	t.Run("unknown employee", func(t *testing.T) {
		code := "EMP404"
		_, err := env.service.Export(ctx, report.ExportRequest{EmployeeCode: &code})
		assert.ErrorIs(t, err, employee.ErrEmployeeNotFound)
	})
}
