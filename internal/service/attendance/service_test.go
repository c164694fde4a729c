package attendance_test

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/attendance"
	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/employee"
	"github.com/cmlabs-hris/attendance-backend-go/internal/pkg/clock"
	"github.com/cmlabs-hris/attendance-backend-go/internal/pkg/database"
	"github.com/cmlabs-hris/attendance-backend-go/internal/pkg/validator"
	attendanceService "github.com/cmlabs-hris/attendance-backend-go/internal/service/attendance"
	"github.com/cmlabs-hris/attendance-backend-go/internal/testfixtures"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testEnv struct {
	clock     *clock.Fixed
	employees *testfixtures.EmployeeStore
	records   *testfixtures.AttendanceStore
	service   attendance.AttendanceService
	alice     employee.Employee
	bob       employee.Employee
}

var wib = time.FixedZone("WIB", 7*60*60)

func newTestEnv(t *testing.T, now time.Time) *testEnv {
	t.Helper()
	alice := testfixtures.NewEmployee("EMP001", testfixtures.WithName("Alice"))
	bob := testfixtures.NewEmployee("EMP002", testfixtures.WithName("Bob"), testfixtures.WithDepartment("Sales"))
	employees := testfixtures.NewEmployeeStore(alice, bob)
	records := testfixtures.NewAttendanceStore(employees)
	clk := clock.NewFixed(now)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	return &testEnv{
		clock:     clk,
		employees: employees,
		records:   records,
		service:   attendanceService.NewAttendanceService(records, employees, clk, logger),
		alice:     alice,
		bob:       bob,
	}
}

func TestCheckIn(t *testing.T) {
	tests := []struct {
		name   string
		hour   int
		minute int
		want   attendance.Status
	}{
		{"early is present", 7, 30, attendance.StatusPresent},
		{"08:59 is present", 8, 59, attendance.StatusPresent},
		{"09:00 is late", 9, 0, attendance.StatusLate},
		{"09:59 is late", 9, 59, attendance.StatusLate},
		{"10:00 is half-day", 10, 0, attendance.StatusHalfDay},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := newTestEnv(t, testfixtures.At(tt.hour, tt.minute, wib))

			resp, err := env.service.CheckIn(context.Background(), env.alice.ID)
			require.NoError(t, err)
			assert.Equal(t, string(tt.want), resp.Status)
			assert.Equal(t, "2024-03-15", resp.Date)
			require.NotNil(t, resp.CheckInTime)
			assert.Nil(t, resp.CheckOutTime)
			assert.Equal(t, "0.00", resp.TotalHours)
		})
	}
}

func TestCheckIn_UsesLocalCalendarDay(t *testing.T) {
	// 23:30 UTC on the 14th is 06:30 on the 15th in WIB.
	env := newTestEnv(t, time.Date(2024, 3, 14, 23, 30, 0, 0, time.UTC).In(wib))

	resp, err := env.service.CheckIn(context.Background(), env.alice.ID)
	require.NoError(t, err)
	assert.Equal(t, "2024-03-15", resp.Date)
	assert.Equal(t, string(attendance.StatusPresent), resp.Status)
}

func TestCheckIn_Twice(t *testing.T) {
	env := newTestEnv(t, testfixtures.At(8, 0, wib))
	ctx := context.Background()

	_, err := env.service.CheckIn(ctx, env.alice.ID)
	require.NoError(t, err)

	env.clock.Advance(30 * time.Minute)
	_, err = env.service.CheckIn(ctx, env.alice.ID)
	assert.ErrorIs(t, err, attendance.ErrAlreadyCheckedIn)

	env.clock.Advance(9 * time.Hour)
	_, err = env.service.CheckOut(ctx, env.alice.ID)
	require.NoError(t, err)

	_, err = env.service.CheckIn(ctx, env.alice.ID)
	assert.ErrorIs(t, err, attendance.ErrAlreadyCheckedIn)
	assert.Equal(t, 1, env.records.Len())
}

func TestCheckIn_NextDayStartsFresh(t *testing.T) {
	env := newTestEnv(t, testfixtures.At(8, 0, wib))
	ctx := context.Background()

	_, err := env.service.CheckIn(ctx, env.alice.ID)
	require.NoError(t, err)

	env.clock.Advance(24 * time.Hour)
	resp, err := env.service.CheckIn(ctx, env.alice.ID)
	require.NoError(t, err)
	assert.Equal(t, "2024-03-16", resp.Date)
	assert.Equal(t, 2, env.records.Len())
}

func TestCheckIn_UnknownEmployee(t *testing.T) {
	env := newTestEnv(t, testfixtures.At(8, 0, wib))

	_, err := env.service.CheckIn(context.Background(), testfixtures.NextID())
	assert.ErrorIs(t, err, employee.ErrEmployeeNotFound)
}

func TestCheckOut(t *testing.T) {
	env := newTestEnv(t, testfixtures.At(9, 0, wib))
	ctx := context.Background()

	_, err := env.service.CheckIn(ctx, env.alice.ID)
	require.NoError(t, err)

	env.clock.Set(testfixtures.At(17, 30, wib))
	resp, err := env.service.CheckOut(ctx, env.alice.ID)
	require.NoError(t, err)
	assert.Equal(t, "8.50", resp.TotalHours)
	require.NotNil(t, resp.CheckOutTime)
	assert.Equal(t, "2024-03-15T17:30:00+07:00", *resp.CheckOutTime)
	// status is fixed at check-in
	assert.Equal(t, string(attendance.StatusLate), resp.Status)
}

func TestCheckOut_BeforeCheckIn(t *testing.T) {
	env := newTestEnv(t, testfixtures.At(17, 0, wib))

	_, err := env.service.CheckOut(context.Background(), env.alice.ID)
	assert.ErrorIs(t, err, attendance.ErrNotCheckedIn)
}

func TestCheckOut_Twice(t *testing.T) {
	env := newTestEnv(t, testfixtures.At(8, 0, wib))
	ctx := context.Background()

	_, err := env.service.CheckIn(ctx, env.alice.ID)
	require.NoError(t, err)

	env.clock.Advance(8 * time.Hour)
	_, err = env.service.CheckOut(ctx, env.alice.ID)
	require.NoError(t, err)

	env.clock.Advance(time.Hour)
	_, err = env.service.CheckOut(ctx, env.alice.ID)
	assert.ErrorIs(t, err, attendance.ErrAlreadyCheckedOut)
}

func TestCheckOut_ClockWentBackwards(t *testing.T) {
	env := newTestEnv(t, testfixtures.At(9, 0, wib))
	ctx := context.Background()

	_, err := env.service.CheckIn(ctx, env.alice.ID)
	require.NoError(t, err)

	env.clock.Set(testfixtures.At(8, 0, wib))
	_, err = env.service.CheckOut(ctx, env.alice.ID)
	assert.ErrorIs(t, err, attendance.ErrCheckOutBeforeCheckIn)
}

func TestCheckIn_StoreUnavailable(t *testing.T) {
	env := newTestEnv(t, testfixtures.At(8, 0, wib))
	env.records.Err = fmt.Errorf("dial: %w", database.ErrStoreUnavailable)

	_, err := env.service.CheckIn(context.Background(), env.alice.ID)
	assert.True(t, database.IsUnavailable(err))
}

func TestGetToday(t *testing.T) {
	env := newTestEnv(t, testfixtures.At(8, 0, wib))
	ctx := context.Background()

	today, err := env.service.GetToday(ctx, env.alice.ID)
	require.NoError(t, err)
	assert.Nil(t, today)

	_, err = env.service.CheckIn(ctx, env.alice.ID)
	require.NoError(t, err)

	today, err = env.service.GetToday(ctx, env.alice.ID)
	require.NoError(t, err)
	require.NotNil(t, today)
	assert.Equal(t, "2024-03-15", today.Date)
}

func TestGetMyHistory(t *testing.T) {
	env := newTestEnv(t, testfixtures.At(12, 0, wib))
	env.records.Seed(
		testfixtures.CheckedOut(env.alice, time.Date(2024, 2, 28, 8, 0, 0, 0, wib), time.Date(2024, 2, 28, 17, 0, 0, 0, wib)),
		testfixtures.CheckedOut(env.alice, time.Date(2024, 3, 1, 8, 0, 0, 0, wib), time.Date(2024, 3, 1, 17, 0, 0, 0, wib)),
		testfixtures.CheckedIn(env.alice, time.Date(2024, 3, 14, 9, 10, 0, 0, wib)),
		testfixtures.CheckedIn(env.bob, time.Date(2024, 3, 14, 8, 10, 0, 0, wib)),
	)
	ctx := context.Background()

	t.Run("month without year uses the current year", func(t *testing.T) {
		month := "3"
		resp, err := env.service.GetMyHistory(ctx, env.alice.ID, attendance.MonthFilter{Month: &month})
		require.NoError(t, err)
		require.Equal(t, 2, resp.TotalCount)
		assert.Equal(t, "2024-03-14", resp.Attendances[0].Date)
		assert.Equal(t, "2024-03-01", resp.Attendances[1].Date)
	})

	t.Run("all history without filter", func(t *testing.T) {
		resp, err := env.service.GetMyHistory(ctx, env.alice.ID, attendance.MonthFilter{})
		require.NoError(t, err)
		assert.Equal(t, 3, resp.TotalCount)
	})

	t.Run("invalid month", func(t *testing.T) {
		month := "13"
		_, err := env.service.GetMyHistory(ctx, env.alice.ID, attendance.MonthFilter{Month: &month})
		var verrs validator.ValidationErrors
		assert.ErrorAs(t, err, &verrs)
	})
}

func TestListAttendance(t *testing.T) {
	env := newTestEnv(t, testfixtures.At(12, 0, wib))
	env.records.Seed(
		testfixtures.CheckedIn(env.alice, time.Date(2024, 3, 13, 8, 0, 0, 0, wib)),
		testfixtures.CheckedIn(env.alice, time.Date(2024, 3, 14, 9, 30, 0, 0, wib)),
		testfixtures.CheckedIn(env.bob, time.Date(2024, 3, 14, 9, 5, 0, 0, wib)),
	)
	ctx := context.Background()

	t.Run("everything newest first", func(t *testing.T) {
		resp, err := env.service.ListAttendance(ctx, attendance.AttendanceFilter{})
		require.NoError(t, err)
		require.Equal(t, 3, resp.TotalCount)
		assert.Equal(t, "2024-03-14", resp.Attendances[0].Date)
		assert.Equal(t, "EMP001", resp.Attendances[0].EmployeeCode)
		assert.Equal(t, "2024-03-13", resp.Attendances[2].Date)
	})

	t.Run("by status and code", func(t *testing.T) {
		code, status := "EMP002", "LATE"
		resp, err := env.service.ListAttendance(ctx, attendance.AttendanceFilter{EmployeeCode: &code, Status: &status})
		require.NoError(t, err)
		require.Equal(t, 1, resp.TotalCount)
		assert.Equal(t, "Bob", resp.Attendances[0].EmployeeName)
		assert.Equal(t, "Sales", resp.Attendances[0].Department)
	})

	t.Run("by date range", func(t *testing.T) {
		start, end := "2024-03-13", "2024-03-13"
		resp, err := env.service.ListAttendance(ctx, attendance.AttendanceFilter{
			DateRangeFilter: attendance.DateRangeFilter{StartDate: &start, EndDate: &end},
		})
		require.NoError(t, err)
		assert.Equal(t, 1, resp.TotalCount)
	})

	t.Run("unknown code", func(t *testing.T) {
		code := "EMP999"
		_, err := env.service.ListAttendance(ctx, attendance.AttendanceFilter{EmployeeCode: &code})
		assert.ErrorIs(t, err, employee.ErrEmployeeNotFound)
	})

	t.Run("unknown status", func(t *testing.T) {
		status := "sick"
		_, err := env.service.ListAttendance(ctx, attendance.AttendanceFilter{Status: &status})
		var verrs validator.ValidationErrors
		require.ErrorAs(t, err, &verrs)
		assert.Contains(t, verrs.ToMap(), "status")
	})
}

func TestGetEmployeeAttendance(t *testing.T) {
	env := newTestEnv(t, testfixtures.At(12, 0, wib))
	env.records.Seed(testfixtures.CheckedIn(env.bob, time.Date(2024, 3, 14, 8, 0, 0, 0, wib)))
	ctx := context.Background()

	resp, err := env.service.GetEmployeeAttendance(ctx, env.bob.ID, attendance.DateRangeFilter{})
	require.NoError(t, err)
	assert.Equal(t, 1, resp.TotalCount)

	_, err = env.service.GetEmployeeAttendance(ctx, "not-a-uuid", attendance.DateRangeFilter{})
	var verrs validator.ValidationErrors
	assert.ErrorAs(t, err, &verrs)

	_, err = env.service.GetEmployeeAttendance(ctx, testfixtures.NextID(), attendance.DateRangeFilter{})
	assert.ErrorIs(t, err, employee.ErrEmployeeNotFound)
}
