package attendance

import "context"

// AttendanceService defines the daily check-in/check-out workflow and record queries.
type AttendanceService interface {
	// CheckIn records the employee's first check-in of today
	CheckIn(ctx context.Context, employeeID string) (AttendanceResponse, error)

	// CheckOut records the employee's check-out for today
	CheckOut(ctx context.Context, employeeID string) (AttendanceResponse, error)

	// GetToday returns today's record for the employee, nil if there is none
	GetToday(ctx context.Context, employeeID string) (*AttendanceResponse, error)

	// GetMyHistory lists the employee's records, optionally limited to a month
	GetMyHistory(ctx context.Context, employeeID string, filter MonthFilter) (ListAttendanceResponse, error)

	// ListAttendance lists records for all employees (manager)
	ListAttendance(ctx context.Context, filter AttendanceFilter) (ListAttendanceResponse, error)

	// GetEmployeeAttendance lists one employee's records (manager)
	GetEmployeeAttendance(ctx context.Context, employeeID string, filter DateRangeFilter) (ListAttendanceResponse, error)
}
