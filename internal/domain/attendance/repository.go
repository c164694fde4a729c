package attendance

import (
	"context"
	"time"
)

// RecordFilter selects attendance records. Nil fields are not applied.
// StartDate and EndDate are calendar days, both inclusive.
type RecordFilter struct {
	EmployeeID *string
	StartDate  *time.Time
	EndDate    *time.Time
	Status     *Status
}

// AttendanceRepository defines data access methods for attendance records.
type AttendanceRepository interface {
	// Create stores the first check-in of a day. It returns ErrAlreadyCheckedIn
	// when the (employee, date) record already carries a check-in, including
	// when a concurrent request won the insert.
	Create(ctx context.Context, attendance Attendance) (Attendance, error)

	// GetByEmployeeAndDate returns nil, nil when no record exists for that day.
	GetByEmployeeAndDate(ctx context.Context, employeeID string, date time.Time) (*Attendance, error)

	// RecordCheckOut sets check-out time and total hours once. It returns
	// ErrAlreadyCheckedOut when the record already has a check-out.
	RecordCheckOut(ctx context.Context, attendance Attendance) (Attendance, error)

	// List returns records joined with employee details, newest date first.
	List(ctx context.Context, filter RecordFilter) ([]Attendance, error)
}
