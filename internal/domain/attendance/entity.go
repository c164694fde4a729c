package attendance

import (
	"time"

	"github.com/shopspring/decimal"
)

type Status string

const (
	StatusPresent Status = "present"
	StatusAbsent  Status = "absent"
	StatusLate    Status = "late"
	StatusHalfDay Status = "half-day"
)

// Statuses lists every valid status in display order.
var Statuses = []Status{StatusPresent, StatusAbsent, StatusLate, StatusHalfDay}

func (s Status) IsValid() bool {
	for _, v := range Statuses {
		if s == v {
			return true
		}
	}
	return false
}

// Attendance is one employee's record for one calendar day.
// (EmployeeID, Date) is unique.
type Attendance struct {
	ID           string
	EmployeeID   string
	Date         time.Time
	CheckInTime  *time.Time
	CheckOutTime *time.Time
	Status       Status
	TotalHours   decimal.Decimal
	CreatedAt    time.Time
	UpdatedAt    time.Time

	// DTO
	EmployeeName *string
	EmployeeCode *string
	Department   *string
}

// HasCheckedIn reports whether a check-in has been recorded.
func (a *Attendance) HasCheckedIn() bool {
	return a != nil && a.CheckInTime != nil
}

// HasCheckedOut reports whether a check-out has been recorded.
func (a *Attendance) HasCheckedOut() bool {
	return a != nil && a.CheckOutTime != nil
}

// DateKey formats a calendar day as YYYY-MM-DD. It is the bucket key used by
// every per-day grouping so records scanned from the database (UTC midnight)
// and days computed from the clock (local midnight) line up.
func DateKey(t time.Time) string {
	return t.Format("2006-01-02")
}
