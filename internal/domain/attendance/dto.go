package attendance

import (
	"strconv"
	"strings"
	"time"

	"github.com/cmlabs-hris/attendance-backend-go/internal/pkg/validator"
)

// ========================================
// ATTENDANCE DTOs
// ========================================

type AttendanceResponse struct {
	ID           string  `json:"id"`
	EmployeeID   string  `json:"employee_id"`
	EmployeeName string  `json:"employee_name,omitempty"`
	EmployeeCode string  `json:"employee_code,omitempty"`
	Department   string  `json:"department,omitempty"`
	Date         string  `json:"date"`
	CheckInTime  *string `json:"check_in_time"`
	CheckOutTime *string `json:"check_out_time"`
	Status       string  `json:"status"`
	TotalHours   string  `json:"total_hours"`
	CreatedAt    string  `json:"created_at"`
	UpdatedAt    string  `json:"updated_at"`
}

type ListAttendanceResponse struct {
	TotalCount  int                  `json:"total_count"`
	Attendances []AttendanceResponse `json:"attendances"`
}

// DateRangeFilter carries optional YYYY-MM-DD bounds. Both or neither must be set.
type DateRangeFilter struct {
	StartDate *string `json:"start_date,omitempty"`
	EndDate   *string `json:"end_date,omitempty"`
}

func (f *DateRangeFilter) Validate() error {
	var errs validator.ValidationErrors
	errs = append(errs, f.validate()...)
	if len(errs) > 0 {
		return errs
	}
	return nil
}

func (f *DateRangeFilter) validate() validator.ValidationErrors {
	var errs validator.ValidationErrors

	hasStart := f.StartDate != nil && *f.StartDate != ""
	hasEnd := f.EndDate != nil && *f.EndDate != ""

	if hasStart != hasEnd {
		errs = append(errs, validator.ValidationError{
			Field:   "date_range",
			Message: "start_date and end_date must be provided together",
		})
		return errs
	}
	if !hasStart {
		return nil
	}

	start, validStart := validator.IsValidDate(*f.StartDate)
	if !validStart {
		errs = append(errs, validator.ValidationError{
			Field:   "start_date",
			Message: "start_date must be in YYYY-MM-DD format",
		})
	}
	end, validEnd := validator.IsValidDate(*f.EndDate)
	if !validEnd {
		errs = append(errs, validator.ValidationError{
			Field:   "end_date",
			Message: "end_date must be in YYYY-MM-DD format",
		})
	}
	if validStart && validEnd && end.Before(start) {
		errs = append(errs, validator.ValidationError{
			Field:   "end_date",
			Message: "end_date must not be before start_date",
		})
	}
	return errs
}

// Bounds returns the parsed range, or nils when no range was given.
// Call Validate first.
func (f *DateRangeFilter) Bounds() (*time.Time, *time.Time) {
	if f.StartDate == nil || f.EndDate == nil || *f.StartDate == "" || *f.EndDate == "" {
		return nil, nil
	}
	start, _ := validator.IsValidDate(*f.StartDate)
	end, _ := validator.IsValidDate(*f.EndDate)
	return &start, &end
}

// AttendanceFilter is the manager-side record query.
type AttendanceFilter struct {
	EmployeeCode *string `json:"employee_code,omitempty"`
	Status       *string `json:"status,omitempty"`
	DateRangeFilter
}

func (f *AttendanceFilter) Validate() error {
	var errs validator.ValidationErrors

	if f.EmployeeCode != nil && *f.EmployeeCode != "" && !validator.IsValidEmployeeCode(*f.EmployeeCode) {
		errs = append(errs, validator.ValidationError{
			Field:   "employee_code",
			Message: "employee_code must be 2-20 letters, digits or dashes",
		})
	}

	if f.Status != nil && *f.Status != "" {
		if !Status(strings.ToLower(*f.Status)).IsValid() {
			errs = append(errs, validator.ValidationError{
				Field:   "status",
				Message: "status must be one of: present, absent, late, half-day",
			})
		}
	}

	errs = append(errs, f.DateRangeFilter.validate()...)

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// MonthFilter selects a calendar month. When both fields are empty the caller's
// current month applies.
type MonthFilter struct {
	Month *string `json:"month,omitempty"`
	Year  *string `json:"year,omitempty"`
}

func (f *MonthFilter) Validate() error {
	var errs validator.ValidationErrors

	if f.Month != nil && *f.Month != "" {
		m, err := strconv.Atoi(*f.Month)
		if err != nil || m < 1 || m > 12 {
			errs = append(errs, validator.ValidationError{
				Field:   "month",
				Message: "month must be a number between 1 and 12",
			})
		}
	}

	if f.Year != nil && *f.Year != "" {
		y, err := strconv.Atoi(*f.Year)
		if err != nil || y < 1970 || y > 9999 {
			errs = append(errs, validator.ValidationError{
				Field:   "year",
				Message: "year must be a four digit number",
			})
		}
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// IsSet reports whether either month or year was supplied.
func (f *MonthFilter) IsSet() bool {
	return (f.Month != nil && *f.Month != "") || (f.Year != nil && *f.Year != "")
}

// Resolve returns the selected month, filling missing parts from now.
// Call Validate first.
func (f *MonthFilter) Resolve(now time.Time) (int, time.Month) {
	year, month := now.Year(), now.Month()
	if f.Year != nil && *f.Year != "" {
		if y, err := strconv.Atoi(*f.Year); err == nil {
			year = y
		}
	}
	if f.Month != nil && *f.Month != "" {
		if m, err := strconv.Atoi(*f.Month); err == nil {
			month = time.Month(m)
		}
	}
	return year, month
}

// NewAttendanceResponse renders a record with timestamps in loc.
func NewAttendanceResponse(att Attendance, loc *time.Location) AttendanceResponse {
	resp := AttendanceResponse{
		ID:           att.ID,
		EmployeeID:   att.EmployeeID,
		Date:         DateKey(att.Date),
		CheckInTime:  formatTimePtr(att.CheckInTime, loc),
		CheckOutTime: formatTimePtr(att.CheckOutTime, loc),
		Status:       string(att.Status),
		TotalHours:   att.TotalHours.StringFixed(2),
		CreatedAt:    att.CreatedAt.In(loc).Format(time.RFC3339),
		UpdatedAt:    att.UpdatedAt.In(loc).Format(time.RFC3339),
	}
	if att.EmployeeName != nil {
		resp.EmployeeName = *att.EmployeeName
	}
	if att.EmployeeCode != nil {
		resp.EmployeeCode = *att.EmployeeCode
	}
	if att.Department != nil {
		resp.Department = *att.Department
	}
	return resp
}

func NewListAttendanceResponse(records []Attendance, loc *time.Location) ListAttendanceResponse {
	resp := ListAttendanceResponse{
		TotalCount:  len(records),
		Attendances: make([]AttendanceResponse, 0, len(records)),
	}
	for _, att := range records {
		resp.Attendances = append(resp.Attendances, NewAttendanceResponse(att, loc))
	}
	return resp
}

func formatTimePtr(t *time.Time, loc *time.Location) *string {
	if t == nil {
		return nil
	}
	formatted := t.In(loc).Format(time.RFC3339)
	return &formatted
}
