package testfixtures

import (
	"fmt"
	"strings"
	"sync/atomic"
	"time"

	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/attendance"
	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/employee"
	"github.com/shopspring/decimal"
)

var idCounter uint64

// NextID returns a deterministic, well-formed UUIDv7-shaped identifier.
func NextID() string {
	idx := atomic.AddUint64(&idCounter, 1)
	return fmt.Sprintf("00000000-0000-7000-8000-%012d", idx)
}

var referenceTime = time.Date(2024, time.March, 15, 8, 30, 0, 0, time.UTC)

// ReferenceTime is Friday 2024-03-15 08:30 UTC.
func ReferenceTime() time.Time {
	return referenceTime
}

// At returns the given wall clock time on 2024-03-15 in loc.
func At(hour, minute int, loc *time.Location) time.Time {
	return time.Date(2024, time.March, 15, hour, minute, 0, 0, loc)
}

// EmployeeOption configures the generated employee fixture.
type EmployeeOption func(*employee.Employee)

// NewEmployee returns an employee fixture with role employee in Engineering.
func NewEmployee(code string, opts ...EmployeeOption) employee.Employee {
	emp := employee.Employee{
		ID:           NextID(),
		Name:         "Employee " + code,
		Email:        strings.ToLower(code) + "@company.com",
		PasswordHash: "hash-" + code,
		EmployeeCode: code,
		Department:   "Engineering",
		Role:         employee.RoleEmployee,
		CreatedAt:    referenceTime,
		UpdatedAt:    referenceTime,
	}
	for _, opt := range opts {
		opt(&emp)
	}
	return emp
}

func WithName(name string) EmployeeOption {
	return func(e *employee.Employee) {
		e.Name = name
	}
}

func WithDepartment(department string) EmployeeOption {
	return func(e *employee.Employee) {
		e.Department = department
	}
}

func WithRole(role employee.Role) EmployeeOption {
	return func(e *employee.Employee) {
		e.Role = role
	}
}

func WithPasswordHash(hash string) EmployeeOption {
	return func(e *employee.Employee) {
		e.PasswordHash = hash
	}
}

func WithEmail(email string) EmployeeOption {
	return func(e *employee.Employee) {
		e.Email = email
	}
}

// CheckedIn builds a record for emp checked in at checkIn, classified as the
// workflow would classify it.
func CheckedIn(emp employee.Employee, checkIn time.Time) attendance.Attendance {
	y, m, d := checkIn.Date()
	return attendance.Attendance{
		ID:          NextID(),
		EmployeeID:  emp.ID,
		Date:        time.Date(y, m, d, 0, 0, 0, 0, checkIn.Location()),
		CheckInTime: &checkIn,
		Status:      attendance.ClassifyStatus(&checkIn),
		TotalHours:  decimal.Zero,
		CreatedAt:   checkIn,
		UpdatedAt:   checkIn,
	}
}

// CheckedOut builds a completed record for emp.
func CheckedOut(emp employee.Employee, checkIn, checkOut time.Time) attendance.Attendance {
	rec := CheckedIn(emp, checkIn)
	hours, err := attendance.CalculateHours(&checkIn, &checkOut)
	if err != nil {
		panic(err)
	}
	rec.CheckOutTime = &checkOut
	rec.TotalHours = hours
	rec.UpdatedAt = checkOut
	return rec
}
