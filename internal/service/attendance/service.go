package attendance

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/attendance"
	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/employee"
	"github.com/cmlabs-hris/attendance-backend-go/internal/pkg/clock"
	"github.com/cmlabs-hris/attendance-backend-go/internal/pkg/validator"
)

type AttendanceServiceImpl struct {
	attendance.AttendanceRepository
	employee.EmployeeRepository
	clock  clock.Clock
	logger *slog.Logger
}

func NewAttendanceService(
	attendanceRepo attendance.AttendanceRepository,
	employeeRepo employee.EmployeeRepository,
	clk clock.Clock,
	logger *slog.Logger,
) attendance.AttendanceService {
	if logger == nil {
		logger = slog.Default()
	}
	return &AttendanceServiceImpl{
		AttendanceRepository: attendanceRepo,
		EmployeeRepository:   employeeRepo,
		clock:                clk,
		logger:               logger,
	}
}

// CheckIn implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) CheckIn(ctx context.Context, employeeID string) (attendance.AttendanceResponse, error) {
	if _, err := a.EmployeeRepository.GetByID(ctx, employeeID); err != nil {
		return attendance.AttendanceResponse{}, err
	}

	now := a.clock.Now()
	today := clock.StartOfDay(now)

	existing, err := a.AttendanceRepository.GetByEmployeeAndDate(ctx, employeeID, today)
	if err != nil {
		return attendance.AttendanceResponse{}, fmt.Errorf("failed to get today's attendance: %w", err)
	}
	if existing.HasCheckedIn() {
		return attendance.AttendanceResponse{}, attendance.ErrAlreadyCheckedIn
	}

	created, err := a.AttendanceRepository.Create(ctx, attendance.Attendance{
		EmployeeID:  employeeID,
		Date:        today,
		CheckInTime: &now,
		Status:      attendance.ClassifyStatus(&now),
	})
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}

	a.logger.InfoContext(ctx, "employee checked in",
		slog.String("employee_id", employeeID),
		slog.String("date", attendance.DateKey(today)),
		slog.String("status", string(created.Status)),
	)

	return attendance.NewAttendanceResponse(created, a.clock.Location()), nil
}

// CheckOut implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) CheckOut(ctx context.Context, employeeID string) (attendance.AttendanceResponse, error) {
	now := a.clock.Now()
	today := clock.StartOfDay(now)

	existing, err := a.AttendanceRepository.GetByEmployeeAndDate(ctx, employeeID, today)
	if err != nil {
		return attendance.AttendanceResponse{}, fmt.Errorf("failed to get today's attendance: %w", err)
	}
	if !existing.HasCheckedIn() {
		return attendance.AttendanceResponse{}, attendance.ErrNotCheckedIn
	}
	if existing.HasCheckedOut() {
		return attendance.AttendanceResponse{}, attendance.ErrAlreadyCheckedOut
	}

	hours, err := attendance.CalculateHours(existing.CheckInTime, &now)
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}

	existing.CheckOutTime = &now
	existing.TotalHours = hours

	updated, err := a.AttendanceRepository.RecordCheckOut(ctx, *existing)
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}

	a.logger.InfoContext(ctx, "employee checked out",
		slog.String("employee_id", employeeID),
		slog.String("date", attendance.DateKey(today)),
		slog.String("total_hours", updated.TotalHours.StringFixed(2)),
	)

	return attendance.NewAttendanceResponse(updated, a.clock.Location()), nil
}

// GetToday implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) GetToday(ctx context.Context, employeeID string) (*attendance.AttendanceResponse, error) {
	existing, err := a.AttendanceRepository.GetByEmployeeAndDate(ctx, employeeID, clock.Today(a.clock))
	if err != nil {
		return nil, fmt.Errorf("failed to get today's attendance: %w", err)
	}
	if existing == nil {
		return nil, nil
	}

	resp := attendance.NewAttendanceResponse(*existing, a.clock.Location())
	return &resp, nil
}

// GetMyHistory implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) GetMyHistory(ctx context.Context, employeeID string, filter attendance.MonthFilter) (attendance.ListAttendanceResponse, error) {
	if err := filter.Validate(); err != nil {
		return attendance.ListAttendanceResponse{}, err
	}

	recordFilter := attendance.RecordFilter{EmployeeID: &employeeID}
	if filter.IsSet() {
		year, month := filter.Resolve(a.clock.Now())
		start, end := clock.MonthRange(year, month, a.clock.Location())
		recordFilter.StartDate = &start
		recordFilter.EndDate = &end
	}

	records, err := a.AttendanceRepository.List(ctx, recordFilter)
	if err != nil {
		return attendance.ListAttendanceResponse{}, fmt.Errorf("failed to list attendance history: %w", err)
	}

	return attendance.NewListAttendanceResponse(records, a.clock.Location()), nil
}

// ListAttendance implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) ListAttendance(ctx context.Context, filter attendance.AttendanceFilter) (attendance.ListAttendanceResponse, error) {
	recordFilter, err := a.buildRecordFilter(ctx, filter)
	if err != nil {
		return attendance.ListAttendanceResponse{}, err
	}

	records, err := a.AttendanceRepository.List(ctx, recordFilter)
	if err != nil {
		return attendance.ListAttendanceResponse{}, fmt.Errorf("failed to list attendance: %w", err)
	}

	return attendance.NewListAttendanceResponse(records, a.clock.Location()), nil
}

// GetEmployeeAttendance implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) GetEmployeeAttendance(ctx context.Context, employeeID string, filter attendance.DateRangeFilter) (attendance.ListAttendanceResponse, error) {
	if !validator.IsValidUUID(employeeID) {
		return attendance.ListAttendanceResponse{}, validator.ValidationErrors{{
			Field:   "id",
			Message: "employee id must be a valid UUID",
		}}
	}
	if err := filter.Validate(); err != nil {
		return attendance.ListAttendanceResponse{}, err
	}

	if _, err := a.EmployeeRepository.GetByID(ctx, employeeID); err != nil {
		return attendance.ListAttendanceResponse{}, err
	}

	start, end := filter.Bounds()
	records, err := a.AttendanceRepository.List(ctx, attendance.RecordFilter{
		EmployeeID: &employeeID,
		StartDate:  start,
		EndDate:    end,
	})
	if err != nil {
		return attendance.ListAttendanceResponse{}, fmt.Errorf("failed to list employee attendance: %w", err)
	}

	return attendance.NewListAttendanceResponse(records, a.clock.Location()), nil
}

// buildRecordFilter validates a manager query and resolves the employee code
// to an id. An unknown code is reported as ErrEmployeeNotFound.
func (a *AttendanceServiceImpl) buildRecordFilter(ctx context.Context, filter attendance.AttendanceFilter) (attendance.RecordFilter, error) {
	if err := filter.Validate(); err != nil {
		return attendance.RecordFilter{}, err
	}

	var recordFilter attendance.RecordFilter
	if filter.EmployeeCode != nil && *filter.EmployeeCode != "" {
		emp, err := a.EmployeeRepository.GetByEmployeeCode(ctx, *filter.EmployeeCode)
		if err != nil {
			return attendance.RecordFilter{}, err
		}
		recordFilter.EmployeeID = &emp.ID
	}
	if filter.Status != nil && *filter.Status != "" {
		status := attendance.Status(strings.ToLower(*filter.Status))
		recordFilter.Status = &status
	}
	recordFilter.StartDate, recordFilter.EndDate = filter.Bounds()

	return recordFilter, nil
}
