package postgresql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/attendance"
	"github.com/cmlabs-hris/attendance-backend-go/internal/pkg/database"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type attendanceRepository struct {
	db *database.DB
}

func NewAttendanceRepository(db *database.DB) attendance.AttendanceRepository {
	return &attendanceRepository{db: db}
}

const attendanceColumns = `
	a.id, a.employee_id, a.date, a.check_in_time, a.check_out_time,
	a.status, a.total_hours, a.created_at, a.updated_at`

func scanAttendance(row pgx.Row, extra ...any) (attendance.Attendance, error) {
	var att attendance.Attendance
	dest := []any{
		&att.ID, &att.EmployeeID, &att.Date, &att.CheckInTime, &att.CheckOutTime,
		&att.Status, &att.TotalHours, &att.CreatedAt, &att.UpdatedAt,
	}
	err := row.Scan(append(dest, extra...)...)
	return att, err
}

// Create implements attendance.AttendanceRepository.
func (a *attendanceRepository) Create(ctx context.Context, newAttendance attendance.Attendance) (attendance.Attendance, error) {
	q := GetQuerier(ctx, a.db)

	id, err := uuid.NewV7()
	if err != nil {
		return attendance.Attendance{}, fmt.Errorf("failed to generate attendance id: %w", err)
	}

	// A pre-existing row without a check-in is claimed; one with a check-in
	// is left alone and RETURNING yields nothing.
	query := `
		INSERT INTO attendances AS a (
			id, employee_id, date, check_in_time, status, total_hours, created_at, updated_at
		) VALUES (
			$1, $2, $3::date, $4, $5, 0, NOW(), NOW()
		)
		ON CONFLICT (employee_id, date) DO UPDATE
		SET check_in_time = EXCLUDED.check_in_time,
			status = EXCLUDED.status,
			updated_at = NOW()
		WHERE a.check_in_time IS NULL
		RETURNING ` + attendanceColumns

	created, err := scanAttendance(q.QueryRow(ctx, query,
		id.String(),
		newAttendance.EmployeeID,
		attendance.DateKey(newAttendance.Date),
		newAttendance.CheckInTime,
		string(newAttendance.Status),
	))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) || pgErrorCode(err) == pgUniqueViolation {
			return attendance.Attendance{}, attendance.ErrAlreadyCheckedIn
		}
		return attendance.Attendance{}, fmt.Errorf("failed to create attendance: %w", database.WrapUnavailable(err))
	}

	return created, nil
}

// GetByEmployeeAndDate implements attendance.AttendanceRepository.
func (a *attendanceRepository) GetByEmployeeAndDate(ctx context.Context, employeeID string, date time.Time) (*attendance.Attendance, error) {
	q := GetQuerier(ctx, a.db)

	query := `
		SELECT ` + attendanceColumns + `
		FROM attendances a
		WHERE a.employee_id = $1
		  AND a.date = $2::date
		LIMIT 1
	`

	att, err := scanAttendance(q.QueryRow(ctx, query, employeeID, attendance.DateKey(date)))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil // No existing attendance found
		}
		return nil, fmt.Errorf("failed to get attendance by employee and date: %w", database.WrapUnavailable(err))
	}

	return &att, nil
}

// RecordCheckOut implements attendance.AttendanceRepository.
func (a *attendanceRepository) RecordCheckOut(ctx context.Context, att attendance.Attendance) (attendance.Attendance, error) {
	q := GetQuerier(ctx, a.db)

	query := `
		UPDATE attendances AS a
		SET check_out_time = $1,
			total_hours = $2::numeric,
			updated_at = NOW()
		WHERE a.employee_id = $3
		  AND a.date = $4::date
		  AND a.check_in_time IS NOT NULL
		  AND a.check_out_time IS NULL
		RETURNING ` + attendanceColumns

	updated, err := scanAttendance(q.QueryRow(ctx, query,
		att.CheckOutTime,
		att.TotalHours.StringFixed(2),
		att.EmployeeID,
		attendance.DateKey(att.Date),
	))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return attendance.Attendance{}, attendance.ErrAlreadyCheckedOut
		}
		if pgErrorCode(err) == pgCheckViolation {
			return attendance.Attendance{}, attendance.ErrCheckOutBeforeCheckIn
		}
		return attendance.Attendance{}, fmt.Errorf("failed to record check-out: %w", database.WrapUnavailable(err))
	}

	return updated, nil
}

// List implements attendance.AttendanceRepository.
func (a *attendanceRepository) List(ctx context.Context, filter attendance.RecordFilter) ([]attendance.Attendance, error) {
	q := GetQuerier(ctx, a.db)

	// Build WHERE clause
	where := "1 = 1"
	args := []interface{}{}
	argIdx := 1

	if filter.EmployeeID != nil {
		where += fmt.Sprintf(" AND a.employee_id = $%d", argIdx)
		args = append(args, *filter.EmployeeID)
		argIdx++
	}
	if filter.StartDate != nil {
		where += fmt.Sprintf(" AND a.date >= $%d::date", argIdx)
		args = append(args, attendance.DateKey(*filter.StartDate))
		argIdx++
	}
	if filter.EndDate != nil {
		where += fmt.Sprintf(" AND a.date <= $%d::date", argIdx)
		args = append(args, attendance.DateKey(*filter.EndDate))
		argIdx++
	}
	if filter.Status != nil {
		where += fmt.Sprintf(" AND a.status = $%d", argIdx)
		args = append(args, string(*filter.Status))
	}

	query := `
		SELECT ` + attendanceColumns + `,
			e.name AS employee_name,
			e.employee_code,
			e.department
		FROM attendances a
		JOIN employees e ON e.id = a.employee_id
		WHERE ` + where + `
		ORDER BY a.date DESC, e.employee_code ASC
	`

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list attendances: %w", database.WrapUnavailable(err))
	}
	defer rows.Close()

	attendances := []attendance.Attendance{}
	for rows.Next() {
		var name, code, department string
		att, err := scanAttendance(rows, &name, &code, &department)
		if err != nil {
			return nil, fmt.Errorf("failed to scan attendance: %w", err)
		}
		att.EmployeeName = &name
		att.EmployeeCode = &code
		att.Department = &department
		attendances = append(attendances, att)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate attendances: %w", database.WrapUnavailable(err))
	}

	return attendances, nil
}
