package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/employee"
	"github.com/cmlabs-hris/attendance-backend-go/internal/pkg/database"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type employeeRepositoryImpl struct {
	db *database.DB
}

func NewEmployeeRepository(db *database.DB) employee.EmployeeRepository {
	return &employeeRepositoryImpl{db: db}
}

const employeeColumns = `
	id, name, email, password_hash, employee_code, department, role, created_at, updated_at`

func scanEmployee(row pgx.Row) (employee.Employee, error) {
	var emp employee.Employee
	err := row.Scan(
		&emp.ID, &emp.Name, &emp.Email, &emp.PasswordHash, &emp.EmployeeCode,
		&emp.Department, &emp.Role, &emp.CreatedAt, &emp.UpdatedAt,
	)
	return emp, err
}

// Create implements employee.EmployeeRepository.
func (e *employeeRepositoryImpl) Create(ctx context.Context, newEmployee employee.Employee) (employee.Employee, error) {
	q := GetQuerier(ctx, e.db)

	if newEmployee.ID == "" {
		id, err := uuid.NewV7()
		if err != nil {
			return employee.Employee{}, fmt.Errorf("failed to generate employee id: %w", err)
		}
		newEmployee.ID = id.String()
	}

	query := `
		INSERT INTO employees (
			id, name, email, password_hash, employee_code, department, role, created_at, updated_at
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, NOW(), NOW()
		) RETURNING ` + employeeColumns

	created, err := scanEmployee(q.QueryRow(ctx, query,
		newEmployee.ID,
		newEmployee.Name,
		newEmployee.Email,
		newEmployee.PasswordHash,
		newEmployee.EmployeeCode,
		newEmployee.Department,
		string(newEmployee.Role),
	))
	if err != nil {
		if pgErrorCode(err) == pgUniqueViolation {
			switch pgConstraint(err) {
			case "employees_email_key":
				return employee.Employee{}, employee.ErrEmailExists
			case "employees_employee_code_key":
				return employee.Employee{}, employee.ErrEmployeeCodeExists
			}
		}
		return employee.Employee{}, fmt.Errorf("failed to create employee: %w", database.WrapUnavailable(err))
	}

	return created, nil
}

func (e *employeeRepositoryImpl) getOne(ctx context.Context, column, value string) (employee.Employee, error) {
	q := GetQuerier(ctx, e.db)

	query := `SELECT ` + employeeColumns + ` FROM employees WHERE ` + column + ` = $1`

	emp, err := scanEmployee(q.QueryRow(ctx, query, value))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return employee.Employee{}, employee.ErrEmployeeNotFound
		}
		return employee.Employee{}, fmt.Errorf("failed to get employee by %s: %w", column, database.WrapUnavailable(err))
	}
	return emp, nil
}

// GetByID implements employee.EmployeeRepository.
func (e *employeeRepositoryImpl) GetByID(ctx context.Context, id string) (employee.Employee, error) {
	return e.getOne(ctx, "id", id)
}

// GetByEmail implements employee.EmployeeRepository.
func (e *employeeRepositoryImpl) GetByEmail(ctx context.Context, email string) (employee.Employee, error) {
	return e.getOne(ctx, "email", email)
}

// GetByEmployeeCode implements employee.EmployeeRepository.
func (e *employeeRepositoryImpl) GetByEmployeeCode(ctx context.Context, code string) (employee.Employee, error) {
	return e.getOne(ctx, "employee_code", code)
}

// ListByRole implements employee.EmployeeRepository.
func (e *employeeRepositoryImpl) ListByRole(ctx context.Context, role employee.Role) ([]employee.Employee, error) {
	q := GetQuerier(ctx, e.db)

	query := `
		SELECT ` + employeeColumns + `
		FROM employees
		WHERE role = $1
		ORDER BY employee_code ASC
	`

	rows, err := q.Query(ctx, query, string(role))
	if err != nil {
		return nil, fmt.Errorf("failed to list employees: %w", database.WrapUnavailable(err))
	}
	defer rows.Close()

	employees := []employee.Employee{}
	for rows.Next() {
		emp, err := scanEmployee(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan employee: %w", err)
		}
		employees = append(employees, emp)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate employees: %w", database.WrapUnavailable(err))
	}

	return employees, nil
}
