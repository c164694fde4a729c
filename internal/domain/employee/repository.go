package employee

import "context"

// EmployeeRepository is the roster provider consumed by the attendance core.
type EmployeeRepository interface {
	Create(ctx context.Context, employee Employee) (Employee, error)
	GetByID(ctx context.Context, id string) (Employee, error)
	GetByEmail(ctx context.Context, email string) (Employee, error)
	GetByEmployeeCode(ctx context.Context, code string) (Employee, error)

	// ListByRole returns employees with the given role ordered by employee code.
	ListByRole(ctx context.Context, role Role) ([]Employee, error)
}
