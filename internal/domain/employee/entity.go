package employee

import "time"

type Role string

const (
	RoleEmployee Role = "employee"
	RoleManager  Role = "manager"
)

func (r Role) IsValid() bool {
	return r == RoleEmployee || r == RoleManager
}

type Employee struct {
	ID           string
	Name         string
	Email        string
	PasswordHash string
	EmployeeCode string
	Department   string
	Role         Role
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// IsManager checks if the employee can view team data
func (e *Employee) IsManager() bool {
	return e.Role == RoleManager
}
