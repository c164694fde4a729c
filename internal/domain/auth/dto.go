package auth

import (
	"strings"

	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/employee"
	"github.com/cmlabs-hris/attendance-backend-go/internal/pkg/validator"
)

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (r *LoginRequest) Validate() error {
	var errs validator.ValidationErrors

	r.Email = strings.ToLower(strings.TrimSpace(r.Email))
	if validator.IsEmpty(r.Email) {
		errs = append(errs, validator.ValidationError{
			Field:   "email",
			Message: "email is required",
		})
	} else if !validator.IsValidEmail(r.Email) {
		errs = append(errs, validator.ValidationError{
			Field:   "email",
			Message: "email format is invalid",
		})
	}

	if validator.IsEmpty(r.Password) {
		errs = append(errs, validator.ValidationError{
			Field:   "password",
			Message: "password is required",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type TokenResponse struct {
	AccessToken          string           `json:"access_token"`
	AccessTokenExpiresIn int64            `json:"access_token_expires_in"`
	User                 IdentityResponse `json:"user"`
}

// Identity is the authenticated caller as carried by the access token.
type Identity struct {
	UserID       string
	EmployeeCode string
	Name         string
	Role         employee.Role
	Department   string
}

func (i Identity) IsManager() bool {
	return i.Role == employee.RoleManager
}

type IdentityResponse struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	EmployeeCode string `json:"employee_code"`
	Role         string `json:"role"`
	Department   string `json:"department"`
}

func NewIdentityResponse(i Identity) IdentityResponse {
	return IdentityResponse{
		ID:           i.UserID,
		Name:         i.Name,
		EmployeeCode: i.EmployeeCode,
		Role:         string(i.Role),
		Department:   i.Department,
	}
}
