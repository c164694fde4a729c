package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/auth"
	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/employee"
	"github.com/cmlabs-hris/attendance-backend-go/internal/pkg/jwt"
	"golang.org/x/crypto/bcrypt"
)

type AuthServiceImpl struct {
	employee.EmployeeRepository
	jwt.Service
	logger *slog.Logger
}

func NewAuthService(employeeRepository employee.EmployeeRepository, jwtService jwt.Service, logger *slog.Logger) auth.AuthService {
	if logger == nil {
		logger = slog.Default()
	}
	return &AuthServiceImpl{
		EmployeeRepository: employeeRepository,
		Service:            jwtService,
		logger:             logger,
	}
}

// HashPassword hashes a plain password with bcrypt's default cost.
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(hash), nil
}

// Login implements auth.AuthService.
func (a *AuthServiceImpl) Login(ctx context.Context, loginReq auth.LoginRequest) (auth.TokenResponse, error) {
	if err := loginReq.Validate(); err != nil {
		return auth.TokenResponse{}, err
	}

	emp, err := a.EmployeeRepository.GetByEmail(ctx, loginReq.Email)
	if err != nil {
		if errors.Is(err, employee.ErrEmployeeNotFound) {
			return auth.TokenResponse{}, auth.ErrInvalidCredentials
		}
		return auth.TokenResponse{}, fmt.Errorf("failed to get employee by email: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(emp.PasswordHash), []byte(loginReq.Password)); err != nil {
		return auth.TokenResponse{}, auth.ErrInvalidCredentials
	}

	identity := auth.Identity{
		UserID:       emp.ID,
		EmployeeCode: emp.EmployeeCode,
		Name:         emp.Name,
		Role:         emp.Role,
		Department:   emp.Department,
	}

	token, expiresAt, err := a.Service.GenerateAccessToken(identity)
	if err != nil {
		return auth.TokenResponse{}, fmt.Errorf("failed to create access token: %w", err)
	}

	a.logger.InfoContext(ctx, "employee logged in",
		slog.String("employee_id", emp.ID),
		slog.String("role", string(emp.Role)),
	)

	return auth.TokenResponse{
		AccessToken:          token,
		AccessTokenExpiresIn: expiresAt,
		User:                 auth.NewIdentityResponse(identity),
	}, nil
}
