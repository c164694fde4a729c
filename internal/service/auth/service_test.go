package auth

import (
	"context"
	"testing"

	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/auth"
	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/employee"
	"github.com/cmlabs-hris/attendance-backend-go/internal/pkg/database"
	"github.com/cmlabs-hris/attendance-backend-go/internal/pkg/jwt"
	"github.com/cmlabs-hris/attendance-backend-go/internal/pkg/validator"
	"github.com/cmlabs-hris/attendance-backend-go/internal/testfixtures"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

const (
	testAccessExp = "1h"
	testSecret    = "test-secret-key-for-jwt"
)

func newTestAuthService(t *testing.T) (auth.AuthService, jwt.Service, *testfixtures.EmployeeStore, employee.Employee) {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.MinCost)
	require.NoError(t, err)

	manager := testfixtures.NewEmployee("MGR001",
		testfixtures.WithName("Mary Manager"),
		testfixtures.WithEmail("manager@company.com"),
		testfixtures.WithDepartment("Management"),
		testfixtures.WithRole(employee.RoleManager),
		testfixtures.WithPasswordHash(string(hash)),
	)
	store := testfixtures.NewEmployeeStore(manager)

	jwtService, err := jwt.NewJWTService(testSecret, testAccessExp)
	require.NoError(t, err)

	return NewAuthService(store, jwtService, nil), jwtService, store, manager
}

func TestAuthService_Login_Success(t *testing.T) {
	svc, jwtService, _, manager := newTestAuthService(t)

	resp, err := svc.Login(context.Background(), auth.LoginRequest{Email: "  Manager@Company.com ", Password: "password123"})
	require.NoError(t, err)
	assert.NotEmpty(t, resp.AccessToken)
	assert.Equal(t, manager.ID, resp.User.ID)
	assert.Equal(t, "manager", resp.User.Role)

	token, err := jwtService.JWTAuth().Decode(resp.AccessToken)
	require.NoError(t, err)
	claims, err := token.AsMap(context.Background())
	require.NoError(t, err)

	identity, err := jwt.IdentityFromClaims(claims)
	require.NoError(t, err)
	assert.True(t, identity.IsManager())
	assert.Equal(t, "MGR001", identity.EmployeeCode)
}

func TestAuthService_Login_InvalidPassword(t *testing.T) {
	svc, _, _, _ := newTestAuthService(t)

	_, err := svc.Login(context.Background(), auth.LoginRequest{Email: "manager@company.com", Password: "wrong"})
	assert.ErrorIs(t, err, auth.ErrInvalidCredentials)
}

func TestAuthService_Login_UserNotFound(t *testing.T) {
	svc, _, _, _ := newTestAuthService(t)

	_, err := svc.Login(context.Background(), auth.LoginRequest{Email: "nobody@company.com", Password: "password123"})
	assert.ErrorIs(t, err, auth.ErrInvalidCredentials)
}

func TestAuthService_Login_Validation(t *testing.T) {
	svc, _, _, _ := newTestAuthService(t)

	_, err := svc.Login(context.Background(), auth.LoginRequest{Email: "not-an-email"})
	var verrs validator.ValidationErrors
	require.ErrorAs(t, err, &verrs)
	assert.Contains(t, verrs.ToMap(), "email")
	assert.Contains(t, verrs.ToMap(), "password")
}

func TestAuthService_Login_StoreUnavailable(t *testing.T) {
	svc, _, store, _ := newTestAuthService(t)
	store.Err = database.ErrStoreUnavailable

	_, err := svc.Login(context.Background(), auth.LoginRequest{Email: "manager@company.com", Password: "password123"})
	assert.True(t, database.IsUnavailable(err))
}

func TestHashPassword(t *testing.T) {
	hash, err := HashPassword("secret")
	require.NoError(t, err)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(hash), []byte("secret")))
}
