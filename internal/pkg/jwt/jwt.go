package jwt

import (
	"fmt"
	"time"

	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/auth"
	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/employee"
	"github.com/go-chi/jwtauth/v5"
	"github.com/lestrrat-go/jwx/v2/jwt"
)

const tokenTypeAccess = "access"

type Service interface {
	GenerateAccessToken(identity auth.Identity) (token string, expiresAt int64, err error)
	JWTAuth() *jwtauth.JWTAuth
}

type JWTService struct {
	accessTokenExpiration time.Duration
	tokenAuth             *jwtauth.JWTAuth
	now                   func() time.Time
}

func (j *JWTService) JWTAuth() *jwtauth.JWTAuth {
	return j.tokenAuth
}

func NewJWTService(secretKey string, accessTokenExpirationTime string) (Service, error) {
	expiration, err := time.ParseDuration(accessTokenExpirationTime)
	if err != nil {
		return nil, fmt.Errorf("invalid access token expiration %q: %w", accessTokenExpirationTime, err)
	}
	return &JWTService{
		accessTokenExpiration: expiration,
		tokenAuth:             jwtauth.New("HS256", []byte(secretKey), nil, jwt.WithAcceptableSkew(30*time.Second)),
		now:                   time.Now,
	}, nil
}

func (j *JWTService) GenerateAccessToken(identity auth.Identity) (token string, expiresAt int64, err error) {
	expiresAt = j.now().Add(j.accessTokenExpiration).Unix()

	claims := map[string]interface{}{
		"user_id":       identity.UserID,
		"employee_code": identity.EmployeeCode,
		"name":          identity.Name,
		"role":          string(identity.Role),
		"department":    identity.Department,
		"type":          tokenTypeAccess,
		"exp":           expiresAt,
	}

	_, tokenString, err := j.tokenAuth.Encode(claims)
	return tokenString, expiresAt, err
}

// IdentityFromClaims rebuilds the caller identity from access token claims.
func IdentityFromClaims(claims map[string]interface{}) (auth.Identity, error) {
	tokenType, _ := claims["type"].(string)
	if tokenType != tokenTypeAccess {
		return auth.Identity{}, auth.ErrInvalidToken
	}

	userID, ok := claims["user_id"].(string)
	if !ok || userID == "" {
		return auth.Identity{}, auth.ErrIdentityMissingInToken
	}

	role, ok := claims["role"].(string)
	if !ok || !employee.Role(role).IsValid() {
		return auth.Identity{}, auth.ErrIdentityMissingInToken
	}

	code, _ := claims["employee_code"].(string)
	name, _ := claims["name"].(string)
	department, _ := claims["department"].(string)

	return auth.Identity{
		UserID:       userID,
		EmployeeCode: code,
		Name:         name,
		Role:         employee.Role(role),
		Department:   department,
	}, nil
}
