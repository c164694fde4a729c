package auth

import "errors"

var (
	ErrInvalidCredentials     = errors.New("invalid email or password")
	ErrInvalidToken           = errors.New("invalid or expired token")
	ErrManagerAccessRequired  = errors.New("manager access required")
	ErrIdentityMissingInToken = errors.New("identity claims missing from token")
)
