package model

import "errors"

var (
	ErrInvalidCredentials  = errors.New("invalid credentials")
	ErrConflict            = errors.New("username already taken")
	ErrInvalidToken        = errors.New("invalid token")
	ErrExpired             = errors.New("token expired")
	ErrMalformed           = errors.New("malformed token")
	ErrForbidden           = errors.New("forbidden")
	ErrNotFound            = errors.New("not found")
	ErrInvalidTransition   = errors.New("order already in a terminal state")
	ErrUpstreamUnavailable = errors.New("upstream service unavailable")
)
