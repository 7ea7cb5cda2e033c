package service

import "errors"

var (
	ErrAuthenticationFailed = errors.New("authentication failed")
	ErrRegistrationFailed   = errors.New("registration failed: username already exists")
	ErrPostNotFound         = errors.New("post not found")
	ErrInternalServer       = errors.New("internal server error")
)
