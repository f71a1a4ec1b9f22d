package service

import "errors"

var (
	ErrUserExists         = errors.New("user already exists")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidToken       = errors.New("invalid token")
	ErrPasswordMismatch   = errors.New("passwords do not match")
	ErrPasswordTooShort   = errors.New("password must be at least 8 characters")
	ErrUsernameTooShort   = errors.New("username must be at least 3 characters")
	ErrInvalidGender      = errors.New("gender must be male or female")
	ErrWrongPassword      = errors.New("current password is incorrect")
	ErrNotFound           = errors.New("not found")
	ErrEmptyText          = errors.New("text must not be empty")
	ErrInvalidDate        = errors.New("invalid date")
	ErrNoCycleData        = errors.New("not enough data for a prediction")
	ErrNotImage           = errors.New("file must be an image")
	ErrLLMUnavailable     = errors.New("llm is not configured")
)
