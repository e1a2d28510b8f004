package services

import "errors"

// account
var (
	ErrUserAlreadyExists  = errors.New("user already exists")
	ErrUserNotFound       = errors.New("user not found")
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrInvalidUsername    = errors.New("username must be 3 to 50 characters")
	ErrInvalidPassword    = errors.New("password must be at least 6 characters")
	ErrInvalidToken       = errors.New("invalid token")
)

// persistence
var (
	ErrDatabase       = errors.New("database error")
	ErrFavoriteFailed = errors.New("favorite update failed")
	ErrStorageFailed  = errors.New("file storage failed")
)

// catalog
var (
	ErrMineralNotFound = errors.New("mineral not found")
	ErrAuthRequired    = errors.New("authentication required")
	ErrInvalidQuery    = errors.New("invalid list query")
)

// uploads
var (
	ErrFileMissing         = errors.New("file is required")
	ErrFileTooLarge        = errors.New("file too large")
	ErrUnsupportedFileType = errors.New("unsupported file type")
)

// translation
var (
	ErrTranslationFailed    = errors.New("translation failed")
	ErrLanguageNotSupported = errors.New("language not supported")
	ErrServiceUnavailable   = errors.New("translation service unavailable")
	ErrInvalidResponse      = errors.New("invalid response from translation service")
	ErrEmptyText            = errors.New("empty text for translation")
)
