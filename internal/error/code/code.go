package code

// HTTP status codes.
const (
	// StatusOK - 200: success.
	StatusOK = 200
	// StatusCreated - 201: resource created.
	StatusCreated = 201
	// StatusBadRequest - 400: invalid request.
	StatusBadRequest = 400
	// StatusUnauthorized - 401: not authenticated.
	StatusUnauthorized = 401
	// StatusForbidden - 403: not allowed.
	StatusForbidden = 403
	// StatusNotFound - 404: resource not found.
	StatusNotFound = 404
	// StatusConflict - 409: resource already exists.
	StatusConflict = 409
	// StatusRequestEntityTooLarge - 413: payload too large.
	StatusRequestEntityTooLarge = 413
	// StatusTooManyRequests - 429: rate limited.
	StatusTooManyRequests = 429
	// StatusInternalServerError - 500: internal error.
	StatusInternalServerError = 500
	// StatusServiceUnavailable - 503: dependency unavailable.
	StatusServiceUnavailable = 503
)

// Common codes (100xxx).
const (
	// ErrSuccess - 200: success.
	ErrSuccess int = iota + 100000
	// ErrUnknown - 500: unknown error.
	ErrUnknown
	// ErrBind - 400: request binding failed.
	ErrBind
	// ErrValidation - 400: request validation failed.
	ErrValidation
	// ErrTokenInvalid - 401: invalid token.
	ErrTokenInvalid
	// ErrTooManyRequests - 429: too many requests.
	ErrTooManyRequests
	// ErrForbidden - 403: insufficient permissions.
	ErrForbidden
	// ErrCreated - 201: created.
	ErrCreated
	// ErrRouteNotFound - 404: no such route.
	ErrRouteNotFound
)

// User codes (101xxx).
const (
	// ErrUserNotFound - 404: user not found.
	ErrUserNotFound int = iota + 101000
	// ErrUserAlreadyExist - 409: username taken.
	ErrUserAlreadyExist
	// ErrUserPasswordIncorrect - 401: invalid credentials.
	ErrUserPasswordIncorrect
)

// Database codes (105xxx).
const (
	// ErrDatabase - 500: database error.
	ErrDatabase int = iota + 105000
)

// Mineral codes (106xxx).
const (
	// ErrMineralNotFound - 404: mineral not found.
	ErrMineralNotFound int = iota + 106000
	// ErrMineralInvalid - 400: mineral failed validation.
	ErrMineralInvalid
)

// Favorite codes (107xxx).
const (
	// ErrFavoriteFailed - 500: favorite update failed.
	ErrFavoriteFailed int = iota + 107000
)

// File codes (108xxx).
const (
	// ErrFileMissing - 400: required file missing.
	ErrFileMissing int = iota + 108000
	// ErrFileTooLarge - 413: file too large.
	ErrFileTooLarge
	// ErrFileTypeUnsupported - 400: file type not allowed.
	ErrFileTypeUnsupported
	// ErrFileStorage - 500: storing the file failed.
	ErrFileStorage
)

// Infrastructure codes (109xxx).
const (
	// ErrConnectionFailed - 503: a required backend is unreachable.
	ErrConnectionFailed int = iota + 109000
)

// Translation codes (110xxx).
const (
	// ErrTranslationFailed - 500: translation failed.
	ErrTranslationFailed int = iota + 110000
	// ErrLanguageNotSupported - 400: language not supported.
	ErrLanguageNotSupported
	// ErrTranslationUnavailable - 503: translation service unavailable.
	ErrTranslationUnavailable
	// ErrTranslationInvalidResponse - 500: unexpected translation response.
	ErrTranslationInvalidResponse
)
