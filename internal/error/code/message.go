package code

var codeMessageMap = map[int]string{
	// common
	ErrSuccess:         "success",
	ErrUnknown:         "unknown error",
	ErrBind:            "invalid request parameters",
	ErrValidation:      "request validation failed",
	ErrTokenInvalid:    "invalid or missing token",
	ErrTooManyRequests: "too many requests, please try again later",
	ErrForbidden:       "insufficient permissions",
	ErrCreated:         "created",
	ErrRouteNotFound:   "route not found",

	// user
	ErrUserNotFound:          "user not found",
	ErrUserAlreadyExist:      "user already exists",
	ErrUserPasswordIncorrect: "invalid username or password",

	// database
	ErrDatabase: "database error",

	// mineral
	ErrMineralNotFound: "mineral not found",
	ErrMineralInvalid:  "invalid mineral",

	// favorite
	ErrFavoriteFailed: "failed to update favorites",

	// file
	ErrFileMissing:         "file is required",
	ErrFileTooLarge:        "file too large",
	ErrFileTypeUnsupported: "unsupported file type",
	ErrFileStorage:         "failed to store file",

	// infrastructure
	ErrConnectionFailed: "connection failed",

	// translation
	ErrTranslationFailed:          "translation failed",
	ErrLanguageNotSupported:       "language not supported",
	ErrTranslationUnavailable:     "translation service unavailable",
	ErrTranslationInvalidResponse: "invalid response from translation service",
}

var codeStatusMap = map[int]int{
	// common
	ErrSuccess:         StatusOK,
	ErrUnknown:         StatusInternalServerError,
	ErrBind:            StatusBadRequest,
	ErrValidation:      StatusBadRequest,
	ErrTokenInvalid:    StatusUnauthorized,
	ErrTooManyRequests: StatusTooManyRequests,
	ErrForbidden:       StatusForbidden,
	ErrCreated:         StatusCreated,
	ErrRouteNotFound:   StatusNotFound,

	// user
	ErrUserNotFound:          StatusNotFound,
	ErrUserAlreadyExist:      StatusConflict,
	ErrUserPasswordIncorrect: StatusUnauthorized,

	// database
	ErrDatabase: StatusInternalServerError,

	// mineral
	ErrMineralNotFound: StatusNotFound,
	ErrMineralInvalid:  StatusBadRequest,

	// favorite
	ErrFavoriteFailed: StatusInternalServerError,

	// file
	ErrFileMissing:         StatusBadRequest,
	ErrFileTooLarge:        StatusRequestEntityTooLarge,
	ErrFileTypeUnsupported: StatusBadRequest,
	ErrFileStorage:         StatusInternalServerError,

	// infrastructure
	ErrConnectionFailed: StatusServiceUnavailable,

	// translation
	ErrTranslationFailed:          StatusInternalServerError,
	ErrLanguageNotSupported:       StatusBadRequest,
	ErrTranslationUnavailable:     StatusServiceUnavailable,
	ErrTranslationInvalidResponse: StatusInternalServerError,
}

// GetMessage returns the default message of a code
func GetMessage(code int) string {
	if msg, ok := codeMessageMap[code]; ok {
		return msg
	}
	return codeMessageMap[ErrUnknown]
}

// GetStatus returns the HTTP status of a code
func GetStatus(code int) int {
	if status, ok := codeStatusMap[code]; ok {
		return status
	}
	return StatusInternalServerError
}
