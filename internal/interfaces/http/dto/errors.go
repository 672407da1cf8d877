package dto

import "net/http"

// API error codes. Handlers translate domain error codes into these before
// choosing an HTTP status.
const (
	ErrCodeBadRequest          = "ERR_BAD_REQUEST"
	ErrCodeValidation          = "ERR_VALIDATION"
	ErrCodeUnauthorized        = "ERR_UNAUTHORIZED"
	ErrCodeForbidden           = "ERR_FORBIDDEN"
	ErrCodeNotFound            = "ERR_NOT_FOUND"
	ErrCodeConflict            = "ERR_CONFLICT"
	ErrCodeConcurrencyConflict = "ERR_CONCURRENCY_CONFLICT"
	ErrCodeUnprocessable       = "ERR_UNPROCESSABLE"
	ErrCodeInternal            = "ERR_INTERNAL"
)

// errorCodeHTTPStatus maps API error codes to HTTP status codes
var errorCodeHTTPStatus = map[string]int{
	ErrCodeBadRequest:          http.StatusBadRequest,
	ErrCodeValidation:          http.StatusBadRequest,
	ErrCodeUnauthorized:        http.StatusUnauthorized,
	ErrCodeForbidden:           http.StatusForbidden,
	ErrCodeNotFound:            http.StatusNotFound,
	ErrCodeConflict:            http.StatusConflict,
	ErrCodeConcurrencyConflict: http.StatusConflict,
	ErrCodeUnprocessable:       http.StatusUnprocessableEntity,
	ErrCodeInternal:            http.StatusInternalServerError,
}

// domainErrorCodeMapping translates domain error codes into API error codes.
// Codes not listed here fall through to ERR_UNPROCESSABLE, which covers the
// long tail of business-rule rejections.
var domainErrorCodeMapping = map[string]string{
	"NOT_FOUND":      ErrCodeNotFound,
	"ITEM_NOT_FOUND": ErrCodeNotFound,

	"ALREADY_EXISTS": ErrCodeConflict,
	"USERNAME_TAKEN": ErrCodeConflict,
	"DUPLICATE_CODE": ErrCodeConflict,

	"CONCURRENCY_CONFLICT":    ErrCodeConcurrencyConflict,
	"CONCURRENT_MODIFICATION": ErrCodeConcurrencyConflict,

	"UNAUTHORIZED":        ErrCodeUnauthorized,
	"INVALID_CREDENTIALS": ErrCodeUnauthorized,
	"ACCOUNT_LOCKED":      ErrCodeUnauthorized,
	"ACCOUNT_DISABLED":    ErrCodeUnauthorized,
	"TOKEN_EXPIRED":       ErrCodeUnauthorized,
	"TOKEN_REVOKED":       ErrCodeUnauthorized,
	"INVALID_TOKEN":       ErrCodeUnauthorized,
	"SESSION_EXPIRED":     ErrCodeUnauthorized,

	"FORBIDDEN": ErrCodeForbidden,

	"INVALID_INPUT": ErrCodeBadRequest,

	"NUMBER_GENERATION_FAILED": ErrCodeInternal,
	"TOKEN_GENERATION_FAILED":  ErrCodeInternal,
	"PASSWORD_HASH_ERROR":      ErrCodeInternal,
	"TOKEN_CHECK_FAILED":       ErrCodeInternal,
	"LOGOUT_FAILED":            ErrCodeInternal,
}

// NormalizeErrorCode maps a domain error code onto an API error code.
// Unknown codes are treated as business-rule rejections.
func NormalizeErrorCode(code string) string {
	if mapped, ok := domainErrorCodeMapping[code]; ok {
		return mapped
	}
	if _, ok := errorCodeHTTPStatus[code]; ok {
		return code
	}
	return ErrCodeUnprocessable
}

// GetHTTPStatus returns the HTTP status for an API error code
func GetHTTPStatus(code string) int {
	if status, ok := errorCodeHTTPStatus[code]; ok {
		return status
	}
	return http.StatusInternalServerError
}
