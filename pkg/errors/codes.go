package errors

import (
	"net/http"
	"strings"
)

// ErrorCode is a string representation of a specific error condition.
type ErrorCode string

func (c ErrorCode) String() string {
	return string(c)
}

// Common Error Codes
const (
	ErrCodeInternal          ErrorCode = "COMMON_001"
	ErrCodeInvalidArgument   ErrorCode = "COMMON_002"
	ErrCodeUnauthenticated   ErrorCode = "COMMON_003"
	ErrCodeNotFound          ErrorCode = "COMMON_004"
	ErrCodeResourceExhausted ErrorCode = "COMMON_005"
	ErrCodeUnavailable       ErrorCode = "COMMON_006"
	ErrCodeSerialization     ErrorCode = "COMMON_007"
	ErrCodeDatabaseError     ErrorCode = "COMMON_008"
	ErrCodeCacheError        ErrorCode = "COMMON_009"
)

// Gift Pipeline Error Codes
const (
	// ErrCodeGiftParseFailed means the text-generation reply contained no
	// recoverable suggestion array.  Kept distinct from ErrCodeSerialization
	// so callers can offer a targeted "try again" instead of a hard failure.
	ErrCodeGiftParseFailed ErrorCode = "GIFT_001"
	ErrCodeTextGenBusy     ErrorCode = "GIFT_002"
	ErrCodeTextGenFailed   ErrorCode = "GIFT_003"
)

// Reminder Dispatch Error Codes
const (
	ErrCodeDeliveryTokenInvalid ErrorCode = "NOTIF_001"
	ErrCodeDeliveryFailed       ErrorCode = "NOTIF_002"
	ErrCodeBirthDateInvalid     ErrorCode = "NOTIF_003"
)

// CodeOK is the sentinel for "no error".
const CodeOK = ErrorCode("OK")

// ErrorCodeHTTPStatus maps ErrorCodes to HTTP status codes.
var ErrorCodeHTTPStatus = map[ErrorCode]int{
	ErrCodeInternal:          http.StatusInternalServerError,
	ErrCodeInvalidArgument:   http.StatusBadRequest,
	ErrCodeUnauthenticated:   http.StatusUnauthorized,
	ErrCodeNotFound:          http.StatusNotFound,
	ErrCodeResourceExhausted: http.StatusTooManyRequests,
	ErrCodeUnavailable:       http.StatusServiceUnavailable,
	ErrCodeSerialization:     http.StatusInternalServerError,
	ErrCodeDatabaseError:     http.StatusInternalServerError,
	ErrCodeCacheError:        http.StatusInternalServerError,

	ErrCodeGiftParseFailed: http.StatusBadGateway,
	ErrCodeTextGenBusy:     http.StatusServiceUnavailable,
	ErrCodeTextGenFailed:   http.StatusBadGateway,

	ErrCodeDeliveryTokenInvalid: http.StatusGone,
	ErrCodeDeliveryFailed:       http.StatusBadGateway,
	ErrCodeBirthDateInvalid:     http.StatusBadRequest,
}

// ErrorCodeMessage maps ErrorCodes to default messages.
var ErrorCodeMessage = map[ErrorCode]string{
	ErrCodeInternal:          "internal error",
	ErrCodeInvalidArgument:   "invalid argument",
	ErrCodeUnauthenticated:   "unauthenticated",
	ErrCodeNotFound:          "resource not found",
	ErrCodeResourceExhausted: "too many requests",
	ErrCodeUnavailable:       "service unavailable",
	ErrCodeSerialization:     "serialization failed",
	ErrCodeDatabaseError:     "database error",
	ErrCodeCacheError:        "cache error",

	ErrCodeGiftParseFailed: "could not parse gift suggestions from response",
	ErrCodeTextGenBusy:     "text-generation service is busy",
	ErrCodeTextGenFailed:   "text-generation request failed",

	ErrCodeDeliveryTokenInvalid: "delivery token is no longer registered",
	ErrCodeDeliveryFailed:       "failed to deliver notification",
	ErrCodeBirthDateInvalid:     "invalid birth date",
}

// APITag is the closed set of error tags exposed by the caller-facing API.
type APITag string

const (
	TagUnauthenticated   APITag = "unauthenticated"
	TagInvalidArgument   APITag = "invalid-argument"
	TagResourceExhausted APITag = "resource-exhausted"
	TagUnavailable       APITag = "unavailable"
	TagInternal          APITag = "internal"
)

// TagForCode collapses an ErrorCode into the caller-facing tag set.  Codes
// without a sharper mapping fall back to TagInternal.
func TagForCode(code ErrorCode) APITag {
	switch code {
	case ErrCodeUnauthenticated:
		return TagUnauthenticated
	case ErrCodeInvalidArgument, ErrCodeBirthDateInvalid:
		return TagInvalidArgument
	case ErrCodeResourceExhausted:
		return TagResourceExhausted
	case ErrCodeUnavailable, ErrCodeTextGenBusy:
		return TagUnavailable
	default:
		return TagInternal
	}
}

// HTTPStatusForCode returns the HTTP status code for an ErrorCode.
func HTTPStatusForCode(code ErrorCode) int {
	if status, ok := ErrorCodeHTTPStatus[code]; ok {
		return status
	}
	return http.StatusInternalServerError
}

// DefaultMessageForCode returns the default message for an ErrorCode.
func DefaultMessageForCode(code ErrorCode) string {
	if msg, ok := ErrorCodeMessage[code]; ok {
		return msg
	}
	return "unknown error"
}

// IsClientError returns true if the ErrorCode corresponds to a 4xx HTTP status.
func IsClientError(code ErrorCode) bool {
	status := HTTPStatusForCode(code)
	return status >= 400 && status < 500
}

// IsServerError returns true if the ErrorCode corresponds to a 5xx HTTP status.
func IsServerError(code ErrorCode) bool {
	status := HTTPStatusForCode(code)
	return status >= 500 && status < 600
}

// ModuleForCode returns the module prefix of an ErrorCode.
func ModuleForCode(code ErrorCode) string {
	parts := strings.Split(string(code), "_")
	if len(parts) > 0 && parts[0] != "" {
		return parts[0]
	}
	return "UNKNOWN"
}
