package errors

import "net/http"

// ErrorCode is a string representation of a specific error condition.
type ErrorCode string

func (c ErrorCode) String() string {
	return string(c)
}

// Common error codes.
const (
	ErrCodeInternal           ErrorCode = "COMMON_001"
	ErrCodeBadRequest         ErrorCode = "COMMON_002"
	ErrCodeNotFound           ErrorCode = "COMMON_003"
	ErrCodeConflict           ErrorCode = "COMMON_004"
	ErrCodeTooManyRequests    ErrorCode = "COMMON_005"
	ErrCodeServiceUnavailable ErrorCode = "COMMON_006"
	ErrCodeTimeout            ErrorCode = "COMMON_007"
	ErrCodeValidation         ErrorCode = "COMMON_008"
	ErrCodeSerialization      ErrorCode = "COMMON_009"
	ErrCodeDatabaseError      ErrorCode = "COMMON_010"
	ErrCodeCacheError         ErrorCode = "COMMON_011"
	ErrCodeExternalService    ErrorCode = "COMMON_012"
	ErrCodeUnknown            ErrorCode = "COMMON_099"

	// CodeOK is the sentinel code returned by GetCode for a nil error.
	CodeOK ErrorCode = "OK"
)

// Wellbore module error codes.
const (
	ErrCodeWellNotFound      ErrorCode = "WB_001"
	ErrCodeDesignNotFound    ErrorCode = "WB_002"
	ErrCodeRowInvalid        ErrorCode = "WB_003"
	ErrCodeRowNotFound       ErrorCode = "WB_004"
	ErrCodeDesignRevisionOld ErrorCode = "WB_005"
	ErrCodeGeometryEmpty     ErrorCode = "WB_006"
)

// Fluid (PVT) module error codes.
const (
	ErrCodeFluidSampleNotFound ErrorCode = "FLU_001"
	ErrCodeFluidSampleInvalid  ErrorCode = "FLU_002"
)

// Analysis-run module error codes.
const (
	ErrCodeRunNotFound             ErrorCode = "RUN_001"
	ErrCodeRunPrerequisitesMissing ErrorCode = "RUN_002"
	ErrCodeRunStateInvalid         ErrorCode = "RUN_003"
	ErrCodeRunAlreadyActive        ErrorCode = "RUN_004"
)

// External physics-engine error codes.
const (
	ErrCodeEngineUnavailable ErrorCode = "ENG_001"
	ErrCodeEngineRejected    ErrorCode = "ENG_002"
	ErrCodeEngineRateLimited ErrorCode = "ENG_003"
	ErrCodeEngineTimeout     ErrorCode = "ENG_004"
)

// ErrorCodeHTTPStatus maps error codes to HTTP status codes.  Codes absent
// from this map are treated as 500 by the HTTP layer.
var ErrorCodeHTTPStatus = map[ErrorCode]int{
	ErrCodeInternal:           http.StatusInternalServerError,
	ErrCodeBadRequest:         http.StatusBadRequest,
	ErrCodeNotFound:           http.StatusNotFound,
	ErrCodeConflict:           http.StatusConflict,
	ErrCodeTooManyRequests:    http.StatusTooManyRequests,
	ErrCodeServiceUnavailable: http.StatusServiceUnavailable,
	ErrCodeTimeout:            http.StatusGatewayTimeout,
	ErrCodeValidation:         http.StatusUnprocessableEntity,
	ErrCodeSerialization:      http.StatusInternalServerError,
	ErrCodeDatabaseError:      http.StatusInternalServerError,
	ErrCodeCacheError:         http.StatusInternalServerError,
	ErrCodeExternalService:    http.StatusBadGateway,
	ErrCodeUnknown:            http.StatusInternalServerError,

	ErrCodeWellNotFound:      http.StatusNotFound,
	ErrCodeDesignNotFound:    http.StatusNotFound,
	ErrCodeRowInvalid:        http.StatusUnprocessableEntity,
	ErrCodeRowNotFound:       http.StatusNotFound,
	ErrCodeDesignRevisionOld: http.StatusConflict,
	ErrCodeGeometryEmpty:     http.StatusUnprocessableEntity,

	ErrCodeFluidSampleNotFound: http.StatusNotFound,
	ErrCodeFluidSampleInvalid:  http.StatusUnprocessableEntity,

	ErrCodeRunNotFound:             http.StatusNotFound,
	ErrCodeRunPrerequisitesMissing: http.StatusUnprocessableEntity,
	ErrCodeRunStateInvalid:         http.StatusConflict,
	ErrCodeRunAlreadyActive:        http.StatusConflict,

	ErrCodeEngineUnavailable: http.StatusBadGateway,
	ErrCodeEngineRejected:    http.StatusUnprocessableEntity,
	ErrCodeEngineRateLimited: http.StatusTooManyRequests,
	ErrCodeEngineTimeout:     http.StatusGatewayTimeout,
}

// ErrorCodeMessage maps error codes to default human-readable messages used
// when a handler has nothing more specific to say.
var ErrorCodeMessage = map[ErrorCode]string{
	ErrCodeInternal:           "internal server error",
	ErrCodeBadRequest:         "bad request",
	ErrCodeNotFound:           "resource not found",
	ErrCodeConflict:           "resource conflict",
	ErrCodeTooManyRequests:    "too many requests",
	ErrCodeServiceUnavailable: "service unavailable",
	ErrCodeTimeout:            "request timeout",
	ErrCodeValidation:         "validation failed",
	ErrCodeSerialization:      "serialization failed",
	ErrCodeDatabaseError:      "database error",
	ErrCodeCacheError:         "cache error",
	ErrCodeExternalService:    "external service error",

	ErrCodeWellNotFound:      "well not found",
	ErrCodeDesignNotFound:    "wellbore design not found",
	ErrCodeRowInvalid:        "component row is invalid",
	ErrCodeRowNotFound:       "component row not found",
	ErrCodeDesignRevisionOld: "design revision is stale",
	ErrCodeGeometryEmpty:     "no usable wellbore geometry",

	ErrCodeFluidSampleNotFound: "fluid sample not found",
	ErrCodeFluidSampleInvalid:  "fluid sample is invalid",

	ErrCodeRunNotFound:             "analysis run not found",
	ErrCodeRunPrerequisitesMissing: "analysis prerequisites incomplete",
	ErrCodeRunStateInvalid:         "analysis run state transition not allowed",
	ErrCodeRunAlreadyActive:        "an analysis run is already active for this well",

	ErrCodeEngineUnavailable: "physics engine unavailable",
	ErrCodeEngineRejected:    "physics engine rejected the request",
	ErrCodeEngineRateLimited: "physics engine rate limited",
	ErrCodeEngineTimeout:     "physics engine timed out",
}
