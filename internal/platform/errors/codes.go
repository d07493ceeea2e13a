package errors

import "net/http"

// Code is a machine-readable error code.
type Code string

const (
	// CodeUnknown represents an unknown error.
	CodeUnknown Code = "UNKNOWN"

	// CodeInvalidRequest represents a malformed request payload.
	CodeInvalidRequest Code = "INVALID_REQUEST"

	// Entry errors
	CodeEntryEmptyContent Code = "ENTRY_EMPTY_CONTENT"
	CodeEntryEmptyUserID  Code = "ENTRY_EMPTY_USER_ID"

	// Reflection errors
	CodeReflectionUnavailable Code = "REFLECTION_UNAVAILABLE"

	// Thread errors
	CodeThreadCreateFailed Code = "THREAD_CREATE_FAILED"

	// Streak errors
	CodeStreakUpdateContention Code = "STREAK_UPDATE_CONTENTION"

	// Auth errors
	CodeAuthMissingToken Code = "AUTH_MISSING_TOKEN"
	CodeAuthInvalidToken Code = "AUTH_INVALID_TOKEN"

	// Storage errors
	CodeNotFound      Code = "NOT_FOUND"
	CodeAlreadyExists Code = "ALREADY_EXISTS"

	// Collaborator errors
	CodeCollaboratorUnavailable Code = "COLLABORATOR_UNAVAILABLE"
)

// HTTPStatus maps an error code to an HTTP status.
func (c Code) HTTPStatus() int {
	switch c {
	// InvalidArgument - request was malformed before reaching the core
	case CodeInvalidRequest,
		CodeEntryEmptyContent,
		CodeEntryEmptyUserID:
		return http.StatusBadRequest

	// Unauthorized - caller identity could not be established
	case CodeAuthMissingToken,
		CodeAuthInvalidToken:
		return http.StatusUnauthorized

	// NotFound - resource doesn't exist
	case CodeNotFound:
		return http.StatusNotFound

	// AlreadyExists - unique resource constraint
	case CodeAlreadyExists:
		return http.StatusConflict

	// Unavailable - a downstream collaborator failed
	case CodeCollaboratorUnavailable,
		CodeReflectionUnavailable,
		CodeThreadCreateFailed,
		CodeStreakUpdateContention:
		return http.StatusServiceUnavailable

	default:
		return http.StatusInternalServerError
	}
}
