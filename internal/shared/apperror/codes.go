package apperror

const (
	// Client errors (4xx)
	CodeInvalidInput     = "INVALID_INPUT"
	CodeUnauthorized     = "UNAUTHORIZED"
	CodeForbidden        = "FORBIDDEN"
	CodeNotFound         = "NOT_FOUND"
	CodeConflict         = "CONFLICT"
	CodeInvalidState     = "INVALID_STATE"
	CodeTooManyCalls     = "TOO_MANY_REQUESTS"
	CodeUnknownField     = "UNKNOWN_FIELD"
	CodeInvalidAction    = "INVALID_ACTION"
	CodeUnsupportedMedia = "UNSUPPORTED_MEDIA_TYPE"
	CodePayloadTooLarge  = "PAYLOAD_TOO_LARGE"

	// Server errors (5xx)
	CodeInternalError      = "INTERNAL_ERROR"
	CodeServiceUnavailable = "SERVICE_UNAVAILABLE"

	// Backend collaborator errors
	CodeBackendUnavailable = "BACKEND_UNAVAILABLE"
	CodeBackendRejected    = "BACKEND_REJECTED"
	CodeMalformedResponse  = "MALFORMED_RESPONSE"
)
