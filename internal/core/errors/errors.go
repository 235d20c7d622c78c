package errors

const (
	HttpInternalError          = "internal_error"
	HttpInvalidQueryError      = "invalid_query"
	HttpRollupNotFoundError    = "rollup_not_found"
	HttpRefreshInProgressError = "refresh_in_progress"
	HttpRefreshFailedError     = "refresh_failed"
)

// ErrorResponse is the error response body shared by every HTTP endpoint.
type ErrorResponse struct {
	ErrorType string      `json:"error_type"`
	Message   string      `json:"message"`
	Details   interface{} `json:"details,omitempty"`
}
