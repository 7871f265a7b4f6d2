package errors

const (
	HttpInternalError     = "internal_error"
	HttpInvalidJsonError  = "invalid_json"
	HttpInvalidInputError = "invalid_input"
	HttpNotFoundError     = "not_found"
)

// ErrorResponse is the body of every non-2xx API response.
type ErrorResponse struct {
	ErrorType string      `json:"error_type"`
	Message   string      `json:"message"`
	Details   interface{} `json:"details,omitempty"`
}
