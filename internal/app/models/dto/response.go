package dto

// ErrorResponse is the standard failure body: a single human-readable
// error string, matching what the frontend expects on every 4xx/5xx.
type ErrorResponse struct {
	Error string `json:"error"`
}

// MessageResponse is the standard success body for mutations that return
// no resource payload.
type MessageResponse struct {
	Message string `json:"message"`
}

// NewErrorResponse builds an ErrorResponse.
func NewErrorResponse(message string) ErrorResponse {
	return ErrorResponse{Error: message}
}
