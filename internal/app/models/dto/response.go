package dto

// MessageResponse is the standard success shape for write endpoints.
type MessageResponse struct {
	Message string `json:"message"`
}

// ErrorResponse is the wire shape for all error replies. The message stays
// generic on authentication failures so that distinct causes (unknown email,
// wrong secret, expired token) are indistinguishable to the client.
type ErrorResponse struct {
	Error string `json:"error"`
}

// NewErrorResponse creates an error response with the given message.
func NewErrorResponse(message string) ErrorResponse {
	return ErrorResponse{Error: message}
}
