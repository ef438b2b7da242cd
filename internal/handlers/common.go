package handlers

// ErrorResponse is the error payload returned by all endpoints
// swagger:model ErrorResponse
type ErrorResponse struct {
	// Error message
	// example: User not found
	Error string `json:"error"`
}

// MessageResponse is the plain confirmation payload
// swagger:model MessageResponse
type MessageResponse struct {
	// Success message
	// example: User updated successfully
	Message string `json:"message"`
}
