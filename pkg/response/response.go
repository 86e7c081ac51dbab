package response

type ErrorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Details any    `json:"details,omitempty"`
}

type Envelope struct {
	Success bool      `json:"success"`
	Error   ErrorBody `json:"error"`
}

// Error builds the failure envelope used by the middleware layer.
func Error(code, message string, details any) Envelope {
	return Envelope{
		Success: false,
		Error: ErrorBody{
			Code:    code,
			Message: message,
			Details: details,
		},
	}
}
