package dto

// ErrorBody is the machine-readable part of a failed response.
type ErrorBody struct {
	Code     string `json:"code"`
	Category string `json:"category"`
	Field    string `json:"field,omitempty"`
	Message  string `json:"message"`
}

// ErrorResponse is returned for every failed request.
type ErrorResponse struct {
	Success bool      `json:"success"`
	Error   ErrorBody `json:"error"`
}
