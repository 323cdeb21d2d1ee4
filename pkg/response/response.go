package response

import "time"

// ErrorResponse is the body of every failed call. Success is always false.
type ErrorResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
}

type MessageResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

type DataResponse struct {
	Success bool   `json:"success"`
	Data    any    `json:"data"`
	Message string `json:"message,omitempty"`
}

// SubmissionResponse is returned by the public create endpoints.
type SubmissionResponse struct {
	Success            bool   `json:"success"`
	Data               any    `json:"data"`
	ConfirmationNumber string `json:"confirmationNumber"`
	Message            string `json:"message"`
}

type TokenResponse struct {
	Success   bool      `json:"success"`
	Token     string    `json:"token"`
	Username  string    `json:"username,omitempty"`
	Email     string    `json:"email,omitempty"`
	Name      string    `json:"name,omitempty"`
	Role      string    `json:"role"`
	ExpiresAt time.Time `json:"expiresAt"`
}

func OK(data any) DataResponse {
	return DataResponse{Success: true, Data: data}
}

func OKWithMessage(data any, msg string) DataResponse {
	return DataResponse{Success: true, Data: data, Message: msg}
}
