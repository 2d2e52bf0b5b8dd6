package models

// ErrorResponse is the JSON body of every failed request.
type ErrorResponse struct {
	Message string `json:"message"`
	Error   string `json:"error,omitempty"`
}

// AuthResponse is returned by signup and login.
type AuthResponse struct {
	Token   string `json:"token"`
	Message string `json:"message,omitempty"`
}

// VerifyResponse reports the outcome of a token check.
type VerifyResponse struct {
	Valid   bool         `json:"valid"`
	User    *TokenClaims `json:"user,omitempty"`
	Message string       `json:"message,omitempty"`
}

// DashboardResponse wraps the authenticated user's profile.
type DashboardResponse struct {
	Message string `json:"message"`
	User    User   `json:"user"`
}

// UploadResponse is returned after an attachment has been stored.
type UploadResponse struct {
	FileID   string `json:"fileId"`
	Filename string `json:"filename"`
}

// MessageResponse is a plain acknowledgement.
type MessageResponse struct {
	Message string `json:"message"`
}
