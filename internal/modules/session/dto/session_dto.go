package dto

type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type LoginResponse struct {
	Success   bool   `json:"success"`
	SessionID string `json:"sessionId"`
	Message   string `json:"message"`
}

type SessionStatusResponse struct {
	Success       bool `json:"success"`
	Authenticated bool `json:"authenticated"`
}
