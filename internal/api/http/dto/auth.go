package dto

type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type LoginResponse struct {
	Token   string `json:"token"`
	Message string `json:"message"`
}

type LockedOutResponse struct {
	Error            string `json:"error"`
	MinutesRemaining int64  `json:"minutesRemaining"`
}

type HealthResponse struct {
	Status string `json:"status"`
}
