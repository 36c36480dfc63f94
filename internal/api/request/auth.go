package request

// LoginRequest carries mocked login credentials.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// SignupRequest carries mocked signup credentials.
type SignupRequest struct {
	Email           string `json:"email"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirmPassword"`
	WhatsappNumber  string `json:"whatsappNumber"`
}
