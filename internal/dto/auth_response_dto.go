package dto

// LoginRequest is the body of a local email/password login.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password" binding:"required"`
}

// VerifyEmailRequest carries the code from a verification mail.
type VerifyEmailRequest struct {
	Code string `json:"code" binding:"required,uuid"`
}

// ExchangeCodeRequest carries the authorization code returned by an OAuth provider.
type ExchangeCodeRequest struct {
	Code string `json:"code" binding:"required"`
}

// LoginResponse represents the response for a successful login.
type LoginResponse struct {
	Token     string       `json:"token"`
	ExpiresAt int64        `json:"expiresAt"`
	User      UserResponse `json:"user"`
}

// SocialLoginResponse is a LoginResponse that also tells whether the account was just created.
type SocialLoginResponse struct {
	LoginResponse
	Created bool `json:"created"`
}

// LoginURLResponse is returned by the provider login-url endpoints.
type LoginURLResponse struct {
	URL   string `json:"url"`
	State string `json:"state"`
}
