package api

// swagger:model api.LoginResponse
type LoginResponse struct {
	AccessToken      string       `json:"access_token" example:"eyJhbGciOi..."`
	TokenType        string       `json:"token_type" example:"bearer"`
	ExpiresInMinutes int          `json:"expires_in_minutes" example:"30"`
	User             UserResponse `json:"user"`
}
