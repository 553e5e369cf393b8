package domain

// UserInfo is the identity resolved from an access token. It is the only
// view of "current user" the API layer ever sees.
type UserInfo struct {
	UserID        string  `json:"user_id"`
	Email         string  `json:"email"`
	Name          *string `json:"name,omitempty"`
	EmailVerified bool    `json:"email_verified"`
}

// SignUpResult is the outcome of a successful sign-up with the provider.
type SignUpResult struct {
	UserID string `json:"user_id"`
	Email  string `json:"email"`
}

// Tokens is the bundle issued by the provider on sign-in.
type Tokens struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token,omitempty"`
	TokenType    string `json:"token_type"`
	ExpiresIn    int32  `json:"expires_in"`
}
