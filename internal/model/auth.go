package model

type LoginCredentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginResponse struct {
	User         User   `json:"user"`
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
}

type RefreshRequest struct {
	RefreshToken string `json:"refreshToken"`
}

// RefreshResponse accepts both token field names the backend has used and
// an optional rotated refresh token.
type RefreshResponse struct {
	Token        string `json:"token"`
	AccessToken  string `json:"accessToken,omitempty"`
	RefreshToken string `json:"refreshToken,omitempty"`
}

func (r RefreshResponse) Access() string {
	if r.Token != "" {
		return r.Token
	}
	return r.AccessToken
}
