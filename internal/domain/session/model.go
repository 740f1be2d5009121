package session

import "time"

type Mode string

const (
	ModeLocal Mode = "local"
	ModeOIDC  Mode = "oidc"
)

// Claims is the identity snapshot kept in the session. Fields are fixed on purpose; unknown provider
// claims are dropped when the id token is read.
type Claims struct {
	Subject         string `json:"sub,omitempty"`
	Email           string `json:"email,omitempty"`
	FirstName       string `json:"firstName,omitempty"`
	LastName        string `json:"lastName,omitempty"`
	ProfileImageURL string `json:"profileImageUrl,omitempty"`
}

// PendingLogin is present between the redirect to the issuer and the callback.
type PendingLogin struct {
	State        string `json:"state"`
	CodeVerifier string `json:"codeVerifier"`
	CallbackURL  string `json:"callbackUrl"`
	ReturnTo     string `json:"returnTo,omitempty"`
}

type Data struct {
	UserID         string        `json:"userId,omitempty"`
	Mode           Mode          `json:"mode,omitempty"`
	Claims         Claims        `json:"claims"`
	AccessToken    string        `json:"accessToken,omitempty"`
	RefreshToken   string        `json:"refreshToken,omitempty"`
	IDToken        string        `json:"idToken,omitempty"`
	TokenExpiresAt *time.Time    `json:"tokenExpiresAt,omitempty"`
	Pending        *PendingLogin `json:"pending,omitempty"`
	CreatedAt      time.Time     `json:"createdAt"`
}

type Session struct {
	ID        string
	Data      Data
	ExpiresAt time.Time
}

func (s *Session) Authenticated() bool {
	return s.Data.UserID != "" && s.Data.Pending == nil
}

// TokenSet is what the issuer returns on code exchange or refresh.
type TokenSet struct {
	AccessToken  string
	RefreshToken string
	IDToken      string
	ExpiresAt    *time.Time
	Claims       *Claims
}
