package valueobject

import "time"

// AccessToken is a signed token together with the instant it stops validating.
type AccessToken struct {
	Token     string
	ExpiresAt time.Time
}

func NewAccessToken(token string, expiresAt time.Time) *AccessToken {
	return &AccessToken{
		Token:     token,
		ExpiresAt: expiresAt,
	}
}

func (t *AccessToken) ExpiresIn(now time.Time) time.Duration {
	if now.After(t.ExpiresAt) {
		return 0
	}
	return t.ExpiresAt.Sub(now)
}
