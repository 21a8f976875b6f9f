package outbound

import "github.com/vobe/staff-auth-service/domain/valueobject"

type TokenClaims struct {
	UserID string `json:"id"`
	Email  string `json:"email"`
	Name   string `json:"name"`
	Type   string `json:"type"`
	Level  int    `json:"level"`
}

type TokenService interface {
	GenerateToken(claims TokenClaims) (*valueobject.AccessToken, error)
	ValidateToken(token string) (*TokenClaims, error)
}
