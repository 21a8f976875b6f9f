package jwt

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/vobe/staff-auth-service/application/port/outbound"
	"github.com/vobe/staff-auth-service/domain/valueobject"
	"github.com/vobe/staff-auth-service/infrastructure/config"
)

var (
	ErrInvalidToken = errors.New("invalid token")
	ErrTokenExpired = errors.New("token expired")
	ErrMissingKey   = errors.New("signing secret is empty")
)

const defaultTTL = time.Hour

type staffClaims struct {
	UserID string `json:"id"`
	Email  string `json:"email"`
	Name   string `json:"name"`
	Type   string `json:"type"`
	Level  int    `json:"level"`
	jwt.RegisteredClaims
}

type JWTService struct {
	secret   []byte
	issuer   string
	audience string
	ttl      time.Duration
	now      func() time.Time
}

func NewJWTService(cfg *config.Config) (*JWTService, error) {
	if cfg.JWTAlgorithm != "" && cfg.JWTAlgorithm != "HS256" {
		return nil, fmt.Errorf("unsupported JWT algorithm: %s", cfg.JWTAlgorithm)
	}
	if cfg.JWTSecret == "" {
		return nil, ErrMissingKey
	}

	ttl := cfg.AccessTokenTTL
	if ttl <= 0 {
		ttl = defaultTTL
	}

	return &JWTService{
		secret:   []byte(cfg.JWTSecret),
		issuer:   cfg.JWTIssuer,
		audience: cfg.JWTAudience,
		ttl:      ttl,
		now:      time.Now,
	}, nil
}

// WithClock replaces the time source for both issuing and validating.
func (s *JWTService) WithClock(now func() time.Time) *JWTService {
	s.now = now
	return s
}

func (s *JWTService) GenerateToken(claims outbound.TokenClaims) (*valueobject.AccessToken, error) {
	issuedAt := jwt.NewNumericDate(s.now())
	expiresAt := jwt.NewNumericDate(issuedAt.Add(s.ttl))

	registered := jwt.RegisteredClaims{
		Subject:   claims.UserID,
		Issuer:    s.issuer,
		IssuedAt:  issuedAt,
		NotBefore: issuedAt,
		ExpiresAt: expiresAt,
	}
	if s.audience != "" {
		registered.Audience = jwt.ClaimStrings{s.audience}
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, staffClaims{
		UserID:           claims.UserID,
		Email:            claims.Email,
		Name:             claims.Name,
		Type:             claims.Type,
		Level:            claims.Level,
		RegisteredClaims: registered,
	})

	signed, err := token.SignedString(s.secret)
	if err != nil {
		return nil, fmt.Errorf("failed to sign access token: %w", err)
	}

	return valueobject.NewAccessToken(signed, expiresAt.Time), nil
}

func (s *JWTService) ValidateToken(tokenString string) (*outbound.TokenClaims, error) {
	opts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithIssuedAt(),
		jwt.WithLeeway(0),
		jwt.WithTimeFunc(s.now),
	}
	if s.issuer != "" {
		opts = append(opts, jwt.WithIssuer(s.issuer))
	}
	if s.audience != "" {
		opts = append(opts, jwt.WithAudience(s.audience))
	}

	var claims staffClaims
	token, err := jwt.ParseWithClaims(tokenString, &claims, func(token *jwt.Token) (interface{}, error) {
		return s.secret, nil
	}, opts...)
	if err != nil {
		return nil, s.handleValidationError(err)
	}
	if !token.Valid || claims.UserID == "" {
		return nil, ErrInvalidToken
	}

	return &outbound.TokenClaims{
		UserID: claims.UserID,
		Email:  claims.Email,
		Name:   claims.Name,
		Type:   claims.Type,
		Level:  claims.Level,
	}, nil
}

// IsValid is the fail-closed boolean form of ValidateToken.
func (s *JWTService) IsValid(tokenString string) bool {
	_, err := s.ValidateToken(tokenString)
	return err == nil
}

func (s *JWTService) handleValidationError(err error) error {
	if errors.Is(err, jwt.ErrTokenExpired) {
		return ErrTokenExpired
	}
	return fmt.Errorf("%w: %v", ErrInvalidToken, err)
}
