package jwt

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	uuid "github.com/google/uuid"
	api_models "gitlab.com/maplesense1/wrk.registration_server/src/production/WRK.Models/api"
)

// DefaultTokenDuration is the lifetime of an admin token
const DefaultTokenDuration = 5 * time.Hour

var (
	ErrInvalidToken = errors.New("invalid token")
	ErrMissingAdmin = errors.New("token carries no admin identity")
)

// Service provides JWT operations
type Service struct {
	config api_models.Config
	now    func() time.Time
}

// NewService creates a new JWT service
func NewService(config api_models.Config) *Service {
	if config.TokenDuration <= 0 {
		config.TokenDuration = DefaultTokenDuration
	}
	return &Service{
		config: config,
		now:    time.Now,
	}
}

// WithClock returns a copy of the service that reads time from now
func (s *Service) WithClock(now func() time.Time) *Service {
	return &Service{config: s.config, now: now}
}

// GenerateToken signs an admin token that expires after the configured duration
func (s *Service) GenerateToken(adminID string) (string, time.Time, error) {
	now := s.now()
	expiresAt := now.Add(s.config.TokenDuration)

	claims := api_models.AdminClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.New().String(),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(now),
		},
		Admin: api_models.AdminIdentity{ID: adminID},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(s.config.SecretKey))
	if err != nil {
		return "", time.Time{}, err
	}

	return signed, expiresAt, nil
}

// ValidateToken verifies signature and expiry and returns the claims
func (s *Service) ValidateToken(tokenString string) (*api_models.AdminClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &api_models.AdminClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return []byte(s.config.SecretKey), nil
	}, jwt.WithTimeFunc(s.now), jwt.WithExpirationRequired())

	if err != nil {
		return nil, err
	}

	claims, ok := token.Claims.(*api_models.AdminClaims)
	if !ok || !token.Valid {
		return nil, ErrInvalidToken
	}
	if claims.Admin.ID == "" {
		return nil, ErrMissingAdmin
	}

	return claims, nil
}
