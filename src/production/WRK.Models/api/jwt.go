package api_models

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Config holds JWT configuration
type Config struct {
	SecretKey     string
	TokenDuration time.Duration
}

// AdminIdentity is the identity carried inside an admin token
type AdminIdentity struct {
	ID string `json:"id"`
}

// AdminClaims represents the JWT claims for admin access.
// The payload shape is {"admin": {"id": "..."}} plus registered claims.
type AdminClaims struct {
	jwt.RegisteredClaims
	Admin AdminIdentity `json:"admin"`
}
