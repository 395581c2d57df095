package auth

import (
	"context"
	"errors"
	"fmt"

	jwt "gitlab.com/maplesense1/wrk.registration_server/src/production/WRK.ApiService/implementation/jwt"
	api_models "gitlab.com/maplesense1/wrk.registration_server/src/production/WRK.Models/api"
	interfaces "gitlab.com/maplesense1/wrk.registration_server/src/production/WRK.Repository/Interfaces"

	"golang.org/x/crypto/bcrypt"
)

// ErrInvalidCredentials covers both an unknown username and a wrong password
var ErrInvalidCredentials = errors.New("invalid credentials")

// AuthService aggregates admin auth operations
type AuthService struct {
	adminRepo  interfaces.AdminRepository
	jwtService *jwt.Service
}

// NewAuthService creates a new auth service
func NewAuthService(adminRepo interfaces.AdminRepository, jwtService *jwt.Service) *AuthService {
	return &AuthService{
		adminRepo:  adminRepo,
		jwtService: jwtService,
	}
}

// Login authenticates an admin and returns a signed token
func (s *AuthService) Login(ctx context.Context, req api_models.LoginRequest) (*api_models.TokenResponse, error) {
	admin, err := s.adminRepo.GetByUsername(ctx, req.Username)
	if err != nil {
		return nil, fmt.Errorf("find admin: %w", err)
	}

	if admin == nil {
		// Same bcrypt work as the wrong-password path
		_ = bcrypt.CompareHashAndPassword(dummyHash, []byte(req.Password))
		return nil, ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(admin.Password), []byte(req.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	token, _, err := s.jwtService.GenerateToken(admin.ID.Hex())
	if err != nil {
		return nil, fmt.Errorf("sign token: %w", err)
	}

	return &api_models.TokenResponse{Token: token}, nil
}

// HashPassword hashes a password with the cost used for stored admins
func HashPassword(password string) (string, error) {
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), PasswordCost)
	if err != nil {
		return "", err
	}
	return string(hashedPassword), nil
}

// PasswordCost is the bcrypt cost for admin hashes
const PasswordCost = 10

var dummyHash, _ = bcrypt.GenerateFromPassword([]byte("no-such-admin"), PasswordCost)
