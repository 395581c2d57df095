package auth

import (
	"context"
	"errors"
	"fmt"

	logger "gitlab.com/maplesense1/wrk.registration_server/src/production/WRK.Logger"
	auth_models "gitlab.com/maplesense1/wrk.registration_server/src/production/WRK.Models/auth"
	interfaces "gitlab.com/maplesense1/wrk.registration_server/src/production/WRK.Repository/Interfaces"
)

var ErrMissingAdminCredentials = errors.New("admin username and password are required")

// AdminConfig holds seed credentials
type AdminConfig struct {
	Username string
	Password string
}

// AdminInitializerService creates the dashboard admin once
type AdminInitializerService struct {
	adminRepo   interfaces.AdminRepository
	logger      *logger.Logger
	adminConfig AdminConfig
}

// NewAdminInitializerService creates a new admin initializer service
func NewAdminInitializerService(adminRepo interfaces.AdminRepository, logger *logger.Logger, adminConfig AdminConfig) *AdminInitializerService {
	return &AdminInitializerService{
		adminRepo:   adminRepo,
		logger:      logger,
		adminConfig: adminConfig,
	}
}

// SeedAdmin creates the configured admin unless one with that username exists.
// It reports whether a new admin was written.
func (s *AdminInitializerService) SeedAdmin(ctx context.Context) (bool, error) {
	if s.adminConfig.Username == "" || s.adminConfig.Password == "" {
		return false, ErrMissingAdminCredentials
	}

	existing, err := s.adminRepo.GetByUsername(ctx, s.adminConfig.Username)
	if err != nil {
		return false, fmt.Errorf("find admin: %w", err)
	}
	if existing != nil {
		s.logger.Logger.Info().Str("username", s.adminConfig.Username).Msg("Admin user already exists")
		return false, nil
	}

	hashedPassword, err := HashPassword(s.adminConfig.Password)
	if err != nil {
		return false, fmt.Errorf("failed to hash admin password: %w", err)
	}

	if _, err := s.adminRepo.Create(ctx, auth_models.NewAdmin(s.adminConfig.Username, hashedPassword)); err != nil {
		// Lost a race with another seed run
		if errors.Is(err, interfaces.ErrDuplicate) {
			s.logger.Logger.Info().Str("username", s.adminConfig.Username).Msg("Admin user already exists")
			return false, nil
		}
		return false, err
	}

	s.logger.Logger.Info().Str("username", s.adminConfig.Username).Msg("Admin user created successfully")
	return true, nil
}
