package registration

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	logger "gitlab.com/maplesense1/wrk.registration_server/src/production/WRK.Logger"
	api_models "gitlab.com/maplesense1/wrk.registration_server/src/production/WRK.Models/api"
	workshop_models "gitlab.com/maplesense1/wrk.registration_server/src/production/WRK.Models/workshop"
	notifier "gitlab.com/maplesense1/wrk.registration_server/src/production/WRK.Notifier"
	interfaces "gitlab.com/maplesense1/wrk.registration_server/src/production/WRK.Repository/Interfaces"
)

var (
	ErrMissingFields  = errors.New("missing required fields")
	ErrInvalidSource  = fmt.Errorf("howDidYouHear must be one of: %s", strings.Join(workshop_models.HowDidYouHearOptions(), ", "))
	ErrDuplicateEmail = errors.New("email already registered")
)

// RegistrationService handles workshop sign-ups
type RegistrationService struct {
	registrationRepo interfaces.RegistrationRepository
	notifier         notifier.Notifier
	logger           *logger.Logger
	validate         *validator.Validate
	now              func() time.Time
}

// NewRegistrationService creates a new registration service
func NewRegistrationService(registrationRepo interfaces.RegistrationRepository, n notifier.Notifier, logger *logger.Logger) *RegistrationService {
	if n == nil {
		n = notifier.Noop{}
	}
	return &RegistrationService{
		registrationRepo: registrationRepo,
		notifier:         n,
		logger:           logger.WithComponent("registration"),
		validate:         validator.New(),
		now:              time.Now,
	}
}

// Register validates and stores a new registration
func (s *RegistrationService) Register(ctx context.Context, req api_models.RegisterRequest) (*workshop_models.Registration, error) {
	req.Name = strings.TrimSpace(req.Name)
	req.Email = workshop_models.NormalizeEmail(req.Email)

	if err := s.validateRequest(req); err != nil {
		return nil, err
	}

	existing, err := s.registrationRepo.GetByEmail(ctx, req.Email)
	if err != nil {
		return nil, fmt.Errorf("find registration: %w", err)
	}
	if existing != nil {
		return nil, ErrDuplicateEmail
	}

	registration := &workshop_models.Registration{
		Name:                 req.Name,
		Email:                req.Email,
		ContactNo:            req.ContactNo,
		CollegeName:          req.CollegeName,
		CourseSpecialization: req.CourseSpecialization,
		YearOfStudy:          req.YearOfStudy,
		HowDidYouHear:        req.HowDidYouHear,
		RegisteredAt:         s.now().UTC().Truncate(time.Millisecond),
	}

	saved, err := s.registrationRepo.Create(ctx, registration)
	if err != nil {
		// Another request with the same email won the insert
		if errors.Is(err, interfaces.ErrDuplicate) {
			return nil, ErrDuplicateEmail
		}
		return nil, fmt.Errorf("create registration: %w", err)
	}

	if err := s.notifier.NotifyRegistration(ctx, saved); err != nil {
		s.logger.Logger.Warn().Err(err).Str("registration_id", saved.ID.Hex()).Msg("Failed to publish registration event")
	}

	return saved, nil
}

// List returns every registration, newest first
func (s *RegistrationService) List(ctx context.Context) ([]*workshop_models.Registration, error) {
	registrations, err := s.registrationRepo.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("list registrations: %w", err)
	}
	if registrations == nil {
		registrations = []*workshop_models.Registration{}
	}
	return registrations, nil
}

func (s *RegistrationService) validateRequest(req api_models.RegisterRequest) error {
	err := s.validate.Struct(req)
	if err == nil {
		return nil
	}

	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return err
	}

	// Missing fields take priority over a bad referral source
	for _, fe := range validationErrors {
		if fe.Tag() == "required" {
			return ErrMissingFields
		}
	}
	return ErrInvalidSource
}
