package interfaces

import (
	"context"
	"errors"

	workshop_models "gitlab.com/maplesense1/wrk.registration_server/src/production/WRK.Models/workshop"
)

// ErrDuplicate is returned when an insert violates a unique index
var ErrDuplicate = errors.New("duplicate key")

type RegistrationRepository interface {
	// Create inserts a registration and assigns its ID; ErrDuplicate on an existing email
	Create(ctx context.Context, registration *workshop_models.Registration) (*workshop_models.Registration, error)

	// GetByEmail returns (nil, nil) when no registration uses that email
	GetByEmail(ctx context.Context, email string) (*workshop_models.Registration, error)

	// ListAll returns every registration, newest first
	ListAll(ctx context.Context) ([]*workshop_models.Registration, error)
}
