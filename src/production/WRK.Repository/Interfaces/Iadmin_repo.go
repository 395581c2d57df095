package interfaces

import (
	"context"

	auth_models "gitlab.com/maplesense1/wrk.registration_server/src/production/WRK.Models/auth"
)

type AdminRepository interface {
	// GetByUsername returns (nil, nil) when no admin has that username
	GetByUsername(ctx context.Context, username string) (*auth_models.Admin, error)

	// Create inserts a new admin; ErrDuplicate when the username is taken
	Create(ctx context.Context, admin *auth_models.Admin) (*auth_models.Admin, error)
}
