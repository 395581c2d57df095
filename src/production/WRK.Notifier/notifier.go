package notifier

import (
	"context"
	"time"

	workshop_models "gitlab.com/maplesense1/wrk.registration_server/src/production/WRK.Models/workshop"
)

// EventRegistrationCreated is the event name published for a new sign-up
const EventRegistrationCreated = "registration.created"

type Notifier interface {
	NotifyRegistration(ctx context.Context, registration *workshop_models.Registration) error
}

// RegistrationEvent is the payload published for each new registration
type RegistrationEvent struct {
	Event        string    `json:"event"`
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	CollegeName  string    `json:"collegeName"`
	RegisteredAt time.Time `json:"registeredAt"`
}

// NewRegistrationEvent builds the event for a stored registration
func NewRegistrationEvent(registration *workshop_models.Registration) RegistrationEvent {
	return RegistrationEvent{
		Event:        EventRegistrationCreated,
		ID:           registration.ID.Hex(),
		Name:         registration.Name,
		Email:        registration.Email,
		CollegeName:  registration.CollegeName,
		RegisteredAt: registration.RegisteredAt.UTC(),
	}
}

// Noop drops every notification. Used when no broker is configured.
type Noop struct{}

func (Noop) NotifyRegistration(context.Context, *workshop_models.Registration) error {
	return nil
}
