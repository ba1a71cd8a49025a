package event

import "context"

// Repository is the storage contract for events and their join rows.
// FindByID returns (nil, nil) when no row matches; mutations on a
// missing row return ErrEventNotFound.
//
// Registrations and presences back admin moderation decisions and must
// always be read live, so no caching decorator ever wraps them.
type Repository interface {
	FindAll(ctx context.Context, limit, offset int) ([]Event, error)
	FindPublished(ctx context.Context, limit, offset int) ([]Event, error)
	FindByID(ctx context.Context, id string) (*Event, error)
	Create(ctx context.Context, e *Event) error
	Update(ctx context.Context, id string, patch UpdateInput) (*Event, error)
	Delete(ctx context.Context, id string) error

	ListRegistrations(ctx context.Context, eventID string) ([]Registration, error)
	AddRegistration(ctx context.Context, reg *Registration) error
	RemoveRegistration(ctx context.Context, eventID, login string) error

	ListPresences(ctx context.Context, eventID string) ([]Presence, error)
	UpsertPresence(ctx context.Context, p *Presence) error
}
