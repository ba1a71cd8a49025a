package member

import "context"

// Repository is the storage contract for members. Single-row lookups
// return (nil, nil) when no row matches; only transport failures produce
// an error. Mutations on a missing row return ErrMemberNotFound.
type Repository interface {
	FindAll(ctx context.Context, limit, offset int) ([]Member, error)
	FindActive(ctx context.Context, limit, offset int) ([]Member, error)
	FindVips(ctx context.Context, limit, offset int) ([]Member, error)
	FindByTwitchLogin(ctx context.Context, login string) (*Member, error)
	Create(ctx context.Context, m *Member) error
	Update(ctx context.Context, login string, patch UpdateInput) (*Member, error)
	ReplaceBadges(ctx context.Context, login string, badges []string) (*Member, error)
}
