package spotlight

import "context"

// Repository reads always hit the store: the single-active invariant
// cannot tolerate a stale cached row.
type Repository interface {
	FindActive(ctx context.Context) (*Spotlight, error)
	FindByID(ctx context.Context, id string) (*Spotlight, error)
	List(ctx context.Context, limit, offset int) ([]Spotlight, error)
	Create(ctx context.Context, s *Spotlight) error
	Close(ctx context.Context, id string) (*Spotlight, error)

	ListPresences(ctx context.Context, spotlightID string) ([]Presence, error)
	UpsertPresence(ctx context.Context, p *Presence) error

	ListEvaluations(ctx context.Context, spotlightID string) ([]Evaluation, error)
	UpsertEvaluation(ctx context.Context, e *Evaluation) error
}
