package evaluation

import "context"

// Repository reads always hit the store: scores are recomputed often
// and must reflect the latest write, so no caching decorator exists.
type Repository interface {
	ListByLogin(ctx context.Context, login string, limit, offset int) ([]Evaluation, error)
	FindByLoginAndMonth(ctx context.Context, login, month string) (*Evaluation, error)
	Upsert(ctx context.Context, e *Evaluation) error
	Delete(ctx context.Context, login, month string) error
	AverageScore(ctx context.Context, login string) (float64, int64, error)
}
