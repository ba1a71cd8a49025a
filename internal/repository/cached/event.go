package cached

import (
	"context"
	"time"

	"golang.org/x/sync/singleflight"

	"tenf-admin-go/internal/cache"
	"tenf-admin-go/internal/config"
	eventdomain "tenf-admin-go/internal/domain/event"
)

type EventRepository struct {
	inner eventdomain.Repository
	cache cache.Client
	ttl   config.CacheConfig
	group singleflight.Group
}

func NewEventRepository(inner eventdomain.Repository, cacheClient cache.Client, ttl config.CacheConfig) *EventRepository {
	return &EventRepository{inner: inner, cache: cacheClient, ttl: ttl}
}

func (r *EventRepository) FindAll(ctx context.Context, limit, offset int) ([]eventdomain.Event, error) {
	key := cache.Key(EventsNamespace, "find_all", pageKey(limit, offset))
	return r.cachedList(ctx, key, r.ttl.EventsAllTTL, func() ([]eventdomain.Event, error) {
		return r.inner.FindAll(ctx, limit, offset)
	})
}

func (r *EventRepository) FindPublished(ctx context.Context, limit, offset int) ([]eventdomain.Event, error) {
	key := cache.Key(EventsNamespace, "find_published", pageKey(limit, offset))
	return r.cachedList(ctx, key, r.ttl.EventsPublishedTTL, func() ([]eventdomain.Event, error) {
		return r.inner.FindPublished(ctx, limit, offset)
	})
}

func (r *EventRepository) FindByID(ctx context.Context, id string) (*eventdomain.Event, error) {
	key := cache.Key(EventsNamespace, "by_id", id)

	var hit eventdomain.Event
	if r.cache.Get(ctx, key, &hit) {
		return &hit, nil
	}

	result, err, _ := r.group.Do(key, func() (interface{}, error) {
		found, err := r.inner.FindByID(ctx, id)
		if err != nil {
			return nil, err
		}
		if found != nil {
			r.cache.SetWithNamespace(ctx, EventsNamespace, key, found, r.ttl.EventByIDTTL)
		}
		return found, nil
	})
	if err != nil {
		return nil, err
	}
	return result.(*eventdomain.Event), nil
}

func (r *EventRepository) Create(ctx context.Context, e *eventdomain.Event) error {
	if err := r.inner.Create(ctx, e); err != nil {
		return err
	}
	r.cache.InvalidateNamespace(ctx, EventsNamespace)
	return nil
}

func (r *EventRepository) Update(ctx context.Context, id string, patch eventdomain.UpdateInput) (*eventdomain.Event, error) {
	updated, err := r.inner.Update(ctx, id, patch)
	if err != nil {
		return nil, err
	}
	r.cache.InvalidateNamespace(ctx, EventsNamespace)
	return updated, nil
}

func (r *EventRepository) Delete(ctx context.Context, id string) error {
	if err := r.inner.Delete(ctx, id); err != nil {
		return err
	}
	r.cache.InvalidateNamespace(ctx, EventsNamespace)
	return nil
}

// Registrations and presences back moderation decisions: reads pass
// straight through, never cached. Mutations still drop the namespace,
// coarse-grained like every other write.

func (r *EventRepository) ListRegistrations(ctx context.Context, eventID string) ([]eventdomain.Registration, error) {
	return r.inner.ListRegistrations(ctx, eventID)
}

func (r *EventRepository) AddRegistration(ctx context.Context, reg *eventdomain.Registration) error {
	if err := r.inner.AddRegistration(ctx, reg); err != nil {
		return err
	}
	r.cache.InvalidateNamespace(ctx, EventsNamespace)
	return nil
}

func (r *EventRepository) RemoveRegistration(ctx context.Context, eventID, login string) error {
	if err := r.inner.RemoveRegistration(ctx, eventID, login); err != nil {
		return err
	}
	r.cache.InvalidateNamespace(ctx, EventsNamespace)
	return nil
}

func (r *EventRepository) ListPresences(ctx context.Context, eventID string) ([]eventdomain.Presence, error) {
	return r.inner.ListPresences(ctx, eventID)
}

func (r *EventRepository) UpsertPresence(ctx context.Context, p *eventdomain.Presence) error {
	if err := r.inner.UpsertPresence(ctx, p); err != nil {
		return err
	}
	r.cache.InvalidateNamespace(ctx, EventsNamespace)
	return nil
}

func (r *EventRepository) cachedList(ctx context.Context, key string, ttl time.Duration, load func() ([]eventdomain.Event, error)) ([]eventdomain.Event, error) {
	var cached []eventdomain.Event
	if r.cache.Get(ctx, key, &cached) {
		return cached, nil
	}

	result, err, _ := r.group.Do(key, func() (interface{}, error) {
		rows, err := load()
		if err != nil {
			return nil, err
		}
		r.cache.SetWithNamespace(ctx, EventsNamespace, key, rows, ttl)
		return rows, nil
	})
	if err != nil {
		return nil, err
	}
	return result.([]eventdomain.Event), nil
}
