package engine

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strconv"

	"github.com/kailas-cloud/cardex/internal/domain"
	domeng "github.com/kailas-cloud/cardex/internal/domain/engine"
)

// store is the consumer interface for engines (ISP).
type store interface {
	HSet(ctx context.Context, key string, fields map[string]string) error
	HGetAll(ctx context.Context, key string) (map[string]string, error)
	HGetAllMulti(ctx context.Context, keys []string) ([]map[string]string, error)
	HDel(ctx context.Context, key string, fields ...string) error
	Del(ctx context.Context, key string) error
	Exists(ctx context.Context, key string) (bool, error)
	IncrBy(ctx context.Context, key string, val int64) (int64, error)
	SAdd(ctx context.Context, key string, members ...string) error
	SRem(ctx context.Context, key string, members ...string) error
	SMembers(ctx context.Context, key string) ([]string, error)
	SCard(ctx context.Context, key string) (int64, error)
}

// Repo implements usecase/engine.Repository.
type Repo struct {
	store store
}

// New creates an engine repository.
func New(s store) *Repo {
	return &Repo{store: s}
}

// Create allocates the next engine ID for the car, stores the hash and
// registers the ID in the car's engine set. On SADD failure the hash is
// rolled back via DEL.
func (r *Repo) Create(ctx context.Context, e domeng.Engine) (domeng.Engine, error) {
	carSlug := e.CarSlug()
	id, err := r.store.IncrBy(ctx, seqKey(carSlug), 1)
	if err != nil {
		return domeng.Engine{}, fmt.Errorf("incr engine seq %s: %w", carSlug, err)
	}
	e = e.WithID(int(id))

	key := engineKey(carSlug, e.ID())
	if err := r.store.HSet(ctx, key, engineToHash(e)); err != nil {
		return domeng.Engine{}, fmt.Errorf("hset engine %s: %w", key, err)
	}

	if err := r.store.SAdd(ctx, enginesKey(carSlug), strconv.Itoa(e.ID())); err != nil {
		cleanupErr := r.store.Del(ctx, key)
		return domeng.Engine{}, errors.Join(err, cleanupErr)
	}

	return e, nil
}

// Get retrieves an engine by car slug and ID.
func (r *Repo) Get(ctx context.Context, carSlug string, id int) (domeng.Engine, error) {
	m, err := r.store.HGetAll(ctx, engineKey(carSlug, id))
	if err != nil {
		return domeng.Engine{}, fmt.Errorf("hgetall engine %s/%d: %w", carSlug, id, err)
	}
	if len(m) == 0 {
		return domeng.Engine{}, domain.ErrEngineNotFound
	}
	return engineFromHash(m)
}

// Update replaces the stored engine hash. Spec fields absent from the new
// state are removed so stale values never survive a full replace.
func (r *Repo) Update(ctx context.Context, e domeng.Engine) error {
	key := engineKey(e.CarSlug(), e.ID())
	exists, err := r.store.Exists(ctx, key)
	if err != nil {
		return fmt.Errorf("check exists: %w", err)
	}
	if !exists {
		return domain.ErrEngineNotFound
	}

	fields := engineToHash(e)
	if err := r.store.HSet(ctx, key, fields); err != nil {
		return fmt.Errorf("hset engine %s: %w", key, err)
	}
	if stale := absentOptional(fields); len(stale) > 0 {
		if err := r.store.HDel(ctx, key, stale...); err != nil {
			return fmt.Errorf("hdel engine %s: %w", key, err)
		}
	}
	return nil
}

// Delete removes an engine hash and its ID from the car's engine set.
func (r *Repo) Delete(ctx context.Context, carSlug string, id int) error {
	key := engineKey(carSlug, id)
	exists, err := r.store.Exists(ctx, key)
	if err != nil {
		return fmt.Errorf("check exists: %w", err)
	}
	if !exists {
		return domain.ErrEngineNotFound
	}

	if err := r.store.Del(ctx, key); err != nil {
		return fmt.Errorf("del engine %s: %w", key, err)
	}
	if err := r.store.SRem(ctx, enginesKey(carSlug), strconv.Itoa(id)); err != nil {
		return fmt.Errorf("srem engine %s/%d: %w", carSlug, id, err)
	}
	return nil
}

// List returns the car's engines ordered by ascending ID.
func (r *Repo) List(ctx context.Context, carSlug string) ([]domeng.Engine, error) {
	members, err := r.store.SMembers(ctx, enginesKey(carSlug))
	if err != nil {
		return nil, fmt.Errorf("smembers engines %s: %w", carSlug, err)
	}
	if len(members) == 0 {
		return []domeng.Engine{}, nil
	}

	ids := make([]int, 0, len(members))
	for _, m := range members {
		id, err := strconv.Atoi(m)
		if err != nil {
			return nil, fmt.Errorf("invalid engine id %q: %w", m, err)
		}
		ids = append(ids, id)
	}
	sort.Ints(ids)

	keys := make([]string, len(ids))
	for i, id := range ids {
		keys[i] = engineKey(carSlug, id)
	}
	results, err := r.store.HGetAllMulti(ctx, keys)
	if err != nil {
		return nil, fmt.Errorf("hgetall multi engines %s: %w", carSlug, err)
	}

	engines := make([]domeng.Engine, 0, len(results))
	for i, m := range results {
		if len(m) == 0 {
			continue
		}
		e, err := engineFromHash(m)
		if err != nil {
			return nil, fmt.Errorf("parse engine %s: %w", keys[i], err)
		}
		engines = append(engines, e)
	}
	return engines, nil
}

// Count returns the number of engines registered for a car.
func (r *Repo) Count(ctx context.Context, carSlug string) (int, error) {
	n, err := r.store.SCard(ctx, enginesKey(carSlug))
	if err != nil {
		return 0, fmt.Errorf("scard engines %s: %w", carSlug, err)
	}
	return int(n), nil
}

// Storage key patterns: cardex:engine:{car_slug}:{id},
// cardex:car:{slug}:engines, cardex:car:{slug}:engineseq

func engineKey(carSlug string, id int) string {
	return fmt.Sprintf("%sengine:%s:%d", domain.KeyPrefix, carSlug, id)
}

func enginesKey(carSlug string) string {
	return fmt.Sprintf("%scar:%s:engines", domain.KeyPrefix, carSlug)
}

func seqKey(carSlug string) string {
	return fmt.Sprintf("%scar:%s:engineseq", domain.KeyPrefix, carSlug)
}
