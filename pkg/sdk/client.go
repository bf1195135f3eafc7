package cardex

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/kailas-cloud/cardex/internal/db"
	dbRedis "github.com/kailas-cloud/cardex/internal/db/redis"
	"github.com/kailas-cloud/cardex/internal/domain"
	dombrand "github.com/kailas-cloud/cardex/internal/domain/brand"
	domcar "github.com/kailas-cloud/cardex/internal/domain/car"
	domeng "github.com/kailas-cloud/cardex/internal/domain/engine"
	domtag "github.com/kailas-cloud/cardex/internal/domain/tag"
	brandrepo "github.com/kailas-cloud/cardex/internal/repository/brand"
	carrepo "github.com/kailas-cloud/cardex/internal/repository/car"
	enginerepo "github.com/kailas-cloud/cardex/internal/repository/engine"
	"github.com/kailas-cloud/cardex/internal/repository/maintenance"
	tagrepo "github.com/kailas-cloud/cardex/internal/repository/tag"
	branduc "github.com/kailas-cloud/cardex/internal/usecase/brand"
	caruc "github.com/kailas-cloud/cardex/internal/usecase/car"
	engineuc "github.com/kailas-cloud/cardex/internal/usecase/engine"
	healthuc "github.com/kailas-cloud/cardex/internal/usecase/health"
	ingestuc "github.com/kailas-cloud/cardex/internal/usecase/ingest"
	recommenduc "github.com/kailas-cloud/cardex/internal/usecase/recommend"
	statsuc "github.com/kailas-cloud/cardex/internal/usecase/stats"
	tagginguc "github.com/kailas-cloud/cardex/internal/usecase/tagging"
)

const defaultReadinessTimeout = 10 * time.Second

// Internal use-case interfaces, substitutable in tests.
type carUseCase interface {
	Create(ctx context.Context, in caruc.CreateInput) (domcar.Car, error)
	Get(ctx context.Context, carSlug string) (domcar.Car, error)
	List(ctx context.Context, q caruc.ListQuery) (caruc.ListResult, error)
	Update(ctx context.Context, carSlug string, in caruc.UpdateInput) (domcar.Car, error)
	Delete(ctx context.Context, carSlug string) error
}

type engineUseCase interface {
	List(ctx context.Context, carSlug string) ([]domeng.Engine, error)
	Get(ctx context.Context, carSlug string, id int) (domeng.Engine, error)
	Create(ctx context.Context, carSlug string, in engineuc.Input) (domeng.Engine, error)
	Update(ctx context.Context, carSlug string, id int, in engineuc.Input) (domeng.Engine, error)
	Delete(ctx context.Context, carSlug string, id int) error
}

type brandUseCase interface {
	Get(ctx context.Context, brandSlug string) (dombrand.Brand, error)
	List(ctx context.Context) ([]dombrand.Brand, error)
	Count(ctx context.Context) (int, error)
}

type tagUseCase interface {
	Tags(ctx context.Context, carSlug string) ([]domtag.Tag, error)
	List(ctx context.Context, category string) ([]tagginguc.TagCount, error)
}

type statsUseCase interface {
	Compute(ctx context.Context, brandSlug string) (statsuc.Statistics, error)
}

type recommendUseCase interface {
	Recommend(ctx context.Context, carSlug string, q recommenduc.Query) ([]recommenduc.Scored, error)
}

type importUseCase interface {
	Run(ctx context.Context, r io.Reader, opts ingestuc.Options) (ingestuc.Report, error)
}

// Client is the cardex SDK entry point.
type Client struct {
	store        db.Store
	carSvc       carUseCase
	engineSvc    engineUseCase
	brandSvc     brandUseCase
	tagSvc       tagUseCase
	statsSvc     statsUseCase
	recommendSvc recommendUseCase
	healthSvc    healthUseCase
	importSvc    importUseCase
	obs          *observer
}

// New creates a cardex Client, connects to the database and ensures the
// catalog search indexes. The provided context bounds the initial
// readiness check and index creation.
func New(ctx context.Context, opts ...Option) (*Client, error) {
	cfg := &clientConfig{}
	for _, o := range opts {
		o.apply(cfg)
	}

	if len(cfg.addrs) == 0 {
		return nil, errors.New("cardex: database address required (use WithRedis or WithValkey)")
	}
	if cfg.keyPrefix != "" {
		domain.KeyPrefix = cfg.keyPrefix
	}

	store, err := createStore(cfg)
	if err != nil {
		return nil, err
	}

	if err := store.WaitForReady(ctx, defaultReadinessTimeout); err != nil {
		store.Close()
		return nil, fmt.Errorf("cardex: database not ready: %w", err)
	}

	obs, err := newObserver(cfg.logger, cfg.metricsReg)
	if err != nil {
		store.Close()
		return nil, err
	}

	c, err := wireClient(ctx, store, cfg, obs)
	if err != nil {
		store.Close()
		return nil, err
	}
	return c, nil
}

func createStore(cfg *clientConfig) (db.Store, error) {
	switch cfg.driver {
	case "redis", "valkey":
		// Valkey speaks the same wire protocol; one rueidis store serves both.
		s, err := dbRedis.NewStore(dbRedis.Config{
			Addrs:    cfg.addrs,
			Password: cfg.password,
		})
		if err != nil {
			return nil, fmt.Errorf("cardex: create store: %w", err)
		}
		return s, nil
	default:
		return nil, fmt.Errorf("cardex: unknown driver %q", cfg.driver)
	}
}

func wireClient(ctx context.Context, store db.Store, cfg *clientConfig, obs *observer) (*Client, error) {
	carRepo := carrepo.New(store)
	brandRepo := brandrepo.New(store)
	engineRepo := enginerepo.New(store)
	tagRepo := tagrepo.New(store)
	maintRepo := maintenance.New(store, carRepo, brandRepo, tagRepo)

	if err := carRepo.EnsureIndex(ctx); err != nil {
		return nil, fmt.Errorf("cardex: ensure cars index: %w", err)
	}
	if err := brandRepo.EnsureIndex(ctx); err != nil {
		return nil, fmt.Errorf("cardex: ensure brands index: %w", err)
	}
	if err := tagRepo.EnsureIndex(ctx); err != nil {
		return nil, fmt.Errorf("cardex: ensure tags index: %w", err)
	}

	taggingSvc := tagginguc.New(tagRepo, domtag.Derive)
	carSvc := caruc.New(carRepo, brandRepo, engineRepo, taggingSvc)
	if cfg.defaultPageSize > 0 || cfg.maxPageSize > 0 {
		carSvc = carSvc.WithPagination(cfg.defaultPageSize, cfg.maxPageSize)
	}
	engineSvc := engineuc.New(engineRepo, carRepo, taggingSvc)
	brandSvc := branduc.New(brandRepo)
	statsSvc := statsuc.New(brandRepo, carRepo, engineRepo, tagRepo)

	var recOpts []recommenduc.Option
	if cfg.recommendLimit > 0 {
		recOpts = append(recOpts, recommenduc.WithLimit(cfg.recommendLimit))
	}
	if cfg.recommendWeights != nil {
		recOpts = append(recOpts, recommenduc.WithWeights(toInternalWeights(*cfg.recommendWeights)))
	}
	recommendSvc := recommenduc.New(carRepo, tagRepo, recOpts...)

	healthSvc := healthuc.New(store, maintRepo)
	importSvc := ingestuc.New(brandRepo, carRepo, engineRepo, taggingSvc, maintRepo, cfg.logger)

	return &Client{
		store:        store,
		carSvc:       carSvc,
		engineSvc:    engineSvc,
		brandSvc:     brandSvc,
		tagSvc:       taggingSvc,
		statsSvc:     statsSvc,
		recommendSvc: recommendSvc,
		healthSvc:    healthSvc,
		importSvc:    importSvc,
		obs:          obs,
	}, nil
}

// Close releases all resources.
func (c *Client) Close() {
	if c.store != nil {
		c.store.Close()
	}
}

// Ping checks database connectivity.
func (c *Client) Ping(ctx context.Context) (err error) {
	start := time.Now()
	defer func() { c.obs.observe("ping", start, err) }()

	if err = c.store.Ping(ctx); err != nil {
		return fmt.Errorf("ping: %w", err)
	}
	return nil
}

// Cars returns the car catalog service.
func (c *Client) Cars() *CarService {
	return &CarService{carSvc: c.carSvc, tagSvc: c.tagSvc, obs: c.obs}
}

// Engines returns the engine service scoped to one car.
func (c *Client) Engines(carSlug string) *EngineService {
	return &EngineService{carSlug: carSlug, svc: c.engineSvc}
}

// Brands returns the brand service.
func (c *Client) Brands() *BrandService {
	return &BrandService{svc: c.brandSvc, statsSvc: c.statsSvc, obs: c.obs}
}

// Tags returns the tag browsing service.
func (c *Client) Tags() *TagService {
	return &TagService{svc: c.tagSvc}
}

// Recommendations returns the similar-car recommendation service.
func (c *Client) Recommendations() *RecommendationService {
	return &RecommendationService{svc: c.recommendSvc, obs: c.obs}
}

// Import returns the bulk catalog import service.
func (c *Client) Import() *ImportService {
	return &ImportService{svc: c.importSvc, obs: c.obs}
}
