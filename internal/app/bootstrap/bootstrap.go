// Package bootstrap is the composition root.
// Keep construction/wiring here so module code stays framework-agnostic.
package bootstrap

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	photoservice "vestiaire/contexts/contest/photo-service"
	photomemory "vestiaire/contexts/contest/photo-service/adapters/memory"
	photopostgres "vestiaire/contexts/contest/photo-service/adapters/postgres"
	votingengine "vestiaire/contexts/contest/voting-engine"
	votelocal "vestiaire/contexts/contest/voting-engine/adapters/local"
	votememory "vestiaire/contexts/contest/voting-engine/adapters/memory"
	votepostgres "vestiaire/contexts/contest/voting-engine/adapters/postgres"
	voteports "vestiaire/contexts/contest/voting-engine/ports"
	principalservice "vestiaire/contexts/identity-access/principal-service"
	"vestiaire/contexts/identity-access/principal-service/adapters/jwtauth"
	principalports "vestiaire/contexts/identity-access/principal-service/ports"
	listingservice "vestiaire/contexts/marketplace/listing-service"
	listingpostgres "vestiaire/contexts/marketplace/listing-service/adapters/postgres"
	moderationservice "vestiaire/contexts/moderation-safety/moderation-service"
	moderationlocal "vestiaire/contexts/moderation-safety/moderation-service/adapters/local"
	"vestiaire/internal/platform/blobstore"
	"vestiaire/internal/platform/cache"
	"vestiaire/internal/platform/config"
	"vestiaire/internal/platform/db"
	"vestiaire/internal/platform/httpserver"
	"vestiaire/internal/platform/messaging"
)

type relay interface {
	RunOnce(ctx context.Context) error
}

type APIApp struct {
	server   *httpserver.Server
	postgres *db.Postgres
	ranking  *cache.RankingCache

	// Populated only for in-memory runs, where no worker process exists to
	// drain outboxes or reconcile votes.
	relays       []relay
	consumer     *votingengine.Module
	pollInterval time.Duration

	logger *slog.Logger
}

type WorkerApp struct {
	postgres     *db.Postgres
	ranking      *cache.RankingCache
	relays       []relay
	voting       votingengine.Module
	syncEnabled  bool
	pollInterval time.Duration
	logger       *slog.Logger
}

func BuildAPI() (*APIApp, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	logger := slog.Default().With("service", cfg.ServiceName, "process", "api")

	app := &APIApp{logger: logger, pollInterval: cfg.OutboxPollInterval}
	bus := messaging.NewBus(logger)

	var modules httpserver.Modules
	if strings.TrimSpace(cfg.PostgresDSN) != "" {
		pg, listingRepo, photoRepo, voteRepo, err := connectAndMigrate(cfg.PostgresDSN, logger)
		if err != nil {
			return nil, err
		}
		app.postgres = pg

		rankingCache, closer := buildRankingCache(cfg, logger)
		app.ranking = closer

		// The worker process owns relay and reconciliation; the API only
		// serves requests and appends to the outboxes.
		voting := votingengine.NewModule(votingengine.Dependencies{
			Votes:     voteRepo,
			Directory: votelocal.PhotoDirectory{Photos: photoRepo},
			Gate:      votelocal.ContestGate{Settings: photoRepo},
			Cache:     rankingCache,
			Outbox:    voteRepo,
			Clock:     votepostgres.SystemClock{},
			IDGen:     votepostgres.UUIDGenerator{},
			Logger:    logger,
		})
		photos := photoservice.NewModule(photoservice.Dependencies{
			Photos:   photoRepo,
			Settings: photoRepo,
			Votes:    voting.Purger,
			Outbox:   photoRepo,
			Clock:    photopostgres.SystemClock{},
			IDGen:    photopostgres.UUIDGenerator{},
			Logger:   logger,
		})
		listings := listingservice.NewModule(listingservice.Dependencies{
			Listings:     listingRepo,
			Reservations: listingRepo,
			Favorites:    listingRepo,
			Outbox:       listingRepo,
			Clock:        listingpostgres.SystemClock{},
			IDGen:        listingpostgres.UUIDGenerator{},
			Logger:       logger,
		})
		modules = assembleModules(cfg, logger, listings, photos, voting)
	} else {
		// No database configured: run everything on in-memory stores and keep
		// the relays and the lifecycle consumer inside this process.
		listings, photos, voting := buildInMemory(bus, logger)
		modules = assembleModules(cfg, logger, listings, photos, voting)
		app.relays = []relay{listings.Relay, photos.Relay, voting.Relay}
		app.consumer = &voting
		logger.Warn("running with in-memory stores; data will not survive a restart",
			"event", "bootstrap_memory_mode",
			"module", "internal/app/bootstrap",
			"layer", "platform",
		)
	}

	if cfg.MinioEndpoint != "" {
		store, err := blobstore.New(context.Background(), blobstore.Options{
			Endpoint:  cfg.MinioEndpoint,
			AccessKey: cfg.MinioAccessKey,
			SecretKey: cfg.MinioSecretKey,
			Bucket:    cfg.MinioBucket,
			UseSSL:    cfg.MinioUseSSL,
		}, logger)
		if err != nil {
			return nil, err
		}
		modules.Uploads = store
	}

	app.server = httpserver.New(modules, logger, normalizeAddr(cfg.HTTPPort))
	return app, nil
}

func BuildWorker() (*WorkerApp, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	logger := slog.Default().With("service", cfg.ServiceName, "process", "worker")
	if strings.TrimSpace(cfg.PostgresDSN) == "" {
		return nil, errors.New("POSTGRES_DSN is required for the worker process")
	}

	pg, listingRepo, photoRepo, voteRepo, err := connectAndMigrate(cfg.PostgresDSN, logger)
	if err != nil {
		return nil, err
	}

	bus := messaging.NewBus(logger)
	rankingCache, closer := buildRankingCache(cfg, logger)

	voting := votingengine.NewModule(votingengine.Dependencies{
		Votes:        voteRepo,
		Directory:    votelocal.PhotoDirectory{Photos: photoRepo},
		Gate:         votelocal.ContestGate{Settings: photoRepo},
		Cache:        rankingCache,
		Subscriber:   bus,
		Outbox:       voteRepo,
		OutboxReader: voteRepo,
		Publisher:    bus,
		Clock:        votepostgres.SystemClock{},
		IDGen:        votepostgres.UUIDGenerator{},
		Logger:       logger,
	})
	photos := photoservice.NewModule(photoservice.Dependencies{
		Photos:       photoRepo,
		Settings:     photoRepo,
		Votes:        voting.Purger,
		Outbox:       photoRepo,
		OutboxReader: photoRepo,
		Publisher:    bus,
		Clock:        photopostgres.SystemClock{},
		IDGen:        photopostgres.UUIDGenerator{},
		Logger:       logger,
	})
	listings := listingservice.NewModule(listingservice.Dependencies{
		Listings:     listingRepo,
		Reservations: listingRepo,
		Favorites:    listingRepo,
		Outbox:       listingRepo,
		OutboxReader: listingRepo,
		Publisher:    bus,
		Clock:        listingpostgres.SystemClock{},
		IDGen:        listingpostgres.UUIDGenerator{},
		Logger:       logger,
	})

	app := &WorkerApp{
		postgres:     pg,
		ranking:      closer,
		voting:       voting,
		syncEnabled:  cfg.EnablePhotoLifecycleSync,
		pollInterval: cfg.OutboxPollInterval,
		logger:       logger,
	}
	if cfg.EnableOutboxRelay {
		app.relays = []relay{listings.Relay, photos.Relay, voting.Relay}
	}
	return app, nil
}

func (a *APIApp) Run(ctx context.Context) error {
	if a.consumer != nil {
		if err := a.consumer.Consumer.Start(ctx); err != nil {
			return err
		}
	}
	if len(a.relays) > 0 {
		go a.runRelays(ctx)
	}
	a.logger.Info("api app started",
		"event", "bootstrap_api_started",
		"module", "internal/app/bootstrap",
		"layer", "platform",
	)
	return a.server.Start()
}

func (a *APIApp) runRelays(ctx context.Context) {
	ticker := time.NewTicker(a.pollInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			for _, r := range a.relays {
				if err := r.RunOnce(ctx); err != nil {
					a.logger.Error("outbox relay pass failed",
						"event", "bootstrap_relay_failed",
						"module", "internal/app/bootstrap",
						"layer", "platform",
						"error", err.Error(),
					)
				}
			}
		}
	}
}

func (a *APIApp) Close() error {
	if a.ranking != nil {
		_ = a.ranking.Close()
	}
	if a.postgres != nil {
		return a.postgres.Close()
	}
	return nil
}

func (w *WorkerApp) Run(ctx context.Context) error {
	if w.syncEnabled {
		if err := w.voting.Consumer.Start(ctx); err != nil {
			return err
		}
	}

	ticker := time.NewTicker(w.pollInterval)
	defer ticker.Stop()

	w.logger.Info("worker app started",
		"event", "bootstrap_worker_started",
		"module", "internal/app/bootstrap",
		"layer", "platform",
		"poll_interval", w.pollInterval.String(),
	)

	for {
		for _, r := range w.relays {
			if err := r.RunOnce(ctx); err != nil {
				return err
			}
		}
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
		}
	}
}

func (w *WorkerApp) Close() error {
	if w.ranking != nil {
		_ = w.ranking.Close()
	}
	if w.postgres != nil {
		return w.postgres.Close()
	}
	return nil
}

func connectAndMigrate(dsn string, logger *slog.Logger) (*db.Postgres, *listingpostgres.Repository, *photopostgres.Repository, *votepostgres.Repository, error) {
	pg, err := db.Connect(dsn)
	if err != nil {
		return nil, nil, nil, nil, err
	}
	listingRepo := listingpostgres.NewRepository(pg.DB, logger)
	photoRepo := photopostgres.NewRepository(pg.DB, logger)
	voteRepo := votepostgres.NewRepository(pg.DB, logger)
	for _, migrate := range []func() error{listingRepo.Migrate, photoRepo.Migrate, voteRepo.Migrate} {
		if err := migrate(); err != nil {
			_ = pg.Close()
			return nil, nil, nil, nil, err
		}
	}
	return pg, listingRepo, photoRepo, voteRepo, nil
}

// buildRankingCache returns the ranking cache port plus the redis handle to
// close on shutdown. Without redis the voting memory store stands in, scoped
// to this process.
func buildRankingCache(cfg config.Config, logger *slog.Logger) (voteports.RankingCache, *cache.RankingCache) {
	if strings.TrimSpace(cfg.RedisAddr) == "" {
		return votememory.NewStore(), nil
	}
	redisCache := cache.NewRankingCache(cfg.RedisAddr, cfg.RankingCacheTTL, logger)
	return redisCache, redisCache
}

func buildInMemory(bus *messaging.Bus, logger *slog.Logger) (listingservice.Module, photoservice.Module, votingengine.Module) {
	photoStore := photomemory.NewStore(nil)

	// A single voting store must back votes, cache, and outbox so the relay
	// and consumer observe the same state.
	votingStore := votememory.NewStore()
	voting := votingengine.NewModule(votingengine.Dependencies{
		Votes:        votingStore,
		Directory:    votelocal.PhotoDirectory{Photos: photoStore},
		Gate:         votelocal.ContestGate{Settings: photoStore},
		Cache:        votingStore,
		Subscriber:   bus,
		Outbox:       votingStore,
		OutboxReader: votingStore,
		Publisher:    bus,
		Clock:        votingStore,
		IDGen:        votingStore,
		Logger:       logger,
	})
	voting.Store = votingStore

	photos := photoservice.NewModule(photoservice.Dependencies{
		Photos:       photoStore,
		Settings:     photoStore,
		Votes:        voting.Purger,
		Outbox:       photoStore,
		OutboxReader: photoStore,
		Publisher:    bus,
		Clock:        photoStore,
		IDGen:        photoStore,
		Logger:       logger,
	})
	photos.Store = photoStore

	listings := listingservice.NewInMemoryModule(nil, bus, logger)
	return listings, photos, voting
}

func assembleModules(
	cfg config.Config,
	logger *slog.Logger,
	listings listingservice.Module,
	photos photoservice.Module,
	voting votingengine.Module,
) httpserver.Modules {
	var verifier principalports.TokenVerifier
	if strings.TrimSpace(cfg.JWTSecret) != "" {
		verifier = jwtauth.NewVerifier(cfg.JWTSecret)
	}
	principals := principalservice.NewModule(principalservice.Dependencies{
		Verifier: verifier,
		Logger:   logger,
	})
	moderation := moderationservice.NewModule(moderationservice.Dependencies{
		Listings:      moderationlocal.ListingBridge{Moderate: listings.Handler.ModerateListing, Queries: listings.Handler.Queries},
		Photos:        moderationlocal.PhotoBridge{Moderate: photos.Handler.ModeratePhoto, Queries: photos.Handler.Queries},
		ListingClient: moderationlocal.ListingBridge{Moderate: listings.Handler.ModerateListing, Queries: listings.Handler.Queries},
		PhotoClient:   moderationlocal.PhotoBridge{Moderate: photos.Handler.ModeratePhoto, Queries: photos.Handler.Queries},
		Clock:         listingpostgres.SystemClock{},
		Logger:        logger,
	})
	return httpserver.Modules{
		Principals: principals,
		Listings:   listings,
		Photos:     photos,
		Votes:      voting,
		Moderation: moderation,
	}
}

func normalizeAddr(port string) string {
	value := strings.TrimSpace(port)
	if value == "" {
		return ":8080"
	}
	if strings.HasPrefix(value, ":") {
		return value
	}
	return ":" + value
}
