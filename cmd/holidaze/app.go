package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/google/uuid"

	"holidaze/internal/app/commands"
	"holidaze/internal/app/dto"
	calendarapp "holidaze/internal/app/handlers/calendar"
	"holidaze/internal/app/middleware"
	"holidaze/internal/app/outbox"
	"holidaze/internal/app/policies"
	"holidaze/internal/app/queries"
	"holidaze/internal/domain/sessions"
	"holidaze/internal/domain/venues"
	"holidaze/internal/infra/broker/kafka"
	"holidaze/internal/infra/cache"
	"holidaze/internal/infra/cache/rediscache"
	"holidaze/internal/infra/clock"
	"holidaze/internal/infra/config"
	mongodb "holidaze/internal/infra/db/mongo"
	"holidaze/internal/infra/holidaze"
	ginserver "holidaze/internal/infra/http/gin"
	"holidaze/internal/infra/obs"
	infraoutbox "holidaze/internal/infra/outbox"
	"holidaze/internal/infra/storage/memory"
	"holidaze/internal/infra/validation"
)

type application struct {
	handlers ginserver.Handlers
	commands commands.Bus
	queries  queries.Bus
	clock    policies.Clock
	checks   map[string]obs.Check
	closers  []func(context.Context) error
}

// venueSource is what a venue backend offers: details and booked days.
type venueSource interface {
	venues.Catalog
	venues.IntervalSource
}

type uuidIDs struct{}

func (uuidIDs) NewID() string { return uuid.NewString() }

func buildApplication(ctx context.Context, cfg config.Config, logger *slog.Logger) (*application, error) {
	app := &application{
		clock:  clock.System{Location: cfg.Location},
		checks: map[string]obs.Check{},
	}

	catalog, err := app.venueBackend(ctx, cfg, logger)
	if err != nil {
		return nil, err
	}
	source, err := app.withCache(ctx, cfg, catalog, logger)
	if err != nil {
		return nil, err
	}
	sessionRepo, err := app.sessionRepository(ctx, cfg, logger)
	if err != nil {
		return nil, err
	}
	producer, err := app.producer(cfg, logger)
	if err != nil {
		return nil, err
	}
	publisher := &infraoutbox.Publisher{
		Producer:    producer,
		TopicPrefix: cfg.KafkaTopicPrefix,
		Source:      cfg.EventSource,
		Logger:      logger,
	}
	encoder := outbox.JSONEventEncoder{IDGenerator: uuid.NewString}

	commandBus := commands.NewInMemoryBus()
	commands.RegisterHandler[calendarapp.SelectDayCommand, dto.Selection](commandBus, &calendarapp.SelectDayHandler{
		Intervals: source,
		Sessions:  sessionRepo,
		Clock:     app.clock,
		Outbox:    publisher,
		Encoder:   encoder,
	})
	commands.RegisterHandler[calendarapp.StartSessionCommand, dto.Selection](commandBus, &calendarapp.StartSessionHandler{
		Intervals: source,
		Sessions:  sessionRepo,
		Clock:     app.clock,
		IDs:       uuidIDs{},
	})
	commands.RegisterHandler[calendarapp.ResetSessionCommand, dto.Selection](commandBus, &calendarapp.ResetSessionHandler{
		Sessions: sessionRepo,
		Clock:    app.clock,
		Outbox:   publisher,
		Encoder:  encoder,
	})
	commands.RegisterHandler[calendarapp.RefreshIntervalsCommand, dto.BookedIntervals](commandBus, &calendarapp.RefreshIntervalsHandler{
		Cache:     source,
		Intervals: source,
	})

	queryBus := queries.NewInMemoryBus()
	queries.RegisterHandler[calendarapp.GetMonthQuery, dto.CalendarMonth](queryBus, &calendarapp.GetMonthHandler{
		Intervals: source,
		Sessions:  sessionRepo,
		Clock:     app.clock,
	})
	queries.RegisterHandler[calendarapp.GetIntervalsQuery, dto.BookedIntervals](queryBus, &calendarapp.GetIntervalsHandler{Intervals: source})
	queries.RegisterHandler[calendarapp.GetSessionQuery, dto.Selection](queryBus, &calendarapp.GetSessionHandler{Sessions: sessionRepo})
	queries.RegisterHandler[calendarapp.GetVenueQuery, dto.Venue](queryBus, &calendarapp.GetVenueHandler{Venues: catalog})

	validator := validation.New()
	app.commands = middleware.ChainCommands(
		commandBus,
		middleware.CommandLogging(logger),
		middleware.Validation(validator),
		middleware.OutboxFlush(publisher),
	)
	app.queries = middleware.ChainQueries(
		queryBus,
		middleware.QueryLogging(logger),
		middleware.QueryValidation(validator),
	)

	app.handlers = ginserver.Handlers{
		Calendar: ginserver.CalendarHandler{
			Commands: app.commands,
			Queries:  app.queries,
			Now:      app.clock.Now,
		},
	}
	return app, nil
}

func (a *application) venueBackend(ctx context.Context, cfg config.Config, logger *slog.Logger) (venueSource, error) {
	if cfg.VenueFixtures != "" {
		repo := memory.NewVenueRepository(cfg.Location)
		n, err := loadVenueFixtures(ctx, repo, cfg.VenueFixtures)
		if err != nil {
			return nil, err
		}
		logger.Info("venue fixtures loaded", "path", cfg.VenueFixtures, "venues", n)
		return repo, nil
	}
	client := holidaze.New(holidaze.Options{
		BaseURL:  cfg.APIBaseURL,
		APIKey:   cfg.APIKey,
		Token:    cfg.APIToken,
		Timeout:  cfg.APITimeout,
		Location: cfg.Location,
	})
	a.checks["holidaze_api"] = client.Ping
	logger.Info("using holidaze api", "base_url", cfg.APIBaseURL, "api_key_set", cfg.APIKey != "")
	return client, nil
}

func (a *application) withCache(ctx context.Context, cfg config.Config, source venues.IntervalSource, logger *slog.Logger) (cache.CachedSource, error) {
	var store cache.IntervalCache
	switch cfg.CacheBackend {
	case config.BackendRedis:
		rdb := rediscache.NewClient(rediscache.Options{Addr: cfg.RedisAddr, Password: cfg.RedisPassword, DB: cfg.RedisDB})
		if err := rdb.Ping(ctx).Err(); err != nil {
			return cache.CachedSource{}, fmt.Errorf("redis ping: %w", err)
		}
		redisCache := rediscache.NewIntervalCache(rdb)
		a.checks["redis"] = redisCache.Ping
		a.closers = append(a.closers, func(context.Context) error { return rdb.Close() })
		store = redisCache
	default:
		store = memory.NewIntervalCache()
	}
	logger.Info("interval cache configured", "backend", cfg.CacheBackend, "ttl", cfg.IntervalCacheTTL)
	return cache.CachedSource{Source: source, Cache: store, TTL: cfg.IntervalCacheTTL, Logger: logger}, nil
}

func (a *application) sessionRepository(ctx context.Context, cfg config.Config, logger *slog.Logger) (sessions.Repository, error) {
	if cfg.SessionBackend != config.BackendMongo {
		return memory.NewSessionRepository(cfg.SessionTTL), nil
	}
	client, err := mongodb.New(ctx, cfg.MongoURI, cfg.MongoDB)
	if err != nil {
		return nil, fmt.Errorf("mongo connect: %w", err)
	}
	a.checks["mongo"] = client.Ping
	a.closers = append(a.closers, client.Close)
	repo, err := mongodb.NewSessionRepository(ctx, client.DB, cfg.SessionTTL)
	if err != nil {
		return nil, fmt.Errorf("mongo session indexes: %w", err)
	}
	logger.Info("session store configured", "backend", "mongo", "db", cfg.MongoDB)
	return repo, nil
}

func (a *application) producer(cfg config.Config, logger *slog.Logger) (infraoutbox.Producer, error) {
	if len(cfg.KafkaBrokers) == 0 {
		logger.Info("KAFKA_BROKERS not set, selection events go to the log")
		return infraoutbox.LogProducer{Logger: logger}, nil
	}
	p, err := kafka.NewProducer(cfg.KafkaBrokers, "holidaze")
	if err != nil {
		return nil, fmt.Errorf("kafka producer: %w", err)
	}
	a.closers = append(a.closers, func(context.Context) error { return p.Close() })
	return p, nil
}

func (a *application) Close(ctx context.Context) error {
	var errs []error
	for i := len(a.closers) - 1; i >= 0; i-- {
		errs = append(errs, a.closers[i](ctx))
	}
	return errors.Join(errs...)
}

func loadVenueFixtures(ctx context.Context, repo *memory.VenueRepository, path string) (int, error) {
	data, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return 0, fmt.Errorf("read fixtures: %w", err)
	}
	var fixtures []venues.Venue
	if err := json.Unmarshal(data, &fixtures); err != nil {
		return 0, fmt.Errorf("decode fixtures: %w", err)
	}
	for _, v := range fixtures {
		if v.ID == "" {
			return 0, fmt.Errorf("fixture %q has no id", v.Name)
		}
		if err := repo.Save(ctx, v); err != nil {
			return 0, err
		}
	}
	return len(fixtures), nil
}
