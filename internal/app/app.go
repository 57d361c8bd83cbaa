package app

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/courtsync/courtsync/external/nba"
	"github.com/courtsync/courtsync/external/revalidate"
	"github.com/courtsync/courtsync/internal/config"
	"github.com/courtsync/courtsync/internal/domain/game"
	"github.com/courtsync/courtsync/internal/domain/playerstats"
	"github.com/courtsync/courtsync/internal/domain/team"
	"github.com/courtsync/courtsync/internal/infrastructure/account/apikey"
	cacherepo "github.com/courtsync/courtsync/internal/infrastructure/repository/cache"
	"github.com/courtsync/courtsync/internal/infrastructure/repository/postgres"
	"github.com/courtsync/courtsync/internal/interfaces/httpapi"
	basecache "github.com/courtsync/courtsync/internal/platform/cache"
	idgen "github.com/courtsync/courtsync/internal/platform/id"
	"github.com/courtsync/courtsync/internal/platform/logging"
	"github.com/courtsync/courtsync/internal/platform/resilience"
	"github.com/courtsync/courtsync/internal/usecase"
	"github.com/jmoiron/sqlx"
	"github.com/uptrace/opentelemetry-go-extra/otelsql"
	"github.com/uptrace/opentelemetry-go-extra/otelsqlx"

	_ "github.com/lib/pq"
)

const dbBootstrapTimeout = 30 * time.Second

// Server bundles the HTTP server with the resources it owns.
type Server struct {
	HTTP *http.Server
	db   *sqlx.DB
}

func (s *Server) Close() error {
	if s.db == nil {
		return nil
	}
	return s.db.Close()
}

func NewServer(cfg config.Config, logger *logging.Logger, accessLogger *slog.Logger) (*Server, error) {
	if logger == nil {
		logger = logging.Default()
	}

	db, err := openDB(cfg)
	if err != nil {
		return nil, err
	}

	bootstrapCtx, cancel := context.WithTimeout(context.Background(), dbBootstrapTimeout)
	defer cancel()
	if err := db.PingContext(bootstrapCtx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}
	if err := postgres.BootstrapSeed(bootstrapCtx, db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("bootstrap seed: %w", err)
	}

	var teamRepo team.Repository = postgres.NewTeamRepository(db)
	var gameRepo game.Repository = postgres.NewGameRepository(db)
	playerRepo := postgres.NewPlayerRepository(db)
	var statsRepo playerstats.Repository = postgres.NewPlayerStatsRepository(db)
	apiKeyRepo := postgres.NewAPIKeyRepository(db)

	// The store doubles as the invalidation target for ingestion, so it
	// exists even when read-through caching is off.
	store := basecache.NewStore(cfg.CacheTTL)
	if cfg.CacheEnabled {
		teamRepo = cacherepo.NewTeamRepository(teamRepo, store)
		gameRepo = cacherepo.NewGameRepository(gameRepo, store)
		statsRepo = cacherepo.NewPlayerStatsRepository(statsRepo, store)
	}

	nbaClient := nba.NewClient(nba.ClientConfig{
		HTTPClient:      &http.Client{Timeout: cfg.NBATimeout},
		BoxScoreBaseURL: cfg.NBABoxScoreBaseURL,
		ScoreboardURL:   cfg.NBAScoreboardURL,
		GameLogURL:      cfg.NBAGameLogURL,
		Timeout:         cfg.NBATimeout,
		MaxRetries:      cfg.NBAMaxRetries,
		Logger:          logger,
		CircuitBreaker: resilience.CircuitBreakerConfig{
			Enabled:          cfg.NBACircuitEnabled,
			FailureThreshold: cfg.NBACircuitFailureCount,
			OpenTimeout:      cfg.NBACircuitOpenTimeout,
			HalfOpenMaxReq:   cfg.NBACircuitHalfOpenMaxReq,
		},
	})

	var revalidator usecase.RevalidationPublisher
	if cfg.RevalidateEnabled {
		revalidator = revalidate.NewWebhookPublisher(revalidate.WebhookPublisherConfig{
			BaseURL: cfg.RevalidateBaseURL,
			Secret:  cfg.RevalidateSecret,
			Timeout: cfg.RevalidateTimeout,
			CircuitBreaker: resilience.CircuitBreakerConfig{
				Enabled:          cfg.RevalidateCircuitEnabled,
				FailureThreshold: cfg.RevalidateCircuitFailureCount,
				OpenTimeout:      cfg.RevalidateCircuitOpenTimeout,
				HalfOpenMaxReq:   cfg.RevalidateCircuitHalfOpenMaxReq,
			},
		}, logger)
	}

	ingestionSvc := usecase.NewIngestionService(
		nbaClient,
		gameRepo,
		playerRepo,
		statsRepo,
		store,
		revalidator,
		idgen.NewRandomGenerator(),
		usecase.IngestionConfig{
			MaxFetchWorkers: cfg.IngestMaxWorkers,
			RevalidatePath:  cfg.RevalidatePath,
		},
		logger,
	)
	teamSvc := usecase.NewTeamService(teamRepo, logger)
	gameQuerySvc := usecase.NewGameQueryService(gameRepo, statsRepo)

	verifier := apikey.NewVerifier(apiKeyRepo, logger)

	handler := httpapi.NewHandler(ingestionSvc, teamSvc, gameQuerySvc, store, db, accessLogger)
	router := httpapi.NewRouter(
		handler,
		verifier,
		accessLogger,
		cfg.SwaggerEnabled,
		cfg.CORSAllowedOrigins,
		cfg.InternalJobToken,
	)

	server := &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      router,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}
	if server.Addr == "" {
		_ = db.Close()
		return nil, fmt.Errorf("http server addr cannot be empty")
	}

	return &Server{HTTP: server, db: db}, nil
}

func openDB(cfg config.Config) (*sqlx.DB, error) {
	dsn := normalizeDBURL(cfg.DBURL, cfg.DBDisablePreparedBinary)
	db, err := otelsqlx.Open("postgres", dsn,
		otelsql.WithDBSystem("postgresql"),
		otelsql.WithDBName(dbNameFromURL(dsn)),
		otelsql.WithQueryFormatter(formatDBQueryForTrace),
	)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	db.SetMaxOpenConns(20)
	db.SetMaxIdleConns(5)
	db.SetConnMaxIdleTime(5 * time.Minute)

	return db, nil
}
