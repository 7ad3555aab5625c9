package container

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/FACorreiaa/go-travel-qa-suggestions/config"
	"github.com/FACorreiaa/go-travel-qa-suggestions/internal/api/auth"
	generativeAI "github.com/FACorreiaa/go-travel-qa-suggestions/internal/api/generative_ai"
	"github.com/FACorreiaa/go-travel-qa-suggestions/internal/api/lookup"
	"github.com/FACorreiaa/go-travel-qa-suggestions/internal/api/nearby"
	"github.com/FACorreiaa/go-travel-qa-suggestions/internal/api/profile"
	"github.com/FACorreiaa/go-travel-qa-suggestions/internal/api/qa"
	"github.com/FACorreiaa/go-travel-qa-suggestions/internal/api/recommendation"
)

// Container holds all application dependencies
type Container struct {
	Config         *config.Config
	Logger         *slog.Logger
	Pool           *pgxpool.Pool
	AuthHandler    *auth.HandlerImpl
	ProfileHandler *profile.HandlerImpl
	LookupHandler  *lookup.HandlerImpl
	NearbyHandler  *nearby.HandlerImpl
	QAHandler      *qa.HandlerImpl
}

// NewContainer wires repositories, services and handlers on top of an
// initialized pool.
func NewContainer(ctx context.Context, cfg *config.Config, pool *pgxpool.Pool, logger *slog.Logger) (*Container, error) {
	authRepo := auth.NewRepositoryImpl(pool, logger)
	authService := auth.NewServiceImpl(authRepo, cfg.JWT, logger)
	authHandler := auth.NewHandlerImpl(authService, logger)

	profileRepo := profile.NewRepositoryImpl(pool, logger)
	profileService := profile.NewServiceImpl(profileRepo, logger)
	profileHandler := profile.NewHandlerImpl(profileService, logger)

	lookupRepo := lookup.NewRepositoryImpl(pool, logger)
	lookupService := lookup.NewServiceImpl(lookupRepo, cfg.Lookup.CacheTTL, logger)
	lookupHandler := lookup.NewHandlerImpl(lookupService, logger)

	placeSearch := nearby.NewLongdoClient(cfg.PlaceSearch, logger)
	nearbyService := nearby.NewServiceImpl(placeSearch, cfg.PlaceSearch.DefaultRadius, logger)
	nearbyHandler := nearby.NewHandlerImpl(nearbyService, logger)

	// recommendation pipeline
	llm, err := generativeAI.NewTextGenerator(ctx, cfg.LLM, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create text generator: %w", err)
	}
	// name translation runs once per place, behind its own breaker
	translator := llm.Isolated("translate", logger)
	media := recommendation.NewCommonsClient(cfg.MediaSearch, logger)
	images := recommendation.NewImageResolver(translator, media,
		cfg.MediaSearch.PlaceholderURL, cfg.MediaSearch.TargetLanguage, cfg.MediaSearch.Qualifiers, logger)
	recommender := recommendation.NewGenerator(llm, images, generativeAI.GenerateOptions{
		MaxOutputTokens: cfg.LLM.MaxOutputTokens,
		Temperature:     cfg.LLM.Temperature,
	}, logger)

	qaRepo := qa.NewRepositoryImpl(pool, logger)
	qaService := qa.NewServiceImpl(qaRepo, recommender, logger)
	qaHandler := qa.NewHandlerImpl(qaService, logger)

	return &Container{
		Config:         cfg,
		Logger:         logger,
		Pool:           pool,
		AuthHandler:    authHandler,
		ProfileHandler: profileHandler,
		LookupHandler:  lookupHandler,
		NearbyHandler:  nearbyHandler,
		QAHandler:      qaHandler,
	}, nil
}

// Close releases all resources held by the container
func (c *Container) Close() {
	if c.Pool != nil {
		c.Pool.Close()
	}
	c.Logger.Info("Container resources released")
}
