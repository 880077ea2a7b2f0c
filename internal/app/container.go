package app

import (
	"context"
	"errors"
	"time"

	"hiretop/internal/config"
	"hiretop/internal/database"
	dbpostgres "hiretop/internal/database/postgres"
	"hiretop/internal/delivery/http/handler"
	"hiretop/internal/delivery/http/middleware"
	v1 "hiretop/internal/delivery/http/routes/v1"
	"hiretop/internal/infrastructure/cache"
	"hiretop/internal/infrastructure/metrics"
	"hiretop/internal/infrastructure/storage"
	"hiretop/internal/pkg/jwt"
	"hiretop/internal/repository"
	"hiretop/internal/usecase"
	ucauth "hiretop/internal/usecase/auth"
	"hiretop/internal/ws"

	"go.uber.org/zap"
)

const metricsNamespace = "hiretop"

// Container owns every long-lived dependency of the server process.
type Container struct {
	Config  config.Config
	Logger  *zap.Logger
	DB      database.DB
	Cache   *cache.Redis
	Storage *storage.Store
	Metrics *metrics.Collector
	JWT     jwt.Service
	Hub     *ws.Hub

	AuthMiddleware *middleware.AuthMiddleware
	Health         *handler.HealthHandler
	Handlers       v1.Handlers
	WSHandler      *ws.Handler
}

// NewContainer connects to Postgres, Redis and object storage. Redis and
// storage are optional: without them the cache is bypassed and uploads
// answer 503.
func NewContainer(ctx context.Context, cfg config.Config, logger *zap.Logger) (*Container, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	connectCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	db, err := dbpostgres.Connect(connectCtx, cfg.Database, logger)
	if err != nil {
		return nil, err
	}

	redisCache := cache.NewRedis(cfg.Redis, logger)

	store, err := storage.NewSupabase(cfg.Storage, logger)
	if err != nil {
		if errors.Is(err, storage.ErrNotConfigured) {
			logger.Warn("object storage not configured, uploads disabled")
		} else {
			logger.Error("object storage init failed, uploads disabled", zap.Error(err))
		}
	}

	return Wire(cfg, logger, db, redisCache, store), nil
}

// Wire builds repositories, usecases and handlers on top of already opened
// infrastructure.
func Wire(cfg config.Config, logger *zap.Logger, db database.DB, redisCache *cache.Redis, store *storage.Store) *Container {
	if logger == nil {
		logger = zap.NewNop()
	}

	collector := metrics.NewCollector(metricsNamespace)
	jwtSvc := jwt.NewHMACService(
		cfg.JWT.AccessSecret,
		cfg.JWT.RefreshSecret,
		cfg.JWT.AccessExpiresIn,
		cfg.JWT.RefreshExpiresIn,
	)
	hub := ws.NewHub(logger.Named("ws"), collector)
	notifier := ws.NewNotifier(hub, logger.Named("ws"))

	users := repository.NewPostgresUserRepository(db)
	candidates := repository.NewPostgresCandidateProfileRepository(db)
	enterprises := repository.NewPostgresEnterpriseProfileRepository(db)
	offers := repository.NewPostgresJobOfferRepository(db)
	applications := repository.NewPostgresJobApplicationRepository(db)
	chats := repository.NewPostgresChatRepository(db)
	messages := repository.NewPostgresMessageRepository(db)

	authUC := usecase.NewAuthUsecase(ucauth.NewService(users), users, jwtSvc, collector)
	candidateUC := usecase.NewCandidateProfileUsecase(candidates, redisCache, logger)
	enterpriseUC := usecase.NewEnterpriseProfileUsecase(enterprises, logger)
	offerUC := usecase.NewJobOfferUsecase(offers, enterprises, redisCache, collector, logger)
	recommendationUC := usecase.NewJobRecommendationUsecase(offers, candidates, redisCache, collector, logger)
	applicationUC := usecase.NewJobApplicationUsecase(usecase.JobApplicationDeps{
		Applications: applications,
		Offers:       offers,
		Candidates:   candidates,
		Enterprises:  enterprises,
		Cache:        redisCache,
		Notifier:     notifier,
		Events:       collector,
		Logger:       logger,
	})
	chatUC := usecase.NewChatUsecase(usecase.ChatDeps{
		Chats:        chats,
		Messages:     messages,
		Applications: applications,
		Enterprises:  enterprises,
		Tx:           database.NewTransactor(db),
		Notifier:     notifier,
		Events:       collector,
		Logger:       logger,
	})
	uploadUC := usecase.NewUploadUsecase(store, candidates, enterprises, cfg.Storage.MaxUploadBytes, collector, logger)
	dashboardUC := usecase.NewDashboardUsecase(usecase.DashboardDeps{
		Candidates:      candidates,
		Enterprises:     enterprises,
		Offers:          offers,
		Applications:    applications,
		Messages:        messages,
		Recommendations: recommendationUC,
		Logger:          logger,
	})

	return &Container{
		Config:  cfg,
		Logger:  logger,
		DB:      db,
		Cache:   redisCache,
		Storage: store,
		Metrics: collector,
		JWT:     jwtSvc,
		Hub:     hub,

		AuthMiddleware: middleware.NewAuthMiddleware(jwtSvc),
		Health:         handler.NewHealthHandler(db, redisCache, collector.Handler()),
		Handlers: v1.Handlers{
			Auth:            handler.NewAuthHandler(authUC),
			Candidates:      handler.NewCandidateHandler(candidateUC),
			Enterprises:     handler.NewEnterpriseHandler(enterpriseUC),
			Jobs:            handler.NewJobOfferHandler(offerUC),
			Recommendations: handler.NewJobRecommendationHandler(recommendationUC),
			Applications:    handler.NewApplicationHandler(applicationUC),
			Chats:           handler.NewChatHandler(chatUC),
			Uploads:         handler.NewUploadHandler(uploadUC),
			Dashboard:       handler.NewDashboardHandler(dashboardUC),
		},
		WSHandler: ws.NewHandler(hub, jwtSvc, logger.Named("ws")),
	}
}

func (c *Container) Close() error {
	if c == nil {
		return nil
	}

	var errs []error
	if c.Cache != nil {
		errs = append(errs, c.Cache.Close())
	}
	if c.DB != nil {
		errs = append(errs, c.DB.Close())
	}
	return errors.Join(errs...)
}
