// Package server wires the repositories, services and handlers into an HTTP
// server and manages its lifecycle: startup, background maintenance and
// graceful shutdown.
package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"github.com/yasinhessnawi1/BotAnnotator_Backend/internal/auth"
	"github.com/yasinhessnawi1/BotAnnotator_Backend/internal/config"
	"github.com/yasinhessnawi1/BotAnnotator_Backend/internal/constants"
	"github.com/yasinhessnawi1/BotAnnotator_Backend/internal/database"
	"github.com/yasinhessnawi1/BotAnnotator_Backend/internal/dataset"
	"github.com/yasinhessnawi1/BotAnnotator_Backend/internal/handlers"
	"github.com/yasinhessnawi1/BotAnnotator_Backend/internal/nlp"
	"github.com/yasinhessnawi1/BotAnnotator_Backend/internal/repository"
	"github.com/yasinhessnawi1/BotAnnotator_Backend/internal/service"
	"github.com/yasinhessnawi1/BotAnnotator_Backend/migrations"
	"github.com/yasinhessnawi1/BotAnnotator_Backend/scripts"
)

// Handlers contains all HTTP handlers for the application.
type Handlers struct {
	AuthHandler       *handlers.AuthHandler
	BotHandler        *handlers.BotHandler
	AnnotationHandler *handlers.AnnotationHandler
	TrainingHandler   *handlers.TrainingHandler
	HealthHandler     *handlers.HealthHandler
}

// AuthProviders contains the token and password configuration.
type AuthProviders struct {
	JWTService  *auth.JWTService
	PasswordCfg *auth.PasswordConfig
}

type repositories struct {
	userRepo       repository.UserRepository
	sessionRepo    repository.SessionRepository
	botRepo        repository.BotRepository
	datasetRepo    repository.DatasetRepository
	annotationRepo repository.AnnotationRepository
}

type services struct {
	authService       *service.AuthService
	botService        *service.BotService
	annotationService *service.AnnotationService
	trainingService   *service.TrainingService
	securityService   *service.SecurityService
}

// Server represents the API server.
type Server struct {
	Config   *config.AppConfig
	Db       *database.Pool
	Handlers *Handlers

	router        chi.Router
	authProviders *AuthProviders
	repos         repositories
	services      services

	datasetStore *dataset.Store
	datasetCache *dataset.Cache
	recognizer   nlp.EntityRecognizer
	closeNLP     func() error

	httpServer *http.Server

	// maintenance goroutines stop when stopTasks is called
	stopTasks context.CancelFunc
	tasks     sync.WaitGroup
}

// NewServer creates a new server instance with all required components:
// database, entity recognizer, dataset storage, auth providers, repositories,
// services, handlers and routes, in that order.
func NewServer(cfg *config.AppConfig) (*Server, error) {
	s := &Server{
		Config: cfg,
	}

	if err := s.setupDatabase(); err != nil {
		return nil, fmt.Errorf("failed to set up database: %w", err)
	}

	if err := s.setupNLP(); err != nil {
		s.Db.Close()
		return nil, fmt.Errorf("failed to set up entity recognizer: %w", err)
	}

	if err := s.setupDatasets(); err != nil {
		s.release()
		return nil, fmt.Errorf("failed to set up dataset storage: %w", err)
	}

	s.setupAuthProviders()
	s.setupRepositories()

	if err := s.setupServices(); err != nil {
		s.release()
		return nil, fmt.Errorf("failed to set up services: %w", err)
	}

	s.setupHandlers()

	seeder := scripts.NewSeeder(s.Db, cfg.Seed, s.services.authService, s.services.botService)
	if err := seeder.SeedDatabase(context.Background()); err != nil {
		s.release()
		return nil, fmt.Errorf("failed to seed database: %w", err)
	}

	s.SetupRoutes()

	s.httpServer = &http.Server{
		Addr:         cfg.Server.ServerAddress(),
		Handler:      s.router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  constants.DefaultIdleTimeout,
	}

	return s, nil
}

// setupDatabase connects to the configured database and creates missing tables.
func (s *Server) setupDatabase() error {
	db, err := database.Connect(s.Config)
	if err != nil {
		return err
	}
	s.Db = db

	migrator := migrations.NewMigrator(db)
	if err := migrator.RunMigrations(context.Background()); err != nil {
		db.Close()
		return fmt.Errorf("failed to run database migrations: %w", err)
	}

	return nil
}

// setupNLP loads the entity recognizer. Loading a model may download it first.
func (s *Server) setupNLP() error {
	recognizer, closeFn, err := nlp.NewRecognizer(&s.Config.NLP)
	if err != nil {
		return err
	}

	s.recognizer = recognizer
	s.closeNLP = closeFn

	log.Info().Str("recognizer", s.Config.NLP.Recognizer).Msg("Entity recognizer ready")
	return nil
}

func (s *Server) setupDatasets() error {
	store, err := dataset.NewStore(s.Config.Storage.UploadDir)
	if err != nil {
		return err
	}

	s.datasetStore = store
	s.datasetCache = dataset.NewCache(constants.DatasetCacheTTL, constants.DatasetCacheCleanupInterval)
	return nil
}

func (s *Server) setupAuthProviders() {
	s.authProviders = &AuthProviders{
		JWTService:  auth.NewJWTService(&s.Config.JWT),
		PasswordCfg: auth.ConfigFromAppConfig(s.Config),
	}
}

func (s *Server) setupRepositories() {
	s.repos = repositories{
		userRepo:       repository.NewUserRepository(s.Db),
		sessionRepo:    repository.NewSessionRepository(s.Db),
		botRepo:        repository.NewBotRepository(s.Db),
		datasetRepo:    repository.NewDatasetRepository(s.Db),
		annotationRepo: repository.NewAnnotationRepository(s.Db),
	}
}

func (s *Server) setupServices() error {
	if s.authProviders == nil || s.authProviders.JWTService == nil {
		return errors.New("JWT service not initialized")
	}
	if s.datasetStore == nil || s.datasetCache == nil {
		return errors.New("dataset storage not initialized")
	}

	s.services = services{
		authService: service.NewAuthService(
			s.repos.userRepo,
			s.repos.sessionRepo,
			s.authProviders.JWTService,
			s.authProviders.PasswordCfg,
		),
		botService: service.NewBotService(
			s.repos.botRepo,
			s.repos.datasetRepo,
			s.datasetStore,
			s.datasetCache,
		),
		annotationService: service.NewAnnotationService(
			s.repos.annotationRepo,
			s.repos.datasetRepo,
			s.datasetStore,
			s.datasetCache,
			s.recognizer,
			nil,
		),
		trainingService: service.NewTrainingService(
			s.repos.datasetRepo,
			s.datasetStore,
			s.datasetCache,
		),
		securityService: service.NewSecurityService(&s.Config.RateLimit),
	}

	return nil
}

func (s *Server) setupHandlers() {
	s.Handlers = &Handlers{
		AuthHandler:       handlers.NewAuthHandler(s.services.authService),
		BotHandler:        handlers.NewBotHandler(s.services.botService, s.Config.Storage.MaxUploadBytes),
		AnnotationHandler: handlers.NewAnnotationHandler(s.services.annotationService),
		TrainingHandler:   handlers.NewTrainingHandler(s.services.trainingService),
		HealthHandler:     handlers.NewHealthHandler(s.Db),
	}
}

// Start starts the HTTP server and blocks until it fails or a SIGINT/SIGTERM
// arrives, in which case the server is shut down gracefully.
func (s *Server) Start() error {
	serverErrors := make(chan error, 1)

	go func() {
		log.Info().
			Str("address", s.Config.Server.ServerAddress()).
			Msg("Starting server")

		serverErrors <- s.httpServer.ListenAndServe()
	}()

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(shutdown)

	s.SetupMaintenanceTasks(context.Background())

	select {
	case err := <-serverErrors:
		s.stopMaintenance()
		s.release()
		return fmt.Errorf("server error: %w", err)
	case sig := <-shutdown:
		log.Info().
			Str("signal", sig.String()).
			Msg("Shutdown signal received")

		ctx, cancel := context.WithTimeout(context.Background(), s.Config.Server.ShutdownTimeout)
		defer cancel()

		if err := s.Shutdown(ctx); err != nil {
			if closeErr := s.httpServer.Close(); closeErr != nil {
				log.Error().Err(closeErr).Msg("failed to close server")
			}
			return fmt.Errorf("could not stop server gracefully: %w", err)
		}
	}

	return nil
}

// Shutdown waits for in-flight requests, stops the maintenance tasks and
// releases the model and the database.
func (s *Server) Shutdown(ctx context.Context) error {
	if err := s.httpServer.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown error: %w", err)
	}
	log.Info().Msg("Server stopped gracefully")

	s.stopMaintenance()
	s.release()

	return nil
}

// release frees the recognizer and the database connection.
func (s *Server) release() {
	if s.closeNLP != nil {
		if err := s.closeNLP(); err != nil {
			log.Warn().Err(err).Msg("Failed to release entity recognizer")
		}
		s.closeNLP = nil
	}
	if s.Db != nil {
		s.Db.Close()
		log.Info().Msg("Database connection closed")
	}
}

// SetupMaintenanceTasks starts the background tasks: expired session cleanup,
// rate limiter eviction and, when enabled, the upload directory watcher. They
// run until ctx is cancelled or the server shuts down.
func (s *Server) SetupMaintenanceTasks(ctx context.Context) {
	ctx, s.stopTasks = context.WithCancel(ctx)

	s.runTask(ctx, &sessionCleanup{cleaner: s.services.authService, interval: constants.DBMaintenanceInterval})
	s.runTask(ctx, s.services.securityService)

	if s.Config.Storage.WatchUploads {
		watcher, err := dataset.NewWatcher(s.datasetStore.Dir(), s.datasetCache)
		if err != nil {
			// the cache still revalidates on file modification time
			log.Warn().Err(err).Msg("Upload watcher disabled")
		} else {
			s.runTask(ctx, watcher)
		}
	}
}

func (s *Server) runTask(ctx context.Context, task BackgroundTask) {
	s.tasks.Add(1)
	go func() {
		defer s.tasks.Done()
		task.Run(ctx)
	}()
}

func (s *Server) stopMaintenance() {
	if s.stopTasks == nil {
		return
	}
	s.stopTasks()
	s.tasks.Wait()
	s.stopTasks = nil
}

// sessionCleanup deletes expired sessions on every tick.
type sessionCleanup struct {
	cleaner  SessionCleaner
	interval time.Duration
}

func (c *sessionCleanup) Run(ctx context.Context) {
	ticker := time.NewTicker(c.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			taskCtx, cancel := context.WithTimeout(ctx, constants.DBMaintenanceTimeout)
			if _, err := c.cleaner.CleanupExpiredSessions(taskCtx); err != nil {
				log.Error().Err(err).Msg("Failed to cleanup expired sessions")
			}
			cancel()
		}
	}
}
