package server

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/yasinhessnawi1/BotAnnotator_Backend/internal/constants"
	"github.com/yasinhessnawi1/BotAnnotator_Backend/internal/middleware"
	"github.com/yasinhessnawi1/BotAnnotator_Backend/internal/utils"
)

// SetupRoutes configures the routes for the application.
//
// Health, registration and login are public; registration and login share the
// stricter "auth" rate. Every other endpoint requires a bearer token backed by
// a live session.
func (s *Server) SetupRoutes() {
	r := chi.NewRouter()

	r.Use(middleware.CORS(s.Config.CORS))
	r.Use(chimiddleware.RequestID)
	if s.Config.Server.TrustProxy {
		r.Use(chimiddleware.RealIP)
	}
	if s.Config.Logging.RequestLog {
		r.Use(middleware.RequestLogger())
	}
	r.Use(middleware.Recovery())
	r.Use(middleware.SecurityHeaders())
	r.Use(chimiddleware.NoCache)

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		utils.NotFound(w, "")
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		utils.MethodNotAllowed(w)
	})

	r.Get(constants.HealthPath, s.Handlers.HealthHandler.Health)

	r.Group(func(r chi.Router) {
		r.Use(middleware.RateLimit(s.services.securityService, constants.RateCategoryAuth))

		r.Post(constants.RegisterPath, s.Handlers.AuthHandler.Register)
		r.Post(constants.LoginPath, s.Handlers.AuthHandler.Login)
	})

	r.Group(func(r chi.Router) {
		r.Use(middleware.JWTAuth(s.authProviders.JWTService, s.repos.sessionRepo))
		r.Use(middleware.RateLimit(s.services.securityService, constants.RateCategoryAPI))

		r.Post(constants.LogoutPath, s.Handlers.AuthHandler.Logout)

		r.Post(constants.CreateBotPath, s.Handlers.BotHandler.CreateBot)
		r.Get(constants.BotsPath, s.Handlers.BotHandler.ListBots)
		r.Get(constants.DatasetPreviewPath, s.Handlers.BotHandler.PreviewDataset)

		r.Post(constants.AnnotatePath, s.Handlers.AnnotationHandler.Annotate)
		r.Post(constants.SaveAnnotationPath, s.Handlers.AnnotationHandler.SaveAnnotation)
		r.Get(constants.AnnotationsPath, s.Handlers.AnnotationHandler.ListAnnotations)

		r.Post(constants.TrainBotPath, s.Handlers.TrainingHandler.TrainBot)
		r.Post(constants.TestBotPath, s.Handlers.TrainingHandler.TestBot)
	})

	s.router = r
}

// GetRouter returns the configured router.
func (s *Server) GetRouter() chi.Router {
	return s.router
}
