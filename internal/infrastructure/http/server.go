package http

import (
	"context"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	handlers "github.com/shaunkitch/WorkforceOne-Production-sub001/internal/adapter/handler/http"
	"github.com/shaunkitch/WorkforceOne-Production-sub001/internal/config"
	"github.com/shaunkitch/WorkforceOne-Production-sub001/internal/infrastructure/database"
	"github.com/shaunkitch/WorkforceOne-Production-sub001/internal/infrastructure/messaging"
	"github.com/shaunkitch/WorkforceOne-Production-sub001/internal/middleware/auth"
	"github.com/shaunkitch/WorkforceOne-Production-sub001/internal/usecase"
	"github.com/shaunkitch/WorkforceOne-Production-sub001/internal/validation"
	"go.uber.org/zap"
)

type Server struct {
	config      *config.Config
	logger      *zap.Logger
	echo        *echo.Echo
	repos       *database.Repositories
	mailer      usecase.Mailer
	revalidator messaging.Revalidator
}

func NewServer(cfg *config.Config, logger *zap.Logger, repos *database.Repositories, mailer usecase.Mailer, revalidator messaging.Revalidator) *Server {
	e := echo.New()
	e.HideBanner = true
	e.Validator = validation.NewRequestValidator()

	// Middleware
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: []string{cfg.Service.ClientURL},
		AllowMethods: []string{echo.GET, echo.POST, echo.PUT, echo.DELETE},
		AllowHeaders: []string{echo.HeaderAuthorization, echo.HeaderContentType, "X-Workspace-Id"},
	}))

	return &Server{
		config:      cfg,
		logger:      logger,
		echo:        e,
		repos:       repos,
		mailer:      mailer,
		revalidator: revalidator,
	}
}

func (s *Server) Start() error {
	// Setup routes
	s.setupRoutes()

	addr := fmt.Sprintf("%s:%d", s.config.Server.HTTP.Host, s.config.Server.HTTP.Port)
	s.logger.Info("Starting HTTP server", zap.String("address", addr))

	return s.echo.Start(addr)
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.echo.Shutdown(ctx)
}

func (s *Server) setupRoutes() {
	// Health check
	s.echo.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{
			"status":  "healthy",
			"service": "workforce",
		})
	})

	// Initialize usecases
	recorder := usecase.NewAuditRecorder(s.repos.AuditLog, s.logger)
	evaluator := usecase.NewAutomationEvaluator(s.repos.Automation, s.mailer, s.logger)
	reverter := usecase.NewChangeReverter(s.repos.Membership, s.repos.AuditLog, s.repos.Store, recorder, s.logger)
	submissions := usecase.NewSubmissionService(s.repos.Form, s.repos.Submission, recorder, evaluator, s.logger)

	// Initialize handlers
	formHandler := handlers.NewFormHandler(s.logger, s.repos.Form, recorder, s.revalidator)
	submissionHandler := handlers.NewSubmissionHandler(s.logger, submissions, s.repos.Submission, s.revalidator)
	automationHandler := handlers.NewAutomationHandler(s.logger, s.repos.Automation, s.repos.Form, recorder, s.revalidator)
	auditHandler := handlers.NewAuditHandler(s.logger, s.repos.AuditLog, reverter, s.revalidator)

	// JWT middleware configuration
	jwtConfig := auth.JWTConfig{
		Secret: s.config.Service.Supabase.JWTSecret,
		Logger: s.logger,
		SkipPaths: []string{
			"/health",
		},
	}

	// API v1 routes (all require JWT authentication)
	v1 := s.echo.Group("/api/v1", auth.JWTMiddleware(jwtConfig))

	forms := v1.Group("/forms")
	forms.POST("", formHandler.CreateForm)
	forms.GET("", formHandler.ListForms)
	forms.GET("/:id", formHandler.GetForm)
	forms.DELETE("/:id", formHandler.DeleteForm)

	submissionRoutes := v1.Group("/submissions")
	submissionRoutes.POST("", submissionHandler.CreateSubmission)
	submissionRoutes.GET("", submissionHandler.ListSubmissions)

	automations := v1.Group("/automations")
	automations.POST("", automationHandler.CreateAutomation)
	automations.GET("", automationHandler.ListAutomations)
	automations.DELETE("/:id", automationHandler.DeleteAutomation)

	auditLogs := v1.Group("/audit-logs")
	auditLogs.GET("", auditHandler.ListAuditLogs)
	auditLogs.POST("/:id/revert", auditHandler.RevertChange)
}
