package router

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/dtroode/tasktracker-server/internal/api/http/handler"
	"github.com/dtroode/tasktracker-server/internal/api/http/middleware"
	"github.com/dtroode/tasktracker-server/internal/config"
	"github.com/dtroode/tasktracker-server/internal/logger"
	"github.com/dtroode/tasktracker-server/internal/model"
)

// Router represents the HTTP router for task tracker operations.
type Router struct {
	authService       handler.AuthService
	taskService       handler.TaskService
	attachmentService handler.AttachmentService
	tokenManager      model.TokenManager
	contextManager    model.ContextManager
	limiter           model.RateLimiter
	healthChecks      map[string]handler.HealthCheck
	cfg               config.HTTP
	logger            *logger.Logger
}

// Option configures optional Router features.
type Option func(*Router)

// WithAttachments mounts the attachment endpoints.
func WithAttachments(attachmentService handler.AttachmentService) Option {
	return func(r *Router) {
		r.attachmentService = attachmentService
	}
}

// WithRateLimiter throttles the register and login endpoints.
func WithRateLimiter(limiter model.RateLimiter) Option {
	return func(r *Router) {
		r.limiter = limiter
	}
}

// WithHealthChecks adds dependency probes to the health endpoint.
func WithHealthChecks(checks map[string]handler.HealthCheck) Option {
	return func(r *Router) {
		r.healthChecks = checks
	}
}

// New creates new Router instance.
func New(
	authService handler.AuthService,
	taskService handler.TaskService,
	tokenManager model.TokenManager,
	contextManager model.ContextManager,
	cfg config.HTTP,
	logger *logger.Logger,
	opts ...Option,
) *Router {
	r := &Router{
		authService:    authService,
		taskService:    taskService,
		tokenManager:   tokenManager,
		contextManager: contextManager,
		cfg:            cfg,
		logger:         logger,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Register builds the fiber app with all routes and middleware.
func (r *Router) Register() *fiber.App {
	app := fiber.New(fiber.Config{
		ErrorHandler:          handler.ErrorHandler(r.logger),
		BodyLimit:             r.cfg.BodyLimit,
		DisableStartupMessage: true,
	})

	logging := middleware.NewLogging(r.logger)
	authenticate := middleware.NewAuthenticate(r.tokenManager, r.contextManager, r.logger)

	app.Use(recover.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: r.cfg.CORSOrigins,
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
	}))
	app.Use(logging.Handle)

	health := handler.NewHealth(r.healthChecks, r.logger)
	app.Get("/health", health.Check)

	authHandler := handler.NewAuth(r.authService, r.contextManager, r.logger)
	auth := app.Group("/api/auth")
	credentials := []fiber.Handler{}
	if r.limiter != nil {
		credentials = append(credentials, middleware.NewRateLimit(r.limiter, r.logger).Handle)
	}
	auth.Post("/register", append(credentials, authHandler.Register)...)
	auth.Post("/login", append(credentials, authHandler.Login)...)
	auth.Get("/me", authenticate.Handle, authHandler.Me)

	taskHandler := handler.NewTask(r.taskService, r.contextManager, r.logger)
	tasks := app.Group("/api/tasks", authenticate.Handle)
	tasks.Get("/", taskHandler.List)
	tasks.Post("/", taskHandler.Create)
	tasks.Get("/:id", taskHandler.Get)
	tasks.Put("/:id", taskHandler.Update)
	tasks.Delete("/:id", taskHandler.Delete)

	if r.attachmentService != nil {
		attachmentHandler := handler.NewAttachment(r.attachmentService, r.contextManager, r.logger)
		tasks.Put("/:id/attachment", attachmentHandler.Upload)
		tasks.Get("/:id/attachment", attachmentHandler.Download)
		tasks.Delete("/:id/attachment", attachmentHandler.Delete)
	}

	app.Use(func(c *fiber.Ctx) error {
		return fiber.NewError(fiber.StatusNotFound, "Route not found")
	})

	return app
}
