package main

import (
	"context"
	"fmt"
	"log"
	"os"

	gfshutdown "github.com/gelmium/graceful-shutdown"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	httpctx "github.com/dtroode/tasktracker-server/internal/api/http/context"
	"github.com/dtroode/tasktracker-server/internal/api/http/handler"
	"github.com/dtroode/tasktracker-server/internal/api/http/router"
	httpServer "github.com/dtroode/tasktracker-server/internal/api/http/server"
	"github.com/dtroode/tasktracker-server/internal/config"
	"github.com/dtroode/tasktracker-server/internal/logger"
	"github.com/dtroode/tasktracker-server/internal/model"
	"github.com/dtroode/tasktracker-server/internal/password"
	"github.com/dtroode/tasktracker-server/internal/ratelimit"
	"github.com/dtroode/tasktracker-server/internal/repository/mongo"
	"github.com/dtroode/tasktracker-server/internal/repository/postgres"
	"github.com/dtroode/tasktracker-server/internal/server"
	"github.com/dtroode/tasktracker-server/internal/service"
	storage "github.com/dtroode/tasktracker-server/internal/storage/minio"
	"github.com/dtroode/tasktracker-server/internal/token"
)

var (
	buildVersion = "N/A" // set by ldflags
	buildDate    = "N/A" // set by ldflags
	buildCommit  = "N/A" // set by ldflags
)

// stores groups the persistence backends selected by DATABASE_DRIVER.
type stores struct {
	users  model.UserStore
	tasks  model.TaskStore
	ping   handler.HealthCheck
	closer func(ctx context.Context) error
}

func main() {
	ctx := context.Background()

	cfg, err := config.NewConfig()
	if err != nil {
		log.Fatalf("failed to parse config: %v", err)
	}
	logger := logger.New(cfg.LogLevel)

	if cfg.UsesDevSecret() {
		logger.Warn("JWT_SECRET is not set, signing tokens with the development secret")
	}

	st, err := openStores(ctx, cfg)
	if err != nil {
		logger.Fatal("failed to initialize storage", "driver", cfg.Database.Driver, "error", err)
	}

	hasher := password.NewArgon2(password.Params{
		Time:   cfg.KDF.Time,
		MemKiB: cfg.KDF.MemKiB,
		Par:    cfg.KDF.Par,
	})
	tokenManager := token.NewJWT(cfg.JWT.Secret, cfg.JWT.TTL, cfg.JWT.Issuer)
	ctxMgr := httpctx.NewManager()

	authService := service.NewAuth(st.users, hasher, tokenManager, logger)
	taskService := service.NewTask(st.tasks, logger, cfg.HTTP.RevealForbidden)

	healthChecks := map[string]handler.HealthCheck{"database": st.ping}
	closers := []func(ctx context.Context) error{st.closer}
	opts := []router.Option{}

	if cfg.Storage.Enabled {
		minioClient, err := minio.New(cfg.Storage.Endpoint, &minio.Options{
			Creds:  credentials.NewStaticV4(cfg.Storage.AccessKey, cfg.Storage.SecretKey, ""),
			Secure: cfg.Storage.UseSSL,
		})
		if err != nil {
			logger.Fatal("failed to create minio client", "error", err)
		}
		storageClient, err := storage.NewClient(ctx, minioClient, cfg.Storage.Bucket)
		if err != nil {
			logger.Fatal("failed to initialize storage client", "error", err)
		}

		attachmentService := service.NewAttachment(taskService, storageClient, logger)
		taskService.OnDelete(attachmentService.RemoveForTask)

		opts = append(opts, router.WithAttachments(attachmentService))
		healthChecks["storage"] = storageClient.Ping
	}

	if cfg.Redis.Addr != "" {
		redisClient, err := ratelimit.NewRedisClient(ctx, cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
		if err != nil {
			logger.Fatal("failed to connect to redis", "address", cfg.Redis.Addr, "error", err)
		}
		closers = append(closers, func(context.Context) error {
			return redisClient.Close()
		})

		limiter := ratelimit.NewLimiter(redisClient, cfg.RateLimit.Attempts, cfg.RateLimit.Window)
		opts = append(opts, router.WithRateLimiter(limiter))
		healthChecks["redis"] = func(ctx context.Context) error {
			return redisClient.Ping(ctx).Err()
		}
	} else {
		logger.Info("REDIS_ADDR is not set, authentication endpoints are not rate limited")
	}

	opts = append(opts, router.WithHealthChecks(healthChecks))

	app := router.New(authService, taskService, tokenManager, ctxMgr, cfg.HTTP, logger, opts...).Register()
	srv := httpServer.NewHTTPServer(app, fmt.Sprintf(":%s", cfg.HTTP.Port))

	go func(s model.Server) {
		logger.Info("Starting server on", "address", s.Address())
		if err := s.Start(server.NewSecurityLayer(cfg.HTTP)); err != nil {
			logger.Fatal("failed to start server", "error", err)
		}
	}(srv)

	logAppVersion()

	// Backends close only after in-flight requests have drained.
	wait := gfshutdown.GracefulShutdown(ctx, cfg.HTTP.ShutdownTimeout, map[string]gfshutdown.Operation{
		"http-server": func(ctx context.Context) error {
			logger.Info("shutting down HTTP server", "address", srv.Address())
			stopErr := srv.Stop(ctx)
			for _, closeFn := range closers {
				if err := closeFn(ctx); err != nil {
					logger.Error("failed to close backend", "error", err)
				}
			}
			return stopErr
		},
	})

	exitCode := <-wait
	logger.Info("shutdown complete", "exit_code", exitCode)
	os.Exit(exitCode)
}

func openStores(ctx context.Context, cfg *config.Config) (stores, error) {
	switch cfg.Database.Driver {
	case config.DriverMongo:
		db, err := mongo.NewConnection(ctx, cfg.Mongo.URI, cfg.Mongo.Database)
		if err != nil {
			return stores{}, err
		}
		return stores{
			users:  mongo.NewUserRepository(db),
			tasks:  mongo.NewTaskRepository(db),
			ping:   db.Ping,
			closer: db.Close,
		}, nil
	default:
		db, err := postgres.NewConnection(ctx, cfg.Database.DSN)
		if err != nil {
			return stores{}, err
		}
		return stores{
			users:  postgres.NewUserRepository(db),
			tasks:  postgres.NewTaskRepository(db),
			ping:   db.Ping,
			closer: func(context.Context) error { return db.Close() },
		}, nil
	}
}

func logAppVersion() {
	tmpl := `
Build version: %s
Build date: %s
Build commit: %s
`

	fmt.Printf(tmpl, buildVersion, buildDate, buildCommit)
}
