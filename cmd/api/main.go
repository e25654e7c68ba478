// Package main starts the vibe API server: authentication, user management,
// AI chat proxy, object storage, server-sent events and background jobs.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/kbukum/vibeapi/internal/ai"
	"github.com/kbukum/vibeapi/internal/auth"
	"github.com/kbukum/vibeapi/internal/auth/password"
	"github.com/kbukum/vibeapi/internal/auth/token"
	"github.com/kbukum/vibeapi/internal/config"
	"github.com/kbukum/vibeapi/internal/jobs"
	"github.com/kbukum/vibeapi/internal/logger"
	"github.com/kbukum/vibeapi/internal/observability"
	"github.com/kbukum/vibeapi/internal/realtime"
	"github.com/kbukum/vibeapi/internal/server"
	"github.com/kbukum/vibeapi/internal/server/endpoint"
	"github.com/kbukum/vibeapi/internal/server/handlers"
	"github.com/kbukum/vibeapi/internal/server/middleware"
	"github.com/kbukum/vibeapi/internal/storage"
	"github.com/kbukum/vibeapi/internal/store/postgres"
	"github.com/kbukum/vibeapi/internal/users"
	"github.com/kbukum/vibeapi/internal/version"
)

const shutdownTimeout = 30 * time.Second

// hubNotifier forwards authentication events onto the realtime hub.
type hubNotifier struct {
	hub *realtime.Hub
}

func (n *hubNotifier) UserLoggedIn(userID, email string) {
	n.hub.SendToUser(userID, realtime.NewEvent(realtime.EventUserLoggedIn, map[string]string{
		"email": email,
	}))
}

func main() {
	configFile := flag.String("config", "", "path to config file (optional)")
	flag.Parse()

	if err := run(*configFile); err != nil {
		fmt.Fprintf(os.Stderr, "api: %v\n", err)
		os.Exit(1)
	}
}

func run(configFile string) error {
	cfg, err := config.Load(configFile)
	if err != nil {
		return err
	}

	log := logger.New(&cfg.Log, cfg.Base.Name)
	log.Info("Starting service", map[string]interface{}{
		"environment": cfg.Base.Environment,
		"version":     version.Get().Version,
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Telemetry.
	providers, err := observability.Init(ctx, cfg.Observability, cfg.Base.Name, version.Get().Version, cfg.Base.Environment, log)
	if err != nil {
		return err
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := providers.Shutdown(shutdownCtx); err != nil {
			log.Warn("Telemetry shutdown failed", map[string]interface{}{"error": err.Error()})
		}
	}()

	// Database.
	if cfg.Database.MigrateOnStart {
		if err := postgres.Migrate(ctx, cfg.Database, log); err != nil {
			return err
		}
	}
	pool, err := postgres.Connect(ctx, cfg.Database)
	if err != nil {
		return err
	}
	defer pool.Close()

	store := postgres.NewUserStore(pool)

	// Domain services.
	hasher := password.NewHasher(cfg.Password)
	tokens, err := token.NewService(cfg.JWT)
	if err != nil {
		return err
	}
	hub := realtime.NewHub(log)
	defer hub.Shutdown()

	authSvc := auth.NewService(store, hasher, tokens, log).WithNotifier(&hubNotifier{hub: hub})
	usersSvc := users.NewService(store, hasher, log)
	aiSvc := ai.NewService(cfg.AI, log)

	// HTTP server.
	var serverOpts []server.Option
	if cfg.Observability.Enabled {
		metrics, err := observability.NewHTTPMetrics(cfg.Base.Name)
		if err != nil {
			return err
		}
		serverOpts = append(serverOpts, server.WithMetrics(metrics))
	}
	srv := server.New(cfg.Server, log, serverOpts...)

	registerRoutes(srv, cfg, pool, tokens, authSvc, usersSvc, aiSvc, hub, log)

	if err := srv.Start(ctx); err != nil {
		return err
	}

	// Background jobs.
	scheduler := jobs.NewScheduler(log)
	if cfg.Jobs.Enabled {
		jobs.RegisterMaintenanceTasks(scheduler, cfg.Jobs, store, log)
		scheduler.Start(ctx)
		defer scheduler.Stop()
	}

	<-ctx.Done()
	log.Info("Shutdown signal received")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

func registerRoutes(
	srv *server.Server,
	cfg *config.Config,
	pool endpoint.Pinger,
	tokens *token.Service,
	authSvc *auth.Service,
	usersSvc *users.Service,
	aiSvc *ai.Service,
	hub *realtime.Hub,
	log *logger.Logger,
) {
	engine := srv.Engine()

	engine.GET("/health", endpoint.Health(pool))
	engine.GET("/version", endpoint.Version())

	api := engine.Group("/api")

	// Public.
	handlers.NewAuthHandler(authSvc).RegisterRoutes(api)

	// Authenticated.
	authed := api.Group("")
	authed.Use(middleware.Authentication(tokens, log))

	usersHandler := handlers.NewUsersHandler(usersSvc)
	usersHandler.RegisterRoutes(authed)
	handlers.NewAIHandler(aiSvc).RegisterRoutes(authed)
	handlers.NewEventsHandler(hub).RegisterRoutes(authed)

	if cfg.StorageEnabled() {
		storageSvc, err := storage.NewService(context.Background(), cfg.Storage, log)
		if err != nil {
			log.Error("Storage disabled: initialization failed", map[string]interface{}{
				"error": err.Error(),
			})
		} else {
			handlers.NewStorageHandler(storageSvc).RegisterRoutes(authed)
		}
	}

	// Admin.
	admin := authed.Group("/admin")
	admin.Use(middleware.RequireRole(log, users.RoleAdmin))
	usersHandler.RegisterAdminRoutes(admin)

	// Moderation is open to admins and moderators.
	moderation := authed.Group("/moderation")
	moderation.Use(middleware.RequireRole(log, users.RoleAdmin, users.RoleModerator))
	usersHandler.RegisterModerationRoutes(moderation)
}
