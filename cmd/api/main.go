package main

import (
	"context"
	"fmt"
	"log"

	common_api "go-ghlsync/internal/common/api"
	"go-ghlsync/internal/config"
	"go-ghlsync/internal/database"
	"go-ghlsync/internal/features/contact"
	"go-ghlsync/internal/features/credential"
	"go-ghlsync/internal/features/opportunity"
	"go-ghlsync/internal/features/report"
	"go-ghlsync/internal/features/schedule"
	"go-ghlsync/internal/features/sync"
	"go-ghlsync/internal/features/system"
	"go-ghlsync/internal/features/vault"
	"go-ghlsync/internal/logger"
	"go-ghlsync/internal/middleware"
	"go-ghlsync/pkg/utils"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/fx"
	"go.uber.org/fx/fxevent"
	"go.uber.org/zap"
)

// NewFiberServer creates a new Fiber app instance
func NewFiberServer() *fiber.App {
	app := fiber.New(fiber.Config{
		DisableStartupMessage: true,
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			code := fiber.StatusInternalServerError
			if e, ok := err.(*fiber.Error); ok {
				code = e.Code
			}
			return c.Status(code).JSON(fiber.Map{
				"error": err.Error(),
			})
		},
	})

	app.Use(middleware.CORSMiddleware())

	return app
}

// AsRoute tags a constructor so Fx adds its result to the "routes" group.
func AsRoute(f any) any {
	return fx.Annotate(
		f,
		fx.As(new(common_api.Route)),
		fx.ResultTags(`group:"routes"`),
	)
}

// RegisterAllRoutes takes the group "routes" and calls Setup() on each one.
func RegisterAllRoutes(app *fiber.App, routes []common_api.Route) {
	for _, route := range routes {
		route.Setup(app)
	}
}

var RegisterAllRoutesWithAnnotation = fx.Annotate(
	RegisterAllRoutes,
	fx.ParamTags(``, `group:"routes"`),
)

// StartServer creates a lifecycle hook to start Fiber in a goroutine
// and shut it down when the app exits.
func StartServer(lc fx.Lifecycle, app *fiber.App, cfg *config.Config) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			utils.SetSecret(cfg.JWTSecret)
			go func() {
				port := fmt.Sprintf(":%s", cfg.Port)
				if err := app.Listen(port); err != nil {
					log.Fatalf("Server failed to start: %v", err)
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			return app.Shutdown()
		},
	})
}

func main() {
	app := fx.New(
		fx.Provide(
			config.LoadConfig,
			logger.NewLogger,
			NewFiberServer,
			database.NewDatabase,

			// Repositories
			credential.NewGHLCredentialRepository,
			credential.NewSmartVaultTokenRepository,
			opportunity.NewOpportunityRepository,
			contact.NewContactRepository,
			sync.NewSyncLogRepository,

			// Services
			credential.NewCredentialService,
			sync.NewSyncService,
			vault.NewVaultService,
			report.NewReportService,

			// Controllers
			credential.NewCredentialController,
			sync.NewSyncController,
			vault.NewVaultController,
			report.NewReportController,
			opportunity.NewOpportunityController,
			contact.NewContactController,

			// API Routes
			AsRoute(credential.NewCredentialApi),
			AsRoute(sync.NewSyncApi),
			AsRoute(vault.NewVaultApi),
			AsRoute(report.NewReportApi),
			AsRoute(opportunity.NewOpportunityApi),
			AsRoute(contact.NewContactApi),
			AsRoute(system.NewHealthApi),
		),
		fx.WithLogger(func(log *zap.Logger) fxevent.Logger {
			return &fxevent.ZapLogger{Logger: log}
		}),
		fx.Invoke(
			RegisterAllRoutesWithAnnotation,
			StartServer,
			schedule.NewScheduler,
		),
	)

	app.Run()
}
