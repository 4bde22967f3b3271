package cmd

import (
	"log"
	"os"
	"os/signal"
	"syscall"

	"invoice-reconciler/core/config"
	"invoice-reconciler/core/database"
	"invoice-reconciler/core/loader"
	"invoice-reconciler/core/logger"
	"invoice-reconciler/core/middleware/auth"
	"invoice-reconciler/core/middleware/rayid"
	"invoice-reconciler/core/reconcile"
	"invoice-reconciler/core/storage"
	docstore "invoice-reconciler/feature/documents"
	"invoice-reconciler/feature/mismatch"
	feature "invoice-reconciler/feature/reconcile"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/swagger"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	_ "invoice-reconciler/docs/swagger"
)

// @title Invoice Reconciler API
// @version 1.0
// @description Reconciles vendor invoices against purchase orders and contracts.
// @host localhost:8080
// @BasePath /
// @securityDefinitions.apikey ApiKeyAuth
// @in header
// @name X-API-Key

// startCmd represents the start command
var startCmd = &cobra.Command{
	Use:   "start",
	Short: "Start the reconciliation server",
	Long:  `Starts the HTTP server and initializes all enabled features.`,
	Run: func(cmd *cobra.Command, args []string) {
		ctx := cmd.Context()

		cfg, err := config.LoadConfig(".")
		if err != nil {
			log.Fatalf("Failed to load configuration: %v", err)
		}
		if err := cfg.Server.Validate(); err != nil {
			log.Fatalf("Invalid server configuration: %v", err)
		}

		logg, err := logger.New(&cfg.Log)
		if err != nil {
			log.Fatalf("Failed to initialize logger: %v", err)
		}
		defer logg.Sync()
		zap.ReplaceGlobals(logg)

		// The mismatch log is required; every reconciliation is recorded.
		db, err := database.Connect(cfg.Database)
		if err != nil {
			logg.Fatal("Database connection failed", zap.Error(err))
		}
		repo := mismatch.NewRepository(db)
		if err := repo.Migrate(ctx); err != nil {
			logg.Fatal("Failed to migrate mismatch tables", zap.Error(err))
		}
		logg.Info("Connected to mismatch store", zap.String("driver", cfg.Database.Driver))

		// Object storage is optional; without it only inline reconciliation is served.
		var store *docstore.Store
		if client, err := storage.NewClient(cfg.Storage); err != nil {
			logg.Warn("Storage client unavailable", zap.Error(err))
		} else if err := storage.EnsureBucket(ctx, client, cfg.Storage.Bucket, cfg.Storage.Region); err != nil {
			logg.Warn("Document storage disabled", zap.String("bucket", cfg.Storage.Bucket), zap.Error(err))
		} else {
			rc := cfg.Reconcile
			store = docstore.NewStore(client, cfg.Storage.Bucket, rc.DocumentPrefix, rc.ReportPrefix, rc.CacheTTL())
		}

		validator := reconcile.NewValidator(repo, logg, cfg.Reconcile.User)

		app := fiber.New(fiber.Config{
			DisableStartupMessage: true,
			BodyLimit:             cfg.Server.BodyLimit(),
		})

		mgr := loader.NewManager()
		mgr.Register(feature.NewFeature(feature.NewService(validator, store, logg), logg))
		mgr.Register(mismatch.NewFeature(repo, logg))
		if store != nil {
			mgr.Register(docstore.NewFeature(store, logg))
		}

		// RayID first so every later log line carries it.
		app.Use(rayid.New())

		app.Use(func(c *fiber.Ctx) error {
			l := logger.WithRayID(logg, c)
			l.Info("Request started",
				zap.String("method", c.Method()),
				zap.String("path", c.Path()),
				zap.String("ip", c.IP()),
			)
			err := c.Next()
			if err != nil {
				l.Error("Request error", zap.Error(err))
			}
			return err
		})

		app.Get("/swagger/*", swagger.HandlerDefault)

		app.Use(auth.New(auth.Config{ApiKey: cfg.Server.ApiKey}))

		if err := mgr.LoadAll(app); err != nil {
			logg.Fatal("Failed to load features", zap.Error(err))
		}

		go func() {
			logg.Info("Starting server", zap.String("port", cfg.Server.Port))
			if err := app.Listen(":" + cfg.Server.Port); err != nil {
				logg.Fatal("Server failed to start", zap.Error(err))
			}
		}()

		c := make(chan os.Signal, 1)
		signal.Notify(c, os.Interrupt, syscall.SIGTERM)
		<-c
		logg.Info("Shutting down server...")
		_ = app.Shutdown()
	},
}

func init() {
	RootCmd.AddCommand(startCmd)
}
