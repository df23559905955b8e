package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/dimitrije/collaborate-api/internal/config"
	"github.com/dimitrije/collaborate-api/internal/database"
	"github.com/dimitrije/collaborate-api/internal/editor"
	"github.com/dimitrije/collaborate-api/internal/handlers"
	"github.com/dimitrije/collaborate-api/internal/i18n"
	"github.com/dimitrije/collaborate-api/internal/logger"
	authmw "github.com/dimitrije/collaborate-api/internal/middleware"
	"github.com/dimitrije/collaborate-api/internal/services"
	"github.com/m1z23r/drift/pkg/drift"
	"github.com/m1z23r/drift/pkg/middleware"
)

// Drafts older than this are no longer referenced by an open form.
const draftRetention = 24 * time.Hour

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	appLog, err := logger.New(cfg.LogMode)
	if err != nil {
		log.Fatalf("Failed to create logger: %v", err)
	}
	defer appLog.Sync()

	ctx := context.Background()

	db, err := database.New(ctx, cfg.DatabaseURL)
	if err != nil {
		appLog.Fatal("failed to connect to database", "error", err)
	}
	defer db.Close()

	if err := db.Migrate(ctx); err != nil {
		appLog.Fatal("failed to run migrations", "error", err)
	}

	bundle, err := i18n.LoadEmbedded()
	if err != nil {
		appLog.Fatal("failed to load message catalogs", "error", err)
	}

	jwtService := services.NewJWTService(cfg.JWTSecret, cfg.JWTAccessExpiry)
	fileService := services.NewFileService(db, cfg.MaxUploadBytes)
	materializer := editor.NewMaterializer(fileService, cfg.FileBaseURL())
	collaborateService := services.NewCollaborateService(db, materializer, cfg.MaxUploadBytes, appLog)
	submissionService := services.NewSubmissionService(db, materializer, cfg.MaxUploadBytes, appLog)

	collaborateHandler := handlers.NewCollaborateHandler(collaborateService, bundle, cfg.MaxUploadBytes, appLog)
	submissionHandler := handlers.NewSubmissionHandler(collaborateService, submissionService, bundle, appLog)
	fileHandler := handlers.NewFileHandler(fileService, materializer)

	app := drift.New()

	if cfg.IsProduction() {
		app.SetMode(drift.ReleaseMode)
	} else {
		app.SetMode(drift.DebugMode)
	}

	app.Use(middleware.Recovery())
	app.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: []string{"*"},
		AllowMethods: []string{"GET", "POST", "PUT", "OPTIONS"},
		AllowHeaders: []string{"Origin", "Content-Type", "Accept", "Accept-Language", "Authorization"},
		MaxAge:       86400,
	}))
	app.Use(middleware.BodyParser())

	api := app.Group("/api/v1")

	protected := api.Group("")
	protected.Use(authmw.Auth(jwtService))

	protected.Post("/collaborate", collaborateHandler.Create)
	protected.Get("/collaborate/:id", collaborateHandler.Get)
	protected.Put("/collaborate/:id", collaborateHandler.Update)
	protected.Get("/collaborate/:id/form", collaborateHandler.Form)

	protected.Get("/collaborate/:id/submissions/:page", submissionHandler.Get)
	protected.Get("/collaborate/:id/submissions/:page/edit", submissionHandler.Edit)
	protected.Put("/collaborate/:id/submissions/:page", submissionHandler.Save)

	protected.Post("/drafts", fileHandler.UploadDraft)
	protected.Get("/draftfile/:itemId/:filename", fileHandler.DraftFile)
	protected.Get("/pluginfile/:contextId/:component/:area/:itemId/:filename", fileHandler.Pluginfile)

	api.Get("/health", func(c *drift.Context) {
		_ = c.JSON(200, map[string]string{"status": "ok"})
	})

	go func() {
		ticker := time.NewTicker(1 * time.Hour)
		for range ticker.C {
			n, err := fileService.CleanupDrafts(context.Background(), time.Now().Add(-draftRetention))
			if err != nil {
				appLog.Warn("draft cleanup failed", "error", err)
				continue
			}
			if n > 0 {
				appLog.Info("draft files removed", "count", n)
			}
		}
	}()

	go func() {
		addr := fmt.Sprintf(":%s", cfg.Port)
		appLog.Info("server starting", "addr", addr, "env", cfg.Env, "locales", bundle.Locales())
		if err := app.Run(addr); err != nil {
			appLog.Fatal("server failed", "error", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	appLog.Info("shutting down server")
}
