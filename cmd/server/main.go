package main

import (
	"context"
	"database/sql"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/joho/godotenv"
	httpSwagger "github.com/swaggo/http-swagger"

	"github.com/IsraelAraujo70/shopping-list/internal/config"
	"github.com/IsraelAraujo70/shopping-list/internal/handlers"
	"github.com/IsraelAraujo70/shopping-list/internal/middleware"
	"github.com/IsraelAraujo70/shopping-list/internal/observability"
	"github.com/IsraelAraujo70/shopping-list/internal/repository"
	"github.com/IsraelAraujo70/shopping-list/internal/services"
)

const serviceVersion = "1.0.0"

func main() {
	// Load .env if present; real env vars take precedence
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize telemetry
	ctx := context.Background()
	telemetry, err := observability.Initialize(ctx, observability.NewConfig("shopping-list-server", serviceVersion))
	if err != nil {
		log.Fatalf("Failed to initialize telemetry: %v", err)
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := telemetry.Shutdown(shutdownCtx); err != nil {
			observability.Errorf("Telemetry shutdown failed: %v", err)
		}
	}()

	// Initialize database
	var db *sql.DB
	if cfg.UsePostgres() {
		observability.Info("Using PostgreSQL database")
		db, err = repository.NewPostgresDB(cfg.DatabaseURL)
	} else {
		observability.Info("Using SQLite database")
		db, err = repository.NewSQLiteDB(cfg.DatabasePath)
	}
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer db.Close()

	// Repositories
	listRepo := repository.NewListRepository(db)
	itemRepo := repository.NewItemRepository(db)
	familyRepo := repository.NewFamilyRepository(db)
	memberRepo := repository.NewFamilyMemberRepository(db)
	shareRepo := repository.NewListShareRepository(db)

	// Live update hub
	hub := services.NewListEventHub()
	go hub.Run()

	// Services
	authzService := services.NewAuthzService(shareRepo, memberRepo)
	listService := services.NewListService(listRepo, itemRepo, shareRepo, authzService, hub)
	shareService := services.NewShareService(listRepo, itemRepo, shareRepo, familyRepo, memberRepo, authzService, hub)
	familyService := services.NewFamilyService(familyRepo, memberRepo, listRepo, authzService)

	// Metrics instruments
	sharingMetrics, err := observability.NewSharingMetrics()
	if err != nil {
		observability.Errorf("Failed to create sharing metrics: %v", err)
		sharingMetrics = nil
	}
	httpMetrics, err := observability.NewHTTPMetrics()
	if err != nil {
		observability.Errorf("Failed to create HTTP metrics: %v", err)
	}

	// Handlers
	listHandler := handlers.NewListHandler(listService, shareService, sharingMetrics)
	itemHandler := handlers.NewItemHandler(listService, sharingMetrics)
	shareHandler := handlers.NewShareHandler(shareService, sharingMetrics)
	familyHandler := handlers.NewFamilyHandler(familyService)
	healthHandler := handlers.NewHealthHandler()
	webhookHandler := handlers.NewWebhookHandler()
	wsHandler := handlers.NewWebSocketHandler(hub, listService, cfg.Auth.TokenSecret)
	docsHandler := handlers.NewDocsHandler()

	// Setup router
	r := chi.NewRouter()

	r.Use(chimw.Logger)
	r.Use(chimw.Recoverer)
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(observability.TracingMiddleware("shopping-list-server"))
	if httpMetrics != nil {
		r.Use(observability.MetricsMiddleware(httpMetrics))
	}
	r.Use(middleware.BearerAuth(cfg.Auth.TokenSecret, []string{
		"/api/health",
		"/api/webhook/stripe",
	}))

	// Routes
	r.Get("/health", healthHandler.HealthCheck)
	r.Get("/api/health", healthHandler.HealthCheck)
	r.Post("/api/webhook/stripe", webhookHandler.StripeWebhook)

	r.Route("/api/lists", func(r chi.Router) {
		r.Post("/", listHandler.CreateList)
		r.Get("/", listHandler.ListLists)
		r.Get("/shared", shareHandler.SharedWithMe)
		r.Get("/{listId}", listHandler.GetList)
		r.Patch("/{listId}", listHandler.RenameList)
		r.Delete("/{listId}", listHandler.DeleteList)
		r.Post("/{listId}/items", itemHandler.AddItem)
		r.Patch("/{listId}/items", itemHandler.UpdateItem)
		r.Post("/{listId}/share", shareHandler.ShareList)
		r.Get("/{listId}/share", shareHandler.ListShares)
		r.Delete("/{listId}/share", shareHandler.RemoveShare)
		r.Post("/{listId}/share/family", shareHandler.ShareWithFamily)
	})

	r.Route("/api/families", func(r chi.Router) {
		r.Post("/", familyHandler.CreateFamily)
		r.Get("/", familyHandler.ListFamilies)
		r.Post("/{familyId}/members", familyHandler.AddMember)
		r.Get("/{familyId}/members", familyHandler.ListMembers)
		r.Delete("/{familyId}/members", familyHandler.RemoveMember)
	})

	r.Get("/ws", wsHandler.HandleConnection)

	r.Get("/swagger/doc.json", docsHandler.OpenAPIDoc)
	r.Get("/swagger/*", httpSwagger.Handler(
		httpSwagger.URL("/swagger/doc.json"),
	))

	// Create server
	srv := &http.Server{
		Addr:         cfg.ServerAddress,
		Handler:      r,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		observability.WithField("address", cfg.ServerAddress).Info("Shopping List Server starting")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server error: %v", err)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	observability.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}

	observability.Info("Server stopped")
}
