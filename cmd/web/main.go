package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/joho/godotenv"

	"github.com/ecowatt/ecowatt-go/internal/config"
	"github.com/ecowatt/ecowatt-go/internal/handler"
	"github.com/ecowatt/ecowatt-go/internal/middleware"
	"github.com/ecowatt/ecowatt-go/internal/repository"
	"github.com/ecowatt/ecowatt-go/internal/service"
	"github.com/ecowatt/ecowatt-go/web/static"
)

func main() {
	if err := godotenv.Load(); err != nil {
		slog.Warn("no .env file found, using environment variables")
	}

	cfg := config.Load()

	db, err := repository.NewDB(cfg.DatabaseDSN)
	if err != nil {
		slog.Error("database connection failed", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	migrateCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	if err := repository.Migrate(migrateCtx, db); err != nil {
		cancel()
		slog.Error("schema migration failed", "error", err)
		os.Exit(1)
	}
	cancel()

	render, err := handler.NewRenderer()
	if err != nil {
		slog.Error("template parsing failed", "error", err)
		os.Exit(1)
	}

	userRepo := repository.NewUserRepository(db)
	resetRepo := repository.NewResetRepository(db)
	deviceRepo := repository.NewDeviceRepository(db)
	tipRepo := repository.NewTipRepository(db)

	authService := service.NewAuthService(userRepo, resetRepo, cfg.SessionSecret, cfg.SessionExpiry, cfg.ResetExpiry)
	energyService := service.NewEnergyService(deviceRepo)
	savingsService := service.NewSavingsService(tipRepo)

	authHandler := handler.NewAuthHandler(authService, render, int(cfg.SessionExpiry.Seconds()))
	pageHandler := handler.NewPageHandler(authService, energyService, savingsService, render)
	deviceHandler := handler.NewDeviceHandler(energyService, render)
	apiHandler := handler.NewAPIHandler(savingsService)

	r := chi.NewRouter()
	r.Use(middleware.Logger)
	r.Use(middleware.LoadSession(cfg.SessionSecret))

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})

	r.Handle("/static/*", http.StripPrefix("/static/", http.FileServer(http.FS(static.FS))))

	r.Get("/", pageHandler.Home)
	r.Get("/login", authHandler.ShowLogin)
	r.Get("/register", authHandler.ShowRegister)
	r.Get("/get-started", authHandler.ShowGetStarted)
	r.Get("/forgot-password", authHandler.ShowForgotPassword)
	r.Get("/reset-password/{token}", authHandler.ShowResetPassword)
	r.Get("/logout", authHandler.HandleLogout)
	r.Get("/savings-calculator", pageHandler.SavingsCalculator)
	r.Get("/contact", pageHandler.ShowContact)
	r.Post("/contact", pageHandler.HandleContact)

	// Credential-bearing submissions share one per-IP budget.
	r.Group(func(r chi.Router) {
		r.Use(middleware.RateLimit(5, 10))
		r.Post("/login", authHandler.HandleLogin)
		r.Post("/register", authHandler.HandleRegister)
		r.Post("/get-started", authHandler.HandleGetStarted)
		r.Post("/forgot-password", authHandler.HandleForgotPassword)
		r.Post("/reset-password/{token}", authHandler.HandleResetPassword)
	})

	r.Group(func(r chi.Router) {
		r.Use(middleware.RequireSession("/login"))
		r.Get("/dashboard", pageHandler.Dashboard)
		r.Get("/delete-device/{id}", deviceHandler.HandleDeleteDevice)
	})

	// JSON endpoints: add-device reports missing sessions in its own reply
	// shape rather than redirecting.
	r.Post("/add-device", deviceHandler.HandleAddDevice)
	r.Post("/api/calculate-savings", apiHandler.HandleCalculateSavings)
	r.Get("/api/common-devices", apiHandler.HandleCommonDevices)

	if cfg.Debug() {
		debugHandler := handler.NewDebugHandler(db, render)
		r.Get("/debug/reset-db", debugHandler.HandleResetDB)
		r.Get("/debug/tables", debugHandler.HandleTables)
		slog.Warn("debug endpoints mounted", "env", cfg.Env)
	}

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      r,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		slog.Info("server starting", "port", cfg.Port, "env", cfg.Env)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.Info("shutting down server")
	ctx, cancelShutdown := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancelShutdown()

	if err := srv.Shutdown(ctx); err != nil {
		slog.Error("server forced shutdown", "error", err)
		os.Exit(1)
	}

	slog.Info("server stopped")
}
