package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"funeral-docs-be/internal/bootstrap"
	"funeral-docs-be/internal/config"
	"funeral-docs-be/internal/model"
	"funeral-docs-be/internal/server"
	"funeral-docs-be/internal/tracer"
	"funeral-docs-be/pkg/database"

	"github.com/fatih/color"
)

func main() {
	// 1. Load Configuration
	cfg := config.Load()
	if cfg.Auth.JWTSecret == "" {
		log.Fatal("JWT_SECRET is not set")
	}

	// 2. Initialize Tracer
	shutdownTracer := tracer.InitTracer(cfg.Tracing)

	// 3. Initialize Database
	gormDB, err := database.Open(database.Config{
		Driver:   cfg.Database.Driver,
		DSN:      cfg.Database.Connection,
		LogLevel: cfg.Database.LogLevel,
	})
	if err != nil {
		log.Panicf("Unable to connect to GORM DB: %v", err)
	}
	if cfg.Database.Driver == database.DriverSQLite {
		if err := database.Migrate(gormDB, model.All()...); err != nil {
			log.Panicf("Migration failed: %v", err)
		}
	}

	// 4. Bootstrap Dependencies (Container)
	container := bootstrap.NewContainer(gormDB, cfg)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// 5. Start Background Services
	if err := container.Start(ctx); err != nil {
		log.Fatalf("Background services failed to start: %v", err)
	}

	// 6. Run Server
	srv := server.New(cfg, container)
	banner(cfg)

	go func() {
		if err := srv.Run(); err != nil {
			log.Printf("Server stopped: %v", err)
			stop()
		}
	}()

	<-ctx.Done()
	color.Yellow("Shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("Server shutdown: %v", err)
	}
	container.Close()
	if err := shutdownTracer(shutdownCtx); err != nil {
		log.Printf("Tracer shutdown: %v", err)
	}
}

func banner(cfg *config.Config) {
	title := color.New(color.FgCyan, color.Bold)
	title.Println("Funeral Docs API")

	status := func(name string, on bool) {
		if on {
			color.Green("  %-10s enabled", name)
			return
		}
		color.HiBlack("  %-10s disabled", name)
	}
	status("LLM", cfg.Ai.Configured())
	status("SMTP", cfg.SMTP.Enabled())
	status("Engine", cfg.Render.EngineEnabled)
	status("NATS", cfg.App.NatsURL != "")
	status("Redis", cfg.App.RedisURL != "")
	status("Tracing", cfg.Tracing.Enabled)
	color.Cyan("  Listening on :%s (%s)", cfg.App.Port, cfg.App.Environment)
}
