package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"net/http"
	"time"

	"faktura-backend/internal/auth"
	"faktura-backend/internal/cache"
	"faktura-backend/internal/config"
	"faktura-backend/internal/database"
	"faktura-backend/internal/db"
	"faktura-backend/internal/handlers"
	"faktura-backend/internal/health"
	h "faktura-backend/internal/http"
	"faktura-backend/internal/middleware"
	"faktura-backend/internal/monitoring"
	"faktura-backend/internal/pdf"
	"faktura-backend/internal/repositories"
	"faktura-backend/internal/services"
)

func main() {
	port := flag.Int("port", 0, "Server port (overrides config)")
	flag.Parse()

	// Load configuration
	cfg := config.Load()
	if *port != 0 {
		cfg.Server.Port = *port
	}

	// Connect to PostgreSQL
	pool := db.Connect(cfg)
	defer pool.Close()

	// Initialize Redis cache (optional - graceful fallback if unavailable)
	if cfg.Redis.Enabled {
		err := cache.Init(cache.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err != nil {
			log.Printf("[Redis] Cache unavailable: %v (every render hits the pipeline)", err)
		} else {
			log.Println("[Redis] Cache connected successfully")
		}
	}

	// Run database migrations
	migrator := database.NewMigrator(pool)
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := migrator.RunMigrations(ctx); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	// Initialize health checker
	healthChecker := health.NewHealthChecker(pool)

	// Start monitoring dashboard server in background
	if cfg.Monitoring.Enabled {
		go monitoring.NewMonitoringServer(pool, cfg.Monitoring.Port).Start()
	}

	// Initialize JWT manager
	jwtManager := auth.NewJWTManager(cfg)

	// Build the render pipeline
	fontSource, err := buildFontSource(cfg)
	if err != nil {
		log.Fatalf("Failed to configure font source: %v", err)
	}
	renderer := pdf.NewRenderer(fontSource, &pdf.QREncoder{Size: cfg.Render.QRSize})

	// Initialize repositories
	invoiceRepo := repositories.NewInvoiceRepository(pool)
	templateRepo := repositories.NewTemplateRepository(pool)

	// Initialize services
	invoiceService := services.NewInvoiceService(renderer, invoiceRepo)
	templateService := services.NewTemplateService(templateRepo)

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(cfg, jwtManager)
	invoiceHandler := handlers.NewInvoiceHandler(invoiceService)
	templateHandler := handlers.NewTemplateHandler(templateService)
	healthHandler := handlers.NewHealthHandler(healthChecker)

	// Middleware
	authMiddleware := middleware.NewAuthMiddleware(jwtManager)
	corsMiddleware := middleware.NewCORS(cfg)

	router := h.NewRouter(authHandler, invoiceHandler, templateHandler, healthHandler, authMiddleware)

	// Wrap with panic recovery, metrics and request logging
	handler := middleware.PanicRecovery(
		middleware.MetricsMiddleware(
			middleware.RequestLogging(
				corsMiddleware(router))))

	// Start server
	addr := fmt.Sprintf(":%d", cfg.Server.Port)
	log.Printf("Server running on %s", addr)
	if err := http.ListenAndServe(addr, handler); err != nil {
		log.Fatalf("Server failed to start: %v", err)
	}
}

// buildFontSource wires the configured typeface store into the renderer.
// The core source keeps the binary usable with no font assets at all.
func buildFontSource(cfg *config.Config) (pdf.FontSource, error) {
	switch cfg.Fonts.Source {
	case "", "core":
		log.Println("[Fonts] Using built-in core font (limited glyph coverage)")
		return nil, nil
	case "file":
		return &pdf.FileFontSource{
			RegularPath: cfg.Fonts.RegularPath,
			BoldPath:    cfg.Fonts.BoldPath,
		}, nil
	case "http":
		return &pdf.HTTPFontSource{
			RegularURL: cfg.Fonts.RegularURL,
			BoldURL:    cfg.Fonts.BoldURL,
		}, nil
	case "s3":
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		return pdf.NewS3FontSource(ctx, pdf.S3FontConfig{
			Endpoint:   cfg.Fonts.S3.Endpoint,
			Region:     cfg.Fonts.S3.Region,
			AccessKey:  cfg.Fonts.S3.AccessKey,
			SecretKey:  cfg.Fonts.S3.SecretKey,
			Bucket:     cfg.Fonts.S3.Bucket,
			RegularKey: cfg.Fonts.S3.RegularKey,
			BoldKey:    cfg.Fonts.S3.BoldKey,
		})
	default:
		return nil, fmt.Errorf("unknown font source %q", cfg.Fonts.Source)
	}
}
