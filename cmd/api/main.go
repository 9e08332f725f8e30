package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/OfficineVitale-Pharma/pharmacy-service/internal/auth"
	"github.com/OfficineVitale-Pharma/pharmacy-service/internal/db"
	internalhttp "github.com/OfficineVitale-Pharma/pharmacy-service/internal/http"
	"github.com/OfficineVitale-Pharma/pharmacy-service/internal/messaging"
	"github.com/OfficineVitale-Pharma/pharmacy-service/internal/telemetry"
)

func main() {
	log.Println("pharmacy-service starting")

	ctx := context.Background()

	// Initialize OpenTelemetry (tracing + metrics)
	otelCfg := telemetry.LoadConfig()
	provider, err := telemetry.InitProvider(ctx, otelCfg)
	if err != nil {
		log.Printf("Warning: failed to initialize OpenTelemetry: %v", err)
	}
	if provider != nil {
		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			if err := provider.Shutdown(shutdownCtx); err != nil {
				log.Printf("Warning: failed to shut down OpenTelemetry: %v", err)
			}
		}()
	}

	if _, err := telemetry.InitMetrics(); err != nil {
		log.Printf("Warning: failed to initialize custom metrics: %v", err)
	}

	// Connect to database
	database, err := db.Connect()
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer database.Close()

	// Connect to RabbitMQ. The service keeps running without events if the
	// broker is down, the services guard against a nil publisher.
	var publisher messaging.PublisherInterface
	rabbitPublisher, err := messaging.NewPublisher()
	if err != nil {
		log.Printf("Warning: failed to connect to RabbitMQ: %v", err)
		log.Println("Service will continue without event publishing")
	} else {
		publisher = rabbitPublisher
		defer rabbitPublisher.Close()
	}

	// Initialize JWT verification against Keycloak
	authCfg := auth.LoadConfig()
	jwks, err := auth.NewJWKS(authCfg.JWKSURL, 15*time.Minute)
	if err != nil {
		log.Fatalf("Failed to initialize JWKS: %v", err)
	}
	defer jwks.Close()
	verifier := auth.NewVerifier(authCfg, jwks)

	// Load role permissions
	permsPath := os.Getenv("PERMISSIONS_FILE")
	if permsPath == "" {
		permsPath = "permissions.yml"
	}
	perms, err := auth.LoadPermissions(permsPath)
	if err != nil {
		log.Fatalf("Failed to load permissions from %s: %v", permsPath, err)
	}

	router := internalhttp.SetupRouter(database, publisher, verifier, perms)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	server := &http.Server{
		Addr:         ":" + port,
		Handler:      internalhttp.CORSMiddleware(router),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Printf("pharmacy-service listening on :%s", port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server failed: %v", err)
		}
	}()

	// Wait for shutdown signal
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop

	log.Println("Shutting down pharmacy-service...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Printf("Warning: graceful shutdown failed: %v", err)
	}
	log.Println("✓ Server stopped")
}
