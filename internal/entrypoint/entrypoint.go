package entrypoint

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/Jananikaavya/Library-Management/internal/auth"
	"github.com/Jananikaavya/Library-Management/internal/config"
	"github.com/Jananikaavya/Library-Management/internal/database"
	"github.com/Jananikaavya/Library-Management/internal/database/books"
	"github.com/Jananikaavya/Library-Management/internal/database/cards"
	"github.com/Jananikaavya/Library-Management/internal/database/history"
	"github.com/Jananikaavya/Library-Management/internal/database/loans"
	"github.com/Jananikaavya/Library-Management/internal/database/users"
	httpcontrollers "github.com/Jananikaavya/Library-Management/internal/http"
)

// Serve runs the HTTP server until SIGINT/SIGTERM, then shuts down gracefully
// within the configured timeout.
func Serve(router *gin.Engine, cfg *config.Config) {
	timeout := time.Duration(cfg.Global.ShutdownTimeoutInSeconds) * time.Second

	srv := &http.Server{
		Addr:    fmt.Sprintf("%s:%d", cfg.HTTP.Host, cfg.HTTP.Port),
		Handler: router,
	}

	go func() {
		log.Printf("Starting server at %s:%d", cfg.HTTP.Host, cfg.HTTP.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen: %s", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Printf("Shutdown signal received, waiting up to %v", timeout)

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server shutdown:", err)
	}

	log.Println("Server exiting")
}

// Run wires the catalog together and serves it.
func Run(cfg *config.Config, version string) {
	log.Printf("Starting Library Management v%s", version)

	db, err := database.NewDatabase(cfg.Database.Path)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Printf("Error closing database: %v", err)
		}
	}()

	sqlDB, err := db.DB.DB()
	if err != nil {
		log.Fatalf("Failed to access underlying database handle: %v", err)
	}

	sessionManager, err := auth.NewSessionManager(sqlDB, cfg.Auth)
	if err != nil {
		log.Fatalf("Failed to initialize session manager: %v", err)
	}

	usersRepo := users.NewRepository(db.DB)
	authService := auth.NewService(usersRepo, cfg.Auth)

	csrfSecret, err := resolveCSRFSecret(cfg.Auth.SessionSecret)
	if err != nil {
		log.Fatalf("Failed to resolve CSRF secret: %v", err)
	}

	router := httpcontrollers.NewRouter(httpcontrollers.RouterConfig{
		Books:          books.NewRepository(db.DB),
		Users:          usersRepo,
		Cards:          cards.NewRepository(db.DB),
		Loans:          loans.NewRepository(db.DB),
		History:        history.NewRepository(db.DB),
		AuthService:    authService,
		SessionManager: sessionManager,
		CSRFSecret:     csrfSecret,
		SecureCookies:  cfg.Auth.SecureCookies,
	})

	Serve(router, cfg)
}

// resolveCSRFSecret decodes the configured secret, generating an ephemeral one
// when unset. An ephemeral secret invalidates CSRF tokens across restarts,
// which is acceptable for single-node deployments.
func resolveCSRFSecret(configured string) ([]byte, error) {
	if configured != "" {
		secret, err := hex.DecodeString(configured)
		if err != nil {
			return nil, fmt.Errorf("AUTH_SESSION_SECRET must be hex-encoded: %w", err)
		}
		return secret, nil
	}

	secret := make([]byte, 32)
	if _, err := rand.Read(secret); err != nil {
		return nil, err
	}
	log.Printf("AUTH_SESSION_SECRET not set, generated an ephemeral secret")
	return secret, nil
}
