// Package main initializes and starts the chat shell server, setting up
// configuration, logging, the credential backend, the in-memory session
// and history stores, handlers, and the HTTP listener.
package main

import (
	"cmp"
	"context"
	"fmt"

	nethttp "net/http"

	"github.com/mbagrov/chatshell/internal/config"
	"github.com/mbagrov/chatshell/internal/db"
	"github.com/mbagrov/chatshell/internal/history"
	"github.com/mbagrov/chatshell/internal/logger"
	"github.com/mbagrov/chatshell/internal/repository"
	"github.com/mbagrov/chatshell/internal/server/handler/http"
	"github.com/mbagrov/chatshell/internal/service"
	"github.com/mbagrov/chatshell/internal/session"
	"go.uber.org/zap"
)

var (
	// version holds the build version set via ldflags.
	version string
	// buildDate holds the build timestamp set via ldflags.
	buildDate string
)

// credentialBackend is satisfied by both the Postgres and the in-memory
// credential repositories.
type credentialBackend interface {
	Verify(ctx context.Context, username, secret string) (bool, error)
	Register(ctx context.Context, username, secret string) error
}

// seedCredentials is the built-in credential table used when no database
// DSN is configured.
var seedCredentials = map[string]string{
	"admin": "password",
	"user1": "pass123",
	"user2": "pass456",
}

func main() {
	// Parse command-line and environment configuration.
	options := config.Parse()
	addr := options.Port

	// Print build metadata (or "N/A" if unset).
	fmt.Printf("Build version: %s\n", cmp.Or(version, "N/A"))
	fmt.Printf("Build date: %s\n", cmp.Or(buildDate, "N/A"))

	// Initialize structured logging.
	log := logger.New()
	defer func() { _ = log.Log.Sync() }()
	if err := log.Init(options.LogLevel); err != nil {
		log.Log.Fatal("failed to init logger", zap.Error(err))
	}
	zapLogger := log.Log

	// Pick the credential backend: Postgres when a DSN is configured,
	// otherwise the seeded in-memory table.
	var creds credentialBackend
	if options.DatabaseDSN != "" {
		postgresDB, err := db.InitPostgres(options.DatabaseDSN)
		if err != nil {
			zapLogger.Fatal("cannot init database", zap.Error(err))
		}
		creds = repository.NewPostgresCredentialRepository(postgresDB)
		zapLogger.Info("using postgres credential backend")
	} else {
		creds = repository.NewMemoryCredentialRepository(seedCredentials)
		zapLogger.Info("using in-memory credential backend",
			zap.Int("seeded_users", len(seedCredentials)))
	}

	// Process-lifetime state: chat history and the session registry.
	chatStore := history.NewStore()
	registry := session.NewRegistry()

	// Session-state core.
	authManager := service.NewAuthManager(creds, chatStore)
	navController := service.NewNavigationController(authManager)
	turnProcessor := service.NewTurnProcessor(chatStore, service.EchoResponder{})

	// Wire handlers and build the router.
	shell := &http.ShellHandler{
		Auth:      authManager,
		Chat:      turnProcessor,
		Nav:       navController,
		History:   chatStore,
		Registrar: creds,
		Registry:  registry,
	}
	router := http.NewRouter(shell, zapLogger)

	server := &nethttp.Server{
		Addr:    addr,
		Handler: router,
	}

	zapLogger.Info("starting HTTP server", zap.String("addr", addr))
	if err := server.ListenAndServe(); err != nil {
		zapLogger.Fatal("failed to start HTTP server", zap.Error(err))
	}
}
