package main

import (
	"context"
	"log"
	"log/slog"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/cors"

	"stash/internal/auth"
	"stash/internal/blob"
	"stash/internal/config"
	"stash/internal/database/migrations"
	"stash/internal/domain/services"
	"stash/internal/handler"
	"stash/internal/middleware"
	"stash/internal/policy"
	"stash/internal/repository/postgres"
	"stash/internal/service"
	serviceauth "stash/internal/service/auth"
)

func main() {
	// Load .env file (silently ignore if it doesn't exist - for production)
	_ = godotenv.Load()

	cfg := config.Load()

	logLevel := slog.LevelInfo
	if cfg.Debug {
		logLevel = slog.LevelDebug
	}
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: logLevel,
	}))
	slog.SetDefault(logger)

	logger.Info("server starting",
		"environment", cfg.Environment,
		"port", cfg.Port,
	)

	storage, err := policy.Load()
	if err != nil {
		log.Fatalf("Failed to load storage policy: %v", err)
	}
	logger.Info("storage policy loaded",
		"allow_root_files", storage.AllowRootFiles,
		"parent_fallback", storage.ParentFallback,
		"delete_children", storage.DeleteChildren,
		"share_ttl_hours", storage.ShareTTLHours,
	)

	jwtVerifier, err := auth.NewJWTVerifier(cfg.JWKSURL, logger)
	if err != nil {
		log.Fatalf("Failed to create JWT verifier: %v", err)
	}
	defer jwtVerifier.Close()

	if err := migrations.Up(cfg.DatabaseURL); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}
	logger.Info("migrations applied")

	ctx := context.Background()
	pool, err := postgres.CreateConnectionPool(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("Failed to create connection pool: %v", err)
	}
	defer pool.Close()

	logger.Info("database connected",
		"max_conns", 25,
		"min_conns", 5,
	)

	// Repositories
	repoConfig := &postgres.RepositoryConfig{
		Pool:   pool,
		Logger: logger,
	}
	folderRepo := postgres.NewFolderRepository(repoConfig)
	fileRepo := postgres.NewFileRepository(repoConfig)
	shareRepo := postgres.NewShareTokenRepository(repoConfig)
	userRepo := postgres.NewUserRepository(repoConfig)
	txManager := postgres.NewTransactionManager(pool)

	// Blob store: S3 when a bucket is configured, in-memory otherwise
	var blobs services.BlobStore
	if cfg.BlobBucket != "" {
		blobs, err = blob.NewS3Store(ctx, cfg, logger)
		if err != nil {
			log.Fatalf("Failed to create blob store: %v", err)
		}
	} else {
		if cfg.Environment == "prod" {
			log.Fatalf("BLOB_BUCKET is required in prod")
		}
		logger.Warn("no blob bucket configured, uploads are held in memory")
		blobs = blob.NewMemoryStore(cfg.BaseURL + "/blobs")
	}

	// Services
	slugs := service.NewSlugChecker(folderRepo, fileRepo)
	folderService := service.NewFolderService(folderRepo, fileRepo, slugs, txManager, storage, logger)
	fileService := service.NewFileService(fileRepo, folderRepo, slugs, blobs, storage, logger)
	shareService := service.NewShareService(shareRepo, userRepo, storage, cfg.BaseURL, logger)
	userService := service.NewUserService(userRepo, logger)
	resolver := service.NewPathResolver(folderRepo, fileRepo)
	authorizer := serviceauth.NewOwnerAuthorizer(folderRepo, fileRepo)

	// Handlers
	userHandler := handler.NewUserHandler(userService, logger)
	folderHandler := handler.NewFolderHandler(folderService, logger)
	browseHandler := handler.NewBrowseHandler(resolver, folderService, authorizer, logger)
	fileHandler := handler.NewFileHandler(fileService, resolver, authorizer, logger)
	shareHandler := handler.NewShareHandler(shareService, logger)

	logger.Info("services initialized")

	// HTTP router (Go 1.22+ enhanced patterns)
	mux := http.NewServeMux()

	mux.HandleFunc("GET /health", handler.Health)

	mux.HandleFunc("POST /api/users", userHandler.Register)

	mux.HandleFunc("POST /api/shares", shareHandler.Issue)
	mux.HandleFunc("GET /share/{token}", shareHandler.Redeem)

	mux.HandleFunc("GET /api/folders", folderHandler.ListRoots)
	mux.HandleFunc("POST /api/folders", folderHandler.CreateFolder)
	mux.HandleFunc("POST /api/folders/delete", folderHandler.DeleteFolder)

	mux.HandleFunc("GET /api/browse/{path...}", browseHandler.Browse)

	mux.HandleFunc("POST /api/upload/{path...}", fileHandler.Upload)
	mux.HandleFunc("POST /api/files", fileHandler.CreateFile)
	mux.HandleFunc("POST /api/files/delete", fileHandler.DeleteFile)
	mux.HandleFunc("GET /api/files/{id}/download", fileHandler.Download)

	// Middleware chain, applied in reverse order
	// Order: CORS -> Recovery -> Auth -> Routes
	var root http.Handler = mux
	root = middleware.Auth(jwtVerifier, shareService)(root)
	root = middleware.Recovery(logger)(root)

	// CORS must run before auth to answer OPTIONS pre-flights
	corsHandler := cors.New(cors.Options{
		AllowedOrigins:   strings.Split(cfg.CORSOrigins, ","),
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Origin", "Content-Type", "Accept", "Authorization", middleware.ShareHeaderName},
		AllowCredentials: true,
	})
	root = corsHandler.Handler(root)

	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      root,
		ReadTimeout:  60 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	logger.Info("listening", "port", cfg.Port)
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatalf("Failed to start server: %v", err)
	}
}
