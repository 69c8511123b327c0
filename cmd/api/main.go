package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/thabob/bakkieassets/internal/account"
	"github.com/thabob/bakkieassets/internal/config"
	"github.com/thabob/bakkieassets/internal/logger"
	"github.com/thabob/bakkieassets/internal/server"
	"github.com/thabob/bakkieassets/internal/storage"
	"github.com/thabob/bakkieassets/internal/upload"
)

func main() {
	_ = godotenv.Load()

	logg, err := logger.Init(os.Getenv("BAKKIE_LOG_LEVEL"))
	if err != nil {
		panic("init logger: " + err.Error())
	}
	defer logg.Sync()

	cfg, err := config.Load()
	if err != nil {
		logg.Fatal("load config", zap.Error(err))
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	deps := server.Dependencies{Config: cfg, Logger: logg}

	var uploadRepo upload.RecordStore
	var accountRepo account.UserStore

	switch cfg.Store.Driver {
	case config.StoreDriverPostgres:
		pool, err := storage.NewPostgresPool(ctx, cfg.Postgres)
		if err != nil {
			logg.Fatal("connect postgres", zap.Error(err))
		}
		defer pool.Close()

		if err := storage.EnsureSchema(ctx, pool); err != nil {
			logg.Fatal("ensure schema", zap.Error(err))
		}

		deps.DB = pool
		uploadRepo = upload.NewPostgresRepository(pool)
		accountRepo = account.NewPostgresRepository(pool)
	default:
		logg.Warn("using in-memory metadata store, records are lost on restart")
		uploadRepo = upload.NewMemoryRepository()
		accountRepo = account.NewMemoryRepository()
	}

	var blobs upload.BlobStore
	switch cfg.Blob.Driver {
	case config.BlobDriverMinIO:
		client, err := storage.NewMinIOClient(cfg.MinIO)
		if err != nil {
			logg.Fatal("connect minio", zap.Error(err))
		}
		if err := storage.EnsureBucket(ctx, client, cfg.MinIO.Bucket, cfg.MinIO.Region); err != nil {
			logg.Fatal("ensure bucket", zap.Error(err))
		}
		blobs = upload.NewMinIOStore(client, cfg.MinIO.Bucket)
	default:
		diskStore, err := upload.NewDiskStore(cfg.Blob.UploadsDir)
		if err != nil {
			logg.Fatal("prepare uploads directory", zap.Error(err))
		}
		blobs = diskStore
	}

	deps.Blobs = blobs
	deps.UploadService = upload.NewService(uploadRepo, blobs, cfg.Blob.MaxFileSize, logg)

	if cfg.Accounts.BootstrapUsername != "" {
		accounts := account.NewService(accountRepo, cfg.Accounts.BcryptCost)
		_, err := accounts.Register(ctx, cfg.Accounts.BootstrapUsername, cfg.Accounts.BootstrapPassword)
		switch {
		case err == nil:
			logg.Info("bootstrap account created", zap.String("username", cfg.Accounts.BootstrapUsername))
		case errors.Is(err, account.ErrUsernameTaken):
			// already seeded on a previous start
		default:
			logg.Fatal("bootstrap account", zap.Error(err))
		}
	}

	router := server.NewRouter(deps)

	httpServer := &http.Server{
		Addr:         cfg.Server.Address(),
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	go func() {
		logg.Info("bakkieassets API listening", zap.String("address", cfg.Server.Address()))
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logg.Fatal("http server", zap.Error(err))
		}
	}()

	<-ctx.Done()
	stop()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	logg.Info("shutting down gracefully")
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		logg.Error("shutdown error", zap.Error(err))
	}
}
