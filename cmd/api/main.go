package main

import (
	"context"
	"log"

	"studio-proof/config"
	"studio-proof/internal/handler"
	"studio-proof/internal/redis"
	"studio-proof/internal/repository"
	"studio-proof/internal/server"
	"studio-proof/internal/services"
	"studio-proof/internal/storage"
	"studio-proof/pkg/logger"
)

func main() {
	cfg := config.LoadConfig()

	l := logger.New(cfg.LogMode)
	logger.SetGlobalLogger(l)
	defer l.Sync()

	store := repository.NewStore(cfg.DataFile, l)
	if err := store.Load(); err != nil {
		log.Fatalf("Failed to load data file: %v", err)
	}

	blobs, uploadDir, err := newBlobStore(cfg)
	if err != nil {
		log.Fatalf("Failed to set up blob storage: %v", err)
	}

	var limiter *redis.RateLimiter
	if cfg.RateLimitEnabled() {
		client := redis.NewClient(redis.Config{
			Host:     cfg.RedisHost,
			Port:     cfg.RedisPort,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		if err := redis.Ping(context.Background(), client); err != nil {
			l.Warnf("Rate limiting stays on but redis is unreachable for now: %s", err)
		}
		limiter = redis.NewRateLimiter(client, redis.RateLimitConfig{ClientLimit: cfg.RateLimitPerMinute})
		defer client.Close()
	}

	sessionRepo := repository.NewSessionRepository(store)
	portfolioRepo := repository.NewPortfolioRepository(store)

	sessionService := services.NewSessionService(sessionRepo, blobs, l,
		services.WithThumbnailSize(uint(cfg.ThumbnailWidth)))
	portfolioService := services.NewPortfolioService(portfolioRepo, blobs, l)
	codeService := services.NewCodeService(sessionRepo)

	srv := server.New(cfg, l)
	srv.SetupRoutes(&server.Handlers{
		Session:   handler.NewSessionHandler(sessionService, codeService, l),
		Portfolio: handler.NewPortfolioHandler(portfolioService, l),
	}, server.Deps{
		Health:    store,
		Limiter:   limiter,
		UploadDir: uploadDir,
	})

	if err := srv.Start(); err != nil {
		log.Fatalf("Server exited with error: %v", err)
	}
}

// newBlobStore returns the configured store and, for the local driver, the
// directory to serve under /uploads.
func newBlobStore(cfg *config.Config) (storage.BlobStore, string, error) {
	switch cfg.StorageDriver {
	case config.StorageDriverS3:
		s3Store, err := storage.NewS3Store(context.Background(), storage.S3Config{
			Region:     cfg.S3.Region,
			Bucket:     cfg.S3.Bucket,
			AccessKey:  cfg.S3.AccessKey,
			SecretKey:  cfg.S3.SecretKey,
			Endpoint:   cfg.S3.Endpoint,
			PublicBase: cfg.S3.PublicBase,
			ACL:        cfg.S3.ACL,
		})
		if err != nil {
			return nil, "", err
		}
		return s3Store, "", nil
	default:
		local, err := storage.NewLocalStore(cfg.UploadDir, cfg.UploadsBaseURL())
		if err != nil {
			return nil, "", err
		}
		return local, local.Dir(), nil
	}
}
