package main

import (
	"context"
	"net/http"
	"os"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"

	"github.com/innovatelu/docstore/internal/config"
	"github.com/innovatelu/docstore/internal/database"
	"github.com/innovatelu/docstore/internal/document/cache"
	"github.com/innovatelu/docstore/internal/document/handler"
	"github.com/innovatelu/docstore/internal/document/repository"
	"github.com/innovatelu/docstore/internal/document/service"
	"github.com/innovatelu/docstore/internal/export"
	"github.com/innovatelu/docstore/pkg/logger"
	"github.com/innovatelu/docstore/pkg/metrics"
	"github.com/innovatelu/docstore/pkg/middleware"
)

func main() {
	// initialize logging (can be controlled with LOG_LEVEL env: debug|info|warn|error|fatal)
	logger.Init(os.Getenv("LOG_LEVEL"))

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Fatalf("failed to load config: %v", err)
	}
	logger.Init(cfg.LogLevel)
	logger.Infof("config loaded: mongo=%v redis=%v minio=%v", cfg.MongoDB.URI != "", cfg.Redis.Host != "", cfg.MinIO.Endpoint != "")

	r := gin.New()
	r.Use(gin.Logger(), gin.Recovery())

	// Connect to Redis early so both the cache and the rate limiter can use it
	var rdb *redis.Client
	if cfg.Redis.Host != "" {
		rdb = redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Host + ":" + cfg.Redis.Port,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err := rdb.Ping(context.Background()).Err(); err != nil {
			logger.Warnf("failed to connect to Redis (%s:%s): %v", cfg.Redis.Host, cfg.Redis.Port, err)
			rdb = nil
		} else {
			logger.Infof("connected to Redis: %s:%s", cfg.Redis.Host, cfg.Redis.Port)
		}
	}

	if cfg.RateLimit.Enabled {
		if cfg.RateLimit.UseRedis && rdb != nil {
			win := time.Duration(cfg.RateLimit.WindowSeconds) * time.Second
			r.Use(middleware.RedisRateLimitMiddleware(rdb, cfg.RateLimit.RPS, cfg.RateLimit.Burst, win))
		} else {
			r.Use(middleware.RateLimitMiddleware(cfg.RateLimit.RPS, cfg.RateLimit.Burst))
		}
	}

	// Repository selection: Mongo when configured and reachable, memory otherwise
	var repo repository.Repository = repository.NewMemoryRepo()
	if cfg.MongoDB.URI != "" {
		client, err := database.ConnectMongo(context.Background(), cfg.MongoDB.URI, cfg.MongoDB.Timeout)
		if err != nil {
			logger.Warnf("cannot connect to MongoDB (%v), using memory-backed repository", err)
		} else {
			repo = repository.NewMongoRepo(client.Database(cfg.MongoDB.Database).Collection("documents"))
			logger.Infof("using MongoDB-backed repository: db=%s", cfg.MongoDB.Database)
		}
	}
	if rdb != nil {
		repo = cache.New(repo, rdb, cfg.Redis.CacheTTL)
		logger.Infof("document cache enabled: ttl=%s", cfg.Redis.CacheTTL)
	}

	svc := service.New(repo)
	handler.RegisterDocumentRoutes(r, svc)

	if cfg.MinIO.Endpoint != "" {
		exp, err := export.NewMinIOExporter(export.Config{
			Endpoint:  cfg.MinIO.Endpoint,
			AccessKey: cfg.MinIO.AccessKey,
			SecretKey: cfg.MinIO.SecretKey,
			UseSSL:    cfg.MinIO.UseSSL,
			Bucket:    cfg.MinIO.Bucket,
		})
		if err != nil {
			logger.Warnf("snapshot export disabled: %v", err)
		} else {
			handler.RegisterExportRoute(r, svc, exp)
			logger.Infof("snapshot export enabled: bucket=%s", cfg.MinIO.Bucket)
		}
	}

	reg := prometheus.NewRegistry()
	metrics.RegisterCollectors(reg)
	r.GET("/metrics", gin.WrapH(promhttp.HandlerFor(reg, promhttp.HandlerOpts{})))

	r.GET("/health", func(c *gin.Context) {
		c.String(http.StatusOK, "healthy")
	})

	addr := cfg.Server.Host + ":" + cfg.Server.Port
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}
	logger.Infof("docstore listening on %s", addr)
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Fatalf("server: %v", err)
	}
}
