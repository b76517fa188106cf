package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/ukfreewill/will-service/handlers"
	"github.com/ukfreewill/will-service/internal/archive"
	"github.com/ukfreewill/will-service/internal/config"
	"github.com/ukfreewill/will-service/internal/database"
	"github.com/ukfreewill/will-service/internal/payment"
	"github.com/ukfreewill/will-service/internal/snapshot"
	"github.com/ukfreewill/will-service/internal/wizard"
	"github.com/ukfreewill/will-service/pkg/logger"
	"github.com/ukfreewill/will-service/pkg/metrics"
	"github.com/ukfreewill/will-service/pkg/middleware"
)

var startTime = time.Now()

func main() {
	// initialize logging (can be controlled with LOG_LEVEL env: debug|info|warn|error|fatal)
	logger.Init(os.Getenv("LOG_LEVEL"))
	logger.Debugf("startup: LOG_LEVEL=%s", logger.LevelString())

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Fatalf("failed to load config: %v", err)
	}
	logger.Infof("config loaded: redis=%v mongo=%v minio=%v", cfg.Redis.Host != "", cfg.MongoDB.URI != "", cfg.MinIO.Endpoint != "")

	r := gin.New()

	// Lightweight CORS middleware for dev/test: set common headers and respond to OPTIONS.
	// (Keep this intentionally simple; production should use a stricter policy.)
	r.Use(func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PATCH, DELETE, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Origin, Content-Type, Accept, Authorization")
		c.Writer.Header().Set("Access-Control-Expose-Headers", "Content-Length")
		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(200)
			return
		}
		c.Next()
	})

	// Global middlewares: logging + crash boundary
	r.Use(gin.Logger(), middleware.Recovery())

	// Connect to Redis early so the snapshot slot and the rate-limiter can use it
	var redisClient *redis.Client
	if cfg.Redis.Host != "" {
		redisClient = redis.NewClient(&redis.Options{Addr: cfg.Redis.Host + ":" + cfg.Redis.Port, Password: cfg.Redis.Password})
		if err := redisClient.Ping(context.Background()).Err(); err != nil {
			logger.Warnf("failed to connect to Redis (%s:%s): %v", cfg.Redis.Host, cfg.Redis.Port, err)
			redisClient = nil
		} else {
			logger.Infof("Connected to Redis: %s:%s", cfg.Redis.Host, cfg.Redis.Port)
		}
	}

	// Optional global rate limiter (per-session when routed, otherwise per-IP)
	if cfg.RateLimit.Enabled {
		if cfg.RateLimit.UseRedis && redisClient != nil {
			win := time.Duration(cfg.RateLimit.WindowSeconds) * time.Second
			r.Use(middleware.RedisRateLimitMiddleware(redisClient, cfg.RateLimit.RPS, cfg.RateLimit.Burst, win))
		} else {
			r.Use(middleware.RateLimitMiddleware(cfg.RateLimit.RPS, cfg.RateLimit.Burst))
		}
	}

	// Snapshot slot: Redis when available, process memory otherwise. The
	// memory fallback loses pending snapshots on restart, which degrades to
	// the documented no-snapshot path.
	var snapshots snapshot.Repository
	if redisClient != nil {
		snapshots = snapshot.NewRedisRepository(redisClient, cfg.Payment.SnapshotPrefix, cfg.Payment.SnapshotTTL)
		logger.Infof("Using Redis for pending-will snapshots")
	} else {
		snapshots = snapshot.NewMemoryRepository()
		logger.Warnf("Redis unavailable; pending-will snapshots held in memory only")
	}

	// Donation ledger: Mongo when configured (retry/backoff to tolerate
	// startup races), in-memory otherwise.
	ctx := context.Background()
	var donations payment.Repository = payment.NewMemoryRepository()
	if cfg.MongoDB.URI != "" {
		const maxAttempts = 5
		backoff := time.Second
		var client *mongo.Client
		var errConn error
		for attempt := 1; attempt <= maxAttempts; attempt++ {
			client, errConn = database.ConnectMongo(ctx, cfg.MongoDB.URI, cfg.MongoDB.Timeout)
			if errConn == nil {
				break
			}
			logger.Warnf("attempt %d/%d: failed to connect to MongoDB: %v", attempt, maxAttempts, errConn)
			if attempt < maxAttempts {
				time.Sleep(backoff)
				backoff *= 2
			}
		}
		if errConn != nil {
			logger.Warnf("could not connect to MongoDB after %d attempts: %v", maxAttempts, errConn)
		} else {
			defer func() { _ = client.Disconnect(ctx) }()
			col := client.Database(cfg.MongoDB.Database).Collection("donations")
			donations = payment.NewMongoRepository(col)
			logger.Infof("Using MongoDB for the donation ledger")
		}
	}
	ledger := payment.NewLedger(donations)

	// Optional completed-will archive
	var arch *archive.Archive
	if cfg.MinIO.Endpoint != "" {
		a, err := archive.New(&cfg.MinIO)
		if err != nil {
			logger.Warnf("failed to initialize will archive: %v", err)
		} else {
			arch = a
			logger.Infof("Using MinIO for the completed-will archive")
		}
	}

	sessions := wizard.NewStore()
	defer sessions.Close()
	gate := payment.NewGate(snapshots, ledger, cfg.Payment.VerifyDelay)

	// Basic health endpoint
	r.GET("/health", func(c *gin.Context) {
		c.String(http.StatusOK, "healthy")
	})

	// readiness endpoint: report dependency availability; only Redis loss
	// degrades (memory fallbacks cover the rest)
	r.GET("/ready", func(c *gin.Context) {
		deps := map[string]bool{
			"redis":   redisClient != nil || cfg.Redis.Host == "",
			"archive": arch != nil || cfg.MinIO.Endpoint == "",
		}
		ready := deps["redis"]
		status := http.StatusOK
		state := "ready"
		if !ready {
			status = http.StatusServiceUnavailable
			state = "not_ready"
		}
		c.JSON(status, gin.H{"status": state, "deps": deps, "sessions": sessions.Len(), "uptime": fmt.Sprintf("%s", time.Since(startTime))})
	})

	api := r.Group("/api/v1")
	handlers.NewWizardHandler(cfg, sessions, snapshots, gate, arch).Register(api)
	handlers.NewAdminHandler(cfg, ledger).Register(api)
	handlers.RegisterStorefrontRoutes(api)

	// Expose Prometheus metrics
	metrics.RegisterCollectors(prometheus.DefaultRegisterer)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	addr := fmt.Sprintf("%s:%s", cfg.Server.Host, cfg.Server.Port)
	logger.Infof("Config summary: redis=%v mongo=%v minio=%v admin_password_set=%v jwt_secret_set=%v",
		redisClient != nil, cfg.MongoDB.URI != "", arch != nil, cfg.Admin.Password != "", cfg.JWT.Secret != "")
	logger.Infof("Starting will wizard service on %s", addr)
	if err := r.Run(addr); err != nil {
		logger.Fatalf("server failed: %v", err)
	}
}
