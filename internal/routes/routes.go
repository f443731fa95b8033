package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"

	"github.com/BruksfildServices01/altegio-mcp-gateway/internal/altegio"
	"github.com/BruksfildServices01/altegio-mcp-gateway/internal/audit"
	"github.com/BruksfildServices01/altegio-mcp-gateway/internal/config"
	"github.com/BruksfildServices01/altegio-mcp-gateway/internal/mcp"
	"github.com/BruksfildServices01/altegio-mcp-gateway/internal/middleware"
	"github.com/BruksfildServices01/altegio-mcp-gateway/internal/timezone"
	ucAvailability "github.com/BruksfildServices01/altegio-mcp-gateway/internal/usecase/availability"
	ucBooking "github.com/BruksfildServices01/altegio-mcp-gateway/internal/usecase/booking"
)

func RegisterRoutes(r *gin.Engine, cfg *config.Config, logger *zap.Logger) {

	// ======================================================
	// MIDDLEWARE
	// ======================================================
	r.Use(middleware.CORSMiddleware())
	r.Use(middleware.RequestLogger(logger))

	if cfg.RedisAddr != "" {
		rdb := redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		limiter := middleware.NewRateLimiter(rdb, cfg.RateLimitPerMinute, logger)
		r.Use(limiter.Middleware())
		logger.Info("rate limiting enabled",
			zap.String("redis_addr", cfg.RedisAddr),
			zap.Int("per_minute", cfg.RateLimitPerMinute),
		)
	}

	// ======================================================
	// UPSTREAM CLIENT
	// ======================================================
	client := altegio.NewClient(altegio.ClientOptions{
		BaseURL:      cfg.APIBase,
		CompanyID:    cfg.CompanyID,
		PartnerToken: cfg.PartnerToken,
		UserToken:    cfg.UserToken,
		Timeout:      cfg.UpstreamTimeout,
		Logger:       logger,
	})

	loc := timezone.Location(cfg.Timezone)

	// ======================================================
	// USE CASES
	// ======================================================
	freeSlotsUC := ucAvailability.NewGetFreeSlots(client, loc)
	reallyFreeUC := ucAvailability.NewReallyFreeAtTime(client, freeSlotsUC, cfg.UpstreamTimeout, logger)
	createRecordUC := ucBooking.NewCreateRecord(client, logger)

	// ======================================================
	// HANDLERS
	// ======================================================
	auditDispatcher := audit.NewDispatcher(logger)

	dispatcher := mcp.NewDispatcher(cfg, client, freeSlotsUC, reallyFreeUC, createRecordUC, auditDispatcher)
	handler := mcp.NewHandler(dispatcher, logger)

	r.GET("/health", handler.HandleHealth)
	r.GET("/capabilities", handler.HandleCapabilities)
	r.POST("/", handler.HandleJSONRPC)
}
