package main

import (
	"log"
	"os"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/BruksfildServices01/altegio-mcp-gateway/internal/config"
	"github.com/BruksfildServices01/altegio-mcp-gateway/internal/logging"
	"github.com/BruksfildServices01/altegio-mcp-gateway/internal/routes"
)

func main() {

	cfg := config.Load()

	logger, err := logging.New()
	if err != nil {
		log.Fatalf("failed to build logger: %v", err)
	}
	defer logger.Sync()

	if !cfg.HasCompany() {
		// Tool calls will fail uniformly until COMPANY_ID is set; the
		// process still starts so health checks keep working.
		logger.Warn("COMPANY_ID is not configured")
	}

	if os.Getenv("APP_ENV") != "development" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())

	routes.RegisterRoutes(r, cfg, logger)

	logger.Info("MCP server running", zap.String("addr", cfg.Addr()))
	if err := r.Run(cfg.Addr()); err != nil {
		logger.Fatal("failed to start server", zap.Error(err))
	}
}
