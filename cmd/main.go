package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/overdrivepermits/permit-service/internal/handler"
	"github.com/overdrivepermits/permit-service/internal/mailer"
	"github.com/overdrivepermits/permit-service/internal/middleware"
	"github.com/overdrivepermits/permit-service/internal/scheduler"
	"github.com/overdrivepermits/permit-service/internal/service"
	"github.com/overdrivepermits/permit-service/internal/shared/config"
	"github.com/overdrivepermits/permit-service/internal/shared/logger"
)

func main() {
	// .env is optional; deployments configure through the environment
	_ = godotenv.Load()

	log := logger.NewLogger()
	defer log.Sync()

	log.Info("Starting Permit Request Service...")

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatal("Failed to load configuration", "error", err)
	}

	// Initialize services
	permitService := service.NewPermitService(cfg, mailer.Resolve, log)
	permitHandler := handler.NewPermitHandler(permitService, mailer.Resolve, cfg, log)

	// Periodic SMTP connectivity check feeding the smtp_up gauge
	transportChecker := scheduler.NewTransportChecker(cfg.SMTP, mailer.Resolve, log)
	if err := transportChecker.Start(); err != nil {
		log.Error("Failed to start transport checker", "error", err)
	}
	defer transportChecker.Stop()

	// Initialize rate limiter
	rateLimiter := middleware.NewClientRateLimiter(cfg.RateLimit.RPS, cfg.RateLimit.Burst)

	// Setup Gin router
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(gin.Logger())

	// The marketing site runs on a separate origin and POSTs the form here
	corsConfig := cors.DefaultConfig()
	if len(cfg.Server.AllowedOrigins) > 0 {
		corsConfig.AllowOrigins = cfg.Server.AllowedOrigins
	} else {
		corsConfig.AllowAllOrigins = true
	}
	router.Use(cors.New(corsConfig))

	// Health check endpoints
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "healthy"})
	})
	router.GET("/ready", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ready"})
	})

	// Metrics endpoint
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// API routes
	api := router.Group("/api")
	{
		api.POST("/permit", middleware.RateLimitMiddleware(rateLimiter), permitHandler.SubmitPermit)
		api.GET("/permit/test", permitHandler.TestTransport)
	}

	srv := &http.Server{
		Addr:    ":" + cfg.Server.Port,
		Handler: router,
	}

	// Start server in goroutine
	go func() {
		log.Info("Permit Request Service started", "port", cfg.Server.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Failed to start server", "error", err)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down Permit Request Service...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Error("Server forced to shutdown", "error", err)
	}

	log.Info("Permit Request Service stopped")
}
