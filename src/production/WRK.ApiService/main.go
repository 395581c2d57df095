package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"gitlab.com/maplesense1/wrk.registration_server/src/production/WRK.ApiService/controllers"
	container "gitlab.com/maplesense1/wrk.registration_server/src/production/WRK.Container"
	implementation "gitlab.com/maplesense1/wrk.registration_server/src/production/WRK.Repository/Implementation"

	// Service imports
	authService "gitlab.com/maplesense1/wrk.registration_server/src/production/WRK.ApiService/implementation/auth"
	jwt "gitlab.com/maplesense1/wrk.registration_server/src/production/WRK.ApiService/implementation/jwt"
	"gitlab.com/maplesense1/wrk.registration_server/src/production/WRK.ApiService/implementation/registration"
	"gitlab.com/maplesense1/wrk.registration_server/src/production/WRK.ApiService/middleware"
	config "gitlab.com/maplesense1/wrk.registration_server/src/production/WRK.Config"
	api_models "gitlab.com/maplesense1/wrk.registration_server/src/production/WRK.Models/api"
)

func main() {
	// Initialize dependency injection container
	ctr, err := container.NewApiContainer()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize container: %v\n", err)
		os.Exit(1)
	}

	logger := ctr.GetLogger()
	logger.Info("Starting Workshop Registration API")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := ctr.InitializeDatabase(ctx); err != nil {
		logger.FatalWithError(err, "Failed to initialize database")
	}

	db, err := ctr.GetDatabase()
	if err != nil {
		logger.FatalWithError(err, "Failed to get database connection")
	}

	healthChecker, err := ctr.GetHealthChecker()
	if err != nil {
		logger.FatalWithError(err, "Failed to create health checker")
	}

	rateLimiter, err := ctr.GetRateLimiter(ctx)
	if err != nil {
		logger.FatalWithError(err, "Failed to initialize rate limiter")
	}

	registrationNotifier, err := ctr.GetNotifier()
	if err != nil {
		logger.FatalWithError(err, "Failed to initialize registration notifier")
	}

	// Create repositories
	adminRepo := implementation.NewMongoAdminRepository(db)
	registrationRepo := implementation.NewMongoRegistrationRepository(db)

	cfg := ctr.GetConfig()

	jwtService := jwt.NewService(api_models.Config{
		SecretKey:     cfg.Auth.JWTSecret,
		TokenDuration: cfg.Auth.TokenDuration,
	})
	authMiddleware := middleware.NewAuthMiddleware(jwtService, logger)

	authServiceInstance := authService.NewAuthService(adminRepo, jwtService)
	registrationService := registration.NewRegistrationService(registrationRepo, registrationNotifier, logger)

	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(middleware.RequestID())
	router.Use(middleware.AccessLog(logger.WithComponent("http")))
	router.Use(middleware.Recovery(logger))
	router.Use(cors.New(corsConfig(cfg.CORS)))

	// Create controllers and register routes
	controllers.NewHealthController(healthChecker, logger).RegisterRoutes(router)
	controllers.NewRegistrationController(registrationService, rateLimiter, logger).RegisterRoutes(router)
	controllers.NewAdminController(authServiceInstance, registrationService, rateLimiter, logger).RegisterRoutes(router, authMiddleware)

	port := cfg.Server.Port

	// Create HTTP server with timeouts
	srv := &http.Server{
		Addr:         ":" + port,
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	// Start HTTP server in a goroutine
	go func() {
		logger.Info("HTTP server starting on port " + port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.FatalWithError(err, "Failed to start HTTP server")
		}
	}()

	// Wait for shutdown signal
	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
	<-sig

	logger.Info("Shutting down...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.ErrorWithError(err, "Server forced to shutdown")
	}
	_ = ctr.Shutdown(shutdownCtx)
}

func corsConfig(c config.CORSConfig) cors.Config {
	corsCfg := cors.Config{
		AllowMethods: c.AllowedMethods,
		AllowHeaders: c.AllowedHeaders,
		MaxAge:       time.Duration(c.MaxAge) * time.Second,
	}
	if c.AllowAllOrigins() {
		corsCfg.AllowAllOrigins = true
	} else {
		corsCfg.AllowOrigins = c.AllowedOrigins
	}
	return corsCfg
}
