package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"loanlink-backend/config"
	"loanlink-backend/controllers"
	"loanlink-backend/database"
	"loanlink-backend/middleware"
	"loanlink-backend/repository"
	"loanlink-backend/routes"
	"loanlink-backend/services"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

func main() {
	// Load .env file (optional, falls back to system env)
	_ = godotenv.Load()

	cfg, err := config.LoadConfig()
	if err != nil {
		// Logger choice depends on config, so config errors go straight out.
		os.Stderr.WriteString("configuration error: " + err.Error() + "\n")
		os.Exit(1)
	}

	var logger *zap.Logger
	if cfg.Env == "production" {
		logger, err = zap.NewProduction()
	} else {
		logger, err = zap.NewDevelopment()
	}
	if err != nil {
		panic("failed to initialize logger: " + err.Error())
	}
	defer logger.Sync()
	zap.ReplaceGlobals(logger)

	if cfg.ServiceAccount != nil {
		logger.Info("Firebase service account key loaded",
			zap.String("client_email", cfg.ServiceAccount.ClientEmail))
	}

	if err := database.Connect(cfg.MongoURI, cfg.MongoDB); err != nil {
		logger.Fatal("Failed to connect to MongoDB", zap.Error(err))
	}

	// --- Dependency injection ---

	loanRepo := repository.NewLoanRepository(database.DB)
	userRepo := repository.NewUserRepository(database.DB)
	applicationRepo := repository.NewApplicationRepository(database.DB)

	checkout := services.NewStripeCheckout(cfg.StripeSecretKey)
	paymentService := services.NewPaymentService(applicationRepo, checkout, cfg.PublicAppOrigin, logger)

	loanController := controllers.NewLoanController(loanRepo)
	userController := controllers.NewUserController(userRepo)
	applicationController := controllers.NewApplicationController(applicationRepo)
	paymentController := controllers.NewPaymentController(paymentService)

	// --- HTTP server & middleware ---

	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestLogger())

	// Bound each request; in-flight store writes still complete.
	r.Use(func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 30*time.Second)
		defer cancel()
		c.Request = c.Request.WithContext(ctx)
		c.Next()
	})

	routes.RegisterRoutes(r, loanController, userController, applicationController, paymentController, cfg.AdminAPIToken)

	// --- Graceful shutdown ---

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: r,
	}

	go func() {
		logger.Info("LoanLink server starting", zap.String("port", cfg.Port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("Shutting down LoanLink server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Fatal("Server forced to shutdown", zap.Error(err))
	}

	if err := database.Close(); err != nil {
		logger.Error("Failed to close MongoDB", zap.Error(err))
	}

	logger.Info("LoanLink server stopped gracefully")
}
