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
	"github.com/sirupsen/logrus"

	"github.com/cit-transit/btts-backend/internal/config"
	"github.com/cit-transit/btts-backend/internal/database"
	"github.com/cit-transit/btts-backend/internal/handlers"
	"github.com/cit-transit/btts-backend/internal/middleware"
	"github.com/cit-transit/btts-backend/internal/models"
	"github.com/cit-transit/btts-backend/internal/services"
	"github.com/cit-transit/btts-backend/pkg/jwt"
)

var (
	version   = "1.0.0"
	buildTime = "unknown"
)

func main() {
	// Initialize logger
	logger := logrus.New()
	logger.SetFormatter(&logrus.JSONFormatter{})
	logger.SetOutput(os.Stdout)

	logger.Info("Starting Bus Ticket Transaction System Backend")
	logger.Infof("Version: %s, Build Time: %s", version, buildTime)

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		logger.Fatalf("Failed to load configuration: %v", err)
	}

	// Set log level
	logLevel, err := logrus.ParseLevel(cfg.Server.LogLevel)
	if err != nil {
		logger.Warn("Invalid log level, using INFO")
		logLevel = logrus.InfoLevel
	}
	logger.SetLevel(logLevel)

	// Set Gin mode
	if cfg.Server.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	} else {
		gin.SetMode(gin.DebugMode)
	}

	// Initialize database connection
	logger.Info("Connecting to database...")
	db, err := database.NewConnection(cfg.Database)
	if err != nil {
		logger.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	if err := db.Ping(); err != nil {
		logger.Fatalf("Failed to ping database: %v", err)
	}
	logger.Info("Database connection established")

	// Initialize repositories
	busRepo := database.NewBusRepository(db)
	routeRepo := database.NewRouteRepository(db)
	userRepo := database.NewUserRepository(db)
	tripRepo := database.NewTripRepository(db)
	seatRepo := database.NewSeatRepository(db)
	ticketRepo := database.NewTicketRepository(db)
	paymentRepo := database.NewPaymentRepository(db)

	// Initialize services
	jwtService := jwt.NewService(cfg.JWT.Secret, cfg.JWT.AccessTokenExpiry)
	seatService := services.NewSeatService(db, seatRepo, tripRepo, logger)
	tripService := services.NewTripService(tripRepo, busRepo, routeRepo, ticketRepo, logger)
	ticketService := services.NewTicketService(db, ticketRepo, seatRepo, paymentRepo, userRepo, seatService, tripService, logger)
	bookingService := services.NewBookingService(db, tripRepo, userRepo, ticketRepo, paymentRepo, seatService, ticketService, logger)
	paymentService := services.NewPaymentService(db, paymentRepo, ticketRepo, seatRepo, logger)
	logger.Info("Services initialized")

	// Initialize handlers
	ticketHandler := handlers.NewTicketHandler(bookingService, ticketService)
	paymentHandler := handlers.NewPaymentHandler(paymentService)
	seatHandler := handlers.NewSeatHandler(seatService)
	tripHandler := handlers.NewTripHandler(tripService, seatService)

	// Initialize Gin router
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestLogger(logger))

	// CORS configuration
	corsConfig := cors.Config{
		AllowOrigins:     cfg.CORS.AllowedOrigins,
		AllowMethods:     cfg.CORS.AllowedMethods,
		AllowHeaders:     cfg.CORS.AllowedHeaders,
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
	router.Use(cors.New(corsConfig))

	// Health check endpoint
	router.GET("/health", healthCheckHandler(db))

	// API v1 routes
	v1 := router.Group("/api/v1")
	v1.Use(middleware.AuthMiddleware(jwtService))
	{
		staffOnly := middleware.RequireRole(models.RoleTicketStaff, models.RoleTransitAdmin)

		tickets := v1.Group("/tickets")
		{
			tickets.POST("/cash", staffOnly, ticketHandler.BookCash)
			tickets.POST("/online", ticketHandler.BookOnline)
			tickets.GET("", staffOnly, ticketHandler.ListTickets)
			tickets.GET("/:id", ticketHandler.GetTicket)
			tickets.GET("/:id/payments", paymentHandler.ListTicketPayments)
			tickets.PUT("/:id", staffOnly, ticketHandler.UpdateTicket)
			tickets.DELETE("/:id", staffOnly, ticketHandler.DeleteTicket)
		}

		payments := v1.Group("/payments")
		{
			payments.POST("", staffOnly, paymentHandler.CreatePayment)
			payments.GET("/:id", paymentHandler.GetPayment)
			payments.PATCH("/:id/status", staffOnly, paymentHandler.UpdateStatus)
			payments.DELETE("/:id", middleware.RequireRole(models.RoleTransitAdmin), paymentHandler.DeletePayment)
		}

		trips := v1.Group("/trips")
		{
			trips.GET("/:id", tripHandler.GetTrip)
			trips.GET("/:id/available-seats", tripHandler.GetAvailableSeats)
			trips.GET("/:id/seats", tripHandler.ListTripSeats)
		}

		seats := v1.Group("/seats")
		{
			seats.PUT("/:id", staffOnly, seatHandler.Reposition)
			seats.PATCH("/:id/status", staffOnly, seatHandler.UpdateStatus)
		}

		v1.GET("/users/:id/tickets", ticketHandler.ListUserTickets)
		v1.GET("/me/tickets", ticketHandler.ListMyTickets)
	}

	// Create HTTP server
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.Server.Port),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in a goroutine
	go func() {
		logger.Infof("Server starting on port %s", cfg.Server.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatalf("Failed to start server: %v", err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Errorf("Server forced to shutdown: %v", err)
	}

	logger.Info("Server exited successfully")
}

// healthCheckHandler reports process and database health
func healthCheckHandler(db database.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := db.Ping(); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"status":   "unhealthy",
				"database": "unhealthy",
				"error":    err.Error(),
			})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"status":    "healthy",
			"database":  "healthy",
			"version":   version,
			"timestamp": time.Now().Unix(),
		})
	}
}
