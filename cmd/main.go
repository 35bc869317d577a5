package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"fanclub-backend/internal/auth"
	"fanclub-backend/internal/config"
	"fanclub-backend/internal/database"
	"fanclub-backend/internal/handlers"
	"fanclub-backend/internal/jobs"
	"fanclub-backend/internal/repository"
	"fanclub-backend/internal/services"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize JWT
	auth.InitJWT(cfg.App.JWTSecret)

	// Connect to database
	if err := database.Connect(cfg.GetDSN()); err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	// Run migrations
	if err := database.AutoMigrate(); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	// Initialize repository
	repo := repository.NewRepository(database.GetDB())

	// Initialize services
	memberService := services.NewMemberService(database.GetDB(), cfg.App.InitialPoints)
	bettingService := services.NewBettingService(repo)
	settlementService := services.NewSettlementService(repo)
	attendanceService := services.NewAttendanceService(database.GetDB(), cfg.App.AttendancePoints)
	noticeService := services.NewNoticeService(database.GetDB())
	gameService := services.NewGameService(database.GetDB())
	adminService := services.NewAdminService(database.GetDB())

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(memberService)
	memberHandler := handlers.NewMemberHandler(memberService)
	bettingHandler := handlers.NewBettingHandler(bettingService, settlementService)
	attendanceHandler := handlers.NewAttendanceHandler(attendanceService)
	noticeHandler := handlers.NewNoticeHandler(noticeService)
	gameHandler := handlers.NewGameHandler(gameService)
	adminHandler := handlers.NewAdminHandler(adminService)

	// Start game progress job (display-only schedule refresh)
	progressJob := jobs.NewGameProgressJob(gameService, 1*time.Minute)
	go progressJob.Start()
	defer progressJob.Stop()

	// Set up Gin router
	router := gin.Default()

	// CORS middleware
	allowedOrigins := []string{
		"http://localhost:3000",
		"http://localhost:5173",
		"http://127.0.0.1:3000",
		"http://127.0.0.1:5173",
	}
	if frontendURL := os.Getenv("FRONTEND_URL"); frontendURL != "" {
		allowedOrigins = append(allowedOrigins, frontendURL)
	}

	router.Use(cors.New(cors.Config{
		AllowOrigins:     allowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS", "PATCH"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", "Accept", "X-Requested-With"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	// Health check endpoint
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status": "ok",
			"time":   time.Now().Format(time.RFC3339),
		})
	})

	// Authentication routes (public)
	authRoutes := router.Group("/auth")
	{
		authRoutes.POST("/register", authHandler.Register)
		authRoutes.POST("/login", authHandler.Login)
	}

	// Authenticated /auth/me route
	authProtected := router.Group("/auth")
	authProtected.Use(auth.AuthMiddleware())
	{
		authProtected.GET("/me", authHandler.GetMe)
	}

	// Public read routes
	router.GET("/api/notices", noticeHandler.ListNotices)
	router.GET("/api/notices/:id", noticeHandler.GetNotice)
	router.GET("/api/games/:date", gameHandler.ListGames)
	router.GET("/api/betting/status", bettingHandler.Status)
	router.GET("/api/betting/sessions/:date", bettingHandler.GetSessions)

	// API routes (protected)
	api := router.Group("/api")
	api.Use(auth.AuthMiddleware())
	{
		// Member endpoints
		memberRoutes := api.Group("/members")
		{
			memberRoutes.GET("/profile", memberHandler.GetProfile)
			memberRoutes.GET("/points/history", memberHandler.GetPointHistory)
		}

		// Attendance endpoints
		api.POST("/attendance/check-in", attendanceHandler.CheckIn)
		api.GET("/attendance", attendanceHandler.GetAttendance)

		// Betting endpoints
		api.POST("/betting/predict", bettingHandler.Predict)
		api.GET("/betting/sessions/:date/wagers/:sessionId", bettingHandler.GetSessionWagers)
		api.GET("/betting/results/:sessionId", bettingHandler.GetSessionResult)
	}

	// Admin routes (protected + admin only)
	admin := router.Group("/api/admin")
	admin.Use(auth.AuthMiddleware())
	admin.Use(auth.AdminMiddleware())
	{
		// Betting operation
		admin.POST("/betting/activate", bettingHandler.Activate)
		admin.POST("/betting/deactivate", bettingHandler.Deactivate)
		admin.POST("/betting/start", bettingHandler.StartSession)
		admin.POST("/betting/stop", bettingHandler.StopSession)
		admin.POST("/betting/calculate-winnings", bettingHandler.CalculateWinnings)
		admin.POST("/betting/distribute-winnings", bettingHandler.DistributeWinnings)

		// Member management
		admin.GET("/members", adminHandler.ListMembers)
		admin.POST("/members/:id/points", adminHandler.AdjustPoints)
		admin.POST("/members/:id/promote", adminHandler.PromoteMember)

		// Notice management
		admin.POST("/notices", noticeHandler.CreateNotice)
		admin.PUT("/notices/:id", noticeHandler.UpdateNotice)
		admin.DELETE("/notices/:id", noticeHandler.DeleteNotice)

		// Game schedule management
		admin.POST("/games", gameHandler.CreateGame)
		admin.DELETE("/games/:date/:number", gameHandler.DeleteGame)

		// Dashboard
		admin.GET("/stats", adminHandler.GetStats)
		admin.GET("/logs", adminHandler.GetLogs)
	}

	// Create HTTP server
	srv := &http.Server{
		Addr:    ":" + cfg.Server.Port,
		Handler: router,
	}

	// Start server in a goroutine
	go func() {
		log.Printf("Server starting on port %s", cfg.Server.Port)
		log.Printf("Health check: http://localhost:%s/health", cfg.Server.Port)

		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")

	// Graceful shutdown with 5 second timeout
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server forced to shutdown:", err)
	}

	log.Println("Server exited")
}
