package main

import (
	"log"
	"os"
	"strings"

	"trading-admin-service/internal/database"
	"trading-admin-service/internal/handlers"
	"trading-admin-service/internal/middleware"
	"trading-admin-service/internal/services"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/hibiken/asynq"
	"github.com/joho/godotenv"
)

func main() {
	// Load environment variables
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found in current directory, trying parent")
		if err := godotenv.Load("../.env"); err != nil {
			log.Println("No .env file found, using system environment variables")
		}
	}

	if mode := os.Getenv("GIN_MODE"); mode != "" {
		gin.SetMode(mode)
	}

	// Initialize Database
	database.Connect()
	database.Migrate()
	db := database.DB

	// Init Services
	helperService := services.NewHelperService(db)
	providerService := services.NewMyPayVerseService()
	syncService := services.NewSyncService(db, helperService, providerService)
	depositService := services.NewDepositService(db, helperService)
	withdrawalService := services.NewWithdrawalService(db, helperService, providerService)
	profileService := services.NewProfileService(db, helperService)

	// Redis/Asynq Client
	redisAddr := os.Getenv("REDIS_URL")
	if redisAddr == "" {
		redisAddr = "localhost:6379"
	}
	asynqClient := asynq.NewClient(asynq.RedisClientOpt{Addr: redisAddr})
	defer asynqClient.Close()

	// Handlers
	walletHandler := handlers.NewWalletHandler(providerService, syncService, withdrawalService)
	depositHandler := handlers.NewDepositHandler(depositService)
	withdrawalHandler := handlers.NewWithdrawalHandler(withdrawalService)
	adminHandler := handlers.NewAdminHandler(profileService)
	syncHandler := handlers.NewSyncHandler(syncService, asynqClient)

	// Initialize Gin
	r := gin.Default()

	corsConfig := cors.DefaultConfig()
	if origins := os.Getenv("CORS_ORIGINS"); origins != "" {
		corsConfig.AllowOrigins = strings.Split(origins, ",")
	} else {
		corsConfig.AllowAllOrigins = true
	}
	corsConfig.AllowHeaders = append(corsConfig.AllowHeaders, "Authorization")
	r.Use(cors.New(corsConfig))

	// Ping endpoint
	r.GET("/ping", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"message": "Welcome to the trading admin service",
		})
	})

	// User routes
	user := r.Group("/", middleware.Authenticate())
	{
		user.POST("/wallet", walletHandler.CreateWallet)
		user.GET("/wallet", walletHandler.GetWallet)
		user.GET("/wallet/transactions", walletHandler.GetTransactions)
		user.POST("/wallet/withdraw", walletHandler.RequestWithdrawal)
		user.POST("/deposits", depositHandler.CreateDeposit)
	}

	// Admin routes
	admin := r.Group("/admin", middleware.Authenticate(), middleware.RequireAdmin(helperService))
	{
		admin.GET("/stats", adminHandler.GetPlatformStats)
		admin.GET("/users", adminHandler.ListUsers)
		admin.GET("/users/:id", adminHandler.GetUserDetails)
		admin.POST("/users/:id/adjust", adminHandler.AdjustBalance)
		admin.PATCH("/users/:id", adminHandler.UpdateProfile)
		admin.POST("/users/:id/reset-progress", adminHandler.ResetProgress)
		admin.POST("/users/:id/penalty", adminHandler.TogglePenaltyMode)
		admin.DELETE("/users/:id/history", adminHandler.DeleteUserHistory)
		admin.PATCH("/cycles/:cycleId", adminHandler.UpdateCycle)
		admin.DELETE("/cycles/:cycleId", adminHandler.DeleteCycle)

		admin.GET("/deposits", depositHandler.ListDeposits)
		admin.POST("/deposits/:id/approve", depositHandler.ApproveDeposit)
		admin.POST("/deposits/:id/reject", depositHandler.RejectDeposit)

		admin.GET("/withdrawals", withdrawalHandler.ListWithdrawals)
		admin.POST("/withdrawals/:id/process", withdrawalHandler.ProcessWithdrawal)
		admin.POST("/withdrawals/:id/reject", withdrawalHandler.RejectWithdrawal)

		admin.POST("/sync", syncHandler.SyncAll)
		admin.POST("/sync/enqueue", syncHandler.EnqueueSyncAll)
		admin.POST("/backfill", syncHandler.Backfill)
		admin.POST("/backfill/enqueue", syncHandler.EnqueueBackfill)
	}

	// Scheduled provider sync
	syncService.StartScheduler()

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	log.Printf("Starting trading admin service on :%s", port)
	if err := r.Run(":" + port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
