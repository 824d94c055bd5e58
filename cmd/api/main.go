package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"salessight-api/internal/catalog"
	"salessight-api/internal/handler"
	"salessight-api/internal/middleware"
	"salessight-api/internal/mlclient"
	"salessight-api/internal/model"
	"salessight-api/internal/namecache"
	"salessight-api/internal/repository"
	"salessight-api/internal/service"
	"salessight-api/internal/ws"
	"salessight-api/pkg/database"

	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/joho/godotenv"
)

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getenvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}

func main() {
	// 1. Load Env
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found")
	}

	// 2. Setup Database (optional: auth and analytics persistence only)
	db, err := database.Connect()
	if err != nil {
		if err == database.ErrNotConfigured {
			log.Println("Warning: no database configured, auth and analytics persistence disabled")
		} else {
			log.Fatal(err)
		}
	}
	if db != nil {
		db.AutoMigrate(&model.User{}, &model.AnalyticsLog{})
	}

	// 3. Load the bundled product catalog
	cat, err := catalog.Load()
	if err != nil {
		log.Fatal(err)
	}
	log.Printf("Catalog loaded (%d products)", cat.Len())

	// 4. Setup ML client and the valid-name cache refresh loop
	mlURL := getenv("ML_SERVICE_URL", "http://localhost:5001")
	mlTimeout := time.Duration(getenvInt("ML_TIMEOUT_SECONDS", 10)) * time.Second
	refreshEvery := time.Duration(getenvInt("CATALOG_REFRESH_MINUTES", 5)) * time.Minute

	ml := mlclient.New(mlURL, mlTimeout)
	cache := namecache.New(ml)

	refreshCtx, stopRefresh := context.WithCancel(context.Background())
	defer stopRefresh()
	go cache.Start(refreshCtx, refreshEvery)

	// 5. Setup WebSocket Hub
	wsHub := ws.NewHub()
	go wsHub.Run()

	// 6. Dependency Injection (Wiring Layers)
	analysisService := service.NewAnalysisService(cat, cache, nil)

	productHandler := handler.NewProductHandler(cat, cache, analysisService)
	datasetHandler := handler.NewDatasetHandler()
	recommendHandler := handler.NewRecommendHandler(ml)

	var userRepo repository.UserRepository
	var analyticsRepo repository.AnalyticsRepository
	var authHandler *handler.AuthHandler
	if db != nil {
		userRepo = repository.NewUserRepo(db)
		analyticsRepo = repository.NewAnalyticsRepo(db)
		authHandler = handler.NewAuthHandler(service.NewAuthService(userRepo))
	}

	// 7. Setup Fiber
	app := fiber.New(fiber.Config{
		AppName:   "SalesSight API v1.0",
		BodyLimit: 12 * 1024 * 1024, // uploads are rejected at 10MB by the handler
	})

	// Middleware
	app.Use(logger.New())  // Logging request
	app.Use(recover.New()) // Panic recovery
	app.Use(cors.New())    // CORS
	app.Use(middleware.RecordAnalytics(analyticsRepo, wsHub))

	// 8. Routes
	api := app.Group("/api")

	// Health
	api.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status":           "ok",
			"database":         db != nil,
			"validNamesLoaded": cache.Len(),
		})
	})

	// Product analytics routes
	api.Get("/products", productHandler.GetProducts)
	api.Get("/products/blinkit", productHandler.GetBlinkitProducts)
	api.Post("/products/search", productHandler.SearchProducts)
	api.Post("/products/forecast", productHandler.ForecastProducts)
	api.Get("/google-trends", productHandler.GoogleTrends)

	// Dataset upload stub
	api.Post("/datasets/upload", datasetHandler.Upload)

	// ML service proxy
	api.Get("/recommend-products", recommendHandler.RecommendProducts)

	// Auth routes (require a database)
	auth := api.Group("/auth")
	if db != nil {
		auth.Post("/register", authHandler.Register)
		auth.Post("/login", authHandler.Login)
		auth.Get("/me", middleware.RequireAuth(userRepo), authHandler.Me)

		// Recent request activity for the dashboard
		api.Get("/analytics/logs", middleware.RequireAuth(userRepo), func(c *fiber.Ctx) error {
			limit := c.QueryInt("limit", 50)
			logs, err := analyticsRepo.FindRecent(limit)
			if err != nil {
				return c.Status(500).JSON(fiber.Map{"success": false, "error": "Failed to fetch analytics logs"})
			}
			since := time.Now().Add(-24 * time.Hour)
			count, _ := analyticsRepo.CountSince(since)
			return c.JSON(fiber.Map{"success": true, "logs": logs, "last24h": count})
		})
	} else {
		auth.All("/*", func(c *fiber.Ctx) error {
			return c.Status(503).JSON(fiber.Map{"success": false, "error": "Auth is unavailable: no database configured"})
		})
	}

	// WebSocket route (live request activity feed)
	app.Use("/ws", func(c *fiber.Ctx) error {
		if websocket.IsWebSocketUpgrade(c) {
			return c.Next()
		}
		return c.SendStatus(fiber.StatusUpgradeRequired)
	})
	app.Get("/ws", websocket.New(func(c *websocket.Conn) {
		wsHub.Register <- c
		defer func() { wsHub.Unregister <- c }()

		for {
			// Keep alive loop
			if _, _, err := c.ReadMessage(); err != nil {
				break
			}
		}
	}))

	// 9. Graceful Shutdown
	go func() {
		port := getenv("PORT", "8000")
		if err := app.Listen(":" + port); err != nil {
			log.Panic(err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")
	stopRefresh()
	if err := app.Shutdown(); err != nil {
		log.Fatal("Server forced to shutdown:", err)
	}

	log.Println("Server exited")
}
