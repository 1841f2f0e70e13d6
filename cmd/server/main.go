package main

import (
	"log"
	"strconv"

	"intervuehub/config"
	"intervuehub/controllers"
	"intervuehub/db"
	"intervuehub/internal/session"
	"intervuehub/middlewares"
	"intervuehub/routes"
	"intervuehub/services"
	"intervuehub/websocket"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

func main() {
	// Load the configuration from the specified YAML file
	cfg, err := config.LoadConfig("./config/config.prod.yml")
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	client, model := buildCompletionClient(cfg)

	personaService, err := services.NewPersonaService(cfg.Personas.File)
	if err != nil {
		log.Fatalf("Failed to load personas: %v", err)
	}
	log.Printf("Loaded %d personas from %s", len(personaService.List()), cfg.Personas.File)

	analyzer := services.NewLLMAnalyzer(client, model)
	feedbackService := services.NewFeedbackService(analyzer)

	controllers.InitFeedbackController(feedbackService)
	controllers.InitPersonaController(personaService)

	// MongoDB only backs report persistence; the API works without it.
	if cfg.Database.URI != "" {
		if err := db.ConnectMongoDB(cfg.Database.URI); err != nil {
			log.Printf("Failed to connect to MongoDB, report persistence disabled: %v", err)
		} else {
			log.Println("Connected to MongoDB")
		}
	}

	// Redis backs live interview sessions and report rate limiting.
	if cfg.Redis.Addr != "" {
		if err := session.InitRedis(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB); err != nil {
			log.Printf("Failed to connect to Redis, live sessions disabled: %v", err)
		} else {
			log.Println("Connected to Redis")
		}
	}
	store := session.NewStore()
	controllers.InitInterviewController(store, session.NewRateLimiter())
	websocket.Init(store, personaService, client, model)

	router := setupRouter(cfg)
	port := strconv.Itoa(cfg.Server.Port)
	log.Printf("Server starting on port %s", port)

	if err := router.Run(":" + port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}

// buildCompletionClient picks the configured text-completion backend
func buildCompletionClient(cfg *config.Config) (services.CompletionClient, string) {
	switch cfg.Provider {
	case "gemini":
		client, err := services.NewGeminiClient(cfg.Gemini.ApiKey, cfg.Gemini.Model)
		if err != nil {
			log.Fatalf("Failed to create Gemini client: %v", err)
		}
		log.Printf("Using Gemini provider (model: %s)", cfg.Gemini.Model)
		return client, cfg.Gemini.Model
	default:
		client := services.NewOpenRouterClient(cfg.OpenRouter.BaseUrl, cfg.OpenRouter.ApiKey, cfg.OpenRouter.Model)
		log.Printf("Using OpenRouter provider (model: %s)", cfg.OpenRouter.Model)
		return client, cfg.OpenRouter.Model
	}
}

func setupRouter(cfg *config.Config) *gin.Engine {
	router := gin.Default()

	// Set trusted proxies (adjust as needed)
	router.SetTrustedProxies([]string{"127.0.0.1", "localhost"})

	// Configure CORS for your frontend (e.g., localhost:5173 for Vite)
	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"http://localhost:5173"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", "X-API-Key"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
	}))
	router.OPTIONS("/*path", func(c *gin.Context) { c.Status(204) })

	// Public health endpoint
	router.GET("/feedback/health", controllers.FeedbackHealthCheck)

	// Protected routes (static API key)
	auth := router.Group("/")
	auth.Use(middlewares.APIKeyAuthMiddleware(cfg.Auth.ApiKey))
	{
		routes.SetupFeedbackRoutes(auth)
		routes.SetupPersonaRoutes(auth)
		routes.SetupInterviewRoutes(auth)
	}

	return router
}
