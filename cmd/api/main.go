package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/gofiber/fiber/v2/middleware/session"
	"github.com/google/uuid"

	"alfredoptarigan/job-assistant/internal/config"
	"alfredoptarigan/job-assistant/internal/handlers"
	"alfredoptarigan/job-assistant/internal/repositories"
	"alfredoptarigan/job-assistant/internal/services"
	"alfredoptarigan/job-assistant/internal/web"
)

func main() {
	// Load configuration
	cfg := config.Load()
	log.Println("✅ Config loaded successfully")

	// Initialize chat completion provider
	chatService := newChatService(cfg)
	feedbackService := services.NewFeedbackService(chatService)
	log.Printf("✅ Chat completion provider %q ready (model %s)", cfg.LLM.Provider, cfg.LLM.Model)

	// Initialize visitor counter
	counterStore, err := newCounterStore(cfg)
	if err != nil {
		log.Fatalf("❌ Failed to initialize visitor counter: %v", err)
	}
	counterService := services.NewVisitorCounterService(counterStore)

	sessions := session.New(session.Config{
		Expiration:     24 * time.Hour,
		KeyGenerator:   uuid.NewString,
		CookieHTTPOnly: true,
		CookieSameSite: "Lax",
	})
	tracker := handlers.NewVisitorTracker(sessions, counterService)

	parser := services.NewDocumentParserService()
	log.Println("✅ Services initialized successfully")

	renderer, err := web.NewRenderer()
	if err != nil {
		log.Fatalf("❌ Failed to load page template: %v", err)
	}

	sidebar := web.NewSidebar(cfg.Profile.About,
		web.Link{Label: "GitHub", URL: cfg.Profile.GitHubURL},
		web.Link{Label: "LinkedIn", URL: cfg.Profile.LinkedInURL},
		web.Link{Label: "Portfolio", URL: cfg.Profile.PortfolioURL},
	)

	// Initialize Handlers
	extractHandler := handlers.NewExtractHandler(parser, cfg.Storage.MaxUploadSize)
	routes := handlers.Handlers{
		Page:     handlers.NewPageHandler(renderer, feedbackService, extractHandler, tracker, sidebar),
		Analyze:  handlers.NewAnalyzeHandler(feedbackService),
		Visitors: handlers.NewVisitorHandler(tracker),
		Extract:  extractHandler,
	}
	log.Println("✅ Handlers initialized")

	// Completion calls are not bounded by the server, only by the client
	// closing the connection.
	app := fiber.New(fiber.Config{
		AppName:      "AI Job Application Assistant",
		ReadTimeout:  30 * time.Second,
		BodyLimit:    int(cfg.Storage.MaxUploadSize) + 1<<20,
		ErrorHandler: customErrorHandler,
	})

	// Middleware
	app.Use(recover.New())
	app.Use(requestid.New(requestid.Config{
		Generator: uuid.NewString,
	}))
	app.Use(logger.New(logger.Config{
		Format:     "[${time}] ${locals:requestid} ${status} - ${latency} ${method} ${path}\n",
		TimeFormat: "2006-01-02 15:04:05",
	}))

	app.Use("/api", cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,OPTIONS",
		AllowHeaders: "Origin, Content-Type, Accept",
	}))

	handlers.RegisterRoutes(app, routes)

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-quit
		log.Println("\n🛑 Shutting down server...")
		if err := app.Shutdown(); err != nil {
			log.Printf("❌ Server forced to shutdown: %v", err)
		}
	}()

	// Start server
	addr := fmt.Sprintf(":%s", cfg.Server.Port)
	log.Printf("🚀 Server starting on %s\n", addr)
	log.Printf("📖 Open http://localhost%s in a browser\n", addr)

	if err := app.Listen(addr); err != nil {
		log.Fatalf("❌ Failed to start server: %v", err)
	}
}

func newChatService(cfg *config.Config) services.ChatCompletionService {
	switch cfg.LLM.Provider {
	case config.ProviderGemini:
		svc, err := services.NewGeminiService(context.Background(), cfg.LLM.GeminiAPIKey, cfg.LLM.Model, cfg.LLM.GeminiBaseURL)
		if err != nil {
			// surfaced to the user on every submission instead of blocking startup
			log.Printf("⚠️  Gemini client unavailable: %v", err)
			return services.NewUnavailableChatService(err)
		}
		return svc
	default:
		if cfg.LLM.GroqAPIKey == "" {
			log.Println("⚠️  GROQ_API_KEY is not set, feedback requests will fail")
		}
		return services.NewGroqService(cfg.LLM.GroqAPIKey, cfg.LLM.GroqBaseURL, cfg.LLM.Model)
	}
}

// newCounterStore returns a nil store when the counter is not configured.
func newCounterStore(cfg *config.Config) (services.CounterStore, error) {
	switch cfg.Counter.Backend {
	case config.CounterBackendPostgres:
		db, err := config.InitDatabase(cfg)
		if err != nil {
			return nil, err
		}
		log.Println("✅ Visitor counter backed by postgres")
		return repositories.NewVisitorCounterRepository(db), nil
	default:
		if !cfg.HasJSONBinCredentials() {
			log.Println("⚠️  JSONBin credentials not set, visitor count shows N/A")
			return nil, nil
		}
		log.Println("✅ Visitor counter backed by JSONBin")
		return services.NewJSONBinStore(cfg.Counter.JSONBinAPIKey, cfg.Counter.JSONBinBinID, cfg.Counter.JSONBinBaseURL), nil
	}
}

func customErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError

	if e, ok := err.(*fiber.Error); ok {
		code = e.Code
	}

	return c.Status(code).JSON(fiber.Map{
		"error": err.Error(),
		"code":  code,
	})
}
