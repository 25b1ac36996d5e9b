package main

import (
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
	"github.com/gofiber/fiber/v2/middleware/session"

	"alfredoptarigan/resume-portal/internal/config"
	"alfredoptarigan/resume-portal/internal/handlers"
	"alfredoptarigan/resume-portal/internal/middlewares"
	"alfredoptarigan/resume-portal/internal/repositories"
	"alfredoptarigan/resume-portal/internal/services"
	"alfredoptarigan/resume-portal/internal/validator"
)

func main() {
	// Load configuration
	cfg := config.Load()
	log.Println("✅ Config loaded successfully")

	// Initialize database
	db, err := config.InitDatabase(cfg)
	if err != nil {
		log.Fatalf("❌ Failed to initialize database: %v", err)
	}

	// Initialize repositories
	userRepo := repositories.NewUserRepository(db)
	profileRepo := repositories.NewProfileRepository(db)
	resumeRepo := repositories.NewResumeRepository(db)
	log.Println("✅ Repositories initialized successfully")

	// Initialize services
	storageService := services.NewStorageService(cfg.Storage.UploadPath)
	if err := storageService.EnsureUploadDir(); err != nil {
		log.Fatalf("❌ Failed to create upload directory: %v", err)
	}

	extractorService := services.NewExtractorService()
	scorerService := services.NewScorerService(cfg.Predictor)
	resumeService := services.NewResumeService(
		resumeRepo,
		storageService,
		extractorService,
		scorerService,
		cfg.Storage.MaxFileSize,
		nil,
	)
	profileService := services.NewProfileService(profileRepo)
	log.Println("✅ Services initialized successfully")

	// Session store backs the auth cookie
	store := session.New(session.Config{
		Expiration:     cfg.Session.Expiration,
		KeyLookup:      "cookie:resume_portal_session",
		CookieHTTPOnly: true,
	})

	// Initialize validator and handlers
	validate := validator.New()
	authHandler := handlers.NewAuthHandler(userRepo, store, validate)
	profileHandler := handlers.NewProfileHandler(profileService, validate)
	resumeHandler := handlers.NewResumeHandler(resumeService)
	adminHandler := handlers.NewAdminHandler(resumeRepo)
	log.Println("✅ Handlers initialized")

	// Create Fiber app
	app := fiber.New(fiber.Config{
		AppName:      "Resume Portal API",
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		BodyLimit:    int(cfg.Storage.MaxFileSize) + 1024*1024,
		ErrorHandler: customErrorHandler,
	})

	// Middleware
	app.Use(recover.New())
	app.Use(logger.New(logger.Config{
		Format:     "[${time}] ${status} - ${latency} ${method} ${path}\n",
		TimeFormat: "2006-01-02 15:04:05",
	}))

	app.Use(cors.New(cors.Config{
		AllowOrigins:     "http://localhost:3000",
		AllowMethods:     "GET,POST,PUT,DELETE,OPTIONS",
		AllowHeaders:     "Origin, Content-Type, Accept",
		AllowCredentials: true,
	}))

	// Routes
	api := app.Group("/api")
	auth := middlewares.RequireAuth(store)

	// Health check
	api.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status": "healthy",
			"time":   time.Now(),
		})
	})

	api.Post("/register", authHandler.HandleRegister)
	api.Post("/login", authHandler.HandleLogin)
	api.Post("/logout", authHandler.HandleLogout)
	api.Get("/user", auth, authHandler.HandleCurrentUser)

	api.Get("/profile", auth, profileHandler.HandleGetProfile)
	api.Put("/profile", auth, profileHandler.HandleUpdateProfile)

	api.Post("/upload-resume", auth, resumeHandler.HandleUpload)
	api.Get("/resume", auth, resumeHandler.HandleGetResume)

	api.Get("/admin/resumes", auth, adminHandler.HandleListResumes)

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

	if err := app.Listen(addr); err != nil {
		log.Fatalf("❌ Failed to start server: %v", err)
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
