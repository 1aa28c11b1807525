package router

import (
	"log"
	"os"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/saikumarreddyappidi/Education/database"
	"github.com/saikumarreddyappidi/Education/handlers"
	auth_handlers "github.com/saikumarreddyappidi/Education/handlers/auth"
	file_handlers "github.com/saikumarreddyappidi/Education/handlers/file"
	forum_handlers "github.com/saikumarreddyappidi/Education/handlers/forum"
	note_handlers "github.com/saikumarreddyappidi/Education/handlers/note"
	recovery_handlers "github.com/saikumarreddyappidi/Education/handlers/recovery"
	whiteboard_handlers "github.com/saikumarreddyappidi/Education/handlers/whiteboard"
	"github.com/saikumarreddyappidi/Education/services"
	"github.com/saikumarreddyappidi/Education/services/storage"
	"github.com/saikumarreddyappidi/Education/utils/auth"
	"github.com/saikumarreddyappidi/Education/utils/cache"
	"github.com/saikumarreddyappidi/Education/utils/middleware"
)

// Dependencies carries the optional collaborators the route tree wires in.
// Any of them may be nil; the affected features degrade instead of failing.
type Dependencies struct {
	Recovery *services.RecoveryService
	Spaces   *storage.SpacesClient
}

func SetupRoutes(app *fiber.App, store database.Storage, deps Dependencies) {
	// Get JWT secret from environment
	jwtSecret := os.Getenv("JWT_SECRET")
	if jwtSecret == "" {
		log.Fatal("JWT_SECRET environment variable is not set")
	}

	jwtIssuer := os.Getenv("JWT_ISSUER")
	if jwtIssuer == "" {
		jwtIssuer = "education-api"
	}

	jwtConfig := auth.JWTConfig{
		Secret: jwtSecret,
		Expiry: 24 * time.Hour,
		Issuer: jwtIssuer,
	}
	jwtManager := auth.NewJWTManager(jwtConfig)

	// Redis backs the login lockout only; everything works without it.
	redisURL := os.Getenv("REDIS_URL")
	if redisURL == "" {
		redisURL = "redis://localhost:6379/0"
	}

	redisCache, err := cache.NewRedisCache(redisURL)
	if err != nil {
		log.Printf("Warning: Failed to connect to Redis: %v. Brute force protection will be disabled.", err)
	}

	var bruteForceProtection *middleware.BruteForceProtection
	if redisCache != nil {
		bruteForceProtection = middleware.NewBruteForceProtection(redisCache)
	}

	authMiddleware := middleware.NewAuthMiddleware(jwtManager, store)

	authHandler := auth_handlers.NewAuthHandler(store, jwtManager, bruteForceProtection)
	noteHandler := note_handlers.NewNoteHandler(store)
	fileHandler := file_handlers.NewFileHandler(store, deps.Spaces)
	whiteboardHandler := whiteboard_handlers.NewWhiteboardHandler(store)
	forumHandler := forum_handlers.NewForumHandler(store)
	recoveryHandler := recovery_handlers.NewRecoveryHandler(deps.Recovery)

	// Apply security middleware
	allowedOrigins := os.Getenv("ALLOWED_ORIGINS")
	if allowedOrigins == "" {
		allowedOrigins = "http://localhost:3000,http://localhost:3001"
	}

	middleware.SetupSecurity(app, middleware.SecurityConfig{
		AllowedOrigins:    allowedOrigins,
		RateLimitRequests: 100,
		RateLimitWindow:   1 * time.Minute,
	})

	// Health check endpoint (public)
	app.Get("/ping", func(c *fiber.Ctx) error {
		return handlers.HandleCheckHealth(c, store)
	})

	api := app.Group("/api")

	// Auth routes (public)
	authGroup := api.Group("/auth")
	authGroup.Post("/register", authHandler.Register)

	// Login with brute force protection
	if bruteForceProtection != nil {
		authGroup.Post("/login", bruteForceProtection.CheckAndRecordAttempt(), authHandler.Login)
	} else {
		authGroup.Post("/login", authHandler.Login)
	}

	// Protected auth routes
	authGroup.Get("/me", authMiddleware.Required(), authHandler.Me)
	authGroup.Post("/connect-teacher", authMiddleware.Required(), authHandler.ConnectTeacher)
	authGroup.Post("/connect-staff", authMiddleware.Required(), authHandler.ConnectStaff)

	// Request-recovery capture for all authenticated write routes below
	capture := middleware.CaptureRequests(deps.Recovery)

	// Notes
	notes := api.Group("/notes", authMiddleware.Required(), capture)
	notes.Get("/", noteHandler.List)
	notes.Get("/my", noteHandler.List)
	notes.Post("/", noteHandler.Create)
	notes.Put("/:id", noteHandler.Update)
	notes.Delete("/:id", noteHandler.Delete)
	notes.Get("/search/:staffId", noteHandler.SearchByStaff)
	notes.Post("/save/:id", authMiddleware.RequireRole("student"), noteHandler.Save)

	// Files
	files := api.Group("/files", authMiddleware.Required(), capture)
	files.Get("/", fileHandler.List)
	files.Post("/upload", fileHandler.Upload)
	files.Put("/:id", fileHandler.Update)
	files.Delete("/:id", fileHandler.Delete)
	files.Get("/search/:staffId", fileHandler.SearchByStaff)
	files.Post("/save/:id", authMiddleware.RequireRole("student"), fileHandler.Save)
	files.Get("/:id/download", fileHandler.Download)

	// Whiteboards
	whiteboards := api.Group("/whiteboards", authMiddleware.Required(), capture)
	whiteboards.Get("/", whiteboardHandler.List)
	whiteboards.Post("/", whiteboardHandler.Create)
	whiteboards.Put("/:id", whiteboardHandler.Update)
	whiteboards.Delete("/:id", whiteboardHandler.Delete)
	whiteboards.Get("/search/:staffId", whiteboardHandler.SearchByStaff)
	whiteboards.Post("/save/:id", authMiddleware.RequireRole("student"), whiteboardHandler.Save)

	// Forum: reads are public, writes require auth
	forum := api.Group("/forum")
	forum.Get("/questions", forumHandler.ListQuestions)
	forum.Get("/questions/:id", forumHandler.GetQuestion)
	forum.Post("/questions", authMiddleware.Required(), capture, forumHandler.CreateQuestion)
	forum.Post("/questions/:id/answers", authMiddleware.Required(), capture, forumHandler.AddAnswer)
	forum.Patch("/questions/:id/status", authMiddleware.Required(), forumHandler.UpdateStatus)

	// Recovery dumps
	recoveryGroup := api.Group("/recovery", authMiddleware.Required())
	recoveryGroup.Get("/user-recovery-data", recoveryHandler.List)
	recoveryGroup.Delete("/user-recovery-data/:filename", recoveryHandler.Delete)
}
