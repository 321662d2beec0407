package router

import (
	"firebase.google.com/go/v4/auth"
	"github.com/labstack/echo/v4"
	eMiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/shady-cj/social-media-api/internal/handlers"
	"github.com/shady-cj/social-media-api/internal/middleware"
	"github.com/shady-cj/social-media-api/internal/models"
	"github.com/shady-cj/social-media-api/internal/services"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// SetupMiddleware configures global Echo middleware
func SetupMiddleware(e *echo.Echo) {
	e.Use(eMiddleware.Recover())
	e.Use(eMiddleware.CORS())
}

// AutoMigrate creates the schema, including every unique index and check
// constraint the invariants rely on.
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.Identity{},
		&models.Profile{},
		&models.Post{},
		&models.PostMedia{},
		&models.Interaction{},
		&models.Follow{},
		&models.Bookmark{},
	)
}

// SetupRoutes configures all application routes and injects dependencies.
// firebaseAuthClient may be nil, which disables the firebase-login route.
func SetupRoutes(e *echo.Echo, db *gorm.DB, firebaseAuthClient *auth.Client) error {
	if err := AutoMigrate(db); err != nil {
		return err
	}
	logrus.Info("schema migrations completed")

	// Health check - always accessible
	e.GET("/health", handlers.HealthCheck)

	// --- Services ---
	identityService := services.NewIdentityService(db)
	graphService := services.NewGraphService(db)
	postService := services.NewPostService(db)

	// --- Unprotected routes for authentication ---
	authGroup := e.Group("/api/v1/auth")
	authHandler := handlers.NewAuthHandler(identityService, firebaseAuthClient)
	authHandler.RegisterAuthRoutes(authGroup)

	// --- Protected routes (require JWT authentication) ---
	api := e.Group("/api/v1")
	api.Use(middleware.JWTAuthMiddleware())

	profileHandler := handlers.NewProfileHandler(identityService)
	profileHandler.RegisterProfileRoutes(api)

	postHandler := handlers.NewPostHandler(postService, identityService)
	postHandler.RegisterPostRoutes(api)

	interactionHandler := handlers.NewInteractionHandler(postService)
	interactionHandler.RegisterInteractionRoutes(api)

	followHandler := handlers.NewFollowHandler(graphService, identityService)
	followHandler.RegisterFollowRoutes(api)

	bookmarkHandler := handlers.NewBookmarkHandler(postService)
	bookmarkHandler.RegisterBookmarkRoutes(api)

	logrus.Info("all routes configured")
	return nil
}
