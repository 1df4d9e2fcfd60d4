package api

import (
	"time"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	echoswagger "github.com/swaggo/echo-swagger"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/petconnect/marketplace/internal/api/handler"
	"github.com/petconnect/marketplace/internal/api/middleware"
	"github.com/petconnect/marketplace/internal/core/domain"
	"github.com/petconnect/marketplace/internal/core/service"
	mongodb "github.com/petconnect/marketplace/internal/infrastructure/db/mongo"
	redisinfra "github.com/petconnect/marketplace/internal/infrastructure/db/redis"
	"github.com/petconnect/marketplace/internal/pkg/config"
)

// NewRouter builds and returns the Echo instance with all routes registered.
// recorder is the asynchronous audit sink (started by the caller).
func NewRouter(db *mongo.Database, rdb *redis.Client, recorder service.ActivityRecorder, cfg *config.Config, log zerolog.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)
	e.Validator = handler.NewValidator()

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("petconnect"))

	// --- Repositories ---
	userRepo := mongodb.NewUserRepository(db)
	profileRepo := mongodb.NewProfileRepository(db)
	adminRepo := mongodb.NewAdminRepository(db)
	sessionRepo := mongodb.NewAdminSessionRepository(db)
	activityRepo := mongodb.NewActivityRepository(db)
	productRepo := mongodb.NewProductRepository(db)
	bannerRepo := mongodb.NewBannerRepository(db)
	orderRepo := mongodb.NewOrderRepository(db)
	careRepo := mongodb.NewCareRequestRepository(db)

	throttle := redisinfra.NewLoginThrottle(rdb, cfg.Admin.MaxLoginAttempts, cfg.Admin.LockoutWindow)

	// --- Services ---
	authService := service.NewAuthService(userRepo, cfg.JWTSecret, 24*time.Hour)
	profileService := service.NewProfileService(profileRepo, log)
	routeService := service.NewRouteService(profileRepo, log)
	adminService := service.NewAdminService(adminRepo, sessionRepo, activityRepo, throttle, recorder, cfg.Admin.SessionTTL, log)
	catalogService := service.NewCatalogService(productRepo, bannerRepo, log)
	orderService := service.NewOrderService(orderRepo, productRepo, log)
	careService := service.NewCareRequestService(careRepo, profileRepo, log)

	// --- Handlers ---
	authHandler := handler.NewAuthHandler(authService, routeService)
	profileHandler := handler.NewProfileHandler(profileService)
	routeHandler := handler.NewRouteHandler(routeService)
	adminHandler := handler.NewAdminHandler(adminService)
	catalogHandler := handler.NewCatalogHandler(catalogService)
	orderHandler := handler.NewOrderHandler(orderService)
	careHandler := handler.NewCareRequestHandler(careService)

	userAuth := middleware.Auth(cfg.JWTSecret)
	adminAuth := middleware.AdminSession(adminService)

	// --- Health probes and operational endpoints (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	readinessHandler := handler.NewReadinessHandler(db, rdb)

	e.GET("/health", healthHandler.Liveness)
	e.GET("/health/ready", readinessHandler.Readiness)
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoswagger.WrapHandler)

	// --- User auth routes ---
	e.POST("/auth/sign-up", authHandler.SignUp)
	e.POST("/auth/sign-in", authHandler.SignIn)
	e.POST("/auth/sign-out", authHandler.SignOut)

	// --- Public storefront ---
	e.GET("/v1/products", catalogHandler.ListProducts)
	e.GET("/v1/products/:id", catalogHandler.GetProduct)
	e.GET("/v1/banners", catalogHandler.ActiveBanners)

	// --- Authenticated user routes ---
	v1 := e.Group("/v1", userAuth)
	v1.GET("/route/decision", routeHandler.Decide)

	v1.GET("/profile", profileHandler.Get)
	v1.PUT("/profile", profileHandler.Save)
	v1.PUT("/profile/sitter", profileHandler.SaveSitter)
	v1.PUT("/profile/shelter", profileHandler.SaveShelter)
	v1.GET("/profile/status", profileHandler.Status)

	v1.POST("/orders", orderHandler.Checkout)
	v1.GET("/orders", orderHandler.List)
	v1.GET("/orders/:id", orderHandler.Get)
	v1.POST("/orders/:id/cancel", orderHandler.Cancel)

	v1.POST("/care-requests", careHandler.Create, middleware.RequireUserType(domain.UserTypePetOwner))
	v1.GET("/care-requests", careHandler.List)
	v1.GET("/care-requests/:id", careHandler.Get)
	v1.POST("/care-requests/:id/status", careHandler.Transition)

	// --- Back office ---
	e.POST("/admin/auth/sign-in", adminHandler.SignIn)

	admin := e.Group("/v1/admin", adminAuth)
	admin.POST("/auth/sign-out", adminHandler.SignOut)
	admin.GET("/auth/session", adminHandler.Session)
	admin.POST("/admins", adminHandler.CreateAdmin)
	admin.GET("/activity", adminHandler.ListActivity)

	admin.GET("/products", catalogHandler.AdminListProducts)
	admin.POST("/products", catalogHandler.SaveProduct)
	admin.PUT("/products/:id", catalogHandler.SaveProduct)
	admin.DELETE("/products/:id", catalogHandler.DeleteProduct)

	admin.GET("/banners", catalogHandler.ListBanners)
	admin.POST("/banners", catalogHandler.SaveBanner)
	admin.PUT("/banners/:id", catalogHandler.SaveBanner)
	admin.DELETE("/banners/:id", catalogHandler.DeleteBanner)

	admin.GET("/orders", orderHandler.AdminList)
	admin.POST("/orders/:id/status", orderHandler.AdminTransition)

	return e
}
