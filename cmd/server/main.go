package main

import (
	"github.com/Nethupa05/Hardware-Backend/internal/auth"
	"github.com/Nethupa05/Hardware-Backend/internal/handler"
	mid "github.com/Nethupa05/Hardware-Backend/internal/middleware"
	"github.com/Nethupa05/Hardware-Backend/internal/model"
	"github.com/Nethupa05/Hardware-Backend/internal/notify"
	"github.com/Nethupa05/Hardware-Backend/internal/store"
	"github.com/Nethupa05/Hardware-Backend/pkg/config"
	"github.com/Nethupa05/Hardware-Backend/pkg/database"
	"github.com/Nethupa05/Hardware-Backend/pkg/jwtutil"
	"github.com/Nethupa05/Hardware-Backend/pkg/logger"
	"github.com/Nethupa05/Hardware-Backend/prometheus"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

func main() {
	// Load configuration
	appConfig, err := config.Load("hardware-backend")
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	// Initialize logger
	if err := logger.InitLogger(&logger.LogConfig{
		Level:       appConfig.Log.Level,
		Environment: appConfig.Server.Env,
		ServiceName: appConfig.ServiceName,
	}); err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	log := logger.GetLogger()
	defer log.Sync()

	log.Info("Starting hardware-backend", appConfig.LogConfig()...)

	// Initialize Prometheus metrics
	prometheus.InitMetrics(appConfig)
	log.Info("Prometheus metrics initialized",
		zap.String("metrics_prefix", appConfig.Metrics.Prefix))

	// Initialize database
	db, err := database.InitDB(&appConfig.DB)
	if err != nil {
		log.Fatal("Failed to initialize database", zap.Error(err))
	}
	log.Info("Database connection established")

	if err := database.MigrateModels(
		&model.User{},
		&model.Product{},
		&model.Supplier{},
		&model.Quotation{},
		&model.QuotationItem{},
		&model.Reservation{},
	); err != nil {
		log.Fatal("Failed to run migrations", zap.Error(err))
	}

	// Wire stores and the authorization gate
	jwtUtil := jwtutil.NewJWTUtil(&appConfig.JWT)
	notifier := notify.NewNotifier(log)
	authenticator := auth.NewAuthenticator(db, jwtUtil)

	users := store.NewUserStore(db)
	products := store.NewProductStore(db, notifier)
	suppliers := store.NewSupplierStore(db, notifier)
	quotations := store.NewQuotationStore(db)
	reservations := store.NewReservationStore(db)

	userHandler := handler.NewUserHandler(users, jwtUtil, appConfig.JWT.CookieEnabled)
	productHandler := handler.NewProductHandler(products)
	supplierHandler := handler.NewSupplierHandler(suppliers)
	quotationHandler := handler.NewQuotationHandler(quotations)
	reservationHandler := handler.NewReservationHandler(reservations)

	// Initialize Echo instance
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewRequestValidator()

	// Middleware
	e.Use(middleware.Recover())
	e.Use(mid.RequestID())
	e.Use(logger.Middleware())
	e.Use(mid.Metrics)

	requireAuth := mid.Auth(authenticator)
	optionalAuth := mid.OptionalAuth(authenticator)
	adminOnly := mid.RequireRoles(model.RoleAdmin)

	// Routes
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))
	e.GET("/health", handler.Health)

	// User routes
	userAPI := e.Group("/api/users")
	userAPI.POST("/register", userHandler.Register)
	userAPI.POST("/login", userHandler.Login)
	userAPI.GET("/logout", userHandler.Logout, requireAuth)
	userAPI.GET("/me", userHandler.Me, requireAuth)
	userAPI.PUT("/me", userHandler.UpdateMe, requireAuth)
	userAPI.DELETE("/me", userHandler.DeleteMe, requireAuth)
	userAPI.PUT("/password", userHandler.ChangePassword, requireAuth)
	userAPI.GET("", userHandler.List, requireAuth, adminOnly)
	userAPI.GET("/:id", userHandler.Get, requireAuth, adminOnly)
	userAPI.PUT("/:id", userHandler.Update, requireAuth, adminOnly)
	userAPI.DELETE("/:id", userHandler.Delete, requireAuth, adminOnly)

	// Product routes: reads are public, inactive rows visible to admins only
	productAPI := e.Group("/api/products")
	productAPI.GET("", productHandler.List, optionalAuth)
	productAPI.GET("/low-stock", productHandler.LowStock, requireAuth, adminOnly)
	productAPI.GET("/categories", productHandler.Categories)
	productAPI.GET("/:id", productHandler.Get)
	productAPI.POST("", productHandler.Create, requireAuth, adminOnly)
	productAPI.PUT("/:id", productHandler.Update, requireAuth, adminOnly)
	productAPI.DELETE("/:id", productHandler.Delete, requireAuth, adminOnly)
	productAPI.PATCH("/:id/stock", productHandler.AdjustStock, requireAuth, adminOnly)

	// Supplier routes (all admin)
	supplierAPI := e.Group("/api/suppliers", requireAuth, adminOnly)
	supplierAPI.POST("", supplierHandler.Create)
	supplierAPI.GET("", supplierHandler.List)
	supplierAPI.GET("/expired-agreements", supplierHandler.ExpiredAgreements)
	supplierAPI.GET("/:id", supplierHandler.Get)
	supplierAPI.PUT("/:id", supplierHandler.Update)
	supplierAPI.DELETE("/:id", supplierHandler.Delete)
	supplierAPI.GET("/:id/products", supplierHandler.Products)
	supplierAPI.POST("/:id/notify-low-stock", supplierHandler.NotifyLowStock)

	// Quotation routes: submission is public, management is protected
	quotationAPI := e.Group("/api/quotations")
	quotationAPI.POST("", quotationHandler.Create, optionalAuth)
	quotationAPI.GET("", quotationHandler.List, requireAuth, adminOnly)
	quotationAPI.GET("/my-quotations", quotationHandler.Mine, requireAuth)
	quotationAPI.GET("/status/:status", quotationHandler.ListByStatus, requireAuth, adminOnly)
	quotationAPI.GET("/:id", quotationHandler.Get, requireAuth)
	quotationAPI.PATCH("/:id/status", quotationHandler.UpdateStatus, requireAuth, adminOnly)
	quotationAPI.PATCH("/:id/notes", quotationHandler.UpdateNotes, requireAuth, adminOnly)
	quotationAPI.DELETE("/:id", quotationHandler.Delete, requireAuth, adminOnly)

	// Reservation routes (all authenticated)
	reservationAPI := e.Group("/api/reservations", requireAuth)
	reservationAPI.POST("", reservationHandler.Create)
	reservationAPI.GET("", reservationHandler.List, adminOnly)
	reservationAPI.GET("/my-reservations", reservationHandler.Mine)
	reservationAPI.GET("/:id", reservationHandler.Get)
	reservationAPI.PUT("/:id", reservationHandler.Update)
	reservationAPI.PATCH("/:id/status", reservationHandler.UpdateStatus, adminOnly)
	reservationAPI.DELETE("/:id", reservationHandler.Delete, adminOnly)

	// Start server
	port := appConfig.Server.Port
	log.Info("Starting server", zap.String("port", port))
	if err := e.Start(":" + port); err != nil {
		log.Fatal("Server error", zap.Error(err))
	}
}
