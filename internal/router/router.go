package router

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/seanvillas05-art/pos-app1/internal/config"
	"github.com/seanvillas05-art/pos-app1/internal/handler"
	"github.com/seanvillas05-art/pos-app1/internal/middleware"
	"github.com/seanvillas05-art/pos-app1/internal/repository"
	"github.com/seanvillas05-art/pos-app1/internal/service"
	"github.com/seanvillas05-art/pos-app1/internal/worker"
)

// New wires all dependencies and returns a configured Gin engine.
// Dependency graph: Handler <- Service <- Repository <- DB/Redis
func New(cfg *config.Config, db *gorm.DB, rdb *redis.Client, dispatcher *worker.Dispatcher) *gin.Engine {
	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()

	// Global middleware chain (order matters)
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger())
	r.Use(middleware.Recovery())
	r.Use(middleware.CORS())
	r.Use(middleware.ErrorHandler())
	r.Use(middleware.RateLimiter(1000, time.Minute)) // 1000 req/min per IP

	// ── Repositories ─────────────────────────────────────────────────────────
	userRepo := repository.NewUserRepository(db)
	productRepo := repository.NewProductRepository(db)
	receiptRepo := repository.NewReceiptRepository(db)
	movementRepo := repository.NewStockMovementRepository(db)
	settingsRepo := repository.NewSettingsRepository(db)

	// ── Services ─────────────────────────────────────────────────────────────
	authSvc := service.NewAuthService(userRepo, cfg)
	settingsSvc := service.NewSettingsService(settingsRepo)
	catalogSvc := service.NewCatalogService(productRepo, movementRepo, rdb)
	cartSvc := service.NewCartService(productRepo)
	checkoutSvc := service.NewCheckoutService(productRepo, receiptRepo, movementRepo, settingsSvc, dispatcher)

	// ── Handlers ─────────────────────────────────────────────────────────────
	authH := handler.NewAuthHandler(authSvc)
	usersH := handler.NewUsersHandler(authSvc)
	productsH := handler.NewProductsHandler(catalogSvc, cfg)
	cartH := handler.NewCartHandler(cartSvc, catalogSvc, settingsSvc)
	checkoutH := handler.NewCheckoutHandler(checkoutSvc, cartSvc)
	settingsH := handler.NewSettingsHandler(settingsSvc)
	priceH := handler.NewPriceCheckHandler(catalogSvc, settingsSvc, rdb)

	// ── Routes ───────────────────────────────────────────────────────────────

	// Public
	r.GET("/health", handler.Health(db, rdb))

	// Auth (public)
	auth := r.Group("/v1/auth")
	{
		auth.POST("/login", middleware.LoginRateLimiter(), authH.Login)
		auth.POST("/refresh", authH.Refresh)
	}

	// Price check, no auth required
	r.GET("/v1/price/:token", priceH.GetPrice)

	// Protected routes
	jwtMW := middleware.JWTAuth(cfg.JWTSecret)
	v1 := r.Group("/v1", jwtMW)
	{
		// Catalog reads are available to every authenticated role
		v1.GET("/products", middleware.RequireRole("admin", "cashier"), productsH.List)
		v1.GET("/products/:id", middleware.RequireRole("admin", "cashier"), productsH.Get)
		v1.GET("/products/:id/movements", middleware.RequireRole("admin"), productsH.Movements)
		v1.GET("/categories", middleware.RequireRole("admin", "cashier"), productsH.Categories)

		// Catalog writes are admin only
		prods := v1.Group("/products", middleware.RequireRole("admin"))
		{
			prods.POST("", productsH.Create)
			prods.PUT("/:id", productsH.Update)
			prods.DELETE("/:id", productsH.Delete)
			prods.PATCH("/:id/stock", productsH.AdjustStock)
		}

		// Inventory alert views
		alerts := v1.Group("/alerts", middleware.RequireRole("admin"))
		{
			alerts.GET("/low-stock", productsH.LowStock)
			alerts.GET("/expiring", productsH.ExpiringSoon)
			alerts.GET("/expired", productsH.Expired)
		}

		// Per-operator cart
		cart := v1.Group("/cart", middleware.RequireRole("admin", "cashier"))
		{
			cart.GET("", cartH.Get)
			cart.POST("/items", cartH.Add)
			cart.PATCH("/items/:productId", cartH.UpdateQuantity)
			cart.DELETE("/items/:productId", cartH.Remove)
			cart.DELETE("", cartH.Clear)
		}

		// Checkout and receipts
		v1.POST("/checkout", middleware.RequireRole("admin", "cashier"), checkoutH.Complete)
		v1.GET("/receipts/latest", middleware.RequireRole("admin", "cashier"), checkoutH.LatestReceipt)
		v1.GET("/receipts/:id", middleware.RequireRole("admin", "cashier"), checkoutH.Receipt)

		// Store settings: anyone can read, admin can write
		v1.GET("/settings", middleware.RequireRole("admin", "cashier"), settingsH.Get)
		v1.PUT("/settings", middleware.RequireRole("admin"), settingsH.Update)

		// User management, admin only
		users := v1.Group("/users", middleware.RequireRole("admin"))
		{
			users.POST("", usersH.Create)
			users.GET("", usersH.List)
		}
	}

	return r
}
