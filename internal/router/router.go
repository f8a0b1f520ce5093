package router

import (
	"time"

	"github.com/ShataAbiyyuPrasetyo/Elektronik-Shata/internal/config"
	"github.com/ShataAbiyyuPrasetyo/Elektronik-Shata/internal/handler"
	"github.com/ShataAbiyyuPrasetyo/Elektronik-Shata/internal/infra"
	"github.com/ShataAbiyyuPrasetyo/Elektronik-Shata/internal/middleware"
	"github.com/ShataAbiyyuPrasetyo/Elektronik-Shata/internal/repository"
	"github.com/ShataAbiyyuPrasetyo/Elektronik-Shata/internal/service"
	"github.com/ShataAbiyyuPrasetyo/Elektronik-Shata/internal/worker"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// New wires all dependencies and returns a configured Gin engine.
// Dependency graph: Handler ← Service ← Repository ← DB/Redis
func New(cfg *config.Config, db *gorm.DB, rdb *redis.Client, gemini *infra.GeminiClient, geminiCB *infra.CircuitBreaker, dispatcher *worker.Dispatcher) *gin.Engine {
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
	txRepo := repository.NewTransactionRepository(db)
	movementRepo := repository.NewStockMovementRepository(db)

	// ── Services ─────────────────────────────────────────────────────────────
	authSvc := service.NewAuthService(userRepo, cfg)
	reportSvc := service.NewReportService(txRepo, productRepo, rdb, cfg.PDFStoragePath, dispatcher)
	productSvc := service.NewProductService(productRepo, movementRepo, reportSvc)
	saleSvc := service.NewSaleService(txRepo, productRepo, movementRepo, reportSvc, dispatcher)
	txSvc := service.NewTransactionService(txRepo, productRepo, movementRepo, reportSvc)
	advisorSvc := service.NewAdvisorService(reportSvc, txRepo, productRepo, gemini, geminiCB)

	// ── Handlers ─────────────────────────────────────────────────────────────
	authH := handler.NewAuthHandler(authSvc)
	usersH := handler.NewUsersHandler(authSvc)
	productsH := handler.NewProductsHandler(productSvc)
	salesH := handler.NewSalesHandler(saleSvc)
	transactionsH := handler.NewTransactionsHandler(txSvc)
	reportsH := handler.NewReportsHandler(reportSvc)
	advisorH := handler.NewAdvisorHandler(advisorSvc)

	// ── Routes ───────────────────────────────────────────────────────────────

	// Public
	r.GET("/health", handler.Health(db, rdb))

	// Auth (public)
	auth := r.Group("/v1/auth")
	{
		auth.POST("/login", middleware.LoginRateLimiter(), authH.Login)
		auth.POST("/refresh", authH.Refresh)
	}

	// Protected routes
	jwtMW := middleware.JWTAuth(cfg.JWTSecret)
	v1 := r.Group("/v1", jwtMW)
	{
		// Roles: kasir, supervisor, admin — declared per-endpoint
		v1.POST("/sales", middleware.RequireRole("kasir", "supervisor", "admin"), salesH.Register)

		v1.GET("/transactions", middleware.RequireRole("kasir", "supervisor", "admin"), transactionsH.List)
		v1.GET("/transactions/:id", middleware.RequireRole("kasir", "supervisor", "admin"), transactionsH.GetByID)
		v1.POST("/transactions/purchases", middleware.RequireRole("supervisor", "admin"), transactionsH.RegisterPurchase)
		v1.POST("/transactions/expenses", middleware.RequireRole("supervisor", "admin"), transactionsH.RegisterExpense)

		// Catalog — everyone authenticated can read
		v1.GET("/products", middleware.RequireRole("kasir", "supervisor", "admin"), productsH.List)
		v1.GET("/products/:id", middleware.RequireRole("kasir", "supervisor", "admin"), productsH.GetByID)
		v1.GET("/products/sku/:sku", middleware.RequireRole("kasir", "supervisor", "admin"), productsH.GetBySKU)
		v1.GET("/products/:id/movements", middleware.RequireRole("supervisor", "admin"), productsH.Movements)
		// PATCH stock — supervisor or admin
		v1.PATCH("/products/:id/stock", middleware.RequireRole("supervisor", "admin"), productsH.AdjustStock)
		// Write operations — admin only
		prods := v1.Group("/products", middleware.RequireRole("admin"))
		{
			prods.POST("", productsH.Create)
			prods.PUT("/:id", productsH.Update)
			prods.DELETE("/:id", productsH.Deactivate)
		}

		// Reports — supervisor and admin
		reports := v1.Group("/reports", middleware.RequireRole("supervisor", "admin"))
		{
			reports.GET("/journal", reportsH.Journal)
			reports.GET("/journal/pdf", reportsH.JournalPDF)
			reports.POST("/journal/email", reportsH.EmailJournal)
			reports.GET("/summary", reportsH.Summary)
		}

		// AI advisor — supervisor and admin
		v1.POST("/advisor", middleware.RequireRole("supervisor", "admin"), advisorH.Ask)

		users := v1.Group("/users", middleware.RequireRole("admin"))
		{
			users.POST("", usersH.Create)
			users.GET("", usersH.List)
			users.PUT("/:id", usersH.Update)
			users.DELETE("/:id", usersH.Deactivate)
			users.PATCH("/:id/reactivate", usersH.Reactivate)
		}
	}

	return r
}
