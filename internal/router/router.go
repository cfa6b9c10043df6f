package router

import (
	"time"

	"github.com/emerpc1992/horale/internal/cache"
	"github.com/emerpc1992/horale/internal/config"
	"github.com/emerpc1992/horale/internal/handler"
	"github.com/emerpc1992/horale/internal/middleware"
	"github.com/emerpc1992/horale/internal/repository"
	"github.com/emerpc1992/horale/internal/service"
	"github.com/emerpc1992/horale/internal/worker"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// New wires all dependencies and returns a configured Gin engine.
// Dependency graph: Handler ← Service ← Repository ← DB/Redis
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

	summaries := cache.NewSummaryCache(rdb)

	// ── Repositories ─────────────────────────────────────────────────────────
	userRepo := repository.NewUserRepository(db)
	productRepo := repository.NewProductRepository(db)
	staffRepo := repository.NewStaffRepository(db)
	saleRepo := repository.NewSaleRepository(db)
	expenseRepo := repository.NewExpenseRepository(db)
	creditRepo := repository.NewCreditRepository(db)

	// ── Services ─────────────────────────────────────────────────────────────
	authSvc := service.NewAuthService(userRepo, cfg)
	productSvc := service.NewProductService(productRepo)
	staffSvc := service.NewStaffService(staffRepo)
	saleSvc := service.NewSaleService(saleRepo, productRepo, staffRepo, summaries, dispatcher, cfg.BusinessName, cfg.PDFStoragePath)
	commissionSvc := service.NewCommissionService(saleRepo, staffRepo, summaries)
	reportSvc := service.NewReportService(saleRepo, expenseRepo, summaries)
	expenseSvc := service.NewExpenseService(expenseRepo, summaries)
	creditSvc := service.NewCreditService(creditRepo, productRepo)

	// ── Handlers ─────────────────────────────────────────────────────────────
	authH := handler.NewAuthHandler(authSvc)
	productsH := handler.NewProductsHandler(productSvc)
	staffH := handler.NewStaffHandler(staffSvc, commissionSvc)
	salesH := handler.NewSalesHandler(saleSvc)
	reportsH := handler.NewReportsHandler(reportSvc)
	expensesH := handler.NewExpensesHandler(expenseSvc)
	creditsH := handler.NewCreditsHandler(creditSvc)

	// ── Routes ───────────────────────────────────────────────────────────────

	// Public
	r.GET("/health", handler.Health(db, rdb))

	auth := r.Group("/v1/auth")
	{
		auth.POST("/login", middleware.LoginRateLimiter(), authH.Login)
		auth.POST("/refresh", authH.Refresh)
	}

	// Protected routes
	jwtMW := middleware.JWTAuth(cfg.JWTSecret)
	anyRole := middleware.RequireRole("cashier", "admin")
	adminOnly := middleware.RequireRole("admin")

	v1 := r.Group("/v1", jwtMW)
	{
		sales := v1.Group("/sales")
		{
			sales.POST("", anyRole, salesH.Create)
			sales.GET("", anyRole, salesH.List)
			sales.GET("/:id", anyRole, salesH.Get)
			sales.GET("/:id/receipt", anyRole, salesH.Receipt)
			sales.DELETE("/:id", adminOnly, salesH.Cancel)
		}

		products := v1.Group("/products")
		{
			products.GET("", anyRole, productsH.List)
			products.GET("/low-stock", anyRole, productsH.LowStock)
			products.GET("/:id", anyRole, productsH.Get)
			products.POST("", adminOnly, productsH.Create)
			products.PUT("/:id", adminOnly, productsH.Update)
			products.PATCH("/:id/stock", adminOnly, productsH.AdjustStock)
			products.DELETE("/:id", adminOnly, productsH.Deactivate)
		}

		staff := v1.Group("/staff")
		{
			staff.GET("", anyRole, staffH.List)
			staff.POST("", adminOnly, staffH.Create)
			staff.DELETE("/:id", adminOnly, staffH.Deactivate)
			staff.POST("/:id/commissions", anyRole, staffH.CommissionReport)
			staff.DELETE("/:id/commissions", adminOnly, staffH.ClearCommissions)
		}

		expenses := v1.Group("/expenses")
		{
			expenses.GET("", anyRole, expensesH.List)
			expenses.POST("", adminOnly, expensesH.Create)
			expenses.DELETE("/:id", adminOnly, expensesH.Delete)
		}

		credits := v1.Group("/credits")
		{
			credits.GET("", anyRole, creditsH.List)
			credits.POST("", anyRole, creditsH.Create)
			credits.POST("/:id/payments", anyRole, creditsH.AddPayment)
		}

		v1.GET("/reports/financial", adminOnly, reportsH.FinancialSummary)
	}

	return r
}
