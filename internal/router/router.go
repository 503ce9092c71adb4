package router

import (
	"time"

	"github.com/kallesh653/smartcafee-sub000/internal/config"
	"github.com/kallesh653/smartcafee-sub000/internal/handler"
	"github.com/kallesh653/smartcafee-sub000/internal/middleware"
	"github.com/kallesh653/smartcafee-sub000/internal/model"
	"github.com/kallesh653/smartcafee-sub000/internal/repository"
	"github.com/kallesh653/smartcafee-sub000/internal/service"
	"github.com/kallesh653/smartcafee-sub000/internal/worker"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

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

	// ── Repositories ─────────────────────────────────────────────────────────
	userRepo := repository.NewUserRepository(db)
	categoryRepo := repository.NewCategoryRepository(db)
	productRepo := repository.NewProductRepository(db)
	orderRepo := repository.NewOrderRepository(db)
	billRepo := repository.NewBillRepository(db)
	supplierRepo := repository.NewSupplierRepository(db)
	purchaseRepo := repository.NewPurchaseRepository(db)
	movementRepo := repository.NewStockMovementRepository(db)
	readyItemRepo := repository.NewReadyItemRepository(db)
	reportRepo := repository.NewReportRepository(db)

	// ── Services ─────────────────────────────────────────────────────────────
	authSvc := service.NewAuthService(userRepo, cfg)
	categorySvc := service.NewCategoryService(categoryRepo, rdb)
	productSvc := service.NewProductService(productRepo, categoryRepo, rdb)
	orderSvc := service.NewOrderService(orderRepo, productRepo)
	billingSvc := service.NewBillingService(billRepo, orderRepo, productRepo, movementRepo, dispatcher, cfg)
	supplierSvc := service.NewSupplierService(supplierRepo)
	purchaseSvc := service.NewPurchaseService(purchaseRepo, supplierRepo, productRepo, movementRepo)
	inventorySvc := service.NewInventoryService(productRepo, movementRepo, readyItemRepo)
	reportSvc := service.NewReportService(reportRepo)

	// ── Handlers ─────────────────────────────────────────────────────────────
	authH := handler.NewAuthHandler(authSvc)
	categoriesH := handler.NewCategoriesHandler(categorySvc)
	productsH := handler.NewProductsHandler(productSvc)
	ordersH := handler.NewOrdersHandler(orderSvc, billingSvc)
	billsH := handler.NewBillsHandler(billingSvc)
	suppliersH := handler.NewSuppliersHandler(supplierSvc)
	purchasesH := handler.NewPurchasesHandler(purchaseSvc)
	inventoryH := handler.NewInventoryHandler(inventorySvc)
	reportsH := handler.NewReportsHandler(reportSvc)

	// Role shorthands
	staff := middleware.RequireRole(model.RoleCashier, model.RoleManager, model.RoleAdmin)
	managerUp := middleware.RequireRole(model.RoleManager, model.RoleAdmin)
	adminOnly := middleware.RequireRole(model.RoleAdmin)

	// ── Routes ───────────────────────────────────────────────────────────────

	// Public
	r.GET("/health", handler.Health(db, rdb))

	// Auth (public)
	auth := r.Group("/v1/auth")
	{
		auth.POST("/login", middleware.LoginRateLimiter(), authH.Login)
		auth.POST("/refresh", authH.Refresh)
	}

	// Customer self-order surface — no auth required
	r.GET("/v1/menu", productsH.Menu)
	r.POST("/v1/orders", ordersH.CreateOrder)
	r.GET("/v1/orders/:id", ordersH.GetOrder)

	// Protected routes
	jwtMW := middleware.JWTAuth(cfg.JWTSecret)
	v1 := r.Group("/v1", jwtMW)
	{
		// Orders — kitchen / counter staff
		v1.GET("/orders", staff, ordersH.ListOrders)
		v1.PUT("/orders/:id/status", staff, ordersH.UpdateStatus)
		v1.POST("/orders/:id/convert", staff, ordersH.ConvertToBill)

		// Bills
		v1.POST("/bills", staff, billsH.CreateBill)
		v1.GET("/bills", staff, billsH.ListBills)
		v1.GET("/bills/:id", staff, billsH.GetBill)
		v1.DELETE("/bills/:id", managerUp, billsH.CancelBill)
		v1.POST("/bills/:id/return", managerUp, billsH.ReturnItems)

		// Catalog — all staff read, admin writes
		v1.GET("/products", staff, productsH.List)
		v1.GET("/products/:id", staff, productsH.Get)
		v1.POST("/products/:id/stock", managerUp, inventoryH.AdjustStock)
		prods := v1.Group("/products", adminOnly)
		{
			prods.POST("", productsH.Create)
			prods.PUT("/:id", productsH.Update)
			prods.DELETE("/:id", productsH.Delete)
			prods.POST("/:id/reactivate", productsH.Reactivate)
		}

		v1.GET("/categories", staff, categoriesH.List)
		categories := v1.Group("/categories", adminOnly)
		{
			categories.POST("", categoriesH.Create)
			categories.PUT("/:id", categoriesH.Update)
			categories.DELETE("/:id", categoriesH.Delete)
		}

		// Inventory
		stock := v1.Group("/stock", managerUp)
		{
			stock.GET("/movements", inventoryH.ListMovements)
			stock.GET("/alerts", inventoryH.Alerts)
		}
		ready := v1.Group("/ready-items", managerUp)
		{
			ready.POST("", inventoryH.CreateReadyItem)
			ready.GET("", inventoryH.ListReadyItems)
			ready.DELETE("/:id", inventoryH.DeleteReadyItem)
			ready.POST("/:id/restock", inventoryH.Restock)
		}

		// Purchases / suppliers — manager and above
		purchases := v1.Group("/purchases", managerUp)
		{
			purchases.POST("", purchasesH.Create)
			purchases.GET("", purchasesH.List)
			purchases.GET("/:id", purchasesH.Get)
		}
		suppliers := v1.Group("/suppliers", managerUp)
		{
			suppliers.POST("", suppliersH.Create)
			suppliers.GET("", suppliersH.List)
			suppliers.GET("/:id", suppliersH.Get)
			suppliers.PUT("/:id", suppliersH.Update)
			suppliers.DELETE("/:id", suppliersH.Delete)
		}

		// Reports — manager and above
		reports := v1.Group("/reports", managerUp)
		{
			reports.GET("/sales", reportsH.Sales)
			reports.GET("/items", reportsH.Items)
			reports.GET("/cashiers", reportsH.Cashiers)
			reports.GET("/shows", reportsH.Shows)
		}

		// Staff accounts — admin only
		users := v1.Group("/users", adminOnly)
		{
			users.POST("", authH.CreateUser)
			users.GET("", authH.ListUsers)
			users.PUT("/:id", authH.UpdateUser)
			users.DELETE("/:id", authH.DeactivateUser)
		}
	}

	// Swagger UI — only enabled outside production
	if cfg.Env != "production" {
		r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	return r
}
