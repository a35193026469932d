package server

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"tastycorner/internal/config"
	"tastycorner/internal/handlers"
	"tastycorner/internal/repository"
	"tastycorner/internal/services"
	"tastycorner/internal/session"
	"tastycorner/pkg/logger"
	"tastycorner/web"
)

// SetupRouter wires repositories, services and handlers onto a gin engine.
func SetupRouter(cfg *config.Config, db *gorm.DB, store session.Store, log *logger.Logger) (*gin.Engine, error) {
	// Initialize repositories
	userRepo := repository.NewUserRepository(db)
	employeeRepo := repository.NewEmployeeRepository(db)
	menuRepo := repository.NewMenuRepository(db)
	wishlistRepo := repository.NewWishlistRepository(db)
	couponRepo := repository.NewCouponRepository(db)
	orderRepo := repository.NewOrderRepository(db)
	attendanceRepo := repository.NewAttendanceRepository(db)
	statsRepo := repository.NewStatsRepository(db)

	// Initialize services
	userService := services.NewUserService(userRepo)
	menuService := services.NewMenuService(menuRepo, wishlistRepo)
	wishlistService := services.NewWishlistService(wishlistRepo, menuRepo)
	orderService := services.NewOrderService(orderRepo, couponRepo, services.Pricing{
		TaxRate:     cfg.TaxRate,
		DeliveryFee: cfg.DeliveryFee,
	})
	adminService := services.NewAdminService(
		services.AdminCredentials{Email: cfg.AdminEmail, PasswordHash: cfg.AdminPasswordHash},
		statsRepo, employeeRepo, menuRepo, couponRepo, orderRepo,
	)
	attendanceService := services.NewAttendanceService(employeeRepo, attendanceRepo)
	driverService := services.NewDriverService(employeeRepo, orderRepo)

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(userService, cfg.SessionTTL, log)
	mainHandler := handlers.NewMainHandler(menuService, orderService, wishlistService, log)
	adminHandler := handlers.NewAdminHandler(adminService, cfg.AdminSessionTTL, log)
	workerHandler := handlers.NewWorkerHandler(attendanceService, cfg.SessionTTL, log)
	driverHandler := handlers.NewDriverHandler(driverService, cfg.SessionTTL, log)

	tmpl, err := web.Templates()
	if err != nil {
		return nil, fmt.Errorf("failed to parse templates: %w", err)
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(handlers.RequestLogger(log))
	router.SetHTMLTemplate(tmpl)
	router.StaticFS("/static", http.FS(web.Static()))

	// Health check endpoint
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	sessions := session.NewManager(store, cfg.SessionTTL, cfg.CookieSecure)
	app := router.Group("", sessions.Middleware())

	// Public pages
	app.GET("/", mainHandler.Home)
	app.GET("/menu", mainHandler.Menu)
	app.GET("/about", mainHandler.About)
	app.GET("/contact", mainHandler.Contact)
	app.GET("/signup", authHandler.SignUpPage)
	app.POST("/signup", authHandler.SignUp)
	app.GET("/signin", authHandler.SignInPage)
	app.POST("/signin", authHandler.SignIn)
	app.GET("/signout", authHandler.SignOut)

	customer := app.Group("", handlers.RequireRole(log, session.RoleCustomer, "/signin", "Please sign in"))
	{
		customer.GET("/cart", mainHandler.Cart)
		customer.POST("/cart", mainHandler.AddToCart)
		customer.POST("/update_cart_quantity", mainHandler.UpdateCartQuantity)
		customer.GET("/remove_from_cart/:item_id", mainHandler.RemoveFromCart)
		customer.POST("/remove_from_cart/:item_id", mainHandler.RemoveFromCart)
		customer.GET("/checkout", mainHandler.CheckoutPage)
		customer.POST("/checkout", mainHandler.Checkout)
		customer.GET("/order_confirmation/:id", mainHandler.OrderConfirmation)
		customer.GET("/orders", mainHandler.Orders)
		customer.GET("/wishlist", mainHandler.Wishlist)
		customer.POST("/wishlist", mainHandler.AddToWishlist)
		customer.GET("/remove_from_wishlist/:item_id", mainHandler.RemoveFromWishlist)
		customer.POST("/remove_from_wishlist/:item_id", mainHandler.RemoveFromWishlist)
	}

	app.GET("/admin/login", adminHandler.LoginPage)
	app.POST("/admin/login", adminHandler.Login)
	admin := app.Group("/admin", handlers.RequireRole(log, session.RoleAdmin, "/admin/login", ""))
	{
		admin.GET("/", adminHandler.Dashboard)
		admin.GET("/logout", adminHandler.Logout)
		admin.POST("/employees/add", adminHandler.AddEmployee)
		admin.POST("/employees/:employee_id/paid", adminHandler.MarkPaid)
		admin.POST("/menu/add", adminHandler.AddMenuItem)
		admin.POST("/coupons/add", adminHandler.AddCoupon)
		admin.POST("/orders/:id/status", adminHandler.UpdateOrderStatus)
	}

	app.GET("/worker/login", workerHandler.LoginPage)
	app.POST("/worker/login", workerHandler.Login)
	worker := app.Group("/worker", handlers.RequireRole(log, session.RoleWorker, "/worker/login", ""))
	{
		worker.GET("/dashboard", workerHandler.Dashboard)
		worker.POST("/checkin", workerHandler.CheckIn)
		worker.POST("/checkout", workerHandler.CheckOut)
		worker.GET("/logout", workerHandler.Logout)
	}

	app.GET("/driver/login", driverHandler.LoginPage)
	app.POST("/driver/login", driverHandler.Login)
	driver := app.Group("/driver", handlers.RequireRole(log, session.RoleDriver, "/driver/login", ""))
	{
		driver.GET("/dashboard", driverHandler.Dashboard)
		driver.GET("/route-optimizer", driverHandler.RouteOptimizer)
		driver.POST("/orders/:id/delivered", driverHandler.MarkDelivered)
		driver.GET("/logout", driverHandler.Logout)
	}
	driverAPI := app.Group("/driver/api", handlers.RequireRoleAPI(session.RoleDriver))
	{
		driverAPI.GET("/deliveries/pending", driverHandler.PendingDeliveries)
	}

	return router, nil
}
