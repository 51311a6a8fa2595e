package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"

	"go-boutique-pos/internal/handler"
	"go-boutique-pos/internal/middleware"
	"go-boutique-pos/internal/model"
	"go-boutique-pos/internal/pos"
	"go-boutique-pos/internal/repository"
	"go-boutique-pos/internal/service"
	"go-boutique-pos/internal/ws"
	"go-boutique-pos/pkg/database"

	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

func main() {
	// 1. Load Env
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found")
	}

	logger := newLogger()

	// 2. Setup Database
	db := database.ConnectDB()
	// Auto migrate on boot; a dedicated migration tool is advisable in production
	db.AutoMigrate(
		&model.Product{}, &model.ProductVariant{},
		&model.Sale{}, &model.SaleItem{}, &model.Payment{}, &model.SaleCounter{},
		&model.Customer{}, &model.Address{},
		&model.Seller{}, &model.DeliveryFee{},
		&model.User{}, &model.Privilege{}, &model.Role{},
	)

	// 3. Seed default privileges, roles, and admin user
	seedPrivilegesRolesAndAdmin(db, logger)

	// 4. Setup WebSocket Hub
	wsHub := ws.NewHub()
	go wsHub.Run()

	// 5. Dependency Injection (Wiring Layers)
	productRepo := repository.NewProductRepo(db)
	saleRepo := repository.NewSaleRepo(db)
	customerRepo := repository.NewCustomerRepo(db)
	sellerRepo := repository.NewSellerRepo(db)
	feeRepo := repository.NewDeliveryFeeRepo(db)
	userRepo := repository.NewUserRepo(db)
	privilegeRepo := repository.NewPrivilegeRepo(db)
	roleRepo := repository.NewRoleRepo(db)

	registry := pos.NewRegistry()

	catalogService := service.NewCatalogService(productRepo, wsHub, logger.WithField("component", "catalog"))
	deliveryService := service.NewDeliveryService(feeRepo)
	checkoutService := service.NewCheckoutService(db, saleRepo, productRepo, wsHub, logger.WithField("component", "checkout"))
	salesService := service.NewSalesService(saleRepo)
	dashboardService := service.NewDashboardService(saleRepo, productRepo)
	authService := service.NewAuthService(userRepo, logger.WithField("component", "auth"))
	userService := service.NewUserService(userRepo, roleRepo, privilegeRepo, logger.WithField("component", "users"))

	authHandler := handler.NewAuthHandler(authService)
	userHandler := handler.NewUserHandler(userService)
	roleHandler := handler.NewRoleHandler(roleRepo, privilegeRepo)
	productHandler := handler.NewProductHandler(catalogService)
	posHandler := handler.NewPosHandler(registry, catalogService, deliveryService, checkoutService, customerRepo, sellerRepo)
	saleHandler := handler.NewSaleHandler(salesService, checkoutService)
	customerHandler := handler.NewCustomerHandler(customerRepo)
	sellerHandler := handler.NewSellerHandler(sellerRepo)
	feeHandler := handler.NewDeliveryFeeHandler(feeRepo, deliveryService)
	dashboardHandler := handler.NewDashboardHandler(dashboardService)

	// 6. Setup Fiber
	app := fiber.New(fiber.Config{
		AppName: "Boutique POS v1.0",
	})

	// Middleware
	app.Use(fiberlogger.New()) // Request logging
	app.Use(recover.New())     // Panic recovery
	app.Use(cors.New())        // CORS

	// 7. Routes
	api := app.Group("/api/v1")

	// ============ PUBLIC ROUTES ============
	auth := api.Group("/auth")
	auth.Post("/login", authHandler.Login)
	auth.Post("/reset-password", authHandler.ResetPassword)
	auth.Post("/validate-token", authHandler.ValidateToken)
	auth.Post("/heartbeat", middleware.RequireAuth(userRepo), authHandler.Heartbeat)

	// ============ PROTECTED ROUTES ============
	protected := api.Group("", middleware.RequireAuth(userRepo))

	// Register (cart + payment + finalize)
	posGroup := protected.Group("/pos", middleware.RequirePrivilege("sale:create"))
	posGroup.Get("/cart", posHandler.GetCart)
	posGroup.Post("/cart/items", posHandler.AddItem)
	posGroup.Put("/cart/items/:sku", posHandler.UpdateItem)
	posGroup.Delete("/cart/items/:sku", posHandler.RemoveItem)
	posGroup.Put("/cart/customer", posHandler.SetCustomer)
	posGroup.Put("/cart/seller", posHandler.SetSeller)
	posGroup.Put("/cart/delivery", posHandler.SetDelivery)
	posGroup.Delete("/cart/delivery", posHandler.RemoveDelivery)
	posGroup.Post("/cart/clear", posHandler.ClearCart)
	posGroup.Post("/payment", posHandler.BeginPayment)
	posGroup.Get("/payment", posHandler.GetPayment)
	posGroup.Delete("/payment", posHandler.VoidPayment)
	posGroup.Post("/payment/tenders", posHandler.AddTender)
	posGroup.Delete("/payment/tenders/:index", posHandler.RemoveTender)
	posGroup.Post("/finalize", posHandler.Finalize)
	posGroup.Get("/receipt", posHandler.GetReceipt)

	// Products
	protected.Get("/products", middleware.RequirePrivilege("product:view"), productHandler.GetProducts)
	protected.Get("/products/sku/:sku", middleware.RequirePrivilege("product:view"), productHandler.GetProductBySKU)
	protected.Get("/products/:id", middleware.RequirePrivilege("product:view"), productHandler.GetProduct)
	protected.Post("/products", middleware.RequirePrivilege("product:create"), productHandler.CreateProduct)
	protected.Put("/products/:id", middleware.RequirePrivilege("product:update"), productHandler.UpdateProduct)
	protected.Delete("/products/:id", middleware.RequirePrivilege("product:delete"), productHandler.DeleteProduct)

	// Sales history
	protected.Get("/sales", middleware.RequirePrivilege("sale:view"), saleHandler.GetSales)
	protected.Get("/sales/:id", middleware.RequirePrivilege("sale:view"), saleHandler.GetSale)
	protected.Post("/sales/:id/cancel", middleware.RequirePrivilege("sale:cancel"), saleHandler.CancelSale)
	protected.Delete("/sales/:id", middleware.RequirePrivilege("sale:delete"), saleHandler.DeleteSale)

	// Customers
	customers := protected.Group("/customers", middleware.RequirePrivilege("customer:manage"))
	customers.Get("/", customerHandler.GetCustomers)
	customers.Get("/:id", customerHandler.GetCustomer)
	customers.Post("/", customerHandler.CreateCustomer)
	customers.Put("/:id", customerHandler.UpdateCustomer)
	customers.Delete("/:id", customerHandler.DeleteCustomer)
	customers.Post("/:id/addresses", customerHandler.AddAddress)

	// Sellers
	sellers := protected.Group("/sellers", middleware.RequirePrivilege("seller:manage"))
	sellers.Get("/", sellerHandler.GetSellers)
	sellers.Get("/:id", sellerHandler.GetSeller)
	sellers.Post("/", sellerHandler.CreateSeller)
	sellers.Put("/:id", sellerHandler.UpdateSeller)
	sellers.Delete("/:id", sellerHandler.DeleteSeller)

	// Delivery fees
	fees := protected.Group("/delivery-fees", middleware.RequirePrivilege("delivery:manage"))
	fees.Get("/", feeHandler.GetFees)
	fees.Get("/resolve", feeHandler.ResolveFee)
	fees.Post("/", feeHandler.CreateFee)
	fees.Put("/:id", feeHandler.UpdateFee)
	fees.Delete("/:id", feeHandler.DeleteFee)

	// Dashboard
	dashboard := protected.Group("/dashboard", middleware.RequirePrivilege("dashboard:view"))
	dashboard.Get("/stats", dashboardHandler.GetStats)
	dashboard.Get("/revenue", dashboardHandler.GetRevenueSeries)
	dashboard.Get("/revenue-by-method", dashboardHandler.GetRevenueByMethod)
	dashboard.Get("/top-selling", dashboardHandler.GetTopSelling)

	// User Management
	protected.Get("/users", userHandler.GetUsers)
	protected.Get("/users/:id", userHandler.GetUser)
	protected.Post("/users", middleware.RequirePrivilege("user:create"), userHandler.CreateUser)
	protected.Put("/users/:id", middleware.RequirePrivilege("user:update"), userHandler.UpdateUser)
	protected.Delete("/users/:id", middleware.RequirePrivilege("user:delete"), userHandler.DeleteUser)
	protected.Put("/users/:id/privileges", middleware.RequirePrivilege("user:update_privilege"), userHandler.UpdateUserPrivileges)

	// Roles and privileges
	protected.Get("/roles", roleHandler.GetRoles)
	protected.Get("/privileges", roleHandler.GetPrivileges)

	// WebSocket Route
	app.Use("/ws", func(c *fiber.Ctx) error {
		if websocket.IsWebSocketUpgrade(c) {
			return c.Next()
		}
		return c.SendStatus(fiber.StatusUpgradeRequired)
	})
	app.Get("/ws", websocket.New(func(c *websocket.Conn) {
		wsHub.Register <- c
		defer func() { wsHub.Unregister <- c }()

		for {
			// Keep alive loop
			if _, _, err := c.ReadMessage(); err != nil {
				break
			}
		}
	}))

	// 8. Graceful Shutdown
	go func() {
		port := os.Getenv("PORT")
		if port == "" {
			port = "3000"
		}
		if err := app.Listen(":" + port); err != nil {
			log.Panic(err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")
	if err := app.Shutdown(); err != nil {
		log.Fatal("Server forced to shutdown:", err)
	}

	log.Println("Server exited")
}

func newLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(os.Stdout)
	if os.Getenv("LOG_FORMAT") == "json" {
		logger.SetFormatter(&logrus.JSONFormatter{})
	}
	if level, err := logrus.ParseLevel(os.Getenv("LOG_LEVEL")); err == nil {
		logger.SetLevel(level)
	}
	return logger
}

// seedPrivilegesRolesAndAdmin creates default privileges, roles, and admin user if they don't exist
func seedPrivilegesRolesAndAdmin(db *gorm.DB, logger *logrus.Logger) {
	privilegeRepo := repository.NewPrivilegeRepo(db)
	userRepo := repository.NewUserRepo(db)
	roleRepo := repository.NewRoleRepo(db)

	// 1. Seed privileges first
	if err := privilegeRepo.SeedDefaults(); err != nil {
		logger.Warnf("Failed to seed privileges: %v", err)
	}

	// 2. Seed roles
	if err := roleRepo.SeedDefaults(); err != nil {
		logger.Warnf("Failed to seed roles: %v", err)
	}

	// 3. Assign privileges to roles
	allPrivileges, _ := privilegeRepo.FindAll()

	// MASTER_ADMIN gets everything
	masterRole, err := roleRepo.FindByCode(model.RoleMasterAdmin)
	if err == nil && len(masterRole.Privileges) == 0 {
		db.Model(&masterRole).Association("Privileges").Replace(allPrivileges)
		logger.Info("MASTER_ADMIN role assigned all privileges")
	}

	// MANAGER gets everything except user administration
	managerRole, err := roleRepo.FindByCode(model.RoleManager)
	if err == nil && len(managerRole.Privileges) == 0 {
		managerPrivileges := []model.Privilege{}
		for _, p := range allPrivileges {
			switch p.Code {
			case "user:create", "user:update", "user:delete", "user:update_privilege":
				continue
			}
			managerPrivileges = append(managerPrivileges, p)
		}
		db.Model(&managerRole).Association("Privileges").Replace(managerPrivileges)
		logger.Info("MANAGER role assigned back-office privileges")
	}

	// CASHIER gets the register surface only
	cashierRole, err := roleRepo.FindByCode(model.RoleCashier)
	if err == nil && len(cashierRole.Privileges) == 0 {
		cashierCodes := map[string]bool{
			"product:view": true, "sale:create": true, "sale:view": true,
			"customer:manage": true, "delivery:manage": true,
		}
		cashierPrivileges := []model.Privilege{}
		for _, p := range allPrivileges {
			if cashierCodes[p.Code] {
				cashierPrivileges = append(cashierPrivileges, p)
			}
		}
		db.Model(&cashierRole).Association("Privileges").Replace(cashierPrivileges)
		logger.Info("CASHIER role assigned register privileges")
	}

	// 4. Create default admin user with MASTER_ADMIN role
	_, err = userRepo.FindByEmail("admin@example.com")
	if err != nil {
		masterRole, _ := roleRepo.FindByCode(model.RoleMasterAdmin)

		admin := &model.User{
			Email:      "admin@example.com",
			FullName:   "Master Administrator",
			RoleID:     &masterRole.ID,
			IsActive:   true,
			Privileges: masterRole.Privileges,
		}
		admin.CreatedBy = "system"
		admin.UpdatedBy = "system"

		if err := admin.SetPassword("admin123"); err != nil {
			logger.Warnf("Failed to hash admin password: %v", err)
			return
		}

		if err := userRepo.Create(admin); err != nil {
			logger.Warnf("Failed to create admin user: %v", err)
		} else {
			logger.Info("Admin user created: admin@example.com / admin123 (MASTER_ADMIN)")
		}
	}
}
