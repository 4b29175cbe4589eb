package routes

import (
	"bakery/configs"
	"bakery/controllers"
	"bakery/middlewares"
	"bakery/pkg/slipcheck"
	"bakery/repository"
	"bakery/services"
	"bakery/ws"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

func RegisterRoutes(r *gin.Engine, db *gorm.DB, cfg *configs.Config, hub *ws.OrderHub) {
	r.GET("/health", func(c *gin.Context) { c.JSON(200, gin.H{"success": true}) })

	// Repositories
	userRepo := repository.NewUserRepository(db)
	productRepo := repository.NewProductRepository(db)
	cartRepo := repository.NewCartRepository(db)
	orderRepo := repository.NewOrderRepository(db)
	slipRepo := repository.NewSlipRepository(db)
	favRepo := repository.NewFavoriteRepository(db)

	// Services
	authSvc := services.NewAuthService(userRepo, cfg.JWTSecret, cfg.JWTTTL)
	cartSvc := services.NewCartService(db, cartRepo, productRepo)
	orderSvc := services.NewOrderService(db, orderRepo, productRepo, slipRepo)
	orderSvc.Notifier = hub
	slipSvc := services.NewSlipService(slipcheck.New(slipcheck.NewZxingDecoder()), slipRepo, cfg.UploadDir)
	paySvc := services.NewPaymentService(cfg.PromptPayID)
	reportSvc := services.NewReportService(db)

	// Controllers
	authCtrl := controllers.NewAuthController(authSvc)
	productCtrl := controllers.NewProductController(productRepo)
	cartCtrl := controllers.NewCartController(cartSvc, cfg.ShippingFee)
	orderCtrl := controllers.NewOrderController(orderSvc)
	slipCtrl := controllers.NewSlipController(slipSvc)
	payCtrl := controllers.NewPaymentController(paySvc)
	favCtrl := controllers.NewFavoriteController(favRepo)
	adminCtrl := controllers.NewAdminController(authSvc, reportSvc)

	auth := middlewares.AuthMiddleware(cfg.JWTSecret)
	adminOnly := middlewares.AuthMiddleware(cfg.JWTSecret, "admin")

	api := r.Group("/api")

	// Auth (public)
	a := api.Group("/auth")
	{
		a.POST("/register", authCtrl.Register)
		a.POST("/login", authCtrl.Login)
	}
	aAuth := a.Group("", auth)
	{
		aAuth.GET("/me", authCtrl.Me)
		aAuth.PATCH("/me", authCtrl.UpdateMe)
	}

	// Products (public read)
	api.GET("/products", productCtrl.List)
	api.GET("/products/:id", productCtrl.Detail)

	// Payment helpers (public เหมือนของเดิม: ใช้ก่อน login ไม่ได้ก็จริง แต่หน้า checkout เรียกตรง ๆ)
	pay := api.Group("/payment")
	{
		pay.POST("/promptpay/generate", payCtrl.GeneratePromptPay)
		pay.POST("/card/charge", payCtrl.ChargeCard)
	}

	// Cart (user)
	cart := api.Group("/cart", auth)
	{
		cart.GET("", cartCtrl.Get)
		cart.POST("", cartCtrl.Add)
		cart.PUT("/items/:id", cartCtrl.UpdateQty)
		cart.DELETE("/items/:id", cartCtrl.Remove)
		cart.DELETE("/clear", cartCtrl.Clear)
	}

	// Favorites (user)
	fav := api.Group("/favorites", auth)
	{
		fav.GET("", favCtrl.List)
		fav.POST("", favCtrl.Add)
		fav.DELETE("/:productId", favCtrl.Remove)
	}

	// Slip upload — ตรวจ slipcheck ก่อนรับ
	api.POST("/slip/upload", auth, slipCtrl.Upload)

	// Orders
	orders := api.Group("/orders", auth)
	{
		orders.POST("", orderCtrl.Create)
		orders.GET("", orderCtrl.List)
		orders.GET("/:id", orderCtrl.Detail)
		// เปลี่ยนสถานะเป็นเรื่องของ admin เท่านั้น
		orders.PUT("/:id/status", adminOnly, orderCtrl.UpdateStatus)
		orders.PUT("/:id/cancel", adminOnly, orderCtrl.Cancel)
	}

	// Admin
	admin := api.Group("/admin", adminOnly)
	{
		admin.GET("/users", adminCtrl.Users)
		admin.PATCH("/users/:id/role", adminCtrl.UpdateRole)

		admin.POST("/products", productCtrl.Create)
		admin.PUT("/products/:id", productCtrl.Update)
		admin.DELETE("/products/:id", productCtrl.Delete)
	}
	api.GET("/reports/sales", adminOnly, adminCtrl.SalesReport)

	// สถานะออเดอร์แบบ realtime สำหรับจอ admin
	api.GET("/ws/orders", adminOnly, hub.Handle)
}
