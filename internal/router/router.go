package router

import (
	"time"

	"renthub/internal/database"
	"renthub/internal/handlers"
	"renthub/internal/middleware"
	"renthub/internal/models"
	"renthub/internal/services"
	"renthub/pkg/config"
	"renthub/pkg/response"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// SetupRouter 设置路由
func SetupRouter() *gin.Engine {
	router := gin.New()

	// 中间件
	router.Use(gin.Logger())
	router.Use(gin.Recovery())
	router.Use(middleware.ErrorHandler())
	router.Use(middleware.SetupCORS())

	registerValidators()

	// 房源图片静态访问
	cfg := config.GetConfig()
	router.Static(cfg.Upload.BaseURL, cfg.Upload.Dir)

	// 注册路由
	registerRoutes(router)
	return router
}

// 注册自定义校验器
func registerValidators() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		// 注册可选角色：只允许自助注册为租客或房东
		v.RegisterValidation("renthubrole", func(fl validator.FieldLevel) bool {
			role := fl.Field().String()
			return role == models.RoleTenant || role == models.RoleLandlord
		})
	}
}

// 注册所有路由
func registerRoutes(router *gin.Engine) {

	auth := middleware.NewAuthMiddleware()
	features := services.NewFeatureService(database.GetDB())

	// API路由组
	api := router.Group("/api/v1")
	{
		// 健康检查接口
		api.GET("/health", healthCheck)
		api.GET("/ping", ping)

		// JWT认证路由（无需认证）
		authHandler := handlers.NewAuthHandler(services.NewUserService())
		authGroup := api.Group("/auth")
		{
			authGroup.POST("/register", authHandler.Register)    // 用户注册
			authGroup.POST("/login", authHandler.Login)          // 用户登录
			authGroup.POST("/logout", authHandler.Logout)        // 用户登出
			authGroup.POST("/refresh", authHandler.RefreshToken) // 刷新Token

			// 获取当前用户完整信息
			authGroup.GET("/me", auth.RequireLogin(), authHandler.Me)
		}

		// 个人资料路由
		profileHandler := handlers.NewProfileHandler(services.NewUserService())
		profile := api.Group("/profile")
		{
			profile.GET("", auth.RequireLogin(), profileHandler.Get)
			profile.PUT("", auth.RequireLogin(), profileHandler.Update)
		}

		// 房源路由
		propertyHandler := handlers.NewPropertyHandler(services.NewPropertyService())
		unitHandler := handlers.NewUnitHandler(services.NewUnitService())
		properties := api.Group("/properties")
		{
			// 房源搜索（租客浏览，任何登录用户可用）
			properties.GET("/search", auth.RequireLogin(), propertyHandler.Search)

			// 基础CRUD（写操作需要房东身份）
			properties.GET("", auth.RequireLogin(), propertyHandler.GetAll)
			properties.GET("/:id", auth.RequireLogin(), propertyHandler.GetByID)
			properties.POST("", auth.RequireLogin(), auth.RequireRole(models.RoleLandlord), propertyHandler.Create)
			properties.PUT("/:id", auth.RequireLogin(), auth.RequireRole(models.RoleLandlord), propertyHandler.Update)
			properties.DELETE("/:id", auth.RequireLogin(), auth.RequireRole(models.RoleLandlord), propertyHandler.Delete)

			// 房源图片上传（仅房东）
			properties.POST("/:id/images", auth.RequireLogin(), auth.RequireRole(models.RoleLandlord), propertyHandler.UploadImage)

			// 房源评分（仅租客）
			properties.POST("/:id/ratings", auth.RequireLogin(), auth.RequireRole(models.RoleTenant), propertyHandler.AddRating)

			// 单元管理（仅房东）
			properties.POST("/:id/units", auth.RequireLogin(), auth.RequireRole(models.RoleLandlord), unitHandler.Create)
		}

		// 单元路由（仅房东）
		units := api.Group("/units")
		{
			units.PUT("/:id", auth.RequireLogin(), auth.RequireRole(models.RoleLandlord), unitHandler.Update)
			units.DELETE("/:id", auth.RequireLogin(), auth.RequireRole(models.RoleLandlord), unitHandler.Delete)
		}

		// 租约路由
		tenancyHandler := handlers.NewTenancyHandler(services.NewTenancyService())
		tenancies := api.Group("/tenancies")
		{
			tenancies.GET("", auth.RequireLogin(), tenancyHandler.GetAll)
			tenancies.GET("/:id", auth.RequireLogin(), tenancyHandler.GetByID)

			// 租客申请租约
			tenancies.POST("", auth.RequireLogin(), auth.RequireRole(models.RoleTenant), tenancyHandler.Create)

			// 房东审批流转
			tenancies.POST("/:id/approve", auth.RequireLogin(), auth.RequireRole(models.RoleLandlord), tenancyHandler.Approve)
			tenancies.POST("/:id/reject", auth.RequireLogin(), auth.RequireRole(models.RoleLandlord), tenancyHandler.Reject)
			tenancies.POST("/:id/end", auth.RequireLogin(), auth.RequireRole(models.RoleLandlord), tenancyHandler.End)

			// 添加同住租客（参与者或房东）
			tenancies.POST("/:id/tenants", auth.RequireLogin(), tenancyHandler.AddTenant)
		}

		// 租金记录路由
		paymentHandler := handlers.NewPaymentHandler(services.NewPaymentService())
		payments := api.Group("/payments")
		{
			payments.GET("", auth.RequireLogin(), paymentHandler.GetAll)
			payments.POST("", auth.RequireLogin(), paymentHandler.Record)
		}

		// 协议路由（按部署能力可选）
		agreementHandler := handlers.NewAgreementHandler(services.NewAgreementService(features))
		agreements := api.Group("/agreements")
		{
			agreements.GET("", auth.RequireLogin(), agreementHandler.GetAll)
			agreements.POST("", auth.RequireLogin(), auth.RequireRole(models.RoleLandlord), agreementHandler.Create)
		}

		// 报修路由（按部署能力可选）
		maintenanceHandler := handlers.NewMaintenanceHandler(services.NewMaintenanceService(features))
		maintenance := api.Group("/maintenance-requests")
		{
			maintenance.GET("", auth.RequireLogin(), maintenanceHandler.GetAll)
			maintenance.POST("", auth.RequireLogin(), auth.RequireRole(models.RoleTenant), maintenanceHandler.Create)
			maintenance.PUT("/:id/status", auth.RequireLogin(), auth.RequireRole(models.RoleLandlord), maintenanceHandler.UpdateStatus)
		}

		// 仪表盘路由（按角色分发视图）
		dashboardHandler := handlers.NewDashboardHandler(services.NewDashboardService(features))
		api.GET("/dashboard", auth.RequireLogin(), dashboardHandler.Get)

		// WebSocket路由（通知推送）
		wsHandler := handlers.NewWebSocketHandler()
		ws := api.Group("/ws")
		{
			// WebSocket连接不能使用常规的中间件，认证通过query参数处理
			ws.GET("/notifications", wsHandler.Notifications)
		}
	}
}

func healthCheck(c *gin.Context) {
	data := map[string]interface{}{
		"status":    "ok",
		"timestamp": time.Now(),
		"service":   "RentHub",
		"version":   "1.0.0",
	}
	response.Success(c, data)
}

func ping(c *gin.Context) {
	response.SuccessWithMessage(c, "pong", nil)
}
