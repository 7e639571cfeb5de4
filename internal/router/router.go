package router

import (
	"github.com/gin-gonic/gin"

	"claimlens/internal/handler"
	"claimlens/internal/middleware"
	"claimlens/internal/service"
)

// Setup configures the Gin engine with all routes and middleware.
func Setup(
	authSvc *service.AuthService,
	allowedOrigins []string,
	healthH *handler.HealthHandler,
	policyH *handler.PolicyHandler,
	convH *handler.ConversationHandler,
	utilsH *handler.UtilsHandler,
	authH *handler.AuthHandler,
) *gin.Engine {
	r := gin.New()

	// Global middleware
	r.Use(middleware.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger())
	r.Use(middleware.CORS(allowedOrigins))

	// Health checks
	r.GET("/healthz", healthH.Healthz)
	r.GET("/readyz", healthH.Readyz)

	v1 := r.Group("/api/v1")

	// Policy catalog (public)
	v1.GET("/policy", policyH.Catalog)
	v1.GET("/insurers", policyH.Insurers)
	v1.GET("/plans", policyH.Plans)

	// Conversations
	conversations := v1.Group("/conversations")
	conversations.POST("", convH.Create)
	conversations.GET("/:id", convH.Get)
	conversations.DELETE("/:id", convH.Delete)
	conversations.POST("/:id/messages", convH.SendMessage)
	conversations.POST("/:id/share", convH.Share)

	// Bill-text helpers
	utils := v1.Group("/utils")
	utils.POST("/parse-total", utilsH.ParseTotal)
	utils.POST("/sum-non-payables", utilsH.SumNonPayables)

	// Admin policy management
	admin := v1.Group("/admin")
	admin.POST("/login", authH.Login)
	protected := admin.Group("")
	protected.Use(middleware.AdminAuth(authSvc))
	protected.POST("/policies", policyH.Upsert)
	protected.DELETE("/policies/:id", policyH.Delete)

	return r
}
