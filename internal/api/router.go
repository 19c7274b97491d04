package api

import (
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	_ "github.com/localroots/marketplace/internal/api/docs"
	"github.com/localroots/marketplace/internal/api/handlers"
	"github.com/localroots/marketplace/internal/api/middleware"
	"github.com/localroots/marketplace/internal/auth"
	"github.com/localroots/marketplace/internal/config"
	"github.com/localroots/marketplace/internal/events"
	"github.com/localroots/marketplace/internal/service"
	"github.com/localroots/marketplace/internal/uploads"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"gorm.io/gorm"
)

// RequestIDHeader carries the request correlation ID.
const RequestIDHeader = "X-Request-ID"

// Dependencies are the long-lived objects the router wires into handlers.
type Dependencies struct {
	Resolver  *auth.Resolver
	Gate      *auth.Gate
	Issuer    *auth.TokenIssuer
	Uploader  uploads.Uploader
	Publisher events.Publisher
}

// NewRouter creates and configures the Gin router
func NewRouter(cfg *config.Config, db *gorm.DB, deps Dependencies) *gin.Engine {
	// Set Gin mode
	production := cfg.IsProduction()
	if production {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()

	// Middleware
	router.Use(gin.Recovery())
	router.Use(requestIDMiddleware())
	router.Use(loggingMiddleware())
	router.Use(corsMiddleware(cfg.Server.CORSOrigins, cfg.Auth.IdentityHeader))
	router.Use(bodyLimitMiddleware(cfg.Server.MaxBodyBytes))
	router.Use(auth.Middleware(deps.Resolver, cfg.Auth.IdentityHeader))

	router.GET("/health", handlers.HealthCheck(db))
	router.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Locally stored uploads are served by the API itself
	if local, ok := deps.Uploader.(*uploads.LocalUploader); ok && cfg.Uploads.URLPrefix != "" {
		router.Static(cfg.Uploads.URLPrefix, local.Dir())
	}

	// Services
	userSvc := service.NewUserService(db, deps.Issuer)

	settingsHandler := handlers.NewSettingsHandler(service.NewSettingsService(db, deps.Publisher))
	authHandler := handlers.NewAuthHandler(userSvc)
	userHandler := handlers.NewUserHandler(userSvc)
	productHandler := handlers.NewProductHandler(service.NewProductService(db))
	orderHandler := handlers.NewOrderHandler(service.NewOrderService(db))
	catalogHandler := handlers.NewCatalogHandler(service.NewCatalogService(db))
	postHandler := handlers.NewPostHandler(service.NewPostService(db))
	visitHandler := handlers.NewVisitHandler(service.NewVisitService(db))
	uploadHandler := handlers.NewUploadHandler(service.NewUploadService(db, deps.Uploader))

	admin := middleware.RequireAdmin(deps.Gate)
	identified := middleware.RequireIdentity()

	v := router.Group("/api")
	{
		// Site settings
		v.GET("/settings", settingsHandler.GetSettings)
		v.PUT("/settings", admin, settingsHandler.ReplaceSettings)
		v.DELETE("/settings", admin, settingsHandler.ClearSettings)

		// Accounts
		v.POST("/auth/register", authHandler.Register)
		v.POST("/auth/login", authHandler.Login)
		v.GET("/auth/me", identified, authHandler.Me)

		v.GET("/users", admin, userHandler.ListUsers)
		v.PUT("/users/:id", middleware.RequireSelfOrAdmin(deps.Gate, "id"), userHandler.UpdateProfile)
		v.PUT("/users/:id/role", admin, userHandler.SetRole)
		v.DELETE("/users/:id", admin, userHandler.DeleteUser)
		v.GET("/artisans", userHandler.ListArtisans)

		// Products
		v.GET("/products", productHandler.ListProducts)
		v.GET("/products/vendor/:vendorId", productHandler.ListVendorProducts)
		v.GET("/products/:id", productHandler.GetProduct)
		v.POST("/products/user", identified, productHandler.CreateUserProduct)
		v.PUT("/products/user/:id", identified, productHandler.UpdateUserProduct)
		v.POST("/products", admin, productHandler.CreateProduct)
		v.PUT("/products/:id", admin, productHandler.UpdateProduct)
		v.DELETE("/products/:id", admin, productHandler.DeleteProduct)

		// Orders
		v.GET("/orders/seller/:sellerId", orderHandler.ListSellerOrders)
		v.GET("/orders", admin, orderHandler.ListOrders)
		v.GET("/orders/:id", admin, orderHandler.GetOrder)
		v.POST("/orders", admin, orderHandler.CreateOrder)
		v.PUT("/orders/:id", admin, orderHandler.UpdateOrder)
		v.DELETE("/orders/:id", admin, orderHandler.DeleteOrder)

		// Catalog
		v.GET("/communities", catalogHandler.ListCommunities)
		v.GET("/communities/:id", catalogHandler.GetCommunity)
		v.POST("/communities/user", identified, catalogHandler.CreateCommunity)
		v.PUT("/communities/user/:id", identified, catalogHandler.UpdateCommunity)
		v.POST("/communities", admin, catalogHandler.CreateCommunity)
		v.PUT("/communities/:id", admin, catalogHandler.UpdateCommunity)
		v.DELETE("/communities/:id", admin, catalogHandler.DeleteCommunity)

		v.GET("/categories", catalogHandler.ListCategories)
		v.POST("/categories", admin, catalogHandler.CreateCategory)
		v.PUT("/categories/:id", admin, catalogHandler.UpdateCategory)
		v.DELETE("/categories/:id", admin, catalogHandler.DeleteCategory)

		// Stories
		v.GET("/posts", postHandler.ListPosts)
		v.GET("/posts/:id", postHandler.GetPost)
		v.POST("/posts", admin, postHandler.CreatePost)
		v.PUT("/posts/:id", admin, postHandler.UpdatePost)
		v.DELETE("/posts/:id", admin, postHandler.DeletePost)

		// Visits
		v.POST("/visits", visitHandler.RecordVisit)
		v.GET("/visits", admin, visitHandler.ListVisits)
		v.DELETE("/visits", admin, visitHandler.ClearVisits)

		// Uploads
		v.POST("/uploads/image", middleware.AdminOrRelaxed(deps.Gate, production), uploadHandler.UploadImage)
	}

	router.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, handlers.ErrorResponse{Error: "Not found"})
	})

	slog.Info("API router initialized", "mode", cfg.Server.Mode)
	return router
}

// requestIDMiddleware propagates or assigns a request ID
func requestIDMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(RequestIDHeader)
		if id == "" || len(id) > 128 {
			id = uuid.NewString()
		}
		c.Set("request_id", id)
		c.Writer.Header().Set(RequestIDHeader, id)
		c.Next()
	}
}

// loggingMiddleware logs HTTP requests
func loggingMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path
		method := c.Request.Method

		c.Next()

		latency := time.Since(start)
		status := c.Writer.Status()

		slog.Info("HTTP request",
			"method", method,
			"path", path,
			"status", status,
			"latency", latency.String(),
			"ip", c.ClientIP(),
			"request_id", c.GetString("request_id"),
		)
	}
}

// corsMiddleware adds CORS headers. "*" reflects the request origin so that
// credentialed requests work; otherwise only listed origins are echoed.
func corsMiddleware(origins, identityHeader string) gin.HandlerFunc {
	allowAll := strings.TrimSpace(origins) == "*" || strings.TrimSpace(origins) == ""
	allowed := map[string]bool{}
	for _, o := range strings.Split(origins, ",") {
		if o = strings.TrimRight(strings.TrimSpace(o), "/"); o != "" {
			allowed[o] = true
		}
	}
	if identityHeader == "" {
		identityHeader = auth.DefaultIdentityHeader
	}
	allowHeaders := "Content-Type, Authorization, X-Requested-With, " + RequestIDHeader + ", " + identityHeader

	return func(c *gin.Context) {
		origin := c.GetHeader("Origin")
		if origin != "" && (allowAll || allowed[origin]) {
			h := c.Writer.Header()
			h.Set("Access-Control-Allow-Origin", origin)
			h.Set("Access-Control-Allow-Credentials", "true")
			h.Set("Access-Control-Allow-Headers", allowHeaders)
			h.Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
			h.Add("Vary", "Origin")
		}

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	}
}

// bodyLimitMiddleware caps request bodies at limit bytes
func bodyLimitMiddleware(limit int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		if limit > 0 && c.Request.Body != nil {
			c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, limit)
		}
		c.Next()
	}
}
