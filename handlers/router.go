package handlers

import (
	"context"
	"net/http"

	"uzazi-salama-backend/service"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// RouterConfig wires services into the HTTP router
type RouterConfig struct {
	AuthService     *service.AuthService
	UserDataService *service.UserDataService
	// ExportService is optional; export routes are omitted when nil
	ExportService *service.ExportService
	Logger        *zap.SugaredLogger
	CORSOrigins   []string
	// Ping reports database health; nil means an in-memory store
	Ping func(ctx context.Context) error
}

// NewRouter builds the gin engine with middleware and all API routes
func NewRouter(cfg RouterConfig) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(RequestID())
	r.Use(RequestLogger(cfg.Logger))
	r.Use(CORS(cfg.CORSOrigins))

	authHandler := NewAuthHandler(cfg.AuthService, cfg.Logger)
	dataHandler := NewUserDataHandler(cfg.UserDataService, cfg.Logger)
	requireAuth := Auth(cfg.AuthService)

	api := r.Group("/api")
	{
		api.GET("/health", health(cfg.Ping))

		auth := api.Group("/auth")
		auth.POST("/register", authHandler.Register)
		auth.POST("/login", authHandler.Login)
		auth.GET("/me", requireAuth, authHandler.Me)
		auth.PUT("/profile", requireAuth, authHandler.UpdateProfile)

		user := api.Group("/user", requireAuth)
		user.POST("/data", dataHandler.SaveUserData)
		user.GET("/data", dataHandler.GetAllUserData)
		user.GET("/data/:dataType", dataHandler.GetUserData)

		if cfg.ExportService != nil {
			exportHandler := NewExportHandler(cfg.ExportService, cfg.Logger)
			user.POST("/export", exportHandler.CreateExport)
			user.GET("/export/*path", exportHandler.DownloadExport)
			user.DELETE("/export/*path", exportHandler.DeleteExport)
		}
	}

	r.NoRoute(func(c *gin.Context) {
		respondError(c, http.StatusNotFound, "NOT_FOUND", "Route not found")
	})

	return r
}

func health(ping func(ctx context.Context) error) gin.HandlerFunc {
	return func(c *gin.Context) {
		database := "memory"
		if ping != nil {
			database = "connected"
			if err := ping(c.Request.Context()); err != nil {
				database = "disconnected"
			}
		}
		c.JSON(http.StatusOK, gin.H{
			"status":   "OK",
			"message":  "Uzazi Salama API is running",
			"database": database,
		})
	}
}
