package api

import (
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/codyseavey/sneaker-tracker/internal/api/handlers"
	"github.com/codyseavey/sneaker-tracker/internal/config"
	"github.com/codyseavey/sneaker-tracker/internal/services"
)

func SetupRouter(tracker *services.Tracker, cfg config.ServerConfig, log *zap.Logger) *gin.Engine {
	if log == nil {
		log = zap.NewNop()
	}

	router := gin.New()
	router.Use(gin.Recovery(), RequestID(), AccessLog(log))

	frontendPath := cfg.FrontendDistPath
	serveFrontend := frontendPath != "" && dirExists(frontendPath)

	// CORS configuration - origins come from config, which defaults to the dev servers
	corsConfig := cors.DefaultConfig()
	corsConfig.AllowOrigins = cfg.CORSAllowedOrigins
	corsConfig.AllowMethods = []string{"GET", "POST", "DELETE", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Type", "Accept", requestIDHeader}
	corsConfig.ExposeHeaders = []string{requestIDHeader}
	corsConfig.AllowCredentials = false
	router.Use(cors.New(corsConfig))

	limit := rate.Inf
	if cfg.RateLimit > 0 {
		limit = rate.Limit(cfg.RateLimit)
	}
	limiter := rate.NewLimiter(limit, max(cfg.RateBurst, 1))

	viewHandler := handlers.NewViewHandler(tracker, log)

	api := router.Group("/api")
	api.Use(RateLimit(limiter))
	{
		view := api.Group("/view")
		{
			view.GET("", viewHandler.GetView)
			view.GET("/state", viewHandler.GetState)
			view.POST("/mode", viewHandler.SelectMode)
			view.POST("/filter", viewHandler.SetBrandFilter)
			view.POST("/detail/:id", viewHandler.OpenDetail)
			view.DELETE("/detail", viewHandler.CloseDetail)
		}

		api.GET("/watchlist", viewHandler.GetWatchlist)
		api.POST("/watchlist/:id/toggle", viewHandler.ToggleWatch)

		inventory := api.Group("/inventory")
		{
			inventory.POST("", viewHandler.AddInventory)
			inventory.POST("/:id/view", viewHandler.ViewInTracker)
		}

		api.GET("/brands", viewHandler.GetBrands)
		api.POST("/commands", viewHandler.RunCommands)
	}

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	if !serveFrontend {
		router.NoRoute(func(c *gin.Context) {
			c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
		})
		return router
	}

	indexPath := filepath.Join(frontendPath, "index.html")
	router.Static("/assets", filepath.Join(frontendPath, "assets"))
	router.GET("/", func(c *gin.Context) {
		c.File(indexPath)
	})

	// SPA fallback - serve index.html for all non-API routes
	router.NoRoute(func(c *gin.Context) {
		if strings.HasPrefix(c.Request.URL.Path, "/api") {
			c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
			return
		}
		c.File(indexPath)
	})
	return router
}

func dirExists(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return info.IsDir()
}
