package router

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/linkdeck/linkdeck/db"
	"github.com/linkdeck/linkdeck/internal/handlers"
	"github.com/linkdeck/linkdeck/internal/middleware"
	"github.com/linkdeck/linkdeck/internal/services"
	"github.com/linkdeck/linkdeck/internal/types"
)

// NewRouter wires services and handlers around the shared database handle.
// The auth matrix is intentionally uneven: only the site list and the
// profile update carry the bearer check, matching the clients in the field.
func NewRouter(conn *db.Conn) *gin.Engine {
	r := gin.Default()

	r.Use(cors.New(cors.Config{
		AllowOrigins:     types.AllowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "HEAD", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Length", "Content-Type", "Authorization", "Accept", "X-Requested-With"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	userSvc := services.NewUserService(conn)
	authSvc := services.NewAuthService(userSvc)
	groupSvc := services.NewGroupService(conn)
	siteSvc := services.NewSiteService(conn)
	configSvc := services.NewConfigService(conn)
	dataSvc := services.NewDataService(groupSvc, siteSvc, configSvc)

	authHandler := handlers.NewAuthHandler(authSvc)
	userHandler := handlers.NewUserHandler(userSvc)
	groupHandler := handlers.NewGroupHandler(groupSvc)
	siteHandler := handlers.NewSiteHandler(siteSvc)
	configHandler := handlers.NewConfigHandler(configSvc)
	dataHandler := handlers.NewDataHandler(dataSvc)

	api := r.Group("/api")
	{
		api.GET("/health", handlers.HealthCheck)

		auth := api.Group("/auth")
		{
			auth.POST("/register", authHandler.Register)
			auth.POST("/login", authHandler.Login)
			auth.POST("/logout", authHandler.Logout)
		}

		groups := api.Group("/groups")
		{
			groups.GET("/all", groupHandler.All)
			groups.GET("/list", groupHandler.List)
			groups.POST("/create", groupHandler.Create)
			groups.PUT("/order", groupHandler.Order)
			groups.GET("/:id", groupHandler.Get)
			groups.PUT("/:id", groupHandler.Update)
			groups.DELETE("/:id", groupHandler.Delete)
		}

		sites := api.Group("/sites")
		{
			sites.GET("/list", middleware.AuthMiddleware(), siteHandler.List)
			sites.POST("/create", siteHandler.Create)
			sites.PUT("/order", siteHandler.Order)
			sites.GET("/:id", siteHandler.Get)
			sites.PUT("/:id", siteHandler.Update)
			sites.DELETE("/:id", siteHandler.Delete)
		}

		configs := api.Group("/configs")
		{
			configs.GET("", configHandler.GetAll)
			configs.POST("", configHandler.BulkUpsert)
			configs.GET("/:key", configHandler.Get)
			configs.PUT("/:key", configHandler.Update)
			configs.DELETE("/:key", configHandler.Delete)
		}

		data := api.Group("/data")
		{
			data.GET("/export", dataHandler.Export)
			data.POST("/import", dataHandler.Import)
		}

		user := api.Group("/user")
		{
			user.GET("/list", userHandler.List)
			user.POST("/create", userHandler.Create)
			user.PUT("/profile", middleware.AuthMiddleware(), userHandler.UpdateProfile)
			user.GET("/:id", userHandler.Get)
			user.PUT("/:id", userHandler.Update)
			user.DELETE("/:id", userHandler.Delete)
		}
	}

	return r
}
