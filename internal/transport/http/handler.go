package http

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	authsvc "github.com/hojin-dev/go-htmx-boilerplate/internal/app/auth/service"
	itemsvc "github.com/hojin-dev/go-htmx-boilerplate/internal/app/item"
	usersvc "github.com/hojin-dev/go-htmx-boilerplate/internal/app/user"
	"github.com/hojin-dev/go-htmx-boilerplate/internal/infra/config"
	"github.com/hojin-dev/go-htmx-boilerplate/internal/transport/http/middleware"
	"github.com/hojin-dev/go-htmx-boilerplate/web"
)

// Handler owns the HTTP surface: JSON API, pages and HTMX partials.
// Everything it needs is passed in explicitly; there is no container.
type Handler struct {
	auth   authsvc.Service
	users  *usersvc.Service
	items  *itemsvc.Service
	cfg    *config.Config
	log    *zap.Logger
	render *web.Renderer
}

func NewHandler(
	auth authsvc.Service,
	users *usersvc.Service,
	items *itemsvc.Service,
	cfg *config.Config,
	logger *zap.Logger,
	renderer *web.Renderer,
) *Handler {
	return &Handler{
		auth:   auth,
		users:  users,
		items:  items,
		cfg:    cfg,
		log:    logger,
		render: renderer,
	}
}

// NewRouter builds the gin engine with middleware and all routes.
func NewRouter(h *Handler) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestLogger(h.log))
	router.Use(middleware.RateLimitPerIP(50, 100, 10_000, time.Hour))

	router.Use(cors.New(cors.Config{
		AllowOrigins: h.cfg.AllowedOrigins,
		AllowMethods: []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders: []string{
			"Origin", "Content-Type", "Accept",
			"Authorization", "X-Requested-With",
			"HX-Request", "HX-Target", "HX-Trigger",
		},
		ExposeHeaders:    []string{"Content-Length", "HX-Trigger", "HX-Retarget"},
		AllowCredentials: h.cfg.AllowCredentials,
		MaxAge:           12 * time.Hour,
	}))

	router.NoRoute(h.notFound)

	router.GET("/health", h.health)
	router.StaticFS("/static", web.StaticFS())

	api := router.Group("/api/v1")
	{
		auth := api.Group("/auth")
		auth.POST("/register", h.registerJSON)
		auth.POST("/login", h.loginJSON)
		auth.POST("/refresh", h.refreshJSON)
		auth.POST("/logout", h.logoutJSON)
		auth.GET("/me", h.RequireUser(), h.me)

		users := api.Group("/users")
		users.GET("", h.RequireUser(), h.RequireSuperuser(), h.listUsers)
		users.GET("/:id", h.RequireUser(), h.getUser)
		users.PATCH("/me", h.RequireUser(), h.updateMe)
		users.POST("/me/change-password", h.RequireUser(), h.changePassword)
		users.DELETE("/:id", h.RequireUser(), h.RequireSuperuser(), h.deleteUser)
		users.POST("/:id/activate", h.RequireUser(), h.RequireSuperuser(), h.activateUser)
		users.POST("/:id/deactivate", h.RequireUser(), h.RequireSuperuser(), h.deactivateUser)
		users.POST("/:id/verify", h.RequireUser(), h.RequireSuperuser(), h.verifyUser)

		items := api.Group("/items", h.RequireUser())
		items.GET("", h.listItems)
		items.GET("/paginated", h.listItemsPaginated)
		items.POST("", h.createItem)
		items.GET("/:id", h.getItem)
		items.PATCH("/:id", h.updateItem)
		items.DELETE("/:id", h.deleteItem)
		items.POST("/:id/toggle", h.toggleItem)
	}

	pages := router.Group("", h.OptionalUser())
	{
		pages.GET("/", h.homePage)
		pages.GET("/login", h.loginPage)
		pages.GET("/register", h.registerPage)
	}
	authPages := router.Group("", h.RequireUserPage())
	{
		authPages.GET("/dashboard", h.dashboardPage)
		authPages.GET("/items", h.itemsPage)
	}

	partials := router.Group("/partials")
	{
		partials.POST("/auth/login", h.loginPartial)
		partials.POST("/auth/register", h.registerPartial)

		items := partials.Group("/items", h.RequireUser())
		items.GET("", h.itemsListPartial)
		items.GET("/form", h.itemFormPartial)
		items.GET("/:id", h.itemPartial)
		items.GET("/:id/edit", h.itemEditFormPartial)
		items.POST("", h.createItemPartial)
		items.PUT("/:id", h.updateItemPartial)
		items.DELETE("/:id", h.deleteItemPartial)
		items.POST("/:id/toggle", h.toggleItemPartial)
	}

	return router
}

func (h *Handler) health(c *gin.Context) {
	c.JSON(200, gin.H{"status": "ok", "app": h.cfg.AppName, "time": time.Now().Unix()})
}
