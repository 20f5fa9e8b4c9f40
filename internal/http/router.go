package http

import (
	"html/template"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mrlokans/bookshelf/internal/readonly"
	"github.com/mrlokans/bookshelf/internal/security"
	"github.com/mrlokans/bookshelf/internal/web"
)

// NewRouter creates and configures the HTTP router with all endpoints.
func NewRouter(cfg RouterConfig) *gin.Engine {
	router := gin.New()
	router.Use(gin.Logger())
	router.Use(gin.Recovery())

	router.Use(security.SecurityHeadersMiddleware())
	router.Use(security.StrictTransportSecurityMiddleware())

	// CORS answers preflight requests before CSRF sees them.
	router.Use(security.CORSMiddleware(cfg.AllowedOrigins))

	if len(cfg.CSRFSecret) > 0 {
		router.Use(security.CSRFMiddleware(cfg.CSRFSecret, cfg.SecureCookies))
	}

	router.Use(readonly.NewMiddleware(cfg.ReadOnly).Handler())

	router.SetHTMLTemplate(template.Must(web.Templates()))
	router.StaticFS("/static", http.FS(web.Static()))

	health := NewHealthController(cfg.Health, cfg.Books, cfg.Version)
	booksController := NewBooksController(cfg.Books)
	uiController := NewUIController()

	router.GET("/", uiController.Index)
	router.GET("/health", health.Status)
	router.GET("/ping", health.Ping)

	api := router.Group("/api")
	{
		booksAPI := api.Group("/books")
		booksAPI.GET("", booksController.List)
		booksAPI.POST("", booksController.Create)
		booksAPI.GET("/:id", booksController.Get)
		booksAPI.PUT("/:id", booksController.Update)
		booksAPI.DELETE("/:id", booksController.Delete)

		if cfg.Imports != nil {
			importsController := NewImportsController(cfg.Imports, cfg.Reports)
			api.GET("/imports", importsController.Reports)
			api.POST("/imports", importsController.Enqueue)
			api.GET("/imports/:id", importsController.Status)
		}

		if cfg.Snapshots != nil {
			snapshotsController := NewSnapshotsController(cfg.Snapshots)
			api.GET("/snapshots", snapshotsController.Status)
			api.POST("/snapshots", snapshotsController.Create)
		}
	}

	return router
}
