package api

import (
	"github.com/gin-gonic/gin"
	"github.com/timmy/dogo/internal/api/handler"
	"github.com/timmy/dogo/internal/api/middleware"
	"github.com/timmy/dogo/internal/config"
	"github.com/timmy/dogo/internal/gallery"
	"github.com/timmy/dogo/internal/logger"
	"github.com/timmy/dogo/internal/service"
)

// SetupRouter configures the Gin router with all routes.
// The hub is registered as the fetcher's observer; archive routes are only
// mounted when archive is non-nil.
// Parameters:
//   - fetcher: gallery served by the API.
//   - archive: archive service; nil disables the archive routes.
//   - hub: cursor event hub; nil disables the event stream.
//   - cfg: server configuration (mode and CORS).
//   - log: base logger for request logging.
// Returns:
//   - *gin.Engine: configured router.
func SetupRouter(
	fetcher *gallery.Fetcher,
	archive *service.ArchiveService,
	hub *handler.EventHub,
	cfg *config.ServerConfig,
	log *logger.Logger,
) *gin.Engine {
	switch cfg.Mode {
	case "release":
		gin.SetMode(gin.ReleaseMode)
	case "test":
		gin.SetMode(gin.TestMode)
	default:
		gin.SetMode(gin.DebugMode)
	}

	r := gin.New()

	r.Use(gin.Recovery())
	r.Use(middleware.LoggerMiddleware(log))
	r.Use(middleware.CORS(cfg.CORS))

	if hub != nil {
		fetcher.SetObserver(hub.Publish)
	}

	healthHandler := handler.NewHealthHandler(fetcher)
	galleryHandler := handler.NewGalleryHandler(fetcher, hub)

	r.GET("/health", healthHandler.Health)

	v1 := r.Group("/api/v1")
	g := v1.Group("/gallery")
	{
		g.POST("/next", galleryHandler.Next)
		g.POST("/previous", galleryHandler.Previous)
		g.POST("/random", galleryHandler.Random)
		g.POST("/batch", galleryHandler.Batch)
		g.POST("/reset", galleryHandler.Reset)
		g.GET("/current", galleryHandler.Current)
		g.GET("/state", galleryHandler.State)
		g.GET("/events", galleryHandler.Events)

		if archive != nil {
			archiveHandler := handler.NewArchiveHandler(fetcher, archive)
			g.POST("/archive", archiveHandler.ArchiveCurrent)
			g.GET("/archive", archiveHandler.List)
		}
	}

	return r
}
