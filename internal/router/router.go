package router

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/stpnv0/EventRadar/internal/metrics"
	"github.com/wb-go/wbf/ginext"
)

type Handler interface {
	SearchEvents(c *ginext.Context)
	GetEvent(c *ginext.Context)
}

type CORS struct {
	AllowOrigins []string
	MaxAge       time.Duration
}

func InitRouter(mode string, h Handler, m *metrics.Metrics, corsCfg CORS, mw ...ginext.HandlerFunc) *ginext.Engine {
	router := ginext.New(mode)
	router.Use(mw...)
	router.Use(cors.New(corsConfig(corsCfg)))

	api := router.Group("/api")
	{
		api.POST("/events/search", h.SearchEvents)
		api.GET("/events/:id", h.GetEvent)
	}

	router.GET("/health", func(c *ginext.Context) {
		c.JSON(http.StatusOK, ginext.H{"status": "ok"})
	})

	if m != nil {
		metricsHandler := m.Handler()
		router.GET("/metrics", func(c *ginext.Context) {
			metricsHandler.ServeHTTP(c.Writer, c.Request)
		})
	}

	return router
}

func corsConfig(c CORS) cors.Config {
	cfg := cors.Config{
		AllowMethods:  []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowHeaders:  []string{"Origin", "Content-Type", "Accept", "X-Request-ID"},
		ExposeHeaders: []string{"Content-Length", "X-Request-ID"},
		MaxAge:        c.MaxAge,
	}
	if len(c.AllowOrigins) == 0 || (len(c.AllowOrigins) == 1 && c.AllowOrigins[0] == "*") {
		cfg.AllowAllOrigins = true
	} else {
		cfg.AllowOrigins = c.AllowOrigins
	}
	return cfg
}
