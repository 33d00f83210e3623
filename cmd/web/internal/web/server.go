package web

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/VimVoyager/opentube-frontend/cmd/web/handlers/api/mediaproxy"
	"github.com/VimVoyager/opentube-frontend/cmd/web/handlers/api/search_api"
	"github.com/VimVoyager/opentube-frontend/cmd/web/handlers/api/video_api"
	staticpkg "github.com/VimVoyager/opentube-frontend/cmd/web/internal/web/utils/static"
	"github.com/VimVoyager/opentube-frontend/internal/api"
	"github.com/VimVoyager/opentube-frontend/internal/config"
	"github.com/VimVoyager/opentube-frontend/internal/metrics"
)

type Webserver struct {
	*echo.Echo
	conf        *config.Config
	client      *api.Client
	staticCache *staticpkg.StaticCache
	mediaProxy  *mediaproxy.Proxy
}

func NewWebserver(ctx context.Context, conf *config.Config, client *api.Client) (*Webserver, error) {
	e := echo.New()

	// Initialize static cache
	staticCache, err := staticpkg.NewStaticCache()
	if err != nil {
		return nil, err
	}

	webserver := &Webserver{
		Echo:        e,
		conf:        conf,
		client:      client,
		staticCache: staticCache,
		mediaProxy:  mediaproxy.NewProxy(conf.ProxyAllowedHosts),
	}

	if err = webserver.registerRoutes(); err != nil {
		return nil, err
	}

	if err = webserver.setupMiddleware(); err != nil {
		return nil, err
	}

	return webserver, nil
}

func (s *Webserver) setupMiddleware() error {
	s.HideBanner = true
	s.HidePort = true
	s.Use(middleware.BodyLimit("1M"))
	s.Use(middleware.Recover())
	s.Use(middleware.RequestID())
	s.Use(middleware.GzipWithConfig(middleware.GzipConfig{
		Level: 5,
	}))
	s.Use(middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		Skipper: func(c echo.Context) bool {
			switch c.Path() {
			// Segment requests arrive several times per second; logging them
			// drowns everything else out.
			case "/proxy/media", "/healthz", "/metrics":
				return true
			default:
				return false
			}
		},
		LogURI:       true,
		LogMethod:    true,
		LogStatus:    true,
		LogLatency:   true,
		LogRemoteIP:  true,
		LogRequestID: true,
		LogError:     true,
		HandleError:  false,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			fields := []any{
				"method", v.Method,
				"uri", v.URI,
				"status", v.Status,
				"latency", v.Latency,
				"remote_ip", v.RemoteIP,
				"request_id", v.RequestID,
			}
			if v.Error != nil {
				fields = append(fields, "error", v.Error)
			}
			slog.Info("request", fields...)
			return nil
		},
	}))

	return nil
}

func (s *Webserver) registerRoutes() error {
	apiGroup := s.Group("/api")
	apiGroup.GET("/videos/:id", video_api.HandleDetails(s.client, s.conf))
	apiGroup.GET("/videos/:id/related", video_api.HandleRelated(s.client, s.conf))
	apiGroup.GET("/videos/:id/manifest.mpd", video_api.HandleManifest(s.client, s.conf))
	apiGroup.GET("/videos/:id/subtitles", video_api.HandleSubtitles(s.client, s.conf))
	apiGroup.GET("/videos/:id/thumbnails", video_api.HandleThumbnails(s.client, s.conf))
	apiGroup.GET("/search", search_api.HandleSearch(s.client, s.conf))

	// Media proxy
	s.GET("/proxy/media", s.mediaProxy.HandleMedia())

	// Health check
	s.GET("/healthz", func(c echo.Context) error {
		return c.String(200, "ok")
	})

	// Prometheus metrics
	s.GET("/metrics", func(c echo.Context) error {
		c.Response().Header().Set(echo.HeaderContentType, "text/plain; version=0.0.4")
		c.Response().WriteHeader(http.StatusOK)
		metrics.WritePrometheus(c.Response())
		return nil
	})

	// Static file serving (placeholder art)
	s.GET("/static/*", s.staticCache.ServeStaticFile("/static/"))

	return nil
}
