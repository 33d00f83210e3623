// package video_api provides the watch-surface API handlers.
package video_api

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/VimVoyager/opentube-frontend/cmd/web/handlers/common"
	"github.com/VimVoyager/opentube-frontend/internal/api"
	"github.com/VimVoyager/opentube-frontend/internal/config"
	"github.com/VimVoyager/opentube-frontend/internal/viewmodel"
)

// HandleDetails serves the playback view-model for a video.
// Route: GET /api/videos/:id
func HandleDetails(client *api.Client, conf *config.Config) echo.HandlerFunc {
	return func(c echo.Context) error {
		videoID, err := common.RequireVideoIDParam(c, "id")
		if err != nil {
			return err
		}

		details, err := client.Details(c.Request().Context(), videoID)
		if err != nil {
			return common.MapUpstreamError(c, err, videoID)
		}

		page := viewmodel.Watch(videoID, details, AdaptOptions(conf))
		return c.JSON(http.StatusOK, page)
	}
}

// AdaptOptions derives the adapter options from service configuration.
func AdaptOptions(conf *config.Config) viewmodel.Options {
	return viewmodel.Options{
		ProxyBaseURL:          conf.ProxyBaseURL,
		TargetHeight:          conf.DefaultTargetHeight,
		PreferredSubtitleLang: conf.PreferredSubtitleLang,
	}
}
