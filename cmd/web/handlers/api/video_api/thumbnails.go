package video_api

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/VimVoyager/opentube-frontend/cmd/web/handlers/common"
	"github.com/VimVoyager/opentube-frontend/internal/api"
	"github.com/VimVoyager/opentube-frontend/internal/config"
	"github.com/VimVoyager/opentube-frontend/internal/viewmodel"
)

// HandleThumbnails serves the seek-preview storyboard for a video.
// Route: GET /api/videos/:id/thumbnails
func HandleThumbnails(client *api.Client, conf *config.Config) echo.HandlerFunc {
	return func(c echo.Context) error {
		videoID, err := common.RequireVideoIDParam(c, "id")
		if err != nil {
			return err
		}

		frames, err := client.Thumbnails(c.Request().Context(), videoID)
		if err != nil {
			return common.MapUpstreamError(c, err, videoID)
		}

		return c.JSON(http.StatusOK, viewmodel.Thumbnails(frames, AdaptOptions(conf)))
	}
}
