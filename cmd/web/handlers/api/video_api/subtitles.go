package video_api

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/VimVoyager/opentube-frontend/cmd/web/handlers/common"
	"github.com/VimVoyager/opentube-frontend/internal/api"
	"github.com/VimVoyager/opentube-frontend/internal/config"
	"github.com/VimVoyager/opentube-frontend/internal/viewmodel"
)

// HandleSubtitles serves the subtitle track list for a video.
// Route: GET /api/videos/:id/subtitles
func HandleSubtitles(client *api.Client, conf *config.Config) echo.HandlerFunc {
	return func(c echo.Context) error {
		videoID, err := common.RequireVideoIDParam(c, "id")
		if err != nil {
			return err
		}

		subs, err := client.Subtitles(c.Request().Context(), videoID)
		if err != nil {
			return common.MapUpstreamError(c, err, videoID)
		}

		return c.JSON(http.StatusOK, viewmodel.SubtitleTracks(subs, AdaptOptions(conf)))
	}
}
