package video_api

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/VimVoyager/opentube-frontend/cmd/web/handlers/common"
	"github.com/VimVoyager/opentube-frontend/internal/api"
	"github.com/VimVoyager/opentube-frontend/internal/config"
	"github.com/VimVoyager/opentube-frontend/internal/viewmodel"
)

// HandleRelated serves the related-videos cards for a video.
// Route: GET /api/videos/:id/related
func HandleRelated(client *api.Client, conf *config.Config) echo.HandlerFunc {
	return func(c echo.Context) error {
		videoID, err := common.RequireVideoIDParam(c, "id")
		if err != nil {
			return err
		}

		related, err := client.Related(c.Request().Context(), videoID)
		if err != nil {
			return common.MapUpstreamError(c, err, videoID)
		}

		opts := AdaptOptions(conf)
		opts.HideShorts = c.QueryParam("hideShorts") == "true"
		return c.JSON(http.StatusOK, viewmodel.Cards(related, opts))
	}
}
