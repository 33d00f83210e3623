// package search_api provides the search-surface API handlers.
package search_api

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/VimVoyager/opentube-frontend/cmd/web/handlers/api/video_api"
	"github.com/VimVoyager/opentube-frontend/cmd/web/handlers/common"
	"github.com/VimVoyager/opentube-frontend/internal/api"
	"github.com/VimVoyager/opentube-frontend/internal/config"
	"github.com/VimVoyager/opentube-frontend/internal/videoid"
	"github.com/VimVoyager/opentube-frontend/internal/viewmodel"
)

// Redirect tells the client the query was a watch URL or raw video ID and
// should open the playback surface directly.
type Redirect struct {
	VideoID string `json:"videoId"`
}

// HandleSearch serves search results for a query.
// Route: GET /api/search?q=&filter=&page=
func HandleSearch(client *api.Client, conf *config.Config) echo.HandlerFunc {
	return func(c echo.Context) error {
		query := c.QueryParam("q")
		if query == "" {
			return common.ErrBadRequest("missing query")
		}

		// Pasted IDs and watch URLs skip the backend round-trip.
		if id, err := videoid.Resolve(query); err == nil {
			return c.JSON(http.StatusOK, Redirect{VideoID: id})
		}

		page, err := client.Search(c.Request().Context(), query, c.QueryParam("filter"), c.QueryParam("page"))
		if err != nil {
			return common.MapUpstreamError(c, err, "")
		}

		opts := video_api.AdaptOptions(conf)
		opts.HideShorts = c.QueryParam("hideShorts") == "true"
		return c.JSON(http.StatusOK, viewmodel.Search(query, page, opts))
	}
}
