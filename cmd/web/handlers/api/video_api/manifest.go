package video_api

import (
	"bytes"
	"errors"
	"fmt"
	"net/http"

	"github.com/cespare/xxhash/v2"
	"github.com/labstack/echo/v4"

	"github.com/VimVoyager/opentube-frontend/cmd/web/handlers/common"
	"github.com/VimVoyager/opentube-frontend/internal/api"
	"github.com/VimVoyager/opentube-frontend/internal/config"
	"github.com/VimVoyager/opentube-frontend/internal/dash"
	"github.com/VimVoyager/opentube-frontend/internal/metrics"
	"github.com/VimVoyager/opentube-frontend/internal/streams"
)

const manifestContentType = "application/dash+xml"

// HandleManifest serves the DASH manifest for a video. On-demand streams get
// a manifest generated from the adaptive renditions; livestreams and OTF
// streams pass the upstream manifest through with its segment URLs rewritten
// to the proxy.
// Route: GET /api/videos/:id/manifest.mpd
func HandleManifest(client *api.Client, conf *config.Config) echo.HandlerFunc {
	return func(c echo.Context) error {
		videoID, err := common.RequireVideoIDParam(c, "id")
		if err != nil {
			return err
		}

		ctx := c.Request().Context()
		details, err := client.Details(ctx, videoID)
		if err != nil {
			return common.MapUpstreamError(c, err, videoID)
		}

		var body []byte
		if useUpstreamManifest(details) {
			raw, err := client.DashManifest(ctx, videoID)
			if err != nil {
				return common.MapUpstreamError(c, err, videoID)
			}
			mpd, err := dash.Parse(bytes.NewReader(raw))
			if err != nil {
				return common.MapUpstreamError(c, err, videoID)
			}
			dash.RewriteBaseURLs(mpd, conf.ProxyBaseURL)
			if body, err = dash.Encode(mpd); err != nil {
				return common.MapUpstreamError(c, err, videoID)
			}
		} else {
			mpd, err := dash.Generate(details, dash.Options{ProxyBaseURL: conf.ProxyBaseURL})
			if err != nil {
				if errors.Is(err, streams.ErrNoStreams) {
					return common.ErrNotFound("no playable streams")
				}
				return common.MapUpstreamError(c, err, videoID)
			}
			if body, err = dash.Encode(mpd); err != nil {
				return common.MapUpstreamError(c, err, videoID)
			}
			metrics.ManifestGenerated()
		}

		etag := fmt.Sprintf("\"%x\"", xxhash.Sum64(body))
		c.Response().Header().Set("ETag", etag)
		if c.Request().Header.Get("If-None-Match") == etag {
			return c.NoContent(http.StatusNotModified)
		}
		c.Response().Header().Set(echo.HeaderCacheControl, "public, max-age=30")
		return c.Blob(http.StatusOK, manifestContentType, body)
	}
}

// useUpstreamManifest reports whether the backend's pre-generated MPD should
// be passed through instead of generating one. Livestreams always use it;
// so do OTF streams, whose renditions carry no segment index to build
// SegmentBase ranges from.
func useUpstreamManifest(d *api.StreamDetails) bool {
	if d.DashURL == "" {
		return false
	}
	return d.Livestream || !hasIndexedStreams(d)
}

func hasIndexedStreams(d *api.StreamDetails) bool {
	for _, group := range [][]api.Stream{d.VideoStreams, d.AudioStreams} {
		for _, s := range group {
			if s.URL != "" && s.IndexEnd > 0 {
				return true
			}
		}
	}
	return false
}
