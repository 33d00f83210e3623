package common

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/VimVoyager/opentube-frontend/internal/api"
	"github.com/VimVoyager/opentube-frontend/internal/videoid"
)

// ErrBadRequest returns a 400 Bad Request error.
func ErrBadRequest(msg string) *echo.HTTPError {
	return echo.NewHTTPError(http.StatusBadRequest, msg)
}

// ErrNotFound returns a 404 Not Found error.
func ErrNotFound(msg string) *echo.HTTPError {
	return echo.NewHTTPError(http.StatusNotFound, msg)
}

// ErrBadGateway returns a 502 Bad Gateway error.
func ErrBadGateway(msg string) *echo.HTTPError {
	return echo.NewHTTPError(http.StatusBadGateway, msg)
}

// MapUpstreamError translates a backend client error into the HTTP error the
// viewer sees: missing streams become 404, everything else a logged 502.
func MapUpstreamError(c echo.Context, err error, videoID string) error {
	if errors.Is(err, api.ErrNotFound) {
		return ErrNotFound("stream not found")
	}
	fields := []any{
		"path", c.Path(),
		"error", err,
	}
	if videoID != "" {
		// Stable across requests for the same video, unlike the request ID.
		fields = append(fields,
			"video_id", videoID,
			"correlation_id", videoid.UUID(videoID),
		)
	}
	slog.Error("upstream request failed", fields...)
	return ErrBadGateway("upstream request failed")
}
