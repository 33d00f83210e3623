package common

import (
	"github.com/labstack/echo/v4"

	"github.com/VimVoyager/opentube-frontend/internal/videoid"
)

// RequireVideoIDParam extracts the :id route parameter as a canonical video ID
// or returns a 400 error. Pasted watch URLs are accepted and resolved.
func RequireVideoIDParam(c echo.Context, param string) (string, error) {
	id, err := videoid.Resolve(c.Param(param))
	if err != nil {
		return "", ErrBadRequest("invalid " + param)
	}
	return id, nil
}
