package handlers

import (
	"html"
	"net/http"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/microcosm-cc/bluemonday"
)

// Page sizes per listing: default and upper bound.
const (
	defaultPostLimit     = 20
	maxPostLimit         = 100
	defaultUserLimit     = 50
	maxUserLimit         = 200
	defaultSuggestLimit  = 5
	maxSuggestLimit      = 50
	defaultTrendingLimit = 10
	maxTrendingLimit     = 100
	defaultAuditLimit    = 50
	maxAuditLimit        = 500
	recentCommentsShown  = 3
)

var textPolicy = bluemonday.StrictPolicy()

// sanitizeText strips any markup from user-authored text and leaves plain text.
func sanitizeText(s string) string {
	return strings.TrimSpace(html.UnescapeString(textPolicy.Sanitize(s)))
}

// queryLimit reads ?limit, falling back to def when absent or not positive
// and capping at max.
func queryLimit(c echo.Context, def, max int) int {
	limit, err := strconv.Atoi(c.QueryParam("limit"))
	if err != nil || limit < 1 {
		return def
	}
	if limit > max {
		return max
	}
	return limit
}

// queryOffset reads ?offset; anything unparsable or negative means 0.
func queryOffset(c echo.Context) int {
	offset, err := strconv.Atoi(c.QueryParam("offset"))
	if err != nil || offset < 0 {
		return 0
	}
	return offset
}

// idParam parses a numeric path parameter.
func idParam(c echo.Context, name string) (uint, error) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || id == 0 {
		return 0, echo.NewHTTPError(http.StatusBadRequest, "Invalid "+name)
	}
	return uint(id), nil
}
