package handlers

import "github.com/labstack/echo/v4"

// Guards are the route-level middleware chains for each access level.
type Guards struct {
	// Viewer identifies the caller if they sent a valid token but never rejects.
	Viewer []echo.MiddlewareFunc
	// Authenticated requires a valid token.
	Authenticated []echo.MiddlewareFunc
	// Active also requires a stored, unbanned user record.
	Active []echo.MiddlewareFunc
	// Admin also requires the stored record to carry the admin flag.
	Admin []echo.MiddlewareFunc
}
