package handlers

import (
	"strconv"

	"github.com/labstack/echo/v4"
)

// UserIDContextKey holds the authenticated principal's id (uint)
const UserIDContextKey = "user_id"

// getUserIDFromContext returns the authenticated user's id, or nil for
// anonymous requests
func getUserIDFromContext(c echo.Context) *uint {
	userID, ok := c.Get(UserIDContextKey).(uint)
	if !ok {
		return nil
	}
	return &userID
}

// parseIDParam reads the {id} path segment. ok is false for anything that is
// not a positive integer.
func parseIDParam(c echo.Context) (id uint, ok bool) {
	value, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || value == 0 {
		return 0, false
	}
	return uint(value), true
}
