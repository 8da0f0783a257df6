package httpserver

import (
	"strconv"

	"github.com/labstack/echo/v4"
)

// pathID parses the :id route param. Zero and negative values are as
// malformed as non-numeric ones.
func pathID(c echo.Context) (uint, bool) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id < 1 {
		return 0, false
	}
	return uint(id), true
}
