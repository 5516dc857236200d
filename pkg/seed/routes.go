package seed

import (
	"github.com/labstack/echo/v4"
	"github.com/uptrace/bun"
)

func RegisterRoutes(e *echo.Echo, db *bun.DB) {
	h := &handler{
		seedService: NewService(db),
	}

	e.GET("/seed", h.seed)
}
