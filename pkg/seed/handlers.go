package seed

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"github.com/robinjoseph08/golib/echo/v4/middleware/logger"
	"github.com/toshobooks/tosho/pkg/web"
)

type handler struct {
	seedService *Service
}

func (h *handler) seed(c echo.Context) error {
	ctx := c.Request().Context()

	if err := h.seedService.Run(ctx); err != nil {
		logger.FromEchoContext(c).Err(err).Error("seed failed")
		msg := "An error occurred while seeding the library."
		return errors.WithStack(c.Redirect(http.StatusSeeOther, web.RedirectHome(msg)))
	}

	return errors.WithStack(c.Redirect(http.StatusSeeOther, web.RedirectHome("Seed data inserted.")))
}
