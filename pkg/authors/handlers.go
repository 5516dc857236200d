package authors

import (
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"github.com/robinjoseph08/golib/echo/v4/middleware/logger"
	"github.com/toshobooks/tosho/pkg/errcodes"
	"github.com/toshobooks/tosho/pkg/models"
	"github.com/toshobooks/tosho/pkg/web"
)

type handler struct {
	authorService *Service
}

func (h *handler) addAuthorForm(c echo.Context) error {
	return errors.WithStack(c.HTML(http.StatusOK, addAuthorPage("")))
}

func (h *handler) addAuthor(c echo.Context) error {
	ctx := c.Request().Context()

	params := AddAuthorPayload{}
	if err := c.Bind(&params); err != nil {
		// Form errors re-render the form with the reason instead of
		// surfacing a JSON error payload.
		var e *errcodes.Error
		if errors.As(err, &e) {
			return errors.WithStack(c.HTML(e.HTTPCode, addAuthorPage(e.Message)))
		}
		return errors.WithStack(err)
	}

	birthDate, err := parseDate(params.Birthdate)
	if err != nil {
		return errors.WithStack(err)
	}
	deathDate, err := parseDate(params.DateOfDeath)
	if err != nil {
		return errors.WithStack(err)
	}

	author := &models.Author{
		Name:        params.Name,
		BirthDate:   *birthDate,
		DateOfDeath: deathDate,
	}

	if err := h.authorService.CreateAuthor(ctx, author); err != nil {
		var e *errcodes.Error
		if errors.As(err, &e) {
			return errors.WithStack(c.HTML(e.HTTPCode, addAuthorPage(e.Message)))
		}
		logger.FromEchoContext(c).Err(err).Error("create author failed")
		fail := errcodes.TransactionFailure().(*errcodes.Error)
		return errors.WithStack(c.HTML(fail.HTTPCode, addAuthorPage(fail.Message)))
	}

	msg := "Author '" + author.Name + "' added successfully."
	return errors.WithStack(c.HTML(http.StatusOK, addAuthorPage(msg)))
}

func (h *handler) deleteAuthor(c echo.Context) error {
	ctx := c.Request().Context()
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return errcodes.NotFound("Author")
	}

	author, err := h.authorService.DeleteAuthor(ctx, id)
	if err != nil {
		var e *errcodes.Error
		if errors.As(err, &e) && e.HTTPCode == http.StatusNotFound {
			return err
		}
		logger.FromEchoContext(c).Err(err).Error("delete author failed")
		msg := "An error occurred while deleting the author."
		return errors.WithStack(c.Redirect(http.StatusSeeOther, web.RedirectHome(msg)))
	}

	msg := "Author '" + author.Name + "' and all their books deleted."
	return errors.WithStack(c.Redirect(http.StatusSeeOther, web.RedirectHome(msg)))
}

// parseDate converts a YYYY-MM-DD form value into a time, or nil when the
// field was left empty.
func parseDate(value string) (*time.Time, error) {
	if value == "" {
		return nil, nil
	}
	t, err := time.Parse("2006-01-02", value)
	if err != nil {
		return nil, errors.WithStack(err)
	}
	return &t, nil
}
