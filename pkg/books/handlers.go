package books

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"github.com/robinjoseph08/golib/echo/v4/middleware/logger"
	"github.com/toshobooks/tosho/pkg/authors"
	"github.com/toshobooks/tosho/pkg/errcodes"
	"github.com/toshobooks/tosho/pkg/models"
	"github.com/toshobooks/tosho/pkg/openlibrary"
	"github.com/toshobooks/tosho/pkg/web"
)

type handler struct {
	bookService   *Service
	authorService *authors.Service
	covers        *openlibrary.Client
}

func (h *handler) home(c echo.Context) error {
	ctx := c.Request().Context()

	params := ListBooksQuery{}
	if err := c.Bind(&params); err != nil {
		return errors.WithStack(err)
	}

	result, err := h.bookService.ListBooks(ctx, ListBooksOptions{
		Search: params.Search,
		Sort:   Sort(params.Sort),
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return errors.WithStack(c.HTML(http.StatusOK, homePage(result, params, h.covers)))
}

func (h *handler) addBookForm(c echo.Context) error {
	ctx := c.Request().Context()

	authorList, err := h.authorService.ListAuthors(ctx)
	if err != nil {
		return errors.WithStack(err)
	}

	return errors.WithStack(c.HTML(http.StatusOK, addBookPage(authorList, "")))
}

func (h *handler) addBook(c echo.Context) error {
	ctx := c.Request().Context()

	authorList, err := h.authorService.ListAuthors(ctx)
	if err != nil {
		return errors.WithStack(err)
	}

	params := AddBookPayload{}
	if err := c.Bind(&params); err != nil {
		var e *errcodes.Error
		if errors.As(err, &e) {
			return errors.WithStack(c.HTML(e.HTTPCode, addBookPage(authorList, e.Message)))
		}
		return errors.WithStack(err)
	}

	book := &models.Book{
		ISBN:            params.ISBN,
		Title:           params.Title,
		PublicationYear: params.PublicationYear,
		AuthorID:        params.AuthorID,
	}

	if err := h.bookService.CreateBook(ctx, book); err != nil {
		var e *errcodes.Error
		if errors.As(err, &e) {
			return errors.WithStack(c.HTML(e.HTTPCode, addBookPage(authorList, e.Message)))
		}
		logger.FromEchoContext(c).Err(err).Error("create book failed")
		fail := errcodes.TransactionFailure().(*errcodes.Error)
		return errors.WithStack(c.HTML(fail.HTTPCode, addBookPage(authorList, fail.Message)))
	}

	msg := "Book '" + book.Title + "' added successfully."
	return errors.WithStack(c.HTML(http.StatusOK, addBookPage(authorList, msg)))
}

func (h *handler) deleteBook(c echo.Context) error {
	ctx := c.Request().Context()
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return errcodes.NotFound("Book")
	}

	mode := DeleteMode(c.QueryParam("mode"))
	switch mode {
	case DeleteModeBook, DeleteModeBookAndAuthor:
	case "":
		mode = DeleteModeBook
	default:
		return errcodes.ValidationError(`"mode" must be one of the following: "book", "book_and_author"`)
	}

	result, err := h.bookService.DeleteBook(ctx, id, mode)
	if err != nil {
		var e *errcodes.Error
		if errors.As(err, &e) && e.HTTPCode == http.StatusNotFound {
			return err
		}
		logger.FromEchoContext(c).Err(err).Error("delete book failed")
		msg := "An error occurred while deleting the book."
		return errors.WithStack(c.Redirect(http.StatusSeeOther, web.RedirectHome(msg)))
	}

	var msg string
	switch {
	case result.AuthorDeleted:
		msg = "Book '" + result.Book.Title + "' and author '" + result.Author.Name + "' deleted."
	case result.AuthorHasOtherBooks:
		msg = "Book '" + result.Book.Title + "' deleted, but author '" + result.Author.Name + "' has other books."
	default:
		msg = "Book '" + result.Book.Title + "' deleted."
	}

	return errors.WithStack(c.Redirect(http.StatusSeeOther, web.RedirectHome(msg)))
}
