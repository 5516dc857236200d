package books

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/toshobooks/tosho/pkg/binder"
	"github.com/toshobooks/tosho/pkg/config"
	"github.com/toshobooks/tosho/pkg/errcodes"
	"github.com/toshobooks/tosho/pkg/models"
	"github.com/uptrace/bun"
)

// newTestEcho wires the routes the way the server does, with OpenLibrary
// pointed at a stub that knows nothing, so every verification is Unknown.
func newTestEcho(t *testing.T, db *bun.DB) *echo.Echo {
	t.Helper()

	openLibrary := httptest.NewServer(http.NotFoundHandler())
	t.Cleanup(openLibrary.Close)

	cfg := &config.Config{
		OpenLibraryBaseURL:      openLibrary.URL,
		OpenLibraryCoverBaseURL: "https://covers.openlibrary.org",
		OpenLibraryTimeout:      time.Second,
	}

	e := echo.New()
	b, err := binder.New()
	require.NoError(t, err)
	e.Binder = b
	e.HTTPErrorHandler = errcodes.NewHandler().Handle

	RegisterRoutes(e, db, cfg)

	return e
}

func postForm(e *echo.Echo, target string, form url.Values) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, target, strings.NewReader(form.Encode()))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationForm)
	rr := httptest.NewRecorder()
	e.ServeHTTP(rr, req)
	return rr
}

func TestHomeHandler(t *testing.T) {
	db := newTestDB(t)
	e := newTestEcho(t, db)
	svc := NewService(db, unknownVerifier())
	seedCatalog(t, db, svc)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rr := httptest.NewRecorder()
	e.ServeHTTP(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)
	body := rr.Body.String()
	assert.Contains(t, body, "Animal Farm")
	assert.Contains(t, body, "Foundation")
	assert.Contains(t, body, "George Orwell")
}

func TestHomeHandler_SearchWithoutMatches(t *testing.T) {
	db := newTestDB(t)
	e := newTestEcho(t, db)
	svc := NewService(db, unknownVerifier())
	seedCatalog(t, db, svc)

	req := httptest.NewRequest(http.MethodGet, "/?search=zzzzzz", nil)
	rr := httptest.NewRecorder()
	e.ServeHTTP(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), "No books match your search")
}

func TestAddBookHandler(t *testing.T) {
	db := newTestDB(t)
	e := newTestEcho(t, db)

	author := createAuthor(t, db, "Jane Austen")

	rr := postForm(e, "/add_book", url.Values{
		"isbn":             {"9780141439518"},
		"title":            {"Pride and Prejudice"},
		"publication_year": {"1813"},
		"author_id":        {strconv.Itoa(author.ID)},
	})

	require.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), "Book &#39;Pride and Prejudice&#39; added successfully.")
}

func TestAddBookHandler_DuplicateISBN(t *testing.T) {
	db := newTestDB(t)
	e := newTestEcho(t, db)

	author := createAuthor(t, db, "Jane Austen")
	form := url.Values{
		"isbn":             {"9780141439518"},
		"title":            {"Pride and Prejudice"},
		"publication_year": {"1813"},
		"author_id":        {strconv.Itoa(author.ID)},
	}

	rr := postForm(e, "/add_book", form)
	require.Equal(t, http.StatusOK, rr.Code)

	form.Set("title", "Emma")
	rr = postForm(e, "/add_book", form)
	require.Equal(t, http.StatusConflict, rr.Code)
	assert.Contains(t, rr.Body.String(), "already exists")
}

func TestAddBookHandler_MissingFields(t *testing.T) {
	db := newTestDB(t)
	e := newTestEcho(t, db)

	rr := postForm(e, "/add_book", url.Values{
		"isbn": {"9780141439518"},
	})

	require.Equal(t, http.StatusUnprocessableEntity, rr.Code)
}

func TestDeleteBookHandler(t *testing.T) {
	db := newTestDB(t)
	e := newTestEcho(t, db)
	svc := NewService(db, unknownVerifier())

	author := createAuthor(t, db, "Harper Lee")
	book := &models.Book{ISBN: "9780061120084", Title: "To Kill a Mockingbird", PublicationYear: 1960, AuthorID: author.ID}
	require.NoError(t, svc.CreateBook(context.Background(), book))

	rr := postForm(e, "/book/"+strconv.Itoa(book.ID)+"/delete?mode=book", nil)

	require.Equal(t, http.StatusSeeOther, rr.Code)
	location := rr.Header().Get("Location")
	assert.Contains(t, location, "/?message=")
	unescaped, err := url.QueryUnescape(location)
	require.NoError(t, err)
	assert.Contains(t, unescaped, "Book 'To Kill a Mockingbird' deleted.")
}

func TestDeleteBookHandler_BookAndAuthor(t *testing.T) {
	db := newTestDB(t)
	e := newTestEcho(t, db)
	svc := NewService(db, unknownVerifier())

	author := createAuthor(t, db, "Harper Lee")
	book := &models.Book{ISBN: "9780061120084", Title: "To Kill a Mockingbird", PublicationYear: 1960, AuthorID: author.ID}
	require.NoError(t, svc.CreateBook(context.Background(), book))

	rr := postForm(e, "/book/"+strconv.Itoa(book.ID)+"/delete?mode=book_and_author", nil)

	require.Equal(t, http.StatusSeeOther, rr.Code)
	unescaped, err := url.QueryUnescape(rr.Header().Get("Location"))
	require.NoError(t, err)
	assert.Contains(t, unescaped, "Book 'To Kill a Mockingbird' and author 'Harper Lee' deleted.")
}

func TestDeleteBookHandler_InvalidMode(t *testing.T) {
	db := newTestDB(t)
	e := newTestEcho(t, db)
	svc := NewService(db, unknownVerifier())

	author := createAuthor(t, db, "Harper Lee")
	book := &models.Book{ISBN: "9780061120084", Title: "To Kill a Mockingbird", PublicationYear: 1960, AuthorID: author.ID}
	require.NoError(t, svc.CreateBook(context.Background(), book))

	rr := postForm(e, "/book/"+strconv.Itoa(book.ID)+"/delete?mode=everything", nil)

	require.Equal(t, http.StatusUnprocessableEntity, rr.Code)
}

func TestDeleteBookHandler_NotFound(t *testing.T) {
	db := newTestDB(t)
	e := newTestEcho(t, db)

	rr := postForm(e, "/book/9999/delete", nil)

	require.Equal(t, http.StatusNotFound, rr.Code)
}
