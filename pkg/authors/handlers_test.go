package authors

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strconv"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/toshobooks/tosho/pkg/binder"
	"github.com/toshobooks/tosho/pkg/errcodes"
	"github.com/toshobooks/tosho/pkg/models"
	"github.com/uptrace/bun"
)

func newTestEcho(t *testing.T, db *bun.DB) *echo.Echo {
	t.Helper()

	e := echo.New()
	b, err := binder.New()
	require.NoError(t, err)
	e.Binder = b
	e.HTTPErrorHandler = errcodes.NewHandler().Handle

	RegisterRoutes(e, db)

	return e
}

func postForm(e *echo.Echo, target string, form url.Values) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, target, strings.NewReader(form.Encode()))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationForm)
	rr := httptest.NewRecorder()
	e.ServeHTTP(rr, req)
	return rr
}

func TestAddAuthorHandler(t *testing.T) {
	db := newTestDB(t)
	e := newTestEcho(t, db)

	rr := postForm(e, "/add_author", url.Values{
		"name":          {"Jane Austen"},
		"birthdate":     {"1775-12-16"},
		"date_of_death": {"1817-07-18"},
	})

	require.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), "Author &#39;Jane Austen&#39; added successfully.")

	count, err := db.NewSelect().Model((*models.Author)(nil)).Count(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestAddAuthorHandler_NoDeathDate(t *testing.T) {
	db := newTestDB(t)
	e := newTestEcho(t, db)

	rr := postForm(e, "/add_author", url.Values{
		"name":      {"Haruki Murakami"},
		"birthdate": {"1949-01-12"},
	})

	require.Equal(t, http.StatusOK, rr.Code)

	var author models.Author
	err := db.NewSelect().Model(&author).Where("a.name = ?", "Haruki Murakami").Scan(context.Background())
	require.NoError(t, err)
	assert.Nil(t, author.DateOfDeath)
}

func TestAddAuthorHandler_DuplicateName(t *testing.T) {
	db := newTestDB(t)
	e := newTestEcho(t, db)

	form := url.Values{
		"name":      {"Jane Austen"},
		"birthdate": {"1775-12-16"},
	}
	rr := postForm(e, "/add_author", form)
	require.Equal(t, http.StatusOK, rr.Code)

	form.Set("name", "JANE AUSTEN")
	rr = postForm(e, "/add_author", form)
	require.Equal(t, http.StatusConflict, rr.Code)
	assert.Contains(t, rr.Body.String(), "already exists")
}

func TestAddAuthorHandler_InvalidDate(t *testing.T) {
	tests := []struct {
		name      string
		birthdate string
	}{
		{"not a date", "not-a-date"},
		{"month zero", "2020-00-15"},
		{"day zero", "2020-05-00"},
		{"day out of range", "2020-02-30"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db := newTestDB(t)
			e := newTestEcho(t, db)

			rr := postForm(e, "/add_author", url.Values{
				"name":      {"Jane Austen"},
				"birthdate": {tt.birthdate},
			})

			require.Equal(t, http.StatusUnprocessableEntity, rr.Code)
			assert.Contains(t, rr.Body.String(), "YYYY-MM-DD")

			count, err := db.NewSelect().Model((*models.Author)(nil)).Count(context.Background())
			require.NoError(t, err)
			assert.Equal(t, 0, count)
		})
	}
}

func TestDeleteAuthorHandler(t *testing.T) {
	db := newTestDB(t)
	e := newTestEcho(t, db)
	svc := NewService(db)
	ctx := context.Background()

	author := &models.Author{Name: "Jane Austen", BirthDate: birthDate(1775)}
	require.NoError(t, svc.CreateAuthor(ctx, author))

	rr := postForm(e, "/author/"+strconv.Itoa(author.ID)+"/delete", nil)

	require.Equal(t, http.StatusSeeOther, rr.Code)
	unescaped, err := url.QueryUnescape(rr.Header().Get("Location"))
	require.NoError(t, err)
	assert.Contains(t, unescaped, "Author 'Jane Austen' and all their books deleted.")
}

func TestDeleteAuthorHandler_NotFound(t *testing.T) {
	db := newTestDB(t)
	e := newTestEcho(t, db)

	rr := postForm(e, "/author/9999/delete", nil)

	require.Equal(t, http.StatusNotFound, rr.Code)
}
