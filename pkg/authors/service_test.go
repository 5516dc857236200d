package authors

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/toshobooks/tosho/pkg/errcodes"
	"github.com/toshobooks/tosho/pkg/migrations"
	"github.com/toshobooks/tosho/pkg/models"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/sqlitedialect"
	"github.com/uptrace/bun/driver/sqliteshim"
)

func newTestDB(t *testing.T) *bun.DB {
	t.Helper()

	sqldb, err := sql.Open(sqliteshim.ShimName, ":memory:")
	require.NoError(t, err)

	db := bun.NewDB(sqldb, sqlitedialect.New())

	_, err = db.Exec("PRAGMA foreign_keys=ON")
	require.NoError(t, err)

	_, err = migrations.BringUpToDate(context.Background(), db)
	require.NoError(t, err)

	t.Cleanup(func() {
		db.Close()
	})

	return db
}

func birthDate(year int) time.Time {
	return time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC)
}

func TestCreateAuthor(t *testing.T) {
	db := newTestDB(t)
	svc := NewService(db)
	ctx := context.Background()

	author := &models.Author{Name: "Jane Austen", BirthDate: time.Date(1775, time.December, 16, 0, 0, 0, 0, time.UTC)}
	err := svc.CreateAuthor(ctx, author)
	require.NoError(t, err)
	assert.NotZero(t, author.ID)

	retrieved := &models.Author{}
	err = db.NewSelect().Model(retrieved).Where("a.id = ?", author.ID).Scan(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Jane Austen", retrieved.Name)
	assert.Nil(t, retrieved.DateOfDeath)
}

func TestCreateAuthor_DuplicateNameCaseInsensitive(t *testing.T) {
	db := newTestDB(t)
	svc := NewService(db)
	ctx := context.Background()

	err := svc.CreateAuthor(ctx, &models.Author{Name: "George Orwell", BirthDate: birthDate(1903)})
	require.NoError(t, err)

	err = svc.CreateAuthor(ctx, &models.Author{Name: "GEORGE ORWELL", BirthDate: birthDate(1903)})
	require.Error(t, err)
	assert.ErrorIs(t, err, errcodes.DuplicateAuthor("GEORGE ORWELL"))

	count, err := db.NewSelect().Model((*models.Author)(nil)).Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestCreateAuthor_Validation(t *testing.T) {
	db := newTestDB(t)
	svc := NewService(db)
	ctx := context.Background()

	err := svc.CreateAuthor(ctx, &models.Author{Name: "   ", BirthDate: birthDate(1903)})
	require.Error(t, err)
	assert.ErrorIs(t, err, errcodes.ValidationError(`"name" is required`))

	err = svc.CreateAuthor(ctx, &models.Author{Name: "George Orwell"})
	require.Error(t, err)
	assert.ErrorIs(t, err, errcodes.ValidationError(`"birthdate" is required`))
}

func TestDeleteAuthor_CascadesToBooks(t *testing.T) {
	db := newTestDB(t)
	svc := NewService(db)
	ctx := context.Background()

	author := &models.Author{Name: "Isaac Asimov", BirthDate: birthDate(1920)}
	require.NoError(t, svc.CreateAuthor(ctx, author))

	other := &models.Author{Name: "Frank Herbert", BirthDate: birthDate(1920)}
	require.NoError(t, svc.CreateAuthor(ctx, other))

	for _, book := range []*models.Book{
		{ISBN: "9780553293357", Title: "Foundation", PublicationYear: 1951, AuthorID: author.ID},
		{ISBN: "9780553293388", Title: "Foundation and Empire", PublicationYear: 1952, AuthorID: author.ID},
		{ISBN: "9780441172719", Title: "Dune", PublicationYear: 1965, AuthorID: other.ID},
	} {
		_, err := db.NewInsert().Model(book).Exec(ctx)
		require.NoError(t, err)
	}

	deleted, err := svc.DeleteAuthor(ctx, author.ID)
	require.NoError(t, err)
	assert.Equal(t, "Isaac Asimov", deleted.Name)

	// No book row referencing the deleted author may survive.
	count, err := db.NewSelect().Model((*models.Book)(nil)).Where("author_id = ?", author.ID).Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, count)

	// The other author's books are untouched.
	count, err = db.NewSelect().Model((*models.Book)(nil)).Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestDeleteAuthor_NotFound(t *testing.T) {
	db := newTestDB(t)
	svc := NewService(db)
	ctx := context.Background()

	_, err := svc.DeleteAuthor(ctx, 9999)
	require.Error(t, err)
	assert.ErrorIs(t, err, errcodes.NotFound("Author"))
}

func TestListAuthors_OrderedByName(t *testing.T) {
	db := newTestDB(t)
	svc := NewService(db)
	ctx := context.Background()

	require.NoError(t, svc.CreateAuthor(ctx, &models.Author{Name: "Mary Shelley", BirthDate: birthDate(1797)}))
	require.NoError(t, svc.CreateAuthor(ctx, &models.Author{Name: "Alex Haley", BirthDate: birthDate(1921)}))
	require.NoError(t, svc.CreateAuthor(ctx, &models.Author{Name: "Harper Lee", BirthDate: birthDate(1926)}))

	authors, err := svc.ListAuthors(ctx)
	require.NoError(t, err)
	require.Len(t, authors, 3)
	assert.Equal(t, "Alex Haley", authors[0].Name)
	assert.Equal(t, "Harper Lee", authors[1].Name)
	assert.Equal(t, "Mary Shelley", authors[2].Name)
}
