// Package seed installs a fixed reference dataset of 8 authors and 8 books.
// Seeding is idempotent: rows already present by natural key (author name,
// book ISBN) are skipped, so it can be re-run after partial deletions
// without ever duplicating rows.
package seed

import (
	"context"
	"database/sql"
	"time"

	"github.com/pkg/errors"
	"github.com/toshobooks/tosho/pkg/models"
	"github.com/uptrace/bun"
)

type seedAuthor struct {
	name  string
	birth time.Time
	death time.Time
}

type seedBook struct {
	isbn   string
	title  string
	year   int
	author string
}

func date(year, month, day int) time.Time {
	return time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
}

var seedAuthors = []seedAuthor{
	{"Isaac Asimov", date(1920, 1, 2), date(1992, 4, 6)},
	{"Frank Herbert", date(1920, 10, 8), date(1986, 2, 11)},
	{"Alex Haley", date(1921, 8, 11), date(1965, 2, 21)},
	{"Mary Shelley", date(1797, 8, 30), date(1851, 2, 1)},
	{"J.R.R. Tolkien", date(1892, 1, 3), date(1973, 9, 2)},
	{"George Orwell", date(1903, 6, 25), date(1950, 1, 21)},
	{"Harper Lee", date(1926, 4, 28), date(2016, 2, 19)},
	{"J. D. Salinger", date(1919, 1, 1), date(2010, 1, 27)},
}

var seedBooks = []seedBook{
	{"9780553293357", "Foundation", 1951, "Isaac Asimov"},
	{"9780441172719", "Dune", 1965, "Frank Herbert"},
	{"9780345350688", "The Autobiography of Malcolm X: As Told to Alex Haley", 1992, "Alex Haley"},
	{"9780486282114", "Frankenstein", 1818, "Mary Shelley"},
	{"9780547928227", "The Hobbit: Or, There and Back Again", 1937, "J.R.R. Tolkien"},
	{"9780141036144", "1984", 1949, "George Orwell"},
	{"9780061120084", "To Kill a Mockingbird", 1960, "Harper Lee"},
	{"9780241950432", "The Catcher in the Rye", 1951, "J. D. Salinger"},
}

type Service struct {
	db *bun.DB
}

func NewService(db *bun.DB) *Service {
	return &Service{db}
}

// Run inserts the reference dataset in one transaction, skipping rows that
// already exist.
func (svc *Service) Run(ctx context.Context) error {
	return svc.db.RunInTx(ctx, &sql.TxOptions{}, func(ctx context.Context, tx bun.Tx) error {
		now := time.Now()

		for _, sa := range seedAuthors {
			exists, err := tx.NewSelect().
				Model((*models.Author)(nil)).
				Where("a.name = ?", sa.name).
				Exists(ctx)
			if err != nil {
				return errors.WithStack(err)
			}
			if exists {
				continue
			}

			death := sa.death
			author := &models.Author{
				CreatedAt:   now,
				UpdatedAt:   now,
				Name:        sa.name,
				BirthDate:   sa.birth,
				DateOfDeath: &death,
			}
			_, err = tx.NewInsert().Model(author).Exec(ctx)
			if err != nil {
				return errors.WithStack(err)
			}
		}

		authorIDs := map[string]int{}
		var authorRows []*models.Author
		err := tx.NewSelect().Model(&authorRows).Scan(ctx)
		if err != nil {
			return errors.WithStack(err)
		}
		for _, author := range authorRows {
			authorIDs[author.Name] = author.ID
		}

		for _, sb := range seedBooks {
			exists, err := tx.NewSelect().
				Model((*models.Book)(nil)).
				Where("b.isbn = ?", sb.isbn).
				Exists(ctx)
			if err != nil {
				return errors.WithStack(err)
			}
			if exists {
				continue
			}

			book := &models.Book{
				CreatedAt:       now,
				UpdatedAt:       now,
				ISBN:            sb.isbn,
				Title:           sb.title,
				PublicationYear: sb.year,
				AuthorID:        authorIDs[sb.author],
			}
			_, err = tx.NewInsert().Model(book).Exec(ctx)
			if err != nil {
				return errors.WithStack(err)
			}
		}

		return nil
	})
}
