package authors

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"github.com/pkg/errors"
	"github.com/toshobooks/tosho/pkg/database"
	"github.com/toshobooks/tosho/pkg/errcodes"
	"github.com/toshobooks/tosho/pkg/models"
	"github.com/uptrace/bun"
)

type Service struct {
	db *bun.DB
}

func NewService(db *bun.DB) *Service {
	return &Service{db}
}

// CreateAuthor validates and inserts a new author. An author with the same
// name under case-insensitive comparison is rejected before the insert; the
// UNIQUE constraint is the final authority if a concurrent insert slips
// past the check.
func (svc *Service) CreateAuthor(ctx context.Context, author *models.Author) error {
	author.Name = strings.TrimSpace(author.Name)
	if author.Name == "" {
		return errcodes.ValidationError(`"name" is required`)
	}
	if author.BirthDate.IsZero() {
		return errcodes.ValidationError(`"birthdate" is required`)
	}

	exists, err := svc.db.
		NewSelect().
		Model((*models.Author)(nil)).
		Where("LOWER(a.name) = LOWER(?)", author.Name).
		Exists(ctx)
	if err != nil {
		return errors.WithStack(err)
	}
	if exists {
		return errcodes.DuplicateAuthor(author.Name)
	}

	now := time.Now()
	if author.CreatedAt.IsZero() {
		author.CreatedAt = now
	}
	author.UpdatedAt = author.CreatedAt

	_, err = svc.db.
		NewInsert().
		Model(author).
		Returning("*").
		Exec(ctx)
	if database.IsUniqueViolation(err, "authors.name") {
		return errcodes.DuplicateAuthor(author.Name)
	}
	return errors.WithStack(err)
}

// ListAuthors returns every author ordered by name, for the add-book form
// dropdown.
func (svc *Service) ListAuthors(ctx context.Context) ([]*models.Author, error) {
	var authors []*models.Author

	err := svc.db.
		NewSelect().
		Model(&authors).
		Order("a.name ASC").
		Scan(ctx)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	return authors, nil
}

// DeleteAuthor removes an author and every book they own in one
// transaction. The book delete is an explicit step rather than relying on
// the FK cascade alone, so a partial failure rolls everything back and no
// orphaned book rows can survive. Returns the deleted author for the
// caller's status message.
func (svc *Service) DeleteAuthor(ctx context.Context, id int) (*models.Author, error) {
	author := &models.Author{}

	err := svc.db.RunInTx(ctx, &sql.TxOptions{}, func(ctx context.Context, tx bun.Tx) error {
		err := tx.NewSelect().
			Model(author).
			Where("a.id = ?", id).
			Scan(ctx)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return errcodes.NotFound("Author")
			}
			return errors.WithStack(err)
		}

		_, err = tx.NewDelete().
			Model((*models.Book)(nil)).
			Where("author_id = ?", id).
			Exec(ctx)
		if err != nil {
			return errors.WithStack(err)
		}

		_, err = tx.NewDelete().
			Model((*models.Author)(nil)).
			Where("id = ?", id).
			Exec(ctx)
		return errors.WithStack(err)
	})
	if err != nil {
		return nil, err
	}

	return author, nil
}
