package books

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"github.com/pkg/errors"
	"github.com/toshobooks/tosho/pkg/database"
	"github.com/toshobooks/tosho/pkg/errcodes"
	"github.com/toshobooks/tosho/pkg/models"
	"github.com/toshobooks/tosho/pkg/openlibrary"
	"github.com/uptrace/bun"
)

type Sort string

const (
	SortTitle  Sort = "title"
	SortAuthor Sort = "author"
	SortYear   Sort = "year"
)

type DeleteMode string

const (
	// DeleteModeBook removes only the book, even if it is the author's last.
	DeleteModeBook DeleteMode = "book"
	// DeleteModeBookAndAuthor removes the book and, when it was the
	// author's last remaining book, the author as well.
	DeleteModeBookAndAuthor DeleteMode = "book_and_author"
)

type ListBooksOptions struct {
	// Search filters by case-insensitive substring match over title,
	// author name, and ISBN.
	Search string
	Sort   Sort
}

type ListBooksResult struct {
	Books []*models.Book
	// NoResults distinguishes "this search matched nothing" from "the
	// catalog is empty": it is only set when a search term was given.
	NoResults bool
}

// DeleteBookResult reports what a deletion actually removed so callers can
// build the exact status message.
type DeleteBookResult struct {
	Book          *models.Book
	Author        *models.Author
	AuthorDeleted bool
	// AuthorHasOtherBooks is set when book_and_author mode kept the author
	// because other books remain.
	AuthorHasOtherBooks bool
}

type Service struct {
	db       *bun.DB
	verifier openlibrary.Verifier
}

func NewService(db *bun.DB, verifier openlibrary.Verifier) *Service {
	return &Service{db, verifier}
}

// CreateBook runs the add-book pipeline: duplicate ISBN check, duplicate
// title-per-author check, author existence, then the external title check.
// The duplicate checks run first so an already-rejected submission never
// costs a network call, and no transaction is held open while OpenLibrary
// is consulted. Only a confirmed mismatch blocks the insert; an Unknown
// verification trusts the user.
func (svc *Service) CreateBook(ctx context.Context, book *models.Book) error {
	book.ISBN = strings.TrimSpace(book.ISBN)
	book.Title = strings.TrimSpace(book.Title)
	if book.ISBN == "" || book.Title == "" || book.PublicationYear == 0 || book.AuthorID == 0 {
		return errcodes.ValidationError("All fields are required.")
	}

	exists, err := svc.db.
		NewSelect().
		Model((*models.Book)(nil)).
		Where("b.isbn = ?", book.ISBN).
		Exists(ctx)
	if err != nil {
		return errors.WithStack(err)
	}
	if exists {
		return errcodes.DuplicateISBN(book.ISBN)
	}

	exists, err = svc.db.
		NewSelect().
		Model((*models.Book)(nil)).
		Where("LOWER(b.title) = LOWER(?) AND b.author_id = ?", book.Title, book.AuthorID).
		Exists(ctx)
	if err != nil {
		return errors.WithStack(err)
	}
	if exists {
		return errcodes.DuplicateTitleForAuthor(book.Title)
	}

	exists, err = svc.db.
		NewSelect().
		Model((*models.Author)(nil)).
		Where("a.id = ?", book.AuthorID).
		Exists(ctx)
	if err != nil {
		return errors.WithStack(err)
	}
	if !exists {
		return errcodes.NotFound("Author")
	}

	verification := svc.verifier.VerifyTitle(ctx, book.ISBN, book.Title)
	if verification.Result == openlibrary.ResultMismatch {
		return errcodes.ExternalMismatch(book.Title, verification.RemoteTitle)
	}

	now := time.Now()
	if book.CreatedAt.IsZero() {
		book.CreatedAt = now
	}
	book.UpdatedAt = book.CreatedAt

	_, err = svc.db.
		NewInsert().
		Model(book).
		Returning("*").
		Exec(ctx)
	// A concurrent insert between the checks above and here still lands on
	// the storage constraints; surface it as the same duplicate error.
	if database.IsUniqueViolation(err, "books.isbn") {
		return errcodes.DuplicateISBN(book.ISBN)
	}
	if database.IsUniqueViolation(err, "books.title") {
		return errcodes.DuplicateTitleForAuthor(book.Title)
	}
	return errors.WithStack(err)
}

// ListBooks returns the catalog joined with author data, optionally
// filtered by a substring search over title, author name, and ISBN, and
// ordered by the requested sort key (title by default).
func (svc *Service) ListBooks(ctx context.Context, opts ListBooksOptions) (*ListBooksResult, error) {
	var books []*models.Book

	q := svc.db.
		NewSelect().
		Model(&books).
		Relation("Author").
		Join("JOIN authors AS oa ON oa.id = b.author_id")

	search := strings.TrimSpace(opts.Search)
	if search != "" {
		pattern := "%" + search + "%"
		q = q.WhereGroup(" AND ", func(q *bun.SelectQuery) *bun.SelectQuery {
			return q.
				WhereOr("LOWER(b.title) LIKE LOWER(?)", pattern).
				WhereOr("LOWER(oa.name) LIKE LOWER(?)", pattern).
				WhereOr("LOWER(b.isbn) LIKE LOWER(?)", pattern)
		})
	}

	switch opts.Sort {
	case SortAuthor:
		q = q.Order("oa.name ASC")
	case SortYear:
		q = q.Order("b.publication_year ASC")
	default:
		q = q.Order("b.title ASC")
	}

	err := q.Scan(ctx)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	return &ListBooksResult{
		Books:     books,
		NoResults: search != "" && len(books) == 0,
	}, nil
}

// DeleteBook is the deletion coordinator. Everything runs in one
// transaction: the book lookup, the count of the author's remaining books,
// and the deletes, so callers never observe a book removed without its
// author when book_and_author mode selected both, or vice versa.
func (svc *Service) DeleteBook(ctx context.Context, id int, mode DeleteMode) (*DeleteBookResult, error) {
	result := &DeleteBookResult{}

	err := svc.db.RunInTx(ctx, &sql.TxOptions{}, func(ctx context.Context, tx bun.Tx) error {
		book := &models.Book{}
		err := tx.NewSelect().
			Model(book).
			Relation("Author").
			Where("b.id = ?", id).
			Scan(ctx)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return errcodes.NotFound("Book")
			}
			return errors.WithStack(err)
		}
		result.Book = book
		result.Author = book.Author

		count, err := tx.NewSelect().
			Model((*models.Book)(nil)).
			Where("author_id = ?", book.AuthorID).
			Count(ctx)
		if err != nil {
			return errors.WithStack(err)
		}

		_, err = tx.NewDelete().
			Model((*models.Book)(nil)).
			Where("id = ?", id).
			Exec(ctx)
		if err != nil {
			return errors.WithStack(err)
		}

		if mode == DeleteModeBookAndAuthor {
			if count == 1 {
				_, err = tx.NewDelete().
					Model((*models.Author)(nil)).
					Where("id = ?", book.AuthorID).
					Exec(ctx)
				if err != nil {
					return errors.WithStack(err)
				}
				result.AuthorDeleted = true
			} else {
				result.AuthorHasOtherBooks = true
			}
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	return result, nil
}
