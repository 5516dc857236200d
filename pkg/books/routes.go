package books

import (
	"github.com/labstack/echo/v4"
	"github.com/toshobooks/tosho/pkg/authors"
	"github.com/toshobooks/tosho/pkg/config"
	"github.com/toshobooks/tosho/pkg/openlibrary"
	"github.com/uptrace/bun"
)

func RegisterRoutes(e *echo.Echo, db *bun.DB, cfg *config.Config) {
	client := openlibrary.NewClient(cfg)

	h := &handler{
		bookService:   NewService(db, client),
		authorService: authors.NewService(db),
		covers:        client,
	}

	e.GET("/", h.home)
	e.GET("/add_book", h.addBookForm)
	e.POST("/add_book", h.addBook)
	e.POST("/book/:id/delete", h.deleteBook)
}
