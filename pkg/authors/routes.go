package authors

import (
	"github.com/labstack/echo/v4"
	"github.com/uptrace/bun"
)

func RegisterRoutes(e *echo.Echo, db *bun.DB) {
	h := &handler{
		authorService: NewService(db),
	}

	e.GET("/add_author", h.addAuthorForm)
	e.POST("/add_author", h.addAuthor)
	e.POST("/author/:id/delete", h.deleteAuthor)
}
