package models

import (
	"time"

	"github.com/uptrace/bun"
)

type Book struct {
	bun.BaseModel `bun:"table:books,alias:b"`

	ID              int       `bun:",pk,nullzero" json:"id"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
	ISBN            string    `bun:"isbn,nullzero" json:"isbn"`
	Title           string    `bun:",nullzero" json:"title"`
	PublicationYear int       `json:"publication_year"`
	AuthorID        int       `bun:",nullzero" json:"author_id"`
	Author          *Author   `bun:"rel:belongs-to,join:author_id=id" json:"author,omitempty"`
}
