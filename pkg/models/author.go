package models

import (
	"time"

	"github.com/uptrace/bun"
)

type Author struct {
	bun.BaseModel `bun:"table:authors,alias:a"`

	ID          int        `bun:",pk,nullzero" json:"id"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
	Name        string     `bun:",nullzero" json:"name"`
	BirthDate   time.Time  `json:"birth_date"`
	DateOfDeath *time.Time `json:"date_of_death"`

	Books []*Book `bun:"rel:has-many,join:id=author_id" json:"books,omitempty"`
}

// Lifespan renders "1775–1817" or "1961–" for display.
func (a *Author) Lifespan() string {
	s := a.BirthDate.Format("2006") + "–"
	if a.DateOfDeath != nil {
		s += a.DateOfDeath.Format("2006")
	}
	return s
}
