package books

type ListBooksQuery struct {
	Search  string `query:"search" json:"search,omitempty" validate:"omitempty,max=100"`
	Sort    string `query:"sort" json:"sort,omitempty" default:"title" validate:"oneof=title author year"`
	Message string `query:"message" json:"message,omitempty"`
}

type AddBookPayload struct {
	ISBN            string `form:"isbn" mod:"trim" validate:"required,max=20"`
	Title           string `form:"title" mod:"trim" validate:"required,max=200"`
	PublicationYear int    `form:"publication_year" validate:"required"`
	AuthorID        int    `form:"author_id" validate:"required,min=1"`
}
