package authors

type AddAuthorPayload struct {
	Name        string `form:"name" mod:"trim" validate:"required,max=120"`
	Birthdate   string `form:"birthdate" mod:"trim" validate:"required,date"`
	DateOfDeath string `form:"date_of_death" mod:"trim" validate:"omitempty,date"`
}
