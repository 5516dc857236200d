package authors

import "github.com/toshobooks/tosho/pkg/web"

func addAuthorPage(message string) string {
	body := web.MessageBanner(message) + `
  <h1>Add Author</h1>
  <form method="post" action="/add_author">
    <label>Name <input type="text" name="name"></label>
    <label>Birthdate <input type="date" name="birthdate"></label>
    <label>Date of Death <input type="date" name="date_of_death"></label>
    <button type="submit">Add Author</button>
  </form>`
	return web.Page(body)
}
