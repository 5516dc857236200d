package books

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/toshobooks/tosho/pkg/models"
	"github.com/toshobooks/tosho/pkg/openlibrary"
	"github.com/toshobooks/tosho/pkg/web"
)

func sortLink(sort, label, search, current string) string {
	href := "/?sort=" + sort
	if search != "" {
		href += "&search=" + url.QueryEscape(search)
	}
	if sort == current {
		return fmt.Sprintf(`<strong>%s</strong>`, web.Esc(label))
	}
	return fmt.Sprintf(`<a href="%s">%s</a>`, href, web.Esc(label))
}

func bookEntry(book *models.Book, covers *openlibrary.Client) string {
	var sb strings.Builder

	authorName := ""
	lifespan := ""
	if book.Author != nil {
		authorName = book.Author.Name
		lifespan = " (" + book.Author.Lifespan() + ")"
	}

	sb.WriteString(`<div class="book">`)
	sb.WriteString(fmt.Sprintf(`<img src="%s" alt="">`, web.Esc(covers.CoverURL(book.ISBN))))
	sb.WriteString(`<div>`)
	sb.WriteString(fmt.Sprintf(`<div class="book-title">%s</div>`, web.Esc(book.Title)))
	sb.WriteString(fmt.Sprintf(`<div class="book-meta">%s%s &middot; %d &middot; ISBN %s</div>`,
		web.Esc(authorName), web.Esc(lifespan), book.PublicationYear, web.Esc(book.ISBN)))
	sb.WriteString(fmt.Sprintf(`<form class="inline" method="post" action="/book/%d/delete?mode=book"><button>Delete Book</button></form> `, book.ID))
	sb.WriteString(fmt.Sprintf(`<form class="inline" method="post" action="/book/%d/delete?mode=book_and_author"><button>Delete Book + Author if Last</button></form> `, book.ID))
	sb.WriteString(fmt.Sprintf(`<form class="inline" method="post" action="/author/%d/delete"><button>Delete Author + All Books</button></form>`, book.AuthorID))
	sb.WriteString(`</div></div>`)

	return sb.String()
}

func homePage(result *ListBooksResult, params ListBooksQuery, covers *openlibrary.Client) string {
	var sb strings.Builder

	sb.WriteString(web.MessageBanner(params.Message))
	sb.WriteString(`<h1>Library</h1>`)
	sb.WriteString(fmt.Sprintf(`
  <form method="get" action="/">
    <input type="text" name="search" value="%s" placeholder="Search title, author, or ISBN">
    <input type="hidden" name="sort" value="%s">
    <button type="submit">Search</button>
  </form>`, web.Esc(params.Search), web.Esc(params.Sort)))
	sb.WriteString(`<p>Sort by: ` +
		sortLink("title", "Title", params.Search, params.Sort) + ` | ` +
		sortLink("author", "Author", params.Search, params.Sort) + ` | ` +
		sortLink("year", "Year", params.Search, params.Sort) + `</p>`)

	switch {
	case result.NoResults:
		sb.WriteString(fmt.Sprintf(`<div class="no-results">No books match your search for %q.</div>`, web.Esc(params.Search)))
	case len(result.Books) == 0:
		sb.WriteString(`<div class="no-results">The library is empty. <a href="/seed">Seed it</a> or <a href="/add_book">add a book</a>.</div>`)
	default:
		for _, book := range result.Books {
			sb.WriteString(bookEntry(book, covers))
		}
	}

	return web.Page(sb.String())
}

func addBookPage(authorList []*models.Author, message string) string {
	var options strings.Builder
	for _, author := range authorList {
		options.WriteString(fmt.Sprintf(`<option value="%d">%s</option>`, author.ID, web.Esc(author.Name)))
	}

	body := web.MessageBanner(message) + `
  <h1>Add Book</h1>
  <form method="post" action="/add_book">
    <label>ISBN <input type="text" name="isbn"></label>
    <label>Title <input type="text" name="title"></label>
    <label>Publication Year <input type="number" name="publication_year"></label>
    <label>Author <select name="author_id">` + options.String() + `</select></label>
    <button type="submit">Add Book</button>
  </form>`

	return web.Page(body)
}
