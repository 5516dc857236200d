// Package web holds the shared HTML chrome for the server-rendered pages.
// Pages are built the same way the catalog's status messages travel: plain
// strings, escaped at the point of interpolation.
package web

import (
	"fmt"
	"html"
	"net/url"
)

const baseTemplate = `<!DOCTYPE html>
<html>
<head>
  <meta name="viewport" content="width=device-width, initial-scale=1">
  <title>Tosho Library</title>
  <style>
    body { font-family: sans-serif; margin: 16px; max-width: 960px; }
    a { color: #1a4d8f; }
    .nav { margin-bottom: 16px; }
    .nav a { margin-right: 12px; }
    .message { padding: 8px 12px; margin: 12px 0; background: #eef4ff; border: 1px solid #b9cdf0; }
    .book { display: flex; gap: 12px; padding: 12px 0; border-bottom: 1px solid #ccc; }
    .book img { width: 60px; }
    .book-title { font-size: 1.1em; font-weight: bold; }
    .book-meta { font-size: 0.9em; color: #666; }
    .no-results { padding: 12px 0; color: #666; font-style: italic; }
    form.inline { display: inline; }
    label { display: block; margin-top: 8px; }
    input, select { padding: 4px; margin-top: 2px; }
    button { padding: 4px 10px; margin-top: 8px; }
  </style>
</head>
<body>
  <div class="nav">
    <a href="/">Home</a>
    <a href="/add_author">Add Author</a>
    <a href="/add_book">Add Book</a>
  </div>
  %s
</body>
</html>`

// Page wraps a body fragment in the site layout. The body must already be
// escaped.
func Page(body string) string {
	return fmt.Sprintf(baseTemplate, body)
}

// Esc escapes a string for safe interpolation into HTML.
func Esc(s string) string {
	return html.EscapeString(s)
}

// MessageBanner renders the status banner shown after a mutation, or nothing
// when the message is empty.
func MessageBanner(message string) string {
	if message == "" {
		return ""
	}
	return fmt.Sprintf(`<div class="message">%s</div>`, Esc(message))
}

// RedirectHome builds the home URL carrying a status message.
func RedirectHome(message string) string {
	if message == "" {
		return "/"
	}
	return "/?message=" + url.QueryEscape(message)
}
