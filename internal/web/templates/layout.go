package templates

import (
	"context"
	"fmt"
	"io"

	"github.com/a-h/templ"
)

// PageData carries fields shared by every page
type PageData struct {
	Title string
	// UserName is the logged-in account's display name, empty for anonymous
	UserName string
}

// page wraps body content in the shared document shell
func page(data PageData, body func(w io.Writer) error) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		if _, err := fmt.Fprintf(w, `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1">
<title>%s - Team Gate</title>
</head>
<body>
<nav>
<a href="/">Team Gate</a>
%s
</nav>
<main>
`, templ.EscapeString(data.Title), navUser(data.UserName)); err != nil {
			return err
		}
		if err := body(w); err != nil {
			return err
		}
		_, err := io.WriteString(w, "</main>\n</body>\n</html>\n")
		return err
	})
}

func navUser(userName string) string {
	if userName == "" {
		return `<a href="/auth">Log in</a>`
	}
	return fmt.Sprintf(`<span class="user">%s</span>
<form method="post" action="/logout"><button type="submit">Log out</button></form>`, templ.EscapeString(userName))
}
