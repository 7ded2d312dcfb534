package layout

import (
	"context"
	"fmt"
	"io"

	"github.com/a-h/templ"

	"github.com/larsreed/recipes-sub000/internal/views/theme"
)

// Layout renders the HTML document shell around content.
func Layout(title string, appTheme theme.AppTheme, content templ.Component) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if _, err := fmt.Fprintf(w, `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1">
<title>%s</title>
<link rel="stylesheet" href="/assets/app.css">
</head>
<body class="%s" data-theme="%s">
<div class="%s">
`, templ.EscapeString(title), templ.EscapeString(appTheme.BodyClass), templ.EscapeString(appTheme.Key), templ.EscapeString(appTheme.ShellClass)); err != nil {
			return err
		}
		if content != nil {
			if err := content.Render(ctx, w); err != nil {
				return err
			}
		}
		_, err := io.WriteString(w, `</div>
<script src="/assets/app.js" defer></script>
</body>
</html>
`)
		return err
	})
}
