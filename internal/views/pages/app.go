package pages

import (
	"context"
	"io"

	"github.com/a-h/templ"

	"github.com/larsreed/recipes-sub000/internal/views/components"
	"github.com/larsreed/recipes-sub000/internal/views/layout"
	"github.com/larsreed/recipes-sub000/internal/views/theme"
)

// App renders the single-page recipe client. The client script fills the
// tables from the REST API; the server only decides which section is open.
func App(section, themeKey string) templ.Component {
	active := NormalizeSection(section)
	appTheme := theme.Resolve(themeKey)
	content := templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if _, err := io.WriteString(w, `<header class="app-header"><h1>Recipes</h1></header>`); err != nil {
			return err
		}
		if err := components.Nav(sections, active).Render(ctx, w); err != nil {
			return err
		}
		if err := components.ThemePicker(theme.Options(), appTheme.Key).Render(ctx, w); err != nil {
			return err
		}
		if err := components.ErrorBanner().Render(ctx, w); err != nil {
			return err
		}
		if _, err := io.WriteString(w, `<main class="app-main" data-active-section="`+templ.EscapeString(active)+`">`); err != nil {
			return err
		}
		for _, s := range sections {
			if err := components.Panel(s, s.Key == active).Render(ctx, w); err != nil {
				return err
			}
		}
		_, err := io.WriteString(w, `</main>`)
		return err
	})
	return layout.Layout("Recipes", appTheme, content)
}
