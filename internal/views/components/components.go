package components

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/a-h/templ"

	"github.com/larsreed/recipes-sub000/internal/views/theme"
)

// Field describes one input of a section's edit form.
type Field struct {
	Name     string
	Label    string
	Type     string // text, number, textarea, checkbox, select, list
	Required bool
	Min      string
	Max      string
}

// Section is one navigable area of the client: a table plus its edit form.
type Section struct {
	Key        string
	Label      string
	Columns    []string
	Fields     []Field
	Searchable bool
}

func linkState(section, active string) string {
	if section == active {
		return "active"
	}
	return "inactive"
}

type htmlWriter struct {
	w   io.Writer
	err error
}

func (h *htmlWriter) printf(format string, args ...any) {
	if h.err != nil {
		return
	}
	_, h.err = fmt.Fprintf(h.w, format, args...)
}

func esc(value string) string {
	return templ.EscapeString(value)
}

// Nav renders the section navigation.
func Nav(sections []Section, active string) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		out := &htmlWriter{w: w}
		out.printf(`<nav class="app-nav">`)
		for _, section := range sections {
			out.printf(`<a href="#%s" data-nav-section="%s" data-state="%s">%s</a>`,
				esc(section.Key), esc(section.Key), linkState(section.Key, active), esc(section.Label))
		}
		out.printf(`</nav>`)
		return out.err
	})
}

// ThemePicker renders the theme selector. The client posts changes to
// /app/preferences and reloads.
func ThemePicker(options []theme.Option, active string) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		out := &htmlWriter{w: w}
		out.printf(`<label class="theme-picker"><span>Theme</span><select name="theme" data-theme-picker>`)
		for _, option := range options {
			selected := ""
			if option.Value == active {
				selected = " selected"
			}
			out.printf(`<option value="%s"%s>%s</option>`, esc(option.Value), selected, esc(option.Label))
		}
		out.printf(`</select></label>`)
		return out.err
	})
}

// ErrorBanner renders the hidden banner the client fills after a failed request.
func ErrorBanner() templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		_, err := io.WriteString(w, `<div class="error-banner" data-error-banner role="alert" hidden><span data-error-text></span><button type="button" data-action="dismiss-error">×</button></div>`)
		return err
	})
}

// Panel renders a section's table and its modal edit form.
func Panel(section Section, active bool) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		out := &htmlWriter{w: w}
		hidden := ""
		if !active {
			hidden = " hidden"
		}
		key := esc(section.Key)
		out.printf(`<section class="panel" id="section-%s" data-section="%s"%s>`, key, key, hidden)
		out.printf(`<header class="panel-header"><h2>%s</h2>`, esc(section.Label))
		if section.Searchable {
			out.printf(`<form class="search" data-search="%s"><input type="search" name="query" placeholder="Search (regular expression)"><button type="submit">Search</button></form>`, key)
		}
		out.printf(`<button type="button" data-action="create" data-target="%s">New</button></header>`, key)

		out.printf(`<table data-table="%s"><thead><tr>`, key)
		for _, column := range section.Columns {
			out.printf(`<th>%s</th>`, esc(column))
		}
		out.printf(`<th></th></tr></thead><tbody></tbody></table>`)

		out.printf(`<dialog id="modal-%s" data-form="%s"><form method="dialog">`, key, key)
		out.printf(`<h3 data-form-title>%s</h3><input type="hidden" name="id">`, esc(section.Label))
		for _, field := range section.Fields {
			renderField(out, field)
		}
		out.printf(`<menu><button value="cancel" formnovalidate>Cancel</button><button value="save" data-action="save">Save</button></menu>`)
		out.printf(`</form></dialog></section>`)
		return out.err
	})
}

func renderField(out *htmlWriter, field Field) {
	name := esc(field.Name)
	required := ""
	if field.Required {
		required = " required"
	}
	var bounds strings.Builder
	if field.Min != "" {
		fmt.Fprintf(&bounds, ` min="%s"`, esc(field.Min))
	}
	if field.Max != "" {
		fmt.Fprintf(&bounds, ` max="%s"`, esc(field.Max))
	}

	out.printf(`<label class="field field-%s">`, esc(field.Type))
	out.printf(`<span>%s</span>`, esc(field.Label))
	switch field.Type {
	case "textarea":
		out.printf(`<textarea name="%s" rows="6"%s></textarea>`, name, required)
	case "checkbox":
		out.printf(`<input type="checkbox" name="%s">`, name)
	case "number":
		out.printf(`<input type="number" step="any" name="%s"%s%s>`, name, bounds.String(), required)
	case "select":
		out.printf(`<select name="%s"%s><option value="">(none)</option></select>`, name, required)
	case "list":
		out.printf(`<div class="list-editor" data-list="%s"></div><button type="button" data-action="add-row" data-list-target="%s">Add</button>`, name, name)
	default:
		out.printf(`<input type="text" name="%s"%s>`, name, required)
	}
	out.printf(`</label>`)
}
