package theme

import "strings"

// Option represents a selectable theme exposed to the UI.
type Option struct {
	Value string
	Label string
}

// AppTheme contains resolved styling hooks for the application shell.
type AppTheme struct {
	Key        string
	BodyClass  string
	ShellClass string
}

const (
	// DefaultKey defines the fallback theme when the session holds no preference.
	DefaultKey = "kitchen"
)

var catalogue = map[string]AppTheme{
	"kitchen": {
		Key:        "kitchen",
		BodyClass:  "app-body light",
		ShellClass: "app-shell",
	},
	"night": {
		Key:        "night",
		BodyClass:  "app-body dark",
		ShellClass: "app-shell",
	},
}

var options = []Option{
	{Value: "kitchen", Label: "Kitchen (Light)"},
	{Value: "night", Label: "Night (Dark)"},
}

// Resolve returns the registered theme for key, or the default theme.
func Resolve(key string) AppTheme {
	normalized := strings.ToLower(strings.TrimSpace(key))
	if value, ok := catalogue[normalized]; ok {
		return value
	}
	return catalogue[DefaultKey]
}

// Valid reports whether key names a registered theme.
func Valid(key string) bool {
	_, ok := catalogue[strings.ToLower(strings.TrimSpace(key))]
	return ok
}

// Options exposes the available theme selections for rendering in a form control.
func Options() []Option {
	return options
}
