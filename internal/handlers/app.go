package handlers

import (
	"net/http"
	"strings"

	applog "github.com/larsreed/recipes-sub000/internal/log"
	"github.com/larsreed/recipes-sub000/internal/views/pages"
	"github.com/larsreed/recipes-sub000/internal/views/theme"
)

const (
	sessionSectionKey = "app:section"
	sessionThemeKey   = "app:theme"
)

type preferencesRequest struct {
	Section string `json:"section"`
	Theme   string `json:"theme"`
}

type preferencesResponse struct {
	Section string `json:"section"`
	Theme   string `json:"theme"`
}

// Home sends visitors to the client application.
func Home(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	http.Redirect(w, r, "/app", http.StatusSeeOther)
}

// App renders the single-page client with the section remembered in the session.
func App(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet && r.Method != http.MethodHead {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	section, themeKey := sessionPreferences(r)
	if requested := r.URL.Query().Get("section"); requested != "" {
		section = requested
	}
	applog.Debug(r.Context(), "rendering client", "section", section, "theme", themeKey)

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := pages.App(section, themeKey).Render(r.Context(), w); err != nil {
		applog.Error(r.Context(), "failed to render client", "error", err)
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

// UpdatePreferences stores the active client section and theme in the session.
func UpdatePreferences(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		applog.Debug(r.Context(), "preferences update with unsupported method", "method", r.Method)
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	var payload preferencesRequest
	if strings.HasPrefix(r.Header.Get("Content-Type"), "application/json") {
		if !decodeJSON(w, r, &payload) {
			return
		}
	} else {
		if err := r.ParseForm(); err != nil {
			applog.Debug(r.Context(), "failed to parse preferences form", "error", err)
			writeJSONError(w, http.StatusBadRequest, "invalid form submission")
			return
		}
		payload.Section = r.FormValue("section")
		payload.Theme = r.FormValue("theme")
	}

	current, currentTheme := sessionPreferences(r)
	section := strings.ToLower(strings.TrimSpace(payload.Section))
	if section == "" {
		section = current
	} else if !pages.ValidSection(section) {
		applog.Debug(r.Context(), "received invalid section", "value", payload.Section)
		writeJSONError(w, http.StatusBadRequest, "invalid section")
		return
	}

	themeKey := currentTheme
	if strings.TrimSpace(payload.Theme) != "" {
		if !theme.Valid(payload.Theme) {
			applog.Debug(r.Context(), "received invalid theme", "value", payload.Theme)
			writeJSONError(w, http.StatusBadRequest, "invalid theme selection")
			return
		}
		themeKey = theme.Resolve(payload.Theme).Key
	}

	if sessionManager == nil {
		applog.Debug(r.Context(), "session manager not configured; preferences not persisted")
	} else {
		sessionManager.Put(r.Context(), sessionSectionKey, section)
		sessionManager.Put(r.Context(), sessionThemeKey, themeKey)
	}

	writeJSON(w, http.StatusOK, preferencesResponse{Section: section, Theme: themeKey})
}

func sessionPreferences(r *http.Request) (string, string) {
	section := pages.DefaultSection()
	themeKey := theme.DefaultKey
	if sessionManager == nil {
		return section, themeKey
	}
	if stored := sessionManager.GetString(r.Context(), sessionSectionKey); stored != "" {
		section = pages.NormalizeSection(stored)
	}
	if stored := sessionManager.GetString(r.Context(), sessionThemeKey); stored != "" {
		themeKey = theme.Resolve(stored).Key
	}
	return section, themeKey
}
