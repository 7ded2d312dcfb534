package server

import (
	"context"
	"net/http"

	"github.com/larsreed/recipes-sub000/internal/handlers"
	applog "github.com/larsreed/recipes-sub000/internal/log"
)

// apiRoutes maps every REST prefix to its resource handler. Each prefix is
// registered with and without a trailing slash.
var apiRoutes = []struct {
	path    string
	handler http.HandlerFunc
}{
	{"/recipes", handlers.RecipeResource},
	{"/sources", handlers.SourceResource},
	{"/attachments", handlers.AttachmentResource},
	{"/conversions", handlers.ConversionResource},
	{"/temperatures", handlers.TemperatureResource},
}

func newRouter(staticDir string) http.Handler {
	mux := http.NewServeMux()
	applog.Debug(context.Background(), "registering http routes")
	mux.HandleFunc("/healthz", handlers.Health)
	applog.Debug(context.Background(), "route registered", "path", "/healthz")
	for _, route := range apiRoutes {
		mux.HandleFunc(route.path, route.handler)
		mux.HandleFunc(route.path+"/", route.handler)
		applog.Debug(context.Background(), "route registered", "path", route.path, "api", true)
	}
	mux.HandleFunc("/app", handlers.App)
	mux.HandleFunc("/app/preferences", handlers.UpdatePreferences)
	applog.Debug(context.Background(), "route registered", "path", "/app")
	mux.HandleFunc("/", handlers.Home)
	applog.Debug(context.Background(), "route registered", "path", "/")
	mux.Handle("/assets/", http.StripPrefix("/assets/", http.FileServer(http.Dir(staticDir))))
	applog.Debug(context.Background(), "route registered", "path", "/assets/", "static", true)
	return mux
}
