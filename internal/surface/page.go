package surface

import (
	_ "embed"
	"net/http"
)

//go:embed index.html
var indexHTML []byte

// PageHandler serves the embedded map page. Everything interactive on
// the page talks back through the WebSocket endpoint.
func PageHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/" {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.Write(indexHTML)
	})
}
