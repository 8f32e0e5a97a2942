package display

import (
	"bytes"
	"encoding/json"
	"html/template"
	"net/http"

	"github.com/phuslu/log"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
)

var pageTemplate = template.Must(template.New("page").Parse(`<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<meta http-equiv="refresh" content="{{.Refresh}}">
<title>Stock Portfolio</title>
<style>
body { font-family: sans-serif; background: #000; color: #ccc; }
.portfolio { max-width: {{.MaxWidth}}; }
table { border-collapse: collapse; }
th, td { padding: 0.2em 0.8em; text-align: right; }
th:first-child, td:first-child { text-align: left; }
</style>
</head>
<body>
<div class="portfolio">
{{.Body}}
</div>
</body>
</html>
`))

// PageOptions controls the HTML dashboard page.
type PageOptions struct {
	// Refresh is the page auto-reload interval in seconds.
	Refresh int
	// MaxWidth is a CSS length such as "100%" or "960px".
	MaxWidth string
}

// Handler serves the dashboard and its JSON API.
type Handler struct {
	Board     *Board
	Formatter *Formatter
	Page      PageOptions

	md goldmark.Markdown
}

// NewHandler builds the routes:
//
//	GET /              HTML dashboard
//	GET /api/snapshot  board state with the raw snapshot
//	GET /api/view      formatted view model
//	GET /healthz       liveness
func NewHandler(board *Board, f *Formatter, page PageOptions) http.Handler {
	h := &Handler{
		Board:     board,
		Formatter: f,
		Page:      page,
		md:        goldmark.New(goldmark.WithExtensions(extension.Table)),
	}
	if h.Page.Refresh <= 0 {
		h.Page.Refresh = 60
	}
	if h.Page.MaxWidth == "" {
		h.Page.MaxWidth = "100%"
	}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /{$}", h.dashboard)
	mux.HandleFunc("GET /api/snapshot", h.snapshot)
	mux.HandleFunc("GET /api/view", h.view)
	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte("ok"))
	})
	return mux
}

func (h *Handler) dashboard(w http.ResponseWriter, _ *http.Request) {
	var body bytes.Buffer
	if err := h.md.Convert([]byte(h.Board.View(h.Formatter).Markdown()), &body); err != nil {
		log.Error().Err(err).Msg("render dashboard")
		http.Error(w, "render failed", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := pageTemplate.Execute(w, struct {
		Refresh  int
		MaxWidth string
		Body     template.HTML
	}{h.Page.Refresh, h.Page.MaxWidth, template.HTML(body.String())}); err != nil {
		log.Error().Err(err).Msg("write dashboard")
	}
}

func (h *Handler) snapshot(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, h.Board.State())
}

func (h *Handler) view(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, h.Board.View(h.Formatter))
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		log.Error().Err(err).Msg("encode response")
	}
}
