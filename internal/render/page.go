package render

import (
	"embed"
	"html/template"
	"io"
)

//go:embed assets
var Assets embed.FS

var pageTemplate = template.Must(template.ParseFS(Assets, "assets/index.html.tmpl"))

// PageData is everything the page shell needs at load time. Rows come
// pre-rendered in display order; the map is created later over the stream.
type PageData struct {
	Topic        string
	Container    string
	SelectedType string
	VisibleField string
	FormVisible  bool
	Rows         []Entry
}

func Page(w io.Writer, data PageData) error {
	return pageTemplate.ExecuteTemplate(w, "index.html.tmpl", data)
}
