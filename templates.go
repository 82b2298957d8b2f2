package cardforge

import (
	"io/fs"

	"github.com/goliatone/go-cardforge/pkg/renderers/html"
)

// EmbeddedTemplates exposes the built-in html renderer templates so callers
// can reuse or extend them without importing the renderer package directly.
func EmbeddedTemplates() fs.FS {
	return html.TemplatesFS()
}

// AssetsFS exposes the card stylesheet so Go applications can serve it next
// to fragment output.
//
// Typical mount:
//
//	mux.Handle("/cardforge/",
//	  http.StripPrefix("/cardforge/",
//	    http.FileServerFS(cardforge.AssetsFS()),
//	  ),
//	)
func AssetsFS() fs.FS {
	return html.AssetsFS()
}
