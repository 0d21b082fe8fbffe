package main

import (
	"embed"
	"fmt"
	"html/template"
	"sync"

	"github.com/gorilla/mux"

	"github.com/carbocation/variantatlas/render"
	"github.com/carbocation/variantatlas/variant"
)

const (
	BaseFilename = "_base.html"
)

//go:embed templates/*.html templates/static
var embeddedTemplates embed.FS

// handler provides global values that must be
// safe for concurrent use from multiple goroutines
// to each handler method.
type handler struct {
	*Global

	router *mux.Router

	assetsOnce sync.Once
	assets     string

	// Mutex protected values
	mu       sync.RWMutex
	template map[string]*template.Template
}

// Assets is the random path prefix static files are served under. It changes
// on every start.
func (h *handler) Assets() string {
	h.assetsOnce.Do(func() {
		h.assets = fmt.Sprintf("/%s", RandHeteroglyphs(10))
		h.Global.log.Debug().Str("prefix", h.assets).Msg("Initialized assets")
	})

	return h.assets
}

var templateFuncs = template.FuncMap{
	"add":     func(a, b int) int { return a + b },
	"percent": render.FormatPercent,
	"hex":     render.Hex,
	"region": func(p variant.Population) string {
		if site, ok := variant.SiteOf(p); ok {
			return site.Region
		}
		return string(p)
	},
}

// Template returns templateFilename layered over the base template. Parsed
// templates are kept for the life of the process.
func (h *handler) Template(templateFilename string) *template.Template {
	h.mu.RLock()
	base, ok := h.template[BaseFilename]
	h.mu.RUnlock()

	if !ok {
		h.mu.Lock()
		if h.template == nil {
			h.template = make(map[string]*template.Template)
		}
		if base, ok = h.template[BaseFilename]; !ok {
			h.Global.log.Debug().Msg("Initializing HTML templates")

			tpl, err := template.New(BaseFilename).Funcs(templateFuncs).ParseFS(embeddedTemplates, "templates/_*.html")
			if err != nil {
				h.mu.Unlock()
				panic(fmt.Errorf(`handler.go:Template: %s`, err))
			}
			h.template[BaseFilename] = tpl
			base = tpl
		}
		h.mu.Unlock()
	}

	// Prevent execution of the BaseFilename template, which would prevent future copies
	templateName := templateFilename
	if templateFilename == BaseFilename {
		templateName = fmt.Sprintf("CLONE%s", BaseFilename)
	}

	h.mu.RLock()
	tpl, ok := h.template[templateName]
	h.mu.RUnlock()
	if ok {
		return tpl
	}

	// Generate a clone of the base template so you don't contaminate it with the
	// derivative template's `define` statements.
	h.Global.log.Debug().Str("template", templateFilename).Msg("Initializing HTML template")
	tpl = template.Must(base.Clone())
	if templateFilename != BaseFilename {
		var err error
		tpl, err = tpl.ParseFS(embeddedTemplates, "templates/"+templateFilename)
		if err != nil {
			panic(fmt.Errorf(`handler.go:Template: %s`, err))
		}
	}

	h.mu.Lock()
	h.template[templateName] = tpl
	h.mu.Unlock()

	return tpl
}
