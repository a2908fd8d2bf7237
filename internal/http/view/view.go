// Package view renders the storefront's HTML pages and fragments.
package view

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"io/fs"
	"net/http"
	"net/url"
	"os"
	"path"
	"strconv"
	"sync"

	"github.com/tuanvumaihuynh/shopster-web/internal/commerce"
	"github.com/tuanvumaihuynh/shopster-web/internal/i18n"
	"github.com/tuanvumaihuynh/shopster-web/internal/model"
	"github.com/tuanvumaihuynh/shopster-web/internal/search"
	"github.com/tuanvumaihuynh/shopster-web/pkg/money"
)

//go:embed templates static
var embedded embed.FS

// DevDir is where templates are read from when reloading is on. It is relative
// to the repository root.
const DevDir = "internal/http/view"

type Options struct {
	Translator *i18n.Translator
	Prices     *money.Formatter
	Media      commerce.Media
	// Reload re-parses templates from DevDir on every render.
	Reload bool
}

// Renderer executes page templates inside the shared layout.
type Renderer struct {
	funcs  template.FuncMap
	reload bool

	mu  sync.RWMutex
	set *templateSet
}

type templateSet struct {
	pages    map[string]*template.Template
	partials *template.Template
}

func New(opts Options) (*Renderer, error) {
	r := &Renderer{
		funcs:  funcMap(opts),
		reload: opts.Reload,
	}
	set, err := r.parse(r.source())
	if err != nil {
		return nil, err
	}
	r.set = set
	return r, nil
}

func (r *Renderer) source() fs.FS {
	if r.reload {
		return os.DirFS(DevDir)
	}
	return embedded
}

// parse builds one template per page: the layout and partials cloned, plus the
// page's own "content" block.
func (r *Renderer) parse(fsys fs.FS) (*templateSet, error) {
	partials, err := template.New("partials").Funcs(r.funcs).ParseFS(fsys, "templates/layout.html", "templates/partials/*.html")
	if err != nil {
		return nil, fmt.Errorf("parse layout and partials: %w", err)
	}

	files, err := fs.Glob(fsys, "templates/pages/*.html")
	if err != nil {
		return nil, fmt.Errorf("list page templates: %w", err)
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("no page templates found")
	}

	pages := make(map[string]*template.Template, len(files))
	for _, file := range files {
		name := path.Base(file)
		name = name[:len(name)-len(path.Ext(name))]

		clone, err := partials.Clone()
		if err != nil {
			return nil, fmt.Errorf("clone layout for %s: %w", name, err)
		}
		page, err := clone.ParseFS(fsys, file)
		if err != nil {
			return nil, fmt.Errorf("parse page %s: %w", name, err)
		}
		pages[name] = page
	}

	return &templateSet{pages: pages, partials: partials}, nil
}

func (r *Renderer) current() (*templateSet, error) {
	if r.reload {
		return r.parse(r.source())
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.set, nil
}

// Page renders the named page inside the layout.
func (r *Renderer) Page(w http.ResponseWriter, status int, name string, data any) error {
	set, err := r.current()
	if err != nil {
		return err
	}
	t, ok := set.pages[name]
	if !ok {
		return fmt.Errorf("unknown page template %q", name)
	}
	return write(w, status, t, "layout", data)
}

// Partial renders a named block on its own, for fragment responses.
func (r *Renderer) Partial(w http.ResponseWriter, status int, name string, data any) error {
	set, err := r.current()
	if err != nil {
		return err
	}
	return write(w, status, set.partials, name, data)
}

// write buffers the output so a failing template never leaves a half page.
func write(w http.ResponseWriter, status int, t *template.Template, name string, data any) error {
	var buf bytes.Buffer
	if err := t.ExecuteTemplate(&buf, name, data); err != nil {
		return fmt.Errorf("execute template %s: %w", name, err)
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, err := buf.WriteTo(w)
	return err
}

// Static serves the embedded stylesheet and script.
func Static() http.Handler {
	sub, err := fs.Sub(embedded, "static")
	if err != nil {
		panic(err)
	}
	return http.FileServer(http.FS(sub))
}

func funcMap(opts Options) template.FuncMap {
	t := opts.Translator
	return template.FuncMap{
		"t":          t.T,
		"lang":       t.Lang,
		"date":       t.Date,
		"moderation": t.ModerationLabel,
		"price":      opts.Prices.Format,
		"media":      opts.Media.URL,
		"productImage": func(p model.Product) string {
			img, ok := p.MainImage()
			if !ok {
				return ""
			}
			return opts.Media.URL(img.Image)
		},
		"rating": func(avg *float64) string {
			if avg == nil {
				return t.T("reviews.no_rating")
			}
			return strconv.FormatFloat(*avg, 'f', 1, 64)
		},
		"deref": func(p *int) int {
			if p == nil {
				return 0
			}
			return *p
		},
		"ratings":         func() []int { return []int{5, 4, 3, 2, 1} },
		"searchMinLength": func() int { return search.MinQueryLength },
		"href":            href,
	}
}

// href builds path with the non-empty key/value pairs as its query.
func href(p string, kv ...any) string {
	q := url.Values{}
	for i := 0; i+1 < len(kv); i += 2 {
		key := fmt.Sprint(kv[i])
		val := fmt.Sprint(kv[i+1])
		if val == "" || val == "0" {
			continue
		}
		q.Set(key, val)
	}
	if len(q) == 0 {
		return p
	}
	return p + "?" + q.Encode()
}
