// Package shell renders the navigation bar and mounts exactly one page
// below it for each request path.
package shell

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"io"
	"io/fs"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/ziadkadry99/folio/internal/bridge"
	"github.com/ziadkadry99/folio/internal/content"
)

//go:embed static
var staticFiles embed.FS

// Static returns the embedded stylesheet and shell script, rooted at the
// directory served under /static/.
func Static() fs.FS {
	sub, err := fs.Sub(staticFiles, "static")
	if err != nil {
		panic(err)
	}
	return sub
}

// Script ids used as presence markers in the rendered page.
const (
	LoaderScriptID = "module-loader"
	ConfigScriptID = "module-config"
)

// DemoOptions describe how the demo page attaches the external module.
type DemoOptions struct {
	CanvasID   string
	HandleName string
	LoaderSrc  string
	SocketPath string
}

// Options configure a Shell.
type Options struct {
	SiteTitle  string
	ResumePath string
	Links      []NavLink
	Demo       DemoOptions
}

// Shell renders pages. It holds no per-request state.
type Shell struct {
	opts   Options
	lib    *content.Library
	logger *zap.Logger
	pages  map[Page]*template.Template
	nav    []NavLink
	config bridge.Script
	loader bridge.Script
}

// New parses the page templates and prepares the demo scripts.
func New(lib *content.Library, opts Options, logger *zap.Logger) (*Shell, error) {
	s := &Shell{
		opts:   opts,
		lib:    lib,
		logger: logger,
		pages:  make(map[Page]*template.Template, len(pageTemplates)),
		nav:    navLinks(opts.Links),
		loader: bridge.Script{ID: LoaderScriptID, Src: opts.Demo.LoaderSrc},
	}

	layout, err := template.New("layout").Parse(layoutTemplate)
	if err != nil {
		return nil, fmt.Errorf("parsing layout template: %w", err)
	}
	for page, body := range pageTemplates {
		clone, err := layout.Clone()
		if err != nil {
			return nil, fmt.Errorf("cloning layout for %s: %w", page, err)
		}
		t, err := clone.Parse(body)
		if err != nil {
			return nil, fmt.Errorf("parsing %s template: %w", page, err)
		}
		s.pages[page] = t
	}

	s.config, err = bridge.ConfigScript(ConfigScriptID, bridge.ScriptConfig{
		HandleName: opts.Demo.HandleName,
		CanvasID:   opts.Demo.CanvasID,
		StatusID:   "status",
		ProgressID: "progress",
		SpinnerID:  "spinner",
		OutputID:   "output",
		SocketPath: opts.Demo.SocketPath,
	})
	if err != nil {
		return nil, err
	}
	return s, nil
}

// NavLinks returns the navigation entries: every route, then the external
// links.
func (s *Shell) NavLinks() []NavLink {
	return append([]NavLink(nil), s.nav...)
}

// scriptData is one script element as the layout emits it.
type scriptData struct {
	ID     string
	Src    string
	Inline template.JS
}

// pageData holds the data passed to the layout for each render.
type pageData struct {
	SiteTitle    string
	PageTitle    string
	Page         Page
	ActivePath   string
	RequestPath  string
	Nav          []NavLink
	HandleName   string
	CanvasID     string
	CanvasHidden bool
	Scripts      []scriptData
	Content      template.HTML
	ResumePath   string
}

// Render writes the document for path and returns the HTTP status to send
// with it: 200 for a route, 404 for anything else.
func (s *Shell) Render(w io.Writer, path string) (int, error) {
	page, ok := Resolve(path)
	if !ok {
		return http.StatusNotFound, s.render(w, page, path)
	}
	return http.StatusOK, s.render(w, page, path)
}

// RenderNotFound writes the not-found document without naming a request
// path, for hosts that serve one fixed 404 page.
func (s *Shell) RenderNotFound(w io.Writer) error {
	return s.render(w, PageNotFound, "")
}

func (s *Shell) render(w io.Writer, page Page, path string) error {
	host := bridge.NewPageHost(s.opts.Demo.CanvasID)
	b := bridge.New(host, bridge.NewHandle(s.opts.Demo.HandleName, bridge.Capabilities{}), bridge.Options{
		CanvasID: s.opts.Demo.CanvasID,
		Loader:   s.loader,
		Config:   s.config,
	})
	if page == PageDemo {
		if err := b.Activate(); err != nil {
			s.logger.Warn("demo bridge", zap.Error(err))
		}
	} else {
		b.Deactivate()
	}

	data := pageData{
		SiteTitle:    s.opts.SiteTitle,
		PageTitle:    s.title(page),
		Page:         page,
		RequestPath:  path,
		Nav:          s.nav,
		HandleName:   s.opts.Demo.HandleName,
		CanvasID:     s.opts.Demo.CanvasID,
		CanvasHidden: host.Hidden(s.opts.Demo.CanvasID),
		ResumePath:   s.opts.ResumePath,
	}
	data.ActivePath = routePath(page)
	for _, sc := range host.Scripts() {
		data.Scripts = append(data.Scripts, scriptData{ID: sc.ID, Src: sc.Src, Inline: template.JS(sc.Inline)})
	}
	if p, found := s.lib.Page(string(page)); found {
		data.Content = p.HTML
	}

	var buf bytes.Buffer
	if err := s.pages[page].Execute(&buf, data); err != nil {
		return fmt.Errorf("rendering %s: %w", page, err)
	}
	_, err := buf.WriteTo(w)
	return err
}

func (s *Shell) title(page Page) string {
	if p, ok := s.lib.Page(string(page)); ok {
		return p.Title
	}
	for _, r := range routes {
		if r.Page == page {
			return r.Label
		}
	}
	return "Not Found"
}

func routePath(page Page) string {
	for _, r := range routes {
		if r.Page == page {
			return r.Path
		}
	}
	return ""
}

// RegisterRoutes mounts every route, the embedded static files, and the
// not-found page on the given router.
func (s *Shell) RegisterRoutes(r chi.Router) {
	for _, route := range routes {
		r.Get(route.Path, s.ServeHTTP)
	}
	r.Handle("/static/*", http.StripPrefix("/static/", http.FileServer(http.FS(Static()))))
	r.NotFound(s.ServeHTTP)
}

// ServeHTTP renders the page for the request path.
func (s *Shell) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	var buf bytes.Buffer
	status, err := s.Render(&buf, r.URL.Path)
	if err != nil {
		s.logger.Error("render page", zap.String("path", r.URL.Path), zap.Error(err))
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	buf.WriteTo(w)
}
