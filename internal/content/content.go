// Package content renders the markdown bodies of the static pages.
package content

import (
	"bytes"
	"embed"
	"errors"
	"fmt"
	"html/template"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/yuin/goldmark"
	highlighting "github.com/yuin/goldmark-highlighting/v2"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
)

//go:embed defaults/*.md
var defaults embed.FS

// Names of the pages backed by markdown.
var Names = []string{"home", "about"}

// Page is one rendered markdown document.
type Page struct {
	Name  string
	Title string
	HTML  template.HTML
	// Source is "file" when read from the content directory and "default"
	// when the embedded fallback was used.
	Source string
}

// Library holds the rendered pages. Reads are safe while Reload runs.
type Library struct {
	dir string
	md  goldmark.Markdown

	mu    sync.RWMutex
	pages map[string]Page
}

// NewLibrary renders every page from dir, falling back to embedded defaults
// for missing files. An empty dir uses the defaults only.
func NewLibrary(dir string) (*Library, error) {
	l := &Library{
		dir: dir,
		md: goldmark.New(
			goldmark.WithExtensions(
				extension.GFM,
				highlighting.NewHighlighting(
					highlighting.WithStyle("github"),
				),
			),
			goldmark.WithParserOptions(
				parser.WithAutoHeadingID(),
			),
		),
	}
	if err := l.Reload(); err != nil {
		return nil, err
	}
	return l, nil
}

// Dir returns the content directory, or "" when only defaults are used.
func (l *Library) Dir() string { return l.dir }

// Page returns the named page.
func (l *Library) Page(name string) (Page, bool) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	p, ok := l.pages[name]
	return p, ok
}

// Reload re-reads and re-renders every page. On error the previous pages
// are kept.
func (l *Library) Reload() error {
	pages := make(map[string]Page, len(Names))
	for _, name := range Names {
		src, origin, err := l.read(name)
		if err != nil {
			return err
		}

		var buf bytes.Buffer
		if err := l.md.Convert(src, &buf); err != nil {
			return fmt.Errorf("converting %s.md: %w", name, err)
		}
		pages[name] = Page{
			Name:   name,
			Title:  extractTitle(string(src), name),
			HTML:   template.HTML(buf.String()),
			Source: origin,
		}
	}

	l.mu.Lock()
	l.pages = pages
	l.mu.Unlock()
	return nil
}

func (l *Library) read(name string) ([]byte, string, error) {
	if l.dir != "" {
		data, err := os.ReadFile(filepath.Join(l.dir, name+".md"))
		if err == nil {
			return data, "file", nil
		}
		if !errors.Is(err, fs.ErrNotExist) {
			return nil, "", fmt.Errorf("reading %s.md: %w", name, err)
		}
	}
	data, err := defaults.ReadFile("defaults/" + name + ".md")
	if err != nil {
		return nil, "", fmt.Errorf("reading default %s.md: %w", name, err)
	}
	return data, "default", nil
}

// extractTitle pulls the first # heading from markdown content, or falls back to the page name.
func extractTitle(content, name string) string {
	for _, line := range strings.Split(content, "\n") {
		line = strings.TrimSpace(line)
		if strings.HasPrefix(line, "# ") {
			return strings.TrimPrefix(line, "# ")
		}
	}
	if name == "" {
		return ""
	}
	return strings.ToUpper(name[:1]) + name[1:]
}
