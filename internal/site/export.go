package site

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"go.uber.org/zap"

	"github.com/ziadkadry99/folio/internal/members"
	"github.com/ziadkadry99/folio/internal/progress"
	"github.com/ziadkadry99/folio/internal/shell"
)

// Options configure a static export.
type Options struct {
	OutputDir string
	AssetsDir string   // copied to <out>/assets/ when set
	Include   []string // doublestar patterns relative to AssetsDir
	Exclude   []string
	Members   []string // written to <out>/api when non-nil
}

// Result counts the files written by Export.
type Result struct {
	Pages  int
	Static int
	Assets int
}

// Total returns the number of files written.
func (r Result) Total() int { return r.Pages + r.Static + r.Assets }

// Exporter renders the site into a directory that any static file host can
// serve.
type Exporter struct {
	shell    *shell.Shell
	opts     Options
	reporter progress.Reporter
	logger   *zap.Logger
}

// NewExporter creates an Exporter. A nil reporter discards progress.
func NewExporter(sh *shell.Shell, opts Options, reporter progress.Reporter, logger *zap.Logger) *Exporter {
	if reporter == nil {
		reporter = progress.Nop{}
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Exporter{shell: sh, opts: opts, reporter: reporter, logger: logger}
}

type fileKind int

const (
	kindPage fileKind = iota
	kindStatic
	kindAsset
)

// job writes one output file.
type job struct {
	rel   string
	kind  fileKind
	write func(w io.Writer) error
}

// Export writes every route, the not-found page, the embedded static files
// and the selected assets under OutputDir.
func (e *Exporter) Export(ctx context.Context) (Result, error) {
	if e.opts.OutputDir == "" {
		return Result{}, fmt.Errorf("export: output directory is required")
	}

	jobs := e.pageJobs()
	static, err := e.staticJobs()
	if err != nil {
		return Result{}, err
	}
	jobs = append(jobs, static...)
	assets, err := e.assetJobs()
	if err != nil {
		return Result{}, err
	}
	jobs = append(jobs, assets...)

	var res Result
	e.reporter.Start(len(jobs))
	defer e.reporter.Finish()

	for i, j := range jobs {
		if err := ctx.Err(); err != nil {
			return res, err
		}
		if err := e.writeFile(j); err != nil {
			return res, fmt.Errorf("writing %s: %w", j.rel, err)
		}
		switch j.kind {
		case kindPage:
			res.Pages++
		case kindStatic:
			res.Static++
		case kindAsset:
			res.Assets++
		}
		e.reporter.Update(i+1, j.rel)
	}

	e.logger.Info("site exported",
		zap.String("output", e.opts.OutputDir),
		zap.Int("pages", res.Pages),
		zap.Int("static", res.Static),
		zap.Int("assets", res.Assets),
	)
	return res, nil
}

func (e *Exporter) pageJobs() []job {
	var jobs []job
	for _, route := range shell.Routes() {
		routePath := route.Path
		jobs = append(jobs, job{
			rel:  PageFile(routePath),
			kind: kindPage,
			write: func(w io.Writer) error {
				_, err := e.shell.Render(w, routePath)
				return err
			},
		})
	}
	jobs = append(jobs, job{rel: "404.html", kind: kindPage, write: e.shell.RenderNotFound})

	if e.opts.Members != nil {
		names := e.opts.Members
		jobs = append(jobs, job{
			rel:  "api",
			kind: kindPage,
			write: func(w io.Writer) error {
				return json.NewEncoder(w).Encode(members.DataObject{Members: names})
			},
		})
	}
	return jobs
}

func (e *Exporter) staticJobs() ([]job, error) {
	return fsJobs(shell.Static(), "static", kindStatic, func(string) bool { return true })
}

func (e *Exporter) assetJobs() ([]job, error) {
	if e.opts.AssetsDir == "" {
		return nil, nil
	}
	info, err := os.Stat(e.opts.AssetsDir)
	if os.IsNotExist(err) {
		e.logger.Debug("assets directory missing, skipping", zap.String("dir", e.opts.AssetsDir))
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("assets path %s is not a directory", e.opts.AssetsDir)
	}
	for _, p := range append(append([]string(nil), e.opts.Include...), e.opts.Exclude...) {
		if !doublestar.ValidatePattern(p) {
			return nil, fmt.Errorf("invalid export pattern %q", p)
		}
	}
	return fsJobs(os.DirFS(e.opts.AssetsDir), "assets", kindAsset, func(rel string) bool {
		return Selected(rel, e.opts.Include, e.opts.Exclude)
	})
}

// fsJobs copies every selected regular file of fsys under prefix.
func fsJobs(fsys fs.FS, prefix string, kind fileKind, keep func(rel string) bool) ([]job, error) {
	var rels []string
	err := fs.WalkDir(fsys, ".", func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !d.Type().IsRegular() {
			return nil
		}
		if keep(p) {
			rels = append(rels, p)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walking %s: %w", prefix, err)
	}
	sort.Strings(rels)

	jobs := make([]job, 0, len(rels))
	for _, rel := range rels {
		src := rel
		jobs = append(jobs, job{
			rel:  path.Join(prefix, rel),
			kind: kind,
			write: func(w io.Writer) error {
				f, err := fsys.Open(src)
				if err != nil {
					return err
				}
				defer f.Close()
				_, err = io.Copy(w, f)
				return err
			},
		})
	}
	return jobs, nil
}

// writeFile renders a job into memory first so a failed render leaves no
// partial file behind.
func (e *Exporter) writeFile(j job) error {
	var buf bytes.Buffer
	if err := j.write(&buf); err != nil {
		return err
	}
	out := filepath.Join(e.opts.OutputDir, filepath.FromSlash(j.rel))
	if err := os.MkdirAll(filepath.Dir(out), 0o755); err != nil {
		return err
	}
	return os.WriteFile(out, buf.Bytes(), 0o644)
}

// PageFile maps a route path to the file a static host serves for it:
// "/" is index.html and "/about" is about/index.html.
func PageFile(routePath string) string {
	p := strings.Trim(routePath, "/")
	if p == "" {
		return "index.html"
	}
	return p + "/index.html"
}

// Selected reports whether rel matches an include pattern and no exclude
// pattern. An empty include list selects everything.
func Selected(rel string, include, exclude []string) bool {
	for _, pattern := range exclude {
		if ok, _ := doublestar.Match(pattern, rel); ok {
			return false
		}
	}
	if len(include) == 0 {
		return true
	}
	for _, pattern := range include {
		if ok, _ := doublestar.Match(pattern, rel); ok {
			return true
		}
	}
	return false
}
