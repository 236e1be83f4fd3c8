package shell

// layoutTemplate is the page shell shared by every route. The canvas lives
// here, outside any page, so the demo bridge can attach to it.
const layoutTemplate = `<!DOCTYPE html>
<html lang="en">
<head>
  <meta charset="UTF-8">
  <meta name="viewport" content="width=device-width, initial-scale=1.0">
  <title>{{.PageTitle}} | {{.SiteTitle}}</title>
  <link rel="stylesheet" href="/static/style.css">
</head>
<body data-page="{{.Page}}" data-handle="{{.HandleName}}">
  <nav class="navbar">
    <a class="brand" href="/">{{.SiteTitle}}</a>
    <ul class="nav-links">
      {{- range .Nav}}
      <li>{{if .External}}<a href="{{.Href}}" target="_blank" rel="noopener noreferrer">{{.Label}}</a>{{else}}<a href="{{.Href}}"{{if eq .Href $.ActivePath}} class="active" aria-current="page"{{end}}>{{.Label}}</a>{{end}}</li>
      {{- end}}
    </ul>
  </nav>
  <main id="page" class="page page-{{.Page}}">
{{template "body" .}}
  </main>
  <div class="module-stage">
    <canvas id="{{.CanvasID}}" class="module-canvas" oncontextmenu="event.preventDefault()" tabindex="-1"{{if .CanvasHidden}} hidden{{end}}></canvas>
  </div>
  {{- range .Scripts}}
  {{if .Src}}<script id="{{.ID}}" src="{{.Src}}" async></script>{{else}}<script id="{{.ID}}">{{.Inline}}</script>{{end}}
  {{- end}}
  <script src="/static/shell.js" defer></script>
</body>
</html>`

const homeTemplate = `{{define "body"}}    <article class="markdown">
      {{.Content}}
    </article>{{end}}`

const aboutTemplate = `{{define "body"}}    <article class="markdown">
      {{.Content}}
    </article>{{end}}`

const resumeTemplate = `{{define "body"}}    <h1>Resume</h1>
    <object class="resume-viewer" data="{{.ResumePath}}" type="application/pdf">
      <p>Your browser cannot display the document. <a href="{{.ResumePath}}">Download it instead.</a></p>
    </object>{{end}}`

const demoTemplate = `{{define "body"}}    <h1>Raycaster</h1>
    <div class="module-status">
      <div class="spinner" id="spinner"></div>
      <div class="status" id="status">Downloading...</div>
      <progress id="progress" value="0" max="100" hidden></progress>
    </div>
    <div class="module-controls">
      <label><input type="checkbox" id="resize"> Resize canvas</label>
      <label><input type="checkbox" id="pointerLock" checked> Lock/hide mouse pointer</label>
      <button type="button" id="fullscreen">Fullscreen</button>
    </div>
    <textarea class="module-output" id="output" rows="8" readonly></textarea>{{end}}`

const notFoundTemplate = `{{define "body"}}    <h1>Page not found</h1>
    <p>{{if .RequestPath}}There is nothing at <code>{{.RequestPath}}</code>. {{end}}Try the <a href="/">home page</a>.</p>{{end}}`

// pageTemplates maps each page to its body definition.
var pageTemplates = map[Page]string{
	PageHome:     homeTemplate,
	PageAbout:    aboutTemplate,
	PageResume:   resumeTemplate,
	PageDemo:     demoTemplate,
	PageNotFound: notFoundTemplate,
}
