package shell

import "strings"

// Page identifies one mountable page.
type Page string

const (
	PageHome     Page = "home"
	PageAbout    Page = "about"
	PageResume   Page = "resume"
	PageDemo     Page = "demo"
	PageNotFound Page = "not-found"
)

// Route maps an in-app path to the page it mounts.
type Route struct {
	Path  string
	Page  Page
	Label string
}

// routes is the constant route table, in navigation order.
var routes = []Route{
	{Path: "/", Page: PageHome, Label: "Homepage"},
	{Path: "/about", Page: PageAbout, Label: "About Me"},
	{Path: "/demo", Page: PageDemo, Label: "Raycaster Demo"},
	{Path: "/resume", Page: PageResume, Label: "Resume"},
}

// Routes returns a copy of the route table.
func Routes() []Route {
	return append([]Route(nil), routes...)
}

// Resolve maps a request path to exactly one page. A trailing slash is
// ignored. Unknown paths report false.
func Resolve(path string) (Page, bool) {
	if path == "" {
		path = "/"
	}
	if len(path) > 1 {
		path = strings.TrimRight(path, "/")
		if path == "" {
			path = "/"
		}
	}
	for _, r := range routes {
		if r.Path == path {
			return r.Page, true
		}
	}
	return PageNotFound, false
}

// NavLink is one entry of the navigation bar.
type NavLink struct {
	Label    string
	Href     string
	External bool
}

// navLinks lists the internal routes followed by the external links.
func navLinks(external []NavLink) []NavLink {
	links := make([]NavLink, 0, len(routes)+len(external))
	for _, r := range routes {
		links = append(links, NavLink{Label: r.Label, Href: r.Path})
	}
	for _, l := range external {
		l.External = true
		links = append(links, l)
	}
	return links
}
