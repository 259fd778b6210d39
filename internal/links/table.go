// Package links holds the relations a Harvest service advertises in its
// response headers.
package links

import (
	"net/http"
	"net/url"
	"path"
	"regexp"
	"strings"

	"github.com/tomnomnom/linkheader"
)

var hasScheme = regexp.MustCompile(`^[A-Za-z][A-Za-z0-9+.-]*:`)

// Header names carrying relations.
const (
	HeaderLink         = "Link"
	HeaderLinkTemplate = "Link-Template"
)

// Link is a concrete URL advertised under a relation name.
type Link struct {
	URL string
}

// Template is a URL with {name} placeholders advertised under a relation name.
type Template struct {
	URL string
}

// Table maps relation names to links and link templates. A Table is never
// modified after Parse returns it.
type Table struct {
	links     map[string]Link
	templates map[string]Template
}

// Parse builds a Table from the Link and Link-Template headers. Missing
// headers yield empty mappings. Root-relative URLs are made absolute against
// base when base is not nil.
func Parse(header http.Header, base *url.URL) *Table {
	table := &Table{
		links:     make(map[string]Link),
		templates: make(map[string]Template),
	}

	for rel, href := range parseHeader(header.Values(HeaderLink), base) {
		table.links[rel] = Link{URL: href}
	}

	for rel, href := range parseHeader(header.Values(HeaderLinkTemplate), base) {
		table.templates[rel] = Template{URL: href}
	}

	return table
}

// Link returns the link registered under rel.
func (t *Table) Link(rel string) (Link, bool) {
	if t == nil {
		return Link{}, false
	}

	link, ok := t.links[rel]

	return link, ok
}

// Template returns the link template registered under rel.
func (t *Table) Template(rel string) (Template, bool) {
	if t == nil {
		return Template{}, false
	}

	template, ok := t.templates[rel]

	return template, ok
}

// Links returns a copy of the links as relation name to URL.
func (t *Table) Links() map[string]string {
	out := make(map[string]string)
	if t == nil {
		return out
	}

	for rel, link := range t.links {
		out[rel] = link.URL
	}

	return out
}

// Templates returns a copy of the link templates as relation name to URL.
func (t *Table) Templates() map[string]string {
	out := make(map[string]string)
	if t == nil {
		return out
	}

	for rel, template := range t.templates {
		out[rel] = template.URL
	}

	return out
}

// Len returns the number of links and templates in the table.
func (t *Table) Len() int {
	if t == nil {
		return 0
	}

	return len(t.links) + len(t.templates)
}

func parseHeader(values []string, base *url.URL) map[string]string {
	out := make(map[string]string)

	for _, link := range linkheader.ParseMultiple(values) {
		// rel may hold several space-separated relation types.
		for _, rel := range strings.Fields(link.Rel) {
			out[rel] = absolute(base, link.URL)
		}
	}

	return out
}

// absolute resolves root-relative and path-relative hrefs against base. It
// works on strings so template placeholders are never percent-encoded.
func absolute(base *url.URL, href string) string {
	if base == nil || base.Host == "" || href == "" {
		return href
	}

	if hasScheme.MatchString(href) || strings.HasPrefix(href, "//") {
		return href
	}

	origin := base.Scheme + "://" + base.Host
	if strings.HasPrefix(href, "/") {
		return origin + href
	}

	dir := base.Path[:strings.LastIndex(base.Path, "/")+1]
	if dir == "" {
		dir = "/"
	}

	return origin + cleanPath(dir+href)
}

// cleanPath removes dot segments, keeping a trailing slash.
func cleanPath(target string) string {
	if !strings.Contains(target, "./") && !strings.HasSuffix(target, "/.") && !strings.HasSuffix(target, "/..") {
		return target
	}

	cleaned := path.Clean(target)
	if strings.HasSuffix(target, "/") && cleaned != "/" {
		cleaned += "/"
	}

	return cleaned
}
