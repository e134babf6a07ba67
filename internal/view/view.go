// Package view builds the weather page and the fragments rendered into its
// output region during a search.
package view

import (
	"embed"

	"golang.org/x/net/html"

	"vedur/internal/elements"
	"vedur/internal/locations"
	"vedur/internal/types"
)

const (
	Heading       = "Veðrið"
	Intro         = "Velkomin/n í veðurforritð, Veldu stað til að sjá hita- og úrkomuspá í dag."
	LoadingText   = "Leita..."
	MyLocation    = "Mín staðsetning"
	ErrorPrefix   = "Villa: "
	ResultsPrefix = "Niðurstöður fyrir: "

	OutputClass   = "output"
	LocationParam = "location"
)

// Assets holds the stylesheet and page script, served under /static
//
//go:embed assets
var Assets embed.FS

// Region is the part of the page a search renders into
type Region interface {
	// Replace clears the region and shows n in it
	Replace(n *html.Node)
}

// NodeRegion is a Region backed by an element in a node tree
type NodeRegion struct {
	node *html.Node
}

func NewNodeRegion(n *html.Node) *NodeRegion {
	return &NodeRegion{node: n}
}

func (r *NodeRegion) Replace(n *html.Node) {
	elements.Empty(r.node)
	if n != nil {
		r.node.AppendChild(n)
	}
}

// Node returns the element behind the region
func (r *NodeRegion) Node() *html.Node {
	return r.node
}

// View renders the page shell and the search states
type View struct {
	formatter *Formatter
}

func New(formatter *Formatter) *View {
	return &View{formatter: formatter}
}

// Loading renders the placeholder shown while a search is in flight
func (v *View) Loading() *html.Node {
	return elements.El("p", nil, elements.Text(LoadingText))
}

// Error renders a failed search
func (v *View) Error(err error) *html.Node {
	return elements.El("p", nil, elements.Text(ErrorPrefix+err.Error()))
}

// Results renders a table with a header row and one row per point, in order
func (v *View) Results(location types.Location, points []types.ForecastPoint) *html.Node {
	rows := make([]*html.Node, 0, len(points)+1)
	rows = append(rows, elements.El("tr", nil,
		elements.El("th", nil, elements.Text("Tími")),
		elements.El("th", nil, elements.Text("Hiti")),
		elements.El("th", nil, elements.Text("Úrkoma")),
	))

	for _, p := range points {
		rows = append(rows, elements.El("tr", nil,
			elements.El("td", nil, elements.Text(v.formatter.Format(p.Time))),
			elements.El("td", nil, elements.Text(p.Temperature.String())),
			elements.El("td", nil, elements.Text(p.Precipitation.String())),
		))
	}

	return elements.El("section", nil,
		elements.El("h2", nil, elements.Text(ResultsPrefix+location.Title)),
		elements.El("table", elements.Attrs{"class": "forecast"}, rows...),
	)
}

// Page is a built document and the handle to its output region
type Page struct {
	Document *html.Node
	Output   *NodeRegion
}

// Render serialises the whole document, doctype included
func (p *Page) Render() (string, error) {
	return elements.Render(p.Document)
}

// Shell builds the page: heading, intro, one button per location after the
// current location button, and an empty output region.
func (v *View) Shell(entries []locations.Entry) *Page {
	items := make([]*html.Node, 0, len(entries)+1)
	items = append(items, locationButton(locations.CurrentSlug, MyLocation))
	for _, e := range entries {
		items = append(items, locationButton(e.Slug, e.Title))
	}

	output := elements.El("div", elements.Attrs{"class": OutputClass})

	weather := elements.El("main", elements.Attrs{"class": "weather"},
		elements.El("header", nil, elements.El("h1", nil, elements.Text(Heading))),
		elements.El("h2", nil, elements.Text(Intro)),
		elements.El("div", elements.Attrs{"class": "locations"},
			elements.El("form", elements.Attrs{"method": "get", "action": "/"},
				elements.El("ul", elements.Attrs{"class": "locations__list"}, items...),
			),
		),
		output,
	)

	doc := &html.Node{Type: html.DocumentNode}
	doc.AppendChild(&html.Node{Type: html.DoctypeNode, Data: "html"})
	doc.AppendChild(elements.El("html", elements.Attrs{"lang": "is"},
		elements.El("head", nil,
			elements.El("meta", elements.Attrs{"charset": "utf-8"}),
			elements.El("meta", elements.Attrs{"name": "viewport", "content": "width=device-width, initial-scale=1"}),
			elements.El("title", nil, elements.Text(Heading)),
			elements.El("link", elements.Attrs{"rel": "stylesheet", "href": "/static/styles.css"}),
			elements.El("script", elements.Attrs{"src": "/static/search.js", "defer": ""}),
		),
		elements.El("body", nil, weather),
	))

	return &Page{Document: doc, Output: NewNodeRegion(output)}
}

func locationButton(slug, title string) *html.Node {
	return elements.El("li", elements.Attrs{"class": "locations__location"},
		elements.El("button", elements.Attrs{
			"class": "locations__button",
			"type":  "submit",
			"name":  LocationParam,
			"value": slug,
		}, elements.Text(title)),
	)
}
