// Package navigation builds the breadcrumbs and in-page links of a rendered page.
package navigation

// BreadcrumbItem represents a single breadcrumb link.
type BreadcrumbItem struct {
	Title  string
	URL    string
	Active bool
}

// Anchor links to a section of the current page.
type Anchor struct {
	Title string
	ID    string
}

// Context represents the navigation context for a page.
type Context struct {
	ActiveSection string
	Breadcrumbs   []BreadcrumbItem
	Anchors       []Anchor
	PageTitle     string
}

// NewContext creates a new navigation context.
func NewContext(pageTitle, activeSection string) *Context {
	return &Context{
		PageTitle:     pageTitle,
		ActiveSection: activeSection,
		Breadcrumbs:   make([]BreadcrumbItem, 0),
		Anchors:       make([]Anchor, 0),
	}
}

// AddBreadcrumb adds a breadcrumb item to the context.
func (c *Context) AddBreadcrumb(title, url string, active bool) *Context {
	c.Breadcrumbs = append(c.Breadcrumbs, BreadcrumbItem{
		Title:  title,
		URL:    url,
		Active: active,
	})

	return c
}

// AddAnchor adds a jump link to the element with the given id.
func (c *Context) AddAnchor(title, id string) *Context {
	c.Anchors = append(c.Anchors, Anchor{Title: title, ID: id})

	return c
}

// IsSectionActive checks if the given section is active.
func (c *Context) IsSectionActive(section string) bool {
	return c.ActiveSection == section
}
