package views

import "strings"

// NavItem is a top-level navigation entry.
type NavItem struct {
	Href     string
	Label    string
	External bool
}

// RenderedNavItem is a NavItem resolved against the current path.
type RenderedNavItem struct {
	NavItem
	Active bool
}

// MainNav is the primary navigation.
var MainNav = []NavItem{
	{Href: "/", Label: "Home"},
	{Href: "/blog", Label: "Blog"},
}

// BuildNav resolves MainNav against currentPath.
func BuildNav(currentPath string) []RenderedNavItem {
	if currentPath == "" {
		currentPath = "/"
	}
	items := make([]RenderedNavItem, 0, len(MainNav))
	for _, it := range MainNav {
		items = append(items, RenderedNavItem{NavItem: it, Active: isActive(it.Href, currentPath)})
	}
	return items
}

// isActive matches the item exactly or on a segment boundary, so "/blog"
// covers "/blog/x" but not "/blogroll". Home only matches itself.
func isActive(itemPath, currentPath string) bool {
	if itemPath == "/" {
		return currentPath == "/"
	}
	return currentPath == itemPath || strings.HasPrefix(currentPath, itemPath+"/")
}

func navClass(active bool) string {
	if active {
		return "transition-colors hover:text-foreground/80 py-3 text-foreground"
	}
	return "transition-colors hover:text-foreground/80 py-3 text-foreground/60"
}

func renderNavItem(h *htmlWriter, it RenderedNavItem) {
	h.raw("<a")
	h.attr("href", it.Href)
	h.attr("class", navClass(it.Active))
	if it.Active {
		h.attr("aria-current", "page")
	}
	if it.External {
		h.attr("target", "_blank")
		h.attr("rel", "noopener noreferrer")
	}
	h.raw(">")
	h.text(it.Label)
	h.raw("</a>")
}
