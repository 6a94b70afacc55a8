// Package navigation resolves which site navigation entries are active for a path.
package navigation

import "strings"

// NavItem is one entry in the site navigation.
type NavItem struct {
	Href     string `json:"href"`
	Label    string `json:"label"`
	Icon     string `json:"icon,omitempty"`
	IsActive bool   `json:"isActive"`
}

var navItems = []NavItem{
	{Href: "/", Label: "Home"},
	{Href: "/projects", Label: "Projects"},
	{Href: "/blog", Label: "Blog"},
	{Href: "/about", Label: "About"},
	{Href: "/contact", Label: "Contact"},
}

// Items returns a copy of the static navigation list.
func Items() []NavItem {
	out := make([]NavItem, len(navItems))
	copy(out, navItems)
	return out
}

func normalize(p string) string {
	p = strings.TrimSuffix(p, "/")
	if p == "" {
		return "/"
	}
	return p
}

// IsNavItemActive reports whether href should be highlighted for currentPath.
// Home matches only itself; other entries also match nested paths.
func IsNavItemActive(href, currentPath string) bool {
	if href == "" || currentPath == "" {
		return false
	}
	h, cur := normalize(href), normalize(currentPath)
	if h == "/" {
		return cur == "/"
	}
	return cur == h || strings.HasPrefix(cur, h+"/")
}

// NavItemsWithState returns the navigation list with IsActive set for currentPath.
func NavItemsWithState(currentPath string) []NavItem {
	items := Items()
	for i := range items {
		items[i].IsActive = IsNavItemActive(items[i].Href, currentPath)
	}
	return items
}
