// Package common provides shared utilities for UI features.
package common

import (
	"github.com/leapstack-labs/shopdash/internal/api"
	"github.com/leapstack-labs/shopdash/internal/i18n"
)

// BuildBreadcrumbs returns the trail from the category list down to cat.
// The API only exposes the direct parent, so the trail is at most three
// links deep: list, parent, category.
func BuildBreadcrumbs(t i18n.Translator, cat *api.Category) []Crumb {
	crumbs := []Crumb{{
		Name: t.Pgettext("Breadcrumb root", "Categories"),
		Path: CategoriesPath,
	}}
	if cat == nil {
		return crumbs
	}
	if cat.Parent != nil {
		crumbs = append(crumbs, Crumb{Name: cat.Parent.Name, Path: CategoryPath(cat.Parent.ID)})
	}
	return append(crumbs, Crumb{Name: cat.Name, Path: CategoryPath(cat.ID)})
}

// BackLink returns where "back" leads from a category: its parent, or the
// root list for top-level categories.
func BackLink(cat *api.Category) string {
	if cat == nil || cat.Parent == nil {
		return CategoriesPath
	}
	return CategoryPath(cat.Parent.ID)
}
