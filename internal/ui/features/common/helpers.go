// Package common provides shared types and utilities for UI features.
package common

import (
	"net/http"
	"net/url"
	"strconv"

	"github.com/leapstack-labs/shopdash/internal/i18n"
)

// Itoa converts an integer to a string for use in components.
func Itoa(n int) string {
	return strconv.Itoa(n)
}

// CategoriesPath is the root category list.
const CategoriesPath = "/categories"

// CategoryPath returns the detail path of a category.
// Category ids are opaque base64 strings, so they are always escaped.
func CategoryPath(id string) string {
	return CategoriesPath + "/" + url.PathEscape(id)
}

// CategoryEditPath returns the edit form path of a category.
func CategoryEditPath(id string) string {
	return CategoryPath(id) + "/edit"
}

// CategoryDeletePath returns the path the delete action posts to.
func CategoryDeletePath(id string) string {
	return CategoryPath(id) + "/delete"
}

// CategoryAddPath returns the create form path for a new child of parentID,
// or for a new root category when parentID is empty.
func CategoryAddPath(parentID string) string {
	if parentID == "" {
		return CategoriesPath + "/add"
	}
	return CategoryPath(parentID) + "/add"
}

// WithQuery appends an encoded query string to path.
func WithQuery(path string, q url.Values) string {
	if len(q) == 0 {
		return path
	}
	return path + "?" + q.Encode()
}

// Translator picks the translator for the request's Accept-Language header.
// A nil source yields untranslated messages.
func Translator(tr Translations, r *http.Request) i18n.Translator {
	if tr == nil {
		return i18n.Identity{}
	}
	return tr.ForAcceptLanguage(r.Header.Get("Accept-Language"))
}
