// Package common provides shared types and utilities for UI features.
package common

import "github.com/leapstack-labs/shopdash/internal/i18n"

// Crumb is one link of the breadcrumb trail.
type Crumb struct {
	Name string
	Path string
}

// ShellData holds data needed for the page shell rendering.
// This is the minimal data structure that avoids import cycles.
type ShellData struct {
	Title       string
	CurrentPath string
	Crumbs      []Crumb
	Flashes     []string
	T           i18n.Translator
	IsDev       bool
}

// Translations hands out a translator per request.
type Translations interface {
	ForAcceptLanguage(header string) i18n.Translator
}
