// Package resources serves the dashboard stylesheet and other static assets.
package resources

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/evanw/esbuild/pkg/api"
)

// StaticDirectoryPath is the path to static assets from the project root.
const StaticDirectoryPath = "internal/ui/resources/static"

// Prefix is the URL prefix static assets are mounted under.
const Prefix = "/static/"

func assetURL(name, version string) string {
	u := Prefix + strings.TrimPrefix(name, "/")
	if version != "" {
		u += "?v=" + version
	}
	return u
}

var minifyLoaders = map[string]api.Loader{
	".css": api.LoaderCSS,
	".js":  api.LoaderJS,
}

// minify shrinks stylesheets and scripts with esbuild. Other files are
// returned unchanged.
func minify(name string, data []byte) ([]byte, error) {
	loader, ok := minifyLoaders[filepath.Ext(name)]
	if !ok {
		return data, nil
	}

	result := api.Transform(string(data), api.TransformOptions{
		Loader:            loader,
		Sourcefile:        name,
		MinifyWhitespace:  true,
		MinifySyntax:      true,
		MinifyIdentifiers: loader == api.LoaderJS,
	})
	if len(result.Errors) > 0 {
		msg := result.Errors[0]
		if loc := msg.Location; loc != nil {
			return nil, fmt.Errorf("esbuild: %s:%d:%d: %s", loc.File, loc.Line, loc.Column, msg.Text)
		}
		return nil, fmt.Errorf("esbuild: %s", msg.Text)
	}
	return result.Code, nil
}
