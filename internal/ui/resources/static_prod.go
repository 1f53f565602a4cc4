//go:build !dev

package resources

import (
	"bytes"
	"crypto/sha256"
	"embed"
	"encoding/hex"
	"io/fs"
	"log/slog"
	"net/http"
	"strings"
	"sync"
	"time"
)

//go:embed static/*
var staticFS embed.FS

// asset is a static file prepared for serving.
type asset struct {
	body    []byte
	version string
}

var (
	assetsOnce sync.Once
	assets     map[string]asset
)

// Handler serves the embedded static files, minified. Responses are
// immutable because StaticPath versions every URL by content hash.
func Handler() http.Handler {
	return http.StripPrefix(Prefix, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		name := strings.TrimPrefix(r.URL.Path, "/")
		a, ok := loadAssets()[name]
		if !ok {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Cache-Control", "public, max-age=31536000, immutable")
		http.ServeContent(w, r, name, time.Time{}, bytes.NewReader(a.body))
	}))
}

// StaticPath returns the URL path for a static asset, with a content hash
// query so a new build busts browser caches.
func StaticPath(name string) string {
	return assetURL(name, loadAssets()[strings.TrimPrefix(name, "/")].version)
}

func loadAssets() map[string]asset {
	assetsOnce.Do(func() {
		assets = make(map[string]asset)
		_ = fs.WalkDir(staticFS, "static", func(path string, d fs.DirEntry, err error) error {
			if err != nil || d.IsDir() {
				return err
			}
			data, err := staticFS.ReadFile(path)
			if err != nil {
				return nil
			}
			name := strings.TrimPrefix(path, "static/")
			if min, err := minify(name, data); err != nil {
				slog.Warn("serving unminified asset", "name", name, "error", err)
			} else {
				data = min
			}
			sum := sha256.Sum256(data)
			assets[name] = asset{body: data, version: hex.EncodeToString(sum[:])[:12]}
			return nil
		})
	})
	return assets
}
