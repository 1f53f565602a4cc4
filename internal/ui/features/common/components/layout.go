package components

import (
	"github.com/a-h/templ"

	"github.com/leapstack-labs/shopdash/internal/ui/features/common"
	"github.com/leapstack-labs/shopdash/internal/ui/resources"
)

// DatastarScript is the client runtime matching datastar-go v1.
const DatastarScript = "https://cdn.jsdelivr.net/gh/starfederation/datastar@v1.0.0/bundles/datastar.js"

// MainID is the id of the element page content is patched into.
const MainID = "app-main"

// Page renders a complete HTML document around body.
// When initURL is set, the main element fetches it over SSE on load.
func Page(shell common.ShellData, initURL string, body templ.Component) templ.Component {
	return Func(func(hw *Writer) {
		hw.Raw("<!doctype html>")
		hw.Raw("<html")
		hw.Attr("lang", shell.T.Locale().String())
		hw.Raw(">")
		hw.Raw(`<head><meta charset="utf-8"><meta name="viewport" content="width=device-width, initial-scale=1">`)
		hw.Raw("<title>")
		hw.Text(shell.Title)
		hw.Raw(" - Shopdash</title>")
		hw.Raw(`<link rel="stylesheet"`)
		hw.Attr("href", resources.StaticPath("dashboard.css"))
		hw.Raw(`><script type="module"`)
		hw.Attr("src", DatastarScript)
		hw.Raw("></script></head><body>")
		if shell.IsDev {
			hw.Raw(`<div hidden data-init="@get('/reload')"></div>`)
		}
		hw.Render(AppHeader(shell))
		hw.Raw("<main")
		hw.Attr("id", MainID)
		hw.Raw(` class="app-main"`)
		if initURL != "" {
			hw.Attr("data-init", SSEAction("get", initURL))
		}
		hw.Raw(">")
		hw.Render(Breadcrumbs(shell.Crumbs))
		hw.Render(Flashes(shell.Flashes))
		hw.Render(body)
		hw.Raw("</main></body></html>")
	})
}

// AppHeader renders the top navigation bar.
func AppHeader(shell common.ShellData) templ.Component {
	return Func(func(hw *Writer) {
		hw.Raw(`<header class="app-header"><a class="app-brand" href="/">Shopdash</a><nav class="app-nav">`)
		navLink(hw, "/", shell.T.Pgettext("Navigation", "Dashboard"), shell.CurrentPath == "/")
		navLink(hw, common.CategoriesPath, shell.T.Pgettext("Navigation", "Categories"),
			shell.CurrentPath != "/" && shell.CurrentPath != "")
		hw.Raw("</nav></header>")
	})
}

func navLink(hw *Writer, href, label string, active bool) {
	hw.Raw("<a")
	hw.Attr("href", href)
	if active {
		hw.Raw(` class="app-nav__link app-nav__link--active" aria-current="page"`)
	} else {
		hw.Raw(` class="app-nav__link"`)
	}
	hw.Raw(">")
	hw.Text(label)
	hw.Raw("</a>")
}

// SSEAction builds a Datastar backend action expression such as @get('/x').
func SSEAction(method, url string) string {
	return "@" + method + "('" + url + "')"
}
