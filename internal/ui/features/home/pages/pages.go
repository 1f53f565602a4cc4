// Package pages renders the dashboard home page.
package pages

import (
	"fmt"

	"github.com/a-h/templ"

	"github.com/leapstack-labs/shopdash/internal/i18n"
	"github.com/leapstack-labs/shopdash/internal/ui/features/common"
	commonComponents "github.com/leapstack-labs/shopdash/internal/ui/features/common/components"
	hometypes "github.com/leapstack-labs/shopdash/internal/ui/features/home/types"
)

// ContentID is the element id of the dashboard content.
const ContentID = "dashboard-content"

// HomePage renders the full dashboard. Content is server-rendered; the
// /updates stream only pushes later changes.
func HomePage(shell common.ShellData, stats hometypes.DashboardStats) templ.Component {
	body := commonComponents.Func(func(hw *commonComponents.Writer) {
		hw.Raw(`<div hidden data-init="@get('/updates')"></div>`)
		hw.Render(HomeContent(shell.T, stats))
	})
	return commonComponents.Page(shell, "", body)
}

// HomeContent renders the dashboard cards.
func HomeContent(t i18n.Translator, stats hometypes.DashboardStats) templ.Component {
	return commonComponents.Func(func(hw *commonComponents.Writer) {
		if stats.Error != "" {
			hw.Render(commonComponents.ErrorMessageCard(ContentID, t, stats.Error))
			return
		}
		hw.Raw("<div")
		hw.Attr("id", ContentID)
		hw.Raw(` class="stats"><section class="card stat"><h2 class="card__title">`)
		hw.Text(t.Pgettext("Dashboard card", "Categories"))
		hw.Raw(`</h2><p class="stat__value">`)
		hw.Text(common.Itoa(stats.RootCategoryCount))
		hw.Raw(`</p><p>`)
		hw.Text(fmt.Sprintf(t.Gettext("%d top-level categories"), stats.RootCategoryCount))
		hw.Raw(`</p><a class="button"`)
		hw.Attr("href", common.CategoriesPath)
		hw.Raw(">")
		hw.Text(t.Gettext("Browse categories"))
		hw.Raw(`</a> <a class="button"`)
		hw.Attr("href", common.CategoryAddPath(""))
		hw.Raw(">")
		hw.Text(t.Pgettext("Category list add button", "Add"))
		hw.Raw("</a></section></div>")
	})
}
