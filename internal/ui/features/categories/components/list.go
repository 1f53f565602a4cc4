package components

import (
	"fmt"
	"net/url"

	"github.com/a-h/templ"

	"github.com/leapstack-labs/shopdash/internal/api"
	"github.com/leapstack-labs/shopdash/internal/i18n"
	"github.com/leapstack-labs/shopdash/internal/pagination"
	"github.com/leapstack-labs/shopdash/internal/ui/features/common"
	commonComponents "github.com/leapstack-labs/shopdash/internal/ui/features/common/components"
)

// ListID is the element id of the category list card.
const ListID = "category-list"

// ListProps configures CategoryList.
type ListProps struct {
	Label      string
	AddLink    string
	BasePath   string // page the pager links point at
	Connection *api.Connection
	Links      pagination.Links
	T          i18n.Translator
}

// CategoryList renders one page of categories with its pager.
func CategoryList(p ListProps) templ.Component {
	return commonComponents.Func(func(hw *commonComponents.Writer) {
		hw.Raw("<section")
		hw.Attr("id", ListID)
		hw.Raw(` class="card category-list"><div class="list-header"><h2 class="card__title">`)
		hw.Text(p.Label)
		hw.Raw(`</h2><a class="button"`)
		hw.Attr("href", p.AddLink)
		hw.Raw(">")
		hw.Text(p.T.Pgettext("Category list add button", "Add"))
		hw.Raw("</a></div>")

		if p.Connection.Empty() {
			hw.Raw(`<p class="empty-state">`)
			hw.Text(p.T.Gettext("No categories found."))
			hw.Raw("</p></section>")
			return
		}

		hw.Raw(`<table class="table"><thead><tr><th>`)
		hw.Text(p.T.Pgettext("Category list table header name", "Name"))
		hw.Raw("</th><th>")
		hw.Text(p.T.Pgettext("Category list table header description", "Description"))
		hw.Raw("</th></tr></thead><tbody>")
		for _, c := range p.Connection.Nodes() {
			hw.Raw(`<tr class="category-row"><td><a`)
			hw.Attr("href", common.CategoryPath(c.ID))
			hw.Raw(">")
			hw.Text(c.Name)
			hw.Raw("</a></td><td>")
			hw.Text(c.Description)
			hw.Raw("</td></tr>")
		}
		hw.Raw("</tbody></table>")

		hw.Render(Pager(p.BasePath, p.Links, p.T))
		hw.Raw("</section>")
	})
}

// Pager renders the range caption, rows-per-page choices and prev/next links.
func Pager(basePath string, links pagination.Links, t i18n.Translator) templ.Component {
	return commonComponents.Func(func(hw *commonComponents.Writer) {
		hw.Raw(`<nav class="pager" aria-label="pagination"><span class="pager__range">`)
		hw.Text(fmt.Sprintf(t.Pgettext("Pager range", "%d-%d of %d"), links.From, links.To, links.Total))
		hw.Raw(`</span><span class="pager__sizes"><span>`)
		hw.Text(t.Gettext("Rows per page"))
		hw.Raw("</span>")
		for _, s := range links.Sizes {
			hw.Raw("<a")
			hw.Attr("href", common.WithQuery(basePath, s.Query))
			if s.Active {
				hw.Raw(` class="pager__size pager__size--active" aria-current="true"`)
			} else {
				hw.Raw(` class="pager__size"`)
			}
			hw.Raw(">")
			hw.Text(common.Itoa(s.Rows))
			hw.Raw("</a>")
		}
		hw.Raw("</span>")
		pagerLink(hw, basePath, links.Prev, "prev", t.Pgettext("Pager", "Previous"))
		pagerLink(hw, basePath, links.Next, "next", t.Pgettext("Pager", "Next"))
		hw.Raw("</nav>")
	})
}

func pagerLink(hw *commonComponents.Writer, basePath string, q url.Values, rel, label string) {
	if q == nil {
		return
	}
	hw.Raw(`<a class="button"`)
	hw.Attr("rel", rel)
	hw.Attr("href", common.WithQuery(basePath, q))
	hw.Raw(">")
	hw.Text(label)
	hw.Raw("</a>")
}
