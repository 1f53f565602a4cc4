// Package components renders the category views.
package components

import (
	"encoding/json"

	"github.com/a-h/templ"

	"github.com/leapstack-labs/shopdash/internal/i18n"
	"github.com/leapstack-labs/shopdash/internal/ui/features/common"
	commonComponents "github.com/leapstack-labs/shopdash/internal/ui/features/common/components"
)

// DetailsID is the element id of the category details card.
const DetailsID = "category-details"

// SkeletonWidths are the placeholder line widths shown while a description loads.
var SkeletonWidths = []string{"80%", "75%", "60%"}

// DetailsProps configures CategoryDetails.
type DetailsProps struct {
	Title       string
	BackLink    string
	EditLink    string // "#" when empty
	RemoveURL   string // no delete action when empty
	Description common.Loadable[string]
	T           i18n.Translator
}

// CategoryDetails renders the header and description of a category.
func CategoryDetails(p DetailsProps) templ.Component {
	return commonComponents.Func(func(hw *commonComponents.Writer) {
		hw.Raw("<section")
		hw.Attr("id", DetailsID)
		hw.Raw(` class="card category-details"`)
		if p.Description.IsLoading() {
			hw.Raw(` aria-busy="true"`)
		}
		hw.Raw(">")
		hw.Render(commonComponents.PageHeader(p.Title, p.BackLink, detailsActions(p)))
		hw.Raw(`<div class="category-details__description">`)
		if desc, ok := p.Description.Get(); ok {
			hw.Text(desc)
		} else {
			for _, width := range SkeletonWidths {
				hw.Render(commonComponents.Skeleton(width))
			}
		}
		hw.Raw("</div></section>")
	})
}

func detailsActions(p DetailsProps) templ.Component {
	return commonComponents.Func(func(hw *commonComponents.Writer) {
		edit := p.EditLink
		if edit == "" {
			edit = "#"
		}
		hw.Raw(`<a class="button"`)
		hw.Attr("href", edit)
		hw.Raw(">")
		hw.Text(p.T.Pgettext("Category details action", "Edit"))
		hw.Raw("</a>")

		if p.RemoveURL == "" {
			return
		}
		prompt, _ := json.Marshal(p.T.Gettext("Are you sure you want to delete this category?"))
		hw.Raw(`<button type="button" class="button button--danger"`)
		hw.Attr("data-on:click", "confirm("+string(prompt)+") && "+commonComponents.SSEAction("post", p.RemoveURL))
		hw.Raw(">")
		hw.Text(p.T.Pgettext("Category details action", "Delete"))
		hw.Raw("</button>")
	})
}
