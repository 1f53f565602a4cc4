// Package pages composes the full-page shells of the categories feature.
package pages

import (
	"github.com/a-h/templ"

	"github.com/leapstack-labs/shopdash/internal/ui/features/categories/components"
	"github.com/leapstack-labs/shopdash/internal/ui/features/common"
	commonComponents "github.com/leapstack-labs/shopdash/internal/ui/features/common/components"
)

// ListPage is the root category list shell. The list loads over initURL.
func ListPage(shell common.ShellData, initURL string) templ.Component {
	return commonComponents.Page(shell, initURL, commonComponents.LoadingCard(components.ListID, shell.T))
}

// DetailPage is the category detail shell: the details card in its loading
// state followed by the subcategory list placeholder.
func DetailPage(shell common.ShellData, initURL string, details components.DetailsProps) templ.Component {
	body := commonComponents.Func(func(hw *commonComponents.Writer) {
		hw.Render(components.CategoryDetails(details))
		hw.Render(commonComponents.LoadingCard(components.ListID, shell.T))
	})
	return commonComponents.Page(shell, initURL, body)
}

// EditPage is the update form shell. The form loads over initURL.
func EditPage(shell common.ShellData, initURL string) templ.Component {
	return commonComponents.Page(shell, initURL, commonComponents.LoadingCard(components.FormID, shell.T))
}

// AddPage renders the empty create form directly; it needs no data.
func AddPage(shell common.ShellData, form components.FormProps) templ.Component {
	return commonComponents.Page(shell, "", components.CategoryForm(form))
}
