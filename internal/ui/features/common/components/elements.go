package components

import (
	"github.com/a-h/templ"

	"github.com/leapstack-labs/shopdash/internal/i18n"
	"github.com/leapstack-labs/shopdash/internal/ui/features/common"
)

// Breadcrumbs renders the navigation trail. The last crumb is the current page.
func Breadcrumbs(crumbs []common.Crumb) templ.Component {
	return Func(func(hw *Writer) {
		if len(crumbs) == 0 {
			return
		}
		hw.Raw(`<nav id="breadcrumbs" class="breadcrumbs" aria-label="breadcrumbs"><ol>`)
		for i, c := range crumbs {
			hw.Raw("<li>")
			if i == len(crumbs)-1 {
				hw.Raw(`<span aria-current="page">`)
				hw.Text(c.Name)
				hw.Raw("</span>")
			} else {
				hw.Raw("<a")
				hw.Attr("href", c.Path)
				hw.Raw(">")
				hw.Text(c.Name)
				hw.Raw("</a>")
			}
			hw.Raw("</li>")
		}
		hw.Raw("</ol></nav>")
	})
}

// Flashes renders one-shot notices carried over a redirect.
func Flashes(messages []string) templ.Component {
	return Func(func(hw *Writer) {
		for _, m := range messages {
			hw.Raw(`<div class="flash" role="status">`)
			hw.Text(m)
			hw.Raw("</div>")
		}
	})
}

// PageHeader renders a title with an optional back link and action area.
func PageHeader(title, backLink string, actions templ.Component) templ.Component {
	return Func(func(hw *Writer) {
		hw.Raw(`<div class="page-header">`)
		if backLink != "" {
			hw.Raw(`<a class="page-header__back"`)
			hw.Attr("href", backLink)
			hw.Raw(` aria-label="back">&larr;</a>`)
		}
		hw.Raw(`<h1 class="page-header__title">`)
		hw.Text(title)
		hw.Raw("</h1>")
		if actions != nil {
			hw.Raw(`<div class="page-header__actions">`)
			hw.Render(actions)
			hw.Raw("</div>")
		}
		hw.Raw("</div>")
	})
}

// Skeleton renders a placeholder line of the given CSS width.
func Skeleton(width string) templ.Component {
	return Func(func(hw *Writer) {
		hw.Raw(`<span class="skeleton"`)
		hw.Attr("style", "width: "+width)
		hw.Raw("></span>")
	})
}

// ErrorMessageCard renders a static error notice. It replaces the element
// with the given id, so a failed load takes the place of its placeholder.
func ErrorMessageCard(id string, t i18n.Translator, message string) templ.Component {
	return Func(func(hw *Writer) {
		hw.Raw("<section")
		hw.Attr("id", id)
		hw.Raw(` class="card card--error" role="alert"><h2 class="card__title">`)
		hw.Text(t.Pgettext("Error card title", "Something went wrong"))
		hw.Raw(`</h2><p class="card__body">`)
		hw.Text(message)
		hw.Raw("</p></section>")
	})
}

// LoadingCard renders the placeholder shown until data arrives over SSE.
func LoadingCard(id string, t i18n.Translator) templ.Component {
	return Func(func(hw *Writer) {
		hw.Raw("<section")
		hw.Attr("id", id)
		hw.Raw(` class="card card--loading" aria-busy="true"><p class="loading">`)
		hw.Text(t.Gettext("Loading…"))
		hw.Raw("</p></section>")
	})
}

// Card wraps body in a card section with an optional title.
func Card(id, title string, body templ.Component) templ.Component {
	return Func(func(hw *Writer) {
		hw.Raw("<section")
		if id != "" {
			hw.Attr("id", id)
		}
		hw.Raw(` class="card">`)
		if title != "" {
			hw.Raw(`<h2 class="card__title">`)
			hw.Text(title)
			hw.Raw("</h2>")
		}
		hw.Render(body)
		hw.Raw("</section>")
	})
}
