package components

import (
	"encoding/json"

	"github.com/a-h/templ"

	"github.com/leapstack-labs/shopdash/internal/api"
	"github.com/leapstack-labs/shopdash/internal/i18n"
	commonComponents "github.com/leapstack-labs/shopdash/internal/ui/features/common/components"
)

// FormID is the element id of the category form card.
const FormID = "category-form"

// Form field names, shared by the signals and the mutation errors.
const (
	FieldName        = "name"
	FieldDescription = "description"
)

// FormProps configures CategoryForm.
type FormProps struct {
	Title       string
	Action      string // URL the form posts its signals to
	CancelLink  string
	Name        string
	Description string
	Errors      []api.FieldError
	T           i18n.Translator
}

// CategoryForm renders the create/update form. Field errors are shown next
// to their input; errors without a known field are listed above the form.
func CategoryForm(p FormProps) templ.Component {
	return commonComponents.Func(func(hw *commonComponents.Writer) {
		signals, _ := json.Marshal(map[string]string{
			FieldName:        p.Name,
			FieldDescription: p.Description,
		})

		hw.Raw("<section")
		hw.Attr("id", FormID)
		hw.Raw(` class="card category-form">`)
		hw.Render(commonComponents.PageHeader(p.Title, p.CancelLink, nil))
		hw.Raw("<form")
		hw.Attr("data-signals", string(signals))
		hw.Attr("data-on:submit__prevent", commonComponents.SSEAction("post", p.Action))
		hw.Raw(">")

		if general := generalErrors(p.Errors); len(general) > 0 {
			hw.Raw(`<div class="form-errors" role="alert">`)
			for _, e := range general {
				hw.Raw("<p>")
				hw.Text(e.Message)
				hw.Raw("</p>")
			}
			hw.Raw("</div>")
		}

		hw.Raw(`<label class="form-field"><span>`)
		hw.Text(p.T.Pgettext("Category form field", "Name"))
		hw.Raw(`</span><input type="text"`)
		hw.Attr("name", FieldName)
		hw.Attr("data-bind", FieldName)
		hw.Attr("value", p.Name)
		hw.Raw(">")
		fieldErrors(hw, p.Errors, FieldName)
		hw.Raw("</label>")

		hw.Raw(`<label class="form-field"><span>`)
		hw.Text(p.T.Pgettext("Category form field", "Description"))
		hw.Raw(`</span><textarea rows="4"`)
		hw.Attr("name", FieldDescription)
		hw.Attr("data-bind", FieldDescription)
		hw.Raw(">")
		hw.Text(p.Description)
		hw.Raw("</textarea>")
		fieldErrors(hw, p.Errors, FieldDescription)
		hw.Raw("</label>")

		hw.Raw(`<div class="form-actions"><button type="submit" class="button button--primary">`)
		hw.Text(p.T.Pgettext("Category form button", "Save"))
		hw.Raw(`</button><a class="button"`)
		hw.Attr("href", p.CancelLink)
		hw.Raw(">")
		hw.Text(p.T.Pgettext("Category form button", "Cancel"))
		hw.Raw("</a></div></form></section>")
	})
}

func fieldErrors(hw *commonComponents.Writer, errs []api.FieldError, field string) {
	for _, e := range errs {
		if e.Field != field {
			continue
		}
		hw.Raw(`<span class="form-field__error">`)
		hw.Text(e.Message)
		hw.Raw("</span>")
	}
}

func generalErrors(errs []api.FieldError) []api.FieldError {
	var out []api.FieldError
	for _, e := range errs {
		if e.Field != FieldName && e.Field != FieldDescription {
			out = append(out, e)
		}
	}
	return out
}
