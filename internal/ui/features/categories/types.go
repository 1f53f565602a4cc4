package categories

import "github.com/leapstack-labs/shopdash/internal/api"

// FormSignals represents the signals sent by the category form.
type FormSignals struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

// Input converts the submitted signals into mutation input as typed.
// Validation is left to the API.
func (s FormSignals) Input() api.CategoryInput {
	return api.CategoryInput{
		Name:        s.Name,
		Description: s.Description,
	}
}
