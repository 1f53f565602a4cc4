// Package pagination derives GraphQL cursor variables from the URL query
// string and builds the query strings used to move between pages.
//
// Page state is never stored server side. Every request reconstructs it from
// the keys below, so a URL fully describes the page it shows.
package pagination

import (
	"net/url"
	"strconv"
	"strings"
)

// DefaultRowsPerPage is used when rowsPerPage is absent or not a positive number.
const DefaultRowsPerPage = 5

// RowsPerPageOptions are the page sizes offered by list views.
var RowsPerPageOptions = []int{5, 10, 20, 50}

// Query string keys.
const (
	KeyAction      = "action"
	KeyCurrentPage = "currentPage"
	KeyFirstCursor = "firstCursor"
	KeyLastCursor  = "lastCursor"
	KeyRowsPerPage = "rowsPerPage"
)

// Action tells the list which direction the last navigation went.
type Action string

// Known actions. Anything else behaves like ActionNext.
const (
	ActionNext Action = "next"
	ActionPrev Action = "prev"
)

// State is the page state encoded in a query string.
type State struct {
	Action      Action
	CurrentPage int
	FirstCursor string
	LastCursor  string
	RowsPerPage int
}

// Variables are the connection arguments sent with a paginated query.
// First/After and Last/Before are mutually exclusive.
type Variables struct {
	First  *int
	After  *string
	Last   *int
	Before *string
}

// ParseState reads page state from a query string.
func ParseState(q url.Values) State {
	return State{
		Action:      Action(q.Get(KeyAction)),
		CurrentPage: max(parseLeadingInt(q.Get(KeyCurrentPage)), 0),
		FirstCursor: q.Get(KeyFirstCursor),
		LastCursor:  q.Get(KeyLastCursor),
		RowsPerPage: RowsPerPage(q),
	}
}

// RowsPerPage returns the requested page size, or DefaultRowsPerPage.
func RowsPerPage(q url.Values) int {
	n := parseLeadingInt(q.Get(KeyRowsPerPage))
	if n <= 0 {
		return DefaultRowsPerPage
	}
	return n
}

// Variables computes the connection arguments for this state.
// A prev action asks for the last N items before the first cursor;
// everything else asks for the first N items after the last cursor.
func (s State) Variables() Variables {
	n := s.RowsPerPage
	if n <= 0 {
		n = DefaultRowsPerPage
	}
	if s.Action == ActionPrev {
		return Variables{Last: &n, Before: optional(s.FirstCursor)}
	}
	return Variables{First: &n, After: optional(s.LastCursor)}
}

// Map converts the variables into a GraphQL variables map. Unset arguments
// are sent as explicit nulls.
func (v Variables) Map() map[string]any {
	return map[string]any{
		"first":  v.First,
		"after":  v.After,
		"last":   v.Last,
		"before": v.Before,
	}
}

// ChangePage returns the query string for moving to page newPage.
// firstCursor and lastCursor are the cursors of the page being left.
// Keys not owned by pagination are preserved.
func ChangePage(q url.Values, newPage int, firstCursor, lastCursor string) url.Values {
	prevPage := parseLeadingInt(q.Get(KeyCurrentPage))
	action := ActionPrev
	if prevPage < newPage {
		action = ActionNext
	}

	out := clone(q)
	out.Set(KeyAction, string(action))
	out.Set(KeyCurrentPage, strconv.Itoa(newPage))
	out.Set(KeyFirstCursor, firstCursor)
	out.Set(KeyLastCursor, lastCursor)
	return out
}

// ChangeRowsPerPage returns the query string for switching page size.
// It always restarts from the first page.
func ChangeRowsPerPage(q url.Values, rows int) url.Values {
	out := clone(q)
	out.Set(KeyAction, string(ActionNext))
	out.Set(KeyCurrentPage, "0")
	out.Set(KeyFirstCursor, "")
	out.Set(KeyLastCursor, "")
	out.Set(KeyRowsPerPage, strconv.Itoa(rows))
	return out
}

// Window describes the page of results currently shown.
type Window struct {
	FirstCursor string
	LastCursor  string
	Len         int
	Total       int
	HasNext     bool
}

// SizeLink is one entry of the rows-per-page selector.
type SizeLink struct {
	Rows   int
	Query  url.Values
	Active bool
}

// Links is everything a pager needs to render.
// Prev and Next are nil when there is no page in that direction.
type Links struct {
	From  int
	To    int
	Total int
	Prev  url.Values
	Next  url.Values
	Sizes []SizeLink
}

// Navigate builds pager links for the window shown under query q.
// An empty window yields no prev/next links.
func Navigate(q url.Values, w Window) Links {
	st := ParseState(q)

	links := Links{Total: w.Total}
	for _, rows := range RowsPerPageOptions {
		links.Sizes = append(links.Sizes, SizeLink{
			Rows:   rows,
			Query:  ChangeRowsPerPage(q, rows),
			Active: rows == st.RowsPerPage,
		})
	}

	if w.Len == 0 {
		return links
	}

	offset := st.CurrentPage * st.RowsPerPage
	links.From = offset + 1
	links.To = offset + w.Len

	if st.CurrentPage > 0 {
		links.Prev = ChangePage(q, st.CurrentPage-1, w.FirstCursor, w.LastCursor)
	}
	if w.HasNext || links.To < w.Total {
		links.Next = ChangePage(q, st.CurrentPage+1, w.FirstCursor, w.LastCursor)
	}
	return links
}

// parseLeadingInt parses an optional sign followed by the leading digits of s.
// It returns 0 when s does not start with a number.
func parseLeadingInt(s string) int {
	s = strings.TrimSpace(s)
	end := 0
	if end < len(s) && (s[end] == '-' || s[end] == '+') {
		end++
	}
	digits := end
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	if end == digits {
		return 0
	}
	n, err := strconv.Atoi(s[:end])
	if err != nil {
		return 0
	}
	return n
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func clone(q url.Values) url.Values {
	out := make(url.Values, len(q)+5)
	for k, v := range q {
		out[k] = append([]string(nil), v...)
	}
	return out
}
