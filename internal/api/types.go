package api

import "github.com/leapstack-labs/shopdash/internal/pagination"

// Category is a node of the category tree.
type Category struct {
	ID          string       `json:"id"`
	Name        string       `json:"name"`
	Description string       `json:"description"`
	Parent      *CategoryRef `json:"parent,omitempty"`
}

// CategoryRef identifies another category, usually a parent.
type CategoryRef struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Edge pairs a category with its cursor in a connection.
type Edge struct {
	Cursor string   `json:"cursor"`
	Node   Category `json:"node"`
}

// PageInfo is the relay page info of a connection.
type PageInfo struct {
	HasNextPage     bool    `json:"hasNextPage"`
	HasPreviousPage bool    `json:"hasPreviousPage"`
	StartCursor     *string `json:"startCursor"`
	EndCursor       *string `json:"endCursor"`
}

// Connection is one page of categories.
type Connection struct {
	TotalCount int      `json:"totalCount"`
	PageInfo   PageInfo `json:"pageInfo"`
	Edges      []Edge   `json:"edges"`
}

// Empty reports whether the page holds no categories.
func (c *Connection) Empty() bool {
	return c == nil || len(c.Edges) == 0
}

// Nodes returns the categories of the page in order.
func (c *Connection) Nodes() []Category {
	if c.Empty() {
		return nil
	}
	nodes := make([]Category, len(c.Edges))
	for i, e := range c.Edges {
		nodes[i] = e.Node
	}
	return nodes
}

// Window describes the page for pager navigation.
// Cursors are only read when the page has edges.
func (c *Connection) Window() pagination.Window {
	if c == nil {
		return pagination.Window{}
	}
	w := pagination.Window{
		Total:   c.TotalCount,
		HasNext: c.PageInfo.HasNextPage,
	}
	if c.Empty() {
		return w
	}
	w.Len = len(c.Edges)
	w.FirstCursor = c.Edges[0].Cursor
	w.LastCursor = c.Edges[len(c.Edges)-1].Cursor
	return w
}

// FieldError is a validation error returned by a mutation.
// Field is empty for errors not tied to a single input.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// CategoryInput holds the editable fields of a category.
type CategoryInput struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

// MutationResult is the payload shared by category mutations.
type MutationResult struct {
	Category *Category    `json:"category"`
	Errors   []FieldError `json:"errors"`
}

// OK reports whether the mutation succeeded without validation errors.
func (r *MutationResult) OK() bool {
	return r != nil && len(r.Errors) == 0
}
