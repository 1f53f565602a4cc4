// Package apitest provides an in-memory GraphQL backend that serves the
// category schema the dashboard talks to. It exists for tests only.
package apitest

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"sync"
	"testing"

	"github.com/graphql-go/graphql"
)

// Call records one operation received by the backend.
type Call struct {
	Operation string
	Variables map[string]any
}

// Backend is a fake category API.
type Backend struct {
	mu      sync.Mutex
	schema  graphql.Schema
	nextID  int
	records map[string]*record
	order   []string
	failure string
	calls   []Call
}

type record struct {
	id          string
	name        string
	description string
	parent      string
}

// New creates an empty backend.
func New() *Backend {
	b := &Backend{records: make(map[string]*record)}
	schema, err := b.buildSchema()
	if err != nil {
		panic(fmt.Sprintf("apitest: invalid schema: %v", err))
	}
	b.schema = schema
	return b
}

// Start serves the backend over HTTP for the duration of the test and
// returns the endpoint URL.
func (b *Backend) Start(t testing.TB) string {
	t.Helper()
	srv := httptest.NewServer(b)
	t.Cleanup(srv.Close)
	return srv.URL + "/graphql/"
}

// Add stores a category and returns its global id. An empty parentID adds
// a root category.
func (b *Backend) Add(parentID, name, description string) string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.insert(parentID, name, description).id
}

// Seed adds n categories named "<prefix> 1".."<prefix> n" and returns their ids.
func (b *Backend) Seed(parentID, prefix string, n int) []string {
	ids := make([]string, n)
	for i := range n {
		ids[i] = b.Add(parentID, fmt.Sprintf("%s %d", prefix, i+1), fmt.Sprintf("Description of %s %d", prefix, i+1))
	}
	return ids
}

// Get returns the stored name and description of a category.
func (b *Backend) Get(id string) (name, description string, ok bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	r, ok := b.records[id]
	if !ok {
		return "", "", false
	}
	return r.name, r.description, true
}

// FailWith makes every following request fail with a GraphQL error carrying
// msg. An empty msg restores normal operation.
func (b *Backend) FailWith(msg string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.failure = msg
}

// Calls returns the operations received so far.
func (b *Backend) Calls() []Call {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]Call(nil), b.calls...)
}

// LastCall returns the most recent operation with the given name.
func (b *Backend) LastCall(operation string) (Call, bool) {
	calls := b.Calls()
	for i := len(calls) - 1; i >= 0; i-- {
		if calls[i].Operation == operation {
			return calls[i], true
		}
	}
	return Call{}, false
}

type graphQLRequest struct {
	Query         string         `json:"query"`
	Variables     map[string]any `json:"variables"`
	OperationName string         `json:"operationName"`
}

// ServeHTTP executes one GraphQL request.
func (b *Backend) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	var req graphQLRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	b.calls = append(b.calls, Call{Operation: operationName(req), Variables: req.Variables})

	w.Header().Set("Content-Type", "application/json")
	if b.failure != "" {
		_ = json.NewEncoder(w).Encode(map[string]any{
			"errors": []map[string]any{{"message": b.failure}},
		})
		return
	}

	result := graphql.Do(graphql.Params{
		Schema:         b.schema,
		RequestString:  req.Query,
		VariableValues: req.Variables,
		OperationName:  req.OperationName,
		Context:        r.Context(),
	})
	_ = json.NewEncoder(w).Encode(result)
}

func operationName(req graphQLRequest) string {
	if req.OperationName != "" {
		return req.OperationName
	}
	// Fall back to the name in "query Foo(" / "mutation Foo(".
	fields := strings.FieldsFunc(req.Query, func(r rune) bool {
		return r == ' ' || r == '\n' || r == '\t' || r == '(' || r == '{'
	})
	for i, f := range fields {
		if (f == "query" || f == "mutation") && i+1 < len(fields) {
			return fields[i+1]
		}
	}
	return ""
}

// insert must be called with b.mu held.
func (b *Backend) insert(parentID, name, description string) *record {
	b.nextID++
	r := &record{
		id:          globalID("Category", b.nextID),
		name:        name,
		description: description,
		parent:      parentID,
	}
	b.records[r.id] = r
	b.order = append(b.order, r.id)
	return r
}

// children returns the categories under parentID in insertion order.
func (b *Backend) children(parentID string) []*record {
	var out []*record
	for _, id := range b.order {
		if r := b.records[id]; r.parent == parentID {
			out = append(out, r)
		}
	}
	return out
}

func (b *Backend) remove(id string) {
	delete(b.records, id)
	for i, v := range b.order {
		if v == id {
			b.order = append(b.order[:i], b.order[i+1:]...)
			break
		}
	}
	// Cascade like the real tree does.
	for _, child := range b.children(id) {
		b.remove(child.id)
	}
}

func (b *Backend) node(r *record) map[string]any {
	if r == nil {
		return nil
	}
	n := map[string]any{
		"id":          r.id,
		"name":        r.name,
		"description": r.description,
		"parent":      nil,
	}
	if p, ok := b.records[r.parent]; ok {
		n["parent"] = map[string]any{
			"id":          p.id,
			"name":        p.name,
			"description": p.description,
			"parent":      nil,
		}
	}
	return n
}

func globalID(typeName string, n int) string {
	return base64.StdEncoding.EncodeToString([]byte(typeName + ":" + strconv.Itoa(n)))
}

func encodeCursor(offset int) string {
	return base64.StdEncoding.EncodeToString([]byte("arrayconnection:" + strconv.Itoa(offset)))
}

func decodeCursor(cursor string) (int, error) {
	raw, err := base64.StdEncoding.DecodeString(cursor)
	if err != nil {
		return 0, fmt.Errorf("invalid cursor %q", cursor)
	}
	n, err := strconv.Atoi(strings.TrimPrefix(string(raw), "arrayconnection:"))
	if err != nil {
		return 0, fmt.Errorf("invalid cursor %q", cursor)
	}
	return n, nil
}

// connection slices items following the relay cursor connection rules.
func (b *Backend) connection(items []*record, args map[string]any) (map[string]any, error) {
	start, end := 0, len(items)

	if after, ok := args["after"].(string); ok && after != "" {
		idx, err := decodeCursor(after)
		if err != nil {
			return nil, err
		}
		start = max(start, idx+1)
	}
	if before, ok := args["before"].(string); ok && before != "" {
		idx, err := decodeCursor(before)
		if err != nil {
			return nil, err
		}
		end = min(end, idx)
	}
	if first, ok := args["first"].(int); ok {
		if first < 0 {
			return nil, fmt.Errorf("first must be non-negative")
		}
		if end-start > first {
			end = start + first
		}
	}
	if last, ok := args["last"].(int); ok {
		if last < 0 {
			return nil, fmt.Errorf("last must be non-negative")
		}
		if end-start > last {
			start = end - last
		}
	}
	if start > end {
		start = end
	}

	edges := make([]any, 0, end-start)
	for i := start; i < end; i++ {
		edges = append(edges, map[string]any{
			"cursor": encodeCursor(i),
			"node":   b.node(items[i]),
		})
	}

	pageInfo := map[string]any{
		"hasNextPage":     end < len(items),
		"hasPreviousPage": start > 0,
		"startCursor":     nil,
		"endCursor":       nil,
	}
	if len(edges) > 0 {
		pageInfo["startCursor"] = encodeCursor(start)
		pageInfo["endCursor"] = encodeCursor(end - 1)
	}

	return map[string]any{
		"totalCount": len(items),
		"pageInfo":   pageInfo,
		"edges":      edges,
	}, nil
}
