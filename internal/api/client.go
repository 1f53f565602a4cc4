// Package api is the GraphQL client for the category endpoints of the
// storefront API.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	graphql "github.com/hasura/go-graphql-client"
	"github.com/leapstack-labs/shopdash/internal/pagination"
)

// DefaultTimeout bounds a single GraphQL request.
const DefaultTimeout = 15 * time.Second

// ErrNotFound is returned when the API has no category with the given id.
var ErrNotFound = errors.New("category not found")

// OperationError wraps a failed GraphQL operation.
type OperationError struct {
	Operation string
	Err       error
}

func (e *OperationError) Error() string {
	return fmt.Sprintf("%s: %v", e.Operation, e.Err)
}

func (e *OperationError) Unwrap() error {
	return e.Err
}

// CategoryService is the set of category operations the dashboard uses.
type CategoryService interface {
	RootCategories(ctx context.Context, vars pagination.Variables) (*Connection, error)
	CategoryChildren(ctx context.Context, id string, vars pagination.Variables) (*Connection, error)
	Category(ctx context.Context, id string) (*Category, error)
	UpdateCategory(ctx context.Context, id string, input CategoryInput) (*MutationResult, error)
	CreateCategory(ctx context.Context, parentID string, input CategoryInput) (*MutationResult, error)
	DeleteCategory(ctx context.Context, id string) (*MutationResult, error)
}

// Config holds configuration for the API client.
type Config struct {
	URL        string
	Token      string
	Timeout    time.Duration
	HTTPClient *http.Client
	Logger     *slog.Logger
}

// Client talks to the GraphQL API.
type Client struct {
	gql     *graphql.Client
	timeout time.Duration
	logger  *slog.Logger
}

var _ CategoryService = (*Client)(nil)

// New creates a client for the endpoint in cfg.
func New(cfg Config) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: timeout}
	}

	gql := graphql.NewClient(cfg.URL, httpClient)
	if cfg.Token != "" {
		token := cfg.Token
		gql = gql.WithRequestModifier(func(r *http.Request) {
			r.Header.Set("Authorization", "JWT "+token)
		})
	}

	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	return &Client{
		gql:     gql,
		timeout: timeout,
		logger:  logger,
	}
}

// RootCategories returns a page of top-level categories.
func (c *Client) RootCategories(ctx context.Context, vars pagination.Variables) (*Connection, error) {
	var resp struct {
		Categories *Connection `json:"categories"`
	}
	if err := c.exec(ctx, "RootCategories", rootCategoriesQuery, vars.Map(), &resp); err != nil {
		return nil, err
	}
	if resp.Categories == nil {
		return &Connection{}, nil
	}
	return resp.Categories, nil
}

// CategoryChildren returns a page of the direct children of category id.
func (c *Client) CategoryChildren(ctx context.Context, id string, vars pagination.Variables) (*Connection, error) {
	variables := vars.Map()
	variables["id"] = id

	var resp struct {
		Category *struct {
			ID       string      `json:"id"`
			Children *Connection `json:"children"`
		} `json:"category"`
	}
	if err := c.exec(ctx, "CategoryChildren", categoryChildrenQuery, variables, &resp); err != nil {
		return nil, err
	}
	if resp.Category == nil {
		return nil, &OperationError{Operation: "CategoryChildren", Err: ErrNotFound}
	}
	if resp.Category.Children == nil {
		return &Connection{}, nil
	}
	return resp.Category.Children, nil
}

// Category fetches one category by id.
func (c *Client) Category(ctx context.Context, id string) (*Category, error) {
	var resp struct {
		Category *Category `json:"category"`
	}
	if err := c.exec(ctx, "CategoryDetails", categoryDetailsQuery, map[string]any{"id": id}, &resp); err != nil {
		return nil, err
	}
	if resp.Category == nil {
		return nil, &OperationError{Operation: "CategoryDetails", Err: ErrNotFound}
	}
	return resp.Category, nil
}

// UpdateCategory saves input on category id.
// Validation problems come back in the result, not as an error.
func (c *Client) UpdateCategory(ctx context.Context, id string, input CategoryInput) (*MutationResult, error) {
	var resp struct {
		Payload *MutationResult `json:"categoryUpdate"`
	}
	variables := map[string]any{
		"id":          id,
		"name":        input.Name,
		"description": input.Description,
	}
	if err := c.exec(ctx, "CategoryUpdate", categoryUpdateMutation, variables, &resp); err != nil {
		return nil, err
	}
	return payload(resp.Payload), nil
}

// CreateCategory creates a category under parentID, or at the root when
// parentID is empty.
func (c *Client) CreateCategory(ctx context.Context, parentID string, input CategoryInput) (*MutationResult, error) {
	var resp struct {
		Payload *MutationResult `json:"categoryCreate"`
	}
	variables := map[string]any{
		"name":        input.Name,
		"description": input.Description,
		"parent":      nil,
	}
	if parentID != "" {
		variables["parent"] = parentID
	}
	if err := c.exec(ctx, "CategoryCreate", categoryCreateMutation, variables, &resp); err != nil {
		return nil, err
	}
	return payload(resp.Payload), nil
}

// DeleteCategory removes category id. The result carries the deleted
// category, including its parent, when the API returns it.
func (c *Client) DeleteCategory(ctx context.Context, id string) (*MutationResult, error) {
	var resp struct {
		Payload *MutationResult `json:"categoryDelete"`
	}
	if err := c.exec(ctx, "CategoryDelete", categoryDeleteMutation, map[string]any{"id": id}, &resp); err != nil {
		return nil, err
	}
	return payload(resp.Payload), nil
}

func (c *Client) exec(ctx context.Context, operation, query string, variables map[string]any, out any) error {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	start := time.Now()
	data, err := c.gql.ExecRaw(ctx, query, variables, graphql.OperationName(operation))
	c.logger.Debug("graphql request",
		"operation", operation,
		"duration", time.Since(start),
		"error", err,
	)
	if err != nil {
		return &OperationError{Operation: operation, Err: err}
	}

	if err := json.Unmarshal(data, out); err != nil {
		return &OperationError{Operation: operation, Err: fmt.Errorf("failed to decode response: %w", err)}
	}
	return nil
}

func payload(p *MutationResult) *MutationResult {
	if p == nil {
		return &MutationResult{}
	}
	return p
}
