package apitest

import (
	"fmt"
	"strings"

	"github.com/graphql-go/graphql"
)

// BlankNameMessage is the validation message for a category without a name.
const BlankNameMessage = "This field cannot be blank."

var connectionArgs = graphql.FieldConfigArgument{
	"first":  &graphql.ArgumentConfig{Type: graphql.Int},
	"after":  &graphql.ArgumentConfig{Type: graphql.String},
	"last":   &graphql.ArgumentConfig{Type: graphql.Int},
	"before": &graphql.ArgumentConfig{Type: graphql.String},
}

func (b *Backend) buildSchema() (graphql.Schema, error) {
	categoryType := graphql.NewObject(graphql.ObjectConfig{
		Name: "Category",
		Fields: graphql.Fields{
			"id":          &graphql.Field{Type: graphql.NewNonNull(graphql.ID)},
			"name":        &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
			"description": &graphql.Field{Type: graphql.String},
		},
	})
	categoryType.AddFieldConfig("parent", &graphql.Field{Type: categoryType})

	pageInfoType := graphql.NewObject(graphql.ObjectConfig{
		Name: "PageInfo",
		Fields: graphql.Fields{
			"hasNextPage":     &graphql.Field{Type: graphql.NewNonNull(graphql.Boolean)},
			"hasPreviousPage": &graphql.Field{Type: graphql.NewNonNull(graphql.Boolean)},
			"startCursor":     &graphql.Field{Type: graphql.String},
			"endCursor":       &graphql.Field{Type: graphql.String},
		},
	})

	edgeType := graphql.NewObject(graphql.ObjectConfig{
		Name: "CategoryCountableEdge",
		Fields: graphql.Fields{
			"cursor": &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
			"node":   &graphql.Field{Type: graphql.NewNonNull(categoryType)},
		},
	})

	connectionType := graphql.NewObject(graphql.ObjectConfig{
		Name: "CategoryCountableConnection",
		Fields: graphql.Fields{
			"totalCount": &graphql.Field{Type: graphql.Int},
			"pageInfo":   &graphql.Field{Type: graphql.NewNonNull(pageInfoType)},
			"edges":      &graphql.Field{Type: graphql.NewNonNull(graphql.NewList(graphql.NewNonNull(edgeType)))},
		},
	})

	categoryType.AddFieldConfig("children", &graphql.Field{
		Type: connectionType,
		Args: connectionArgs,
		Resolve: func(p graphql.ResolveParams) (any, error) {
			src, _ := p.Source.(map[string]any)
			id, _ := src["id"].(string)
			return b.connection(b.children(id), p.Args)
		},
	})

	errorType := graphql.NewObject(graphql.ObjectConfig{
		Name: "CategoryError",
		Fields: graphql.Fields{
			"field":   &graphql.Field{Type: graphql.String},
			"message": &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
		},
	})

	payloadType := func(name string) *graphql.Object {
		return graphql.NewObject(graphql.ObjectConfig{
			Name: name,
			Fields: graphql.Fields{
				"errors":   &graphql.Field{Type: graphql.NewNonNull(graphql.NewList(graphql.NewNonNull(errorType)))},
				"category": &graphql.Field{Type: categoryType},
			},
		})
	}

	inputType := graphql.NewInputObject(graphql.InputObjectConfig{
		Name: "CategoryInput",
		Fields: graphql.InputObjectConfigFieldMap{
			"name":        &graphql.InputObjectFieldConfig{Type: graphql.String},
			"description": &graphql.InputObjectFieldConfig{Type: graphql.String},
		},
	})

	categoriesArgs := graphql.FieldConfigArgument{
		"level": &graphql.ArgumentConfig{Type: graphql.Int},
	}
	for k, v := range connectionArgs {
		categoriesArgs[k] = v
	}

	query := graphql.NewObject(graphql.ObjectConfig{
		Name: "Query",
		Fields: graphql.Fields{
			"categories": &graphql.Field{
				Type:    connectionType,
				Args:    categoriesArgs,
				Resolve: b.resolveCategories,
			},
			"category": &graphql.Field{
				Type: categoryType,
				Args: graphql.FieldConfigArgument{
					"id": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.ID)},
				},
				Resolve: b.resolveCategory,
			},
		},
	})

	mutation := graphql.NewObject(graphql.ObjectConfig{
		Name: "Mutation",
		Fields: graphql.Fields{
			"categoryCreate": &graphql.Field{
				Type: payloadType("CategoryCreate"),
				Args: graphql.FieldConfigArgument{
					"input":  &graphql.ArgumentConfig{Type: graphql.NewNonNull(inputType)},
					"parent": &graphql.ArgumentConfig{Type: graphql.ID},
				},
				Resolve: b.resolveCreate,
			},
			"categoryUpdate": &graphql.Field{
				Type: payloadType("CategoryUpdate"),
				Args: graphql.FieldConfigArgument{
					"id":    &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.ID)},
					"input": &graphql.ArgumentConfig{Type: graphql.NewNonNull(inputType)},
				},
				Resolve: b.resolveUpdate,
			},
			"categoryDelete": &graphql.Field{
				Type: payloadType("CategoryDelete"),
				Args: graphql.FieldConfigArgument{
					"id": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.ID)},
				},
				Resolve: b.resolveDelete,
			},
		},
	})

	return graphql.NewSchema(graphql.SchemaConfig{
		Query:    query,
		Mutation: mutation,
	})
}

// Resolvers run inside ServeHTTP with b.mu held.

func (b *Backend) resolveCategories(p graphql.ResolveParams) (any, error) {
	var items []*record
	if level, ok := p.Args["level"].(int); ok && level == 0 {
		items = b.children("")
	} else {
		for _, id := range b.order {
			items = append(items, b.records[id])
		}
	}
	return b.connection(items, p.Args)
}

func (b *Backend) resolveCategory(p graphql.ResolveParams) (any, error) {
	id, _ := p.Args["id"].(string)
	r, ok := b.records[id]
	if !ok {
		return nil, nil
	}
	return b.node(r), nil
}

func (b *Backend) resolveCreate(p graphql.ResolveParams) (any, error) {
	name, description := inputFields(p.Args)
	parent, _ := p.Args["parent"].(string)
	if parent != "" {
		if _, ok := b.records[parent]; !ok {
			return nil, fmt.Errorf("couldn't resolve to a node: %s", parent)
		}
	}
	if errs := validate(name); len(errs) > 0 {
		return map[string]any{"errors": errs, "category": nil}, nil
	}
	r := b.insert(parent, name, description)
	return map[string]any{"errors": []any{}, "category": b.node(r)}, nil
}

func (b *Backend) resolveUpdate(p graphql.ResolveParams) (any, error) {
	id, _ := p.Args["id"].(string)
	r, ok := b.records[id]
	if !ok {
		return nil, fmt.Errorf("couldn't resolve to a node: %s", id)
	}
	name, description := inputFields(p.Args)
	if errs := validate(name); len(errs) > 0 {
		return map[string]any{"errors": errs, "category": nil}, nil
	}
	r.name = name
	r.description = description
	return map[string]any{"errors": []any{}, "category": b.node(r)}, nil
}

func (b *Backend) resolveDelete(p graphql.ResolveParams) (any, error) {
	id, _ := p.Args["id"].(string)
	r, ok := b.records[id]
	if !ok {
		return nil, fmt.Errorf("couldn't resolve to a node: %s", id)
	}
	node := b.node(r)
	b.remove(id)
	return map[string]any{"errors": []any{}, "category": node}, nil
}

func inputFields(args map[string]any) (name, description string) {
	input, _ := args["input"].(map[string]any)
	name, _ = input["name"].(string)
	description, _ = input["description"].(string)
	return name, description
}

func validate(name string) []any {
	if strings.TrimSpace(name) == "" {
		return []any{map[string]any{"field": "name", "message": BlankNameMessage}}
	}
	return nil
}
