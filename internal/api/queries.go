package api

const connectionFields = `
	totalCount
	pageInfo {
		hasNextPage
		hasPreviousPage
		startCursor
		endCursor
	}
	edges {
		cursor
		node {
			id
			name
			description
		}
	}`

const rootCategoriesQuery = `
query RootCategories($first: Int, $after: String, $last: Int, $before: String) {
	categories(level: 0, first: $first, after: $after, last: $last, before: $before) {` + connectionFields + `
	}
}`

const categoryChildrenQuery = `
query CategoryChildren($id: ID!, $first: Int, $after: String, $last: Int, $before: String) {
	category(id: $id) {
		id
		children(first: $first, after: $after, last: $last, before: $before) {` + connectionFields + `
		}
	}
}`

const categoryDetailsQuery = `
query CategoryDetails($id: ID!) {
	category(id: $id) {
		id
		name
		description
		parent {
			id
			name
		}
	}
}`

const mutationPayload = `
		errors {
			field
			message
		}
		category {
			id
			name
			description
			parent {
				id
				name
			}
		}`

const categoryUpdateMutation = `
mutation CategoryUpdate($id: ID!, $name: String!, $description: String) {
	categoryUpdate(id: $id, input: {name: $name, description: $description}) {` + mutationPayload + `
	}
}`

const categoryCreateMutation = `
mutation CategoryCreate($name: String!, $description: String, $parent: ID) {
	categoryCreate(input: {name: $name, description: $description}, parent: $parent) {` + mutationPayload + `
	}
}`

const categoryDeleteMutation = `
mutation CategoryDelete($id: ID!) {
	categoryDelete(id: $id) {` + mutationPayload + `
	}
}`
