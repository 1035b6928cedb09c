package graphql

import (
	"fmt"

	"github.com/vektah/gqlparser/v2"
	"github.com/vektah/gqlparser/v2/ast"
	"github.com/vektah/gqlparser/v2/parser"
)

// OperationKind is the GraphQL operation type of a document.
type OperationKind string

const (
	Query    OperationKind = "query"
	Mutation OperationKind = "mutation"
)

// Operation is a parsed single-operation document.
type Operation struct {
	Name     string
	Kind     OperationKind
	Document string
}

// Idempotent reports whether the operation may be retried.
func (o Operation) Idempotent() bool {
	return o.Kind == Query
}

// Parse checks the syntax of document and requires exactly one named query or mutation.
func Parse(document string) (Operation, error) {
	doc, err := parser.ParseQuery(&ast.Source{Input: document})
	if err != nil {
		return Operation{}, fmt.Errorf("%w: %w", ErrInvalidDocument, err)
	}
	return operationFrom(doc, document)
}

// MustParse is Parse for package level declarations.
func MustParse(document string) Operation {
	op, err := Parse(document)
	if err != nil {
		panic(err)
	}
	return op
}

// ParseWithSchema parses document and validates it against schema.
func ParseWithSchema(schema *ast.Schema, document string) (Operation, error) {
	doc, errs := gqlparser.LoadQuery(schema, document)
	if len(errs) > 0 {
		return Operation{}, fmt.Errorf("%w: %w", ErrInvalidDocument, errs)
	}
	return operationFrom(doc, document)
}

// LoadSchema parses SDL sources into a schema usable with ParseWithSchema.
func LoadSchema(name, sdl string) (*ast.Schema, error) {
	schema, err := gqlparser.LoadSchema(&ast.Source{Name: name, Input: sdl})
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidSchema, err)
	}
	return schema, nil
}

func operationFrom(doc *ast.QueryDocument, document string) (Operation, error) {
	if len(doc.Operations) != 1 {
		return Operation{}, fmt.Errorf("%w: expected one operation, got %d", ErrInvalidDocument, len(doc.Operations))
	}

	def := doc.Operations[0]
	if def.Name == "" {
		return Operation{}, fmt.Errorf("%w: operation must be named", ErrInvalidDocument)
	}

	var kind OperationKind
	switch def.Operation {
	case ast.Query:
		kind = Query
	case ast.Mutation:
		kind = Mutation
	default:
		return Operation{}, fmt.Errorf("%w: unsupported operation type %q", ErrInvalidDocument, def.Operation)
	}

	return Operation{Name: def.Name, Kind: kind, Document: document}, nil
}
