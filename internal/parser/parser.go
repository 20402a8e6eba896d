package parser

import "marktrans/internal/domain/entities"

// Parser extracts markers from an input of type T and produces a substituted
// copy of the most recently parsed input.
type Parser[T any] interface {
	// Parse scans input and remembers it for Substitute.
	Parse(input T) ([]entities.Translatable, error)
	// Translatables returns the markers found by the last Parse.
	Translatables() []entities.Translatable
	// Keys returns the distinct keys found by the last Parse.
	Keys() []string
	// Substitute returns a copy of the parsed input with every marker
	// replaced. It fails with domain.ErrNotParsed when Parse was not called.
	Substitute(translations []entities.Translation) (T, error)
}

var (
	_ Parser[string]         = (*StringParser)(nil)
	_ Parser[entities.Value] = (*TreeParser)(nil)
)
