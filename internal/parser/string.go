package parser

import (
	"marktrans/internal/domain"
	"marktrans/internal/domain/entities"
)

// StringParser handles plain text inputs. It is not safe for concurrent use.
type StringParser struct {
	input         string
	translatables []entities.Translatable
	parsed        bool
}

func NewStringParser() *StringParser {
	return &StringParser{}
}

func (p *StringParser) Parse(input string) ([]entities.Translatable, error) {
	p.input = input
	p.translatables = Scan(input)
	p.parsed = true
	return p.translatables, nil
}

func (p *StringParser) Translatables() []entities.Translatable {
	return p.translatables
}

func (p *StringParser) Keys() []string {
	return UniqueKeys(p.translatables)
}

// Input returns the text given to the last Parse.
func (p *StringParser) Input() string {
	return p.input
}

// Substitute replaces each marker with its translation content, falling back
// to the marker default and then to the empty string.
func (p *StringParser) Substitute(translations []entities.Translation) (string, error) {
	if !p.parsed {
		return "", domain.ErrNotParsed
	}
	return replace(p.input, p.translatables, contentByKey(translations)), nil
}
