package parser

import (
	"fmt"

	"marktrans/internal/domain"
	"marktrans/internal/domain/entities"
)

// TreeParser handles nested sequences and mappings whose string leaves may
// hold markers. It is not safe for concurrent use.
type TreeParser struct {
	input         entities.Value
	translatables []entities.Translatable
	parsed        bool
}

func NewTreeParser() *TreeParser {
	return &TreeParser{}
}

// Parse walks the tree depth-first, children in document order. The root
// must be a container.
func (p *TreeParser) Parse(input entities.Value) ([]entities.Translatable, error) {
	if !input.IsContainer() {
		return nil, fmt.Errorf("%w: tree parser requires a sequence or mapping, got %s", domain.ErrMalformedInput, input.Kind())
	}
	p.input = input
	p.translatables = collect(input, nil)
	p.parsed = true
	return p.translatables, nil
}

func (p *TreeParser) Translatables() []entities.Translatable {
	return p.translatables
}

func (p *TreeParser) Keys() []string {
	return UniqueKeys(p.translatables)
}

// Substitute builds a new tree of the same shape. Each string leaf is
// rescanned and replaced on its own, so leaves never affect each other.
// The parsed input is left untouched.
func (p *TreeParser) Substitute(translations []entities.Translation) (entities.Value, error) {
	if !p.parsed {
		return entities.Value{}, domain.ErrNotParsed
	}
	return rebuild(p.input, contentByKey(translations)), nil
}

func collect(v entities.Value, acc []entities.Translatable) []entities.Translatable {
	switch v.Kind() {
	case entities.KindString:
		return append(acc, Scan(v.Text())...)
	case entities.KindSequence:
		for _, item := range v.Items() {
			acc = collect(item, acc)
		}
	case entities.KindMapping:
		for _, f := range v.Fields() {
			acc = collect(f.Value, acc)
		}
	}
	return acc
}

func rebuild(v entities.Value, contents map[string]string) entities.Value {
	switch v.Kind() {
	case entities.KindString:
		ts := Scan(v.Text())
		if len(ts) == 0 {
			return v
		}
		return entities.String(replace(v.Text(), ts, contents))
	case entities.KindSequence:
		items := make([]entities.Value, len(v.Items()))
		for i, item := range v.Items() {
			items[i] = rebuild(item, contents)
		}
		return entities.Sequence(items...)
	case entities.KindMapping:
		fields := make([]entities.Field, len(v.Fields()))
		for i, f := range v.Fields() {
			fields[i] = entities.Field{Key: f.Key, Value: rebuild(f.Value, contents)}
		}
		return entities.Mapping(fields...)
	default:
		return v
	}
}
