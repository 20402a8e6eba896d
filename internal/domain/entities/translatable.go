package entities

// Translatable is one marker occurrence found in an input.
type Translatable struct {
	// Span is the exact marker text, delimiters included.
	Span    string
	Key     string
	Default string // empty means no default
}

// HasDefault reports whether the marker carried a non-empty inline default.
func (t Translatable) HasDefault() bool {
	return t.Default != ""
}
