package entities

// Scope selects the locale and domain a resolution runs against.
// An empty Domain matches only translations stored without a domain.
type Scope struct {
	Locale string
	Domain string
}
