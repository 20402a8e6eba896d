package entities

import (
	"time"

	"marktrans/internal/domain"
)

// Translation is the content stored for one (locale, key, domain) identity.
// An empty Domain means the translation has no domain.
type Translation struct {
	Locale    string
	Key       string
	Domain    string
	Content   string
	CreatedAt time.Time // zero for values not read from a store
	UpdatedAt time.Time
}

// Identity returns the lookup triple of the translation.
func (t Translation) Identity() Identity {
	return Identity{Locale: t.Locale, Key: t.Key, Domain: t.Domain}
}

// Validate checks the fields required to persist the translation.
func (t Translation) Validate() error {
	return t.Identity().Validate()
}

// Identity uniquely identifies at most one Translation in a store.
type Identity struct {
	Locale string
	Key    string
	Domain string
}

func (id Identity) Validate() error {
	if id.Locale == "" || id.Key == "" {
		return domain.ErrInvalidTranslation
	}
	return nil
}
