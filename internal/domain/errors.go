package domain

import "errors"

// Domain errors.
var (
	ErrMalformedInput      = errors.New("input shape does not match the parser")
	ErrStoreMissing        = errors.New("no translation store configured")
	ErrNotParsed           = errors.New("substitute called before parse")
	ErrTranslationNotFound = errors.New("translation not found")
	ErrTranslationExists   = errors.New("translation already exists")
	ErrInvalidTranslation  = errors.New("translation requires a locale and a key")
)

// Registry errors.
var (
	ErrTranslatorRegistered    = errors.New("translator name already registered")
	ErrTranslatorNotRegistered = errors.New("translator name not registered")
)
