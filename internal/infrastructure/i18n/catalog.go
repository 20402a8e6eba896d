package i18n

import (
	"fmt"
	"io/fs"
	"os"
	"path"

	"github.com/goccy/go-yaml"
	"github.com/nicksnyder/go-i18n/v2/i18n"
	"github.com/pelletier/go-toml/v2"
	"github.com/rs/zerolog"
	"golang.org/x/text/language"

	"marktrans/internal/domain/entities"
)

// Catalog reads go-i18n message files (TOML, YAML or JSON) and turns their
// messages into Translations. The locale comes from the file name, e.g.
// active.es.toml or fr.yaml. Only the "other" form of a message is kept.
type Catalog struct {
	bundle *i18n.Bundle
	logger zerolog.Logger
}

// NewCatalog builds a Catalog whose bundle falls back to defaultLocale
// (e.g. "en").
func NewCatalog(defaultLocale string, logger zerolog.Logger) *Catalog {
	tag, err := language.Parse(defaultLocale)
	if err != nil {
		tag = language.English
	}
	bundle := i18n.NewBundle(tag)
	bundle.RegisterUnmarshalFunc("toml", toml.Unmarshal)
	bundle.RegisterUnmarshalFunc("yaml", yaml.Unmarshal)
	bundle.RegisterUnmarshalFunc("yml", yaml.Unmarshal)

	return &Catalog{bundle: bundle, logger: logger}
}

// Parse decodes one message file. Every translation gets domain.
func (c *Catalog) Parse(buf []byte, filePath, domain string) ([]entities.Translation, error) {
	mf, err := c.bundle.ParseMessageFileBytes(buf, filePath)
	if err != nil {
		return nil, fmt.Errorf("parse message file %s: %w", filePath, err)
	}
	if mf.Tag == language.Und {
		return nil, fmt.Errorf("parse message file %s: no locale in file name", filePath)
	}

	locale := mf.Tag.String()
	out := make([]entities.Translation, 0, len(mf.Messages))
	for _, msg := range mf.Messages {
		out = append(out, entities.Translation{
			Locale:  locale,
			Key:     msg.ID,
			Domain:  domain,
			Content: msg.Other,
		})
	}
	c.logger.Debug().Str("file", filePath).Str("locale", locale).Int("messages", len(out)).Msg("catalog parsed")
	return out, nil
}

// LoadFiles parses each file on disk.
func (c *Catalog) LoadFiles(domain string, paths ...string) ([]entities.Translation, error) {
	var out []entities.Translation
	for _, p := range paths {
		buf, err := os.ReadFile(p)
		if err != nil {
			return nil, fmt.Errorf("read message file: %w", err)
		}
		ts, err := c.Parse(buf, p, domain)
		if err != nil {
			return nil, err
		}
		out = append(out, ts...)
	}
	return out, nil
}

// LoadFS parses every file of fsys matching pattern (fs.Glob syntax).
func (c *Catalog) LoadFS(fsys fs.FS, pattern, domain string) ([]entities.Translation, error) {
	matches, err := fs.Glob(fsys, pattern)
	if err != nil {
		return nil, fmt.Errorf("glob %q: %w", pattern, err)
	}
	var out []entities.Translation
	for _, name := range matches {
		buf, err := fs.ReadFile(fsys, name)
		if err != nil {
			return nil, fmt.Errorf("read message file: %w", err)
		}
		ts, err := c.Parse(buf, path.Base(name), domain)
		if err != nil {
			return nil, err
		}
		out = append(out, ts...)
	}
	return out, nil
}
