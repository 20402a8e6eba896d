// Package parser finds translation markers in text and trees and substitutes
// resolved content back into a copy of the input.
//
// A marker is written __{{key}} or __{{key, "default"}} (single quotes are
// accepted as well). The key is matched lazily so several markers on one line
// are read independently.
package parser

import (
	"regexp"
	"strings"

	"marktrans/internal/domain/entities"
)

// Submatches: 1 key, 2 default stanza, 3 default content.
var markerPattern = regexp.MustCompile(`__\{\{(.*?)(,\s*['"](.*?)['"])?\}\}`)

// Scan returns every marker of s in source order. Repeated keys are kept.
func Scan(s string) []entities.Translatable {
	if !strings.Contains(s, "__{{") {
		return nil
	}
	matches := markerPattern.FindAllStringSubmatch(s, -1)
	out := make([]entities.Translatable, 0, len(matches))
	for _, m := range matches {
		if m[1] == "" {
			continue
		}
		out = append(out, entities.Translatable{
			Span:    m[0],
			Key:     m[1],
			Default: m[3],
		})
	}
	return out
}

// UniqueKeys returns the distinct keys of ts in first-occurrence order.
func UniqueKeys(ts []entities.Translatable) []string {
	seen := make(map[string]struct{}, len(ts))
	keys := make([]string, 0, len(ts))
	for _, t := range ts {
		if _, ok := seen[t.Key]; ok {
			continue
		}
		seen[t.Key] = struct{}{}
		keys = append(keys, t.Key)
	}
	return keys
}

// contentByKey indexes translations by key. The first translation for a key wins.
func contentByKey(translations []entities.Translation) map[string]string {
	idx := make(map[string]string, len(translations))
	for _, tr := range translations {
		if _, ok := idx[tr.Key]; !ok {
			idx[tr.Key] = tr.Content
		}
	}
	return idx
}

// replace substitutes each marker span, in discovery order, across the whole
// of s. Every occurrence of a span gets the same replacement.
func replace(s string, ts []entities.Translatable, contents map[string]string) string {
	out := s
	for _, t := range ts {
		replacement, ok := contents[t.Key]
		if !ok {
			replacement = t.Default
		}
		out = strings.ReplaceAll(out, t.Span, replacement)
	}
	return out
}
