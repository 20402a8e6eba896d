// Package document decodes YAML and JSON documents into translatable trees
// and encodes resolved trees back, keeping mapping order.
package document

import (
	"bytes"
	"encoding/json"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/goccy/go-yaml"

	"marktrans/internal/domain"
	"marktrans/internal/domain/entities"
)

type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// FormatFromPath picks the format from a file extension, defaulting to JSON.
func FormatFromPath(p string) Format {
	switch strings.ToLower(filepath.Ext(p)) {
	case ".yaml", ".yml":
		return FormatYAML
	default:
		return FormatJSON
	}
}

// Decode reads a YAML or JSON document. JSON is read through the YAML
// decoder, which accepts it as flow style.
func Decode(data []byte) (entities.Value, error) {
	var raw any
	if err := yaml.UnmarshalWithOptions(data, &raw, yaml.UseOrderedMap()); err != nil {
		return entities.Value{}, fmt.Errorf("decode document: %w", err)
	}
	v, err := fromYAML(raw)
	if err != nil {
		return entities.Value{}, fmt.Errorf("decode document: %w", err)
	}
	return v, nil
}

// Encode writes v in the given format.
func Encode(v entities.Value, format Format) ([]byte, error) {
	switch format {
	case FormatYAML:
		return yaml.Marshal(toYAML(v))
	case FormatJSON:
		var buf bytes.Buffer
		if err := writeJSON(&buf, v); err != nil {
			return nil, err
		}
		var out bytes.Buffer
		if err := json.Indent(&out, buf.Bytes(), "", "  "); err != nil {
			return nil, err
		}
		out.WriteByte('\n')
		return out.Bytes(), nil
	default:
		return nil, fmt.Errorf("unknown document format %q", format)
	}
}

func fromYAML(raw any) (entities.Value, error) {
	switch t := raw.(type) {
	case yaml.MapSlice:
		fields := make([]entities.Field, 0, len(t))
		for _, item := range t {
			child, err := fromYAML(item.Value)
			if err != nil {
				return entities.Value{}, err
			}
			fields = append(fields, entities.Field{Key: keyString(item.Key), Value: child})
		}
		return entities.Mapping(fields...), nil
	case []any:
		items := make([]entities.Value, 0, len(t))
		for _, elem := range t {
			child, err := fromYAML(elem)
			if err != nil {
				return entities.Value{}, err
			}
			items = append(items, child)
		}
		return entities.Sequence(items...), nil
	case string:
		return entities.String(t), nil
	case nil, bool, int, int32, int64, uint, uint32, uint64, float32, float64:
		return entities.Opaque(t), nil
	default:
		return entities.Value{}, fmt.Errorf("%w: unsupported document node %T", domain.ErrMalformedInput, raw)
	}
}

func keyString(k any) string {
	if s, ok := k.(string); ok {
		return s
	}
	return fmt.Sprint(k)
}

func toYAML(v entities.Value) any {
	switch v.Kind() {
	case entities.KindString:
		return v.Text()
	case entities.KindSequence:
		out := make([]any, len(v.Items()))
		for i, item := range v.Items() {
			out[i] = toYAML(item)
		}
		return out
	case entities.KindMapping:
		out := make(yaml.MapSlice, len(v.Fields()))
		for i, f := range v.Fields() {
			out[i] = yaml.MapItem{Key: f.Key, Value: toYAML(f.Value)}
		}
		return out
	default:
		return v.Raw()
	}
}

// writeJSON emits v compactly with mapping keys in document order.
func writeJSON(buf *bytes.Buffer, v entities.Value) error {
	switch v.Kind() {
	case entities.KindSequence:
		buf.WriteByte('[')
		for i, item := range v.Items() {
			if i > 0 {
				buf.WriteByte(',')
			}
			if err := writeJSON(buf, item); err != nil {
				return err
			}
		}
		buf.WriteByte(']')
		return nil
	case entities.KindMapping:
		buf.WriteByte('{')
		for i, f := range v.Fields() {
			if i > 0 {
				buf.WriteByte(',')
			}
			if err := writeScalar(buf, f.Key); err != nil {
				return err
			}
			buf.WriteByte(':')
			if err := writeJSON(buf, f.Value); err != nil {
				return err
			}
		}
		buf.WriteByte('}')
		return nil
	case entities.KindString:
		return writeScalar(buf, v.Text())
	default:
		return writeScalar(buf, v.Raw())
	}
}

// writeScalar leaves HTML characters unescaped since resolved content is
// often markup.
func writeScalar(buf *bytes.Buffer, x any) error {
	var tmp bytes.Buffer
	enc := json.NewEncoder(&tmp)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(x); err != nil {
		return fmt.Errorf("encode document: %w", err)
	}
	buf.Write(bytes.TrimRight(tmp.Bytes(), "\n"))
	return nil
}
