// yamlspec.go — declaring a Schema from a YAML schema document.
//
// Document shape:
//
//	name: Point
//	fields:
//	  - name: x
//	    type: float
//	    default: 0
//	  - name: y
//	    type: float
//	    rule: "gte=0"
//	  - name: label
//	    type: string
//	    static: true
//	    metadata: {unit: "px"}
//
// The type tag set is closed: bool, int, float, string, any, list, map.
// list/map fields cannot carry YAML defaults (mutable literal defaults are
// rejected by the field package); declare a factory in code instead.

package schema

import (
	"fmt"
	"reflect"
	"sort"

	"gopkg.in/yaml.v3"

	"github.com/ymahlau/treeclass/field"
)

type yamlDocument struct {
	Name   string      `yaml:"name"`
	Fields []yamlField `yaml:"fields"`
}

type yamlField struct {
	Name     string         `yaml:"name"`
	Type     string         `yaml:"type"`
	Default  yaml.Node      `yaml:"default"`
	Static   bool           `yaml:"static"`
	KwOnly   bool           `yaml:"kw_only"`
	Init     *bool          `yaml:"init"`
	Repr     *bool          `yaml:"repr"`
	Rule     string         `yaml:"rule"`
	Metadata map[string]any `yaml:"metadata"`
}

// ParseYAML declares a Schema from a YAML schema document. All field
// declarations are checked exactly as if written in code; errors wrap the
// offending field name.
func ParseYAML(data []byte) (*Schema, error) {
	var doc yamlDocument
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBadDocument, err)
	}
	if doc.Name == "" {
		return nil, fmt.Errorf("%w: missing schema name", ErrBadDocument)
	}
	if len(doc.Fields) == 0 {
		return nil, fmt.Errorf("%w: no fields declared", ErrBadDocument)
	}

	fields := make([]*field.Field, 0, len(doc.Fields))
	for _, yf := range doc.Fields {
		f, err := yf.build()
		if err != nil {
			return nil, err
		}
		fields = append(fields, f)
	}
	return New(doc.Name, fields...)
}

func (yf yamlField) build() (*field.Field, error) {
	typ, err := typeForTag(yf.Type)
	if err != nil {
		return nil, fmt.Errorf("field %q: %w", yf.Name, err)
	}

	opts := make([]field.Option, 0, 4)
	if yf.Default.Kind != 0 {
		var raw any
		if err := yf.Default.Decode(&raw); err != nil {
			return nil, fmt.Errorf("field %q: %w: %v", yf.Name, ErrBadDocument, err)
		}
		opts = append(opts, field.WithDefault(coerceDefault(raw, yf.Type)))
	}
	if yf.Static {
		opts = append(opts, field.WithStatic())
	}
	if yf.KwOnly {
		opts = append(opts, field.WithKwOnly())
	}
	if yf.Init != nil {
		opts = append(opts, field.WithInit(*yf.Init))
	}
	if yf.Repr != nil {
		opts = append(opts, field.WithRepr(*yf.Repr))
	}
	if yf.Rule != "" {
		opts = append(opts, field.WithValidators(field.Rule(yf.Rule)))
	}
	// YAML mappings are unordered; sort keys so metadata order is
	// deterministic across loads.
	keys := make([]string, 0, len(yf.Metadata))
	for k := range yf.Metadata {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		opts = append(opts, field.WithMetadata(k, yf.Metadata[k]))
	}

	return field.New(yf.Name, typ, opts...)
}

// Declared-type tags for container fields; defaults for these come from
// factories declared in code, never from YAML literals.
var (
	listType = reflect.TypeOf([]any(nil))
	mapType  = reflect.TypeOf(map[string]any(nil))
)

// typeForTag resolves the closed type-tag set to declared-type tags.
func typeForTag(tag string) (reflect.Type, error) {
	switch tag {
	case "bool":
		return field.Bool, nil
	case "int":
		return field.Int, nil
	case "float":
		return field.Float, nil
	case "string":
		return field.String, nil
	case "any", "":
		return field.Any, nil
	case "list":
		return listType, nil
	case "map":
		return mapType, nil
	default:
		return nil, fmt.Errorf("%q: %w", tag, ErrUnknownTypeTag)
	}
}

// coerceDefault widens YAML integer literals declared under a float tag.
func coerceDefault(raw any, tag string) any {
	if tag != "float" {
		return raw
	}
	if i, ok := raw.(int); ok {
		return float64(i)
	}
	return raw
}
