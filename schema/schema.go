// Package schema parses declarative type-definition documents and applies
// them to a reactor registry.
//
// Documents are authored as JSONC (JSON extended with // line comments,
// /* block comments */, and trailing commas) or as YAML. Both map onto the
// same document shape:
//
//	{
//	  "types": [
//	    {
//	      "name": "Config",
//	      "slots": [{"name": "timeout", "type": "int", "default": 30}]
//	    },
//	    {
//	      "name": "Service",
//	      "slots": [
//	        {"name": "_config", "type": "Config", "placeholder": true},
//	        {"name": "_timeout", "type": "int"}
//	      ],
//	      "forward": [{"ref": "_config"}]
//	    },
//	    {
//	      "name": "AppModule",
//	      "slots": [
//	        {"name": "config", "type": "Config"},
//	        {"name": "service", "type": "Service"}
//	      ],
//	      "module": {"caching": "memoized"}
//	    }
//	  ]
//	}
//
// Type strings use the reactor.ParseTypeRef syntax: "any", primitive names,
// "base[args]" for parameterized types, and anything else as a nominal
// reference. Forward references across the document are permitted; Apply
// registers types in document order.
package schema

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/tidwall/jsonc"
	"gopkg.in/yaml.v3"

	"github.com/christian-schlichtherle/reactor-di-go/reactor"
)

// Document is one parsed definition file.
type Document struct {
	Types []TypeSpec `json:"types" yaml:"types"`
}

// TypeSpec declares one type.
type TypeSpec struct {
	Name     string        `json:"name" yaml:"name"`
	Extends  string        `json:"extends,omitempty" yaml:"extends,omitempty"`
	Foreign  bool          `json:"foreign,omitempty" yaml:"foreign,omitempty"`
	Slots    []SlotSpec    `json:"slots,omitempty" yaml:"slots,omitempty"`
	Params   []ParamSpec   `json:"params,omitempty" yaml:"params,omitempty"`
	Provides []string      `json:"provides,omitempty" yaml:"provides,omitempty"`
	Forward  []ForwardSpec `json:"forward,omitempty" yaml:"forward,omitempty"`
	Module   *ModuleSpec   `json:"module,omitempty" yaml:"module,omitempty"`
}

// SlotSpec declares one slot. A non-nil Default marks the slot implemented.
type SlotSpec struct {
	Name        string `json:"name" yaml:"name"`
	Type        string `json:"type,omitempty" yaml:"type,omitempty"`
	Default     any    `json:"default,omitempty" yaml:"default,omitempty"`
	Placeholder bool   `json:"placeholder,omitempty" yaml:"placeholder,omitempty"`
}

// ParamSpec declares one constructor parameter. An empty Type means the
// parameter is declared without a type.
type ParamSpec struct {
	Name string `json:"name" yaml:"name"`
	Type string `json:"type,omitempty" yaml:"type,omitempty"`
}

// ForwardSpec declares one forwarding layer. A nil Prefix selects the
// default "_" marker; an explicit empty string forwards without renaming.
type ForwardSpec struct {
	Ref    string  `json:"ref" yaml:"ref"`
	Prefix *string `json:"prefix,omitempty" yaml:"prefix,omitempty"`
}

// ModuleSpec enables factory synthesis. Caching must be "disabled" or
// "memoized"; anything else is a configuration error raised by Apply.
type ModuleSpec struct {
	Caching string `json:"caching" yaml:"caching"`
}

// Parse strips JSONC comments and trailing commas from data, then
// unmarshals the result into a Document.
func Parse(data []byte) (*Document, error) {
	stripped := jsonc.ToJSON(data)

	var doc Document
	if err := json.Unmarshal(stripped, &doc); err != nil {
		return nil, fmt.Errorf("parsing definitions: %w", err)
	}
	return &doc, nil
}

// ParseYAML unmarshals a YAML document.
func ParseYAML(data []byte) (*Document, error) {
	var doc Document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parsing definitions: %w", err)
	}
	return &doc, nil
}

// ReadFile loads a definition file from disk, dispatching on extension:
// .yaml and .yml parse as YAML, everything else as JSONC.
func ReadFile(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	var doc *Document
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		doc, err = ParseYAML(data)
	default:
		doc, err = Parse(data)
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return doc, nil
}

// Apply validates every type spec and registers the resulting definitions
// into reg in document order. The first failure aborts and is returned with
// the offending type named; types registered before it remain registered.
func Apply(doc *Document, reg *reactor.Registry) error {
	for i := range doc.Types {
		def, err := build(&doc.Types[i])
		if err != nil {
			return err
		}
		if err := reg.Register(def); err != nil {
			return fmt.Errorf("type %q: %w", def.Name, err)
		}
	}
	return nil
}

// Load is ReadFile followed by Apply.
func Load(path string, reg *reactor.Registry) error {
	doc, err := ReadFile(path)
	if err != nil {
		return err
	}
	return Apply(doc, reg)
}

// build converts one validated spec into a reactor definition.
func build(ts *TypeSpec) (*reactor.Definition, error) {
	if strings.TrimSpace(ts.Name) == "" {
		return nil, fmt.Errorf("type spec missing name")
	}

	def := &reactor.Definition{
		Name:     ts.Name,
		Extends:  ts.Extends,
		Foreign:  ts.Foreign,
		Provides: ts.Provides,
	}

	for _, ss := range ts.Slots {
		if strings.TrimSpace(ss.Name) == "" {
			return nil, fmt.Errorf("type %q: slot missing name", ts.Name)
		}
		t, err := parseType(ss.Type)
		if err != nil {
			return nil, fmt.Errorf("type %q: slot %q: %w", ts.Name, ss.Name, err)
		}
		slot := reactor.NewSlot(ss.Name, t)
		if ss.Placeholder {
			slot = slot.AsPlaceholder()
		}
		if ss.Default != nil {
			slot = slot.WithDefault(coerceDefault(t, ss.Default))
		}
		def.Slots = append(def.Slots, slot)
	}

	for _, ps := range ts.Params {
		if strings.TrimSpace(ps.Name) == "" {
			return nil, fmt.Errorf("type %q: param missing name", ts.Name)
		}
		if ps.Type == "" {
			def.Params = append(def.Params, reactor.NewUntypedParam(ps.Name))
			continue
		}
		t, err := reactor.ParseTypeRef(ps.Type)
		if err != nil {
			return nil, fmt.Errorf("type %q: param %q: %w", ts.Name, ps.Name, err)
		}
		def.Params = append(def.Params, reactor.NewParam(ps.Name, t))
	}

	for _, fs := range ts.Forward {
		if strings.TrimSpace(fs.Ref) == "" {
			return nil, fmt.Errorf("type %q: forward missing ref", ts.Name)
		}
		fd := reactor.NewForward(fs.Ref)
		if fs.Prefix != nil {
			fd = fd.WithPrefix(*fs.Prefix)
		}
		def.Forwards = append(def.Forwards, fd)
	}

	if ts.Module != nil {
		switch ts.Module.Caching {
		case "disabled":
			def.Module = reactor.Module(reactor.CachingDisabled)
		case "memoized":
			def.Module = reactor.Module(reactor.CachingMemoized)
		default:
			return nil, fmt.Errorf("type %q: caching must be one of: disabled|memoized, got %q",
				ts.Name, ts.Module.Caching)
		}
	}

	return def, nil
}

// parseType parses a slot type string; an absent type declares the slot
// open.
func parseType(s string) (reactor.TypeRef, error) {
	if s == "" {
		return reactor.Any(), nil
	}
	return reactor.ParseTypeRef(s)
}

// coerceDefault narrows JSON's float64 numbers to int for integer slots so
// defaults compare naturally against Go ints.
func coerceDefault(t reactor.TypeRef, v any) any {
	if t.Kind != reactor.KindInt {
		return v
	}
	if f, ok := v.(float64); ok && f == float64(int(f)) {
		return int(f)
	}
	return v
}
