package identifiers

import (
	"fmt"
	"reflect"

	"github.com/go-viper/mapstructure/v2"
	yaml "gopkg.in/yaml.v3"

	"github.com/sufield/identifiers/pkg/correctness"
)

// MarshalText implements encoding.TextMarshaler.
func (id ComponentID) MarshalText() ([]byte, error) {
	return []byte(id.AsStr()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler. The value is validated
// before it replaces the receiver.
func (id *ComponentID) UnmarshalText(text []byte) error {
	value := string(text)
	if err := correctness.Check(value, "value"); err != nil {
		return err
	}
	id.setInner(value)
	return nil
}

// MarshalYAML implements yaml.Marshaler.
func (id ComponentID) MarshalYAML() (interface{}, error) {
	return id.AsStr(), nil
}

// UnmarshalYAML implements yaml.Unmarshaler.
func (id *ComponentID) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.ScalarNode {
		return fmt.Errorf("component id: expected a scalar, got %s", yamlKind(node.Kind))
	}
	var value string
	if err := node.Decode(&value); err != nil {
		return fmt.Errorf("component id: %w", err)
	}
	return id.UnmarshalText([]byte(value))
}

func yamlKind(k yaml.Kind) string {
	switch k {
	case yaml.DocumentNode:
		return "document"
	case yaml.SequenceNode:
		return "sequence"
	case yaml.MappingNode:
		return "mapping"
	case yaml.AliasNode:
		return "alias"
	default:
		return "scalar"
	}
}

// ComponentIDDecodeHook provides a mapstructure decode hook for ComponentID.
// This allows automatic conversion from string to ComponentID during
// configuration unmarshalling.
func ComponentIDDecodeHook() mapstructure.DecodeHookFunc {
	return func(f reflect.Type, t reflect.Type, data interface{}) (interface{}, error) {
		if f.Kind() != reflect.String {
			return data, nil
		}
		if t != reflect.TypeOf(ComponentID{}) {
			return data, nil
		}

		str, ok := data.(string)
		if !ok {
			return data, nil
		}

		id, err := NewComponentIDChecked(str)
		if err != nil {
			return nil, fmt.Errorf("invalid component id %q: %w", str, err)
		}
		return id, nil
	}
}
