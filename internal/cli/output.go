package cli

import (
	"encoding/json"
	"fmt"
	"io"

	yaml "gopkg.in/yaml.v3"
)

func writeStructured(w io.Writer, format string, v interface{}) error {
	switch format {
	case FormatJSON:
		encoder := json.NewEncoder(w)
		encoder.SetIndent("", "  ")
		if err := encoder.Encode(v); err != nil {
			return fmt.Errorf("%w: failed to encode JSON: %v", ErrInternal, err)
		}
	case FormatYAML:
		encoder := yaml.NewEncoder(w)
		encoder.SetIndent(2)
		if err := encoder.Encode(v); err != nil {
			return fmt.Errorf("%w: failed to encode YAML: %v", ErrInternal, err)
		}
		if err := encoder.Close(); err != nil {
			return fmt.Errorf("%w: failed to encode YAML: %v", ErrInternal, err)
		}
	default:
		return fmt.Errorf("%w: unsupported format %q", ErrUsage, format)
	}
	return nil
}
