package display

import (
	"fmt"
	"io"

	"sigs.k8s.io/yaml"
)

// YAMLFormatter handles YAML output formatting
type YAMLFormatter struct{}

// Format outputs the data in YAML format
func (f *YAMLFormatter) Format(w io.Writer, data any) error {
	marshalled, err := yaml.Marshal(data)
	if err != nil {
		return fmt.Errorf("marshalling response: %w", err)
	}
	_, err = fmt.Fprint(w, string(marshalled))
	return err
}
