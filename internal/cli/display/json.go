package display

import (
	"encoding/json"
	"fmt"
	"io"
)

// JSONFormatter handles JSON output formatting
type JSONFormatter struct{}

// Format outputs the data in JSON format
func (f *JSONFormatter) Format(w io.Writer, data any) error {
	marshalled, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return fmt.Errorf("marshalling response: %w", err)
	}
	_, err = fmt.Fprintf(w, "%s\n", string(marshalled))
	return err
}
