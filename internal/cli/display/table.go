package display

import (
	"fmt"
	"io"
	"text/tabwriter"

	api "github.com/flightctl/romannumeral/api/v1"
)

const NoneString = "<none>"

// HealthStatus is the result of probing the liveness and readiness endpoints.
type HealthStatus struct {
	Liveness  string `json:"liveness"`
	Readiness string `json:"readiness"`
}

// VersionInfo pairs the CLI build with what the server reported.
type VersionInfo struct {
	Client  string `json:"client"`
	Server  string `json:"server,omitempty"`
	Error   string `json:"error,omitempty"`
	Warning string `json:"warning,omitempty"`
}

// TableFormatter handles table output formatting
type TableFormatter struct{}

// Format outputs the data in table format
func (f *TableFormatter) Format(w io.Writer, data any) error {
	tw := tabwriter.NewWriter(w, 0, 8, 1, ' ', 0)
	defer tw.Flush()

	switch v := data.(type) {
	case *api.ConversionResponse:
		printConversionsTable(tw, *v)
	case *api.RangeConversionResponse:
		printConversionsTable(tw, v.Conversions...)
	case *HealthStatus:
		fmt.Fprintln(tw, "LIVENESS\tREADINESS")
		fmt.Fprintf(tw, "%s\t%s\n", orNone(v.Liveness), orNone(v.Readiness))
	case *VersionInfo:
		fmt.Fprintln(tw, "CLIENT\tSERVER")
		server := v.Server
		if v.Error != "" {
			server = v.Error
		}
		fmt.Fprintf(tw, "%s\t%s\n", orNone(v.Client), orNone(server))
		if v.Warning != "" {
			fmt.Fprintf(tw, "\nWARNING: %s\n", v.Warning)
		}
	default:
		return fmt.Errorf("no table layout for %T", data)
	}
	return nil
}

func printConversionsTable(w io.Writer, conversions ...api.ConversionResponse) {
	fmt.Fprintln(w, "INPUT\tOUTPUT")
	for _, c := range conversions {
		fmt.Fprintf(w, "%s\t%s\n", c.Input, c.Output)
	}
}

func orNone(s string) string {
	if s == "" {
		return NoneString
	}
	return s
}
