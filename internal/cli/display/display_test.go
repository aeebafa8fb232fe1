package display

import (
	"bytes"
	"testing"

	api "github.com/flightctl/romannumeral/api/v1"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var conversions = &api.RangeConversionResponse{Conversions: []api.ConversionResponse{
	{Input: "1", Output: "I"},
	{Input: "1000", Output: "M"},
}}

func TestTableFormatter(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewFormatter(TableFormat).Format(&buf, conversions))
	assert.Equal(t, "INPUT OUTPUT\n1     I\n1000  M\n", buf.String())

	buf.Reset()
	require.NoError(t, NewFormatter("").Format(&buf, &HealthStatus{Liveness: "Success"}))
	assert.Equal(t, "LIVENESS READINESS\nSuccess  <none>\n", buf.String())

	assert.Error(t, NewFormatter(TableFormat).Format(&buf, 42))
}

func TestJSONFormatter(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewFormatter(JSONFormat).Format(&buf, conversions))
	assert.JSONEq(t, `{"conversions":[{"input":"1","output":"I"},{"input":"1000","output":"M"}]}`, buf.String())
}

func TestYAMLFormatter(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewFormatter(YAMLFormat).Format(&buf, &api.ConversionResponse{Input: "4", Output: "IV"}))
	assert.Equal(t, "input: \"4\"\noutput: IV\n", buf.String())
}

func TestVersionInfoFormats(t *testing.T) {
	info := &VersionInfo{Client: "v1.2.0", Error: "unreachable", Warning: "upgrade the server"}

	var buf bytes.Buffer
	require.NoError(t, NewFormatter(TableFormat).Format(&buf, info))
	assert.Equal(t, "CLIENT SERVER\nv1.2.0 unreachable\n\nWARNING: upgrade the server\n", buf.String())

	buf.Reset()
	require.NoError(t, NewFormatter(JSONFormat).Format(&buf, &VersionInfo{Client: "v1.2.0", Server: "v1.3.0"}))
	assert.JSONEq(t, `{"client":"v1.2.0","server":"v1.3.0"}`, buf.String())
}
