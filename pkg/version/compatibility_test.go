package version

import (
	"testing"

	api "github.com/flightctl/romannumeral/api/v1"
	"github.com/stretchr/testify/assert"
)

func TestCheckCompatibility(t *testing.T) {
	tests := []struct {
		name    string
		local   string
		server  *api.Version
		wantErr bool
	}{
		{name: "nil server version", local: "v1.2.0", server: nil},
		{name: "same version", local: "v1.2.0", server: &api.Version{Version: "v1.2.0"}},
		{name: "minor within window", local: "v1.4.0", server: &api.Version{Version: "1.2.3"}},
		{name: "minor outside window", local: "v1.5.0", server: &api.Version{Version: "v1.2.0"}, wantErr: true},
		{name: "major mismatch", local: "v2.0.0", server: &api.Version{Version: "v1.0.0"}, wantErr: true},
		{name: "release candidate suffix", local: "v0.9.1-rc.0", server: &api.Version{Version: "v0.9.0"}},
		{name: "unparseable local", local: "dev", server: &api.Version{Version: "v9.0.0"}},
		{name: "unparseable server", local: "v1.0.0", server: &api.Version{Version: "latest"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := &CompatibilityChecker{local: Info{GitVersion: tt.local}}
			err := c.CheckCompatibility(tt.server)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestInfoString(t *testing.T) {
	assert.Equal(t, "v1.0.0", Info{GitVersion: "v1.0.0"}.String())
	assert.Equal(t, "v1.0.0 (abc123)", Info{GitVersion: "v1.0.0", GitCommit: "abc123"}.String())
}
