package service

import (
	"context"

	api "github.com/flightctl/romannumeral/api/v1"
	"github.com/flightctl/romannumeral/pkg/version"
)

// (GET /api/version)
func (h *ServiceHandler) GetVersion(ctx context.Context) api.Version {
	versionInfo := version.Get()
	return api.Version{
		Version:   versionInfo.GitVersion,
		GitCommit: versionInfo.GitCommit,
		BuildDate: versionInfo.BuildDate,
	}
}
