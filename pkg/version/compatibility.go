package version

import (
	"fmt"
	"strconv"
	"strings"

	api "github.com/flightctl/romannumeral/api/v1"
)

// Client should be within 2 minor versions of the server
const MinorVersionCompatibility = 2

// CompatibilityChecker compares the local binary version against a server version.
type CompatibilityChecker struct {
	local Info
}

func NewCompatibilityChecker() *CompatibilityChecker {
	return &CompatibilityChecker{local: Get()}
}

// CheckCompatibility returns an error when the major versions differ or the
// minor versions drift further apart than MinorVersionCompatibility.
// Versions that cannot be parsed are treated as compatible.
func (c *CompatibilityChecker) CheckCompatibility(server *api.Version) error {
	if server == nil {
		return nil
	}

	localMajor, localMinor, err := parseVersion(c.local.GitVersion)
	if err != nil {
		return nil
	}
	serverMajor, serverMinor, err := parseVersion(server.Version)
	if err != nil {
		return nil
	}

	if localMajor != serverMajor {
		return fmt.Errorf("version incompatibility detected: client %s vs server %s (different major versions)",
			c.local.GitVersion, server.Version)
	}
	if delta := localMinor - serverMinor; delta > MinorVersionCompatibility || delta < -MinorVersionCompatibility {
		return fmt.Errorf("version incompatibility detected: client %s vs server %s (minor delta exceeds ±%d)",
			c.local.GitVersion, server.Version, MinorVersionCompatibility)
	}
	return nil
}

// parseVersion accepts "v1.2.3", "0.5", "0.9.1-rc.0" and similar.
func parseVersion(s string) (major, minor int, err error) {
	s = strings.TrimPrefix(strings.TrimSpace(s), "v")
	parts := strings.Split(s, ".")
	if len(parts) < 2 {
		return 0, 0, fmt.Errorf("invalid version format: %s", s)
	}

	majorStr, _, _ := strings.Cut(parts[0], "-")
	if major, err = strconv.Atoi(majorStr); err != nil {
		return 0, 0, fmt.Errorf("invalid major version: %s", majorStr)
	}
	minorStr, _, _ := strings.Cut(parts[1], "-")
	if minor, err = strconv.Atoi(minorStr); err != nil {
		return 0, 0, fmt.Errorf("invalid minor version: %s", minorStr)
	}
	return major, minor, nil
}
