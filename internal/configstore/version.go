package configstore

import (
	"fmt"
	"strings"

	"github.com/Masterminds/semver/v3"
)

// GeneratorSkew compares the generator version recorded in settings against
// the running CLI version. It returns a warning message when the on-disk
// configuration was produced by a newer generator, which usually means a
// regeneration with this binary would downgrade the file formats. Returns
// ("", false) when versions are missing, unparsable, or compatible.
func GeneratorSkew(settings *Settings, currentVersion string) (string, bool) {
	if settings == nil || settings.GeneratedBy == "" {
		return "", false
	}

	recorded, err := parseVersion(settings.GeneratedBy)
	if err != nil {
		return "", false
	}
	current, err := parseVersion(currentVersion)
	if err != nil {
		return "", false
	}

	if recorded.GreaterThan(current) {
		return fmt.Sprintf("configuration was generated by v%s but this CLI is v%s; regenerating may downgrade formats",
			recorded, current), true
	}
	return "", false
}

// parseVersion extracts a semver from strings like "claudekit v1.2.0",
// "v1.2.0", or "1.2.0".
func parseVersion(s string) (*semver.Version, error) {
	fields := strings.Fields(s)
	candidate := s
	if len(fields) > 0 {
		candidate = fields[len(fields)-1]
	}
	return semver.NewVersion(strings.TrimPrefix(candidate, "v"))
}
