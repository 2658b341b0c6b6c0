package commit

import (
	"errors"
	"strings"

	"github.com/blang/semver/v4"
)

// ErrNoTags means no release tags could be found for the repository.
var ErrNoTags = errors.New("commit: no release tags found")

// SemverLatest returns the newest stable version among tags. Tags that
// don't parse as semver are skipped, as are prereleases. A "v" prefix
// is stripped before parsing, as is prefix when set (for repositories
// that tag releases like "myproject/v1.2.3").
func SemverLatest(tags []string, prefix string) (semver.Version, error) {
	var versions []semver.Version
	for _, tag := range tags {
		if prefix != "" {
			if !strings.HasPrefix(tag, prefix) {
				continue
			}
			tag = strings.TrimPrefix(tag, prefix)
		}
		tag = strings.TrimPrefix(tag, "v")

		v, err := semver.Parse(tag)
		if err != nil {
			continue
		}
		if len(v.Pre) > 0 {
			continue
		}
		versions = append(versions, v)
	}

	semver.Sort(versions)
	if len(versions) > 0 {
		return versions[len(versions)-1], nil
	}
	return semver.Version{}, ErrNoTags
}

// NextVersion bumps curr according to rt. SKIP returns curr unchanged.
func NextVersion(curr semver.Version, rt ReleaseType) semver.Version {
	switch rt {
	case ReleaseMajor:
		return semver.Version{Major: curr.Major + 1}
	case ReleaseMinor:
		return semver.Version{Major: curr.Major, Minor: curr.Minor + 1}
	case ReleasePatch:
		return semver.Version{Major: curr.Major, Minor: curr.Minor, Patch: curr.Patch + 1}
	}
	return curr
}
