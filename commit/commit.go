// Package commit contains code for parsing and evaluating commit
// messages.
package commit

import "fmt"

// ReleaseType is the version impact a commit implies under semantic
// versioning.
type ReleaseType int

const (
	_ ReleaseType = iota
	ReleaseSkip
	ReleasePatch
	ReleaseMinor
	ReleaseMajor
)

func (rt ReleaseType) String() string {
	switch rt {
	case ReleaseSkip:
		return "SKIP"
	case ReleasePatch:
		return "PATCH"
	case ReleaseMinor:
		return "MINOR"
	case ReleaseMajor:
		return "MAJOR"
	}
	return "<INVALID>"
}

func parseReleaseType(s string) (ReleaseType, error) {
	switch s {
	case "SKIP":
		return ReleaseSkip, nil
	case "PATCH":
		return ReleasePatch, nil
	case "MINOR":
		return ReleaseMinor, nil
	case "MAJOR":
		return ReleaseMajor, nil
	}
	return 0, fmt.Errorf("commit: unknown release type %q", s)
}
