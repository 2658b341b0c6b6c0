package runner

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/blang/semver/v4"

	"github.com/commitgate/commitgate/commit"
)

// Impact describes what a validated batch of commits would do to the
// version number.
type Impact struct {
	ReleaseType commit.ReleaseType
	Current     semver.Version
	Next        semver.Version
	// HaveCurrent is false when the repository has no release tags yet.
	HaveCurrent bool
}

// Impact computes the release impact of acs against the repository's
// latest release tag.
func (r *Runner) Impact(ctx context.Context, acs commit.AnalyzedCommits) (*Impact, error) {
	imp := &Impact{ReleaseType: acs.ReleaseType()}
	tags, err := r.vcs.ReadTags(ctx, "v*")
	if err != nil {
		return nil, err
	}
	curr, err := commit.SemverLatest(tags, "")
	if err != nil {
		if errors.Is(err, commit.ErrNoTags) {
			return imp, nil
		}
		return nil, err
	}
	imp.Current = curr
	imp.Next = commit.NextVersion(curr, imp.ReleaseType)
	imp.HaveCurrent = true
	return imp, nil
}

// TextSummary writes the impact for humans. In bare mode only the
// release type is written, without a trailing newline, for use in shell
// substitutions.
func (imp *Impact) TextSummary(w io.Writer, bare bool) error {
	rt := strings.ToLower(imp.ReleaseType.String())
	if bare {
		_, err := io.WriteString(w, rt)
		return err
	}
	if !imp.HaveCurrent {
		_, err := fmt.Fprintf(w, "release impact: %s (no release tags found)\n", rt)
		return err
	}
	_, err := fmt.Fprintf(w, "release impact: %s (%s -> %s)\n", rt, imp.Current, imp.Next)
	return err
}

// WriteImpactJSON writes the impact in a stable wire shape.
func WriteImpactJSON(w io.Writer, imp *Impact) error {
	out := struct {
		Release string `json:"release"`
		Current string `json:"current,omitempty"`
		Next    string `json:"next,omitempty"`
	}{Release: strings.ToLower(imp.ReleaseType.String())}
	if imp.HaveCurrent {
		out.Current = imp.Current.String()
		out.Next = imp.Next.String()
	}
	b, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return err
	}
	b = append(b, '\n')
	_, err = w.Write(b)
	return err
}
