// Package vcs abstracts version control systems. Currently just git.
package vcs

import (
	"context"
	"fmt"

	"github.com/commitgate/commitgate/model"
)

// NotFoundError is returned when a ref can't be resolved.
type NotFoundError struct {
	Ref string
}

func (e NotFoundError) Error() string {
	return fmt.Sprintf("vcs: ref %q not found", e.Ref)
}

// Interface is the read-only slice of a version control system that
// message validation needs: commit messages for a revision range, tags,
// and branch resolution. Validation never writes to the repository.
type Interface interface {
	// Fetch updates refs for upstream from the remote. ref may be empty.
	Fetch(ctx context.Context, upstream, ref string) error
	// ReadCommits returns the commits query names, most recent first.
	ReadCommits(ctx context.Context, query string) ([]*model.Commit, error)
	// ReadTags returns tag names matching query.
	ReadTags(ctx context.Context, query string) ([]string, error)
	// CurrentBranch returns the name of the checked out branch.
	CurrentBranch(ctx context.Context) (string, error)
	// GetMainBranch resolves the mainline branch, preferring what the
	// remote reports and falling back to candidates.
	GetMainBranch(ctx context.Context, candidates []string) (string, error)
}
