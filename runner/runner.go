// Package runner ties configuration, vcs access and commit analysis
// together for commandline executions.
package runner

import (
	"context"
	"errors"
	"fmt"

	"github.com/commitgate/commitgate/commit"
	"github.com/commitgate/commitgate/config"
	"github.com/commitgate/commitgate/vcs"
)

// Runner validates commit messages from a repository, a pull request
// title, or raw message text, according to one Config.
type Runner struct {
	cfg      config.Config
	vcs      vcs.Interface
	analyzer *commit.Analyzer
}

// New returns a Runner. Policy configuration is checked here so
// mistakes surface before any repository access.
func New(cfg config.Config, vc vcs.Interface) (*Runner, error) {
	analyzer, err := commit.NewAnalyzer(cfg)
	if err != nil {
		return nil, err
	}
	return &Runner{cfg: cfg, vcs: vc, analyzer: analyzer}, nil
}

// SkipBranch reports whether validation should be skipped because the
// merge target is not one of the gated branches. An empty target (not
// running against a merge) never skips.
func (r *Runner) SkipBranch(target string) bool {
	if target == "" || len(r.cfg.Branches) == 0 {
		return false
	}
	for _, branch := range r.cfg.Branches {
		if branch == target {
			return false
		}
	}
	return true
}

// resolveQuery picks the revision range to validate when the caller
// didn't name one. With a merge target configured the range is the
// commits the merge would add. Otherwise, on the mainline branch, it is
// everything since the last release tag; on any other branch, the
// commits not yet on the mainline.
func (r *Runner) resolveQuery(ctx context.Context) (string, error) {
	if target := r.cfg.TargetBranch; target != "" {
		if r.cfg.InCI {
			if err := r.vcs.Fetch(ctx, "origin", target); err != nil {
				return "", err
			}
		}
		return "origin/" + target + "..HEAD", nil
	}

	main, err := r.mainBranch(ctx)
	if err != nil {
		return "", err
	}
	curr, err := r.vcs.CurrentBranch(ctx)
	if err != nil {
		return "", err
	}
	if curr != main {
		return main + "..HEAD", nil
	}
	return r.sinceLatestRelease(ctx)
}

func (r *Runner) mainBranch(ctx context.Context) (string, error) {
	candidates := r.cfg.Branches
	if r.cfg.InCI && !r.cfg.BranchesSet {
		// in CI, trust the remote over the builtin default
		candidates = nil
	}
	branch, err := r.vcs.GetMainBranch(ctx, candidates)
	if err != nil {
		r.cfg.Debugf("resolving main branch failed (%v), trying %v", err, r.cfg.Branches)
		return r.vcs.GetMainBranch(ctx, r.cfg.Branches)
	}
	return branch, nil
}

func (r *Runner) sinceLatestRelease(ctx context.Context) (string, error) {
	tags, err := r.vcs.ReadTags(ctx, "v*")
	if err != nil {
		return "", err
	}
	latest, err := commit.SemverLatest(tags, "")
	if errors.Is(err, commit.ErrNoTags) {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("v%s..HEAD", latest), nil
}
