// Package gitcli implements vcs.Interface using the git commandline
// tool.
package gitcli

import (
	"bufio"
	"bytes"
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/commitgate/commitgate/config"
	"github.com/commitgate/commitgate/model"
	"github.com/commitgate/commitgate/vcs"
)

// Git reads repository data by shelling out to the git binary.
type Git struct {
	cfg config.Config
	wd  string
}

// New returns a Git rooted at wd. An empty wd means the process working
// directory.
func New(cfg config.Config, wd string) *Git {
	return &Git{cfg: cfg, wd: wd}
}

var _ vcs.Interface = (*Git)(nil)

func (g *Git) Fetch(ctx context.Context, upstream, ref string) error {
	if upstream == "" {
		upstream = "origin"
	}
	args := []string{"fetch", upstream}
	if ref != "" {
		args = append(args, ref)
	}
	_, err := g.call(ctx, args)
	return err
}

const (
	logStart  = "_START_"
	logSep    = "_SEP_"
	logEnd    = "_END_"
	logFields = 9
)

var logFormat = strings.Join([]string{
	"%H", "%aN", "%ae", "%aI", "%cN", "%ce", "%cI", "%s", "%b",
}, logSep)

// ReadCommits returns the commits named by query, a rev-list expression
// like "v1.2.3..HEAD". An empty query means the current branch history.
func (g *Git) ReadCommits(ctx context.Context, query string) ([]*model.Commit, error) {
	args := []string{"log", "--pretty=tformat:" + logStart + logFormat + logEnd}
	if query != "" {
		args = append(args, query)
	}
	b, err := g.call(ctx, args)
	if err != nil {
		return nil, err
	}
	return parseLog(b)
}

func parseLog(b []byte) ([]*model.Commit, error) {
	var commits []*model.Commit
	for _, chunk := range strings.Split(string(b), logStart) {
		chunk = strings.TrimSpace(chunk)
		if chunk == "" {
			continue
		}
		if !strings.HasSuffix(chunk, logEnd) {
			return nil, fmt.Errorf("gitcli: malformed log entry: %q", chunk)
		}
		parts := strings.Split(strings.TrimSuffix(chunk, logEnd), logSep)
		if len(parts) != logFields {
			return nil, fmt.Errorf("gitcli: expected %d log fields, got %d", logFields, len(parts))
		}
		authorDate, err := time.Parse(time.RFC3339, parts[3])
		if err != nil {
			return nil, fmt.Errorf("gitcli: author date: %w", err)
		}
		committerDate, err := time.Parse(time.RFC3339, parts[6])
		if err != nil {
			return nil, fmt.Errorf("gitcli: committer date: %w", err)
		}
		commits = append(commits, &model.Commit{
			ID:             parts[0],
			Author:         parts[1],
			AuthorEmail:    parts[2],
			AuthorDate:     authorDate,
			Committer:      parts[4],
			CommitterEmail: parts[5],
			CommitterDate:  committerDate,
			Subject:        parts[7],
			Body:           strings.TrimSpace(parts[8]),
		})
	}
	return commits, nil
}

func (g *Git) ReadTags(ctx context.Context, query string) ([]string, error) {
	args := []string{"tag", "-l"}
	if query != "" {
		args = append(args, query)
	}
	b, err := g.call(ctx, args)
	if err != nil {
		return nil, err
	}
	var tags []string
	sc := bufio.NewScanner(bytes.NewReader(b))
	for sc.Scan() {
		if line := strings.TrimSpace(sc.Text()); line != "" {
			tags = append(tags, line)
		}
	}
	return tags, sc.Err()
}

func (g *Git) CurrentBranch(ctx context.Context) (string, error) {
	b, err := g.call(ctx, []string{"rev-parse", "--abbrev-ref", "HEAD"})
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(b)), nil
}

// GetMainBranch asks the origin remote what its HEAD is, then falls
// back to probing candidates as local branches.
func (g *Git) GetMainBranch(ctx context.Context, candidates []string) (string, error) {
	if b, err := g.call(ctx, []string{"symbolic-ref", "--short", "refs/remotes/origin/HEAD"}); err == nil {
		ref := strings.TrimSpace(string(b))
		if ref != "" {
			return strings.TrimPrefix(ref, "origin/"), nil
		}
	}
	for _, cand := range candidates {
		if _, err := g.call(ctx, []string{"rev-parse", "--verify", "--quiet", "refs/heads/" + cand}); err == nil {
			return cand, nil
		}
	}
	return "", vcs.NotFoundError{Ref: strings.Join(candidates, "|")}
}
