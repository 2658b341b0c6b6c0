package vcs

import (
	"context"
	"path/filepath"
	"time"

	"github.com/commitgate/commitgate/model"
)

// Mock is a fake vcs for testing. Setters chain and record enough state
// to assert on afterwards.
type Mock struct {
	now       time.Time
	tags      []string
	commits   []*model.Commit
	branch    string
	main      string
	err       error
	lastQuery string
	fetched   []string
}

func NewMock() *Mock {
	return &Mock{
		now:    time.Now(),
		branch: "main",
		main:   "main",
	}
}

func (m *Mock) SetTags(tags ...string) *Mock {
	m.tags = tags
	return m
}

func (m *Mock) SetCommits(commits ...*model.Commit) *Mock {
	for _, c := range commits {
		if c.CommitterDate.IsZero() {
			c.CommitterDate = m.now
		}
	}
	m.commits = commits
	return m
}

// SetBranch sets the checked out branch and the resolved main branch.
func (m *Mock) SetBranch(curr, main string) *Mock {
	m.branch = curr
	m.main = main
	return m
}

// SetErr makes every call fail with err, for exercising infrastructure
// failure paths.
func (m *Mock) SetErr(err error) *Mock {
	m.err = err
	return m
}

// LastQuery returns the query from the most recent ReadCommits call.
func (m *Mock) LastQuery() string { return m.lastQuery }

// Fetched returns "upstream ref" strings for each Fetch call.
func (m *Mock) Fetched() []string { return m.fetched }

func (m *Mock) Fetch(ctx context.Context, upstream, ref string) error {
	if m.err != nil {
		return m.err
	}
	m.fetched = append(m.fetched, upstream+" "+ref)
	return nil
}

func (m *Mock) ReadCommits(ctx context.Context, query string) ([]*model.Commit, error) {
	if m.err != nil {
		return nil, m.err
	}
	m.lastQuery = query
	return m.commits, nil
}

func (m *Mock) ReadTags(ctx context.Context, query string) ([]string, error) {
	if m.err != nil {
		return nil, m.err
	}
	var tags []string
	for _, tag := range m.tags {
		if query == "" {
			tags = append(tags, tag)
			continue
		}
		ok, err := filepath.Match(query, tag)
		if err != nil {
			return nil, err
		}
		if ok {
			tags = append(tags, tag)
		}
	}
	return tags, nil
}

func (m *Mock) CurrentBranch(ctx context.Context) (string, error) {
	if m.err != nil {
		return "", m.err
	}
	return m.branch, nil
}

func (m *Mock) GetMainBranch(ctx context.Context, candidates []string) (string, error) {
	if m.err != nil {
		return "", m.err
	}
	if m.main != "" {
		return m.main, nil
	}
	if len(candidates) > 0 {
		return candidates[0], nil
	}
	return "", NotFoundError{Ref: "HEAD"}
}

var _ Interface = (*Mock)(nil)
