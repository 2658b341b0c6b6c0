package runner

import (
	"context"
	"strings"
	"testing"

	"github.com/commitgate/commitgate/model"
	"github.com/commitgate/commitgate/vcs"
)

func TestStats(t *testing.T) {
	m := vcs.NewMock().SetCommits(
		&model.Commit{ID: "a", Subject: "feat(api): one"},
		&model.Commit{ID: "b", Subject: "feat: two"},
		&model.Commit{ID: "c", Subject: "fix(api): three"},
		&model.Commit{ID: "d", Subject: "bogus four"},
	)
	r := testRunner(t, nil, m)
	res, err := r.ValidateCommits(context.Background(), "HEAD")
	if err != nil {
		t.Fatal(err)
	}

	stats := r.Stats(res.Commits)
	if stats.Commits != 4 {
		t.Errorf("expected 4 commits, got %d", stats.Commits)
	}
	if sc := stats.findCount("commit_type", "feat"); sc == nil || sc.Count != 2 {
		t.Errorf("expected 2 feat commits, got %+v", sc)
	}
	if sc := stats.findCount("scope", "api"); sc == nil || sc.Count != 2 {
		t.Errorf("expected 2 api scopes, got %+v", sc)
	}
	if sc := stats.findCount("scope", "n/a"); sc == nil || sc.Count != 1 {
		t.Errorf("expected 1 unscoped commit, got %+v", sc)
	}
	if sc := stats.findCount("valid", "no"); sc == nil || sc.Count != 1 {
		t.Errorf("expected 1 invalid commit, got %+v", sc)
	}
	if sc := stats.findCount("release_type", "MINOR"); sc == nil || sc.Count != 2 {
		t.Errorf("expected 2 MINOR commits, got %+v", sc)
	}

	var b strings.Builder
	if err := stats.TextSummary(&b); err != nil {
		t.Fatal(err)
	}
	out := b.String()
	for _, expect := range []string{"4 commits", "Commit Type:", "Release Type:", "Valid:"} {
		if !strings.Contains(out, expect) {
			t.Errorf("expected summary to contain %q:\n%s", expect, out)
		}
	}
}
