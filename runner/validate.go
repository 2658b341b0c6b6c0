package runner

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/commitgate/commitgate/commit"
	"github.com/commitgate/commitgate/model"
)

// PRTitleID is the identifier pull request titles are reported under.
const PRTitleID = "the PR title"

// StdinID is the identifier messages read from stdin are reported
// under.
const StdinID = "stdin"

// FailedError is returned when validation ran to completion and at
// least one message failed. Infrastructure problems (git, config) are
// ordinary errors; the two are never conflated.
type FailedError struct {
	Verdict *commit.Verdict
}

func (e *FailedError) Error() string {
	return fmt.Sprintf("%d of %d messages failed validation", len(e.Verdict.Invalid), e.Verdict.Total)
}

func (e *FailedError) Is(other error) bool {
	_, ok := other.(*FailedError)
	return ok
}

// Result is one completed validation run. The verdict says what passed;
// Commits carries the analyzed batch for impact and stats reporting.
type Result struct {
	Verdict *commit.Verdict
	Commits commit.AnalyzedCommits
}

// ValidateCommits validates the commits query names. An empty query is
// resolved from the configuration and repository state. The returned
// error is always infrastructural; failed messages live in the
// Result's verdict.
func (r *Runner) ValidateCommits(ctx context.Context, query string) (*Result, error) {
	if query == "" {
		var err error
		query, err = r.resolveQuery(ctx)
		if err != nil {
			return nil, err
		}
	}
	if query == "" {
		r.cfg.Debugf("validating the full history")
	} else {
		r.cfg.Debugf("validating %s", query)
	}
	commits, err := r.vcs.ReadCommits(ctx, query)
	if err != nil {
		return nil, err
	}
	for _, mc := range commits {
		r.cfg.Debugf("%s %s", mc.ShortID(), mc.Subject)
	}
	acs := r.analyzer.AnalyzeAll(commits)
	ids := make([]string, len(acs))
	for i, ac := range acs {
		ids[i] = ac.ID
	}
	return r.evaluate(acs, ids), nil
}

// ValidateTitle validates a single pull request title.
func (r *Runner) ValidateTitle(ctx context.Context, title string) (*Result, error) {
	acs := r.analyzer.AnalyzeAll([]*model.Commit{parseMessage(title)})
	return r.evaluate(acs, []string{PRTitleID}), nil
}

// ValidateMessages validates ad-hoc messages. Reports identify them by
// position: "message 1", "message 2", and so on.
func (r *Runner) ValidateMessages(ctx context.Context, msgs []string) (*Result, error) {
	commits := make([]*model.Commit, len(msgs))
	ids := make([]string, len(msgs))
	for i, msg := range msgs {
		commits[i] = parseMessage(msg)
		ids[i] = fmt.Sprintf("message %d", i+1)
	}
	acs := r.analyzer.AnalyzeAll(commits)
	return r.evaluate(acs, ids), nil
}

// ValidateReader validates a single message read from rd, typically
// stdin fed by a commit-msg hook.
func (r *Runner) ValidateReader(ctx context.Context, rd io.Reader) (*Result, error) {
	raw, err := io.ReadAll(rd)
	if err != nil {
		return nil, err
	}
	acs := r.analyzer.AnalyzeAll([]*model.Commit{parseMessage(string(raw))})
	return r.evaluate(acs, []string{StdinID}), nil
}

func (r *Runner) evaluate(acs commit.AnalyzedCommits, ids []string) *Result {
	entries := make([]commit.Entry, len(acs))
	for i, ac := range acs {
		entries[i] = commit.Entry{ID: ids[i], Commit: ac.Parsed}
	}
	ev := commit.Evaluator{
		AllowedTypes:  r.cfg.GetAllowedTypes(),
		AllowedScopes: r.cfg.AllowedScopes,
	}
	return &Result{Verdict: ev.Evaluate(entries), Commits: acs}
}

// parseMessage splits a raw message into subject and body the way git
// does, dropping comment lines so .git/COMMIT_EDITMSG can be piped
// straight in.
func parseMessage(s string) *model.Commit {
	lines := strings.Split(s, "\n")
	var body []string
	for _, line := range lines[1:] {
		if strings.HasPrefix(line, "#") {
			continue
		}
		body = append(body, line)
	}
	return &model.Commit{
		Subject: strings.TrimSuffix(lines[0], "\r"),
		Body:    strings.Trim(strings.Join(body, "\n"), "\r\n"),
	}
}
