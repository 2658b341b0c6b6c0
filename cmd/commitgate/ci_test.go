package main

import (
	"errors"
	"net/http/httptest"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"github.com/sosedoff/gitkit"

	"github.com/commitgate/commitgate/runner"
)

// TestCIMergeValidation walks the whole CI path: clone from a local
// smart-http git server, push a mainline, then validate feature branch
// commits against the merge target.
func TestCIMergeValidation(t *testing.T) {
	if testing.Short() {
		t.Skip("-short")
	}
	if runtime.GOOS == "windows" {
		t.Skip("windows not supported (gitkit uses syscall.Kill)")
	}
	if _, err := exec.LookPath("git"); err != nil {
		t.Skip("git not installed")
	}
	resetEnv(t)

	service := gitkit.New(gitkit.Config{
		Dir:        t.TempDir(),
		AutoCreate: true,
	})
	if err := service.Setup(); err != nil {
		t.Fatal(err)
	}
	ts := httptest.NewServer(service)
	defer ts.Close()

	work := t.TempDir()
	gitCmd(t, work, "clone", ts.URL+"/project.git", "clone")
	repo := filepath.Join(work, "clone")
	gitCmd(t, repo, "checkout", "-b", "main")
	gitCommit(t, repo, "feat: initial commit")
	gitCmd(t, repo, "push", "-u", "origin", "main")

	gitCmd(t, repo, "checkout", "-b", "feature/login")
	gitCommit(t, repo, "feat: add login")
	gitCommit(t, repo, "fix: handle empty password")
	inDir(t, repo)

	out, err := runGate(t, "", "--ci", "--target-branch", "main")
	if err != nil {
		t.Fatalf("expected success, got %v:\n%s", err, out)
	}
	if !strings.Contains(out, "OK") {
		t.Errorf("expected OK, got:\n%s", out)
	}

	gitCommit(t, repo, "wip")
	out, err = runGate(t, "", "--ci", "--target-branch", "main")
	var fe *runner.FailedError
	if !errors.As(err, &fe) {
		t.Fatalf("expected a validation failure, got %v:\n%s", err, out)
	}
	if fe.Verdict.Total != 3 || len(fe.Verdict.Invalid) != 1 {
		t.Errorf("unexpected verdict %+v", fe.Verdict)
	}
	if !strings.Contains(out, "does not follow conventional commit format") {
		t.Errorf("expected the failure reason, got:\n%s", out)
	}

	// merges into ungated branches are skipped entirely
	out, err = runGate(t, "", "--ci", "--target-branch", "develop")
	if err != nil {
		t.Fatalf("expected skip, got %v:\n%s", err, out)
	}
	if !strings.Contains(out, "skipping validation") {
		t.Errorf("expected the skip message, got:\n%s", out)
	}
}

// TestCIBaseRefEnv checks that the merge target falls back to
// GITHUB_BASE_REF in CI.
func TestCIBaseRefEnv(t *testing.T) {
	if testing.Short() {
		t.Skip("-short")
	}
	resetEnv(t)
	inDir(t, t.TempDir())
	t.Setenv("CI", "true")
	t.Setenv("GITHUB_BASE_REF", "develop")

	// develop isn't gated, so validation is skipped before any git call
	out, err := runGate(t, "")
	if err != nil {
		t.Fatalf("expected skip, got %v:\n%s", err, out)
	}
	if !strings.Contains(out, "skipping validation") {
		t.Errorf("expected the skip message, got:\n%s", out)
	}
}
