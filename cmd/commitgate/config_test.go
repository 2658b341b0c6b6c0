package main

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/commitgate/commitgate/runner"
)

func TestInvalidFlags(t *testing.T) {
	tcs := []struct {
		name    string
		args    []string
		wantErr string
	}{
		{
			name:    "bad format",
			args:    []string{"-m", "feat: x", "-F", "xml"},
			wantErr: "invalid format",
		},
		{
			name:    "unknown policy",
			args:    []string{"-m", "feat: x", "--policy", "corporate"},
			wantErr: `unknown policy "corporate"`,
		},
		{
			name:    "title and message",
			args:    []string{"-T", "feat: x", "-m", "feat: y"},
			wantErr: "mutually exclusive",
		},
		{
			name:    "impact with title",
			args:    []string{"-T", "feat: x", "--impact"},
			wantErr: "--impact",
		},
		{
			name:    "impact with message",
			args:    []string{"-m", "feat: x", "--impact"},
			wantErr: "--impact",
		},
	}

	for _, tc := range tcs {
		t.Run(tc.name, func(t *testing.T) {
			resetEnv(t)
			inDir(t, t.TempDir())
			_, err := runGate(t, "", tc.args...)
			if err == nil {
				t.Fatal("expected an error")
			}
			if errors.Is(err, &runner.FailedError{}) {
				t.Fatal("configuration mistakes must not look like validation failures")
			}
			if !strings.Contains(err.Error(), tc.wantErr) {
				t.Errorf("expected error containing %q, got %q", tc.wantErr, err.Error())
			}
		})
	}
}

func TestInvalidConfigFile(t *testing.T) {
	resetEnv(t)
	dir := t.TempDir()
	doc := "allowed_typo: [feat]\n"
	if err := os.WriteFile(filepath.Join(dir, "commitgate.yaml"), []byte(doc), 0644); err != nil {
		t.Fatal(err)
	}
	inDir(t, dir)

	_, err := runGate(t, "", "-m", "feat: x")
	if err == nil {
		t.Fatal("expected a config error")
	}
	if errors.Is(err, &runner.FailedError{}) {
		t.Fatal("a config error must not look like a validation failure")
	}
	if !strings.Contains(err.Error(), "allowed_typo") {
		t.Errorf("expected the bad key in the error, got %q", err.Error())
	}
}

func TestExplicitConfigFile(t *testing.T) {
	resetEnv(t)
	dir := t.TempDir()
	p := filepath.Join(dir, "rules.yaml")
	if err := os.WriteFile(p, []byte("allowed_types: [feat]\n"), 0644); err != nil {
		t.Fatal(err)
	}
	inDir(t, t.TempDir())

	_, err := runGate(t, "", "-c", p, "-m", "fix: rejected by the file")
	var fe *runner.FailedError
	if !errors.As(err, &fe) {
		t.Fatalf("expected a validation failure, got %v", err)
	}

	if _, err := runGate(t, "", "-c", filepath.Join(dir, "missing.yaml"), "-m", "feat: x"); err == nil {
		t.Fatal("expected an error for a missing explicit config file")
	}
}
