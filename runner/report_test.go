package runner

import (
	"context"
	"strings"
	"testing"

	"github.com/commitgate/commitgate/vcs"
)

func TestWriteVerdict(t *testing.T) {
	r := testRunner(t, nil, vcs.NewMock())
	res, err := r.ValidateMessages(context.Background(), []string{
		"feat: fine",
		"bogus",
		"wild: unknown type",
	})
	if err != nil {
		t.Fatal(err)
	}

	var b strings.Builder
	if err := WriteVerdict(&b, res.Verdict); err != nil {
		t.Fatal(err)
	}
	expect := `message 2: "bogus"
  does not follow conventional commit format
message 3: "wild: unknown type"
  type 'wild' is not allowed; allowed types: feat, fix, docs, style, refactor, perf, test, build, ci, chore, revert

2 of 3 messages failed validation
`
	if b.String() != expect {
		t.Errorf("expected:\n%s\ngot:\n%s", expect, b.String())
	}
}

func TestWriteVerdictAllValid(t *testing.T) {
	r := testRunner(t, nil, vcs.NewMock())
	res, err := r.ValidateMessages(context.Background(), []string{"feat: fine"})
	if err != nil {
		t.Fatal(err)
	}
	var b strings.Builder
	if err := WriteVerdict(&b, res.Verdict); err != nil {
		t.Fatal(err)
	}
	if b.String() != "" {
		t.Errorf("expected no output for a passing verdict, got %q", b.String())
	}
}

func TestWriteVerdictJSON(t *testing.T) {
	r := testRunner(t, nil, vcs.NewMock())
	res, err := r.ValidateMessages(context.Background(), []string{"bogus"})
	if err != nil {
		t.Fatal(err)
	}
	var b strings.Builder
	if err := WriteVerdictJSON(&b, res.Verdict); err != nil {
		t.Fatal(err)
	}
	expect := `{
  "allValid": false,
  "total": 1,
  "invalid": [
    {
      "identifier": "message 1",
      "headerText": "bogus",
      "reason": "does not follow conventional commit format"
    }
  ]
}
`
	if b.String() != expect {
		t.Errorf("expected:\n%s\ngot:\n%s", expect, b.String())
	}
}

func TestWriteVerdictJSONEmptyInvalid(t *testing.T) {
	r := testRunner(t, nil, vcs.NewMock())
	res, err := r.ValidateMessages(context.Background(), nil)
	if err != nil {
		t.Fatal(err)
	}
	var b strings.Builder
	if err := WriteVerdictJSON(&b, res.Verdict); err != nil {
		t.Fatal(err)
	}
	expect := `{
  "allValid": true,
  "total": 0,
  "invalid": []
}
`
	if b.String() != expect {
		t.Errorf("expected:\n%s\ngot:\n%s", expect, b.String())
	}
}
