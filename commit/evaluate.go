package commit

import (
	"fmt"
	"strings"
)

// ReasonNotConventional is the fixed diagnostic for messages that do
// not parse as conventional commits.
const ReasonNotConventional = "does not follow conventional commit format"

// Entry pairs a parsed message with the identifier failure reports use
// for it: a commit hash, "the PR title", "message 2", and so on.
type Entry struct {
	ID     string
	Commit ParsedCommit
}

// InvalidEntry describes one message that failed validation. The JSON
// field names are a compatibility contract with report consumers; don't
// rename them.
type InvalidEntry struct {
	Identifier string `json:"identifier"`
	HeaderText string `json:"headerText"`
	Reason     string `json:"reason"`
}

// Verdict aggregates one validation run. Invalid is never nil, so the
// JSON form always carries a list.
type Verdict struct {
	AllValid bool           `json:"allValid"`
	Total    int            `json:"total"`
	Invalid  []InvalidEntry `json:"invalid"`
}

// Evaluator applies configured allow-lists to parsed messages.
// AllowedTypes is always consulted: an empty list allows no types at
// all. AllowedScopes is optional: an empty list disables the scope
// check.
type Evaluator struct {
	AllowedTypes  []string
	AllowedScopes []string
}

// Evaluate classifies entries in order and aggregates the result. Each
// message gets at most one failure reason: malformed messages fail
// before the type check, and the type check before the scope check. No
// entries at all is a pass.
func (e Evaluator) Evaluate(entries []Entry) *Verdict {
	v := &Verdict{
		Total:   len(entries),
		Invalid: []InvalidEntry{},
	}
	for _, ent := range entries {
		reason, ok := e.classify(ent.Commit)
		if ok {
			continue
		}
		v.Invalid = append(v.Invalid, InvalidEntry{
			Identifier: ent.ID,
			HeaderText: ent.Commit.RawHeader,
			Reason:     reason,
		})
	}
	v.AllValid = len(v.Invalid) == 0
	return v
}

func (e Evaluator) classify(pc ParsedCommit) (string, bool) {
	if !pc.Conventional() {
		return ReasonNotConventional, false
	}
	if !oneOfFold(pc.Type, e.AllowedTypes) {
		return fmt.Sprintf("type '%s' is not allowed; allowed types: %s",
			pc.Type, strings.Join(e.AllowedTypes, ", ")), false
	}
	if pc.Scope != "" && len(e.AllowedScopes) > 0 && !oneOf(pc.Scope, e.AllowedScopes) {
		return fmt.Sprintf("scope '%s' is not allowed; allowed scopes: %s",
			pc.Scope, strings.Join(e.AllowedScopes, ", ")), false
	}
	return "", true
}

// Evaluate checks entries against a commit type allow-list.
func Evaluate(entries []Entry, allowedTypes []string) *Verdict {
	return Evaluator{AllowedTypes: allowedTypes}.Evaluate(entries)
}

func oneOf(s string, cands []string) bool {
	for _, cand := range cands {
		if s == cand {
			return true
		}
	}
	return false
}

func oneOfFold(s string, cands []string) bool {
	for _, cand := range cands {
		if strings.EqualFold(s, cand) {
			return true
		}
	}
	return false
}
