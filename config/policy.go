package config

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"regexp"
	"strings"
)

// Policy describes one commit message grammar: the header format, how
// body annotations (footers) start, which annotations mark breaking
// changes, and how commit types map to release impacts.
type Policy struct {
	Name                  string            `json:"name,omitempty"`
	SubjectRE             string            `json:"subject_regex,omitempty"`
	BodyAnnotationStartRE string            `json:"body_annotation_start_regex,omitempty"`
	BreakingChangeTypes   []string          `json:"breaking_change_types,omitempty"`
	CommitTypes           map[string]string `json:"commit_types,omitempty"`
	FallbackReleaseType   string            `json:"fallback_release_type,omitempty"`

	subjectRE *regexp.Regexp
	bodyRE    *regexp.Regexp
}

// GetSubjectRE returns the compiled header regex. Call Validate first
// when the policy comes from user configuration.
func (p *Policy) GetSubjectRE() *regexp.Regexp {
	if p.subjectRE == nil && p.SubjectRE != "" {
		p.subjectRE = regexp.MustCompile(p.SubjectRE)
	}
	return p.subjectRE
}

// GetBodyAnnotationRE returns the compiled annotation regex, or nil
// when the policy doesn't parse annotations.
func (p *Policy) GetBodyAnnotationRE() *regexp.Regexp {
	if p.bodyRE == nil && p.BodyAnnotationStartRE != "" {
		p.bodyRE = regexp.MustCompile(p.BodyAnnotationStartRE)
	}
	return p.bodyRE
}

// Validate checks that the policy's regexes compile and that the header
// regex captures the named groups parsing depends on.
func (p *Policy) Validate() error {
	if p.SubjectRE == "" {
		return errors.New("subject_regex is required")
	}
	re, err := regexp.Compile(p.SubjectRE)
	if err != nil {
		return fmt.Errorf("subject_regex: %w", err)
	}
	if re.SubexpIndex("type") < 0 || re.SubexpIndex("subject") < 0 {
		return errors.New("subject_regex must capture named groups 'type' and 'subject'")
	}
	if p.BodyAnnotationStartRE != "" {
		if _, err := regexp.Compile(p.BodyAnnotationStartRE); err != nil {
			return fmt.Errorf("body_annotation_start_regex: %w", err)
		}
	}
	return nil
}

// TextSummary writes a human-readable description of the policy.
func (p *Policy) TextSummary(w io.Writer) error {
	bw := bufio.NewWriter(w)
	name := p.Name
	if name == "" {
		name = "(custom)"
	}
	fmt.Fprintf(bw, "policy %s:\n", name)
	fmt.Fprintf(bw, "  header: %s\n", p.SubjectRE)
	if p.BodyAnnotationStartRE != "" {
		fmt.Fprintf(bw, "  annotations: %s\n", p.BodyAnnotationStartRE)
	}
	if len(p.BreakingChangeTypes) > 0 {
		fmt.Fprintf(bw, "  breaking annotations: %s\n", strings.Join(p.BreakingChangeTypes, ", "))
	}
	if len(p.CommitTypes) > 0 {
		fmt.Fprintf(bw, "  release types:\n")
		for _, typ := range sortedKeys(p.CommitTypes) {
			fmt.Fprintf(bw, "    %s: %s\n", typ, p.CommitTypes[typ])
		}
	}
	return bw.Flush()
}

var builtinPolicies = []Policy{
	{
		Name:                  "conventional",
		SubjectRE:             `^(?P<type>\w+)(?:\((?P<scope>[^)]+)\))?(?P<breaking>!)?:\s+(?P<subject>.+)$`,
		BodyAnnotationStartRE: `^(?P<name>[A-Z][A-Z -]*): `,
		BreakingChangeTypes:   []string{"BREAKING CHANGE", "BREAKING-CHANGE"},
		CommitTypes: map[string]string{
			"feat":     "MINOR",
			"fix":      "PATCH",
			"revert":   "PATCH",
			"perf":     "PATCH",
			"refactor": "PATCH",
			"style":    "PATCH",
			"docs":     "SKIP",
			"test":     "SKIP",
			"build":    "SKIP",
			"ci":       "SKIP",
			"chore":    "SKIP",
		},
	},
}

// DefaultPolicy returns the builtin conventional commit policy.
func DefaultPolicy() *Policy {
	return getBuiltinPolicy("conventional")
}

func getBuiltinPolicy(name string) *Policy {
	for _, pol := range builtinPolicies {
		if pol.Name == name {
			p := pol
			return &p
		}
	}
	return nil
}
