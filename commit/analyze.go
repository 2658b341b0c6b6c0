package commit

import (
	"errors"
	"fmt"
	"runtime"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/commitgate/commitgate/config"
	"github.com/commitgate/commitgate/model"
)

// AnalyzedCommit is a commit that has been matched against the
// configured policies.
type AnalyzedCommit struct {
	*model.Commit
	Valid       bool         `json:"valid"`
	CommitType  string       `json:"commit_type,omitempty"`
	Scope       string       `json:"scope,omitempty"`
	Breaking    bool         `json:"breaking,omitempty"`
	Description string       `json:"description,omitempty"`
	ReleaseType ReleaseType  `json:"release_type,omitempty"`
	Policy      string       `json:"policy,omitempty"`
	Parsed      ParsedCommit `json:"-"`
}

// AnalyzedCommits is a batch of analyzed commits in input order.
type AnalyzedCommits []*AnalyzedCommit

// ReleaseType returns the aggregate impact of the batch: the largest
// single commit impact, or SKIP when nothing warrants a release.
func (acs AnalyzedCommits) ReleaseType() ReleaseType {
	rt := ReleaseSkip
	for _, ac := range acs {
		if ac.ReleaseType > rt {
			rt = ac.ReleaseType
		}
	}
	return rt
}

// Analyzer matches raw commits against the configured policies and
// classifies their release impact.
type Analyzer struct {
	cfg      config.Config
	policies []policyParser
}

type policyParser struct {
	pol      *config.Policy
	parser   *Parser
	types    map[string]ReleaseType
	fallback ReleaseType
}

// NewAnalyzer returns an Analyzer for the policies cfg names. All
// policy regexes and release type mappings are checked here, so
// configuration mistakes surface before any commit is read.
func NewAnalyzer(cfg config.Config) (*Analyzer, error) {
	pols := cfg.GetPolicies()
	if len(pols) == 0 {
		return nil, errors.New("commit: no policies configured")
	}
	a := &Analyzer{cfg: cfg}
	for _, pol := range pols {
		if err := pol.Validate(); err != nil {
			return nil, fmt.Errorf("commit: policy %q: %w", pol.Name, err)
		}
		pp := policyParser{
			pol:    pol,
			parser: NewParser(pol),
			types:  make(map[string]ReleaseType, len(pol.CommitTypes)),
		}
		for typ, name := range pol.CommitTypes {
			rt, err := parseReleaseType(name)
			if err != nil {
				return nil, fmt.Errorf("policy %q: type %q: %w", pol.Name, typ, err)
			}
			pp.types[strings.ToLower(typ)] = rt
		}
		if pol.FallbackReleaseType != "" {
			rt, err := parseReleaseType(pol.FallbackReleaseType)
			if err != nil {
				return nil, fmt.Errorf("policy %q: %w", pol.Name, err)
			}
			pp.fallback = rt
		}
		a.policies = append(a.policies, pp)
	}
	return a, nil
}

// Match parses one commit against each policy in order; the first
// policy producing a conventional parse wins. Commits no policy can
// parse come back with Valid unset. The parse attempt from the first
// policy is kept either way so reports can show the header.
func (a *Analyzer) Match(mc *model.Commit) *AnalyzedCommit {
	ac := &AnalyzedCommit{Commit: mc}
	for i, pp := range a.policies {
		pc := pp.parser.ParseCommit(mc)
		if i == 0 {
			ac.Parsed = pc
		}
		if !pc.Conventional() {
			continue
		}
		ac.Valid = true
		ac.Parsed = pc
		ac.CommitType = pc.Type
		ac.Scope = pc.Scope
		ac.Description = pc.Subject
		ac.Breaking = pc.Breaking || hasBreakingFooter(pc.Footers, pp.pol.BreakingChangeTypes)
		ac.ReleaseType = pp.releaseType(pc.Type, ac.Breaking)
		ac.Policy = pp.pol.Name
		return ac
	}
	return ac
}

// AnalyzeAll matches a batch of commits. Parsing one message never
// depends on another, so the batch fans out across goroutines; results
// keep input order.
func (a *Analyzer) AnalyzeAll(commits []*model.Commit) AnalyzedCommits {
	acs := make(AnalyzedCommits, len(commits))
	var eg errgroup.Group
	eg.SetLimit(runtime.GOMAXPROCS(0))
	for i, mc := range commits {
		i, mc := i, mc
		eg.Go(func() error {
			acs[i] = a.Match(mc)
			return nil
		})
	}
	eg.Wait()
	return acs
}

func (pp policyParser) releaseType(typ string, breaking bool) ReleaseType {
	if breaking {
		return ReleaseMajor
	}
	if rt, ok := pp.types[typ]; ok {
		return rt
	}
	if pp.fallback != 0 {
		return pp.fallback
	}
	return ReleaseSkip
}

func hasBreakingFooter(footers []Footer, names []string) bool {
	for _, f := range footers {
		for _, name := range names {
			if f.Name == name {
				return true
			}
		}
	}
	return false
}
