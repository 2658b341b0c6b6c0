package commit

import (
	"regexp"
	"strings"

	"github.com/commitgate/commitgate/config"
	"github.com/commitgate/commitgate/model"
)

// ParsedCommit is the structured form of one commit message. Type and
// Subject are both set, or the message did not parse as a conventional
// commit; there is no state in between.
type ParsedCommit struct {
	Type      string   `json:"type,omitempty"`
	Scope     string   `json:"scope,omitempty"`
	Breaking  bool     `json:"breaking,omitempty"`
	Subject   string   `json:"subject,omitempty"`
	Body      string   `json:"body,omitempty"`
	Footers   []Footer `json:"footers,omitempty"`
	RawHeader string   `json:"raw_header"`
}

// Conventional reports whether the header parsed as a conventional
// commit.
func (pc ParsedCommit) Conventional() bool {
	return pc.Type != "" && pc.Subject != ""
}

// Footer is one trailing body annotation, such as "BREAKING CHANGE:
// ..." or "REVIEWED-BY: ...". Continuation lines are folded into Value.
type Footer struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

// Parser extracts conventional commit structure from raw messages
// according to one policy. Regexes compile at construction, so a Parser
// is safe for concurrent use.
type Parser struct {
	pol       *config.Policy
	subjectRE *regexp.Regexp
	footerRE  *regexp.Regexp
}

// NewParser returns a Parser for pol. A nil policy means the builtin
// conventional policy. Call pol.Validate first when the policy comes
// from user configuration.
func NewParser(pol *config.Policy) *Parser {
	if pol == nil {
		pol = config.DefaultPolicy()
	}
	return &Parser{
		pol:       pol,
		subjectRE: pol.GetSubjectRE(),
		footerRE:  pol.GetBodyAnnotationRE(),
	}
}

// Parse extracts commit structure from a raw message. The first line is
// the header; it either matches the policy grammar or the result has
// neither type nor subject. A malformed message is ordinary input, not
// an error, so Parse always returns a value.
func (p *Parser) Parse(raw string) ParsedCommit {
	header, body := splitMessage(raw)
	pc := ParsedCommit{RawHeader: header, Body: body}
	if p.footerRE != nil {
		pc.Footers = p.parseFooters(body)
	}

	m := p.subjectRE.FindStringSubmatch(header)
	if m == nil {
		return pc
	}
	typ := strings.ToLower(p.group(m, "type"))
	subject := strings.TrimSpace(p.group(m, "subject"))
	if typ == "" || subject == "" {
		return pc
	}
	pc.Type = typ
	pc.Subject = subject
	if scope := p.group(m, "scope"); scope != "" {
		// Strip the delimiters only when a custom grammar captured
		// them both. The builtin scope class excludes ')', so its
		// captures stay verbatim even when the text opens with '('.
		if strings.HasPrefix(scope, "(") && strings.HasSuffix(scope, ")") {
			scope = strings.TrimSuffix(strings.TrimPrefix(scope, "("), ")")
		}
		pc.Scope = scope
	}
	pc.Breaking = p.group(m, "breaking") != ""
	return pc
}

// ParseCommit parses a commit whose header and body the VCS already
// split apart.
func (p *Parser) ParseCommit(mc *model.Commit) ParsedCommit {
	raw := mc.Subject
	if mc.Body != "" {
		raw += "\n\n" + mc.Body
	}
	return p.Parse(raw)
}

func (p *Parser) group(m []string, name string) string {
	i := p.subjectRE.SubexpIndex(name)
	if i < 0 || i >= len(m) {
		return ""
	}
	return m[i]
}

// parseFooters collects annotations from the message body. An
// annotation ends at the next blank line; non-blank lines directly
// under it are continuations.
func (p *Parser) parseFooters(body string) []Footer {
	if body == "" {
		return nil
	}
	var footers []Footer
	open := -1
	nameIdx := p.footerRE.SubexpIndex("name")
	for _, line := range strings.Split(body, "\n") {
		if m := p.footerRE.FindStringSubmatch(line); m != nil {
			name := strings.TrimRight(m[0], ": ")
			if nameIdx >= 0 && nameIdx < len(m) {
				name = m[nameIdx]
			}
			footers = append(footers, Footer{
				Name:  name,
				Value: strings.TrimSpace(line[len(m[0]):]),
			})
			open = len(footers) - 1
			continue
		}
		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			open = -1
			continue
		}
		if open >= 0 {
			f := &footers[open]
			if f.Value == "" {
				f.Value = trimmed
			} else {
				f.Value += "\n" + trimmed
			}
		}
	}
	return footers
}

func splitMessage(raw string) (header, body string) {
	header = raw
	if i := strings.IndexByte(raw, '\n'); i >= 0 {
		header = raw[:i]
		body = strings.TrimLeft(raw[i+1:], "\r\n")
	}
	header = strings.TrimSuffix(header, "\r")
	return header, body
}

var defaultParser = NewParser(nil)

// Parse parses a raw message with the builtin conventional policy.
func Parse(raw string) ParsedCommit {
	return defaultParser.Parse(raw)
}
