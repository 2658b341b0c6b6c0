// Package model contains abstract data models.
package model

import "time"

// Commit is one commit message plus whatever metadata the VCS attached to
// it. Pull-request titles and ad-hoc messages are represented as commits
// with only Subject (and possibly Body) set.
type Commit struct {
	ID             string `json:"commit"`
	Author         string
	AuthorEmail    string
	AuthorDate     time.Time
	Committer      string
	CommitterEmail string
	CommitterDate  time.Time
	Subject        string
	Body           string
}

func (c *Commit) ShortID() string {
	if len(c.ID) < 8 {
		return c.ID
	}
	return c.ID[:8]
}
