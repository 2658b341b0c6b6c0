// Package commitgate validates that commit messages, pull request
// titles, and ad-hoc messages follow the conventional commit format
// before changes land on a gated branch.
//
// Related packages: cmd/commitgate, config, commit, runner, model, vcs,
// vcs/gitcli.
package commitgate

import "github.com/commitgate/commitgate/config"

// Config holds most of the configuration variables for commitgate. This
// struct is intended for command-line use, so not all of its attributes
// apply to every operation.
//
// See "go doc github.com/commitgate/commitgate/config Config" for more
// information.
type Config = config.Config
