// commitgate validates that commit messages, pull request titles, and
// ad-hoc messages follow the conventional commit format.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/ghodss/yaml"
	"github.com/imdario/mergo"
	"github.com/mattn/go-isatty"
	"github.com/spf13/pflag"

	"github.com/commitgate/commitgate/config"
	"github.com/commitgate/commitgate/runner"
	"github.com/commitgate/commitgate/vcs/gitcli"
)

// Version is set by the release builder.
var Version = "dev"

const configFileName = "commitgate.yaml"

func main() {
	if err := run(os.Args, nil); err != nil {
		fe := &runner.FailedError{}
		if errors.As(err, &fe) {
			os.Exit(1)
		}
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(2)
	}
}

func run(rawArgs []string, termio *config.TerminalIO) error {
	cfg, err := config.NewWithTerminalIO(nil, termio)
	if err != nil {
		return err
	}

	var (
		help        bool
		version     bool
		printConfig bool
		cfgFile     string
		title       string
		messages    []string
		showImpact  bool
		showStats   bool
	)

	flags := pflag.NewFlagSet("commitgate", pflag.ExitOnError)
	flags.SetOutput(cfg.Term.Stderr)
	flags.BoolVarP(&help, "help", "h", false, "show this help")
	flags.BoolVarP(&version, "version", "V", false, "print version and exit")
	flags.BoolVar(&cfg.InCI, "ci", false, "run in CI mode")
	flags.BoolVarP(&cfg.Debug, "verbose", "v", false, "print additional debugging info")
	flags.BoolVarP(&cfg.Quiet, "quiet", "q", false, "print as little as necessary")
	flags.BoolVar(&cfg.Strict, "strict", false, "reserved for stricter grammar checks")
	flags.StringVarP(&cfgFile, "config", "c", "", "specify config `file`")
	flags.BoolVar(&printConfig, "print-config", false, "print the resolved configuration and exit")
	flags.StringVarP(&cfg.Format, "format", "F", "", "output `format` (text, json)")
	flags.StringVarP(&title, "title", "T", "", "validate a pull request `title`")
	flags.StringArrayVarP(&messages, "message", "m", nil, "validate a commit `message` (\"-\" reads stdin)")
	flags.StringVar(&cfg.TargetBranch, "target-branch", "", "the `branch` the change is merging into")
	flags.StringArrayVarP(&cfg.Branches, "branch", "b", cfg.Branches, "gate validation to merges into `branch`")
	flags.StringArrayVar(&cfg.AllowedTypes, "allowed-type", nil, "allow commit `type` (repeatable)")
	flags.StringArrayVar(&cfg.AllowedScopes, "allowed-scope", nil, "allow commit `scope` (repeatable)")
	flags.StringArrayVar(&cfg.Policies, "policy", cfg.Policies, "validate with policy `name`")
	flags.BoolVar(&showImpact, "impact", false, "print the release impact of the validated commits")
	flags.BoolVar(&showStats, "stats", false, "print commit message stats")

	if err := flags.Parse(rawArgs); err != nil {
		return err
	}
	args := flags.Args()
	if len(args) > 0 {
		args = args[1:]
	}

	if help {
		usage(cfg, flags)
		return nil
	}
	if version {
		cfg.Printf("commitgate %s", Version)
		return nil
	}

	if !cfg.InCI {
		if ci, _ := strconv.ParseBool(os.Getenv("CI")); ci {
			cfg.InCI = true
		}
	}

	fileCfg, err := readConfigFile(cfgFile)
	if err != nil {
		return err
	}
	if fileCfg != nil {
		if err := mergo.Merge(&cfg, *fileCfg, mergo.WithOverride); err != nil {
			return err
		}
		// mergo can't apply explicitly empty lists, which are meaningful
		// here: an empty allow-list rejects every type.
		if fileCfg.AllowedTypes != nil && len(fileCfg.AllowedTypes) == 0 && !flags.Changed("allowed-type") {
			cfg.AllowedTypes = fileCfg.AllowedTypes
		}
		if fileCfg.Branches != nil && len(fileCfg.Branches) == 0 && !flags.Changed("branch") {
			cfg.Branches = fileCfg.Branches
		}
	}
	if flags.Changed("branch") || (fileCfg != nil && fileCfg.Branches != nil) {
		cfg.BranchesSet = true
	}
	if cfg.InCI && cfg.TargetBranch == "" {
		cfg.TargetBranch = os.Getenv("GITHUB_BASE_REF")
	}

	if err := cfg.Validate(); err != nil {
		return err
	}
	if title != "" && len(messages) > 0 {
		return errors.New("--title and --message are mutually exclusive")
	}
	if showImpact && (title != "" || len(messages) > 0) {
		return errors.New("--impact only applies when validating repository commits")
	}

	if printConfig {
		b, err := yaml.Marshal(cfg)
		if err != nil {
			return err
		}
		fmt.Fprint(cfg.Term.Stdout, string(b))
		return nil
	}

	rnr, err := runner.New(cfg, gitcli.New(cfg, ""))
	if err != nil {
		return err
	}

	if rnr.SkipBranch(cfg.TargetBranch) {
		cfg.Printf("skipping validation: %q is not a gated branch", cfg.TargetBranch)
		return nil
	}

	ctx := context.Background()
	var query string
	if len(args) > 0 {
		query = args[0]
	}

	var res *runner.Result
	switch {
	case title != "":
		res, err = rnr.ValidateTitle(ctx, title)
	case len(messages) == 1 && messages[0] == "-" && !isatty.IsTerminal(os.Stdin.Fd()):
		res, err = rnr.ValidateReader(ctx, cfg.Term.Stdin)
	case len(messages) > 0:
		res, err = rnr.ValidateMessages(ctx, messages)
	default:
		res, err = rnr.ValidateCommits(ctx, query)
	}
	if err != nil {
		return err
	}

	verdict := res.Verdict
	switch {
	case cfg.Format == "json":
		if err := runner.WriteVerdictJSON(cfg.Term.Stdout, verdict); err != nil {
			return err
		}
	case verdict.AllValid:
		cfg.Printf("OK")
	default:
		if err := runner.WriteVerdict(cfg.Term.Stdout, verdict); err != nil {
			return err
		}
	}

	if showImpact {
		imp, err := rnr.Impact(ctx, res.Commits)
		if err != nil {
			return err
		}
		if cfg.Format == "json" {
			if err := runner.WriteImpactJSON(cfg.Term.Stdout, imp); err != nil {
				return err
			}
		} else {
			bare := cfg.Quiet || !isatty.IsTerminal(os.Stdout.Fd())
			if err := imp.TextSummary(cfg.Term.Stdout, bare); err != nil {
				return err
			}
		}
	}

	if showStats {
		if err := rnr.Stats(res.Commits).TextSummary(cfg.Term.Stdout); err != nil {
			return err
		}
	}

	if !verdict.AllValid {
		return &runner.FailedError{Verdict: verdict}
	}
	return nil
}

// readConfigFile reads path, or walks up from the working directory
// looking for commitgate.yaml. No file at all is not an error.
func readConfigFile(path string) (*config.Config, error) {
	var b []byte
	if path != "" {
		var err error
		b, err = os.ReadFile(path)
		if err != nil {
			return nil, err
		}
	} else {
		wd, err := os.Getwd()
		if err != nil {
			return nil, err
		}
		for {
			cand, err := os.ReadFile(filepath.Join(wd, configFileName))
			if err == nil {
				b = cand
				break
			}
			if !os.IsNotExist(err) {
				return nil, err
			}
			parent := filepath.Dir(wd)
			if parent == wd {
				return nil, nil
			}
			wd = parent
		}
	}

	if err := config.ValidateBytes(b); err != nil {
		return nil, err
	}
	fileCfg := &config.Config{}
	if err := yaml.Unmarshal(b, fileCfg); err != nil {
		return nil, err
	}
	return fileCfg, nil
}

func usage(cfg config.Config, flags *pflag.FlagSet) {
	w := cfg.Term.Stdout
	fmt.Fprintln(w, "Usage: commitgate [flags] [revision-range]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Validates that commit messages follow the conventional commit format.")
	fmt.Fprintln(w, "With no arguments, validates the commits the current branch would add")
	fmt.Fprintln(w, "to the mainline, or everything since the last release when run on the")
	fmt.Fprintln(w, "mainline itself.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Examples:")
	fmt.Fprintln(w, "  commitgate                          validate pending commits")
	fmt.Fprintln(w, "  commitgate v1.2.3..HEAD             validate an explicit range")
	fmt.Fprintln(w, "  commitgate --ci --target-branch main")
	fmt.Fprintln(w, "  commitgate -T \"$PR_TITLE\"           validate a pull request title")
	fmt.Fprintln(w, "  git log -1 --format=%B | commitgate -m -")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Flags:")
	fmt.Fprint(w, flags.FlagUsages())
}
